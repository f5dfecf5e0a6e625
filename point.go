// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "code.hybscloud.com/kont"

// point is the suspension point a frame is parked at.
//
// The driver asks ready first. When it reports false, suspend parks the
// frame and hands k to whoever will continue it; a true result means the
// frame must not be touched any more on this goroutine. A false result
// means the suspension was declined and the frame continues at once.
// enter runs the re-entry bookkeeping after an actual suspension and
// reports false when the frame was destroyed instead. resume produces the
// value the frame receives.
type point interface {
	name() string
	ready() bool
	suspend(k func()) bool
	enter() bool
	resume() kont.Resumed
}

// initialPoint is the point every frame starts parked at.
type initialPoint struct {
	p      *promise
	sig    Signal
	inline bool
}

func newInitialPoint(p *promise) *initialPoint {
	p.mu.Lock()
	start, inline := p.hooks.start, p.hooks.execute == nil
	p.mu.Unlock()
	return &initialPoint{p: p, sig: start(), inline: inline}
}

func (*initialPoint) name() string { return "initial" }

func (pt *initialPoint) ready() bool {
	return pt.inline && pt.sig.Control.resumes(true)
}

func (pt *initialPoint) suspend(k func()) bool {
	p := pt.p
	p.mu.Lock()
	if !p.registered() {
		p.mu.Unlock()
		panic(inconsistent(ErrMissingOwner, pt.name()))
	}
	if exec := p.hooks.execute; exec != nil && pt.sig.Control.resumes(true) {
		p.mu.Unlock()
		exec(k)
		return true
	}
	p.deactivate()
	p.mu.Unlock()
	return true
}

func (pt *initialPoint) enter() bool {
	return confirm(pt.p, pt.name())
}

func (pt *initialPoint) resume() kont.Resumed {
	if pt.sig.OnResume != nil {
		pt.p.mu.Lock()
		defer pt.p.mu.Unlock()
		pt.sig.OnResume()
	}
	return struct{}{}
}

// yieldPoint serves one-way, two-way and void yields. Surrender suspends.
type yieldPoint struct {
	p      *promise
	kind   string
	ctl    Control
	inline bool
	reply  func() kont.Resumed
}

func (pt *yieldPoint) name() string { return pt.kind }

func (pt *yieldPoint) ready() bool {
	return pt.inline && pt.ctl.resumes(false)
}

func (pt *yieldPoint) suspend(k func()) bool {
	p := pt.p
	p.mu.Lock()
	if !p.registered() {
		p.deactivate()
		p.mu.Unlock()
		lifecycle("coro: owner gone at suspension, frame destroyed", p.serial, pt.kind)
		p.frame.destroy()
		return true
	}
	if exec := p.hooks.execute; exec != nil && pt.ctl.resumes(false) {
		p.mu.Unlock()
		exec(k)
		return true
	}
	p.deactivate()
	p.mu.Unlock()
	return true
}

func (pt *yieldPoint) enter() bool {
	return confirm(pt.p, pt.kind)
}

func (pt *yieldPoint) resume() kont.Resumed {
	if pt.reply == nil {
		return struct{}{}
	}
	pt.p.mu.Lock()
	defer pt.p.mu.Unlock()
	return pt.reply()
}

// confirm checks the owner is still registered when a claimed frame
// re-enters. A frame whose owner vanished is destroyed and abandoned.
func confirm(p *promise, point string) bool {
	p.mu.Lock()
	if p.registered() {
		p.mu.Unlock()
		return true
	}
	p.deactivate()
	p.mu.Unlock()
	lifecycle("coro: owner gone at re-entry, frame abandoned", p.serial, point)
	p.frame.destroy()
	return false
}

// signalReply adapts a one-way or void yield resumer.
func signalReply(f func()) func() kont.Resumed {
	if f == nil {
		return nil
	}
	return func() kont.Resumed {
		f()
		return struct{}{}
	}
}

// expectReplyOf adapts a two-way yield resumer. A nil producer answers
// with the zero value of In.
func expectReplyOf[In any](f func() In) func() kont.Resumed {
	return func() kont.Resumed {
		if f == nil {
			var zero In
			return zero
		}
		return f()
	}
}
