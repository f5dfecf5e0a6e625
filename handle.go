// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/iox"
)

// noCopy flags copies of a Handle under go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle is the owner side of a frame. Embed it in a task type:
//
//	type Generator struct {
//	    coro.Handle
//	    last int
//	}
//
//	func (g *Generator) OnStart() coro.Control       { return coro.Suspend }
//	func (g *Generator) OnYield(v int) coro.Control { g.last = v; return coro.Suspend }
//	func (g *Generator) OnReturn(int)                {}
//
// The zero Handle is empty. A Handle must not be copied after Spawn.
type Handle struct {
	_ noCopy
	p *promise
}

func (h *Handle) coroHandle() *Handle { return h }

// Resume continues the frame from its current suspension point, on the
// task's execution policy when it declares one. It reports false without
// side effect when the frame is done, already running, awaiting an
// operation, or when the handle is empty.
func (h *Handle) Resume() bool {
	return h.TryResume() == nil
}

// TryResume is Resume reporting why a resumption was refused:
// ErrReleased for an empty handle, ErrDone for a finished frame, and
// iox.ErrWouldBlock while the frame is running or awaiting.
// A panic from the task's execution policy propagates after the frame is
// marked inactive again.
func (h *Handle) TryResume() error {
	p := h.p
	if p == nil {
		return ErrReleased
	}
	if err := refusal(p); err != nil {
		return err
	}
	p.mu.Lock()
	if err := refusal(p); err != nil {
		p.mu.Unlock()
		return err
	}
	p.active.Store(1)
	exec := p.hooks.execute
	p.mu.Unlock()
	if exec != nil {
		handOff(p, exec)
	} else {
		p.frame.reenter()
	}
	return nil
}

// handOff passes the claimed frame to exec. When exec panics, the claim
// is dropped so the frame stays resumable, and the panic propagates.
func handOff(p *promise, exec func(step func())) {
	defer func() {
		if r := recover(); r != nil {
			p.mu.Lock()
			p.deactivate()
			p.mu.Unlock()
			panic(r)
		}
	}()
	exec(p.frame.reenter)
}

// refusal checks the flags that forbid a resumption. It is safe without
// the lock, which lets hooks running under the lock observe a refusal.
func refusal(p *promise) error {
	if p.done.Load() != 0 {
		return ErrDone
	}
	if p.active.Load() != 0 || p.awaiting.Load() != 0 {
		return iox.ErrWouldBlock
	}
	return nil
}

// Done reports whether the frame has finished. An empty handle is done.
func (h *Handle) Done() bool {
	p := h.p
	return p == nil || p.done.Load() != 0
}

// Active reports whether the frame is running or scheduled to run.
func (h *Handle) Active() bool {
	p := h.p
	return p != nil && p.active.Load() != 0
}

// Awaiting reports whether the frame is suspended on an await.
func (h *Handle) Awaiting() bool {
	p := h.p
	return p != nil && p.awaiting.Load() != 0
}

// Empty reports whether the handle owns no frame.
func (h *Handle) Empty() bool { return h.p == nil }

// Serial returns the serial number of the owned frame, or zero.
func (h *Handle) Serial() Serial {
	if h.p == nil {
		return 0
	}
	return h.p.serial
}

// Release gives up the frame. A finished or idle frame is destroyed at
// once; a running or awaiting frame destroys itself at its next suspension
// point. Release on an empty handle is a no-op.
func (h *Handle) Release() {
	p := h.p
	if p == nil {
		return
	}
	h.p = nil
	p.mu.Lock()
	if p.owner == h {
		p.deregister()
	}
	destroy := p.done.Load() != 0 || p.idle()
	p.mu.Unlock()
	lifecycle("coro: handle released", p.serial, "release")
	if destroy {
		p.frame.destroy()
	}
}

// Move transfers the frame owned by src to dst, rebinding the frame's
// hooks to dst's task type. src is left empty. The checks run in order:
// ErrReleased when src is empty, then ErrHandleInUse when dst owns a
// frame, then ErrMissingHook when dst cannot own the frame.
func Move(dst, src Task) error {
	d, s := dst.coroHandle(), src.coroHandle()
	if d == s {
		return nil
	}
	p := s.p
	if p == nil {
		return ErrReleased
	}
	if d.p != nil {
		return ErrHandleInUse
	}
	p.mu.Lock()
	hk, err := p.resolve(dst)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.register(dst, hk)
	d.p, s.p = p, nil
	p.mu.Unlock()
	lifecycle("coro: frame moved", p.serial, "move")
	return nil
}
