// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "code.hybscloud.com/kont"

// Awaiter is the native suspend surface of an awaitable operation.
//
// Ready reports whether the result is available without suspending.
// Suspend registers resume to be called exactly once when the result
// becomes available and reports true; it may instead report false to
// decline, in which case resume must never be called. Result returns the
// result after readiness or after resume was called.
type Awaiter[T any] interface {
	Ready() bool
	Suspend(resume func()) bool
	Result() T
}

// Source is implemented by values that produce an Awaiter on request.
type Source[T any] interface {
	Awaiter() Awaiter[T]
}

// chanAwaiter awaits one value received from a channel.
// A closed channel yields the zero value.
type chanAwaiter[T any] struct {
	ch   <-chan T
	v    T
	have bool
}

// Chan adapts a receive-only channel to an Awaiter of the next value.
func Chan[T any](ch <-chan T) Awaiter[T] {
	return &chanAwaiter[T]{ch: ch}
}

func (a *chanAwaiter[T]) Ready() bool {
	if a.have {
		return true
	}
	select {
	case a.v = <-a.ch:
		a.have = true
	default:
	}
	return a.have
}

func (a *chanAwaiter[T]) Suspend(resume func()) bool {
	if a.have {
		return false
	}
	go func() {
		a.v = <-a.ch
		a.have = true
		resume()
	}()
	return true
}

func (a *chanAwaiter[T]) Result() T { return a.v }

// awaitPoint wraps a native Awaiter with the task's await hook.
type awaitPoint[T any] struct {
	p         *promise
	native    Awaiter[T]
	hooked    bool
	ctl       Control
	effect    func()
	transform func(T) T
}

// newAwaitPoint resolves the await hook of the owner for T.
// It returns nil when the owner is gone. Callers hold p.mu.
func newAwaitPoint[T any](p *promise, native Awaiter[T]) *awaitPoint[T] {
	if !p.registered() {
		return nil
	}
	pt := &awaitPoint[T]{p: p, native: native, ctl: Surrender}
	switch h := p.task.(type) {
	case awaitTransform[T]:
		tr := h.OnAwait(native)
		pt.hooked, pt.ctl, pt.transform = true, tr.Control, tr.OnResume
	case awaitSignal[T]:
		sig := h.OnAwait(native)
		pt.hooked, pt.ctl, pt.effect = true, sig.Control, sig.OnResume
	case awaitControl[T]:
		pt.hooked, pt.ctl = true, h.OnAwait(native)
	}
	return pt
}

func (*awaitPoint[T]) name() string { return "await" }

func (pt *awaitPoint[T]) ready() bool {
	if pt.p.awaiting.Load() != 0 {
		return false
	}
	native := pt.native.Ready()
	if !pt.hooked {
		return native
	}
	switch pt.ctl {
	case Resume:
		if !native {
			panic(inconsistent(ErrOverrideResume, pt.name()))
		}
		return true
	case Suspend:
		return false
	default:
		return native
	}
}

// suspend delegates to the native surface once per pending operation.
// A second await while one is pending parks the frame without another
// native suspension; the pending operation's continuation resumes it.
func (pt *awaitPoint[T]) suspend(k func()) bool {
	p := pt.p
	p.mu.Lock()
	if p.awaiting.Load() != 0 {
		p.mu.Unlock()
		return true
	}
	if !p.registered() {
		p.deactivate()
		p.mu.Unlock()
		lifecycle("coro: owner gone at suspension, frame destroyed", p.serial, pt.name())
		p.frame.destroy()
		return true
	}
	p.deactivate()
	p.awaiting.Store(1)
	p.mu.Unlock()

	once := kont.Once(func(struct{}) struct{} {
		k()
		return struct{}{}
	})
	return pt.native.Suspend(func() {
		if _, ok := once.TryResume(struct{}{}); !ok {
			panic(inconsistent(ErrReentrant, "await"))
		}
	})
}

func (pt *awaitPoint[T]) enter() bool {
	p := pt.p
	p.mu.Lock()
	p.awaiting.Store(0)
	if !p.registered() {
		p.mu.Unlock()
		lifecycle("coro: owner gone at re-entry, frame abandoned", p.serial, pt.name())
		p.frame.destroy()
		return false
	}
	defer p.mu.Unlock()
	p.activate(pt.name())
	return true
}

func (pt *awaitPoint[T]) resume() kont.Resumed {
	pt.p.mu.Lock()
	defer pt.p.mu.Unlock()
	if pt.transform != nil {
		return pt.transform(pt.native.Result())
	}
	if pt.effect != nil {
		pt.effect()
	}
	return pt.native.Result()
}
