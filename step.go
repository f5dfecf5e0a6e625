// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"fmt"
	"log/slog"

	"code.hybscloud.com/kont"
)

// frame drives one coroutine body through kont's stepping boundary.
// The body runs until its next effect; the resulting one-shot suspension
// is the continuation parked at a suspension point. A nil suspension
// means the body returned.
type frame[R any] struct {
	p     *promise
	start func() (R, *kont.Suspension[R])
	k     func()

	// guarded by p.mu
	at      point
	susp    *kont.Suspension[R]
	started bool
}

// Spawn creates a frame running body and binds it to t.
//
// The task's OnStart hook runs before Spawn returns; depending on its
// decision the body starts synchronously, is handed to the task's
// execution policy, or stays parked until the first Resume.
// Spawn reports ErrMissingHook when t lacks OnStart or a completion hook
// matching R, and ErrHandleInUse when t already owns a frame.
func Spawn[R any](t Task, body kont.Eff[R]) error {
	return spawn(t, func() (R, *kont.Suspension[R]) { return kont.Step(body) })
}

// SpawnExpr is Spawn for an Expr-world body. Expr bodies are single-use:
// their pooled frames are consumed by evaluation.
func SpawnExpr[R any](t Task, body kont.Expr[R]) error {
	return spawn(t, func() (R, *kont.Suspension[R]) { return kont.StepExpr(body) })
}

func spawn[R any](t Task, start func() (R, *kont.Suspension[R])) error {
	h := t.coroHandle()
	if h.p != nil {
		return ErrHandleInUse
	}
	hk, err := resolve[R](t)
	if err != nil {
		return err
	}
	p := &promise{resolve: resolve[R], serial: nextSerial()}
	p.register(t, hk)
	f := &frame[R]{p: p, start: start}
	f.k = f.reenter
	p.frame = f
	p.active.Store(1)
	h.p = p
	lifecycle("coro: frame spawned", p.serial, "initial")
	f.begin()
	return nil
}

// begin runs the initial suspension point.
func (f *frame[R]) begin() {
	defer f.guard()
	pt := newInitialPoint(f.p)
	f.park(pt, nil)
	if !pt.ready() && pt.suspend(f.k) {
		return
	}
	f.run(pt)
}

// reenter continues the frame from the point it is parked at.
func (f *frame[R]) reenter() {
	f.p.mu.Lock()
	pt := f.at
	f.p.mu.Unlock()
	if pt == nil {
		return
	}
	if !pt.enter() {
		return
	}
	f.run(pt)
}

// run delivers the resumed value of pt to the body and advances it.
func (f *frame[R]) run(pt point) {
	defer f.guard()
	v := pt.resume()
	result, next, ok := f.step(v)
	if !ok {
		return
	}
	f.advance(result, next)
}

// step resumes the parked continuation, or starts the body.
func (f *frame[R]) step(v kont.Resumed) (R, *kont.Suspension[R], bool) {
	f.p.mu.Lock()
	s, started := f.susp, f.started
	f.susp, f.started = nil, true
	f.p.mu.Unlock()
	if !started {
		result, next := f.start()
		return result, next, true
	}
	if s == nil {
		var zero R
		return zero, nil, false
	}
	result, next := s.Resume(v)
	return result, next, true
}

// advance runs the body from one suspension to the next until it parks,
// completes or fails.
func (f *frame[R]) advance(result R, next *kont.Suspension[R]) {
	for next != nil {
		op := next.Op()
		if th, ok := op.(kont.Throw[error]); ok {
			next.Discard()
			f.fail(th.Err)
			return
		}
		s, ok := op.(suspender)
		if !ok {
			next.Discard()
			panic(inconsistent(fmt.Errorf("%w: %T", ErrUnhandledEffect, op), "effect"))
		}
		pt := f.p.pointFor(s)
		if pt == nil {
			next.Discard()
			f.final()
			return
		}
		f.park(pt, next)
		if !pt.ready() {
			if pt.suspend(f.k) || !pt.enter() {
				return
			}
		}
		if result, next, ok = f.step(pt.resume()); !ok {
			return
		}
	}
	f.complete(result)
}

func (f *frame[R]) park(pt point, s *kont.Suspension[R]) {
	f.p.mu.Lock()
	f.at, f.susp = pt, s
	f.p.mu.Unlock()
}

// complete fires the completion hook and runs the final suspension.
func (f *frame[R]) complete(result R) {
	p := f.p
	p.mu.Lock()
	if p.registered() {
		func() {
			defer p.mu.Unlock()
			p.hooks.ret(result)
		}()
	} else {
		p.mu.Unlock()
	}
	f.final()
}

// final marks the frame done. An orphaned frame is destroyed at once;
// an owned one is kept for observation until released.
func (f *frame[R]) final() {
	p := f.p
	p.mu.Lock()
	if p.done.Load() != 0 {
		p.mu.Unlock()
		return
	}
	p.deactivate()
	p.awaiting.Store(0)
	p.done.Store(1)
	orphan := !p.registered()
	p.mu.Unlock()
	lifecycle("coro: frame done", p.serial, "final")
	if orphan {
		f.destroy()
	}
}

// destroy discards the parked continuation. Idempotent.
func (f *frame[R]) destroy() {
	f.p.mu.Lock()
	s := f.susp
	f.susp, f.at, f.start = nil, nil, nil
	f.started = true
	f.p.mu.Unlock()
	if s != nil {
		s.Discard()
		lifecycle("coro: frame destroyed", f.p.serial, "destroy")
	}
}

// fail routes err to the owner's OnError hook, or finalizes the frame and
// re-panics when the owner has none.
func (f *frame[R]) fail(err error) {
	p := f.p
	p.mu.Lock()
	if !p.registered() {
		p.mu.Unlock()
		f.final()
		panic(inconsistent(ErrMissingOwner, "failure"))
	}
	onError := p.hooks.onError
	if onError == nil {
		p.mu.Unlock()
		f.final()
		panic(newPanicError(err))
	}
	logger.Load().Warn("coro: frame failed",
		slog.Uint64("serial", uint64(p.serial)), slog.Any("error", err))
	func() {
		defer p.mu.Unlock()
		onError(err)
	}()
	f.final()
}

// guard recovers panics escaping the body or its hooks while this
// goroutine owns the frame. Consistency errors finalize the frame and
// propagate; anything else is a failure of the frame. A frame that is
// already done lets the panic through untouched.
func (f *frame[R]) guard() {
	r := recover()
	if r == nil {
		return
	}
	if f.p.done.Load() != 0 {
		panic(r)
	}
	if ce, ok := r.(*ConsistencyError); ok {
		f.final()
		panic(ce)
	}
	f.fail(newPanicError(r))
}
