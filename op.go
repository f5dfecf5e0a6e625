// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// suspender is the structural interface for coroutine operations.
// at resolves the owner's hook for the operation and returns the
// suspension point the frame parks at, or nil when the owner is gone.
// Callers hold p.mu.
type suspender interface {
	at(p *promise) point
}

// YieldOp is the effect operation for a one-way yield of a value of type V.
// Perform(YieldOp[V]{Value: v}) hands v to the task's OnYield hook.
type YieldOp[V any] struct {
	kont.Phantom[struct{}]
	Value V
}

func (o YieldOp[V]) at(p *promise) point {
	if !p.registered() {
		return nil
	}
	pt := &yieldPoint{p: p, kind: "yield", ctl: Surrender, inline: p.hooks.execute == nil}
	switch h := p.task.(type) {
	case yieldSignal[V]:
		sig := h.OnYield(o.Value)
		pt.ctl, pt.reply = sig.Control, signalReply(sig.OnResume)
	case yieldControl[V]:
		pt.ctl = h.OnYield(o.Value)
	}
	return pt
}

// ExpectOp is the effect operation for a two-way yield: the frame hands
// out a value of type V and receives a value of type In when it resumes.
type ExpectOp[V, In any] struct {
	kont.Phantom[In]
	Value V
}

func (o ExpectOp[V, In]) at(p *promise) point {
	if !p.registered() {
		return nil
	}
	h, ok := p.task.(expectReply[V, In])
	if !ok {
		panic(inconsistent(missingHook("OnExpect"), "expect"))
	}
	rep := h.OnExpect(o.Value)
	return &yieldPoint{
		p:      p,
		kind:   "expect",
		ctl:    rep.Control,
		inline: p.hooks.execute == nil,
		reply:  expectReplyOf(rep.OnResume),
	}
}

// PauseOp is the effect operation for a void yield.
type PauseOp struct {
	kont.Phantom[struct{}]
}

func (PauseOp) at(p *promise) point {
	if !p.registered() {
		return nil
	}
	pt := &yieldPoint{p: p, kind: "pause", ctl: Surrender, inline: p.hooks.execute == nil}
	switch h := p.task.(type) {
	case pauseSignal:
		sig := h.OnPause()
		pt.ctl, pt.reply = sig.Control, signalReply(sig.OnResume)
	case pauseControl:
		pt.ctl = h.OnPause()
	}
	return pt
}

// AwaitOp is the effect operation for awaiting the result of an
// asynchronous operation through its native Awaiter.
type AwaitOp[T any] struct {
	kont.Phantom[T]
	Awaiter Awaiter[T]
}

func (o AwaitOp[T]) at(p *promise) point {
	if pt := newAwaitPoint(p, o.Awaiter); pt != nil {
		return pt
	}
	return nil
}

// Yield hands v to the task's OnYield hook and suspends unless the hook
// decides otherwise.
func Yield[V any](v V) kont.Eff[struct{}] {
	return kont.Perform(YieldOp[V]{Value: v})
}

// Expect hands v to the task's OnExpect hook and evaluates to the value
// produced by the hook's reply when the frame resumes.
func Expect[In, V any](v V) kont.Eff[In] {
	return kont.Perform(ExpectOp[V, In]{Value: v})
}

// Pause suspends the frame through the task's OnPause hook.
func Pause() kont.Eff[struct{}] {
	return kont.Perform(PauseOp{})
}

// Await suspends the frame until aw is ready and evaluates to its result,
// as seen through the task's OnAwait hook for T.
func Await[T any](aw Awaiter[T]) kont.Eff[T] {
	return kont.Perform(AwaitOp[T]{Awaiter: aw})
}

// AwaitSource awaits the Awaiter produced by src.
func AwaitSource[T any](src Source[T]) kont.Eff[T] {
	return Await(src.Awaiter())
}

// AwaitChan awaits the next value received from ch.
func AwaitChan[T any](ch <-chan T) kont.Eff[T] {
	return Await(Chan(ch))
}

// Fail raises err as a failure of the frame. The failure is routed to the
// task's OnError hook; without one it re-panics to the driving goroutine.
func Fail[A any](err error) kont.Eff[A] {
	return kont.ThrowError[error, A](err)
}
