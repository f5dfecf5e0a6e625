// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "code.hybscloud.com/kont"

// Task is implemented by every type that embeds Handle. The hooks a task
// type declares decide how its frame behaves at each suspension point:
//
//	OnStart() Control | OnStart() Signal          required
//	OnReturn(R) | OnReturn()                      required
//	Execute(step func())                          optional execution policy
//	OnError(error)                                optional failure hook
//	OnYield(V) Control | OnYield(V) Signal        per yielded type V
//	OnExpect(V) Reply[In]                         per two-way yield
//	OnPause() Control | OnPause() Signal          void yield
//	OnAwait(Awaiter[T]) Control | Signal | Transform[T]
//
// Hooks other than OnStart run while the frame's lock is held; they must
// not call Move or Release on the same task.
type Task interface {
	coroHandle() *Handle
}

// Executor is the optional execution policy of a task. Execute must run
// step exactly once, on any goroutine.
type Executor interface {
	Execute(step func())
}

// ErrorHandler is the optional failure hook of a task. Without it a
// failing frame re-panics to the goroutine driving it.
type ErrorHandler interface {
	OnError(err error)
}

type (
	startControl interface{ OnStart() Control }
	startSignal  interface{ OnStart() Signal }

	returnValue[R any] interface{ OnReturn(R) }
	returnVoid         interface{ OnReturn() }

	yieldControl[V any] interface{ OnYield(V) Control }
	yieldSignal[V any]  interface{ OnYield(V) Signal }

	expectReply[V, In any] interface{ OnExpect(V) Reply[In] }

	pauseControl interface{ OnPause() Control }
	pauseSignal  interface{ OnPause() Signal }

	awaitControl[T any]   interface{ OnAwait(Awaiter[T]) Control }
	awaitSignal[T any]    interface{ OnAwait(Awaiter[T]) Signal }
	awaitTransform[T any] interface{ OnAwait(Awaiter[T]) Transform[T] }
)

// hooks is the capability descriptor of a task, resolved when a frame is
// spawned into it or moved to it.
type hooks struct {
	start   func() Signal
	ret     func(v kont.Resumed)
	execute func(step func())
	onError func(err error)
}

// resolve builds the descriptor of t for frames completing with R.
func resolve[R any](t Task) (hooks, error) {
	var h hooks
	switch s := t.(type) {
	case startSignal:
		h.start = s.OnStart
	case startControl:
		h.start = func() Signal { return Signal{Control: s.OnStart()} }
	default:
		return hooks{}, missingHook("OnStart")
	}
	switch r := t.(type) {
	case returnValue[R]:
		h.ret = func(v kont.Resumed) {
			a, _ := v.(R)
			r.OnReturn(a)
		}
	case returnVoid:
		h.ret = func(kont.Resumed) { r.OnReturn() }
	default:
		return hooks{}, missingHook("OnReturn")
	}
	if e, ok := t.(Executor); ok {
		h.execute = e.Execute
	}
	if e, ok := t.(ErrorHandler); ok {
		h.onError = e.OnError
	}
	return h, nil
}

// Returns reports whether t can own a frame completing with R.
func Returns[R any](t Task) bool {
	_, err := resolve[R](t)
	return err == nil
}

// Executes reports whether t declares an execution policy.
func Executes(t Task) bool {
	_, ok := t.(Executor)
	return ok
}

// Recovers reports whether t declares a failure hook.
func Recovers(t Task) bool {
	_, ok := t.(ErrorHandler)
	return ok
}

// Yields reports whether t declares a one-way yield hook for V.
func Yields[V any](t Task) bool {
	switch t.(type) {
	case yieldControl[V], yieldSignal[V]:
		return true
	}
	return false
}

// Expects reports whether t can answer a two-way yield of V with In.
func Expects[V, In any](t Task) bool {
	_, ok := t.(expectReply[V, In])
	return ok
}

// Pauses reports whether t declares a void yield hook.
func Pauses(t Task) bool {
	switch t.(type) {
	case pauseControl, pauseSignal:
		return true
	}
	return false
}

// Awaits reports whether t declares an await hook for T.
func Awaits[T any](t Task) bool {
	switch t.(type) {
	case awaitControl[T], awaitSignal[T], awaitTransform[T]:
		return true
	}
	return false
}
