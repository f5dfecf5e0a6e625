// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

// generator collects one-way yields of T and suspends at each of them.
type generator[T any] struct {
	coro.Handle
	start    coro.Control
	yielded  []T
	result   T
	returned int
}

func (g *generator[T]) OnStart() coro.Control { return g.start }

func (g *generator[T]) OnYield(v T) coro.Control {
	g.yielded = append(g.yielded, v)
	return coro.Suspend
}

func (g *generator[T]) OnReturn(v T) {
	g.result = v
	g.returned++
}

// next resumes g and reports whether it produced another yield.
func (g *generator[T]) next() bool {
	n := len(g.yielded)
	return g.Resume() && len(g.yielded) > n
}

// drain resumes g until done.
func drain(h interface {
	Resume() bool
	Done() bool
}) {
	for !h.Done() {
		h.Resume()
	}
}

// counting yields begin, begin±1, ... up to but excluding end, and
// completes with end.
func counting(begin, end int) kont.Eff[int] {
	return coro.Loop(begin, func(n int) kont.Eff[kont.Either[int, int]] {
		if n == end {
			return kont.Pure(kont.Right[int](n))
		}
		next := n + 1
		if begin > end {
			next = n - 1
		}
		return coro.YieldThen(n, kont.Pure(kont.Left[int, int](next)))
	})
}

// exprCounting is the Expr-world counting.
func exprCounting(begin, end int) kont.Expr[int] {
	return coro.ExprLoop(begin, func(n int) kont.Expr[kont.Either[int, int]] {
		if n == end {
			return kont.ExprReturn(kont.Right[int](n))
		}
		return coro.ExprYieldThen(n, kont.ExprReturn(kont.Left[int, int](n+1)))
	})
}

// manualAwaiter is an Awaiter completed by the test.
type manualAwaiter[T any] struct {
	ready    bool
	value    T
	suspends int
	resume   func()
}

func (a *manualAwaiter[T]) Ready() bool { return a.ready }

func (a *manualAwaiter[T]) Suspend(resume func()) bool {
	a.suspends++
	a.resume = resume
	return true
}

func (a *manualAwaiter[T]) Result() T { return a.value }

// complete makes the result available and fires the stored continuation.
func (a *manualAwaiter[T]) complete(v T) {
	a.value, a.ready = v, true
	if r := a.resume; r != nil {
		a.resume = nil
		r()
	}
}
