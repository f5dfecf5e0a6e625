// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive frame body (Cont-world).
// step returns Left(nextState) to continue or Right(result) to finish.
// Each iteration that suspends returns to the driver, so a generator
// written with Loop runs in constant stack depth.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}

// ExprLoop runs a recursive frame body (Expr-world).
// step returns Left(nextState) to continue or Right(result) to finish.
// Iterations that complete without suspending are unrolled in place.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	state := initial
	for {
		m := step(state)
		if _, ok := m.Frame.(kont.ReturnFrame); !ok {
			return kont.ExprBind(m, func(e kont.Either[S, A]) kont.Expr[A] {
				return exprLoopNext(e, step)
			})
		}
		next, ok := m.Value.GetLeft()
		if !ok {
			result, _ := m.Value.GetRight()
			return kont.ExprReturn(result)
		}
		state = next
	}
}

func exprLoopNext[S, A any](e kont.Either[S, A], step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	if next, ok := e.GetLeft(); ok {
		return ExprLoop(next, step)
	}
	result, _ := e.GetRight()
	return kont.ExprReturn(result)
}
