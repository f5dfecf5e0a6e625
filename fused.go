// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// YieldThen yields v and then continues with next.
// Fuses Perform(YieldOp[V]{Value: v}) + Then.
func YieldThen[V, B any](v V, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(YieldOp[V]{Value: v}), next)
}

// ExpectBind yields v and passes the reply to f.
// Fuses Perform(ExpectOp[V, In]{Value: v}) + Bind.
func ExpectBind[In, V, B any](v V, f func(In) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(ExpectOp[V, In]{Value: v}), f)
}

// PauseThen pauses and then continues with next.
// Fuses Perform(PauseOp{}) + Then.
func PauseThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(PauseOp{}), next)
}

// AwaitBind awaits aw and passes its result to f.
// Fuses Perform(AwaitOp[T]{Awaiter: aw}) + Bind.
func AwaitBind[T, B any](aw Awaiter[T], f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(AwaitOp[T]{Awaiter: aw}), f)
}

// Defer builds the computation with f when the frame reaches it, so that
// state created by f belongs to a single run of the body.
func Defer[A any](f func() kont.Eff[A]) kont.Eff[A] {
	return func(k func(A) kont.Resumed) kont.Resumed {
		return f()(k)
	}
}
