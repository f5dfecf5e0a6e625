// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Pre-boxed operation and frame values for Expr-world construction.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprPause       kont.Erased = PauseOp{}
)

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprYield is the Expr-world Yield.
func ExprYield[V any](v V) kont.Expr[struct{}] {
	return kont.ExprPerform(YieldOp[V]{Value: v})
}

// ExprExpect is the Expr-world Expect.
func ExprExpect[In, V any](v V) kont.Expr[In] {
	return kont.ExprPerform(ExpectOp[V, In]{Value: v})
}

// ExprPause is the Expr-world Pause.
func ExprPause() kont.Expr[struct{}] {
	return kont.ExprPerform(PauseOp{})
}

// ExprAwait is the Expr-world Await.
func ExprAwait[T any](aw Awaiter[T]) kont.Expr[T] {
	return kont.ExprPerform(AwaitOp[T]{Awaiter: aw})
}

// ExprFail is the Expr-world Fail.
func ExprFail[A any](err error) kont.Expr[A] {
	return kont.ExprThrowError[error, A](err)
}

// ExprYieldThen yields v and then continues with next.
// Fuses ExprPerform(YieldOp[V]{Value: v}) + ExprThen on pooled frames.
func ExprYieldThen[V, B any](v V, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = YieldOp[V]{Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprPauseThen pauses and then continues with next.
// Fuses ExprPerform(PauseOp{}) + ExprThen on pooled frames.
func ExprPauseThen[B any](next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprPause
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprExpectBind yields v and passes the reply to f.
func ExprExpectBind[In, V, B any](v V, f func(In) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(ExprExpect[In](v), f)
}

// ExprAwaitBind awaits aw and passes its result to f.
func ExprAwaitBind[T, B any](aw Awaiter[T], f func(T) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(ExprAwait(aw), f)
}
