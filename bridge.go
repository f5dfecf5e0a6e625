// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Reify turns a closure-built body into a frame-chain body for SpawnExpr.
// Expr bodies step through pooled frames, which suits long-lived
// generators on hot paths. A reified body is single-use like any Expr.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect turns an Expr body back into an Eff so it can be composed with
// Bind, Loop or the fused Cont forms before being passed to Spawn.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
