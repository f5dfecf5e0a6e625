// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package coro_test

import "testing"

// skipRace skips tests that hand frames across goroutines through lfq
// lock-free queues or atomix flags. The race detector tracks per-variable
// happens-before and cannot see their cross-variable memory ordering
// (store-release on data, load-acquire on flags), producing false
// positives.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: frames are published through atomix flags and lock-free queues")
}
