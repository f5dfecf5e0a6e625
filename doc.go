// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides hook-driven coroutines on top of the stepping
// boundary of [code.hybscloud.com/kont].
//
// A frame body is an effectful computation. Every suspension point it
// reaches is decided by hooks on the task type that owns it, so the same
// engine serves generators, interactive callers, and asynchronous tasks.
//
// # Architecture
//
//   - Frames: [Spawn] and [SpawnExpr] bind a body to a task that embeds [Handle]. The body runs through [code.hybscloud.com/kont.Step] one effect at a time; the parked [code.hybscloud.com/kont.Suspension] is the continuation.
//   - Decisions: hooks return a [Control] ([Suspend], [Resume], [Surrender]), optionally paired with a callback run on re-entry ([Signal], [Reply], [Transform]).
//   - Awaiting: [Awaiter] is the native surface of an asynchronous operation. Awaits are bookkept so a frame never suspends twice on one pending operation, and continuations are one-shot ([code.hybscloud.com/kont.Once]).
//   - Execution: a task may declare an [Executor]. [Detached] runs steps on new goroutines; [Worker] runs them on one goroutine behind a [code.hybscloud.com/lfq.MPSC] queue.
//   - Failures: panics in a body and [Fail] effects go to the task's OnError hook, or re-panic as [*PanicError]. Broken invariants panic with [*ConsistencyError].
//
// # API Topologies
//
//   - Operations: [YieldOp], [ExpectOp], [PauseOp], [AwaitOp].
//   - Cont-world: [Yield], [Expect], [Pause], [Await], [AwaitSource], [AwaitChan], [Fail], [YieldThen], [ExpectBind], [PauseThen], [AwaitBind], [Defer].
//   - Expr-world: [ExprYield], [ExprExpect], [ExprPause], [ExprAwait], [ExprFail], [ExprYieldThen], [ExprPauseThen], [ExprExpectBind], [ExprAwaitBind]. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [ExprLoop].
//   - Ownership: [Handle.Resume], [Handle.TryResume], [Handle.Release], [Move]; blocking helpers [Drive] and [Wait].
//
// Values delivered to a frame follow the kont nil convention: a nil
// interface value cannot be received as the result of an effect.
//
// # Example
//
//	type counter struct {
//		coro.Handle
//		last int
//	}
//
//	func (c *counter) OnStart() coro.Control       { return coro.Suspend }
//	func (c *counter) OnYield(n int) coro.Control { c.last = n; return coro.Suspend }
//	func (c *counter) OnReturn(int)                {}
//
//	c := &counter{}
//	_ = coro.Spawn(c, coro.YieldThen(1, coro.YieldThen(2, kont.Pure(3))))
//	for c.Resume() && !c.Done() {
//		fmt.Println(c.last)
//	}
package coro
