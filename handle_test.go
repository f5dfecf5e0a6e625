// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

func TestSerialMonotonic(t *testing.T) {
	g1 := &generator[int]{}
	g2 := &generator[int]{}
	g3 := &generator[int]{}
	for _, g := range []*generator[int]{g1, g2, g3} {
		require.NoError(t, coro.Spawn(g, counting(0, 1)))
	}
	if g1.Serial() >= g2.Serial() || g2.Serial() >= g3.Serial() {
		t.Fatalf("serials not increasing: %d, %d, %d", g1.Serial(), g2.Serial(), g3.Serial())
	}
}

func TestEmptyHandle(t *testing.T) {
	var g generator[int]
	if !g.Empty() || !g.Done() || g.Active() || g.Awaiting() {
		t.Fatalf("empty=%v done=%v active=%v awaiting=%v", g.Empty(), g.Done(), g.Active(), g.Awaiting())
	}
	if g.Serial() != 0 {
		t.Fatalf("serial %d, want 0", g.Serial())
	}
	require.ErrorIs(t, g.TryResume(), coro.ErrReleased)
	g.Release()
}

func TestSpawnIntoBusyHandle(t *testing.T) {
	g := &generator[int]{}
	require.NoError(t, coro.Spawn(g, counting(0, 3)))
	require.ErrorIs(t, coro.Spawn(g, counting(0, 3)), coro.ErrHandleInUse)
}

type startless struct {
	coro.Handle
}

func (*startless) OnReturn(int) {}

type returnless struct {
	coro.Handle
}

func (*returnless) OnStart() coro.Control { return coro.Suspend }

func TestSpawnMissingHooks(t *testing.T) {
	s := &startless{}
	require.ErrorIs(t, coro.Spawn(s, kont.Pure(1)), coro.ErrMissingHook)
	if !s.Empty() {
		t.Fatal("failed Spawn bound a frame")
	}
	r := &returnless{}
	require.ErrorIs(t, coro.Spawn(r, kont.Pure(1)), coro.ErrMissingHook)
	g := &generator[string]{}
	require.ErrorIs(t, coro.Spawn(g, kont.Pure(1)), coro.ErrMissingHook)
}

func TestTryResumeReasons(t *testing.T) {
	aw := &manualAwaiter[int]{}
	g := &generator[int]{start: coro.Suspend}
	require.NoError(t, coro.Spawn(g, coro.Await[int](aw)))
	require.NoError(t, g.TryResume())
	if !g.Awaiting() {
		t.Fatal("frame not awaiting")
	}
	require.ErrorIs(t, g.TryResume(), iox.ErrWouldBlock)
	aw.complete(1)
	require.ErrorIs(t, g.TryResume(), coro.ErrDone)
}

// selfResumer tries to resume its own frame from inside the body and
// from inside a hook.
type selfResumer struct {
	coro.Handle
	fromHook  error
	fromBody  error
	active    bool
	completed bool
}

func (s *selfResumer) OnStart() coro.Control { return coro.Resume }

func (s *selfResumer) OnYield(int) coro.Control {
	s.fromHook = s.TryResume()
	return coro.Resume
}

func (s *selfResumer) OnReturn() { s.completed = true }

func TestResumeWhileActiveIsRefused(t *testing.T) {
	s := &selfResumer{}
	body := coro.YieldThen(1, coro.Defer(func() kont.Eff[struct{}] {
		s.fromBody = s.TryResume()
		s.active = s.Active()
		return kont.Pure(struct{}{})
	}))
	require.NoError(t, coro.Spawn(s, body))
	require.ErrorIs(t, s.fromHook, iox.ErrWouldBlock)
	require.ErrorIs(t, s.fromBody, iox.ErrWouldBlock)
	if !s.active || !s.completed || !s.Done() {
		t.Fatalf("active=%v completed=%v done=%v", s.active, s.completed, s.Done())
	}
}

func TestMove(t *testing.T) {
	a := &generator[int]{start: coro.Suspend}
	require.NoError(t, coro.Spawn(a, counting(0, 3)))
	a.Resume()
	serial := a.Serial()

	b := &generator[int]{}
	require.NoError(t, coro.Move(b, a))
	if !a.Empty() || !a.Done() || a.Resume() {
		t.Fatal("source still owns the frame after Move")
	}
	a.Release()
	if b.Serial() != serial {
		t.Fatalf("serial %d after Move, want %d", b.Serial(), serial)
	}
	drain(b)
	if !reflect.DeepEqual(a.yielded, []int{0}) {
		t.Fatalf("source yields %v, want [0]", a.yielded)
	}
	if !reflect.DeepEqual(b.yielded, []int{1, 2}) || b.result != 3 || a.returned != 0 {
		t.Fatalf("target yields %v result %d, want [1 2] and 3", b.yielded, b.result)
	}
	// b still owns its finished frame; the empty source is reported first.
	require.ErrorIs(t, coro.Move(b, a), coro.ErrReleased)
}

func TestMoveRebindsHookType(t *testing.T) {
	p := &probe{start: coro.Suspend, yield: coro.Suspend}
	require.NoError(t, coro.Spawn(p, coro.YieldThen("a", coro.YieldThen("b", kont.Pure("end")))))
	p.Resume()
	g := &generator[string]{}
	require.NoError(t, coro.Move(g, p))
	drain(g)
	p.expectLog(t, "start", "yield a")
	if !reflect.DeepEqual(g.yielded, []string{"b"}) || g.result != "end" {
		t.Fatalf("target yields %v result %q", g.yielded, g.result)
	}
}

func TestMoveIntoIncompatibleTask(t *testing.T) {
	g := &generator[int]{}
	require.NoError(t, coro.Spawn(g, counting(0, 2)))
	s := &generator[string]{}
	require.ErrorIs(t, coro.Move(s, g), coro.ErrMissingHook)
	if g.Empty() || !s.Empty() {
		t.Fatal("failed Move transferred the frame")
	}
	busy := &generator[int]{}
	require.NoError(t, coro.Spawn(busy, counting(0, 2)))
	require.ErrorIs(t, coro.Move(busy, g), coro.ErrHandleInUse)
}

func TestReleaseIdleFrame(t *testing.T) {
	g := &generator[int]{start: coro.Suspend}
	require.NoError(t, coro.Spawn(g, counting(0, 5)))
	g.Resume()
	g.Release()
	if !g.Empty() || g.Resume() {
		t.Fatal("released handle still resumes")
	}
	if len(g.yielded) != 1 || g.returned != 0 {
		t.Fatalf("hooks ran after release: yielded %v returned %d", g.yielded, g.returned)
	}
}

func TestReleaseWhileAwaiting(t *testing.T) {
	aw := &manualAwaiter[int]{}
	var after bool
	g := &generator[int]{start: coro.Resume}
	body := coro.AwaitBind(aw, func(v int) kont.Eff[int] {
		after = true
		return kont.Pure(v)
	})
	require.NoError(t, coro.Spawn(g, body))
	g.Release()
	aw.complete(1)
	if after || g.returned != 0 {
		t.Fatalf("frame continued after its owner released it: after=%v returned=%d", after, g.returned)
	}
}

func TestReleaseDoneFrame(t *testing.T) {
	g := &generator[int]{start: coro.Resume}
	require.NoError(t, coro.Spawn(g, kont.Pure(4)))
	if !g.Done() || g.result != 4 {
		t.Fatalf("done=%v result=%d", g.Done(), g.result)
	}
	g.Release()
	g.Release()
	if !g.Empty() {
		t.Fatal("handle not empty after Release")
	}
}

func TestDriveAndWait(t *testing.T) {
	g := &generator[int]{start: coro.Suspend}
	require.NoError(t, coro.Spawn(g, counting(0, 4)))
	require.NoError(t, coro.Drive(g))
	coro.Wait(g)
	if !reflect.DeepEqual(g.yielded, []int{0, 1, 2, 3}) || g.result != 4 {
		t.Fatalf("yielded %v result %d", g.yielded, g.result)
	}
	var empty generator[int]
	require.ErrorIs(t, coro.Drive(&empty), coro.ErrReleased)
	coro.Wait(&empty)
}
