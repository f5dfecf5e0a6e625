// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"sync"

	"code.hybscloud.com/atomix"
)

// Serial is a monotonically increasing frame identifier.
// Each spawned frame is assigned the next serial value.
type Serial = uint32

// counter is the global monotonic counter for frame serials.
var counter atomix.Uint32

func nextSerial() Serial {
	return counter.Add(1)
}

// driver is the type-erased side of a frame that the promise and the
// suspension points act on.
type driver interface {
	// reenter performs one resumption from the parked suspension point.
	reenter()
	// destroy discards the parked continuation. Idempotent.
	destroy()
}

// promise is the state controller shared by a frame and its owner.
//
// The flags are read without the lock by Handle observers and written
// with it held. active and done are never both set.
type promise struct {
	mu      sync.Mutex
	owner   *Handle
	task    Task
	hooks   hooks
	resolve func(Task) (hooks, error)
	frame   driver
	serial  Serial

	active   atomix.Uint32
	awaiting atomix.Uint32
	done     atomix.Uint32
}

// registered reports whether an owner is attached. Callers hold mu.
func (p *promise) registered() bool {
	return p.owner != nil
}

// register attaches t as the owner. Callers hold mu.
func (p *promise) register(t Task, h hooks) {
	p.owner, p.task, p.hooks = t.coroHandle(), t, h
}

// deregister detaches the owner and drops its hooks. Callers hold mu.
func (p *promise) deregister() {
	p.owner, p.task, p.hooks = nil, nil, hooks{}
}

// activate marks the frame running. Reactivating a running frame is a
// consistency error. Callers hold mu.
func (p *promise) activate(point string) {
	if p.active.Load() != 0 {
		panic(inconsistent(ErrReentrant, point))
	}
	p.active.Store(1)
}

func (p *promise) deactivate() {
	p.active.Store(0)
}

// idle reports whether nothing is running or will run the frame.
// Callers hold mu.
func (p *promise) idle() bool {
	return p.active.Load() == 0 && p.awaiting.Load() == 0
}

// pointFor resolves the suspension point of s against the current owner.
func (p *promise) pointFor(s suspender) point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return s.at(p)
}
