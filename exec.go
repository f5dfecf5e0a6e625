// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// DefaultWorkerCapacity is the step queue capacity NewWorker uses when
// given a non-positive capacity.
const DefaultWorkerCapacity = 64

// Detached is an execution policy that runs every step on a new
// goroutine. Embed it in a task type to make Resume asynchronous.
type Detached struct{}

// Execute runs step on a new goroutine.
func (Detached) Execute(step func()) {
	go step()
}

// Worker state word layout: two flag bits, an in-flight producer count,
// and a submission sequence in the high half that changes on every
// completed Execute.
const (
	workerClosed    = 1 << 0
	workerStopped   = 1 << 1
	workerInflight  = 1 << 2
	workerSubmitted = 1 << 32

	workerInflightMask = workerSubmitted - workerInflight
)

// Worker is an execution policy that runs steps one at a time on a single
// goroutine. Steps are handed over through a bounded lock-free MPSC queue.
// Execute never blocks: a step submitted while the queue is full goes to
// an overflow list the worker drains once the queue is empty. A frame has
// at most one pending step, so the overflow is bounded by the number of
// frames on the worker.
//
// Embed a *Worker in a task type to run its frame on the worker.
type Worker struct {
	q     lfq.MPSC[func()]
	state atomix.Uint64
	done  chan struct{}

	spillMu sync.Mutex
	spill   []func()
}

// NewWorker starts a worker whose queue holds capacity pending steps,
// rounded up to a power of two.
func NewWorker(capacity int) *Worker {
	if capacity <= 0 {
		capacity = DefaultWorkerCapacity
	}
	w := &Worker{done: make(chan struct{})}
	w.q.Init(max(capacity, 2))
	go w.loop()
	return w
}

// Execute submits step. Steps submitted after Close keep being accepted
// until the worker has run everything pending; after that Execute panics
// with ErrWorkerClosed.
func (w *Worker) Execute(step func()) {
	if w.state.Add(workerInflight)&workerStopped != 0 {
		w.state.Add(^uint64(workerInflight - 1))
		panic(ErrWorkerClosed)
	}
	if w.q.Enqueue(&step) != nil {
		w.spillMu.Lock()
		w.spill = append(w.spill, step)
		w.spillMu.Unlock()
	}
	w.state.Add(workerSubmitted - workerInflight)
}

// Close stops the worker once every pending step has run.
// Close must not be called from a step running on the worker.
func (w *Worker) Close() {
	w.state.Or(workerClosed)
	<-w.done
}

func (w *Worker) loop() {
	defer close(w.done)
	var bo iox.Backoff
	for {
		if w.runPending() {
			bo.Reset()
			continue
		}
		s := w.state.LoadAcquire()
		if s&workerClosed == 0 || s&workerInflightMask != 0 {
			bo.Wait()
			continue
		}
		// Every submission counted in s is queued or spilled by now.
		if w.runPending() {
			continue
		}
		if w.state.CompareAndSwap(s, s|workerStopped) {
			return
		}
	}
}

// runPending runs one queued step, or the whole overflow when the queue is
// empty. It reports whether anything ran.
func (w *Worker) runPending() bool {
	if step, err := w.q.Dequeue(); err == nil {
		step()
		return true
	}
	w.spillMu.Lock()
	steps := w.spill
	w.spill = nil
	w.spillMu.Unlock()
	for _, step := range steps {
		step()
	}
	return len(steps) > 0
}
