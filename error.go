// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrMissingOwner reports a frame whose owning task is absent at a
	// point that requires one.
	ErrMissingOwner = errors.New("coro: missing task object")
	// ErrReentrant reports an attempt to activate a frame that is already
	// active, such as an await continuation fired twice.
	ErrReentrant = errors.New("coro: attempted to resume an active coroutine")
	// ErrOverrideResume reports an await hook that demanded Resume while
	// the awaited operation was not ready.
	ErrOverrideResume = errors.New("coro: override-resume of a pending await")
	// ErrMissingHook reports a task type that lacks a required hook.
	ErrMissingHook = errors.New("coro: missing hook")
	// ErrUnhandledEffect reports an operation performed by a frame body
	// that the engine does not understand.
	ErrUnhandledEffect = errors.New("coro: unhandled effect")
	// ErrHandleInUse reports a Spawn or Move into a handle that already
	// owns a frame.
	ErrHandleInUse = errors.New("coro: handle already owns a frame")
	// ErrDone is returned by TryResume when the frame has finished.
	ErrDone = errors.New("coro: coroutine done")
	// ErrReleased is returned by TryResume on an empty handle.
	ErrReleased = errors.New("coro: handle is empty")
	// ErrWorkerClosed is raised by Worker.Execute after Close.
	ErrWorkerClosed = errors.New("coro: worker closed")
)

// ConsistencyError is the panic value raised when the engine detects a
// broken invariant at a suspension point. It is never recovered by the
// engine.
type ConsistencyError struct {
	Point string
	Err   error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%v (%s point)", e.Err, e.Point)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }

func inconsistent(err error, point string) *ConsistencyError {
	return &ConsistencyError{Point: point, Err: err}
}

func missingHook(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingHook, name)
}

// PanicError carries a panic recovered from a frame body together with the
// stack of the goroutine that raised it.
type PanicError struct {
	value any
	stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("%v", p.value)
}

// ErrorWithStack returns the panic value followed by the captured stack.
func (p *PanicError) ErrorWithStack() string {
	return fmt.Sprintf("%v\n\n%s", p.value, p.stack)
}

// Value returns the recovered panic value.
func (p *PanicError) Value() any { return p.value }

func (p *PanicError) Unwrap() error {
	err, ok := p.value.(error)
	if !ok {
		return nil
	}
	return err
}

// newPanicError wraps v, leaving values that are already wrapped intact.
func newPanicError(v any) *PanicError {
	if pe, ok := v.(*PanicError); ok {
		return pe
	}
	return &PanicError{value: v, stack: debug.Stack()}
}
