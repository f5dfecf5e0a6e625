// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Control is the decision a task hook makes at a suspension point.
type Control uint8

const (
	// Suspend stops the frame and returns control to whoever resumed it.
	Suspend Control = iota
	// Resume keeps the frame running without returning control.
	Resume
	// Surrender applies the default of the suspension point:
	// resume at the initial point, the native readiness at an await,
	// suspend at a yield.
	Surrender
)

// String returns the name of the decision.
func (c Control) String() string {
	switch c {
	case Suspend:
		return "suspend"
	case Resume:
		return "resume"
	case Surrender:
		return "surrender"
	default:
		return "control(?)"
	}
}

// resumes reports whether c continues the frame, using def for Surrender.
func (c Control) resumes(def bool) bool {
	switch c {
	case Resume:
		return true
	case Suspend:
		return false
	default:
		return def
	}
}

// Signal is a Control paired with a callback run when the frame re-enters.
// A nil OnResume means no callback.
type Signal struct {
	Control  Control
	OnResume func()
}

// Then pairs c with f.
func Then(c Control, f func()) Signal {
	return Signal{Control: c, OnResume: f}
}

// Reply is a Control paired with a callback that produces the value the
// frame receives from a two-way yield.
type Reply[T any] struct {
	Control  Control
	OnResume func() T
}

// ThenReply pairs c with the reply producer f.
func ThenReply[T any](c Control, f func() T) Reply[T] {
	return Reply[T]{Control: c, OnResume: f}
}

// Transform is a Control paired with a callback that maps the awaited
// result before the frame receives it.
type Transform[T any] struct {
	Control  Control
	OnResume func(T) T
}

// ThenTransform pairs c with the result mapping f.
func ThenTransform[T any](c Control, f func(T) T) Transform[T] {
	return Transform[T]{Control: c, OnResume: f}
}
