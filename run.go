// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"errors"

	"code.hybscloud.com/iox"
)

// Drive resumes t until its frame is done. While the frame is running or
// awaiting, Drive waits with adaptive backoff (iox.Backoff). It returns
// ErrReleased when t owns no frame.
func Drive(t Task) error {
	h := t.coroHandle()
	var bo iox.Backoff
	for {
		err := h.TryResume()
		switch {
		case err == nil:
			bo.Reset()
		case errors.Is(err, ErrDone):
			return nil
		case errors.Is(err, iox.ErrWouldBlock):
			bo.Wait()
		default:
			return err
		}
	}
}

// Wait blocks until the frame of t is done, backing off adaptively.
// It returns at once for an empty handle.
func Wait(t Task) {
	h := t.coroHandle()
	var bo iox.Backoff
	for !h.Done() {
		bo.Wait()
	}
}
