// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build !linux

package alarm

import "errors"

// setOSThreadPriority has no portable equivalent outside Linux; the hint
// is accepted but cannot be realized, matching the original's own
// "best-effort, not all platforms" treatment of thread_set_priority.
func setOSThreadPriority() error {
	return errors.New("dispatcher thread priority is only supported on linux")
}
