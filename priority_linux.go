// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build linux

package alarm

import "golang.org/x/sys/unix"

// dispatcherNiceValue mirrors alarm.c's thread_set_priority(..., -19):
// the most favorable scheduling priority alarm.c requests for its
// dispatcher and default-callback threads (spec §6, SPEC_FULL.md §12).
const dispatcherNiceValue = -19

// setOSThreadPriority lowers (i.e. improves) the nice value of the
// calling OS thread. golang.org/x/sys/unix.Setpriority wraps the raw
// setpriority(2) syscall directly rather than glibc's PID-resolving
// wrapper, so PRIO_PROCESS with who=0 applies to the calling thread —
// the thread runtime.LockOSThread pinned this goroutine to.
func setOSThreadPriority() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, dispatcherNiceValue)
}
