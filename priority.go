// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

// setOSThreadPriority is implemented per-OS in priority_linux.go and
// priority_other.go. It best-effort raises the calling OS thread's
// scheduling priority; a non-nil error is logged and otherwise ignored —
// this is a latency hint, not a correctness requirement.
//
// setDispatcherPriority must be called from the goroutine it is meant to
// affect, after that goroutine has called runtime.LockOSThread, so the
// raised priority sticks to the dispatcher's OS thread specifically
// rather than whichever thread the scheduler happens to hand the call to.
func setDispatcherPriority() {
	if err := setOSThreadPriority(); err != nil && WARNon() {
		WARN("unable to raise dispatcher thread priority: %s\n", err)
	}
}
