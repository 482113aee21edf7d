// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"errors"
)

// Error taxonomy (spec §7). These are kinds, not types: a failing
// operation also logs through BUG()/ERR() at the point of failure;
// these sentinels are what callers compare against.
var (
	// ErrNoCallback is a MisuseFailure: Set was called without a callback.
	ErrNoCallback = errors.New("alarm: set called with no callback")
	// ErrNilQueue is a MisuseFailure: SetOnQueue was called with a nil queue.
	ErrNilQueue = errors.New("alarm: set called with a nil queue")
	// ErrQueueInUse is a MisuseFailure (strict mode): unregistering a queue
	// that still has alarms scheduled on it.
	ErrQueueInUse = errors.New("alarm: queue still has alarms scheduled")
	// ErrClosed is returned by operations attempted after Close.
	ErrClosed = errors.New("alarm: scheduler is closed")
	// ErrInitFailure is the InitFailure kind. Constructing the timer,
	// signal, worker and queue cannot fail here, so New() never returns
	// it; a metrics registration error is returned by New() unwrapped.
	ErrInitFailure = errors.New("alarm: initialization failure")
	// ErrOSTimerFailure marks an arm_absolute rejection by the OS timer.
	// It is logged and the scheduler continues: the arm-time race
	// mitigation guarantees forward progress regardless.
	ErrOSTimerFailure = errors.New("alarm: OS timer arm failed")
	// ErrWakeLockFailure marks a non-success wake-lock acquisition. It is
	// logged, arming is abandoned for this cycle, and the front alarm is
	// retried on the next dispatcher wakeup.
	ErrWakeLockFailure = errors.New("alarm: wake-lock acquisition failed")
)
