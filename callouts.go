// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

// WakeAlarmScheduler is the §6 OS callout surface for scheduling a
// single shot notification that fires even across system suspend (the
// "wake alarm" of spec §4.2). The core depends on, but does not
// implement, this interface — the host environment supplies it, the
// same relationship alarm.c has with bt_os_callouts->set_wake_alarm.
type WakeAlarmScheduler interface {
	// SetWakeAlarm schedules cb to run after deltaMs milliseconds, even
	// if the system suspends in the meantime. It returns false if the
	// host was unable to program the alarm (spec §7 OSTimerFailure).
	SetWakeAlarm(deltaMs int64, cb func()) bool
}

// WakeLocker is the §6 OS callout surface for a reference-counted
// process-wide suspend blocker (spec's "wake-lock"). Acquire/Release
// calls are always paired by the expiration timer (C3) and are never
// nested beyond a single outstanding lock for this scheduler (spec §5
// Resource policy: "held at most once by this core").
type WakeLocker interface {
	// Acquire takes the named wake-lock. A non-nil error is a
	// WakeLockFailure (spec §7): logged, the arm is abandoned for this
	// cycle, and the alarm remains in C2 to be retried on the next
	// dispatcher wakeup.
	Acquire(id string) error
	// Release gives back the named wake-lock.
	Release(id string) error
}

// noopWakeAlarmScheduler is used when no WakeAlarmScheduler is
// configured: far-future deadlines simply stay on the process timer
// (no suspend-survival), which is a correct, if less power-efficient,
// degradation and keeps the scheduler usable in hosts (and tests) that
// have no wake-alarm facility.
type noopWakeAlarmScheduler struct{}

func (noopWakeAlarmScheduler) SetWakeAlarm(_ int64, _ func()) bool { return false }

// noopWakeLocker is used when no WakeLocker is configured.
type noopWakeLocker struct{}

func (noopWakeLocker) Acquire(string) error { return nil }
func (noopWakeLocker) Release(string) error { return nil }
