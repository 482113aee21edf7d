// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"time"
)

// defaultWakelockThresholdMs is TIMER_INTERVAL_FOR_WAKELOCK_IN_MS (spec
// §6 Tunables): the boundary between the wake-lock+process-timer path
// and the wake-alarm path. Test-overridable via WithWakelockThreshold.
const defaultWakelockThresholdMs = 3000

const wakeLockID = "alarm-scheduler"

// expirationTimer is C3: exactly one of {process timer, wake alarm} is
// armed at a time (spec §4.2). The process timer is a stdlib
// *time.Timer — the same primitive the teacher itself already drives
// its own tick loop with (wtimer_run.go's time.NewTicker); nothing in
// the example pack offers a better-fitting single-shot OS timer
// abstraction. The wake alarm and wake-lock are host callouts (§6).
type expirationTimer struct {
	clk clock
	sig *expirationSignal

	wakeAlarm WakeAlarmScheduler
	wakeLock  WakeLocker
	threshold int64

	timer        *time.Timer
	wakeLockHeld bool
	armedKind    armedKind
}

type armedKind int

const (
	armedNone armedKind = iota
	armedProcessTimer
	armedWakeAlarm
)

func newExpirationTimer(clk clock, sig *expirationSignal, wa WakeAlarmScheduler, wl WakeLocker, thresholdMs int64) *expirationTimer {
	if wa == nil {
		wa = noopWakeAlarmScheduler{}
	}
	if wl == nil {
		wl = noopWakeLocker{}
	}
	return &expirationTimer{
		clk: clk, sig: sig, wakeAlarm: wa, wakeLock: wl, threshold: thresholdMs,
	}
}

// armAbsoluteLocked arms the timer to fire at deadlineMs (absolute
// monotonic ms), choosing the wake-lock+process-timer path or the
// wake-alarm path per spec §4.2's threshold policy. Must be called
// with the monitor held.
func (t *expirationTimer) armAbsoluteLocked(deadlineMs int64) {
	t.disarmLocked()

	delta := deadlineMs - t.clk.nowMs()
	if delta < t.threshold {
		if err := t.wakeLock.Acquire(wakeLockID); err != nil {
			// WakeLockFailure (spec §7): log, abandon this arm cycle,
			// the alarm stays in C2 and is retried on the next wakeup.
			if WARNon() {
				WARN("unable to acquire wake lock: %s\n", err)
			}
			return
		}
		t.wakeLockHeld = true
		t.armedKind = armedProcessTimer

		if delta <= 0 {
			delta = 0
		}
		t.timer = time.AfterFunc(time.Duration(delta)*time.Millisecond, t.sig.post)

		// Race mitigation (spec §4.2): the deadline may have already
		// elapsed while we were programming the timer. time.AfterFunc
		// with delta<=0 fires "as soon as possible" on its own goroutine,
		// but to guarantee forward progress even under scheduler jitter
		// we post synchronously too; wait()'s idempotent aggregation
		// makes a double-post harmless (the dispatcher re-checks the
		// front deadline on every wakeup).
		if delta == 0 {
			t.sig.post()
		}
		return
	}

	if _, none := t.wakeAlarm.(noopWakeAlarmScheduler); none {
		// No host wake alarm configured: the far-future deadline stays on
		// the process timer, with no wake-lock held.
		t.armedKind = armedProcessTimer
		t.timer = time.AfterFunc(time.Duration(delta)*time.Millisecond, t.sig.post)
		return
	}

	t.armedKind = armedWakeAlarm
	if !t.wakeAlarm.SetWakeAlarm(delta, t.sig.post) {
		if ERRon() {
			ERR("unable to set wake alarm for %dms\n", delta)
		}
		t.armedKind = armedNone
	}
}

// disarmLocked cancels whichever timer is currently armed and releases
// the wake-lock if it was held. Must be called with the monitor held.
func (t *expirationTimer) disarmLocked() {
	switch t.armedKind {
	case armedProcessTimer:
		if t.timer != nil {
			t.timer.Stop()
			t.timer = nil
		}
	case armedWakeAlarm:
		// the callout surface has no way to cancel a host wake alarm; if
		// it still fires, the dispatcher treats the post as a spurious
		// wakeup and rearms from the current front.
	}
	if t.wakeLockHeld {
		if err := t.wakeLock.Release(wakeLockID); err != nil && WARNon() {
			WARN("unable to release wake lock: %s\n", err)
		}
		t.wakeLockHeld = false
	}
	t.armedKind = armedNone
}
