// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"time"

	"github.com/google/uuid"
)

// CallbackFunc is invoked by a queue's worker when an alarm fires. It
// receives the alarm itself (so a callback may e.g. inspect stats or
// call Cancel on itself) and the opaque data passed to Set/SetOnQueue.
type CallbackFunc func(a *Alarm, data interface{})

// Alarm is C7: one schedulable deadline. Zero value is not usable —
// obtain one from Scheduler.NewAlarm or Scheduler.NewPeriodicAlarm.
type Alarm struct {
	name       string
	isPeriodic bool

	sched *Scheduler

	creationTimeMs int64
	periodMs       int64
	deadlineMs     int64
	prevDeadlineMs int64

	callback CallbackFunc
	data     interface{}
	queue    *Queue

	// dsPrev/dsNext thread this alarm through the scheduler's deadlineSet
	// (C2). Never touched outside of deadlineset.go.
	dsPrev, dsNext *Alarm

	guard callbackGuard

	stats Stats
}

// NewAlarm allocates a one-shot alarm. name is used only for logging and
// may be empty (a short random name is generated).
func (s *Scheduler) NewAlarm(name string) *Alarm {
	return s.newAlarmInternal(name, false)
}

// NewPeriodicAlarm allocates a periodic alarm: each firing reschedules
// the next one anchored to the original creation time (spec §4.3's
// phase-lock formula), so the period never drifts under callback latency.
func (s *Scheduler) NewPeriodicAlarm(name string) *Alarm {
	return s.newAlarmInternal(name, true)
}

func (s *Scheduler) newAlarmInternal(name string, periodic bool) *Alarm {
	if name == "" {
		name = "alarm-" + uuid.NewString()[:8]
	}
	return &Alarm{name: name, isPeriodic: periodic, sched: s}
}

// Name returns the alarm's diagnostic name.
func (a *Alarm) Name() string { return a.name }

// Stats returns a snapshot of this alarm's lifetime counters (C8).
func (a *Alarm) Stats() Stats {
	s := a.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	return a.stats
}

// Set arms a as a (possibly periodic) alarm on the scheduler's default
// queue, firing after interval and invoking cb(a, data).
func (a *Alarm) Set(interval time.Duration, cb CallbackFunc, data interface{}) error {
	return a.SetOnQueue(interval, cb, data, a.sched.defaultQueue)
}

// SetOnQueue is Set, but delivers the callback on q instead of the
// default queue. Re-arming an already-scheduled alarm reschedules it in
// place (spec §4.1's "Set on an already-scheduled alarm reschedules").
func (a *Alarm) SetOnQueue(interval time.Duration, cb CallbackFunc, data interface{}, q *Queue) error {
	if cb == nil {
		BUG("Set called with no callback for alarm %q\n", a.name)
		return ErrNoCallback
	}
	if q == nil {
		BUG("Set called with a nil queue for alarm %q\n", a.name)
		return ErrNilQueue
	}

	s := a.sched
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	a.creationTimeMs = s.clk.nowMs()
	if interval < 0 {
		interval = 0
	}
	a.periodMs = interval.Milliseconds()
	a.queue = q
	a.callback = cb
	a.data = data

	s.liveAlarms[a] = struct{}{}
	a.stats.Scheduled++
	a.stats.TotalUpdates++
	s.metrics.observeScheduled()

	s.scheduleNextInstanceLocked(a)
	s.mu.Unlock()
	return nil
}

// IsScheduled reports whether a currently has a pending deadline.
func (a *Alarm) IsScheduled() bool {
	s := a.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	return a.callback != nil
}

// GetRemainingMs returns how many milliseconds remain until a's next
// deadline, or 0 if it is unscheduled or already due.
func (a *Alarm) GetRemainingMs() int64 {
	s := a.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.callback == nil {
		return 0
	}
	return msSince(a.deadlineMs, s.clk.nowMs())
}

// Cancel removes a from the deadline set and purges it from its queue,
// then blocks until any in-flight callback for a has finished — except
// when called from within a's own callback, where it returns immediately
// (spec §4.7's re-entrant cancel-during-own-callback case, C7's guard).
func (a *Alarm) Cancel() {
	s := a.sched
	s.mu.Lock()
	s.cancelInternalLocked(a)
	s.mu.Unlock()
	a.guard.barrier()
}

func (s *Scheduler) cancelInternalLocked(a *Alarm) {
	if a.callback == nil && a.dsPrev == nil && a.dsNext == nil && s.set.head != a {
		return // never scheduled, or already cancelled
	}
	needsReschedule := !s.set.isEmptyLocked() && s.set.frontLocked() == a
	s.removePendingLocked(a)
	a.deadlineMs = 0
	a.prevDeadlineMs = 0
	a.callback = nil
	a.data = nil
	a.queue = nil
	a.stats.Cancelled++
	s.metrics.observeCancelled()
	delete(s.liveAlarms, a)
	if needsReschedule {
		s.rearmFromFrontLocked()
	}
}

// Free cancels a. Go's garbage collector reclaims the record itself once
// unreferenced; there is no separate destroy step the way alarm.c's
// alarm_free has to release a malloc'd record and destroy a pthread
// mutex.
func (a *Alarm) Free() {
	if a == nil {
		return
	}
	a.Cancel()
}

// removePendingLocked is remove_pending_alarm: drop a from the deadline
// set and defensively purge any stray copies from its queue. Must be
// called with the monitor held.
func (s *Scheduler) removePendingLocked(a *Alarm) {
	s.set.removeLocked(a)
	if a.queue != nil {
		a.queue.removeAll(a)
	}
}

// scheduleNextInstanceLocked computes a's next deadline and re-inserts
// it into the deadline set, rearming the expiration timer if needed.
// For periodic alarms the new deadline is anchored to creationTimeMs
// (spec §4.3), so execution jitter in one period never shifts the phase
// of later firings. Must be called with the monitor held.
func (s *Scheduler) scheduleNextInstanceLocked(a *Alarm) {
	needsReschedule := !s.set.isEmptyLocked() && s.set.frontLocked() == a
	if a.callback != nil {
		// Mirrors the original's "if (alarm->callback) remove_pending_alarm(alarm)":
		// callback is always non-nil here (just assigned by Set, or still set
		// from the previous periodic firing), so this unconditionally re-homes
		// a — the check is a faithful artifact of the source it's grounded on.
		s.removePendingLocked(a)
	}

	now := s.clk.nowMs()
	var intoPeriod int64
	if a.isPeriodic && a.periodMs > 0 {
		intoPeriod = msMod(msSince(now, a.creationTimeMs), a.periodMs)
	}
	a.deadlineMs = now + (a.periodMs - intoPeriod)

	s.set.insertSortedLocked(a)

	if needsReschedule || s.set.frontLocked() == a {
		s.rearmFromFrontLocked()
	}
}

// rearmFromFrontLocked re-programs the expiration timer (C3) from the
// current front of the deadline set, or disarms it if the set is empty.
// Must be called with the monitor held.
func (s *Scheduler) rearmFromFrontLocked() {
	if s.set.isEmptyLocked() {
		s.timer.disarmLocked()
		return
	}
	s.timer.armAbsoluteLocked(s.set.frontLocked().deadlineMs)
}

// msMod is diff % period, saturating diff at 0 first.
func msMod(diff, period int64) int64 {
	if diff < 0 {
		diff = 0
	}
	if period <= 0 {
		return 0
	}
	return diff % period
}
