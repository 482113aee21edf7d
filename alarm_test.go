// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"testing"
	"time"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New()
	if err != nil {
		t.Fatalf("New() error: %s", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAlarmFiresOnce(t *testing.T) {
	s := newTestScheduler(t)
	a := s.NewAlarm("once")

	fired := make(chan interface{}, 1)
	if err := a.Set(10*time.Millisecond, func(_ *Alarm, data interface{}) {
		fired <- data
	}, "payload"); err != nil {
		t.Fatalf("Set() error: %s", err)
	}

	select {
	case got := <-fired:
		if got != "payload" {
			t.Errorf("callback data = %v, want %q", got, "payload")
		}
	case <-time.After(time.Second):
		t.Fatal("alarm never fired")
	}

	if a.IsScheduled() {
		t.Error("one-shot alarm still scheduled after firing")
	}
}

func TestAlarmCancelPreventsFiring(t *testing.T) {
	s := newTestScheduler(t)
	a := s.NewAlarm("cancelled")

	fired := make(chan struct{}, 1)
	if err := a.Set(30*time.Millisecond, func(*Alarm, interface{}) {
		fired <- struct{}{}
	}, nil); err != nil {
		t.Fatalf("Set() error: %s", err)
	}
	a.Cancel()

	select {
	case <-fired:
		t.Fatal("cancelled alarm fired anyway")
	case <-time.After(60 * time.Millisecond):
	}

	if a.IsScheduled() {
		t.Error("cancelled alarm reports IsScheduled() == true")
	}
}

func TestAlarmPeriodicRefires(t *testing.T) {
	s := newTestScheduler(t)
	a := s.NewPeriodicAlarm("ticker")

	fired := make(chan struct{}, 8)
	if err := a.Set(10*time.Millisecond, func(*Alarm, interface{}) {
		fired <- struct{}{}
	}, nil); err != nil {
		t.Fatalf("Set() error: %s", err)
	}
	defer a.Cancel()

	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("only %d of 3 expected firings observed", i)
		}
	}

	if !a.IsScheduled() {
		t.Error("periodic alarm should remain scheduled between firings")
	}
}

func TestAlarmCancelFromWithinOwnCallback(t *testing.T) {
	s := newTestScheduler(t)
	a := s.NewAlarm("self-cancel")

	done := make(chan struct{})
	if err := a.Set(5*time.Millisecond, func(self *Alarm, _ interface{}) {
		self.Cancel() // must not deadlock against the barrier Cancel() uses
		close(done)
	}, nil); err != nil {
		t.Fatalf("Set() error: %s", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback calling Cancel() on itself deadlocked")
	}
}

func TestAlarmGetRemainingMs(t *testing.T) {
	s := newTestScheduler(t)
	a := s.NewAlarm("remaining")
	if err := a.Set(200*time.Millisecond, func(*Alarm, interface{}) {}, nil); err != nil {
		t.Fatalf("Set() error: %s", err)
	}
	remaining := a.GetRemainingMs()
	if remaining <= 0 || remaining > 200 {
		t.Errorf("GetRemainingMs() = %d, want in (0, 200]", remaining)
	}
	a.Cancel()
	if got := a.GetRemainingMs(); got != 0 {
		t.Errorf("GetRemainingMs() after cancel = %d, want 0", got)
	}
}

// TestSchedulePhaseLockAnchoredToCreationTime is a white-box check of the
// phase-lock formula (spec §4.3): the deadline scheduleNextInstanceLocked
// computes for a periodic alarm must stay anchored to the alarm's
// creation time rather than drifting forward by a full period each time
// it's recomputed late.
func TestSchedulePhaseLockAnchoredToCreationTime(t *testing.T) {
	clk := &fakeClock{}
	s, err := New(withClock(clk))
	if err != nil {
		t.Fatalf("New() error: %s", err)
	}
	defer s.Close()

	a := s.NewPeriodicAlarm("phase")
	a.sched = s
	a.isPeriodic = true
	a.creationTimeMs = 1000
	a.periodMs = 100
	a.callback = func(*Alarm, interface{}) {}

	// Simulate the dispatcher running 30ms late into the current period.
	clk.set(1230)
	s.mu.Lock()
	s.scheduleNextInstanceLocked(a)
	gotDeadline := a.deadlineMs
	s.mu.Unlock()

	// 30ms into the [1200,1300) period -> next boundary is 1300, not 1230+100=1330.
	want := int64(1300)
	if gotDeadline != want {
		t.Fatalf("deadlineMs = %d, want %d (phase-locked to creation time)", gotDeadline, want)
	}
}
