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

func TestSetDispatcherPriorityDoesNotPanic(t *testing.T) {
	setDispatcherPriority() // best-effort; must never panic regardless of OS/permissions
}

func TestHighPriorityHintSchedulerStillFires(t *testing.T) {
	s, err := New(WithHighPriorityHint(true))
	if err != nil {
		t.Fatalf("New() error: %s", err)
	}
	defer s.Close()

	if !s.highPriority {
		t.Fatal("WithHighPriorityHint(true) did not set Scheduler.highPriority")
	}

	a := s.NewAlarm("hp")
	fired := make(chan struct{}, 1)
	if err := a.Set(10*time.Millisecond, func(*Alarm, interface{}) {
		fired <- struct{}{}
	}, nil); err != nil {
		t.Fatalf("Set() error: %s", err)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("alarm never fired with high-priority dispatcher enabled")
	}
}
