// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import "testing"

func TestSchedulerNewClose(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error: %s", err)
	}
	if s.defaultQueue == nil || s.defaultWorker == nil {
		t.Fatal("New() did not set up a default queue/worker")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %s", err)
	}
	// Close must be idempotent.
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error: %s", err)
	}
}

func TestSchedulerSetAfterCloseFails(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error: %s", err)
	}
	defer s.Close()

	a := s.NewAlarm("late")
	s.Close()
	if err := a.Set(0, func(*Alarm, interface{}) {}, nil); err != ErrClosed {
		t.Fatalf("Set() after Close() = %v, want ErrClosed", err)
	}
}

func TestDefaultSingletonReturnsSameInstance(t *testing.T) {
	s1, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %s", err)
	}
	s2, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %s", err)
	}
	if s1 != s2 {
		t.Fatal("Default() returned two different schedulers")
	}
}
