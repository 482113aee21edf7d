// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"fmt"
	"time"

	"github.com/intuitivelabs/alarm"
)

// firing is one observed callback invocation, reported on a shared
// channel so the CLI can render progress without touching the
// scheduler's internals.
type firing struct {
	name    string
	at      time.Time
	overdue time.Duration
}

// fleet is a small mix of one-shot and periodic demo alarms armed on a
// single scheduler, used by both the run and watch subcommands.
type fleet struct {
	sched   *alarm.Scheduler
	alarms  []*alarm.Alarm
	firings chan firing
}

func newFleet(oneShots, periodics int, baseInterval time.Duration) (*fleet, error) {
	sched, err := alarm.New()
	if err != nil {
		return nil, fmt.Errorf("starting scheduler: %w", err)
	}

	f := &fleet{sched: sched, firings: make(chan firing, 64)}

	for i := 0; i < oneShots; i++ {
		name := fmt.Sprintf("once-%d", i+1)
		a := sched.NewAlarm(name)
		interval := baseInterval + time.Duration(i)*baseInterval/4
		if err := a.Set(interval, f.onFire, nil); err != nil {
			f.Close()
			return nil, fmt.Errorf("arming %s: %w", name, err)
		}
		f.alarms = append(f.alarms, a)
	}

	for i := 0; i < periodics; i++ {
		name := fmt.Sprintf("tick-%d", i+1)
		a := sched.NewPeriodicAlarm(name)
		interval := baseInterval / 2 * time.Duration(i+1)
		if err := a.Set(interval, f.onFire, nil); err != nil {
			f.Close()
			return nil, fmt.Errorf("arming %s: %w", name, err)
		}
		f.alarms = append(f.alarms, a)
	}

	return f, nil
}

func (f *fleet) onFire(a *alarm.Alarm, _ interface{}) {
	stats := a.Stats()
	var overdue time.Duration
	if stats.Overdue.Count > 0 {
		overdue = time.Duration(stats.Overdue.MaxMs) * time.Millisecond
	}
	select {
	case f.firings <- firing{name: a.Name(), at: time.Now(), overdue: overdue}:
	default:
		// the observer isn't draining fast enough; drop rather than block
		// the scheduler's own dispatch/queue goroutines.
	}
}

func (f *fleet) Close() {
	for _, a := range f.alarms {
		a.Free()
	}
	f.sched.Close()
}
