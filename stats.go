// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

// statAggregate mirrors the teacher's running-aggregate counters
// (tinfo.go's atomically-packed fields), but per-alarm rather than
// per-timer-wheel-slot: a count, a running total and a running max, from
// which a caller can derive an average (spec §4.8).
type statAggregate struct {
	Count   uint64
	TotalMs uint64
	MaxMs   uint64
}

func (agg *statAggregate) observe(ms int64) {
	if ms < 0 {
		ms = 0
	}
	agg.Count++
	agg.TotalMs += uint64(ms)
	if uint64(ms) > agg.MaxMs {
		agg.MaxMs = uint64(ms)
	}
}

// AverageMs returns TotalMs/Count, or 0 if Count is 0.
func (agg statAggregate) AverageMs() uint64 {
	if agg.Count == 0 {
		return 0
	}
	return agg.TotalMs / agg.Count
}

// Stats is C8: per-alarm lifetime counters (spec §4.8). A snapshot is
// obtained via Alarm.Stats(); the fields are plain (not atomic) because
// every mutation happens under the scheduler's monitor.
type Stats struct {
	Scheduled    uint64
	Cancelled    uint64
	Rescheduled  uint64
	TotalUpdates uint64

	// CallbackTime aggregates wall-clock time spent inside the callback
	// itself.
	CallbackTime statAggregate
	// Overdue aggregates how late a firing was relative to its deadline
	// (deadline overshoot: dispatched after it was due).
	Overdue statAggregate
	// Premature aggregates how early a firing was relative to its
	// deadline (should be ~0 in the steady state; non-zero values point
	// at an OS timer firing early, which spec §8 scenario 7 treats as a
	// correctness bug to catch in testing, not a tolerated case).
	Premature statAggregate
}

// observeLocked folds one callback invocation's timing into the stats.
// deadlineMs is the deadline the firing was scheduled against; t0/t1
// bracket the callback's execution. Must be called with the monitor held.
func (st *Stats) observeLocked(t0, t1, deadlineMs int64) {
	st.CallbackTime.observe(t1 - t0)
	if t0 >= deadlineMs {
		st.Overdue.observe(t0 - deadlineMs)
	} else {
		st.Premature.observe(deadlineMs - t0)
	}
}
