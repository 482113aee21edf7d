// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import "testing"

func TestStatAggregateObserve(t *testing.T) {
	var agg statAggregate
	agg.observe(10)
	agg.observe(30)
	agg.observe(20)

	if agg.Count != 3 {
		t.Errorf("Count = %d, want 3", agg.Count)
	}
	if agg.TotalMs != 60 {
		t.Errorf("TotalMs = %d, want 60", agg.TotalMs)
	}
	if agg.MaxMs != 30 {
		t.Errorf("MaxMs = %d, want 30", agg.MaxMs)
	}
	if avg := agg.AverageMs(); avg != 20 {
		t.Errorf("AverageMs() = %d, want 20", avg)
	}
}

func TestStatAggregateAverageOfEmpty(t *testing.T) {
	var agg statAggregate
	if avg := agg.AverageMs(); avg != 0 {
		t.Errorf("AverageMs() of empty aggregate = %d, want 0", avg)
	}
}

func TestStatsObserveLockedOverdueVsPremature(t *testing.T) {
	var st Stats
	st.observeLocked(105, 110, 100) // fired 5ms late
	if st.Overdue.Count != 1 || st.Overdue.MaxMs != 5 {
		t.Errorf("Overdue = %+v, want Count=1 MaxMs=5", st.Overdue)
	}
	if st.Premature.Count != 0 {
		t.Errorf("Premature.Count = %d, want 0", st.Premature.Count)
	}

	st.observeLocked(95, 98, 100) // fired 5ms early
	if st.Premature.Count != 1 || st.Premature.MaxMs != 5 {
		t.Errorf("Premature = %+v, want Count=1 MaxMs=5", st.Premature)
	}
	if st.CallbackTime.Count != 2 {
		t.Errorf("CallbackTime.Count = %d, want 2", st.CallbackTime.Count)
	}
}
