// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"time"

	"github.com/intuitivelabs/timestamp"
)

// clock is the monotonic clock source (spec C1). now() never returns
// wall-clock time and never goes backwards; a ClockFailure (spec §7)
// is reported as 0, which downstream arithmetic treats defensively via
// msSince (saturated at 0).
type clock interface {
	nowMs() int64
}

// bootClock wraps github.com/intuitivelabs/timestamp's monotonic clock,
// the same dependency the teacher (intuitivelabs/wtimer) uses for its
// own tick accounting in wtimer_ticker.go.
type bootClock struct {
	ref timestamp.TS
}

func newBootClock() *bootClock {
	return &bootClock{ref: timestamp.Now()}
}

func (c *bootClock) nowMs() int64 {
	d := timestamp.Now().Sub(c.ref)
	if d < 0 {
		// clock went backwards: report a ClockFailure as 0 (spec §7),
		// arithmetic downstream saturates at 0 via msSince.
		if WARNon() {
			WARN("clock went backwards by %s\n", -d)
		}
		return 0
	}
	return int64(d / time.Millisecond)
}

// fakeClock is a test-only clock allowing deterministic control over
// "now" for the phase-lock and periodic-drift scenarios (spec §8).
type fakeClock struct {
	ms int64
}

func (c *fakeClock) nowMs() int64 { return c.ms }

func (c *fakeClock) set(ms int64) { c.ms = ms }

func (c *fakeClock) advance(d time.Duration) { c.ms += int64(d / time.Millisecond) }

// msSince returns max(0, now - past), per spec §4.7 get_remaining_ms and
// the general "ms differences saturated at 0" defensiveness of spec §7.
func msSince(now, past int64) int64 {
	if now <= past {
		return 0
	}
	return now - past
}
