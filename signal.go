// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

// expirationSignal is C4: a counting wake-up primitive. post() is
// idempotent with respect to aggregation (multiple posts collapse into
// a single pending wakeup) and wait() returns when a post is pending,
// consuming it. This is the same non-blocking-send-on-a-buffered-channel
// idiom the teacher uses for its run-queue signal channel (wtimer.go's
// rQch) and that other_examples' mclock.Alarm.send() (zhuangjianhan-flychain)
// uses for its own deadline notification channel.
type expirationSignal struct {
	ch chan struct{}
}

func newExpirationSignal() *expirationSignal {
	return &expirationSignal{ch: make(chan struct{}, 1)}
}

// post wakes the dispatcher. Safe to call from any goroutine, including
// the OS timer callback and the arm-time race mitigation in C3.
func (s *expirationSignal) post() {
	select {
	case s.ch <- struct{}{}:
	default:
		// already pending, aggregates
	}
}

// wait blocks until post() has been (or is) called, or stop is closed
// (used for orderly C9 teardown). It returns true if woken by a post,
// false if woken by shutdown.
func (s *expirationSignal) wait(stop <-chan struct{}) bool {
	select {
	case <-s.ch:
		return true
	case <-stop:
		return false
	}
}
