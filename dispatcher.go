// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import "runtime"

// dispatchLoop is C5: the single goroutine that reacts to expirationSignal
// wakeups, pops whatever is due off the front of the deadline set,
// reschedules periodic alarms in place, rearms the expiration timer and
// hands the fired alarm to its queue (spec §4.4).
func (s *Scheduler) dispatchLoop() {
	defer s.wg.Done()

	if s.highPriority {
		// Pin this goroutine to its OS thread before raising that thread's
		// priority (spec §6's priority hint, WithHighPriorityHint): the
		// priority must stick to the dispatcher specifically, not whichever
		// thread the Go runtime schedules this goroutine onto next.
		runtime.LockOSThread()
		setDispatcherPriority()
	}

	for {
		if woke := s.sig.wait(s.stopCh); !woke {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}

		front := s.set.frontLocked()
		if front == nil || front.deadlineMs > s.clk.nowMs() {
			// spurious wakeup, or the front isn't due yet (e.g. a Set call
			// that didn't move the front far enough to need a new wakeup);
			// rearm just in case and go back to sleep.
			s.rearmFromFrontLocked()
			s.mu.Unlock()
			continue
		}

		a := front
		s.set.removeLocked(a)

		if a.isPeriodic {
			a.prevDeadlineMs = a.deadlineMs
			s.scheduleNextInstanceLocked(a)
			a.stats.Rescheduled++
			s.metrics.observeRescheduled()
		}

		// Matches the original's double rearm: schedule_next_instance
		// already rearms internally when it reinserts at the front, and
		// callback_dispatch rearms again unconditionally afterwards — both
		// calls are idempotent against an already-correct timer program.
		s.rearmFromFrontLocked()

		q := a.queue
		s.mu.Unlock()

		if q != nil {
			q.enqueue(a)
		}
	}
}

// queueReady is the §4.6 ready handler, run on a queue's bound worker
// goroutine. It dequeues at most one alarm, runs its callback outside the
// monitor, and reports whether it actually processed something so the
// caller can keep draining the queue.
func (s *Scheduler) queueReady(q *Queue) bool {
	s.mu.Lock()
	a, ok := q.dequeue()
	if !ok {
		s.mu.Unlock()
		return false
	}
	if a.callback == nil {
		// Cancelled in the enqueue-then-dequeue gap (spec §9): treat as a
		// no-op rather than invoking a stale callback.
		s.mu.Unlock()
		return true
	}

	cb := a.callback
	data := a.data
	deadline := a.deadlineMs
	if a.isPeriodic {
		deadline = a.prevDeadlineMs
	} else {
		a.deadlineMs = 0
		a.callback = nil
		a.data = nil
		delete(s.liveAlarms, a)
	}

	a.guard.enter()
	s.mu.Unlock()

	t0 := s.clk.nowMs()
	cb(a, data)
	t1 := s.clk.nowMs()

	s.mu.Lock()
	a.stats.observeLocked(t0, t1, deadline)
	s.metrics.observeFired(t1-t0, deadline, t0)
	s.mu.Unlock()

	a.guard.exit()
	return true
}
