// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

// deadlineSet is C2: alarms kept sorted by deadlineMs ascending, ties
// broken arbitrarily (spec §4.1). Expected populations are small (tens)
// so a sorted doubly linked list is used, matching spec §4.1's guidance
// and the teacher's own intrusive-list technique (timer_lst.go's
// timerLst, which threads next/prev pointers directly through the
// payload instead of allocating separate list nodes). Every method here
// assumes the monitor (M) is already held by the caller — the "Locked"
// suffix mirrors the teacher's own "Unsafe"-suffixed, lock-assumed
// helpers (addUnsafe, afterRunUnsafe in wtimer.go).
type deadlineSet struct {
	head *Alarm // front: earliest deadline
	tail *Alarm
	n    int
}

func (s *deadlineSet) isEmptyLocked() bool { return s.head == nil }

func (s *deadlineSet) frontLocked() *Alarm { return s.head }

func (s *deadlineSet) lenLocked() int { return s.n }

// insertSortedLocked inserts a into the set, keeping it sorted by
// a.deadlineMs ascending. a must not already be linked into a set.
func (s *deadlineSet) insertSortedLocked(a *Alarm) {
	if a.dsPrev != nil || a.dsNext != nil || s.head == a {
		BUG("deadlineSet: insert called on an already-linked alarm %q\n", a.name)
		return
	}
	if s.head == nil {
		s.head, s.tail = a, a
		s.n++
		return
	}
	for n := s.head; n != nil; n = n.dsNext {
		if a.deadlineMs < n.deadlineMs {
			a.dsNext = n
			a.dsPrev = n.dsPrev
			if n.dsPrev != nil {
				n.dsPrev.dsNext = a
			} else {
				s.head = a
			}
			n.dsPrev = a
			s.n++
			return
		}
	}
	// append at tail: largest deadline so far
	a.dsPrev = s.tail
	s.tail.dsNext = a
	s.tail = a
	s.n++
}

// removeLocked removes a from the set if it is present. It is safe to
// call on an alarm that is not currently in the set (no-op).
func (s *deadlineSet) removeLocked(a *Alarm) {
	if a.dsPrev == nil && a.dsNext == nil && s.head != a {
		return // not linked
	}
	if a.dsPrev != nil {
		a.dsPrev.dsNext = a.dsNext
	} else {
		s.head = a.dsNext
	}
	if a.dsNext != nil {
		a.dsNext.dsPrev = a.dsPrev
	} else {
		s.tail = a.dsPrev
	}
	a.dsPrev, a.dsNext = nil, nil
	s.n--
}
