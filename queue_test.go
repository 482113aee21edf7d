// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import "testing"

func TestQueueEnqueueDequeueFIFO(t *testing.T) {
	q := &Queue{wake: make(chan struct{}, 1)}
	a := &Alarm{name: "a"}
	b := &Alarm{name: "b"}
	q.enqueue(a)
	q.enqueue(b)

	got, ok := q.dequeue()
	if !ok || got != a {
		t.Fatalf("first dequeue = %v, %v; want a, true", got, ok)
	}
	got, ok = q.dequeue()
	if !ok || got != b {
		t.Fatalf("second dequeue = %v, %v; want b, true", got, ok)
	}
	if _, ok := q.dequeue(); ok {
		t.Fatalf("dequeue on empty queue returned ok=true")
	}
}

func TestQueueRemoveAllPurgesDuplicates(t *testing.T) {
	q := &Queue{wake: make(chan struct{}, 1)}
	a := &Alarm{name: "a"}
	b := &Alarm{name: "b"}
	q.enqueue(a)
	q.enqueue(b)
	q.enqueue(a) // simulate a stray duplicate

	q.removeAll(a)

	got, ok := q.dequeue()
	if !ok || got != b {
		t.Fatalf("dequeue = %v, %v; want b, true", got, ok)
	}
	if _, ok := q.dequeue(); ok {
		t.Fatalf("expected queue to contain only b after removeAll(a)")
	}
}
