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

func TestCallbackGuardBarrierWaitsForExit(t *testing.T) {
	var g callbackGuard
	g.enter()

	done := make(chan struct{})
	go func() {
		g.barrier()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("barrier() returned before exit() was called")
	case <-time.After(20 * time.Millisecond):
	}

	g.exit()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("barrier() did not return after exit()")
	}
}

func TestCallbackGuardBarrierNoopWhenNotRunning(t *testing.T) {
	var g callbackGuard
	done := make(chan struct{})
	go func() {
		g.barrier()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("barrier() blocked with no callback running")
	}
}

func TestCallbackGuardBarrierReentrant(t *testing.T) {
	var g callbackGuard
	g.enter() // from this goroutine, simulating being inside one's own callback

	done := make(chan struct{})
	go func() {
		g.barrier() // called from a *different* goroutine: must still block
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("barrier() from a different goroutine returned before exit()")
	case <-time.After(20 * time.Millisecond):
	}

	// calling barrier() from the owning goroutine itself must return
	// immediately, never deadlock against its own exit().
	g.barrier()

	g.exit()
	<-done
}
