// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// callbackGuard is the Go realization of the per-alarm callback_lock
// (spec §4.7/C7, §5): a barrier, not a mutex for mutual exclusion of
// state. The only thing it protects is the "a callback for this alarm
// is in progress" bit.
//
// A pthread recursive mutex solves the "cancel from within my own
// callback" case by comparing the lock's owner thread id against
// pthread_self(). Go has no public goroutine-id API, but the same
// ownership check translates directly using a lightweight probe of the
// running goroutine's id (goroutineID, below) — this is the most direct
// translation of the original's documented reentrant-mutex semantics
// (see SPEC_FULL.md §13 Q1).
type callbackGuard struct {
	mu      sync.Mutex
	running bool
	ownerID uint64
	done    chan struct{}
}

// enter marks a callback run as starting. Must be called by the
// processing-queue worker right before invoking the user callback.
func (g *callbackGuard) enter() {
	g.mu.Lock()
	g.running = true
	g.ownerID = goroutineID()
	g.done = make(chan struct{})
	g.mu.Unlock()
}

// exit marks a callback run as finished and releases anyone blocked in
// barrier().
func (g *callbackGuard) exit() {
	g.mu.Lock()
	done := g.done
	g.running = false
	g.done = nil
	g.mu.Unlock()
	close(done)
}

// barrier blocks the caller until no callback is in progress for this
// alarm. If the caller is running on the same goroutine as the
// in-progress callback (i.e. the callback is cancelling its own alarm),
// it returns immediately instead of deadlocking — the re-entrant case
// spec §5 requires.
func (g *callbackGuard) barrier() {
	for {
		g.mu.Lock()
		if !g.running {
			g.mu.Unlock()
			return
		}
		if g.ownerID == goroutineID() {
			g.mu.Unlock()
			return
		}
		done := g.done
		g.mu.Unlock()
		<-done
	}
}

// goroutineID extracts the calling goroutine's runtime id from its own
// stack trace header ("goroutine 123 [running]: ..."). It is used only
// for the callback-guard ownership check above; nothing else in this
// package depends on goroutine identity.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
