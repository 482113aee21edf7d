// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Scheduler is C9: the top-level owner of the monitor (M), the deadline
// set (C2), the expiration timer (C3) and the default processing queue.
// Unlike alarm.c's single process-wide instance reached via module-level
// init/cleanup, Scheduler is an ordinary Go value — New/Close are
// explicit constructor/destructor calls, and Default provides a
// lazily-initialized package-level singleton for callers that want
// alarm.c's original global-instance convenience (Open Question Q2).
type Scheduler struct {
	id uuid.UUID

	mu  sync.Mutex // the monitor (M)
	set deadlineSet

	clk   clock
	sig   *expirationSignal
	timer *expirationTimer

	liveAlarms map[*Alarm]struct{}

	defaultQueue  *Queue
	defaultWorker *Worker

	highPriority bool
	metrics      *metricsSink

	closed bool
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Option configures a Scheduler at construction time.
type Option func(*options)

type options struct {
	wakeAlarm    WakeAlarmScheduler
	wakeLock     WakeLocker
	thresholdMs  int64
	registry     *prometheus.Registry
	highPriority bool
	clk          clock
}

// WithWakeAlarmScheduler supplies the host callout used for deadlines
// farther out than the wake-lock threshold (spec §6).
func WithWakeAlarmScheduler(w WakeAlarmScheduler) Option {
	return func(o *options) { o.wakeAlarm = w }
}

// WithWakeLocker supplies the host callout used to keep the system awake
// while a near-term deadline is pending (spec §6).
func WithWakeLocker(w WakeLocker) Option {
	return func(o *options) { o.wakeLock = w }
}

// WithWakelockThreshold overrides the default 3000ms boundary (spec §6
// Tunables, TIMER_INTERVAL_FOR_WAKELOCK_IN_MS) between the wake-lock and
// wake-alarm arming paths.
func WithWakelockThreshold(ms int64) Option {
	return func(o *options) { o.thresholdMs = ms }
}

// WithMetricsRegistry enables internal-only Prometheus instrumentation
// (spec §12), registered against r. The scheduler never serves these
// metrics over HTTP itself — that would conflict with spec's Non-goal of
// exposing timer state to remote observers; it is the caller's decision
// whether and how to expose r.
func WithMetricsRegistry(r *prometheus.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithHighPriorityHint requests that the dispatcher goroutine run
// latency-sensitive (spec §6's priority hint, SPEC_FULL.md §12,
// mirroring alarm.c's CALLBACK_THREAD_PRIORITY_HIGH). When enabled, the
// dispatcher goroutine pins itself to its OS thread via
// runtime.LockOSThread and best-effort raises that thread's scheduling
// priority (priority_linux.go on Linux; a no-op elsewhere, since there is
// no portable equivalent). A failure to raise priority is logged and
// otherwise ignored — this is a latency hint, not a correctness
// requirement.
func WithHighPriorityHint(enabled bool) Option {
	return func(o *options) { o.highPriority = enabled }
}

func withClock(c clock) Option {
	return func(o *options) { o.clk = c }
}

// New constructs and starts a Scheduler: the dispatcher goroutine and the
// default processing queue's worker are both running by the time New
// returns (spec §4.9's init does not defer worker startup).
func New(opts ...Option) (*Scheduler, error) {
	o := options{thresholdMs: defaultWakelockThresholdMs}
	for _, opt := range opts {
		opt(&o)
	}

	clk := o.clk
	if clk == nil {
		clk = newBootClock()
	}

	s := &Scheduler{
		id:           uuid.New(),
		clk:          clk,
		sig:          newExpirationSignal(),
		liveAlarms:   make(map[*Alarm]struct{}),
		stopCh:       make(chan struct{}),
		highPriority: o.highPriority,
	}
	s.timer = newExpirationTimer(clk, s.sig, o.wakeAlarm, o.wakeLock, o.thresholdMs)

	if o.registry != nil {
		m, err := newMetricsSink(o.registry)
		if err != nil {
			return nil, err
		}
		s.metrics = m
	}

	s.defaultQueue = s.NewQueue("default")
	s.defaultWorker = NewWorker("default")
	s.RegisterProcessingQueue(s.defaultQueue, s.defaultWorker)

	s.wg.Add(1)
	go s.dispatchLoop()

	return s, nil
}

var (
	defaultOnce sync.Once
	defaultSchd *Scheduler
	defaultErr  error
)

// Default returns a lazily-constructed, process-wide Scheduler with no
// host callouts configured — the closest analogue to alarm.c's original
// single global instance (Open Question Q2). Most applications should
// prefer an explicit New so they control its lifetime and options.
func Default() (*Scheduler, error) {
	defaultOnce.Do(func() {
		defaultSchd, defaultErr = New()
	})
	return defaultSchd, defaultErr
}

// Close tears down the scheduler (spec §4.9): the dispatcher and the
// default queue's worker are stopped, and the expiration timer is
// disarmed. Workers bound via RegisterProcessingQueue are not stopped;
// they keep running until UnregisterProcessingQueue or Worker.Close. Already-scheduled alarms are left untouched in memory (their
// owners are responsible for dropping references) but will never fire.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.timer.disarmLocked()
	s.mu.Unlock()

	close(s.stopCh)
	s.sig.post() // in case the dispatcher is blocked waiting, not on stopCh
	s.wg.Wait()

	if s.defaultWorker != nil {
		s.defaultWorker.Close()
	}
	return nil
}
