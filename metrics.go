// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import "github.com/prometheus/client_golang/prometheus"

// metricsSink wires Stats updates into internal-only Prometheus
// collectors (spec §12's supplemented observability). It is never served
// over HTTP by this package — the registry is the caller's to expose (or
// not), keeping faith with spec's Non-goal on remote timer-state
// visibility while still using the ecosystem's standard instrumentation
// library.
type metricsSink struct {
	scheduled   prometheus.Counter
	cancelled   prometheus.Counter
	rescheduled prometheus.Counter
	fired       prometheus.Counter
	callbackMs  prometheus.Histogram
	overdueMs   prometheus.Histogram
	prematureMs prometheus.Histogram
}

func newMetricsSink(reg *prometheus.Registry) (*metricsSink, error) {
	m := &metricsSink{
		scheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alarm", Name: "scheduled_total",
			Help: "Alarms armed via Set/SetOnQueue.",
		}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alarm", Name: "cancelled_total",
			Help: "Alarms removed via Cancel.",
		}),
		rescheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alarm", Name: "rescheduled_total",
			Help: "Periodic alarms re-armed for their next instance.",
		}),
		fired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alarm", Name: "fired_total",
			Help: "Callbacks actually invoked.",
		}),
		callbackMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "alarm", Name: "callback_duration_ms",
			Help:    "Wall-clock time spent inside alarm callbacks.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		overdueMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "alarm", Name: "overdue_ms",
			Help:    "How late a callback started relative to its deadline.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		prematureMs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "alarm", Name: "premature_ms",
			Help:    "How early a callback started relative to its deadline (should be ~0).",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
	}
	collectors := []prometheus.Collector{
		m.scheduled, m.cancelled, m.rescheduled, m.fired,
		m.callbackMs, m.overdueMs, m.prematureMs,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metricsSink) observeScheduled() {
	if m == nil {
		return
	}
	m.scheduled.Inc()
}

func (m *metricsSink) observeCancelled() {
	if m == nil {
		return
	}
	m.cancelled.Inc()
}

func (m *metricsSink) observeRescheduled() {
	if m == nil {
		return
	}
	m.rescheduled.Inc()
}

func (m *metricsSink) observeFired(callbackMs, deadlineMs, t0 int64) {
	if m == nil {
		return
	}
	m.fired.Inc()
	m.callbackMs.Observe(float64(callbackMs))
	if t0 >= deadlineMs {
		m.overdueMs.Observe(float64(t0 - deadlineMs))
	} else {
		m.prematureMs.Observe(float64(deadlineMs - t0))
	}
}
