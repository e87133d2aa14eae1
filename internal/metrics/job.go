// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics records the outcome of an update-config run and pushes it
// to a Prometheus Pushgateway. A one-shot command has no scrape window, so
// every collector lives on a private registry that is pushed once per run.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "timecapsule_update_config"

// Outcome labels for runs_total.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// JobReporter owns the run metrics of one invocation.
type JobReporter struct {
	url string
	job string

	registry *prometheus.Registry
	client   push.HTTPDoer

	lastRun           prometheus.Gauge
	lastSuccess       prometheus.Gauge
	duration          prometheus.Gauge
	runsTotal         *prometheus.CounterVec
	latestBuildNumber prometheus.Gauge
	minBuildNumber    prometheus.Gauge
}

// Option customizes a JobReporter.
type Option func(*JobReporter)

// WithHTTPClient replaces the client used for pushes.
func WithHTTPClient(c push.HTTPDoer) Option {
	return func(r *JobReporter) { r.client = c }
}

// NewJobReporter returns a reporter pushing to the Pushgateway at url under job.
func NewJobReporter(url, job string, opts ...Option) *JobReporter {
	reg := prometheus.NewRegistry()
	factory := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
		reg.MustRegister(g)
		return g
	}

	r := &JobReporter{
		url:               url,
		job:               job,
		registry:          reg,
		lastRun:           factory("last_run_timestamp_seconds", "Unix time of the last run, successful or not."),
		lastSuccess:       factory("last_success_timestamp_seconds", "Unix time of the last successful write."),
		duration:          factory("duration_seconds", "Wall time of the last run."),
		latestBuildNumber: factory("latest_build_number", "latestBuildNumber of the last written record."),
		minBuildNumber:    factory("min_build_number", "minBuildNumber of the last written record."),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Runs of this invocation, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(r.runsTotal)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ObserveSuccess records a successful write of the given build numbers.
func (r *JobReporter) ObserveSuccess(at time.Time, took time.Duration, latestBuild, minBuild int64) {
	r.lastRun.Set(float64(at.Unix()))
	r.lastSuccess.Set(float64(at.Unix()))
	r.duration.Set(took.Seconds())
	r.latestBuildNumber.Set(float64(latestBuild))
	r.minBuildNumber.Set(float64(minBuild))
	r.runsTotal.WithLabelValues(OutcomeSuccess).Inc()
}

// ObserveFailure records a failed run.
func (r *JobReporter) ObserveFailure(at time.Time, took time.Duration) {
	r.lastRun.Set(float64(at.Unix()))
	r.duration.Set(took.Seconds())
	r.runsTotal.WithLabelValues(OutcomeFailure).Inc()
}

// Push sends the recorded metrics. A successful run replaces the whole group
// (PUT); a failed run only adds (POST) so the last success timestamp and build
// numbers already in the gateway survive.
func (r *JobReporter) Push(ctx context.Context, success bool) error {
	p := push.New(r.url, r.job)
	if r.client != nil {
		p = p.Client(r.client)
	}

	if success {
		p = p.Gatherer(r.registry)
		if err := p.PushContext(ctx); err != nil {
			return fmt.Errorf("push metrics to %s: %w", r.url, err)
		}
		return nil
	}

	p = p.Collector(r.lastRun).Collector(r.duration).Collector(r.runsTotal)
	if err := p.AddContext(ctx); err != nil {
		return fmt.Errorf("add metrics to %s: %w", r.url, err)
	}
	return nil
}
