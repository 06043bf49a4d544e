// Package metrics exposes Prometheus counters for catalog, ledger and
// identity activity.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "internhub"

// Collector holds the application counters. A nil *Collector is valid and
// records nothing.
type Collector struct {
	logins               *prometheus.CounterVec
	internshipsPosted    prometheus.Counter
	applicationsCreated  prometheus.Counter
	applicationsReviewed *prometheus.CounterVec
	failures             *prometheus.CounterVec

	registerOnce sync.Once
}

// NewCollector creates a Collector registered with registry.
func NewCollector(registry prometheus.Registerer) *Collector {
	c := &Collector{}
	c.Register(registry)
	return c
}

// Register registers the counters with the given registry. It is a no-op
// for a nil registry and idempotent afterwards.
func (c *Collector) Register(registry prometheus.Registerer) {
	if c == nil || registry == nil {
		return
	}

	c.registerOnce.Do(func() {
		factory := promauto.With(registry)

		c.logins = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of successful logins by role",
		}, []string{"role"})

		c.internshipsPosted = factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "internships_posted_total",
			Help:      "Total number of internships posted",
		})

		c.applicationsCreated = factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_submitted_total",
			Help:      "Total number of applications submitted",
		})

		c.applicationsReviewed = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_reviewed_total",
			Help:      "Total number of applications reviewed by decision",
		}, []string{"decision"})

		c.failures = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Total number of refused or failed operations",
		}, []string{"operation", "reason"})
	})
}

// IncLogin counts a successful login.
func (c *Collector) IncLogin(role string) {
	if c == nil || c.logins == nil {
		return
	}
	c.logins.WithLabelValues(role).Inc()
}

// IncInternshipPosted counts a posted internship.
func (c *Collector) IncInternshipPosted() {
	if c == nil || c.internshipsPosted == nil {
		return
	}
	c.internshipsPosted.Inc()
}

// IncApplicationSubmitted counts a new application.
func (c *Collector) IncApplicationSubmitted() {
	if c == nil || c.applicationsCreated == nil {
		return
	}
	c.applicationsCreated.Inc()
}

// IncApplicationReviewed counts a review by its decision.
func (c *Collector) IncApplicationReviewed(decision string) {
	if c == nil || c.applicationsReviewed == nil {
		return
	}
	c.applicationsReviewed.WithLabelValues(decision).Inc()
}

// IncFailure counts a refused operation.
func (c *Collector) IncFailure(operation, reason string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(operation, reason).Inc()
}
