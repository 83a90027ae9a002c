// Package metrics exposes Prometheus collectors for the quotes caches.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotes-client/internal/domain"
)

const namespace = "quotes_client"

// CacheMetrics counts store refresh attempts per cache and outcome and
// records when each cache was last replaced. It implements ports.RefreshObserver.
type CacheMetrics struct {
	refreshes   *prometheus.CounterVec
	lastSuccess *prometheus.GaugeVec
	now         func() time.Time
}

// NewCacheMetrics creates the collectors and registers them with reg.
// Collectors already registered by an earlier call are reused.
func NewCacheMetrics(reg prometheus.Registerer) (*CacheMetrics, error) {
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "refresh_total",
		Help:      "Cache refresh attempts by cache and outcome.",
	}, []string{"cache", "outcome"})

	lastSuccess := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last refresh that replaced the cache.",
	}, []string{"cache"})

	var err error

	if refreshes, err = register(reg, refreshes); err != nil {
		return nil, err
	}

	if lastSuccess, err = register(reg, lastSuccess); err != nil {
		return nil, err
	}

	return &CacheMetrics{
		refreshes:   refreshes,
		lastSuccess: lastSuccess,
		now:         time.Now,
	}, nil
}

// RefreshCompleted records one refresh attempt.
func (m *CacheMetrics) RefreshCompleted(cache string, kind domain.FailureKind) {
	outcome := string(kind)
	if kind == domain.FailureNone {
		outcome = "updated"
		m.lastSuccess.WithLabelValues(cache).Set(float64(m.now().Unix()))
	}

	m.refreshes.WithLabelValues(cache, outcome).Inc()
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("registering cache metrics: %w", err)
}
