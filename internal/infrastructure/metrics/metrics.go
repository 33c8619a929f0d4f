// Package metrics exposes prometheus counters for the ledger and the
// property status cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StatusCacheHits      prometheus.Counter
	StatusCacheMisses    prometheus.Counter
	StatusCacheErrors    prometheus.Counter
	RankConflicts        prometheus.Counter
	ClosedDossierRejects *prometheus.CounterVec
	LedgerOperations     *prometheus.CounterVec
}

// New registers the counters on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StatusCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "geofoncier_property_status_cache_hits_total",
			Help: "Property status lookups served from cache",
		}),
		StatusCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "geofoncier_property_status_cache_misses_total",
			Help: "Property status lookups recomputed from claims",
		}),
		StatusCacheErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "geofoncier_property_status_cache_errors_total",
			Help: "Property status cache reads, writes or invalidations that failed",
		}),
		RankConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "geofoncier_claim_rank_conflicts_total",
			Help: "Claim writes that lost a rank race",
		}),
		ClosedDossierRejects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "geofoncier_closed_dossier_rejections_total",
			Help: "Mutations rejected because the dossier is closed",
		}, []string{"operation"}),
		LedgerOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "geofoncier_ledger_operations_total",
			Help: "Ledger operations by outcome",
		}, []string{"operation", "outcome"}),
	}
}

// Nil-safe helpers so components can run without metrics.

func (m *Metrics) CacheHit() {
	if m != nil {
		m.StatusCacheHits.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.StatusCacheMisses.Inc()
	}
}

func (m *Metrics) CacheError() {
	if m != nil {
		m.StatusCacheErrors.Inc()
	}
}

func (m *Metrics) RankConflict() {
	if m != nil {
		m.RankConflicts.Inc()
	}
}

func (m *Metrics) ClosedDossierReject(operation string) {
	if m != nil {
		m.ClosedDossierRejects.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) LedgerOperation(operation, outcome string) {
	if m != nil {
		m.LedgerOperations.WithLabelValues(operation, outcome).Inc()
	}
}
