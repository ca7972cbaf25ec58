package foryou

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	feedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foryou_feed_requests_total",
			Help: "Feed requests served, by outcome.",
		},
		[]string{"feed", "outcome"},
	)

	fallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foryou_candidate_fallback_total",
			Help: "Requests where the strict candidate pool was empty and the relaxed predicate was used.",
		},
	)

	emptyProfileTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foryou_empty_profile_total",
			Help: "Requests ranked without any interest signal.",
		},
	)

	profileCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foryou_profile_cache_requests_total",
			Help: "Interest profile cache lookups, by result.",
		},
		[]string{"result"},
	)

	feedDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foryou_feed_duration_seconds",
			Help:    "End-to-end feed pipeline latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feed"},
	)
)
