package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values
const (
	CacheCatalog    = "catalog"
	CacheClassifier = "classifier"

	EventHit      = "hit"
	EventMiss     = "miss"
	EventEvict    = "evict"
	EventPurge    = "purge"
	ResultSuccess = "success"
	ResultFailure = "failure"

	UpdateAccepted    = "accepted"
	UpdateIgnored     = "ignored"
	UpdateInvalid     = "invalid"
	UpdateRateLimited = "rate_limited"
	UpdateDropped     = "dropped"
	UpdateRejected    = "rejected"
)

var (
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastalink_messages_total",
			Help: "Responses produced, by response kind",
		},
		[]string{"kind"},
	)

	ClassifierRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastalink_classifier_requests_total",
			Help: "Classification requests, by outcome",
		},
		[]string{"outcome"},
	)

	ClassifierAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pastalink_classifier_attempts_total",
			Help: "Remote classifier calls including retries",
		},
	)

	ClassifierDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pastalink_classifier_duration_seconds",
			Help:    "Time spent classifying one message, retries included",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	CacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastalink_cache_events_total",
			Help: "Cache hits, misses, evictions and purges",
		},
		[]string{"cache", "event"},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastalink_catalog_reloads_total",
			Help: "Catalog reload attempts, by result",
		},
		[]string{"result"},
	)

	SessionsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pastalink_sessions_pending",
			Help: "Sessions waiting for a region answer",
		},
	)

	WebhookUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastalink_webhook_updates_total",
			Help: "Telegram webhook updates, by handling status",
		},
		[]string{"status"},
	)
)
