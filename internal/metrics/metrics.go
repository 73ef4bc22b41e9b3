package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// eventsProcessed counts events that passed the exclusion filter and were
	// rendered to the log sink.
	// Labels:
	// - stream: "user" or "admin"
	eventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "events",
			Name:      "processed_total",
			Help:      "Number of events rendered to the log sink",
		},
		[]string{"stream"},
	)

	// eventsSuppressed counts events dropped by the exclusion filter.
	// Labels:
	// - stream: "user" or "admin"
	eventsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "events",
			Name:      "suppressed_total",
			Help:      "Number of events dropped by the exclusion filter",
		},
		[]string{"stream"},
	)

	// registrationsDisabled counts new accounts disabled by the registration
	// reaction.
	registrationsDisabled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "registration",
			Name:      "accounts_disabled_total",
			Help:      "Number of newly registered accounts disabled pending operator approval",
		},
	)

	// registrationLookupMisses counts registration events whose realm or
	// account could not be resolved.
	// Labels:
	// - subject: "realm" or "account"
	registrationLookupMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "registration",
			Name:      "lookup_misses_total",
			Help:      "Number of registration reactions aborted on a failed realm or account lookup",
		},
		[]string{"subject"},
	)

	// notificationFailures counts operator notifications lost to mail
	// transport failures.
	notificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "notify",
			Name:      "failures_total",
			Help:      "Number of operator notifications that failed to send",
		},
	)

	// rateLimitExceeded counts HTTP 429 events from the rate limit middleware.
	// Labels:
	// - endpoint: short name like "ingest:user", "ingest:admin"
	// - source:   "realm" or "ip"
	rateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sentinel",
			Subsystem: "http",
			Name:      "rate_limit_exceeded_total",
			Help:      "Number of requests rejected due to rate limiting (HTTP 429)",
		},
		[]string{"endpoint", "source"},
	)
)

// IncEventProcessed increments the processed counter for the given stream.
func IncEventProcessed(stream string) {
	if stream == "" {
		stream = "unknown"
	}
	eventsProcessed.WithLabelValues(stream).Inc()
}

// IncEventSuppressed increments the suppressed counter for the given stream.
func IncEventSuppressed(stream string) {
	if stream == "" {
		stream = "unknown"
	}
	eventsSuppressed.WithLabelValues(stream).Inc()
}

// IncRegistrationDisabled increments the disabled-accounts counter.
func IncRegistrationDisabled() {
	registrationsDisabled.Inc()
}

// IncRegistrationLookupMiss increments the lookup-miss counter for the given subject.
func IncRegistrationLookupMiss(subject string) {
	if subject == "" {
		subject = "unknown"
	}
	registrationLookupMisses.WithLabelValues(subject).Inc()
}

// IncNotificationFailure increments the lost-notification counter.
func IncNotificationFailure() {
	notificationFailures.Inc()
}

// IncRateLimitExceeded increments the 429 counter for the given endpoint and source.
func IncRateLimitExceeded(endpoint, source string) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	if source == "" {
		source = "unknown"
	}
	rateLimitExceeded.WithLabelValues(endpoint, source).Inc()
}
