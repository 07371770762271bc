package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records counters for the rating and lifecycle paths.
type Metrics struct {
	quoteDuration *prometheus.HistogramVec
	quotesPriced  *prometheus.CounterVec
	quotesMissed  *prometheus.CounterVec
	scansApplied  *prometheus.CounterVec
	scansDropped  prometheus.Counter
	scansRejected *prometheus.CounterVec
}

// New registers the service metrics on the provided registerer. A nil
// registerer yields a no-op instance, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service_level"})
	quotesPriced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_priced_total",
		Help: "Quotes priced successfully.",
	}, []string{"service_level"})
	quotesMissed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_missed_total",
		Help: "Quote requests that found no usable rate.",
	}, []string{"reason"})
	scansApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scans_applied_total",
		Help: "Scan events appended to shipments.",
	}, []string{"status"})
	scansDropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scans_dropped_total",
		Help: "Duplicate scans dropped by the idempotency guard.",
	})
	scansRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scans_rejected_total",
		Help: "Scan submissions rejected before mutation.",
	}, []string{"reason"})
	reg.MustRegister(quoteDuration, quotesPriced, quotesMissed, scansApplied, scansDropped, scansRejected)
	return &Metrics{
		quoteDuration: quoteDuration,
		quotesPriced:  quotesPriced,
		quotesMissed:  quotesMissed,
		scansApplied:  scansApplied,
		scansDropped:  scansDropped,
		scansRejected: scansRejected,
	}
}

// ObserveQuoteDuration records how long a quote computation took.
func (m *Metrics) ObserveQuoteDuration(serviceLevel string, duration time.Duration) {
	if m == nil || m.quoteDuration == nil {
		return
	}
	m.quoteDuration.WithLabelValues(normalizeLabel(serviceLevel)).Observe(duration.Seconds())
}

// IncQuotePriced increments the priced-quote counter.
func (m *Metrics) IncQuotePriced(serviceLevel string) {
	if m == nil || m.quotesPriced == nil {
		return
	}
	m.quotesPriced.WithLabelValues(normalizeLabel(serviceLevel)).Inc()
}

// IncQuoteMissed increments the no-rate counter with the miss reason.
func (m *Metrics) IncQuoteMissed(reason string) {
	if m == nil || m.quotesMissed == nil {
		return
	}
	m.quotesMissed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncScanApplied increments the applied-scan counter for the given status.
func (m *Metrics) IncScanApplied(status string) {
	if m == nil || m.scansApplied == nil {
		return
	}
	m.scansApplied.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncScanDropped increments the idempotency-drop counter.
func (m *Metrics) IncScanDropped() {
	if m == nil || m.scansDropped == nil {
		return
	}
	m.scansDropped.Inc()
}

// IncScanRejected increments the rejected-scan counter with the gate that fired.
func (m *Metrics) IncScanRejected(reason string) {
	if m == nil || m.scansRejected == nil {
		return
	}
	m.scansRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
