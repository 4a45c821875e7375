package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexProcessorEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexprocessor",
		Name:      "events_total",
		Help:      "Count of consensus events handled by the index processor.",
	}, []string{"kind", "status"})

	indexProcessorNotifyErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexprocessor",
		Name:      "notify_errors_total",
		Help:      "Count of index notifications the notifier failed to deliver.",
	})
)

// IndexProcessor tracks metrics for the index processor.
type IndexProcessor struct{}

// NewIndexProcessor constructs an IndexProcessor metrics recorder.
func NewIndexProcessor() IndexProcessor {
	return IndexProcessor{}
}

// ObserveEvent records the outcome of handling a consensus event of the given kind.
func (IndexProcessor) ObserveEvent(kind string, err error) {
	indexProcessorEventsTotal.WithLabelValues(kind, statusLabel(err)).Inc()
}

// ObserveNotifyError records a failed notification delivery.
func (IndexProcessor) ObserveNotifyError() {
	indexProcessorNotifyErrorsTotal.Inc()
}
