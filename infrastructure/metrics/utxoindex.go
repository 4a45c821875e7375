package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	utxoIndexUpdateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "utxoindex",
		Name:      "update_total",
		Help:      "Count of UTXO diffs applied to the UTXO index.",
	}, []string{"status"})

	utxoIndexUpdateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "utxoindex",
		Name:      "update_duration_seconds",
		Help:      "Duration of applying a UTXO diff to the UTXO index.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	utxoIndexUpdateSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "utxoindex",
		Name:      "update_size",
		Help:      "Number of added and removed UTXO entries per applied diff.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
	})

	utxoIndexResyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "utxoindex",
		Name:      "resync_total",
		Help:      "Count of full UTXO index rebuilds.",
	}, []string{"status"})

	utxoIndexResyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "utxoindex",
		Name:      "resync_duration_seconds",
		Help:      "Duration of a full UTXO index rebuild.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 12),
	}, []string{"status"})

	utxoIndexCirculatingSupply = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "utxoindex",
		Name:      "circulating_supply_sompi",
		Help:      "Circulating supply tracked by the UTXO index.",
	})
)

// UTXOIndex tracks metrics for the UTXO index.
type UTXOIndex struct{}

// NewUTXOIndex constructs a UTXOIndex metrics recorder.
func NewUTXOIndex() UTXOIndex {
	return UTXOIndex{}
}

// ObserveUpdate records the outcome, duration and size of a diff application.
func (UTXOIndex) ObserveUpdate(err error, entries int, started time.Time) {
	status := statusLabel(err)
	utxoIndexUpdateTotal.WithLabelValues(status).Inc()
	utxoIndexUpdateDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		utxoIndexUpdateSize.Observe(float64(entries))
	}
}

// ObserveResync records the outcome and duration of a full rebuild.
func (UTXOIndex) ObserveResync(err error, started time.Time) {
	status := statusLabel(err)
	utxoIndexResyncTotal.WithLabelValues(status).Inc()
	utxoIndexResyncDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// SetCirculatingSupply records the circulating supply.
func (UTXOIndex) SetCirculatingSupply(supply uint64) {
	utxoIndexCirculatingSupply.Set(float64(supply))
}
