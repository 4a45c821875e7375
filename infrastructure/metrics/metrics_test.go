package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestUTXOIndexRecords(t *testing.T) {
	m := NewUTXOIndex()
	start := time.Now().Add(-time.Second)

	if inc := delta(t, utxoIndexUpdateTotal.WithLabelValues("success"), func() {
		m.ObserveUpdate(nil, 3, start)
	}); inc != 1 {
		t.Fatalf("expected update success counter increment, got %v", inc)
	}

	if inc := delta(t, utxoIndexUpdateTotal.WithLabelValues("error"), func() {
		m.ObserveUpdate(errors.New("boom"), 0, start)
	}); inc != 1 {
		t.Fatalf("expected update error counter increment, got %v", inc)
	}

	if inc := delta(t, utxoIndexResyncTotal.WithLabelValues("success"), func() {
		m.ObserveResync(nil, start)
	}); inc != 1 {
		t.Fatalf("expected resync counter increment, got %v", inc)
	}

	m.SetCirculatingSupply(1234)
	if supply := testutil.ToFloat64(utxoIndexCirculatingSupply); supply != 1234 {
		t.Fatalf("expected circulating supply 1234, got %v", supply)
	}
}

func TestIndexProcessorRecords(t *testing.T) {
	m := NewIndexProcessor()

	if inc := delta(t, indexProcessorEventsTotal.WithLabelValues("utxos_changed", "error"), func() {
		m.ObserveEvent("utxos_changed", errors.New("fail"))
	}); inc != 1 {
		t.Fatalf("expected event error counter increment, got %v", inc)
	}

	if inc := delta(t, indexProcessorNotifyErrorsTotal, m.ObserveNotifyError); inc != 1 {
		t.Fatalf("expected notify error counter increment, got %v", inc)
	}
}
