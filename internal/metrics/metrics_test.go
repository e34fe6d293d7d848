package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe("create_patient", nil, 5*time.Millisecond)
	m.Observe("create_patient", errors.New("boom"), time.Millisecond)
	m.Observe("create_patient", nil, time.Millisecond)

	if got := testutil.ToFloat64(m.operations.WithLabelValues("create_patient", "ok")); got != 2 {
		t.Fatalf("ok count = %v", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("create_patient", "error")); got != 1 {
		t.Fatalf("error count = %v", got)
	}
}

func TestDocumentGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SetDocuments("patients", 7)
	if got := testutil.ToFloat64(m.documents.WithLabelValues("patients")); got != 7 {
		t.Fatalf("gauge = %v", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.Observe("noop", nil, 0)
	m.SetDocuments("patients", 1)
}
