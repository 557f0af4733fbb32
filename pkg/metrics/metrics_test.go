package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewWithRegisterer("pitch-booking", prometheus.NewRegistry())

	m.IncReservationCreated("direct")
	m.IncReservationCreated("direct")
	m.IncReservationCreated("payment")
	m.IncTransition("validated")
	m.IncPaymentCallback("duplicate")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsCreated.WithLabelValues("pitch-booking", "direct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationsCreated.WithLabelValues("pitch-booking", "payment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationTransitions.WithLabelValues("pitch-booking", "validated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentCallbacks.WithLabelValues("pitch-booking", "duplicate")))
}

func TestMetrics_DBQueryErrors(t *testing.T) {
	m := NewWithRegisterer("svc", prometheus.NewRegistry())

	m.ObserveDBQuery("query", time.Millisecond, nil)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 0.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("svc", "query")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("svc", "exec")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncReservationCreated("direct")
		m.IncTransition("refused")
		m.IncPaymentCallback("failed")
		m.ObserveHTTPRequest("GET", "/x", 200, time.Second)
		m.ObserveDBQuery("query", time.Second, nil)
		m.SetPoolStats(1, 1, 0, 0)
	})
	assert.Empty(t, m.ServiceName())
}
