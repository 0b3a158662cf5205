package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCounter_Inc(t *testing.T) {
	counters := NewTestCounters()

	counters.PermissionChecks.Inc("granted")
	counters.PermissionChecks.Inc("granted")
	counters.PermissionChecks.Inc("denied")

	pc := counters.PermissionChecks.(*PrometheusCounter)
	assert.Equal(t, 2.0, testutil.ToFloat64(pc.counter.WithLabelValues("granted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.counter.WithLabelValues("denied")))
}

func TestNewTestCounters_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTestCounters()
		NewTestCounters()
	})
}
