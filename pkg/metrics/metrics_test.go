package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BookingCounters(t *testing.T) {
	m := NewWithRegistry("bookit-test", prometheus.NewRegistry())

	m.BookingCreated(3)
	m.BookingCreated(2)
	m.BookingRejected("sold_out")
	m.BookingCancelled(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.SpotsReserved))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsRejected.WithLabelValues("sold_out")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCancelled))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SpotsReleased))
}

func TestMetrics_DBAndPool(t *testing.T) {
	m := NewWithRegistry("bookit-test", prometheus.NewRegistry())

	m.ObserveDB("exec", 5*time.Millisecond, nil)
	m.ObserveDB("exec", 5*time.Millisecond, errors.New("boom"))
	m.ObservePool(sql.DBStats{OpenConnections: 4, InUse: 1, Idle: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.DBOpenConnections))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DBIdleConnections))
}

func TestMetrics_HTTPAndCache(t *testing.T) {
	m := NewWithRegistry("bookit-test", prometheus.NewRegistry())

	m.ObserveHTTP("GET", "/api/experiences", 200, time.Millisecond)
	m.CacheHit("experiences")
	m.CacheMiss("experiences")
	m.CacheMiss("experiences")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/experiences", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("experiences", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("experiences", "miss")))
}
