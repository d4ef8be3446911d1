package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveTick(3*time.Millisecond, 4, 5)
	m.ObserveTick(time.Millisecond, 2, 5)
	m.LeashDetached(true)
	m.LeashDetached(true)
	m.LeashDetached(false)
	m.BlocksInvalidated(7)
	m.BlocksInvalidated(0)
	m.LivingSound("cow")

	assert.Equal(t, 6.0, testutil.ToFloat64(m.mobsTicked))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.mobsAlive))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.leashDetaches.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.leashDetaches.WithLabelValues("false")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.blockInvalidations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.livingSounds.WithLabelValues("cow")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTick(time.Millisecond, 1, 1)
		m.LeashDetached(true)
		m.BlocksInvalidated(3)
		m.LivingSound("pig")
	})
}

func TestProcessSampler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	s, err := NewProcessSampler(m, 0)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.interval)

	rss, _, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Greater(t, rss, uint64(0))
	assert.Equal(t, float64(rss), testutil.ToFloat64(m.processRSS))
}
