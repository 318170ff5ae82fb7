package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPrometheusObserver(reg)
	require.NoError(t, err)

	o.RecordInference("likert")
	o.RecordInference("likert")
	o.RecordInference("text")
	o.RecordGeneration(120*time.Millisecond, OutcomeOK)
	o.RecordGeneration(0, OutcomeCached)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.profiles.WithLabelValues("likert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.profiles.WithLabelValues("text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.generatorRequests.WithLabelValues(OutcomeCached)))
	assert.Equal(t, 1, testutil.CollectAndCount(o.generatorDuration))
}

func TestPrometheusObserverReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusObserver(reg)
	require.NoError(t, err)
	second, err := NewPrometheusObserver(reg)
	require.NoError(t, err)

	second.RecordInference("text")
	assert.Equal(t, 1.0, testutil.ToFloat64(first.profiles.WithLabelValues("text")))
}

func TestNilObserverIsSafe(t *testing.T) {
	var o *PrometheusObserver
	o.RecordInference("text")
	o.RecordGeneration(time.Second, OutcomeError)
	Nop().RecordInference("text")
}
