package telemetry

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry_Record(t *testing.T) {
	m := NewMetricsRegistry()

	m.RecordQuote(0.3, 1.01)
	m.RecordQuote(1.0, 0.95)
	m.RecordRejection("under_age")
	m.RecordError(KindInput)
	m.RecordError(KindInput)
	m.RecordError(KindUnexpected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuotesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RejectionsTotal.WithLabelValues("under_age")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues(KindInput)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues(KindUnexpected)))
}

func TestMetricsRegistry_Summary(t *testing.T) {
	m := NewMetricsRegistry()
	m.RecordQuote(0.5, 1.0)
	m.RecordRejection("negative_claims")

	samples, err := m.Summary()
	require.NoError(t, err)

	byName := make(map[string]Sample)
	for _, s := range samples {
		byName[s.Name] = s
	}

	assert.Equal(t, 1.0, byName["smartpremium_quotes_total"].Value)
	assert.Equal(t, 1.0, byName["smartpremium_risk_factor_count"].Value)
	assert.Equal(t, 1.0, byName["smartpremium_market_factor_count"].Value)

	rej := byName["smartpremium_rejections_total"]
	assert.Equal(t, 1.0, rej.Value)
	assert.Equal(t, "negative_claims", rej.Labels["reason"])

	for i := 1; i < len(samples); i++ {
		assert.LessOrEqual(t, samples[i-1].Name, samples[i].Name)
	}
}

func TestMetricsRegistry_IndependentRegistries(t *testing.T) {
	a, b := NewMetricsRegistry(), NewMetricsRegistry()
	a.RecordQuote(0.1, 1.0)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.QuotesTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.QuotesTotal))
}

func TestMetricsRegistry_WriteSummary(t *testing.T) {
	m := NewMetricsRegistry()
	m.RecordQuote(0.5, 1.0)
	m.RecordRejection("under_age")

	var buf bytes.Buffer
	require.NoError(t, m.WriteSummary(&buf))

	out := buf.String()
	assert.Contains(t, out, "smartpremium_quotes_total 1\n")
	assert.Contains(t, out, `smartpremium_rejections_total{reason="under_age"} 1`+"\n")
	assert.Contains(t, out, "smartpremium_risk_factor_count 1\n")

	var empty bytes.Buffer
	require.NoError(t, NewMetricsRegistry().WriteSummary(&empty))
	assert.Contains(t, empty.String(), "smartpremium_quotes_total 0\n")
}
