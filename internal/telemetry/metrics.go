// Package telemetry keeps in-process Prometheus counters for estimator runs.
package telemetry

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Error kinds recorded by ErrorsTotal
const (
	KindInput      = "input"
	KindUnexpected = "unexpected"
)

// MetricsRegistry holds all estimator metrics on a private registry
type MetricsRegistry struct {
	registry *prometheus.Registry

	QuotesTotal     prometheus.Counter
	RejectionsTotal *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
	RiskFactor      prometheus.Histogram
	MarketFactor    prometheus.Histogram
}

// NewMetricsRegistry creates and registers the estimator metrics
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		registry: prometheus.NewRegistry(),

		QuotesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "smartpremium_quotes_total",
				Help: "Total number of premiums estimated",
			},
		),

		RejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartpremium_rejections_total",
				Help: "Applicants not priced, by reason",
			},
			[]string{"reason"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartpremium_errors_total",
				Help: "Rounds ended by an error, by kind",
			},
			[]string{"kind"},
		),

		RiskFactor: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "smartpremium_risk_factor",
				Help:    "Clamped risk factor of priced applicants",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),

		MarketFactor: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "smartpremium_market_factor",
				Help:    "Market variation multiplier applied to quotes",
				Buckets: prometheus.LinearBuckets(0.92, 0.02, 9),
			},
		),
	}

	m.registry.MustRegister(
		m.QuotesTotal,
		m.RejectionsTotal,
		m.ErrorsTotal,
		m.RiskFactor,
		m.MarketFactor,
	)

	return m
}

// Gatherer exposes the private registry
func (m *MetricsRegistry) Gatherer() prometheus.Gatherer {
	return m.registry
}

// RecordQuote counts a priced applicant
func (m *MetricsRegistry) RecordQuote(risk, marketFactor float64) {
	m.QuotesTotal.Inc()
	m.RiskFactor.Observe(risk)
	m.MarketFactor.Observe(marketFactor)
}

// RecordRejection counts an applicant turned away
func (m *MetricsRegistry) RecordRejection(reason string) {
	m.RejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordError counts a round that ended in an error
func (m *MetricsRegistry) RecordError(kind string) {
	m.ErrorsTotal.WithLabelValues(kind).Inc()
}

// Sample is a flattened metric value
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Summary gathers every counter and histogram count, sorted by name
func (m *MetricsRegistry) Summary() ([]Sample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: labelMap(metric.GetLabel())}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				s.Value = metric.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				s.Name += "_count"
				s.Value = float64(metric.GetHistogram().GetSampleCount())
			default:
				continue
			}
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// WriteSummary prints one "name{labels} value" line per sample to w. It
// bypasses the logger so the summary shows at any log level.
func (m *MetricsRegistry) WriteSummary(w io.Writer) error {
	samples, err := m.Summary()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, s := range samples {
		if _, err := fmt.Fprintf(w, "%s%s %g\n", s.Name, formatLabels(s.Labels), s.Value); err != nil {
			return err
		}
	}
	return nil
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func labelMap(pairs []*dto.LabelPair) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.GetName()] = p.GetValue()
	}
	return out
}
