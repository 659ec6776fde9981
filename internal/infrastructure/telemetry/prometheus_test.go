package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/erpapp/internal/domain/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubCounter struct {
	counts report.EntityCounts
	err    error
}

func (s stubCounter) EntityCounts(context.Context) (report.EntityCounts, error) {
	return s.counts, s.err
}

func gather(t *testing.T, c prometheus.Collector) map[string][]float64 {
	t.Helper()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)

	out := map[string][]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			key := f.GetName()
			for _, l := range m.GetLabel() {
				key += ":" + l.GetValue()
			}
			out[key] = append(out[key], m.GetGauge().GetValue())
		}
	}
	return out
}

func TestEntityCollector(t *testing.T) {
	c := NewEntityCollector(stubCounter{counts: report.EntityCounts{Users: 2, Leads: 5}}, zaptest.NewLogger(t))
	got := gather(t, c)

	assert.Equal(t, []float64{1}, got["erp_entity_records_up"])
	assert.Equal(t, []float64{2}, got["erp_entity_records:users"])
	assert.Equal(t, []float64{5}, got["erp_entity_records:leads"])
	assert.Equal(t, []float64{0}, got["erp_entity_records:orders"])
}

func TestEntityCollector_Failure(t *testing.T) {
	c := NewEntityCollector(stubCounter{err: errors.New("db down")}, zaptest.NewLogger(t))
	got := gather(t, c)

	assert.Equal(t, []float64{0}, got["erp_entity_records_up"])
	_, ok := got["erp_entity_records:users"]
	assert.False(t, ok)
}

func TestNewPrometheusRegistry(t *testing.T) {
	reg := NewPrometheusRegistry(stubCounter{}, zaptest.NewLogger(t))
	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["erp_entity_records"])
}
