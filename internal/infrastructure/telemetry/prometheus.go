package telemetry

import (
	"context"
	"sort"
	"time"

	"github.com/erp/erpapp/internal/domain/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// EntityCounter supplies per-table row counts
type EntityCounter interface {
	EntityCounts(ctx context.Context) (report.EntityCounts, error)
}

// EntityCollector exposes erp_entity_records{entity} gauges computed at
// scrape time.
type EntityCollector struct {
	counter EntityCounter
	timeout time.Duration
	logger  *zap.Logger

	records *prometheus.Desc
	up      *prometheus.Desc
}

// NewEntityCollector creates a collector reading counts from counter
func NewEntityCollector(counter EntityCounter, logger *zap.Logger) *EntityCollector {
	return &EntityCollector{
		counter: counter,
		timeout: 5 * time.Second,
		logger:  logger,
		records: prometheus.NewDesc(
			"erp_entity_records",
			"Number of stored records per entity.",
			[]string{"entity"}, nil,
		),
		up: prometheus.NewDesc(
			"erp_entity_records_up",
			"Whether the last entity count query succeeded.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *EntityCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.records
	ch <- c.up
}

// Collect implements prometheus.Collector
func (c *EntityCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	counts, err := c.counter.EntityCounts(ctx)
	if err != nil {
		c.logger.Warn("Entity count scrape failed", zap.Error(err))
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1)

	labeled := counts.Labeled()
	names := make([]string, 0, len(labeled))
	for name := range labeled {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(labeled[name]), name)
	}
}

// NewPrometheusRegistry builds the scrape registry with Go runtime, process
// and entity collectors
func NewPrometheusRegistry(counter EntityCounter, logger *zap.Logger) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		NewEntityCollector(counter, logger),
	)
	return reg
}
