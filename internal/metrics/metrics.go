// Package metrics records what a CLI run did: RPC round trips, pairs and orders
// seen, transactions simulated and sent, and command latency.
//
// Commands write to the Metrics interface; the root command flushes it once the
// command returns. Collection fans out to the enabled sinks, LogMetrics reports
// through slog and NoopMetrics discards.
package metrics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Metrics defines the interface for collecting command metrics.
type Metrics interface {
	// IncrementCounter increments a counter metric by the specified value.
	IncrementCounter(ctx context.Context, name string, value uint64) error

	// UpdateGauge sets a gauge metric to the specified value.
	UpdateGauge(ctx context.Context, name string, value float64) error

	// RecordHistogram records a value in a histogram metric.
	RecordHistogram(ctx context.Context, name string, value float64) error

	// Flush reports everything recorded so far.
	Flush(ctx context.Context) error
}

// Collection fans calls out to several Metrics implementations.
type Collection struct {
	metrics []Metrics
	mu      sync.RWMutex
}

// NewCollection creates a new Collection with the given metrics implementations.
func NewCollection(metrics ...Metrics) *Collection {
	return &Collection{
		metrics: metrics,
	}
}

// Add adds a new Metrics implementation to the collection.
func (c *Collection) Add(m Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = append(c.metrics, m)
}

// Len returns the number of metrics implementations in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.metrics)
}

func (c *Collection) each(fn func(Metrics) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.metrics {
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}

// IncrementCounter increments a counter across all implementations.
func (c *Collection) IncrementCounter(ctx context.Context, name string, value uint64) error {
	return c.each(func(m Metrics) error { return m.IncrementCounter(ctx, name, value) })
}

// UpdateGauge updates a gauge across all implementations.
func (c *Collection) UpdateGauge(ctx context.Context, name string, value float64) error {
	return c.each(func(m Metrics) error { return m.UpdateGauge(ctx, name, value) })
}

// RecordHistogram records a histogram value across all implementations.
func (c *Collection) RecordHistogram(ctx context.Context, name string, value float64) error {
	return c.each(func(m Metrics) error { return m.RecordHistogram(ctx, name, value) })
}

// Flush flushes all implementations.
func (c *Collection) Flush(ctx context.Context) error {
	return c.each(func(m Metrics) error { return m.Flush(ctx) })
}

// NoopMetrics is a Metrics implementation that does nothing.
type NoopMetrics struct{}

// NewNoopMetrics creates a new NoopMetrics.
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	return nil
}
func (n *NoopMetrics) UpdateGauge(ctx context.Context, name string, value float64) error {
	return nil
}
func (n *NoopMetrics) RecordHistogram(ctx context.Context, name string, value float64) error {
	return nil
}
func (n *NoopMetrics) Flush(ctx context.Context) error { return nil }

// LogMetrics keeps metrics in memory and logs them on Flush.
type LogMetrics struct {
	logger     *slog.Logger
	mu         sync.RWMutex
	gauges     map[string]float64
	counters   map[string]uint64
	histograms map[string][]float64
}

// NewLogMetrics creates a new LogMetrics with the given logger.
// If logger is nil, the default logger is used.
func NewLogMetrics(logger *slog.Logger) *LogMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMetrics{
		logger:     logger,
		gauges:     make(map[string]float64),
		counters:   make(map[string]uint64),
		histograms: make(map[string][]float64),
	}
}

// IncrementCounter adds value to the named counter.
func (l *LogMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counters[name] += value
	l.logger.Debug("counter incremented", "name", name, "value", value, "total", l.counters[name])
	return nil
}

// UpdateGauge stores the gauge value.
func (l *LogMetrics) UpdateGauge(ctx context.Context, name string, value float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gauges[name] = value
	l.logger.Debug("gauge updated", "name", name, "value", value)
	return nil
}

// RecordHistogram appends an observation.
func (l *LogMetrics) RecordHistogram(ctx context.Context, name string, value float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.histograms[name] = append(l.histograms[name], value)
	l.logger.Debug("histogram recorded", "name", name, "value", value)
	return nil
}

// Counter returns the current value of a counter.
func (l *LogMetrics) Counter(name string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counters[name]
}

// Gauge returns the current value of a gauge.
func (l *LogMetrics) Gauge(name string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.gauges[name]
}

// Flush logs all current values. Histograms are summarized as count, min, max
// and the median observation.
func (l *LogMetrics) Flush(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summaries := make(map[string]HistogramSummary, len(l.histograms))
	for name, values := range l.histograms {
		summaries[name] = Summarize(values)
	}

	l.logger.Info("metrics flush",
		"gauges", l.gauges,
		"counters", l.counters,
		"histograms", summaries,
	)
	return nil
}

// HistogramSummary is a compact view of histogram observations.
type HistogramSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summarize computes a HistogramSummary without modifying values.
func Summarize(values []float64) HistogramSummary {
	if len(values) == 0 {
		return HistogramSummary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return HistogramSummary{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: sorted[len(sorted)/2],
	}
}

// ObserveDuration records the time elapsed since start in milliseconds.
func ObserveDuration(ctx context.Context, m Metrics, name string, start time.Time) {
	_ = m.RecordHistogram(ctx, name, float64(time.Since(start).Microseconds())/1000)
}

// Metric names used by the commands.
const (
	MetricRPCRequests           = "rpc_requests"
	MetricPairMetasFetched      = "pair_metas_fetched"
	MetricOrdersAsks            = "orders_asks"
	MetricOrdersBids            = "orders_bids"
	MetricCollectionsListed     = "collections_listed"
	MetricTransactionsSimulated = "transactions_simulated"
	MetricTransactionsSent      = "transactions_sent"
	MetricSnapshotsSaved        = "snapshots_saved"
	MetricCommandDurationMs     = "command_duration_ms"
	MetricSDKCallDurationMs     = "sdk_call_duration_ms"
)
