package metrics

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type failingMetrics struct {
	NoopMetrics
	calls int
}

func (f *failingMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	f.calls++
	return errors.New("sink down")
}

func TestLogMetricsAccumulates(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMetrics(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	_ = m.IncrementCounter(ctx, MetricPairMetasFetched, 3)
	_ = m.IncrementCounter(ctx, MetricPairMetasFetched, 2)
	_ = m.UpdateGauge(ctx, MetricOrdersAsks, 7)
	_ = m.RecordHistogram(ctx, MetricCommandDurationMs, 12)

	if got := m.Counter(MetricPairMetasFetched); got != 5 {
		t.Errorf("counter = %d, want 5", got)
	}
	if got := m.Gauge(MetricOrdersAsks); got != 7 {
		t.Errorf("gauge = %v, want 7", got)
	}

	if err := m.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if !strings.Contains(buf.String(), "metrics flush") {
		t.Errorf("flush not logged: %q", buf.String())
	}
}

func TestCollectionFanOut(t *testing.T) {
	a := NewLogMetrics(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	b := NewLogMetrics(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	c := NewCollection(a)
	c.Add(b)

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	_ = c.IncrementCounter(context.Background(), MetricRPCRequests, 1)
	if a.Counter(MetricRPCRequests) != 1 || b.Counter(MetricRPCRequests) != 1 {
		t.Error("counter not fanned out to every sink")
	}
}

func TestCollectionStopsOnError(t *testing.T) {
	failing := &failingMetrics{}
	after := NewLogMetrics(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	c := NewCollection(failing, after)

	if err := c.IncrementCounter(context.Background(), MetricRPCRequests, 1); err == nil {
		t.Fatal("expected error from failing sink")
	}
	if after.Counter(MetricRPCRequests) != 0 {
		t.Error("sinks after a failure should not be called")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{5, 1, 9, 3})
	if s.Count != 4 || s.Min != 1 || s.Max != 9 || s.Median != 5 {
		t.Errorf("Summarize() = %+v", s)
	}
	if (Summarize(nil) != HistogramSummary{}) {
		t.Error("Summarize(nil) should be zero")
	}
}

func TestObserveDuration(t *testing.T) {
	m := NewLogMetrics(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ObserveDuration(context.Background(), m, MetricCommandDurationMs, time.Now().Add(-10*time.Millisecond))

	m.mu.RLock()
	defer m.mu.RUnlock()
	values := m.histograms[MetricCommandDurationMs]
	if len(values) != 1 || values[0] < 10 {
		t.Errorf("recorded %v, want one value >= 10ms", values)
	}
}
