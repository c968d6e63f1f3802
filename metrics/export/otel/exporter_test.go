package otel

import (
	"context"
	"errors"
	"sync"
	"testing"

	goForge "github.com/MrEthical07/goForge"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// fakeSource synthesizes a snapshot from a handful of mutable fields instead
// of holding a prebuilt one. Tests mutate the fields between collections.
type fakeSource struct {
	mu      sync.Mutex
	valid   uint64
	latency [8]uint64
	dropped uint64
	active  int
}

func (f *fakeSource) MetricsSnapshot() goForge.MetricsSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return goForge.MetricsSnapshot{
		Counters: map[goForge.MetricID]uint64{
			goForge.MetricVerifyValid: f.valid,
		},
		Histograms: map[goForge.MetricID][]uint64{
			goForge.MetricVerifyLatency: append([]uint64(nil), f.latency[:]...),
		},
	}
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

func (f *fakeSource) ActiveCrackRuns() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeSource) set(valid uint64, dropped uint64, active int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid = valid
	f.dropped = dropped
	f.active = active
}

func newTestExporter(t *testing.T, src *fakeSource) (*sdkmetric.ManualReader, *OTelExporter) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("goforge-test")

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	t.Cleanup(func() {
		if err := exp.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return reader, exp
}

// collectedValue walks a collection result for the named instrument. Observable
// counters arrive as Sum data, bucket gauges as Gauge data.
func collectedValue(t *testing.T, rm metricdata.ResourceMetrics, name string) (int64, bool) {
	t.Helper()
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if len(data.DataPoints) > 0 {
					return data.DataPoints[0].Value, true
				}
			case metricdata.Gauge[int64]:
				if len(data.DataPoints) > 0 {
					return data.DataPoints[0].Value, true
				}
			}
		}
	}
	return 0, false
}

func TestExporterObservesCountersAndBuckets(t *testing.T) {
	src := &fakeSource{
		valid:   3,
		latency: [8]uint64{1, 1, 1, 1, 1, 1, 1, 1},
	}
	reader, _ := newTestExporter(t, src)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got, ok := collectedValue(t, rm, "goforge_verify_valid_total"); !ok || got != 3 {
		t.Fatalf("goforge_verify_valid_total = %d, %v; want 3, true", got, ok)
	}

	// Raw buckets of all ones become cumulative 1..8; the +Inf bucket and the
	// count gauge both carry the total.
	if got, ok := collectedValue(t, rm, "goforge_verify_latency_seconds_bucket_le_inf"); !ok || got != 8 {
		t.Fatalf("+Inf bucket = %d, %v; want 8, true", got, ok)
	}
	if got, ok := collectedValue(t, rm, "goforge_verify_latency_seconds_bucket_le_0_005"); !ok || got != 1 {
		t.Fatalf("first bucket = %d, %v; want 1, true", got, ok)
	}
	if got, ok := collectedValue(t, rm, "goforge_verify_latency_seconds_count"); !ok || got != 8 {
		t.Fatalf("count gauge = %d, %v; want 8, true", got, ok)
	}
}

func TestExporterObservesEngineState(t *testing.T) {
	src := &fakeSource{dropped: 4, active: 2}
	reader, _ := newTestExporter(t, src)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got, ok := collectedValue(t, rm, "goforge_audit_dropped_total"); !ok || got != 4 {
		t.Fatalf("goforge_audit_dropped_total = %d, %v; want 4, true", got, ok)
	}
	if got, ok := collectedValue(t, rm, "goforge_crack_runs_active"); !ok || got != 2 {
		t.Fatalf("goforge_crack_runs_active = %d, %v; want 2, true", got, ok)
	}
}

func TestExporterRereadsSourceOnEveryCollect(t *testing.T) {
	src := &fakeSource{valid: 1, active: 2}
	reader, _ := newTestExporter(t, src)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("first Collect failed: %v", err)
	}
	if got, _ := collectedValue(t, rm, "goforge_verify_valid_total"); got != 1 {
		t.Fatalf("first collection saw %d, want 1", got)
	}

	src.set(5, 0, 0)

	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("second Collect failed: %v", err)
	}
	if got, _ := collectedValue(t, rm, "goforge_verify_valid_total"); got != 5 {
		t.Fatalf("second collection saw %d, want 5", got)
	}
	if got, _ := collectedValue(t, rm, "goforge_crack_runs_active"); got != 0 {
		t.Fatalf("active runs after drain = %d, want 0", got)
	}
}

func TestExporterRejectsNilArguments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("goforge-test")

	if _, err := NewOTelExporterFromSource(meter, nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("nil source: got %v, want ErrNilSource", err)
	}
	if _, err := NewOTelExporterFromSource(nil, &fakeSource{}); !errors.Is(err, ErrNilMeter) {
		t.Fatalf("nil meter: got %v, want ErrNilMeter", err)
	}
}

func TestExporterConcurrentCollectNoPanic(t *testing.T) {
	src := &fakeSource{valid: 1}
	reader, _ := newTestExporter(t, src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			src.set(v, v, int(v))

			var rm metricdata.ResourceMetrics
			_ = reader.Collect(context.Background(), &rm)
		}(uint64(i + 1))
	}
	wg.Wait()
}
