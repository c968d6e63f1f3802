package goForge

import (
	"testing"
	"time"
)

func BenchmarkMetricsInc(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Inc(MetricVerifyValid)
	}
}

func BenchmarkMetricsIncDisabled(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Inc(MetricVerifyValid)
	}
}

// BenchmarkMetricsAddCrackBatch measures the bulk path crack runners take:
// workers accumulate attempt counts locally and flush them as a single Add
// per batch rather than one Inc per candidate.
func BenchmarkMetricsAddCrackBatch(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Add(MetricCrackAttempts, 512)
	}
}

func BenchmarkMetricsIncParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Inc(MetricVerifyValid)
		}
	})
}

// BenchmarkMetricsIncMixedParallel spreads contended writers across the hot
// counter slots. Counters are cache-line padded, so writers on distinct IDs
// should not slow each other down.
func BenchmarkMetricsIncMixedParallel(b *testing.B) {
	hot := [...]MetricID{
		MetricParseSuccess,
		MetricVerifyValid,
		MetricVerifyInvalid,
		MetricSignSuccess,
		MetricAttackAlgNone,
		MetricCrackAttempts,
		MetricVaultHit,
		MetricVaultMiss,
	}
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		idx := 0
		for pb.Next() {
			m.Inc(hot[idx])
			idx++
			if idx == len(hot) {
				idx = 0
			}
		}
	})
}

func BenchmarkMetricsObserveLatencyParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	d := 12 * time.Millisecond
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Observe(MetricVerifyLatency, d)
		}
	})
}

// BenchmarkMetricsVerifyPathPattern reproduces the instrument traffic of one
// Verify call: a verdict counter plus a latency observation. This is the
// pattern the engine pays on its hottest path.
func BenchmarkMetricsVerifyPathPattern(b *testing.B) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	d := 300 * time.Microsecond
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Inc(MetricVerifyValid)
			m.Observe(MetricVerifyLatency, d)
		}
	})
}

// BenchmarkMetricsSnapshot measures the deep copy handed to MetricsSnapshot
// callers. Prometheus and OTel exporters pay this on every scrape.
func BenchmarkMetricsSnapshot(b *testing.B) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	for i := 0; i < 1000; i++ {
		m.Inc(MetricVerifyValid)
		m.Observe(MetricVerifyLatency, 7*time.Millisecond)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s := m.Snapshot()
		if len(s.Counters) != int(metricIDCount) {
			b.Fatalf("snapshot covered %d of %d counters", len(s.Counters), metricIDCount)
		}
	}
}
