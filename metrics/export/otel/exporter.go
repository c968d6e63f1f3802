package otel

import (
	"context"
	"errors"
	"fmt"

	goForge "github.com/MrEthical07/goForge"
	"github.com/MrEthical07/goForge/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() goForge.MetricsSnapshot
	AuditDropped() uint64
	ActiveCrackRuns() int
}

type observedCounter struct {
	id         goForge.MetricID
	instrument metric.Int64ObservableCounter
}

type observedHistogram struct {
	id      goForge.MetricID
	buckets [8]metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
}

// OTelExporter bridges engine snapshots into OpenTelemetry observable
// instruments. Values are read on collection, so the engine's hot paths stay
// free of exporter work.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
	histograms   []observedHistogram
	auditDropped metric.Int64ObservableCounter
	activeRuns   metric.Int64ObservableUpDownCounter
}

func NewOTelExporter(meter metric.Meter, engine *goForge.Engine) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, engine)
}

func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{source: source}
	var observables []metric.Observable

	var err error
	if observables, err = exporter.buildCounters(meter, observables); err != nil {
		return nil, err
	}
	if observables, err = exporter.buildHistograms(meter, observables); err != nil {
		return nil, err
	}
	if observables, err = exporter.buildEngineState(meter, observables); err != nil {
		return nil, err
	}

	registration, err := meter.RegisterCallback(exporter.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	exporter.registration = registration
	return exporter, nil
}

func (e *OTelExporter) buildCounters(meter metric.Meter, observables []metric.Observable) ([]metric.Observable, error) {
	e.counters = make([]observedCounter, 0, len(internaldefs.CounterDefs))
	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		e.counters = append(e.counters, observedCounter{id: def.ID, instrument: ins})
		observables = append(observables, ins)
	}
	return observables, nil
}

// buildHistograms registers one gauge per cumulative bucket plus a count
// gauge. The observable API has no histogram instrument, so the bucket layout
// mirrors the Prometheus exposition.
func (e *OTelExporter) buildHistograms(meter metric.Meter, observables []metric.Observable) ([]metric.Observable, error) {
	e.histograms = make([]observedHistogram, 0, len(internaldefs.HistogramDefs))
	for _, def := range internaldefs.HistogramDefs {
		h := observedHistogram{id: def.ID}
		for i, suffix := range internaldefs.HistogramBoundSuffix {
			name := def.Name + "_bucket_le_" + suffix
			ins, err := meter.Int64ObservableGauge(name, metric.WithDescription("Cumulative histogram bucket count."))
			if err != nil {
				return nil, fmt.Errorf("create histogram bucket gauge %s: %w", name, err)
			}
			h.buckets[i] = ins
			observables = append(observables, ins)
		}

		countName := def.Name + "_count"
		countIns, err := meter.Int64ObservableGauge(countName, metric.WithDescription("Histogram total sample count."))
		if err != nil {
			return nil, fmt.Errorf("create histogram count gauge %s: %w", countName, err)
		}
		h.count = countIns
		observables = append(observables, countIns)
		e.histograms = append(e.histograms, h)
	}
	return observables, nil
}

func (e *OTelExporter) buildEngineState(meter metric.Meter, observables []metric.Observable) ([]metric.Observable, error) {
	dropped, err := meter.Int64ObservableCounter(
		"goforge_audit_dropped_total",
		metric.WithDescription("Dropped audit events due to dispatcher backpressure."),
	)
	if err != nil {
		return nil, fmt.Errorf("create audit dropped counter: %w", err)
	}
	e.auditDropped = dropped

	active, err := meter.Int64ObservableUpDownCounter(
		"goforge_crack_runs_active",
		metric.WithDescription("Dictionary attack runs currently executing."),
	)
	if err != nil {
		return nil, fmt.Errorf("create active runs counter: %w", err)
	}
	e.activeRuns = active

	return append(observables, dropped, active), nil
}

func (e *OTelExporter) observe(_ context.Context, observer metric.Observer) error {
	snapshot := e.source.MetricsSnapshot()

	for _, c := range e.counters {
		observer.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]))
	}
	for _, h := range e.histograms {
		cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snapshot.Histograms[h.id]))
		for i, bucket := range h.buckets {
			observer.ObserveInt64(bucket, int64(cumulative[i]))
		}
		observer.ObserveInt64(h.count, int64(cumulative[len(cumulative)-1]))
	}

	observer.ObserveInt64(e.auditDropped, int64(e.source.AuditDropped()))
	observer.ObserveInt64(e.activeRuns, int64(e.source.ActiveCrackRuns()))
	return nil
}

func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
