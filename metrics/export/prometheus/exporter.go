package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	goForge "github.com/MrEthical07/goForge"
	"github.com/MrEthical07/goForge/metrics/export/internaldefs"
)

type metricsSource interface {
	MetricsSnapshot() goForge.MetricsSnapshot
	AuditDropped() uint64
	ActiveCrackRuns() int
}

// PrometheusExporter renders goForge metrics in Prometheus text exposition format.
//
//	Docs: docs/metrics.md
type PrometheusExporter struct {
	source metricsSource
}

// NewPrometheusExporter creates a Prometheus exporter that reads from the given [goForge.Engine].
//
//	Docs: docs/metrics.md
func NewPrometheusExporter(engine *goForge.Engine) *PrometheusExporter {
	return &PrometheusExporter{source: engine}
}

// NewPrometheusExporterFromSource creates a Prometheus exporter from any
// source that can produce snapshots, dropped-event counts, and the live run
// count.
//
//	Docs: docs/metrics.md
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves Prometheus metrics.
//
//	Docs: docs/metrics.md
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(p.Render()))
	})
}

// Render writes the current metrics in Prometheus text exposition format.
// Output is deterministic: definition order from internaldefs, then the
// engine-state block.
//
//	Docs: docs/metrics.md
func (p *PrometheusExporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	active := p.source.ActiveCrackRuns()
	if len(snapshot.Counters) == 0 && len(snapshot.Histograms) == 0 && dropped == 0 && active == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(8192)

	p.renderCounters(&b, snapshot)
	p.renderHistograms(&b, snapshot)
	p.renderEngineState(&b, dropped, active)

	return b.String()
}

func (p *PrometheusExporter) renderCounters(b *strings.Builder, snapshot goForge.MetricsSnapshot) {
	for _, def := range internaldefs.CounterDefs {
		writeMetric(b, def.Name, def.Help, "counter", snapshot.Counters[def.ID])
	}
}

func (p *PrometheusExporter) renderHistograms(b *strings.Builder, snapshot goForge.MetricsSnapshot) {
	for _, def := range internaldefs.HistogramDefs {
		buckets := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snapshot.Histograms[def.ID]))
		writeHistogram(b, def.Name, def.Help, buckets)
	}
}

func (p *PrometheusExporter) renderEngineState(b *strings.Builder, dropped uint64, active int) {
	writeMetric(b, "goforge_audit_dropped_total", "Dropped audit events due to dispatcher backpressure.", "counter", dropped)
	if active < 0 {
		active = 0
	}
	writeMetric(b, "goforge_crack_runs_active", "Dictionary attack runs currently executing.", "gauge", uint64(active))
}

func writeMetric(b *strings.Builder, name, help, kind string, value uint64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(kind)
	b.WriteByte('\n')
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}

func writeHistogram(b *strings.Builder, name, help string, cumulative [8]uint64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteString(" histogram\n")

	for i, le := range internaldefs.HistogramBounds {
		b.WriteString(name)
		b.WriteString("_bucket{le=\"")
		b.WriteString(le)
		b.WriteString("\"} ")
		b.WriteString(strconv.FormatUint(cumulative[i], 10))
		b.WriteByte('\n')
	}

	b.WriteString(name)
	b.WriteString("_count ")
	b.WriteString(strconv.FormatUint(cumulative[len(cumulative)-1], 10))
	b.WriteByte('\n')

	// The engine tracks bucket counts only, so _sum is pinned at zero to keep
	// the exposition shape complete for scrapers.
	b.WriteString(name)
	b.WriteString("_sum 0\n")
}

func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, "\\", "\\\\")
	help = strings.ReplaceAll(help, "\n", "\\n")
	return help
}
