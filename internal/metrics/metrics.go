package metrics

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one counter or histogram slot.
type MetricID uint16

const (
	MetricParseSuccess MetricID = iota
	MetricParseFailure
	MetricSerialize
	MetricSignSuccess
	MetricSignFailure
	MetricVerifyValid
	MetricVerifyInvalid
	MetricVerifyFailure
	MetricClaimOffset
	MetricClaimOffsetFailure
	MetricClaimRemoved
	MetricAttackAlgNone
	MetricAttackConfusion
	MetricAttackConfusionResign
	MetricAttackSignatureStrip
	MetricAttackSweep
	MetricCrackStarted
	MetricCrackRejected
	MetricCrackFound
	MetricCrackExhausted
	MetricCrackCancelled
	MetricCrackAttempts
	MetricVaultSave
	MetricVaultHit
	MetricVaultMiss
	MetricVaultFailure
	MetricVerifyLatency
	MetricSignLatency
	MetricCrackDuration
	MetricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

// histogramIDs lists the slots Observe accepts. All other IDs are counters.
var histogramIDs = [...]MetricID{MetricVerifyLatency, MetricSignLatency, MetricCrackDuration}

func isHistogramID(id MetricID) bool {
	for _, h := range histogramIDs {
		if id == h {
			return true
		}
	}
	return false
}

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Config controls which metric paths are active.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

// Metrics holds cache-line-padded atomic counters and fixed-bucket latency histograms.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [MetricIDCount]paddedCounter
	histograms    [MetricIDCount]metricHistogram
}

// Snapshot is a point-in-time deep copy of all metric values.
type Snapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

func New(cfg Config) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatency,
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Add records n occurrences at once. Used for bulk counts such as crack
// attempts, which are reported once per run instead of per candidate.
func (m *Metrics) Add(id MetricID, n uint64) {
	if m == nil || !m.enabled || id >= MetricIDCount || n == 0 {
		return
	}
	atomic.AddUint64(&m.counters[id].value, n)
}

func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= MetricIDCount {
		return
	}
	if !isHistogramID(id) {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= MetricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

func (m *Metrics) Snapshot() Snapshot {
	if m == nil || !m.enabled {
		return Snapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := Snapshot{
		Counters:   make(map[MetricID]uint64, int(MetricIDCount)),
		Histograms: make(map[MetricID][]uint64, len(histogramIDs)),
	}

	for id := MetricID(0); id < MetricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		for _, id := range histogramIDs {
			buckets := make([]uint64, histBucketCount)
			for i := 0; i < histBucketCount; i++ {
				buckets[i] = atomic.LoadUint64(&m.histograms[id].buckets[i])
			}
			s.Histograms[id] = buckets
		}
	}

	return s
}

func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 5:
		return 0
	case ms <= 10:
		return 1
	case ms <= 25:
		return 2
	case ms <= 50:
		return 3
	case ms <= 100:
		return 4
	case ms <= 250:
		return 5
	case ms <= 500:
		return 6
	default:
		return 7
	}
}
