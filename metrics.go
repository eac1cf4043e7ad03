package adminauth

import "sync/atomic"

// MetricID identifies one in-process counter.
type MetricID uint8

const (
	// MetricSignInSuccess counts successful sign-ins.
	MetricSignInSuccess MetricID = iota
	// MetricSignInFailure counts rejected sign-ins (unknown user, bad password).
	MetricSignInFailure
	// MetricRefreshSuccess counts successful token rotations.
	MetricRefreshSuccess
	// MetricRefreshFailure counts failed token rotations.
	MetricRefreshFailure
	// MetricSignOut counts sign-outs.
	MetricSignOut
	// MetricMarkerWritten counts session marker writes to the registry.
	MetricMarkerWritten

	metricCount
)

var metricNames = [metricCount]string{
	"signin_success",
	"signin_failure",
	"refresh_success",
	"refresh_failure",
	"signout",
	"marker_written",
}

func (id MetricID) String() string {
	if int(id) < len(metricNames) {
		return metricNames[id]
	}
	return "unknown"
}

// Metrics is a lock-free counter set. All methods are safe for concurrent
// use; a nil or disabled Metrics is a no-op.
type Metrics struct {
	enabled  bool
	counters [metricCount]atomic.Uint64
}

// NewMetrics creates a Metrics set per cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot returns a consistent-enough copy of the counters. Individual
// loads are atomic; the set as a whole is not, which is fine for export.
func (m *Metrics) Snapshot() MetricsSnapshot {
	out := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil || !m.enabled {
		return out
	}
	for id := MetricID(0); id < metricCount; id++ {
		out.Counters[id] = m.counters[id].Load()
	}
	return out
}
