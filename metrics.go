package winauth

import "sync/atomic"

// MetricID identifies one counter tracked by the gateway.
type MetricID uint16

const (
	// MetricLoginSuccess counts credential checks that returned true.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts credential checks that returned false.
	MetricLoginFailure
	// MetricSessionCreated counts sessions persisted by CreateSession.
	MetricSessionCreated
	// MetricSessionRenewed counts sliding renewals performed near expiry.
	MetricSessionRenewed
	// MetricSessionDestroyed counts sessions removed by DestroySession.
	MetricSessionDestroyed
	// MetricDecisionProceed counts requests the middleware let through.
	MetricDecisionProceed
	// MetricDecisionRequireLogin counts unauthenticated denials.
	MetricDecisionRequireLogin
	// MetricDecisionRequireLogout counts authenticated callers rejected from
	// login-only routes.
	MetricDecisionRequireLogout
	// MetricDecisionForbidden counts role-based denials.
	MetricDecisionForbidden
	// MetricExecutionError counts requests aborted by collaborator failures.
	MetricExecutionError
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of lock-free counters. All methods are safe on a
// nil receiver so callers never need to branch on whether metrics are
// enabled.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

func newMetrics() *Metrics {
	return &Metrics{}
}

// Inc adds one to the given counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
