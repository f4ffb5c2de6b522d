package execution

import (
	"sync/atomic"
	"time"
)

// Metrics tracks judge call metrics.
type Metrics struct {
	judgeCalls   int64
	judgeErrors  int64
	judgeLatency int64 // total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot.
func GetMetrics() Metrics {
	return Metrics{
		judgeCalls:   atomic.LoadInt64(&globalMetrics.judgeCalls),
		judgeErrors:  atomic.LoadInt64(&globalMetrics.judgeErrors),
		judgeLatency: atomic.LoadInt64(&globalMetrics.judgeLatency),
	}
}

// ResetMetrics resets all metrics (useful for testing).
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.judgeCalls, 0)
	atomic.StoreInt64(&globalMetrics.judgeErrors, 0)
	atomic.StoreInt64(&globalMetrics.judgeLatency, 0)
}

func recordJudgeCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.judgeCalls, 1)
	atomic.AddInt64(&globalMetrics.judgeLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.judgeErrors, 1)
	}
}

// Calls returns the total number of judge calls.
func (m Metrics) Calls() int64 {
	return m.judgeCalls
}

// AverageLatency returns the average judge latency in milliseconds.
func (m Metrics) AverageLatency() float64 {
	if m.judgeCalls == 0 {
		return 0
	}
	avgNs := float64(m.judgeLatency) / float64(m.judgeCalls)
	return avgNs / 1e6
}

// ErrorRate returns the judge error rate as a percentage.
func (m Metrics) ErrorRate() float64 {
	if m.judgeCalls == 0 {
		return 0
	}
	return float64(m.judgeErrors) / float64(m.judgeCalls) * 100
}
