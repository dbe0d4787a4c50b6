package api

import (
	"sync/atomic"
	"time"
)

// Collector counts outgoing calls for the inspector's metrics view. It
// is diagnostic only.
type Collector struct {
	calls           uint64
	transportErrors uint64
	serverErrors    uint64
	totalDurationMs uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, callErr error, elapsed time.Duration) {
	atomic.AddUint64(&c.calls, 1)
	if callErr != nil && status == 0 {
		atomic.AddUint64(&c.transportErrors, 1)
	}
	if status >= 400 {
		atomic.AddUint64(&c.serverErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(elapsed.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	calls := atomic.LoadUint64(&c.calls)
	transport := atomic.LoadUint64(&c.transportErrors)
	server := atomic.LoadUint64(&c.serverErrors)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if calls > 0 {
		avg = float64(totalMs) / float64(calls)
	}
	return map[string]any{
		"callsTotal":      calls,
		"transportErrors": transport,
		"serverErrors":    server,
		"avgDurationMs":   avg,
	}
}
