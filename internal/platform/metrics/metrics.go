package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks request-level counters plus the size of the last
// assignment regeneration. All methods are safe for concurrent use.
type Collector struct {
	totalRequests        uint64
	errorRequests        uint64
	rateLimited          uint64
	totalDurationMs      uint64
	assignmentsGenerated uint64
	regenerations        uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordRegeneration notes one full rebuild of the assignment list.
func (c *Collector) RecordRegeneration(assignments int) {
	atomic.AddUint64(&c.regenerations, 1)
	atomic.StoreUint64(&c.assignmentsGenerated, uint64(assignments))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          errs,
		"rateLimitedTotal":     limited,
		"avgDurationMs":        avg,
		"regenerationsTotal":   atomic.LoadUint64(&c.regenerations),
		"assignmentsGenerated": atomic.LoadUint64(&c.assignmentsGenerated),
	}
}
