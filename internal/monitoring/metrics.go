package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application metrics
type Metrics struct {
	RequestCount      int64
	ErrorCount        int64
	AnalysesRun       int64
	SequencesParsed   int64
	CandidatesScanned int64
	StoreHits         int64
	StoreMisses       int64
	RateLimitBlocks   int64
	StartTime         time.Time

	// Status code tracking
	RequestCountByStatus map[int]int64
	StatusMutex          sync.RWMutex

	// Response time tracking
	ResponseTimes      []time.Duration
	ResponseTimesMutex sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		RequestCountByStatus: make(map[int]int64),
	}
}

func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

func (m *Metrics) IncrementStoreHit() {
	atomic.AddInt64(&m.StoreHits, 1)
}

func (m *Metrics) IncrementStoreMiss() {
	atomic.AddInt64(&m.StoreMisses, 1)
}

func (m *Metrics) IncrementRateLimitBlock() {
	atomic.AddInt64(&m.RateLimitBlocks, 1)
}

// RecordAnalysis records a completed pipeline run
func (m *Metrics) RecordAnalysis(sequences, candidates int) {
	atomic.AddInt64(&m.AnalysesRun, 1)
	atomic.AddInt64(&m.SequencesParsed, int64(sequences))
	atomic.AddInt64(&m.CandidatesScanned, int64(candidates))
}

// RecordResponseTime records a response time, keeping the last 1000 samples
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	m.ResponseTimesMutex.Lock()
	defer m.ResponseTimesMutex.Unlock()

	m.ResponseTimes = append(m.ResponseTimes, duration)
	if len(m.ResponseTimes) > 1000 {
		m.ResponseTimes = m.ResponseTimes[1:]
	}
}

// RecordRequestByStatus tracks request counts per status code
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.StatusMutex.Lock()
	defer m.StatusMutex.Unlock()

	m.RequestCountByStatus[statusCode]++
}

// GetStatusCodeDistribution returns a copy of the per-status counters
func (m *Metrics) GetStatusCodeDistribution() map[int]int64 {
	m.StatusMutex.RLock()
	defer m.StatusMutex.RUnlock()

	dist := make(map[int]int64, len(m.RequestCountByStatus))
	for code, count := range m.RequestCountByStatus {
		dist[code] = count
	}
	return dist
}

// GetStats returns a snapshot of all metrics
func (m *Metrics) GetStats() map[string]interface{} {
	m.ResponseTimesMutex.RLock()
	var avgMs float64
	if len(m.ResponseTimes) > 0 {
		var total time.Duration
		for _, d := range m.ResponseTimes {
			total += d
		}
		avgMs = float64(total.Milliseconds()) / float64(len(m.ResponseTimes))
	}
	m.ResponseTimesMutex.RUnlock()

	return map[string]interface{}{
		"request_count":        atomic.LoadInt64(&m.RequestCount),
		"error_count":          atomic.LoadInt64(&m.ErrorCount),
		"analyses_run":         atomic.LoadInt64(&m.AnalysesRun),
		"sequences_parsed":     atomic.LoadInt64(&m.SequencesParsed),
		"candidates_scanned":   atomic.LoadInt64(&m.CandidatesScanned),
		"store_hits":           atomic.LoadInt64(&m.StoreHits),
		"store_misses":         atomic.LoadInt64(&m.StoreMisses),
		"rate_limit_blocks":    atomic.LoadInt64(&m.RateLimitBlocks),
		"avg_response_time_ms": avgMs,
		"status_codes":         m.GetStatusCodeDistribution(),
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
	}
}
