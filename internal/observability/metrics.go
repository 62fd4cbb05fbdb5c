package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	latencyTotal map[string]time.Duration
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests       map[string]int64 `json:"requests"`
	Errors         map[string]int64 `json:"errors"`
	AvgLatencyMSec map[string]int64 `json:"avg_latency_ms"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		latencyTotal: make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.latencyTotal[key] += duration
}

// RecordError increments error counters by error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := method + " " + path + " " + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Requests:       map[string]int64{},
		Errors:         map[string]int64{},
		AvgLatencyMSec: map[string]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		snap.Requests[k] = v
		snap.AvgLatencyMSec[k] = (m.latencyTotal[k] / time.Duration(v)).Milliseconds()
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	return snap
}
