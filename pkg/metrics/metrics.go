package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Metrics holds performance counters for the portal API.
// Thread-safe via atomics and mutex.
type Metrics struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	TotalLatencyMs int64            `json:"total_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	ExportsBuilt   int64            `json:"exports_built"`
	ExportFailures int64            `json:"export_failures"`
	StartTime      time.Time        `json:"start_time"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	StatusCodes    map[int]int64    `json:"status_codes"`
	mu             sync.Mutex
}

var globalMetrics *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		globalMetrics = &Metrics{
			StartTime:      time.Now(),
			EndpointCounts: make(map[string]int64),
			StatusCodes:    make(map[int]int64),
		}
	})
	return globalMetrics
}

// RecordExport counts a finished export attempt.
func RecordExport(success bool) {
	m := Get()
	if success {
		atomic.AddInt64(&m.ExportsBuilt, 1)
	} else {
		atomic.AddInt64(&m.ExportFailures, 1)
	}
}

// Middleware tracks request count, latency, active connections, and error rates
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m := Get()

			atomic.AddInt64(&m.ActiveRequests, 1)
			start := time.Now()

			err := next(c)

			latencyMs := time.Since(start).Milliseconds()
			atomic.AddInt64(&m.ActiveRequests, -1)
			atomic.AddInt64(&m.TotalRequests, 1)
			atomic.AddInt64(&m.TotalLatencyMs, latencyMs)

			// Update max latency (lock-free CAS loop)
			for {
				current := atomic.LoadInt64(&m.MaxLatencyMs)
				if latencyMs <= current {
					break
				}
				if atomic.CompareAndSwapInt64(&m.MaxLatencyMs, current, latencyMs) {
					break
				}
			}

			statusCode := c.Response().Status
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			endpoint := fmt.Sprintf("%s %s", c.Request().Method, path)

			m.mu.Lock()
			m.EndpointCounts[endpoint]++
			m.StatusCodes[statusCode]++
			m.mu.Unlock()

			if statusCode >= 400 {
				atomic.AddInt64(&m.TotalErrors, 1)
			}

			return err
		}
	}
}

// Snapshot is a point-in-time view of performance data
type Snapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	ErrorRate      float64          `json:"error_rate_pct"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	ExportsBuilt   int64            `json:"exports_built"`
	ExportFailures int64            `json:"export_failures"`
	UptimeSeconds  float64          `json:"uptime_seconds"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	StatusCodes    map[int]int64    `json:"status_codes"`
}

// Handler serves the current metrics snapshot.
func Handler(c echo.Context) error {
	m := Get()
	total := atomic.LoadInt64(&m.TotalRequests)
	errCount := atomic.LoadInt64(&m.TotalErrors)
	totalLatency := atomic.LoadInt64(&m.TotalLatencyMs)

	var avgLatency, errorRate float64
	if total > 0 {
		avgLatency = float64(totalLatency) / float64(total)
		errorRate = float64(errCount) / float64(total) * 100
	}

	m.mu.Lock()
	endpointCounts := make(map[string]int64, len(m.EndpointCounts))
	for k, v := range m.EndpointCounts {
		endpointCounts[k] = v
	}
	statusCodes := make(map[int]int64, len(m.StatusCodes))
	for k, v := range m.StatusCodes {
		statusCodes[k] = v
	}
	m.mu.Unlock()

	return c.JSON(http.StatusOK, Snapshot{
		TotalRequests:  total,
		ActiveRequests: atomic.LoadInt64(&m.ActiveRequests),
		TotalErrors:    errCount,
		ErrorRate:      errorRate,
		AvgLatencyMs:   avgLatency,
		MaxLatencyMs:   atomic.LoadInt64(&m.MaxLatencyMs),
		ExportsBuilt:   atomic.LoadInt64(&m.ExportsBuilt),
		ExportFailures: atomic.LoadInt64(&m.ExportFailures),
		UptimeSeconds:  time.Since(m.StartTime).Seconds(),
		EndpointCounts: endpointCounts,
		StatusCodes:    statusCodes,
	})
}
