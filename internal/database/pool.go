package database

import (
	"context"
	"time"
)

type PoolStats struct {
	MaxOpenConns int   `json:"max_open_connections"`
	OpenConns    int   `json:"open_connections"`
	InUse        int   `json:"in_use"`
	Idle         int   `json:"idle"`
	WaitCount    int64 `json:"wait_count"`
}

type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time_ns"`
	Error        string        `json:"error,omitempty"`
	Stats        PoolStats     `json:"stats"`
	Timestamp    time.Time     `json:"timestamp"`
}

func (db *DB) GetPoolStats() PoolStats {
	stats := db.Stats()
	return PoolStats{
		MaxOpenConns: stats.MaxOpenConnections,
		OpenConns:    stats.OpenConnections,
		InUse:        stats.InUse,
		Idle:         stats.Idle,
		WaitCount:    stats.WaitCount,
	}
}

// HealthCheck pings the database with a short deadline and reports pool
// state alongside the result.
func (db *DB) HealthCheck(ctx context.Context) HealthCheck {
	start := time.Now()
	hc := HealthCheck{
		Timestamp: start,
		Stats:     db.GetPoolStats(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		hc.Status = "unhealthy"
		hc.Error = err.Error()
	} else {
		hc.Status = "healthy"
	}
	hc.ResponseTime = time.Since(start)
	return hc
}
