package redis

import (
	"context"
	"strconv"
	"time"
)

// HealthCheck represents the health check response for Redis
type HealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthCheck pings the server and reports connection pool statistics
func (c *Client) HealthCheck(ctx context.Context) HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.Ping(ctx)
	latency := time.Since(start)

	stats := c.rdb.PoolStats()
	details := map[string]string{
		"host":        c.config.Host,
		"port":        strconv.Itoa(c.config.Port),
		"database":    strconv.Itoa(c.config.Database),
		"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
		"latency":     latency.String(),
	}

	if err != nil {
		details["last_error"] = err.Error()
		return HealthCheck{Status: StatusDown, Details: details}
	}
	return HealthCheck{Status: StatusUp, Details: details}
}
