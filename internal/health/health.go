// Package health reports dependency health over HTTP and the gRPC health protocol.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/sbilibin2017/geo-articles/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CheckFunc probes a single dependency.
type CheckFunc func(ctx context.Context) error

// Response is the body of the HTTP health endpoint.
// swagger:model HealthResponse
type Response struct {
	// example: ok
	Status string `json:"status"`

	// example: {"postgres":"ok","redis":"ok"}
	Checks map[string]string `json:"checks"`
}

// Checker runs named dependency checks and mirrors the result into a gRPC health server.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
	server  *health.Server
}

// NewChecker creates a Checker whose individual checks time out after timeout.
func NewChecker(timeout time.Duration) *Checker {
	return &Checker{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
		server:  health.NewServer(),
	}
}

// Add registers a named check.
func (c *Checker) Add(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Check runs every check and reports per-check results and overall health.
func (c *Checker) Check(ctx context.Context) (map[string]string, bool) {
	c.mu.RLock()
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		c.mu.RLock()
		check := c.checks[name]
		c.mu.RUnlock()

		checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := check(checkCtx)
		cancel()

		if err != nil {
			logger.Log.Warnw("health check failed", "check", name, "err", err)
			results[name] = err.Error()
			healthy = false
			continue
		}
		results[name] = "ok"
	}
	return results, healthy
}

// Refresh runs the checks and publishes the outcome to gRPC health clients.
func (c *Checker) Refresh(ctx context.Context) bool {
	_, healthy := c.Check(ctx)

	status := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", status)
	return healthy
}

// Watch refreshes the gRPC serving status every interval until ctx is done.
func (c *Checker) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Refresh(ctx)
		}
	}
}

// Register exposes the gRPC health service on s.
func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.server)
}

// NewHandler returns the HTTP health endpoint.
// @Summary Health check
// @Description Pings PostgreSQL and Redis
// @Tags health
// @Produce json
// @Success 200 {object} health.Response
// @Failure 503 {object} health.Response
// @Router /healthz [get]
func NewHandler(c *Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, healthy := c.Check(r.Context())

		resp := Response{Status: "ok", Checks: results}
		status := http.StatusOK
		if !healthy {
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
	}
}
