package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/database"
)

// Status is the health snapshot served at /health.
type Status struct {
	Healthy   bool      `json:"healthy"`
	Database  string    `json:"database"`
	Redis     string    `json:"redis"`
	AI        string    `json:"ai"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker probes the service's dependencies on a fixed interval and
// serves the latest snapshot without blocking requests on live pings.
type Checker struct {
	manager    *database.Manager
	llmReady   func() bool
	logger     *logrus.Logger
	interval   time.Duration
	mu         sync.RWMutex
	lastStatus Status
}

func NewChecker(manager *database.Manager, llmReady func() bool, logger *logrus.Logger) *Checker {
	return &Checker{
		manager:  manager,
		llmReady: llmReady,
		logger:   logger,
		interval: 30 * time.Second,
	}
}

// Start runs the first probe synchronously, then refreshes in the
// background until ctx is cancelled.
func (c *Checker) Start(ctx context.Context) {
	c.refresh(ctx)

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.refresh(ctx)
			}
		}
	}()
}

func (c *Checker) refresh(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := Status{
		Healthy:   true,
		Database:  "up",
		Redis:     "up",
		AI:        "configured",
		CheckedAt: time.Now().UTC(),
	}

	if err := c.manager.PingDatabase(probeCtx); err != nil {
		c.logger.WithError(err).Warn("Database health check failed")
		status.Database = "down"
		status.Healthy = false
	}
	if err := c.manager.PingRedis(probeCtx); err != nil {
		c.logger.WithError(err).Warn("Redis health check failed")
		status.Redis = "down"
		status.Healthy = false
	}
	if !c.llmReady() {
		// Degraded, not unhealthy: the API still serves data endpoints.
		status.AI = "unconfigured"
	}

	c.mu.Lock()
	c.lastStatus = status
	c.mu.Unlock()
}

func (c *Checker) Snapshot() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastStatus
}

// Handler serves the latest snapshot. Unhealthy snapshots return 503 so
// load balancers can rotate the instance out.
func (c *Checker) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Snapshot()

		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		ctx.JSON(code, status)
	}
}
