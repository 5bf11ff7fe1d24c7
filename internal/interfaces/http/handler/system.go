package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/lms/backend/internal/infrastructure/persistence"
	"github.com/lms/backend/internal/interfaces/http/dto"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	redis     *redis.Client
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db and redis are optional
// and only affect the health endpoint.
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "LMS Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping checks if the API is responsive
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// HealthResponse reports the status of the service and its dependencies
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Database   *DBPoolStats      `json:"database_pool,omitempty"`
}

// DBPoolStats exposes connection pool pressure so operators can spot
// saturation before requests start queueing.
type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

// Health reports liveness of the database and token store. Degraded
// dependencies return 503.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:     "ok",
		Components: map[string]string{},
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Components["database"] = err.Error()
		} else {
			resp.Components["database"] = "ok"
			if stats, err := h.db.Stats(); err == nil {
				resp.Database = &DBPoolStats{
					MaxOpenConnections: stats.MaxOpenConnections,
					OpenConnections:    stats.OpenConnections,
					InUse:              stats.InUse,
					Idle:               stats.Idle,
					WaitCount:          stats.WaitCount,
					WaitDuration:       stats.WaitDuration.String(),
				}
			}
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			resp.Status = "degraded"
			resp.Components["redis"] = err.Error()
		} else {
			resp.Components["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/ping", h.Ping)
	}
	rg.GET("/health", h.Health)
}
