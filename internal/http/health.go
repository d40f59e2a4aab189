package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// Values of a store check in HealthResponse.Checks.
const (
	storeReachable     = "reachable"
	storeNotConfigured = "not configured"
)

// HealthResponse reports whether the record store answers. Checks is keyed
// by the store driver, e.g. {"mongo": "reachable"}.
type HealthResponse struct {
	Status  string            `json:"status"`
	Store   string            `json:"store"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	driver  string
	store   Pinger
	version string
}

// NewHealthController checks store, which backs the records under the
// given driver name ("mongo" or "sqlite").
func NewHealthController(driver string, store Pinger, version string) *HealthController {
	if driver == "" {
		driver = "store"
	}
	return &HealthController{driver: driver, store: store, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	status, check := "healthy", storeNotConfigured

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		check = storeReachable
		if err := h.store.Ping(ctx); err != nil {
			status, check = "unhealthy", "unreachable: "+err.Error()
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Store:   h.driver,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{h.driver: check},
	})
}
