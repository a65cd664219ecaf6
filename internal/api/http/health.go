package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studio-matra/portfolio-backend/internal/media"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Media     string    `json:"media,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	media       *media.Client
}

func NewHealthHandler(serviceName, version string, mc *media.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		media:       mc,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	mediaStatus := "disabled"
	if h.media != nil && h.media.Enabled() {
		mediaStatus = "configured"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Media:     mediaStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
