package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/studio-matra/portfolio-backend/internal/api/http"
	"github.com/studio-matra/portfolio-backend/internal/api/http/middleware"
	"github.com/studio-matra/portfolio-backend/internal/media"
	"github.com/studio-matra/portfolio-backend/internal/portfolio"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AdminSecret    string
	AllowedOrigins []string
	Media          *media.Client
	Service        *portfolio.Service
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(corsMiddleware(dep.AllowedOrigins))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Media)
	healthHandler.RegisterRoutes(r)

	gate := middleware.AdminGate(dep.AdminSecret)

	httpapi.NewLocationHandler(dep.Service).Register(r, gate)
	httpapi.NewProjectHandler(dep.Service).Register(r, gate)
	httpapi.NewAdminHandler(dep.Service).Register(r, gate)
	httpapi.NewViewHandler(dep.Service).Register(r)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id", middleware.AdminHeader},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
