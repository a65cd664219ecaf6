package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studio-matra/portfolio-backend/internal/portfolio"
)

type ViewHandler struct {
	svc *portfolio.Service
}

func NewViewHandler(svc *portfolio.Service) *ViewHandler {
	return &ViewHandler{svc: svc}
}

func (h *ViewHandler) Register(r gin.IRouter) {
	r.GET("/catalog", h.catalog)
}

// catalog serves the merged, ordered view the frontend renders: fallback
// seed overlaid with record-store data, sorted by the order document.
func (h *ViewHandler) catalog(c *gin.Context) {
	view, err := h.svc.View(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
