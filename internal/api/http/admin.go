package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studio-matra/portfolio-backend/internal/portfolio"
)

type AdminHandler struct {
	svc *portfolio.Service
}

func NewAdminHandler(svc *portfolio.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Register wires the admin surface. Every route here is gated; /admin/verify
// exists purely so the frontend can validate the shared secret.
func (h *AdminHandler) Register(r gin.IRouter, adminGate gin.HandlerFunc) {
	admin := r.Group("/admin", adminGate)

	admin.GET("/verify", h.verify)
	admin.GET("/order", h.getOrder)
	admin.PUT("/order/locations", h.saveLocationOrder)
	admin.PUT("/order/projects", h.saveProjectOrder)
	admin.POST("/catalog/rebuild", h.rebuildCatalog)
}

func (h *AdminHandler) verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) getOrder(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetOrder(c.Request.Context()))
}

type locationOrderReq struct {
	Locations []string `json:"locations"`
}

func (h *AdminHandler) saveLocationOrder(c *gin.Context) {
	var req locationOrderReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Locations == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	saved, err := h.svc.SaveLocationOrder(c.Request.Context(), req.Locations)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "locations": saved})
}

type projectOrderReq struct {
	LocationID string   `json:"locationId"`
	Projects   []string `json:"projects"`
}

func (h *AdminHandler) saveProjectOrder(c *gin.Context) {
	var req projectOrderReq
	if err := c.ShouldBindJSON(&req); err != nil || req.LocationID == "" || req.Projects == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	saved, err := h.svc.SaveProjectOrder(c.Request.Context(), req.LocationID, req.Projects)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": saved})
}

func (h *AdminHandler) rebuildCatalog(c *gin.Context) {
	cat, err := h.svc.RebuildCatalog(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"locations": len(cat.Locations),
		"projects":  len(cat.Projects),
	})
}
