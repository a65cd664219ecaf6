package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studio-matra/portfolio-backend/internal/portfolio"
)

type ProjectHandler struct {
	svc *portfolio.Service
}

func NewProjectHandler(svc *portfolio.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Register(r gin.IRouter, adminGate gin.HandlerFunc) {
	r.GET("/projects", h.list)
	r.GET("/projects/:id", h.get)
	r.POST("/projects", adminGate, h.create)
	r.PATCH("/projects/:id", adminGate, h.update)
	r.DELETE("/projects/:id", adminGate, h.delete)

	r.POST("/projects/:id/images", adminGate, h.uploadImages)
	r.PATCH("/projects/:id/images/:imageId", adminGate, h.relabelImage)
	r.DELETE("/projects/:id/images/:imageId", adminGate, h.deleteImage)
}

func (h *ProjectHandler) list(c *gin.Context) {
	projects, err := h.svc.ListProjects(c.Query("location"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) get(c *gin.Context) {
	proj, err := h.svc.GetProject(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, proj)
}

type createProjectReq struct {
	Name         string `json:"name"`
	LocationID   string `json:"locationId"`
	ClientNumber string `json:"clientNumber"`
}

func (h *ProjectHandler) create(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	proj, err := h.svc.CreateProject(portfolio.CreateProjectInput{
		Name:         req.Name,
		LocationID:   req.LocationID,
		ClientNumber: req.ClientNumber,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, proj)
}

type updateProjectReq struct {
	Name          *string `json:"name"`
	LocationID    *string `json:"locationId"`
	ClientNumber  *string `json:"clientNumber"`
	CoverImageURL *string `json:"coverImageUrl"`
}

func (h *ProjectHandler) update(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	proj, err := h.svc.UpdateProject(c.Param("id"), portfolio.UpdateProjectInput{
		Name:          req.Name,
		LocationID:    req.LocationID,
		ClientNumber:  req.ClientNumber,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, proj)
}

func (h *ProjectHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
