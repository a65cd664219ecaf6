package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studio-matra/portfolio-backend/internal/portfolio"
)

type LocationHandler struct {
	svc *portfolio.Service
}

func NewLocationHandler(svc *portfolio.Service) *LocationHandler {
	return &LocationHandler{svc: svc}
}

// Register wires the location routes; admin gates only the mutations.
func (h *LocationHandler) Register(r gin.IRouter, adminGate gin.HandlerFunc) {
	r.GET("/locations", h.list)
	r.GET("/locations/order", h.publicOrder)
	r.GET("/locations/:id", h.get)
	r.GET("/locations/:id/projects", h.projects)
	r.POST("/locations", adminGate, h.create)
	r.PATCH("/locations/:id", adminGate, h.update)
	r.DELETE("/locations/:id", adminGate, h.delete)
}

func (h *LocationHandler) list(c *gin.Context) {
	locations, err := h.svc.ListLocations()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// publicOrder is the read-only alias the frontend uses; same document the
// admin order endpoints manage.
func (h *LocationHandler) publicOrder(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetOrder(c.Request.Context()))
}

func (h *LocationHandler) get(c *gin.Context) {
	loc, err := h.svc.GetLocation(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) projects(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.svc.GetLocation(id); err != nil {
		fail(c, err)
		return
	}
	projects, err := h.svc.ListProjects(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

type createLocationReq struct {
	Name           string   `json:"name"`
	ID             string   `json:"id"`
	StateOrCountry string   `json:"stateOrCountry"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

func (h *LocationHandler) create(c *gin.Context) {
	var req createLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	loc, err := h.svc.CreateLocation(portfolio.CreateLocationInput{
		Name:           req.Name,
		ID:             req.ID,
		StateOrCountry: req.StateOrCountry,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

type updateLocationReq struct {
	Name           *string  `json:"name"`
	StateOrCountry *string  `json:"stateOrCountry"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
}

func (h *LocationHandler) update(c *gin.Context) {
	var req updateLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	loc, err := h.svc.UpdateLocation(c.Param("id"), portfolio.UpdateLocationInput{
		Name:           req.Name,
		StateOrCountry: req.StateOrCountry,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
