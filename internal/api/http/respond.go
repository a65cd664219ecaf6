package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studio-matra/portfolio-backend/internal/catalog"
)

// fail maps a service error onto the taxonomy the API exposes:
// validation -> 400, missing resource -> 404, duplicate -> 409,
// everything else (media host, malformed store) -> 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, catalog.ErrLocationMissing):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Location does not exist"})
	case errors.Is(err, catalog.ErrLocationNotFound),
		errors.Is(err, catalog.ErrProjectNotFound),
		errors.Is(err, catalog.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, catalog.ErrLocationExists):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
