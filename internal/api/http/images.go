package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studio-matra/portfolio-backend/internal/catalog"
	"github.com/studio-matra/portfolio-backend/internal/portfolio"
)

const maxImagesPerUpload = 20

func (h *ProjectHandler) uploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "multipart form required"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		files = form.File["files"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no files provided"})
		return
	}
	if len(files) > maxImagesPerUpload {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "too many files (max 20)"})
		return
	}

	labels := parseLabels(form.Value["labels"])

	uploads := make([]portfolio.ImageUpload, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable file: " + fh.Filename})
			return
		}
		defer f.Close()

		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		uploads = append(uploads, portfolio.ImageUpload{
			Reader:   f,
			Filename: fh.Filename,
			Label:    catalog.NormalizeLabel(label),
		})
	}

	added, err := h.svc.AddImages(c.Request.Context(), c.Param("id"), uploads)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "images": added})
}

type relabelReq struct {
	Label string `json:"label"`
}

func (h *ProjectHandler) relabelImage(c *gin.Context) {
	var req relabelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	img, err := h.svc.UpdateImageLabel(c.Param("id"), c.Param("imageId"), req.Label)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *ProjectHandler) deleteImage(c *gin.Context) {
	destroyRemote := c.Query("deleteCloudinary") == "true"
	if err := h.svc.DeleteImage(c.Request.Context(), c.Param("id"), c.Param("imageId"), destroyRemote); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
