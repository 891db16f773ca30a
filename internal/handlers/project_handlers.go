package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/01moynul/agencyhub/internal/database"
	"github.com/01moynul/agencyhub/internal/models"
	"github.com/01moynul/agencyhub/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead is the room allowed for form fields and part headers on
// top of the image itself.
const multipartOverhead = 1 << 20

// AddProject is the handler for POST /api/project/add (multipart/form-data).
// The image is uploaded first and the row written only after that succeeds.
func (h *Handlers) AddProject(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)
	}

	// 1. --- Bind & Validate Form Fields ---
	var input models.CreateProjectInput
	if err := c.ShouldBind(&input); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		fail(c, http.StatusBadRequest, "Invalid project: "+err.Error())
		return
	}

	// 2. --- Get the Image ---
	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "Image file is required")
		return
	}
	if h.MaxUploadBytes > 0 && fileHeader.Size > h.MaxUploadBytes {
		h.tooLarge(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "Could not read image")
		return
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		fail(c, http.StatusBadRequest, "Could not read image")
		return
	}

	contentType, ext, err := storage.DetectImage(buf)
	if err != nil {
		fail(c, http.StatusBadRequest, "Uploaded file must be an image")
		return
	}

	// 3. --- Upload to the Image Host ---
	ctx := c.Request.Context()
	key := storage.ObjectKey("projects", input.Title, ext)
	url, err := h.Images.Upload(ctx, key, buf, contentType)
	if err != nil {
		h.serverError(c, "Failed to upload image", err)
		return
	}

	// 4. --- Save to Database ---
	project := &models.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Image:       url,
		ImageKey:    key,
	}
	if link := strings.TrimSpace(input.Link); link != "" {
		project.Link = &link
	}

	if err := h.Projects.Create(ctx, project); err != nil {
		// Compensate so the upload is not orphaned.
		if delErr := h.Images.Delete(ctx, key); delErr != nil {
			h.log(c).Warn("failed to remove orphaned image", zap.String("key", key), zap.Error(delErr))
		}
		h.serverError(c, "Failed to add project", err)
		return
	}

	h.log(c).Info("project added", zap.String("id", project.ID), zap.String("key", key))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Project added",
		"project": project,
	})
}

func (h *Handlers) tooLarge(c *gin.Context) {
	fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Image must be at most %d bytes", h.MaxUploadBytes))
}

// ListProjects is the handler for POST /api/project/all
func (h *Handlers) ListProjects(c *gin.Context) {
	projects, err := h.Projects.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to list projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

// RemoveProject is the handler for POST /api/project/remove
// Unknown ids succeed. The stored image is deleted after the row, best effort.
func (h *Handlers) RemoveProject(c *gin.Context) {
	var input models.ProjectIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Project id is required")
		return
	}

	ctx := c.Request.Context()
	project, err := h.Projects.Get(ctx, input.ID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.serverError(c, "Failed to remove project", err)
		return
	}

	deleted, err := h.Projects.Delete(ctx, input.ID)
	if err != nil {
		h.serverError(c, "Failed to remove project", err)
		return
	}

	if deleted && project != nil && project.ImageKey != "" {
		if err := h.Images.Delete(ctx, project.ImageKey); err != nil {
			h.log(c).Warn("failed to delete project image", zap.String("key", project.ImageKey), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project removed"})
}

// SingleProject is the handler for POST /api/project/single
func (h *Handlers) SingleProject(c *gin.Context) {
	var input models.ProjectIDInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Project id is required")
		return
	}

	project, err := h.Projects.Get(c.Request.Context(), input.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			fail(c, http.StatusNotFound, "Project not found")
			return
		}
		h.serverError(c, "Failed to fetch project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}
