package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zeroongit/Smart-news-hub/internal/logger"
	"github.com/zeroongit/Smart-news-hub/internal/middleware"
)

// allowedImageExtensions are the upload types accepted for article images.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores article images on local disk and hands back an
// opaque reference. The lifecycle core never looks inside the
// reference, so this can be swapped for a CDN-backed store without
// touching it.
type UploadHandler struct {
	uploadDir string
	maxSize   int64
}

// NewUploadHandler creates an UploadHandler rooted at uploadDir.
func NewUploadHandler(uploadDir string, maxSize int64) (*UploadHandler, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &UploadHandler{uploadDir: uploadDir, maxSize: maxSize}, nil
}

// UploadImage handles POST /api/v1/uploads/image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	if file.Size > h.maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds maximum upload size"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	// Random name to avoid collisions and path traversal via the
	// client-supplied filename
	name := uuid.New().String() + ext
	dst := filepath.Join(h.uploadDir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.WithRequestID(middleware.GetRequestID(c)).ErrorContext(
			c.Request.Context(), "Failed to store uploaded image",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image_url": "/uploads/" + name,
	})
}
