package service

import (
	"fmt"
	"math/rand"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gazette/internal/config"
	"gazette/internal/models"
	"gazette/internal/observability"
)

const (
	// UploadFieldName is the multipart form field images arrive in.
	UploadFieldName = "imageFile"

	maxUploadSizeBytes = 5 * 1024 * 1024
)

// UploadService stores post cover images on local disk and hands back the
// public URL they are served under.
type UploadService struct {
	uploadDir string
}

// NewUploadService returns a new UploadService writing into the configured
// public directory.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{uploadDir: cfg.UploadDir()}
}

// UploadResult describes a stored image.
type UploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// SaveImage validates and persists an uploaded image. The stored name is
// derived from the form field, the upload time, and a random suffix so
// concurrent uploads never collide on the original filename.
func (s *UploadService) SaveImage(originalName string, content []byte) (*UploadResult, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	// Oversized bodies are normally cut off by the server body limit with a
	// 413; this check catches files that squeeze under it, as a bad input.
	if int64(len(content)) > maxUploadSizeBytes {
		observability.ImageUploadsTotal.WithLabelValues("too_large").Inc()
		return nil, models.NewValidationError("File exceeds 5MB limit")
	}

	detectedType := normalizeContentType(http.DetectContentType(content))
	if !isAllowedImageMIME(detectedType) {
		observability.ImageUploadsTotal.WithLabelValues("bad_type").Inc()
		return nil, models.NewValidationError("Only JPEG, PNG, GIF and WebP images are allowed")
	}

	filename := fmt.Sprintf("%s-%d-%d%s",
		UploadFieldName,
		time.Now().UnixMilli(),
		rand.Int63n(1_000_000_000),
		extensionFor(detectedType, originalName),
	)

	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, filename), content, 0o600); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.ImageUploadsTotal.WithLabelValues("ok").Inc()
	return &UploadResult{
		Filename: filename,
		URL:      "/uploads/images/" + filename,
		Size:     int64(len(content)),
		MimeType: detectedType,
	}, nil
}

// extensionFor prefers the extension matching the sniffed type and falls
// back to the client-supplied one.
func extensionFor(detectedType, originalName string) string {
	switch detectedType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" {
		return ext
	}
	return ".bin"
}

func isAllowedImageMIME(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
