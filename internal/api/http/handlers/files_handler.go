package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/storage"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// FilesHandler serves stored blobs and accepts standalone uploads.
type FilesHandler struct {
	blobs     storage.BlobStore
	maxUpload int64
}

// NewFilesHandler constructs handler.
func NewFilesHandler(blobs storage.BlobStore, maxUploadBytes int64) *FilesHandler {
	return &FilesHandler{blobs: blobs, maxUpload: maxUploadBytes}
}

// Serve handles GET /api/files/+. The wildcard keeps slashes in keys
// like profiles/... intact.
func (h *FilesHandler) Serve(c *fiber.Ctx) error {
	key := c.Params("+")
	if key == "" {
		return apperrors.NewValidationError("key es obligatorio", nil)
	}

	object, err := h.blobs.Get(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFound("archivo", map[string]any{"key": key})
		}
		return apperrors.NewStorageFailure(err)
	}

	if object.ContentType != "" {
		c.Set(fiber.HeaderContentType, object.ContentType)
	}
	if object.ETag != "" {
		c.Set(fiber.HeaderETag, object.ETag)
	}
	if strings.HasSuffix(strings.ToLower(key), ".gpx") {
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="%s"`, downloadFileName(key)))
	}
	return c.Send(object.Body)
}

// Upload handles POST /api/upload.
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("No file provided", nil)
	}
	if h.maxUpload > 0 && header.Size > h.maxUpload {
		return apperrors.NewValidationError("el archivo supera el tamaño máximo permitido", nil)
	}

	file, err := header.Open()
	if err != nil {
		return apperrors.NewValidationError("no se pudo leer el archivo", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), header.Filename)
	if err := h.blobs.Put(c.UserContext(), key, data, header.Header.Get("Content-Type")); err != nil {
		return apperrors.NewStorageFailure(err)
	}

	return c.Status(http.StatusOK).JSON(dto.UploadResponse{Key: key})
}

// downloadFileName strips the upload timestamp prefix so the browser
// suggests the original name: 1712345-ruta.gpx downloads as ruta.gpx.
func downloadFileName(key string) string {
	base := path.Base(key)
	parts := strings.Split(base, "-")
	if len(parts) < 2 {
		return base
	}
	return strings.Join(parts[1:], "-")
}
