package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quiz-service/internal/store"
	"github.com/quizforge/quiz-service/internal/storage"
	"github.com/quizforge/quiz-service/internal/utils"
)

// ImageHandler uploads and removes question images via the blob store.
type ImageHandler struct {
	BaseHandler
	blobs store.BlobStore
}

func NewImageHandler(blobs store.BlobStore, logger utils.Logger) *ImageHandler {
	return &ImageHandler{
		BaseHandler: NewBaseHandler(logger.With("handler", "image")),
		blobs:       blobs,
	}
}

// UploadResponse describes a stored image. Path is the storage key used for
// later removal; URL is what quiz takers load.
type UploadResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// UploadImage accepts a multipart "image" field, validates type and size and
// stores it.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Image file is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read image file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read image file", err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, path, err := h.blobs.Upload(c.Request.Context(), fileHeader.Filename, data, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImageType) || errors.Is(err, storage.ErrImageTooLarge) {
			h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		// Blob store down: hand back an inline data URL so the author can
		// keep working. Such images have no Path and nothing to remove later.
		h.logger.LogError(err, "image upload failed, falling back to inline data URL", "filename", fileHeader.Filename)
		h.RespondWithSuccess(c, http.StatusCreated, "Image stored inline, remote upload failed", UploadResponse{
			URL:  fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)),
			Name: fileHeader.Filename,
		})
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Image uploaded successfully", UploadResponse{
		URL:  url,
		Name: fileHeader.Filename,
		Path: path,
	})
}

// RemoveRequest lists storage keys to delete.
type RemoveRequest struct {
	Paths []string `json:"paths" binding:"required"`
}

// RemoveImages deletes previously uploaded images by storage key.
func (h *ImageHandler) RemoveImages(c *gin.Context) {
	var req RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithBindingError(c, "Image paths are required", err)
		return
	}

	if err := h.blobs.Remove(c.Request.Context(), req.Paths...); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to remove images", err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Images removed successfully", gin.H{"removed": len(req.Paths)})
}
