package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/config"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
	"github.com/raf-aleaqarih/raf24-api/internal/storage"
	"github.com/raf-aleaqarih/raf24-api/internal/tasks"
)

// RestMediaHandler handles the gallery endpoints including multipart
// uploads.
type RestMediaHandler struct {
	mediaService services.IMediaService
	store        storage.IObjectStorage
	taskClient   *asynq.Client
	cfg          *config.Config
	logger       *zap.Logger
}

// NewRestMediaHandler creates a new RestMediaHandler. taskClient may be nil
// in tests; variant generation and cleanup are then skipped.
func NewRestMediaHandler(
	mediaService services.IMediaService,
	store storage.IObjectStorage,
	taskClient *asynq.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *RestMediaHandler {
	return &RestMediaHandler{
		mediaService: mediaService,
		store:        store,
		taskClient:   taskClient,
		cfg:          cfg,
		logger:       logger,
	}
}

// ListPublic handles GET /api/public/media. Only active entries, optionally
// narrowed by kind and category.
func (h *RestMediaHandler) ListPublic(c *gin.Context) {
	items, err := h.mediaService.List(c.Request.Context(), services.MediaFilter{
		Kind:     c.Query("kind"),
		Category: c.Query("category"),
		Active:   true,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

// List handles GET /api/admin/media
func (h *RestMediaHandler) List(c *gin.Context) {
	items, err := h.mediaService.List(c.Request.Context(), services.MediaFilter{
		Kind:     c.Query("kind"),
		Category: c.Query("category"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

// Get handles GET /api/admin/media/:id
func (h *RestMediaHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	media, err := h.mediaService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, media)
}

// Create handles POST /api/admin/media for URL-based entries such as
// YouTube videos. File uploads go through Upload instead.
func (h *RestMediaHandler) Create(c *gin.Context) {
	var media models.ProjectMedia
	if err := c.ShouldBindJSON(&media); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.mediaService.Create(c.Request.Context(), &media)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

// uploadResult reports the outcome for one file in an upload batch.
type uploadResult struct {
	Filename string               `json:"filename"`
	Error    string               `json:"error,omitempty"`
	Media    *models.ProjectMedia `json:"media,omitempty"`
}

// Upload handles POST /api/admin/media/upload. Files are processed
// sequentially; one failed file does not abort the batch. Each stored image
// gets a variant-generation task.
func (h *RestMediaHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Multipart form required")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "At least one file required in field 'files'")
		return
	}
	category := c.PostForm("category")

	maxSize := int64(h.cfg.UploadMaxSizeMB) * 1024 * 1024
	results := make([]uploadResult, 0, len(files))
	succeeded := 0

	for _, fileHeader := range files {
		result := uploadResult{Filename: fileHeader.Filename}

		if fileHeader.Size > maxSize {
			result.Error = "file exceeds maximum size"
			results = append(results, result)
			continue
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			result.Error = "only image uploads are accepted"
			results = append(results, result)
			continue
		}

		file, openErr := fileHeader.Open()
		if openErr != nil {
			result.Error = "could not read file"
			results = append(results, result)
			continue
		}

		url, key, upErr := h.store.Upload(c.Request.Context(), category, fileHeader.Filename, contentType, file, fileHeader.Size)
		file.Close()
		if upErr != nil {
			h.logger.Error("media upload failed",
				zap.String("filename", fileHeader.Filename), zap.Error(upErr))
			result.Error = "storage upload failed"
			results = append(results, result)
			continue
		}

		media, createErr := h.mediaService.Create(c.Request.Context(), &models.ProjectMedia{
			Title:    fileHeader.Filename,
			URL:      url,
			PublicID: key,
			Kind:     models.MediaImage,
			Category: category,
		})
		if createErr != nil {
			// Orphaned object; hand it to the cleanup task.
			h.enqueueCleanup(c, []string{key})
			result.Error = "could not save media record"
			results = append(results, result)
			continue
		}

		if h.taskClient != nil {
			task, taskErr := tasks.NewImageVariantsTask(key)
			if taskErr == nil {
				_, taskErr = h.taskClient.EnqueueContext(c.Request.Context(), task)
			}
			if taskErr != nil {
				h.logger.Warn("failed to enqueue variant generation",
					zap.String("key", key), zap.Error(taskErr))
			}
		}

		result.Media = media
		results = append(results, result)
		succeeded++
	}

	status := http.StatusCreated
	if succeeded == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"success": succeeded > 0, "data": results})
}

// Update handles PUT /api/admin/media/:id
func (h *RestMediaHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.mediaService.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/media/:id. The stored object and its
// variants are removed by the bg worker; a failed enqueue does not fail
// the delete.
func (h *RestMediaHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.mediaService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if deleted.PublicID != "" {
		h.enqueueCleanup(c, []string{deleted.PublicID})
	}
	respondMessage(c, http.StatusOK, "Media deleted")
}

// Reorder handles PUT /api/admin/media/reorder
func (h *RestMediaHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "orders must be a non-empty list of {id, order}")
		return
	}

	if err := h.mediaService.Reorder(c.Request.Context(), req.Orders); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated")
}

func (h *RestMediaHandler) enqueueCleanup(c *gin.Context, keys []string) {
	if h.taskClient == nil {
		return
	}
	task, err := tasks.NewStorageCleanupTask(keys)
	if err == nil {
		_, err = h.taskClient.EnqueueContext(c.Request.Context(), task)
	}
	if err != nil {
		h.logger.Warn("failed to enqueue storage cleanup",
			zap.Strings("keys", keys), zap.Error(err))
	}
}
