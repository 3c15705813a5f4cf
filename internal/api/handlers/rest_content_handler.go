package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raf-aleaqarih/raf24-api/internal/services"
)

// contentAPI is the shape shared by the feature, warranty and location
// feature services. The generic handler below serves all three resources.
type contentAPI[T any] interface {
	List(ctx context.Context, activeOnly bool) ([]T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Reorder(ctx context.Context, orders []services.OrderUpdate) error
}

// RestContentHandler serves CRUD and reorder for one flat content resource.
type RestContentHandler[T any] struct {
	service  contentAPI[T]
	resource string
}

// NewRestContentHandler creates a handler for one content resource. The
// resource name only appears in response messages.
func NewRestContentHandler[T any](service contentAPI[T], resource string) *RestContentHandler[T] {
	return &RestContentHandler[T]{service: service, resource: resource}
}

// ListPublic handles the public GET; only active entries are returned.
func (h *RestContentHandler[T]) ListPublic(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

// List handles the admin GET; all entries are returned.
func (h *RestContentHandler[T]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

// Get handles the admin GET by ID.
func (h *RestContentHandler[T]) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// Create handles the admin POST.
func (h *RestContentHandler[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

// Update handles the admin PUT by ID.
func (h *RestContentHandler[T]) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete handles the admin DELETE by ID.
func (h *RestContentHandler[T]) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, h.resource+" deleted")
}

// Reorder handles the admin PUT reorder.
func (h *RestContentHandler[T]) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "orders must be a non-empty list of {id, order}")
		return
	}

	if err := h.service.Reorder(c.Request.Context(), req.Orders); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated")
}
