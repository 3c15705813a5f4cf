package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
)

// RestApartmentHandler handles the apartment model endpoints, both the
// public listing and the admin CRUD. Apartment images are URLs referencing
// gallery media; the objects themselves are owned and cleaned up by the
// media endpoints.
type RestApartmentHandler struct {
	apartmentService services.IApartmentService
}

// NewRestApartmentHandler creates a new RestApartmentHandler.
func NewRestApartmentHandler(apartmentService services.IApartmentService) *RestApartmentHandler {
	return &RestApartmentHandler{apartmentService: apartmentService}
}

// ListPublic handles GET /api/public/apartments. Inactive models are hidden,
// sold-out ones stay visible with their status.
func (h *RestApartmentHandler) ListPublic(c *gin.Context) {
	apartments, err := h.apartmentService.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, apartments)
}

// List handles GET /api/admin/apartments
func (h *RestApartmentHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := services.ApartmentFilter{Status: c.Query("status")}

	apartments, total, err := h.apartmentService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, apartments, newPagination(page, limit, total))
}

// Get handles GET /api/admin/apartments/:id
func (h *RestApartmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	apartment, err := h.apartmentService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, apartment)
}

// Create handles POST /api/admin/apartments
func (h *RestApartmentHandler) Create(c *gin.Context) {
	var apartment models.ApartmentModel
	if err := c.ShouldBindJSON(&apartment); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.apartmentService.Create(c.Request.Context(), &apartment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

// Update handles PUT /api/admin/apartments/:id
func (h *RestApartmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.apartmentService.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/apartments/:id
func (h *RestApartmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.apartmentService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Apartment model deleted")
}

type reorderRequest struct {
	Orders []services.OrderUpdate `json:"orders" binding:"required,min=1,dive"`
}

// Reorder handles PUT /api/admin/apartments/reorder
func (h *RestApartmentHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "orders must be a non-empty list of {id, order}")
		return
	}

	if err := h.apartmentService.Reorder(c.Request.Context(), req.Orders); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order updated")
}
