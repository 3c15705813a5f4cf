package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
)

// RestAdminHandler handles admin account management. All routes are
// restricted to super admins by the router.
type RestAdminHandler struct {
	adminService services.IAdminService
}

// NewRestAdminHandler creates a new RestAdminHandler.
func NewRestAdminHandler(adminService services.IAdminService) *RestAdminHandler {
	return &RestAdminHandler{adminService: adminService}
}

// List handles GET /api/admin/admins
func (h *RestAdminHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	admins, total, err := h.adminService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, admins, newPagination(page, limit, total))
}

// Get handles GET /api/admin/admins/:id
func (h *RestAdminHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	admin, err := h.adminService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, admin)
}

type createAdminRequest struct {
	Name        string           `json:"name" binding:"required"`
	Email       string           `json:"email" binding:"required,email"`
	Password    string           `json:"password" binding:"required,min=8"`
	Role        models.AdminRole `json:"role" binding:"required,oneof=super_admin admin editor"`
	Permissions []string         `json:"permissions"`
}

// Create handles POST /api/admin/admins
func (h *RestAdminHandler) Create(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name, email, password (min 8 chars) and a valid role are required")
		return
	}

	admin, err := h.adminService.Create(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, req.Permissions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, admin)
}

// Update handles PUT /api/admin/admins/:id
func (h *RestAdminHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.adminService.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, admin)
}

// Delete handles DELETE /api/admin/admins/:id. Self-deletion is rejected.
func (h *RestAdminHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentAdminID(c)
	if !ok {
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), id, actorID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Admin deleted")
}
