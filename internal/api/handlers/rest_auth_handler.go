package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raf-aleaqarih/raf24-api/internal/api/middleware"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
)

// RestAuthHandler handles the authentication endpoints of the dashboard.
type RestAuthHandler struct {
	adminService services.IAdminService
}

// NewRestAuthHandler creates a new RestAuthHandler.
func NewRestAuthHandler(adminService services.IAdminService) *RestAuthHandler {
	return &RestAuthHandler{adminService: adminService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/admin/auth/login
func (h *RestAuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	admin, pair, err := h.adminService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"admin":  admin,
		"tokens": pair,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /api/admin/auth/refresh. The presented token is
// rotated: it stops working and a new pair is returned.
func (h *RestAuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	admin, pair, err := h.adminService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"admin":  admin,
		"tokens": pair,
	})
}

// Logout handles POST /api/admin/auth/logout. Succeeds even when the token
// is already revoked.
func (h *RestAuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	if err := h.adminService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Logged out")
}

// Me handles GET /api/admin/auth/me
func (h *RestAuthHandler) Me(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	admin, err := h.adminService.FindByID(c.Request.Context(), adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, admin)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword handles PUT /api/admin/auth/password. All refresh tokens
// are revoked, so other sessions must log in again.
func (h *RestAuthHandler) ChangePassword(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "current_password and new_password (min 8 chars) are required")
		return
	}

	if err := h.adminService.ChangePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Password updated")
}

// currentAdminID reads the authenticated admin ID placed in the context by
// the auth middleware.
func currentAdminID(c *gin.Context) (primitive.ObjectID, bool) {
	idHex := c.GetString(middleware.ContextKeyAdminID)
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid session")
		return primitive.NilObjectID, false
	}
	return id, true
}
