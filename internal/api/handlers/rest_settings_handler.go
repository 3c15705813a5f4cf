package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raf-aleaqarih/raf24-api/internal/geo"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
)

// RestSettingsHandler serves the two singleton documents (project info,
// contact settings) and the coordinate extraction helper used by the
// dashboard's location editor.
type RestSettingsHandler struct {
	settingsService services.ISettingsService
	geocoder        geo.Geocoder
}

// NewRestSettingsHandler creates a new RestSettingsHandler. geocoder may be
// nil; extraction then relies on the URL patterns alone.
func NewRestSettingsHandler(settingsService services.ISettingsService, geocoder geo.Geocoder) *RestSettingsHandler {
	return &RestSettingsHandler{settingsService: settingsService, geocoder: geocoder}
}

// GetProjectInfo handles GET /api/public/project and GET /api/admin/project.
func (h *RestSettingsHandler) GetProjectInfo(c *gin.Context) {
	info, err := h.settingsService.GetProjectInfo(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, info)
}

// UpdateProjectInfo handles PUT /api/admin/project.
func (h *RestSettingsHandler) UpdateProjectInfo(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.settingsService.UpdateProjectInfo(c.Request.Context(), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, info)
}

// GetContactSettings handles GET /api/public/contact and
// GET /api/admin/contact.
func (h *RestSettingsHandler) GetContactSettings(c *gin.Context) {
	settings, err := h.settingsService.GetContactSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, settings)
}

// UpdateContactSettings handles PUT /api/admin/contact.
func (h *RestSettingsHandler) UpdateContactSettings(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateContactSettings(c.Request.Context(), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, settings)
}

type extractCoordinatesRequest struct {
	MapsURL string `json:"maps_url" binding:"required"`
}

// ExtractCoordinates handles POST /api/admin/project/extract-coordinates.
// Lets the dashboard preview the parsed position before saving.
func (h *RestSettingsHandler) ExtractCoordinates(c *gin.Context) {
	var req extractCoordinatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "maps_url is required")
		return
	}

	coords, err := geo.ExtractCoordinates(c.Request.Context(), req.MapsURL, h.geocoder)
	if err != nil {
		if errors.Is(err, geo.ErrNoCoordinates) {
			respondError(c, http.StatusUnprocessableEntity, "No coordinates could be extracted from this URL")
			return
		}
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, coords)
}
