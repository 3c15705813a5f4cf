package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/raf-aleaqarih/raf24-api/internal/api/handlers"
	"github.com/raf-aleaqarih/raf24-api/internal/geo"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

func TestRestSettingsHandler_GetProjectInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockSettingsService)
	handler := handlers.NewRestSettingsHandler(mockSvc, nil)
	r := gin.New()
	r.GET("/project", handler.GetProjectInfo)

	mockSvc.On("GetProjectInfo", mock.Anything).Return(&models.ProjectInfo{Name: "مشروع 24"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/project", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "مشروع 24", data["name"])
	mockSvc.AssertExpectations(t)
}

func TestRestSettingsHandler_UpdateProjectInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockSettingsService)
	handler := handlers.NewRestSettingsHandler(mockSvc, nil)
	r := gin.New()
	r.PUT("/project", handler.UpdateProjectInfo)

	mockSvc.On("UpdateProjectInfo", mock.Anything, map[string]interface{}{"name": "مشروع 24"}).
		Return(&models.ProjectInfo{Name: "مشروع 24"}, nil)

	w := httptest.NewRecorder()
	req := newJSONRequest("PUT", "/project", gin.H{"name": "مشروع 24"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRestSettingsHandler_UpdateContactSettings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockSettingsService)
	handler := handlers.NewRestSettingsHandler(mockSvc, nil)
	r := gin.New()
	r.PUT("/contact", handler.UpdateContactSettings)

	mockSvc.On("UpdateContactSettings", mock.Anything, map[string]interface{}{"phone": "0509999999"}).
		Return(&models.ContactSettings{Phone: "0509999999"}, nil)

	w := httptest.NewRecorder()
	req := newJSONRequest("PUT", "/contact", gin.H{"phone": "0509999999"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRestSettingsHandler_ExtractCoordinates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockSettingsService)
	handler := handlers.NewRestSettingsHandler(mockSvc, nil)
	r := gin.New()
	r.POST("/project/extract-coordinates", handler.ExtractCoordinates)

	w := postJSON(r, "/project/extract-coordinates", gin.H{
		"maps_url": "https://www.google.com/maps/@21.608013,39.140713,17z",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.InDelta(t, 21.608013, data["latitude"], 1e-9)
	assert.InDelta(t, 39.140713, data["longitude"], 1e-9)
}

func TestRestSettingsHandler_ExtractCoordinates_PlaceFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockSettingsService)
	mockGeo := new(MockGeocoder)
	handler := handlers.NewRestSettingsHandler(mockSvc, mockGeo)
	r := gin.New()
	r.POST("/project/extract-coordinates", handler.ExtractCoordinates)

	mockGeo.On("Geocode", mock.Anything, "King Abdulaziz Road").
		Return(&geo.Coordinates{Latitude: 21.6, Longitude: 39.1}, nil)

	w := postJSON(r, "/project/extract-coordinates", gin.H{
		"maps_url": "https://www.google.com/maps/place/King+Abdulaziz+Road/data=xyz",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockGeo.AssertExpectations(t)
}

func TestRestSettingsHandler_ExtractCoordinates_NoMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockSettingsService)
	handler := handlers.NewRestSettingsHandler(mockSvc, nil)
	r := gin.New()
	r.POST("/project/extract-coordinates", handler.ExtractCoordinates)

	w := postJSON(r, "/project/extract-coordinates", gin.H{
		"maps_url": "https://maps.app.goo.gl/shortlink",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestRestSettingsHandler_ExtractCoordinates_MissingURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockSettingsService)
	handler := handlers.NewRestSettingsHandler(mockSvc, nil)
	r := gin.New()
	r.POST("/project/extract-coordinates", handler.ExtractCoordinates)

	w := postJSON(r, "/project/extract-coordinates", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
