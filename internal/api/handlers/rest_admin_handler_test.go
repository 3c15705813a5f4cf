package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raf-aleaqarih/raf24-api/internal/api/handlers"
	"github.com/raf-aleaqarih/raf24-api/internal/api/middleware"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
)

func TestRestAdminHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockAdminService)
	handler := handlers.NewRestAdminHandler(mockSvc)
	r := gin.New()
	r.POST("/admins", handler.Create)

	created := &models.Admin{ID: primitive.NewObjectID(), Email: "editor@example.com", Role: models.RoleEditor}
	mockSvc.On("Create", mock.Anything, "Editor", "editor@example.com", "password123",
		models.RoleEditor, []string{models.PermManageContent}).Return(created, nil)

	w := postJSON(r, "/admins", gin.H{
		"name":        "Editor",
		"email":       "editor@example.com",
		"password":    "password123",
		"role":        "editor",
		"permissions": []string{models.PermManageContent},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRestAdminHandler_Create_InvalidRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockAdminService)
	handler := handlers.NewRestAdminHandler(mockSvc)
	r := gin.New()
	r.POST("/admins", handler.Create)

	w := postJSON(r, "/admins", gin.H{
		"name":     "Editor",
		"email":    "editor@example.com",
		"password": "password123",
		"role":     "owner",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestRestAdminHandler_Create_DuplicateEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockAdminService)
	handler := handlers.NewRestAdminHandler(mockSvc)
	r := gin.New()
	r.POST("/admins", handler.Create)

	mockSvc.On("Create", mock.Anything, "Editor", "editor@example.com", "password123",
		models.RoleEditor, mock.Anything).Return(nil, services.ErrEmailExists)

	w := postJSON(r, "/admins", gin.H{
		"name":     "Editor",
		"email":    "editor@example.com",
		"password": "password123",
		"role":     "editor",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email is already registered", body["message"])
	mockSvc.AssertExpectations(t)
}

func TestRestAdminHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockAdminService)
	handler := handlers.NewRestAdminHandler(mockSvc)
	r := gin.New()
	r.GET("/admins", handler.List)

	mockSvc.On("List", mock.Anything, 1, 20).Return([]models.Admin{{Email: "a@example.com"}}, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admins", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRestAdminHandler_Delete_Self(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockAdminService)
	handler := handlers.NewRestAdminHandler(mockSvc)
	actorID := primitive.NewObjectID()
	r := gin.New()
	r.DELETE("/admins/:id", func(c *gin.Context) {
		c.Set(middleware.ContextKeyAdminID, actorID.Hex())
	}, handler.Delete)

	mockSvc.On("Delete", mock.Anything, actorID, actorID).Return(services.ErrSelfDeletion)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admins/"+actorID.Hex(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRestAdminHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockAdminService)
	handler := handlers.NewRestAdminHandler(mockSvc)
	r := gin.New()
	r.PUT("/admins/:id", handler.Update)

	id := primitive.NewObjectID()
	mockSvc.On("Update", mock.Anything, id, map[string]interface{}{"is_active": false}).
		Return(&models.Admin{ID: id, IsActive: false}, nil)

	w := httptest.NewRecorder()
	req := newJSONRequest("PUT", "/admins/"+id.Hex(), gin.H{"is_active": false})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
