package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raf-aleaqarih/raf24-api/internal/geo"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
)

// --- Mocks ---

// MockAdminService implements services.IAdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(ctx context.Context, email, password string) (*models.Admin, *services.TokenPair, error) {
	args := m.Called(ctx, email, password)
	var admin *models.Admin
	var pair *services.TokenPair
	if args.Get(0) != nil {
		admin = args.Get(0).(*models.Admin)
	}
	if args.Get(1) != nil {
		pair = args.Get(1).(*services.TokenPair)
	}
	return admin, pair, args.Error(2)
}

func (m *MockAdminService) Refresh(ctx context.Context, refreshToken string) (*models.Admin, *services.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	var admin *models.Admin
	var pair *services.TokenPair
	if args.Get(0) != nil {
		admin = args.Get(0).(*models.Admin)
	}
	if args.Get(1) != nil {
		pair = args.Get(1).(*services.TokenPair)
	}
	return admin, pair, args.Error(2)
}

func (m *MockAdminService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAdminService) ChangePassword(ctx context.Context, adminID primitive.ObjectID, currentPassword, newPassword string) error {
	args := m.Called(ctx, adminID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAdminService) FindByID(ctx context.Context, adminID primitive.ObjectID) (*models.Admin, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminService) List(ctx context.Context, page, limit int) ([]models.Admin, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Admin), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdminService) Create(ctx context.Context, name, email, password string, role models.AdminRole, permissions []string) (*models.Admin, error) {
	args := m.Called(ctx, name, email, password, role, permissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminService) Update(ctx context.Context, adminID primitive.ObjectID, updates map[string]interface{}) (*models.Admin, error) {
	args := m.Called(ctx, adminID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminService) Delete(ctx context.Context, adminID, actorID primitive.ObjectID) error {
	args := m.Called(ctx, adminID, actorID)
	return args.Error(0)
}

// MockApartmentService implements services.IApartmentService
type MockApartmentService struct {
	mock.Mock
}

func (m *MockApartmentService) List(ctx context.Context, filter services.ApartmentFilter, page, limit int) ([]models.ApartmentModel, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.ApartmentModel), args.Get(1).(int64), args.Error(2)
}

func (m *MockApartmentService) ListActive(ctx context.Context) ([]models.ApartmentModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ApartmentModel), args.Error(1)
}

func (m *MockApartmentService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ApartmentModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApartmentModel), args.Error(1)
}

func (m *MockApartmentService) Create(ctx context.Context, apartment *models.ApartmentModel) (*models.ApartmentModel, error) {
	args := m.Called(ctx, apartment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApartmentModel), args.Error(1)
}

func (m *MockApartmentService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ApartmentModel, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApartmentModel), args.Error(1)
}

func (m *MockApartmentService) Delete(ctx context.Context, id primitive.ObjectID) (*models.ApartmentModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ApartmentModel), args.Error(1)
}

func (m *MockApartmentService) Reorder(ctx context.Context, orders []services.OrderUpdate) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

// MockInquiryService implements services.IInquiryService
type MockInquiryService struct {
	mock.Mock
}

func (m *MockInquiryService) Create(ctx context.Context, input services.NewInquiryInput) (*models.Inquiry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *MockInquiryService) List(ctx context.Context, filter services.InquiryFilter, page, limit int) ([]models.Inquiry, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Inquiry), args.Get(1).(int64), args.Error(2)
}

func (m *MockInquiryService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *MockInquiryService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.Inquiry, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *MockInquiryService) AddNote(ctx context.Context, id primitive.ObjectID, text, author string) (*models.Inquiry, error) {
	args := m.Called(ctx, id, text, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *MockInquiryService) AddFollowUp(ctx context.Context, id primitive.ObjectID, date time.Time, note string) (*models.Inquiry, error) {
	args := m.Called(ctx, id, date, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inquiry), args.Error(1)
}

func (m *MockInquiryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMediaService implements services.IMediaService
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) List(ctx context.Context, filter services.MediaFilter) ([]models.ProjectMedia, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectMedia), args.Error(1)
}

func (m *MockMediaService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectMedia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMedia), args.Error(1)
}

func (m *MockMediaService) Create(ctx context.Context, media *models.ProjectMedia) (*models.ProjectMedia, error) {
	args := m.Called(ctx, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMedia), args.Error(1)
}

func (m *MockMediaService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectMedia, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMedia), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, id primitive.ObjectID) (*models.ProjectMedia, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMedia), args.Error(1)
}

func (m *MockMediaService) Reorder(ctx context.Context, orders []services.OrderUpdate) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

// MockSettingsService implements services.ISettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetProjectInfo(ctx context.Context) (*models.ProjectInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectInfo), args.Error(1)
}

func (m *MockSettingsService) UpdateProjectInfo(ctx context.Context, updates map[string]interface{}) (*models.ProjectInfo, error) {
	args := m.Called(ctx, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectInfo), args.Error(1)
}

func (m *MockSettingsService) GetContactSettings(ctx context.Context) (*models.ContactSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateContactSettings(ctx context.Context, updates map[string]interface{}) (*models.ContactSettings, error) {
	args := m.Called(ctx, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactSettings), args.Error(1)
}

// MockFeatureService implements services.IFeatureService
type MockFeatureService struct {
	mock.Mock
}

func (m *MockFeatureService) List(ctx context.Context, activeOnly bool) ([]models.ProjectFeature, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectFeature), args.Error(1)
}

func (m *MockFeatureService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectFeature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectFeature), args.Error(1)
}

func (m *MockFeatureService) Create(ctx context.Context, feature *models.ProjectFeature) (*models.ProjectFeature, error) {
	args := m.Called(ctx, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectFeature), args.Error(1)
}

func (m *MockFeatureService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectFeature, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectFeature), args.Error(1)
}

func (m *MockFeatureService) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFeatureService) Reorder(ctx context.Context, orders []services.OrderUpdate) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

// MockGeocoder implements geo.Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (*geo.Coordinates, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Coordinates), args.Error(1)
}
