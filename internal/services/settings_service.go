package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/geo"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

const (
	projectInfoCollection     = "project_info"
	contactSettingsCollection = "contact_settings"
)

// ISettingsService manages the two singleton documents: project info and
// contact/tracking settings. Reads return an empty document rather than an
// error when nothing has been saved yet, so the public site always gets a
// well-formed payload.
type ISettingsService interface {
	GetProjectInfo(ctx context.Context) (*models.ProjectInfo, error)
	UpdateProjectInfo(ctx context.Context, updates map[string]interface{}) (*models.ProjectInfo, error)
	GetContactSettings(ctx context.Context) (*models.ContactSettings, error)
	UpdateContactSettings(ctx context.Context, updates map[string]interface{}) (*models.ContactSettings, error)
}

type settingsService struct {
	database *mongo.Database
	geocoder geo.Geocoder
	logger   *zap.Logger
}

// NewSettingsService creates a new SettingsService. geocoder may be nil,
// in which case coordinate extraction relies on the URL patterns alone.
func NewSettingsService(database *mongo.Database, geocoder geo.Geocoder, logger *zap.Logger) ISettingsService {
	return &settingsService{database: database, geocoder: geocoder, logger: logger}
}

func (s *settingsService) GetProjectInfo(ctx context.Context) (*models.ProjectInfo, error) {
	var info models.ProjectInfo
	err := s.database.Collection(projectInfoCollection).FindOne(ctx, bson.M{}).Decode(&info)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.ProjectInfo{}, nil
		}
		return nil, fmt.Errorf("error loading project info: %w", err)
	}
	return &info, nil
}

var projectInfoFields = map[string]bool{
	"name": true, "description": true, "address": true,
	"maps_url": true, "latitude": true, "longitude": true, "video_url": true,
}

func (s *settingsService) UpdateProjectInfo(ctx context.Context, updates map[string]interface{}) (*models.ProjectInfo, error) {
	set := bson.M{}
	for key, value := range updates {
		if !projectInfoFields[key] {
			return nil, fmt.Errorf("%w: field %q cannot be updated", ErrValidation, key)
		}
		set[key] = value
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no valid fields provided for update", ErrValidation)
	}

	// A new maps URL re-derives the coordinates unless the caller pinned
	// them explicitly in the same request.
	if rawURL, ok := set["maps_url"].(string); ok && rawURL != "" {
		_, hasLat := set["latitude"]
		_, hasLng := set["longitude"]
		if !hasLat && !hasLng {
			coords, err := geo.ExtractCoordinates(ctx, rawURL, s.geocoder)
			if err != nil {
				s.logger.Warn("could not extract coordinates from maps url",
					zap.String("url", rawURL), zap.Error(err))
			} else {
				set["latitude"] = coords.Latitude
				set["longitude"] = coords.Longitude
			}
		}
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.ProjectInfo
	err := s.database.Collection(projectInfoCollection).
		FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update project info: %w", err)
	}
	return &updated, nil
}

func (s *settingsService) GetContactSettings(ctx context.Context) (*models.ContactSettings, error) {
	var settings models.ContactSettings
	err := s.database.Collection(contactSettingsCollection).FindOne(ctx, bson.M{}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.ContactSettings{}, nil
		}
		return nil, fmt.Errorf("error loading contact settings: %w", err)
	}
	return &settings, nil
}

var contactSettingsFields = map[string]bool{
	"phone": true, "whatsapp": true, "email": true, "social": true, "pixels": true,
}

func (s *settingsService) UpdateContactSettings(ctx context.Context, updates map[string]interface{}) (*models.ContactSettings, error) {
	set := bson.M{}
	for key, value := range updates {
		if !contactSettingsFields[key] {
			return nil, fmt.Errorf("%w: field %q cannot be updated", ErrValidation, key)
		}
		set[key] = value
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no valid fields provided for update", ErrValidation)
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.ContactSettings
	err := s.database.Collection(contactSettingsCollection).
		FindOneAndUpdate(ctx, bson.M{}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact settings: %w", err)
	}
	return &updated, nil
}
