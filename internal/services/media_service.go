package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

const mediaCollection = "project_media"

// MediaFilter narrows gallery listings.
type MediaFilter struct {
	Kind     string
	Category string
	Active   bool
}

// IMediaService defines the operations over the gallery collection.
// Delete returns the removed document so callers can release the
// underlying storage object.
type IMediaService interface {
	List(ctx context.Context, filter MediaFilter) ([]models.ProjectMedia, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectMedia, error)
	Create(ctx context.Context, media *models.ProjectMedia) (*models.ProjectMedia, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectMedia, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.ProjectMedia, error)
	Reorder(ctx context.Context, orders []OrderUpdate) error
}

type mediaService struct {
	database *mongo.Database
}

// NewMediaService creates a new MediaService.
func NewMediaService(database *mongo.Database) IMediaService {
	return &mediaService{database: database}
}

func (s *mediaService) collection() *mongo.Collection {
	return s.database.Collection(mediaCollection)
}

func (s *mediaService) List(ctx context.Context, filter MediaFilter) ([]models.ProjectMedia, error) {
	query := bson.M{}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Active {
		query["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := s.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.ProjectMedia
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode media: %w", err)
	}
	return items, nil
}

func (s *mediaService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectMedia, error) {
	var media models.ProjectMedia
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding media %s: %w", id.Hex(), err)
	}
	return &media, nil
}

func (s *mediaService) Create(ctx context.Context, media *models.ProjectMedia) (*models.ProjectMedia, error) {
	if media.URL == "" {
		return nil, fmt.Errorf("%w: media url is required", ErrValidation)
	}
	if media.Kind != models.MediaImage && media.Kind != models.MediaVideo {
		return nil, fmt.Errorf("%w: unknown media kind %q", ErrValidation, media.Kind)
	}

	now := time.Now().UTC()
	media.ID = primitive.NewObjectID()
	media.IsActive = true
	media.CreatedAt = now
	media.UpdatedAt = now

	if _, err := s.collection().InsertOne(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to insert media: %w", err)
	}
	return media, nil
}

func (s *mediaService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectMedia, error) {
	set := bson.M{}
	for key, value := range updates {
		switch key {
		case "title", "category", "display_order", "is_active", "url":
			set[key] = value
		case "related_apartment":
			switch v := value.(type) {
			case nil:
				set[key] = nil
			case string:
				if v == "" {
					set[key] = nil
					continue
				}
				oid, err := primitive.ObjectIDFromHex(v)
				if err != nil {
					return nil, fmt.Errorf("%w: invalid related_apartment id", ErrValidation)
				}
				set[key] = oid
			default:
				return nil, fmt.Errorf("%w: invalid related_apartment value", ErrValidation)
			}
		default:
			return nil, fmt.Errorf("%w: field %q cannot be updated", ErrValidation, key)
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no valid fields provided for update", ErrValidation)
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.ProjectMedia
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update media %s: %w", id.Hex(), err)
	}
	return &updated, nil
}

func (s *mediaService) Delete(ctx context.Context, id primitive.ObjectID) (*models.ProjectMedia, error) {
	var deleted models.ProjectMedia
	err := s.collection().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete media %s: %w", id.Hex(), err)
	}
	return &deleted, nil
}

func (s *mediaService) Reorder(ctx context.Context, orders []OrderUpdate) error {
	return reorderCollection(ctx, s.collection(), orders)
}
