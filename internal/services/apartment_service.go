package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

// ApartmentFilter narrows List results.
type ApartmentFilter struct {
	Status string // empty means all
}

// IApartmentService defines operations on apartment models.
type IApartmentService interface {
	List(ctx context.Context, filter ApartmentFilter, page, limit int) ([]models.ApartmentModel, int64, error)
	ListActive(ctx context.Context) ([]models.ApartmentModel, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ApartmentModel, error)
	Create(ctx context.Context, apartment *models.ApartmentModel) (*models.ApartmentModel, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ApartmentModel, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.ApartmentModel, error)
	Reorder(ctx context.Context, orders []OrderUpdate) error
}

// OrderUpdate is one id/order pair of a reorder request.
type OrderUpdate struct {
	ID    primitive.ObjectID `json:"id" binding:"required"`
	Order int                `json:"order"`
}

const apartmentsCollection = "apartment_models"

type apartmentService struct {
	db *mongo.Database
}

// NewApartmentService creates a new ApartmentService.
func NewApartmentService(database *mongo.Database) IApartmentService {
	return &apartmentService{db: database}
}

// normalizeImages trims surrounding whitespace and rejects anything that is
// not an absolute http(s) URL. Order is preserved.
func normalizeImages(images []string) ([]string, error) {
	out := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		if !strings.HasPrefix(img, "http://") && !strings.HasPrefix(img, "https://") {
			return nil, fmt.Errorf("%w: image %q is not an absolute URL", ErrValidation, img)
		}
		out = append(out, img)
	}
	return out, nil
}

func (s *apartmentService) List(ctx context.Context, filter ApartmentFilter, page, limit int) ([]models.ApartmentModel, int64, error) {
	collection := s.db.Collection(apartmentsCollection)

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count apartment models: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "created_at", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list apartment models: %w", err)
	}
	defer cursor.Close(ctx)

	var apartments []models.ApartmentModel
	if err := cursor.All(ctx, &apartments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode apartment models: %w", err)
	}
	return apartments, total, nil
}

// ListActive returns active apartment models in display order, for the
// public landing page.
func (s *apartmentService) ListActive(ctx context.Context) ([]models.ApartmentModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	cursor, err := s.db.Collection(apartmentsCollection).Find(ctx, bson.M{"status": bson.M{"$ne": models.ApartmentInactive}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active apartment models: %w", err)
	}
	defer cursor.Close(ctx)

	var apartments []models.ApartmentModel
	if err := cursor.All(ctx, &apartments); err != nil {
		return nil, fmt.Errorf("failed to decode apartment models: %w", err)
	}
	return apartments, nil
}

func (s *apartmentService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ApartmentModel, error) {
	var apartment models.ApartmentModel
	err := s.db.Collection(apartmentsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&apartment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding apartment model %s: %w", id.Hex(), err)
	}
	return &apartment, nil
}

func (s *apartmentService) Create(ctx context.Context, apartment *models.ApartmentModel) (*models.ApartmentModel, error) {
	images, err := normalizeImages(apartment.Images)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	apartment.ID = primitive.NewObjectID()
	apartment.Images = images
	if apartment.Status == "" {
		apartment.Status = models.ApartmentActive
	}
	apartment.CreatedAt = now
	apartment.UpdatedAt = now

	if _, err := s.db.Collection(apartmentsCollection).InsertOne(ctx, apartment); err != nil {
		return nil, fmt.Errorf("failed to insert apartment model %s: %w", apartment.ModelName, err)
	}
	return apartment, nil
}

func (s *apartmentService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ApartmentModel, error) {
	allowed := bson.M{}
	for key, value := range updates {
		switch key {
		case "model_name", "title", "description", "price", "area", "rooms", "bathrooms", "features", "status", "display_order":
			allowed[key] = value
		case "images":
			raw, ok := value.([]string)
			if !ok {
				if anySlice, isAny := value.([]interface{}); isAny {
					for _, v := range anySlice {
						str, strOK := v.(string)
						if !strOK {
							return nil, fmt.Errorf("%w: images must be strings", ErrValidation)
						}
						raw = append(raw, str)
					}
				} else {
					return nil, fmt.Errorf("%w: images must be a string list", ErrValidation)
				}
			}
			images, err := normalizeImages(raw)
			if err != nil {
				return nil, err
			}
			allowed["images"] = images
		default:
			return nil, fmt.Errorf("%w: field %q cannot be updated", ErrValidation, key)
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("%w: no valid fields provided for update", ErrValidation)
	}
	allowed["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.ApartmentModel
	err := s.db.Collection(apartmentsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": allowed}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update apartment model %s: %w", id.Hex(), err)
	}
	return &updated, nil
}

// Delete removes the apartment model and returns the deleted document so the
// caller can clean up its storage assets best-effort.
func (s *apartmentService) Delete(ctx context.Context, id primitive.ObjectID) (*models.ApartmentModel, error) {
	var deleted models.ApartmentModel
	err := s.db.Collection(apartmentsCollection).FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete apartment model %s: %w", id.Hex(), err)
	}
	return &deleted, nil
}

// Reorder applies one UpdateOne per item. There is no atomicity across the
// batch: a failure part-way leaves earlier updates in place and is reported
// with the offending ID so the caller can re-submit the full order.
func (s *apartmentService) Reorder(ctx context.Context, orders []OrderUpdate) error {
	return reorderCollection(ctx, s.db.Collection(apartmentsCollection), orders)
}

// reorderCollection is shared by every entity with a display_order field.
func reorderCollection(ctx context.Context, collection *mongo.Collection, orders []OrderUpdate) error {
	now := time.Now().UTC()
	for _, item := range orders {
		update := bson.M{"$set": bson.M{"display_order": item.Order, "updated_at": now}}
		result, err := collection.UpdateByID(ctx, item.ID, update)
		if err != nil {
			return fmt.Errorf("failed to reorder item %s: %w", item.ID.Hex(), err)
		}
		if result.MatchedCount == 0 {
			return fmt.Errorf("%w: item %s", ErrNotFound, item.ID.Hex())
		}
	}
	return nil
}
