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

// The feature list, warranty grid and location-feature list are flat content
// records sharing the same CRUD shape: ordered by display_order, filterable
// by is_active, updatable field-by-field. contentCRUD carries that shape
// once; the typed services below only add their allowed field sets.

type contentCRUD[T any] struct {
	coll    *mongo.Collection
	allowed map[string]bool
}

func (c *contentCRUD[T]) list(ctx context.Context, activeOnly bool) ([]T, error) {
	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := c.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.coll.Name(), err)
	}
	return items, nil
}

func (c *contentCRUD[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var item T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding %s %s: %w", c.coll.Name(), id.Hex(), err)
	}
	return &item, nil
}

func (c *contentCRUD[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *contentCRUD[T]) update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*T, error) {
	set := bson.M{}
	for key, value := range updates {
		if !c.allowed[key] {
			return nil, fmt.Errorf("%w: field %q cannot be updated", ErrValidation, key)
		}
		set[key] = value
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no valid fields provided for update", ErrValidation)
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated T
	err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s %s: %w", c.coll.Name(), id.Hex(), err)
	}
	return &updated, nil
}

func (c *contentCRUD[T]) delete(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var deleted T
	err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete %s %s: %w", c.coll.Name(), id.Hex(), err)
	}
	return &deleted, nil
}

func (c *contentCRUD[T]) reorder(ctx context.Context, orders []OrderUpdate) error {
	return reorderCollection(ctx, c.coll, orders)
}

// --- Project features ---

// IFeatureService defines CRUD over the landing page feature list.
type IFeatureService interface {
	List(ctx context.Context, activeOnly bool) ([]models.ProjectFeature, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectFeature, error)
	Create(ctx context.Context, feature *models.ProjectFeature) (*models.ProjectFeature, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectFeature, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Reorder(ctx context.Context, orders []OrderUpdate) error
}

type featureService struct {
	crud contentCRUD[models.ProjectFeature]
}

// NewFeatureService creates a new FeatureService.
func NewFeatureService(database *mongo.Database) IFeatureService {
	return &featureService{crud: contentCRUD[models.ProjectFeature]{
		coll:    database.Collection("project_features"),
		allowed: map[string]bool{"title": true, "description": true, "icon": true, "display_order": true, "is_active": true},
	}}
}

func (s *featureService) List(ctx context.Context, activeOnly bool) ([]models.ProjectFeature, error) {
	return s.crud.list(ctx, activeOnly)
}

func (s *featureService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectFeature, error) {
	return s.crud.findByID(ctx, id)
}

// Create inserts a new feature. New entries always start active; visibility
// is toggled afterwards through Update.
func (s *featureService) Create(ctx context.Context, feature *models.ProjectFeature) (*models.ProjectFeature, error) {
	now := time.Now().UTC()
	feature.ID = primitive.NewObjectID()
	feature.IsActive = true
	feature.CreatedAt = now
	feature.UpdatedAt = now
	if err := s.crud.insert(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *featureService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectFeature, error) {
	return s.crud.update(ctx, id, updates)
}

func (s *featureService) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.crud.delete(ctx, id)
	return err
}

func (s *featureService) Reorder(ctx context.Context, orders []OrderUpdate) error {
	return s.crud.reorder(ctx, orders)
}

// --- Project warranties ---

// IWarrantyService defines CRUD over the warranty grid.
type IWarrantyService interface {
	List(ctx context.Context, activeOnly bool) ([]models.ProjectWarranty, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectWarranty, error)
	Create(ctx context.Context, warranty *models.ProjectWarranty) (*models.ProjectWarranty, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectWarranty, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Reorder(ctx context.Context, orders []OrderUpdate) error
}

type warrantyService struct {
	crud contentCRUD[models.ProjectWarranty]
}

// NewWarrantyService creates a new WarrantyService.
func NewWarrantyService(database *mongo.Database) IWarrantyService {
	return &warrantyService{crud: contentCRUD[models.ProjectWarranty]{
		coll:    database.Collection("project_warranties"),
		allowed: map[string]bool{"title": true, "description": true, "icon": true, "years": true, "display_order": true, "is_active": true},
	}}
}

func (s *warrantyService) List(ctx context.Context, activeOnly bool) ([]models.ProjectWarranty, error) {
	return s.crud.list(ctx, activeOnly)
}

func (s *warrantyService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectWarranty, error) {
	return s.crud.findByID(ctx, id)
}

// Create inserts a new warranty. New entries always start active; visibility
// is toggled afterwards through Update.
func (s *warrantyService) Create(ctx context.Context, warranty *models.ProjectWarranty) (*models.ProjectWarranty, error) {
	now := time.Now().UTC()
	warranty.ID = primitive.NewObjectID()
	warranty.IsActive = true
	warranty.CreatedAt = now
	warranty.UpdatedAt = now
	if err := s.crud.insert(ctx, warranty); err != nil {
		return nil, err
	}
	return warranty, nil
}

func (s *warrantyService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ProjectWarranty, error) {
	return s.crud.update(ctx, id, updates)
}

func (s *warrantyService) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.crud.delete(ctx, id)
	return err
}

func (s *warrantyService) Reorder(ctx context.Context, orders []OrderUpdate) error {
	return s.crud.reorder(ctx, orders)
}

// --- Location features ---

// ILocationFeatureService defines CRUD over nearby-landmark entries.
type ILocationFeatureService interface {
	List(ctx context.Context, activeOnly bool) ([]models.LocationFeature, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LocationFeature, error)
	Create(ctx context.Context, feature *models.LocationFeature) (*models.LocationFeature, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.LocationFeature, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Reorder(ctx context.Context, orders []OrderUpdate) error
}

type locationFeatureService struct {
	crud contentCRUD[models.LocationFeature]
}

// NewLocationFeatureService creates a new LocationFeatureService.
func NewLocationFeatureService(database *mongo.Database) ILocationFeatureService {
	return &locationFeatureService{crud: contentCRUD[models.LocationFeature]{
		coll:    database.Collection("location_features"),
		allowed: map[string]bool{"title": true, "distance": true, "icon": true, "display_order": true, "is_active": true},
	}}
}

func (s *locationFeatureService) List(ctx context.Context, activeOnly bool) ([]models.LocationFeature, error) {
	return s.crud.list(ctx, activeOnly)
}

func (s *locationFeatureService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LocationFeature, error) {
	return s.crud.findByID(ctx, id)
}

// Create inserts a new landmark entry. New entries always start active;
// visibility is toggled afterwards through Update.
func (s *locationFeatureService) Create(ctx context.Context, feature *models.LocationFeature) (*models.LocationFeature, error) {
	now := time.Now().UTC()
	feature.ID = primitive.NewObjectID()
	feature.IsActive = true
	feature.CreatedAt = now
	feature.UpdatedAt = now
	if err := s.crud.insert(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *locationFeatureService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.LocationFeature, error) {
	return s.crud.update(ctx, id, updates)
}

func (s *locationFeatureService) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.crud.delete(ctx, id)
	return err
}

func (s *locationFeatureService) Reorder(ctx context.Context, orders []OrderUpdate) error {
	return s.crud.reorder(ctx, orders)
}
