package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raf-aleaqarih/raf24-api/internal/geo"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

// saudiMobilePattern accepts 05XXXXXXXX, 5XXXXXXXX, 9665XXXXXXXX and
// +9665XXXXXXXX.
var saudiMobilePattern = regexp.MustCompile(`^(\+?966|0)?5\d{8}$`)

// ErrInvalidPhone is returned when a submitted phone number does not match
// the Saudi mobile format.
var ErrInvalidPhone = fmt.Errorf("%w: phone must be a Saudi mobile number", ErrValidation)

// NewInquiryInput is the public lead-form payload plus the tracking metadata
// the frontend forwards.
type NewInquiryInput struct {
	Name         string
	Phone        string
	Message      string
	Referrer     string
	LandingQuery string
	UTM          models.UTMParams
}

// InquiryFilter narrows List results.
type InquiryFilter struct {
	Status   string
	Platform string
	Search   string // matches name or phone prefix
}

// IInquiryService defines lead intake and follow-up operations.
type IInquiryService interface {
	Create(ctx context.Context, input NewInquiryInput) (*models.Inquiry, error)
	List(ctx context.Context, filter InquiryFilter, page, limit int) ([]models.Inquiry, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.Inquiry, error)
	AddNote(ctx context.Context, id primitive.ObjectID, text, author string) (*models.Inquiry, error)
	AddFollowUp(ctx context.Context, id primitive.ObjectID, date time.Time, note string) (*models.Inquiry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

const inquiriesCollection = "inquiries"

var validInquiryStatuses = map[models.InquiryStatus]bool{
	models.InquiryNew:        true,
	models.InquiryContacted:  true,
	models.InquiryInterested: true,
	models.InquiryConverted:  true,
}

type inquiryService struct {
	db *mongo.Database
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(database *mongo.Database) IInquiryService {
	return &inquiryService{db: database}
}

// ValidateSaudiMobile reports whether phone matches the Saudi mobile format.
func ValidateSaudiMobile(phone string) bool {
	return saudiMobilePattern.MatchString(strings.TrimSpace(phone))
}

// Create records a new lead. Source and platform are inferred from the
// submitted referrer and landing query string.
func (s *inquiryService) Create(ctx context.Context, input NewInquiryInput) (*models.Inquiry, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !ValidateSaudiMobile(phone) {
		return nil, ErrInvalidPhone
	}

	traffic := geo.InferTrafficSource(input.Referrer, input.LandingQuery)

	now := time.Now().UTC()
	inquiry := &models.Inquiry{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Phone:     phone,
		Message:   strings.TrimSpace(input.Message),
		Source:    traffic.Source,
		Platform:  traffic.Platform,
		Referrer:  input.Referrer,
		UTM:       input.UTM,
		Status:    models.InquiryNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.db.Collection(inquiriesCollection).InsertOne(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return inquiry, nil
}

func (s *inquiryService) List(ctx context.Context, filter InquiryFilter, page, limit int) ([]models.Inquiry, int64, error) {
	collection := s.db.Collection(inquiriesCollection)

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Platform != "" {
		query["platform"] = filter.Platform
	}
	if filter.Search != "" {
		escaped := regexp.QuoteMeta(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": escaped, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": "^" + escaped}},
		}
	}

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var inquiries []models.Inquiry
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode inquiries: %w", err)
	}
	return inquiries, total, nil
}

func (s *inquiryService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := s.db.Collection(inquiriesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&inquiry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding inquiry %s: %w", id.Hex(), err)
	}
	return &inquiry, nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.InquiryStatus) (*models.Inquiry, error) {
	if !validInquiryStatuses[status] {
		return nil, fmt.Errorf("%w: unknown inquiry status %q", ErrValidation, status)
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	return s.findAndUpdate(ctx, id, update)
}

func (s *inquiryService) AddNote(ctx context.Context, id primitive.ObjectID, text, author string) (*models.Inquiry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", ErrValidation)
	}
	now := time.Now().UTC()
	note := models.InquiryNote{Text: text, Author: author, CreatedAt: now}
	update := bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updated_at": now},
	}
	return s.findAndUpdate(ctx, id, update)
}

func (s *inquiryService) AddFollowUp(ctx context.Context, id primitive.ObjectID, date time.Time, note string) (*models.Inquiry, error) {
	now := time.Now().UTC()
	followUp := models.FollowUp{Date: date.UTC(), Note: strings.TrimSpace(note), CreatedAt: now}
	update := bson.M{
		"$push": bson.M{"follow_ups": followUp},
		"$set":  bson.M{"updated_at": now},
	}
	return s.findAndUpdate(ctx, id, update)
}

func (s *inquiryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.db.Collection(inquiriesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inquiry %s: %w", id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *inquiryService) findAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Inquiry, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Inquiry
	err := s.db.Collection(inquiriesCollection).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry %s: %w", id.Hex(), err)
	}
	return &updated, nil
}
