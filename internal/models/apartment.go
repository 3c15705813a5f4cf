package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApartmentStatus is the sales state of an apartment model.
type ApartmentStatus string

const (
	ApartmentActive   ApartmentStatus = "active"
	ApartmentInactive ApartmentStatus = "inactive"
	ApartmentSoldOut  ApartmentStatus = "sold_out"
)

// ApartmentModel represents one apartment model tab on the landing page
// (e.g. model "A"). Images is an ordered list of absolute object-store URLs.
type ApartmentModel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ModelName    string             `bson:"model_name" json:"model_name"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Area         float64            `bson:"area" json:"area"` // square meters
	Rooms        int                `bson:"rooms" json:"rooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	Images       []string           `bson:"images" json:"images"`
	Features     []string           `bson:"features" json:"features"`
	Status       ApartmentStatus    `bson:"status" json:"status"`
	DisplayOrder int                `bson:"display_order" json:"display_order"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
