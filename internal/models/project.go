package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectFeature is one entry in the landing page's feature list.
type ProjectFeature struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon         string             `bson:"icon,omitempty" json:"icon,omitempty"`
	DisplayOrder int                `bson:"display_order" json:"display_order"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProjectWarranty is one cell of the warranty grid.
type ProjectWarranty struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon         string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Years        int                `bson:"years,omitempty" json:"years,omitempty"`
	DisplayOrder int                `bson:"display_order" json:"display_order"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LocationFeature is a nearby landmark shown on the location section
// ("5 minutes from ...").
type LocationFeature struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Distance     string             `bson:"distance,omitempty" json:"distance,omitempty"`
	Icon         string             `bson:"icon,omitempty" json:"icon,omitempty"`
	DisplayOrder int                `bson:"display_order" json:"display_order"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// MediaKind distinguishes gallery images from videos.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// ProjectMedia is one gallery asset. RelatedApartment is a soft reference
// resolved at read time, not an enforced relation.
type ProjectMedia struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title            string              `bson:"title,omitempty" json:"title,omitempty"`
	URL              string              `bson:"url" json:"url"`
	PublicID         string              `bson:"public_id,omitempty" json:"public_id,omitempty"` // object storage key
	Kind             MediaKind           `bson:"kind" json:"kind"`
	Category         string              `bson:"category,omitempty" json:"category,omitempty"` // e.g. exterior, interior, plans
	RelatedApartment *primitive.ObjectID `bson:"related_apartment,omitempty" json:"related_apartment,omitempty"`
	DisplayOrder     int                 `bson:"display_order" json:"display_order"`
	IsActive         bool                `bson:"is_active" json:"is_active"`
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `bson:"updated_at" json:"updated_at"`
}

// ProjectInfo is the singleton document describing the project itself.
type ProjectInfo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	MapsURL     string             `bson:"maps_url,omitempty" json:"maps_url,omitempty"`
	Latitude    float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	VideoURL    string             `bson:"video_url,omitempty" json:"video_url,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
