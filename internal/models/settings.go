package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialLinks holds the profile URLs shown in the site footer.
type SocialLinks struct {
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Snapchat  string `bson:"snapchat,omitempty" json:"snapchat,omitempty"`
	TikTok    string `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
}

// PixelIDs holds the tracking identifiers the public site injects into its
// pixel wrappers, and the bg worker uses for conversion forwarding.
type PixelIDs struct {
	Facebook string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	TikTok   string `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
	Snapchat string `bson:"snapchat,omitempty" json:"snapchat,omitempty"`
	GTM      string `bson:"gtm,omitempty" json:"gtm,omitempty"`
}

// ContactSettings is the singleton contact/tracking configuration document.
type ContactSettings struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	WhatsApp  string             `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Social    SocialLinks        `bson:"social,omitempty" json:"social,omitempty"`
	Pixels    PixelIDs           `bson:"pixels,omitempty" json:"pixels,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
