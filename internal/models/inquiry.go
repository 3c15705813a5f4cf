package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryStatus is the sales follow-up lifecycle of a lead. A plain enum;
// any status may be set from any other.
type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryContacted  InquiryStatus = "contacted"
	InquiryInterested InquiryStatus = "interested"
	InquiryConverted  InquiryStatus = "converted"
)

// UTMParams carries the campaign parameters submitted with a lead.
type UTMParams struct {
	Source   string `bson:"source,omitempty" json:"source,omitempty"`
	Medium   string `bson:"medium,omitempty" json:"medium,omitempty"`
	Campaign string `bson:"campaign,omitempty" json:"campaign,omitempty"`
	Content  string `bson:"content,omitempty" json:"content,omitempty"`
	Term     string `bson:"term,omitempty" json:"term,omitempty"`
}

// InquiryNote is a free-text note an admin attaches to a lead.
type InquiryNote struct {
	Text      string    `bson:"text" json:"text"`
	Author    string    `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// FollowUp is a scheduled follow-up action for a lead.
type FollowUp struct {
	Date      time.Time `bson:"date" json:"date"`
	Note      string    `bson:"note" json:"note"`
	Done      bool      `bson:"done" json:"done"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Inquiry is a visitor-submitted contact request captured for sales
// follow-up.
type Inquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"` // Saudi mobile format
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Source    string             `bson:"source,omitempty" json:"source,omitempty"`     // e.g. organic, ads, direct
	Platform  string             `bson:"platform,omitempty" json:"platform,omitempty"` // e.g. google, facebook, tiktok
	Referrer  string             `bson:"referrer,omitempty" json:"referrer,omitempty"`
	UTM       UTMParams          `bson:"utm,omitempty" json:"utm,omitempty"`
	Status    InquiryStatus      `bson:"status" json:"status"`
	Notes     []InquiryNote      `bson:"notes,omitempty" json:"notes,omitempty"`
	FollowUps []FollowUp         `bson:"follow_ups,omitempty" json:"follow_ups,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
