package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminRole defines the access tiers of the dashboard.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleAdmin      AdminRole = "admin"
	RoleEditor     AdminRole = "editor"
)

// Permission capability strings checked by the permission middleware.
const (
	PermManageContent   = "manage_content"
	PermManageMedia     = "manage_media"
	PermManageInquiries = "manage_inquiries"
	PermManageSettings  = "manage_settings"
	PermManageAdmins    = "manage_admins"
)

// RefreshTokenEntry is one stored refresh token with its creation time.
// Entries older than the configured max age are pruned on every login.
type RefreshTokenEntry struct {
	Token     string    `bson:"token" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Admin represents a dashboard user.
type Admin struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string              `bson:"name" json:"name"`
	Email         string              `bson:"email" json:"email"` // stored lowercase, unique
	PasswordHash  string              `bson:"password" json:"-"`
	Role          AdminRole           `bson:"role" json:"role"`
	Permissions   []string            `bson:"permissions" json:"permissions"`
	IsActive      bool                `bson:"is_active" json:"is_active"`
	LoginAttempts int                 `bson:"login_attempts" json:"-"`
	LockoutUntil  *time.Time          `bson:"lockout_until,omitempty" json:"-"`
	LastLogin     *time.Time          `bson:"last_login,omitempty" json:"last_login,omitempty"`
	RefreshTokens []RefreshTokenEntry `bson:"refresh_tokens" json:"-"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// IsLocked reports whether the account is inside an active lockout window.
func (a *Admin) IsLocked(now time.Time) bool {
	return a.LockoutUntil != nil && a.LockoutUntil.After(now)
}

// HasPermission reports whether the admin may perform the given capability.
// Super admins implicitly hold every permission.
func (a *Admin) HasPermission(perm string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
