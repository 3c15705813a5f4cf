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
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/auth"
	"github.com/raf-aleaqarih/raf24-api/internal/config"
	"github.com/raf-aleaqarih/raf24-api/internal/db"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IAdminService defines authentication and admin account management.
type IAdminService interface {
	Login(ctx context.Context, email, password string) (*models.Admin, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Admin, *TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, adminID primitive.ObjectID, currentPassword, newPassword string) error

	FindByID(ctx context.Context, adminID primitive.ObjectID) (*models.Admin, error)
	List(ctx context.Context, page, limit int) ([]models.Admin, int64, error)
	Create(ctx context.Context, name, email, password string, role models.AdminRole, permissions []string) (*models.Admin, error)
	Update(ctx context.Context, adminID primitive.ObjectID, updates map[string]interface{}) (*models.Admin, error)
	Delete(ctx context.Context, adminID, actorID primitive.ObjectID) error
}

const adminsCollection = "admins"

type adminService struct {
	db     *mongo.Database
	cfg    *config.Config
	logger *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(database *mongo.Database, cfg *config.Config, logger *zap.Logger) IAdminService {
	return &adminService{db: database, cfg: cfg, logger: logger}
}

// Login authenticates an admin by email and password.
//
// The account moves through a small persisted state machine: each wrong
// password increments login_attempts; reaching the configured threshold sets
// lockout_until; a lockout in the future rejects login regardless of the
// password; an elapsed lockout resets the attempt count implicitly. Every
// transition is written to the database immediately.
func (s *adminService) Login(ctx context.Context, email, password string) (*models.Admin, *TokenPair, error) {
	collection := s.db.Collection(adminsCollection)
	now := time.Now().UTC()

	var admin models.Admin
	err := collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error finding admin by email: %w", err)
	}

	if !admin.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	if admin.IsLocked(now) {
		return nil, nil, ErrAccountLocked
	}

	if !auth.CheckPasswordHash(password, admin.PasswordHash) {
		attempts := admin.LoginAttempts
		if admin.LockoutUntil != nil {
			// Elapsed lockout: the counter restarts from zero.
			attempts = 0
		}
		attempts++

		set := bson.M{"login_attempts": attempts, "updated_at": now}
		update := bson.M{"$set": set}
		if attempts >= s.cfg.MaxLoginAttempts {
			lockout := now.Add(s.cfg.LockoutWindow)
			set["lockout_until"] = lockout
			s.logger.Warn("admin account locked after repeated failed logins",
				zap.String("admin_id", admin.ID.Hex()),
				zap.Time("lockout_until", lockout))
		} else {
			update["$unset"] = bson.M{"lockout_until": ""}
		}
		if _, updErr := collection.UpdateByID(ctx, admin.ID, update); updErr != nil {
			return nil, nil, fmt.Errorf("failed to record failed login attempt: %w", updErr)
		}
		return nil, nil, ErrInvalidCredentials
	}

	pair, tokens, err := s.issueTokens(&admin, now)
	if err != nil {
		return nil, nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"login_attempts": 0,
			"last_login":     now,
			"refresh_tokens": tokens,
			"updated_at":     now,
		},
		"$unset": bson.M{"lockout_until": ""},
	}
	if _, err := collection.UpdateByID(ctx, admin.ID, update); err != nil {
		return nil, nil, fmt.Errorf("failed to persist login state for admin %s: %w", admin.ID.Hex(), err)
	}

	admin.LoginAttempts = 0
	admin.LockoutUntil = nil
	admin.LastLogin = &now
	return &admin, pair, nil
}

// issueTokens generates an access/refresh pair and returns the updated
// stored refresh token list: existing entries minus those older than the max
// age, plus the new one.
func (s *adminService) issueTokens(admin *models.Admin, now time.Time) (*TokenPair, []models.RefreshTokenEntry, error) {
	accessToken, err := auth.GenerateAccessToken(admin.ID.Hex(), string(admin.Role), admin.Permissions, s.cfg.JwtSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := auth.GenerateRefreshToken(admin.ID.Hex(), s.cfg.JwtRefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	cutoff := now.Add(-s.cfg.RefreshTokenMaxAge)
	kept := make([]models.RefreshTokenEntry, 0, len(admin.RefreshTokens)+1)
	for _, entry := range admin.RefreshTokens {
		if entry.CreatedAt.After(cutoff) {
			kept = append(kept, entry)
		}
	}
	kept = append(kept, models.RefreshTokenEntry{Token: refreshToken, CreatedAt: now})

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, kept, nil
}

// Refresh rotates a refresh token: the presented token must verify against
// the refresh secret and be present in the admin's stored list; it is then
// replaced by a freshly issued pair. A token that was already rotated or
// revoked fails with ErrInvalidToken.
func (s *adminService) Refresh(ctx context.Context, refreshToken string) (*models.Admin, *TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken, s.cfg.JwtRefreshSecret, auth.TokenKindRefresh)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	adminID, err := primitive.ObjectIDFromHex(claims.AdminID)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	collection := s.db.Collection(adminsCollection)
	var admin models.Admin
	if err := collection.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err != nil {
		return nil, nil, ErrInvalidToken
	}
	if !admin.IsActive {
		return nil, nil, ErrInvalidToken
	}

	found := false
	for _, entry := range admin.RefreshTokens {
		if entry.Token == refreshToken {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, ErrInvalidToken
	}

	now := time.Now().UTC()
	// Drop the used token before computing the replacement list.
	remaining := admin.RefreshTokens[:0]
	for _, entry := range admin.RefreshTokens {
		if entry.Token != refreshToken {
			remaining = append(remaining, entry)
		}
	}
	admin.RefreshTokens = remaining

	pair, tokens, err := s.issueTokens(&admin, now)
	if err != nil {
		return nil, nil, err
	}

	update := bson.M{"$set": bson.M{"refresh_tokens": tokens, "updated_at": now}}
	if _, err := collection.UpdateByID(ctx, admin.ID, update); err != nil {
		return nil, nil, fmt.Errorf("failed to rotate refresh token for admin %s: %w", admin.ID.Hex(), err)
	}

	return &admin, pair, nil
}

// Logout removes the given refresh token from storage. Unknown tokens are a
// no-op, making the operation idempotent.
func (s *adminService) Logout(ctx context.Context, refreshToken string) error {
	collection := s.db.Collection(adminsCollection)
	update := bson.M{"$pull": bson.M{"refresh_tokens": bson.M{"token": refreshToken}}}
	if _, err := collection.UpdateMany(ctx, bson.M{"refresh_tokens.token": refreshToken}, update); err != nil {
		return fmt.Errorf("failed to remove refresh token: %w", err)
	}
	return nil
}

// ChangePassword verifies the current password before replacing it. All
// stored refresh tokens are revoked so other sessions must log in again.
func (s *adminService) ChangePassword(ctx context.Context, adminID primitive.ObjectID, currentPassword, newPassword string) error {
	admin, err := s.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !auth.CheckPasswordHash(currentPassword, admin.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"password":       hash,
		"refresh_tokens": []models.RefreshTokenEntry{},
		"updated_at":     time.Now().UTC(),
	}}
	if _, err := s.db.Collection(adminsCollection).UpdateByID(ctx, adminID, update); err != nil {
		return fmt.Errorf("failed to update password for admin %s: %w", adminID.Hex(), err)
	}
	return nil
}

// FindByID returns an admin by ID or ErrNotFound.
func (s *adminService) FindByID(ctx context.Context, adminID primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.Collection(adminsCollection).FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding admin by ID %s: %w", adminID.Hex(), err)
	}
	return &admin, nil
}

// List returns a page of admins newest first, plus the total count.
func (s *adminService) List(ctx context.Context, page, limit int) ([]models.Admin, int64, error) {
	collection := s.db.Collection(adminsCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count admins: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list admins: %w", err)
	}
	defer cursor.Close(ctx)

	var admins []models.Admin
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, 0, fmt.Errorf("failed to decode admins: %w", err)
	}
	return admins, total, nil
}

// Create inserts a new admin account. A duplicate email fails with
// ErrEmailExists via the unique index.
func (s *adminService) Create(ctx context.Context, name, email, password string, role models.AdminRole, permissions []string) (*models.Admin, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &models.Admin{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Email:         strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:  hash,
		Role:          role,
		Permissions:   permissions,
		IsActive:      true,
		RefreshTokens: []models.RefreshTokenEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	operation := func() error {
		_, insertErr := s.db.Collection(adminsCollection).InsertOne(ctx, admin)
		return insertErr
	}
	if err := db.Try(operation); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to insert admin %s: %w", admin.Email, err)
	}
	return admin, nil
}

// Update modifies a restricted set of admin fields. A "password" entry is
// hashed; anything outside the allowed set is rejected.
func (s *adminService) Update(ctx context.Context, adminID primitive.ObjectID, updates map[string]interface{}) (*models.Admin, error) {
	allowed := bson.M{}
	for key, value := range updates {
		switch key {
		case "name", "role", "permissions", "is_active":
			allowed[key] = value
		case "email":
			email, _ := value.(string)
			allowed[key] = strings.ToLower(strings.TrimSpace(email))
		case "password":
			password, _ := value.(string)
			hash, err := auth.HashPassword(password)
			if err != nil {
				return nil, err
			}
			allowed["password"] = hash
		default:
			return nil, fmt.Errorf("%w: field %q cannot be updated", ErrValidation, key)
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("%w: no valid fields provided for update", ErrValidation)
	}
	allowed["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Admin
	err := s.db.Collection(adminsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": adminID}, bson.M{"$set": allowed}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update admin %s: %w", adminID.Hex(), err)
	}
	return &updated, nil
}

// Delete removes an admin account. Self-deletion is blocked.
func (s *adminService) Delete(ctx context.Context, adminID, actorID primitive.ObjectID) error {
	if adminID == actorID {
		return ErrSelfDeletion
	}
	result, err := s.db.Collection(adminsCollection).DeleteOne(ctx, bson.M{"_id": adminID})
	if err != nil {
		return fmt.Errorf("failed to delete admin %s: %w", adminID.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
