package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userports "github.com/Apurer/go-gin-delivery-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
)

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore persists login sessions in PostgreSQL, one row per issued token.
type SessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

type sessionRecord struct {
	TokenID   string    `gorm:"primaryKey;column:token_id;size:64"`
	UserID    int64     `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save upserts a session keyed by token ID. A zero expiry falls back to DefaultSessionTTL.
func (s *SessionStore) Save(ctx context.Context, userID int64, tokenID string, expiresAt time.Time) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	tokenID = strings.TrimSpace(tokenID)
	if userID <= 0 || tokenID == "" {
		return errors.New("user id and token id are required")
	}
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(DefaultSessionTTL)
	}
	rec := sessionRecord{TokenID: tokenID, UserID: userID, ExpiresAt: expiresAt.UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Active reports whether the token's session exists and has not expired.
func (s *SessionStore) Active(ctx context.Context, tokenID string) (bool, error) {
	if err := s.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&sessionRecord{}).
		Where("token_id = ? AND expires_at > ?", tokenID, s.now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes every session of the user, inside the caller's transaction if any.
func (s *SessionStore) Delete(ctx context.Context, userID int64) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if userID <= 0 {
		return nil
	}
	return transaction.DB(ctx, s.db).Delete(&sessionRecord{}, "user_id = ?", userID).Error
}

// PurgeExpired removes all expired sessions and reports how many were deleted.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
