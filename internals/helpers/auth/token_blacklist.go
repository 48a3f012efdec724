// Package helper stores revoked session tokens. Only an HMAC of the raw token
// is persisted.
package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "prisonsphere_backend/internals/features/users/auth/model"
)

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// Add revokes rawToken until expiresAt. Revoking twice keeps the later expiry.
func Add(ctx context.Context, db *gorm.DB, rawToken, secret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawToken) == "" || secret == "" {
		return nil
	}
	row := authModel.TokenBlacklist{
		Token:     hmacHex(rawToken, secret),
		ExpiredAt: expiresAt.UTC(),
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
	}).Create(&row).Error
}

// IsBlacklisted reports whether rawToken was revoked and the entry has not
// expired yet.
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawToken, secret string, now time.Time) (bool, error) {
	if db == nil || strings.TrimSpace(rawToken) == "" || secret == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(rawToken, secret), now.UTC()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired deletes entries whose expiry is before cutoff.
func PurgeExpired(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expired_at <= ?", cutoff.UTC()).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
