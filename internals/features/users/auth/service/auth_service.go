// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	authHelper "prisonsphere_backend/internals/features/users/auth/helper"
	authRepo "prisonsphere_backend/internals/features/users/auth/repository"
	userModel "prisonsphere_backend/internals/features/users/user/model"
	helperAuth "prisonsphere_backend/internals/helpers/auth"
)

const (
	AccessTokenTTL = 24 * time.Hour
	// blacklist entries outlive the token a little so clock skew cannot revive it
	blacklistGrace = 60 * time.Second
)

var (
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password")
	ErrAccountDisabled    = fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	ErrMissingSecret      = errors.New("jwt secret is not configured")
)

// Session is an issued access token together with its owner.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *userModel.UserModel
}

// Login checks the credentials and issues a signed access token.
func Login(db *gorm.DB, userName, password, secret string, now time.Time) (*Session, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	user, err := authRepo.FindUserByUserName(db, userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, exp, err := IssueToken(user, secret, now)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}

// IssueToken signs an HS256 token carrying {id, role, user_name, exp}.
func IssueToken(user *userModel.UserModel, secret string, now time.Time) (string, time.Time, error) {
	exp := now.UTC().Add(AccessTokenTTL)
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.UserName,
		"iat":       now.UTC().Unix(),
		"exp":       exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Logout revokes rawToken until shortly after its own expiry. Tokens that do
// not verify are revoked for fallbackTTL.
func Logout(ctx context.Context, db *gorm.DB, rawToken, secret string, now time.Time, fallbackTTL time.Duration) error {
	if rawToken == "" {
		return nil
	}
	until := now.UTC().Add(fallbackTTL)
	if exp, ok := tokenExpiry(rawToken, secret); ok {
		until = exp.Add(blacklistGrace)
		if !until.After(now) {
			return nil
		}
	}
	return helperAuth.Add(ctx, db, rawToken, secret, until)
}

func tokenExpiry(raw, secret string) (time.Time, bool) {
	if secret == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0).UTC(), true
}
