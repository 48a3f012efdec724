package users

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authService "prisonsphere_backend/internals/features/users/auth/service"
)

type UserSeed struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON creates the accounts listed in filePath. Names that already
// exist are skipped.
func SeedUsersFromJSON(db *gorm.DB, filePath string) (int, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read user seeds: %w", err)
	}
	var seeds []UserSeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return 0, fmt.Errorf("decode user seeds: %w", err)
	}

	created := 0
	for _, s := range seeds {
		_, err := authService.CreateUser(db, authService.CreateUserInput{
			UserName: s.UserName,
			Password: s.Password,
			Role:     s.Role,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, authService.ErrUserExists):
			zap.L().Info("seed user exists, skipped", zap.String("user_name", s.UserName))
		default:
			return created, fmt.Errorf("seed user %q: %w", s.UserName, err)
		}
	}
	return created, nil
}
