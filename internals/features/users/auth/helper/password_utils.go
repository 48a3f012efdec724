package helpers

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	hasLetter   = regexp.MustCompile(`[A-Za-z]`)
	hasNumber   = regexp.MustCompile(`[0-9]`)
	userNameRex = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)
)

const MinPasswordLength = 8

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword requires a minimum length and at least one letter and digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	if !hasLetter.MatchString(password) || !hasNumber.MatchString(password) {
		return errors.New("password must contain letters and numbers")
	}
	return nil
}

func ValidateUserName(name string) error {
	if !userNameRex.MatchString(strings.TrimSpace(name)) {
		return errors.New("user name must be 3-50 characters of letters, digits, '.', '_' or '-'")
	}
	return nil
}
