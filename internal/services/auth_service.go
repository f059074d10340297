package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"alumnihub/internal/apperr"
)

// AuthService hashes and compares secrets (passwords and OTP codes).
// bcrypt embeds a fresh random salt in every digest.
type AuthService interface {
	HashSecret(secret string) (string, error)
	// CompareSecret reports whether secret matches hash. A malformed hash
	// is an internal fault, not a mismatch.
	CompareSecret(hash, secret string) (bool, error)
}

type authService struct{}

func NewAuthService() AuthService {
	return &authService{}
}

func (s *authService) HashSecret(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal("failed to hash secret", err)
	}
	return string(h), nil
}

func (s *authService) CompareSecret(hash, secret string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperr.Internal("failed to compare secret", err)
}
