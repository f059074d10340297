package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"alumnihub/internal/apperr"
	"alumnihub/internal/authz"
	"alumnihub/internal/models"
)

// Token scopes. A reset-scoped token authorizes the password reset call and
// nothing else; session middleware rejects it everywhere else.
const (
	ScopeSession       = "session"
	ScopePasswordReset = "password_reset"
)

type TokenClaims struct {
	UserID int        `json:"user_id"`
	Email  string     `json:"email,omitempty"`
	Role   authz.Role `json:"role,omitempty"`
	Scope  string     `json:"scope"`
	jwt.RegisteredClaims
}

type TokenService interface {
	IssueSession(user *models.User) (string, error)
	IssueReset(userID int) (string, error)
	Verify(tokenStr string) (*TokenClaims, error)
}

type tokenService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewTokenService panics on an empty secret: starting up without a signing
// key would make every issued token forgeable.
func NewTokenService(secret string, sessionTTL, resetTTL time.Duration) TokenService {
	if secret == "" {
		panic("token service: signing secret is required")
	}
	return &tokenService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

func (s *tokenService) sign(claims *TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal("failed to sign token", err)
	}
	return signed, nil
}

func (s *tokenService) IssueSession(user *models.User) (string, error) {
	return s.sign(&TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Scope:  ScopeSession,
	}, s.sessionTTL)
}

func (s *tokenService) IssueReset(userID int) (string, error) {
	// identity only; no role or email rides along on a reset token
	return s.sign(&TokenClaims{
		UserID: userID,
		Scope:  ScopePasswordReset,
	}, s.resetTTL)
}

func (s *tokenService) Verify(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Expired("Token has expired")
		}
		return nil, apperr.Authentication("Invalid token")
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, apperr.Authentication("Invalid token")
	}
	return claims, nil
}
