package service

import (
	"errors"
	"time"

	"mindshift/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const sessionTTL = 30 * 24 * time.Hour

// AuthService issues anonymous user sessions. The user ID inside the token
// scopes every per-user resource (profiles, blocklist, events).
type AuthService struct {
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(secret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(secret),
		now:       time.Now,
	}
}

// IssueSession creates a new user ID and a signed token for it
func (s *AuthService) IssueSession() (*model.SessionResponse, error) {
	userID := "user_" + uuid.New().String()
	token, err := s.GenerateUserToken(userID)
	if err != nil {
		return nil, err
	}
	return &model.SessionResponse{
		Token:  token,
		UserID: userID,
	}, nil
}

// GenerateUserToken signs a session token for an existing user ID
func (s *AuthService) GenerateUserToken(userID string) (string, error) {
	now := s.now()
	claims := &model.UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a user JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
