package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for an anonymous user session
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// SessionResponse is returned when a session is issued
type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
