package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest is the body of the operator login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Claims identifies the operator allowed to trigger runs and read reports.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
