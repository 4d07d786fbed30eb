package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Config holds signing settings for session tokens.
type Config struct {
	SigningKey      string
	ExpirationHours int
}

// SessionClaims are the claims carried by a session token. Role is a hint
// captured at sign-in; the route guard re-resolves it through the role cache
// and the users table rather than trusting it for authorization.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWTUtil struct {
	config *Config
}

func New(config *Config) *JWTUtil {
	return &JWTUtil{config: config}
}

// GenerateToken creates a signed session token for a user.
func (j *JWTUtil) GenerateToken(userID, email, role string) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(j.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses a session token.
func (j *JWTUtil) ValidateToken(tokenString string) (*SessionClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
