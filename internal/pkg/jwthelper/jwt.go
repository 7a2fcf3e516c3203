package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	audienceAdmin = "club-admin"
	audienceVoter = "club-voter"
)

var ErrInvalidToken = errors.New("invalid token")

type AdminClaims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"uid"`
	UserAgent string    `json:"ua"`
}

// GenerateToken signs an admin session token. The token id doubles as the
// revocation key on sign-out.
func GenerateToken(key []byte, userID uuid.UUID, userAgent string, ttl time.Duration) (string, AdminClaims, error) {
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{audienceAdmin},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		UserAgent: userAgent,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", AdminClaims{}, fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, claims, nil
}

func ParseToken(key []byte, tokenString string) (AdminClaims, error) {
	var claims AdminClaims
	if err := parse(key, tokenString, audienceAdmin, &claims); err != nil {
		return AdminClaims{}, err
	}
	if claims.UserID == uuid.Nil || claims.ID == "" {
		return AdminClaims{}, ErrInvalidToken
	}

	return claims, nil
}

// GenerateVoterToken signs an anonymous voter identity for the reaction system.
func GenerateVoterToken(key []byte, ttl time.Duration) (string, string, error) {
	voterID := uuid.NewString()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   voterID,
		Audience:  jwt.ClaimStrings{audienceVoter},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, voterID, nil
}

// ParseVoterToken returns the voter id carried by a valid voter token.
func ParseVoterToken(key []byte, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	if err := parse(key, tokenString, audienceVoter, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

func parse(key []byte, tokenString, audience string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}
