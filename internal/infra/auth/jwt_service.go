// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fitflex/config"
	"fitflex/internal/domain/entity"
	"fitflex/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing access tokens.
	ttl    time.Duration // Time-to-live for access tokens.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    cfg.Auth.AccessTokenTTL,
	}, nil
}

// GenerateAccessToken creates a signed access token for a given account and role.
func (s *jwtService) GenerateAccessToken(accountID uuid.UUID, role entity.AccountVariant) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  accountID.String(),       // Subject (who the token is for)
		"iat":  now.Unix(),               // Issued At
		"exp":  now.Add(s.ttl).Unix(),    // Expiration Time
		"role": role.String(),            // Account variant for authorization
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// ValidateToken checks signature and expiry, then extracts the claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.AccessClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, jwt.ErrTokenInvalidSubject
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	roleStr, _ := claims["role"].(string)
	role := entity.AccountVariant(roleStr)
	if !role.IsValid() {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &service.AccessClaims{
		AccountID: accountID,
		Role:      role,
	}, nil
}
