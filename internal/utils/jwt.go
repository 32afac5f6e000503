package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"folio/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "folio-api"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrTokenInvalid = errors.New("invalid token")

// IssueTokens signs a fresh access/refresh token pair for the user.
// Permissions are derived from the user's role at issue time, so a role
// change takes effect on the next refresh. The signing secret comes from
// the JWT_SECRET environment variable.
func IssueTokens(user *models.User) (accessToken, refreshToken string, err error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", "", errors.New("JWT_SECRET not configured")
	}

	permissions := models.GetDefaultPermissions(user.Role)

	if accessToken, err = signToken(user, permissions, accessTokenTTL, secret); err != nil {
		return "", "", err
	}
	// Refresh tokens carry no permissions. They are only good for minting
	// a new pair, never for hitting a gated route.
	if refreshToken, err = signToken(user, nil, refreshTokenTTL, secret); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func signToken(user *models.User, permissions []string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		Permissions:  permissions,
		TokenVersion: user.TokenVersion,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(tokenStr string) (*models.UserClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
