package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"awesome-index/internal/pkg/config"
	"awesome-index/pkg/constants"
	"awesome-index/pkg/responses"
)

// UserClaims identifies the caller of the admin surface. Token issuance lives
// outside this service; we only verify and extract the identity.
type UserClaims struct {
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a token for the given identity. Used by tooling
// and tests; the service itself has no login endpoint.
func GenerateAccessToken(username string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT

	claims := UserClaims{
		Username: username,
		Type:     constants.JWTTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.AccessTokenExpire) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken parses and verifies a token, returning its claims.
func ValidateToken(tokenString string) (*UserClaims, error) {
	cfg := config.GlobalConfig.Auth.JWT

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, responses.ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, responses.ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, responses.ErrInvalidToken
	}

	return claims, nil
}
