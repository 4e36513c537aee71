// file: utils/jwt.go
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xFraylin/Hackong-ctf/models"
)

type Claims struct {
	ProfileID string          `json:"profile_id"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses the HS256 session tokens carried in the
// session cookie.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(profile models.Profile) (string, error) {
	claims := Claims{
		ProfileID: profile.ID,
		Username:  profile.Username,
		Role:      profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
