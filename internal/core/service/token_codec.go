package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feedstream/feed-api/internal/core/ports"
)

// TokenTTL is the fixed lifetime of issued bearer tokens.
const TokenTTL = time.Hour

type tokenClaims struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies HS256 bearer tokens. The secret is supplied
// externally; the codec refuses tokens signed with any other algorithm.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

func (c *JWTCodec) Sign(userID, email string) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

func (c *JWTCodec) Verify(token string) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &ports.TokenClaims{UserID: claims.UserID, Email: claims.Email}, nil
}
