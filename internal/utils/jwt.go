package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// only HS256 tokens carrying exp are accepted
var tokenParser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithExpirationRequired(),
	jwt.WithIssuedAt(),
)

var (
	ErrMissingAuthHeader = errors.New("missing or malformed Authorization header")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidClaims     = errors.New("invalid token claims")
)

// Identity is what a verified bearer token tells us about the caller.
type Identity struct {
	ID    string
	Email string
	Role  string
}

// IssueToken signs an HS256 token carrying id, email and role.
func IssueToken(secret string, identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    identity.ID,
		"email": identity.Email,
		"role":  identity.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates the bearer token on r and returns its claims.
func VerifyToken(r *http.Request, secret string) (jwt.MapClaims, error) {
	tokenStr, ok := bearerToken(r)
	if !ok {
		return nil, ErrMissingAuthHeader
	}

	claims := jwt.MapClaims{}
	token, err := tokenParser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// IdentityFromClaims extracts the caller identity; id is mandatory.
func IdentityFromClaims(claims jwt.MapClaims) (Identity, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return Identity{}, ErrInvalidClaims
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Identity{ID: id, Email: email, Role: role}, nil
}
