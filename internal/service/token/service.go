package token

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated covers missing, malformed, unsigned and expired tokens.
var ErrUnauthenticated = errors.New("token: unauthenticated")

var errMissingEmail = errors.New("token: claims must carry an email")

// Service issues and verifies signed bearer tokens. It keeps no state beyond
// the injected signing secret and validity window.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New constructs a Service with an explicit secret and expiry.
func New(secret string, ttl time.Duration) Service {
	return Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs the supplied identity claims as-is, stamped with the fixed
// validity window. Issuance is unconditional; no identity verification and no
// persistence happen here.
func (s Service) Issue(claims map[string]any) (string, error) {
	if strings.TrimSpace(Email(claims)) == "" {
		return "", errMissingEmail
	}
	now := time.Now()
	payload := jwtlib.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["iat"] = jwtlib.NewNumericDate(now)
	payload["exp"] = jwtlib.NewNumericDate(now.Add(s.ttl))
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, payload)
	return tok.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the decoded claims. Any
// failure collapses into ErrUnauthenticated; callers never learn why a
// credential was rejected.
func (s Service) Verify(token string) (map[string]any, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrUnauthenticated
	}
	parsed, err := jwtlib.Parse(trimmed, func(t *jwtlib.Token) (interface{}, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return nil, ErrUnauthenticated
	}
	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrUnauthenticated
	}
	return map[string]any(claims), nil
}

// Email extracts the identity email from a claim set.
func Email(claims map[string]any) string {
	email, _ := claims["email"].(string)
	return email
}
