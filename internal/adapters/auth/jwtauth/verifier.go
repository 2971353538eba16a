package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"zoo-admin/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUserID = errors.New("token missing subject")
)

// Config del verificador HS256.
type Config struct {
	Secret string
	// Issuer opcional; si se define, el claim "iss" debe coincidir.
	Issuer string
	// Leeway tolera desfase de reloj en exp/nbf.
	Leeway time.Duration
}

type zooClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier validando JWT firmados con HMAC.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c zooClaims
	_, err := v.parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, ErrMissingUserID
	}

	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(c.Email),
		Role:   strings.TrimSpace(c.Role),
	}, nil
}

// Sign emite un token de administrador; lo usan el CLI y los tests.
func Sign(cfg Config, userID string, ttl time.Duration) (string, error) {
	return SignRole(cfg, userID, auth.RoleAdmin, ttl)
}

// SignRole emite un token con el rol indicado.
func SignRole(cfg Config, userID, role string, ttl time.Duration) (string, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return "", ErrNotConfigured
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	now := time.Now()
	c := zooClaims{
		Role: strings.TrimSpace(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    strings.TrimSpace(cfg.Issuer),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
