package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVerifier_RoundTrip(t *testing.T) {
	cfg := Config{Secret: "s3cret", Issuer: "zoo-admin"}

	tok, err := Sign(cfg, "keeper-1", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	v, err := NewVerifier(cfg)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	claims, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "keeper-1" {
		t.Fatalf("expected keeper-1, got %q", claims.UserID)
	}
}

func TestVerifier_CarriesRole(t *testing.T) {
	cfg := Config{Secret: "s3cret"}
	v, _ := NewVerifier(cfg)

	admin, _ := Sign(cfg, "keeper-1", time.Minute)
	claims, err := v.Verify(context.Background(), admin)
	if err != nil || claims.Role != "admin" {
		t.Fatalf("expected admin role, got %q (err=%v)", claims.Role, err)
	}

	viewer, _ := SignRole(cfg, "visitor-1", "viewer", time.Minute)
	claims, err = v.Verify(context.Background(), viewer)
	if err != nil || claims.Role != "viewer" {
		t.Fatalf("expected viewer role, got %q (err=%v)", claims.Role, err)
	}
}

func TestVerifier_RejectsWrongSecret(t *testing.T) {
	tok, err := Sign(Config{Secret: "one"}, "keeper-1", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	v, _ := NewVerifier(Config{Secret: "two"})
	if _, err := v.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestVerifier_RejectsWrongIssuer(t *testing.T) {
	tok, _ := Sign(Config{Secret: "s", Issuer: "other"}, "keeper-1", time.Minute)

	v, _ := NewVerifier(Config{Secret: "s", Issuer: "zoo-admin"})
	if _, err := v.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected error for wrong issuer")
	}
}

func TestVerifier_EmptyToken(t *testing.T) {
	v, _ := NewVerifier(Config{Secret: "s"})
	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewVerifier(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
