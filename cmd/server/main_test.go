package main

import (
	"testing"
	"time"

	"github.com/counterbook/counterbook/internal/infrastructure/config"
)

func TestNewJWTManager(t *testing.T) {
	cfg := &config.Config{JWTExpiration: time.Hour}

	m, err := newJWTManager(cfg)
	if err != nil {
		t.Fatalf("expected no error without a secret, got %v", err)
	}
	if m != nil {
		t.Fatalf("expected no manager without a secret, got %v", m)
	}

	cfg.AuthEnabled = true
	if _, err := newJWTManager(cfg); err == nil {
		t.Fatal("expected an error when auth is enabled without a secret")
	}

	cfg.JWTSecret = "test-secret"
	m, err = newJWTManager(cfg)
	if err != nil {
		t.Fatalf("expected no error with a secret, got %v", err)
	}
	if m == nil {
		t.Fatal("expected a manager with a secret")
	}
}
