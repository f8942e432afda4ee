package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "PROFILE_ID", "TIME_ZONE", "DEBUG", "STORAGE_TIMEOUT", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %v, want 8080", cfg.ServerPort)
	}
	if cfg.StorageBackend != "memory" {
		t.Errorf("StorageBackend = %v, want memory", cfg.StorageBackend)
	}
	if cfg.ProfileID != "default" {
		t.Errorf("ProfileID = %v, want default", cfg.ProfileID)
	}
	if cfg.Location != time.Local {
		t.Errorf("Location = %v, want Local", cfg.Location)
	}
	if cfg.StorageTimeout != 5*time.Second {
		t.Errorf("StorageTimeout = %v, want 5s", cfg.StorageTimeout)
	}
	if cfg.RateLimit != 120 {
		t.Errorf("RateLimit = %d, want 120", cfg.RateLimit)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("DEBUG", "true")
	t.Setenv("STORAGE_TIMEOUT", "250ms")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %v, want 9090", cfg.ServerPort)
	}
	if cfg.StorageBackend != "sqlite" {
		t.Errorf("StorageBackend = %v, want sqlite", cfg.StorageBackend)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %v, want UTC", cfg.Location)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.StorageTimeout != 250*time.Millisecond {
		t.Errorf("StorageTimeout = %v, want 250ms", cfg.StorageTimeout)
	}
	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %d, want 0", cfg.RateLimit)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TIME_ZONE", "Nowhere/Atlantis")
	t.Setenv("STORAGE_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-3")

	cfg := Load()

	if cfg.RateLimit != 120 {
		t.Errorf("RateLimit = %d, want 120", cfg.RateLimit)
	}
	if cfg.Location != time.Local {
		t.Errorf("Location = %v, want Local", cfg.Location)
	}
	if cfg.StorageTimeout != 5*time.Second {
		t.Errorf("StorageTimeout = %v, want 5s", cfg.StorageTimeout)
	}
}
