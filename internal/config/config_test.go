package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "memory://")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if !cfg.StrictDepartments || !cfg.EmptyListNotFound {
		t.Errorf("expected strict departments and empty-list 404 by default")
	}
	want := []string{"http://localhost:5173", "https://ems-beta-seven.vercel.app"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.CORSAllowedOrigins, want)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://ems.db")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("EMS_EMPTY_LIST_NOT_FOUND", "false")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.DatabaseURL != "sqlite://ems.db" {
		t.Errorf("unexpected cfg %+v", cfg)
	}
	if cfg.EmptyListNotFound {
		t.Errorf("EmptyListNotFound should be false")
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "memory://")
	path := filepath.Join(t.TempDir(), "ems.yaml")
	content := "port: \"7070\"\nems_strict_departments: false\ncors_allowed_origins:\n  - http://file.test\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %q, want 7070", cfg.Port)
	}
	if cfg.StrictDepartments {
		t.Errorf("StrictDepartments should be false")
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"http://file.test"}) {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := AppConfig{
		Port:            "8080",
		DatabaseURL:     "memory://",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
		GinMode:         "release",
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("base config invalid: %v", err)
	}

	t.Run("missing database url", func(t *testing.T) {
		cfg := base
		cfg.DatabaseURL = ""
		if err := cfg.Validate(); !errors.Is(err, ErrMissingDatabaseURL) {
			t.Fatalf("expected ErrMissingDatabaseURL, got %v", err)
		}
	})

	t.Run("bad port", func(t *testing.T) {
		for _, p := range []string{"0", "70000", "http"} {
			cfg := base
			cfg.Port = p
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected error for port %q", p)
			}
		}
	})

	t.Run("bad gin mode", func(t *testing.T) {
		cfg := base
		cfg.GinMode = "verbose"
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for gin mode")
		}
	})

	t.Run("zero timeout", func(t *testing.T) {
		cfg := base
		cfg.ShutdownTimeout = 0
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for zero shutdown timeout")
		}
	})

	t.Run("cors origin without scheme", func(t *testing.T) {
		cfg := base
		cfg.CORSAllowedOrigins = []string{"http://localhost:5173", "localhost:5173"}
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "cors_allowed_origins") {
			t.Fatalf("expected cors origin error, got %v", err)
		}
	})

	t.Run("cors origins accepted", func(t *testing.T) {
		for _, origins := range [][]string{{"*"}, {"http://a.test", "https://b.test"}} {
			cfg := base
			cfg.CORSAllowedOrigins = origins
			if err := cfg.Validate(); err != nil {
				t.Errorf("origins %v rejected: %v", origins, err)
			}
		}
	})
}
