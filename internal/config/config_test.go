package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfigFile, EnvPort, EnvListenAddr, EnvMaxLogoBytes, EnvMaxLogoPx, EnvMaxEdge, EnvEncoder, EnvGinMode, EnvDebug} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qrstyle.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
addr = ":9000"
max_image_edge = 4096
encoder = "yeqown"
debug = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.MaxImageEdge != 4096 || cfg.Encoder != "yeqown" || !cfg.Debug {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.MaxLogoBytes != Default().MaxLogoBytes {
		t.Fatalf("unset key must keep its default, got %d", cfg.MaxLogoBytes)
	}

	t.Setenv(EnvPort, "3000")
	t.Setenv(EnvDebug, "false")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.Debug {
		t.Fatalf("env must override the file: %+v", cfg)
	}

	t.Setenv(EnvListenAddr, "127.0.0.1:7000")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" {
		t.Fatalf("expected QRSTYLE_LISTEN to win over PORT, got %s", cfg.Addr)
	}
}

func TestLoadConfigFileFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, writeFile(t, `max_logo_bytes = 1024`))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxLogoBytes != 1024 {
		t.Fatalf("expected 1024, got %d", cfg.MaxLogoBytes)
	}

	t.Setenv(EnvMaxLogoPx, "250000")
	if cfg, err = Load(""); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxLogoPixels != 250000 {
		t.Fatalf("expected QRSTYLE_MAX_LOGO_PIXELS to apply, got %d", cfg.MaxLogoPixels)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
	if _, err := Load(writeFile(t, `colour = "blue"`)); err == nil {
		t.Fatal("expected error for an unknown key")
	}

	t.Setenv(EnvDebug, "maybe")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for a non boolean QRSTYLE_DEBUG")
	}
	t.Setenv(EnvDebug, "")

	t.Setenv(EnvMaxLogoPx, "lots")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for a non integer QRSTYLE_MAX_LOGO_PIXELS")
	}
	t.Setenv(EnvMaxLogoPx, "")

	t.Setenv(EnvMaxEdge, "huge")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for a non integer QRSTYLE_MAX_IMAGE_EDGE")
	}
	t.Setenv(EnvMaxEdge, "0")
	if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Addr = "" },
		func(c *Config) { c.MaxLogoBytes = 0 },
		func(c *Config) { c.MaxLogoPixels = 0 },
		func(c *Config) { c.Encoder = "zxing" },
		func(c *Config) { c.GinMode = "verbose" },
	}
	for i, mutate := range bad {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}
