// Package config loads the service settings: built-in defaults, then an
// optional TOML file, then environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pelletier/go-toml/v2"

	"github.com/cristianadrielbraun/qrstyle/internal/encoder"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
)

const (
	EnvConfigFile   = "QRSTYLE_CONFIG"
	EnvPort         = "PORT"
	EnvListenAddr   = "QRSTYLE_LISTEN"
	EnvMaxLogoBytes = "QRSTYLE_MAX_LOGO_BYTES"
	EnvMaxLogoPx    = "QRSTYLE_MAX_LOGO_PIXELS"
	EnvMaxEdge      = "QRSTYLE_MAX_IMAGE_EDGE"
	EnvEncoder      = "QRSTYLE_ENCODER"
	EnvGinMode      = "QRSTYLE_GIN_MODE"
	EnvDebug        = "QRSTYLE_DEBUG"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains settings for running the HTTP service.
type Config struct {
	Addr string `toml:"addr"`
	// MaxLogoBytes caps the size of an uploaded logo.
	MaxLogoBytes int64 `toml:"max_logo_bytes"`
	// MaxLogoPixels caps the decoded logo area. It is checked against the
	// image header, so compressed bombs are refused before decoding.
	MaxLogoPixels int `toml:"max_logo_pixels"`
	// MaxImageEdge caps the rendered image edge in pixels. Requests above it
	// are rejected before rendering starts.
	MaxImageEdge int    `toml:"max_image_edge"`
	Encoder      string `toml:"encoder"`
	GinMode      string `toml:"gin_mode"`
	Debug        bool   `toml:"debug"`
}

func Default() Config {
	return Config{
		Addr:          ":8080",
		MaxLogoBytes:  5 << 20,
		MaxLogoPixels: render.DefaultMaxLogoPixels,
		MaxImageEdge:  8192,
		Encoder:       "skip2",
		GinMode:       gin.ReleaseMode,
	}
}

// Load builds the configuration. An empty path falls back to QRSTYLE_CONFIG;
// when neither is set no file is read.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv(EnvPort); port != "" {
		c.Addr = ":" + port
	}
	if addr := os.Getenv(EnvListenAddr); addr != "" {
		c.Addr = addr
	}
	if raw := os.Getenv(EnvMaxLogoBytes); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be an integer (got %q): %w", EnvMaxLogoBytes, raw, err)
		}
		c.MaxLogoBytes = n
	}
	if raw := os.Getenv(EnvMaxLogoPx); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer (got %q): %w", EnvMaxLogoPx, raw, err)
		}
		c.MaxLogoPixels = n
	}
	if raw := os.Getenv(EnvMaxEdge); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer (got %q): %w", EnvMaxEdge, raw, err)
		}
		c.MaxImageEdge = n
	}
	if enc := os.Getenv(EnvEncoder); enc != "" {
		c.Encoder = enc
	}
	if mode := os.Getenv(EnvGinMode); mode != "" {
		c.GinMode = mode
	}
	if raw := os.Getenv(EnvDebug); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", EnvDebug, raw, err)
		}
		c.Debug = debug
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if c.MaxLogoBytes < 1 {
		return fmt.Errorf("%w: max_logo_bytes must be positive (got %d)", ErrInvalidConfig, c.MaxLogoBytes)
	}
	if c.MaxLogoPixels < 1 {
		return fmt.Errorf("%w: max_logo_pixels must be positive (got %d)", ErrInvalidConfig, c.MaxLogoPixels)
	}
	if c.MaxImageEdge < 1 {
		return fmt.Errorf("%w: max_image_edge must be positive (got %d)", ErrInvalidConfig, c.MaxImageEdge)
	}
	if _, err := encoder.New(c.Encoder); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("%w: unknown gin mode %q", ErrInvalidConfig, c.GinMode)
	}
	return nil
}
