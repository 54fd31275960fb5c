package render

import (
	"fmt"
	"math"
	"strings"
)

// Shape selects the clipping shape used for the logo and its frame.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeCircle
	ShapeRoundedRectangle
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRoundedRectangle:
		return "rounded"
	default:
		return "square"
	}
}

// ParseShape accepts the short names used by the HTTP API and the CLI.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "square":
		return ShapeSquare, nil
	case "circle":
		return ShapeCircle, nil
	case "rounded", "rounded-rectangle", "rounded rectangle":
		return ShapeRoundedRectangle, nil
	}
	return ShapeSquare, fmt.Errorf("%w: unknown logo shape %q", ErrInvalidRenderParameters, s)
}

// BackgroundStyle selects what is drawn behind the logo.
type BackgroundStyle int

const (
	BackgroundSolid BackgroundStyle = iota
	BackgroundHalo
	BackgroundRadialGradient
)

func (b BackgroundStyle) String() string {
	switch b {
	case BackgroundHalo:
		return "halo"
	case BackgroundRadialGradient:
		return "radial"
	default:
		return "solid"
	}
}

func ParseBackgroundStyle(s string) (BackgroundStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return BackgroundSolid, nil
	case "halo", "gradient-halo", "gradient halo":
		return BackgroundHalo, nil
	case "radial", "radial-gradient", "radial gradient":
		return BackgroundRadialGradient, nil
	}
	return BackgroundSolid, fmt.Errorf("%w: unknown logo background %q", ErrInvalidRenderParameters, s)
}

// RenderConfig controls how the module grid is turned into pixels.
type RenderConfig struct {
	ModuleSize int // pixel edge length per module
	Border     int // quiet zone width in modules
	Light      RGB
	Dark       RGB
}

// DefaultRenderConfig mirrors the defaults of the options form.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		ModuleSize: 15,
		Border:     4,
		Light:      RGB{R: 0xff, G: 0xff, B: 0xff},
		Dark:       RGB{},
	}
}

func (c RenderConfig) Validate() error {
	if c.ModuleSize < 1 {
		return fmt.Errorf("%w: module size must be at least 1 (got %d)", ErrInvalidRenderParameters, c.ModuleSize)
	}
	if c.Border < 0 {
		return fmt.Errorf("%w: border must not be negative (got %d)", ErrInvalidRenderParameters, c.Border)
	}
	return nil
}

// ImageEdge returns the edge length in pixels of the image rendered for a
// grid of gridSize modules.
func (c RenderConfig) ImageEdge(gridSize int) int {
	return (gridSize + 2*c.Border) * c.ModuleSize
}

// frameWidth is the thickness of the optional logo border.
func (c RenderConfig) frameWidth() int {
	return max(1, int(math.Round(0.75*float64(c.ModuleSize))))
}

// LogoOptions controls logo placement and treatment.
type LogoOptions struct {
	// SizeRatio is the logo's longest edge as a fraction of the image edge.
	SizeRatio  float64
	Shape      Shape
	Background BackgroundStyle
	Border     bool
	// SmoothEdges switches the shape masks to anti-aliased coverage.
	SmoothEdges bool
}

func DefaultLogoOptions() LogoOptions {
	return LogoOptions{SizeRatio: 0.25}
}

func (o LogoOptions) Validate() error {
	if !(o.SizeRatio > 0 && o.SizeRatio <= 1) {
		return fmt.Errorf("%w: logo size ratio must be in (0,1] (got %v)", ErrInvalidRenderParameters, o.SizeRatio)
	}
	switch o.Shape {
	case ShapeSquare, ShapeCircle, ShapeRoundedRectangle:
	default:
		return fmt.Errorf("%w: unknown logo shape %d", ErrInvalidRenderParameters, o.Shape)
	}
	switch o.Background {
	case BackgroundSolid, BackgroundHalo, BackgroundRadialGradient:
	default:
		return fmt.Errorf("%w: unknown logo background %d", ErrInvalidRenderParameters, o.Background)
	}
	return nil
}
