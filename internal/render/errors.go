package render

import "errors"

// Caller-input errors. Each render either returns a complete image or fails
// with one of these (wrapped with detail), never a partial result.
var (
	ErrInvalidColorFormat      = errors.New("invalid color format")
	ErrInvalidRenderParameters = errors.New("invalid render parameters")
	ErrUnsupportedLogoFormat   = errors.New("unsupported logo format")
	ErrLogoTooLarge            = errors.New("logo too large")
)
