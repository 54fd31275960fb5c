package render

import (
	"fmt"
	"image"
)

// Rasterize draws grid onto a fresh canvas filled with cfg.Light, painting
// every dark module as a hard-edged ModuleSize block offset by the quiet
// zone. withAlpha allocates a transparent-capable (but fully opaque) canvas
// for backgrounds that carve transparency later.
func Rasterize(grid ModuleGrid, cfg RenderConfig, withAlpha bool) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := grid.Size()
	if size < 1 {
		return nil, fmt.Errorf("%w: empty module grid", ErrInvalidRenderParameters)
	}

	m := cfg.ModuleSize
	c := newCanvas(cfg.ImageEdge(size), cfg.Light, withAlpha)
	for y := 0; y < size; y++ {
		py := (y + cfg.Border) * m
		for x := 0; x < size; {
			if !grid.Dark(x, y) {
				x++
				continue
			}
			// Paint horizontal runs of dark modules in one pass.
			end := x + 1
			for end < size && grid.Dark(end, y) {
				end++
			}
			c.fillRect(image.Rect((x+cfg.Border)*m, py, (end+cfg.Border)*m, py+m), cfg.Dark)
			x = end
		}
	}
	return c, nil
}
