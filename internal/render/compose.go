package render

import (
	"fmt"
	"image"
	"image/draw"
)

// Logo is a decoded logo together with its styling.
type Logo struct {
	Image   image.Image
	Options LogoOptions
}

// Render rasterizes grid and, when logo is non-nil, composites the logo with
// its background treatment and frame. The result is always fully opaque.
// Render is deterministic and keeps no state between calls.
func Render(grid ModuleGrid, cfg RenderConfig, logo *Logo) (*image.NRGBA, error) {
	if logo != nil {
		if logo.Image == nil || logo.Image.Bounds().Empty() {
			return nil, fmt.Errorf("%w: logo has zero area", ErrInvalidRenderParameters)
		}
		if err := logo.Options.Validate(); err != nil {
			return nil, err
		}
	}

	halo := logo != nil && logo.Options.Background == BackgroundHalo
	canvas, err := Rasterize(grid, cfg, halo)
	if err != nil {
		return nil, err
	}
	if logo != nil {
		if err := composeLogo(canvas, cfg, logo); err != nil {
			return nil, err
		}
	}

	out := canvas.flatten(cfg.Light)
	args := []any{"grid", grid.Size(), "edge", out.Rect.Dx(), "alpha", canvas.HasAlpha()}
	if logo != nil {
		args = append(args, "shape", logo.Options.Shape.String(), "background", logo.Options.Background.String(), "border", logo.Options.Border)
	}
	logger().Debug("render: done", args...)
	return out, nil
}

func composeLogo(c *Canvas, cfg RenderConfig, logo *Logo) error {
	opts := logo.Options
	edge := c.Edge()
	fitted, err := fitLogo(logo.Image, int(float64(edge)*opts.SizeRatio))
	if err != nil {
		return err
	}
	lw, lh := fitted.Rect.Dx(), fitted.Rect.Dy()
	pos := image.Pt(floorDiv(edge-lw, 2), floorDiv(edge-lh, 2))

	switch opts.Background {
	case BackgroundHalo:
		applyHalo(c, lw, lh, cfg.ModuleSize)
	case BackgroundRadialGradient:
		pasteRadialGradient(c, lw, lh, cfg.Light, cfg.Dark)
	}

	if opts.Border {
		bw := cfg.frameWidth()
		fw, fh := lw+2*bw, lh+2*bw
		r := image.Rect(pos.X-bw, pos.Y-bw, pos.X-bw+fw, pos.Y-bw+fh)
		frame := image.NewUniform(cfg.Dark.NRGBA())
		draw.DrawMask(c.img, r, frame, image.Point{}, opts.mask(fw, fh), image.Point{}, draw.Over)
	}

	// The logo always goes last so nothing occludes it.
	r := image.Rectangle{Min: pos, Max: pos.Add(image.Pt(lw, lh))}
	draw.DrawMask(c.img, r, fitted, fitted.Rect.Min, opts.mask(lw, lh), image.Point{}, draw.Over)
	return nil
}
