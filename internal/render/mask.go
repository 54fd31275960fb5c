package render

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
)

// ShapeMask returns a hard-edged coverage mask of w x h for shape: 255
// inside, 0 outside.
func ShapeMask(w, h int, shape Shape) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	switch shape {
	case ShapeCircle:
		fillEllipse(m)
	case ShapeRoundedRectangle:
		fillRoundedRect(m, cornerRadius(w, h))
	default:
		for i := range m.Pix {
			m.Pix[i] = 0xff
		}
	}
	return m
}

// SmoothShapeMask is ShapeMask with anti-aliased edges.
func SmoothShapeMask(w, h int, shape Shape) *image.Alpha {
	if shape == ShapeSquare {
		return ShapeMask(w, h, shape)
	}
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return m
	}

	scanner := rasterx.NewScannerGV(w, h, m, m.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(color.Alpha{A: 0xff})

	fw, fh := float64(w), float64(h)
	switch shape {
	case ShapeCircle:
		rasterx.AddEllipse(fw/2, fh/2, fw/2, fh/2, 0, filler)
	case ShapeRoundedRectangle:
		r := float64(cornerRadius(w, h))
		rasterx.AddRoundRect(0, 0, fw, fh, r, r, 0, rasterx.RoundGap, filler)
	}
	filler.Draw()
	return m
}

func (o LogoOptions) mask(w, h int) *image.Alpha {
	if o.SmoothEdges {
		return SmoothShapeMask(w, h, o.Shape)
	}
	return ShapeMask(w, h, o.Shape)
}

func cornerRadius(w, h int) int {
	return int(0.2 * float64(min(w, h)))
}

// fillEllipse covers every pixel whose center lies inside the ellipse
// inscribed in the mask bounds.
func fillEllipse(m *image.Alpha) {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		dy := (float64(y) + 0.5 - cy) / cy
		if dy*dy > 1 {
			continue
		}
		half := cx * math.Sqrt(1-dy*dy)
		x0 := max(0, int(math.Ceil(cx-half-0.5)))
		x1 := min(w-1, int(math.Floor(cx+half-0.5)))
		row := m.Pix[y*m.Stride:]
		for x := x0; x <= x1; x++ {
			row[x] = 0xff
		}
	}
}

func fillRoundedRect(m *image.Alpha, r int) {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride:]
		for x := 0; x < w; x++ {
			if insideRoundedRect(x, y, 0, 0, w-1, h-1, r) {
				row[x] = 0xff
			}
		}
	}
}

// insideRoundedRect is a hit test on inclusive pixel coordinates.
func insideRoundedRect(x, y, left, top, right, bottom, r int) bool {
	if x < left || x > right || y < top || y > bottom {
		return false
	}
	if r <= 0 {
		return true
	}
	// Straight bands
	if x >= left+r && x <= right-r {
		return true
	}
	if y >= top+r && y <= bottom-r {
		return true
	}
	// Corner circles
	cx, cy := left+r, top+r
	if x > right-r {
		cx = right - r
	}
	if y > bottom-r {
		cy = bottom - r
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
