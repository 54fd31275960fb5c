package render

import "image"

// Canvas is the pixel buffer owned by a single render call. Pixels are
// stored non-premultiplied; when alpha is false every pixel stays opaque.
type Canvas struct {
	img   *image.NRGBA
	alpha bool
}

func newCanvas(edge int, fill RGB, alpha bool) *Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	row := img.Pix[:edge*4]
	for i := 0; i < len(row); i += 4 {
		row[i+0] = fill.R
		row[i+1] = fill.G
		row[i+2] = fill.B
		row[i+3] = 0xff
	}
	for y := 1; y < edge; y++ {
		copy(img.Pix[y*img.Stride:], row)
	}
	return &Canvas{img: img, alpha: alpha}
}

// Image exposes the underlying buffer.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// HasAlpha reports whether the canvas was allocated with transparency.
func (c *Canvas) HasAlpha() bool { return c.alpha }

// Edge returns the canvas edge length in pixels.
func (c *Canvas) Edge() int { return c.img.Rect.Dx() }

// fillRect paints r (clipped to the canvas) with an opaque color.
func (c *Canvas) fillRect(r image.Rectangle, col RGB) {
	r = r.Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	first := c.img.PixOffset(r.Min.X, r.Min.Y)
	row := c.img.Pix[first : first+r.Dx()*4]
	for i := 0; i < len(row); i += 4 {
		row[i+0] = col.R
		row[i+1] = col.G
		row[i+2] = col.B
		row[i+3] = 0xff
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		copy(c.img.Pix[c.img.PixOffset(r.Min.X, y):], row)
	}
}

// flatten composites the canvas source-over onto an opaque background and
// returns an image with no transparent pixels. Opaque canvases are returned
// as is.
func (c *Canvas) flatten(bg RGB) *image.NRGBA {
	if !c.alpha {
		return c.img
	}
	out := newCanvas(c.Edge(), bg, false).img
	src, dst := c.img.Pix, out.Pix
	for i := 0; i < len(src); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 0xff:
			copy(dst[i:i+4], src[i:i+4])
		case 0:
		default:
			dst[i+0] = over(src[i+0], dst[i+0], a)
			dst[i+1] = over(src[i+1], dst[i+1], a)
			dst[i+2] = over(src[i+2], dst[i+2], a)
		}
	}
	return out
}

func over(s, d uint8, a uint32) uint8 {
	return uint8((uint32(s)*a + uint32(d)*(0xff-a) + 0x7f) / 0xff)
}
