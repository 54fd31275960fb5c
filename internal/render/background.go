package render

import (
	"image"
	"image/draw"
	"math"
)

// applyHalo rewrites the canvas alpha so the area under the logo is fully
// transparent and fades linearly back to opaque over two modules.
func applyHalo(c *Canvas, logoW, logoH, moduleSize int) {
	edge := c.Edge()
	center := float64(edge) / 2
	inner := float64(max(logoW, logoH)) / 2
	outer := inner + 2*float64(moduleSize)

	// Alpha outside the annulus is already opaque.
	lo := max(0, int(math.Floor(center-outer)))
	hi := min(edge, int(math.Ceil(center+outer))+1)

	pix, stride := c.img.Pix, c.img.Stride
	for y := lo; y < hi; y++ {
		dy := float64(y) - center
		row := pix[y*stride:]
		for x := lo; x < hi; x++ {
			dx := float64(x) - center
			row[x*4+3] = haloAlpha(math.Sqrt(dx*dx+dy*dy), inner, outer)
		}
	}
}

func haloAlpha(d, inner, outer float64) uint8 {
	switch {
	case d <= inner:
		return 0
	case d >= outer:
		return 0xff
	}
	return uint8(255 * (d - inner) / (outer - inner))
}

// radialDisc renders a square buffer of edge pixels holding a disc that
// blends from dark at the center to light at the rim, plus the disc's
// coverage. The pixel at distance d from the center belongs to ring
// ceil(2d), so ring i spans diameter i and has ratio i/edge.
func radialDisc(edge int, light, dark RGB) (*image.NRGBA, *image.Alpha) {
	disc := image.NewNRGBA(image.Rect(0, 0, edge, edge))
	cover := image.NewAlpha(disc.Rect)
	center := float64(edge) / 2
	for y := 0; y < edge; y++ {
		dy := float64(y) + 0.5 - center
		for x := 0; x < edge; x++ {
			dx := float64(x) + 0.5 - center
			ring := int(math.Ceil(2 * math.Sqrt(dx*dx+dy*dy)))
			if ring > edge {
				continue
			}
			col := lerpRGB(dark, light, float64(ring)/float64(edge))
			i := disc.PixOffset(x, y)
			disc.Pix[i+0] = col.R
			disc.Pix[i+1] = col.G
			disc.Pix[i+2] = col.B
			disc.Pix[i+3] = 0xff
			cover.Pix[cover.PixOffset(x, y)] = 0xff
		}
	}
	return disc, cover
}

// pasteRadialGradient centers a gradient disc 1.2x the logo's longest edge
// over the canvas. Parts falling outside the canvas are clipped.
func pasteRadialGradient(c *Canvas, logoW, logoH int, light, dark RGB) {
	size := int(float64(max(logoW, logoH)) * 1.2)
	if size < 1 {
		return
	}
	disc, cover := radialDisc(size, light, dark)
	off := floorDiv(c.Edge()-size, 2)
	r := image.Rect(off, off, off+size, off+size)
	// Only the disc is painted; the square's corners keep the code beneath.
	draw.DrawMask(c.img, r, disc, image.Point{}, cover, image.Point{}, draw.Over)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
