package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	// Extra raster formats on top of PNG, JPEG and GIF.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxLogoPixels is the pixel budget DecodeLogo applies when the
// caller passes no limit of its own.
const DefaultMaxLogoPixels = 16 << 20

// DecodeLogo decodes an uploaded logo, applying EXIF orientation. The header
// is read first and logos declaring more than maxPixels pixels are rejected
// with ErrLogoTooLarge before any pixel buffer is allocated. A maxPixels
// below 1 selects DefaultMaxLogoPixels.
func DecodeLogo(data []byte, maxPixels int) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty logo", ErrUnsupportedLogoFormat)
	}
	if maxPixels < 1 {
		maxPixels = DefaultMaxLogoPixels
	}
	hdr, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLogoFormat, err)
	}
	if px := int64(hdr.Width) * int64(hdr.Height); px > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d is %d pixels, limit is %d", ErrLogoTooLarge, hdr.Width, hdr.Height, px, maxPixels)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLogoFormat, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: logo has zero area", ErrInvalidRenderParameters)
	}
	return img, nil
}

// fitLogo scales img down with a Lanczos filter so its longest edge is at
// most maxEdge, keeping the aspect ratio. Smaller logos are never enlarged.
func fitLogo(img image.Image, maxEdge int) (*image.NRGBA, error) {
	if maxEdge < 1 {
		return nil, fmt.Errorf("%w: logo box is smaller than one pixel", ErrInvalidRenderParameters)
	}
	fitted := imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	if fitted.Bounds().Empty() {
		return nil, fmt.Errorf("%w: logo has zero area", ErrInvalidRenderParameters)
	}
	return fitted, nil
}
