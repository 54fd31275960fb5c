package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func TestDecodeLogoPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidLogo(30, 20, logoRed)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	img, err := DecodeLogo(buf.Bytes(), 0)
	if err != nil {
		t.Fatalf("decode logo: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatalf("unexpected logo size: %v", b)
	}
}

func TestDecodeLogoJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidLogo(16, 16, logoRed), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	if _, err := DecodeLogo(buf.Bytes(), 0); err != nil {
		t.Fatalf("decode logo: %v", err)
	}
}

func TestDecodeLogoRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("definitely not an image")} {
		if _, err := DecodeLogo(data, 0); !errors.Is(err, ErrUnsupportedLogoFormat) {
			t.Errorf("expected ErrUnsupportedLogoFormat, got %v", err)
		}
	}
}

func TestEncodeFormats(t *testing.T) {
	img := solidLogo(8, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	var pngBuf bytes.Buffer
	if err := Encode(&pngBuf, img, FormatPNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if _, err := png.Decode(&pngBuf); err != nil {
		t.Fatalf("decode png: %v", err)
	}

	var jpgBuf bytes.Buffer
	if err := Encode(&jpgBuf, img, FormatJPEG); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(&jpgBuf)
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Fatalf("unexpected jpeg size: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatPNG, "png": FormatPNG, "JPEG": FormatJPEG, "jpg": FormatJPEG, "svg": FormatPNG}
	for in, want := range cases {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if FormatJPEG.ContentType() != "image/jpeg" || FormatPNG.Ext() != ".png" {
		t.Fatal("unexpected format metadata")
	}
}

func TestParseOptions(t *testing.T) {
	if s, err := ParseShape("Rounded Rectangle"); err != nil || s != ShapeRoundedRectangle {
		t.Fatalf("ParseShape: %v %v", s, err)
	}
	if _, err := ParseShape("hexagon"); !errors.Is(err, ErrInvalidRenderParameters) {
		t.Fatalf("expected ErrInvalidRenderParameters, got %v", err)
	}
	if b, err := ParseBackgroundStyle("Gradient Halo"); err != nil || b != BackgroundHalo {
		t.Fatalf("ParseBackgroundStyle: %v %v", b, err)
	}
	if b, err := ParseBackgroundStyle("radial"); err != nil || b != BackgroundRadialGradient {
		t.Fatalf("ParseBackgroundStyle: %v %v", b, err)
	}
	if _, err := ParseBackgroundStyle("plaid"); !errors.Is(err, ErrInvalidRenderParameters) {
		t.Fatalf("expected ErrInvalidRenderParameters, got %v", err)
	}
}

func TestFrameWidth(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 2, 10: 8, 15: 11}
	for m, want := range cases {
		cfg := RenderConfig{ModuleSize: m}
		if got := cfg.frameWidth(); got != want {
			t.Errorf("frameWidth(%d) = %d, want %d", m, got, want)
		}
	}
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w x h
// grayscale image with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr[:]...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeLogoRejectsHugeDimensions(t *testing.T) {
	data := pngHeader(50000, 50000)
	if _, err := DecodeLogo(data, 0); !errors.Is(err, ErrLogoTooLarge) {
		t.Fatalf("expected ErrLogoTooLarge for a 50000x50000 header, got %v", err)
	}
}

func TestDecodeLogoPixelLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidLogo(40, 30, logoRed)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if _, err := DecodeLogo(buf.Bytes(), 40*30-1); !errors.Is(err, ErrLogoTooLarge) {
		t.Fatalf("expected ErrLogoTooLarge one pixel over the limit, got %v", err)
	}
	img, err := DecodeLogo(buf.Bytes(), 40*30)
	if err != nil {
		t.Fatalf("a logo exactly at the limit must decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("unexpected logo size: %v", b)
	}
}
