// Command qrrender encodes text and writes the styled QR image to a file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianadrielbraun/qrstyle/internal/encoder"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, encoder.ErrDataTooLong) {
			log.Fatal(encoder.DataTooLongMessage)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("qrrender", flag.ContinueOnError)
	text := fs.String("text", "", "text or URL to encode (required)")
	out := fs.String("o", "custom_qrcode.png", "output file; .jpg or .jpeg selects JPEG")
	ecl := fs.String("ecl", "H", "error correction level: L, M, Q or H")
	minVersion := fs.Int("min-version", encoder.MinVersion, "smallest allowed version")
	maxVersion := fs.Int("max-version", encoder.MaxVersion, "largest allowed version")
	mask := fs.Int("mask", encoder.AutoMask, "mask pattern 0-7, or -1 for auto")
	boost := fs.Bool("boost-ecl", true, "raise the level while the version stays the same")
	encName := fs.String("encoder", "skip2", "QR library: skip2 or yeqown")
	moduleSize := fs.Int("module-size", 15, "pixels per module")
	border := fs.Int("border", 4, "quiet zone in modules")
	dark := fs.String("dark", "#000000", "dark module color")
	light := fs.String("light", "#ffffff", "background color")
	logoPath := fs.String("logo", "", "optional logo image")
	logoSize := fs.Int("logo-size", 25, "logo size as a percentage of the image edge")
	logoShape := fs.String("logo-shape", "square", "square, circle or rounded")
	logoBackground := fs.String("logo-background", "solid", "solid, halo or radial")
	maxLogoPixels := fs.Int("max-logo-pixels", render.DefaultMaxLogoPixels, "reject logos with more pixels than this")
	logoBorder := fs.Bool("logo-border", false, "draw a frame around the logo")
	smooth := fs.Bool("smooth-edges", false, "anti-alias the logo shape")
	debug := fs.Bool("debug", false, "log render details to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *debug {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	level, err := encoder.ParseLevel(*ecl)
	if err != nil {
		return err
	}
	enc, err := encoder.New(*encName)
	if err != nil {
		return err
	}
	req := encoder.Request{
		Content:    *text,
		Level:      level,
		MinVersion: *minVersion,
		MaxVersion: *maxVersion,
		Mask:       *mask,
		BoostECL:   *boost,
	}

	cfg := render.RenderConfig{ModuleSize: *moduleSize, Border: *border}
	if cfg.Dark, err = render.HexToRGB(*dark); err != nil {
		return err
	}
	if cfg.Light, err = render.HexToRGB(*light); err != nil {
		return err
	}

	var logo *render.Logo
	if *logoPath != "" {
		data, err := os.ReadFile(*logoPath)
		if err != nil {
			return fmt.Errorf("read logo: %w", err)
		}
		img, err := render.DecodeLogo(data, *maxLogoPixels)
		if err != nil {
			return err
		}
		opts := render.LogoOptions{
			SizeRatio:   float64(*logoSize) / 100,
			Border:      *logoBorder,
			SmoothEdges: *smooth,
		}
		if opts.Shape, err = render.ParseShape(*logoShape); err != nil {
			return err
		}
		if opts.Background, err = render.ParseBackgroundStyle(*logoBackground); err != nil {
			return err
		}
		logo = &render.Logo{Image: img, Options: opts}
		if level != encoder.High {
			fmt.Fprintln(stdout, "warning: using a logo without High error correction may make the QR code unscannable")
		}
	}

	res, err := enc.Encode(req)
	if err != nil {
		return err
	}
	grid, err := render.NewModuleGrid(res.Modules)
	if err != nil {
		return err
	}
	img, err := render.Render(grid, cfg, logo)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	format := render.ParseFormat(strings.TrimPrefix(filepath.Ext(*out), "."))
	if err := render.Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(*out)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Version: %d\nSize: %dx%d modules\nError Correction Level: %s\nMask Pattern: %d\nWrote %s (%dpx)\n",
		res.Version, res.Size, res.Size, res.Level, res.Mask, *out, img.Bounds().Dx())
	return nil
}
