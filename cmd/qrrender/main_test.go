package main

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianadrielbraun/qrstyle/internal/encoder"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
)

func TestRunWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "code.png")
	var stdout bytes.Buffer
	if err := run([]string{"-text", "HELLO", "-o", out, "-module-size", "4", "-border", "2"}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	// (21 + 4) * 4
	if b := img.Bounds(); b.Dx() != 100 {
		t.Fatalf("expected 100px, got %v", b)
	}
	for _, want := range []string{"Version: 1", "Size: 21x21 modules", "Error Correction Level: H"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("expected output to contain %q, got %s", want, stdout.String())
		}
	}
}

func TestRunWithLogoAndJPEG(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	var logo bytes.Buffer
	if err := png.Encode(&logo, image.NewGray(image.Rect(0, 0, 20, 20))); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	if err := os.WriteFile(logoPath, logo.Bytes(), 0o644); err != nil {
		t.Fatalf("write logo: %v", err)
	}

	out := filepath.Join(dir, "code.jpg")
	var stdout bytes.Buffer
	args := []string{"-text", "https://example.com", "-o", out, "-module-size", "3", "-ecl", "M",
		"-logo", logoPath, "-logo-shape", "rounded", "-logo-background", "radial", "-logo-border"}
	if err := run(args, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "warning:") {
		t.Errorf("expected a logo warning, got %s", stdout.String())
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "code.png")
	var stdout bytes.Buffer

	err := run([]string{"-text", strings.Repeat("long text ", 20), "-max-version", "1", "-o", out}, &stdout)
	if !errors.Is(err, encoder.ErrDataTooLong) {
		t.Fatalf("expected ErrDataTooLong, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatal("no file must be written on failure")
	}
	if err := run([]string{"-o", out}, &stdout); !errors.Is(err, encoder.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for missing text, got %v", err)
	}
	if err := run([]string{"-text", "x", "-dark", "nope", "-o", out}, &stdout); err == nil {
		t.Fatal("expected error for a bad color")
	}
}

func TestRunRejectsLogoOverPixelLimit(t *testing.T) {
	dir := t.TempDir()
	logoPath := filepath.Join(dir, "logo.png")
	var logo bytes.Buffer
	if err := png.Encode(&logo, image.NewGray(image.Rect(0, 0, 20, 20))); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	if err := os.WriteFile(logoPath, logo.Bytes(), 0o644); err != nil {
		t.Fatalf("write logo: %v", err)
	}

	out := filepath.Join(dir, "code.png")
	var stdout bytes.Buffer
	err := run([]string{"-text", "x", "-o", out, "-logo", logoPath, "-max-logo-pixels", "399"}, &stdout)
	if !errors.Is(err, render.ErrLogoTooLarge) {
		t.Fatalf("expected ErrLogoTooLarge, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatal("no file must be written on failure")
	}
}
