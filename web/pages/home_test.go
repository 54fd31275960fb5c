package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/cristianadrielbraun/qrstyle/web/components"
)

func TestHomePageRendersDefaults(t *testing.T) {
	d := components.FormDefaults{
		Text:           `<script>alert("x")</script>`,
		ECL:            "H",
		MinVersion:     1,
		MaxVersion:     40,
		Mask:           "auto",
		BoostECL:       true,
		ModuleSize:     15,
		Border:         4,
		Dark:           "#000000",
		Light:          "#ffffff",
		LogoSize:       25,
		LogoShape:      "square",
		LogoBackground: "solid",
		Encoder:        "skip2",
		Encoders:       []string{"skip2", "yeqown"},
		MaxLogoBytes:   5 << 20,
	}
	var b strings.Builder
	if err := HomePage(d).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := b.String()
	for _, want := range []string{
		`action="/api/qr"`,
		`enctype="multipart/form-data"`,
		`<option value="H" selected>`,
		`<option value="skip2" selected>`,
		`name="moduleSize" value="15"`,
		`name="boostEcl" value="true" checked`,
		`<input type="hidden" name="boostEcl" value="false">`,
		`max 5120 KB`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("text default was not escaped")
	}
}

func TestToastEscapesAndMergesClasses(t *testing.T) {
	var b strings.Builder
	err := components.Toast(components.ToastProps{
		Title:       "Saved <b>",
		Variant:     components.ParseVariant("destructive"),
		Duration:    2000,
		Dismissible: true,
		Class:       "right-8",
	}).Render(context.Background(), &b)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := b.String()
	if !strings.Contains(html, "Saved &lt;b&gt;") {
		t.Errorf("title not escaped: %s", html)
	}
	if !strings.Contains(html, "border-red-500") || !strings.Contains(html, "right-8") || strings.Contains(html, "right-4") {
		t.Errorf("unexpected classes: %s", html)
	}
	if !strings.Contains(html, `data-duration="2000"`) || !strings.Contains(html, "data-toast-dismiss") {
		t.Errorf("missing toast attributes: %s", html)
	}
}
