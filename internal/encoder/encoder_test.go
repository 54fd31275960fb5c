package encoder

import (
	"errors"
	"strings"
	"testing"
)

func mustEncoder(t *testing.T, name string) Encoder {
	t.Helper()
	enc, err := New(name)
	if err != nil {
		t.Fatalf("new encoder %q: %v", name, err)
	}
	return enc
}

func copyModules(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for y := range m {
		out[y] = append([]bool(nil), m[y]...)
	}
	return out
}

// finderIntact checks the 7x7 finder pattern with its top-left corner at (x0, y0).
func finderIntact(m [][]bool, x0, y0 int) bool {
	for dy := 0; dy < 7; dy++ {
		for dx := 0; dx < 7; dx++ {
			ring := max(abs(dx-3), abs(dy-3))
			want := ring != 2
			if m[y0+dy][x0+dx] != want {
				return false
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestNewEncoder(t *testing.T) {
	for _, name := range append(Names(), "") {
		enc := mustEncoder(t, name)
		if name != "" && enc.Name() != name {
			t.Errorf("expected %s, got %s", name, enc.Name())
		}
	}
	if _, err := New("zxing"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"l": Low, "M": Medium, "quartile": Quartile, "H": High, "": High}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseLevel("X"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestRequestValidate(t *testing.T) {
	bad := []Request{
		{Content: "", Level: High, MinVersion: 1, MaxVersion: 40, Mask: AutoMask},
		{Content: "x", Level: Level(7), MinVersion: 1, MaxVersion: 40, Mask: AutoMask},
		{Content: "x", Level: High, MinVersion: 0, MaxVersion: 40, Mask: AutoMask},
		{Content: "x", Level: High, MinVersion: 5, MaxVersion: 4, Mask: AutoMask},
		{Content: "x", Level: High, MinVersion: 1, MaxVersion: 41, Mask: AutoMask},
		{Content: "x", Level: High, MinVersion: 1, MaxVersion: 40, Mask: 8},
	}
	for i, req := range bad {
		if err := req.Validate(); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
	if err := DefaultRequest("x").Validate(); err != nil {
		t.Fatalf("default request: %v", err)
	}
}

func TestSkip2SmallestVersion(t *testing.T) {
	res, err := mustEncoder(t, "skip2").Encode(DefaultRequest("HELLO"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if res.Version != 1 || res.Size != 21 || len(res.Modules) != 21 {
		t.Fatalf("expected version 1 with 21 modules, got version %d size %d", res.Version, res.Size)
	}
	if res.Level != High {
		t.Fatalf("expected level H, got %s", res.Level)
	}
	if res.Mask < 0 || res.Mask > 7 {
		t.Fatalf("mask out of range: %d", res.Mask)
	}
	size := res.Size
	for _, p := range [][2]int{{0, 0}, {size - 7, 0}, {0, size - 7}} {
		if !finderIntact(res.Modules, p[0], p[1]) {
			t.Fatalf("finder pattern at %v is broken", p)
		}
	}
}

func TestEncodeMinVersion(t *testing.T) {
	for _, name := range Names() {
		req := DefaultRequest("HELLO")
		req.MinVersion = 5
		res, err := mustEncoder(t, name).Encode(req)
		if err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		if res.Version != 5 || res.Size != 37 {
			t.Fatalf("%s: expected version 5 (37 modules), got %d (%d)", name, res.Version, res.Size)
		}
	}
}

func TestEncodeDataTooLong(t *testing.T) {
	for _, name := range Names() {
		req := DefaultRequest(strings.Repeat("too long for version one ", 4))
		req.MaxVersion = 1
		if _, err := mustEncoder(t, name).Encode(req); !errors.Is(err, ErrDataTooLong) {
			t.Errorf("%s: expected ErrDataTooLong, got %v", name, err)
		}
	}
	req := DefaultRequest(strings.Repeat("x", 4000))
	if _, err := mustEncoder(t, "skip2").Encode(req); !errors.Is(err, ErrDataTooLong) {
		t.Fatalf("expected ErrDataTooLong beyond version 40, got %v", err)
	}
}

func TestEncodeBoostECL(t *testing.T) {
	req := DefaultRequest("hi")
	req.Level = Low
	res, err := mustEncoder(t, "skip2").Encode(req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if res.Version != 1 || res.Level != High {
		t.Fatalf("expected boost to H at version 1, got %s at version %d", res.Level, res.Version)
	}

	req.BoostECL = false
	res, err = mustEncoder(t, "skip2").Encode(req)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if res.Level != Low {
		t.Fatalf("expected level L without boost, got %s", res.Level)
	}
}

func TestEncodeMaskOverride(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		req := DefaultRequest("https://example.com/mask")
		req.Mask = mask
		res, err := mustEncoder(t, "skip2").Encode(req)
		if err != nil {
			t.Fatalf("mask %d: encode: %v", mask, err)
		}
		if res.Mask != mask {
			t.Fatalf("expected mask %d, got %d", mask, res.Mask)
		}
		level, read, err := ReadFormat(res.Modules)
		if err != nil {
			t.Fatalf("mask %d: read format: %v", mask, err)
		}
		if read != mask || level != res.Level {
			t.Fatalf("format says %s/%d, result says %s/%d", level, read, res.Level, res.Mask)
		}
	}
}

func TestRemaskRoundTrip(t *testing.T) {
	res, err := mustEncoder(t, "skip2").Encode(DefaultRequest("round trip through another mask"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	orig := copyModules(res.Modules)
	to := (res.Mask + 3) % 8

	if err := Remask(res.Modules, res.Mask, to); err != nil {
		t.Fatalf("remask: %v", err)
	}
	size := res.Size
	for _, p := range [][2]int{{0, 0}, {size - 7, 0}, {0, size - 7}} {
		if !finderIntact(res.Modules, p[0], p[1]) {
			t.Fatalf("finder pattern at %v is broken after remask", p)
		}
	}
	for i := 8; i < size-8; i++ {
		if res.Modules[6][i] != (i%2 == 0) || res.Modules[i][6] != (i%2 == 0) {
			t.Fatalf("timing pattern changed at %d", i)
		}
	}

	if err := Remask(res.Modules, to, res.Mask); err != nil {
		t.Fatalf("remask back: %v", err)
	}
	for y := range orig {
		for x := range orig[y] {
			if orig[y][x] != res.Modules[y][x] {
				t.Fatalf("module (%d,%d) differs after round trip", x, y)
			}
		}
	}
}

func TestYeqownEncode(t *testing.T) {
	res, err := mustEncoder(t, "yeqown").Encode(DefaultRequest("https://example.com"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if res.Size != 17+4*res.Version || len(res.Modules) != res.Size {
		t.Fatalf("inconsistent result: version %d size %d rows %d", res.Version, res.Size, len(res.Modules))
	}
	if res.Level != High {
		t.Fatalf("expected level H, got %s", res.Level)
	}
	for _, p := range [][2]int{{0, 0}, {res.Size - 7, 0}, {0, res.Size - 7}} {
		if !finderIntact(res.Modules, p[0], p[1]) {
			t.Fatalf("finder pattern at %v is broken", p)
		}
	}
}
