package render

import (
	"errors"
	"testing"
)

func TestHexToRGB(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{"#000000", RGB{}},
		{"FFFFFF", RGB{255, 255, 255}},
		{"#1a2B3c", RGB{0x1a, 0x2b, 0x3c}},
		{"  #ff8000 ", RGB{255, 128, 0}},
	}
	for _, tc := range cases {
		got, err := HexToRGB(tc.in)
		if err != nil {
			t.Fatalf("HexToRGB(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("HexToRGB(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestHexToRGBInvalid(t *testing.T) {
	for _, in := range []string{"#ZZZZZZ", "", "#fff", "#12345", "1234567", "#-12345", "##123456"} {
		if _, err := HexToRGB(in); !errors.Is(err, ErrInvalidColorFormat) {
			t.Errorf("HexToRGB(%q): expected ErrInvalidColorFormat, got %v", in, err)
		}
	}
}

func TestRGBHexRoundTrip(t *testing.T) {
	c := RGB{0x12, 0xab, 0xff}
	if got := c.Hex(); got != "#12abff" {
		t.Fatalf("unexpected hex: %s", got)
	}
	if back := MustHex(c.Hex()); back != c {
		t.Fatalf("unexpected color: %+v", back)
	}
}

func TestLerpChannel(t *testing.T) {
	cases := []struct {
		a, b uint8
		t    float64
		want uint8
	}{
		{0, 255, 0, 0},
		{0, 255, 1, 255},
		{0, 255, 0.5, 128},
		{200, 100, 0.25, 175},
		{10, 20, -1, 0},
		{250, 255, 3, 255},
	}
	for _, tc := range cases {
		if got := LerpChannel(tc.a, tc.b, tc.t); got != tc.want {
			t.Errorf("LerpChannel(%d, %d, %v) = %d, want %d", tc.a, tc.b, tc.t, got, tc.want)
		}
	}
}
