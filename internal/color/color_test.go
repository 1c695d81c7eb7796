package color

import (
	"math"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	// Stride of 17 covers both channel endpoints (0 and 255).
	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				in := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				out, err := ParseHex(in.Hex())
				if err != nil {
					t.Fatalf("ParseHex(%q) error: %v", in.Hex(), err)
				}
				if out != in {
					t.Fatalf("round trip %v -> %q -> %v", in, in.Hex(), out)
				}
			}
		}
	}
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    RGB
		wantErr bool
	}{
		{name: "with hash", in: "#ff8000", want: RGB{255, 128, 0}},
		{name: "without hash", in: "ff8000", want: RGB{255, 128, 0}},
		{name: "uppercase", in: "#FF8000", want: RGB{255, 128, 0}},
		{name: "black", in: "#000000", want: RGB{0, 0, 0}},
		{name: "too short", in: "#fff", wantErr: true},
		{name: "too long", in: "#ff80001", wantErr: true},
		{name: "bad digits", in: "#zzzzzz", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseHex(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseHex(%q) expected error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestHexFormat(t *testing.T) {
	if got := (RGB{255, 0, 170}).Hex(); got != "#ff00aa" {
		t.Errorf("Hex() = %q, want %q", got, "#ff00aa")
	}
}

func TestXY(t *testing.T) {
	cases := []struct {
		name  string
		in    RGB
		wantX float64
		wantY float64
	}{
		{name: "white", in: RGB{255, 255, 255}, wantX: 0.3227, wantY: 0.3290},
		{name: "red", in: RGB{255, 0, 0}, wantX: 0.7006, wantY: 0.2993},
		{name: "black", in: RGB{0, 0, 0}, wantX: 0, wantY: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.in.XY()
			if math.Abs(float64(x)-tc.wantX) > 0.001 || math.Abs(float64(y)-tc.wantY) > 0.001 {
				t.Errorf("XY(%v) = (%.4f, %.4f), want (%.4f, %.4f)", tc.in, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestXYInGamut(t *testing.T) {
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				x, y := RGB{uint8(r), uint8(g), uint8(b)}.XY()
				if x < 0 || x > 1 || y < 0 || y > 1 {
					t.Fatalf("XY(%d,%d,%d) = (%f, %f) out of [0,1]", r, g, b, x, y)
				}
			}
		}
	}
}

func TestHSV16(t *testing.T) {
	cases := []struct {
		name string
		in   RGB
		h    uint16
		s    uint16
		v    uint16
	}{
		{name: "red", in: RGB{255, 0, 0}, h: 0, s: 65535, v: 65535},
		{name: "green", in: RGB{0, 255, 0}, h: 21845, s: 65535, v: 65535},
		{name: "blue", in: RGB{0, 0, 255}, h: 43690, s: 65535, v: 65535},
		{name: "white", in: RGB{255, 255, 255}, h: 0, s: 0, v: 65535},
		{name: "black", in: RGB{0, 0, 0}, h: 0, s: 0, v: 0},
		{name: "gray", in: RGB{128, 128, 128}, h: 0, s: 0, v: 32896},
		{name: "orange", in: RGB{255, 128, 0}, h: 5482, s: 65535, v: 65535},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, s, v := tc.in.HSV16()
			if h != tc.h || s != tc.s || v != tc.v {
				t.Errorf("HSV16(%v) = (%d, %d, %d), want (%d, %d, %d)", tc.in, h, s, v, tc.h, tc.s, tc.v)
			}
		})
	}
}

func TestPacked(t *testing.T) {
	cases := []struct {
		in   RGB
		want uint32
	}{
		{RGB{255, 0, 0}, 0xff0000},
		{RGB{0, 255, 0}, 0x00ff00},
		{RGB{0, 0, 255}, 0x0000ff},
		{RGB{255, 128, 64}, 0xff8040},
		{RGB{0, 0, 0}, 0},
	}
	for _, tc := range cases {
		if got := tc.in.Packed(); got != tc.want {
			t.Errorf("Packed(%v) = %#06x, want %#06x", tc.in, got, tc.want)
		}
	}
}
