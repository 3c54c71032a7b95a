package surface

import (
	"image/color"
	"testing"
)

func TestHSLA(t *testing.T) {
	tests := []struct {
		name string
		in   HSLA
		want color.NRGBA
	}{
		{name: "red", in: HSLA{0, 100, 50, 1}, want: color.NRGBA{255, 0, 0, 255}},
		{name: "blue", in: HSLA{240, 100, 50, 1}, want: color.NRGBA{0, 0, 255, 255}},
		{name: "hue wraps", in: HSLA{360 + 120, 100, 50, 1}, want: color.NRGBA{0, 255, 0, 255}},
		{name: "white", in: HSLA{200, 100, 100, 0.5}, want: color.NRGBA{255, 255, 255, 128}},
		{name: "black transparent", in: HSLA{0, 0, 0, 0}, want: color.NRGBA{0, 0, 0, 0}},
		{name: "alpha clamps", in: HSLA{0, 100, 50, 1.7}, want: color.NRGBA{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.NRGBA(); got != tt.want {
				t.Fatalf("NRGBA: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStraight(t *testing.T) {
	r, g, b, a := straight(HSLA{0, 100, 50, 0.5})
	if r != 1 || g != 0 || b != 0 {
		t.Fatalf("straight should not premultiply, got %v %v %v", r, g, b)
	}
	if a < 0.5 || a > 0.51 {
		t.Fatalf("alpha: got %v", a)
	}
}
