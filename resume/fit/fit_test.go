package fit

import (
	"math"
	"testing"
)

func TestScale(t *testing.T) {
	cases := []struct {
		name      string
		natural   float64
		container float64
		want      float64
	}{
		{"half", 800, 400, 0.5},
		{"grow", 400, 800, 2},
		{"unknown container", 800, 0, 1},
		{"unmeasured canvas", 0, 400, 1},
		{"negative container", 800, -10, 1},
		{"nan", math.NaN(), 400, 1},
		{"inf", 800, math.Inf(1), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Scale(tc.natural, tc.container); got != tc.want {
				t.Fatalf("Scale(%v, %v) = %v, want %v", tc.natural, tc.container, got, tc.want)
			}
		})
	}
}

func TestZeroContainerIsUnscaledForAnyWidth(t *testing.T) {
	for _, natural := range []float64{1, 793.7, 1100, 1e6} {
		if got := Scale(natural, 0); got != 1 {
			t.Fatalf("Scale(%v, 0) = %v, want 1", natural, got)
		}
	}
}

func TestTransformPreservesAspectRatio(t *testing.T) {
	tr := For(800, 400)
	if tr.Origin != "top left" {
		t.Fatalf("unexpected origin %q", tr.Origin)
	}
	w, h := tr.Apply(800, 1100)
	if w != 400 || h != 550 {
		t.Fatalf("Apply = %v x %v, want 400 x 550", w, h)
	}
}
