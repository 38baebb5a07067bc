package svgdevice

import (
	"testing"

	"github.com/gosvgcore/svgcore/svgcore"
	"github.com/gosvgcore/svgcore/svgpath"
)

func TestClamp01(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.5: 0.5, 1: 1, 2: 1}
	for in, want := range cases {
		if got := clamp01(in); got != want {
			t.Errorf("clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestToRasterxGradientCarriesStopsAndSpread(t *testing.T) {
	stops := []svgcore.GradientStop{
		{Offset: 0, Color: svgpath.Color{R: 255, A: 1}, Opacity: 1},
		{Offset: 1, Color: svgpath.Color{B: 255, A: 1}, Opacity: 0.5},
	}
	grad := toRasterxGradient([5]float64{0, 0, 1, 0, 0}, stops, false, svgcore.PadSpread, svgpath.Identity)
	if len(grad.Stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(grad.Stops))
	}
	if grad.Stops[1].Opacity != 0.5 {
		t.Errorf("got opacity %v, want 0.5", grad.Stops[1].Opacity)
	}
	if grad.IsRadial {
		t.Error("expected a linear gradient")
	}
}

func TestJoinAndCapLookupTablesCoverAllEnumValues(t *testing.T) {
	for j := svgcore.JoinArc; j <= svgcore.JoinArcClip; j++ {
		if int(j) >= len(joinToJoin) {
			t.Errorf("joinToJoin has no entry for JoinMode %d", j)
		}
	}
	for c := svgcore.CapButt; c <= svgcore.CapRound; c++ {
		if int(c) >= len(capToFunc) {
			t.Errorf("capToFunc has no entry for CapMode %d", c)
		}
	}
}
