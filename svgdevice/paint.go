package svgdevice

import (
	stdcolor "image/color"

	"github.com/srwiley/rasterx"

	"github.com/gosvgcore/svgcore/svgcore"
	"github.com/gosvgcore/svgcore/svgpath"
)

// solidBrush is RasterDevice's svgcore.Brush for a flat CSS color.
type solidBrush struct {
	c stdcolor.NRGBA
}

func (solidBrush) Release() {}

func (d *RasterDevice) CreateSolidBrush(c svgpath.Color) (svgcore.Brush, error) {
	return solidBrush{c: stdcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A) * 255)}}, nil
}

// gradientBrush wraps the rasterx.Gradient bridge built from a resolved
// LinearGradientSpec/RadialGradientSpec, continuing svgraster.Renderer's
// toRasterxGradient/setColorFromPattern pairing: the gradient's color
// function is only known once the filled path's extent is available from
// the scanner, so the Gradient value itself, not a precomputed color
// function, is what this brush carries.
type gradientBrush struct {
	grad rasterx.Gradient
}

func (gradientBrush) Release() {}

func toRasterxGradient(points [5]float64, stops []svgcore.GradientStop, isRadial bool, spread svgcore.SpreadMethod, m svgpath.Matrix2D) rasterx.Gradient {
	gstops := make([]rasterx.GradStop, len(stops))
	for i, s := range stops {
		gstops[i] = rasterx.GradStop{
			Offset:    s.Offset,
			StopColor: stdcolor.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 0xff},
			Opacity:   s.Color.A * s.Opacity,
		}
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    gstops,
		Matrix:   rasterx.Matrix2D{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F},
		Spread:   rasterx.SpreadMethod(spread),
		Units:    rasterx.ObjectBoundingBox,
		IsRadial: isRadial,
	}
}

func (d *RasterDevice) CreateLinearGradientBrush(g svgcore.LinearGradientSpec) (svgcore.Brush, error) {
	points := [5]float64{g.X1, g.Y1, g.X2, g.Y2, 0}
	return gradientBrush{grad: toRasterxGradient(points, g.Stops, false, g.Spread, g.Transform)}, nil
}

func (d *RasterDevice) CreateRadialGradientBrush(g svgcore.RadialGradientSpec) (svgcore.Brush, error) {
	points := [5]float64{g.Cx, g.Cy, g.Fx, g.Fy, g.R}
	return gradientBrush{grad: toRasterxGradient(points, g.Stops, true, g.Spread, g.Transform)}, nil
}

// strokeStyleHandle carries the resolved dash/join/cap configuration
// through to DrawGeometry, which applies it to the shared Dasher right
// before stroking (rasterx has no persistent per-brush stroke object, so
// this handle simply remembers the StrokeOptions to replay).
type strokeStyleHandle struct {
	opts svgcore.StrokeOptions
}

func (strokeStyleHandle) Release() {}

func (d *RasterDevice) CreateStrokeStyle(opts svgcore.StrokeOptions) (svgcore.StrokeStyle, error) {
	return strokeStyleHandle{opts: opts}, nil
}

// joinToJoin and capToFunc mirror svgraster.Renderer's lookup
// tables mapping the SVG-shaped JoinMode/CapMode enums onto rasterx's own,
// wider SVG2 plus non-standard vocabulary.
var joinToJoin = [...]rasterx.JoinMode{
	svgcore.JoinArc:       rasterx.Arc,
	svgcore.JoinRound:     rasterx.Round,
	svgcore.JoinBevel:     rasterx.Bevel,
	svgcore.JoinMiter:     rasterx.Miter,
	svgcore.JoinMiterClip: rasterx.MiterClip,
	svgcore.JoinArcClip:   rasterx.ArcClip,
}

var capToFunc = [...]rasterx.CapFunc{
	svgcore.CapButt:   rasterx.ButtCap,
	svgcore.CapSquare: rasterx.SquareCap,
	svgcore.CapRound:  rasterx.RoundCap,
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
