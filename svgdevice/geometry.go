package svgdevice

import (
	"github.com/gosvgcore/svgcore/svgcore"
	"github.com/gosvgcore/svgcore/svgpath"
)

// opKind discriminates the flattened operations recorded by pathGeometry,
// mirroring the teacher's Operation sum type (svgicon/path.go's
// MoveTo/LineTo/QuadTo/CubicTo/Close) but storing float64 user-space
// coordinates rather than pre-transformed fixed.Point26_6: spec.md's
// device contract builds geometry once in local space and leaves the
// renderer to supply the transform at every draw call, so baking a fixed
// transform in at build time would be wrong for a `<use>` clone drawn
// under a different ancestor transform than its template.
type opKind uint8

const (
	opMove opKind = iota
	opLine
	opQuad
	opCubic
	opClose
)

type pathOp struct {
	kind           opKind
	x0, y0         float64 // quad/cubic control 1
	x1, y1         float64 // cubic control 2
	x, y           float64 // destination (or the moveto/lineto point)
}

// pathGeometry is RasterDevice's svgcore.PathGeometry: a recorded,
// transform-free list of path operations fed once by the builder's eager
// geometry pass (spec.md §4.B) and replayed through rasterx's Filler and
// Dasher at every Fill/DrawGeometry call, with the renderer's current
// transform applied at replay time.
type pathGeometry struct {
	ops        []pathOp
	curX, curY float64

	hasBounds              bool
	minX, minY, maxX, maxY float64
}

var _ svgcore.PathGeometry = (*pathGeometry)(nil)
var _ svgpath.Sink = (*pathGeometry)(nil)

func (g *pathGeometry) BeginFigure(x, y float64) {
	g.ops = append(g.ops, pathOp{kind: opMove, x: x, y: y})
	g.curX, g.curY = x, y
	g.extend(x, y)
}

func (g *pathGeometry) AddLine(x, y float64) {
	g.ops = append(g.ops, pathOp{kind: opLine, x: x, y: y})
	g.curX, g.curY = x, y
	g.extend(x, y)
}

func (g *pathGeometry) AddQuadraticBezier(cx, cy, x, y float64) {
	g.ops = append(g.ops, pathOp{kind: opQuad, x0: cx, y0: cy, x: x, y: y})
	g.curX, g.curY = x, y
	g.extend(cx, cy)
	g.extend(x, y)
}

func (g *pathGeometry) AddBezier(c1x, c1y, c2x, c2y, x, y float64) {
	g.ops = append(g.ops, pathOp{kind: opCubic, x0: c1x, y0: c1y, x1: c2x, y1: c2y, x: x, y: y})
	g.curX, g.curY = x, y
	g.extend(c1x, c1y)
	g.extend(c2x, c2y)
	g.extend(x, y)
}

// AddArc flattens the elliptical arc into cubic beziers immediately
// (spec.md's device contract exposes AddArc as a primitive, but rasterx,
// like the teacher's backend, has no arc primitive), recording
// onto the same op list so replay never needs to special-case arcs.
func (g *pathGeometry) AddArc(rx, ry, xAxisRotation float64, largeArc, sweep bool, x, y float64) {
	svgpath.EmitArcAsBeziers(g.curX, g.curY, rx, ry, xAxisRotation, largeArc, sweep, x, y, g)
}

func (g *pathGeometry) EndFigure(closed bool) {
	if closed {
		g.ops = append(g.ops, pathOp{kind: opClose})
	}
}

func (g *pathGeometry) Close() {}

func (g *pathGeometry) Release() {}

func (g *pathGeometry) extend(x, y float64) {
	if !g.hasBounds {
		g.minX, g.maxX = x, x
		g.minY, g.maxY = y, y
		g.hasBounds = true
		return
	}
	if x < g.minX {
		g.minX = x
	}
	if x > g.maxX {
		g.maxX = x
	}
	if y < g.minY {
		g.minY = y
	}
	if y > g.maxY {
		g.maxY = y
	}
}

// Bounds implements svgcore's optional boundsReporter capability so Path
// elements get a real axis-aligned bbox instead of being excluded from
// objectBoundingBox gradient and group-union computations.
func (g *pathGeometry) Bounds() (svgcore.Bounds, bool) {
	if !g.hasBounds {
		return svgcore.Bounds{}, false
	}
	return svgcore.Bounds{X: g.minX, Y: g.minY, W: g.maxX - g.minX, H: g.maxY - g.minY}, true
}
