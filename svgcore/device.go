// Package svgcore implements the SVG scene-tree builder, style resolver,
// reference resolver, asset binder and renderer: the parts of the pipeline
// that have no opinion about how pixels actually get drawn. Drawing is
// delegated to a Device, an external collaborator this package only
// consumes through the interfaces in this file (mirrors the teacher's
// Driver/Filler/Stroker split, widened to cover brushes, stroke styles and
// text layout as one capability-oriented contract).
package svgcore

import "github.com/gosvgcore/svgcore/svgpath"

// Device is the graphics backend collaborator (spec.md §6): it knows how
// to realize brushes, stroke styles, path geometry and text layouts, and
// to paint a path sink's contents once filled or stroked. A Device
// implementation owns no SVG knowledge. Geometry is built once, in the
// element's own local coordinate space, when the document is parsed; the
// renderer supplies the accumulated ancestor transform at every
// Fill/Draw call rather than baking it into the geometry, mirroring the
// teacher's drawTransformed, which applies the matrix stack at draw time
// so a `<use>`-cloned subtree can share one PathGeometry under different
// transforms.
type Device interface {
	// DPI reports the device's horizontal and vertical pixels-per-inch;
	// the builder uses their average to resolve physical length units.
	DPI() (x, y float64)

	// Size reports the device's target surface size in pixels; it is the
	// default viewport for a root `<svg>` that omits `width`/`height`
	// (spec.md §4.B, §9 open question — resolved in favor of device size
	// for the root).
	Size() (w, h float64)

	// CreateSolidBrush realizes a flat color paint.
	CreateSolidBrush(c svgpath.Color) (Brush, error)

	// CreateLinearGradientBrush realizes a linear gradient paint already
	// resolved to user-space coordinates (object bounding box gradients
	// are converted to user space by the asset binder before this call).
	CreateLinearGradientBrush(g LinearGradientSpec) (Brush, error)

	// CreateRadialGradientBrush mirrors CreateLinearGradientBrush for
	// radial gradients.
	CreateRadialGradientBrush(g RadialGradientSpec) (Brush, error)

	// CreateStrokeStyle realizes a dash/join/cap configuration.
	CreateStrokeStyle(opts StrokeOptions) (StrokeStyle, error)

	// CreatePathGeometry returns a fresh geometry sink; the caller emits
	// one or more figures into it via svgpath.Sink, then passes the
	// finished PathGeometry to FillGeometry/DrawGeometry.
	CreatePathGeometry() (PathGeometry, error)

	// CreateTextLayout shapes text against the given font family list and
	// size, returning real advance/ascent/descent metrics (spec.md §10).
	CreateTextLayout(text string, fontFamilies []string, sizePx float64, italic, bold bool) (TextLayout, error)

	// FillGeometry paints the interior of geometry, mapped through
	// transform, with brush at the given opacity, using winding to pick
	// the fill rule.
	FillGeometry(geometry PathGeometry, transform svgpath.Matrix2D, brush Brush, opacity float64, winding FillRule) error

	// DrawGeometry strokes the outline of geometry, mapped through
	// transform, with brush and style.
	DrawGeometry(geometry PathGeometry, transform svgpath.Matrix2D, brush Brush, style StrokeStyle, opacity float64) error

	// DrawText paints a shaped text layout, mapped through transform,
	// with brush at (x, y), where y is the text baseline (spec.md §4.V
	// places text at (x, y-baseline) relative to the layout's own
	// origin).
	DrawText(layout TextLayout, transform svgpath.Matrix2D, brush Brush, x, y float64, opacity float64) error
}

// FillRule selects how self-intersecting paths resolve interior/exterior.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// Brush is an opaque, backend-owned paint handle.
type Brush interface {
	// Release frees backend resources the brush holds, mirroring the
	// ref-counted handle pattern spec.md's design notes call for in place
	// of the original's shared-ownership pointers.
	Release()
}

// StrokeStyle is an opaque, backend-owned dash/join/cap configuration.
type StrokeStyle interface {
	Release()
}

// PathGeometry is a backend-owned path built by feeding it svgpath.Sink
// calls; it is later passed to Device.FillGeometry/DrawGeometry.
type PathGeometry interface {
	svgpath.Sink
	Release()
}

// TextLayout is a backend-owned shaped run of text with real metrics.
type TextLayout interface {
	// AdvanceWidth is the total horizontal extent of the shaped run.
	AdvanceWidth() float64
	// Ascent and Descent bound the run vertically above/below the
	// baseline, used to synthesize the element bounding box (spec.md §10,
	// replacing the placeholder 600x200 text bbox).
	Ascent() float64
	Descent() float64
	Release()
}

// GradientStop is one color stop along a gradient ramp.
type GradientStop struct {
	Offset  float64 // 0..1
	Color   svgpath.Color
	Opacity float64
}

// SpreadMethod controls how a gradient extends past its defined stops.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// LinearGradientSpec is a linear gradient already resolved to user-space
// coordinates and a final stop list (href chains folded by the resolver).
type LinearGradientSpec struct {
	X1, Y1, X2, Y2 float64
	Stops          []GradientStop
	Spread         SpreadMethod
	Transform      svgpath.Matrix2D
}

// RadialGradientSpec mirrors LinearGradientSpec for radial gradients.
type RadialGradientSpec struct {
	Cx, Cy, R, Fx, Fy float64
	Stops             []GradientStop
	Spread            SpreadMethod
	Transform         svgpath.Matrix2D
}

// JoinMode controls how stroke segments bridge at a join; numeric values
// and the name set match the teacher's JoinMode exactly, including the
// ArcClip/Arc SVG2 extensions it carries alongside the classic SVG 1.1 set.
type JoinMode uint8

const (
	JoinArc JoinMode = iota
	JoinRound
	JoinBevel
	JoinMiter
	JoinMiterClip
	JoinArcClip
)

// CapMode controls how an open subpath's ends are capped.
type CapMode uint8

const (
	CapButt CapMode = iota
	CapSquare
	CapRound
)

// StrokeOptions parametrizes Device.CreateStrokeStyle.
type StrokeOptions struct {
	Width      float64
	Join       JoinMode
	MiterLimit float64
	LeadCap    CapMode
	TrailCap   CapMode
	Dash       []float64
	DashOffset float64
}
