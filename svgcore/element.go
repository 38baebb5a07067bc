package svgcore

import "github.com/gosvgcore/svgcore/svgpath"

// Bounds is an axis-aligned bounding box in the coordinate space it was
// computed in (user space unless stated otherwise), mirroring the
// teacher's Bounds{X,Y,W,H}.
type Bounds struct{ X, Y, W, H float64 }

// Paint is either a flat color or a gradient reference; it is the style
// resolver's representation of `fill`/`stroke` before the asset binder
// turns it into a Brush.
type Paint struct {
	None     bool // explicit `none`
	Color    svgpath.Color
	HasColor bool
	GradRef  string // `url(#id)` target, resolved against Image.ByID
}

// Style is the computed, inherited presentation state attached to every
// element (spec.md's S component): the merge of inline `style`,
// presentation attributes, and inheritance from the explicit parent
// stack the builder threads through (never parent pointers, per the
// design notes).
type Style struct {
	Fill, Stroke       Paint
	FillOpacity        float64
	StrokeOpacity      float64
	Opacity            float64
	StrokeWidth        float64
	StrokeLineCap      CapMode
	StrokeLineJoin     JoinMode
	StrokeMiterLimit   float64
	StrokeDashArray    []float64
	StrokeDashOffset   float64
	FillRule           FillRule
	FontFamily         []string
	FontSizePx         float64
	FontItalic         bool
	FontBold           bool
}

// DefaultStyle is the inherited root of the parent stack, matching the
// teacher's DefaultStyle: fill black, nonzero winding, full opacity, no
// stroke.
var DefaultStyle = Style{
	Fill:             Paint{HasColor: true, Color: svgpath.Color{R: 0, G: 0, B: 0, A: 1}},
	FillOpacity:      1,
	StrokeOpacity:    1,
	Opacity:          1,
	StrokeWidth:      1,
	StrokeLineCap:    CapButt,
	StrokeLineJoin:   JoinMiter,
	StrokeMiterLimit: 4,
	FillRule:         NonZero,
	FontFamily:       []string{"sans-serif"},
	FontSizePx:       16,
}

// Kind discriminates the Element sum type (spec.md's E component: a
// tagged sum type in place of the original's deep class hierarchy).
type Kind uint8

const (
	KindGroup Kind = iota
	KindSvg
	KindDefs
	KindSymbol
	KindRect
	KindCircle
	KindEllipse
	KindLine
	KindPolyline
	KindPolygon
	KindPath
	KindText
	KindUse
	KindLinearGradient
	KindRadialGradient
	KindStop
	KindUnknown
)

// RectData, CircleData, etc. hold the per-variant geometric payload a
// shape element carries; only the field matching Kind is meaningful.
type RectData struct{ X, Y, W, H, Rx, Ry float64 }
type CircleData struct{ Cx, Cy, R float64 }
type EllipseData struct{ Cx, Cy, Rx, Ry float64 }
type LineData struct{ X1, Y1, X2, Y2 float64 }
type PolyData struct{ Points []float64 } // polyline/polygon, x,y pairs flattened
type PathData struct{ D string }
type TextData struct{ X, Y float64; Content string }
type UseData struct {
	X, Y float64
	Href string // target id, without the leading '#'
}
type SvgData struct {
	ViewBox               Bounds
	HasViewBox            bool
	Width, Height         string
	X, Y                  float64
}
type GradientData struct {
	Units       GradientUnits
	HasUnits    bool
	Spread      SpreadMethod
	Href        string // template chain target, without '#'
	Transform   svgpath.Matrix2D
	HasTransform bool
	// Linear-only:
	X1, Y1, X2, Y2 float64
	HasLinearCoords bool
	// Radial-only:
	Cx, Cy, R, Fx, Fy float64
	HasRadialCoords   bool
}
type StopData struct {
	Offset  float64
	Color   svgpath.Color
	Opacity float64
}

// GradientUnits selects whether a gradient's coordinates are fractions of
// the referencing element's bounding box or absolute user-space values.
type GradientUnits uint8

const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// Element is one node of the scene tree. It is a tagged sum type: Kind
// selects which of the *Data fields is populated, matching spec.md's E
// component and the design note replacing deep polymorphism with an
// enum+struct representation.
type Element struct {
	Kind     Kind
	ID       string
	Children []*Element
	Style    Style

	// Transform is the element's own local affine transform, parsed from
	// its `transform` attribute. It is deliberately not part of Style:
	// spec.md's data model keeps it local-only, composed at render time
	// through the renderer's matrix stack rather than inherited down the
	// style chain. HasTransform is false until a transform is actually
	// set, so a malformed `transform` attribute (SV-BAD-TRANSFORM) simply
	// leaves it unset — the element still exists, only the transform is
	// dropped — rather than relying on the zero Matrix2D, which is the
	// all-zero matrix, not Identity.
	Transform    svgpath.Matrix2D
	HasTransform bool

	Rect     RectData
	Circle   CircleData
	Ellipse  EllipseData
	Line     LineData
	Poly     PolyData
	Path     PathData
	Text     TextData
	Use      UseData
	Svg      SvgData
	Gradient GradientData
	Stop     StopData

	// BBox is the element's own geometric bounding box in user space,
	// computed by the builder's per-variant compute_bbox and consumed by
	// objectBoundingBox gradients and the group bounding-box union.
	BBox      Bounds
	HasBBox   bool

	// Backend handles: geometry is built by the builder when the element
	// is constructed; brushes, stroke style and text layout are populated
	// by the asset binder (A) and are nil until bindAssets runs.
	geometry PathGeometry
	fillBrush, strokeBrush Brush
	strokeStyle            StrokeStyle
	textLayout             TextLayout
}

// Image is the parse result: a root Element tree plus the id index the
// builder recorded while walking it, consumed by the reference resolver
// and the renderer (spec.md's Image{root, id_map, defs_map}).
type Image struct {
	Root   *Element
	ByID   map[string]*Element
	// DefsByID is the subset of ByID declared as direct children of a
	// <defs> or <symbol> element (spec.md §3's defs_map), kept separate since a renderer walks
	// Root without descending into definitions and only reaches these
	// elements through an explicit reference.
	DefsByID map[string]*Element
	Width    float64
	Height   float64
	// DPI captures the device DPI average the builder resolved physical
	// length units with.
	DPI float64
}
