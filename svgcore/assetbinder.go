package svgcore

import (
	"log"

	"github.com/gosvgcore/svgcore/svgpath"
)

// assetBinder implements spec.md's A component: the pass that turns a
// resolved Style into concrete Device handles (brushes, stroke styles,
// text layouts). It runs after the reference resolver so every `url(#id)`
// paint and gradient href chain it sees is already final.
type assetBinder struct {
	img    *Image
	device Device
	logger *log.Logger
}

func bindAssets(img *Image, device Device, logger *log.Logger) error {
	a := &assetBinder{img: img, device: device, logger: logger}
	a.walk(img.Root)
	return nil
}

func (a *assetBinder) walk(el *Element) {
	if el == nil {
		return
	}
	switch el.Kind {
	case KindRect, KindCircle, KindEllipse, KindLine, KindPath:
		a.bindFill(el)
		a.bindStroke(el)
	case KindText:
		a.bindFill(el)
		a.bindStroke(el)
		a.bindText(el)
	}
	for _, c := range el.Children {
		a.walk(c)
	}
}

func (a *assetBinder) bindFill(el *Element) {
	p := el.Style.Fill
	if p.None {
		return
	}
	brush, ok := a.resolvePaint(el, p)
	if !ok {
		return
	}
	el.fillBrush = brush
}

func (a *assetBinder) bindStroke(el *Element) {
	p := el.Style.Stroke
	if p.None || (!p.HasColor && p.GradRef == "") {
		return
	}
	brush, ok := a.resolvePaint(el, p)
	if !ok {
		return
	}
	el.strokeBrush = brush

	style, err := a.device.CreateStrokeStyle(StrokeOptions{
		Width:      el.Style.StrokeWidth,
		Join:       el.Style.StrokeLineJoin,
		MiterLimit: el.Style.StrokeMiterLimit,
		LeadCap:    el.Style.StrokeLineCap,
		TrailCap:   el.Style.StrokeLineCap,
		Dash:       el.Style.StrokeDashArray,
		DashOffset: el.Style.StrokeDashOffset,
	})
	if err != nil {
		a.logger.Printf("svgcore: stroke style unavailable: %v", err)
		return
	}
	el.strokeStyle = style
}

// resolvePaint realizes a Paint into a Brush. A CSS color always wins
// over a gradient reference when somehow both are set, since `applyPaint`
// only ever sets one of HasColor/GradRef; this check exists because hex
// colors begin with the same `#` sigil as a bare id reference and a
// caller that mistakenly wrote `fill="#myGradient"` without `url()` would
// otherwise silently fail — it is treated as a (almost certainly invalid)
// color, not a reference, matching the CSS paint grammar precedence
// spec.md §4.A calls out.
func (a *assetBinder) resolvePaint(el *Element, p Paint) (Brush, bool) {
	if p.HasColor {
		b, err := a.device.CreateSolidBrush(p.Color)
		if err != nil {
			a.logger.Printf("svgcore: solid brush unavailable: %v", err)
			return nil, false
		}
		return b, true
	}
	if p.GradRef == "" {
		return nil, false
	}
	target, ok := a.img.ByID[p.GradRef]
	if !ok {
		a.logger.Printf("svgcore: paint reference %q not found", p.GradRef)
		return nil, false
	}
	switch target.Kind {
	case KindLinearGradient:
		return a.linearBrush(el, target)
	case KindRadialGradient:
		return a.radialBrush(el, target)
	default:
		a.logger.Printf("svgcore: paint reference %q is not a gradient", p.GradRef)
		return nil, false
	}
}

func (a *assetBinder) gradientStops(grad *Element) []GradientStop {
	stops := make([]GradientStop, 0, len(grad.Children))
	for _, c := range grad.Children {
		if c.Kind != KindStop {
			continue
		}
		stops = append(stops, GradientStop{Offset: c.Stop.Offset, Color: c.Stop.Color, Opacity: c.Stop.Opacity})
	}
	return stops
}

// objectBBoxTransform wraps a gradient's own transform with a translate
// to/from the referencing element's bounding box origin, realizing
// objectBoundingBox units (fractions of [0,1] map onto the bbox) as
// userSpaceOnUse coordinates the backend understands directly (spec.md
// §4.A).
func objectBBoxTransform(bbox Bounds, has bool, inner svgpath.Matrix2D) svgpath.Matrix2D {
	if !has || (bbox.W == 0 && bbox.H == 0) {
		return inner
	}
	return svgpath.Identity.Translate(bbox.X, bbox.Y).Scale(bbox.W, bbox.H).Mult(inner)
}

func (a *assetBinder) linearBrush(el *Element, grad *Element) (Brush, bool) {
	spec := LinearGradientSpec{
		X1: grad.Gradient.X1, Y1: grad.Gradient.Y1,
		X2: grad.Gradient.X2, Y2: grad.Gradient.Y2,
		Stops:  a.gradientStops(grad),
		Spread: grad.Gradient.Spread,
	}
	inner := svgpath.Identity
	if grad.Gradient.HasTransform {
		inner = grad.Gradient.Transform
	}
	if grad.Gradient.Units == ObjectBoundingBox {
		spec.Transform = objectBBoxTransform(el.BBox, el.HasBBox, inner)
	} else {
		spec.Transform = inner
	}
	b, err := a.device.CreateLinearGradientBrush(spec)
	if err != nil {
		a.logger.Printf("svgcore: linear gradient brush unavailable: %v", err)
		return nil, false
	}
	return b, true
}

func (a *assetBinder) radialBrush(el *Element, grad *Element) (Brush, bool) {
	spec := RadialGradientSpec{
		Cx: grad.Gradient.Cx, Cy: grad.Gradient.Cy, R: grad.Gradient.R,
		Fx: grad.Gradient.Fx, Fy: grad.Gradient.Fy,
		Stops:  a.gradientStops(grad),
		Spread: grad.Gradient.Spread,
	}
	inner := svgpath.Identity
	if grad.Gradient.HasTransform {
		inner = grad.Gradient.Transform
	}
	if grad.Gradient.Units == ObjectBoundingBox {
		spec.Transform = objectBBoxTransform(el.BBox, el.HasBBox, inner)
	} else {
		spec.Transform = inner
	}
	b, err := a.device.CreateRadialGradientBrush(spec)
	if err != nil {
		a.logger.Printf("svgcore: radial gradient brush unavailable: %v", err)
		return nil, false
	}
	return b, true
}

// bindText shapes the element's text content against its font-family
// list, trying each family in order until the backend can satisfy one
// (spec.md §4.A text binding), then overwrites the placeholder bbox
// computeBBox left behind with the shaped run's real metrics.
func (a *assetBinder) bindText(el *Element) {
	families := el.Style.FontFamily
	if len(families) == 0 {
		families = []string{"sans-serif"}
	}
	var layout TextLayout
	var err error
	for _, fam := range families {
		layout, err = a.device.CreateTextLayout(el.Text.Content, []string{fam}, el.Style.FontSizePx, el.Style.FontItalic, el.Style.FontBold)
		if err == nil {
			break
		}
	}
	if err != nil {
		a.logger.Printf("svgcore: text layout unavailable for %q: %v", el.Text.Content, err)
		return
	}
	el.textLayout = layout
	el.BBox = Bounds{
		X: el.Text.X,
		Y: el.Text.Y - layout.Ascent(),
		W: layout.AdvanceWidth(),
		H: layout.Ascent() + layout.Descent(),
	}
	el.HasBBox = true
}
