package svgcore

import "github.com/gosvgcore/svgcore/svgpath"

// Render walks image's scene tree depth-first and paints it through
// device (spec.md's V component). It assumes Parse already ran the
// builder, resolver and asset binder over image.
func Render(device Device, image *Image) error {
	v := &renderer{device: device}
	v.draw(image.Root, svgpath.Identity, 1)
	return nil
}

type renderer struct {
	device Device
}

// draw paints el and recurses into its children, threading the combined
// ancestor transform and the combined ancestor opacity (SVG opacity
// compounds multiplicatively down the tree, unlike fill/stroke which are
// simply inherited). Defs and Symbol subtrees are skipped entirely: their
// content is only reachable through a `<use>` clone, which the resolver
// has already spliced in wherever it was referenced, so drawing the
// template in place as well would paint it twice.
func (v *renderer) draw(el *Element, parentTransform svgpath.Matrix2D, parentOpacity float64) {
	if el == nil {
		return
	}
	transform := parentTransform
	if el.HasTransform {
		transform = parentTransform.Mult(el.Transform)
	}
	opacity := parentOpacity * el.Style.Opacity

	switch el.Kind {
	case KindDefs, KindSymbol, KindLinearGradient, KindRadialGradient, KindStop:
		return
	}

	v.drawSelf(el, transform, opacity)

	for _, c := range el.Children {
		v.draw(c, transform, opacity)
	}
}

func (v *renderer) drawSelf(el *Element, transform svgpath.Matrix2D, opacity float64) {
	switch el.Kind {
	case KindRect, KindCircle, KindEllipse, KindPath:
		v.fillAndStroke(el, transform, opacity)
	case KindLine:
		v.stroke(el, transform, opacity)
	case KindText:
		v.fillAndStroke(el, transform, opacity)
		v.drawText(el, transform, opacity)
	}
}

func (v *renderer) fillAndStroke(el *Element, transform svgpath.Matrix2D, opacity float64) {
	if el.geometry == nil {
		return
	}
	if el.fillBrush != nil {
		if err := v.device.FillGeometry(el.geometry, transform, el.fillBrush, el.Style.FillOpacity*opacity, el.Style.FillRule); err != nil {
			return
		}
	}
	v.stroke(el, transform, opacity)
}

func (v *renderer) stroke(el *Element, transform svgpath.Matrix2D, opacity float64) {
	if el.geometry == nil || el.strokeBrush == nil || el.strokeStyle == nil {
		return
	}
	v.device.DrawGeometry(el.geometry, transform, el.strokeBrush, el.strokeStyle, el.Style.StrokeOpacity*opacity)
}

func (v *renderer) drawText(el *Element, transform svgpath.Matrix2D, opacity float64) {
	if el.textLayout == nil || el.fillBrush == nil {
		return
	}
	v.device.DrawText(el.textLayout, transform, el.fillBrush, el.Text.X, el.Text.Y, el.Style.FillOpacity*opacity)
}
