package svgcore

// computeBBox fills in el.BBox per spec.md §4.B's per-variant rules, run
// once an element's children are all complete (builder.handleEnd calls
// this on EventEnd, after any text content has been recorded). Group-like
// kinds take the union of their children's boxes; Use's box is resolved
// later by the reference resolver once its target is known, since the
// builder has no access to byID contents mid-parse for forward references.
func computeBBox(el *Element) {
	switch el.Kind {
	case KindRect:
		el.BBox = Bounds{X: el.Rect.X, Y: el.Rect.Y, W: el.Rect.W, H: el.Rect.H}
		el.HasBBox = true
	case KindCircle:
		c := el.Circle
		el.BBox = Bounds{X: c.Cx - c.R, Y: c.Cy - c.R, W: 2 * c.R, H: 2 * c.R}
		el.HasBBox = true
	case KindEllipse:
		e := el.Ellipse
		el.BBox = Bounds{X: e.Cx - e.Rx, Y: e.Cy - e.Ry, W: 2 * e.Rx, H: 2 * e.Ry}
		el.HasBBox = true
	case KindLine:
		l := el.Line
		minX, maxX := minMax(l.X1, l.X2)
		minY, maxY := minMax(l.Y1, l.Y2)
		el.BBox = Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
		el.HasBBox = true
	case KindPath:
		if b, ok := pathGeometryBounds(el.geometry); ok {
			el.BBox = b
			el.HasBBox = true
		}
	case KindText:
		// Real metrics are not available until the asset binder shapes the
		// run (spec.md §10); its bindText overwrites this once
		// el.textLayout exists. Until then the box is a zero-size one at
		// the text's (x, y) with HasBBox=false. The asset binder binds a
		// <text> element's fill and stroke before shaping it, so an
		// objectBoundingBox gradient on <text> is created without any
		// bounding-box mapping.
		el.BBox = Bounds{X: el.Text.X, Y: el.Text.Y}
		el.HasBBox = false
	case KindGroup, KindSvg, KindUnknown:
		el.BBox, el.HasBBox = unionChildBBox(el.Children)
	default:
		// Defs, Symbol, Use, gradients and Stop carry no geometric box of
		// their own; Use is resolved post-clone by the reference resolver.
	}
}

func minMax(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func unionChildBBox(children []*Element) (Bounds, bool) {
	var out Bounds
	found := false
	for _, c := range children {
		if !c.HasBBox {
			continue
		}
		if !found {
			out = c.BBox
			found = true
			continue
		}
		minX, maxX := minMax(out.X, c.BBox.X)
		_, maxX2 := minMax(out.X+out.W, c.BBox.X+c.BBox.W)
		if maxX2 > maxX {
			maxX = maxX2
		}
		minY, maxY := minMax(out.Y, c.BBox.Y)
		_, maxY2 := minMax(out.Y+out.H, c.BBox.Y+c.BBox.H)
		if maxY2 > maxY {
			maxY = maxY2
		}
		out = Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	}
	return out, found
}

// pathGeometryBounds asks the backend geometry for its axis-aligned
// extent. Devices that cannot report this (capability-gated, per spec.md
// §6) implement boundsReporter optionally; when they don't, Path elements
// simply carry HasBBox=false and are skipped by objectBoundingBox
// gradients and union computations, matching spec.md's "bbox unavailable"
// edge case.
func pathGeometryBounds(geom PathGeometry) (Bounds, bool) {
	if geom == nil {
		return Bounds{}, false
	}
	if br, ok := geom.(boundsReporter); ok {
		b, ok := br.Bounds()
		return b, ok
	}
	return Bounds{}, false
}

// boundsReporter is an optional capability a Device's PathGeometry may
// implement to report its own tight bounds; see pathGeometryBounds.
type boundsReporter interface {
	Bounds() (Bounds, bool)
}
