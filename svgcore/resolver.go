package svgcore

import "log"

// resolver implements spec.md's R component: a depth-first pass over the
// freshly built tree that clones `<use>` targets in place and folds
// gradient `href` template chains, with cycle detection on both. It runs
// once, after the Builder finishes and before the asset binder.
type resolver struct {
	img    *Image
	logger *log.Logger

	// inUse/inGrad track the ids currently being expanded on the current
	// recursion path, detecting cycles (`<use>` referencing an ancestor
	// of itself, or a gradient href chain that loops).
	inUse  map[string]bool
	inGrad map[string]bool
}

// resolveReferences runs the R pass over img in place.
func resolveReferences(img *Image, logger *log.Logger) error {
	r := &resolver{img: img, logger: logger, inUse: map[string]bool{}, inGrad: map[string]bool{}}
	r.walk(img.Root)
	for _, el := range img.ByID {
		if el.Kind == KindLinearGradient || el.Kind == KindRadialGradient {
			r.foldGradientChain(el, map[string]bool{})
		}
	}
	return nil
}

// walk appends a clone of each `<use>` node's target to that node's
// Children and recurses into the result, so downstream passes (asset binder,
// renderer) never need to know about `<use>` at all.
func (r *resolver) walk(el *Element) {
	if el == nil {
		return
	}
	if el.Kind == KindUse {
		r.expandUse(el)
	}
	for _, c := range el.Children {
		r.walk(c)
	}
}

// expandUse clones el.Use.Href's subtree as el's sole child. A miss
// (unknown id) or a cycle drops the clone: the <use> element still
// exists in the tree but renders as empty, per spec.md §7's
// ReferenceMiss recovery policy.
func (r *resolver) expandUse(el *Element) {
	target, ok := r.img.ByID[el.Use.Href]
	if !ok {
		r.logger.Printf("svgcore: <use> target %q not found", el.Use.Href)
		return
	}
	if r.inUse[el.Use.Href] {
		r.logger.Printf("svgcore: <use> cycle detected at %q", el.Use.Href)
		return
	}
	r.inUse[el.Use.Href] = true
	clone := cloneElement(target)
	r.walk(clone)
	r.inUse[el.Use.Href] = false

	el.Children = append(el.Children, clone)
	el.BBox = clone.BBox
	el.HasBBox = clone.HasBBox
}

// cloneElement deep-copies el and its subtree. The path geometry handle is
// shared with the template: geometry is built once in local space and the
// renderer supplies the transform at draw time, so one PathGeometry serves
// every clone. Brush, stroke style and text layout handles are NOT copied;
// the asset binder, which runs after this pass, binds them for the clone.
func cloneElement(el *Element) *Element {
	clone := *el
	clone.fillBrush = nil
	clone.strokeBrush = nil
	clone.strokeStyle = nil
	clone.textLayout = nil
	clone.ID = "" // clones are not addressable by the original id
	if el.Style.StrokeDashArray != nil {
		clone.Style.StrokeDashArray = append([]float64(nil), el.Style.StrokeDashArray...)
	}
	if el.Poly.Points != nil {
		clone.Poly.Points = append([]float64(nil), el.Poly.Points...)
	}
	if len(el.Children) > 0 {
		clone.Children = make([]*Element, len(el.Children))
		for i, c := range el.Children {
			clone.Children[i] = cloneElement(c)
		}
	}
	return &clone
}

// foldGradientChain walks a gradient's href chain, adopting the
// coordinates, gradientTransform, gradientUnits and stops the gradient
// itself left unset from its referenced template, per spec.md §4.R. The
// spread method is not inherited. seen guards against a cycle; a
// cyclic chain stops folding at the point of the cycle rather than
// failing the whole parse.
func (r *resolver) foldGradientChain(el *Element, seen map[string]bool) {
	if el.Gradient.Href == "" {
		return
	}
	if seen[el.ID] {
		r.logger.Printf("svgcore: gradient href cycle at %q", el.ID)
		el.Gradient.Href = ""
		return
	}
	seen[el.ID] = true
	parent, ok := r.img.ByID[el.Gradient.Href]
	if !ok {
		r.logger.Printf("svgcore: gradient href %q not found", el.Gradient.Href)
		el.Gradient.Href = ""
		return
	}
	if parent.Kind == KindLinearGradient || parent.Kind == KindRadialGradient {
		r.foldGradientChain(parent, seen)
	}

	if !el.Gradient.HasLinearCoords && el.Kind == KindLinearGradient && parent.Kind == KindLinearGradient {
		el.Gradient.X1, el.Gradient.Y1 = parent.Gradient.X1, parent.Gradient.Y1
		el.Gradient.X2, el.Gradient.Y2 = parent.Gradient.X2, parent.Gradient.Y2
	}
	if !el.Gradient.HasRadialCoords && el.Kind == KindRadialGradient && parent.Kind == KindRadialGradient {
		el.Gradient.Cx, el.Gradient.Cy, el.Gradient.R = parent.Gradient.Cx, parent.Gradient.Cy, parent.Gradient.R
		el.Gradient.Fx, el.Gradient.Fy = parent.Gradient.Fx, parent.Gradient.Fy
	}
	if !el.Gradient.HasTransform {
		el.Gradient.Transform = parent.Gradient.Transform
		el.Gradient.HasTransform = parent.Gradient.HasTransform
	}
	if !el.Gradient.HasUnits {
		el.Gradient.Units = parent.Gradient.Units
		el.Gradient.HasUnits = parent.Gradient.HasUnits
	}
	if len(el.Children) == 0 {
		el.Children = parent.Children
	}
}
