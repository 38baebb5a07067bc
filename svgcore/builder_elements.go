package svgcore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosvgcore/svgcore/svgpath"
)

// construct dispatches on tag name to build the Element of the right kind
// (spec.md §4.B step 2). It returns the child viewport dimensions new
// descendants should resolve percentages against, and skip=true when a
// required geometry attribute could not be parsed (the node is not
// created, matching spec.md's "missing required geometry attributes cause
// the element to be skipped").
func (b *Builder) construct(tag string, attrs map[string]string, vw, vh float64) (el *Element, childVW, childVH float64, skip bool) {
	childVW, childVH = vw, vh
	switch tag {
	case "svg":
		return b.constructSvg(attrs, vw, vh)
	case "g", "group":
		return &Element{Kind: KindGroup}, vw, vh, false
	case "defs":
		return &Element{Kind: KindDefs}, vw, vh, false
	case "symbol":
		return &Element{Kind: KindSymbol}, vw, vh, false
	case "rect":
		return b.constructRect(attrs, vw, vh)
	case "circle":
		return b.constructCircle(attrs, vw, vh)
	case "ellipse":
		return b.constructEllipse(attrs, vw, vh)
	case "line":
		return b.constructLine(attrs, vw, vh)
	case "path":
		return b.constructPath(attrs)
	case "polyline":
		return b.constructPoly(attrs, false)
	case "polygon":
		return b.constructPoly(attrs, true)
	case "text":
		return b.constructText(attrs, vw, vh)
	case "use":
		return b.constructUse(attrs, vw, vh)
	case "lineargradient":
		return b.constructLinearGradient(attrs, vw, vh)
	case "radialgradient":
		return b.constructRadialGradient(attrs, vw, vh)
	case "stop":
		return b.constructStop(attrs)
	default:
		return &Element{Kind: KindUnknown}, vw, vh, false
	}
}

func (b *Builder) length(attrs map[string]string, name string, ref svgpath.PercentageReference, vw, vh float64) (float64, bool) {
	s, ok := attrs[name]
	if !ok || s == "" {
		return 0, false
	}
	f, err := svgpath.ParseLength(s, b.dpi, ref, vw, vh)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (b *Builder) lengthOr(attrs map[string]string, name string, ref svgpath.PercentageReference, vw, vh, def float64) float64 {
	f, ok := b.length(attrs, name, ref, vw, vh)
	if !ok {
		return def
	}
	return f
}

func (b *Builder) constructSvg(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	isRoot := b.top() == nil

	x := b.lengthOr(attrs, "x", svgpath.WidthPercentage, vw, vh, 0)
	y := b.lengthOr(attrs, "y", svgpath.HeightPercentage, vw, vh, 0)

	defaultW, defaultH := vw, vh
	if isRoot {
		defaultW, defaultH = b.device.Size()
	} else if !isRoot && attrs["width"] == "" && attrs["height"] == "" {
		// Historic default for an inner <svg> lacking explicit sizing
		// (spec.md §9 open question, resolved for inner elements).
		defaultW, defaultH = 300, 150
	}
	targetW := b.lengthOr(attrs, "width", svgpath.WidthPercentage, vw, vh, defaultW)
	targetH := b.lengthOr(attrs, "height", svgpath.HeightPercentage, vw, vh, defaultH)

	el := &Element{Kind: KindSvg}
	el.Svg = SvgData{Width: attrs["width"], Height: attrs["height"], X: x, Y: y}

	childVW, childVH := targetW, targetH

	transform := svgpath.Identity
	if vb, ok := attrs["viewbox"]; ok {
		nums, err := svgpath.ScanNumbers(vb)
		if err == nil && len(nums) == 4 && nums[2] > 0 && nums[3] > 0 {
			el.Svg.ViewBox = Bounds{X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}
			el.Svg.HasViewBox = true
			scale := targetW / nums[2]
			if s := targetH / nums[3]; s < scale {
				scale = s
			}
			transform = svgpath.Identity.Scale(scale, scale).Translate(-nums[0], -nums[1])
			childVW, childVH = nums[2], nums[3]
		}
	}
	if !isRoot || x != 0 || y != 0 {
		transform = svgpath.Identity.Translate(x, y).Mult(transform)
	}
	el.Transform = transform
	el.HasTransform = true
	return el, childVW, childVH, false
}

func (b *Builder) constructRect(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	x, okX := b.length(attrs, "x", svgpath.WidthPercentage, vw, vh)
	y, okY := b.length(attrs, "y", svgpath.HeightPercentage, vw, vh)
	w, okW := b.length(attrs, "width", svgpath.WidthPercentage, vw, vh)
	h, okH := b.length(attrs, "height", svgpath.HeightPercentage, vw, vh)
	if !okX {
		x = 0
	}
	if !okY {
		y = 0
	}
	if !okW || !okH {
		return nil, vw, vh, true
	}
	rx, okRx := b.length(attrs, "rx", svgpath.WidthPercentage, vw, vh)
	ry, okRy := b.length(attrs, "ry", svgpath.HeightPercentage, vw, vh)
	if okRx && !okRy {
		ry = rx
	}
	if okRy && !okRx {
		rx = ry
	}
	el := &Element{Kind: KindRect}
	el.Rect = RectData{X: x, Y: y, W: w, H: h, Rx: rx, Ry: ry}
	b.buildGeometry(el, rectPathData(x, y, w, h, rx, ry))
	return el, vw, vh, false
}

// rectPathData synthesizes the `d` grammar equivalent of a (possibly
// rounded) rect, so the same eager geometry build that serves <path> also
// serves <rect>.
func rectPathData(x, y, w, h, rx, ry float64) string {
	if rx <= 0 || ry <= 0 {
		return fmt.Sprintf("M%g,%g H%g V%g H%g Z", x, y, x+w, y+h, x)
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	return fmt.Sprintf(
		"M%g,%g H%g A%g,%g 0 0 1 %g,%g V%g A%g,%g 0 0 1 %g,%g H%g A%g,%g 0 0 1 %g,%g V%g A%g,%g 0 0 1 %g,%g Z",
		x+rx, y,
		x+w-rx, rx, ry, x+w, y+ry,
		y+h-ry, rx, ry, x+w-rx, y+h,
		x+rx, rx, ry, x, y+h-ry,
		y+ry, rx, ry, x+rx, y,
	)
}

func (b *Builder) constructCircle(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	cx, _ := b.length(attrs, "cx", svgpath.WidthPercentage, vw, vh)
	cy, _ := b.length(attrs, "cy", svgpath.HeightPercentage, vw, vh)
	r, okR := b.length(attrs, "r", svgpath.DiagPercentage, vw, vh)
	if !okR {
		return nil, vw, vh, true
	}
	el := &Element{Kind: KindCircle}
	el.Circle = CircleData{Cx: cx, Cy: cy, R: r}
	b.buildGeometry(el, ellipsePathData(cx, cy, r, r))
	return el, vw, vh, false
}

// ellipsePathData synthesizes a closed two-arc path tracing a circle or
// ellipse, so circle/ellipse elements get eager geometry like <path>.
func ellipsePathData(cx, cy, rx, ry float64) string {
	return fmt.Sprintf(
		"M%g,%g A%g,%g 0 1 0 %g,%g A%g,%g 0 1 0 %g,%g Z",
		cx+rx, cy, rx, ry, cx-rx, cy, rx, ry, cx+rx, cy,
	)
}

func (b *Builder) constructEllipse(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	cx, _ := b.length(attrs, "cx", svgpath.WidthPercentage, vw, vh)
	cy, _ := b.length(attrs, "cy", svgpath.HeightPercentage, vw, vh)
	rx, okRx := b.length(attrs, "rx", svgpath.WidthPercentage, vw, vh)
	ry, okRy := b.length(attrs, "ry", svgpath.HeightPercentage, vw, vh)
	if !okRx || !okRy {
		return nil, vw, vh, true
	}
	el := &Element{Kind: KindEllipse}
	el.Ellipse = EllipseData{Cx: cx, Cy: cy, Rx: rx, Ry: ry}
	b.buildGeometry(el, ellipsePathData(cx, cy, rx, ry))
	return el, vw, vh, false
}

func (b *Builder) constructLine(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	x1, ok1 := b.length(attrs, "x1", svgpath.WidthPercentage, vw, vh)
	y1, ok2 := b.length(attrs, "y1", svgpath.HeightPercentage, vw, vh)
	x2, ok3 := b.length(attrs, "x2", svgpath.WidthPercentage, vw, vh)
	y2, ok4 := b.length(attrs, "y2", svgpath.HeightPercentage, vw, vh)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, vw, vh, true
	}
	el := &Element{Kind: KindLine}
	el.Line = LineData{X1: x1, Y1: y1, X2: x2, Y2: y2}
	b.buildGeometry(el, fmt.Sprintf("M%g,%g L%g,%g", x1, y1, x2, y2))
	return el, vw, vh, false
}

func (b *Builder) constructPath(attrs map[string]string) (*Element, float64, float64, bool) {
	d, ok := attrs["d"]
	if !ok || d == "" {
		return nil, 0, 0, true
	}
	el := &Element{Kind: KindPath}
	el.Path = PathData{D: d}
	b.buildGeometry(el, d)
	return el, 0, 0, false
}

func (b *Builder) constructPoly(attrs map[string]string, closed bool) (*Element, float64, float64, bool) {
	pts, ok := attrs["points"]
	if !ok {
		return nil, 0, 0, true
	}
	nums, err := svgpath.ScanNumbers(pts)
	if err != nil || len(nums) < 4 || len(nums)%2 != 0 {
		return nil, 0, 0, true
	}
	var d strings.Builder
	fmt.Fprintf(&d, "M%g,%g", nums[0], nums[1])
	for i := 2; i+1 < len(nums); i += 2 {
		fmt.Fprintf(&d, " L%g,%g", nums[i], nums[i+1])
	}
	if closed {
		d.WriteString(" Z")
	}
	el := &Element{Kind: KindPath}
	el.Path = PathData{D: d.String()}
	el.Poly = PolyData{Points: nums}
	b.buildGeometry(el, d.String())
	return el, 0, 0, false
}

func (b *Builder) constructText(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	x, _ := b.length(attrs, "x", svgpath.WidthPercentage, vw, vh)
	y, _ := b.length(attrs, "y", svgpath.HeightPercentage, vw, vh)
	el := &Element{Kind: KindText}
	el.Text = TextData{X: x, Y: y}
	return el, vw, vh, false
}

func (b *Builder) constructUse(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	href := resolveHref(attrs)
	if href == "" {
		return nil, vw, vh, true
	}
	x, _ := b.length(attrs, "x", svgpath.WidthPercentage, vw, vh)
	y, _ := b.length(attrs, "y", svgpath.HeightPercentage, vw, vh)
	el := &Element{Kind: KindUse}
	el.Use = UseData{X: x, Y: y, Href: href}
	if x != 0 || y != 0 {
		el.Transform = svgpath.Identity.Translate(x, y)
		el.HasTransform = true
	}
	return el, vw, vh, false
}

func resolveHref(attrs map[string]string) string {
	v := attrs["href"]
	if v == "" {
		v = attrs["xlink:href"]
	}
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "url(") {
		end := strings.Index(v, ")")
		if end < 0 {
			return ""
		}
		v = strings.TrimSpace(v[4:end])
	}
	v = strings.Trim(v, `"'`)
	return strings.TrimPrefix(v, "#")
}

func (b *Builder) constructLinearGradient(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	el := &Element{Kind: KindLinearGradient}
	_, hasUnits := attrs["gradientunits"]
	el.Gradient = GradientData{
		Units:    gradientUnitsOf(attrs),
		HasUnits: hasUnits,
		Spread:   spreadOf(attrs),
		Href:     resolveHref(attrs),
	}
	x1, ok1 := parseFloatAttr(attrs, "x1")
	y1, ok2 := parseFloatAttr(attrs, "y1")
	x2, ok3 := parseFloatAttr(attrs, "x2")
	y2, ok4 := parseFloatAttr(attrs, "y2")
	if ok1 || ok2 || ok3 || ok4 {
		el.Gradient.HasLinearCoords = true
	}
	if !ok1 {
		x1 = 0
	}
	if !ok2 {
		y1 = 0
	}
	if !ok3 {
		x2 = 1
	}
	if !ok4 {
		y2 = 0
	}
	el.Gradient.X1, el.Gradient.Y1, el.Gradient.X2, el.Gradient.Y2 = x1, y1, x2, y2
	if t, ok := attrs["gradienttransform"]; ok {
		if m, err := svgpath.ParseTransform(t); err == nil {
			el.Gradient.Transform = m
			el.Gradient.HasTransform = true
		}
	}
	return el, vw, vh, false
}

func (b *Builder) constructRadialGradient(attrs map[string]string, vw, vh float64) (*Element, float64, float64, bool) {
	el := &Element{Kind: KindRadialGradient}
	_, hasUnits := attrs["gradientunits"]
	el.Gradient = GradientData{
		Units:    gradientUnitsOf(attrs),
		HasUnits: hasUnits,
		Spread:   spreadOf(attrs),
		Href:     resolveHref(attrs),
	}
	cx, okCx := parseFloatAttr(attrs, "cx")
	cy, okCy := parseFloatAttr(attrs, "cy")
	r, okR := parseFloatAttr(attrs, "r")
	if okCx || okCy || okR {
		el.Gradient.HasRadialCoords = true
	}
	if !okCx {
		cx = 0.5
	}
	if !okCy {
		cy = 0.5
	}
	if !okR {
		r = 0.5
	}
	fx, okFx := parseFloatAttr(attrs, "fx")
	fy, okFy := parseFloatAttr(attrs, "fy")
	if !okFx {
		fx = cx
	}
	if !okFy {
		fy = cy
	}
	el.Gradient.Cx, el.Gradient.Cy, el.Gradient.R = cx, cy, r
	el.Gradient.Fx, el.Gradient.Fy = fx, fy
	if t, ok := attrs["gradienttransform"]; ok {
		if m, err := svgpath.ParseTransform(t); err == nil {
			el.Gradient.Transform = m
			el.Gradient.HasTransform = true
		}
	}
	return el, vw, vh, false
}

func (b *Builder) constructStop(attrs map[string]string) (*Element, float64, float64, bool) {
	el := &Element{Kind: KindStop}
	offset := 0.0
	if v, ok := attrs["offset"]; ok {
		v = strings.TrimSpace(v)
		if strings.HasSuffix(v, "%") {
			if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64); err == nil {
				offset = f / 100
			}
		} else if f, err := strconv.ParseFloat(v, 64); err == nil {
			offset = f
		}
	}
	color := svgpath.Color{A: 1}
	if v, ok := stopStyleValue(attrs, "stop-color"); ok {
		if c, err := svgpath.ParseColor(v); err == nil {
			color = c
		}
	}
	opacity := 1.0
	if v, ok := stopStyleValue(attrs, "stop-opacity"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			opacity = clamp01(f)
		}
	}
	el.Stop = StopData{Offset: clamp01(offset), Color: color, Opacity: opacity}
	return el, 0, 0, false
}

// stopStyleValue looks up a `stop-color`/`stop-opacity` value from either
// the direct attribute or the inline `style`, since stop elements are not
// part of the inherited style chain mergeStyle models.
func stopStyleValue(attrs map[string]string, name string) (string, bool) {
	if v, ok := attrs[name]; ok {
		return v, true
	}
	style := attrs["style"]
	for _, decl := range strings.Split(style, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.TrimSpace(kv[0]) == name {
			return strings.TrimSpace(kv[1]), true
		}
	}
	return "", false
}

func gradientUnitsOf(attrs map[string]string) GradientUnits {
	if attrs["gradientunits"] == "userSpaceOnUse" {
		return UserSpaceOnUse
	}
	return ObjectBoundingBox
}

func spreadOf(attrs map[string]string) SpreadMethod {
	switch attrs["spreadmethod"] {
	case "reflect":
		return ReflectSpread
	case "repeat":
		return RepeatSpread
	default:
		return PadSpread
	}
}

func parseFloatAttr(attrs map[string]string, name string) (float64, bool) {
	v, ok := attrs[name]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// buildGeometry parses d eagerly into backend PathGeometry, the one piece
// of Device work spec.md §4.B asks the builder to perform directly since
// geometry depends only on the `d` string, never on cross-document
// references resolved later.
func (b *Builder) buildGeometry(el *Element, d string) {
	geom, err := b.device.CreatePathGeometry()
	if err != nil {
		b.logger.Printf("svgcore: path geometry unavailable: %v", err)
		return
	}
	if err := svgpath.ParsePath(d, geom); err != nil {
		b.logger.Printf("svgcore: malformed path data %q: %v", d, err)
		return
	}
	el.geometry = geom
}
