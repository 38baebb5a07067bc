package svgdevice

import (
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/opentype/api"
	"github.com/go-text/typesetting/opentype/api/metadata"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/srwiley/rasterx"

	"github.com/gosvgcore/svgcore/svgcore"
	"github.com/gosvgcore/svgcore/svgpath"
)

// fontResolver wraps a fontscan.FontMap, matching font-family names against
// the host's installed fonts the way gotypst's font/loader.go and gio's
// text shaper both do, rather than shipping any bundled font data.
type fontResolver struct {
	mu     sync.Mutex
	fonts  *fontscan.FontMap
	shaper shaping.HarfbuzzShaper
}

func newFontResolver() *fontResolver {
	fm := fontscan.NewFontMap(nil)
	_ = fm.UseSystemFonts("") // best effort; an empty cache dir disables persistent caching
	return &fontResolver{fonts: fm}
}

func (r *fontResolver) resolveFace(families []string, italic, bold bool, sample string) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	style := metadata.StyleNormal
	if italic {
		style = metadata.StyleItalic
	}
	weight := metadata.WeightNormal
	if bold {
		weight = metadata.WeightBold
	}
	r.fonts.SetQuery(fontscan.Query{Families: families, Aspect: metadata.Aspect{Style: style, Weight: weight}})

	probe := ' '
	for _, c := range sample {
		probe = c
		break
	}
	face := r.fonts.ResolveFace(probe)
	if face == nil {
		return nil, fmt.Errorf("svgdevice: no installed font matches %v", families)
	}
	return face, nil
}

// textLayout is RasterDevice's svgcore.TextLayout: a shaped glyph run plus
// the face and size it was shaped against, kept around so DrawText can
// rasterize each glyph's outline at draw time (spec.md's separation of
// asset binding from drawing, §9's design notes).
type textLayout struct {
	face    font.Face
	glyphs  []shaping.Glyph
	sizePx  float64
	advance float64
	ascent  float64
	descent float64
}

func (t *textLayout) AdvanceWidth() float64 { return t.advance }
func (t *textLayout) Ascent() float64       { return t.ascent }
func (t *textLayout) Descent() float64      { return t.descent }
func (t *textLayout) Release()              {}

func (d *RasterDevice) CreateTextLayout(text string, fontFamilies []string, sizePx float64, italic, bold bool) (svgcore.TextLayout, error) {
	face, err := d.fonts.resolveFace(fontFamilies, italic, bold, text)
	if err != nil {
		return nil, err
	}
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Face:      face,
		Size:      fixed.Int26_6(sizePx * 64),
		Direction: di.DirectionLTR,
	}
	out := d.fonts.shaper.Shape(input)
	return &textLayout{
		face:    face,
		glyphs:  out.Glyphs,
		sizePx:  sizePx,
		advance: float64(out.Advance) / 64,
		ascent:  float64(out.LineBounds.Ascent) / 64,
		descent: float64(-out.LineBounds.Descent) / 64,
	}, nil
}

// DrawText rasterizes each shaped glyph's outline (github.com/go-text/
// typesetting's vector glyph data, scaled from font units by size/UPEM)
// through the filler, matching the teacher's approach of reducing every
// drawable shape to the same Fill pipeline rather than special-casing
// text output.
func (d *RasterDevice) DrawText(layout svgcore.TextLayout, transform svgpath.Matrix2D, brush svgcore.Brush, x, y, opacity float64) error {
	t, ok := layout.(*textLayout)
	if !ok || t.face == nil || brush == nil {
		return nil
	}
	upem := float64(t.face.Upem())
	if upem == 0 {
		upem = 1000
	}
	scale := t.sizePx / upem

	filler := &d.dasher.Filler
	filler.Clear()
	filler.SetWinding(true)

	pen := x
	for _, g := range t.glyphs {
		glyphX := pen + float64(g.XOffset)/64
		glyphY := y - float64(g.YOffset)/64
		emitGlyphOutline(t.face, g.GlyphID, glyphX, glyphY, scale, transform, filler)
		pen += float64(g.XAdvance) / 64
	}
	filler.Stop(false)
	setScannerColor(filler.Scanner, brush, opacity)
	filler.Draw()
	return nil
}

// emitGlyphOutline feeds one glyph's vector outline into drawer, mapping
// font-unit control points through (scale, flip-Y, pen position,
// transform) in one pass.
func emitGlyphOutline(face font.Face, gid uint16, penX, penY, scale float64, transform svgpath.Matrix2D, drawer rasterx.Drawer) {
	data := face.GlyphData(font.GID(gid))
	outline, ok := data.(api.GlyphOutline)
	if !ok {
		return
	}
	toPoint := func(fx, fy float32) fixed.Point26_6 {
		x := penX + float64(fx)*scale
		y := penY - float64(fy)*scale
		return toFixedPoint(transform, x, y)
	}
	for _, seg := range outline.Segments {
		switch seg.Op {
		case api.SegmentOpMoveTo:
			drawer.Stop(false)
			drawer.Start(toPoint(seg.Args[0].X, seg.Args[0].Y))
		case api.SegmentOpLineTo:
			drawer.Line(toPoint(seg.Args[0].X, seg.Args[0].Y))
		case api.SegmentOpQuadTo:
			drawer.QuadBezier(toPoint(seg.Args[0].X, seg.Args[0].Y), toPoint(seg.Args[1].X, seg.Args[1].Y))
		case api.SegmentOpCubeTo:
			drawer.CubeBezier(
				toPoint(seg.Args[0].X, seg.Args[0].Y),
				toPoint(seg.Args[1].X, seg.Args[1].Y),
				toPoint(seg.Args[2].X, seg.Args[2].Y),
			)
		}
	}
	drawer.Stop(true)
}
