package svgcore

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/gosvgcore/svgcore/svgpath"
)

// fakeGeometry, fakeBrush, fakeStrokeStyle and fakeTextLayout are minimal
// stand-ins for a real backend, letting these tests exercise the builder,
// resolver and asset binder without any rasterizer.
type fakeGeometry struct{}

func (fakeGeometry) BeginFigure(x, y float64)                          {}
func (fakeGeometry) AddLine(x, y float64)                              {}
func (fakeGeometry) AddQuadraticBezier(cx, cy, x, y float64)           {}
func (fakeGeometry) AddBezier(c1x, c1y, c2x, c2y, x, y float64)        {}
func (fakeGeometry) AddArc(rx, ry, rot float64, large, sweep bool, x, y float64) {}
func (fakeGeometry) EndFigure(closed bool)                             {}
func (fakeGeometry) Close()                                            {}
func (fakeGeometry) Release()                                          {}

type fakeBrush struct{}

func (fakeBrush) Release() {}

type fakeStrokeStyle struct{}

func (fakeStrokeStyle) Release() {}

type fakeTextLayout struct{}

func (fakeTextLayout) AdvanceWidth() float64 { return 42 }
func (fakeTextLayout) Ascent() float64       { return 10 }
func (fakeTextLayout) Descent() float64      { return 2 }
func (fakeTextLayout) Release()              {}

// fakeDevice is a Device that records nothing and draws nothing; it exists
// purely to let Parse/ParseReader run end to end in a test.
type fakeDevice struct {
	w, h float64
}

func (d fakeDevice) DPI() (float64, float64) { return 96, 96 }
func (d fakeDevice) Size() (float64, float64) { return d.w, d.h }
func (fakeDevice) CreateSolidBrush(c svgpath.Color) (Brush, error)  { return fakeBrush{}, nil }
func (fakeDevice) CreateLinearGradientBrush(g LinearGradientSpec) (Brush, error) {
	return fakeBrush{}, nil
}
func (fakeDevice) CreateRadialGradientBrush(g RadialGradientSpec) (Brush, error) {
	return fakeBrush{}, nil
}
func (fakeDevice) CreateStrokeStyle(opts StrokeOptions) (StrokeStyle, error) {
	return fakeStrokeStyle{}, nil
}
func (fakeDevice) CreatePathGeometry() (PathGeometry, error) { return fakeGeometry{}, nil }
func (fakeDevice) CreateTextLayout(text string, fontFamilies []string, sizePx float64, italic, bold bool) (TextLayout, error) {
	return fakeTextLayout{}, nil
}
func (fakeDevice) FillGeometry(geometry PathGeometry, transform svgpath.Matrix2D, brush Brush, opacity float64, winding FillRule) error {
	return nil
}
func (fakeDevice) DrawGeometry(geometry PathGeometry, transform svgpath.Matrix2D, brush Brush, style StrokeStyle, opacity float64) error {
	return nil
}
func (fakeDevice) DrawText(layout TextLayout, transform svgpath.Matrix2D, brush Brush, x, y, opacity float64) error {
	return nil
}

var _ Device = fakeDevice{}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func mustParse(t *testing.T, doc string, device Device) *Image {
	t.Helper()
	img, err := ParseReader(strings.NewReader(doc), device, discardLogger())
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	return img
}

func TestParseRectAttributesAndStyle(t *testing.T) {
	doc := `<svg width="100" height="50"><rect x="10" y="10" width="20" height="20" fill="#00ff00"/></svg>`
	img := mustParse(t, doc, fakeDevice{w: 300, h: 150})
	if len(img.Root.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(img.Root.Children))
	}
	rect := img.Root.Children[0]
	if rect.Kind != KindRect {
		t.Fatalf("got kind %v, want KindRect", rect.Kind)
	}
	if rect.Rect.X != 10 || rect.Rect.Y != 10 || rect.Rect.W != 20 || rect.Rect.H != 20 {
		t.Errorf("got %+v", rect.Rect)
	}
	if !rect.Style.Fill.HasColor || rect.Style.Fill.Color != (svgpath.Color{G: 0xff, A: 1}) {
		t.Errorf("got fill %+v", rect.Style.Fill)
	}
}

func TestStylePrecedenceStyleAttrOverridesPresentation(t *testing.T) {
	// spec.md §8's style-precedence property: the style="..." attribute
	// wins over a presentation attribute for the same property regardless
	// of attribute order in the source.
	doc := `<svg width="100" height="50"><rect fill="red" style="fill:blue" width="10" height="10"/></svg>`
	img := mustParse(t, doc, fakeDevice{w: 100, h: 50})
	rect := img.Root.Children[0]
	blue, err := svgpath.ParseColor("blue")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if rect.Style.Fill.Color != blue {
		t.Errorf("got fill %+v, want blue", rect.Style.Fill)
	}
}

func TestStyleInheritance(t *testing.T) {
	doc := `<svg width="100" height="50"><g fill="#ff0000"><rect width="10" height="10"/></g></svg>`
	img := mustParse(t, doc, fakeDevice{w: 100, h: 50})
	group := img.Root.Children[0]
	rect := group.Children[0]
	if !rect.Style.Fill.HasColor || rect.Style.Fill.Color.R != 0xff {
		t.Errorf("expected the rect to inherit the group's fill, got %+v", rect.Style.Fill)
	}
}

func TestViewBoxMapping(t *testing.T) {
	// viewBox="0 0 100 50" mapped onto a 200x100 target scales by 2 in each
	// axis: point (50,25) in viewBox space lands at (100,50) in the target.
	doc := `<svg width="200" height="100" viewBox="0 0 100 50"></svg>`
	img := mustParse(t, doc, fakeDevice{w: 200, h: 100})
	x, y := img.Root.Transform.Apply(50, 25)
	if x != 100 || y != 50 {
		t.Errorf("got (%v, %v), want (100, 50)", x, y)
	}
}

func TestRootSizeFallsBackToDeviceSize(t *testing.T) {
	// An <svg> with no width/height/viewBox falls back to the device's own
	// target size for the root viewport (spec.md §9 open question).
	doc := `<svg><rect width="10" height="10"/></svg>`
	img := mustParse(t, doc, fakeDevice{w: 640, h: 480})
	if img.Width != 640 || img.Height != 480 {
		t.Errorf("got (%v, %v), want (640, 480)", img.Width, img.Height)
	}
}

func TestBadTransformDropsTransformButKeepsElement(t *testing.T) {
	doc := `<svg width="100" height="50"><rect width="10" height="10" transform="translate(not-a-number)"/></svg>`
	img := mustParse(t, doc, fakeDevice{w: 100, h: 50})
	if len(img.Root.Children) != 1 {
		t.Fatalf("expected the element to survive a malformed transform, got %d children", len(img.Root.Children))
	}
	rect := img.Root.Children[0]
	if rect.HasTransform {
		t.Errorf("expected HasTransform=false for a malformed transform, got %+v", rect.Transform)
	}
}

func TestUseClonesTargetAndMissingTargetsAreDropped(t *testing.T) {
	doc := `<svg width="100" height="50">
		<defs><rect id="a" width="10" height="10"/></defs>
		<use id="u1" href="#a"/>
		<use id="u2" href="#missing"/>
	</svg>`
	img := mustParse(t, doc, fakeDevice{w: 100, h: 50})

	u1 := img.ByID["u1"]
	if len(u1.Children) != 1 || u1.Children[0].Kind != KindRect {
		t.Fatalf("expected u1 to clone the rect, got %+v", u1.Children)
	}
	if u1.Children[0].ID != "" {
		t.Errorf("clone should not carry the original id, got %q", u1.Children[0].ID)
	}
	// Mutating the clone must not affect the template.
	u1.Children[0].Rect.W = 999
	original := img.ByID["a"]
	if original.Rect.W == 999 {
		t.Error("clone and template share state, expected independent copies")
	}

	u2 := img.ByID["u2"]
	if len(u2.Children) != 0 {
		t.Errorf("expected a missing <use> target to leave the element empty, got %+v", u2.Children)
	}
}

func TestGradientHrefChainInheritsUnsetFields(t *testing.T) {
	doc := `<svg width="100" height="50">
		<defs>
			<linearGradient id="base" x1="0" y1="0" x2="2" y2="3">
				<stop offset="0" stop-color="#ff0000"/>
				<stop offset="1" stop-color="#0000ff"/>
			</linearGradient>
			<linearGradient id="derived" href="#base"/>
		</defs>
	</svg>`
	img := mustParse(t, doc, fakeDevice{w: 100, h: 50})
	derived := img.ByID["derived"]
	if derived.Gradient.X2 != 2 || derived.Gradient.Y2 != 3 {
		t.Errorf("expected derived gradient to inherit x2/y2 from its href target, got %+v", derived.Gradient)
	}
	if len(derived.Children) != 2 {
		t.Errorf("expected derived gradient to inherit the base gradient's stops, got %d children", len(derived.Children))
	}
}
