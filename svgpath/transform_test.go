package svgpath

import "testing"

func approxEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestParseTransformRotateThenTranslateOrdering(t *testing.T) {
	// spec.md §8 worked example: translate(10,0) rotate(90) maps (1,0) to
	// (10,1) -- rotate is applied to the point first, then translate.
	m, err := ParseTransform("translate(10,0) rotate(90)")
	if err != nil {
		t.Fatalf("ParseTransform: %v", err)
	}
	x, y := m.Apply(1, 0)
	if !approxEqual(x, 10) || !approxEqual(y, 1) {
		t.Errorf("got (%v, %v), want (10, 1)", x, y)
	}
}

func TestParseTransformScaleThenTranslate(t *testing.T) {
	m, err := ParseTransform("scale(2) translate(5, 5)")
	if err != nil {
		t.Fatalf("ParseTransform: %v", err)
	}
	// translate(5,5) applied first moves (0,0) to (5,5), then scale(2)
	// doubles it to (10,10).
	x, y := m.Apply(0, 0)
	if !approxEqual(x, 10) || !approxEqual(y, 10) {
		t.Errorf("got (%v, %v), want (10, 10)", x, y)
	}
}

func TestParseTransformRotateAboutCenter(t *testing.T) {
	m, err := ParseTransform("rotate(180, 5, 5)")
	if err != nil {
		t.Fatalf("ParseTransform: %v", err)
	}
	x, y := m.Apply(5, 0)
	if !approxEqual(x, 5) || !approxEqual(y, 10) {
		t.Errorf("got (%v, %v), want (5, 10)", x, y)
	}
}

func TestParseTransformUnknownFunctionIgnored(t *testing.T) {
	m, err := ParseTransform("perspective(10) translate(1,1)")
	if err != nil {
		t.Fatalf("ParseTransform: %v", err)
	}
	x, y := m.Apply(0, 0)
	if !approxEqual(x, 1) || !approxEqual(y, 1) {
		t.Errorf("got (%v, %v), want (1, 1)", x, y)
	}
}

func TestParseTransformWrongArgCountFails(t *testing.T) {
	if _, err := ParseTransform("translate(1,2,3)"); err == nil {
		t.Error("expected an error for translate with 3 arguments")
	}
}

func TestMatrixMultOrder(t *testing.T) {
	translate := Identity.Translate(10, 0)
	rotate := Identity.Rotate(3.14159265358979 / 2)
	combined := translate.Mult(rotate)
	x, y := combined.Apply(1, 0)
	if !approxEqual(x, 10) || !approxEqual(y, 1) {
		t.Errorf("got (%v, %v), want (10, 1)", x, y)
	}
}
