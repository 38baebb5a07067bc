package svgdevice

import "testing"

func TestPathGeometryBoundsTracksExtent(t *testing.T) {
	g := &pathGeometry{}
	g.BeginFigure(0, 0)
	g.AddLine(10, 0)
	g.AddQuadraticBezier(15, -5, 20, 0)
	g.AddBezier(25, 5, 30, 5, 35, 0)
	g.EndFigure(true)

	b, ok := g.Bounds()
	if !ok {
		t.Fatal("expected bounds to be available after recording operations")
	}
	if b.X != 0 || b.Y != -5 {
		t.Errorf("got origin (%v, %v), want (0, -5)", b.X, b.Y)
	}
	if b.X+b.W != 35 {
		t.Errorf("got max x %v, want 35", b.X+b.W)
	}
}

func TestPathGeometryBoundsEmptyIsUnavailable(t *testing.T) {
	g := &pathGeometry{}
	if _, ok := g.Bounds(); ok {
		t.Error("expected no bounds for a geometry with no recorded operations")
	}
}

func TestPathGeometryRecordsOperationsInOrder(t *testing.T) {
	g := &pathGeometry{}
	g.BeginFigure(1, 1)
	g.AddLine(2, 2)
	g.EndFigure(false)
	if len(g.ops) != 2 {
		t.Fatalf("got %d ops, want 2 (move, line; unclosed figures emit no close op)", len(g.ops))
	}
	if g.ops[0].kind != opMove || g.ops[1].kind != opLine {
		t.Errorf("got kinds %v, %v", g.ops[0].kind, g.ops[1].kind)
	}
}
