package svgcore

import "testing"

func TestComputeBBoxCircle(t *testing.T) {
	el := &Element{Kind: KindCircle, Circle: CircleData{Cx: 10, Cy: 10, R: 5}}
	computeBBox(el)
	if !el.HasBBox || el.BBox != (Bounds{X: 5, Y: 5, W: 10, H: 10}) {
		t.Errorf("got %+v", el.BBox)
	}
}

func TestComputeBBoxGroupUnion(t *testing.T) {
	a := &Element{Kind: KindRect, Rect: RectData{X: 0, Y: 0, W: 10, H: 10}}
	b := &Element{Kind: KindRect, Rect: RectData{X: 20, Y: 5, W: 5, H: 5}}
	computeBBox(a)
	computeBBox(b)
	group := &Element{Kind: KindGroup, Children: []*Element{a, b}}
	computeBBox(group)
	if !group.HasBBox {
		t.Fatal("expected the group to have a bounding box")
	}
	want := Bounds{X: 0, Y: 0, W: 25, H: 10}
	if group.BBox != want {
		t.Errorf("got %+v, want %+v", group.BBox, want)
	}
}

func TestComputeBBoxGroupWithNoGeometricChildrenHasNoBounds(t *testing.T) {
	defsChild := &Element{Kind: KindDefs}
	computeBBox(defsChild)
	group := &Element{Kind: KindGroup, Children: []*Element{defsChild}}
	computeBBox(group)
	if group.HasBBox {
		t.Errorf("expected no bounding box, got %+v", group.BBox)
	}
}

func TestPathGeometryBoundsWithoutCapabilityIsUnavailable(t *testing.T) {
	el := &Element{Kind: KindPath, geometry: fakeGeometry{}}
	computeBBox(el)
	if el.HasBBox {
		t.Errorf("fakeGeometry does not implement boundsReporter; expected HasBBox=false, got %+v", el.BBox)
	}
}
