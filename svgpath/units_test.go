package svgpath

import "testing"

func TestParseLengthBarePixels(t *testing.T) {
	v, err := ParseLength("10", 96, WidthPercentage, 100, 100)
	if err != nil {
		t.Fatalf("ParseLength: %v", err)
	}
	if v != 10 {
		t.Errorf("got %v, want 10", v)
	}
}

func TestParseLengthExplicitPx(t *testing.T) {
	// Regression: findUnit previously skipped stripping the "px" suffix by
	// mistake, so an explicit "10px" failed to parse as a float.
	v, err := ParseLength("10px", 96, WidthPercentage, 100, 100)
	if err != nil {
		t.Fatalf("ParseLength(10px): %v", err)
	}
	if v != 10 {
		t.Errorf("got %v, want 10", v)
	}
}

func TestParseLengthInches(t *testing.T) {
	v, err := ParseLength("1in", 96, WidthPercentage, 100, 100)
	if err != nil {
		t.Fatalf("ParseLength: %v", err)
	}
	if v != 96 {
		t.Errorf("got %v, want 96", v)
	}
}

func TestParseLengthPoints(t *testing.T) {
	v, err := ParseLength("72pt", 96, WidthPercentage, 100, 100)
	if err != nil {
		t.Fatalf("ParseLength: %v", err)
	}
	if !approxEqual(v, 96) {
		t.Errorf("got %v, want 96", v)
	}
}

func TestParseLengthPercentageReferences(t *testing.T) {
	w, err := ParseLength("50%", 96, WidthPercentage, 200, 100)
	if err != nil {
		t.Fatalf("ParseLength width%%: %v", err)
	}
	if w != 100 {
		t.Errorf("width%% got %v, want 100", w)
	}

	h, err := ParseLength("50%", 96, HeightPercentage, 200, 100)
	if err != nil {
		t.Fatalf("ParseLength height%%: %v", err)
	}
	if h != 50 {
		t.Errorf("height%% got %v, want 50", h)
	}

	d, err := ParseLength("100%", 96, DiagPercentage, 300, 400)
	if err != nil {
		t.Fatalf("ParseLength diag%%: %v", err)
	}
	if !approxEqual(d, diagonal(300, 400)) {
		t.Errorf("diag%% got %v, want %v", d, diagonal(300, 400))
	}
}

func TestParseLengthInvalidNumber(t *testing.T) {
	if _, err := ParseLength("abc", 96, WidthPercentage, 100, 100); err == nil {
		t.Error("expected an error for a non-numeric length")
	}
}
