package svgpath

import "testing"

func TestParseColorNamed(t *testing.T) {
	c, err := ParseColor("red")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != (Color{255, 0, 0, 1}) {
		t.Errorf("got %+v", c)
	}
}

func TestParseColorNamedFallsBackToColornames(t *testing.T) {
	// "tomato" is not in the fixed named set, only in x/image/colornames.
	c, err := ParseColor("tomato")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c.A != 1 || c.R == 0 && c.G == 0 && c.B == 0 {
		t.Errorf("expected a resolved color for tomato, got %+v", c)
	}
}

func TestParseColorShortHexExpandsPerDigit(t *testing.T) {
	// CSS-correct expansion duplicates each nibble: #abc == #aabbcc.
	short, err := ParseColor("#abc")
	if err != nil {
		t.Fatalf("ParseColor(#abc): %v", err)
	}
	long, err := ParseColor("#aabbcc")
	if err != nil {
		t.Fatalf("ParseColor(#aabbcc): %v", err)
	}
	if short != long {
		t.Errorf("#abc = %+v, #aabbcc = %+v, want equal", short, long)
	}
}

func TestParseColorHexWithAlpha(t *testing.T) {
	c, err := ParseColor("#ff000080")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c.R != 0xff || c.G != 0 || c.B != 0 {
		t.Errorf("got %+v", c)
	}
	if !approxEqual(c.A, float64(0x80)/255) {
		t.Errorf("got alpha %v, want ~0.5", c.A)
	}
}

func TestParseColorShortHexAlpha(t *testing.T) {
	short, err := ParseColor("#f008")
	if err != nil {
		t.Fatalf("ParseColor(#f008): %v", err)
	}
	long, err := ParseColor("#ff000088")
	if err != nil {
		t.Fatalf("ParseColor(#ff000088): %v", err)
	}
	if short != long {
		t.Errorf("#f008 = %+v, #ff000088 = %+v, want equal", short, long)
	}
}

func TestParseColorRGBFunction(t *testing.T) {
	c, err := ParseColor("rgb(255, 0, 0)")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != (Color{255, 0, 0, 1}) {
		t.Errorf("got %+v", c)
	}
}

func TestParseColorRGBAFunctionWithPercentages(t *testing.T) {
	c, err := ParseColor("rgba(100%, 0%, 0%, 0.5)")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("got %+v", c)
	}
	if !approxEqual(c.A, 0.5) {
		t.Errorf("got alpha %v, want 0.5", c.A)
	}
}

func TestParseColorRejectsEmptyAndNone(t *testing.T) {
	if _, err := ParseColor(""); err == nil {
		t.Error("expected an error for empty color")
	}
	if _, err := ParseColor("none"); err == nil {
		t.Error("expected an error for \"none\" (callers must special-case it before calling ParseColor)")
	}
}

func TestParseColorRejectsUnknownName(t *testing.T) {
	if _, err := ParseColor("not-a-real-color"); err == nil {
		t.Error("expected an error for an unrecognized color name")
	}
}
