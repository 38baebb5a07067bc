package svgpath

import "testing"

// recordingSink captures the calls ParsePath makes so tests can assert on
// the exact sequence of emitted operations without a real rasterizer.
type recordingSink struct {
	events []string
}

func (s *recordingSink) BeginFigure(x, y float64) {
	s.events = append(s.events, "M")
}
func (s *recordingSink) AddLine(x, y float64) {
	s.events = append(s.events, "L")
}
func (s *recordingSink) AddQuadraticBezier(cx, cy, x, y float64) {
	s.events = append(s.events, "Q")
}
func (s *recordingSink) AddBezier(c1x, c1y, c2x, c2y, x, y float64) {
	s.events = append(s.events, "C")
}
func (s *recordingSink) AddArc(rx, ry, rot float64, large, sweep bool, x, y float64) {
	s.events = append(s.events, "A")
}
func (s *recordingSink) EndFigure(closed bool) {
	if closed {
		s.events = append(s.events, "Z")
	} else {
		s.events = append(s.events, "E")
	}
}
func (s *recordingSink) Close() {}

func TestParsePathBasicCommands(t *testing.T) {
	sink := &recordingSink{}
	if err := ParsePath("M0 0 L10 0 Q15 5 20 0 C25 5 30 5 35 0 Z", sink); err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	want := []string{"M", "L", "Q", "C", "Z"}
	if len(sink.events) != len(want) {
		t.Fatalf("got %v, want %v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, sink.events[i], want[i])
		}
	}
}

func TestParsePathImplicitCommandContinuation(t *testing.T) {
	// A bare coordinate pair after a command repeats that command (spec.md
	// §4.P): "L10 0 20 0" is two lineto operations, not one.
	sink := &recordingSink{}
	if err := ParsePath("M0 0 L10 0 20 0", sink); err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	want := []string{"M", "L", "L", "E"}
	if len(sink.events) != len(want) {
		t.Fatalf("got %v, want %v", sink.events, want)
	}
}

func TestParsePathUnclosedVsClosed(t *testing.T) {
	open := &recordingSink{}
	if err := ParsePath("M0 0 L10 10", open); err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if open.events[len(open.events)-1] != "E" {
		t.Errorf("expected an open EndFigure, got %v", open.events)
	}

	closed := &recordingSink{}
	if err := ParsePath("M0 0 L10 10 Z", closed); err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if closed.events[len(closed.events)-1] != "Z" {
		t.Errorf("expected a closed EndFigure, got %v", closed.events)
	}
}

func TestParsePathRelativeCommands(t *testing.T) {
	sink := &recordingSink{}
	if err := ParsePath("m0 0 l10 0 l0 10 z", sink); err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	want := []string{"M", "L", "L", "Z"}
	if len(sink.events) != len(want) {
		t.Fatalf("got %v, want %v", sink.events, want)
	}
}

func TestParsePathArcFlagsWithoutSeparators(t *testing.T) {
	// Arc flags are single digits that may run together with no separator,
	// e.g. "A5 5 0 11 10 10" meaning largeArc=1, sweep=1.
	sink := &recordingSink{}
	if err := ParsePath("M0 0 A5 5 0 1110 10", sink); err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	want := []string{"M", "A", "E"}
	if len(sink.events) != len(want) {
		t.Fatalf("got %v, want %v", sink.events, want)
	}
}

func TestParsePathMissingMoveToFails(t *testing.T) {
	sink := &recordingSink{}
	if err := ParsePath("L10 10", sink); err == nil {
		t.Error("expected an error for a path starting without M/m")
	}
}
