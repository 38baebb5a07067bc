package svgpath

import (
	"fmt"
	"strconv"
)

// Sink receives the geometry produced by parsing a path `d` string (or the
// equivalent shape elements reduce to), mirroring the backend's path
// geometry sink contract (spec.md §6): a figure is opened with BeginFigure,
// extended with line/curve/arc segments, and closed with EndFigure, which
// records whether the figure should be stroked as open or closed.
type Sink interface {
	BeginFigure(x, y float64)
	AddLine(x, y float64)
	AddQuadraticBezier(cx, cy, x, y float64)
	AddBezier(c1x, c1y, c2x, c2y, x, y float64)
	AddArc(rx, ry, xAxisRotation float64, largeArc, sweep bool, x, y float64)
	EndFigure(closed bool)
	Close()
}

// ParsePath implements the `d` attribute grammar (spec.md §4.P): the
// M/L/H/V/Q/T/C/S/A/Z command set, absolute and relative, with implicit
// command continuation (a bare coordinate pair after a command repeats
// that command) and the reflection rule for the smooth curve commands T
// and S.
func ParsePath(d string, sink Sink) error {
	ps := &pathState{sc: newPathScanner(d), sink: sink}
	return ps.run()
}

type pathState struct {
	sc   *pathScanner
	sink Sink

	curX, curY     float64
	startX, startY float64
	// ctrlX, ctrlY hold the reflection point for smooth curves; valid
	// tracks whether the previous command was a curve whose control point
	// can be reflected (per the SVG spec, only a matching curve family).
	ctrlX, ctrlY float64
	ctrlValid    bool

	inFigure bool
	lastCmd  byte
}

func (ps *pathState) run() error {
	first := true
	for {
		ps.sc.skipSeparators()
		if ps.sc.atEnd() {
			break
		}
		cmd, ok := ps.sc.scanCommand()
		if !ok {
			return fmt.Errorf("svgpath: expected a path command at position %d", ps.sc.pos)
		}
		if first && cmd != 'M' && cmd != 'm' {
			return fmt.Errorf("svgpath: path data must begin with a moveto, got %q", cmd)
		}
		first = false
		if err := ps.dispatch(cmd); err != nil {
			return err
		}
	}
	if ps.inFigure {
		ps.sink.EndFigure(false)
	}
	return nil
}

func (ps *pathState) dispatch(cmd byte) error {
	switch cmd {
	case 'M', 'm':
		return ps.moveTo(cmd)
	case 'L', 'l':
		return ps.lineTo(cmd)
	case 'H', 'h':
		return ps.hLineTo(cmd)
	case 'V', 'v':
		return ps.vLineTo(cmd)
	case 'Q', 'q':
		return ps.quadTo(cmd)
	case 'T', 't':
		return ps.smoothQuadTo(cmd)
	case 'C', 'c':
		return ps.cubicTo(cmd)
	case 'S', 's':
		return ps.smoothCubicTo(cmd)
	case 'A', 'a':
		return ps.arcTo(cmd)
	case 'Z', 'z':
		ps.closePath()
		return nil
	default:
		return fmt.Errorf("svgpath: unknown path command %q", cmd)
	}
}

func (ps *pathState) beginFigure(x, y float64) {
	if ps.inFigure {
		ps.sink.EndFigure(false)
	}
	ps.sink.BeginFigure(x, y)
	ps.inFigure = true
	ps.startX, ps.startY = x, y
	ps.curX, ps.curY = x, y
	ps.ctrlValid = false
}

func (ps *pathState) closePath() {
	if ps.inFigure {
		ps.sink.EndFigure(true)
		ps.sink.Close()
		ps.inFigure = false
	}
	ps.curX, ps.curY = ps.startX, ps.startY
	ps.ctrlValid = false
	ps.lastCmd = 'Z'
}

func (ps *pathState) moveTo(cmd byte) error {
	first := true
	for {
		if !first {
			// Subsequent coordinate pairs after the first implicitly
			// repeat as lineto commands (spec.md §4.P).
			if !ps.sc.peekNumber() {
				return nil
			}
		}
		x, y, err := ps.sc.scanPair()
		if err != nil {
			return err
		}
		if cmd == 'm' {
			x += ps.curX
			y += ps.curY
		}
		if first {
			ps.beginFigure(x, y)
		} else {
			ps.sink.AddLine(x, y)
			ps.curX, ps.curY = x, y
		}
		ps.lastCmd = cmd
		ps.ctrlValid = false
		first = false
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) lineTo(cmd byte) error {
	for {
		x, y, err := ps.sc.scanPair()
		if err != nil {
			return err
		}
		if cmd == 'l' {
			x += ps.curX
			y += ps.curY
		}
		ps.requireFigure(x, y)
		ps.sink.AddLine(x, y)
		ps.curX, ps.curY = x, y
		ps.lastCmd = cmd
		ps.ctrlValid = false
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) hLineTo(cmd byte) error {
	for {
		x, err := ps.sc.scanFloat()
		if err != nil {
			return err
		}
		if cmd == 'h' {
			x += ps.curX
		}
		ps.requireFigure(x, ps.curY)
		ps.sink.AddLine(x, ps.curY)
		ps.curX = x
		ps.lastCmd = cmd
		ps.ctrlValid = false
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) vLineTo(cmd byte) error {
	for {
		y, err := ps.sc.scanFloat()
		if err != nil {
			return err
		}
		if cmd == 'v' {
			y += ps.curY
		}
		ps.requireFigure(ps.curX, y)
		ps.sink.AddLine(ps.curX, y)
		ps.curY = y
		ps.lastCmd = cmd
		ps.ctrlValid = false
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) quadTo(cmd byte) error {
	for {
		cx, cy, x, y, err := ps.sc.scanQuad()
		if err != nil {
			return err
		}
		if cmd == 'q' {
			cx += ps.curX
			cy += ps.curY
			x += ps.curX
			y += ps.curY
		}
		ps.requireFigure(cx, cy)
		ps.sink.AddQuadraticBezier(cx, cy, x, y)
		ps.ctrlX, ps.ctrlY = cx, cy
		ps.ctrlValid = true
		ps.curX, ps.curY = x, y
		ps.lastCmd = cmd
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) smoothQuadTo(cmd byte) error {
	for {
		x, y, err := ps.sc.scanPair()
		if err != nil {
			return err
		}
		if cmd == 't' {
			x += ps.curX
			y += ps.curY
		}
		cx, cy := ps.reflectedControl('Q', 'q', 'T', 't')
		ps.requireFigure(cx, cy)
		ps.sink.AddQuadraticBezier(cx, cy, x, y)
		ps.ctrlX, ps.ctrlY = cx, cy
		ps.ctrlValid = true
		ps.curX, ps.curY = x, y
		ps.lastCmd = cmd
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) cubicTo(cmd byte) error {
	for {
		c1x, c1y, c2x, c2y, x, y, err := ps.sc.scanCubic()
		if err != nil {
			return err
		}
		if cmd == 'c' {
			c1x += ps.curX
			c1y += ps.curY
			c2x += ps.curX
			c2y += ps.curY
			x += ps.curX
			y += ps.curY
		}
		ps.requireFigure(c1x, c1y)
		ps.sink.AddBezier(c1x, c1y, c2x, c2y, x, y)
		ps.ctrlX, ps.ctrlY = c2x, c2y
		ps.ctrlValid = true
		ps.curX, ps.curY = x, y
		ps.lastCmd = cmd
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) smoothCubicTo(cmd byte) error {
	for {
		c2x, c2y, x, y, err := ps.sc.scanQuad()
		if err != nil {
			return err
		}
		if cmd == 's' {
			c2x += ps.curX
			c2y += ps.curY
			x += ps.curX
			y += ps.curY
		}
		c1x, c1y := ps.reflectedControl('C', 'c', 'S', 's')
		ps.requireFigure(c1x, c1y)
		ps.sink.AddBezier(c1x, c1y, c2x, c2y, x, y)
		ps.ctrlX, ps.ctrlY = c2x, c2y
		ps.ctrlValid = true
		ps.curX, ps.curY = x, y
		ps.lastCmd = cmd
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

func (ps *pathState) arcTo(cmd byte) error {
	for {
		rx, ry, rot, large, sweep, x, y, err := ps.sc.scanArc()
		if err != nil {
			return err
		}
		if cmd == 'a' {
			x += ps.curX
			y += ps.curY
		}
		ps.requireFigure(ps.curX, ps.curY)
		ps.sink.AddArc(rx, ry, rot, large, sweep, x, y)
		ps.curX, ps.curY = x, y
		ps.lastCmd = cmd
		ps.ctrlValid = false
		if !ps.sc.peekNumber() {
			return nil
		}
	}
}

// requireFigure opens an implicit figure at the current point if a drawing
// command appears while no figure is open, which happens after a closepath
// (the current point is then the closed figure's start point). A `d` string
// that does not begin with a moveto is rejected earlier, by run.
func (ps *pathState) requireFigure(_, _ float64) {
	if !ps.inFigure {
		ps.beginFigure(ps.curX, ps.curY)
	}
}

// reflectedControl computes the reflection of the last control point about
// the current point, as required by the smooth curve commands (T/t, S/s).
// The reflection only applies when the previous command was one of the
// matching family (quadCmds for T, cubicCmds for S); otherwise the control
// point coincides with the current point.
func (ps *pathState) reflectedControl(matching ...byte) (float64, float64) {
	if !ps.ctrlValid || !byteIn(ps.lastCmd, matching) {
		return ps.curX, ps.curY
	}
	return 2*ps.curX - ps.ctrlX, 2*ps.curY - ps.ctrlY
}

func byteIn(b byte, set []byte) bool {
	for _, c := range set {
		if b == c {
			return true
		}
	}
	return false
}

// pathScanner tokenizes the `d` string: a normalization pass folds commas,
// tabs, CR and LF into spaces and a separator is logically inserted before
// any sign character, so runs of numbers like "1-2.5.5" scan as three
// distinct tokens (spec.md §4.P).
type pathScanner struct {
	s   string
	pos int
}

func newPathScanner(d string) *pathScanner {
	return &pathScanner{s: d}
}

func (sc *pathScanner) atEnd() bool {
	return sc.pos >= len(sc.s)
}

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',' {
			sc.pos++
			continue
		}
		break
	}
}

func (sc *pathScanner) scanCommand() (byte, bool) {
	sc.skipSeparators()
	if sc.atEnd() {
		return 0, false
	}
	c := sc.s[sc.pos]
	if isCommandLetter(c) {
		sc.pos++
		return c, true
	}
	return 0, false
}

func isCommandLetter(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Q', 'q', 'T', 't',
		'C', 'c', 'S', 's', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// peekNumber reports whether the remaining input (after separators) starts
// a number, which signals implicit continuation of the previous command.
func (sc *pathScanner) peekNumber() bool {
	pos := sc.pos
	for pos < len(sc.s) {
		c := sc.s[pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',' {
			pos++
			continue
		}
		break
	}
	if pos >= len(sc.s) {
		return false
	}
	c := sc.s[pos]
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func (sc *pathScanner) scanFloat() (float64, error) {
	sc.skipSeparators()
	start := sc.pos
	seenDot, seenDigit := false, false
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
		sc.pos++
	}
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
			sc.pos++
		case c == '.' && !seenDot:
			seenDot = true
			sc.pos++
		case (c == 'e' || c == 'E') && seenDigit:
			sc.pos++
			if sc.pos < len(sc.s) && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
				sc.pos++
			}
		default:
			goto done
		}
	}
done:
	if !seenDigit {
		return 0, fmt.Errorf("svgpath: expected a number at position %d", start)
	}
	return strconv.ParseFloat(sc.s[start:sc.pos], 64)
}

// scanFlag reads a single SVG path flag (0 or 1), which the arc command
// allows to run directly against the next token without a separator.
func (sc *pathScanner) scanFlag() (bool, error) {
	sc.skipSeparators()
	if sc.atEnd() {
		return false, fmt.Errorf("svgpath: expected an arc flag at position %d", sc.pos)
	}
	c := sc.s[sc.pos]
	if c != '0' && c != '1' {
		return false, fmt.Errorf("svgpath: invalid arc flag %q at position %d", c, sc.pos)
	}
	sc.pos++
	return c == '1', nil
}

func (sc *pathScanner) scanPair() (float64, float64, error) {
	x, err := sc.scanFloat()
	if err != nil {
		return 0, 0, err
	}
	y, err := sc.scanFloat()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (sc *pathScanner) scanQuad() (a, b, c, d float64, err error) {
	if a, b, err = sc.scanPair(); err != nil {
		return
	}
	c, d, err = sc.scanPair()
	return
}

func (sc *pathScanner) scanCubic() (a, b, c, d, e, f float64, err error) {
	if a, b, err = sc.scanPair(); err != nil {
		return
	}
	if c, d, err = sc.scanPair(); err != nil {
		return
	}
	e, f, err = sc.scanPair()
	return
}

func (sc *pathScanner) scanArc() (rx, ry, rot float64, large, sweep bool, x, y float64, err error) {
	if rx, err = sc.scanFloat(); err != nil {
		return
	}
	if ry, err = sc.scanFloat(); err != nil {
		return
	}
	if rot, err = sc.scanFloat(); err != nil {
		return
	}
	if large, err = sc.scanFlag(); err != nil {
		return
	}
	if sweep, err = sc.scanFlag(); err != nil {
		return
	}
	x, y, err = sc.scanPair()
	return
}
