package svgpath

import (
	"fmt"
	"math"
	"strings"
)

var errParamMismatch = fmt.Errorf("svgpath: transform function called with wrong number of arguments")

// ParseTransform implements the `transform` attribute grammar (spec.md
// §4.T): a sequence of `name(args)` functions, composed left to right so
// that the rightmost function in the source is applied to a point first
// (matches the worked example in spec.md §8 property 5: `translate(10,0)
// rotate(90)` maps (1,0) to (10,1), i.e. rotate happens before translate).
// An unrecognized function name is ignored; a malformed function (missing
// parenthesis, wrong argument count) fails the whole string.
func ParseTransform(v string) (Matrix2D, error) {
	m := Identity
	s := v
	for {
		s = strings.TrimLeft(s, " \t\r\n,")
		if s == "" {
			break
		}
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return m, fmt.Errorf("svgpath: malformed transform function %q", s)
		}
		close := strings.IndexByte(s, ')')
		if close < 0 || close < open {
			return m, fmt.Errorf("svgpath: malformed transform function %q", s)
		}
		name := strings.ToLower(TrimSpace(s[:open]))
		argsStr := s[open+1 : close]
		args, err := ScanNumbers(argsStr)
		if err != nil {
			return m, fmt.Errorf("svgpath: invalid arguments in %q: %w", s[:close+1], err)
		}
		m, err = applyTransformFunc(m, name, args)
		if err != nil {
			return m, err
		}
		s = s[close+1:]
	}
	return m, nil
}

func applyTransformFunc(m Matrix2D, name string, args []float64) (Matrix2D, error) {
	switch name {
	case "translate":
		switch len(args) {
		case 1:
			return m.Translate(args[0], 0), nil
		case 2:
			return m.Translate(args[0], args[1]), nil
		}
		return m, errParamMismatch
	case "scale":
		switch len(args) {
		case 1:
			return m.Scale(args[0], args[0]), nil
		case 2:
			return m.Scale(args[0], args[1]), nil
		}
		return m, errParamMismatch
	case "rotate":
		switch len(args) {
		case 1:
			return m.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			return m.Translate(args[1], args[2]).
				Rotate(args[0] * math.Pi / 180).
				Translate(-args[1], -args[2]), nil
		}
		return m, errParamMismatch
	case "skewx":
		if len(args) != 1 {
			return m, errParamMismatch
		}
		return m.SkewX(args[0] * math.Pi / 180), nil
	case "skewy":
		if len(args) != 1 {
			return m, errParamMismatch
		}
		return m.SkewY(args[0] * math.Pi / 180), nil
	case "skew":
		// Non-standard two-axis extension the reference backend exposed;
		// treated as an accepted extension, not part of the SVG grammar.
		if len(args) != 2 {
			return m, errParamMismatch
		}
		return m.Skew(args[0]*math.Pi/180, args[1]*math.Pi/180), nil
	case "matrix":
		if len(args) != 6 {
			return m, errParamMismatch
		}
		return m.Mult(Matrix2D{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}), nil
	default:
		// Unrecognized function names are ignored rather than failing the
		// whole transform string.
		return m, nil
	}
}
