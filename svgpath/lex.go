package svgpath

import (
	"strconv"
	"strings"
)

// TrimSpace trims leading and trailing runs of SVG whitespace (space, tab,
// CR, LF), mirroring the teacher's use of strings.TrimSpace for attribute
// values throughout svgicon/parse.go.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSVGSpace)
}

func isSVGSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// CollapseWhiteSpace trims the string and replaces every internal run of
// whitespace with a single space, as required when appending text content
// under the default `white-space: normal` behavior (spec.md §4.B).
func CollapseWhiteSpace(s string) string {
	s = TrimSpace(s)
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if isSVGSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Split splits s on every occurrence of sep, returning non-owning slices
// and including a possibly-empty trailing slice. Unlike strings.FieldsFunc
// (used by SplitOnCommaOrSpace), empty slices between adjacent separators
// are kept.
func Split(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// SplitOnCommaOrSpace returns the list of tokens obtained by splitting s on
// runs of comma and/or whitespace, as the teacher's splitOnCommaOrSpace
// does for `points` and `stroke-dasharray` attributes.
func SplitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || isSVGSpace(r)
	})
}

// ParseFloat parses a single floating point token, trimming surrounding
// whitespace first.
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(TrimSpace(s), 64)
}

// numberScanner extracts successive floating point tokens from a string
// whose numbers may run together without separators other than a sign or
// decimal point, as SVG path/points/viewBox data allows (e.g. "1.5.5" is
// two numbers, "1-2" is two numbers).
type numberScanner struct {
	s   string
	pos int
}

func newNumberScanner(s string) *numberScanner {
	return &numberScanner{s: s}
}

func (n *numberScanner) skipSeparators() {
	for n.pos < len(n.s) {
		c := n.s[n.pos]
		if isSVGSpace(rune(c)) || c == ',' {
			n.pos++
			continue
		}
		break
	}
}

// next scans the next number token, returning ok=false at end of input.
func (n *numberScanner) next() (string, bool) {
	n.skipSeparators()
	if n.pos >= len(n.s) {
		return "", false
	}
	start := n.pos
	seenDot := false
	seenDigit := false
	if n.s[n.pos] == '+' || n.s[n.pos] == '-' {
		n.pos++
	}
	for n.pos < len(n.s) {
		c := n.s[n.pos]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
			n.pos++
		case c == '.' && !seenDot:
			seenDot = true
			n.pos++
		case (c == 'e' || c == 'E') && seenDigit:
			// exponent
			n.pos++
			if n.pos < len(n.s) && (n.s[n.pos] == '+' || n.s[n.pos] == '-') {
				n.pos++
			}
		default:
			goto done
		}
	}
done:
	if !seenDigit {
		return "", false
	}
	return n.s[start:n.pos], true
}

// ScanNumbers extracts the floating point tokens of s, in order,
// tolerating the comma/space/implicit-negative-sign separators SVG's
// numeric micro-grammars use for `points`, `viewBox`, and transform
// argument lists. Scanning stops at the first character that cannot start
// a number; the numbers read before it are returned without an error.
func ScanNumbers(s string) ([]float64, error) {
	sc := newNumberScanner(s)
	var out []float64
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
