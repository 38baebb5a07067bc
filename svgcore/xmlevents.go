package svgcore

import (
	"encoding/xml"
	"io"

	"golang.org/x/net/html/charset"
)

// EventKind discriminates the XML token stream the builder consumes
// (spec.md §6): StartElement, Text, EndElement and Eof, a deliberately
// small contract compared to the full encoding/xml token set.
type EventKind uint8

const (
	EventStart EventKind = iota
	EventText
	EventEnd
	EventEOF
)

// Attr is a single XML attribute, copied into owned storage rather than
// the decoder's borrowed buffers (spec.md's design note on copying XML
// borrowed strings).
type Attr struct {
	Name  string
	Value string
}

// Event is one token from the tokenizer contract.
type Event struct {
	Kind    EventKind
	Name    string // local name, namespace prefix stripped
	Attrs   []Attr // only set for EventStart
	Text    string // only set for EventText
}

// Tokenizer is the external collaborator producing the event stream; the
// builder (B) only depends on this interface, never on encoding/xml
// directly, so a non-XML or streaming source could stand in.
type Tokenizer interface {
	Next() (Event, error)
}

// xmlTokenizer adapts encoding/xml.Decoder to Tokenizer, wiring in
// golang.org/x/net/html/charset exactly as the teacher's ReadIconStream
// does so documents declaring non-UTF-8 encodings still parse.
type xmlTokenizer struct {
	dec *xml.Decoder
}

// NewXMLTokenizer wraps r as a Tokenizer.
func NewXMLTokenizer(r io.Reader) Tokenizer {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &xmlTokenizer{dec: dec}
}

func (t *xmlTokenizer) Next() (Event, error) {
	for {
		tok, err := t.dec.Token()
		if err != nil {
			if err == io.EOF {
				return Event{Kind: EventEOF}, nil
			}
			return Event{}, newErr(Xml, "reading xml token", err)
		}
		switch se := tok.(type) {
		case xml.StartElement:
			attrs := make([]Attr, len(se.Attr))
			for i, a := range se.Attr {
				attrs[i] = Attr{Name: a.Name.Local, Value: a.Value}
			}
			return Event{Kind: EventStart, Name: se.Name.Local, Attrs: attrs}, nil
		case xml.EndElement:
			return Event{Kind: EventEnd, Name: se.Name.Local}, nil
		case xml.CharData:
			s := string(se)
			if isAllSVGSpace(s) {
				continue
			}
			return Event{Kind: EventText, Text: s}, nil
		default:
			continue
		}
	}
}

func isAllSVGSpace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return false
		}
	}
	return true
}
