package svgcore

import (
	"log"
	"strings"

	"github.com/gosvgcore/svgcore/svgpath"
)

// Builder consumes an XML event stream and produces a scene tree plus the
// id index (spec.md's B component). It owns no rendering knowledge beyond
// what it needs to build path geometry eagerly (the one piece of backend
// work spec.md §4.B asks the builder to do, since geometry depends only
// on the `d` string, never on cross-document references) and to resolve
// DPI-aware lengths against the viewport each element was declared in.
type Builder struct {
	tok    Tokenizer
	device Device
	dpi    float64
	logger *log.Logger

	root   *Element
	byID   map[string]*Element
	defIDs map[string]bool

	stack []*frame
}

type frame struct {
	el            *Element
	childStyle    Style
	viewportW     float64
	viewportH     float64
	textBuilder   *strings.Builder
}

// NewBuilder constructs a Builder reading events from tok and using device
// for DPI and the eager path-geometry build. A nil logger discards
// diagnostics, matching the teacher's WarnErrorMode default of logging to
// a caller-supplied sink (tests pass one writing to io.Discard).
func NewBuilder(tok Tokenizer, device Device, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io_Discard{}, "", 0)
	}
	dx, dy := device.DPI()
	return &Builder{
		tok:    tok,
		device: device,
		dpi:    (dx + dy) / 2,
		logger: logger,
		byID:   map[string]*Element{},
		defIDs: map[string]bool{},
	}
}

// io_Discard avoids importing io just for io.Discard's Writer; kept tiny
// and local since the builder needs no other io facility.
type io_Discard struct{}

func (io_Discard) Write(p []byte) (int, error) { return len(p), nil }

// Build runs the event loop to completion and returns the finished Image.
func (b *Builder) Build() (*Image, error) {
	for {
		ev, err := b.tok.Next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case EventStart:
			if err := b.handleStart(ev); err != nil {
				return nil, err
			}
		case EventText:
			if err := b.handleText(ev.Text); err != nil {
				return nil, err
			}
		case EventEnd:
			b.handleEnd()
		case EventEOF:
			if len(b.stack) > 0 {
				return nil, newErr(Malformed, "document ended with an open element", nil)
			}
			if b.root == nil {
				return nil, newErr(Malformed, "document contains no recognized root element", nil)
			}
			w, h := b.device.Size()
			if b.root.Svg.HasViewBox {
				w, h = b.root.Svg.ViewBox.W, b.root.Svg.ViewBox.H
			}
			defsByID := make(map[string]*Element, len(b.defIDs))
			for id := range b.defIDs {
				defsByID[id] = b.byID[id]
			}
			return &Image{Root: b.root, ByID: b.byID, DefsByID: defsByID, Width: w, Height: h, DPI: b.dpi}, nil
		}
	}
}

func (b *Builder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) parentStyle() Style {
	if f := b.top(); f != nil {
		return f.childStyle
	}
	return DefaultStyle
}

func (b *Builder) viewport() (float64, float64) {
	if f := b.top(); f != nil {
		return f.viewportW, f.viewportH
	}
	w, h := b.device.Size()
	return w, h
}

func (b *Builder) handleText(text string) error {
	f := b.top()
	if f == nil {
		return newErr(Malformed, "text content outside any element", nil)
	}
	if f.el.Kind != KindText {
		return nil
	}
	if f.textBuilder == nil {
		f.textBuilder = &strings.Builder{}
	}
	f.textBuilder.WriteString(svgpath.CollapseWhiteSpace(text))
	return nil
}

func (b *Builder) handleEnd() {
	f := b.top()
	if f == nil {
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
	if f.textBuilder != nil {
		f.el.Text.Content = f.textBuilder.String()
	}
	computeBBox(f.el)
}

func (b *Builder) handleStart(ev Event) error {
	attrs := attrMap(ev.Attrs)
	name := strings.ToLower(ev.Name)
	vw, vh := b.viewport()
	parentStyle := b.parentStyle()

	el, childVW, childVH, skip := b.construct(name, attrs, vw, vh)
	if skip {
		b.logger.Printf("svgcore: skipping %s: missing required attribute", name)
		return nil
	}

	el.ID = attrs["id"]
	if el.ID != "" {
		b.byID[el.ID] = el
		if p := b.top(); p != nil && (p.el.Kind == KindDefs || p.el.Kind == KindSymbol) {
			b.defIDs[el.ID] = true
		}
	}

	style, err := mergeStyle(parentStyle, ev.Attrs, b.dpi, vw, vh)
	if err != nil {
		b.logger.Printf("svgcore: %s: %v, falling back to inherited style", name, err)
		style = parentStyle
	}
	el.Style = style

	if t, ok := attrs["transform"]; ok {
		m, terr := svgpath.ParseTransform(t)
		if terr != nil {
			// SV-BAD-TRANSFORM: the element is still created, its
			// transform is simply absent.
			b.logger.Printf("svgcore: %s: malformed transform %q dropped: %v", name, t, terr)
		} else {
			if el.HasTransform {
				el.Transform = el.Transform.Mult(m)
			} else {
				el.Transform = m
			}
			el.HasTransform = true
		}
	}

	if parent := b.top(); parent != nil {
		parent.el.Children = append(parent.el.Children, el)
	} else {
		b.root = el
	}

	b.stack = append(b.stack, &frame{el: el, childStyle: style, viewportW: childVW, viewportH: childVH})
	return nil
}

func attrMap(attrs []Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[strings.ToLower(a.Name)] = a.Value
	}
	return m
}
