package svgcore

import (
	"io"
	"log"
	"os"
)

// Parse reads the SVG document at path and runs the full B -> R -> A
// pipeline against device, returning the Image the renderer can later
// draw with Render (spec.md §6's public surface).
func Parse(path string, device Device) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newErr(Io, "opening "+path, err)
	}
	defer f.Close()
	return ParseReader(f, device, nil)
}

// ParseReader is Parse taking an already-open reader, used by tests and
// callers that already hold the document in memory. A nil logger
// discards diagnostics emitted for recoverable errors.
func ParseReader(r io.Reader, device Device, logger *log.Logger) (*Image, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tok := NewXMLTokenizer(r)
	b := NewBuilder(tok, device, logger)
	img, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := resolveReferences(img, logger); err != nil {
		return nil, err
	}
	if err := bindAssets(img, device, logger); err != nil {
		return nil, err
	}
	return img, nil
}
