// Package decode implements core.Decoder on top of github.com/ledongthuc/pdf.
//
// The library reports text one glyph at a time; pages returned here merge
// those glyphs into runs (see runs.go) so each core.Fragment carries a word
// or phrase, the way a text layer is usually consumed.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gaurav-prasanna/issuepipe/core"
	"github.com/ledongthuc/pdf"
)

// PDFDecoder decodes PDF bytes.
type PDFDecoder struct{}

// New creates a PDFDecoder.
func New() *PDFDecoder {
	return &PDFDecoder{}
}

// Decode parses data as a PDF document.
func (d *PDFDecoder) Decode(data []byte) (doc core.Document, err error) {
	if len(data) == 0 {
		return nil, errors.New("empty input")
	}
	// The library panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	return &Document{reader: reader}, nil
}

// Document is a decoded PDF backed by a pdf.Reader.
type Document struct {
	reader *pdf.Reader
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	if d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// Page decodes page n (1-based): its size, text runs and ruled boxes.
func (d *Document) Page(n int) (page core.Page, err error) {
	if n < 1 || n > d.NumPages() {
		return nil, fmt.Errorf("page %d of %d: %w", n, d.NumPages(), core.ErrPageOutOfRange)
	}
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: %w", n, core.ErrPageOutOfRange)
	}

	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("decoding page %d: %v", n, r)
		}
	}()

	box := mediaBox(p.V)
	width, height := box.Width, box.Height
	content := p.Content()

	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyph{
			font: t.Font,
			size: t.FontSize,
			x:    t.X - box.X,
			y:    t.Y - box.Y,
			w:    t.W,
			s:    t.S,
		})
	}

	// Producers may emit re with a negative height, so Min/Max are not
	// ordered.
	boxes := make([]core.Rect, 0, len(content.Rect))
	for _, r := range content.Rect {
		boxes = append(boxes, core.Rect{
			X:      math.Min(r.Min.X, r.Max.X) - box.X,
			Y:      math.Min(r.Min.Y, r.Max.Y) - box.Y,
			Width:  math.Abs(r.Max.X - r.Min.X),
			Height: math.Abs(r.Max.Y - r.Min.Y),
		})
	}

	frags := coalesce(glyphs)
	slog.Debug("decoded page",
		"page", n,
		"glyphs", len(glyphs),
		"fragments", len(frags),
		"width", width,
		"height", height,
	)

	return &Page{
		number:    n,
		width:     width,
		height:    height,
		fragments: frags,
		boxes:     boxes,
	}, nil
}

// Close releases the reader. The document is unusable afterwards.
func (d *Document) Close() error {
	d.reader = nil
	return nil
}

// Default page size (US Letter, points) for pages without a usable MediaBox.
const (
	defaultWidth  = 612
	defaultHeight = 792
)

// mediaBox returns the nearest MediaBox, walking up the page tree since the
// entry is inheritable. X and Y hold its lower-left corner; page coordinates
// are measured from there.
func mediaBox(v pdf.Value) core.Rect {
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
			x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
			r := core.Rect{
				X:      math.Min(x0, x1),
				Y:      math.Min(y0, y1),
				Width:  math.Abs(x1 - x0),
				Height: math.Abs(y1 - y0),
			}
			if r.Width > 0 && r.Height > 0 {
				return r
			}
		}
		v = v.Key("Parent")
	}
	return core.Rect{Width: defaultWidth, Height: defaultHeight}
}

// Page is one decoded page.
type Page struct {
	number        int
	width, height float64
	fragments     []core.Fragment
	boxes         []core.Rect
}

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.number }

// Size returns the page size in document units.
func (p *Page) Size() (float64, float64) { return p.width, p.height }

// Fragments returns the text runs in content-stream order, positioned
// relative to the MediaBox's lower-left corner.
func (p *Page) Fragments() []core.Fragment { return p.fragments }

// Boxes returns the rectangles drawn with the re operator.
func (p *Page) Boxes() []core.Rect { return p.boxes }
