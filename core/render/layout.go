// Package render: layout sheet renderer.
// Draws a template's field rectangles into a PDF using gofpdf, so the
// hand-tuned rectangles can be checked against a real issue by overlaying
// the two. With sample text the sheet doubles as a synthetic newsletter.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/issuepipe/core"
	"github.com/gaurav-prasanna/issuepipe/core/extract"
	"github.com/jung-kurt/gofpdf"
)

// Default sheet size in points, matching the standard template.
const (
	DefaultSheetWidth  = 1190
	DefaultSheetHeight = 1684
)

// Sample is the text placed inside each field rectangle. Empty fields are
// left blank.
type Sample struct {
	Date        string
	Description string
	Issue       string
	Editorial   string
	// Extra holds text per page number, placed near the page's top-left
	// corner outside every field rectangle of the default layout.
	Extra map[int]string
}

// LayoutRenderer renders layout sheets.
type LayoutRenderer struct {
	Width, Height float64
	// Pages is the minimum page count; the sheet always reaches the
	// highest page the layout refers to.
	Pages int
	// Labels prints each field name above its rectangle.
	Labels bool
}

// NewLayoutRenderer creates a LayoutRenderer for the standard sheet size.
func NewLayoutRenderer() *LayoutRenderer {
	return &LayoutRenderer{
		Width:  DefaultSheetWidth,
		Height: DefaultSheetHeight,
		Labels: true,
	}
}

type field struct {
	name string
	page int
	rect core.Rect
	text string
}

// Render draws layout, filled with sample, into PDF bytes.
func (r *LayoutRenderer) Render(layout core.Layout, sample Sample) ([]byte, error) {
	fields := []field{
		{"date", layout.FieldPage, layout.Date, sample.Date},
		{"description", layout.FieldPage, layout.Description, sample.Description},
		{"issue", layout.FieldPage, layout.Issue, sample.Issue},
		{"editorial", layout.EditorialPage, layout.Editorial, sample.Editorial},
		{"cover", layout.CoverPage, r.coverInDocument(layout.Cover), ""},
	}

	pages := r.Pages
	for _, f := range fields {
		if f.page > pages {
			pages = f.page
		}
	}
	for n := range sample.Extra {
		if n > pages {
			pages = n
		}
	}
	if pages < 1 {
		pages = 1
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: r.Width, Ht: r.Height},
	})
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)

	for page := 1; page <= pages; page++ {
		pdf.AddPage()
		for _, f := range fields {
			if f.page != page {
				continue
			}
			r.drawField(pdf, f)
		}
		if extra := sample.Extra[page]; extra != "" {
			pdf.SetFont("Helvetica", "", 12)
			pdf.Text(20, 30, extra)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering layout sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// coverInDocument maps the cover crop, which is in pixels of a page rendered
// at core.RenderScale, back to document units so it is outlined where the
// cover image is actually cut from.
func (r *LayoutRenderer) coverInDocument(cover core.Rect) core.Rect {
	vp := core.Viewport{
		Width:  r.Width * core.RenderScale,
		Height: r.Height * core.RenderScale,
		Scale:  core.RenderScale,
	}
	return extract.FromViewport(cover, vp)
}

// Extension returns the file extension for layout sheets.
func (r *LayoutRenderer) Extension() string {
	return ".pdf"
}

// drawField outlines f and writes its sample text. Layout rectangles grow
// upward from the bottom of the page while gofpdf measures from the top, so
// the top edge of the box sits at Height-(y+h).
func (r *LayoutRenderer) drawField(pdf *gofpdf.Fpdf, f field) {
	top := r.Height - f.rect.Bottom()

	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(1)
	pdf.Rect(f.rect.X, top, f.rect.Width, f.rect.Height, "D")

	if r.Labels {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(200, 0, 0)
		pdf.Text(f.rect.X, top-4, f.name)
		pdf.SetTextColor(0, 0, 0)
	}

	if f.text == "" {
		return
	}
	size := 24.0
	if f.rect.Height < 2*size {
		size = f.rect.Height / 2
	}
	pdf.SetFont("Helvetica", "", size)
	// Baseline at mid-height, inset from the left edge.
	pdf.Text(f.rect.X+8, r.Height-(f.rect.Y+f.rect.Height/2), f.text)
}
