// Package extract pulls text out of a rectangular region of a decoded page.
//
// Both the target rectangle and every fragment box are mapped into the same
// viewport before comparison, so the test runs in pixel space exactly as a
// renderer would see the page:
//  1. Map the target once.
//  2. Drop fragments with zero height (markers, not text).
//  3. Keep fragments whose mapped box overlaps the target, in page order.
package extract

import (
	"strings"

	"github.com/gaurav-prasanna/issuepipe/core"
)

// DefaultScale is the viewport scale used for text extraction.
const DefaultScale = 1.0

// Intersects reports whether a and b overlap. Intervals are open, so boxes
// that only share an edge do not intersect.
func Intersects(a, b core.Rect) bool {
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}

// RegionExtractor collects the text inside rectangles of a page.
type RegionExtractor struct {
	Scale float64
}

// New creates a RegionExtractor at DefaultScale.
func New() *RegionExtractor {
	return &RegionExtractor{Scale: DefaultScale}
}

// Fragments returns the fragments of page whose box intersects target, in
// the page's native order. target is in document units.
func (e *RegionExtractor) Fragments(page core.Page, target core.Rect) []core.Fragment {
	vp := core.NewViewport(page, e.scale())
	want := ToViewport(target, vp)

	var hits []core.Fragment
	for _, frag := range page.Fragments() {
		if frag.Height == 0 {
			continue
		}
		if Intersects(ToViewport(frag.Bounds(), vp), want) {
			hits = append(hits, frag)
		}
	}
	return hits
}

// TextInRect joins the text of every fragment inside target with single
// spaces. An empty region yields "".
func (e *RegionExtractor) TextInRect(page core.Page, target core.Rect) string {
	hits := e.Fragments(page, target)
	parts := make([]string, 0, len(hits))
	for _, frag := range hits {
		parts = append(parts, frag.Text)
	}
	return strings.Join(parts, " ")
}

func (e *RegionExtractor) scale() float64 {
	if e == nil || e.Scale <= 0 {
		return DefaultScale
	}
	return e.Scale
}
