package decode

import (
	"math"
	"strings"

	"github.com/gaurav-prasanna/issuepipe/core"
)

// glyph is one shown character as reported by the PDF library.
type glyph struct {
	font string
	size float64
	x, y float64
	w    float64
	s    string
}

// Thresholds, as fractions of the font size.
const (
	baselineTolerance = 0.2 // max baseline drift inside a run
	wordGap           = 0.2 // gap that gets a space inserted
	runBreakGap       = 1.0 // gap that starts a new run
	backtrackLimit    = 0.5 // leftward jump that starts a new run
)

type run struct {
	font        string
	size        float64
	x, y        float64
	end         float64
	text        strings.Builder
	lastIsSpace bool
}

func (r *run) fragment() core.Fragment {
	width := r.end - r.x
	if width < 0 {
		width = 0
	}
	return core.Fragment{
		Text:      strings.TrimSpace(r.text.String()),
		Transform: [6]float64{r.size, 0, 0, r.size, r.x, r.y},
		Width:     width,
		Height:    r.size,
		FontName:  r.font,
		FontSize:  r.size,
	}
}

// joins reports whether g continues r.
func (r *run) joins(g glyph) bool {
	if g.font != r.font || g.size != r.size {
		return false
	}
	tol := math.Max(r.size, 1)
	if math.Abs(g.y-r.y) > tol*baselineTolerance {
		return false
	}
	gap := g.x - r.end
	return gap <= tol*runBreakGap && gap >= -tol*backtrackLimit
}

func (r *run) add(g glyph) {
	gap := g.x - r.end
	isSpace := strings.TrimSpace(g.s) == ""
	if gap > math.Max(r.size, 1)*wordGap && !r.lastIsSpace && !isSpace {
		r.text.WriteByte(' ')
	}
	r.text.WriteString(g.s)
	r.lastIsSpace = isSpace
	if end := g.x + g.w; end > r.end {
		r.end = end
	}
}

func newRun(g glyph) *run {
	r := &run{font: g.font, size: g.size, x: g.x, y: g.y, end: g.x}
	r.add(g)
	return r
}

// coalesce merges consecutive glyphs that sit on the same baseline in the
// same font into fragments, preserving content-stream order. Runs that hold
// only whitespace are dropped.
func coalesce(glyphs []glyph) []core.Fragment {
	var (
		frags []core.Fragment
		cur   *run
	)
	flush := func() {
		if cur == nil {
			return
		}
		if f := cur.fragment(); f.Text != "" {
			frags = append(frags, f)
		}
		cur = nil
	}

	for _, g := range glyphs {
		if cur != nil && cur.joins(g) {
			cur.add(g)
			continue
		}
		flush()
		cur = newRun(g)
	}
	flush()
	return frags
}
