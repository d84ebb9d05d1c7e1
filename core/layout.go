package core

// RenderScale is the fixed scale pages are rasterized at. Layout.Cover is
// expressed in pixels of a page rendered at this scale.
const RenderScale = 2.0

// Layout is the table of hand-tuned rectangles for one newsletter template.
// Field rectangles are in document units; the cover rectangle is applied to
// the rendered cover in rasterizer pixel space.
type Layout struct {
	// FieldPage holds the date, description and issue fields.
	FieldPage   int  `json:"fieldPage" yaml:"fieldPage"`
	Date        Rect `json:"date" yaml:"date"`
	Description Rect `json:"description" yaml:"description"`
	Issue       Rect `json:"issue" yaml:"issue"`

	EditorialPage int  `json:"editorialPage" yaml:"editorialPage"`
	Editorial     Rect `json:"editorial" yaml:"editorial"`

	// CoverPage is rendered and cropped to Cover for the cover image.
	CoverPage int  `json:"coverPage" yaml:"coverPage"`
	Cover     Rect `json:"cover" yaml:"cover"`
}

// DefaultLayout returns the layout of the standard newsletter template.
func DefaultLayout() Layout {
	return Layout{
		FieldPage:     1,
		Date:          Rect{X: 785, Y: 97, Width: 373, Height: 120},
		Description:   Rect{X: 49, Y: 1540, Width: 1093, Height: 100},
		Issue:         Rect{X: 936, Y: 244, Width: 193, Height: 73},
		EditorialPage: 3,
		Editorial:     Rect{X: 80, Y: 200, Width: 1064, Height: 800},
		CoverPage:     1,
		Cover:         Rect{X: 60, Y: 333, Width: 1068, Height: 1201},
	}
}
