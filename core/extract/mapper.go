package extract

import "github.com/gaurav-prasanna/issuepipe/core"

// ToViewport converts a document-space rectangle into the pixel space of vp.
// Document y grows upward from the bottom of the page, pixel y grows downward
// from the top, so the y axis is flipped and the box is anchored at its
// top-left corner. Values are not rounded.
func ToViewport(r core.Rect, vp core.Viewport) core.Rect {
	s := vp.Scale
	px := core.Rect{
		X:      r.X * s,
		Y:      (vp.Height/s - r.Y) * s,
		Width:  r.Width * s,
		Height: r.Height * s,
	}
	px.Y -= px.Height
	return px
}

// FromViewport is the inverse of ToViewport.
func FromViewport(px core.Rect, vp core.Viewport) core.Rect {
	s := vp.Scale
	return core.Rect{
		X:      px.X / s,
		Y:      vp.Height/s - (px.Y+px.Height)/s,
		Width:  px.Width / s,
		Height: px.Height / s,
	}
}
