// Package surface defines the drawing context a document paints into.
//
// A Surface behaves like a canvas: it holds a current path, built with
// the svgpath.Adder methods, and a paint state (colors, line width,
// stroke options, winding rule, translation) which may be saved and
// restored. Points added to the path are translated by the offset
// current at the time of the call.
//
// Backends are provided in svgraster (rasterx), ggsurface (gogpu/gg)
// and svgpdf (PDF content stream). Recorder keeps every call for
// later inspection.
package surface

import (
	"image/color"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/svgpath"
)

// Surface is the drawing context used by the render pipeline.
// Surfaces are not safe for concurrent use.
type Surface interface {
	svgpath.Adder

	// Width and Height give the raster dimensions.
	Width() int
	Height() int

	// Save pushes a copy of the current paint state.
	Save()
	// Restore pops the last saved paint state. Unbalanced calls
	// are ignored.
	Restore()
	// State returns the current paint state.
	State() State

	// ClearRect resets the pixels covered by `r` to transparent.
	ClearRect(r geom.Rectangle)

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetStrokeOptions(options StrokeOptions)
	SetWinding(useNonZeroWinding bool)
	// Translate moves the origin of the following path commands.
	Translate(dx, dy float64)

	// ClearPath discards the current path.
	ClearPath()
	// Fill paints the interior of the current path with the fill color.
	// The path is preserved.
	Fill()
	// Stroke paints the outline of the current path with the stroke color.
	// The path is preserved.
	Stroke()
}

// Guard restores the state of a surface saved by Save.
type Guard struct {
	s    Surface
	done bool
}

// Save saves the state of `s` and returns the guard which
// will restore it. Typical use is
//
//	g := surface.Save(s)
//	defer g.Restore()
func Save(s Surface) *Guard {
	s.Save()
	return &Guard{s: s}
}

// Restore restores the saved state. Only the first call
// has an effect, so that an explicit Restore may be followed
// by a deferred one.
func (g *Guard) Restore() {
	if g.done {
		return
	}
	g.done = true
	g.s.Restore()
}

// Scoped calls `fn` between a Save and a Restore of `s`.
// The state is restored even if `fn` panics.
func Scoped(s Surface, fn func()) {
	g := Save(s)
	defer g.Restore()
	fn()
}
