// Package ggsurface implements a surface on top of a gogpu/gg Context.
//
// gg saves only the transform, clip and mask on Push, so the paint
// state is tracked with a surface.Stack and sent to the context
// right before each fill or stroke.
package ggsurface

import (
	"image"
	"image/color"
	"io"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
	"github.com/gogpu/gg"
	"golang.org/x/image/math/fixed"
)

var _ surface.Surface = (*Surface)(nil) // assert interface conformance

// Surface wraps a gg.Context.
type Surface struct {
	dc    *gg.Context
	stack *surface.Stack
}

// New returns a surface backed by a fresh context.
func New(width, height int) *Surface {
	return Wrap(gg.NewContext(width, height))
}

// Wrap returns a surface drawing into `dc`.
func Wrap(dc *gg.Context) *Surface {
	return &Surface{dc: dc, stack: surface.NewStack()}
}

// NewSurface is a document surface factory.
func NewSurface(width, height int) surface.Surface { return New(width, height) }

// Context returns the underlying gg context.
func (s *Surface) Context() *gg.Context { return s.dc }

// Image returns the rendered image.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// WritePNG encodes the rendered image.
func (s *Surface) WritePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// Close releases the context resources.
func (s *Surface) Close() error { return s.dc.Close() }

func (s *Surface) Width() int  { return s.dc.Width() }
func (s *Surface) Height() int { return s.dc.Height() }

func (s *Surface) Save() {
	s.stack.Save()
	s.dc.Push()
}

func (s *Surface) Restore() {
	if s.stack.Restore() {
		s.dc.Pop()
	}
}

func (s *Surface) State() surface.State { return s.stack.Current }

// ClearRect resets the pixels of `r` directly in the target pixmap.
func (s *Surface) ClearRect(r geom.Rectangle) {
	off := s.stack.Current.Offset
	r.X += off.X
	r.Y += off.Y
	target := r.Image().Intersect(image.Rect(0, 0, s.dc.Width(), s.dc.Height()))
	pix := s.dc.ResizeTarget()
	for y := target.Min.Y; y < target.Max.Y; y++ {
		for x := target.Min.X; x < target.Max.X; x++ {
			pix.SetPixel(x, y, gg.Transparent)
		}
	}
}

func (s *Surface) SetFillColor(c color.Color) { s.stack.Current.FillColor = c }

func (s *Surface) SetStrokeColor(c color.Color) { s.stack.Current.StrokeColor = c }

func (s *Surface) SetLineWidth(w float64) { s.stack.Current.LineWidth = w }

func (s *Surface) SetStrokeOptions(options surface.StrokeOptions) {
	s.stack.Current.Stroke = options.Resolve()
}

func (s *Surface) SetWinding(useNonZeroWinding bool) {
	s.stack.Current.UseNonZeroWinding = useNonZeroWinding
}

func (s *Surface) Translate(dx, dy float64) {
	s.stack.Current.Offset = s.stack.Current.Offset.Add(geom.Point{X: dx, Y: dy})
}

func (s *Surface) point(a fixed.Point26_6) (float64, float64) {
	return svgpath.FromFixed(s.stack.Current.Apply(a))
}

func (s *Surface) ClearPath() { s.dc.ClearPath() }

func (s *Surface) Start(a fixed.Point26_6) { s.dc.MoveTo(s.point(a)) }

func (s *Surface) Line(b fixed.Point26_6) { s.dc.LineTo(s.point(b)) }

func (s *Surface) QuadBezier(b, c fixed.Point26_6) {
	bx, by := s.point(b)
	cx, cy := s.point(c)
	s.dc.QuadraticTo(bx, by, cx, cy)
}

func (s *Surface) CubeBezier(b, c, d fixed.Point26_6) {
	bx, by := s.point(b)
	cx, cy := s.point(c)
	dx, dy := s.point(d)
	s.dc.CubicTo(bx, by, cx, cy, dx, dy)
}

func (s *Surface) Stop(closeLoop bool) {
	if closeLoop {
		s.dc.ClosePath()
	}
}

func (s *Surface) Fill() {
	st := s.stack.Current
	if st.FillColor == nil {
		return
	}
	if st.UseNonZeroWinding {
		s.dc.SetFillRule(gg.FillRuleNonZero)
	} else {
		s.dc.SetFillRule(gg.FillRuleEvenOdd)
	}
	s.dc.SetColor(st.FillColor)
	if err := s.dc.FillPreserve(); err != nil {
		gg.Logger().Warn("ggsurface: fill failed", "err", err)
	}
}

func lineCap(c surface.CapMode) gg.LineCap {
	switch c {
	case surface.SquareCap:
		return gg.LineCapSquare
	case surface.RoundCap, surface.CubicCap, surface.QuadraticCap:
		return gg.LineCapRound
	default:
		return gg.LineCapButt
	}
}

func lineJoin(j surface.JoinMode) gg.LineJoin {
	switch j {
	case surface.Bevel:
		return gg.LineJoinBevel
	case surface.Round, surface.Arc, surface.ArcClip:
		return gg.LineJoinRound
	default:
		return gg.LineJoinMiter
	}
}

func (s *Surface) Stroke() {
	st := s.stack.Current
	if st.StrokeColor == nil || st.LineWidth <= 0 {
		return
	}
	options := st.Stroke
	s.dc.SetLineWidth(st.LineWidth)
	s.dc.SetLineCap(lineCap(options.Join.TrailLineCap))
	s.dc.SetLineJoin(lineJoin(options.Join.LineJoin))
	s.dc.SetMiterLimit(options.Join.MiterLimit)
	if len(options.Dash.Dash) != 0 {
		s.dc.SetDash(options.Dash.Dash...)
		s.dc.SetDashOffset(options.Dash.DashOffset)
	} else {
		s.dc.ClearDash()
	}
	s.dc.SetColor(st.StrokeColor)
	if err := s.dc.StrokePreserve(); err != nil {
		gg.Logger().Warn("ggsurface: stroke failed", "err", err)
	}
}
