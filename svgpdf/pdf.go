// Implements a PDF surface, writing a content stream
// with github.com/benoitkugler/pdf.
package svgpdf

import (
	"image/color"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"golang.org/x/image/math/fixed"
)

var _ surface.Surface = (*Surface)(nil) // assert interface conformance

// Surface writes the drawing operations as a one page PDF.
// The y axis points downward, as for the raster surfaces.
//
// PDF content may not be erased: clearing a rectangle covering the whole
// page discards the page content, other clears are ignored.
type Surface struct {
	width, height int
	page          contentstream.Appearance

	stack *surface.Stack
	path  svgpath.Path

	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState

	paintOps int // number of fill and stroke operators written on the page
}

// New returns a surface for an empty page of the given dimensions.
func New(width, height int) *Surface {
	s := &Surface{
		width: width, height: height,
		stack:               surface.NewStack(),
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
	s.resetPage()
	return s
}

// NewSurface is a document surface factory.
func NewSurface(width, height int) surface.Surface { return New(width, height) }

// resetPage starts a new content stream, flipping the y axis
// and re-opening the pending saved states.
func (s *Surface) resetPage() {
	s.page = contentstream.NewAppearance(float64(s.width), float64(s.height))
	s.page.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, float64(s.height)}},
	)
	for range s.stack.Depth() {
		s.page.Ops(contentstream.OpSave{})
	}
	s.paintOps = 0
	// the ExtGState resources belong to the page
	clear(s.fillOpacityStates)
	clear(s.strokeOpacityStates)
}

// PaintOps returns the number of fill and stroke operations
// written since the last page reset.
func (s *Surface) PaintOps() int { return s.paintOps }

// WriteFile closes the pending states and writes the page
// as a PDF file. The surface should not be used afterwards.
func (s *Surface) WriteFile(name string) error {
	for range s.stack.Depth() + 1 {
		s.page.Ops(contentstream.OpRestore{})
	}
	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, s.page.ToPageObject(true))
	return doc.WriteFile(name, nil)
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

func (s *Surface) Save() {
	s.stack.Save()
	s.page.Ops(contentstream.OpSave{})
}

func (s *Surface) Restore() {
	if s.stack.Restore() {
		s.page.Ops(contentstream.OpRestore{})
	}
}

func (s *Surface) State() surface.State { return s.stack.Current }

func (s *Surface) ClearRect(r geom.Rectangle) {
	off := s.stack.Current.Offset
	r.X += off.X
	r.Y += off.Y
	page := geom.Create(0, 0, float64(s.width), float64(s.height))
	if r.Contains(page.Point()) && r.Contains(geom.Point{X: page.Right(), Y: page.Bottom()}) {
		s.resetPage()
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

func (s *Surface) ClearPath() { s.path.Clear() }

func (s *Surface) Start(a fixed.Point26_6) { s.path.Start(s.stack.Current.Apply(a)) }

func (s *Surface) Line(b fixed.Point26_6) { s.path.Line(s.stack.Current.Apply(b)) }

func (s *Surface) QuadBezier(b, c fixed.Point26_6) {
	st := s.stack.Current
	s.path.QuadBezier(st.Apply(b), st.Apply(c))
}

func (s *Surface) CubeBezier(b, c, d fixed.Point26_6) {
	st := s.stack.Current
	s.path.CubeBezier(st.Apply(b), st.Apply(c), st.Apply(d))
}

func (s *Surface) Stop(closeLoop bool) { s.path.Stop(closeLoop) }

// writePath emits the current path. PDF has no quadratic
// operator, so quadratic curves are elevated to cubic ones.
func (s *Surface) writePath() {
	var cx, cy float64 // current point
	for _, op := range s.path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			cx, cy = svgpath.FromFixed(fixed.Point26_6(op))
			s.page.Ops(contentstream.OpMoveTo{X: cx, Y: cy})
		case svgpath.LineTo:
			cx, cy = svgpath.FromFixed(fixed.Point26_6(op))
			s.page.Ops(contentstream.OpLineTo{X: cx, Y: cy})
		case svgpath.QuadTo:
			qx, qy := svgpath.FromFixed(op[0])
			x, y := svgpath.FromFixed(op[1])
			s.page.Ops(contentstream.OpCubicTo{
				X1: cx + 2./3*(qx-cx), Y1: cy + 2./3*(qy-cy),
				X2: x + 2./3*(qx-x), Y2: y + 2./3*(qy-y),
				X3: x, Y3: y,
			})
			cx, cy = x, y
		case svgpath.CubicTo:
			x1, y1 := svgpath.FromFixed(op[0])
			x2, y2 := svgpath.FromFixed(op[1])
			cx, cy = svgpath.FromFixed(op[2])
			s.page.Ops(contentstream.OpCubicTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X3: cx, Y3: cy})
		case svgpath.Close:
			s.page.Ops(contentstream.OpClosePath{})
		}
	}
}

// opaque returns the color without its alpha channel, and the alpha as a fraction.
func opaque(c color.Color) (color.Color, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha := float64(n.A) / 255
	n.A = 0xff
	return n, alpha
}

// cache the opacity states
func (s *Surface) setOpacity(cache map[float64]*model.GraphicState, opacity float64, fill bool) {
	gs, ok := cache[opacity]
	if !ok {
		gs = &model.GraphicState{BM: []model.Name{"Normal"}}
		if fill {
			gs.Ca = model.ObjFloat(opacity)
		} else {
			gs.CA = model.ObjFloat(opacity)
		}
		cache[opacity] = gs
	}
	name := s.page.AddExtGState(gs)
	s.page.Ops(contentstream.OpSetExtGState{Dict: name})
}

func (s *Surface) Fill() {
	st := s.stack.Current
	if st.FillColor == nil || len(s.path) == 0 {
		return
	}
	c, opacity := opaque(st.FillColor)
	s.page.SetColorFill(c)
	s.setOpacity(s.fillOpacityStates, opacity, true)
	s.writePath()
	if st.UseNonZeroWinding {
		s.page.Ops(contentstream.OpFill{})
	} else {
		s.page.Ops(contentstream.OpEOFill{})
	}
	s.paintOps++
}

func capStyle(c surface.CapMode) uint8 {
	switch c {
	case surface.RoundCap, surface.CubicCap, surface.QuadraticCap:
		return 1
	case surface.SquareCap:
		return 2
	default: // butt
		return 0
	}
}

func joinStyle(j surface.JoinMode) uint8 {
	switch j {
	case surface.Round, surface.Arc, surface.ArcClip:
		return 1
	case surface.Bevel:
		return 2
	default: // miter
		return 0
	}
}

func (s *Surface) Stroke() {
	st := s.stack.Current
	if st.StrokeColor == nil || st.LineWidth <= 0 || len(s.path) == 0 {
		return
	}
	options := st.Stroke
	c, opacity := opaque(st.StrokeColor)
	s.page.SetColorStroke(c)
	s.setOpacity(s.strokeOpacityStates, opacity, false)
	s.page.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: options.Dash.Dash,
			Phase: options.Dash.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: st.LineWidth},
		contentstream.OpSetLineCap{Style: capStyle(options.Join.TrailLineCap)},
		contentstream.OpSetLineJoin{Style: joinStyle(options.Join.LineJoin)},
		contentstream.OpSetMiterLimit{Limit: options.Join.MiterLimit},
	)
	s.writePath()
	s.page.Ops(contentstream.OpStroke{})
	s.paintOps++
}
