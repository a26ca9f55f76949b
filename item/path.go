package item

import (
	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
)

var _ Item = (*Path)(nil)

// HandleSize is the side of the square drawn at each
// segment end point of a selected path.
const HandleSize = 4.

// Path is a styled vector path.
type Path struct {
	Base
	data  svgpath.Path
	style *style.Style
}

// NewPath returns a path item. A nil style uses style.Base.
func NewPath(data svgpath.Path, st *style.Style) *Path {
	if st == nil {
		st = style.New(nil, nil)
	}
	p := &Path{data: data, style: st}
	p.init(p, "")
	return p
}

// NewPathFromData compiles the SVG path data `d`.
func NewPathFromData(d string, st *style.Style) (*Path, error) {
	data, err := svgpath.CompilePath(d)
	if err != nil {
		return nil, err
	}
	return NewPath(data, st), nil
}

// Data returns the geometry of the path.
func (p *Path) Data() svgpath.Path { return p.data }

// SetData replaces the geometry of the path.
func (p *Path) SetData(data svgpath.Path) { p.data = data }

func (p *Path) Style() *style.Style { return p.style }

// SetStyle replaces the style snapshot. A nil style is ignored.
func (p *Path) SetStyle(st *style.Style) {
	if st != nil {
		p.style = st
	}
}

func (p *Path) Bounds() geom.Rectangle { return p.data.Bounds() }

// Draw fills then strokes the path with its style. In selection mode,
// the outline and the handles are painted with the current colors of
// the surface instead.
func (p *Path) Draw(s surface.Surface, params RenderParams) {
	if p.hidden || len(p.data) == 0 {
		return
	}
	g := surface.Save(s)
	defer g.Restore()

	s.Translate(params.Offset.X, params.Offset.Y)
	s.ClearPath()
	p.data.AddTo(s)
	if params.Selection {
		s.Stroke()
		p.drawHandles(s)
		return
	}

	p.style.ApplyTo(s)
	if p.style.HasFill() {
		s.Fill()
	}
	if p.style.HasStroke() {
		s.Stroke()
	}
}

func (p *Path) drawHandles(s surface.Surface) {
	const half = HandleSize / 2
	var handles svgpath.Path
	for _, pt := range p.data.EndPoints() {
		x, y := svgpath.FromFixed(pt)
		handles.AddRect(x-half, y-half, x+half, y+half)
	}
	s.ClearPath()
	handles.AddTo(s)
	s.Fill()
}
