// Implements an abstract representation of
// vector paths, which can then be consumed
// by painting surfaces.
package svgpath

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/okpaper/geom"
	"golang.org/x/image/math/fixed"
)

// Adder interface for types that can accumlate path commands
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToFixed converts two floats to a fixed point.
func ToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// FromFixed converts a fixed point to floats.
func FromFixed(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64, float32(op[2].X)/64, float32(op[2].Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo adds the Path p to q.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path.
			q.Start(fixed.Point26_6(op))
		case LineTo:
			q.Line(fixed.Point26_6(op))
		case QuadTo:
			q.QuadBezier(op[0], op[1])
		case CubicTo:
			q.CubeBezier(op[0], op[1], op[2])
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}

// Copy returns a deep copy of the path.
func (p Path) Copy() Path {
	return append(Path(nil), p...)
}

// Transform returns a new path, with every point transformed by `m`.
func (p Path) Transform(m geom.Matrix2D) Path {
	out := make(Path, 0, len(p))
	p.AddTo(&matrixAdder{M: m, path: &out})
	return out
}

// EndPoints returns the end point of every segment, including the
// start of each sub path. Closing segments do not add points.
func (p Path) EndPoints() []fixed.Point26_6 {
	var out []fixed.Point26_6
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out = append(out, fixed.Point26_6(op))
		case LineTo:
			out = append(out, fixed.Point26_6(op))
		case QuadTo:
			out = append(out, op[1])
		case CubicTo:
			out = append(out, op[2])
		}
	}
	return out
}

// matrixAdder applies a transform to the points
// before adding them to the underlying path.
type matrixAdder struct {
	M    geom.Matrix2D
	path *Path
}

func (m *matrixAdder) tr(a fixed.Point26_6) fixed.Point26_6 {
	x, y := m.M.Transform(FromFixed(a))
	return ToFixed(x, y)
}

func (m *matrixAdder) Start(a fixed.Point26_6) { m.path.Start(m.tr(a)) }

func (m *matrixAdder) Line(b fixed.Point26_6) { m.path.Line(m.tr(b)) }

func (m *matrixAdder) QuadBezier(b, c fixed.Point26_6) {
	m.path.QuadBezier(m.tr(b), m.tr(c))
}

func (m *matrixAdder) CubeBezier(b, c, d fixed.Point26_6) {
	m.path.CubeBezier(m.tr(b), m.tr(c), m.tr(d))
}

func (m *matrixAdder) Stop(closeLoop bool) { m.path.Stop(closeLoop) }
