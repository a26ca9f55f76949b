package surface

import (
	"image/color"

	"github.com/benoitkugler/okpaper/geom"
	"golang.org/x/image/math/fixed"
)

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
// ArcClip mode is like MiterClip applied to arcs, and is not part of the SVG2.0
// standard.
const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
	ArcClip   // Like MiterClip applied to arcs, and is not part of the SVG2.0 standard.
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // Not part of the SVG2.0 standard.
	QuadraticCap // Not part of the SVG2.0 standard.
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	case CubicCap:
		return "CubicCap"
	case QuadraticCap:
		return "QuadraticCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

func (g GapMode) String() string {
	switch g {
	case NilGap:
		return "NilGap"
	case FlatGap:
		return "FlatGap"
	case RoundGap:
		return "RoundGap"
	case CubicGap:
		return "CubicGap"
	case QuadraticGap:
		return "QuadraticGap"
	default:
		return "<unknown GapMode>"
	}
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

type JoinOptions struct {
	MiterLimit   float64  // the miter cutoff value for miter, arc, miterclip and arcClip joinModes
	LineJoin     JoinMode // JoinMode for curve segments
	TrailLineCap CapMode  // capping functions for leading and trailing line ends. If one is nil, the other function is used at both ends.

	LeadLineCap CapMode // not part of the standard specification
	LineGap     GapMode // not part of the standard specification. determines how a gap on the convex side of two lines joining is filled
}

// StrokeOptions groups the parameters of the stroking
// operation, apart from the line width.
type StrokeOptions struct {
	Join JoinOptions
	Dash DashOptions
}

// Resolve returns a copy of the options where the nil
// caps and gap are replaced by their effective value.
func (o StrokeOptions) Resolve() StrokeOptions {
	if o.Join.TrailLineCap == NilCap {
		o.Join.TrailLineCap = o.Join.LeadLineCap
	}
	if o.Join.TrailLineCap == NilCap {
		o.Join.TrailLineCap = ButtCap
	}
	if o.Join.LeadLineCap == NilCap {
		o.Join.LeadLineCap = o.Join.TrailLineCap
	}
	if o.Join.LineGap == NilGap {
		o.Join.LineGap = FlatGap
	}
	o.Dash.Dash = append([]float64(nil), o.Dash.Dash...)
	return o
}

// DefaultStrokeOptions are the options of a fresh surface:
// miter joins limited to 10, butt caps, no dashes.
var DefaultStrokeOptions = StrokeOptions{
	Join: JoinOptions{
		MiterLimit:   10,
		LineJoin:     Miter,
		TrailLineCap: ButtCap,
		LeadLineCap:  ButtCap,
		LineGap:      FlatGap,
	},
}

// State is the paint state of a surface.
type State struct {
	FillColor, StrokeColor color.Color // nil disables the painting operation
	LineWidth              float64
	Stroke                 StrokeOptions
	UseNonZeroWinding      bool
	Offset                 geom.Point // current translation
}

// DefaultState is the state of a fresh surface:
// opaque black for fill and stroke, 1 unit wide lines.
func DefaultState() State {
	return State{
		FillColor:         color.NRGBA{A: 0xff},
		StrokeColor:       color.NRGBA{A: 0xff},
		LineWidth:         1,
		Stroke:            DefaultStrokeOptions.Resolve(),
		UseNonZeroWinding: true,
	}
}

// Apply translates `a` by the current offset.
func (st State) Apply(a fixed.Point26_6) fixed.Point26_6 {
	if st.Offset.IsZero() {
		return a
	}
	return fixed.Point26_6{
		X: a.X + fixed.Int26_6(st.Offset.X*64),
		Y: a.Y + fixed.Int26_6(st.Offset.Y*64),
	}
}

// Stack is a paint state with a save/restore stack,
// shared by the backends.
type Stack struct {
	Current State
	saved   []State
}

// NewStack returns a stack starting with DefaultState.
func NewStack() *Stack {
	return &Stack{Current: DefaultState()}
}

// Save pushes a copy of the current state.
func (s *Stack) Save() {
	cp := s.Current
	cp.Stroke.Dash.Dash = append([]float64(nil), cp.Stroke.Dash.Dash...)
	s.saved = append(s.saved, cp)
}

// Restore pops the last saved state, and returns false
// if there is none, in which case the current state is left unchanged.
func (s *Stack) Restore() bool {
	if len(s.saved) == 0 {
		return false
	}
	s.Current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return true
}

// Depth returns the number of saved states.
func (s *Stack) Depth() int { return len(s.saved) }

// Reset drops every saved state and restores DefaultState.
func (s *Stack) Reset() {
	s.saved = s.saved[:0]
	s.Current = DefaultState()
}
