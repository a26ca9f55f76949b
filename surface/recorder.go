package surface

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/okpaper/geom"
	"golang.org/x/image/math/fixed"
)

// CommandKind identifies the type of a recorded call.
type CommandKind uint8

const (
	CmdSave CommandKind = iota
	CmdRestore
	CmdClearRect
	CmdSetFillColor
	CmdSetStrokeColor
	CmdSetLineWidth
	CmdSetStrokeOptions
	CmdSetWinding
	CmdTranslate
	CmdStart
	CmdLine
	CmdQuadBezier
	CmdCubeBezier
	CmdStop
	CmdClearPath
	CmdFill
	CmdStroke
)

var commandNames = [...]string{
	CmdSave:             "Save",
	CmdRestore:          "Restore",
	CmdClearRect:        "ClearRect",
	CmdSetFillColor:     "SetFillColor",
	CmdSetStrokeColor:   "SetStrokeColor",
	CmdSetLineWidth:     "SetLineWidth",
	CmdSetStrokeOptions: "SetStrokeOptions",
	CmdSetWinding:       "SetWinding",
	CmdTranslate:        "Translate",
	CmdStart:            "Start",
	CmdLine:             "Line",
	CmdQuadBezier:       "QuadBezier",
	CmdCubeBezier:       "CubeBezier",
	CmdStop:             "Stop",
	CmdClearPath:        "ClearPath",
	CmdFill:             "Fill",
	CmdStroke:           "Stroke",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("CommandKind(%d)", k)
}

// Command is one recorded call. Only the fields relevant
// to the Kind are set, except State which is always
// the state after the call.
type Command struct {
	Kind   CommandKind
	Rect   geom.Rectangle    // ClearRect
	Points []fixed.Point26_6 // path commands, already translated
	Color  color.Color       // SetFillColor, SetStrokeColor
	Value  float64           // SetLineWidth
	Flag   bool              // SetWinding, Stop
	State  State
}

var _ Surface = (*Recorder)(nil) // assert interface conformance

// Recorder is a Surface which does not paint anything, but
// records every call it receives.
type Recorder struct {
	width, height int
	stack         *Stack
	Commands      []Command
}

// NewRecorder returns an empty recorder with the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height, stack: NewStack()}
}

// Reset drops the recorded commands. The paint state is not modified.
func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }

// Filter returns the commands of the given kind, in call order.
func (r *Recorder) Filter(kind CommandKind) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Depth returns the number of pending Save calls.
func (r *Recorder) Depth() int { return r.stack.Depth() }

func (r *Recorder) record(c Command) {
	c.State = r.stack.Current
	r.Commands = append(r.Commands, c)
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) State() State { return r.stack.Current }

func (r *Recorder) Save() {
	r.stack.Save()
	r.record(Command{Kind: CmdSave})
}

func (r *Recorder) Restore() {
	r.stack.Restore()
	r.record(Command{Kind: CmdRestore})
}

func (r *Recorder) ClearRect(rect geom.Rectangle) {
	r.record(Command{Kind: CmdClearRect, Rect: rect})
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.stack.Current.FillColor = c
	r.record(Command{Kind: CmdSetFillColor, Color: c})
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.stack.Current.StrokeColor = c
	r.record(Command{Kind: CmdSetStrokeColor, Color: c})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.stack.Current.LineWidth = w
	r.record(Command{Kind: CmdSetLineWidth, Value: w})
}

func (r *Recorder) SetStrokeOptions(options StrokeOptions) {
	r.stack.Current.Stroke = options.Resolve()
	r.record(Command{Kind: CmdSetStrokeOptions})
}

func (r *Recorder) SetWinding(useNonZeroWinding bool) {
	r.stack.Current.UseNonZeroWinding = useNonZeroWinding
	r.record(Command{Kind: CmdSetWinding, Flag: useNonZeroWinding})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.stack.Current.Offset = r.stack.Current.Offset.Add(geom.Point{X: dx, Y: dy})
	r.record(Command{Kind: CmdTranslate, Rect: geom.Create(dx, dy, 0, 0)})
}

func (r *Recorder) points(ps ...fixed.Point26_6) []fixed.Point26_6 {
	out := make([]fixed.Point26_6, len(ps))
	for i, p := range ps {
		out[i] = r.stack.Current.Apply(p)
	}
	return out
}

func (r *Recorder) Start(a fixed.Point26_6) {
	r.record(Command{Kind: CmdStart, Points: r.points(a)})
}

func (r *Recorder) Line(b fixed.Point26_6) {
	r.record(Command{Kind: CmdLine, Points: r.points(b)})
}

func (r *Recorder) QuadBezier(b, c fixed.Point26_6) {
	r.record(Command{Kind: CmdQuadBezier, Points: r.points(b, c)})
}

func (r *Recorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.record(Command{Kind: CmdCubeBezier, Points: r.points(b, c, d)})
}

func (r *Recorder) Stop(closeLoop bool) {
	r.record(Command{Kind: CmdStop, Flag: closeLoop})
}

func (r *Recorder) ClearPath() { r.record(Command{Kind: CmdClearPath}) }

func (r *Recorder) Fill() { r.record(Command{Kind: CmdFill}) }

func (r *Recorder) Stroke() { r.record(Command{Kind: CmdStroke}) }
