package document

import (
	"image/color"
	"testing"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/item"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgraster"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func newRecorded(t *testing.T) (*Document, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder(200, 100)
	return New(NewRegistry(), WithSurface(rec)), rec
}

func highlighted(st surface.State) bool {
	return st.StrokeColor == HighlightColor || st.FillColor == HighlightColor
}

func TestDrawWithoutSelection(t *testing.T) {
	d, rec := newRecorded(t)
	d.ActiveLayer().AddChild(square(t, 0, 0, style.New(d, &style.Override{Fill: style.Solid(red)})))
	second := item.NewLayer("second")
	second.AddChild(square(t, 20, 0, nil))
	d.AddLayer(second)

	d.Draw()

	if rec.Commands[0].Kind != surface.CmdSave || rec.Commands[len(rec.Commands)-1].Kind != surface.CmdRestore {
		t.Error("drawing should be bracketed by Save and Restore")
	}
	clears := rec.Filter(surface.CmdClearRect)
	if len(clears) != 1 || clears[0].Rect != geom.Create(0, 0, 201, 101) {
		t.Errorf("unexpected clear %v", clears)
	}
	fills := rec.Filter(surface.CmdFill)
	if len(fills) != 2 {
		t.Fatalf("expected 2 fills, got %d", len(fills))
	}
	// painting order is the layer order
	if fills[0].State.FillColor != color.Color(red) || fills[1].State.FillColor != style.Base.FillColor {
		t.Errorf("unexpected painting order %v %v", fills[0].State.FillColor, fills[1].State.FillColor)
	}
	for _, cmd := range rec.Commands {
		if highlighted(cmd.State) {
			t.Fatalf("unexpected highlight in %s", cmd.Kind)
		}
	}
	if rec.Depth() != 0 {
		t.Errorf("unbalanced save/restore, depth %d", rec.Depth())
	}
}

func TestDrawSelection(t *testing.T) {
	d, rec := newRecorded(t)
	d.ActiveLayer().AddChild(square(t, 0, 0, nil))
	p := newProbe()
	d.SelectItem(p, true)

	d.Draw()

	if len(p.params) != 1 || !p.params[0].Selection {
		t.Fatalf("expected one selection draw, got %v", p.params)
	}
	st := p.states[0]
	if st.LineWidth != 1 || st.StrokeColor != HighlightColor || st.FillColor != HighlightColor {
		t.Errorf("unexpected highlight state %+v", st)
	}
	if p.fills[0] != 1 {
		t.Error("selection should be drawn after the content")
	}
	if saves := rec.Filter(surface.CmdSave); len(saves) != 3 { // content, path, selection
		t.Errorf("expected 3 saves, got %d", len(saves))
	}
	if rec.Depth() != 0 || highlighted(rec.State()) {
		t.Error("highlight should not leak after drawing")
	}

	// the next frame starts from a clean state
	rec.Reset()
	d.Redraw()
	fill := rec.Filter(surface.CmdFill)[0]
	if highlighted(fill.State) {
		t.Error("content should not use the highlight colors")
	}
	if len(p.params) != 2 {
		t.Error("redraw should draw the selection again")
	}
}

func TestDrawSelectedPath(t *testing.T) {
	d, rec := newRecorded(t)
	p := square(t, 10, 10, nil)
	d.ActiveLayer().AddChild(p)
	p.SetSelected(true)

	d.Draw()
	var outlines int
	for _, cmd := range rec.Filter(surface.CmdStroke) {
		if cmd.State.StrokeColor == HighlightColor && cmd.State.LineWidth == 1 {
			outlines++
		}
	}
	if outlines != 1 {
		t.Errorf("expected one highlighted outline, got %d", outlines)
	}
}

func TestDrawRaster(t *testing.T) {
	d := New(NewRegistry(), WithSize(geom.Size{Width: 40, Height: 40}))
	p := square(t, 20, 20, style.New(d, &style.Override{Fill: style.Solid(red)}))
	d.ActiveLayer().AddChild(p)
	d.Draw()

	img := d.Surface().(*svgraster.Surface).Image()
	if c := img.RGBAAt(25, 25); c != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected red pixel, got %v", c)
	}
	if c := img.RGBAAt(5, 5); c != (color.RGBA{}) {
		t.Errorf("expected transparent pixel, got %v", c)
	}

	// moving the path and redrawing clears the previous frame
	p.SetData(p.Data().Transform(geom.Identity.Translate(-20, -20)))
	p.SetSelected(true)
	d.Redraw()
	if c := img.RGBAAt(25, 25); c != (color.RGBA{}) {
		t.Errorf("previous frame should be cleared, got %v", c)
	}
	if c := img.RGBAAt(5, 5); c != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected red pixel, got %v", c)
	}
}
