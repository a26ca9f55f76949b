package document

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/item"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgraster"
)

// probe is a Drawable recording its draw calls
type probe struct {
	id     int64
	params []item.RenderParams
	states []surface.State
	fills  []int // number of fills already recorded when drawn
}

func newProbe() *probe { return &probe{id: item.NextID()} }

func (p *probe) ID() int64 { return p.id }

func (p *probe) Draw(s surface.Surface, params item.RenderParams) {
	p.params = append(p.params, params)
	p.states = append(p.states, s.State())
	if rec, ok := s.(*surface.Recorder); ok {
		p.fills = append(p.fills, len(rec.Filter(surface.CmdFill)))
	}
}

func square(t *testing.T, x, y float64, st *style.Style) *item.Path {
	t.Helper()
	var data = "M0 0 H10 V10 H0 Z"
	p, err := item.NewPathFromData(data, st)
	if err != nil {
		t.Fatal(err)
	}
	p.SetData(p.Data().Transform(geom.Identity.Translate(x, y)))
	return p
}

func TestNewDefault(t *testing.T) {
	reg := NewRegistry()
	d := New(reg)
	if d.Size() != DefaultSize || d.Bounds() != geom.Create(0, 0, 1024, 768) {
		t.Errorf("unexpected size %v %v", d.Size(), d.Bounds())
	}
	if s := d.Surface(); s == nil || s.Width() != 1024 || s.Height() != 768 {
		t.Fatalf("unexpected surface %v", s)
	}
	if _, ok := d.Surface().(*svgraster.Surface); !ok {
		t.Errorf("expected raster surface, got %T", d.Surface())
	}
	if layers := d.Layers(); len(layers) != 1 || d.ActiveLayer() != layers[0] {
		t.Errorf("expected one active layer, got %v", layers)
	}
	if views := d.Views(); len(views) != 1 || d.ActiveView() != views[0] || views[0].Document() != d {
		t.Errorf("expected one active view, got %v", views)
	}
	if v := d.ActiveView(); v.Bounds() != d.Bounds() || v.Zoom() != 1 {
		t.Errorf("unexpected view %v %v", v.Bounds(), v.Zoom())
	}
	if d.SelectedItemCount() != 0 || len(d.SelectedItems()) != 0 {
		t.Error("selection should be empty")
	}
	if len(d.Symbols()) != 0 {
		t.Error("symbols should be empty")
	}
	if reg.Current() != d || reg.Index(d) != 0 || d.Registry() != reg {
		t.Error("document should be registered and current")
	}
	if d.ID() == "" || d.ID() == New(reg).ID() {
		t.Error("documents should have distinct ids")
	}
}

func TestNewSize(t *testing.T) {
	rec := surface.NewRecorder(300, 150)
	for _, test := range []struct {
		opts []Option
		size geom.Size
	}{
		{[]Option{WithSize(geom.Size{Width: 200, Height: 100})}, geom.Size{Width: 200, Height: 100}},
		{[]Option{WithSurface(rec)}, geom.Size{Width: 300, Height: 150}},
		{[]Option{WithSize(geom.Size{Width: 10, Height: 10}), WithSurface(rec)}, geom.Size{Width: 300, Height: 150}},
		{[]Option{WithSurfaceFactory(nil)}, DefaultSize},
	} {
		d := New(NewRegistry(), test.opts...)
		if d.Size() != test.size {
			t.Errorf("expected size %v, got %v", test.size, d.Size())
		}
		if d.Bounds() != geom.NewRectangle(geom.Point{}, test.size) {
			t.Errorf("unexpected bounds %v", d.Bounds())
		}
		if len(d.Layers()) != 1 || len(d.Views()) != 1 {
			t.Error("expected one layer and one view")
		}
	}

	d := New(nil, WithSize(geom.Size{Width: 20.5, Height: 10}))
	if s := d.Surface(); s.Width() != 21 || s.Height() != 10 {
		t.Errorf("unexpected surface size %d %d", s.Width(), s.Height())
	}
}

func TestSurfaceFactory(t *testing.T) {
	var w, h int
	d := New(nil, WithSize(geom.Size{Width: 40, Height: 30}), WithSurfaceFactory(func(width, height int) surface.Surface {
		w, h = width, height
		return surface.NewRecorder(width, height)
	}))
	if w != 40 || h != 30 {
		t.Errorf("unexpected factory arguments %d %d", w, h)
	}
	if _, ok := d.Surface().(*surface.Recorder); !ok {
		t.Errorf("unexpected surface %T", d.Surface())
	}

	headless := New(nil, WithSurfaceFactory(nil))
	if headless.Surface() != nil {
		t.Fatal("expected no surface")
	}
	headless.DeselectAll()
	headless.SelectItem(newProbe(), true)
	headless.Draw() // no-op
	headless.Redraw()
}

func TestActivate(t *testing.T) {
	reg := NewRegistry()
	d1 := New(reg)
	d2 := New(reg)
	if reg.Current() != d2 {
		t.Fatal("last document should be current")
	}
	if !d1.Activate() || reg.Current() != d1 {
		t.Error("activation should succeed")
	}

	reg.SetCurrent(d2)
	if !reg.Unregister(d1) {
		t.Fatal("unregister should succeed")
	}
	if d1.Activate() {
		t.Error("activation of an unregistered document should fail")
	}
	if reg.Current() != d2 {
		t.Error("failed activation should not change the current document")
	}

	if New(nil).Activate() {
		t.Error("document without registry can't be activated")
	}
}

func TestSelectItem(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	a, b, c := newProbe(), newProbe(), newProbe()
	d.SelectItem(a, true)
	d.SelectItem(b, true)
	d.SelectItem(c, true)
	if d.SelectedItemCount() != 3 {
		t.Errorf("expected 3 selected items, got %d", d.SelectedItemCount())
	}
	d.SelectItem(b, false)
	if d.SelectedItemCount() != 2 {
		t.Errorf("expected 2 selected items, got %d", d.SelectedItemCount())
	}
	items := d.SelectedItems()
	if len(items) != 2 || items[0] != item.Drawable(a) || items[1] != item.Drawable(c) {
		t.Errorf("unexpected selection %v", items)
	}
	if !d.IsSelected(a.ID()) || d.IsSelected(b.ID()) {
		t.Error("unexpected IsSelected")
	}

	// idempotence
	d.SelectItem(a, true)
	d.SelectItem(a, true)
	d.SelectItem(b, false)
	d.SelectItem(nil, true)
	if d.SelectedItemCount() != 2 {
		t.Errorf("repeated calls should not change the count, got %d", d.SelectedItemCount())
	}
}

func TestSelectionModel(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	probes := make([]*probe, 10)
	for i := range probes {
		probes[i] = newProbe()
	}
	model := map[int64]bool{}
	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		p := probes[rng.IntN(len(probes))]
		selected := rng.IntN(2) == 0
		d.SelectItem(p, selected)
		if selected {
			model[p.ID()] = true
		} else {
			delete(model, p.ID())
		}

		if d.SelectedItemCount() != len(model) {
			t.Fatalf("expected %d selected items, got %d", len(model), d.SelectedItemCount())
		}
		items := d.SelectedItems()
		if len(items) != len(model) {
			t.Fatalf("unexpected selection %v", items)
		}
		for _, it := range items {
			if !model[it.ID()] {
				t.Fatalf("item %d should not be selected", it.ID())
			}
		}
	}
}

func TestInconsistentSelectionPanics(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	d.SelectItem(newProbe(), true)
	d.selection.count = 5

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	d.SelectItem(newProbe(), true)
}

func TestItemSelection(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	a, b := square(t, 0, 0, nil), square(t, 20, 0, nil)
	d.ActiveLayer().AddChild(a)
	d.ActiveLayer().AddChild(b)

	a.SetSelected(true)
	if d.SelectedItemCount() != 1 || !d.IsSelected(a.ID()) {
		t.Fatal("item flag should update the document")
	}

	d.SetSelectedItems([]item.Drawable{b})
	if a.IsSelected() || !b.IsSelected() || d.SelectedItemCount() != 1 {
		t.Errorf("unexpected selection %v", d.SelectedItems())
	}

	d.SetSelectedItems([]item.Drawable{a, b, a})
	if !a.IsSelected() || d.SelectedItemCount() != 2 {
		t.Errorf("unexpected selection %v", d.SelectedItems())
	}

	b.Remove()
	if d.IsSelected(b.ID()) || d.SelectedItemCount() != 1 {
		t.Error("removed items should be deselected")
	}

	d.DeselectAll()
	if a.IsSelected() || d.SelectedItemCount() != 0 {
		t.Error("expected empty selection")
	}
}

func TestLayers(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	first := d.ActiveLayer()

	// already selected content is transferred
	top := item.NewLayer("top")
	p := square(t, 0, 0, nil)
	top.AddChild(p)
	p.SetSelected(true)
	if !d.AddLayer(top) || d.ActiveLayer() != top || len(d.Layers()) != 2 {
		t.Fatal("layer should be added and active")
	}
	if d.SelectedItemCount() != 1 {
		t.Errorf("selected items of the new layer should be registered")
	}
	if d.AddLayer(top) || d.AddLayer(nil) {
		t.Error("duplicate layers should be rejected")
	}

	if !d.ActivateLayer(first) || d.ActiveLayer() != first {
		t.Error("activation should succeed")
	}
	if d.ActivateLayer(item.NewLayer("")) {
		t.Error("unknown layers can't be activated")
	}

	d.ActivateLayer(top)
	if !d.RemoveLayer(top) {
		t.Fatal("remove should succeed")
	}
	if d.SelectedItemCount() != 0 || p.IsSelected() {
		t.Error("items of removed layers should be deselected")
	}
	if d.ActiveLayer() != first {
		t.Error("remaining layer should be active")
	}
	if d.RemoveLayer(first) {
		t.Error("the last layer can't be removed")
	}
}

func TestLayerOwnership(t *testing.T) {
	a := New(nil, WithSurfaceFactory(nil))
	b := New(nil, WithSurfaceFactory(nil))

	l := item.NewLayer("shared")
	p := square(t, 0, 0, nil)
	l.AddChild(p)
	if !a.AddLayer(l) {
		t.Fatal("layer should be added")
	}
	if b.AddLayer(l) || len(b.Layers()) != 1 {
		t.Error("a layer of another document should be rejected")
	}

	// once released, the layer may move to another document
	a.RemoveLayer(l)
	if !b.AddLayer(l) {
		t.Fatal("released layer should be accepted")
	}
	p.SetSelected(true)
	if b.SelectedItemCount() != 1 || a.SelectedItemCount() != 0 {
		t.Errorf("selection should follow the layer: %d %d", a.SelectedItemCount(), b.SelectedItemCount())
	}

	// a nested layer is not a top level layer
	inner := item.NewLayer("inner")
	a.ActiveLayer().AddChild(inner)
	if a.AddLayer(inner) || len(a.Layers()) != 1 {
		t.Error("a child layer should be rejected")
	}

	// and a top level layer can't be nested
	if a.ActiveLayer().AddChild(l) || l.Parent() != nil {
		t.Error("a top level layer should not become a child")
	}
}

func TestLayerRemove(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	first := d.ActiveLayer()
	top := item.NewLayer("top")
	p := square(t, 0, 0, nil)
	top.AddChild(p)
	d.AddLayer(top)
	p.SetSelected(true)

	top.Remove()
	if len(d.Layers()) != 1 || d.Layers()[0] != first || d.ActiveLayer() != first {
		t.Error("removed layer should leave the document")
	}
	if d.SelectedItemCount() != 0 || top.Selector() != nil {
		t.Error("removed layer should be deselected and unbound")
	}

	// the last layer stays, only deselected
	q := square(t, 0, 0, nil)
	first.AddChild(q)
	q.SetSelected(true)
	first.Remove()
	if len(d.Layers()) != 1 || d.SelectedItemCount() != 0 || q.IsSelected() {
		t.Error("last layer should be kept and deselected")
	}
}

func TestCurrentStyle(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	base := d.CurrentStyle()
	if base.StrokeWidth != 1 || base.FillColor != style.Base.FillColor || base.Owner() != style.Owner(d) {
		t.Errorf("unexpected initial style %+v", base)
	}

	d.SetCurrentStyle(&style.Override{StrokeWidth: style.Ptr(3.), Stroke: style.Solid(color.White)})
	st := d.CurrentStyle()
	if st == base || st.StrokeWidth != 3 || st.StrokeColor != color.White {
		t.Errorf("unexpected style %+v", st)
	}
	if base.StrokeWidth != 1 {
		t.Error("previous snapshot should not be modified")
	}

	d.SetCurrentStyle(&style.Override{FillOpacity: style.Ptr(0.5)})
	if st := d.CurrentStyle(); st.StrokeWidth != 1 || st.FillOpacity != 0.5 {
		t.Errorf("overrides should be merged over the baseline, got %+v", st)
	}

	d.SetCurrentStyle(nil)
	if st := d.CurrentStyle(); st.StrokeWidth != 1 || st.FillOpacity != 1 {
		t.Errorf("nil should reset the style, got %+v", st)
	}

	d = New(nil, WithSurfaceFactory(nil), WithStyle(&style.Override{StrokeWidth: style.Ptr(2.)}))
	d.SetCurrentStyle(nil)
	if d.CurrentStyle().StrokeWidth != 2 || d.BaseStyle().StrokeWidth != 2 {
		t.Error("the baseline should include the document style")
	}
}

func TestSymbols(t *testing.T) {
	d := New(nil, WithSurfaceFactory(nil))
	d.AddSymbol(&Symbol{Name: "square", Definition: square(t, 0, 0, nil)})
	d.AddSymbol(nil)
	if s := d.Symbols(); len(s) != 1 || s[0].Name != "square" {
		t.Errorf("unexpected symbols %v", s)
	}
}
