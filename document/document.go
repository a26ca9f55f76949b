// Package document implements the top level container of a drawing:
// a Document owns a surface, an ordered list of layers, the selection
// of its items, a current style and its views, and renders the
// layers into the surface on demand.
//
// Documents are registered in a Registry, which tracks the
// current document of the process.
//
// A Document is not safe for concurrent use.
package document

import (
	"log/slog"
	"math"
	"slices"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/internal/logger"
	"github.com/benoitkugler/okpaper/item"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/google/uuid"
)

var (
	_ style.Owner     = (*Document)(nil)
	_ item.Selector   = (*Document)(nil)
	_ item.LayerOwner = (*Document)(nil)
)

// Symbol is a reusable definition stored by a document.
type Symbol struct {
	Name       string
	Definition item.Item
}

// Document is the root of a drawing.
type Document struct {
	id       string
	registry *Registry
	log      *slog.Logger

	size    geom.Size
	bounds  geom.Rectangle
	surface surface.Surface

	layers      []*item.Layer
	activeLayer *item.Layer

	baseStyle    style.Style
	currentStyle *style.Style

	symbols    []*Symbol
	views      []*View
	activeView *View

	selection selection
}

// New creates a document, registers it in `reg` and makes it
// the current document. A nil `reg` creates an unregistered document.
//
// The document starts with one empty active layer, one active view,
// the baseline style and no selection.
func New(reg *Registry, opts ...Option) *Document {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Document{
		id:        uuid.NewString(),
		registry:  reg,
		baseStyle: *style.New(nil, o.style),
		selection: newSelection(),
	}
	log := o.logger
	if log == nil {
		log = logger.Get()
	}
	d.log = log.With("document", d.id)

	switch {
	case o.surface != nil:
		d.surface = o.surface
		d.size = geom.Size{Width: float64(o.surface.Width()), Height: float64(o.surface.Height())}
	case o.size != nil:
		d.size = *o.size
	default:
		d.size = DefaultSize
	}
	d.bounds = geom.NewRectangle(geom.Point{}, d.size)
	if d.surface == nil && o.factory != nil {
		d.surface = o.factory(int(math.Ceil(d.size.Width)), int(math.Ceil(d.size.Height)))
	}

	if reg != nil {
		reg.Register(d)
	}
	d.Activate()

	d.AddLayer(item.NewLayer(""))
	d.SetCurrentStyle(nil)
	d.activeView = newView(d)
	d.views = []*View{d.activeView}

	d.log.Debug("document created", "width", d.size.Width, "height", d.size.Height, "surface", d.surface != nil)
	return d
}

// ID returns the unique identifier of the document.
func (d *Document) ID() string { return d.id }

// Registry returns the registry the document was created with.
func (d *Document) Registry() *Registry { return d.registry }

// Activate makes the document the current document of its registry.
// It returns false, doing nothing, if the document is not registered.
func (d *Document) Activate() bool {
	if d.registry == nil || !d.registry.SetCurrent(d) {
		d.log.Debug("activation failed: document not registered")
		return false
	}
	return true
}

func (d *Document) Size() geom.Size { return d.size }

// Bounds returns the rectangle at the origin, with the document size.
func (d *Document) Bounds() geom.Rectangle { return d.bounds }

// Surface returns the surface the document is drawn into, or nil.
func (d *Document) Surface() surface.Surface { return d.surface }

// Layers returns a copy of the layers, in painting order.
func (d *Document) Layers() []*item.Layer { return slices.Clone(d.layers) }

// ActiveLayer returns the layer new content is added to.
func (d *Document) ActiveLayer() *item.Layer { return d.activeLayer }

// AddLayer appends `l` on top of the other layers, binds its
// items to the document selection, and makes it active.
// It returns false if `l` is nil, already a layer of `d`, the child
// of a group or a layer of another document.
func (d *Document) AddLayer(l *item.Layer) bool {
	if l == nil || slices.Contains(d.layers, l) {
		return false
	}
	if l.Parent() != nil || (l.Selector() != nil && l.Selector() != item.Selector(d)) {
		d.log.Debug("layer rejected: already owned", "layer", l.ID())
		return false
	}
	d.layers = append(d.layers, l)
	item.Attach(l, d)
	d.activeLayer = l
	return true
}

// ActivateLayer makes `l` the active layer, returning false if
// it is not a layer of the document.
func (d *Document) ActivateLayer(l *item.Layer) bool {
	if !slices.Contains(d.layers, l) {
		return false
	}
	d.activeLayer = l
	return true
}

// RemoveLayer deselects the items of `l` and removes it.
// The last layer of a document can't be removed.
// If `l` was active, the top layer becomes active.
func (d *Document) RemoveLayer(l *item.Layer) bool {
	i := slices.Index(d.layers, l)
	if i == -1 || len(d.layers) == 1 {
		return false
	}
	item.Walk(l, func(it item.Item) bool {
		it.SetSelected(false)
		return true
	})
	item.Attach(l, nil)
	d.layers = slices.Delete(d.layers, i, i+1)
	if d.activeLayer == l {
		d.activeLayer = d.layers[len(d.layers)-1]
	}
	return true
}

// Symbols returns a copy of the symbol definitions.
func (d *Document) Symbols() []*Symbol { return slices.Clone(d.symbols) }

// AddSymbol stores a symbol definition.
func (d *Document) AddSymbol(s *Symbol) {
	if s != nil {
		d.symbols = append(d.symbols, s)
	}
}

// Views returns a copy of the views of the document.
func (d *Document) Views() []*View { return slices.Clone(d.views) }

func (d *Document) ActiveView() *View { return d.activeView }

// BaseStyle returns the baseline the current style is merged over.
func (d *Document) BaseStyle() style.Style { return d.baseStyle }

// CurrentStyle returns the current style snapshot, which must
// not be modified.
func (d *Document) CurrentStyle() *style.Style { return d.currentStyle }

// SetCurrentStyle replaces the current style by a new snapshot, built
// from the baseline style with the fields of `override`.
// A nil `override` resets the current style to the baseline.
func (d *Document) SetCurrentStyle(override *style.Override) {
	d.currentStyle = style.New(d, override)
}
