// Package item defines the drawable content of a document:
// the Drawable capability, and the Layer, Group and Path items
// forming the drawing tree.
package item

import (
	"sync/atomic"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/surface"
)

// RenderParams are forwarded through the drawing tree.
type RenderParams struct {
	// Offset translates the drawing.
	Offset geom.Point
	// Selection asks the item to draw its selection
	// outline and handles instead of its normal appearance.
	Selection bool
}

// Drawable is anything that may be painted by a document.
type Drawable interface {
	// ID is unique in the process.
	ID() int64
	Draw(s surface.Surface, params RenderParams)
}

// Selector is notified when the selection flag of an item changes.
// Documents implement it.
type Selector interface {
	SelectItem(it Drawable, selected bool)
}

// LayerOwner is implemented by selectors holding top level layers.
type LayerOwner interface {
	RemoveLayer(l *Layer) bool
}

var lastID atomic.Int64

// NextID returns a new process unique id.
func NextID() int64 { return lastID.Add(1) }

// Item is a node of the drawing tree.
type Item interface {
	Drawable

	Name() string
	Parent() *Group
	Selector() Selector
	IsSelected() bool
	SetSelected(selected bool)
	IsVisible() bool
	SetVisible(visible bool)
	// Bounds returns the extent of the item, in user space.
	Bounds() geom.Rectangle
	// Remove deselects the item and its descendants, and
	// detaches it from its parent. A top level layer is removed
	// from its document instead, unless it is the last one.
	Remove()

	base() *Base
}

// Base implements the bookkeeping shared by the items,
// and is embedded in every concrete item.
type Base struct {
	self     Item // the embedding item
	id       int64
	name     string
	parent   *Group
	selector Selector
	selected bool
	hidden   bool
}

func (b *Base) init(self Item, name string) {
	b.self = self
	b.id = NextID()
	b.name = name
}

func (b *Base) base() *Base { return b }

func (b *Base) ID() int64 { return b.id }

func (b *Base) Name() string { return b.name }

// SetName changes the name of the item.
func (b *Base) SetName(name string) { b.name = name }

func (b *Base) Parent() *Group { return b.parent }

// Selector returns the selection owner of the item, or nil
// if the item is not attached to a document.
func (b *Base) Selector() Selector { return b.selector }

func (b *Base) IsSelected() bool { return b.selected }

// SetSelected updates the selection flag, notifying the
// selector only when the flag changes.
func (b *Base) SetSelected(selected bool) {
	if b.selected == selected {
		return
	}
	b.selected = selected
	if b.selector != nil {
		b.selector.SelectItem(b.self, selected)
	}
}

func (b *Base) IsVisible() bool { return !b.hidden }

func (b *Base) SetVisible(visible bool) { b.hidden = !visible }

func (b *Base) Remove() {
	if b.parent != nil {
		b.parent.RemoveChild(b.self)
		return
	}
	if l, ok := b.self.(*Layer); ok {
		if owner, ok := b.selector.(LayerOwner); ok && owner.RemoveLayer(l) {
			return
		}
	}
	deselectTree(b.self)
}

// setSelector moves the selected state of the item
// from its current selector to `sel`.
func (b *Base) setSelector(sel Selector) {
	if b.selector == sel {
		return
	}
	if b.selected && b.selector != nil {
		b.selector.SelectItem(b.self, false)
	}
	b.selector = sel
	if b.selected && sel != nil {
		sel.SelectItem(b.self, true)
	}
}

// Attach binds the tree rooted at `it` to the given selector,
// transferring the already selected items.
// Documents call it when adding a layer.
func Attach(it Item, sel Selector) {
	Walk(it, func(child Item) bool {
		child.base().setSelector(sel)
		return true
	})
}

// Walk calls `fn` on `it` and its descendants, depth first,
// parents before children. Returning false from `fn`
// skips the descendants of the item.
func Walk(it Item, fn func(Item) bool) {
	if !fn(it) {
		return
	}
	if g, ok := it.(interface{ groupNode() *Group }); ok {
		for _, child := range g.groupNode().children {
			Walk(child, fn)
		}
	}
}

func deselectTree(it Item) {
	Walk(it, func(child Item) bool {
		child.SetSelected(false)
		return true
	})
}
