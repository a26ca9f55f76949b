package item

import (
	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
)

var (
	_ Item = (*Group)(nil)
	_ Item = (*Layer)(nil)
)

// Group is an ordered list of child items, painted in order.
type Group struct {
	Base
	children []Item
}

// NewGroup returns a group containing `children`.
func NewGroup(children ...Item) *Group {
	g := &Group{}
	g.init(g, "")
	for _, child := range children {
		g.AddChild(child)
	}
	return g
}

func (g *Group) groupNode() *Group { return g }

// Children returns a copy of the child list.
func (g *Group) Children() []Item { return append([]Item(nil), g.children...) }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.children) }

// isAncestor returns true if `it` is `g` or one of its ancestors.
func (g *Group) isAncestor(it Item) bool {
	for p := g; p != nil; p = p.parent {
		if Item(p.self) == it {
			return true
		}
	}
	return false
}

// AddChild appends `it` to the children.
// See InsertChild for the returned value.
func (g *Group) AddChild(it Item) bool { return g.InsertChild(len(g.children), it) }

// InsertChild inserts `it` at `index`, clamped to the valid range.
// The item is first removed from its current parent.
// It returns false, doing nothing, if `it` is nil, a top level
// layer of a document, or if inserting it would create a cycle.
func (g *Group) InsertChild(index int, it Item) bool {
	if it == nil || g.isAncestor(it) {
		return false
	}
	b := it.base()
	if _, isLayer := it.(*Layer); isLayer && b.parent == nil && b.selector != nil {
		return false
	}
	if b.parent != nil {
		b.parent.detach(it)
	}
	if index < 0 {
		index = 0
	}
	if index > len(g.children) {
		index = len(g.children)
	}
	g.children = append(g.children, nil)
	copy(g.children[index+1:], g.children[index:])
	g.children[index] = it
	b.parent = g
	Attach(it, g.selector)
	return true
}

func (g *Group) detach(it Item) bool {
	for i, child := range g.children {
		if child == it {
			g.children = append(g.children[:i], g.children[i+1:]...)
			it.base().parent = nil
			return true
		}
	}
	return false
}

// RemoveChild deselects `it` and its descendants, and removes
// it from the children. It returns false if `it` is not a child of `g`.
func (g *Group) RemoveChild(it Item) bool {
	if !g.detach(it) {
		return false
	}
	deselectTree(it)
	Attach(it, nil)
	return true
}

// Bounds returns the union of the bounds of the visible children.
func (g *Group) Bounds() geom.Rectangle {
	var out geom.Rectangle
	for _, child := range g.children {
		if child.IsVisible() {
			out = out.Union(child.Bounds())
		}
	}
	return out
}

// Draw paints the visible children in order. In selection mode,
// only the outline of the group bounds is drawn: selected children
// are drawn by the document itself.
func (g *Group) Draw(s surface.Surface, params RenderParams) {
	if g.hidden {
		return
	}
	if params.Selection {
		drawBoundsOutline(s, g.Bounds(), params.Offset)
		return
	}
	for _, child := range g.children {
		child.Draw(s, params)
	}
}

func drawBoundsOutline(s surface.Surface, r geom.Rectangle, offset geom.Point) {
	if r.IsEmpty() {
		return
	}
	surface.Scoped(s, func() {
		s.Translate(offset.X, offset.Y)
		var p svgpath.Path
		p.AddRect(r.X, r.Y, r.Right(), r.Bottom())
		s.ClearPath()
		p.AddTo(s)
		s.Stroke()
	})
}

// Layer is a named top level group of a document.
type Layer struct {
	Group
}

// NewLayer returns an empty layer.
func NewLayer(name string) *Layer {
	l := &Layer{}
	l.init(l, name)
	return l
}
