package document

import (
	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/item"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/surface"
)

// HighlightColor paints the outline and handles of the selected items.
var HighlightColor = style.MustParseColor("#4f7aff")

// Draw clears the surface, paints the layers in order, then
// paints the selected items in highlight mode. Each pass saves and
// restores the surface state, so that its paint settings do not
// leak.
// Draw does nothing if the document has no surface.
func (d *Document) Draw() {
	if d.surface == nil {
		return
	}
	d.drawContent()
	if d.selection.count > 0 {
		d.drawSelection()
	}
	d.log.Debug("document drawn", "layers", len(d.layers), "selected", d.selection.count)
}

// Redraw repaints the whole document. It is the same as Draw.
func (d *Document) Redraw() { d.Draw() }

func (d *Document) drawContent() {
	g := surface.Save(d.surface)
	defer g.Restore()

	// one more unit to cover the antialiased edges
	d.surface.ClearRect(geom.Create(0, 0, d.size.Width+1, d.size.Height+1))
	params := item.RenderParams{Offset: geom.Point{X: 0, Y: 0}}
	for _, layer := range d.layers {
		layer.Draw(d.surface, params)
	}
}

func (d *Document) drawSelection() {
	g := surface.Save(d.surface)
	defer g.Restore()

	d.surface.SetLineWidth(1)
	d.surface.SetStrokeColor(HighlightColor)
	d.surface.SetFillColor(HighlightColor)
	params := item.RenderParams{Selection: true}
	for _, it := range d.selection.list() {
		it.Draw(d.surface, params)
	}
}
