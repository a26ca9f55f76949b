package document

import "github.com/benoitkugler/okpaper/geom"

// View binds a document to a presentation context.
type View struct {
	doc    *Document
	bounds geom.Rectangle
	zoom   float64
}

func newView(doc *Document) *View {
	return &View{doc: doc, bounds: doc.Bounds(), zoom: 1}
}

// Document returns the document displayed by the view.
func (v *View) Document() *Document { return v.doc }

// Bounds returns the visible area, in document coordinates.
func (v *View) Bounds() geom.Rectangle { return v.bounds }

// Zoom returns the scale factor of the view.
func (v *View) Zoom() float64 { return v.zoom }
