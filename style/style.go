// Package style defines the paint configuration shared by the
// items of a document: colors, opacities and stroke parameters.
//
// A Style is a snapshot: once handed to a document or an item, it
// is never modified. Changing the style means building a new snapshot,
// usually with New or With.
package style

import (
	"image/color"

	"github.com/benoitkugler/okpaper/surface"
)

// Owner provides the baseline a new style is merged over.
// Documents implement it.
type Owner interface {
	BaseStyle() Style
}

// Style holds the paint state of a path.
type Style struct {
	owner Owner

	FillColor, StrokeColor     color.Color // nil disables the painting operation
	FillOpacity, StrokeOpacity float64
	StrokeWidth                float64
	Stroke                     surface.StrokeOptions
	NonZeroWinding             bool
}

// Base is the default style: opaque black fill, no stroke,
// 1 unit wide miter joins and butt caps, non-zero winding.
var Base = Style{
	FillColor:      color.NRGBA{A: 0xff},
	FillOpacity:    1,
	StrokeOpacity:  1,
	StrokeWidth:    1,
	Stroke:         surface.DefaultStrokeOptions,
	NonZeroWinding: true,
}

// New returns a snapshot bound to `owner`, built from the owner baseline
// (or Base if `owner` is nil) where the fields set in `override` are replaced.
// A nil `override` returns a copy of the baseline.
func New(owner Owner, override *Override) *Style {
	out := Base
	if owner != nil {
		out = owner.BaseStyle()
	}
	out.owner = owner
	out.Stroke = out.Stroke.Resolve()
	override.apply(&out)
	return &out
}

// Owner returns the document the style was created for, or nil.
func (st *Style) Owner() Owner { return st.owner }

// With returns a new snapshot with the same owner, where
// the fields set in `override` are replaced.
func (st *Style) With(override *Override) *Style {
	out := *st
	out.Stroke = out.Stroke.Resolve()
	override.apply(&out)
	return &out
}

// HasFill returns true if the fill operation paints something.
func (st *Style) HasFill() bool { return st.FillColor != nil && st.FillOpacity > 0 }

// HasStroke returns true if the stroke operation paints something.
func (st *Style) HasStroke() bool {
	return st.StrokeColor != nil && st.StrokeOpacity > 0 && st.StrokeWidth > 0
}

// FillPaint returns the fill color with the fill opacity applied,
// or nil if filling is disabled.
func (st *Style) FillPaint() color.Color {
	if st.FillColor == nil {
		return nil
	}
	return applyOpacity(st.FillColor, st.FillOpacity)
}

// StrokePaint returns the stroke color with the stroke opacity applied,
// or nil if stroking is disabled.
func (st *Style) StrokePaint() color.Color {
	if st.StrokeColor == nil {
		return nil
	}
	return applyOpacity(st.StrokeColor, st.StrokeOpacity)
}

// applyOpacity scales the alpha channel of `c`.
func applyOpacity(c color.Color, opacity float64) color.Color {
	if opacity >= 1 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if opacity < 0 {
		opacity = 0
	}
	n.A = uint8(float64(n.A)*opacity + 0.5)
	return n
}

// ApplyTo sets the paint state of `s` for this style.
// The caller is responsible for saving the surface state.
func (st *Style) ApplyTo(s surface.Surface) {
	s.SetFillColor(st.FillPaint())
	s.SetStrokeColor(st.StrokePaint())
	s.SetLineWidth(st.StrokeWidth)
	s.SetStrokeOptions(st.Stroke)
	s.SetWinding(st.NonZeroWinding)
}
