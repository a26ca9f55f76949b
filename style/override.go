package style

import (
	"image/color"

	"github.com/benoitkugler/okpaper/surface"
)

// Paint wraps an optional color, so that an Override
// may distinguish "inherit" (nil *Paint) from "none" (nil Color).
type Paint struct {
	Color color.Color
}

// None disables the painting operation.
var None = &Paint{}

// Solid returns a paint using `c`.
func Solid(c color.Color) *Paint { return &Paint{Color: c} }

// Ptr returns a pointer to `v`, to fill Override fields.
func Ptr[T any](v T) *T { return &v }

// Override is a partial style: nil fields are inherited.
type Override struct {
	Fill, Stroke               *Paint
	FillOpacity, StrokeOpacity *float64
	StrokeWidth                *float64
	MiterLimit                 *float64
	LineJoin                   *surface.JoinMode
	LineCap                    *surface.CapMode // trailing cap, also used as leading cap if LeadLineCap is nil
	LeadLineCap                *surface.CapMode
	LineGap                    *surface.GapMode
	Dash                       *surface.DashOptions
	NonZeroWinding             *bool
}

// Merge returns the override obtained by applying `other`
// on top of `o`. Both may be nil.
func (o *Override) Merge(other *Override) *Override {
	var out Override
	if o != nil {
		out = *o
	}
	if other == nil {
		return &out
	}
	if other.Fill != nil {
		out.Fill = other.Fill
	}
	if other.Stroke != nil {
		out.Stroke = other.Stroke
	}
	if other.FillOpacity != nil {
		out.FillOpacity = other.FillOpacity
	}
	if other.StrokeOpacity != nil {
		out.StrokeOpacity = other.StrokeOpacity
	}
	if other.StrokeWidth != nil {
		out.StrokeWidth = other.StrokeWidth
	}
	if other.MiterLimit != nil {
		out.MiterLimit = other.MiterLimit
	}
	if other.LineJoin != nil {
		out.LineJoin = other.LineJoin
	}
	if other.LineCap != nil {
		out.LineCap = other.LineCap
	}
	if other.LeadLineCap != nil {
		out.LeadLineCap = other.LeadLineCap
	}
	if other.LineGap != nil {
		out.LineGap = other.LineGap
	}
	if other.Dash != nil {
		out.Dash = other.Dash
	}
	if other.NonZeroWinding != nil {
		out.NonZeroWinding = other.NonZeroWinding
	}
	return &out
}

func (o *Override) apply(st *Style) {
	if o == nil {
		return
	}
	if o.Fill != nil {
		st.FillColor = o.Fill.Color
	}
	if o.Stroke != nil {
		st.StrokeColor = o.Stroke.Color
	}
	if o.FillOpacity != nil {
		st.FillOpacity = *o.FillOpacity
	}
	if o.StrokeOpacity != nil {
		st.StrokeOpacity = *o.StrokeOpacity
	}
	if o.StrokeWidth != nil {
		st.StrokeWidth = *o.StrokeWidth
	}
	if o.MiterLimit != nil {
		st.Stroke.Join.MiterLimit = *o.MiterLimit
	}
	if o.LineJoin != nil {
		st.Stroke.Join.LineJoin = *o.LineJoin
	}
	if o.LineCap != nil {
		st.Stroke.Join.TrailLineCap = *o.LineCap
		if o.LeadLineCap == nil {
			st.Stroke.Join.LeadLineCap = *o.LineCap
		}
	}
	if o.LeadLineCap != nil {
		st.Stroke.Join.LeadLineCap = *o.LeadLineCap
	}
	if o.LineGap != nil {
		st.Stroke.Join.LineGap = *o.LineGap
	}
	if o.Dash != nil {
		st.Stroke.Dash = surface.DashOptions{
			Dash:       append([]float64(nil), o.Dash.Dash...),
			DashOffset: o.Dash.DashOffset,
		}
	}
	if o.NonZeroWinding != nil {
		st.NonZeroWinding = *o.NonZeroWinding
	}
	st.Stroke = st.Stroke.Resolve()
}
