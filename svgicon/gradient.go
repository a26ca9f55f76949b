package svgicon

import (
	"encoding/xml"
	"image/color"
	"strings"

	"github.com/benoitkugler/okpaper/geom"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient.
// Items are painted with solid colors, so gradients only
// contribute their first stop, see fallback.
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	Bounds    Bounds
	Matrix    geom.Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// fallback returns the color painted in place of the gradient:
// the first stop, with its opacity, or nil without stops.
func (g *Gradient) fallback() color.Color {
	if len(g.Stops) == 0 {
		return nil
	}
	stop := g.Stops[0]
	if stop.StopColor == nil {
		return nil
	}
	if stop.Opacity >= 1 {
		return stop.StopColor
	}
	c := color.NRGBAModel.Convert(stop.StopColor).(color.NRGBA)
	c.A = uint8(float64(c.A)*stop.Opacity + 0.5)
	return c
}

func (c *iconCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(geom.Identity, attr.Value)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.Units = UserSpaceOnUse
		case "objectBoundingBox":
			c.grad.Units = ObjectBoundingBox
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "pad":
			c.grad.Spread = PadSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "repeat":
			c.grad.Spread = RepeatSpread
		}
	}
	return err
}
