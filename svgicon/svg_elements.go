package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/svgpath"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["use"] = useF
}

type svgFunc func(c *iconCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            svgF,
	"g":              gF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        circleF,
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
}

func svgF(c *iconCursor, attrs []xml.Attr) error {
	c.icon.ViewBox = Bounds{}
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if len(c.points) != 4 {
				return errParamMismatch
			}
			c.icon.ViewBox.X = c.points[0]
			c.icon.ViewBox.Y = c.points[1]
			c.icon.ViewBox.W = c.points[2]
			c.icon.ViewBox.H = c.points[3]
		case "width":
			width, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			height, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if !c.seenSVG {
		c.icon.Width, c.icon.Height = width, height
		c.seenSVG = true
	}
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = width
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = height
	}
	return nil
}

// g starts a new group, closed by the matching end element
func gF(c *iconCursor, _ []xml.Attr) error {
	c.pushGroup()
	return nil
}

// lengthAttr binds an attribute to the variable receiving its value.
type lengthAttr struct {
	dst *float64
	ref percentageReference
}

// readLengths parses the attributes listed in `fields`, ignoring the others.
func (c *iconCursor) readLengths(attrs []xml.Attr, fields map[string]lengthAttr) error {
	for _, attr := range attrs {
		field, ok := fields[attr.Name.Local]
		if !ok {
			continue
		}
		v, err := c.parseUnit(attr.Value, field.ref)
		if err != nil {
			return fmt.Errorf("invalid %s attribute: %w", attr.Name.Local, err)
		}
		*field.dst = v
	}
	return nil
}

func rectF(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	err := c.readLengths(attrs, map[string]lengthAttr{
		"x":      {&x, widthPercentage},
		"y":      {&y, heightPercentage},
		"width":  {&w, widthPercentage},
		"height": {&h, heightPercentage},
		"rx":     {&rx, widthPercentage},
		"ry":     {&ry, heightPercentage},
	})
	if err != nil {
		return err
	}
	if w == 0 || h == 0 {
		return nil
	}
	// a single radius applies to both axis
	if rx == 0 {
		rx = ry
	} else if ry == 0 {
		ry = rx
	}
	c.path.AddRoundRect(x, y, w+x, h+y, rx, ry)
	return nil
}

// circleF handles ellipse also
func circleF(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, r, rx, ry float64
	err := c.readLengths(attrs, map[string]lengthAttr{
		"cx": {&cx, widthPercentage},
		"cy": {&cy, heightPercentage},
		"r":  {&r, diagPercentage},
		"rx": {&rx, widthPercentage},
		"ry": {&ry, heightPercentage},
	})
	if err != nil {
		return err
	}
	if r != 0 {
		rx, ry = r, r
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.path.AddEllipse(cx, cy, rx, ry)
	return nil
}

func lineF(c *iconCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	err := c.readLengths(attrs, map[string]lengthAttr{
		"x1": {&x1, widthPercentage},
		"x2": {&x2, widthPercentage},
		"y1": {&y1, heightPercentage},
		"y2": {&y2, heightPercentage},
	})
	if err != nil {
		return err
	}
	c.path.Start(svgpath.ToFixed(x1, y1))
	c.path.Line(svgpath.ToFixed(x2, y2))
	return nil
}

func polylineF(c *iconCursor, attrs []xml.Attr) error {
	c.points = c.points[:0]
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "points":
			err = c.getPoints(attr.Value)
			if len(c.points)%2 != 0 {
				return errors.New("polygon has odd number of points")
			}
		}
		if err != nil {
			return err
		}
	}
	if len(c.points) > 4 {
		c.path.Start(svgpath.ToFixed(c.points[0], c.points[1]))
		for i := 2; i < len(c.points)-1; i += 2 {
			c.path.Line(svgpath.ToFixed(c.points[i], c.points[i+1]))
		}
	}
	return nil
}

func polygonF(c *iconCursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if len(c.points) > 4 {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *iconCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local != "d" {
			continue
		}
		p, err := svgpath.CompilePath(attr.Value)
		if err != nil {
			return err
		}
		c.path = append(c.path, p...)
	}
	return nil
}

func descF(c *iconCursor, _ []xml.Attr) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}

func titleF(c *iconCursor, _ []xml.Attr) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}

func defsF(c *iconCursor, _ []xml.Attr) error {
	c.inDefs = true
	return nil
}

// startGradient registers a new gradient, whose
// direction is read from the `fractions` attributes.
func (c *iconCursor) startGradient(attrs []xml.Attr, fractions map[string]*float64) error {
	c.inGrad = true
	c.grad = &Gradient{Bounds: c.icon.ViewBox, Matrix: geom.Identity}
	for _, attr := range attrs {
		var err error
		if dst, ok := fractions[attr.Name.Local]; ok {
			*dst, err = readFraction(attr.Value)
		} else if attr.Name.Local == "id" {
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.icon.grads[attr.Value] = c.grad
		} else {
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func linearGradientF(c *iconCursor, attrs []xml.Attr) error {
	direction := Linear{0, 0, 1, 0}
	err := c.startGradient(attrs, map[string]*float64{
		"x1": &direction[0], "y1": &direction[1],
		"x2": &direction[2], "y2": &direction[3],
	})
	c.grad.Direction = direction
	return err
}

func radialGradientF(c *iconCursor, attrs []xml.Attr) error {
	const unset = -1.
	direction := Radial{0.5, 0.5, unset, unset, 0.5, 0.5}
	err := c.startGradient(attrs, map[string]*float64{
		"cx": &direction[0], "cy": &direction[1],
		"fx": &direction[2], "fy": &direction[3],
		"r": &direction[4], "fr": &direction[5],
	})
	// the focus defaults to the center
	if direction[2] == unset {
		direction[2] = direction[0]
	}
	if direction[3] == unset {
		direction[3] = direction[1]
	}
	c.grad.Direction = direction
	return err
}

// stopF appends a color stop to the current gradient,
// and is ignored outside gradients.
func stopF(c *iconCursor, attrs []xml.Attr) error {
	if !c.inGrad || c.grad == nil {
		return nil
	}
	stop := GradStop{Opacity: 1}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "offset":
			stop.Offset, err = readFraction(attr.Value)
		case "stop-color":
			stop.StopColor, err = style.ParseColor(attr.Value)
		case "stop-opacity":
			stop.Opacity, err = readFraction(attr.Value)
		}
		if err != nil {
			return fmt.Errorf("invalid gradient stop: %w", err)
		}
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	return nil
}

var (
	errUseHref    = errors.New("use element without href")
	errUseLocal   = errors.New("only local references are supported in use elements")
	errUseUnknown = errors.New("use element references an unknown definition")
)

// useF replays a saved definition, translated by the x and y attributes.
func useF(c *iconCursor, attrs []xml.Attr) error {
	var x, y float64
	if err := c.readLengths(attrs, map[string]lengthAttr{
		"x": {&x, widthPercentage},
		"y": {&y, heightPercentage},
	}); err != nil {
		return err
	}
	var href string
	for _, attr := range attrs {
		if attr.Name.Local == "href" {
			href = strings.TrimSpace(attr.Value)
		}
	}
	if href == "" {
		return errUseHref
	}
	id, isLocal := strings.CutPrefix(href, "#")
	if !isLocal {
		return errUseLocal
	}
	defs, ok := c.icon.defs[id]
	if !ok {
		return fmt.Errorf("%w: %s", errUseUnknown, href)
	}
	top := c.top()
	top.transform = top.transform.Translate(x, y)

	styleDepth, groupDepth := len(c.styleStack), len(c.groups)
	defer func() {
		// unbalanced groups in the definition are closed
		c.styleStack = c.styleStack[:styleDepth]
		c.groups = c.groups[:groupDepth]
	}()
	for _, def := range defs {
		if def.Tag == "endg" {
			c.popStyle()
			c.popGroup()
			continue
		}
		df, ok := drawFuncs[def.Tag]
		if !ok {
			if err := c.handleError("cannot process svg element %s", def.Tag); err != nil {
				return err
			}
			continue
		}
		if err := c.pushStyle(def.Attrs); err != nil {
			return err
		}
		if err := df(c, def.Attrs); err != nil {
			return err
		}
		c.flushPath()
		if def.Tag != "g" {
			c.popStyle()
		}
	}
	return nil
}
