package svgicon

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/internal/logger"
	"github.com/benoitkugler/okpaper/item"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
)

type (
	// pathState is the inherited state of an element
	pathState struct {
		style     style.Style
		transform geom.Matrix2D // current transform
	}

	// iconCursor is used while parsing SVG files
	iconCursor struct {
		path   svgpath.Path // shape of the current element
		points []float64

		icon       *Icon
		errorMode  ErrorMode
		styleStack []pathState
		groups     []*item.Group // the last one receives the new items
		grad       *Gradient

		seenSVG                                 bool
		inTitleText, inDescText, inGrad, inDefs bool
		currentDef                              []definition
	}

	// definition is used to store what's given in a def tag
	definition struct {
		ID, Tag string
		Attrs   []xml.Attr
	}
)

func newIconCursor(icon *Icon) *iconCursor {
	return &iconCursor{
		icon:       icon,
		styleStack: []pathState{{style: *style.New(nil, nil), transform: geom.Identity}},
		groups:     []*item.Group{icon.Root},
	}
}

func (c *iconCursor) top() *pathState { return &c.styleStack[len(c.styleStack)-1] }

func (c *iconCursor) popStyle() {
	if len(c.styleStack) > 1 {
		c.styleStack = c.styleStack[:len(c.styleStack)-1]
	}
}

func (c *iconCursor) currentGroup() *item.Group { return c.groups[len(c.groups)-1] }

func (c *iconCursor) pushGroup() {
	g := item.NewGroup()
	c.currentGroup().AddChild(g)
	c.groups = append(c.groups, g)
}

func (c *iconCursor) popGroup() {
	if len(c.groups) > 1 {
		c.groups = c.groups[:len(c.groups)-1]
	}
}

// flushPath converts the shape parsed from the current
// element to a path item, using the current style.
func (c *iconCursor) flushPath() {
	if len(c.path) == 0 {
		return
	}
	top := c.top()
	data := c.path.Transform(top.transform)
	c.currentGroup().AddChild(item.NewPath(data, top.style.With(nil)))
	c.path = c.path[:0]
}

func (c *iconCursor) handleError(format string, args ...any) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf("%w: "+format, append([]any{ErrUnsupportedElement}, args...)...)
	case WarnErrorMode:
		logger.Get().Warn("svgicon: " + fmt.Sprintf(format, args...))
	}
	return nil
}

func (c *iconCursor) getPoints(s string) (err error) {
	c.points, err = svgpath.ParseNumbers(s)
	return err
}

func degrees(a float64) float64 { return a * math.Pi / 180 }

// transformFuncs compose `m` with a transform function.
// They return false for an invalid number of arguments.
var transformFuncs = map[string]func(m geom.Matrix2D, args []float64) (geom.Matrix2D, bool){
	"rotate": func(m geom.Matrix2D, args []float64) (geom.Matrix2D, bool) {
		switch len(args) {
		case 1:
			return m.Rotate(degrees(args[0])), true
		case 3: // around (cx, cy)
			return m.Translate(args[1], args[2]).Rotate(degrees(args[0])).Translate(-args[1], -args[2]), true
		}
		return m, false
	},
	"translate": func(m geom.Matrix2D, args []float64) (geom.Matrix2D, bool) {
		switch len(args) {
		case 1:
			return m.Translate(args[0], 0), true
		case 2:
			return m.Translate(args[0], args[1]), true
		}
		return m, false
	},
	"scale": func(m geom.Matrix2D, args []float64) (geom.Matrix2D, bool) {
		switch len(args) {
		case 1:
			return m.Scale(args[0], args[0]), true
		case 2:
			return m.Scale(args[0], args[1]), true
		}
		return m, false
	},
	"skewx": func(m geom.Matrix2D, args []float64) (geom.Matrix2D, bool) {
		if len(args) != 1 {
			return m, false
		}
		return m.SkewX(degrees(args[0])), true
	},
	"skewy": func(m geom.Matrix2D, args []float64) (geom.Matrix2D, bool) {
		if len(args) != 1 {
			return m, false
		}
		return m.SkewY(degrees(args[0])), true
	},
	"matrix": func(m geom.Matrix2D, args []float64) (geom.Matrix2D, bool) {
		if len(args) != 6 {
			return m, false
		}
		return m.Mult(geom.Matrix2D{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}), true
	},
}

// parseTransform composes the transformations in `v` with `m1`.
func (c *iconCursor) parseTransform(m1 geom.Matrix2D, v string) (geom.Matrix2D, error) {
	ts := strings.Split(v, ")")
	for _, t := range ts {
		t = strings.TrimLeft(strings.TrimSpace(t), ", \t\n")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		if err := c.getPoints(d[1]); err != nil {
			return m1, err
		}
		fn, ok := transformFuncs[strings.ToLower(strings.TrimSpace(d[0]))]
		if !ok {
			return m1, fmt.Errorf("%w: unknown transform %q", errParamMismatch, d[0])
		}
		if m1, ok = fn(m1, c.points); !ok {
			return m1, fmt.Errorf("%w: %s(%s)", errParamMismatch, d[0], d[1])
		}
	}
	return m1, nil
}

// readPaint resolves a fill or stroke value. Gradients are
// replaced by their first stop.
func (c *iconCursor) readPaint(v string) (color.Color, error) {
	if strings.HasPrefix(v, "url(") {
		id := strings.TrimSuffix(strings.TrimPrefix(v, "url("), ")")
		id = strings.TrimPrefix(strings.TrimSpace(id), "#")
		grad, ok := c.icon.grads[id]
		if !ok {
			return nil, c.handleError("unknown paint server %q", v)
		}
		return grad.fallback(), nil
	}
	return style.ParseColor(v)
}

// keywords of the stroke attributes
var (
	capModes = map[string]surface.CapMode{
		"butt":      surface.ButtCap,
		"round":     surface.RoundCap,
		"square":    surface.SquareCap,
		"cubic":     surface.CubicCap,
		"quadratic": surface.QuadraticCap,
	}
	joinModes = map[string]surface.JoinMode{
		"miter":      surface.Miter,
		"miter-clip": surface.MiterClip,
		"arc-clip":   surface.ArcClip,
		"round":      surface.Round,
		"arc":        surface.Arc,
		"bevel":      surface.Bevel,
	}
	gapModes = map[string]surface.GapMode{
		"flat":      surface.FlatGap,
		"round":     surface.RoundGap,
		"cubic":     surface.CubicGap,
		"quadratic": surface.QuadraticGap,
	}
)

func (c *iconCursor) readStyleAttr(curState *pathState, k, v string) error {
	curStyle := &curState.style
	switch k {
	case "fill":
		col, err := c.readPaint(v)
		if err != nil {
			return err
		}
		curStyle.FillColor = col
	case "stroke":
		col, err := c.readPaint(v)
		if err != nil {
			return err
		}
		curStyle.StrokeColor = col
	case "fill-rule":
		curStyle.NonZeroWinding = v != "evenodd"
	case "stroke-linegap":
		if gap, ok := gapModes[v]; ok {
			curStyle.Stroke.Join.LineGap = gap
		}
	case "stroke-leadlinecap":
		if lc, ok := capModes[v]; ok {
			curStyle.Stroke.Join.LeadLineCap = lc
		}
	case "stroke-linecap":
		if lc, ok := capModes[v]; ok {
			// also used as leading cap, unless specified
			if curStyle.Stroke.Join.LeadLineCap == curStyle.Stroke.Join.TrailLineCap {
				curStyle.Stroke.Join.LeadLineCap = lc
			}
			curStyle.Stroke.Join.TrailLineCap = lc
		}
	case "stroke-linejoin":
		if join, ok := joinModes[v]; ok {
			curStyle.Stroke.Join.LineJoin = join
		}
	case "stroke-miterlimit":
		mLimit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Stroke.Join.MiterLimit = mLimit
	case "stroke-width":
		width, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.StrokeWidth = width
	case "stroke-dashoffset":
		dashOffset, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.Stroke.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Stroke.Dash.Dash = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := c.parseUnit(strings.TrimSpace(dstr), diagPercentage)
			if err != nil {
				return err
			}
			dList[i] = d
		}
		curStyle.Stroke.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.StrokeOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(curState.transform, v)
		if err != nil {
			return err
		}
		curState.transform = m
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// direct presentation attributes.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curState := *c.top()
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if err := c.readStyleAttr(&curState, k, v); err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, curState) // Push style onto stack
	return nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func (c *iconCursor) readStartElement(se xml.StartElement) (err error) {
	var skipDef bool
	if se.Name.Local == "radialGradient" || se.Name.Local == "linearGradient" || c.inGrad {
		skipDef = true
	}
	if c.inDefs && !skipDef {
		ID := ""
		for _, attr := range se.Attr {
			if attr.Name.Local == "id" {
				ID = attr.Value
			}
		}
		if ID != "" && len(c.currentDef) > 0 {
			c.icon.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.currentDef = append(c.currentDef, definition{
			ID:    ID,
			Tag:   se.Name.Local,
			Attrs: se.Attr,
		})
		return nil
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		return c.handleError("cannot process svg element %s", se.Name.Local)
	}
	if err = df(c, se.Attr); err != nil {
		return err
	}
	c.flushPath()
	return nil
}

func (c *iconCursor) readEndElement(se xml.EndElement) {
	c.popStyle()
	switch se.Name.Local {
	case "g":
		if c.inDefs {
			c.currentDef = append(c.currentDef, definition{
				Tag: "endg",
			})
		} else {
			c.popGroup()
		}
	case "title":
		c.inTitleText = false
	case "desc":
		c.inDescText = false
	case "defs":
		if len(c.currentDef) > 0 {
			c.icon.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.inDefs = false
	case "radialGradient", "linearGradient":
		c.inGrad = false
	}
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseBasicFloat(v)
	f /= d
	return
}

func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// unit conversion, to pixels
var units = map[string]float64{
	"px": 1,
	"pt": 4. / 3,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseUnit reads a length, resolving the SVG units and the
// percentages against the view box.
func (c *iconCursor) parseUnit(s string, ref percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := parseBasicFloat(strings.TrimSuffix(s, "%"))
		if err != nil {
			return 0, err
		}
		vb := c.icon.ViewBox
		var length float64
		switch ref {
		case widthPercentage:
			length = vb.W
		case heightPercentage:
			length = vb.H
		default:
			length = math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2
		}
		return f / 100 * length, nil
	}
	if len(s) > 2 {
		if factor, ok := units[s[len(s)-2:]]; ok {
			f, err := parseBasicFloat(s[:len(s)-2])
			return f * factor, err
		}
	}
	return parseBasicFloat(s)
}
