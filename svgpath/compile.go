package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// This file implements the compilation of SVG path data
// (the "d" attribute) into a Path.

var (
	// ErrParamMismatch is returned when a command receives
	// a wrong number of parameters.
	ErrParamMismatch = errors.New("param mismatch")
	// ErrCommandUnknown is returned for unsupported path commands.
	ErrCommandUnknown = errors.New("unknown command")
	errNumberSyntax   = errors.New("invalid number")
)

// pathCursor holds the state needed while compiling path data
type pathCursor struct {
	path                   Path
	placeX, placeY         float64 // current point
	pathStartX, pathStartY float64 // start of the current sub path
	cntlPtX, cntlPtY       float64 // last control point, for smooth curves
	lastKey                byte
	inPath                 bool
	points                 []float64
}

// CompilePath parses the given SVG path data.
// On error, the segments compiled so far are returned.
func CompilePath(svgPath string) (Path, error) {
	var c pathCursor
	err := c.compile(svgPath)
	return c.path, err
}

func (c *pathCursor) compile(svgPath string) error {
	lastIndex := -1
	for i, v := range svgPath {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		return c.addSeg(svgPath[lastIndex:])
	}
	return nil
}

// ParseNumbers reads a list of numbers separated by commas
// or spaces. Signs and dots may also act as separators,
// so that "10-5" and "1.5.5" are read as two numbers.
func ParseNumbers(s string) ([]float64, error) {
	var out []float64
	i := 0
	for i < len(s) {
		switch s[i] {
		case ' ', ',', '\t', '\n', '\r':
			i++
			continue
		}
		start := i
		if s[i] == '+' || s[i] == '-' {
			i++
		}
		seenDot, seenDigit := false, false
	digits:
		for i < len(s) {
			switch ch := s[i]; {
			case '0' <= ch && ch <= '9':
				seenDigit = true
				i++
			case ch == '.' && !seenDot:
				seenDot = true
				i++
			default:
				break digits
			}
		}
		if !seenDigit {
			return out, fmt.Errorf("%w in %q", errNumberSyntax, s)
		}
		if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			k := j
			for k < len(s) && '0' <= s[k] && s[k] <= '9' {
				k++
			}
			if k > j {
				i = k
			}
		}
		f, err := strconv.ParseFloat(s[start:i], 64)
		if err != nil {
			return out, fmt.Errorf("%w in %q: %s", errNumberSyntax, s, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// reflect returns the reflection of the last control point
// around the current point, or the current point if the previous
// command is not in `keys`.
func (c *pathCursor) reflect(keys string) (float64, float64) {
	for i := 0; i < len(keys); i++ {
		if c.lastKey == keys[i] {
			return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
		}
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) start(x, y float64) {
	c.path.Start(ToFixed(x, y))
	c.placeX, c.placeY = x, y
	c.pathStartX, c.pathStartY = x, y
	c.inPath = true
}

// makes sure a sub path is started before adding segments
func (c *pathCursor) ensureStarted() {
	if !c.inPath {
		c.start(c.placeX, c.placeY)
	}
}

func (c *pathCursor) addSeg(segString string) error {
	key := segString[0]
	var err error
	c.points, err = ParseNumbers(segString[1:])
	if err != nil {
		return err
	}
	l := len(c.points)
	k := unicode.ToLower(rune(key))
	rel := rune(key) == k
	if k == 'z' {
		if l != 0 {
			return fmt.Errorf("%w for Z", ErrParamMismatch)
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX, c.placeY = c.pathStartX, c.pathStartY
			c.inPath = false
		}
		c.lastKey = key
		return nil
	}
	var dx, dy float64
	if rel {
		dx, dy = c.placeX, c.placeY
	}
	switch k {
	case 'm':
		if l < 2 || l%2 != 0 {
			return fmt.Errorf("%w for M: %d", ErrParamMismatch, l)
		}
		c.start(c.points[0]+dx, c.points[1]+dy)
		for i := 2; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.placeX, c.placeY = c.points[i]+dx, c.points[i+1]+dy
			c.path.Line(ToFixed(c.placeX, c.placeY))
		}
	case 'l':
		if l == 0 || l%2 != 0 {
			return fmt.Errorf("%w for L: %d", ErrParamMismatch, l)
		}
		c.ensureStarted()
		for i := 0; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.placeX, c.placeY = c.points[i]+dx, c.points[i+1]+dy
			c.path.Line(ToFixed(c.placeX, c.placeY))
		}
	case 'h':
		if l == 0 {
			return fmt.Errorf("%w for H", ErrParamMismatch)
		}
		c.ensureStarted()
		for _, x := range c.points {
			if rel {
				x += c.placeX
			}
			c.placeX = x
			c.path.Line(ToFixed(c.placeX, c.placeY))
		}
	case 'v':
		if l == 0 {
			return fmt.Errorf("%w for V", ErrParamMismatch)
		}
		c.ensureStarted()
		for _, y := range c.points {
			if rel {
				y += c.placeY
			}
			c.placeY = y
			c.path.Line(ToFixed(c.placeX, c.placeY))
		}
	case 'q':
		if l == 0 || l%4 != 0 {
			return fmt.Errorf("%w for Q: %d", ErrParamMismatch, l)
		}
		c.ensureStarted()
		for i := 0; i < l; i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.cntlPtX, c.cntlPtY = c.points[i]+dx, c.points[i+1]+dy
			c.placeX, c.placeY = c.points[i+2]+dx, c.points[i+3]+dy
			c.path.QuadBezier(ToFixed(c.cntlPtX, c.cntlPtY), ToFixed(c.placeX, c.placeY))
		}
	case 't':
		if l == 0 || l%2 != 0 {
			return fmt.Errorf("%w for T: %d", ErrParamMismatch, l)
		}
		c.ensureStarted()
		for i := 0; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			if i == 0 {
				c.cntlPtX, c.cntlPtY = c.reflect("QqTt")
			} else {
				c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
			}
			c.placeX, c.placeY = c.points[i]+dx, c.points[i+1]+dy
			c.path.QuadBezier(ToFixed(c.cntlPtX, c.cntlPtY), ToFixed(c.placeX, c.placeY))
		}
	case 'c':
		if l == 0 || l%6 != 0 {
			return fmt.Errorf("%w for C: %d", ErrParamMismatch, l)
		}
		c.ensureStarted()
		for i := 0; i < l; i += 6 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c1 := ToFixed(c.points[i]+dx, c.points[i+1]+dy)
			c.cntlPtX, c.cntlPtY = c.points[i+2]+dx, c.points[i+3]+dy
			c.placeX, c.placeY = c.points[i+4]+dx, c.points[i+5]+dy
			c.path.CubeBezier(c1, ToFixed(c.cntlPtX, c.cntlPtY), ToFixed(c.placeX, c.placeY))
		}
	case 's':
		if l == 0 || l%4 != 0 {
			return fmt.Errorf("%w for S: %d", ErrParamMismatch, l)
		}
		c.ensureStarted()
		for i := 0; i < l; i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			var c1x, c1y float64
			if i == 0 {
				c1x, c1y = c.reflect("CcSs")
			} else {
				c1x, c1y = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
			}
			c.cntlPtX, c.cntlPtY = c.points[i]+dx, c.points[i+1]+dy
			c.placeX, c.placeY = c.points[i+2]+dx, c.points[i+3]+dy
			c.path.CubeBezier(ToFixed(c1x, c1y), ToFixed(c.cntlPtX, c.cntlPtY), ToFixed(c.placeX, c.placeY))
		}
	case 'a':
		if l == 0 || l%7 != 0 {
			return fmt.Errorf("%w for A: %d", ErrParamMismatch, l)
		}
		c.ensureStarted()
		for i := 0; i < l; i += 7 {
			arc := c.points[i : i+7]
			if rel {
				arc[5] += c.placeX
				arc[6] += c.placeY
			}
			arc[0], arc[1] = math.Abs(arc[0]), math.Abs(arc[1])
			// a zero radius arc is a straight line to the end point
			if arc[0] == 0 || arc[1] == 0 {
				c.placeX, c.placeY = arc[5], arc[6]
				c.path.Line(ToFixed(c.placeX, c.placeY))
				continue
			}
			cx, cy := arcCenter(&arc[0], &arc[1], arc[2]*math.Pi/180, c.placeX, c.placeY,
				arc[5], arc[6], arc[3] != 0, arc[4] != 0)
			c.placeX, c.placeY = c.path.addArc(arc, cx, cy, c.placeX, c.placeY)
		}
	default:
		return fmt.Errorf("%w: %q", ErrCommandUnknown, key)
	}
	c.lastKey = key
	return nil
}
