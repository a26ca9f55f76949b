package svgpath

import "math"

// maxArcSpan is the largest parametric angle covered
// by one cubic segment when approximating an ellipse.
const maxArcSpan = math.Pi / 8

// ellipse is an ellipse whose x axis is rotated by an angle
// of sine sin and cosine cos.
type ellipse struct {
	cx, cy, rx, ry float64
	sin, cos       float64
}

// axisAligned returns an ellipse without rotation.
func axisAligned(cx, cy, rx, ry float64) ellipse {
	return ellipse{cx: cx, cy: cy, rx: rx, ry: ry, cos: 1}
}

func (e ellipse) point(eta float64) (x, y float64) {
	s, c := math.Sincos(eta)
	u, v := e.rx*c, e.ry*s
	return e.cx + u*e.cos - v*e.sin, e.cy + u*e.sin + v*e.cos
}

// tangent is the derivative of point.
func (e ellipse) tangent(eta float64) (dx, dy float64) {
	s, c := math.Sincos(eta)
	u, v := -e.rx*s, e.ry*c
	return u*e.cos - v*e.sin, u*e.sin + v*e.cos
}

// param returns the parametric angle of (x, y), which
// is supposed to lie on the ellipse.
func (e ellipse) param(x, y float64) float64 {
	dx, dy := x-e.cx, y-e.cy
	u := dx*e.cos + dy*e.sin
	v := -dx*e.sin + dy*e.cos
	return math.Atan2(v/e.ry, u/e.rx)
}

// arc follows `e` from the parametric angle `from` to `to` with cubic
// Bézier curves, starting at the current point and ending exactly
// at (endX, endY). The tangent lengths follow L. Maisonobe,
// "Drawing an elliptical arc using polylines, quadratic or cubic
// Bézier curves" (2003).
func (p *Path) arc(e ellipse, from, to, endX, endY float64) {
	n := int(math.Abs(to-from)/maxArcSpan) + 1
	step := (to - from) / float64(n)
	t := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	x, y := e.point(from)
	dx, dy := e.tangent(from)
	for i := 1; i <= n; i++ {
		eta := from + step*float64(i)
		nx, ny := e.point(eta)
		if i == n {
			nx, ny = endX, endY
		}
		ndx, ndy := e.tangent(eta)
		p.CubeBezier(ToFixed(x+alpha*dx, y+alpha*dy), ToFixed(nx-alpha*ndx, ny-alpha*ndy), ToFixed(nx, ny))
		x, y, dx, dy = nx, ny, ndx, ndy
	}
}

// arcCenter returns the center of the ellipse drawn by an SVG arc command
// going from (x1, y1) to (x2, y2), whose x axis is rotated by `phi` radians.
// Radii too small to join the two points are scaled up, keeping their ratio.
func arcCenter(rx, ry *float64, phi, x1, y1, x2, y2 float64, large, sweep bool) (cx, cy float64) {
	sin, cos := math.Sincos(phi)
	// start point, relative to the chord middle, in the ellipse frame
	hx, hy := (x1-x2)/2, (y1-y2)/2
	u := cos*hx + sin*hy
	v := -sin*hx + cos*hy

	if l := u*u/(*rx**rx) + v*v/(*ry**ry); l > 1 {
		s := math.Sqrt(l)
		*rx, *ry = *rx*s, *ry*s
	}
	a, b := *rx**rx, *ry**ry
	var k float64
	if num, den := a*b-a*v*v-b*u*u, a*v*v+b*u*u; num > 0 && den > 0 {
		k = math.Sqrt(num / den)
	}
	if large == sweep {
		k = -k
	}
	cu, cv := k**rx*v / *ry, -k**ry*u / *rx
	return cos*cu - sin*cv + (x1+x2)/2, sin*cu + cos*cv + (y1+y2)/2
}

// addArc follows the ellipse centered on (cx, cy) from (px, py) to the
// end point of `args`, the arguments of an SVG arc command:
// rx, ry, x-axis-rotation, large-arc-flag, sweep-flag, x, y.
func (p *Path) addArc(args []float64, cx, cy, px, py float64) (x, y float64) {
	sin, cos := math.Sincos(args[2] * math.Pi / 180)
	e := ellipse{cx: cx, cy: cy, rx: args[0], ry: args[1], sin: sin, cos: cos}
	x, y = args[5], args[6]
	from, to := e.param(px, py), e.param(x, y)
	// the center already selects the large or small arc,
	// the sweep flag gives the direction
	if sweep := args[4] != 0; sweep && to < from {
		to += 2 * math.Pi
	} else if !sweep && to > from {
		to -= 2 * math.Pi
	}
	p.arc(e, from, to, x, y)
	return x, y
}
