package svgpath

import "math"

// AddRect adds the closed rectangle with corners
// (minX, minY) and (maxX, maxY).
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(ToFixed(minX, minY))
	p.Line(ToFixed(maxX, minY))
	p.Line(ToFixed(maxX, maxY))
	p.Line(ToFixed(minX, maxY))
	p.Stop(true)
}

// AddRoundRect adds a rectangle whose corners are quarters of an
// ellipse of radii rx and ry, clamped to half the sides.
// A zero radius gives a plain rectangle.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	rx, ry = min(rx, (maxX-minX)/2), min(ry, (maxY-minY)/2)
	if rx <= 0 || ry <= 0 {
		p.AddRect(minX, minY, maxX, maxY)
		return
	}
	// clockwise, starting after the top left corner
	corners := [4]struct{ cx, cy, from float64 }{
		{maxX - rx, minY + ry, -math.Pi / 2},
		{maxX - rx, maxY - ry, 0},
		{minX + rx, maxY - ry, math.Pi / 2},
		{minX + rx, minY + ry, math.Pi},
	}
	p.Start(ToFixed(minX+rx, minY))
	for _, c := range corners {
		e := axisAligned(c.cx, c.cy, rx, ry)
		x, y := e.point(c.from)
		p.Line(ToFixed(x, y))
		x, y = e.point(c.from + math.Pi/2)
		p.arc(e, c.from, c.from+math.Pi/2, x, y)
	}
	p.Stop(true)
}

// AddEllipse adds a closed ellipse centered on (cx, cy).
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	p.Start(ToFixed(cx+rx, cy))
	p.arc(axisAligned(cx, cy, rx, ry), 0, 2*math.Pi, cx+rx, cy)
	p.Stop(true)
}
