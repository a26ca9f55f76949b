package svgpath

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/benoitkugler/okpaper/geom"
	"golang.org/x/image/math/fixed"
)

func TestParseNumbers(t *testing.T) {
	for _, test := range []struct {
		in  string
		exp []float64
	}{
		{"1 2 3", []float64{1, 2, 3}},
		{"1,2,3", []float64{1, 2, 3}},
		{"10-5", []float64{10, -5}},
		{"1.5.5", []float64{1.5, 0.5}},
		{" -1e2,+.5", []float64{-100, 0.5}},
		{"", nil},
	} {
		got, err := ParseNumbers(test.in)
		if err != nil {
			t.Errorf("%q: %s", test.in, err)
			continue
		}
		if !reflect.DeepEqual(got, test.exp) {
			t.Errorf("%q: expected %v, got %v", test.in, test.exp, got)
		}
	}

	if _, err := ParseNumbers("1 x"); err == nil {
		t.Error("expected error for invalid number")
	}
}

func TestCompileLines(t *testing.T) {
	p, err := CompilePath("M10 10 H 50 V 30 L 10 30 Z")
	if err != nil {
		t.Fatal(err)
	}
	exp := Path{
		MoveTo(ToFixed(10, 10)),
		LineTo(ToFixed(50, 10)),
		LineTo(ToFixed(50, 30)),
		LineTo(ToFixed(10, 30)),
		Close{},
	}
	if !reflect.DeepEqual(p, exp) {
		t.Errorf("expected %s, got %s", exp, p)
	}

	rel, err := CompilePath("m10 10 h40 v20 l-40 0 z")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rel, exp) {
		t.Errorf("relative commands: expected %s, got %s", exp, rel)
	}
}

func TestCompileImplicitLineTo(t *testing.T) {
	p, err := CompilePath("M0,0 10,0 10,10")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 3 {
		t.Fatalf("expected 3 segments, got %s", p)
	}
	if p[2] != Operation(LineTo(ToFixed(10, 10))) {
		t.Errorf("unexpected last segment %v", p[2])
	}
}

func TestCompileCurves(t *testing.T) {
	p, err := CompilePath("M0 0 C 0 10 10 10 10 0 S 20 -10 20 0 Q 25 10 30 0 T 40 0")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 5 {
		t.Fatalf("unexpected path %s", p)
	}
	s, ok := p[2].(CubicTo)
	if !ok {
		t.Fatalf("expected cubic, got %T", p[2])
	}
	// reflection of (10, 10) around (10, 0)
	if s[0] != ToFixed(10, -10) {
		t.Errorf("unexpected smooth control point %v", s[0])
	}
	q, ok := p[4].(QuadTo)
	if !ok {
		t.Fatalf("expected quad, got %T", p[4])
	}
	// reflection of (25, 10) around (30, 0)
	if q[0] != ToFixed(35, -10) {
		t.Errorf("unexpected smooth control point %v", q[0])
	}
}

func TestCompileArc(t *testing.T) {
	p, err := CompilePath("M0 0 A 10 10 0 0 1 10 0")
	if err != nil {
		t.Fatal(err)
	}
	end := p.EndPoints()
	if last := end[len(end)-1]; last != ToFixed(10, 0) {
		t.Errorf("arc should end at (10, 0), got %v", last)
	}
	// the small clockwise arc goes above the chord
	if b := p.Bounds(); b.Y > -1 {
		t.Errorf("unexpected arc bounds %v", b)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, d := range []string{
		"M 10",
		"M 0 0 L 1",
		"M 0 0 C 1 2 3",
		"M 0 0 Z 2",
	} {
		if _, err := CompilePath(d); !errors.Is(err, ErrParamMismatch) {
			t.Errorf("%q: expected param mismatch, got %v", d, err)
		}
	}
	if _, err := CompilePath("M 0 0 K 2"); !errors.Is(err, ErrCommandUnknown) {
		t.Errorf("expected unknown command, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	var p Path
	if b := p.Bounds(); !b.IsEmpty() {
		t.Errorf("empty path should have empty bounds, got %v", b)
	}

	p.AddRect(10, 20, 30, 60)
	if b := p.Bounds(); b != geom.Create(10, 20, 20, 40) {
		t.Errorf("unexpected rectangle bounds %v", b)
	}

	var h Path
	h.Start(ToFixed(0, 5))
	h.Line(ToFixed(10, 5))
	if b := h.Bounds(); b != geom.Create(0, 5, 10, 0) {
		t.Errorf("unexpected horizontal line bounds %v", b)
	}
}

func TestEllipseBounds(t *testing.T) {
	var p Path
	p.AddEllipse(50, 50, 20, 10)
	b := p.Bounds()
	for _, v := range [...][2]float64{
		{b.X, 30}, {b.Y, 40}, {b.Width, 40}, {b.Height, 20},
	} {
		if math.Abs(v[0]-v[1]) > 0.1 {
			t.Errorf("unexpected ellipse bounds %v", b)
		}
	}
}

func TestRoundRect(t *testing.T) {
	var p Path
	p.AddRoundRect(0, 0, 40, 20, 5, 5)
	b := p.Bounds()
	if math.Abs(b.Width-40) > 0.1 || math.Abs(b.Height-20) > 0.1 {
		t.Errorf("unexpected round rect bounds %v", b)
	}
	if _, ok := p[len(p)-1].(Close); !ok {
		t.Error("round rect should be closed")
	}
}

func TestArcBounds(t *testing.T) {
	for _, test := range []struct {
		d    string
		want geom.Rectangle
	}{
		{"M0 0 A 5 5 0 0 1 10 0", geom.Create(0, -5, 10, 5)},
		{"M0 0 A 5 5 0 0 0 10 0", geom.Create(0, 0, 10, 5)},
		// radii are scaled up to join the end points
		{"M0 0 A 1 1 0 0 1 10 0", geom.Create(0, -5, 10, 5)},
		{"M0 0 A 10 10 0 1 1 10 0", geom.Create(-5, -10 - 5*math.Sqrt(3), 20, 10+5*math.Sqrt(3))},
		{"M0 0 A 10 5 90 0 1 0 20", geom.Create(0, 0, 5, 20)},
	} {
		p, err := CompilePath(test.d)
		if err != nil {
			t.Fatal(err)
		}
		b := p.Bounds()
		for _, v := range [...][2]float64{
			{b.X, test.want.X}, {b.Y, test.want.Y}, {b.Width, test.want.Width}, {b.Height, test.want.Height},
		} {
			if math.Abs(v[0]-v[1]) > 0.1 {
				t.Errorf("%s: expected bounds %v, got %v", test.d, test.want, b)
				break
			}
		}
	}
}

func TestRoundRectCorners(t *testing.T) {
	var p Path
	p.AddRoundRect(0, 0, 40, 20, 8, 4)
	if b := p.Bounds(); math.Abs(b.Width-40) > 0.1 || math.Abs(b.Height-20) > 0.1 {
		t.Errorf("unexpected bounds %v", b)
	}
	if p[0] != Operation(MoveTo(ToFixed(8, 0))) {
		t.Errorf("unexpected start %v", p[0])
	}
	// each side ends where the next corner starts
	var lines []fixed.Point26_6
	for _, op := range p {
		if l, ok := op.(LineTo); ok {
			lines = append(lines, fixed.Point26_6(l))
		}
	}
	want := []fixed.Point26_6{ToFixed(32, 0), ToFixed(40, 16), ToFixed(8, 20), ToFixed(0, 4)}
	if len(lines) != len(want) {
		t.Fatalf("expected %d sides, got %d", len(want), len(lines))
	}
	for i, l := range lines {
		if l != want[i] {
			t.Errorf("side %d: expected %v, got %v", i, want[i], l)
		}
	}

	var q Path
	q.AddRoundRect(0, 0, 10, 10, 0, 3)
	if len(q) != 5 {
		t.Errorf("zero radius should give a plain rectangle, got %v", q)
	}
}

func TestTransform(t *testing.T) {
	p, _ := CompilePath("M0 0 L10 0")
	q := p.Transform(geom.Identity.Translate(5, 5))
	if q.ToSVGPath() != "M5.000,5.000 L15.000,5.000" {
		t.Errorf("unexpected transformed path %s", q)
	}
	if p.ToSVGPath() != "M0.000,0.000 L10.000,0.000" {
		t.Error("transform should not modify the source path")
	}
}
