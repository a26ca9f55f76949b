package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func rectPath(s surface.Surface, x, y, w, h float64) {
	var p svgpath.Path
	p.AddRect(x, y, x+w, y+h)
	p.AddTo(s)
}

func TestFill(t *testing.T) {
	s := New(20, 20)
	s.SetFillColor(red)
	rectPath(s, 5, 5, 10, 10)
	s.Fill()

	img := s.Image()
	if c := img.RGBAAt(10, 10); c != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected red inside the rectangle, got %v", c)
	}
	if c := img.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("expected transparent outside the rectangle, got %v", c)
	}
}

func TestNilColor(t *testing.T) {
	s := New(20, 20)
	s.SetFillColor(nil)
	s.SetStrokeColor(nil)
	rectPath(s, 0, 0, 20, 20)
	s.Fill()
	s.Stroke()
	if c := s.Image().RGBAAt(10, 10); c.A != 0 {
		t.Errorf("nil colors should not paint, got %v", c)
	}
}

func TestClearRect(t *testing.T) {
	s := New(20, 20)
	s.SetFillColor(red)
	rectPath(s, 0, 0, 20, 20)
	s.Fill()

	s.ClearRect(geom.Create(0, 0, 10, 21))
	img := s.Image()
	if c := img.RGBAAt(5, 5); c.A != 0 {
		t.Errorf("expected cleared pixel, got %v", c)
	}
	if c := img.RGBAAt(15, 5); c.A != 0xff {
		t.Errorf("pixel outside the cleared area should be kept, got %v", c)
	}

	// out of bounds rectangles are clipped
	s.ClearRect(geom.Create(-10, -10, 100, 100))
	if c := img.RGBAAt(15, 5); c.A != 0 {
		t.Errorf("expected cleared pixel, got %v", c)
	}
}

func TestStrokePreservesPath(t *testing.T) {
	s := New(40, 40)
	s.SetFillColor(red)
	s.SetStrokeColor(color.Black)
	s.SetLineWidth(4)
	rectPath(s, 10, 10, 20, 20)
	s.Fill()
	s.Stroke()

	img := s.Image()
	if c := img.RGBAAt(20, 20); c.R != 0xff {
		t.Errorf("expected filled interior, got %v", c)
	}
	if c := img.RGBAAt(10, 20); c.A != 0xff || c.R != 0 {
		t.Errorf("expected black outline, got %v", c)
	}

	s.ClearPath()
	s.ClearRect(geom.Create(0, 0, 40, 40))
	s.Fill()
	if c := img.RGBAAt(20, 20); c.A != 0 {
		t.Errorf("cleared path should not paint, got %v", c)
	}
}

func TestTranslate(t *testing.T) {
	s := New(40, 40)
	s.SetFillColor(red)
	surface.Scoped(s, func() {
		s.Translate(20, 20)
		rectPath(s, 0, 0, 10, 10)
		s.Fill()
	})
	img := s.Image()
	if c := img.RGBAAt(25, 25); c.A != 0xff {
		t.Errorf("expected translated rectangle, got %v", c)
	}
	if c := img.RGBAAt(5, 5); c.A != 0 {
		t.Errorf("unexpected paint at origin %v", c)
	}
	if !s.State().Offset.IsZero() {
		t.Error("offset should be restored")
	}
}

func TestSaveRestore(t *testing.T) {
	s := New(10, 10)
	s.Restore() // unbalanced calls are ignored
	s.Save()
	s.SetLineWidth(3)
	s.SetFillColor(red)
	s.Restore()
	if st := s.State(); st.LineWidth != 1 || st.FillColor == color.Color(red) {
		t.Errorf("state not restored: %+v", st)
	}
}

func TestWritePNG(t *testing.T) {
	s := NewForImage(image.NewRGBA(image.Rect(0, 0, 8, 4)))
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("unexpected dimensions %dx%d", s.Width(), s.Height())
	}
	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 8 || cfg.Height != 4 {
		t.Errorf("unexpected png dimensions %dx%d", cfg.Width, cfg.Height)
	}
}
