package ggsurface

import (
	"image/color"
	"testing"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
)

func fillRect(s *Surface, c color.Color) {
	var p svgpath.Path
	p.AddRect(0, 0, 20, 20)
	s.SetFillColor(c)
	p.AddTo(s)
	s.Fill()
}

func TestFillAndClear(t *testing.T) {
	s := New(20, 20)
	defer s.Close()

	fillRect(s, color.NRGBA{R: 0xff, A: 0xff})
	pix := s.Context().ResizeTarget()
	if c := pix.GetPixel(10, 10); c.R < 0.9 || c.A < 0.9 {
		t.Fatalf("expected red pixel, got %v", c)
	}

	s.ClearRect(geom.Create(0, 0, 10, 21))
	if c := pix.GetPixel(5, 5); c.A != 0 {
		t.Errorf("expected cleared pixel, got %v", c)
	}
	if c := pix.GetPixel(15, 5); c.A < 0.9 {
		t.Errorf("pixel outside the cleared area should be kept, got %v", c)
	}
}

func TestSaveRestore(t *testing.T) {
	s := New(10, 10)
	defer s.Close()

	s.Restore() // unbalanced
	surface.Scoped(s, func() {
		s.SetLineWidth(5)
		s.Translate(2, 2)
		if s.State().Offset != (geom.Point{X: 2, Y: 2}) {
			t.Error("offset not applied")
		}
	})
	if st := s.State(); st.LineWidth != 1 || !st.Offset.IsZero() {
		t.Errorf("state not restored: %+v", st)
	}
}

func TestMapping(t *testing.T) {
	if lineCap(surface.CubicCap) != lineCap(surface.RoundCap) {
		t.Error("cubic caps should map to round caps")
	}
	if lineJoin(surface.MiterClip) != lineJoin(surface.Miter) {
		t.Error("miter clip should map to miter")
	}
}
