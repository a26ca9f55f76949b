// Implements a raster surface, by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

var _ surface.Surface = (*Surface)(nil) // assert interface conformance

// Surface paints into an *image.RGBA.
// The current path is kept so that it may be both filled and stroked.
type Surface struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher // to avoid shared state
	filler  *rasterx.Filler // we use separated instance

	stack *surface.Stack
	path  svgpath.Path
}

// New returns a surface painting into a fresh transparent image.
func New(width, height int) *Surface {
	return NewForImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewForImage returns a surface painting into `img`.
func NewForImage(img *image.RGBA) *Surface {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Surface{
		img:     img,
		scanner: scanner,
		dasher:  rasterx.NewDasher(w, h, scanner),
		filler:  rasterx.NewFiller(w, h, scanner),
		stack:   surface.NewStack(),
	}
}

// NewSurface is a document surface factory.
func NewSurface(width, height int) surface.Surface { return New(width, height) }

// Image returns the destination image.
func (rd *Surface) Image() *image.RGBA { return rd.img }

// WritePNG encodes the current image.
func (rd *Surface) WritePNG(w io.Writer) error { return png.Encode(w, rd.img) }

func (rd *Surface) Width() int  { return rd.img.Bounds().Dx() }
func (rd *Surface) Height() int { return rd.img.Bounds().Dy() }

func (rd *Surface) Save() { rd.stack.Save() }

func (rd *Surface) Restore() { rd.stack.Restore() }

func (rd *Surface) State() surface.State { return rd.stack.Current }

func (rd *Surface) ClearRect(r geom.Rectangle) {
	off := rd.stack.Current.Offset
	r.X += off.X
	r.Y += off.Y
	target := r.Image().Intersect(rd.img.Bounds())
	if target.Empty() {
		return
	}
	draw.Draw(rd.img, target, image.Transparent, image.Point{}, draw.Src)
}

func (rd *Surface) SetFillColor(c color.Color) { rd.stack.Current.FillColor = c }

func (rd *Surface) SetStrokeColor(c color.Color) { rd.stack.Current.StrokeColor = c }

func (rd *Surface) SetLineWidth(w float64) { rd.stack.Current.LineWidth = w }

func (rd *Surface) SetStrokeOptions(options surface.StrokeOptions) {
	rd.stack.Current.Stroke = options.Resolve()
}

func (rd *Surface) SetWinding(useNonZeroWinding bool) {
	rd.stack.Current.UseNonZeroWinding = useNonZeroWinding
}

func (rd *Surface) Translate(dx, dy float64) {
	rd.stack.Current.Offset = rd.stack.Current.Offset.Add(geom.Point{X: dx, Y: dy})
}

func (rd *Surface) ClearPath() { rd.path.Clear() }

func (rd *Surface) Start(a fixed.Point26_6) { rd.path.Start(rd.stack.Current.Apply(a)) }

func (rd *Surface) Line(b fixed.Point26_6) { rd.path.Line(rd.stack.Current.Apply(b)) }

func (rd *Surface) QuadBezier(b, c fixed.Point26_6) {
	st := rd.stack.Current
	rd.path.QuadBezier(st.Apply(b), st.Apply(c))
}

func (rd *Surface) CubeBezier(b, c, d fixed.Point26_6) {
	st := rd.stack.Current
	rd.path.CubeBezier(st.Apply(b), st.Apply(c), st.Apply(d))
}

func (rd *Surface) Stop(closeLoop bool) { rd.path.Stop(closeLoop) }

func (rd *Surface) Fill() {
	st := rd.stack.Current
	if st.FillColor == nil || len(rd.path) == 0 {
		return
	}
	rd.filler.Clear()
	rd.filler.SetWinding(st.UseNonZeroWinding)
	rd.path.AddTo(rd.filler)
	rd.filler.SetColor(st.FillColor)
	rd.filler.Draw()
	rd.filler.SetWinding(true) // default is true
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		surface.Round:     rasterx.Round,
		surface.Bevel:     rasterx.Bevel,
		surface.Miter:     rasterx.Miter,
		surface.MiterClip: rasterx.MiterClip,
		surface.Arc:       rasterx.Arc,
		surface.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		surface.ButtCap:      rasterx.ButtCap,
		surface.SquareCap:    rasterx.SquareCap,
		surface.RoundCap:     rasterx.RoundCap,
		surface.CubicCap:     rasterx.CubicCap,
		surface.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		surface.FlatGap:      rasterx.FlatGap,
		surface.RoundGap:     rasterx.RoundGap,
		surface.CubicGap:     rasterx.CubicGap,
		surface.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (rd *Surface) Stroke() {
	st := rd.stack.Current
	if st.StrokeColor == nil || st.LineWidth <= 0 || len(rd.path) == 0 {
		return
	}
	options := st.Stroke // already resolved
	rd.dasher.Clear()
	rd.dasher.SetStroke(
		fixed.Int26_6(st.LineWidth*64), fixed.Int26_6(options.Join.MiterLimit*64),
		capToFunc[options.Join.LeadLineCap], capToFunc[options.Join.TrailLineCap],
		gapToFunc[options.Join.LineGap], joinToJoin[options.Join.LineJoin],
		options.Dash.Dash, options.Dash.DashOffset,
	)
	rd.path.AddTo(rd.dasher)
	rd.dasher.SetColor(st.StrokeColor)
	rd.dasher.Draw()
}
