// Command okpaper imports an SVG file into a document and
// writes a rendered frame as PNG or PDF.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/okpaper/document"
	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/ggsurface"
	"github.com/benoitkugler/okpaper/internal/logger"
	"github.com/benoitkugler/okpaper/item"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgicon"
	"github.com/benoitkugler/okpaper/svgpdf"
	"github.com/benoitkugler/okpaper/svgraster"
)

type options struct {
	in, out       string
	backend       string
	width, height int
	fit           bool
	selectAll     bool
	strict        bool
	verbose       bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "okpaper: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "okpaper: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: okpaper -in icon.svg [flags]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.in, "in", "", "SVG file to import")
	flag.StringVar(&opts.out, "out", "frame.png", "output file")
	flag.StringVar(&opts.backend, "backend", "raster", "surface backend: raster, gg or pdf")
	flag.IntVar(&opts.width, "w", int(document.DefaultSize.Width), "frame width")
	flag.IntVar(&opts.height, "h", int(document.DefaultSize.Height), "frame height")
	flag.BoolVar(&opts.fit, "fit", true, "scale the icon to the frame")
	flag.BoolVar(&opts.selectAll, "select", false, "select the imported paths")
	flag.BoolVar(&opts.strict, "strict", false, "fail on unsupported SVG elements")
	flag.BoolVar(&opts.verbose, "v", false, "log to stderr")
	flag.Parse()

	if opts.in == "" {
		flag.Usage()
		return options{}, errors.New("missing input file")
	}
	if opts.width <= 0 || opts.height <= 0 {
		return options{}, fmt.Errorf("invalid frame size %dx%d", opts.width, opts.height)
	}
	return opts, nil
}

func newSurface(backend string, width, height int) (surface.Surface, error) {
	switch backend {
	case "raster":
		return svgraster.New(width, height), nil
	case "gg":
		return ggsurface.New(width, height), nil
	case "pdf":
		return svgpdf.New(width, height), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func run(opts options) error {
	if opts.verbose {
		logger.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s, err := newSurface(opts.backend, opts.width, opts.height)
	if err != nil {
		return err
	}
	doc := document.New(document.NewRegistry(), document.WithSurface(s))

	mode := svgicon.WarnErrorMode
	if opts.strict {
		mode = svgicon.StrictErrorMode
	}
	icon, err := svgicon.ReadIcon(opts.in, svgicon.WithErrorMode(mode), svgicon.WithStyle(doc.CurrentStyle()))
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.in, err)
	}
	if opts.fit {
		b := doc.Bounds()
		icon.SetTarget(b.X, b.Y, b.Width, b.Height)
	}
	doc.ActiveLayer().AddChild(icon.Root)
	if opts.selectAll {
		paths := icon.Paths()
		items := make([]item.Drawable, len(paths))
		for i, p := range paths {
			items[i] = p
		}
		doc.SetSelectedItems(items)
	}

	doc.Draw()
	logger.Get().Info("frame drawn", "paths", len(icon.Paths()), "selected", doc.SelectedItemCount(), "size", geom.Size{Width: float64(opts.width), Height: float64(opts.height)})

	return write(s, opts.out)
}

func write(s surface.Surface, out string) error {
	switch s := s.(type) {
	case *svgpdf.Surface:
		return s.WriteFile(out)
	case *ggsurface.Surface:
		defer s.Close()
		return writePNG(out, s.WritePNG)
	case *svgraster.Surface:
		return writePNG(out, s.WritePNG)
	}
	return fmt.Errorf("unsupported surface %T", s)
}

func writePNG(out string, encode func(w io.Writer) error) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err = encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
