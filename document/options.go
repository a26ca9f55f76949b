package document

import (
	"log/slog"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/style"
	"github.com/benoitkugler/okpaper/surface"
	"github.com/benoitkugler/okpaper/svgraster"
)

// DefaultSize is the size of documents created without
// surface nor explicit size.
var DefaultSize = geom.Size{Width: 1024, Height: 768}

// SurfaceFactory creates the offscreen surface of a document.
type SurfaceFactory func(width, height int) surface.Surface

// Option configures a Document during creation.
//
// Example:
//
//	// 1024x768 offscreen raster document
//	doc := document.New(reg)
//
//	// Document painting into an existing surface
//	doc := document.New(reg, document.WithSurface(ggsurface.New(800, 600)))
type Option func(*options)

// options holds optional configuration for Document creation.
type options struct {
	surface surface.Surface
	size    *geom.Size
	factory SurfaceFactory
	style   *style.Override
	logger  *slog.Logger
}

// defaultOptions returns the default document options.
func defaultOptions() options {
	return options{
		factory: svgraster.NewSurface,
	}
}

// WithSurface binds the document to an existing surface.
// The size of the document is measured from the surface,
// and takes precedence over WithSize.
func WithSurface(s surface.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithSize sets the size of the document. An offscreen
// surface with matching dimensions is created.
func WithSize(size geom.Size) Option {
	return func(o *options) {
		o.size = &size
	}
}

// WithSurfaceFactory changes how the offscreen surface is created.
// The default is svgraster.NewSurface. A nil factory creates
// a document without surface, for which Draw does nothing.
func WithSurfaceFactory(factory SurfaceFactory) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// WithStyle sets the fields of the baseline style the current
// style of the document is merged over.
func WithStyle(override *style.Override) Option {
	return func(o *options) {
		o.style = override
	}
}

// WithLogger sets the logger of the document.
// The default is the shared okpaper logger, silent
// unless configured.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
