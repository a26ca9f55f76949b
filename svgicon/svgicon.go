// Provides parsing of SVG images into document items.
// Each SVG element producing a shape is converted to an
// item.Path, with its transform already applied, and SVG
// groups are converted to item.Group.
package svgicon

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/benoitkugler/okpaper/geom"
	"github.com/benoitkugler/okpaper/item"
	"github.com/benoitkugler/okpaper/style"
	"golang.org/x/net/html/charset"
)

// ErrorMode is the strategy used when an unsupported element is found.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unsupported elements.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs unsupported elements.
	WarnErrorMode
	// StrictErrorMode aborts the parsing.
	StrictErrorMode
)

var (
	// ErrUnsupportedElement is returned in StrictErrorMode.
	ErrUnsupportedElement = errors.New("unsupported svg element")
	// ErrInvalidIcon is returned when the input has no XML element.
	ErrInvalidIcon = errors.New("invalid svg xml icon")

	errParamMismatch = errors.New("param mismatch")
	errZeroLengthID  = errors.New("zero length id")
)

// Bounds defines a bounding box, such as a viewport.
type Bounds struct{ X, Y, W, H float64 }

// Icon holds data from parsed SVGs.
type Icon struct {
	ViewBox      Bounds
	Width        float64  // top level width attribute, 0 if missing
	Height       float64  // top level height attribute, 0 if missing
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here

	// Root contains the shapes of the image, in painting order.
	Root *item.Group

	grads map[string]*Gradient
	defs  map[string][]definition
}

// Option customizes the parsing.
type Option func(*iconCursor)

// WithErrorMode changes the handling of unsupported elements.
// The default is IgnoreErrorMode.
func WithErrorMode(mode ErrorMode) Option {
	return func(c *iconCursor) { c.errorMode = mode }
}

// WithStyle sets the style the shapes inherit from,
// usually the current style of the target document.
func WithStyle(st *style.Style) Option {
	return func(c *iconCursor) {
		if st != nil {
			c.styleStack[0].style = *st
		}
	}
}

// ReadIconStream reads the Icon from the given io.Reader.
// This only supports a sub-set of SVG, but
// is enough to draw many icons.
func ReadIconStream(stream io.Reader, opts ...Option) (*Icon, error) {
	icon := &Icon{
		Root:  item.NewGroup(),
		defs:  make(map[string][]definition),
		grads: make(map[string]*Gradient),
	}
	cursor := newIconCursor(icon)
	for _, opt := range opts {
		opt(cursor)
	}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, ErrInvalidIcon
				}
				break
			}
			return icon, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			err = cursor.pushStyle(se.Attr)
			if err != nil {
				return icon, err
			}
			err = cursor.readStartElement(se)
			if err != nil {
				return icon, err
			}
		case xml.EndElement:
			cursor.readEndElement(se)
		case xml.CharData:
			if cursor.inTitleText {
				icon.Titles[len(icon.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				icon.Descriptions[len(icon.Descriptions)-1] += string(se)
			}
		}
	}
	return icon, nil
}

// ReadIcon reads the Icon from the named file.
func ReadIcon(iconFile string, opts ...Option) (*Icon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin, opts...)
}

// Paths returns the path items of the icon, in painting order.
func (s *Icon) Paths() []*item.Path {
	var out []*item.Path
	item.Walk(s.Root, func(it item.Item) bool {
		if p, ok := it.(*item.Path); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// Transform applies `m` to every path of the icon.
func (s *Icon) Transform(m geom.Matrix2D) {
	for _, p := range s.Paths() {
		p.SetData(p.Data().Transform(m))
	}
}

// SetTarget transforms the paths so that the view box
// fits the rectangle arguments.
func (s *Icon) SetTarget(x, y, w, h float64) {
	if s.ViewBox.W == 0 || s.ViewBox.H == 0 {
		return
	}
	scaleW := w / s.ViewBox.W
	scaleH := h / s.ViewBox.H
	s.Transform(geom.Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-s.ViewBox.X, -s.ViewBox.Y))
}
