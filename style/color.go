package style

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var errColorSyntax = errors.New("invalid color")

// ParseColor reads an SVG color value: `none`, `transparent`,
// `#rgb`, `#rrggbb`, `rgb(r, g, b)` (integers or percentages)
// or one of the SVG named colors. `none` returns a nil color.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "":
		return nil, nil
	case "transparent":
		return color.NRGBA{}, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHex(v)
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		return parseRGB(strings.TrimSuffix(strings.TrimPrefix(v, "rgb("), ")"))
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA(c), nil
	}
	return nil, fmt.Errorf("%w: %q", errColorSyntax, s)
}

// MustParseColor is like ParseColor but panics on invalid input.
// It is meant for package level constants.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(v string) (color.Color, error) {
	if len(v) == 4 { // #rgb
		v = string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errColorSyntax, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func parseRGB(args string) (color.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: rgb(%s)", errColorSyntax, args)
	}
	var channels [3]uint8
	for i, part := range parts {
		part = strings.TrimSpace(part)
		percent := strings.HasSuffix(part, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rgb(%s)", errColorSyntax, args)
		}
		if percent {
			f = f * 255 / 100
		}
		channels[i] = uint8(math.Round(min(max(f, 0), 255)))
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 0xff}, nil
}
