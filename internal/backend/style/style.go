// Package style holds the small color/attribute vocabulary the terminal
// backend and renderer share: true (24-bit) color plus the terminal
// default, and a handful of text attributes. There are no indexed-palette
// helpers here; remux's redraw-the-whole-viewport renderer never needs
// them.
package style

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Attribute is a bitset of text attributes.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrReverse
)

// Has returns true if a contains attr.
func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

// Color is either the terminal's default color or a true (24-bit) color.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault is the terminal's default foreground/background.
var ColorDefault = Color{Default: true}

// ColorFromHex parses a "#rrggbb" string into a Color, delegating to
// go-colorful's parser rather than hand-rolling hex decoding.
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("style: invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Blend interpolates between c and other via go-colorful's BlendRgb, at t
// in [0, 1]. Used for the minibuffer message fade and selection-highlight
// tinting.
func (c Color) Blend(other Color, t float64) Color {
	if c.Default || other.Default {
		if t < 0.5 {
			return c
		}
		return other
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	blended := a.BlendRgb(b, t)
	r, g, bl := blended.Clamped().RGB255()
	return Color{R: r, G: g, B: bl}
}

// Style is the visual style applied to one terminal cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// Default returns the terminal's default style.
func Default() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}
