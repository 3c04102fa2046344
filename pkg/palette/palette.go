// Package palette converts between the packed ARGB colors stored on notes and
// the `#RRGGBB` notation used by the editor markup.
package palette

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 0xAARRGGBB value.
type Color uint32

const (
	// DefaultText is the color of note text when nothing else is chosen.
	DefaultText Color = 0xFF000000
	// DefaultBackground is the default note card color.
	DefaultBackground Color = 0xFFFFFFFF

	Black Color = 0xFF000000
	Red   Color = 0xFFFF0000
	Blue  Color = 0xFF0000FF
	Green Color = 0xFF00FF00
	Gray  Color = 0xFF888888
)

// Picker lists the colors offered by the text color chooser, in display order.
var Picker = []Color{Black, Red, Blue, Green, Gray}

// FromRGB builds an opaque color.
func FromRGB(r, g, b uint8) Color {
	return Color(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB returns the color channels, ignoring alpha.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// Hex formats the RGB part as `#RRGGBB` with uppercase digits.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

func (c Color) String() string {
	return c.Hex()
}

// ParseHex parses `#RGB` or `#RRGGBB` (the leading '#' is optional, any case)
// into an opaque color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return 0, fmt.Errorf("invalid hex color %q", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return FromRGB(r, g, b), nil
}

// NormalizeHex returns s in canonical `#RRGGBB` form.
func NormalizeHex(s string) (string, error) {
	c, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// MarshalText encodes the color as `#RRGGBB`.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes a hex color.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
