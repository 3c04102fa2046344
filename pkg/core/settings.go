package core

import "slices"

// Font size bounds offered by the settings screen.
const (
	MinFontSize     = 12
	MaxFontSize     = 24
	DefaultFontSize = 16
	DefaultFont     = "sans-serif"
)

// Fonts lists the selectable font families.
var Fonts = []string{"sans-serif", "serif"}

// Settings is the single record of display preferences.
type Settings struct {
	DarkTheme  bool    `json:"dark_theme" yaml:"dark_theme"`
	FontFamily string  `json:"font_family" yaml:"font_family"`
	FontSize   float64 `json:"font_size" yaml:"font_size"`
}

// DefaultSettings returns the preferences used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		FontFamily: DefaultFont,
		FontSize:   DefaultFontSize,
	}
}

// Normalize clamps the font size and falls back to the default font for
// unknown families. A zero size means the default.
func (s Settings) Normalize() Settings {
	if !slices.Contains(Fonts, s.FontFamily) {
		s.FontFamily = DefaultFont
	}
	switch {
	case s.FontSize == 0:
		s.FontSize = DefaultFontSize
	case s.FontSize < MinFontSize:
		s.FontSize = MinFontSize
	case s.FontSize > MaxFontSize:
		s.FontSize = MaxFontSize
	}
	return s
}
