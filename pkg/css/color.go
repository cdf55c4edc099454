package css

import (
	"strconv"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"gray":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
	"lime":    {0, 255, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"silver":  {192, 192, 192},
}

// ParseColor accepts a color name or a #rgb / #rrggbb hex value.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// RGB returns the color as unit floats.
func (c Color) RGB() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// TextColor resolves the color property, black when unset or unknown.
func (s *Style) TextColor() Color {
	if c, ok := ParseColor(s.GetColor()); ok {
		return c
	}
	return Color{}
}
