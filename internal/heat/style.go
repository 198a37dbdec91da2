package heat

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Style holds the constants of the severity ramp and of the overlay itself.
// The zero value is not useful; start from DefaultStyle.
type Style struct {
	// HueLow is the hue (degrees) at percentage 0, HueHigh at percentage 1.
	// The defaults give a green to red ramp.
	HueLow  float64 `yaml:"hue_low"`
	HueHigh float64 `yaml:"hue_high"`

	// Saturation and Lightness are percentages in [0, 100].
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`

	// Alpha is the fill opacity in [0, 1].
	Alpha float64 `yaml:"alpha"`

	// ZIndex is the stacking order of the overlay: above base layers, below UI.
	ZIndex int `yaml:"z_index"`

	// IncludeUnmatched draws named features that have no value as zero-value
	// shapes instead of dropping them.
	IncludeUnmatched bool `yaml:"include_unmatched"`
}

func DefaultStyle() Style {
	return Style{
		HueLow:     120,
		HueHigh:    0,
		Saturation: 100,
		Lightness:  50,
		Alpha:      0.3,
		ZIndex:     2,
	}
}

func (s Style) Validate() error {
	switch {
	case s.Saturation < 0 || s.Saturation > 100:
		return fmt.Errorf("style: saturation %v out of [0, 100]", s.Saturation)
	case s.Lightness < 0 || s.Lightness > 100:
		return fmt.Errorf("style: lightness %v out of [0, 100]", s.Lightness)
	case s.Alpha < 0 || s.Alpha > 1:
		return fmt.Errorf("style: alpha %v out of [0, 1]", s.Alpha)
	case math.IsNaN(s.HueLow) || math.IsNaN(s.HueHigh):
		return errors.New("style: hue is NaN")
	}
	return nil
}

// ColorAt maps a percentage in [0, 1] onto the hue ramp.
func (s Style) ColorAt(percentage float64) Color {
	return Color{
		H: s.HueLow + (s.HueHigh-s.HueLow)*percentage,
		S: s.Saturation,
		L: s.Lightness,
		A: s.Alpha,
	}
}

// Color is an HSLA colour: hue in degrees, saturation and lightness in
// percent, alpha in [0, 1].
type Color struct {
	H, S, L, A float64
}

// String renders the colour as a CSS hsla() value.
func (c Color) String() string {
	return "hsla(" + num(c.H) + ", " + num(c.S) + "%, " + num(c.L) + "%, " + num(c.A) + ")"
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Colorful returns the opaque RGB equivalent.
func (c Color) Colorful() colorful.Color {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, c.S/100, c.L/100).Clamped()
}

// Hex returns the opaque RGB equivalent as #rrggbb.
func (c Color) Hex() string { return c.Colorful().Hex() }

// NRGBA returns the colour with its alpha applied.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Colorful().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.A * 255))}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) { return c.NRGBA().RGBA() }

// Over composites the colour onto an opaque background, for surfaces
// without transparency.
func (c Color) Over(bg colorful.Color) colorful.Color {
	return bg.BlendRgb(c.Colorful(), c.A).Clamped()
}
