// Package colorutil picks readable text colors for category backgrounds.
package colorutil

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// DarkText is used on light backgrounds.
	DarkText = "#1a1a1a"
	// LightText is used on dark backgrounds.
	LightText = "#ffffff"
)

// Normalize returns hex as an upper-case "#RRGGBB" string, the form the
// default categories use. The leading '#' is optional on input.
func Normalize(hex string) (string, error) {
	c, err := parse(hex)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(c.Hex()), nil
}

// Valid reports whether hex is a "#rrggbb" color.
func Valid(hex string) bool {
	if !strings.HasPrefix(hex, "#") {
		return false
	}
	_, err := parse(hex)
	return err == nil
}

// Luminance returns the perceived brightness of hex in [0, 1] using the
// 0.299/0.587/0.114 channel weights.
func Luminance(hex string) (float64, error) {
	c, err := parse(hex)
	if err != nil {
		return 0, err
	}
	return 0.299*c.R + 0.587*c.G + 0.114*c.B, nil
}

// parse accepts only the six-digit form; colorful.Hex also takes "#rgb".
func parse(hex string) (colorful.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid color %q, want #rrggbb", hex)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q, want #rrggbb", hex)
	}
	return c, nil
}

// IsLightColor reports whether hex is a light color (luminance above 0.5).
// Unparseable colors count as dark.
func IsLightColor(hex string) bool {
	l, err := Luminance(hex)
	if err != nil {
		return false
	}
	return l > 0.5
}

// ContrastingTextColor returns the text color to draw on a hex background.
func ContrastingTextColor(background string) string {
	if IsLightColor(background) {
		return DarkText
	}
	return LightText
}

// BadgeStyle returns a style with the given background and its contrasting
// foreground.
func BadgeStyle(background string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(ContrastingTextColor(background))).
		Padding(0, 1)
}

// Badge renders name on a background of the given color.
func Badge(name, background string) string {
	return BadgeStyle(background).Render(name)
}
