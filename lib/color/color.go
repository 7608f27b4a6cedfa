package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const (
	Empty       = ""
	None        = "none"
	Transparent = "transparent"
)

// IsNone reports whether colorString paints nothing.
func IsNone(colorString string) bool {
	switch strings.ToLower(strings.TrimSpace(colorString)) {
	case Empty, None, Transparent:
		return true
	}
	return false
}

// ToHTML normalizes any CSS color to the "#rrggbb" form. Colors that paint nothing
// are returned as "none".
func ToHTML(colorString string) (string, error) {
	if IsNone(colorString) {
		return None, nil
	}
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", colorString, err)
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), nil
}
