package color

import (
	"oss.terrastruct.com/svgdraw/lib/svg"
)

// GradientPolicy is the orientation of a two-stop linear gradient.
type GradientPolicy rune

const (
	GradientHorizontal   GradientPolicy = '|'
	GradientDiagonalUp   GradientPolicy = '\\'
	GradientVertical     GradientPolicy = '-'
	GradientDiagonalDown GradientPolicy = '/'
)

func ParseGradientPolicy(s string) GradientPolicy {
	if len(s) == 1 {
		switch p := GradientPolicy(s[0]); p {
		case GradientHorizontal, GradientDiagonalUp, GradientVertical, GradientDiagonalDown:
			return p
		}
	}
	return GradientDiagonalDown
}

// Vector returns the gradient vector in bounding box percentages.
// Unknown policies run from the top left to the bottom right corner.
func (p GradientPolicy) Vector() (x1, y1, x2, y2 string) {
	switch p {
	case GradientHorizontal:
		return "0%", "50%", "100%", "50%"
	case GradientDiagonalUp:
		return "0%", "100%", "100%", "0%"
	case GradientVertical:
		return "50%", "0%", "50%", "100%"
	default:
		return "0%", "0%", "100%", "100%"
	}
}

// LinearGradient builds a <linearGradient> running from color1 to color2.
func LinearGradient(id, color1, color2 string, policy GradientPolicy) *svg.Element {
	x1, y1, x2, y2 := policy.Vector()

	el := svg.NewElement("linearGradient")
	el.SetAttr("x1", x1)
	el.SetAttr("y1", y1)
	el.SetAttr("x2", x2)
	el.SetAttr("y2", y2)
	el.SetAttr("id", id)

	for _, stop := range []struct{ color, offset string }{
		{color1, "0%"},
		{color2, "100%"},
	} {
		stopEl := svg.NewElement("stop")
		stopEl.SetAttr("stop-color", stop.color)
		stopEl.SetAttr("offset", stop.offset)
		el.AppendChild(stopEl)
	}
	return el
}
