package svggraphics

import (
	"strings"

	"oss.terrastruct.com/svgdraw/lib/svg"
	"oss.terrastruct.com/svgdraw/lib/svg/style"
)

const nbsp = "\u00a0"

type Text struct {
	Content string
	X       float64
	Y       float64

	FontFamily     string
	FontSize       float64
	FontWeight     string
	FontStyle      string
	TextDecoration string

	// TextLength is the width the text is stretched or squeezed to.
	TextLength float64
	// Attributes are written as is after the positioning attributes.
	Attributes      []svg.Attr
	BackgroundColor string
}

func (g *Graphics) DrawText(t Text) {
	var filter string
	if t.BackgroundColor != "" {
		filter = g.backgroundFilter(t.BackgroundColor)
	}
	if !g.hidden {
		el := svg.NewElement("text")
		el.SetAttr("x", g.format(t.X))
		el.SetAttr("y", g.format(t.Y))
		el.SetAttr("lengthAdjust", "spacingAndGlyphs")
		el.SetAttr("textLength", g.format(t.TextLength))

		attrs := style.Attrs{
			{Key: "fill", Value: g.fill},
			{Key: "font-size", Value: g.format(t.FontSize)},
		}
		if t.FontWeight != "" {
			attrs = append(attrs, style.Attr{Key: "font-weight", Value: t.FontWeight})
		}
		if t.FontStyle != "" {
			attrs = append(attrs, style.Attr{Key: "font-style", Value: t.FontStyle})
		}
		if t.TextDecoration != "" {
			attrs = append(attrs, style.Attr{Key: "text-decoration", Value: t.TextDecoration})
		}

		content := t.Content
		if t.FontFamily != "" {
			family := t.FontFamily
			if strings.EqualFold(family, "monospaced") {
				family = "monospace"
			}
			attrs = append(attrs, style.Attr{Key: "font-family", Value: family})
			if strings.EqualFold(family, "monospace") || strings.EqualFold(family, "courier") {
				content = strings.ReplaceAll(content, " ", nbsp)
			}
		}

		if filter != "" {
			el.SetAttr("filter", "url(#"+filter+")")
		}
		for _, a := range t.Attributes {
			el.SetAttr(a.Name, a.Value)
		}
		el.SetAttr("class", g.styles.Intern("t", attrs))
		el.Text = content
		g.appendElement(el)
	}
	g.ensureVisible(t.X, t.Y)
	g.ensureVisible(t.X+t.TextLength, t.Y)
}
