package svggraphics

import (
	"strconv"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/svgdraw/lib/color"
	"oss.terrastruct.com/svgdraw/lib/svg"
)

func filterPrimitive(tag string, attrs ...string) *svg.Element {
	if len(attrs)%2 != 0 {
		panic("svggraphics: odd filter attribute list for " + tag)
	}
	el := svg.NewElement(tag)
	for i := 0; i < len(attrs); i += 2 {
		el.SetAttr(attrs[i], attrs[i+1])
	}
	return el
}

// manageShadow adds the shadow filter to defs the first time a non-zero shadow is drawn.
func (g *Graphics) manageShadow(shadow float64) {
	if shadow == 0 || g.withShadow {
		return
	}
	g.withShadow = true

	filter := svg.NewElement("filter")
	filter.SetAttr("id", ShadowFilterID)
	filter.SetAttr("x", "-1")
	filter.SetAttr("y", "-1")
	filter.SetAttr("width", "300%")
	filter.SetAttr("height", "300%")
	filter.AppendChild(filterPrimitive("feGaussianBlur",
		"result", "blurOut",
		"stdDeviation", svg.Format(2*g.scale),
	))
	filter.AppendChild(filterPrimitive("feColorMatrix",
		"type", "matrix",
		"in", "blurOut",
		"result", "blurOut2",
		"values", "0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 .4 0",
	))
	filter.AppendChild(filterPrimitive("feOffset",
		"result", "blurOut3",
		"in", "blurOut2",
		"dx", svg.Format(4*g.scale),
		"dy", svg.Format(4*g.scale),
	))
	filter.AppendChild(filterPrimitive("feBlend",
		"in", "SourceGraphic",
		"in2", "blurOut3",
		"mode", "normal",
	))
	g.defs.AppendChild(filter)
}

// backgroundFilter returns the id of the flood filter painting c behind text.
func (g *Graphics) backgroundFilter(c string) string {
	if id, ok := g.backFilters[c]; ok {
		return id
	}
	id := g.filterPrefix + strconv.Itoa(len(g.backFilters))
	g.backFilters[c] = id

	filter := svg.NewElement("filter")
	filter.SetAttr("id", id)
	filter.SetAttr("x", "0")
	filter.SetAttr("y", "0")
	filter.SetAttr("width", "1")
	filter.SetAttr("height", "1")
	filter.AppendChild(filterPrimitive("feFlood",
		"flood-color", c,
		"result", "flood",
	))
	filter.AppendChild(filterPrimitive("feComposite",
		"in", "SourceGraphic",
		"in2", "flood",
		"operator", "over",
	))
	g.defs.AppendChild(filter)
	return id
}

type gradientKey struct {
	color1 string
	color2 string
	policy color.GradientPolicy
}

// CreateGradient returns the id of a linear gradient from color1 to color2, adding
// it to defs the first time the combination is asked for.
func (g *Graphics) CreateGradient(color1, color2 string, policy color.GradientPolicy) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to create gradient")

	c1, err := color.ToHTML(color1)
	if err != nil {
		return "", err
	}
	c2, err := color.ToHTML(color2)
	if err != nil {
		return "", err
	}

	key := gradientKey{color1: c1, color2: c2, policy: policy}
	if id, ok := g.gradients[key]; ok {
		return id, nil
	}
	id := g.gradientPrefix + strconv.Itoa(len(g.gradients))
	g.gradients[key] = id
	g.defs.AppendChild(color.LinearGradient(id, c1, c2, policy))
	return id, nil
}

// PaintBackgroundGradient fills the whole canvas with a gradient. The backing rectangle
// is sized when the document is finalized.
func (g *Graphics) PaintBackgroundGradient(color1, color2 string, policy color.GradientPolicy) error {
	id, err := g.CreateGradient(color1, color2, policy)
	if err != nil {
		return err
	}
	g.SetFill("url(#" + id + ")")
	g.SetStroke(color.None)

	if g.hidden {
		return nil
	}
	g.pendingBackground = g.rectangle(0, 0, 0, 0, -1)
	g.current().AppendChild(g.pendingBackground)
	return nil
}
