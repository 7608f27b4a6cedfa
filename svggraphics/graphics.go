// Package svggraphics accumulates drawing primitives into a single SVG document.
//
// A Graphics is created once per diagram, fed primitives sequentially and finally
// consumed by Finalize. Styles are interned into classes of one shared stylesheet
// instead of being repeated inline on every element.
package svggraphics

import (
	"strconv"

	"oss.terrastruct.com/svgdraw/lib/color"
	"oss.terrastruct.com/svgdraw/lib/geo"
	"oss.terrastruct.com/svgdraw/lib/svg"
	"oss.terrastruct.com/svgdraw/lib/svg/style"
)

const (
	// ShadowFilterID is the id of the drop shadow filter shared by every shadowed primitive.
	ShadowFilterID = "shadowFilter"

	DefaultMinSize = 10.
)

type Opts struct {
	// DimensionStyle writes the pixel size and background as an inline style on the root.
	DimensionStyle bool
	MinWidth       float64
	MinHeight      float64
	Background     string
	// Scale multiplies every coordinate on output. Defaults to 1.
	Scale *float64
	// Hover is the stroke color of paths under the mouse.
	Hover string
	// Seed prefixes generated gradient and filter ids so documents can be concatenated.
	Seed                int64
	PreserveAspectRatio string
	// AllowJavascriptLinks lets javascript: URLs through OpenLink.
	AllowJavascriptLinks bool
}

type Graphics struct {
	opts  Opts
	scale float64

	doc  *svg.Document
	root *svg.Element
	defs *svg.Element
	g    *svg.Element

	fill            string
	stroke          string
	strokeWidth     string
	strokeDasharray string

	extent *geo.Extent
	styles *style.Builder

	filterPrefix   string
	gradientPrefix string
	withShadow     bool
	gradients      map[gradientKey]string
	backFilters    map[string]string

	links             []*svg.Element
	path              *svg.PathData
	pendingBackground *svg.Element
	embedded          []embeddedSVG

	hidden    bool
	finalized bool
}

func New(opts *Opts) *Graphics {
	if opts == nil {
		opts = &Opts{}
	}
	scale := 1.
	if opts.Scale != nil {
		scale = *opts.Scale
	}

	root := svg.NewElement("svg")
	root.SetAttr("xmlns", "http://www.w3.org/2000/svg")
	root.SetAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	root.SetAttr("version", "1.1")
	defs := svg.NewElement("defs")
	g := svg.NewElement("g")
	root.AppendChild(defs)
	root.AppendChild(g)

	seed := seed36(opts.Seed)
	gr := &Graphics{
		opts:  *opts,
		scale: scale,

		doc:  svg.NewDocument(root),
		root: root,
		defs: defs,
		g:    g,

		fill:        "black",
		stroke:      "black",
		strokeWidth: svg.Format(scale),

		extent: geo.NewExtent(DefaultMinSize, DefaultMinSize),
		styles: style.NewBuilder(),

		filterPrefix:   "b" + seed,
		gradientPrefix: "g" + seed,
		gradients:      make(map[gradientKey]string),
		backFilters:    make(map[string]string),
	}
	gr.ensureVisible(opts.MinWidth, opts.MinHeight)

	if opts.Hover != "" {
		gr.styles.RegisterNamed("path:hover", style.Attrs{
			{Key: "stroke", Value: opts.Hover + " !important"},
		})
	}
	return gr
}

// seed36 renders |seed| in base 36.
func seed36(seed int64) string {
	u := uint64(seed)
	if seed < 0 {
		u = uint64(-(seed + 1)) + 1
	}
	return strconv.FormatUint(u, 36)
}

func (g *Graphics) Scale() float64 {
	return g.scale
}

// Extent returns the unscaled canvas size accumulated so far.
func (g *Graphics) Extent() geo.Dimension {
	return geo.Dimension{Width: g.extent.MaxX, Height: g.extent.MaxY}
}

func (g *Graphics) format(f float64) string {
	return svg.Format(f * g.scale)
}

func (g *Graphics) ensureVisible(x, y float64) {
	g.extent.Include(x, y)
}

func (g *Graphics) SetFill(c string) {
	if c == color.Empty {
		c = color.None
	}
	g.fill = c
}

func (g *Graphics) Fill() string {
	return g.fill
}

func (g *Graphics) SetStroke(c string) {
	if c == color.Empty {
		c = color.None
	}
	g.stroke = c
}

// SetStrokeWidth sets the unscaled stroke width and an optional dash pattern.
// An empty dash pattern draws solid lines.
func (g *Graphics) SetStrokeWidth(width float64, dasharray string) {
	g.strokeWidth = g.format(width)
	g.strokeDasharray = dasharray
}

// SetHidden toggles dry-run mode. While hidden, primitives still grow the canvas and
// register their definitions but append no element.
func (g *Graphics) SetHidden(hidden bool) {
	g.hidden = hidden
}

func (g *Graphics) Hidden() bool {
	return g.hidden
}

// current is the element new primitives are appended to.
func (g *Graphics) current() *svg.Element {
	if len(g.links) > 0 {
		return g.links[len(g.links)-1]
	}
	return g.g
}

func (g *Graphics) appendElement(el *svg.Element) {
	if g.hidden {
		return
	}
	g.current().AppendChild(el)
}

// applyStrokeStyle sets the class of el from the current paint state. A line class
// always applies, a fill class only when filled.
func (g *Graphics) applyStrokeStyle(el *svg.Element, filled bool, shadow float64) {
	attrs := style.Attrs{
		{Key: "stroke", Value: g.stroke},
		{Key: "stroke-width", Value: g.strokeWidth},
	}
	if g.strokeDasharray != "" {
		attrs = append(attrs, style.Attr{Key: "stroke-dasharray", Value: g.strokeDasharray})
	}
	if shadow > 0 {
		attrs = append(attrs, style.Attr{Key: "filter", Value: "url(#" + ShadowFilterID + ")"})
	}

	class := g.styles.Intern("l", attrs)
	if filled {
		class += " " + g.styles.Intern("b", style.Attrs{{Key: "fill", Value: g.fill}})
	}
	el.SetAttr("class", class)
}
