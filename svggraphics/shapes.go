package svggraphics

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/svgdraw/lib/geo"
	"oss.terrastruct.com/svgdraw/lib/svg"
)

func (g *Graphics) DrawEllipse(cx, cy, rx, ry, shadow float64) {
	g.manageShadow(shadow)
	if !g.hidden {
		el := svg.NewElement("ellipse")
		el.SetAttr("cx", g.format(cx))
		el.SetAttr("cy", g.format(cy))
		el.SetAttr("rx", g.format(rx))
		el.SetAttr("ry", g.format(ry))
		g.applyStrokeStyle(el, true, shadow)
		g.appendElement(el)
	}
	g.ensureVisible(cx+rx+2*shadow, cy+ry+2*shadow)
}

// DrawArc draws the elliptical arc from (x1, y1) to (x2, y2).
func (g *Graphics) DrawArc(rx, ry, x1, y1, x2, y2 float64) {
	if !g.hidden {
		d := fmt.Sprintf("M%s,%s A%s,%s 0 0 0 %s %s",
			g.format(x1), g.format(y1),
			g.format(rx), g.format(ry),
			g.format(x2), g.format(y2),
		)
		el := svg.NewElement("path")
		el.SetAttr("d", d)
		g.applyStrokeStyle(el, true, -1)
		g.appendElement(el)
	}
	g.ensureVisible(x1, y1)
	g.ensureVisible(x2, y2)
}

func (g *Graphics) DrawLine(x1, y1, x2, y2, shadow float64) {
	g.manageShadow(shadow)
	if !g.hidden {
		el := svg.NewElement("line")
		el.SetAttr("x1", g.format(x1))
		el.SetAttr("y1", g.format(y1))
		el.SetAttr("x2", g.format(x2))
		el.SetAttr("y2", g.format(y2))
		g.applyStrokeStyle(el, false, shadow)
		g.appendElement(el)
	}
	g.ensureVisible(x1+2*shadow, y1+2*shadow)
	g.ensureVisible(x2+2*shadow, y2+2*shadow)
}

// DrawRectangle draws a rectangle with optionally rounded corners. Rectangles without
// a positive width and height are skipped: layout rounding can produce them.
func (g *Graphics) DrawRectangle(x, y, width, height, rx, ry, shadow float64, id string) {
	if width <= 0 || height <= 0 {
		return
	}
	g.manageShadow(shadow)
	if !g.hidden {
		el := g.rectangle(x, y, width, height, shadow)
		if rx > 0 && ry > 0 {
			el.SetAttr("rx", g.format(rx))
			el.SetAttr("ry", g.format(ry))
		}
		if id != "" {
			el.SetAttr("id", id)
		}
		g.appendElement(el)
	}
	g.ensureVisible(x+width+2*shadow, y+height+2*shadow)
}

func (g *Graphics) rectangle(x, y, width, height, shadow float64) *svg.Element {
	el := svg.NewElement("rect")
	el.SetAttr("x", g.format(x))
	el.SetAttr("y", g.format(y))
	el.SetAttr("width", g.format(width))
	el.SetAttr("height", g.format(height))
	g.applyStrokeStyle(el, true, shadow)
	return el
}

// DrawPolygon draws a closed polygon from a flat x, y, x, y... list.
// An odd number of coordinates panics.
func (g *Graphics) DrawPolygon(shadow float64, coords ...float64) {
	points, err := geo.Pairs(coords...)
	if err != nil {
		panic(fmt.Sprintf("svggraphics: DrawPolygon: %v", err))
	}

	g.manageShadow(shadow)
	if !g.hidden {
		formatted := make([]string, len(coords))
		for i, c := range coords {
			formatted[i] = g.format(c)
		}
		el := svg.NewElement("polygon")
		el.SetAttr("points", strings.Join(formatted, ","))
		g.applyStrokeStyle(el, true, shadow)
		g.appendElement(el)
	}
	for _, p := range points {
		g.ensureVisible(p.X+2*shadow, p.Y+2*shadow)
	}
}
