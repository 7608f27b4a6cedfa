package svggraphics

import (
	"fmt"

	"oss.terrastruct.com/svgdraw/lib/geo"
	"oss.terrastruct.com/svgdraw/lib/svg"
)

// Segment is one command of a Path. The implementations are MoveTo, LineTo, QuadTo,
// CubicTo, ArcTo and Close.
type Segment interface {
	segment()
}

type MoveTo struct {
	P geo.Point
}

type LineTo struct {
	P geo.Point
}

type QuadTo struct {
	C geo.Point
	P geo.Point
}

type CubicTo struct {
	C1 geo.Point
	C2 geo.Point
	P  geo.Point
}

// ArcTo is an elliptical arc ending at P. LargeArc and Sweep are flags: only an
// exact 0 is false. Rotation is in degrees.
type ArcTo struct {
	Rx       float64
	Ry       float64
	Rotation float64
	LargeArc float64
	Sweep    float64
	P        geo.Point
}

type Close struct{}

func (MoveTo) segment()  {}
func (LineTo) segment()  {}
func (QuadTo) segment()  {}
func (CubicTo) segment() {}
func (ArcTo) segment()   {}
func (Close) segment()   {}

type Path struct {
	// ID is written as the id attribute when set.
	ID       string
	Segments []Segment
}

func (p *Path) MoveTo(x, y float64) *Path {
	p.Segments = append(p.Segments, MoveTo{P: geo.Point{X: x, Y: y}})
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	p.Segments = append(p.Segments, LineTo{P: geo.Point{X: x, Y: y}})
	return p
}

func (p *Path) Close() *Path {
	p.Segments = append(p.Segments, Close{})
	return p
}

// DrawPath draws path with every point translated by (x, y).
func (g *Graphics) DrawPath(x, y float64, path Path, shadow float64) {
	g.manageShadow(shadow)
	g.ensureVisible(x, y)

	margin := 2 * shadow
	visible := func(p geo.Point) {
		g.ensureVisible(p.X+x+margin, p.Y+y+margin)
	}
	at := func(p geo.Point) (float64, float64) {
		p = p.Translate(x, y).Scale(g.scale)
		return p.X, p.Y
	}

	d := svg.NewPathData()
	for _, seg := range path.Segments {
		switch seg := seg.(type) {
		case MoveTo:
			d.M(at(seg.P))
			visible(seg.P)
		case LineTo:
			d.L(at(seg.P))
			visible(seg.P)
		case QuadTo:
			cx, cy := at(seg.C)
			px, py := at(seg.P)
			d.Q(cx, cy, px, py)
			visible(seg.C)
			visible(seg.P)
		case CubicTo:
			c1x, c1y := at(seg.C1)
			c2x, c2y := at(seg.C2)
			px, py := at(seg.P)
			d.C(c1x, c1y, c2x, c2y, px, py)
			visible(seg.C1)
			visible(seg.C2)
			visible(seg.P)
		case ArcTo:
			px, py := at(seg.P)
			d.A(seg.Rx*g.scale, seg.Ry*g.scale, seg.Rotation, seg.LargeArc, seg.Sweep, px, py)
			visible(seg.P.Translate(seg.Rx, seg.Ry))
		case Close:
			d.Z()
		default:
			panic(fmt.Sprintf("svggraphics: unknown path segment %T", seg))
		}
	}

	if g.hidden {
		return
	}
	el := svg.NewElement("path")
	el.SetAttr("d", d.String())
	g.applyStrokeStyle(el, true, shadow)
	if path.ID != "" {
		el.SetAttr("id", path.ID)
	}
	g.appendElement(el)
}

type WindingRule int

const (
	NonZero WindingRule = iota
	EvenOdd
)

// BeginPath opens the path buffer used by MoveTo, LineTo, CurveTo, QuadTo, ClosePath
// and FillPath. Coordinates given to those are absolute.
func (g *Graphics) BeginPath() {
	g.path = svg.NewPathData()
}

func (g *Graphics) openPath(op string) *svg.PathData {
	if g.path == nil {
		panic("svggraphics: " + op + " called without BeginPath")
	}
	return g.path
}

func (g *Graphics) MoveTo(x, y float64) {
	g.openPath("MoveTo").M(x*g.scale, y*g.scale)
	g.ensureVisible(x, y)
}

func (g *Graphics) LineTo(x, y float64) {
	g.openPath("LineTo").L(x*g.scale, y*g.scale)
	g.ensureVisible(x, y)
}

func (g *Graphics) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	g.openPath("CurveTo").C(x1*g.scale, y1*g.scale, x2*g.scale, y2*g.scale, x3*g.scale, y3*g.scale)
	g.ensureVisible(x1, y1)
	g.ensureVisible(x2, y2)
	g.ensureVisible(x3, y3)
}

func (g *Graphics) QuadTo(x1, y1, x2, y2 float64) {
	g.openPath("QuadTo").Q(x1*g.scale, y1*g.scale, x2*g.scale, y2*g.scale)
	g.ensureVisible(x1, y1)
	g.ensureVisible(x2, y2)
}

func (g *Graphics) ClosePath() {
	g.openPath("ClosePath").Z()
}

// FillPath emits the buffered path with the current paint state and closes the buffer.
func (g *Graphics) FillPath(rule WindingRule) {
	d := g.openPath("FillPath")
	g.path = nil

	if g.hidden {
		return
	}
	el := svg.NewElement("path")
	el.SetAttr("d", d.String())
	if rule == EvenOdd {
		el.SetAttr("fill-rule", "evenodd")
	}
	g.applyStrokeStyle(el, true, -1)
	g.appendElement(el)
}
