package svg

import (
	"strings"
)

// PathData accumulates the commands of a path "d" attribute.
// Coordinates are written as given; callers apply any output scale first.
type PathData struct {
	Commands []string
}

func NewPathData() *PathData {
	return &PathData{}
}

func point(x, y float64) string {
	return Format(x) + "," + Format(y)
}

func (p *PathData) M(x, y float64) {
	p.Commands = append(p.Commands, "M"+point(x, y))
}

func (p *PathData) L(x, y float64) {
	p.Commands = append(p.Commands, "L"+point(x, y))
}

func (p *PathData) Q(x1, y1, x, y float64) {
	p.Commands = append(p.Commands, "Q"+point(x1, y1)+" "+point(x, y))
}

func (p *PathData) C(x1, y1, x2, y2, x, y float64) {
	p.Commands = append(p.Commands, "C"+point(x1, y1)+" "+point(x2, y2)+" "+point(x, y))
}

// A appends an elliptical arc. The rotation is in degrees and is never scaled.
func (p *PathData) A(rx, ry, rotation, largeArc, sweep, x, y float64) {
	p.Commands = append(p.Commands, strings.Join([]string{
		"A" + point(rx, ry),
		Format(rotation),
		FormatFlag(largeArc),
		FormatFlag(sweep),
		point(x, y),
	}, " "))
}

func (p *PathData) Z() {
	p.Commands = append(p.Commands, "Z")
}

func (p *PathData) Len() int {
	return len(p.Commands)
}

// String joins the commands, each followed by a space.
func (p *PathData) String() string {
	b := &strings.Builder{}
	for _, c := range p.Commands {
		b.WriteString(c)
		b.WriteByte(' ')
	}
	return b.String()
}
