package geo

import (
	"math"

	"oss.terrastruct.com/svgdraw/lib/go2"
)

// Extent tracks how far right and down anything has been drawn.
// It only ever grows.
type Extent struct {
	MaxX float64
	MaxY float64
}

func NewExtent(minX, minY float64) *Extent {
	return &Extent{MaxX: minX, MaxY: minY}
}

// Include grows e so that (x, y) plus a one unit margin is covered.
// Values are kept whole.
func (e *Extent) Include(x, y float64) {
	e.MaxX = go2.Max(e.MaxX, math.Floor(x+1))
	e.MaxY = go2.Max(e.MaxY, math.Floor(y+1))
}

// Scaled returns the extent multiplied by scale and truncated to whole pixels.
func (e *Extent) Scaled(scale float64) (width, height int) {
	return int(e.MaxX * scale), int(e.MaxY * scale)
}
