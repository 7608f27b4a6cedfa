package geo

import (
	"fmt"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Translate returns p moved by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Scale returns p with both coordinates multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

type Points []Point

// Pairs turns a flat x, y, x, y... list into points. An odd trailing value is an error.
func Pairs(coords ...float64) (Points, error) {
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("expected an even number of coordinates, got %d", len(coords))
	}
	ps := make(Points, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		ps = append(ps, Point{X: coords[i], Y: coords[i+1]})
	}
	return ps, nil
}

type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
