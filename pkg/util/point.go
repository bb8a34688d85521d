package util

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
/// POINT
///////////////////////////////////////////////////////////////////////////////

// Point represents a 2D point with X and Y coordinates
type Point struct {
	X, Y float64
}

func NewPoint(x float64, y float64) *Point {
	return &Point{
		X: x,
		Y: y,
	}
}

// Pt returns the point (x, y) by value
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// String renders the point as "x,y", the way coordinates appear in path data
func (p Point) String() string {
	return FormatNumber(p.X) + "," + FormatNumber(p.Y)
}

func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// pointAt returns a pointer to pts[i], or nil when i is out of range
func pointAt(pts []Point, i int) *Point {
	if i < 0 || i >= len(pts) {
		return nil
	}
	return &pts[i]
}

///////////////////////////////////////////////////////////////////////////////
/// LINE
///////////////////////////////////////////////////////////////////////////////

// Represents a straight line from the start point to the end point
type Line struct {
	Start, End Point
}

// LineProperties is the length and direction of a line.
// Angle is in radians as returned by math.Atan2.
type LineProperties struct {
	Length float64
	Angle  float64
}

// LineProps returns the properties of the line from a to b.
// Identical points give a zero length and a zero angle.
func LineProps(a, b Point) LineProperties {
	return Line{Start: a, End: b}.Properties()
}

func (l Line) Properties() LineProperties {
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	return LineProperties{
		Length: math.Sqrt(dx*dx + dy*dy),
		Angle:  math.Atan2(dy, dx),
	}
}

func (l Line) Length() float64 {
	return l.Properties().Length
}

func (l Line) Angle() float64 {
	return l.Properties().Angle
}
