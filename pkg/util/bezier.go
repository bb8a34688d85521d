package util

import (
	"math"
	"strings"
)

// ControlPoint positions a bezier control point relative to current.
// The tangent at current is approximated by the line from previous to next;
// a nil previous or next is replaced by current itself, which flattens the
// tangent at the ends of a sequence. reverse turns the tangent through PI
// for the trailing control point. smoothing scales the tangent length.
func ControlPoint(current Point, previous, next *Point, reverse bool, smoothing float64) Point {
	p := current
	if previous != nil {
		p = *previous
	}
	n := current
	if next != nil {
		n = *next
	}

	o := LineProps(p, n)

	angle := o.Angle
	if reverse {
		angle += math.Pi
	}
	length := o.Length * smoothing

	return Point{
		X: current.X + math.Cos(angle)*length,
		Y: current.Y + math.Sin(angle)*length,
	}
}

// BezierCommand builds the cubic bezier "C x2,y2 x1,y1 x,y" command that ends
// at pts[i]. Neighbours outside the slice are treated as absent.
// It satisfies Command.
func BezierCommand(point Point, i int, pts []Point, smoothing float64) string {
	cps, cpe := bezierControls(point, i, pts, smoothing)

	var sb strings.Builder
	sb.WriteString("C ")
	sb.WriteString(cps.String())
	sb.WriteByte(' ')
	sb.WriteString(cpe.String())
	sb.WriteByte(' ')
	sb.WriteString(point.String())
	return sb.String()
}

// bezierControls returns the start and end control points of the segment ending at pts[i]
func bezierControls(point Point, i int, pts []Point, smoothing float64) (Point, Point) {
	var start Point
	if prev := pointAt(pts, i-1); prev != nil {
		start = ControlPoint(*prev, pointAt(pts, i-2), &point, false, smoothing)
	} else {
		// i == 0 has no segment to start from; anchor the control at the point itself
		start = ControlPoint(point, nil, &point, false, smoothing)
	}
	end := ControlPoint(point, pointAt(pts, i-1), pointAt(pts, i+1), true, smoothing)
	return start, end
}

// SmoothSegments returns the cubic segments SmoothPath draws for pts
func SmoothSegments(pts []Point, smoothing float64) []CubicBezier {
	if len(pts) < 2 {
		return nil
	}
	segments := make([]CubicBezier, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		cps, cpe := bezierControls(pts[i], i, pts, smoothing)
		segments = append(segments, CubicBezier{
			Start:    pts[i-1],
			Control1: cps,
			Control2: cpe,
			End:      pts[i],
		})
	}
	return segments
}

///////////////////////////////////////////////////////////////////////////////
/// CUBIC BEZIER
///////////////////////////////////////////////////////////////////////////////

// An object which holds information about a single cubic bezier segment
type CubicBezier struct {
	Start    Point
	Control1 Point
	Control2 Point
	End      Point
}

// PointAt evaluates the curve at parameter t in [0, 1]
func (b CubicBezier) PointAt(t float64) Point {
	// B(t) = (1-t)³P₀ + 3(1-t)²tP₁ + 3(1-t)t²P₂ + t³P₃
	mt := 1 - t
	a := mt * mt * mt
	c1 := 3 * mt * mt * t
	c2 := 3 * mt * t * t
	d := t * t * t

	return Point{
		X: a*b.Start.X + c1*b.Control1.X + c2*b.Control2.X + d*b.End.X,
		Y: a*b.Start.Y + c1*b.Control1.Y + c2*b.Control2.Y + d*b.End.Y,
	}
}

// PointaliseByCount generates n evenly parameterised points along the curve.
// Fewer than two points returns just the start and end.
func (b CubicBezier) PointaliseByCount(n int) []Point {
	if n < 2 {
		return []Point{b.Start, b.End}
	}
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		points[i] = b.PointAt(t)
	}
	// the ends are exact, not evaluated
	points[0] = b.Start
	points[n-1] = b.End
	return points
}

// EstimateLength approximates the arc length with a polyline of the given number of segments
func (b CubicBezier) EstimateLength(segments int) float64 {
	if segments < 1 {
		segments = 20
	}
	var length float64
	prev := b.Start
	for i := 1; i <= segments; i++ {
		current := b.PointAt(float64(i) / float64(segments))
		length += LineProps(prev, current).Length
		prev = current
	}
	return length
}

// Command converts this segment into path data
func (b CubicBezier) Command() string {
	return "C " + b.Control1.String() + " " + b.Control2.String() + " " + b.End.String()
}
