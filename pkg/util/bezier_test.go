package util

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func TestLinePropsSymmetry(t *testing.T) {
	cases := [][2]Point{
		{Pt(0, 0), Pt(3, 4)},
		{Pt(-2, 7), Pt(5, -1)},
		{Pt(1.5, 1.5), Pt(1.5, 9)},
		{Pt(10, 0), Pt(0, 0)},
	}
	for _, c := range cases {
		ab := LineProps(c[0], c[1])
		ba := LineProps(c[1], c[0])

		assert.Equal(t, ab.Length, ba.Length)
		// the two directions differ by half a turn
		delta := math.Mod(ab.Angle-ba.Angle+2*math.Pi, 2*math.Pi)
		assert.InDelta(t, math.Pi, delta, 1e-12, "%v", c)
	}

	l := LineProps(Pt(0, 0), Pt(3, 4))
	assert.Equal(t, 5.0, l.Length)
	assert.Equal(t, math.Atan2(4, 3), l.Angle)
}

func TestLinePropsDegenerate(t *testing.T) {
	l := LineProps(Pt(2, 2), Pt(2, 2))
	assert.Equal(t, 0.0, l.Length)
	assert.Equal(t, 0.0, l.Angle)

	line := Line{Start: Pt(1, 1), End: Pt(4, 5)}
	assert.Equal(t, 5.0, line.Length())
	assert.Equal(t, math.Atan2(4, 3), line.Angle())
}

func TestControlPointBoundaryIsSelfSubstitution(t *testing.T) {
	current := Pt(3, 7)
	other := Pt(11, -2)

	for _, reverse := range []bool{false, true} {
		assert.Equal(t,
			ControlPoint(current, &current, &other, reverse, 0.2),
			ControlPoint(current, nil, &other, reverse, 0.2))
		assert.Equal(t,
			ControlPoint(current, &other, &current, reverse, 0.2),
			ControlPoint(current, &other, nil, reverse, 0.2))
	}

	// no neighbours at all leaves the point where it is
	assert.Equal(t, current, ControlPoint(current, nil, nil, false, 0.2))
}

func TestControlPointHorizontalTangent(t *testing.T) {
	prev, current, next := Pt(0, 0), Pt(10, 0), Pt(20, 0)

	lead := ControlPoint(current, &prev, &next, false, 0.2)
	assert.Equal(t, Pt(14, 0), lead)

	trail := ControlPoint(current, &prev, &next, true, 0.2)
	assert.InDelta(t, 6, trail.X, 1e-12)
	assert.InDelta(t, 0, trail.Y, 1e-12)
}

func TestControlPointZeroSmoothing(t *testing.T) {
	prev, current, next := Pt(-4, 9), Pt(1, 2), Pt(8, 3)
	assert.Equal(t, current, ControlPoint(current, &prev, &next, false, 0))
	assert.Equal(t, current, ControlPoint(current, &prev, &next, true, 0))
}

func TestBezierCommandShape(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0)}
	cmd := BezierCommand(pts[1], 1, pts, 0.2)

	assert.True(t, strings.HasPrefix(cmd, "C 2,0 "), cmd)
	assert.True(t, strings.HasSuffix(cmd, " 10,0"), cmd)
	assert.Len(t, strings.Fields(cmd), 4)

	c, err := NewPathCommand(cmd)
	require.NoError(t, err)
	assert.InDelta(t, 8, c.Params[2], 1e-12)
	assert.InDelta(t, 0, c.Params[3], 1e-12)
}

func TestBezierCommandOutOfRangeIndex(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0)}
	// index 0 has no predecessor, the command must still be produced
	assert.NotPanics(t, func() {
		cmd := BezierCommand(pts[0], 0, pts, 0.2)
		assert.True(t, strings.HasPrefix(cmd, "C 0,0 "), cmd)
	})
}

func TestCubicBezier(t *testing.T) {
	b := CubicBezier{Start: Pt(0, 0), Control1: Pt(1, 0), Control2: Pt(2, 0), End: Pt(3, 0)}

	assert.Equal(t, Pt(1.5, 0), b.PointAt(0.5))
	assert.InDelta(t, 3, b.EstimateLength(20), 1e-9)

	pts := b.PointaliseByCount(4)
	require.Len(t, pts, 4)
	assert.Equal(t, b.Start, pts[0])
	assert.Equal(t, b.End, pts[3])
	assert.InDelta(t, 1, pts[1].X, 1e-12)

	assert.Equal(t, []Point{b.Start, b.End}, b.PointaliseByCount(1))
	assert.Equal(t, "C 1,0 2,0 3,0", b.Command())
}

func TestSmoothSegmentsMatchPath(t *testing.T) {
	pts := []Point{Pt(0, 10), Pt(13.5, 2), Pt(27, 18.25), Pt(40.5, 7), Pt(54, 12)}
	d := SmoothPath(pts, 0.2)

	path, err := ParsePath(d)
	require.NoError(t, err)

	diff(t, pts, path.Anchors())
	diff(t, SmoothSegments(pts, 0.2), path.Segments())

	// every segment starts where the previous one ended
	for i, seg := range path.Segments() {
		assert.Equal(t, pts[i], seg.Start)
		assert.Equal(t, pts[i+1], seg.End)
	}
	assert.Nil(t, SmoothSegments(pts[:1], 0.2))
}

func TestCollinearPointsStayOnLine(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(20, 0)}
	d := SmoothPath(pts, 0.2)
	assert.True(t, strings.HasPrefix(d, "M 0,0 "), d)

	path, err := ParsePath(d)
	require.NoError(t, err)
	segments := path.Segments()
	require.Len(t, segments, 2)

	for _, seg := range segments {
		assert.InDelta(t, 0, seg.Control1.Y, 1e-12)
		assert.InDelta(t, 0, seg.Control2.Y, 1e-12)
		for _, p := range seg.PointaliseByCount(10) {
			assert.InDelta(t, 0, p.Y, 1e-12)
		}
	}
	diff(t, Pt(2, 0), segments[0].Control1)
	diff(t, Pt(6, 0), segments[0].Control2, cmpopts.EquateApprox(0, 1e-12))
	diff(t, Pt(14, 0), segments[1].Control1)
	diff(t, Pt(18, 0), segments[1].Control2, cmpopts.EquateApprox(0, 1e-12))
}

func ExampleControlPoint() {
	prev, current, next := Pt(0, 0), Pt(10, 0), Pt(20, 0)
	fmt.Println(ControlPoint(current, &prev, &next, false, 0.2))
	// Output: 14,0
}
