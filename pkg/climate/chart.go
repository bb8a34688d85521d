package climate

import (
	"fmt"

	"github.com/richard-senior/smoothcurve/pkg/util"
)

// ChartOptions sizes a chart and sets how strongly its curve is smoothed
type ChartOptions struct {
	Width, Height float64
	Smoothing     float64
	Stroke        string
	StrokeWidth   float64
}

// Points lays out one column as chart coordinates. Missing values are
// dropped, the rest are spread evenly over [0, width] and scaled so the
// largest value sits at y=0 and the smallest at y=height.
func Points(records []Record, column string, width, height float64) ([]util.Point, error) {
	col, err := ResolveColumn(column)
	if err != nil {
		return nil, err
	}

	var values []*float64
	for i := range records {
		v, _ := records[i].Value(col)
		if v != nil {
			values = append(values, v)
		}
	}

	ys := util.NormalizeArray(values, height, 0)
	pts := make([]util.Point, len(ys))
	step := 0.0
	if len(ys) > 1 {
		step = width / float64(len(ys)-1)
	}
	for i, y := range ys {
		pts[i] = util.Pt(float64(i)*step, y)
	}
	return pts, nil
}

// Chart returns the smoothed path data for one column
func Chart(records []Record, column string, opts ChartOptions) (string, error) {
	pts, err := Points(records, column, opts.Width, opts.Height)
	if err != nil {
		return "", err
	}
	return util.SmoothPath(pts, opts.Smoothing), nil
}

// ChartSVG wraps the chart of one column in a standalone SVG document
func ChartSVG(records []Record, column string, opts ChartOptions) (*util.SVG, error) {
	d, err := Chart(records, column, opts)
	if err != nil {
		return nil, err
	}
	if d == "" {
		return nil, fmt.Errorf("no %s values to chart", column)
	}
	svg := util.NewBlankSVG(opts.Width, opts.Height)
	svg.Name = column
	svg.Style = util.PathTagOptions{Stroke: opts.Stroke, StrokeWidth: opts.StrokeWidth}
	if err := svg.AddPathData(column, d); err != nil {
		return nil, fmt.Errorf("failed to add chart path: %w", err)
	}
	return svg, nil
}
