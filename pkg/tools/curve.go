package tools

import (
	"fmt"

	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/protocol"
	"github.com/richard-senior/smoothcurve/pkg/util"
	"github.com/spf13/cast"
)

// SmoothPathTool returns the smooth_path tool definition
func SmoothPathTool() protocol.Tool {
	return protocol.Tool{
		Name: "smooth_path",
		Description: `
		Builds the 'd' attribute of an SVG <path> that draws a smooth curve through every given point.
		Each point after the first is joined by a cubic bezier segment whose control points follow
		the line between the neighbouring points.
		Use this when the user wants a line chart or curve drawn through a series of coordinates.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"points": {
					Type:        "array",
					Description: "The points to draw through, in order, as [[x, y], ...] or [{\"x\": x, \"y\": y}, ...]",
					Items:       &protocol.ToolProperty{},
				},
				"smoothing": {
					Type:        "number",
					Description: "How far control points sit from their anchor as a fraction of the neighbour distance, 0 to 1 (default 0.2)",
				},
				"line": {
					Type:        "boolean",
					Description: "Draw straight segments instead of curves",
				},
			},
			Required: []string{"points"},
		},
	}
}

// HandleSmoothPath handles the smooth_path tool invocation
func (tb *Toolbox) HandleSmoothPath(params any) (any, error) {
	logger.Info("Handling smooth_path tool invocation")

	p, err := paramsOf(params)
	if err != nil {
		return nil, err
	}
	raw, err := requiredSlice(p, "points")
	if err != nil {
		return nil, err
	}
	pts, err := parsePoints(raw)
	if err != nil {
		return nil, err
	}
	smoothing, err := optionalSmoothing(p, tb.cfg.Smoothing)
	if err != nil {
		return nil, err
	}
	line, err := optionalBool(p, "line", false)
	if err != nil {
		return nil, err
	}

	command := util.Command(util.BezierCommand)
	if line {
		command = util.LineCommand
	}
	d := util.SvgPath(pts, command, smoothing)
	logger.Debug("Built path from points", len(pts))

	return map[string]any{
		"d":      d,
		"points": len(pts),
	}, nil
}

// NormalizeArrayTool returns the normalize_array tool definition
func NormalizeArrayTool() protocol.Tool {
	return protocol.Tool{
		Name: "normalize_array",
		Description: `
		Linearly rescales a list of numbers so the smallest maps to 'min' and the largest to 'max'.
		'min' may be larger than 'max' to flip the scale, which is how chart values become SVG y coordinates.
		Null entries are allowed. Results that are not finite are returned as the strings "NaN", "Infinity" or "-Infinity".
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"values": {
					Type:        "array",
					Description: "The numbers to rescale, null for a missing value",
					Items:       &protocol.ToolProperty{},
				},
				"min": {
					Type:        "number",
					Description: "The value the smallest input maps to",
				},
				"max": {
					Type:        "number",
					Description: "The value the largest input maps to",
				},
			},
			Required: []string{"values", "min", "max"},
		},
	}
}

// HandleNormalizeArray handles the normalize_array tool invocation
func HandleNormalizeArray(params any) (any, error) {
	logger.Info("Handling normalize_array tool invocation")

	p, err := paramsOf(params)
	if err != nil {
		return nil, err
	}
	raw, err := requiredSlice(p, "values")
	if err != nil {
		return nil, err
	}
	minValue, err := requiredFloat(p, "min")
	if err != nil {
		return nil, err
	}
	maxValue, err := requiredFloat(p, "max")
	if err != nil {
		return nil, err
	}

	values := make([]*float64, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("value %d is not a number: %w", i, err)
		}
		values[i] = &f
	}

	return map[string]any{
		"values": jsonNumbers(util.NormalizeArray(values, minValue, maxValue)),
	}, nil
}
