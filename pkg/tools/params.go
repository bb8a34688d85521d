package tools

import (
	"fmt"
	"math"

	"github.com/richard-senior/smoothcurve/pkg/util"
	"github.com/spf13/cast"
)

// paramsOf returns the arguments map of a tool call. A nil params is an empty map.
func paramsOf(params any) (map[string]any, error) {
	if params == nil {
		return map[string]any{}, nil
	}
	paramsMap, ok := params.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid parameters format")
	}
	return paramsMap, nil
}

func requiredFloat(p map[string]any, key string) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func optionalFloat(p map[string]any, key string, def float64) (float64, error) {
	if v, ok := p[key]; !ok || v == nil {
		return def, nil
	}
	return requiredFloat(p, key)
}

// optionalSmoothing reads a smoothing ratio, which like the config value must lie in [0,1]
func optionalSmoothing(p map[string]any, def float64) (float64, error) {
	v, err := optionalFloat(p, "smoothing", def)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("smoothing must be between 0 and 1, got %v", v)
	}
	return v, nil
}

func optionalString(p map[string]any, key string, def string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%s must be a string: %w", key, err)
	}
	return s, nil
}

func optionalBool(p map[string]any, key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func requiredSlice(p map[string]any, key string) ([]any, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%s parameter is required", key)
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an array: %w", key, err)
	}
	return s, nil
}

// parsePoints accepts [[x, y], ...] or [{"x": x, "y": y}, ...]
func parsePoints(raw []any) ([]util.Point, error) {
	pts := make([]util.Point, 0, len(raw))
	for i, item := range raw {
		var x, y any
		switch v := item.(type) {
		case map[string]any:
			x, y = v["x"], v["y"]
		default:
			pair, err := cast.ToSliceE(item)
			if err != nil || len(pair) != 2 {
				return nil, fmt.Errorf("point %d must be [x, y] or {x, y}", i)
			}
			x, y = pair[0], pair[1]
		}
		fx, errX := cast.ToFloat64E(x)
		fy, errY := cast.ToFloat64E(y)
		if x == nil || y == nil || errX != nil || errY != nil {
			return nil, fmt.Errorf("point %d has non numeric coordinates", i)
		}
		pts = append(pts, util.Pt(fx, fy))
	}
	return pts, nil
}

// jsonNumber returns v unchanged when JSON can carry it, otherwise its
// textual form: "NaN", "Infinity" or "-Infinity"
func jsonNumber(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return util.FormatNumber(v)
	}
	return v
}

func jsonNumbers(vs []float64) []any {
	ret := make([]any, len(vs))
	for i, v := range vs {
		ret[i] = jsonNumber(v)
	}
	return ret
}

func jsonPoints(pts []util.Point) [][2]any {
	ret := make([][2]any, len(pts))
	for i, p := range pts {
		ret[i] = [2]any{jsonNumber(p.X), jsonNumber(p.Y)}
	}
	return ret
}
