package processor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/richard-senior/smoothcurve/internal/config"
	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/util"
)

// Request is the CLI input: the points to draw through and, optionally,
// the smoothing to use
type Request struct {
	Points    [][2]float64 `json:"points"`
	Smoothing *float64     `json:"smoothing,omitempty"`
	Line      bool         `json:"line,omitempty"`
}

// Options controls how a request is rendered
type Options struct {
	// Smoothing, when set, wins over the request and the config
	Smoothing *float64
	// SVG wraps the path in a complete document
	SVG bool
}

// ParseRequest decodes a JSON request
func ParseRequest(input []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(input, &req); err != nil {
		logger.Error("Failed to parse input JSON", err)
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &req, nil
}

// RequestFromArgs builds a request from "x,y" arguments
func RequestFromArgs(args []string) (*Request, error) {
	req := &Request{Points: make([][2]float64, 0, len(args))}
	for _, arg := range args {
		parts := strings.Split(arg, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("point %q must be x,y", arg)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("point %q must be numeric", arg)
		}
		req.Points = append(req.Points, [2]float64{x, y})
	}
	return req, nil
}

// ProcessRequest parses a JSON request and renders it
func ProcessRequest(input []byte, cfg *config.Config, opts Options) ([]byte, error) {
	req, err := ParseRequest(input)
	if err != nil {
		return nil, err
	}
	return Render(req, cfg, opts)
}

// Render draws the request as path data, or as an SVG document with opts.SVG
func Render(req *Request, cfg *config.Config, opts Options) ([]byte, error) {
	smoothing := cfg.Smoothing
	if req.Smoothing != nil {
		smoothing = *req.Smoothing
	}
	if opts.Smoothing != nil {
		smoothing = *opts.Smoothing
	}
	if smoothing < 0 || smoothing > 1 {
		return nil, fmt.Errorf("smoothing must be between 0 and 1, got %v", smoothing)
	}

	pts := make([]util.Point, len(req.Points))
	for i, p := range req.Points {
		pts[i] = util.Pt(p[0], p[1])
	}
	logger.Info("Processing request with points", len(pts))

	command := util.Command(util.BezierCommand)
	if req.Line {
		command = util.LineCommand
	}
	d := util.SvgPath(pts, command, smoothing)
	if !opts.SVG {
		return []byte(d + "\n"), nil
	}
	if d == "" {
		return nil, fmt.Errorf("at least one point is needed to draw an SVG")
	}

	minX, minY, width, height := bounds(pts, smoothing, req.Line)
	// a flat run of points still needs an area to sit in, centred on it
	if width <= 0 {
		width = cfg.Chart.Width
		minX -= width / 2
	}
	if height <= 0 {
		height = cfg.Chart.Height
		minY -= height / 2
	}
	svg := util.NewBlankSVG(width, height)
	svg.MinX, svg.MinY = minX, minY
	svg.Name = "smoothpath"
	svg.Style = util.PathTagOptions{Stroke: cfg.Chart.Stroke, StrokeWidth: cfg.Chart.StrokeWidth}
	if err := svg.AddPathData("curve", d); err != nil {
		return nil, fmt.Errorf("failed to build svg: %w", err)
	}
	return []byte(svg.ToSVG()), nil
}

// bounds returns the origin and size of the box holding the drawn path.
// A cubic lies inside the hull of its control points, so for curves the
// controls are included alongside the anchors.
func bounds(pts []util.Point, smoothing float64, line bool) (minX, minY, width, height float64) {
	all := append([]util.Point(nil), pts...)
	if !line {
		for _, seg := range util.SmoothSegments(pts, smoothing) {
			all = append(all, seg.Control1, seg.Control2)
		}
	}
	minX, minY = all[0].X, all[0].Y
	maxX, maxY := minX, minY
	for _, p := range all[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return minX, minY, maxX - minX, maxY - minY
}
