package tools

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/richard-senior/smoothcurve/internal/config"
	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/climate"
	"github.com/richard-senior/smoothcurve/pkg/protocol"
)

// Toolbox carries the state shared by tool handlers: the configuration,
// the climate dataset and store, and the cache of rendered charts
type Toolbox struct {
	cfg     *config.Config
	dataset *climate.Dataset
	store   *climate.Store
	charts  *cache.Cache
}

// NewToolbox builds the tools' shared state. store may be nil, in which case
// climate queries read the embedded dataset directly.
func NewToolbox(cfg *config.Config, store *climate.Store) (*Toolbox, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	dataset, err := climate.Sample()
	if err != nil {
		return nil, err
	}
	return &Toolbox{
		cfg:     cfg,
		dataset: dataset,
		store:   store,
		charts:  cache.New(cfg.Cache.TTL, 2*cfg.Cache.TTL),
	}, nil
}

// Dataset returns the embedded climate dataset
func (tb *Toolbox) Dataset() *climate.Dataset {
	return tb.dataset
}

// records returns the months in [from, to], from the store when there is one
func (tb *Toolbox) records(from, to string) ([]climate.Record, error) {
	if tb.store != nil {
		return tb.store.Between(from, to)
	}
	return tb.dataset.Between(from, to), nil
}

// ClimateChartTool returns the climate_chart tool definition
func ClimateChartTool() protocol.Tool {
	return protocol.Tool{
		Name: "climate_chart",
		Description: `
		Draws one column of the monthly climate dataset (2009-01 to 2019-12) as a smooth SVG line.
		Months without a value are skipped. Larger values are drawn higher.
		Returns the complete SVG document, the path data and the plotted points.
		`,
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"column": {
					Type:        "string",
					Description: "The measurement to draw",
					Enum:        climate.Columns(),
				},
				"from": {
					Type:        "string",
					Description: "First month to include as YYYY-MM",
				},
				"to": {
					Type:        "string",
					Description: "Last month to include as YYYY-MM",
				},
				"width": {
					Type:        "number",
					Description: "Chart width",
				},
				"height": {
					Type:        "number",
					Description: "Chart height",
				},
				"smoothing": {
					Type:        "number",
					Description: "Curve smoothing, 0 to 1",
				},
			},
			Required: []string{"column"},
		},
	}
}

// HandleClimateChart handles the climate_chart tool invocation
func (tb *Toolbox) HandleClimateChart(params any) (any, error) {
	logger.Info("Handling climate_chart tool invocation")

	p, err := paramsOf(params)
	if err != nil {
		return nil, err
	}
	name, err := optionalString(p, "column", "")
	if err != nil {
		return nil, err
	}
	column, err := climate.ResolveColumn(name)
	if err != nil {
		return nil, err
	}
	from, err := optionalString(p, "from", "")
	if err != nil {
		return nil, err
	}
	to, err := optionalString(p, "to", "")
	if err != nil {
		return nil, err
	}
	opts := climate.ChartOptions{Stroke: tb.cfg.Chart.Stroke, StrokeWidth: tb.cfg.Chart.StrokeWidth}
	if opts.Width, err = optionalFloat(p, "width", tb.cfg.Chart.Width); err != nil {
		return nil, err
	}
	if opts.Height, err = optionalFloat(p, "height", tb.cfg.Chart.Height); err != nil {
		return nil, err
	}
	if opts.Smoothing, err = optionalSmoothing(p, tb.cfg.Smoothing); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive")
	}

	key := fmt.Sprintf("%s|%s|%s|%v|%v|%v", column, from, to, opts.Width, opts.Height, opts.Smoothing)
	if cached, found := tb.charts.Get(key); found {
		logger.Debug("Chart served from cache", key)
		return cached, nil
	}

	records, err := tb.records(from, to)
	if err != nil {
		return nil, err
	}
	pts, err := climate.Points(records, column, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	svg, err := climate.ChartSVG(records, column, opts)
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"column": column,
		"svg":    svg.ToSVG(),
		"d":      svg.Paths.Paths[0].CommandsStr,
		"points": jsonPoints(pts),
	}
	tb.charts.Set(key, result, cache.DefaultExpiration)
	return result, nil
}

// ClimateReportTool returns the climate_report tool definition
func ClimateReportTool() protocol.Tool {
	return protocol.Tool{
		Name:        "climate_report",
		Description: "Summarises the monthly climate dataset as markdown, one section per month",
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"from": {
					Type:        "string",
					Description: "First month to include as YYYY-MM",
				},
				"to": {
					Type:        "string",
					Description: "Last month to include as YYYY-MM",
				},
				"fahrenheit": {
					Type:        "boolean",
					Description: "Report temperatures in degrees Fahrenheit rather than Celsius",
				},
			},
			Required: []string{},
		},
	}
}

// HandleClimateReport handles the climate_report tool invocation
func (tb *Toolbox) HandleClimateReport(params any) (any, error) {
	logger.Info("Handling climate_report tool invocation")

	p, err := paramsOf(params)
	if err != nil {
		return nil, err
	}
	from, err := optionalString(p, "from", "")
	if err != nil {
		return nil, err
	}
	to, err := optionalString(p, "to", "")
	if err != nil {
		return nil, err
	}
	fahrenheit, err := optionalBool(p, "fahrenheit", false)
	if err != nil {
		return nil, err
	}

	records, err := tb.records(from, to)
	if err != nil {
		return nil, err
	}
	markdown, err := climate.MarkdownReport(tb.dataset.Meta.Source, records, fahrenheit)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"markdown": markdown,
		"months":   len(records),
	}, nil
}
