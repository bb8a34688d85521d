package resources

import (
	"encoding/json"
	"fmt"

	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/climate"
	"github.com/richard-senior/smoothcurve/pkg/protocol"
	"github.com/richard-senior/smoothcurve/pkg/util"
)

const (
	ClimateDatasetURI = "climate://sample"
	ClimateColumnsURI = "climate://columns"
	CalendarNamesURI  = "calendar://names"
)

// ClimateDatasetResource describes the embedded monthly climate dataset
func ClimateDatasetResource() protocol.Resource {
	return protocol.Resource{
		URI:         ClimateDatasetURI,
		Name:        "climate_sample",
		Description: "Monthly climate observations from 2009-01 to 2019-12, missing values are null",
		MimeType:    "application/json",
		Metadata: map[string]any{
			"from":    "2009-01",
			"to":      "2019-12",
			"columns": climate.Columns(),
		},
	}
}

// ClimateColumnsResource lists the measurement columns of the dataset
func ClimateColumnsResource() protocol.Resource {
	return protocol.Resource{
		URI:         ClimateColumnsURI,
		Name:        "climate_columns",
		Description: "The measurement columns of the climate dataset with readable labels",
		MimeType:    "application/json",
	}
}

// CalendarNamesResource holds the day and month name tables
func CalendarNamesResource() protocol.Resource {
	return protocol.Resource{
		URI:         CalendarNamesURI,
		Name:        "calendar_names",
		Description: "Abbreviated and full day and month names, Sunday and January first",
		MimeType:    "application/json",
	}
}

// GetResources returns all available resources
func GetResources() []protocol.Resource {
	return []protocol.Resource{
		ClimateDatasetResource(),
		ClimateColumnsResource(),
		CalendarNamesResource(),
	}
}

// ReadResource returns the contents of the resource at uri
func ReadResource(uri string) (*protocol.ReadResourceResponse, error) {
	logger.Info("Handling resource read for:", uri)

	var content any
	switch uri {
	case ClimateDatasetURI:
		d, err := climate.Sample()
		if err != nil {
			return nil, err
		}
		content = d
	case ClimateColumnsURI:
		cols := []map[string]string{}
		for _, c := range climate.Columns() {
			cols = append(cols, map[string]string{"name": c, "label": climate.Label(c)})
		}
		content = cols
	case CalendarNamesURI:
		content = map[string]any{
			"days":       util.Days,
			"daysFull":   util.DaysFull,
			"months":     util.Months,
			"monthsFull": util.MonthsFull,
		}
	default:
		return nil, fmt.Errorf("resource not found: %s", uri)
	}

	text, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource %s: %w", uri, err)
	}
	return &protocol.ReadResourceResponse{
		Contents: []protocol.ResourceContents{{
			URI:      uri,
			MimeType: "application/json",
			Text:     string(text),
		}},
	}, nil
}
