package climate

import (
	"fmt"
	"html"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/util"
)

var columnLabels = map[string]string{
	"temperature_mean":     "Mean temperature",
	"temperature_mean_min": "Mean minimum temperature",
	"temperature_mean_max": "Mean maximum temperature",
	"temperature_min":      "Lowest temperature",
	"temperature_max":      "Highest temperature",
	"precipitation":        "Precipitation (mm)",
	"raindays":             "Rain days",
	"pressure":             "Pressure (hPa)",
	"sunshine":             "Sunshine (hours)",
}

// Label returns a human readable name for a column
func Label(column string) string {
	if l, ok := columnLabels[column]; ok {
		return l
	}
	return column
}

// ReportHTML renders the records as an HTML fragment: a heading per month
// followed by a list of the measurements that are present
func ReportHTML(source string, records []Record, fahrenheit bool) string {
	unit := "°C"
	if fahrenheit {
		unit = "°F"
	}

	var sb strings.Builder
	sb.WriteString("<h1>Climate report</h1>\n")
	if source != "" {
		sb.WriteString(fmt.Sprintf("<p>Source: %s</p>\n", html.EscapeString(source)))
	}
	for i := range records {
		r := &records[i]
		sb.WriteString(fmt.Sprintf("<h2>%s</h2>\n<ul>\n", html.EscapeString(r.Month)))
		for _, col := range columns {
			v, _ := r.Value(col)
			if v == nil {
				continue
			}
			value := *v
			suffix := ""
			if IsTemperature(col) {
				if fahrenheit {
					value = util.CelsiusToFahrenheit(value)
				}
				suffix = " " + unit
			}
			sb.WriteString(fmt.Sprintf("<li>%s: %s%s</li>\n", Label(col), util.FormatNumber(value), suffix))
		}
		sb.WriteString("</ul>\n")
	}
	return sb.String()
}

// MarkdownReport renders the records as markdown
func MarkdownReport(source string, records []Record, fahrenheit bool) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(ReportHTML(source, records, fahrenheit))
	if err != nil {
		logger.Error("Failed to convert HTML to Markdown:", err)
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return markdown, nil
}
