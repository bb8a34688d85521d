package tools

import (
	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/protocol"
	"github.com/richard-senior/smoothcurve/pkg/util"
)

// CelsiusToFahrenheitTool returns the celsius_to_fahrenheit tool definition
func CelsiusToFahrenheitTool() protocol.Tool {
	return protocol.Tool{
		Name:        "celsius_to_fahrenheit",
		Description: "Converts a temperature in degrees Celsius to degrees Fahrenheit",
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"celsius": {
					Type:        "number",
					Description: "The temperature in degrees Celsius",
				},
			},
			Required: []string{"celsius"},
		},
	}
}

// HandleCelsiusToFahrenheit handles the celsius_to_fahrenheit tool invocation
func HandleCelsiusToFahrenheit(params any) (any, error) {
	logger.Info("Handling celsius_to_fahrenheit tool invocation")

	p, err := paramsOf(params)
	if err != nil {
		return nil, err
	}
	c, err := requiredFloat(p, "celsius")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"celsius":    c,
		"fahrenheit": jsonNumber(util.CelsiusToFahrenheit(c)),
	}, nil
}

// CalendarNamesTool returns the calendar_names tool definition
func CalendarNamesTool() protocol.Tool {
	return protocol.Tool{
		Name:        "calendar_names",
		Description: "Returns day or month names, Sunday and January first, abbreviated or in full",
		InputSchema: protocol.InputSchema{
			Type: "object",
			Properties: map[string]protocol.ToolProperty{
				"kind": {
					Type:        "string",
					Description: "Which names to return",
					Enum:        []string{"days", "daysFull", "months", "monthsFull"},
				},
			},
			Required: []string{"kind"},
		},
	}
}

// HandleCalendarNames handles the calendar_names tool invocation
func HandleCalendarNames(params any) (any, error) {
	logger.Info("Handling calendar_names tool invocation")

	p, err := paramsOf(params)
	if err != nil {
		return nil, err
	}
	kind, err := optionalString(p, "kind", "")
	if err != nil {
		return nil, err
	}
	names, err := util.CalendarNames(kind)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"kind":  kind,
		"names": names,
	}, nil
}
