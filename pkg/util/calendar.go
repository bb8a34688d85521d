package util

import (
	"fmt"
	"time"
)

// Day and month names, Sunday and January first.
// Arrays rather than slices so every caller gets its own copy.
var (
	Days       = [...]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}
	DaysFull   = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	Months     = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	MonthsFull = [...]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}
)

// CelsiusToFahrenheit converts a temperature: F = C * 9/5 + 32
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func DayName(d time.Weekday, full bool) string {
	if full {
		return DaysFull[d%7]
	}
	return Days[d%7]
}

func MonthName(m time.Month, full bool) string {
	i := (int(m) - 1) % 12
	if i < 0 {
		i += 12
	}
	if full {
		return MonthsFull[i]
	}
	return Months[i]
}

// CalendarNames returns a copy of one of the name tables by key:
// days, daysFull, months or monthsFull
func CalendarNames(kind string) ([]string, error) {
	var names []string
	switch kind {
	case "days":
		names = Days[:]
	case "daysFull":
		names = DaysFull[:]
	case "months":
		names = Months[:]
	case "monthsFull":
		names = MonthsFull[:]
	default:
		return nil, fmt.Errorf("unknown calendar names %q", kind)
	}
	return append([]string(nil), names...), nil
}
