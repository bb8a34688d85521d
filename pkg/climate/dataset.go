package climate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/util"
)

//go:embed sample.json
var sampleJSON []byte

// Meta describes where a dataset came from
type Meta struct {
	Source string `json:"source"`
}

// Record is one month of climate observations. Any measurement may be missing.
type Record struct {
	Month              string   `json:"month" dbtype:"TEXT NOT NULL" column:"month" primary:"true"`
	TemperatureMean    *float64 `json:"temperature_mean" dbtype:"REAL" column:"temperature_mean"`
	TemperatureMeanMin *float64 `json:"temperature_mean_min" dbtype:"REAL" column:"temperature_mean_min"`
	TemperatureMeanMax *float64 `json:"temperature_mean_max" dbtype:"REAL" column:"temperature_mean_max"`
	TemperatureMin     *float64 `json:"temperature_min" dbtype:"REAL" column:"temperature_min"`
	TemperatureMax     *float64 `json:"temperature_max" dbtype:"REAL" column:"temperature_max"`
	Precipitation      *float64 `json:"precipitation" dbtype:"REAL" column:"precipitation"`
	Raindays           *float64 `json:"raindays" dbtype:"REAL" column:"raindays"`
	Pressure           *float64 `json:"pressure" dbtype:"REAL" column:"pressure"`
	Sunshine           *float64 `json:"sunshine" dbtype:"REAL" column:"sunshine"`
}

// Dataset is a source description plus its monthly records in month order
type Dataset struct {
	Meta Meta     `json:"meta"`
	Data []Record `json:"data"`
}

var columns = []string{
	"temperature_mean",
	"temperature_mean_min",
	"temperature_mean_max",
	"temperature_min",
	"temperature_max",
	"precipitation",
	"raindays",
	"pressure",
	"sunshine",
}

// temperature columns hold degrees Celsius
var temperatureColumns = map[string]bool{
	"temperature_mean":     true,
	"temperature_mean_min": true,
	"temperature_mean_max": true,
	"temperature_min":      true,
	"temperature_max":      true,
}

var (
	sampleOnce sync.Once
	sample     *Dataset
	sampleErr  error
)

// Sample returns a copy of the embedded monthly dataset, 2009-01 to 2019-12
func Sample() (*Dataset, error) {
	sampleOnce.Do(func() {
		sample, sampleErr = Parse(sampleJSON)
	})
	if sampleErr != nil {
		return nil, sampleErr
	}
	ret := &Dataset{Meta: sample.Meta, Data: make([]Record, len(sample.Data))}
	for i, r := range sample.Data {
		ret.Data[i] = r.clone()
	}
	return ret, nil
}

// Parse decodes a dataset from its JSON form
func Parse(data []byte) (*Dataset, error) {
	ret := &Dataset{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return ret, nil
}

// Columns returns the names of the measurement columns
func Columns() []string {
	return append([]string(nil), columns...)
}

// IsTemperature reports whether the column holds degrees Celsius
func IsTemperature(column string) bool {
	return temperatureColumns[column]
}

// ResolveColumn maps a user supplied name onto a column name.
// Close misspellings are accepted.
func ResolveColumn(name string) (string, error) {
	for _, c := range columns {
		if c == name {
			return c, nil
		}
	}
	best, d := util.BestFuzzyMatch(name, columns)
	if d > util.FuzzyThreshold {
		return "", fmt.Errorf("unknown column %q", name)
	}
	logger.Debug("Resolved column", name, "to", best)
	return best, nil
}

// Value returns the named measurement, nil when missing
func (r *Record) Value(column string) (*float64, error) {
	switch column {
	case "temperature_mean":
		return r.TemperatureMean, nil
	case "temperature_mean_min":
		return r.TemperatureMeanMin, nil
	case "temperature_mean_max":
		return r.TemperatureMeanMax, nil
	case "temperature_min":
		return r.TemperatureMin, nil
	case "temperature_max":
		return r.TemperatureMax, nil
	case "precipitation":
		return r.Precipitation, nil
	case "raindays":
		return r.Raindays, nil
	case "pressure":
		return r.Pressure, nil
	case "sunshine":
		return r.Sunshine, nil
	}
	return nil, fmt.Errorf("unknown column %q", column)
}

func (r Record) clone() Record {
	cp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		c := *v
		return &c
	}
	return Record{
		Month:              r.Month,
		TemperatureMean:    cp(r.TemperatureMean),
		TemperatureMeanMin: cp(r.TemperatureMeanMin),
		TemperatureMeanMax: cp(r.TemperatureMeanMax),
		TemperatureMin:     cp(r.TemperatureMin),
		TemperatureMax:     cp(r.TemperatureMax),
		Precipitation:      cp(r.Precipitation),
		Raindays:           cp(r.Raindays),
		Pressure:           cp(r.Pressure),
		Sunshine:           cp(r.Sunshine),
	}
}

// Column extracts one measurement from every record, in record order
func (d *Dataset) Column(name string) ([]*float64, error) {
	col, err := ResolveColumn(name)
	if err != nil {
		return nil, err
	}
	ret := make([]*float64, 0, len(d.Data))
	for i := range d.Data {
		v, _ := d.Data[i].Value(col)
		ret = append(ret, v)
	}
	return ret, nil
}

// Between returns the records with from <= month <= to.
// Months are "YYYY-MM" so they compare as strings; an empty bound is open.
func (d *Dataset) Between(from, to string) []Record {
	return between(d.Data, from, to)
}

func between(records []Record, from, to string) []Record {
	ret := []Record{}
	for _, r := range records {
		if from != "" && r.Month < from {
			continue
		}
		if to != "" && r.Month > to {
			continue
		}
		ret = append(ret, r)
	}
	return ret
}
