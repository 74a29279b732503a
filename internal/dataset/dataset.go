package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrMalformed = errors.New("malformed reference dataset")
)

// Dataset is the read-only reference table. It is built once and shared by
// every request without locking.
type Dataset struct {
	featureNames []string
	featureIdx   map[string]int
	rows         []Observation
	domain       *Domain
	firstRow     map[Location]int
}

// Parse reads a CSV reference table. The header must contain State, County,
// AQI and the five pollutant columns; any other column is kept as a numeric
// feature in file order.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformed, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	stateCol, countyCol, aqiCol := -1, -1, -1
	var (
		featureNames []string
		featureCols  []int
	)
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if name == "" {
			name = unnamedColumn(i)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformed, name)
		}
		seen[name] = struct{}{}
		switch name {
		case ColumnState:
			stateCol = i
		case ColumnCounty:
			countyCol = i
		case ColumnAQI:
			aqiCol = i
		default:
			featureNames = append(featureNames, name)
			featureCols = append(featureCols, i)
		}
	}
	for col, idx := range map[string]int{ColumnState: stateCol, ColumnCounty: countyCol, ColumnAQI: aqiCol} {
		if idx < 0 {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, col)
		}
	}

	ds := &Dataset{
		featureNames: featureNames,
		featureIdx:   make(map[string]int, len(featureNames)),
		firstRow:     make(map[Location]int),
	}
	for i, name := range featureNames {
		ds.featureIdx[name] = i
	}
	for _, p := range Pollutants {
		if _, ok := ds.featureIdx[string(p)]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, p)
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}

		obs := Observation{
			Location: Location{
				State:  record[stateCol],
				County: record[countyCol],
			},
			Values: make([]float64, len(featureCols)),
		}
		if obs.State == "" || obs.County == "" {
			return nil, fmt.Errorf("%w: line %d: empty state or county", ErrMalformed, line)
		}
		if obs.AQI, err = parseFloat(record[aqiCol]); err != nil {
			return nil, fmt.Errorf("%w: line %d: column %s: %v", ErrMalformed, line, ColumnAQI, err)
		}
		for i, col := range featureCols {
			if obs.Values[i], err = parseFloat(record[col]); err != nil {
				return nil, fmt.Errorf("%w: line %d: column %s: %v", ErrMalformed, line, featureNames[i], err)
			}
		}

		if _, ok := ds.firstRow[obs.Location]; !ok {
			ds.firstRow[obs.Location] = len(ds.rows)
		}
		ds.rows = append(ds.rows, obs)
	}
	if len(ds.rows) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrMalformed)
	}
	ds.domain = newDomain(ds.rows)

	return ds, nil
}

// unnamedColumn names a column with an empty header, such as the index
// written by DataFrame.to_csv, the way pandas.read_csv does.
func unnamedColumn(i int) string {
	return "Unnamed: " + strconv.Itoa(i)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("missing value")
	}
	return v, nil
}

// FeatureNames returns the numeric feature columns in file order.
func (ds *Dataset) FeatureNames() []string {
	return append([]string(nil), ds.featureNames...)
}

// FeatureIndex returns the position of a numeric feature column.
func (ds *Dataset) FeatureIndex(name string) (int, bool) {
	i, ok := ds.featureIdx[name]
	return i, ok
}

func (ds *Dataset) Domain() *Domain {
	return ds.domain
}

func (ds *Dataset) Len() int {
	return len(ds.rows)
}

func (ds *Dataset) States() []string {
	return ds.domain.States()
}

// Counties returns the sorted counties observed for state.
func (ds *Dataset) Counties(state string) ([]string, error) {
	counties, ok := ds.domain.byState[state]
	if !ok {
		return nil, fmt.Errorf("state %q: %w", state, ErrNotFound)
	}
	return append([]string(nil), counties...), nil
}

// AllObservations returns the rows in file order. Callers must not modify
// the Values slices.
func (ds *Dataset) AllObservations() []Observation {
	return append([]Observation(nil), ds.rows...)
}

// Lookup returns the first observation recorded for loc.
func (ds *Dataset) Lookup(loc Location) (Observation, bool) {
	i, ok := ds.firstRow[loc]
	if !ok {
		return Observation{}, false
	}
	return ds.rows[i], true
}
