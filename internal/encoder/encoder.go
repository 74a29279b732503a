package encoder

import (
	"fmt"

	"github.com/go-aqi/aqi/internal/dataset"
	"github.com/go-aqi/aqi/pkg/math/vector"
)

// Prefixes of the one-hot indicator columns.
const (
	StatePrefix  = dataset.ColumnState + "_"
	CountyPrefix = dataset.ColumnCounty + "_"
)

var ErrUnknownLocation = fmt.Errorf("unknown location: %w", dataset.ErrNotFound)

// Query is a location plus the pollutant percentages that replace the
// reference values of that location.
type Query struct {
	dataset.Location
	CO   float64
	NO2  float64
	O3   float64
	PM25 float64
	PM10 float64
}

// Overrides returns the query pollutants keyed by their column.
func (q Query) Overrides() map[dataset.Pollutant]float64 {
	return map[dataset.Pollutant]float64{
		dataset.PollutantCO:   q.CO,
		dataset.PollutantNO2:  q.NO2,
		dataset.PollutantO3:   q.O3,
		dataset.PollutantPM25: q.PM25,
		dataset.PollutantPM10: q.PM10,
	}
}

// Encoder turns queries into vectors with the column layout the models were
// fit on. The schema is frozen from the reference dataset at construction.
type Encoder struct {
	ds           *dataset.Dataset
	schema       []string
	pollutantIdx map[dataset.Pollutant]int
	stateOffset  int
	countyOffset int
}

func New(ds *dataset.Dataset) *Encoder {
	domain := ds.Domain()
	numeric := ds.FeatureNames()
	states := domain.States()
	counties := domain.Counties()

	schema := make([]string, 0, len(numeric)+len(states)+len(counties))
	schema = append(schema, numeric...)
	for _, s := range states {
		schema = append(schema, StatePrefix+s)
	}
	for _, c := range counties {
		schema = append(schema, CountyPrefix+c)
	}

	pollutantIdx := make(map[dataset.Pollutant]int, len(dataset.Pollutants))
	for _, p := range dataset.Pollutants {
		// Parse guarantees every pollutant column is present
		idx, _ := ds.FeatureIndex(string(p))
		pollutantIdx[p] = idx
	}

	return &Encoder{
		ds:           ds,
		schema:       schema,
		pollutantIdx: pollutantIdx,
		stateOffset:  len(numeric),
		countyOffset: len(numeric) + len(states),
	}
}

// Schema returns the ordered column names of every encoded vector.
func (e *Encoder) Schema() []string {
	return append([]string(nil), e.schema...)
}

func (e *Encoder) Dimensions() int {
	return len(e.schema)
}

// Encode builds the vector for q from the first reference row of its
// location with the pollutant columns replaced by the query values.
func (e *Encoder) Encode(q Query) (*Vector, error) {
	template, err := e.template(q.Location)
	if err != nil {
		return nil, err
	}

	values := vector.Zeros(len(e.schema))
	copy(values, template.Values)
	for p, v := range q.Overrides() {
		values[e.pollutantIdx[p]] = v
	}

	indicators, err := e.EncodeLocation(q.Location)
	if err != nil {
		return nil, err
	}
	copy(values[e.stateOffset:], indicators)

	return &Vector{names: e.schema, values: values}, nil
}

func (e *Encoder) template(loc dataset.Location) (dataset.Observation, error) {
	if _, err := e.ds.Counties(loc.State); err != nil {
		return dataset.Observation{}, err
	}
	obs, ok := e.ds.Lookup(loc)
	if !ok {
		return dataset.Observation{}, fmt.Errorf("%w: county %q of state %q", ErrUnknownLocation, loc.County, loc.State)
	}
	return obs, nil
}

// EncodeLocation returns the state and county indicator blocks of loc against
// the frozen domain.
func (e *Encoder) EncodeLocation(loc dataset.Location) (vector.V, error) {
	domain := e.ds.Domain()
	if !domain.Contains(loc) {
		return nil, fmt.Errorf("%w: county %q of state %q", ErrUnknownLocation, loc.County, loc.State)
	}
	stateIdx, _ := domain.StateIndex(loc.State)
	countyIdx, _ := domain.CountyIndex(loc.County)

	indicators := vector.Zeros(len(e.schema) - e.stateOffset)
	indicators[stateIdx] = 1
	indicators[e.countyOffset-e.stateOffset+countyIdx] = 1

	return indicators, nil
}

// DecodeLocation recovers the location from the indicator blocks of v. Each
// block must hold exactly one 1.
func (e *Encoder) DecodeLocation(v *Vector) (dataset.Location, error) {
	if v.Dimensions() != len(e.schema) {
		return dataset.Location{}, fmt.Errorf("vector has %d columns, encoder produces %d", v.Dimensions(), len(e.schema))
	}
	state, err := hot(v.values[e.stateOffset:e.countyOffset], e.schema[e.stateOffset:e.countyOffset], StatePrefix)
	if err != nil {
		return dataset.Location{}, fmt.Errorf("state block: %w", err)
	}
	county, err := hot(v.values[e.countyOffset:], e.schema[e.countyOffset:], CountyPrefix)
	if err != nil {
		return dataset.Location{}, fmt.Errorf("county block: %w", err)
	}
	return dataset.Location{State: state, County: county}, nil
}

func hot(block vector.V, names []string, prefix string) (string, error) {
	label := ""
	for i, v := range block {
		switch v {
		case 0:
		case 1:
			if label != "" {
				return "", fmt.Errorf("more than one indicator set")
			}
			label = names[i][len(prefix):]
		default:
			return "", fmt.Errorf("indicator %s is %v", names[i], v)
		}
	}
	if label == "" {
		return "", fmt.Errorf("no indicator set")
	}
	return label, nil
}
