package dataset

// Column labels of the reference table.
const (
	ColumnState  = "State"
	ColumnCounty = "County"
	ColumnAQI    = "AQI"

	ColumnCO   = "CO_perc"
	ColumnNO2  = "NO2_perc"
	ColumnO3   = "O3_perc"
	ColumnPM25 = "PM2.5_perc"
	ColumnPM10 = "PM10_perc"
)

// Pollutant identifies one of the pollutant-percentage columns.
type Pollutant string

const (
	PollutantCO   Pollutant = ColumnCO
	PollutantNO2  Pollutant = ColumnNO2
	PollutantO3   Pollutant = ColumnO3
	PollutantPM25 Pollutant = ColumnPM25
	PollutantPM10 Pollutant = ColumnPM10
)

// Pollutants lists the pollutant columns every reference table must carry.
var Pollutants = []Pollutant{PollutantCO, PollutantNO2, PollutantO3, PollutantPM25, PollutantPM10}

// Location is a (state, county) pair of the categorical domain.
type Location struct {
	State  string `json:"state"`
	County string `json:"county"`
}

// Observation is one row of the reference table. Values is aligned with
// Dataset.FeatureNames.
type Observation struct {
	Location
	Values []float64
	AQI    float64
}
