package dataset

import (
	"sort"
)

// Domain is the frozen categorical domain of the reference table. Labels are
// sorted the way one-hot encoders order category columns.
type Domain struct {
	states      []string
	counties    []string
	stateIdx    map[string]int
	countyIdx   map[string]int
	byState     map[string][]string
	locationSet map[Location]struct{}
}

func newDomain(rows []Observation) *Domain {
	d := &Domain{
		stateIdx:    make(map[string]int),
		countyIdx:   make(map[string]int),
		byState:     make(map[string][]string),
		locationSet: make(map[Location]struct{}),
	}
	countySet := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := d.stateIdx[row.State]; !ok {
			d.stateIdx[row.State] = 0
			d.states = append(d.states, row.State)
		}
		if _, ok := countySet[row.County]; !ok {
			countySet[row.County] = struct{}{}
			d.counties = append(d.counties, row.County)
		}
		if _, ok := d.locationSet[row.Location]; !ok {
			d.locationSet[row.Location] = struct{}{}
			d.byState[row.State] = append(d.byState[row.State], row.County)
		}
	}

	sort.Strings(d.states)
	sort.Strings(d.counties)
	for i, s := range d.states {
		d.stateIdx[s] = i
	}
	for i, c := range d.counties {
		d.countyIdx[c] = i
	}
	for s := range d.byState {
		sort.Strings(d.byState[s])
	}

	return d
}

// States returns the sorted distinct state labels.
func (d *Domain) States() []string {
	return append([]string(nil), d.states...)
}

// Counties returns the sorted distinct county labels over all states.
func (d *Domain) Counties() []string {
	return append([]string(nil), d.counties...)
}

// StateIndex returns the position of state inside the state indicator block.
func (d *Domain) StateIndex(state string) (int, bool) {
	i, ok := d.stateIdx[state]
	return i, ok
}

// CountyIndex returns the position of county inside the county indicator block.
func (d *Domain) CountyIndex(county string) (int, bool) {
	i, ok := d.countyIdx[county]
	return i, ok
}

func (d *Domain) Contains(loc Location) bool {
	_, ok := d.locationSet[loc]
	return ok
}

// Len is the number of distinct (state, county) pairs.
func (d *Domain) Len() int {
	return len(d.locationSet)
}
