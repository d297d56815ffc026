// Package stats composes datastore aggregates into the reports served at the
// application boundary.
package stats

import (
	"log/slog"

	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/logging"
	"github.com/tphakala/birdlist-go/internal/region"
)

// UserStats is one observer's full history report.
type UserStats struct {
	SpeciesSeen       []string                    `json:"species_seen"`
	SightingsOverTime []datastore.TimedSighting   `json:"sightings_over_time"`
	SightingLocations []datastore.LocatedSighting `json:"sighting_locations"`
}

// SightingsResult carries the two possible shapes of a filtered sightings
// query. The flat rows and the grouped totals are intentionally different:
// the species/heatmap branch feeds a scatter layer with raw records while the
// region branch feeds a per-event time series.
type SightingsResult struct {
	Rows   []datastore.Sighting           `json:"rows,omitempty"`
	Totals []datastore.EventSightingTotal `json:"totals,omitempty"`
}

// Reporter answers statistics queries against the datastore, with the
// session's bounding region supplied by the selector passed in at
// construction.
type Reporter struct {
	ds       datastore.Interface
	selector *region.Selector
	log      *slog.Logger
}

// NewReporter creates a Reporter.
func NewReporter(ds datastore.Interface, selector *region.Selector) *Reporter {
	log := logging.ForService("stats")
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{ds: ds, selector: selector, log: log}
}

// RegionSpeciesStats returns the per-species aggregate for the box.
func (r *Reporter) RegionSpeciesStats(box region.BoundingBox) ([]datastore.SpeciesRegionStat, error) {
	return r.ds.RegionSpeciesStats(box)
}

// FilteredSightings resolves the session's stored region and runs the
// matching query branch. With heatmap mode on, or no region stored for the
// session, the region is ignored: a species filter yields the flat positive
// count rows for that species, and no species filter yields an empty result.
// Otherwise the region branch groups counts per sampling event, optionally
// narrowed to one species.
func (r *Reporter) FilteredSightings(sessionID, speciesFilter string, heatmap bool) (SightingsResult, error) {
	box, hasRegion := r.selector.Get(sessionID)

	if heatmap || !hasRegion {
		if speciesFilter == "" {
			return SightingsResult{}, nil
		}
		rows, err := r.ds.SightingsBySpecies(speciesFilter)
		if err != nil {
			return SightingsResult{}, err
		}
		return SightingsResult{Rows: rows}, nil
	}

	totals, err := r.ds.RegionSightingTotals(box, speciesFilter)
	if err != nil {
		return SightingsResult{}, err
	}
	return SightingsResult{Totals: totals}, nil
}

// UserStats builds the observer's history report: de-duplicated species list,
// the date-ordered sighting series and the sighting location list, all from
// the inner join of the observer's checklists to their sightings.
func (r *Reporter) UserStats(observerID string) (UserStats, error) {
	overTime, err := r.ds.ObserverSightings(observerID)
	if err != nil {
		return UserStats{}, err
	}

	locations, err := r.ds.ObserverSightingLocations(observerID)
	if err != nil {
		return UserStats{}, err
	}

	seen := make(map[string]bool, len(overTime))
	species := make([]string, 0, len(overTime))
	for _, row := range overTime {
		if !seen[row.CommonName] {
			seen[row.CommonName] = true
			species = append(species, row.CommonName)
		}
	}

	return UserStats{
		SpeciesSeen:       species,
		SightingsOverTime: overTime,
		SightingLocations: locations,
	}, nil
}

// TotalHours returns the sum of checklist durations for the observer.
func (r *Reporter) TotalHours(observerID string) (float64, error) {
	return r.ds.TotalHours(observerID)
}
