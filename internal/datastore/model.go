// model.go this code defines the data model for the application
package datastore

// Species represents one catalog entry of the bird name index
type Species struct {
	ID       uint   `gorm:"primaryKey"`
	BirdName string `gorm:"index:idx_species_birdname"`
}

// Checklist represents one observation session at one location and time by one observer.
// SamplingEventID equals the checklist's own ID after creation and is the join
// key for its sightings.
type Checklist struct {
	ID              uint    `gorm:"primaryKey"`
	SamplingEventID string  `gorm:"index:idx_checklists_event"`
	ObserverID      string  `gorm:"index:idx_checklists_observer"`
	Latitude        float64 `gorm:"index:idx_checklists_latlng"`
	Longitude       float64 `gorm:"index:idx_checklists_latlng"`
	ObservationDate string  `gorm:"index:idx_checklists_date"`
	ObservationTime string
	Duration        float64
}

// Sighting represents one species tally within one checklist/event
type Sighting struct {
	ID               uint   `gorm:"primaryKey"`
	SamplingEventID  string `gorm:"index:idx_sightings_event"`
	CommonName       string `gorm:"index:idx_sightings_comname"`
	ObservationCount int
}

// SpeciesRegionStat is one row of the per-species region aggregate: how many
// distinct sampling events reported the species inside the region and the
// summed observation counts across them.
type SpeciesRegionStat struct {
	CommonName     string `json:"common_name"`
	ChecklistCount int    `json:"checklist_count"`
	TotalSightings int    `json:"total_sightings"`
}

// EventSightingTotal is one row of the per-event aggregate used by the
// region-filtered sightings query.
type EventSightingTotal struct {
	SamplingEventID string `json:"sampling_event_id"`
	TotalCount      int    `json:"total_count"`
}

// TimedSighting is one point of an observer's sightings-over-time series.
type TimedSighting struct {
	ObservationDate  string `json:"date"`
	CommonName       string `json:"common_name"`
	ObservationCount int    `json:"count"`
}

// LocatedSighting is one point of an observer's sighting location list.
type LocatedSighting struct {
	Latitude         float64 `json:"lat"`
	Longitude        float64 `json:"lng"`
	CommonName       string  `json:"common_name"`
	ObservationCount int     `json:"count"`
}
