// analytics.go: read-only join, filter and aggregate queries over
// checklists and sightings
package datastore

import (
	"github.com/tphakala/birdlist-go/internal/errors"
	"github.com/tphakala/birdlist-go/internal/region"
)

// RegionSpeciesStats joins sightings to checklists on the sampling event id,
// keeps rows whose checklist coordinates fall inside the box (bounds
// inclusive), and aggregates per species: distinct contributing events and
// summed observation counts. Sightings without a matching checklist
// contribute nothing. Result order is not guaranteed.
func (ds *DataStore) RegionSpeciesStats(box region.BoundingBox) ([]SpeciesRegionStat, error) {
	var stats []SpeciesRegionStat

	err := ds.DB.Table("sightings").
		Select("sightings.common_name, "+
			"COUNT(DISTINCT checklists.sampling_event_id) as checklist_count, "+
			"SUM(sightings.observation_count) as total_sightings").
		Joins("INNER JOIN checklists ON checklists.sampling_event_id = sightings.sampling_event_id").
		Where("checklists.latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("checklists.longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Group("sightings.common_name").
		Scan(&stats).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "region_species_stats").
			Build()
	}
	return stats, nil
}

// SightingsBySpecies returns the raw sighting rows for one species with a
// positive observation count, without joining or grouping. This is the
// heatmap / no-region query shape.
func (ds *DataStore) SightingsBySpecies(commonName string) ([]Sighting, error) {
	var sightings []Sighting
	err := ds.DB.Where("common_name = ? AND observation_count > 0", commonName).
		Find(&sightings).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "sightings_by_species").
			Context("common_name", commonName).
			Build()
	}
	return sightings, nil
}

// RegionSightingTotals joins sightings to checklists, filters by the box and
// optionally by species, and sums observation counts per sampling event,
// ordered ascending by event id.
func (ds *DataStore) RegionSightingTotals(box region.BoundingBox, commonName string) ([]EventSightingTotal, error) {
	var totals []EventSightingTotal

	query := ds.DB.Table("sightings").
		Select("sightings.sampling_event_id, SUM(sightings.observation_count) as total_count").
		Joins("INNER JOIN checklists ON checklists.sampling_event_id = sightings.sampling_event_id").
		Where("checklists.latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("checklists.longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)

	if commonName != "" {
		query = query.Where("sightings.common_name = ?", commonName)
	}

	err := query.Group("sightings.sampling_event_id").
		Order("sightings.sampling_event_id ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "region_sighting_totals").
			Context("common_name", commonName).
			Build()
	}
	return totals, nil
}

// ObserverSightings returns the observer's joined sighting rows ordered
// ascending by observation date.
func (ds *DataStore) ObserverSightings(observerID string) ([]TimedSighting, error) {
	var rows []TimedSighting

	err := ds.DB.Table("sightings").
		Select("checklists.observation_date, sightings.common_name, sightings.observation_count").
		Joins("INNER JOIN checklists ON checklists.sampling_event_id = sightings.sampling_event_id").
		Where("checklists.observer_id = ?", observerID).
		Order("checklists.observation_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "observer_sightings").
			Context("observer_id", observerID).
			Build()
	}
	return rows, nil
}

// ObserverSightingLocations returns one row per joined sighting of the
// observer with the checklist's coordinates attached.
func (ds *DataStore) ObserverSightingLocations(observerID string) ([]LocatedSighting, error) {
	var rows []LocatedSighting

	err := ds.DB.Table("sightings").
		Select("checklists.latitude, checklists.longitude, sightings.common_name, sightings.observation_count").
		Joins("INNER JOIN checklists ON checklists.sampling_event_id = sightings.sampling_event_id").
		Where("checklists.observer_id = ?", observerID).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "observer_sighting_locations").
			Context("observer_id", observerID).
			Build()
	}
	return rows, nil
}

// ObserverChecklists returns all checklists owned by the observer.
func (ds *DataStore) ObserverChecklists(observerID string) ([]Checklist, error) {
	var checklists []Checklist
	if err := ds.DB.Where("observer_id = ?", observerID).Find(&checklists).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "observer_checklists").
			Context("observer_id", observerID).
			Build()
	}
	return checklists, nil
}

// TotalHours sums the duration of all checklists owned by the observer,
// 0 when the observer has none.
func (ds *DataStore) TotalHours(observerID string) (float64, error) {
	var total float64
	err := ds.DB.Model(&Checklist{}).
		Where("observer_id = ?", observerID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "total_hours").
			Context("observer_id", observerID).
			Build()
	}
	return total, nil
}
