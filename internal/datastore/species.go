// species.go: species catalog queries and bulk-load helpers
package datastore

import (
	"github.com/tphakala/birdlist-go/internal/errors"
)

const insertBatchSize = 500

// AllSpecies returns the full species catalog.
func (ds *DataStore) AllSpecies() ([]Species, error) {
	var species []Species
	if err := ds.DB.Find(&species).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "all_species").
			Build()
	}
	return species, nil
}

// SpeciesByPrefix returns up to limit species whose name starts with prefix,
// used by the search suggestion flow.
func (ds *DataStore) SpeciesByPrefix(prefix string, limit int) ([]Species, error) {
	var species []Species
	err := ds.DB.Where("bird_name LIKE ?", prefix+"%").
		Order("bird_name ASC").
		Limit(limit).
		Find(&species).Error
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "species_by_prefix").
			Context("prefix", prefix).
			Build()
	}
	return species, nil
}

// HasSpecies reports whether the species table holds any rows.
func (ds *DataStore) HasSpecies() (bool, error) {
	return ds.hasRows(&Species{}, "has_species")
}

// HasSightings reports whether the sightings table holds any rows.
func (ds *DataStore) HasSightings() (bool, error) {
	return ds.hasRows(&Sighting{}, "has_sightings")
}

// HasChecklists reports whether the checklists table holds any rows.
func (ds *DataStore) HasChecklists() (bool, error) {
	return ds.hasRows(&Checklist{}, "has_checklists")
}

func (ds *DataStore) hasRows(model any, operation string) (bool, error) {
	var count int64
	if err := ds.DB.Model(model).Count(&count).Error; err != nil {
		return false, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", operation).
			Build()
	}
	return count > 0, nil
}

// InsertSpeciesBatch bulk inserts species catalog rows.
func (ds *DataStore) InsertSpeciesBatch(species []Species) error {
	if len(species) == 0 {
		return nil
	}
	if err := ds.DB.CreateInBatches(species, insertBatchSize).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "insert_species_batch").
			Context("rows", len(species)).
			Build()
	}
	return nil
}

// InsertSightingsBatch bulk inserts sighting rows.
func (ds *DataStore) InsertSightingsBatch(sightings []Sighting) error {
	if len(sightings) == 0 {
		return nil
	}
	if err := ds.DB.CreateInBatches(sightings, insertBatchSize).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "insert_sightings_batch").
			Context("rows", len(sightings)).
			Build()
	}
	return nil
}

// InsertChecklistsBatch bulk inserts checklist rows.
func (ds *DataStore) InsertChecklistsBatch(checklists []Checklist) error {
	if len(checklists) == 0 {
		return nil
	}
	if err := ds.DB.CreateInBatches(checklists, insertBatchSize).Error; err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "insert_checklists_batch").
			Context("rows", len(checklists)).
			Build()
	}
	return nil
}
