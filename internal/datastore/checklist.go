// checklist.go: write path for checklists and their sightings
package datastore

import (
	"strconv"

	"github.com/tphakala/birdlist-go/internal/errors"
	"gorm.io/gorm"
)

// CreateChecklist stores a checklist and its sightings in a single
// transaction. The checklist's SamplingEventID is assigned from its own
// generated ID before any sighting is written, so readers never observe a
// checklist whose event id does not point at its sightings.
func (ds *DataStore) CreateChecklist(checklist *Checklist, sightings []Sighting) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(checklist).Error; err != nil {
			return err
		}

		checklist.SamplingEventID = strconv.FormatUint(uint64(checklist.ID), 10)
		if err := tx.Model(checklist).Update("sampling_event_id", checklist.SamplingEventID).Error; err != nil {
			return err
		}

		for i := range sightings {
			sightings[i].SamplingEventID = checklist.SamplingEventID
			if err := tx.Create(&sightings[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		ds.logger().Error("failed to create checklist",
			"operation", "create_checklist",
			"observer_id", checklist.ObserverID,
			"error", err)
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "create_checklist").
			Context("observer_id", checklist.ObserverID).
			Build()
	}
	return nil
}

// UpdateChecklist updates a checklist's fields and reconciles its sightings
// against the given list in one transaction. Input sightings carrying a known
// ID have their observation count updated in place, sightings without an ID
// are inserted under the checklist's event id, and every stored sighting whose
// ID the input did not mention is deleted.
func (ds *DataStore) UpdateChecklist(checklist *Checklist, sightings []Sighting) error {
	var existing Checklist
	if err := ds.DB.First(&existing, checklist.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(err, "update_checklist", checklist.ID)
		}
		return databaseError(err, "update_checklist", checklist.ID)
	}

	// Event id and ownership are immutable, whatever the caller sent
	checklist.SamplingEventID = existing.SamplingEventID
	checklist.ObserverID = existing.ObserverID

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(checklist).Error; err != nil {
			return err
		}

		var stored []Sighting
		if err := tx.Where("sampling_event_id = ?", checklist.SamplingEventID).Find(&stored).Error; err != nil {
			return err
		}

		touched := make(map[uint]bool, len(sightings))
		for i := range sightings {
			s := &sightings[i]
			if s.ID != 0 {
				touched[s.ID] = true
				if err := tx.Model(&Sighting{}).Where("id = ?", s.ID).
					Update("observation_count", s.ObservationCount).Error; err != nil {
					return err
				}
				continue
			}
			s.SamplingEventID = checklist.SamplingEventID
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}

		for i := range stored {
			if !touched[stored[i].ID] {
				if err := tx.Delete(&Sighting{}, stored[i].ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		ds.logger().Error("failed to update checklist",
			"operation", "update_checklist",
			"checklist_id", checklist.ID,
			"sampling_event_id", checklist.SamplingEventID,
			"error", err)
		return databaseError(err, "update_checklist", checklist.ID)
	}
	return nil
}

// DeleteChecklist removes a checklist and all sightings sharing its sampling
// event id. Returns a not-found error when the checklist does not exist, also
// on a repeated delete of the same id.
func (ds *DataStore) DeleteChecklist(id uint) error {
	var checklist Checklist
	if err := ds.DB.First(&checklist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(err, "delete_checklist", id)
		}
		return databaseError(err, "delete_checklist", id)
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sampling_event_id = ?", checklist.SamplingEventID).Delete(&Sighting{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Checklist{}, id).Error
	})
	if err != nil {
		ds.logger().Error("failed to delete checklist",
			"operation", "delete_checklist",
			"checklist_id", id,
			"sampling_event_id", checklist.SamplingEventID,
			"error", err)
		return databaseError(err, "delete_checklist", id)
	}
	return nil
}

// GetChecklist retrieves a checklist by its ID.
func (ds *DataStore) GetChecklist(id uint) (Checklist, error) {
	var checklist Checklist
	if err := ds.DB.First(&checklist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Checklist{}, notFoundError(err, "get_checklist", id)
		}
		return Checklist{}, databaseError(err, "get_checklist", id)
	}
	return checklist, nil
}

// ChecklistsByEventIDs returns checklists whose sampling event id is in
// eventIDs, or all checklists when eventIDs is nil.
func (ds *DataStore) ChecklistsByEventIDs(eventIDs []string) ([]Checklist, error) {
	var checklists []Checklist
	query := ds.DB
	if eventIDs != nil {
		query = query.Where("sampling_event_id IN ?", eventIDs)
	}
	if err := query.Find(&checklists).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "checklists_by_event_ids").
			Build()
	}
	return checklists, nil
}

// SightingsByEventID returns all sightings belonging to one sampling event.
func (ds *DataStore) SightingsByEventID(eventID string) ([]Sighting, error) {
	var sightings []Sighting
	if err := ds.DB.Where("sampling_event_id = ?", eventID).Find(&sightings).Error; err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "sightings_by_event_id").
			Context("sampling_event_id", eventID).
			Build()
	}
	return sightings, nil
}

func notFoundError(err error, operation string, id uint) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryNotFound).
		Context("operation", operation).
		Context("checklist_id", id).
		Build()
}

func databaseError(err error, operation string, id uint) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Context("checklist_id", id).
		Build()
}
