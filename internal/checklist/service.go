// Package checklist implements the submission, edit and delete service for
// checklists and their sightings. Validation happens before any write, so a
// rejected request never leaves a partial record behind.
package checklist

import (
	"log/slog"

	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/errors"
	"github.com/tphakala/birdlist-go/internal/logging"
)

// SightingInput is one species tally in a submission or edit. ID is zero for
// new sightings and carries the stored sighting id on edit.
type SightingInput struct {
	ID    uint   `json:"id,omitempty"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SubmitInput carries a new checklist and its sightings.
type SubmitInput struct {
	ObserverID      string          `json:"observer_id"`
	Latitude        *float64        `json:"lat"`
	Longitude       *float64        `json:"lng"`
	ObservationDate string          `json:"observation_date"`
	ObservationTime string          `json:"observation_time"`
	Duration        *float64        `json:"duration"`
	Sightings       []SightingInput `json:"sightings"`
}

// EditInput carries the edited fields and the full reconciled sighting list
// of an existing checklist.
type EditInput struct {
	ChecklistID     uint            `json:"checklist_id"`
	Latitude        *float64        `json:"lat"`
	Longitude       *float64        `json:"lng"`
	ObservationDate string          `json:"observation_date"`
	ObservationTime string          `json:"observation_time"`
	Duration        *float64        `json:"duration"`
	Sightings       []SightingInput `json:"sightings"`
}

// Service validates and persists checklist writes.
type Service struct {
	ds  datastore.Interface
	log *slog.Logger
}

// New creates a checklist service on top of the given datastore.
func New(ds datastore.Interface) *Service {
	log := logging.ForService("checklist")
	if log == nil {
		log = slog.Default()
	}
	return &Service{ds: ds, log: log}
}

// Submit validates the input and stores the checklist with its sightings.
// Returns the new checklist id, which also becomes the sampling event id.
func (s *Service) Submit(in *SubmitInput) (uint, error) {
	if err := validateSubmit(in); err != nil {
		return 0, err
	}

	checklist := datastore.Checklist{
		ObserverID:      in.ObserverID,
		Latitude:        *in.Latitude,
		Longitude:       *in.Longitude,
		ObservationDate: in.ObservationDate,
		ObservationTime: in.ObservationTime,
		Duration:        *in.Duration,
	}
	sightings := toSightings(in.Sightings)

	if err := s.ds.CreateChecklist(&checklist, sightings); err != nil {
		return 0, err
	}

	s.log.Info("checklist submitted",
		"checklist_id", checklist.ID,
		"sampling_event_id", checklist.SamplingEventID,
		"observer_id", in.ObserverID,
		"sightings", len(sightings))
	return checklist.ID, nil
}

// Edit validates the input and applies the field update plus the sighting
// reconciliation. Short-circuits before any write on validation failure.
func (s *Service) Edit(in *EditInput) error {
	if err := validateEdit(in); err != nil {
		return err
	}

	checklist := datastore.Checklist{
		ID:              in.ChecklistID,
		Latitude:        *in.Latitude,
		Longitude:       *in.Longitude,
		ObservationDate: in.ObservationDate,
		ObservationTime: in.ObservationTime,
		Duration:        *in.Duration,
	}

	if err := s.ds.UpdateChecklist(&checklist, toSightings(in.Sightings)); err != nil {
		return err
	}

	s.log.Info("checklist edited",
		"checklist_id", in.ChecklistID,
		"sightings", len(in.Sightings))
	return nil
}

// Delete removes the checklist and its sightings. Propagates the datastore's
// not-found error when the checklist does not exist.
func (s *Service) Delete(checklistID uint) error {
	if err := s.ds.DeleteChecklist(checklistID); err != nil {
		return err
	}
	s.log.Info("checklist deleted", "checklist_id", checklistID)
	return nil
}

func validateSubmit(in *SubmitInput) error {
	switch {
	case in.Latitude == nil:
		return validationError("lat")
	case in.Longitude == nil:
		return validationError("lng")
	case in.ObservationDate == "":
		return validationError("observation_date")
	case in.Duration == nil:
		return validationError("duration")
	}
	return nil
}

func validateEdit(in *EditInput) error {
	switch {
	case in.ChecklistID == 0:
		return validationError("checklist_id")
	case in.Latitude == nil:
		return validationError("lat")
	case in.Longitude == nil:
		return validationError("lng")
	case in.ObservationDate == "":
		return validationError("observation_date")
	case in.Duration == nil:
		return validationError("duration")
	case in.Sightings == nil:
		return validationError("sightings")
	}
	return nil
}

func validationError(field string) error {
	return errors.Newf("missing required field %s", field).
		Component("checklist").
		Category(errors.CategoryValidation).
		Context("field", field).
		Build()
}

func toSightings(inputs []SightingInput) []datastore.Sighting {
	sightings := make([]datastore.Sighting, 0, len(inputs))
	for _, in := range inputs {
		sightings = append(sightings, datastore.Sighting{
			ID:               in.ID,
			CommonName:       in.Name,
			ObservationCount: in.Count,
		})
	}
	return sightings
}
