package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/errors"
)

func ptr[T any](v T) *T { return &v }

func setupService(t *testing.T) (*Service, *datastore.SQLiteStore) {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = ":memory:"

	ds := &datastore.SQLiteStore{Settings: settings}
	require.NoError(t, ds.Open())
	t.Cleanup(func() { _ = ds.Close() })

	return New(ds), ds
}

func validSubmit() *SubmitInput {
	return &SubmitInput{
		ObserverID:      "alice@example.com",
		Latitude:        ptr(40.0),
		Longitude:       ptr(-73.0),
		ObservationDate: "2024-05-01",
		ObservationTime: "08:30:00",
		Duration:        ptr(1.5),
		Sightings: []SightingInput{
			{Name: "American Robin", Count: 3},
		},
	}
}

func TestSubmitAssignsEventID(t *testing.T) {
	svc, ds := setupService(t)

	id, err := svc.Submit(validSubmit())
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := ds.GetChecklist(id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.ObserverID)

	sightings, err := ds.SightingsByEventID(got.SamplingEventID)
	require.NoError(t, err)
	require.Len(t, sightings, 1)
	assert.Equal(t, 3, sightings[0].ObservationCount)
}

func TestSubmitMissingFields(t *testing.T) {
	svc, ds := setupService(t)

	cases := map[string]func(*SubmitInput){
		"lat":      func(in *SubmitInput) { in.Latitude = nil },
		"lng":      func(in *SubmitInput) { in.Longitude = nil },
		"date":     func(in *SubmitInput) { in.ObservationDate = "" },
		"duration": func(in *SubmitInput) { in.Duration = nil },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validSubmit()
			mutate(in)

			_, err := svc.Submit(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
		})
	}

	// no partial write on any validation failure
	all, err := ds.ChecklistsByEventIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEditValidation(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.Edit(&EditInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestEditRemovedSightingIsDeleted(t *testing.T) {
	svc, ds := setupService(t)

	in := validSubmit()
	in.Sightings = []SightingInput{
		{Name: "American Robin", Count: 3},
		{Name: "Blue Jay", Count: 1},
	}
	id, err := svc.Submit(in)
	require.NoError(t, err)

	got, err := ds.GetChecklist(id)
	require.NoError(t, err)
	stored, err := ds.SightingsByEventID(got.SamplingEventID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	var keep datastore.Sighting
	for _, s := range stored {
		if s.CommonName == "American Robin" {
			keep = s
		}
	}

	err = svc.Edit(&EditInput{
		ChecklistID:     id,
		Latitude:        ptr(40.0),
		Longitude:       ptr(-73.0),
		ObservationDate: "2024-05-01",
		Duration:        ptr(1.5),
		Sightings: []SightingInput{
			{ID: keep.ID, Name: keep.CommonName, Count: 4},
		},
	})
	require.NoError(t, err)

	after, err := ds.SightingsByEventID(got.SamplingEventID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "American Robin", after[0].CommonName)
	assert.Equal(t, 4, after[0].ObservationCount)
}

func TestDeleteUnknownChecklist(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.Delete(999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
