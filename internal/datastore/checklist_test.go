// checklist_test.go: tests for the checklist write path
package datastore

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/birdlist-go/internal/errors"
)

func TestCreateChecklistSelfReferentialEventID(t *testing.T) {
	ds := setupTestDB(t)

	checklist := Checklist{
		ObserverID:      "alice@example.com",
		Latitude:        40.0,
		Longitude:       -73.0,
		ObservationDate: "2024-05-01",
		Duration:        1.5,
	}
	sightings := []Sighting{
		{CommonName: "American Robin", ObservationCount: 3},
	}

	require.NoError(t, ds.CreateChecklist(&checklist, sightings))
	require.NotZero(t, checklist.ID)

	wantEventID := strconv.FormatUint(uint64(checklist.ID), 10)
	assert.Equal(t, wantEventID, checklist.SamplingEventID)

	found, err := ds.ChecklistsByEventIDs([]string{wantEventID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, checklist.ID, found[0].ID)
	assert.Equal(t, wantEventID, found[0].SamplingEventID)

	stored, err := ds.SightingsByEventID(wantEventID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "American Robin", stored[0].CommonName)
	assert.Equal(t, 3, stored[0].ObservationCount)
}

func TestUpdateChecklistReconcilesSightings(t *testing.T) {
	ds := setupTestDB(t)

	checklist := Checklist{ObserverID: "alice@example.com", Latitude: 40, Longitude: -73, ObservationDate: "2024-05-01", Duration: 1}
	sightings := []Sighting{
		{CommonName: "American Robin", ObservationCount: 3},
		{CommonName: "Blue Jay", ObservationCount: 1},
	}
	require.NoError(t, ds.CreateChecklist(&checklist, sightings))

	stored, err := ds.SightingsByEventID(checklist.SamplingEventID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	var robinID uint
	for _, s := range stored {
		if s.CommonName == "American Robin" {
			robinID = s.ID
		}
	}
	require.NotZero(t, robinID)

	// keep the robin with a new count, drop the jay, add a cardinal
	edited := checklist
	edited.Duration = 2.5
	err = ds.UpdateChecklist(&edited, []Sighting{
		{ID: robinID, CommonName: "American Robin", ObservationCount: 5},
		{CommonName: "Northern Cardinal", ObservationCount: 2},
	})
	require.NoError(t, err)

	after, err := ds.SightingsByEventID(checklist.SamplingEventID)
	require.NoError(t, err)
	require.Len(t, after, 2)

	byName := make(map[string]Sighting, len(after))
	for _, s := range after {
		byName[s.CommonName] = s
	}
	assert.Equal(t, 5, byName["American Robin"].ObservationCount)
	assert.Equal(t, 2, byName["Northern Cardinal"].ObservationCount)
	_, jayKept := byName["Blue Jay"]
	assert.False(t, jayKept)

	got, err := ds.GetChecklist(checklist.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got.Duration, 1e-9)
	assert.Equal(t, checklist.SamplingEventID, got.SamplingEventID)
}

func TestUpdateChecklistNotFound(t *testing.T) {
	ds := setupTestDB(t)

	err := ds.UpdateChecklist(&Checklist{ID: 4242, ObservationDate: "2024-05-01"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDeleteChecklistCascades(t *testing.T) {
	ds := setupTestDB(t)

	checklist := Checklist{ObserverID: "alice@example.com", Latitude: 40, Longitude: -73, ObservationDate: "2024-05-01", Duration: 1}
	require.NoError(t, ds.CreateChecklist(&checklist, []Sighting{
		{CommonName: "American Robin", ObservationCount: 3},
		{CommonName: "Blue Jay", ObservationCount: 1},
	}))

	require.NoError(t, ds.DeleteChecklist(checklist.ID))

	_, err := ds.GetChecklist(checklist.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	orphans, err := ds.SightingsByEventID(checklist.SamplingEventID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestDeleteChecklistTwiceReturnsNotFound(t *testing.T) {
	ds := setupTestDB(t)

	checklist := Checklist{ObserverID: "alice@example.com", Latitude: 40, Longitude: -73, ObservationDate: "2024-05-01", Duration: 1}
	require.NoError(t, ds.CreateChecklist(&checklist, nil))
	require.NoError(t, ds.DeleteChecklist(checklist.ID))

	err := ds.DeleteChecklist(checklist.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestChecklistsByEventIDsNilReturnsAll(t *testing.T) {
	ds := setupTestDB(t)
	seedTestData(t, ds)

	all, err := ds.ChecklistsByEventIDs(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := ds.ChecklistsByEventIDs([]string{"S100", "S200"})
	require.NoError(t, err)
	assert.Len(t, some, 2)

	none, err := ds.ChecklistsByEventIDs([]string{})
	require.NoError(t, err)
	assert.Empty(t, none)
}
