package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/region"
)

func setupReporter(t *testing.T) (*Reporter, *datastore.SQLiteStore, *region.Selector) {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = ":memory:"

	ds := &datastore.SQLiteStore{Settings: settings}
	require.NoError(t, ds.Open())
	t.Cleanup(func() { _ = ds.Close() })

	selector := region.NewSelector(time.Hour)
	return NewReporter(ds, selector), ds, selector
}

func seedReporterData(t *testing.T, ds *datastore.SQLiteStore) {
	t.Helper()

	checklists := []datastore.Checklist{
		{SamplingEventID: "S100", ObserverID: "alice@example.com", Latitude: 40.0, Longitude: -73.0, ObservationDate: "2024-05-01", Duration: 1.5},
		{SamplingEventID: "S101", ObserverID: "alice@example.com", Latitude: 40.5, Longitude: -73.5, ObservationDate: "2024-04-20", Duration: 2.0},
		{SamplingEventID: "S200", ObserverID: "bob@example.com", Latitude: 50.0, Longitude: 10.0, ObservationDate: "2024-05-02", Duration: 0.5},
	}
	for i := range checklists {
		require.NoError(t, ds.DB.Create(&checklists[i]).Error)
	}

	sightings := []datastore.Sighting{
		{SamplingEventID: "S100", CommonName: "American Robin", ObservationCount: 3},
		{SamplingEventID: "S101", CommonName: "American Robin", ObservationCount: 2},
		{SamplingEventID: "S101", CommonName: "Blue Jay", ObservationCount: 1},
		{SamplingEventID: "S200", CommonName: "American Robin", ObservationCount: 7},
	}
	for i := range sightings {
		require.NoError(t, ds.DB.Create(&sightings[i]).Error)
	}
}

func regionCorners(minLat, minLng, maxLat, maxLng float64) region.Corners {
	return region.Corners{
		SWLat: minLat, SWLng: minLng,
		NWLat: maxLat, NWLng: minLng,
		NELat: maxLat, NELng: maxLng,
		SELat: minLat, SELng: maxLng,
	}
}

func TestFilteredSightingsRegionBranch(t *testing.T) {
	r, ds, selector := setupReporter(t)
	seedReporterData(t, ds)

	selector.Set("sess", regionCorners(39, -74, 41, -72))

	result, err := r.FilteredSightings("sess", "", false)
	require.NoError(t, err)
	assert.Nil(t, result.Rows)
	require.Len(t, result.Totals, 2)
	assert.Equal(t, "S100", result.Totals[0].SamplingEventID)
	assert.Equal(t, 3, result.Totals[0].TotalCount)
	assert.Equal(t, "S101", result.Totals[1].SamplingEventID)
	assert.Equal(t, 3, result.Totals[1].TotalCount)
}

func TestFilteredSightingsRegionAndSpecies(t *testing.T) {
	r, ds, selector := setupReporter(t)
	seedReporterData(t, ds)

	selector.Set("sess", regionCorners(39, -74, 41, -72))

	result, err := r.FilteredSightings("sess", "Blue Jay", false)
	require.NoError(t, err)
	require.Len(t, result.Totals, 1)
	assert.Equal(t, "S101", result.Totals[0].SamplingEventID)
	assert.Equal(t, 1, result.Totals[0].TotalCount)
}

func TestFilteredSightingsHeatmapIgnoresRegion(t *testing.T) {
	r, ds, selector := setupReporter(t)
	seedReporterData(t, ds)

	selector.Set("sess", regionCorners(39, -74, 41, -72))

	result, err := r.FilteredSightings("sess", "American Robin", true)
	require.NoError(t, err)
	assert.Nil(t, result.Totals)
	// flat rows including the out-of-region S200 sighting
	assert.Len(t, result.Rows, 3)
}

func TestFilteredSightingsNoRegionNoSpecies(t *testing.T) {
	r, ds, _ := setupReporter(t)
	seedReporterData(t, ds)

	result, err := r.FilteredSightings("unknown-session", "", false)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Totals)
}

func TestUserStats(t *testing.T) {
	r, ds, _ := setupReporter(t)
	seedReporterData(t, ds)

	stats, err := r.UserStats("alice@example.com")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"American Robin", "Blue Jay"}, stats.SpeciesSeen)

	require.Len(t, stats.SightingsOverTime, 3)
	for i := 1; i < len(stats.SightingsOverTime); i++ {
		assert.LessOrEqual(t, stats.SightingsOverTime[i-1].ObservationDate, stats.SightingsOverTime[i].ObservationDate)
	}

	assert.Len(t, stats.SightingLocations, 3)
}

func TestUserStatsEmptyHistory(t *testing.T) {
	r, _, _ := setupReporter(t)

	stats, err := r.UserStats("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, stats.SpeciesSeen)
	assert.Empty(t, stats.SightingsOverTime)
	assert.Empty(t, stats.SightingLocations)
}

func TestTotalHours(t *testing.T) {
	r, ds, _ := setupReporter(t)
	seedReporterData(t, ds)

	hours, err := r.TotalHours("alice@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 3.5, hours, 1e-9)
}
