package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/datastore"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func setupLoader(t *testing.T) (*Loader, *datastore.SQLiteStore, *conf.Settings) {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = ":memory:"

	ds := &datastore.SQLiteStore{Settings: settings}
	require.NoError(t, ds.Open())
	t.Cleanup(func() { _ = ds.Close() })

	dir := t.TempDir()
	settings.Seed.SpeciesFile = writeFile(t, dir, "species.csv",
		"bird_name\nAmerican Robin\nBlue Jay\n")
	settings.Seed.SightingsFile = writeFile(t, dir, "sightings.csv",
		"sampling_event_id,common_name,observation_count\nS1,American Robin,3\nS1,Blue Jay,X\n")
	settings.Seed.ChecklistsFile = writeFile(t, dir, "checklists.csv",
		"sampling_event_id,lat,lng,observation_date,observation_time,observer_id,duration\n"+
			"S1,40.0,-73.0,2024-05-01,08:30:00,obs1,1.5\n"+
			"S2,41.0,-72.5,2024-05-02,09:00:00,obs2,\n")

	return NewLoader(ds, settings), ds, settings
}

func TestLoaderRun(t *testing.T) {
	loader, ds, _ := setupLoader(t)

	require.NoError(t, loader.Run())

	species, err := ds.AllSpecies()
	require.NoError(t, err)
	assert.Len(t, species, 2)

	sightings, err := ds.SightingsByEventID("S1")
	require.NoError(t, err)
	require.Len(t, sightings, 2)

	byName := map[string]int{}
	for _, s := range sightings {
		byName[s.CommonName] = s.ObservationCount
	}
	assert.Equal(t, 3, byName["American Robin"])
	// unparsable count defaults to zero
	assert.Equal(t, 0, byName["Blue Jay"])

	checklists, err := ds.ChecklistsByEventIDs(nil)
	require.NoError(t, err)
	require.Len(t, checklists, 2)

	byEvent := map[string]datastore.Checklist{}
	for _, c := range checklists {
		byEvent[c.SamplingEventID] = c
	}
	assert.InDelta(t, 1.5, byEvent["S1"].Duration, 1e-9)
	// empty duration defaults to zero
	assert.Zero(t, byEvent["S2"].Duration)
}

func TestLoaderSkipsPopulatedTables(t *testing.T) {
	loader, ds, _ := setupLoader(t)

	require.NoError(t, ds.InsertSpeciesBatch([]datastore.Species{{BirdName: "Preexisting"}}))
	require.NoError(t, loader.Run())

	species, err := ds.AllSpecies()
	require.NoError(t, err)
	// species untouched, the other tables still loaded
	assert.Len(t, species, 1)

	checklists, err := ds.ChecklistsByEventIDs(nil)
	require.NoError(t, err)
	assert.Len(t, checklists, 2)
}

func TestLoaderMissingFile(t *testing.T) {
	loader, _, settings := setupLoader(t)
	settings.Seed.SpeciesFile = filepath.Join(t.TempDir(), "missing.csv")

	err := loader.Run()
	assert.Error(t, err)
}
