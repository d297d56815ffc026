// Package seed primes an empty database from the eBird-style CSV exports:
// species.csv, sightings.csv and checklists.csv. Each loader skips the header
// row and is a no-op when the target table already holds data.
package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/errors"
	"github.com/tphakala/birdlist-go/internal/logging"
)

// Loader reads the configured CSV files into the datastore.
type Loader struct {
	ds       datastore.Interface
	settings *conf.Settings
	log      *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(ds datastore.Interface, settings *conf.Settings) *Loader {
	log := logging.ForService("seed")
	if log == nil {
		log = slog.Default()
	}
	return &Loader{ds: ds, settings: settings, log: log}
}

// Run loads every configured CSV file whose target table is still empty.
func (l *Loader) Run() error {
	if err := l.loadSpecies(l.settings.Seed.SpeciesFile); err != nil {
		return err
	}
	if err := l.loadSightings(l.settings.Seed.SightingsFile); err != nil {
		return err
	}
	return l.loadChecklists(l.settings.Seed.ChecklistsFile)
}

func (l *Loader) loadSpecies(path string) error {
	has, err := l.ds.HasSpecies()
	if err != nil || has {
		return err
	}

	records, err := readCSV(path)
	if err != nil {
		return err
	}

	species := make([]datastore.Species, 0, len(records))
	for _, row := range records {
		if len(row) < 1 {
			continue
		}
		species = append(species, datastore.Species{BirdName: row[0]})
	}

	if err := l.ds.InsertSpeciesBatch(species); err != nil {
		return err
	}
	l.log.Info("species catalog loaded", "file", path, "rows", len(species))
	return nil
}

func (l *Loader) loadSightings(path string) error {
	has, err := l.ds.HasSightings()
	if err != nil || has {
		return err
	}

	records, err := readCSV(path)
	if err != nil {
		return err
	}

	sightings := make([]datastore.Sighting, 0, len(records))
	for _, row := range records {
		if len(row) < 3 {
			continue
		}
		count, err := strconv.Atoi(row[2])
		if err != nil {
			// eBird exports use "X" for present-but-uncounted
			count = 0
		}
		sightings = append(sightings, datastore.Sighting{
			SamplingEventID:  row[0],
			CommonName:       row[1],
			ObservationCount: count,
		})
	}

	if err := l.ds.InsertSightingsBatch(sightings); err != nil {
		return err
	}
	l.log.Info("sightings loaded", "file", path, "rows", len(sightings))
	return nil
}

func (l *Loader) loadChecklists(path string) error {
	has, err := l.ds.HasChecklists()
	if err != nil || has {
		return err
	}

	records, err := readCSV(path)
	if err != nil {
		return err
	}

	checklists := make([]datastore.Checklist, 0, len(records))
	for _, row := range records {
		if len(row) < 7 {
			continue
		}
		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return parseError(err, path, "lat", row[1])
		}
		lng, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return parseError(err, path, "lng", row[2])
		}
		duration := 0.0
		if row[6] != "" {
			duration, err = strconv.ParseFloat(row[6], 64)
			if err != nil {
				return parseError(err, path, "duration", row[6])
			}
		}
		checklists = append(checklists, datastore.Checklist{
			SamplingEventID: row[0],
			Latitude:        lat,
			Longitude:       lng,
			ObservationDate: row[3],
			ObservationTime: row[4],
			ObserverID:      row[5],
			Duration:        duration,
		})
	}

	if err := l.ds.InsertChecklistsBatch(checklists); err != nil {
		return err
	}
	l.log.Info("checklists loaded", "file", path, "rows", len(checklists))
	return nil
}

// readCSV returns all data rows of the file, header excluded.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("seed").
			Category(errors.CategoryFileParsing).
			Context("file", path).
			Build()
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var records [][]string
	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(err).
				Component("seed").
				Category(errors.CategoryFileParsing).
				Context("file", path).
				Build()
		}
		if header {
			header = false
			continue
		}
		records = append(records, row)
	}
	return records, nil
}

func parseError(err error, path, field, value string) error {
	return errors.New(err).
		Component("seed").
		Category(errors.CategoryFileParsing).
		Context("file", path).
		Context("field", field).
		Context("value", value).
		Build()
}
