// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"log/slog"
	"time"

	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/errors"
	"github.com/tphakala/birdlist-go/internal/logging"
	"github.com/tphakala/birdlist-go/internal/region"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Interface abstracts the underlying database implementation and defines the
// operations available on the record store.
type Interface interface {
	Open() error
	Close() error

	// checklist lifecycle
	CreateChecklist(checklist *Checklist, sightings []Sighting) error
	UpdateChecklist(checklist *Checklist, sightings []Sighting) error
	DeleteChecklist(id uint) error
	GetChecklist(id uint) (Checklist, error)
	ChecklistsByEventIDs(eventIDs []string) ([]Checklist, error)
	SightingsByEventID(eventID string) ([]Sighting, error)

	// region aggregates
	RegionSpeciesStats(box region.BoundingBox) ([]SpeciesRegionStat, error)
	SightingsBySpecies(commonName string) ([]Sighting, error)
	RegionSightingTotals(box region.BoundingBox, commonName string) ([]EventSightingTotal, error)

	// per-observer statistics
	ObserverSightings(observerID string) ([]TimedSighting, error)
	ObserverSightingLocations(observerID string) ([]LocatedSighting, error)
	ObserverChecklists(observerID string) ([]Checklist, error)
	TotalHours(observerID string) (float64, error)

	// species catalog
	AllSpecies() ([]Species, error)
	SpeciesByPrefix(prefix string, limit int) ([]Species, error)

	// bulk-load bootstrap
	HasSpecies() (bool, error)
	HasSightings() (bool, error)
	HasChecklists() (bool, error)
	InsertSpeciesBatch(species []Species) error
	InsertSightingsBatch(sightings []Sighting) error
	InsertChecklistsBatch(checklists []Checklist) error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB  *gorm.DB
	log *slog.Logger
}

// New creates a new datastore instance based on the provided settings.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		// Settings validation rejects this before we get here
		return nil
	}
}

// logger returns the store's slog logger, falling back to the shared
// datastore service logger when none was injected.
func (ds *DataStore) logger() *slog.Logger {
	if ds.log != nil {
		return ds.log
	}
	if l := logging.ForService("datastore"); l != nil {
		ds.log = l
		return l
	}
	return slog.Default()
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Species{}, &Checklist{}, &Sighting{}); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("operation", "auto_migrate").
			Context("db_type", dbType).
			Build()
	}

	if debug {
		logging.Debug("database connection initialized", "db_type", dbType, "connection", connectionInfo)
	}

	return nil
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      false,
		},
	)
}
