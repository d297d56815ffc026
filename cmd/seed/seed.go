// Package seed implements the database bootstrap command.
package seed

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/seed"
)

// Command creates the seed command, which primes an empty database from the
// configured CSV files.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load species, sightings and checklists from CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(settings)
		},
	}

	cmd.Flags().StringVar(&settings.Seed.SpeciesFile, "species", settings.Seed.SpeciesFile, "Path to species CSV file")
	cmd.Flags().StringVar(&settings.Seed.SightingsFile, "sightings", settings.Seed.SightingsFile, "Path to sightings CSV file")
	cmd.Flags().StringVar(&settings.Seed.ChecklistsFile, "checklists", settings.Seed.ChecklistsFile, "Path to checklists CSV file")

	return cmd
}

func runSeed(settings *conf.Settings) error {
	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer store.Close()

	return seed.NewLoader(store, settings).Run()
}
