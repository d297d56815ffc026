// Package serve implements the HTTP API server command.
package serve

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tphakala/birdlist-go/internal/api"
	"github.com/tphakala/birdlist-go/internal/conf"
	"github.com/tphakala/birdlist-go/internal/datastore"
	"github.com/tphakala/birdlist-go/internal/logging"
	"github.com/tphakala/birdlist-go/internal/region"
)

// Command creates the serve command, which runs the JSON API server.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the checklist API server",
		Long:  "Open the database and serve the checklist, sightings and statistics API over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}

	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port to listen on")
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		fmt.Printf("error binding flags: %v\n", err)
	}

	return cmd
}

func runServer(settings *conf.Settings) error {
	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer store.Close()

	selector := region.NewSelector(time.Duration(settings.Session.TTLMinutes) * time.Minute)

	controller, err := api.New(settings, store, selector)
	if err != nil {
		return fmt.Errorf("initializing API: %w", err)
	}
	defer controller.Shutdown()

	logging.Info("server starting", "port", settings.WebServer.Port)
	return controller.Start()
}
