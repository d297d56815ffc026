// Package cmd assembles the birdlist command tree.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tphakala/birdlist-go/cmd/seed"
	"github.com/tphakala/birdlist-go/cmd/serve"
	"github.com/tphakala/birdlist-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "birdlist",
		Short: "BirdList-Go CLI",
	}

	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")

	subcommands := []*cobra.Command{
		serve.Command(settings),
		seed.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}
