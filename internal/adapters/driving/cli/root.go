// Package cli provides the tdsprep command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driving"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

var version = "dev"

var (
	pipelineService driving.PipelineService
	inspectService  driving.InspectService
	settingsService driving.SettingsService
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tdsprep",
	Short: "Prepare course and forum content for retrieval",
	Long: `tdsprep turns scraped course markdown and Discourse forum posts into
cleaned, chunked and quality-scored records for a vector-store builder.

Settings are read from tdsprep.toml in the working directory when present.
Command-line flags override the configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default tdsprep.toml)")
}

// SetServices sets the services used by commands.
func SetServices(
	pipeline driving.PipelineService,
	inspect driving.InspectService,
	settings driving.SettingsService,
) {
	pipelineService = pipeline
	inspectService = inspect
	settingsService = settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Cancelling ctx stops a running pipeline.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configuredOptions returns the options from the configuration file, or
// zero options when no settings service is set.
func configuredOptions() (domain.PipelineOptions, error) {
	if settingsService == nil {
		return domain.PipelineOptions{}, nil
	}
	return settingsService.Options(configPath)
}
