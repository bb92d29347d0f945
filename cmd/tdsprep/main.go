// Command tdsprep prepares course and forum content for a retrieval-augmented
// course assistant.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/tdsprep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tdsprep/internal/adapters/driven/storage"
	"github.com/custodia-labs/tdsprep/internal/adapters/driving/cli"
	"github.com/custodia-labs/tdsprep/internal/connectors"
	"github.com/custodia-labs/tdsprep/internal/connectors/filesystem"
	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/core/services"
	"github.com/custodia-labs/tdsprep/internal/normalisers"
	"github.com/custodia-labs/tdsprep/internal/normalisers/text"
	"github.com/custodia-labs/tdsprep/internal/postprocessors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cleaner := text.New()

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors, cleaner)

	watcher := filesystem.NewWatcher()
	defer watcher.Close()

	pipeline := services.NewPipelineService(
		connectors.NewFactory(),
		normalisers.NewDefaultRegistry(cleaner),
		processors,
		storage.NewSinkFactory(),
		watcher,
	)
	inspect := services.NewInspectService(storage.NewReader())

	settings := services.NewSettingsService(openConfig)

	cli.SetServices(pipeline, inspect, settings)
	cli.SetVersion(version)

	return cli.Execute(ctx)
}

// openConfig opens the TOML configuration.
func openConfig(path string, mustExist bool) (driven.ConfigStore, error) {
	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
