// Package cli implements the omnisync command line interface.
//
// Commands talk to the core exclusively through the driving ports.
// Execute wires the production adapters; tests swap the package-level
// service variables for fakes.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/omnisync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/omnisync-cli/internal/adapters/driven/omnivore"
	"github.com/custodia-labs/omnisync-cli/internal/adapters/driven/patch"
	"github.com/custodia-labs/omnisync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/omnisync-cli/internal/adapters/driven/template/mustache"
	"github.com/custodia-labs/omnisync-cli/internal/adapters/driven/vault/billy"
	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/omnisync-cli/internal/core/services"
	"github.com/custodia-labs/omnisync-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services consumed by the commands. Execute assigns the production
// implementations; tests inject fakes.
var (
	settingsService driving.SettingsService
	syncService     driving.SyncService
)

// stateDB is held open for the lifetime of the process so Execute can
// close it on the way out.
var stateDB *sqlite.Store

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "omnisync",
	Short: "Sync your Omnivore library into a folder of markdown files",
	Long: `Omnisync keeps a folder of markdown files in step with your Omnivore
library. Each saved article becomes one file, rendered through
templates you control, with its highlights underneath.

Run it from your vault root: articles are written to <folder>/<slug>.md
beneath the current directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the production dependencies and runs the root command.
func Execute(ctx context.Context) error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeStores()

	return rootCmd.ExecuteContext(ctx)
}

// initServices builds the adapter stack and assigns the package-level
// services. Configuration lives under the XDG config home, sync state
// under the XDG data home, and the vault root is the directory the
// command runs from.
func initServices() error {
	configStore, err := file.NewConfigStore(filepath.Join(xdg.ConfigHome, "omnisync"))
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(xdg.DataHome, "omnisync"))
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	stateDB = store

	vaultRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve vault root: %w", err)
	}

	settingsService = services.NewSettingsService(configStore)
	syncService = services.NewSyncEngine(
		settingsService,
		store.SyncStateStore(),
		store.SyncRunStore(),
		omnivore.NewFactory(),
		billy.NewOSStore(vaultRoot),
		patch.NewLocator(),
		services.NewDocumentRenderer(mustache.NewEngine()),
	)

	return nil
}

func closeStores() {
	if stateDB == nil {
		return
	}
	if err := stateDB.Close(); err != nil {
		logger.Warn("Failed to close state database: %v", err)
	}
	stateDB = nil
}
