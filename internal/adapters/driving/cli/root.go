// Package cli provides the cobra-based command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/booklore/librarian/internal/core/ports/driving"
	"github.com/booklore/librarian/internal/logger"
)

// version is set by Init from the build.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	importerService   driving.Importer
	collectionService driving.CollectionService
)

// verbose is the persistent --verbose flag.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Import documents into a vector library",
	Long: `librarian ingests documents (txt, md, pdf, epub) into a local vector
library: files are hashed, deduplicated, chunked, embedded, and stored
with durable bookkeeping so every import is safe to repeat.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Init wires the services and build version into the command tree.
func Init(importer driving.Importer, collections driving.CollectionService, buildVersion string) {
	importerService = importer
	collectionService = collections
	if buildVersion != "" {
		version = buildVersion
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
