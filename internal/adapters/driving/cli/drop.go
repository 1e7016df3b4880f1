package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// dropForce is the --force flag.
var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the current collection",
	Long: `Delete the current collection from the vector store and clear its
tracking records. This cannot be undone; --force is required.`,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVar(&dropForce, "force", false, "Confirm the destructive drop")
	rootCmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, _ []string) error {
	if importerService == nil || collectionService == nil {
		return errors.New("services not configured")
	}

	name := collectionService.Current(cmd.Context())
	if !dropForce {
		return errors.New("drop deletes collection " + name + " permanently; re-run with --force")
	}

	if err := importerService.Drop(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Dropped collection %q\n", name)
	return nil
}
