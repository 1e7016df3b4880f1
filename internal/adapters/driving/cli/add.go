package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/booklore/librarian/internal/core/domain"
)

var addCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Import a file or directory",
	Long: `Import a file, or recursively a directory, into the current collection.

Files whose content is already in the collection are skipped; a failed
file never aborts its siblings. Supported formats: txt, md, pdf, epub.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if importerService == nil {
		return errors.New("importer service not configured")
	}

	summary, err := importerService.ImportPath(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, o := range summary.Outcomes {
		switch o.Kind {
		case domain.OutcomeCompleted:
			cmd.Printf("  imported  %s (%d chunks)\n", o.Path, o.ChunkCount)
		case domain.OutcomeSkipped:
			cmd.Printf("  skipped   %s (already imported)\n", o.Path)
		default:
			cmd.Printf("  failed    %s: %v\n", o.Path, o.Err)
		}
	}
	cmd.Printf("\n%d imported, %d skipped, %d failed\n",
		summary.Completed, summary.Skipped, summary.Failed)

	if summary.Failed > 0 {
		return errors.New("some files failed to import")
	}
	return nil
}
