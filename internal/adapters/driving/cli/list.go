package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// listLimit is the -n flag.
var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported documents",
	Long:  `List import records for the current collection, most recent first.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of records to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if importerService == nil {
		return errors.New("importer service not configured")
	}

	records, err := importerService.ListImports(cmd.Context(), listLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Println("No documents imported yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("HASH", "FILE", "FORMAT", "STATUS", "CHUNKS", "IMPORTED")
	for _, rec := range records {
		t.Row(
			shortHash(rec.ContentHash),
			rec.FileName,
			string(rec.Format),
			string(rec.Status),
			fmt.Sprintf("%d", rec.ChunkCount),
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	cmd.Println(t.String())
	return nil
}

// shortHash abbreviates a content hash for display.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
