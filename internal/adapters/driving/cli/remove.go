package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// remove flags.
var (
	removeHashPrefix string
	removeFileName   string
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove one imported document",
	Long: `Remove one imported document from the current collection, matched by
content-hash prefix and/or file-name substring. The match must be
unambiguous; narrow the criteria if more than one document matches.`,
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().StringVar(&removeHashPrefix, "hash-prefix", "", "Content hash prefix to match")
	removeCmd.Flags().StringVar(&removeFileName, "filename", "", "File name substring to match")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, _ []string) error {
	if importerService == nil {
		return errors.New("importer service not configured")
	}

	record, err := importerService.Remove(cmd.Context(), removeHashPrefix, removeFileName)
	if err != nil {
		return err
	}
	cmd.Printf("Removed %s (%s, %d chunks)\n",
		record.FileName, shortHash(record.ContentHash), record.ChunkCount)
	return nil
}
