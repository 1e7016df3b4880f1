package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show library status",
	Long:  `Show the current collection, per-collection point counts, and completed imports.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	status, err := collectionService.Status(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Current collection: %s\n", status.Current)
	cmd.Printf("Completed imports:  %d\n\n", status.CompletedImports)

	if len(status.Collections) == 0 {
		cmd.Println("No collections in the vector store yet.")
		return nil
	}

	names := make([]string, 0, len(status.Collections))
	for name := range status.Collections {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("COLLECTION", "POINTS")
	for _, name := range names {
		label := name
		if name == status.Current {
			label = "* " + name
		}
		t.Row(label, fmt.Sprintf("%d", status.Collections[name]))
	}
	cmd.Println(t.String())
	return nil
}
