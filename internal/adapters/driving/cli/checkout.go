package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout [collection]",
	Short: "Switch the current collection",
	Long: `Switch the current collection. The choice persists across runs; a
collection that does not exist yet materialises on first import.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	if err := collectionService.Checkout(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Switched to collection %q\n", args[0])
	return nil
}
