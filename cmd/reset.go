package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored data",
	Long:  "Delete the database file: accounts, attempt history, everything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		setupLogging(v)

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete without --yes")
		}

		dbPath, err := resolveDBPath(v)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("Nothing to delete.")
				return nil
			}
			return fmt.Errorf("delete database: %w", err)
		}
		fmt.Printf("Deleted %s\n", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
