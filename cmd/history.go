package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rahulj/mockmate/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent attempts",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("email", "", "Account email (defaults to the signed-in user)")
	historyCmd.Flags().Int("limit", 20, "Number of attempts to show (0 = all)")
	historyCmd.Flags().Int("prune", -1, "Keep only the N most recent attempts, delete the rest")
}

func runHistory(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	logger := setupLogging(v)
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(v)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	email, err := resolveEmail(ctx, st, v.GetString("email"))
	if err != nil {
		return err
	}

	if keep := v.GetInt("prune"); keep >= 0 {
		if err := st.Attempts().Prune(ctx, email, keep); err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
		fmt.Printf("History pruned to the %d most recent attempts.\n", keep)
	}

	attempts, err := st.Attempts().List(ctx, email, v.GetInt("limit"))
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(attempts) == 0 {
		fmt.Println("No attempts recorded.")
		return nil
	}

	for _, r := range attempts {
		fmt.Printf("%s  %-28s %-20s %3d%%  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.Domain, r.Role, r.ScorePercent, r.Level)
	}
	return nil
}
