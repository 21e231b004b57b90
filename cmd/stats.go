package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rahulj/mockmate/internal/progress"
	"github.com/rahulj/mockmate/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the progress overview",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("email", "", "Account email (defaults to the signed-in user)")
}

// resolveEmail picks the account: --email flag, else the signed-in user.
func resolveEmail(ctx context.Context, st *store.Store, flagged string) (string, error) {
	if flagged != "" {
		return flagged, nil
	}
	current, err := st.Users().Current(ctx)
	if err != nil {
		return "", fmt.Errorf("read current user: %w", err)
	}
	if current == nil {
		return "", fmt.Errorf("no user signed in; pass --email")
	}
	return current.Email, nil
}

func runStats(cmd *cobra.Command, args []string) error {
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

	history, err := st.Attempts().List(ctx, email, 0)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	ov := progress.Compute(history)

	fmt.Printf("Attempts:  %d\n", ov.TotalAttempts)
	fmt.Printf("Questions: %d\n", ov.TotalQuestions)
	fmt.Printf("Average:   %d%%\n", ov.AverageScore)
	fmt.Printf("Best:      %d%%\n", ov.BestScore)

	if len(ov.ByDomain) > 0 {
		fmt.Println("\nBy stream:")
		domains := make([]string, 0, len(ov.ByDomain))
		for d := range ov.ByDomain {
			domains = append(domains, d)
		}
		sort.Strings(domains)
		for _, d := range domains {
			stat := ov.ByDomain[d]
			fmt.Printf("  %-30s %3d%% avg over %d\n", d, stat.AvgScore, stat.Count)
		}
	}
	return nil
}
