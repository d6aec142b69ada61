package cmd

import (
	"fmt"
	"strings"

	"github.com/qcri/qfmark/internal/store"
	"github.com/qcri/qfmark/internal/ui/theme"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded classification decisions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		category, _ := cmd.Flags().GetString("category")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		decisions, err := s.DecisionRepo().Recent(cmd.Context(), store.QueryOpts{Limit: limit, Category: category})
		if err != nil {
			return fmt.Errorf("query decisions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(decisions) == 0 {
			fmt.Fprintln(out, "No decisions recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-8s  %-20s  %-12s  %s\n",
			"ID", "Timestamp", "Batch", "Question", "Category", "Confidence")
		fmt.Fprintln(out, strings.Repeat("─", 84))

		for _, d := range decisions {
			batch := d.BatchID
			if len(batch) > 8 {
				batch = batch[:8]
			}
			qid := d.QuestionID
			if len(qid) > 20 {
				qid = qid[:20]
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-8s  %-20s  %s  %s\n",
				d.ID,
				d.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				batch,
				qid,
				theme.Category.Render(fmt.Sprintf("%-12s", d.Category)),
				theme.Score.Render(fmt.Sprintf("%.4f", d.Confidence)),
			)
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show decision counts per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		counts, err := s.DecisionRepo().CountByCategory(cmd.Context())
		if err != nil {
			return fmt.Errorf("count decisions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			fmt.Fprintln(out, "No decisions recorded.")
			return nil
		}

		total := 0
		fmt.Fprintf(out, "%-16s  %8s  %s\n", "Category", "Count", "Avg confidence")
		fmt.Fprintln(out, strings.Repeat("─", 44))
		for _, c := range counts {
			total += c.Count
			fmt.Fprintf(out, "%-16s  %8d  %.4f\n", c.Category, c.Count, c.AvgConfidence)
		}
		fmt.Fprintln(out, strings.Repeat("─", 44))
		fmt.Fprintf(out, "%-16s  %8d\n", "Total", total)
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum number of decisions to show")
	historyListCmd.Flags().String("category", "", "Only show decisions for this category")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
