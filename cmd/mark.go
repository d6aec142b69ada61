package cmd

import (
	"fmt"

	"github.com/qcri/qfmark/internal/question"
	"github.com/qcri/qfmark/internal/ui/treeview"
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark <document|dir>...",
	Short: "Decorate question trees and print them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		pretty, _ := cmd.Flags().GetBool("pretty")

		docs, err := question.LoadAll(args...)
		if err != nil {
			return fmt.Errorf("load documents: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, doc := range docs {
			t, err := question.Annotate(doc, cfg.Marking)
			if err != nil {
				return fmt.Errorf("annotate: %w", err)
			}
			if pretty {
				fmt.Fprintf(out, "%s\n%s\n", doc.ID, treeview.Render(t, treeview.Themed()))
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", doc.ID, t)
		}
		return nil
	},
}

func init() {
	markCmd.Flags().Bool("pretty", false, "Render an indented, colored outline instead of the bracketed tree")
	addMarkingFlags(markCmd)
}
