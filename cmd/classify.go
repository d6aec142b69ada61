package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/qcri/qfmark/internal/classifier"
	"github.com/qcri/qfmark/internal/config"
	"github.com/qcri/qfmark/internal/question"
	"github.com/qcri/qfmark/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <document|dir>...",
	Short: "Pick the most confident category for each question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		showScores, _ := cmd.Flags().GetBool("scores")
		record, _ := cmd.Flags().GetBool("record")

		reg, err := config.LoadRegistry(cfg.Registry)
		if err != nil {
			return err
		}
		pool, err := classifier.Build(classifier.DefaultFactory, reg.Entries(),
			classifier.WithLogger(slog.Default()))
		if err != nil {
			return fmt.Errorf("build classifier pool: %w", err)
		}
		slog.Info("classifier pool ready", slog.Any("categories", pool.IDs()))

		docs, err := question.LoadAll(args...)
		if err != nil {
			return fmt.Errorf("load documents: %w", err)
		}

		results, err := classifyAll(cmd.Context(), pool, docs, cfg)
		if err != nil {
			return err
		}

		printDecisions(cmd.OutOrStdout(), results, showScores)

		if record {
			recordDecisions(cmd, results)
		}
		return nil
	},
}

// result pairs a document with its decision.
type result struct {
	doc      *question.Document
	decision classifier.Decision
}

// classifyAll annotates and classifies documents with at most cfg.Workers
// running at once. Results keep the input order.
func classifyAll(ctx context.Context, pool *classifier.OneVsAll, docs []*question.Document, cfg config.Config) ([]result, error) {
	results := make([]result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			instance, err := question.Instance(doc, cfg.Marking)
			if err != nil {
				return fmt.Errorf("annotate: %w", err)
			}
			d, err := pool.Decide(instance)
			if err != nil {
				return fmt.Errorf("classify %s: %w", doc.ID, err)
			}
			results[i] = result{doc: doc, decision: d}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printDecisions(w io.Writer, results []result, showScores bool) {
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%.4f", r.doc.ID, r.decision.ID, r.decision.Confidence)
		if showScores {
			parts := make([]string, len(r.decision.Scores))
			for i, s := range r.decision.Scores {
				parts[i] = fmt.Sprintf("%s=%.4f", s.ID, s.Confidence)
			}
			fmt.Fprintf(w, "\t%s", strings.Join(parts, " "))
		}
		fmt.Fprintln(w)
	}
}

// recordDecisions appends the batch to the decision log. Failures are
// logged and never fail the classification.
func recordDecisions(cmd *cobra.Command, results []result) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		warn("resolve DB path", err)
		return
	}
	st, err := store.Open(dbPath)
	if err != nil {
		warn("open store", err)
		return
	}
	defer st.Close()

	batch := uuid.New().String()
	decisions := make([]*store.Decision, len(results))
	for i, r := range results {
		scores := make([]store.ScoreData, len(r.decision.Scores))
		for j, s := range r.decision.Scores {
			scores[j] = store.ScoreData{Category: s.ID, Confidence: s.Confidence}
		}
		decisions[i] = &store.Decision{
			BatchID:    batch,
			QuestionID: r.doc.ID,
			Category:   r.decision.ID,
			Confidence: r.decision.Confidence,
			Scores:     scores,
		}
	}

	if err := st.DecisionRepo().Append(cmd.Context(), decisions...); err != nil {
		warn("record decisions", err)
		return
	}
	slog.Info("recorded decisions", slog.String("batch", batch), slog.Int("count", len(decisions)))
}

func init() {
	classifyCmd.Flags().String("registry", "", "Model registry YAML (overrides QFMARK_REGISTRY)")
	classifyCmd.Flags().Int("workers", 0, "Documents classified in parallel (overrides QFMARK_WORKERS)")
	classifyCmd.Flags().Bool("scores", false, "Print every category's confidence")
	classifyCmd.Flags().Bool("record", false, "Append decisions to the decision log")
	addMarkingFlags(classifyCmd)
}
