package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ScoreData is one model's confidence within a recorded decision.
type ScoreData struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Decision is a recorded one-vs-all classification.
type Decision struct {
	ID         int64
	BatchID    string
	QuestionID string
	Category   string
	Confidence float64
	Scores     []ScoreData
	CreatedAt  time.Time
}

// QueryOpts configures decision queries.
type QueryOpts struct {
	Limit    int    // max results (0 = unlimited)
	Category string // only this category when non-empty
}

// CategoryCount aggregates decisions per category.
type CategoryCount struct {
	Category      string
	Count         int
	AvgConfidence float64
}

// DecisionRepo records and queries classification decisions.
type DecisionRepo interface {
	// Append records decisions in one transaction. Zero CreatedAt values
	// are set to the current time, and IDs are filled in.
	Append(ctx context.Context, decisions ...*Decision) error

	// Recent returns decisions matching opts, newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Decision, error)

	// CountByCategory returns per-category totals, largest first.
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}

type decisionRepo struct {
	db *sql.DB
}

func (r *decisionRepo) Append(ctx context.Context, decisions ...*Decision) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO decisions
		(batch_id, question_id, category, confidence, scores, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, d := range decisions {
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		scores, err := json.Marshal(d.Scores)
		if err != nil {
			return fmt.Errorf("marshal scores: %w", err)
		}
		res, err := stmt.ExecContext(ctx,
			d.BatchID, d.QuestionID, d.Category, d.Confidence, string(scores), d.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("insert decision for %s: %w", d.QuestionID, err)
		}
		if d.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("decision id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *decisionRepo) Recent(ctx context.Context, opts QueryOpts) ([]Decision, error) {
	q := `SELECT id, batch_id, question_id, category, confidence, scores, created_at
		FROM decisions`
	var args []any
	if opts.Category != "" {
		q += " WHERE category = ?"
		args = append(args, opts.Category)
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var (
			d       Decision
			scores  string
			created int64
		)
		if err := rows.Scan(&d.ID, &d.BatchID, &d.QuestionID, &d.Category, &d.Confidence, &scores, &created); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if err := json.Unmarshal([]byte(scores), &d.Scores); err != nil {
			return nil, fmt.Errorf("unmarshal scores of decision %d: %w", d.ID, err)
		}
		d.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *decisionRepo) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*), AVG(confidence)
		FROM decisions GROUP BY category ORDER BY COUNT(*) DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count, &c.AvgConfidence); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
