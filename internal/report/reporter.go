package report

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"triplesearch/internal/model"
)

// Generation is the read-only view of one ranked generation handed to
// reporters. Top holds copies in descending rank order.
type Generation struct {
	Index   int
	Top     []model.Candidate
	Summary Summary
}

// Reporter observes ranked generations. An error aborts the run.
type Reporter interface {
	Report(ctx context.Context, gen Generation) error
}

type Discard struct{}

func (Discard) Report(context.Context, Generation) error {
	return nil
}

// Multi fans a generation out to every reporter in order and stops at the
// first failure.
type Multi []Reporter

func (m Multi) Report(ctx context.Context, gen Generation) error {
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Report(ctx, gen); err != nil {
			return err
		}
	}
	return nil
}

// WriterReporter prints each top candidate as a rank line followed by its
// coordinates, separated by blank lines.
type WriterReporter struct {
	W io.Writer
}

func (r WriterReporter) Report(_ context.Context, gen Generation) error {
	for _, c := range gen.Top {
		if _, err := fmt.Fprintln(r.W, c.String()); err != nil {
			return fmt.Errorf("write generation %d report: %w", gen.Index, err)
		}
	}
	return nil
}

// LogReporter emits one structured entry per generation and, at V(1), one per
// top candidate.
type LogReporter struct {
	Logger logr.Logger
}

func (r LogReporter) Report(_ context.Context, gen Generation) error {
	s := gen.Summary
	r.Logger.Info("generation ranked",
		"generation", gen.Index,
		"best_rank", s.Best,
		"mean_rank", s.Mean,
		"rank_stddev", s.StdDev,
		"zero_ranks", s.ZeroRanks,
		"rejected", s.Rejected,
	)
	if v := r.Logger.V(1); v.Enabled() {
		for i, c := range gen.Top {
			v.Info("top candidate", "generation", gen.Index, "position", i+1, "rank", c.Rank, "x", c.X, "y", c.Y, "z", c.Z)
		}
	}
	return nil
}
