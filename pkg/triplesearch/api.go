package triplesearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"triplesearch/internal/evo"
	"triplesearch/internal/fitness"
	"triplesearch/internal/model"
	"triplesearch/internal/report"
)

type (
	Candidate  = model.Candidate
	Population = model.Population
	Range      = evo.Range
	Reporter   = report.Reporter
	Generation = report.Generation
)

const PerfectRank = fitness.PerfectRank

type Options struct {
	Logger    logr.Logger
	Reporters []Reporter
}

type Client struct {
	logger    logr.Logger
	reporters []Reporter
}

type RunRequest struct {
	RunID          string
	PopulationSize int
	SampleSize     int
	BootstrapRange Range
	MutationRange  Range
	Crossover      string
	NonFinite      string
	Seed           int64

	// ReportSize is the number of top candidates handed to reporters; 0 uses
	// the default of 10, capped at the population size.
	ReportSize int

	// Generations caps the run; 0 runs until TargetRank is reached or ctx is done.
	Generations int

	// TargetRank stops the run once the best rank reaches it; 0 disables.
	TargetRank float64

	// Initial replaces the random bootstrap when set.
	Initial Population
}

type RunSummary struct {
	RunID            string
	Generations      int
	StopReason       string
	Best             Candidate
	BestByGeneration []float64
	Elapsed          time.Duration
}

func New(opts Options) *Client {
	return &Client{
		logger:    opts.Logger,
		reporters: append([]Reporter(nil), opts.Reporters...),
	}
}

// Run executes the optimizer. A cancelled ctx is not a failure of the run: the
// summary of the last completed generation is returned together with the
// context error so callers can tell the two apart with IsCancellation.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.PopulationSize <= 0 {
		req.PopulationSize = evo.DefaultPopulationSize
	}
	if req.SampleSize <= 0 {
		req.SampleSize = evo.DefaultSampleSize
	}
	if req.ReportSize < 0 {
		return RunSummary{}, errors.New("report size must be >= 0")
	}
	if req.ReportSize == 0 {
		req.ReportSize = min(evo.DefaultReportSize, req.PopulationSize)
	}
	if req.Generations < 0 {
		return RunSummary{}, errors.New("generations must be >= 0")
	}
	if req.TargetRank < 0 {
		return RunSummary{}, errors.New("target rank must be >= 0")
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	policy, err := fitness.ParsePolicy(req.NonFinite)
	if err != nil {
		return RunSummary{}, err
	}
	reproducer, err := evo.ReproducerFromName(req.Crossover)
	if err != nil {
		return RunSummary{}, err
	}

	logger := c.logger.WithValues("run_id", req.RunID)
	monitor, err := evo.NewPopulationMonitor(evo.MonitorConfig{
		Evaluator:      fitness.TripleEvaluator{Policy: policy},
		Reproducer:     reproducer,
		Reporter:       report.Multi(c.reporters),
		Terminator:     evo.AnyOf(evo.MaxGenerations(req.Generations), evo.TargetRank(req.TargetRank)),
		Logger:         logger,
		PopulationSize: req.PopulationSize,
		SampleSize:     req.SampleSize,
		ReportSize:     req.ReportSize,
		BootstrapRange: req.BootstrapRange,
		MutationRange:  req.MutationRange,
		Seed:           req.Seed,
	})
	if err != nil {
		return RunSummary{}, err
	}

	started := time.Now()
	result, err := monitor.Run(ctx, req.Initial)
	summary := RunSummary{
		RunID:            req.RunID,
		Generations:      result.Generations,
		StopReason:       result.StopReason,
		Best:             result.Best,
		BestByGeneration: result.BestByGeneration,
		Elapsed:          time.Since(started),
	}
	if err != nil {
		if IsCancellation(err) {
			return summary, err
		}
		return RunSummary{}, fmt.Errorf("run %s: %w", req.RunID, err)
	}
	return summary, nil
}

// IsCancellation reports whether err only reflects the caller stopping the run.
func IsCancellation(err error) bool {
	return evo.IsCancellation(err)
}

// Evaluate ranks a single triple and also returns its residual.
func Evaluate(x, y, z float64) (rank, residual float64) {
	c := model.NewCandidate(0, x, y, z)
	rank = fitness.TripleEvaluator{}.Evaluate(&c)
	return rank, fitness.Residual(x, y, z)
}
