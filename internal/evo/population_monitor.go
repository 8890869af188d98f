package evo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"triplesearch/internal/model"
	"triplesearch/internal/report"
)

type RunResult struct {
	Generations      int
	StopReason       string
	Best             model.Candidate
	BestByGeneration []float64
	FinalPopulation  model.Population
}

// PopulationMonitor owns one population and drives it through the generation
// cycle: evaluate, rank, report, select, mutate, reproduce.
type PopulationMonitor struct {
	cfg        MonitorConfig
	summarizer report.Summarizer

	current model.Population
	next    model.Population
	sample  model.Population
}

func NewPopulationMonitor(cfg MonitorConfig) (*PopulationMonitor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &PopulationMonitor{
		cfg:     cfg,
		current: make(model.Population, cfg.PopulationSize),
		next:    make(model.Population, cfg.PopulationSize),
		sample:  make(model.Population, 0, cfg.SampleSize),
	}, nil
}

// Config returns the validated configuration with defaults applied.
func (m *PopulationMonitor) Config() MonitorConfig {
	return m.cfg
}

// Run bootstraps a random population when initial is empty, otherwise it starts
// from the coordinates of initial, which must hold exactly PopulationSize
// candidates. It returns when the terminator fires, a reporter fails, or ctx is
// done; on cancellation the result describes the last completed generation and
// the context error is returned alongside it.
func (m *PopulationMonitor) Run(ctx context.Context, initial model.Population) (RunResult, error) {
	if len(initial) == 0 {
		Bootstrap(m.cfg.Source, m.current, m.cfg.BootstrapRange)
	} else {
		if len(initial) != m.cfg.PopulationSize {
			return RunResult{}, fmt.Errorf("initial population mismatch: got=%d want=%d", len(initial), m.cfg.PopulationSize)
		}
		for i := range initial {
			m.current[i] = initial[i].Coordinates()
		}
	}

	log := m.cfg.Logger
	log.Info("population bootstrapped",
		"population", humanize.Comma(int64(m.cfg.PopulationSize)),
		"sample", humanize.Comma(int64(m.cfg.SampleSize)),
		"evaluator", m.cfg.Evaluator.Name(),
		"crossover", m.cfg.Reproducer.Name(),
	)

	result := RunResult{}
	if err := ctx.Err(); err != nil {
		result.StopReason = StopCancelled
		return result, err
	}
	for {
		Evaluate(m.cfg.Evaluator, m.current)
		Rank(m.current)
		result.Generations++
		result.Best = m.current[0]
		result.BestByGeneration = append(result.BestByGeneration, m.current[0].Rank)

		gen := report.Generation{
			Index:   result.Generations,
			Top:     m.current[:m.cfg.ReportSize].Clone(),
			Summary: m.summarizer.Summarize(m.current),
		}
		if err := m.cfg.Reporter.Report(ctx, gen); err != nil {
			return RunResult{}, fmt.Errorf("report generation %d: %w", gen.Index, err)
		}
		log.V(1).Info("generation complete", "generation", gen.Index, "best_rank", result.Best.Rank)

		if reason, stop := m.cfg.Terminator.Stop(GenerationState{Generation: result.Generations, Best: result.Best}); stop {
			result.StopReason = reason
			log.Info("run stopped", "reason", reason, "generations", humanize.Comma(int64(result.Generations)), "best_rank", result.Best.Rank)
			return m.finish(result), nil
		}
		if err := ctx.Err(); err != nil {
			result.StopReason = StopCancelled
			log.Info("run cancelled", "generations", humanize.Comma(int64(result.Generations)), "best_rank", result.Best.Rank)
			return m.finish(result), err
		}

		if err := m.breed(); err != nil {
			return RunResult{}, fmt.Errorf("breed generation %d: %w", gen.Index, err)
		}
	}
}

func (m *PopulationMonitor) breed() error {
	sample, err := Select(m.current, m.cfg.SampleSize, m.sample)
	if err != nil {
		return err
	}
	m.sample = sample
	Mutate(m.cfg.Source, m.sample, m.cfg.MutationRange)
	if err := m.cfg.Reproducer.Reproduce(m.cfg.Source, m.sample, m.next); err != nil {
		return err
	}
	m.current, m.next = m.next, m.current
	return nil
}

func (m *PopulationMonitor) finish(result RunResult) RunResult {
	result.FinalPopulation = m.current.Clone()
	return result
}

// IsCancellation reports whether err only reflects the caller stopping the run.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
