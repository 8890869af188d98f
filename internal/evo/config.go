package evo

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"triplesearch/internal/fitness"
	"triplesearch/internal/report"
)

const (
	DefaultPopulationSize = 100000
	DefaultSampleSize     = 1000
	DefaultReportSize     = 10
)

var (
	DefaultBootstrapRange = Range{Low: -100, High: 100}
	DefaultMutationRange  = Range{Low: 0.99, High: 1.01}
)

var (
	ErrInvalidConfig = errors.New("invalid monitor config")
	ErrEmptySample   = errors.New("breeding sample is empty")
)

// Range is a closed interval of reals used for uniform draws.
type Range struct {
	Low  float64 `mapstructure:"low" json:"low"`
	High float64 `mapstructure:"high" json:"high"`
}

func (r Range) Validate() error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) || math.IsInf(r.Low, 0) || math.IsInf(r.High, 0) {
		return fmt.Errorf("range bounds must be finite: [%g, %g]", r.Low, r.High)
	}
	if r.Low > r.High {
		return fmt.Errorf("range low must be <= high: [%g, %g]", r.Low, r.High)
	}
	return nil
}

func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// MonitorConfig wires the generation cycle together. Zero values fall back to
// the defaults above, except for the sizes which must be set explicitly.
type MonitorConfig struct {
	Evaluator      fitness.Evaluator
	Reproducer     Reproducer
	Reporter       report.Reporter
	Terminator     Terminator
	Source         Source
	Logger         logr.Logger
	PopulationSize int
	SampleSize     int
	ReportSize     int
	BootstrapRange Range
	MutationRange  Range
	Seed           int64
}

func (cfg *MonitorConfig) validate() error {
	if cfg.PopulationSize <= 0 {
		return fmt.Errorf("%w: population size must be > 0", ErrInvalidConfig)
	}
	if cfg.SampleSize <= 0 || cfg.SampleSize > cfg.PopulationSize {
		return fmt.Errorf("%w: sample size must be in [1, population size]", ErrInvalidConfig)
	}
	if cfg.ReportSize < 0 || cfg.ReportSize > cfg.PopulationSize {
		return fmt.Errorf("%w: report size must be in [0, population size]", ErrInvalidConfig)
	}
	if cfg.BootstrapRange == (Range{}) {
		cfg.BootstrapRange = DefaultBootstrapRange
	}
	if cfg.MutationRange == (Range{}) {
		cfg.MutationRange = DefaultMutationRange
	}
	if err := cfg.BootstrapRange.Validate(); err != nil {
		return fmt.Errorf("%w: bootstrap %v", ErrInvalidConfig, err)
	}
	if err := cfg.MutationRange.Validate(); err != nil {
		return fmt.Errorf("%w: mutation %v", ErrInvalidConfig, err)
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = fitness.TripleEvaluator{Policy: fitness.PolicyPreserve}
	}
	if cfg.Reproducer == nil {
		cfg.Reproducer = SingleParentCopy{}
	}
	if cfg.Reporter == nil {
		cfg.Reporter = report.Discard{}
	}
	if cfg.Terminator == nil {
		cfg.Terminator = Never()
	}
	if cfg.Source == nil {
		cfg.Source = NewSource(cfg.Seed)
	}
	return nil
}
