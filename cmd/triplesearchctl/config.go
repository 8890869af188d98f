package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"triplesearch/internal/evo"
)

const envPrefix = "TRIPLESEARCH"

type runConfig struct {
	PopulationSize int       `mapstructure:"population_size" json:"population_size"`
	SampleSize     int       `mapstructure:"sample_size" json:"sample_size"`
	ReportSize     int       `mapstructure:"report_size" json:"report_size"`
	BootstrapRange evo.Range `mapstructure:"bootstrap_range" json:"bootstrap_range"`
	MutationRange  evo.Range `mapstructure:"mutation_range" json:"mutation_range"`
	Crossover      string    `mapstructure:"crossover" json:"crossover"`
	NonFinite      string    `mapstructure:"non_finite" json:"non_finite"`
	Seed           int64     `mapstructure:"seed" json:"seed"`
	Generations    int       `mapstructure:"generations" json:"generations"`
	TargetRank     float64   `mapstructure:"target_rank" json:"target_rank"`
	LogLevel       string    `mapstructure:"log_level" json:"log_level"`
	LogFormat      string    `mapstructure:"log_format" json:"log_format"`
	MetricsAddr    string    `mapstructure:"metrics_addr" json:"metrics_addr"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("population_size", evo.DefaultPopulationSize)
	v.SetDefault("sample_size", evo.DefaultSampleSize)
	v.SetDefault("report_size", evo.DefaultReportSize)
	v.SetDefault("bootstrap_range.low", evo.DefaultBootstrapRange.Low)
	v.SetDefault("bootstrap_range.high", evo.DefaultBootstrapRange.High)
	v.SetDefault("mutation_range.low", evo.DefaultMutationRange.Low)
	v.SetDefault("mutation_range.high", evo.DefaultMutationRange.High)
	v.SetDefault("crossover", "single_parent")
	v.SetDefault("non_finite", "preserve")
	v.SetDefault("seed", 0)
	v.SetDefault("generations", 0)
	v.SetDefault("target_rank", 0.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")
	v.SetDefault("metrics_addr", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// registerConfigFlags declares the flags shared by run and config. Flag names
// map onto config keys through flagKeys.
func registerConfigFlags(fs *flag.FlagSet) *string {
	configPath := fs.String("config", "", "optional config file (yaml, json or toml)")
	fs.Int("pop", evo.DefaultPopulationSize, "population size")
	fs.Int("sample", evo.DefaultSampleSize, "breeding sample size")
	fs.Int("report", evo.DefaultReportSize, "top candidates reported per generation")
	fs.Float64("bootstrap-low", evo.DefaultBootstrapRange.Low, "bootstrap range lower bound")
	fs.Float64("bootstrap-high", evo.DefaultBootstrapRange.High, "bootstrap range upper bound")
	fs.Float64("mutation-low", evo.DefaultMutationRange.Low, "mutation factor lower bound")
	fs.Float64("mutation-high", evo.DefaultMutationRange.High, "mutation factor upper bound")
	fs.String("crossover", "single_parent", "crossover mode: single_parent|per_coordinate")
	fs.String("non-finite", "preserve", "non-finite residual policy: preserve|reject")
	fs.Int64("seed", 0, "rng seed (0 seeds from the clock)")
	fs.Int("gens", 0, "generation limit (0 runs until interrupted)")
	fs.Float64("target-rank", 0, "stop once the best rank reaches this value (0 disables)")
	fs.String("log-level", "info", "log level: info|debug|warn|error or a verbosity number")
	fs.String("log-format", "auto", "log format: auto|console|json")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	return configPath
}

var flagKeys = map[string]string{
	"pop":            "population_size",
	"sample":         "sample_size",
	"report":         "report_size",
	"bootstrap-low":  "bootstrap_range.low",
	"bootstrap-high": "bootstrap_range.high",
	"mutation-low":   "mutation_range.low",
	"mutation-high":  "mutation_range.high",
	"crossover":      "crossover",
	"non-finite":     "non_finite",
	"seed":           "seed",
	"gens":           "generations",
	"target-rank":    "target_rank",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"metrics-addr":   "metrics_addr",
}

// loadRunConfig layers defaults, the optional config file, TRIPLESEARCH_*
// environment variables and explicitly set flags, in increasing precedence.
func loadRunConfig(configPath string, fs *flag.FlagSet) (runConfig, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return runConfig{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}
	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			if key, ok := flagKeys[f.Name]; ok {
				v.Set(key, f.Value.(flag.Getter).Get())
			}
		})
	}

	var cfg runConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return runConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return runConfig{}, err
	}
	return cfg, nil
}

func (c runConfig) validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("population_size must be > 0")
	}
	if c.SampleSize <= 0 || c.SampleSize > c.PopulationSize {
		return fmt.Errorf("sample_size must be in [1, population_size]")
	}
	if c.ReportSize < 0 || c.ReportSize > c.PopulationSize {
		return fmt.Errorf("report_size must be in [0, population_size]")
	}
	if c.Generations < 0 {
		return fmt.Errorf("generations must be >= 0")
	}
	if c.TargetRank < 0 {
		return fmt.Errorf("target_rank must be >= 0")
	}
	if err := c.BootstrapRange.Validate(); err != nil {
		return fmt.Errorf("bootstrap_range: %w", err)
	}
	if err := c.MutationRange.Validate(); err != nil {
		return fmt.Errorf("mutation_range: %w", err)
	}
	return nil
}
