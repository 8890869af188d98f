package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"triplesearch/internal/logging"
	"triplesearch/internal/report"
	"triplesearch/pkg/triplesearch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:], stdout, stderr)
	case "eval":
		return runEval(args[1:], stdout)
	case "config":
		return runShowConfig(args[1:], stdout)
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runRun(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := registerConfigFlags(fs)
	runID := fs.String("run-id", "", "explicit run id (optional)")
	quiet := fs.Bool("quiet", false, "do not print the top candidates of each generation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadRunConfig(*configPath, fs)
	if err != nil {
		return err
	}

	logger, flush, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})
	if err != nil {
		return err
	}
	defer flush()

	reporters := []triplesearch.Reporter{report.LogReporter{Logger: logger}}
	if !*quiet {
		reporters = append(reporters, report.WriterReporter{W: stdout})
	}
	if cfg.MetricsAddr != "" {
		metrics, _, shutdown, err := serveMetrics(cfg.MetricsAddr, logger)
		if err != nil {
			return err
		}
		defer shutdown()
		reporters = append(reporters, metrics)
	}

	client := triplesearch.New(triplesearch.Options{Logger: logger, Reporters: reporters})
	summary, err := client.Run(ctx, triplesearch.RunRequest{
		RunID:          *runID,
		PopulationSize: cfg.PopulationSize,
		SampleSize:     cfg.SampleSize,
		ReportSize:     cfg.ReportSize,
		BootstrapRange: cfg.BootstrapRange,
		MutationRange:  cfg.MutationRange,
		Crossover:      cfg.Crossover,
		NonFinite:      cfg.NonFinite,
		Seed:           cfg.Seed,
		Generations:    cfg.Generations,
		TargetRank:     cfg.TargetRank,
	})
	if err != nil && !triplesearch.IsCancellation(err) {
		return err
	}

	fmt.Fprintf(stdout, "run stopped run_id=%s reason=%s generations=%d elapsed=%s\n",
		summary.RunID, summary.StopReason, summary.Generations, summary.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(stdout, "best_rank=%.6f x=%f y=%f z=%f\n", summary.Best.Rank, summary.Best.X, summary.Best.Y, summary.Best.Z)
	return nil
}

func runEval(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	x := fs.Float64("x", 0, "x coordinate")
	y := fs.Float64("y", 0, "y coordinate")
	z := fs.Float64("z", 0, "z coordinate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rank, residual := triplesearch.Evaluate(*x, *y, *z)
	fmt.Fprintf(stdout, "x=%g y=%g z=%g residual=%g rank=%g\n", *x, *y, *z, residual, rank)
	return nil
}

func runShowConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	configPath := registerConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadRunConfig(*configPath, fs)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// serveMetrics exposes a private registry on addr and returns the reporter
// feeding it, the bound address and a shutdown func.
func serveMetrics(addr string, logger logr.Logger) (*report.MetricsReporter, string, func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := report.NewMetricsReporter(reg)
	if err != nil {
		return nil, "", nil, err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", nil, fmt.Errorf("listen metrics %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "metrics server stopped")
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return metrics, ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: triplesearchctl <run|eval|config> [flags]", msg)
}
