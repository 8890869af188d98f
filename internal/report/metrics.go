package report

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "triplesearch"

// MetricsReporter exports per-generation rank statistics as Prometheus
// collectors.
type MetricsReporter struct {
	generations prometheus.Counter
	bestRank    prometheus.Gauge
	meanRank    prometheus.Gauge
	rankStdDev  prometheus.Gauge
	zeroRanks   prometheus.Gauge
	rejected    prometheus.Gauge
}

func NewMetricsReporter(reg prometheus.Registerer) (*MetricsReporter, error) {
	m := &MetricsReporter{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "generations_total",
			Help:      "Generations ranked since start.",
		}),
		bestRank: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "best_rank",
			Help:      "Highest rank in the latest generation.",
		}),
		meanRank: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "mean_rank",
			Help:      "Mean rank of the latest generation.",
		}),
		rankStdDev: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rank_stddev",
			Help:      "Rank standard deviation of the latest generation.",
		}),
		zeroRanks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "zero_rank_candidates",
			Help:      "Candidates of the latest generation whose rank collapsed to zero.",
		}),
		rejected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rejected_candidates",
			Help:      "Candidates of the latest generation rejected for a non-finite residual.",
		}),
	}
	for _, c := range []prometheus.Collector{m.generations, m.bestRank, m.meanRank, m.rankStdDev, m.zeroRanks, m.rejected} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *MetricsReporter) Report(_ context.Context, gen Generation) error {
	s := gen.Summary
	m.generations.Inc()
	m.bestRank.Set(s.Best)
	m.meanRank.Set(s.Mean)
	m.rankStdDev.Set(s.StdDev)
	m.zeroRanks.Set(float64(s.ZeroRanks))
	m.rejected.Set(float64(s.Rejected))
	return nil
}
