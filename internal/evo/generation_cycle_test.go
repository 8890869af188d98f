package evo

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"triplesearch/internal/model"
	"triplesearch/internal/report"
)

var _ = Describe("PopulationMonitor generation cycle", func() {
	var (
		cfg MonitorConfig
		rec *recordingReporter
	)

	BeforeEach(func() {
		rec = &recordingReporter{}
		cfg = MonitorConfig{
			PopulationSize: 400,
			SampleSize:     40,
			ReportSize:     10,
			Seed:           42,
			Reporter:       rec,
			Terminator:     MaxGenerations(4),
		}
	})

	run := func() RunResult {
		m, err := NewPopulationMonitor(cfg)
		Expect(err).NotTo(HaveOccurred())
		result, err := m.Run(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		return result
	}

	Context("with single-parent reproduction", func() {
		It("should keep the population size fixed every generation", func() {
			run()
			Expect(rec.generations).To(HaveLen(4))
			for _, gen := range rec.generations {
				Expect(gen.Summary.Size).To(Equal(cfg.PopulationSize))
			}
		})

		It("should report generations in increasing order", func() {
			run()
			for i, gen := range rec.generations {
				Expect(gen.Index).To(Equal(i + 1))
			}
		})

		It("should only ever report non-negative ranks", func() {
			run()
			for _, gen := range rec.generations {
				for _, c := range gen.Top {
					Expect(c.Rank).To(BeNumerically(">=", 0))
				}
				Expect(gen.Summary.Worst).To(BeNumerically(">=", 0))
			}
		})

		It("should hand reporters copies they cannot use to alter the population", func() {
			cfg.Reporter = &recordingReporter{onReport: func(gen report.Generation) error {
				for i := range gen.Top {
					gen.Top[i] = model.Candidate{Rank: -1}
				}
				return nil
			}}
			result := run()
			Expect(result.Best.Rank).To(BeNumerically(">=", 0))
		})

		It("should breed overflowing candidates out after the first generation", func() {
			run()
			Expect(rec.generations[0].Summary.ZeroRanks).To(BeNumerically(">", 0))
			Expect(rec.generations[3].Summary.ZeroRanks).To(BeZero())
		})
	})

	Context("with per-coordinate crossover", func() {
		BeforeEach(func() {
			cfg.Reproducer = PerCoordinateCrossover{}
		})

		It("should run to the generation limit", func() {
			result := run()
			Expect(result.Generations).To(Equal(4))
			Expect(result.StopReason).To(Equal(StopMaxGenerations))
			Expect(result.FinalPopulation).To(HaveLen(cfg.PopulationSize))
		})
	})
})
