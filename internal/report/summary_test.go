package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"triplesearch/internal/model"
)

func TestSummarizeComputesRankStatistics(t *testing.T) {
	pop := model.Population{
		{Rank: 4},
		{Rank: 2},
		{Rank: 0},
		{Rank: 2, Rejected: true},
	}
	var s Summarizer
	got := s.Summarize(pop)

	assert.Equal(t, 4, got.Size)
	assert.Equal(t, 4.0, got.Best)
	assert.Equal(t, 0.0, got.Worst)
	assert.InDelta(t, 2.0, got.Mean, 1e-12)
	assert.InDelta(t, 1.632993, got.StdDev, 1e-6)
	assert.Equal(t, 1, got.ZeroRanks)
	assert.Equal(t, 1, got.Rejected)
}

func TestSummarizeSingleCandidate(t *testing.T) {
	var s Summarizer
	got := s.Summarize(model.Population{{Rank: 3}})
	assert.Equal(t, 3.0, got.Mean)
	assert.Equal(t, 0.0, got.StdDev)
}

func TestSummarizeEmptyPopulation(t *testing.T) {
	var s Summarizer
	assert.Equal(t, Summary{}, s.Summarize(nil))
}

func TestSummarizerReusesBuffer(t *testing.T) {
	var s Summarizer
	s.Summarize(model.Population{{Rank: 1}, {Rank: 2}, {Rank: 3}})
	got := s.Summarize(model.Population{{Rank: 5}, {Rank: 7}})
	assert.Equal(t, 2, got.Size)
	assert.Equal(t, 6.0, got.Mean)
	assert.Equal(t, 5.0, got.Worst)
}
