package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"triplesearch/internal/model"
)

// Summary describes the rank distribution of a whole generation.
type Summary struct {
	Size      int     `json:"size"`
	Best      float64 `json:"best"`
	Worst     float64 `json:"worst"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stddev"`
	ZeroRanks int     `json:"zero_ranks"`
	Rejected  int     `json:"rejected"`
}

// Summarizer computes summaries while reusing its rank buffer across
// generations.
type Summarizer struct {
	ranks []float64
}

func (s *Summarizer) Summarize(pop model.Population) Summary {
	if len(pop) == 0 {
		return Summary{}
	}
	s.ranks = s.ranks[:0]
	out := Summary{Size: len(pop)}
	for _, c := range pop {
		s.ranks = append(s.ranks, c.Rank)
		if c.Rank == 0 {
			out.ZeroRanks++
		}
		if c.Rejected {
			out.Rejected++
		}
	}
	out.Best = floats.Max(s.ranks)
	out.Worst = floats.Min(s.ranks)
	if len(s.ranks) > 1 {
		out.Mean, out.StdDev = stat.MeanStdDev(s.ranks, nil)
	} else {
		out.Mean = s.ranks[0]
	}
	return out
}
