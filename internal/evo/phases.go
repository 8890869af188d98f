package evo

import (
	"sort"

	"triplesearch/internal/fitness"
	"triplesearch/internal/model"
)

// Bootstrap fills dst with candidates drawn uniformly from r, rank 0.
func Bootstrap(src Source, dst model.Population, r Range) {
	for i := range dst {
		dst[i] = model.NewCandidate(0, src.Uniform(r.Low, r.High), src.Uniform(r.Low, r.High), src.Uniform(r.Low, r.High))
	}
}

// Evaluate scores every candidate of the population.
func Evaluate(eval fitness.Evaluator, pop model.Population) {
	for i := range pop {
		eval.Evaluate(&pop[i])
	}
}

// Rank orders an evaluated population by descending rank.
func Rank(pop model.Population) {
	sort.Sort(pop)
}

// Select copies the top k candidates of a ranked population into dst and
// returns the sample. Rejected candidates are left out unless the whole top k
// is rejected.
func Select(ranked model.Population, k int, dst model.Population) (model.Population, error) {
	if k > len(ranked) {
		k = len(ranked)
	}
	if k <= 0 {
		return nil, ErrEmptySample
	}
	valid := 0
	for valid < k && !ranked[valid].Rejected {
		valid++
	}
	if valid == 0 {
		valid = k
	}
	return append(dst[:0], ranked[:valid]...), nil
}

// Mutate scales every coordinate of every sample member by an independent
// factor drawn from r.
func Mutate(src Source, sample model.Population, r Range) {
	for i := range sample {
		sample[i].Mutate(
			src.Uniform(r.Low, r.High),
			src.Uniform(r.Low, r.High),
			src.Uniform(r.Low, r.High),
		)
	}
}
