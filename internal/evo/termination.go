package evo

import "triplesearch/internal/model"

const (
	StopMaxGenerations = "max_generations"
	StopTargetRank     = "target_rank"
	StopCancelled      = "cancelled"
)

// GenerationState is what a Terminator sees after each ranked generation.
type GenerationState struct {
	Generation int
	Best       model.Candidate
}

// Terminator decides after each generation whether the run should stop.
type Terminator interface {
	Stop(state GenerationState) (reason string, stop bool)
}

type TerminatorFunc func(state GenerationState) (string, bool)

func (f TerminatorFunc) Stop(state GenerationState) (string, bool) {
	return f(state)
}

// Never keeps the loop running until the context is cancelled.
func Never() Terminator {
	return TerminatorFunc(func(GenerationState) (string, bool) { return "", false })
}

// MaxGenerations stops once n generations have completed. n <= 0 never stops.
func MaxGenerations(n int) Terminator {
	return TerminatorFunc(func(state GenerationState) (string, bool) {
		if n > 0 && state.Generation >= n {
			return StopMaxGenerations, true
		}
		return "", false
	})
}

// TargetRank stops once the best valid candidate reaches rank. rank <= 0
// never stops.
func TargetRank(rank float64) Terminator {
	return TerminatorFunc(func(state GenerationState) (string, bool) {
		if rank > 0 && !state.Best.Rejected && state.Best.Rank >= rank {
			return StopTargetRank, true
		}
		return "", false
	})
}

// AnyOf stops as soon as one of its terminators does, reporting that reason.
func AnyOf(terminators ...Terminator) Terminator {
	return TerminatorFunc(func(state GenerationState) (string, bool) {
		for _, t := range terminators {
			if t == nil {
				continue
			}
			if reason, stop := t.Stop(state); stop {
				return reason, true
			}
		}
		return "", false
	})
}
