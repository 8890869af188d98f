package evo

import (
	"testing"

	"triplesearch/internal/model"
)

func TestMaxGenerations(t *testing.T) {
	term := MaxGenerations(3)
	if _, stop := term.Stop(GenerationState{Generation: 2}); stop {
		t.Fatal("stopped before the limit")
	}
	reason, stop := term.Stop(GenerationState{Generation: 3})
	if !stop || reason != StopMaxGenerations {
		t.Fatalf("unexpected stop decision: reason=%q stop=%v", reason, stop)
	}
	if _, stop := MaxGenerations(0).Stop(GenerationState{Generation: 1 << 20}); stop {
		t.Fatal("zero limit must never stop")
	}
}

func TestTargetRank(t *testing.T) {
	term := TargetRank(100)
	if _, stop := term.Stop(GenerationState{Best: model.Candidate{Rank: 99}}); stop {
		t.Fatal("stopped below target")
	}
	if _, stop := term.Stop(GenerationState{Best: model.Candidate{Rank: 500, Rejected: true}}); stop {
		t.Fatal("rejected candidate must not satisfy the target")
	}
	reason, stop := term.Stop(GenerationState{Best: model.Candidate{Rank: 100}})
	if !stop || reason != StopTargetRank {
		t.Fatalf("unexpected stop decision: reason=%q stop=%v", reason, stop)
	}
}

func TestAnyOfReportsFirstFiringReason(t *testing.T) {
	term := AnyOf(nil, Never(), TargetRank(10), MaxGenerations(1))
	reason, stop := term.Stop(GenerationState{Generation: 1, Best: model.Candidate{Rank: 50}})
	if !stop || reason != StopTargetRank {
		t.Fatalf("unexpected stop decision: reason=%q stop=%v", reason, stop)
	}
	reason, stop = term.Stop(GenerationState{Generation: 1, Best: model.Candidate{Rank: 1}})
	if !stop || reason != StopMaxGenerations {
		t.Fatalf("unexpected stop decision: reason=%q stop=%v", reason, stop)
	}
}

func TestNeverStops(t *testing.T) {
	if _, stop := Never().Stop(GenerationState{Generation: 1 << 30, Best: model.Candidate{Rank: 9999}}); stop {
		t.Fatal("never terminator stopped")
	}
}
