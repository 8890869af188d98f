package evo

import (
	"fmt"

	"triplesearch/internal/model"
)

// Reproducer fills the next population from a mutated breeding sample.
type Reproducer interface {
	Name() string
	Reproduce(src Source, sample, next model.Population) error
}

// SingleParentCopy copies the whole triple of one uniformly chosen parent into
// each offspring.
type SingleParentCopy struct{}

func (SingleParentCopy) Name() string {
	return "single_parent"
}

func (SingleParentCopy) Reproduce(src Source, sample, next model.Population) error {
	if len(sample) == 0 {
		return ErrEmptySample
	}
	for i := range next {
		next[i] = sample[src.Intn(len(sample))].Coordinates()
	}
	return nil
}

// PerCoordinateCrossover takes x, y and z from independently chosen parents.
type PerCoordinateCrossover struct{}

func (PerCoordinateCrossover) Name() string {
	return "per_coordinate"
}

func (PerCoordinateCrossover) Reproduce(src Source, sample, next model.Population) error {
	if len(sample) == 0 {
		return ErrEmptySample
	}
	n := len(sample)
	for i := range next {
		next[i] = model.NewCandidate(0, sample[src.Intn(n)].X, sample[src.Intn(n)].Y, sample[src.Intn(n)].Z)
	}
	return nil
}

// ReproducerFromName resolves a crossover mode. The empty name maps to
// SingleParentCopy.
func ReproducerFromName(name string) (Reproducer, error) {
	switch name {
	case "", "single_parent":
		return SingleParentCopy{}, nil
	case "per_coordinate":
		return PerCoordinateCrossover{}, nil
	default:
		return nil, fmt.Errorf("unsupported crossover mode: %s", name)
	}
}
