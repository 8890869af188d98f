package fitness

import (
	"fmt"
	"math"

	"triplesearch/internal/model"
)

// PerfectRank is assigned when a candidate satisfies the equation exactly.
const PerfectRank = 9999.0

const zExponent = 200

// NonFinitePolicy decides what happens to candidates whose residual overflows.
type NonFinitePolicy string

const (
	// PolicyPreserve keeps overflowing candidates in play with rank 0.
	PolicyPreserve NonFinitePolicy = "preserve"
	// PolicyReject flags overflowing candidates so selection skips them.
	PolicyReject NonFinitePolicy = "reject"
)

// ParsePolicy resolves a policy name. The empty name maps to PolicyPreserve.
func ParsePolicy(name string) (NonFinitePolicy, error) {
	switch NonFinitePolicy(name) {
	case "", PolicyPreserve:
		return PolicyPreserve, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unsupported non-finite policy: %s", name)
	}
}

// Evaluator scores a candidate and stores the rank on it.
type Evaluator interface {
	Name() string
	Evaluate(c *model.Candidate) float64
}

// Residual returns 6x - y + z^200 - 25.
func Residual(x, y, z float64) float64 {
	return (6*x + -y + math.Pow(z, zExponent)) - 25
}

// RankOf maps a residual to a rank: PerfectRank on an exact zero, otherwise
// |1/residual|.
func RankOf(residual float64) float64 {
	if residual == 0 {
		return PerfectRank
	}
	return math.Abs(1 / residual)
}

// TripleEvaluator ranks candidates against the fixed target equation.
type TripleEvaluator struct {
	Policy NonFinitePolicy
}

func (e TripleEvaluator) Name() string {
	return "triple_residual"
}

func (e TripleEvaluator) Evaluate(c *model.Candidate) float64 {
	residual := Residual(c.X, c.Y, c.Z)
	rank := RankOf(residual)
	c.Rejected = false
	if math.IsNaN(rank) {
		rank = 0
	}
	if e.Policy == PolicyReject && (math.IsInf(residual, 0) || math.IsNaN(residual)) {
		c.Rejected = true
	}
	c.Rank = rank
	return rank
}
