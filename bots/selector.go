package bots

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

var ErrNoCandidates = errors.New("no candidates to choose from")

// Scored is a candidate move with its score.
type Scored struct {
	Move  string
	Score int
}

// Selector picks exactly one candidate. Candidates arrive in enumerator order.
type Selector interface {
	Name() string
	Select(candidates []Scored, r *rand.Rand) (Scored, error)
}

// FirstMatch returns the first candidate.
type FirstMatch struct{}

func (FirstMatch) Name() string { return "first" }

func (FirstMatch) Select(candidates []Scored, _ *rand.Rand) (Scored, error) {
	if len(candidates) == 0 {
		return Scored{}, ErrNoCandidates
	}
	return candidates[0], nil
}

// MaxScore returns the highest scoring candidate; ties go to the earliest.
type MaxScore struct{}

func (MaxScore) Name() string { return "max" }

func (MaxScore) Select(candidates []Scored, _ *rand.Rand) (Scored, error) {
	if len(candidates) == 0 {
		return Scored{}, ErrNoCandidates
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, nil
}

// WeightedTopK samples one of the K best candidates with probability
// proportional to its score. Scores below 1 weigh 1.
type WeightedTopK struct {
	K int
}

func (s WeightedTopK) Name() string { return fmt.Sprintf("weighted-top%d", s.K) }

func (s WeightedTopK) Select(candidates []Scored, r *rand.Rand) (Scored, error) {
	top := topK(candidates, s.K)
	if len(top) == 0 {
		return Scored{}, ErrNoCandidates
	}
	var total int64
	for _, c := range top {
		total += weight(c.Score)
	}
	draw := r.Int63n(total)
	var sum int64
	for _, c := range top {
		sum += weight(c.Score)
		if sum > draw {
			return c, nil
		}
	}
	return top[0], nil
}

func weight(score int) int64 {
	if score < 1 {
		return 1
	}
	return int64(score)
}

// UniformTopK picks uniformly among the K best candidates.
type UniformTopK struct {
	K int
}

func (s UniformTopK) Name() string { return fmt.Sprintf("uniform-top%d", s.K) }

func (s UniformTopK) Select(candidates []Scored, r *rand.Rand) (Scored, error) {
	top := topK(candidates, s.K)
	if len(top) == 0 {
		return Scored{}, ErrNoCandidates
	}
	return top[r.Intn(len(top))], nil
}

// topK returns the k best candidates, best first, keeping enumerator order
// among equal scores. The input is not modified.
func topK(candidates []Scored, k int) []Scored {
	if k <= 0 {
		k = 1
	}
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b Scored) int {
		return b.Score - a.Score
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// NewSelector builds a selector from its configuration name: "first", "max",
// "weighted" or "uniform". k applies to the top-K policies.
func NewSelector(name string, k int) (Selector, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	switch strings.ToLower(name) {
	case "first":
		return FirstMatch{}, nil
	case "max", "":
		return MaxScore{}, nil
	case "weighted":
		return WeightedTopK{K: k}, nil
	case "uniform":
		return UniformTopK{K: k}, nil
	}
	return nil, fmt.Errorf("unknown selection policy %q", name)
}
