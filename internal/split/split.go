// Package split partitions a corpus into train, validation and test sets.
package split

import (
	"math/rand/v2"
	"slices"

	"github.com/ppiankov/convset/internal/model"
)

// DefaultRatios is the 90/5/5 train/validation/test partition
var DefaultRatios = Ratios{Train: 0.9, Validation: 0.05, Test: 0.05}

// Ratios are the target fractions for each split. Test is informational:
// the test split always receives whatever remains after the first two cuts.
type Ratios struct {
	Train      float64
	Validation float64
	Test       float64
}

// RatiosFrom builds Ratios from a slice, filling missing entries from
// DefaultRatios.
func RatiosFrom(values []float64) Ratios {
	r := DefaultRatios
	if len(values) > 0 {
		r.Train = values[0]
	}
	if len(values) > 1 {
		r.Validation = values[1]
	}
	if len(values) > 2 {
		r.Test = values[2]
	}
	return r
}

// Result holds the three disjoint splits
type Result struct {
	Train      []model.Conversation
	Validation []model.Conversation
	Test       []model.Conversation
}

// Named returns the split for a name from model.SplitNames
func (r *Result) Named(name string) []model.Conversation {
	switch name {
	case model.SplitTrain:
		return r.Train
	case model.SplitValidation:
		return r.Validation
	case model.SplitTest:
		return r.Test
	default:
		return nil
	}
}

// Total returns the combined size of all splits
func (r *Result) Total() int {
	return len(r.Train) + len(r.Validation) + len(r.Test)
}

// Split shuffles corpus with a source seeded from seed and cuts it by ratios.
// The input slice is not modified.
func Split(corpus []model.Conversation, ratios Ratios, seed uint64) *Result {
	return SplitWith(rand.New(rand.NewPCG(seed, seed)), corpus, ratios)
}

// SplitWith shuffles a copy of corpus with rng and cuts it at
// floor(n*train) and floor(n*train)+floor(n*validation); the remainder
// forms the test split.
func SplitWith(rng *rand.Rand, corpus []model.Conversation, ratios Ratios) *Result {
	shuffled := slices.Clone(corpus)
	if rng != nil {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	}

	n := len(shuffled)
	trainEnd := cut(n, ratios.Train, 0)
	valEnd := trainEnd + cut(n, ratios.Validation, trainEnd)

	return &Result{
		Train:      shuffled[:trainEnd:trainEnd],
		Validation: shuffled[trainEnd:valEnd:valEnd],
		Test:       shuffled[valEnd:],
	}
}

// cut returns floor(n*ratio) clamped so that offset+cut never exceeds n
func cut(n int, ratio float64, offset int) int {
	if ratio <= 0 || n == 0 {
		return 0
	}
	size := int(float64(n) * ratio)
	if size > n-offset {
		size = n - offset
	}
	return size
}
