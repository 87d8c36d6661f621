package data

import (
	"math/rand"

	torch "github.com/wangkuiyi/gotorch"
)

// Loader iterates a subset of a Set in minibatches: Scan advances, Minibatch
// materializes the current batch, Reset rewinds for the next pass. A loader
// constructed with an rng reshuffles its examples on every Reset.
type Loader struct {
	set       *Set
	indices   []int
	batchSize int
	rng       *rand.Rand
	pos       int
	cur       []int
}

// NewLoader serves set's examples at the given indices, batchSize at a time.
func NewLoader(set *Set, indices []int, batchSize int, rng *rand.Rand) *Loader {
	return &Loader{
		set:       set,
		indices:   append([]int(nil), indices...),
		batchSize: batchSize,
		rng:       rng,
	}
}

// Scan advances to the next minibatch, returning false after the last one.
func (l *Loader) Scan() bool {
	if l.pos >= len(l.indices) {
		return false
	}
	end := l.pos + l.batchSize
	if end > len(l.indices) {
		end = len(l.indices)
	}
	l.cur = l.indices[l.pos:end]
	l.pos = end
	return true
}

// Minibatch returns the current batch as a [b, featureDim] feature tensor and
// a [b, 1] target tensor.
func (l *Loader) Minibatch() (torch.Tensor, torch.Tensor) {
	features := make([][]float32, 0, len(l.cur))
	targets := make([][]float32, 0, len(l.cur))
	for _, idx := range l.cur {
		features = append(features, l.set.features[idx])
		targets = append(targets, []float32{l.set.targets[idx]})
	}
	return torch.NewTensor(features), torch.NewTensor(targets)
}

// Reset rewinds the loader; a shuffling loader also reorders its examples.
func (l *Loader) Reset() {
	l.pos = 0
	l.cur = nil
	if l.rng != nil {
		l.rng.Shuffle(len(l.indices), func(i, j int) {
			l.indices[i], l.indices[j] = l.indices[j], l.indices[i]
		})
	}
}

// Len returns the number of underlying examples.
func (l *Loader) Len() int { return len(l.indices) }

// BatchSize returns the configured minibatch size.
func (l *Loader) BatchSize() int { return l.batchSize }

// Batches returns the number of minibatches one full pass yields.
func (l *Loader) Batches() int {
	return (len(l.indices) + l.batchSize - 1) / l.batchSize
}
