// Package data loads the UCI connectionist-bench sonar dataset and serves it
// as minibatches of feature and target tensors.
package data

import (
	"math/rand"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

// Set is an in-memory tabular dataset: one feature vector and one binary
// target per example.
type Set struct {
	features [][]float32
	targets  []float32
}

// NewSet wraps pre-built feature vectors and targets. Targets must be 0 or 1.
func NewSet(features [][]float32, targets []float32) *Set {
	return &Set{features: features, targets: targets}
}

// Len returns the number of examples.
func (s *Set) Len() int { return len(s.features) }

// LoadCSV parses a headerless sonar CSV: float feature columns followed by a
// single label column, "M" for mine and "R" for rock.
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open sonar data %s", path)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.HasHeader(false))
	if df.Error() != nil {
		return nil, errors.Wrapf(df.Error(), "parse sonar data %s", path)
	}
	nrow, ncol := df.Dims()
	if ncol < 2 {
		return nil, errors.Errorf("sonar data %s: want feature columns plus a label column, got %d columns", path, ncol)
	}

	set := &Set{
		features: make([][]float32, 0, nrow),
		targets:  make([]float32, 0, nrow),
	}
	for i := 0; i < nrow; i++ {
		row := make([]float32, ncol-1)
		for j := 0; j < ncol-1; j++ {
			row[j] = float32(df.Elem(i, j).Float())
		}
		var target float32
		switch label := df.Elem(i, ncol-1).String(); label {
		case "M":
			target = 1
		case "R":
			target = 0
		default:
			return nil, errors.Errorf("sonar data %s row %d: unknown label %q", path, i, label)
		}
		set.features = append(set.features, row)
		set.targets = append(set.targets, target)
	}
	return set, nil
}

// LoadData reads the sonar CSV and splits it into a shuffled training loader
// and an evaluation loader holding a testSplit fraction of the examples. The
// rng drives both the split and the per-epoch training shuffle; evaluation
// order is fixed.
func LoadData(path string, testSplit float64, batchSize int, rng *rand.Rand) (train, test *Loader, err error) {
	set, err := LoadCSV(path)
	if err != nil {
		return nil, nil, err
	}

	indices := rng.Perm(set.Len())
	testSize := int(testSplit * float64(set.Len()))
	train = NewLoader(set, indices[testSize:], batchSize, rng)
	test = NewLoader(set, indices[:testSize], batchSize, nil)
	return train, test, nil
}
