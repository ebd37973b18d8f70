package stats

import (
	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/core/model"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
)

// Fold holds the train/test index partition of one cross-validation fold.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold partitions sample indices into contiguous, unshuffled folds.
type KFold struct {
	// NSplits is the number of folds k.
	NSplits int
}

// NewKFold creates a KFold splitter. Fewer than 2 splits defaults to 5.
func NewKFold(nSplits int) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{NSplits: nSplits}
}

// Split partitions indices 0..n-1 into k folds of size floor(n/k), with
// the last fold absorbing the remainder. For each fold the train set is
// the concatenation of all other folds. The folds' test sets are disjoint
// and cover the full index range.
func (kf *KFold) Split(n int) ([]Fold, error) {
	if n < kf.NSplits {
		return nil, errors.NewValueError("KFold.Split", "fewer samples than folds")
	}

	foldSize := n / kf.NSplits
	folds := make([]Fold, kf.NSplits)

	for i := 0; i < kf.NSplits; i++ {
		start := i * foldSize
		end := start + foldSize
		if i == kf.NSplits-1 {
			end = n
		}

		testIndices := make([]int, 0, end-start)
		for j := start; j < end; j++ {
			testIndices = append(testIndices, j)
		}

		trainIndices := make([]int, 0, n-(end-start))
		for j := 0; j < start; j++ {
			trainIndices = append(trainIndices, j)
		}
		for j := end; j < n; j++ {
			trainIndices = append(trainIndices, j)
		}

		folds[i] = Fold{
			TrainIndices: trainIndices,
			TestIndices:  testIndices,
		}
	}

	return folds, nil
}

// TrainTestSplitter partitions a dataset into train and test subsets.
// The zero RandomSeed values mirror the models: a non-negative seed gives
// a reproducible shuffle, a negative seed a time-seeded one.
type TrainTestSplitter struct {
	// TestRatio is the fraction of samples assigned to the test set; the
	// test set size is floor(n * TestRatio).
	TestRatio float64

	// Shuffle applies a Fisher-Yates shuffle to the indices before
	// splitting.
	Shuffle bool

	// RandomSeed seeds the shuffle.
	RandomSeed int64
}

// Split partitions X and y row-wise. X is n x m, y is n x 1. There is no
// stratification: the first n - floor(n*ratio) (shuffled) indices become
// the train set and the rest the test set.
func (s *TrainTestSplitter) Split(X, y mat.Matrix) (XTrain, XTest, yTrain, yTest mat.Matrix, err error) {
	if s.TestRatio <= 0 || s.TestRatio >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "test ratio must be in (0, 1)")
	}

	n, _ := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != n {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "y must be a column vector")
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if s.Shuffle {
		rng := model.NewRand(s.RandomSeed)
		for i := n - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	testSize := int(float64(n) * s.TestRatio)
	if testSize == 0 || testSize == n {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "split leaves an empty partition; adjust the ratio or sample count")
	}
	trainSize := n - testSize

	XTrain = selectRows(X, indices[:trainSize])
	XTest = selectRows(X, indices[trainSize:])
	yTrain = selectRows(y, indices[:trainSize])
	yTest = selectRows(y, indices[trainSize:])

	return XTrain, XTest, yTrain, yTest, nil
}

// TrainTestSplit is the unseeded convenience form: two calls with shuffle
// enabled generally disagree. Use a TrainTestSplitter with a fixed
// RandomSeed when reproducibility matters.
func TrainTestSplit(X, y mat.Matrix, testRatio float64, shuffle bool) (XTrain, XTest, yTrain, yTest mat.Matrix, err error) {
	splitter := &TrainTestSplitter{TestRatio: testRatio, Shuffle: shuffle, RandomSeed: -1}
	return splitter.Split(X, y)
}

// SelectRows builds a new matrix from the given rows of X, in index order.
func SelectRows(X mat.Matrix, indices []int) *mat.Dense {
	return selectRows(X, indices)
}

func selectRows(X mat.Matrix, indices []int) *mat.Dense {
	_, cols := X.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			out.Set(i, j, X.At(idx, j))
		}
	}
	return out
}
