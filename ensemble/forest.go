// Package ensemble provides bagged tree ensembles.
package ensemble

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/core/model"
	"github.com/JP-Fernando/global-scanner-pro-sub003/core/parallel"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
	scigoLog "github.com/JP-Fernando/global-scanner-pro-sub003/pkg/log"
	"github.com/JP-Fernando/global-scanner-pro-sub003/tree"
)

// MaxFeaturesMode names a rule for the per-split feature subset size.
type MaxFeaturesMode string

const (
	// MaxFeaturesSqrt uses ceil(sqrt(m)) features per split.
	MaxFeaturesSqrt MaxFeaturesMode = "sqrt"

	// MaxFeaturesLog2 uses max(1, floor(log2(m))) features per split.
	MaxFeaturesLog2 MaxFeaturesMode = "log2"

	// MaxFeaturesAll considers every feature at every split.
	MaxFeaturesAll MaxFeaturesMode = "all"
)

// RandomForestRegressor averages bootstrap-trained regression trees.
// Trees are trained concurrently; per-tree generators are pre-seeded
// sequentially from the forest seed so results do not depend on
// goroutine scheduling.
type RandomForestRegressor struct {
	model.BaseEstimator

	nEstimators     int
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeaturesMode MaxFeaturesMode
	maxFeaturesN    int
	bootstrap       bool
	randomState     int64
	nJobs           int

	trees     []*tree.DecisionTreeRegressor
	nFeatures int

	logger scigoLog.Logger
}

// NewRandomForestRegressor creates a random forest. Defaults: 100 trees,
// max depth 10, sqrt feature subsetting, bootstrap sampling, one worker
// per CPU.
func NewRandomForestRegressor(opts ...ForestOption) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		nEstimators:     100,
		maxDepth:        10,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
		maxFeaturesMode: MaxFeaturesSqrt,
		maxFeaturesN:    0,
		bootstrap:       true,
		randomState:     -1,
		nJobs:           runtime.NumCPU(),
		logger:          scigoLog.GetLoggerWithName("ensemble.RandomForestRegressor"),
	}
	for _, opt := range opts {
		opt(rf)
	}
	return rf
}

// Fit trains the forest on X (n x m) and y (n x 1).
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) error {
	return rf.FitWithProgress(X, y, nil)
}

// FitWithProgress trains the forest and reports fractional completion in
// (0, 1] after each finished tree. The callback may be invoked from
// multiple goroutines but calls are serialized; pass nil to disable.
func (rf *RandomForestRegressor) FitWithProgress(X, y mat.Matrix, onProgress func(float64)) error {
	n, m := X.Dims()
	ry, cy := y.Dims()

	if n == 0 || m == 0 {
		return errors.NewModelError("RandomForestRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != n {
		return errors.NewDimensionError("RandomForestRegressor.Fit", n, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("RandomForestRegressor.Fit", "y must be a column vector")
	}
	if rf.nEstimators <= 0 {
		return errors.NewValueError("RandomForestRegressor.Fit", "number of estimators must be positive")
	}

	maxFeatures, err := rf.resolveMaxFeatures(m)
	if err != nil {
		return err
	}

	rf.nFeatures = m
	rf.logger.Debug("training forest",
		scigoLog.TreesKey, rf.nEstimators,
		scigoLog.SamplesKey, n,
		scigoLog.FeaturesKey, m,
	)

	rows := make([][]float64, n)
	targets := make([]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			row[j] = X.At(i, j)
		}
		rows[i] = row
		targets[i] = y.At(i, 0)
	}

	// Seeds are drawn up front from a single generator so tree t always
	// sees the same seed regardless of which worker trains it.
	forestRNG := model.NewRand(rf.randomState)
	seeds := make([]int64, rf.nEstimators)
	for t := range seeds {
		seeds[t] = forestRNG.Int63()
	}

	trees := make([]*tree.DecisionTreeRegressor, rf.nEstimators)
	trainErrs := make([]error, rf.nEstimators)

	var mu sync.Mutex
	completed := 0

	parallel.ParallelizeWithWorkers(rf.nEstimators, rf.nJobs, func(start, end int) {
		for t := start; t < end; t++ {
			rng := model.NewRand(seeds[t])

			indices := make([]int, n)
			if rf.bootstrap {
				for i := range indices {
					indices[i] = rng.Intn(n)
				}
			} else {
				for i := range indices {
					indices[i] = i
				}
			}

			dt := tree.NewDecisionTreeRegressor(
				tree.WithMaxDepth(rf.maxDepth),
				tree.WithMinSamplesSplit(rf.minSamplesSplit),
				tree.WithMinSamplesLeaf(rf.minSamplesLeaf),
				tree.WithMaxFeatures(maxFeatures),
			)
			dt.SetRNG(rng)

			if err := dt.FitIndices(rows, targets, indices); err != nil {
				trainErrs[t] = err
				continue
			}
			trees[t] = dt

			if onProgress != nil {
				mu.Lock()
				completed++
				frac := float64(completed) / float64(rf.nEstimators)
				onProgress(frac)
				mu.Unlock()
			}
		}
	})

	for _, err := range trainErrs {
		if err != nil {
			return errors.Wrap(err, "RandomForestRegressor.Fit: tree training failed")
		}
	}

	rf.trees = trees
	rf.SetFitted()
	rf.logger.Info("forest trained",
		scigoLog.OperationKey, scigoLog.OperationFit,
		scigoLog.TreesKey, rf.nEstimators,
	)
	return nil
}

func (rf *RandomForestRegressor) resolveMaxFeatures(m int) (int, error) {
	if rf.maxFeaturesN > 0 {
		if rf.maxFeaturesN > m {
			return m, nil
		}
		return rf.maxFeaturesN, nil
	}

	switch rf.maxFeaturesMode {
	case MaxFeaturesSqrt:
		k := int(math.Ceil(math.Sqrt(float64(m))))
		if k > m {
			k = m
		}
		return k, nil
	case MaxFeaturesLog2:
		k := int(math.Log2(float64(m)))
		if k < 1 {
			k = 1
		}
		return k, nil
	case MaxFeaturesAll:
		return 0, nil
	default:
		return 0, errors.NewValueError("RandomForestRegressor.Fit",
			"unknown max features mode: "+string(rf.maxFeaturesMode))
	}
}

// Predict returns the mean tree prediction for X as an n x 1 matrix.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "Predict")
	}

	n, m := X.Dims()
	if m != rf.nFeatures {
		return nil, errors.NewDimensionError("RandomForestRegressor.Predict", rf.nFeatures, m, 1)
	}

	out := mat.NewDense(n, 1, nil)
	row := make([]float64, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			row[j] = X.At(i, j)
		}
		var sum float64
		for _, dt := range rf.trees {
			v, err := dt.PredictRow(row)
			if err != nil {
				return nil, err
			}
			sum += v
		}
		out.Set(i, 0, sum/float64(len(rf.trees)))
	}
	return out, nil
}

// Score returns the coefficient of determination R^2 on the given data.
func (rf *RandomForestRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}

	n, _ := y.Dims()
	var meanY, ssRes, ssTot float64
	for i := 0; i < n; i++ {
		meanY += y.At(i, 0)
	}
	meanY /= float64(n)
	for i := 0; i < n; i++ {
		res := y.At(i, 0) - pred.At(i, 0)
		tot := y.At(i, 0) - meanY
		ssRes += res * res
		ssTot += tot * tot
	}
	if ssTot == 0 {
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}

// FeatureImportances aggregates per-tree split counts and normalizes the
// result to sum to one.
func (rf *RandomForestRegressor) FeatureImportances() ([]float64, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "FeatureImportances")
	}

	totals := make([]int, rf.nFeatures)
	for _, dt := range rf.trees {
		counts, err := dt.FeatureUseCounts()
		if err != nil {
			return nil, err
		}
		for j, c := range counts {
			totals[j] += c
		}
	}

	grand := 0
	for _, c := range totals {
		grand += c
	}
	imp := make([]float64, rf.nFeatures)
	if grand == 0 {
		return imp, nil
	}
	for j, c := range totals {
		imp[j] = float64(c) / float64(grand)
	}
	return imp, nil
}

// NEstimators returns the configured number of trees.
func (rf *RandomForestRegressor) NEstimators() int {
	return rf.nEstimators
}

// Trees returns the fitted trees. The slice is shared, not copied.
func (rf *RandomForestRegressor) Trees() []*tree.DecisionTreeRegressor {
	return rf.trees
}
