// Package tree implements CART decision trees for regression.
package tree

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/core/model"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
)

// Criterion selects the impurity measure used for split evaluation.
type Criterion string

const (
	// CriterionVariance measures impurity as the target variance.
	CriterionVariance Criterion = "variance"

	// CriterionGini measures impurity as the Gini index over the target
	// values treated as class labels.
	CriterionGini Criterion = "gini"
)

// node is a fitted tree node. A tree is either a leaf holding a value or
// a binary split on one feature.
type node interface {
	predict(row []float64) float64
	depth() int
	countLeaves() int
	countFeatureUses(counts []int)
}

type leaf struct {
	value float64
}

func (l *leaf) predict([]float64) float64 { return l.value }
func (l *leaf) depth() int                { return 0 }
func (l *leaf) countLeaves() int          { return 1 }
func (l *leaf) countFeatureUses([]int)    {}

type split struct {
	feature   int
	threshold float64
	left      node
	right     node
}

func (s *split) predict(row []float64) float64 {
	if row[s.feature] <= s.threshold {
		return s.left.predict(row)
	}
	return s.right.predict(row)
}

func (s *split) depth() int {
	l, r := s.left.depth(), s.right.depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

func (s *split) countLeaves() int {
	return s.left.countLeaves() + s.right.countLeaves()
}

func (s *split) countFeatureUses(counts []int) {
	counts[s.feature]++
	s.left.countFeatureUses(counts)
	s.right.countFeatureUses(counts)
}

// DecisionTreeRegressor is a CART regression tree. Splits minimize the
// weighted child impurity; leaves predict the mean target of their
// training samples.
type DecisionTreeRegressor struct {
	model.BaseEstimator

	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
	criterion       Criterion
	randomState     int64

	root      node
	nFeatures int
	rng       *rand.Rand
}

// NewDecisionTreeRegressor creates a regression tree. Defaults: max depth
// 10, min samples split 2, min samples leaf 1, all features considered at
// each split, variance criterion.
func NewDecisionTreeRegressor(opts ...TreeOption) *DecisionTreeRegressor {
	dt := &DecisionTreeRegressor{
		maxDepth:        10,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
		maxFeatures:     0,
		criterion:       CriterionVariance,
		randomState:     -1,
	}
	for _, opt := range opts {
		opt(dt)
	}
	return dt
}

// Fit grows the tree on X (n x m) and y (n x 1).
func (dt *DecisionTreeRegressor) Fit(X, y mat.Matrix) error {
	n, m := X.Dims()
	ry, cy := y.Dims()

	if n == 0 || m == 0 {
		return errors.NewModelError("DecisionTreeRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != n {
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", n, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("DecisionTreeRegressor.Fit", "y must be a column vector")
	}
	if dt.criterion != CriterionVariance && dt.criterion != CriterionGini {
		return errors.NewValueError("DecisionTreeRegressor.Fit",
			"unknown criterion: "+string(dt.criterion))
	}
	if dt.maxFeatures < 0 || dt.maxFeatures > m {
		return errors.NewValueError("DecisionTreeRegressor.Fit",
			"max features must be between 0 and the feature count")
	}

	dt.nFeatures = m
	dt.rng = model.NewRand(dt.randomState)

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

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	dt.root = dt.grow(rows, targets, indices, 0)
	dt.SetFitted()
	return nil
}

// FitIndices grows the tree on the given row subset of pre-extracted
// data. It is the entry point used by ensemble training, where the
// bootstrap sample is an index multiset over shared rows.
func (dt *DecisionTreeRegressor) FitIndices(rows [][]float64, targets []float64, indices []int) error {
	if len(rows) == 0 || len(indices) == 0 {
		return errors.NewModelError("DecisionTreeRegressor.Fit", "empty data", errors.ErrEmptyData)
	}

	dt.nFeatures = len(rows[0])
	if dt.maxFeatures < 0 || dt.maxFeatures > dt.nFeatures {
		return errors.NewValueError("DecisionTreeRegressor.Fit",
			"max features must be between 0 and the feature count")
	}
	if dt.rng == nil {
		dt.rng = model.NewRand(dt.randomState)
	}

	dt.root = dt.grow(rows, targets, indices, 0)
	dt.SetFitted()
	return nil
}

// SetRNG injects the random generator used for feature subsampling.
// Must be called before Fit to take effect.
func (dt *DecisionTreeRegressor) SetRNG(rng *rand.Rand) {
	dt.rng = rng
}

func (dt *DecisionTreeRegressor) grow(rows [][]float64, targets []float64, indices []int, depth int) node {
	if len(indices) < dt.minSamplesSplit || depth >= dt.maxDepth {
		return &leaf{value: meanTargets(targets, indices)}
	}

	feature, threshold, gain := dt.bestSplit(rows, targets, indices)
	if gain <= 0 {
		return &leaf{value: meanTargets(targets, indices)}
	}

	var left, right []int
	for _, i := range indices {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < dt.minSamplesLeaf || len(right) < dt.minSamplesLeaf {
		return &leaf{value: meanTargets(targets, indices)}
	}

	return &split{
		feature:   feature,
		threshold: threshold,
		left:      dt.grow(rows, targets, left, depth+1),
		right:     dt.grow(rows, targets, right, depth+1),
	}
}

// bestSplit searches candidate features for the threshold with the
// highest impurity gain. Returns gain <= 0 when no useful split exists.
func (dt *DecisionTreeRegressor) bestSplit(rows [][]float64, targets []float64, indices []int) (int, float64, float64) {
	parent := dt.impurity(targets, indices)
	total := float64(len(indices))

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	for _, feature := range dt.candidateFeatures() {
		values := make([]float64, 0, len(indices))
		for _, i := range indices {
			values = append(values, rows[i][feature])
		}
		sort.Float64s(values)

		for k := 1; k < len(values); k++ {
			if values[k] == values[k-1] {
				continue
			}
			threshold := (values[k] + values[k-1]) / 2

			var left, right []int
			for _, i := range indices {
				if rows[i][feature] <= threshold {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}

			weighted := float64(len(left))/total*dt.impurity(targets, left) +
				float64(len(right))/total*dt.impurity(targets, right)
			gain := parent - weighted
			if gain > bestGain {
				bestFeature = feature
				bestThreshold = threshold
				bestGain = gain
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

// candidateFeatures returns the features examined at one split decision.
// With maxFeatures set, a fresh random subset is drawn each call.
func (dt *DecisionTreeRegressor) candidateFeatures() []int {
	all := make([]int, dt.nFeatures)
	for j := range all {
		all[j] = j
	}
	if dt.maxFeatures == 0 || dt.maxFeatures >= dt.nFeatures {
		return all
	}

	dt.rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return all[:dt.maxFeatures]
}

func (dt *DecisionTreeRegressor) impurity(targets []float64, indices []int) float64 {
	if dt.criterion == CriterionGini {
		return giniImpurity(targets, indices)
	}
	return varianceImpurity(targets, indices)
}

func varianceImpurity(targets []float64, indices []int) float64 {
	n := float64(len(indices))
	if n == 0 {
		return 0
	}
	var mean float64
	for _, i := range indices {
		mean += targets[i]
	}
	mean /= n

	var variance float64
	for _, i := range indices {
		diff := targets[i] - mean
		variance += diff * diff
	}
	return variance / n
}

func giniImpurity(targets []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	counts := make(map[float64]int, 4)
	for _, i := range indices {
		counts[targets[i]]++
	}
	n := float64(len(indices))
	gini := 1.0
	for _, c := range counts {
		p := float64(c) / n
		gini -= p * p
	}
	return gini
}

func meanTargets(targets []float64, indices []int) float64 {
	var sum float64
	for _, i := range indices {
		sum += targets[i]
	}
	return sum / float64(len(indices))
}

// Predict returns the tree output for X as an n x 1 matrix.
func (dt *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeRegressor", "Predict")
	}

	n, m := X.Dims()
	if m != dt.nFeatures {
		return nil, errors.NewDimensionError("DecisionTreeRegressor.Predict", dt.nFeatures, m, 1)
	}

	out := mat.NewDense(n, 1, nil)
	row := make([]float64, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			row[j] = X.At(i, j)
		}
		out.Set(i, 0, dt.root.predict(row))
	}
	return out, nil
}

// PredictRow returns the prediction for a single pre-extracted row.
func (dt *DecisionTreeRegressor) PredictRow(row []float64) (float64, error) {
	if !dt.IsFitted() {
		return 0, errors.NewNotFittedError("DecisionTreeRegressor", "PredictRow")
	}
	return dt.root.predict(row), nil
}

// Score returns the coefficient of determination R^2 on the given data.
func (dt *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := dt.Predict(X)
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

// Depth returns the depth of the fitted tree. A single leaf has depth 0.
func (dt *DecisionTreeRegressor) Depth() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.depth()
}

// NLeaves returns the number of leaves in the fitted tree.
func (dt *DecisionTreeRegressor) NLeaves() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.countLeaves()
}

// FeatureUseCounts returns how many internal splits use each feature.
func (dt *DecisionTreeRegressor) FeatureUseCounts() ([]int, error) {
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeRegressor", "FeatureUseCounts")
	}
	counts := make([]int, dt.nFeatures)
	dt.root.countFeatureUses(counts)
	return counts, nil
}

// FeatureImportances returns split-count based importances normalized to
// sum to one. A tree with no splits returns all zeros.
func (dt *DecisionTreeRegressor) FeatureImportances() ([]float64, error) {
	counts, err := dt.FeatureUseCounts()
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	imp := make([]float64, len(counts))
	if total == 0 {
		return imp, nil
	}
	for j, c := range counts {
		imp[j] = float64(c) / float64(total)
	}
	return imp, nil
}
