// Package cluster implements unsupervised clustering models.
package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/core/model"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
	scigoLog "github.com/JP-Fernando/global-scanner-pro-sub003/pkg/log"
)

const (
	// InitKMeansPlusPlus seeds centroids by squared-distance sampling.
	InitKMeansPlusPlus = "k-means++"

	// InitRandom seeds centroids from uniformly random data points.
	InitRandom = "random"
)

// KMeans partitions samples into k clusters with full-batch Lloyd
// iteration. Centroid seeding defaults to k-means++.
type KMeans struct {
	model.BaseEstimator

	nClusters     int
	maxIterations int
	tolerance     float64
	init          string
	randomState   int64

	centers         [][]float64
	labels          []int
	trainingInertia float64
	nIterations     int
	nFeatures       int

	rng    *rand.Rand
	logger scigoLog.Logger
}

// NewKMeans creates a K-Means model. Defaults: 8 clusters, 300 max
// iterations, tolerance 1e-4, k-means++ initialization.
func NewKMeans(opts ...KMeansOption) *KMeans {
	km := &KMeans{
		nClusters:     8,
		maxIterations: 300,
		tolerance:     1e-4,
		init:          InitKMeansPlusPlus,
		randomState:   -1,
		logger:        scigoLog.GetLoggerWithName("cluster.KMeans"),
	}
	for _, opt := range opts {
		opt(km)
	}
	return km
}

// Fit clusters X (n x m). Iteration stops when the total centroid shift
// drops below the tolerance; exhausting the iteration limit first emits
// a ConvergenceWarning.
func (km *KMeans) Fit(X mat.Matrix) error {
	n, m := X.Dims()

	if n == 0 || m == 0 {
		return errors.NewModelError("KMeans.Fit", "empty data", errors.ErrEmptyData)
	}
	if km.nClusters <= 0 {
		return errors.NewValueError("KMeans.Fit", "number of clusters must be positive")
	}
	if n < km.nClusters {
		return errors.NewValueError("KMeans.Fit", "more clusters than samples")
	}
	if km.init != InitKMeansPlusPlus && km.init != InitRandom {
		return errors.NewValueError("KMeans.Fit", "unknown init method: "+km.init)
	}

	km.nFeatures = m
	km.rng = model.NewRand(km.randomState)

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			row[j] = X.At(i, j)
		}
		rows[i] = row
	}

	centers := km.initializeCenters(rows)
	labels := make([]int, n)
	converged := false

	var iter int
	for iter = 0; iter < km.maxIterations; iter++ {
		for i, row := range rows {
			labels[i] = nearestCenter(row, centers)
		}

		newCenters := make([][]float64, km.nClusters)
		counts := make([]int, km.nClusters)
		for c := range newCenters {
			newCenters[c] = make([]float64, m)
		}
		for i, row := range rows {
			c := labels[i]
			counts[c]++
			for j, v := range row {
				newCenters[c][j] += v
			}
		}
		for c := range newCenters {
			if counts[c] == 0 {
				// Reseed an empty cluster from a random sample.
				copy(newCenters[c], rows[km.rng.Intn(n)])
				continue
			}
			for j := range newCenters[c] {
				newCenters[c][j] /= float64(counts[c])
			}
		}

		var shift float64
		for c := range centers {
			shift += euclideanDistance(centers[c], newCenters[c])
		}
		centers = newCenters

		if shift < km.tolerance {
			converged = true
			iter++
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("KMeans", km.maxIterations,
			"centroid shift still above tolerance"))
	}

	// Final assignment against the settled centers.
	for i, row := range rows {
		labels[i] = nearestCenter(row, centers)
	}

	km.centers = centers
	km.labels = labels
	km.nIterations = iter
	km.trainingInertia = inertia(rows, labels, centers)
	km.SetFitted()

	km.logger.Info("clustering complete",
		scigoLog.OperationKey, scigoLog.OperationFit,
		scigoLog.IterationKey, km.nIterations,
		scigoLog.InertiaKey, km.trainingInertia,
	)
	return nil
}

func (km *KMeans) initializeCenters(rows [][]float64) [][]float64 {
	if km.init == InitRandom {
		centers := make([][]float64, km.nClusters)
		for c := range centers {
			centers[c] = make([]float64, len(rows[0]))
			copy(centers[c], rows[km.rng.Intn(len(rows))])
		}
		return centers
	}
	return km.initPlusPlus(rows)
}

// initPlusPlus picks the first center uniformly, then each subsequent
// center by roulette-wheel sampling proportional to the squared distance
// to the nearest chosen center.
func (km *KMeans) initPlusPlus(rows [][]float64) [][]float64 {
	n := len(rows)
	m := len(rows[0])
	centers := make([][]float64, km.nClusters)

	centers[0] = make([]float64, m)
	copy(centers[0], rows[km.rng.Intn(n)])

	distances := make([]float64, n)
	for c := 1; c < km.nClusters; c++ {
		var total float64
		for i, row := range rows {
			minDist := math.Inf(1)
			for j := 0; j < c; j++ {
				if d := euclideanDistance(row, centers[j]); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist * minDist
			total += distances[i]
		}

		selected := 0
		if total > 0 {
			target := km.rng.Float64() * total
			var cumSum float64
			for i, d := range distances {
				cumSum += d
				if cumSum >= target {
					selected = i
					break
				}
			}
		} else {
			selected = km.rng.Intn(n)
		}

		centers[c] = make([]float64, m)
		copy(centers[c], rows[selected])
	}
	return centers
}

// Predict assigns each row of X to its nearest fitted centroid and
// returns the labels as an n x 1 matrix.
func (km *KMeans) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !km.IsFitted() {
		return nil, errors.NewNotFittedError("KMeans", "Predict")
	}

	n, m := X.Dims()
	if m != km.nFeatures {
		return nil, errors.NewDimensionError("KMeans.Predict", km.nFeatures, m, 1)
	}

	out := mat.NewDense(n, 1, nil)
	row := make([]float64, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			row[j] = X.At(i, j)
		}
		out.Set(i, 0, float64(nearestCenter(row, km.centers)))
	}
	return out, nil
}

// FitPredict fits the model and returns the training labels.
func (km *KMeans) FitPredict(X mat.Matrix) (mat.Matrix, error) {
	if err := km.Fit(X); err != nil {
		return nil, err
	}

	n := len(km.labels)
	out := mat.NewDense(n, 1, nil)
	for i, label := range km.labels {
		out.Set(i, 0, float64(label))
	}
	return out, nil
}

// Labels returns a copy of the training cluster assignments.
func (km *KMeans) Labels() []int {
	out := make([]int, len(km.labels))
	copy(out, km.labels)
	return out
}

// ClusterCenters returns a copy of the fitted centroids.
func (km *KMeans) ClusterCenters() [][]float64 {
	out := make([][]float64, len(km.centers))
	for c, center := range km.centers {
		out[c] = make([]float64, len(center))
		copy(out[c], center)
	}
	return out
}

// Inertia returns the sum of squared distances from each row of X to its
// nearest fitted centroid. Before fit it returns +Inf.
func (km *KMeans) Inertia(X mat.Matrix) float64 {
	if !km.IsFitted() {
		return math.Inf(1)
	}

	n, m := X.Dims()
	if m != km.nFeatures {
		return math.Inf(1)
	}

	rows := make([][]float64, n)
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			row[j] = X.At(i, j)
		}
		rows[i] = row
		labels[i] = nearestCenter(row, km.centers)
	}
	return inertia(rows, labels, km.centers)
}

// TrainingInertia returns the inertia over the training data at the end
// of Fit.
func (km *KMeans) TrainingInertia() float64 {
	if !km.IsFitted() {
		return math.Inf(1)
	}
	return km.trainingInertia
}

// NIterations returns the number of Lloyd iterations run by Fit.
func (km *KMeans) NIterations() int {
	return km.nIterations
}

func nearestCenter(row []float64, centers [][]float64) int {
	minDist := math.Inf(1)
	nearest := 0
	for c, center := range centers {
		if d := euclideanDistance(row, center); d < minDist {
			minDist = d
			nearest = c
		}
	}
	return nearest
}

func inertia(rows [][]float64, labels []int, centers [][]float64) float64 {
	var total float64
	for i, row := range rows {
		d := euclideanDistance(row, centers[labels[i]])
		total += d * d
	}
	return total
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
