package cluster

// KMeansOption configures a KMeans model.
type KMeansOption func(*KMeans)

// WithNClusters sets the number of clusters.
func WithNClusters(k int) KMeansOption {
	return func(km *KMeans) {
		km.nClusters = k
	}
}

// WithMaxIterations sets the Lloyd iteration limit.
func WithMaxIterations(n int) KMeansOption {
	return func(km *KMeans) {
		km.maxIterations = n
	}
}

// WithTolerance sets the centroid shift threshold below which iteration
// stops.
func WithTolerance(tol float64) KMeansOption {
	return func(km *KMeans) {
		km.tolerance = tol
	}
}

// WithInit sets the centroid seeding strategy, InitKMeansPlusPlus or
// InitRandom.
func WithInit(init string) KMeansOption {
	return func(km *KMeans) {
		km.init = init
	}
}

// WithRandomState sets the seed for centroid initialization and empty
// cluster reseeding. A negative seed uses a time-based source.
func WithRandomState(seed int64) KMeansOption {
	return func(km *KMeans) {
		km.randomState = seed
	}
}
