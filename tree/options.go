package tree

// TreeOption configures a DecisionTreeRegressor.
type TreeOption func(*DecisionTreeRegressor)

// WithMaxDepth sets the maximum tree depth.
func WithMaxDepth(depth int) TreeOption {
	return func(dt *DecisionTreeRegressor) {
		dt.maxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum number of samples a node needs to
// be considered for splitting.
func WithMinSamplesSplit(n int) TreeOption {
	return func(dt *DecisionTreeRegressor) {
		dt.minSamplesSplit = n
	}
}

// WithMinSamplesLeaf sets the minimum number of samples each child of a
// split must receive. Splits that would violate this are discarded.
func WithMinSamplesLeaf(n int) TreeOption {
	return func(dt *DecisionTreeRegressor) {
		dt.minSamplesLeaf = n
	}
}

// WithMaxFeatures limits the number of features examined at each split
// decision. A fresh random subset is drawn per decision. Zero means all
// features.
func WithMaxFeatures(n int) TreeOption {
	return func(dt *DecisionTreeRegressor) {
		dt.maxFeatures = n
	}
}

// WithCriterion sets the impurity measure.
func WithCriterion(c Criterion) TreeOption {
	return func(dt *DecisionTreeRegressor) {
		dt.criterion = c
	}
}

// WithRandomState sets the seed for feature subsampling. A negative seed
// uses a time-based source.
func WithRandomState(seed int64) TreeOption {
	return func(dt *DecisionTreeRegressor) {
		dt.randomState = seed
	}
}
