package ensemble

// ForestOption configures a RandomForestRegressor.
type ForestOption func(*RandomForestRegressor)

// WithNEstimators sets the number of trees.
func WithNEstimators(n int) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.nEstimators = n
	}
}

// WithMaxDepth sets the maximum depth of each tree.
func WithMaxDepth(depth int) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.maxDepth = depth
	}
}

// WithMinSamplesSplit sets the per-tree minimum node size for splitting.
func WithMinSamplesSplit(n int) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.minSamplesSplit = n
	}
}

// WithMinSamplesLeaf sets the per-tree minimum child size for a split.
func WithMinSamplesLeaf(n int) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.minSamplesLeaf = n
	}
}

// WithMaxFeatures sets the rule for the per-split feature subset size.
func WithMaxFeatures(mode MaxFeaturesMode) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.maxFeaturesMode = mode
		rf.maxFeaturesN = 0
	}
}

// WithMaxFeaturesN fixes the per-split feature subset to exactly k
// features, capped at the feature count. Overrides WithMaxFeatures.
func WithMaxFeaturesN(k int) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.maxFeaturesN = k
	}
}

// WithBootstrap toggles bootstrap sampling. When disabled every tree
// trains on the full data set.
func WithBootstrap(bootstrap bool) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.bootstrap = bootstrap
	}
}

// WithRandomState sets the forest seed. Per-tree seeds derive from it,
// so a fixed seed gives identical forests regardless of worker count.
// A negative seed uses a time-based source.
func WithRandomState(seed int64) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.randomState = seed
	}
}

// WithNJobs sets the number of concurrent training workers. Values below
// one fall back to the CPU count.
func WithNJobs(n int) ForestOption {
	return func(rf *RandomForestRegressor) {
		rf.nJobs = n
	}
}
