// Standard attribute keys for the engine's structured logs. Using these
// keys keeps fit/predict logs filterable across model packages.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LinearRegression",
	// "RandomForestRegressor", "KMeans".
	ModelNameKey = "model.name"

	// OperationKey names the ML operation: "fit", "predict", "transform",
	// "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation,
	// e.g. "linear", "ensemble", "cluster".
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) being processed.
	FeaturesKey = "data.features"
)

// Training progress and metrics.
const (
	// EpochKey is the current epoch of an iterative fit.
	EpochKey = "training.epoch"

	// IterationKey is the current iteration of a convergence loop.
	IterationKey = "training.iteration"

	// TreesKey is the number of trees trained so far in an ensemble fit.
	TreesKey = "training.trees"

	// LossKey is the current training loss.
	LossKey = "metrics.loss"

	// InertiaKey is the within-cluster sum of squared distances.
	InertiaKey = "metrics.inertia"

	// R2ScoreKey is the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// DurationMsKey is the elapsed time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Standard operation values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
)
