package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for supervised models that learn from labelled
// data.
type Fitter interface {
	// Fit trains the model on X (n_samples x n_features) and y
	// (n_samples x 1).
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict returns an n_samples x 1 matrix of predictions for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a quality score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces every regression model implements.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Clusterer is the interface for unsupervised clustering models, which
// take no target vector.
type Clusterer interface {
	// Fit partitions X into clusters.
	Fit(X mat.Matrix) error

	// Predict assigns each row of X to a fitted cluster, returned as an
	// n_samples x 1 matrix of cluster indices.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// FeatureImporter is the interface for models that estimate per-feature
// influence scores.
type FeatureImporter interface {
	// FeatureImportances returns one score per input feature.
	FeatureImportances() ([]float64, error)
}

// Transformer is the interface for stateless-after-fit data transforms
// such as scalers.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel is the interface for models with a linear parameterization.
type LinearModel interface {
	// Weights returns the learned coefficients.
	Weights() ([]float64, error)
	// Intercept returns the learned intercept.
	Intercept() (float64, error)
}
