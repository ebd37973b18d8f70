// Package model provides the shared foundations of the engine's models:
// fitted-state tracking, the Fit/Predict interface contracts, the seeded
// random source used for every stochastic draw, and the plain weight
// envelope used for serialization.
package model

// EstimatorState represents the training state of a model.
type EstimatorState int

const (
	// NotFitted means the model has not been trained.
	NotFitted EstimatorState = iota
	// Fitted means the model has been trained.
	Fitted
)

// BaseEstimator is embedded by every model to track its fitted state.
// Calling Predict or an inspection method before SetFitted is the
// canonical "not fitted" programmer error.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
