package linear

// Option configures a LinearRegression model.
type Option func(*LinearRegression)

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(rate float64) Option {
	return func(lr *LinearRegression) {
		lr.learningRate = rate
	}
}

// WithEpochs sets the number of full passes over the training data.
func WithEpochs(epochs int) Option {
	return func(lr *LinearRegression) {
		lr.epochs = epochs
	}
}

// WithL2Penalty sets the L2 regularization strength applied to the
// weights. The intercept is not penalized. Zero disables regularization.
func WithL2Penalty(penalty float64) Option {
	return func(lr *LinearRegression) {
		lr.l2Penalty = penalty
	}
}
