// Package linear provides linear models trained with batch gradient descent.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/core/model"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
	scigoLog "github.com/JP-Fernando/global-scanner-pro-sub003/pkg/log"
	"github.com/JP-Fernando/global-scanner-pro-sub003/stats"
)

// LinearRegression fits a linear model by minimizing the mean squared error
// with batch gradient descent and an optional L2 penalty on the weights.
// The intercept is never penalized.
type LinearRegression struct {
	model.BaseEstimator

	learningRate float64
	epochs       int
	l2Penalty    float64

	weights   *mat.VecDense
	intercept float64
	nFeatures int

	lossHistory []float64

	logger scigoLog.Logger
}

// NewLinearRegression creates a gradient descent linear regression model.
// Defaults: learning rate 0.01, 1000 epochs, L2 penalty 0.01.
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		learningRate: 0.01,
		epochs:       1000,
		l2Penalty:    0.01,
		logger:       scigoLog.GetLoggerWithName("linear.LinearRegression"),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit trains the model on X (n x m features) and y (n x 1 targets).
// It always runs the configured number of epochs; there is no early
// stopping. The per-epoch MSE is recorded and available via LossHistory.
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	n, m := X.Dims()
	ry, cy := y.Dims()

	if n == 0 || m == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != n {
		return errors.NewDimensionError("LinearRegression.Fit", n, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if lr.learningRate <= 0 {
		return errors.NewValueError("LinearRegression.Fit", "learning rate must be positive")
	}
	if lr.epochs <= 0 {
		return errors.NewValueError("LinearRegression.Fit", "epochs must be positive")
	}
	if lr.l2Penalty < 0 {
		return errors.NewValueError("LinearRegression.Fit", "L2 penalty must be non-negative")
	}

	lr.nFeatures = m
	lr.weights = mat.NewVecDense(m, nil)
	lr.intercept = 0
	lr.lossHistory = make([]float64, 0, lr.epochs)

	lr.logger.Debug("starting gradient descent",
		scigoLog.SamplesKey, n,
		scigoLog.FeaturesKey, m,
		scigoLog.EpochKey, lr.epochs,
	)

	preds := make([]float64, n)
	grad := make([]float64, m)

	for epoch := 0; epoch < lr.epochs; epoch++ {
		// Forward pass.
		var sse float64
		for i := 0; i < n; i++ {
			p := lr.intercept
			for j := 0; j < m; j++ {
				p += lr.weights.AtVec(j) * X.At(i, j)
			}
			preds[i] = p
			diff := p - y.At(i, 0)
			sse += diff * diff
		}
		mse := sse / float64(n)
		lr.lossHistory = append(lr.lossHistory, mse)

		if math.IsNaN(mse) || math.IsInf(mse, 0) {
			return errors.NewModelError("LinearRegression.Fit",
				"loss diverged; reduce the learning rate", nil)
		}

		// Gradient of the MSE with respect to the weights and intercept.
		for j := 0; j < m; j++ {
			grad[j] = 0
		}
		var gradIntercept float64
		for i := 0; i < n; i++ {
			diff := preds[i] - y.At(i, 0)
			gradIntercept += diff
			for j := 0; j < m; j++ {
				grad[j] += diff * X.At(i, j)
			}
		}

		nF := float64(n)
		for j := 0; j < m; j++ {
			w := lr.weights.AtVec(j)
			lr.weights.SetVec(j, w-lr.learningRate*(grad[j]/nF+lr.l2Penalty*w))
		}
		lr.intercept -= lr.learningRate * (gradIntercept / nF)
	}

	lr.SetFitted()
	lr.logger.Info("training complete",
		scigoLog.OperationKey, scigoLog.OperationFit,
		scigoLog.LossKey, lr.lossHistory[len(lr.lossHistory)-1],
	)
	return nil
}

// Predict returns the model output for X as an n x 1 matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	n, m := X.Dims()
	if m != lr.nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, m, 1)
	}

	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		p := lr.intercept
		for j := 0; j < m; j++ {
			p += lr.weights.AtVec(j) * X.At(i, j)
		}
		out.Set(i, 0, p)
	}
	return out, nil
}

// Score returns the coefficient of determination R^2 on the given data.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	n, _ := y.Dims()
	actual := make([]float64, n)
	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		actual[i] = y.At(i, 0)
		predicted[i] = pred.At(i, 0)
	}
	return stats.R2(actual, predicted), nil
}

// Weights returns a copy of the learned coefficients.
func (lr *LinearRegression) Weights() ([]float64, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Weights")
	}
	w := make([]float64, lr.nFeatures)
	for j := 0; j < lr.nFeatures; j++ {
		w[j] = lr.weights.AtVec(j)
	}
	return w, nil
}

// Intercept returns the learned bias term.
func (lr *LinearRegression) Intercept() (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Intercept")
	}
	return lr.intercept, nil
}

// LossHistory returns the per-epoch training MSE. The slice has one entry
// per epoch and is empty before Fit.
func (lr *LinearRegression) LossHistory() []float64 {
	out := make([]float64, len(lr.lossHistory))
	copy(out, lr.lossHistory)
	return out
}

// FeatureImportances returns the absolute value of each coefficient.
// Features should be on comparable scales for this to be meaningful.
func (lr *LinearRegression) FeatureImportances() ([]float64, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "FeatureImportances")
	}
	imp := make([]float64, lr.nFeatures)
	for j := 0; j < lr.nFeatures; j++ {
		imp[j] = math.Abs(lr.weights.AtVec(j))
	}
	return imp, nil
}

// ExportWeights serializes the fitted model into a ModelWeights envelope.
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "ExportWeights")
	}

	coefs, _ := lr.Weights()
	return &model.ModelWeights{
		ModelType:    "LinearRegression",
		Version:      model.WeightsVersion,
		Coefficients: coefs,
		Intercept:    lr.intercept,
		Hyperparameters: map[string]interface{}{
			"learning_rate": lr.learningRate,
			"epochs":        lr.epochs,
			"l2_penalty":    lr.l2Penalty,
		},
		IsFitted: true,
	}, nil
}

// ImportWeights restores a fitted model from a ModelWeights envelope.
func (lr *LinearRegression) ImportWeights(w *model.ModelWeights) error {
	if err := w.Validate(); err != nil {
		return errors.Wrap(err, "LinearRegression.ImportWeights")
	}
	if w.ModelType != "LinearRegression" {
		return errors.NewValueError("LinearRegression.ImportWeights",
			"weights were exported from a different model type: "+w.ModelType)
	}

	lr.nFeatures = len(w.Coefficients)
	lr.weights = mat.NewVecDense(lr.nFeatures, nil)
	for j, c := range w.Coefficients {
		lr.weights.SetVec(j, c)
	}
	lr.intercept = w.Intercept
	lr.SetFitted()
	return nil
}
