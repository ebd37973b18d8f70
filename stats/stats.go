// Package stats provides the statistical utilities every downstream
// analytics module builds on: array rescaling, Pearson correlation, the
// standard regression error metrics, and the train/test and k-fold
// resampling helpers.
//
// The scalar metrics deliberately signal ill-defined inputs with sentinel
// values rather than errors: correlation and R2 return 0, MAE and RMSE
// return +Inf. Callers in the factor-weighting and adaptive-scoring
// modules key on these sentinels. Each sentinel return also emits an
// UndefinedMetricWarning through the engine's warning handler.
package stats

import (
	"math"

	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
)

// Normalize rescales values to [0, 1] via (v - min) / (max - min). When
// all values are equal it returns 0.5 for every element, a neutral value
// that avoids division by zero without biasing downstream scores.
func Normalize(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	result := make([]float64, len(values))
	if max == min {
		for i := range result {
			result[i] = 0.5
		}
		return result
	}

	scale := max - min
	for i, v := range values {
		result[i] = (v - min) / scale
	}
	return result
}

// Standardize rescales values to zero mean and unit variance, using the
// population variance (divide by n). A zero-variance input yields all
// zeros.
func Standardize(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return []float64{}
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(n)

	result := make([]float64, n)
	if variance == 0 {
		return result
	}

	std := math.Sqrt(variance)
	for i, v := range values {
		result[i] = (v - mean) / std
	}
	return result
}

// Correlation computes the Pearson correlation coefficient of a and b.
// It returns 0 when the lengths differ, either input is empty, or either
// input has zero variance.
func Correlation(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		errors.Warn(errors.NewUndefinedMetricWarning("correlation", "empty or mismatched input", 0))
		return 0
	}

	var meanA, meanB float64
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("correlation", "zero variance input", 0))
		return 0
	}

	return cov / math.Sqrt(varA*varB)
}

// R2 computes the coefficient of determination. It returns 0 on empty or
// mismatched input.
func R2(actual, predicted []float64) float64 {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		errors.Warn(errors.NewUndefinedMetricWarning("r2", "empty or mismatched input", 0))
		return 0
	}

	var mean float64
	for _, v := range actual {
		mean += v
	}
	mean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		tss += (actual[i] - mean) * (actual[i] - mean)
		rss += (actual[i] - predicted[i]) * (actual[i] - predicted[i])
	}

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("r2", "zero variance in actual", 0))
		return 0
	}

	return 1 - rss/tss
}

// MAE computes the mean absolute error. It returns +Inf on empty or
// mismatched input; callers must treat +Inf as "undefined", not as a large
// error.
func MAE(actual, predicted []float64) float64 {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		errors.Warn(errors.NewUndefinedMetricWarning("mae", "empty or mismatched input", math.Inf(1)))
		return math.Inf(1)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(n)
}

// RMSE computes the root mean squared error. It returns +Inf on empty or
// mismatched input, with the same caveat as MAE.
func RMSE(actual, predicted []float64) float64 {
	n := len(actual)
	if n == 0 || n != len(predicted) {
		errors.Warn(errors.NewUndefinedMetricWarning("rmse", "empty or mismatched input", math.Inf(1)))
		return math.Inf(1)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(n))
}
