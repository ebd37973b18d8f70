// Package scanml is a self-contained machine learning engine for market
// scanner research: factor statistics, regression, tree ensembles and
// clustering with a scikit-learn-like API on gonum matrices.
//
// The engine is organized as a family of small packages:
//
//   - stats: correlation, R^2, MAE/RMSE, normalization, data splitting
//   - preprocessing: standard and min-max feature scaling
//   - linear: linear regression via batch gradient descent with L2
//   - tree: CART decision tree regression
//   - ensemble: bagged random forests with concurrent training
//   - cluster: K-Means with k-means++ seeding
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/JP-Fernando/global-scanner-pro-sub003/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})
//
//	    model := linear.NewLinearRegression(linear.WithLearningRate(0.1))
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := model.Predict(mat.NewDense(1, 1, []float64{5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(pred.At(0, 0))
//	}
//
// Every model validates its inputs, reports unfitted use through
// structured errors, and takes functional options for its
// hyperparameters. Stochastic models accept a random seed so runs are
// reproducible.
//
// The scanml command under cmd/scanml drives training, clustering and
// cross validation over CSV factor exports.
package scanml
