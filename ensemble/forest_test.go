package ensemble

import (
	"math"
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/core/model"
	"github.com/JP-Fernando/global-scanner-pro-sub003/stats"
)

// quadraticData builds y = x1^2 + x2 over a seeded random grid.
func quadraticData(n int, seed int64) (*mat.Dense, *mat.Dense) {
	rng := model.NewRand(seed)
	data := make([]float64, n*2)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		x1 := rng.Float64() * 10
		x2 := rng.Float64() * 10
		data[i*2] = x1
		data[i*2+1] = x2
		ys[i] = x1*x1 + x2
	}
	return mat.NewDense(n, 2, data), mat.NewDense(n, 1, ys)
}

func TestForestFitsNonlinearTarget(t *testing.T) {
	X, y := quadraticData(50, 7)

	rf := NewRandomForestRegressor(
		WithNEstimators(20),
		WithMaxDepth(5),
		WithRandomState(42),
	)
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Evaluate on the last 10 rows (20%).
	test := X.Slice(40, 50, 0, 2)
	pred, err := rf.Predict(test)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	actual := make([]float64, 10)
	predicted := make([]float64, 10)
	for i := 0; i < 10; i++ {
		actual[i] = y.At(40+i, 0)
		predicted[i] = pred.At(i, 0)
	}
	if mae := stats.MAE(actual, predicted); mae >= 10 {
		t.Errorf("MAE = %v, want < 10", mae)
	}
}

func TestForestSeedDeterminism(t *testing.T) {
	X, y := quadraticData(40, 3)

	fit := func(jobs int) mat.Matrix {
		rf := NewRandomForestRegressor(
			WithNEstimators(10),
			WithMaxDepth(4),
			WithRandomState(99),
			WithNJobs(jobs),
		)
		if err := rf.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		pred, err := rf.Predict(X)
		if err != nil {
			t.Fatalf("Predict failed: %v", err)
		}
		return pred
	}

	serial := fit(1)
	concurrent := fit(4)

	for i := 0; i < 40; i++ {
		if serial.At(i, 0) != concurrent.At(i, 0) {
			t.Fatalf("worker count changed the forest: sample %d: %v vs %v",
				i, serial.At(i, 0), concurrent.At(i, 0))
		}
	}
}

func TestForestProgressCallback(t *testing.T) {
	X, y := quadraticData(30, 5)

	var fractions []float64
	rf := NewRandomForestRegressor(
		WithNEstimators(8),
		WithMaxDepth(3),
		WithRandomState(1),
		WithNJobs(2),
	)
	err := rf.FitWithProgress(X, y, func(frac float64) {
		fractions = append(fractions, frac)
	})
	if err != nil {
		t.Fatalf("FitWithProgress failed: %v", err)
	}

	if len(fractions) != 8 {
		t.Fatalf("callback fired %d times, want 8", len(fractions))
	}
	sort.Float64s(fractions)
	for i, frac := range fractions {
		want := float64(i+1) / 8
		if math.Abs(frac-want) > 1e-12 {
			t.Errorf("fraction %d = %v, want %v", i, frac, want)
		}
	}
	if fractions[len(fractions)-1] != 1.0 {
		t.Errorf("final fraction = %v, want 1.0", fractions[len(fractions)-1])
	}
}

func TestForestFeatureImportancesNormalized(t *testing.T) {
	X, y := quadraticData(40, 11)

	rf := NewRandomForestRegressor(
		WithNEstimators(10),
		WithMaxDepth(4),
		WithRandomState(2),
	)
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	imp, err := rf.FeatureImportances()
	if err != nil {
		t.Fatalf("FeatureImportances failed: %v", err)
	}

	var sum float64
	for _, v := range imp {
		if v < 0 {
			t.Errorf("negative importance: %v", imp)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("importances should sum to 1, got %v", sum)
	}
	// x1 enters quadratically, so it should dominate.
	if imp[0] <= imp[1] {
		t.Errorf("x1 should be more important than x2: %v", imp)
	}
}

func TestForestPredictBeforeFit(t *testing.T) {
	rf := NewRandomForestRegressor()
	if _, err := rf.Predict(mat.NewDense(1, 2, []float64{1, 2})); err == nil {
		t.Error("Predict before Fit should fail")
	}
	if _, err := rf.FeatureImportances(); err == nil {
		t.Error("FeatureImportances before Fit should fail")
	}
}

func TestForestInputValidation(t *testing.T) {
	rf := NewRandomForestRegressor(WithNEstimators(2), WithRandomState(0))

	if err := rf.Fit(mat.NewDense(3, 1, nil), mat.NewDense(2, 1, nil)); err == nil {
		t.Error("row mismatch should fail")
	}
	if err := rf.Fit(mat.NewDense(2, 1, nil), mat.NewDense(2, 2, nil)); err == nil {
		t.Error("non-column y should fail")
	}

	bad := NewRandomForestRegressor(WithMaxFeatures("half"))
	if err := bad.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 1, []float64{1, 2})); err == nil {
		t.Error("unknown max features mode should fail")
	}
}

func TestForestWithoutBootstrap(t *testing.T) {
	X, y := quadraticData(30, 13)

	rf := NewRandomForestRegressor(
		WithNEstimators(5),
		WithMaxDepth(6),
		WithBootstrap(false),
		WithMaxFeatures(MaxFeaturesAll),
		WithRandomState(4),
	)
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// With no bootstrap and all features, every tree is identical, so
	// the forest predicts exactly what a single tree does.
	pred, err := rf.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	single, err := rf.Trees()[0].Predict(X)
	if err != nil {
		t.Fatalf("tree Predict failed: %v", err)
	}
	for i := 0; i < 30; i++ {
		if math.Abs(pred.At(i, 0)-single.At(i, 0)) > 1e-9 {
			t.Fatalf("sample %d: forest %v, tree %v", i, pred.At(i, 0), single.At(i, 0))
		}
	}
}

func TestForestMaxFeaturesN(t *testing.T) {
	X, y := quadraticData(20, 17)

	rf := NewRandomForestRegressor(
		WithNEstimators(3),
		WithMaxFeaturesN(50), // capped at the feature count
		WithRandomState(8),
	)
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit with oversized max features failed: %v", err)
	}
}
