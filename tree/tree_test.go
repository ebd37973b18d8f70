package tree

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDecisionTreeFitsStepFunction(t *testing.T) {
	// A single split at x = 2.5 separates the two plateaus exactly.
	X := mat.NewDense(6, 1, []float64{1, 2, 2.4, 2.6, 3, 4})
	y := mat.NewDense(6, 1, []float64{10, 10, 10, 20, 20, 20})

	dt := NewDecisionTreeRegressor()
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred, err := dt.Predict(mat.NewDense(2, 1, []float64{0, 5}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.At(0, 0) != 10 {
		t.Errorf("prediction below split = %v, want 10", pred.At(0, 0))
	}
	if pred.At(1, 0) != 20 {
		t.Errorf("prediction above split = %v, want 20", pred.At(1, 0))
	}

	if dt.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", dt.Depth())
	}
	if dt.NLeaves() != 2 {
		t.Errorf("NLeaves = %d, want 2", dt.NLeaves())
	}
}

func TestDecisionTreeConstantTarget(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{7, 7, 7, 7, 7})

	dt := NewDecisionTreeRegressor()
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if dt.Depth() != 0 {
		t.Errorf("constant target should give a single leaf, depth = %d", dt.Depth())
	}
	if dt.NLeaves() != 1 {
		t.Errorf("NLeaves = %d, want 1", dt.NLeaves())
	}

	pred, err := dt.Predict(mat.NewDense(1, 1, []float64{100}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.At(0, 0) != 7 {
		t.Errorf("prediction = %v, want 7", pred.At(0, 0))
	}
}

func TestDecisionTreeMaxDepth(t *testing.T) {
	n := 32
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
		ys[i] = float64(i * i)
	}
	X := mat.NewDense(n, 1, xs)
	y := mat.NewDense(n, 1, ys)

	dt := NewDecisionTreeRegressor(WithMaxDepth(3))
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if dt.Depth() > 3 {
		t.Errorf("Depth = %d, want <= 3", dt.Depth())
	}
	if dt.NLeaves() > 8 {
		t.Errorf("NLeaves = %d, want <= 8", dt.NLeaves())
	}
}

func TestDecisionTreeMinSamplesLeaf(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{1, 1, 1, 100})

	dt := NewDecisionTreeRegressor(WithMinSamplesLeaf(2))
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Splits are checked after partitioning, so every leaf must hold at
	// least two training samples.
	counts, err := dt.FeatureUseCounts()
	if err != nil {
		t.Fatalf("FeatureUseCounts failed: %v", err)
	}
	if counts[0] > 1 {
		t.Errorf("expected at most one split, got %d", counts[0])
	}
}

func TestDecisionTreePredictBeforeFit(t *testing.T) {
	dt := NewDecisionTreeRegressor()
	if _, err := dt.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Predict before Fit should fail")
	}
	if _, err := dt.FeatureImportances(); err == nil {
		t.Error("FeatureImportances before Fit should fail")
	}
}

func TestDecisionTreeInputValidation(t *testing.T) {
	dt := NewDecisionTreeRegressor()

	if err := dt.Fit(mat.NewDense(3, 1, nil), mat.NewDense(2, 1, nil)); err == nil {
		t.Error("row mismatch should fail")
	}
	if err := dt.Fit(mat.NewDense(2, 1, nil), mat.NewDense(2, 2, nil)); err == nil {
		t.Error("non-column y should fail")
	}

	bad := NewDecisionTreeRegressor(WithCriterion("entropy"))
	if err := bad.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 1, []float64{1, 2})); err == nil {
		t.Error("unknown criterion should fail")
	}
}

func TestDecisionTreeGiniCriterion(t *testing.T) {
	// Two well separated classes labeled 0 and 1.
	X := mat.NewDense(6, 1, []float64{1, 2, 3, 10, 11, 12})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	dt := NewDecisionTreeRegressor(WithCriterion(CriterionGini))
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred, err := dt.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 6; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			t.Errorf("sample %d predicted %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}
}

func TestDecisionTreeFeatureImportances(t *testing.T) {
	// Only the first feature carries signal.
	X := mat.NewDense(8, 2, []float64{
		1, 5,
		2, 5,
		3, 5,
		4, 5,
		5, 5,
		6, 5,
		7, 5,
		8, 5,
	})
	y := mat.NewDense(8, 1, []float64{1, 1, 1, 1, 9, 9, 9, 9})

	dt := NewDecisionTreeRegressor()
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	imp, err := dt.FeatureImportances()
	if err != nil {
		t.Fatalf("FeatureImportances failed: %v", err)
	}

	var sum float64
	for _, v := range imp {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("importances should sum to 1, got %v", sum)
	}
	if imp[0] <= imp[1] {
		t.Errorf("informative feature should dominate: %v", imp)
	}
}

func TestDecisionTreeMaxFeaturesDeterministic(t *testing.T) {
	n := 20
	data := make([]float64, n*3)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i*3] = float64(i)
		data[i*3+1] = float64(i % 5)
		data[i*3+2] = float64(i % 3)
		ys[i] = float64(i) + 0.5*float64(i%5)
	}
	X := mat.NewDense(n, 3, data)
	y := mat.NewDense(n, 1, ys)

	a := NewDecisionTreeRegressor(WithMaxFeatures(2), WithRandomState(42))
	b := NewDecisionTreeRegressor(WithMaxFeatures(2), WithRandomState(42))
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	predA, _ := a.Predict(X)
	predB, _ := b.Predict(X)
	for i := 0; i < n; i++ {
		if predA.At(i, 0) != predB.At(i, 0) {
			t.Fatalf("same seed should give identical trees, sample %d: %v vs %v",
				i, predA.At(i, 0), predB.At(i, 0))
		}
	}
}
