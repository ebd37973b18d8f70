package cluster

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/core/model"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
)

func init() {
	errors.SetWarningHandler(func(error) {})
}

// blobs generates three tight clusters around (0,0), (10,10) and (20,0).
func blobs(perCluster int, seed int64) *mat.Dense {
	rng := model.NewRand(seed)
	centers := [][2]float64{{0, 0}, {10, 10}, {20, 0}}

	data := make([]float64, 0, perCluster*3*2)
	for _, c := range centers {
		for i := 0; i < perCluster; i++ {
			data = append(data,
				c[0]+rng.NormFloat64()*0.5,
				c[1]+rng.NormFloat64()*0.5,
			)
		}
	}
	return mat.NewDense(perCluster*3, 2, data)
}

func TestKMeansSeparatesBlobs(t *testing.T) {
	X := blobs(20, 42)

	km := NewKMeans(WithNClusters(3), WithRandomState(42))
	if err := km.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	labels := km.Labels()
	distinct := map[int]bool{}
	for _, l := range labels {
		distinct[l] = true
	}
	if len(distinct) != 3 {
		t.Errorf("found %d distinct labels, want 3", len(distinct))
	}

	// Samples from the same blob must share a label.
	for blob := 0; blob < 3; blob++ {
		first := labels[blob*20]
		for i := 1; i < 20; i++ {
			if labels[blob*20+i] != first {
				t.Errorf("blob %d split across clusters", blob)
				break
			}
		}
	}

	if got := km.TrainingInertia(); got >= 50 {
		t.Errorf("training inertia = %v, want < 50", got)
	}
}

func TestKMeansInertiaBeforeFit(t *testing.T) {
	km := NewKMeans()
	if got := km.Inertia(mat.NewDense(1, 2, []float64{0, 0})); !math.IsInf(got, 1) {
		t.Errorf("Inertia before fit = %v, want +Inf", got)
	}
	if got := km.TrainingInertia(); !math.IsInf(got, 1) {
		t.Errorf("TrainingInertia before fit = %v, want +Inf", got)
	}
}

func TestKMeansPredictBeforeFit(t *testing.T) {
	km := NewKMeans()
	if _, err := km.Predict(mat.NewDense(1, 2, []float64{0, 0})); err == nil {
		t.Error("Predict before Fit should fail")
	}
}

func TestKMeansPredictAssignsNearest(t *testing.T) {
	X := blobs(10, 7)

	km := NewKMeans(WithNClusters(3), WithRandomState(7))
	if err := km.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Points at the blob centers must map to the cluster holding that blob.
	probe := mat.NewDense(3, 2, []float64{0, 0, 10, 10, 20, 0})
	pred, err := km.Predict(probe)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	labels := km.Labels()
	for blob := 0; blob < 3; blob++ {
		if int(pred.At(blob, 0)) != labels[blob*10] {
			t.Errorf("center of blob %d assigned to cluster %v, training label %d",
				blob, pred.At(blob, 0), labels[blob*10])
		}
	}
}

func TestKMeansFitPredictMatchesLabels(t *testing.T) {
	X := blobs(5, 3)

	km := NewKMeans(WithNClusters(3), WithRandomState(3))
	pred, err := km.FitPredict(X)
	if err != nil {
		t.Fatalf("FitPredict failed: %v", err)
	}

	labels := km.Labels()
	for i, l := range labels {
		if int(pred.At(i, 0)) != l {
			t.Errorf("sample %d: FitPredict %v, Labels %d", i, pred.At(i, 0), l)
		}
	}
}

func TestKMeansConvergenceWarning(t *testing.T) {
	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(func(error) {})

	X := blobs(10, 9)
	km := NewKMeans(WithNClusters(3), WithMaxIterations(1), WithTolerance(0), WithRandomState(9))
	if err := km.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	found := false
	for _, w := range captured {
		var cw *errors.ConvergenceWarning
		if errors.As(w, &cw) {
			found = true
		}
	}
	if !found {
		t.Error("exhausting the iteration limit should emit a ConvergenceWarning")
	}
}

func TestKMeansInputValidation(t *testing.T) {
	if err := NewKMeans(WithNClusters(5)).Fit(mat.NewDense(3, 2, nil)); err == nil {
		t.Error("more clusters than samples should fail")
	}
	if err := NewKMeans(WithNClusters(0)).Fit(mat.NewDense(3, 2, nil)); err == nil {
		t.Error("zero clusters should fail")
	}
	if err := NewKMeans(WithInit("grid")).Fit(mat.NewDense(10, 2, nil)); err == nil {
		t.Error("unknown init method should fail")
	}
}

func TestKMeansRandomInit(t *testing.T) {
	X := blobs(10, 21)

	km := NewKMeans(WithNClusters(3), WithInit(InitRandom), WithRandomState(21))
	if err := km.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	centers := km.ClusterCenters()
	if len(centers) != 3 {
		t.Fatalf("got %d centers, want 3", len(centers))
	}
	if len(centers[0]) != 2 {
		t.Fatalf("center dimensionality = %d, want 2", len(centers[0]))
	}
}

func TestKMeansSeedDeterminism(t *testing.T) {
	X := blobs(10, 33)

	a := NewKMeans(WithNClusters(3), WithRandomState(5))
	b := NewKMeans(WithNClusters(3), WithRandomState(5))
	if err := a.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := b.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	la, lb := a.Labels(), b.Labels()
	for i := range la {
		if la[i] != lb[i] {
			t.Fatalf("same seed should give identical assignments, sample %d", i)
		}
	}
	if a.TrainingInertia() != b.TrainingInertia() {
		t.Errorf("inertia differs: %v vs %v", a.TrainingInertia(), b.TrainingInertia())
	}
}
