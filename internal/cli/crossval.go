package cli

import (
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JP-Fernando/global-scanner-pro-sub003/ensemble"
	"github.com/JP-Fernando/global-scanner-pro-sub003/linear"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
	"github.com/JP-Fernando/global-scanner-pro-sub003/stats"
)

var crossvalCmd = &cobra.Command{
	Use:   "crossval",
	Short: "K-fold cross validation of a regression model",
	Long: `Crossval runs k-fold cross validation on a CSV factor export
and reports the mean and standard deviation of R-squared and MAE across
folds.`,
	RunE: runCrossval,
}

func init() {
	crossvalCmd.Flags().String("data", "", "path to the CSV factor export (required)")
	crossvalCmd.Flags().String("model", "linear", "model to validate: linear or forest")
	crossvalCmd.Flags().Int("folds", 5, "number of folds")
	crossvalCmd.Flags().Int64("seed", 42, "random seed for the forest")
	_ = crossvalCmd.MarkFlagRequired("data")

	viper.BindPFlag("crossval.folds", crossvalCmd.Flags().Lookup("folds"))
}

func runCrossval(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	modelName, _ := cmd.Flags().GetString("model")
	folds, _ := cmd.Flags().GetInt("folds")
	seed, _ := cmd.Flags().GetInt64("seed")

	ds, err := loadCSV(dataPath)
	if err != nil {
		return err
	}

	n, _ := ds.X.Dims()
	kf := stats.NewKFold(folds)
	splits, err := kf.Split(n)
	if err != nil {
		return err
	}

	r2s := make([]float64, 0, len(splits))
	maes := make([]float64, 0, len(splits))

	for _, fold := range splits {
		XTrain := stats.SelectRows(ds.X, fold.TrainIndices)
		yTrain := stats.SelectRows(ds.Y, fold.TrainIndices)
		XTest := stats.SelectRows(ds.X, fold.TestIndices)
		yTest := stats.SelectRows(ds.Y, fold.TestIndices)

		var model predictor
		switch modelName {
		case "linear":
			lr := linear.NewLinearRegression()
			if err := lr.Fit(XTrain, yTrain); err != nil {
				return err
			}
			model = lr
		case "forest":
			rf := ensemble.NewRandomForestRegressor(ensemble.WithRandomState(seed))
			if err := rf.Fit(XTrain, yTrain); err != nil {
				return err
			}
			model = rf
		default:
			return errors.NewValueError("crossval", "unknown model: "+modelName)
		}

		pred, err := model.Predict(XTest)
		if err != nil {
			return err
		}

		nt, _ := yTest.Dims()
		actual := make([]float64, nt)
		predicted := make([]float64, nt)
		for i := 0; i < nt; i++ {
			actual[i] = yTest.At(i, 0)
			predicted[i] = pred.At(i, 0)
		}
		r2s = append(r2s, stats.R2(actual, predicted))
		maes = append(maes, stats.MAE(actual, predicted))
	}

	meanR2, stdR2 := meanStd(r2s)
	meanMAE, stdMAE := meanStd(maes)

	cmd.Printf("folds:     %d\n", len(splits))
	cmd.Printf("R-squared: %.4f +/- %.4f\n", meanR2, stdR2)
	cmd.Printf("MAE:       %.4f +/- %.4f\n", meanMAE, stdMAE)
	return nil
}

func meanStd(values []float64) (float64, float64) {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
