package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/JP-Fernando/global-scanner-pro-sub003/ensemble"
	"github.com/JP-Fernando/global-scanner-pro-sub003/linear"
	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
	"github.com/JP-Fernando/global-scanner-pro-sub003/preprocessing"
	"github.com/JP-Fernando/global-scanner-pro-sub003/stats"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a regression model on a factor export",
	Long: `Train fits a linear or random forest regressor on a CSV factor
export. The last column is the target. Metrics are reported on a
held-out split.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().String("data", "", "path to the CSV factor export (required)")
	trainCmd.Flags().String("model", "linear", "model to train: linear or forest")
	trainCmd.Flags().Float64("test-ratio", 0.2, "fraction of rows held out for evaluation")
	trainCmd.Flags().Bool("standardize", false, "standardize features before training")
	trainCmd.Flags().Int64("seed", 42, "random seed for the split and the forest")
	trainCmd.Flags().String("plot", "", "write the training loss curve to this PNG (linear only)")
	trainCmd.Flags().String("out", "", "write the fitted linear model weights to this JSON file")
	_ = trainCmd.MarkFlagRequired("data")

	viper.BindPFlag("train.model", trainCmd.Flags().Lookup("model"))
	viper.BindPFlag("train.test_ratio", trainCmd.Flags().Lookup("test-ratio"))
	viper.BindPFlag("train.seed", trainCmd.Flags().Lookup("seed"))
}

func runTrain(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	modelName, _ := cmd.Flags().GetString("model")
	testRatio, _ := cmd.Flags().GetFloat64("test-ratio")
	standardize, _ := cmd.Flags().GetBool("standardize")
	seed, _ := cmd.Flags().GetInt64("seed")
	plotPath, _ := cmd.Flags().GetString("plot")
	outPath, _ := cmd.Flags().GetString("out")

	ds, err := loadCSV(dataPath)
	if err != nil {
		return err
	}

	var X mat.Matrix = ds.X
	if standardize {
		scaler := preprocessing.NewStandardScaler()
		scaled, err := scaler.FitTransform(ds.X)
		if err != nil {
			return err
		}
		X = scaled
	}

	splitter := stats.TrainTestSplitter{TestRatio: testRatio, Shuffle: true, RandomSeed: seed}
	XTrain, XTest, yTrain, yTest, err := splitter.Split(X, ds.Y)
	if err != nil {
		return err
	}

	switch modelName {
	case "linear":
		return trainLinear(cmd, XTrain, XTest, yTrain, yTest, ds.Features, plotPath, outPath)
	case "forest":
		return trainForest(cmd, XTrain, XTest, yTrain, yTest, ds.Features, seed)
	default:
		return errors.NewValueError("train", "unknown model: "+modelName)
	}
}

func trainLinear(cmd *cobra.Command, XTrain, XTest, yTrain, yTest mat.Matrix, features []string, plotPath, outPath string) error {
	lr := linear.NewLinearRegression()
	if err := lr.Fit(XTrain, yTrain); err != nil {
		return err
	}

	if err := reportMetrics(cmd, lr, XTest, yTest); err != nil {
		return err
	}

	imp, err := lr.FeatureImportances()
	if err != nil {
		return err
	}
	printImportances(cmd, features, imp)

	if plotPath != "" {
		if err := plotLossCurve(lr.LossHistory(), plotPath); err != nil {
			return err
		}
		cmd.Printf("loss curve written to %s\n", plotPath)
	}

	if outPath != "" {
		weights, err := lr.ExportWeights()
		if err != nil {
			return err
		}
		weights.Features = features
		data, err := weights.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return errors.Wrap(err, "writing weights file")
		}
		cmd.Printf("model weights written to %s\n", outPath)
	}
	return nil
}

func trainForest(cmd *cobra.Command, XTrain, XTest, yTrain, yTest mat.Matrix, features []string, seed int64) error {
	rf := ensemble.NewRandomForestRegressor(ensemble.WithRandomState(seed))

	err := rf.FitWithProgress(XTrain, yTrain, func(frac float64) {
		fmt.Fprintf(cmd.OutOrStdout(), "\rtraining: %3.0f%%", frac*100)
	})
	if err != nil {
		return err
	}
	cmd.Println()

	if err := reportMetrics(cmd, rf, XTest, yTest); err != nil {
		return err
	}

	imp, err := rf.FeatureImportances()
	if err != nil {
		return err
	}
	printImportances(cmd, features, imp)
	return nil
}

// predictor is the slice of the model surface the reporting needs.
type predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

func reportMetrics(cmd *cobra.Command, model predictor, XTest, yTest mat.Matrix) error {
	pred, err := model.Predict(XTest)
	if err != nil {
		return err
	}

	n, _ := yTest.Dims()
	actual := make([]float64, n)
	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		actual[i] = yTest.At(i, 0)
		predicted[i] = pred.At(i, 0)
	}

	cmd.Printf("holdout samples: %d\n", n)
	cmd.Printf("R-squared:       %.4f\n", stats.R2(actual, predicted))
	cmd.Printf("MAE:             %.4f\n", stats.MAE(actual, predicted))
	cmd.Printf("RMSE:            %.4f\n", stats.RMSE(actual, predicted))
	return nil
}

func printImportances(cmd *cobra.Command, features []string, imp []float64) {
	cmd.Println("feature importances:")
	for j, name := range features {
		cmd.Printf("  %-16s %.4f\n", name, imp[j])
	}
}
