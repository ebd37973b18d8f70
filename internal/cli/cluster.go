package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JP-Fernando/global-scanner-pro-sub003/cluster"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster a factor export with K-Means",
	Long: `Cluster groups the rows of a CSV factor export with K-Means
and reports per-cluster sizes and inertia. All columns are used as
features; no target column is assumed.`,
	RunE: runCluster,
}

func init() {
	clusterCmd.Flags().String("data", "", "path to the CSV factor export (required)")
	clusterCmd.Flags().Int("k", 3, "number of clusters")
	clusterCmd.Flags().Int64("seed", 42, "random seed for centroid initialization")
	clusterCmd.Flags().String("plot", "", "write an inertia-vs-k elbow curve to this PNG")
	_ = clusterCmd.MarkFlagRequired("data")

	viper.BindPFlag("cluster.k", clusterCmd.Flags().Lookup("k"))
	viper.BindPFlag("cluster.seed", clusterCmd.Flags().Lookup("seed"))
}

func runCluster(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	k, _ := cmd.Flags().GetInt("k")
	seed, _ := cmd.Flags().GetInt64("seed")
	plotPath, _ := cmd.Flags().GetString("plot")

	ds, err := loadCSV(dataPath)
	if err != nil {
		return err
	}

	// Clustering treats every column as a feature, so rejoin the target
	// column that loadCSV split off.
	full := ds.allColumns()
	n, _ := full.Dims()

	km := cluster.NewKMeans(
		cluster.WithNClusters(k),
		cluster.WithRandomState(seed),
	)
	if err := km.Fit(full); err != nil {
		return err
	}

	sizes := make([]int, k)
	for _, label := range km.Labels() {
		sizes[label]++
	}

	cmd.Printf("clusters:   %d\n", k)
	cmd.Printf("iterations: %d\n", km.NIterations())
	cmd.Printf("inertia:    %.4f\n", km.TrainingInertia())
	for c, size := range sizes {
		cmd.Printf("  cluster %d: %d samples\n", c, size)
	}

	if plotPath != "" {
		maxK := 2 * k
		if maxK > n {
			maxK = n
		}
		ks := make([]int, 0, maxK)
		inertias := make([]float64, 0, maxK)
		for kk := 1; kk <= maxK; kk++ {
			trial := cluster.NewKMeans(
				cluster.WithNClusters(kk),
				cluster.WithRandomState(seed),
			)
			if err := trial.Fit(full); err != nil {
				return err
			}
			ks = append(ks, kk)
			inertias = append(inertias, trial.TrainingInertia())
		}
		if err := plotElbowCurve(ks, inertias, plotPath); err != nil {
			return err
		}
		cmd.Printf("elbow curve written to %s\n", plotPath)
	}
	return nil
}
