package cli

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/JP-Fernando/global-scanner-pro-sub003/pkg/errors"
)

// plotLossCurve renders the per-epoch training loss as a line chart.
func plotLossCurve(losses []float64, path string) error {
	if len(losses) == 0 {
		return errors.NewValueError("plotLossCurve", "no loss history to plot")
	}

	p := plot.New()
	p.Title.Text = "Training Loss"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "MSE"

	pts := make(plotter.XYs, len(losses))
	for i, loss := range losses {
		pts[i].X = float64(i)
		pts[i].Y = loss
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "building loss line")
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving loss plot")
	}
	return nil
}

// plotElbowCurve renders inertia against cluster count.
func plotElbowCurve(ks []int, inertias []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Inertia vs Cluster Count"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "Inertia"

	pts := make(plotter.XYs, len(ks))
	for i, k := range ks {
		pts[i].X = float64(k)
		pts[i].Y = inertias[i]
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrap(err, "building elbow line")
	}
	p.Add(line, points)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "saving elbow plot")
	}
	return nil
}
