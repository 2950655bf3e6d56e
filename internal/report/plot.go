package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one named trace of an energy plot.
type Series struct {
	Name string
	Y    []float64
}

// EnergyPlot writes a PNG line plot of the given traces. The x axis is
// the frame step: index times stride.
func EnergyPlot(path, title string, stride int, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("report: no series to plot")
	}
	if stride < 1 {
		stride = 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "kcal/mol"
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Y) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(s.Y))
		for k, y := range s.Y {
			pts[k].X = float64(k * stride)
			pts[k].Y = y
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("report: %s: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
