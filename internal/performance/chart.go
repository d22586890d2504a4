package performance

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ChartCurves renders running P/L curves to an image file, one line per
// strategy with the bet index on the x axis. The output format follows
// the path extension.
func ChartCurves(curves map[string][]float64, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Number of Bets"
	p.Y.Label.Text = "Profit/Loss"
	p.Add(plotter.NewGrid())

	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		pts := make(plotter.XYs, len(curves[name]))
		for j, v := range curves[name] {
			pts[j].X = float64(j)
			pts[j].Y = v
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("chart line %s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	if err := p.Save(12*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
