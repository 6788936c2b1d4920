package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/soillab/internal/curves"
)

// Series is one line of a chart.
type Series struct {
	Name string
	X, Y []float64
}

var seriesColors = []color.RGBA{
	{R: 0xCF, G: 0x50, B: 0x44, A: 0xff},
	{R: 0x1C, G: 0x75, B: 0x8A, A: 0xff},
	{R: 0xC7, G: 0x8D, B: 0x46, A: 0xff},
	{R: 0x83, G: 0xC1, B: 0x67, A: 0xff},
}

// Chart writes a line chart to path. The image format follows the file
// extension (png, svg, pdf, ...).
func Chart(path, title, xlabel, ylabel string, series ...Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Padding = vg.Points(10)
	p.Y.Padding = vg.Points(10)
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.X) != len(s.Y) || len(s.X) == 0 {
			return fmt.Errorf("series %q: %d x values for %d y values", s.Name, len(s.X), len(s.Y))
		}
		pts := make(plotter.XYs, len(s.X))
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = seriesColors[i%len(seriesColors)]
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// CurveChart samples c over its domain and charts it.
func CurveChart(path string, c curves.Curve, samples int) error {
	xs, ys := curves.SampleDomain(c, samples)
	title := c.Name()
	if l, ok := c.(interface{ Label() string }); ok && l.Label() != "" {
		title = l.Label()
	}
	return Chart(path, title, "x", "y", Series{Name: c.Name(), X: xs, Y: ys})
}
