package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/soillab/internal/curves"
	"github.com/san-kum/soillab/internal/export"
)

func showCurve(cmd *cobra.Command, args []string) error {
	c, err := curves.Lookup(args[0])
	if err != nil {
		return err
	}
	if samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", samples)
	}
	xs, ys := curves.SampleDomain(c, samples)

	if asCSV {
		w := csv.NewWriter(os.Stdout)
		if err := w.Write([]string{"x", "y"}); err != nil {
			return err
		}
		for i := range xs {
			row := []string{
				strconv.FormatFloat(xs[i], 'f', 6, 64),
				strconv.FormatFloat(ys[i], 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}

	lo, hi := c.Domain()
	fmt.Printf("curve: %s (%s)\n", c.Name(), c.Label())
	fmt.Printf("domain: [%g, %g]  samples: %d\n\n", lo, hi, len(xs))

	graph := asciigraph.Plot(ys,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(c.Label()),
	)
	fmt.Println(graph)
	fmt.Println()

	px, py := curves.Peak(c, samples)
	fmt.Printf("peak:          %.4f at x=%.4f\n", py, px)
	fmt.Printf("initial slope: %.4f\n", curves.InitialSlope(c, 1e-4))
	fmt.Printf("residual:      %.4f\n", curves.Residual(c))
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	c, err := curves.Lookup(args[0])
	if err != nil {
		return err
	}
	if err := export.CurveChart(args[1], c, chartSamples); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func btsStrength(cmd *cobra.Command, args []string) error {
	sigma, err := curves.BTSStrength(load, diameter, thickness)
	if err != nil {
		return err
	}
	fmt.Printf("P = %g N  D = %g mm  T = %g mm\n", load, diameter, thickness)
	fmt.Printf("tensile strength: %.4f MPa\n", sigma)
	return nil
}
