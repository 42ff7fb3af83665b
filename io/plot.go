package io

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/spherepack"
)

// PlotHistory plots packing fraction against simulation time and saves the
// figure to fname. The target fraction is drawn as a horizontal line.
func PlotHistory(fname string, hist []spherepack.Sample, target float64) {
	ts, phis := historyColumns(hist)
	if len(ts) == 0 {
		return
	}

	plt.Figure()
	plt.Plot(ts, phis, "k", plt.LW(2))
	plt.Plot(
		[]float64{ts[0], ts[len(ts)-1]}, []float64{target, target},
		plt.C("r"), plt.LW(1),
	)

	plt.Title(fmt.Sprintf(
		`%d ticks, final $\phi$ = %.4f`, len(ts)-1, phis[len(phis)-1],
	))
	plt.XLabel(`$t$`, plt.FontSize(16))
	plt.YLabel(`$\phi$`, plt.FontSize(16))
	plt.YLim(0, target*1.1)

	plt.SaveFig(fname)
	plt.Execute()
}

func historyColumns(hist []spherepack.Sample) (ts, phis []float64) {
	ts, phis = make([]float64, len(hist)), make([]float64, len(hist))
	for i, s := range hist {
		ts[i], phis[i] = s.Time, s.Fraction
	}
	return ts, phis
}
