package analyzer

import (
	"fmt"

	"github.com/planetary-interiors/density-profiler/pkg/core"
)

// densityPlotUnit converts kg/m^3 into the 1000 kg/m^3 units used on plots.
const densityPlotUnit = 1000.0

// Series is a pair of equal-length axes ready for an external plotter.
type Series struct {
	XLabel string    `json:"xLabel" yaml:"xLabel"`
	YLabel string    `json:"yLabel" yaml:"yLabel"`
	X      []float64 `json:"x" yaml:"x"`
	Y      []float64 `json:"y" yaml:"y"`
}

// RhoOfS returns density versus normalized mean radius (r / r[0]).
func RhoOfS(p *core.DensityProfile) (*Series, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil profile", core.ErrInvalidArgument)
	}
	outer := p.OuterRadius()
	x := p.Radii()
	for i := range x {
		x[i] /= outer
	}
	return &Series{
		XLabel: "Level surface mean radius [normalized]",
		YLabel: "density [1000 kg/m^3]",
		X:      x,
		Y:      plotDensities(p),
	}, nil
}

// RhoOfM returns density versus normalized enclosed mass (m / M).
func RhoOfM(p *core.DensityProfile) (*Series, error) {
	mvec, err := ProfileCumulativeMass(p)
	if err != nil {
		return nil, err
	}
	total := mvec[0]
	if total == 0 {
		return nil, fmt.Errorf("%w: profile has zero total mass", core.ErrInvalidArgument)
	}
	for i := range mvec {
		mvec[i] /= total
	}
	return &Series{
		XLabel: "Enclosed mass [normalized]",
		YLabel: "density [1000 kg/m^3]",
		X:      mvec,
		Y:      plotDensities(p),
	}, nil
}

func plotDensities(p *core.DensityProfile) []float64 {
	y := p.Densities()
	for i := range y {
		y[i] /= densityPlotUnit
	}
	return y
}
