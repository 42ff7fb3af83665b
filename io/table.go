package io

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/spherepack"
	"github.com/phil-mansfield/spherepack/geom"
)

// Columns of an initial state table.
var initialStateCols = []int{0, 1, 2, 3, 4, 5}

// ReadInitialState reads particle positions and velocities from a
// whitespace-separated table with the columns x y z vx vy vz. Every particle
// is given the same radius and growth rate.
func ReadInitialState(
	fname string, radius, growthRate float64,
) ([]spherepack.Particle, error) {
	cols, err := table.ReadTable(fname, initialStateCols, nil)
	if err != nil {
		return nil, err
	}
	return particlesFromColumns(cols, radius, growthRate)
}

func particlesFromColumns(
	cols [][]float64, radius, growthRate float64,
) ([]spherepack.Particle, error) {
	if len(cols) != len(initialStateCols) {
		return nil, fmt.Errorf(
			"Initial state table has %d columns instead of %d.",
			len(cols), len(initialStateCols),
		)
	}

	n := len(cols[0])
	for i := range cols {
		if len(cols[i]) != n {
			return nil, fmt.Errorf(
				"Column %d of initial state has %d rows, but column 0 "+
					"has %d.", i, len(cols[i]), n,
			)
		}
	}

	ps := make([]spherepack.Particle, n)
	for i := range ps {
		pos := geom.Vec{cols[0][i], cols[1][i], cols[2][i]}
		vel := geom.Vec{cols[3][i], cols[4][i], cols[5][i]}
		for k := 0; k < 3; k++ {
			if !isFinite(pos[k]) || !isFinite(vel[k]) {
				return nil, fmt.Errorf(
					"Row %d of initial state is not finite.", i,
				)
			}
		}
		ps[i] = spherepack.NewParticle(pos, vel, radius, growthRate)
	}

	return ps, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
