package spherepack

import (
	"math/rand"

	"github.com/phil-mansfield/spherepack/geom"
)

// maxPlacementAttempts is the number of times RandomParticles will try to
// place a single particle before giving up.
const maxPlacementAttempts = 1000

// InitParams describe a random initial state.
type InitParams struct {
	Width, Radius, GrowthRate float64
	// MaxSpeed bounds each component of the initial velocities.
	MaxSpeed float64
	// Margin is the fraction of the box width kept free of particle centers
	// along each face.
	Margin float64
}

// RandomParticles places n particles with uniformly distributed centers and
// velocities. Centers are redrawn until they do not overlap any previously
// placed particle.
func RandomParticles(
	n int, params *InitParams, gen *rand.Rand,
) ([]Particle, error) {
	if params.Margin < 0 || params.Margin >= 0.5 {
		return nil, configErr(
			"Margin", "must be in range [0, 0.5), but is %g", params.Margin,
		)
	}

	low := params.Margin * params.Width
	high := (1 - params.Margin) * params.Width

	ps := make([]Particle, n)
	for i := range ps {
		p := &ps[i]
		p.Radius, p.GrowthRate = params.Radius, params.GrowthRate

		placed := false
		for attempt := 0; !placed && attempt < maxPlacementAttempts; attempt++ {
			for k := 0; k < 3; k++ {
				p.Pos[k] = uniform(gen, low, high)
			}
			placed = !overlapsAny(p, ps[:i])
		}
		if !placed {
			return nil, configErr(
				"InitialRadius", "could not place particle %d of %d without "+
					"overlap after %d attempts", i+1, n, maxPlacementAttempts,
			)
		}

		for k := 0; k < 3; k++ {
			p.Vel[k] = uniform(gen, -params.MaxSpeed, params.MaxSpeed)
		}
	}

	return ps, nil
}

func uniform(gen *rand.Rand, low, high float64) float64 {
	return low + (high-low)*gen.Float64()
}

func overlapsAny(p *Particle, ps []Particle) bool {
	for i := range ps {
		if p.Pos.Distance(ps[i].Pos) <= p.Radius+ps[i].Radius &&
			p.Radius+ps[i].Radius > 0 {
			return true
		}
	}
	return false
}

// NewParticle is a convenience constructor for a particle with no images.
func NewParticle(pos, vel geom.Vec, radius, growthRate float64) Particle {
	return Particle{Pos: pos, Vel: vel, Radius: radius, GrowthRate: growthRate}
}
