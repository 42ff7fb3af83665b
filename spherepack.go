/*package spherepack generates dense random packings of spheres by growing
them inside a cubic box.

Particles start out small, move ballistically, and have their radii increased
at a constant rate. Collisions are found by solving for the time at which two
growing surfaces touch and are resolved with a velocity law that keeps the
surfaces separating. The box is either periodic or bounded by reflecting
walls. The run ends once the packing fraction of the box passes a target.
*/
package spherepack

import (
	"log"
	"math"
)

// KeplerFraction is the densest possible packing fraction for equal spheres.
var KeplerFraction = math.Pi / (3 * math.Sqrt2)

// Config contains the parameters of a Simulation.
type Config struct {
	Width    float64
	Boundary Boundary
	Growth   bool
	// TargetFraction is the packing fraction which ends the simulation.
	TargetFraction float64
	// MaxStep bounds the step size in periodic boxes, where steps otherwise
	// end at the next collision.
	MaxStep float64
	// FixedStep is the step size used in reflecting boxes.
	FixedStep float64
}

// Check returns a ConfigurationError if the parameters cannot produce a
// packing of n particles.
func (con *Config) Check(n int) error {
	switch {
	case con.Width <= 0:
		return configErr("BoxWidth", "must be positive, but is %g", con.Width)
	case n <= 0:
		return configErr("Particles", "must be positive, but is %d", n)
	case con.TargetFraction <= 0 || con.TargetFraction > KeplerFraction:
		return configErr(
			"TargetFraction", "must be in range (0, %.4f], but is %g",
			KeplerFraction, con.TargetFraction,
		)
	case con.Boundary < 0 || con.Boundary >= EndBoundary:
		return configErr("Boundary", "unknown boundary %d", int(con.Boundary))
	case con.Boundary == Periodic && con.MaxStep <= 0:
		return configErr("MaxStep", "must be positive, but is %g", con.MaxStep)
	case con.Boundary == Reflecting && con.FixedStep <= 0:
		return configErr(
			"FixedStep", "must be positive, but is %g", con.FixedStep,
		)
	}

	if r := TargetRadius(n, con.Width, con.TargetFraction); r > con.Width/2 {
		return configErr(
			"TargetFraction",
			"%d particles need radius %g to reach %g, which is more than "+
				"half the box width", n, r, con.TargetFraction,
		)
	}

	return nil
}

// Simulation grows a set of particles until they reach a target packing
// fraction. The Simulation owns its particles: they should only be read
// through Snapshot between calls to Step.
type Simulation struct {
	con   Config
	ps    []Particle
	state State
	err   error

	tick        int
	time        float64
	last        TickStats
	history     []Sample
	log         bool
	logInterval int

	step func() TickStats
}

// NewSimulation creates a Simulation from a copy of ps. If growth is
// disabled, the growth rates of the particles are set to zero. Particles
// which touch or overlap, counting periodic images, are rejected.
func NewSimulation(ps []Particle, con *Config) (*Simulation, error) {
	if err := con.Check(len(ps)); err != nil {
		return nil, err
	}

	sim := &Simulation{
		con: *con, ps: make([]Particle, len(ps)), logInterval: 100,
	}
	copy(sim.ps, ps)

	for i := range sim.ps {
		p := &sim.ps[i]
		p.ClearImages()
		if !con.Growth {
			p.GrowthRate = 0
		}

		if p.Radius < 0 || p.GrowthRate < 0 {
			return nil, configErr(
				"InitialRadius", "particle %d has radius %g and growth rate "+
					"%g, neither may be negative", i, p.Radius, p.GrowthRate,
			)
		} else if p.Radius > con.Width/2 {
			return nil, configErr(
				"InitialRadius", "particle %d has radius %g, more than half "+
					"the box width %g", i, p.Radius, con.Width,
			)
		}
	}

	overlap := make([]Particle, len(sim.ps))
	copy(overlap, sim.ps)
	if con.Boundary == Periodic {
		GenerateImages(overlap, con.Width)
	}
	if i, j, ok := firstOverlap(overlap); ok {
		return nil, configErr(
			"InitialRadius", "particles %d and %d overlap at %v and %v",
			i, j, sim.ps[i].Pos, sim.ps[j].Pos,
		)
	}

	phi := PackingFraction(sim.ps, con.Width)
	if phi <= con.TargetFraction && !sim.grows() {
		return nil, configErr(
			"Growth", "particles do not grow, so the packing fraction %g "+
				"can never pass the target %g", phi, con.TargetFraction,
		)
	}

	switch con.Boundary {
	case Periodic:
		sim.step = sim.periodicStep
	case Reflecting:
		sim.step = sim.reflectingStep
	}

	sim.history = []Sample{{0, phi}}
	sim.last = TickStats{Fraction: phi, State: Running}

	return sim, nil
}

func (sim *Simulation) grows() bool {
	if !sim.con.Growth {
		return false
	}
	for i := range sim.ps {
		if sim.ps[i].GrowthRate > 0 {
			return true
		}
	}
	return false
}

// Log turns progress logging on or off. If interval is positive, a line is
// logged every interval ticks.
func (sim *Simulation) Log(flag bool, interval int) {
	sim.log = flag
	if interval > 0 {
		sim.logInterval = interval
	}
}

// State returns the current state of the simulation.
func (sim *Simulation) State() State { return sim.state }

// Config returns the parameters of the simulation.
func (sim *Simulation) Config() Config { return sim.con }

// Len returns the number of particles.
func (sim *Simulation) Len() int { return len(sim.ps) }

// Fraction returns the current packing fraction.
func (sim *Simulation) Fraction() float64 {
	return PackingFraction(sim.ps, sim.con.Width)
}

// History returns the packing fraction after every tick, starting with the
// initial state.
func (sim *Simulation) History() []Sample {
	out := make([]Sample, len(sim.history))
	copy(out, sim.history)
	return out
}

// Snapshot returns a copy of the particles. In periodic boxes the images of
// the copy are regenerated for the current positions.
func (sim *Simulation) Snapshot() []Particle {
	ps := make([]Particle, len(sim.ps))
	copy(ps, sim.ps)
	if sim.con.Boundary == Periodic {
		GenerateImages(ps, sim.con.Width)
	} else {
		ClearAllImages(ps)
	}
	return ps
}

// Step advances the simulation by a single tick. Once the simulation has
// terminated, Step does nothing and returns the statistics of the final
// tick. A ConfigurationError is returned if a particle grows larger than half
// the box; the simulation cannot be stepped after that.
func (sim *Simulation) Step() (TickStats, error) {
	if sim.err != nil {
		return sim.last, sim.err
	} else if sim.state == Terminated {
		return sim.last, nil
	}

	stats := sim.step()
	sim.tick++
	sim.time += stats.Dt
	stats.Tick, stats.Time = sim.tick, sim.time

	if err := sim.checkRadii(); err != nil {
		sim.err = err
		stats.Fraction = sim.Fraction()
		stats.State = sim.state
		sim.last = stats
		return stats, err
	}

	stats.Fraction = sim.Fraction()
	sim.history = append(sim.history, Sample{sim.time, stats.Fraction})
	sim.checkTermination(&stats)
	sim.last = stats

	if sim.log && (sim.tick%sim.logInterval == 0 || sim.state == Terminated) {
		log.Printf(
			"Tick %d: t = %.4g, phi = %.4f, dt = %.3g, corrections = %d",
			sim.tick, sim.time, stats.Fraction, stats.Dt, stats.Corrections,
		)
	}

	return stats, nil
}

// Run steps the simulation until it terminates or maxTicks ticks have been
// run. maxTicks <= 0 means no limit.
func (sim *Simulation) Run(maxTicks int) (TickStats, error) {
	stats := sim.last
	for n := 0; sim.state == Running && (maxTicks <= 0 || n < maxTicks); n++ {
		var err error
		if stats, err = sim.Step(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (sim *Simulation) checkTermination(stats *TickStats) {
	if stats.Fraction > sim.con.TargetFraction {
		sim.state = Terminated
		if sim.log {
			log.Printf(
				"Packing fraction %.4f passed target %.4f after %d ticks.",
				stats.Fraction, sim.con.TargetFraction, sim.tick,
			)
		}
	}
	stats.State = sim.state
}

func (sim *Simulation) checkRadii() error {
	for i := range sim.ps {
		if sim.ps[i].Radius > sim.con.Width/2 {
			return configErr(
				"GrowthRate", "particle %d grew to radius %g, more than half "+
					"the box width %g", i, sim.ps[i].Radius, sim.con.Width,
			)
		}
	}
	return nil
}

// periodicStep runs a single event-limited tick in a periodic box.
func (sim *Simulation) periodicStep() TickStats {
	GenerateImages(sim.ps, sim.con.Width)
	ev, corrections := PredictContact(sim.ps)

	dt := sim.con.MaxStep
	if ev.Found && ev.Time < dt {
		dt = ev.Time
	}

	sim.advance(dt)

	if ev.Found && !ev.Contact && dt == ev.Time {
		// Parallel velocities can't define a collision: skip it.
		_ = Collide(&sim.ps[ev.I], &sim.ps[ev.J])
	}

	Wrap(sim.ps, sim.con.Width)

	return TickStats{Dt: dt, Event: ev, Corrections: corrections}
}

// reflectingStep runs a single fixed-length tick in a box with hard walls.
// Contacts are still predicted, but only so that overlapping pairs get
// pushed apart.
func (sim *Simulation) reflectingStep() TickStats {
	Reflect(sim.ps, sim.con.Width)
	ev, corrections := PredictContact(sim.ps)
	wall := PredictWall(sim.ps, sim.con.Width)

	sim.advance(sim.con.FixedStep)

	return TickStats{
		Dt: sim.con.FixedStep, Event: ev,
		Corrections: corrections, Wall: wall,
	}
}

func (sim *Simulation) advance(dt float64) {
	for i := range sim.ps {
		sim.ps[i].Advance(dt)
		if sim.con.Growth {
			sim.ps[i].Grow(dt)
		}
	}
}
