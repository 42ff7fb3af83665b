package spherepack

import (
	"github.com/phil-mansfield/spherepack/geom"
)

// MaxImages is the largest number of periodic images a particle can have:
// one for every non-empty combination of the three axes.
const MaxImages = 7

// Particle is a growing sphere.
type Particle struct {
	Pos, Vel geom.Vec
	// Radius grows by GrowthRate per unit time when growth is enabled.
	Radius, GrowthRate float64

	// images are the periodic copies of Pos for the current tick. They are
	// owned by the particle and overwritten every tick.
	images     [MaxImages]geom.Vec
	imageCount int
}

// State is the state of a Simulation.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Terminated:
		return "Terminated"
	}
	return "Unknown"
}

// Event is the earliest predicted contact between two particles.
type Event struct {
	I, J int
	Time float64
	// Found is false if no pair is predicted to touch.
	Found bool
	// Contact is true if the pair was already touching when the prediction
	// was made. Such pairs have already been resolved by the predictor and
	// have a Time of zero.
	Contact bool
}

// WallEvent is the earliest predicted contact between a particle and one of
// the walls of the box.
type WallEvent struct {
	Index, Axis int
	// Upper is true for the wall at x = L and false for the wall at x = 0.
	Upper bool
	Time  float64
	Found bool
}

// Sample is a single entry in the packing fraction history of a Simulation.
type Sample struct {
	Time, Fraction float64
}

// TickStats summarizes a single call to Simulation.Step.
type TickStats struct {
	Tick     int
	Time, Dt float64
	Fraction float64
	// Event is the contact which limited the step. In reflecting mode it is
	// only informational.
	Event Event
	// Corrections is the number of overlapping pairs which were pushed apart
	// during this tick.
	Corrections int
	// Wall is only computed in reflecting mode.
	Wall  WallEvent
	State State
}
