package spherepack

import (
	"fmt"
	"strings"
)

// Boundary selects how particles interact with the faces of the box. It is
// chosen once per Simulation.
type Boundary int

const (
	// Periodic boxes wrap particles around to the opposite face and rely on
	// periodic images for collisions across faces.
	Periodic Boundary = iota
	// Reflecting boxes have hard walls which particles bounce off of.
	Reflecting
	EndBoundary
)

var boundaryNames = [EndBoundary]string{"Periodic", "Reflecting"}

func (b Boundary) String() string {
	if b < 0 || b >= EndBoundary {
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
	return boundaryNames[b]
}

// ParseBoundary returns the Boundary with the given (case-insensitive) name.
func ParseBoundary(name string) (Boundary, error) {
	for b := Boundary(0); b < EndBoundary; b++ {
		if strings.ToLower(b.String()) == strings.ToLower(name) {
			return b, nil
		}
	}
	return 0, configErr(
		"Boundary", "'%s' is not one of [ %s ]",
		name, strings.Join(boundaryNames[:], " | "),
	)
}

// Wrap moves every particle which has left the box [0, width]^3 back in
// through the opposite face. Velocities are unchanged.
func Wrap(ps []Particle, width float64) {
	for i := range ps {
		ps[i].Pos = ps[i].Pos.Mod(width)
	}
}

// Reflect clamps every particle center into [r, width - r] along each axis.
// A particle which had to be clamped has its velocity along that axis
// negated.
func Reflect(ps []Particle, width float64) {
	for i := range ps {
		p := &ps[i]
		low, high := p.Radius, width-p.Radius
		for k := 0; k < 3; k++ {
			if p.Pos[k] > high {
				p.Pos[k] = high
				p.Vel[k] = -p.Vel[k]
			} else if p.Pos[k] < low {
				p.Pos[k] = low
				p.Vel[k] = -p.Vel[k]
			}
		}
	}
}
