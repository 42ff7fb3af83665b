package spherepack

import (
	"github.com/phil-mansfield/spherepack/geom"
)

// CollisionVelocities returns the velocities of two particles after they
// collide.
//
// The components of the velocities parallel to the relative velocity, u, are
// exchanged and the pair is pushed apart along u by the sum of their growth
// rates. Momentum along u is conserved, but energy is not: the extra push is
// what lets the surfaces keep separating while they grow.
//
// geom.ErrDegenerateVector is returned if the particles have the same
// velocity, in which case the collision should be skipped.
func CollisionVelocities(pi, pj *Particle) (vi, vj geom.Vec, err error) {
	u, err := pi.Vel.Sub(pj.Vel).Norm()
	if err != nil {
		return pi.Vel, pj.Vel, err
	}

	iPar := u.Scale(u.Dot(pi.Vel))
	jPar := u.Scale(u.Dot(pj.Vel))
	iPerp := pi.Vel.Sub(iPar)
	jPerp := pj.Vel.Sub(jPar)

	push := u.Scale(pi.GrowthRate + pj.GrowthRate)

	vi = iPerp.Add(jPar).Sub(push)
	vj = jPerp.Add(iPar).Add(push)
	return vi, vj, nil
}

// Collide updates the velocities of two colliding particles. If the
// collision is degenerate, the particles are left unchanged and the error
// from CollisionVelocities is returned.
func Collide(pi, pj *Particle) error {
	vi, vj, err := CollisionVelocities(pi, pj)
	if err != nil {
		return err
	}
	pi.Vel, pj.Vel = vi, vj
	return nil
}
