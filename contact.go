package spherepack

import (
	"math"
)

// PredictContact finds the earliest time at which two growing particles in
// ps touch. Periodic images are treated as ordinary neighbors of every other
// particle, so GenerateImages must be called first in periodic boxes.
//
// Pairs which already overlap and are still approaching each other are
// resolved in place with Collide and reported as a contact at time zero. The
// number of such corrections is returned alongside the event. Ties go to the
// pair which comes first in (i, j) order.
func PredictContact(ps []Particle) (ev Event, corrections int) {
	ev.Time = math.Inf(+1)

	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			t, ok, contact := pairContact(ps, i, j)
			if contact {
				corrections++
			}

			if ok && t < ev.Time {
				ev = Event{I: i, J: j, Time: t, Found: true, Contact: contact}
			}
		}
	}

	return ev, corrections
}

// pairContact returns the earliest contact time between particles i and j,
// including every combination of either particle with the other's images.
func pairContact(ps []Particle, i, j int) (t float64, ok, contact bool) {
	t = math.Inf(+1)

	pairings(&ps[i], &ps[j], func(pi, pj Particle) {
		if contact {
			return
		}
		tij, okij, cij := contactTime(pi, pj)
		if cij {
			// The velocities are shared with the images, so the owners are
			// updated directly. Zero relative velocity leaves them alone.
			if Collide(&ps[i], &ps[j]) == nil {
				contact = true
			}
		}
		if okij && tij < t {
			t, ok = tij, true
		}
	})

	if contact {
		return 0, true, true
	}
	return t, ok, false
}

// pairings calls f on pi and pj and on every combination of one of them with
// an image of the other, or of an image of each. Two particles near
// different faces only meet through an image of each.
func pairings(pi, pj *Particle, f func(a, b Particle)) {
	f(*pi, *pj)
	for kj := 0; kj < pj.imageCount; kj++ {
		f(*pi, pj.Image(kj))
	}
	for ki := 0; ki < pi.imageCount; ki++ {
		img := pi.Image(ki)
		f(img, *pj)
		for kj := 0; kj < pj.imageCount; kj++ {
			f(img, pj.Image(kj))
		}
	}
}

// firstOverlap returns the first pair, in (i, j) order, whose surfaces touch
// or overlap. Images are included if they have been generated.
func firstOverlap(ps []Particle) (i, j int, ok bool) {
	for i = range ps {
		for j = i + 1; j < len(ps); j++ {
			touching := false
			pairings(&ps[i], &ps[j], func(a, b Particle) {
				R := a.Radius + b.Radius
				if R > 0 && a.Pos.Distance(b.Pos) <= R {
					touching = true
				}
			})
			if touching {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// contactTime solves for the time at which the surfaces of two growing
// spheres touch. overlap is true if the spheres already touch and are moving
// towards each other, in which case ok is false.
func contactTime(pi, pj Particle) (t float64, ok, overlap bool) {
	r := pi.Pos.Sub(pj.Pos)
	v := pi.Vel.Sub(pj.Vel)
	ag := pi.GrowthRate + pj.GrowthRate
	R := pi.Radius + pj.Radius

	if pi.Pos.Distance(pj.Pos) <= R {
		return 0, false, v.Dot(r) <= 0
	}

	// a t^2 + 2 b t + c = 0
	a := v.Dot(v) - ag*ag
	b := r.Dot(v) - ag*R
	c := r.Dot(r) - R*R

	t, err := solveContact(a, b, c)
	if err != nil {
		return 0, false, false
	}
	return t, !math.IsInf(t, +1), false
}

// solveContact returns the smallest non-negative root of a t^2 + 2 b t + c
// for c > 0, or +Inf if the surfaces never meet.
func solveContact(a, b, c float64) (float64, error) {
	if a == 0 {
		if b == 0 {
			return math.Inf(+1), ErrDegenerateQuadratic
		} else if b > 0 {
			return math.Inf(+1), nil
		}
		return -c / (2 * b), nil
	}

	disc := b*b - a*c
	if (b <= 0 || a < 0) && disc > 0 {
		return (-b - math.Sqrt(disc)) / a, nil
	}
	return math.Inf(+1), nil
}
