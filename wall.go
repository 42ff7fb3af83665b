package spherepack

import (
	"math"
)

// PredictWall finds the earliest time at which the surface of a growing
// particle reaches one of the walls of a box with the given width. Particles
// which are already touching or past a wall are skipped along that axis.
func PredictWall(ps []Particle, width float64) WallEvent {
	ev := WallEvent{Time: math.Inf(+1)}

	for i := range ps {
		p := &ps[i]
		for k := 0; k < 3; k++ {
			// Lower wall.
			gap, speed := p.Pos[k]-p.Radius, p.GrowthRate-p.Vel[k]
			if t, ok := wallTime(gap, speed); ok && t < ev.Time {
				ev = WallEvent{Index: i, Axis: k, Time: t, Found: true}
			}

			// Upper wall.
			gap, speed = width-p.Pos[k]-p.Radius, p.Vel[k]+p.GrowthRate
			if t, ok := wallTime(gap, speed); ok && t < ev.Time {
				ev = WallEvent{
					Index: i, Axis: k, Upper: true, Time: t, Found: true,
				}
			}
		}
	}

	return ev
}

func wallTime(gap, speed float64) (float64, bool) {
	if gap < 0 || speed <= 0 {
		return 0, false
	}
	return gap / speed, true
}
