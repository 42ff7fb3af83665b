package spherepack

import (
	"math"

	"github.com/phil-mansfield/spherepack/geom"
)

// Advance moves the particle along its velocity for a time dt. It knows
// nothing about other particles or the walls of the box.
func (p *Particle) Advance(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// Grow increases the particle's radius by GrowthRate * dt. The radius is not
// clamped: callers are responsible for checking it against the box.
func (p *Particle) Grow(dt float64) {
	p.Radius += p.GrowthRate * dt
}

// Volume returns the volume of the particle.
func (p *Particle) Volume() float64 {
	return 4 * math.Pi / 3 * p.Radius * p.Radius * p.Radius
}

// Images returns the positions of the particle's current periodic images.
// The returned slice aliases the particle and is only valid until the next
// call to GenerateImages.
func (p *Particle) Images() []geom.Vec {
	return p.images[:p.imageCount]
}

// ImageCount returns the number of active periodic images.
func (p *Particle) ImageCount() int { return p.imageCount }

// Image returns the k-th periodic image of p as a stand-alone Particle. The
// image shares the velocity, radius, and growth rate of p and has no images
// of its own.
func (p *Particle) Image(k int) Particle {
	return Particle{
		Pos: p.images[k], Vel: p.Vel,
		Radius: p.Radius, GrowthRate: p.GrowthRate,
	}
}

// ClearImages removes all of the particle's images.
func (p *Particle) ClearImages() {
	p.imageCount = 0
}

func (p *Particle) addImage(pos geom.Vec) {
	p.images[p.imageCount] = pos
	p.imageCount++
}

// PackingFraction returns the total volume of the particles divided by the
// volume of a cube with the given width. Images are not counted.
func PackingFraction(ps []Particle, width float64) float64 {
	vol := 0.0
	for i := range ps {
		vol += ps[i].Volume()
	}
	return vol / (width * width * width)
}

// TargetRadius returns the radius that n equal particles must have to fill
// the given fraction of a box of the given width.
func TargetRadius(n int, width, fraction float64) float64 {
	return math.Cbrt(3 * fraction * width * width * width / (4 * math.Pi * float64(n)))
}
