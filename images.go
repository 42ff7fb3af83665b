package spherepack

import (
	"github.com/phil-mansfield/spherepack/geom"
)

// GenerateImages overwrites the periodic images of every particle in a box
// of the given width.
//
// A particle whose surface crosses a face of the box gets an image shifted by
// one box width across the opposite face. If it crosses faces along m axes,
// it receives an image for every non-empty combination of those shifts:
// 1, 3, or 7 images. The k-th image corresponds to the k+1-th bitmask over
// the crossed axes in x, y, z order.
func GenerateImages(ps []Particle, width float64) {
	for i := range ps {
		generateParticleImages(&ps[i], width)
	}
}

// faceShifts returns the shift needed along each axis crossed by the surface
// of p, along with the number of such axes.
func faceShifts(p *Particle, width float64) (shifts [3]geom.Vec, m int) {
	for k := 0; k < 3; k++ {
		var dx float64
		if p.Pos[k] < p.Radius {
			dx = width
		} else if p.Pos[k] > width-p.Radius {
			dx = -width
		} else {
			continue
		}

		shifts[m][k] = dx
		m++
	}
	return shifts, m
}

func generateParticleImages(p *Particle, width float64) {
	p.ClearImages()

	shifts, m := faceShifts(p, width)
	for mask := 1; mask < 1<<uint(m); mask++ {
		pos := p.Pos
		for k := 0; k < m; k++ {
			if mask&(1<<uint(k)) != 0 {
				pos = pos.Add(shifts[k])
			}
		}
		p.addImage(pos)
	}
}

// ClearAllImages removes the images of every particle.
func ClearAllImages(ps []Particle) {
	for i := range ps {
		ps[i].ClearImages()
	}
}
