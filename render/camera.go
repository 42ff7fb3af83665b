/*package render draws a packing in a terminal window while it is being
simulated.

Particles are projected through a fixed perspective camera onto a grid of
terminal cells. Every sphere, including periodic images, is drawn as a filled
disk of cells, and the edges of the box are drawn on top of them.
*/
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phil-mansfield/spherepack/geom"
)

const (
	fovDegrees  = 45
	tiltDegrees = -20
	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0
	nearPlane  = 0.1
	farPlane   = 100
)

// Camera projects points inside a box of a given width onto the screen.
type Camera struct {
	boxWidth float64
	view     mgl64.Mat4
}

// NewCamera creates a camera which looks at a box of the given width from
// slightly to one side.
func NewCamera(boxWidth float64) *Camera {
	L := boxWidth
	view := mgl64.Translate3D(-0.5*L, -0.5*L, -4*L).Mul4(
		mgl64.HomogRotate3DY(mgl64.DegToRad(tiltDegrees)),
	)
	return &Camera{boxWidth: boxWidth, view: view}
}

func (cam *Camera) projection(cols, rows int) mgl64.Mat4 {
	aspect := float64(cols) / (float64(rows) * cellAspect)
	return mgl64.Perspective(
		mgl64.DegToRad(fovDegrees), aspect,
		nearPlane*cam.boxWidth, farPlane*cam.boxWidth,
	)
}

// Project returns the normalized device coordinates of a point. ok is false
// if the point is behind the camera.
func (cam *Camera) Project(p geom.Vec, cols, rows int) (ndc mgl64.Vec3, ok bool) {
	mvp := cam.projection(cols, rows).Mul4(cam.view)
	clip := mvp.Mul4x1(mgl64.Vec4{p[0], p[1], p[2], 1})
	if clip.W() <= 0 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

// Cell returns the terminal cell that a point is drawn in on a screen with
// the given number of columns and rows. ok is false if the cell is not on
// the screen.
func (cam *Camera) Cell(p geom.Vec, cols, rows int) (col, row int, ok bool) {
	ndc, ok := cam.Project(p, cols, rows)
	if !ok {
		return 0, 0, false
	}
	return ndcToCell(ndc, cols, rows)
}

func ndcToCell(ndc mgl64.Vec3, cols, rows int) (col, row int, ok bool) {
	x := (ndc.X() + 1) / 2 * float64(cols)
	y := (1 - ndc.Y()) / 2 * float64(rows)
	col, row = int(math.Floor(x)), int(math.Floor(y))
	ok = col >= 0 && col < cols && row >= 0 && row < rows
	return col, row, ok
}

// Disk returns the cell at the center of a sphere and its projected radius
// in columns. The radius is measured perpendicular to the line of sight.
func (cam *Camera) Disk(
	center geom.Vec, radius float64, cols, rows int,
) (col, row int, cellRadius float64, ok bool) {
	ndc, ok := cam.Project(center, cols, rows)
	if !ok {
		return 0, 0, 0, false
	}
	col, row, _ = ndcToCell(ndc, cols, rows)

	// Camera space x axis, pulled back into world space.
	right := cam.view.Inv().Mul4x1(mgl64.Vec4{1, 0, 0, 0}).Vec3().Normalize()
	edge := geom.Vec{
		center[0] + radius*right.X(),
		center[1] + radius*right.Y(),
		center[2] + radius*right.Z(),
	}
	edgeNDC, ok := cam.Project(edge, cols, rows)
	if !ok {
		return 0, 0, 0, false
	}

	cellRadius = math.Abs(edgeNDC.X()-ndc.X()) / 2 * float64(cols)
	return col, row, cellRadius, true
}

// Edges returns the twelve edges of the box as pairs of corners.
func (cam *Camera) Edges() [12][2]geom.Vec {
	L := cam.boxWidth
	var corners [8]geom.Vec
	for i := range corners {
		for k := 0; k < 3; k++ {
			if i&(1<<uint(k)) != 0 {
				corners[i][k] = L
			}
		}
	}

	var edges [12][2]geom.Vec
	n := 0
	for i := range corners {
		for k := 0; k < 3; k++ {
			if i&(1<<uint(k)) == 0 {
				edges[n] = [2]geom.Vec{corners[i], corners[i|1<<uint(k)]}
				n++
			}
		}
	}
	return edges
}
