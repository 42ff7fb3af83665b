/*package geom contains the vector arithmetic used by the packing routines.

All Vec methods take and return values, so a Vec can be passed around freely
without worrying about aliasing.
*/
package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateVector is returned when a direction is requested from a vector
// with no length.
var ErrDegenerateVector = errors.New("geom: cannot normalize a zero vector")

// Vec is a three dimensional vector.
type Vec [3]float64

// X, Y, and Z are the indices of the corresponding components of a Vec.
const (
	X = iota
	Y
	Z
)

// Add returns v1 + v2.
func (v1 Vec) Add(v2 Vec) Vec {
	return Vec{v1[0] + v2[0], v1[1] + v2[1], v1[2] + v2[2]}
}

// Sub returns v1 - v2.
func (v1 Vec) Sub(v2 Vec) Vec {
	return Vec{v1[0] - v2[0], v1[1] - v2[1], v1[2] - v2[2]}
}

// Scale multiplies all components of a vector by a constant.
func (v Vec) Scale(k float64) Vec {
	return Vec{v[0] * k, v[1] * k, v[2] * k}
}

// Div divides all components of a vector by a constant. Dividing by zero
// follows the usual IEEE rules.
func (v Vec) Div(k float64) Vec {
	return Vec{v[0] / k, v[1] / k, v[2] / k}
}

// Dot computes the inner product of two vectors.
func (v1 Vec) Dot(v2 Vec) float64 {
	return v1[0]*v2[0] + v1[1]*v2[1] + v1[2]*v2[2]
}

// Cross computes the cross product v1 x v2.
func (v1 Vec) Cross(v2 Vec) Vec {
	return Vec{
		v1[1]*v2[2] - v1[2]*v2[1],
		v1[2]*v2[0] - v1[0]*v2[2],
		v1[0]*v2[1] - v1[1]*v2[0],
	}
}

// Norm2 returns the squared magnitude of v.
func (v Vec) Norm2() float64 { return v.Dot(v) }

// Mag returns the Euclidean length of v.
func (v Vec) Mag() float64 { return math.Sqrt(v.Dot(v)) }

// Distance returns the Euclidean distance between two points.
func (v1 Vec) Distance(v2 Vec) float64 { return v1.Sub(v2).Mag() }

// Norm returns a unit vector pointing along v. ErrDegenerateVector is
// returned if v has zero length.
func (v Vec) Norm() (Vec, error) {
	mag := v.Mag()
	if mag == 0 {
		return Vec{}, ErrDegenerateVector
	}
	return v.Div(mag), nil
}

// Mod returns the vector shifted into the fundamental domain [0, width] of a
// periodic box. Only a single period is added or removed along each axis, so
// points more than one box width outside of the box stay outside.
func (v Vec) Mod(width float64) Vec {
	out := v
	for i := 0; i < 3; i++ {
		if out[i] > width {
			out[i] -= width
		} else if out[i] < 0 {
			out[i] += width
		}
	}
	return out
}

func (v Vec) String() string {
	return fmt.Sprintf("Vec(%g, %g, %g)", v[0], v[1], v[2])
}
