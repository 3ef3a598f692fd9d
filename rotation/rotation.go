// Package rotation builds geom rotation matrices about an arbitrary
// axis.
package rotation

import (
	"zappem.net/pub/math/geom"
)

// Skew returns the cross product matrix of v, so that
// Skew(v).XV(u) equals v.Cross(u).
func Skew(v geom.Vector) geom.Matrix {
	return geom.M(
		0, -v[2], v[1],
		v[2], 0, -v[0],
		-v[1], v[0], 0,
	)
}

// FromAxisAngle returns the matrix that rotates a vector by a about
// axis, right handed. This is the Rodrigues construction,
//
//	R = I + sin(a) W + (1 - cos(a)) W W,  W = Skew(axis)
//
// Unlike axis.RV(a), the axis is used as given: it must already be a
// unit vector and is not renormalized.
func FromAxisAngle(axis geom.Vector, a geom.Angle) geom.Matrix {
	w := Skew(axis)
	return geom.I.AddS(w, a.S()).AddS(w.XM(w), 1-a.C())
}
