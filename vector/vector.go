// Package vector adds to geom.Vector the few operations arm
// kinematics needs that geom does not provide: unsigned angles with a
// clamped cosine, a half space sign test, parallelism and a tolerant
// comparison, all at the solver's Epsilon.
//
// Every function returns fresh vectors. Nothing here mutates its
// arguments.
package vector

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"zappem.net/pub/math/geom"
)

// Epsilon is the tolerance used for equality and parallelism tests.
const Epsilon = 1e-5

// ErrDegenerate is returned when a direction is requested for a
// vector of (near) zero length.
var ErrDegenerate = errors.New("degenerate vector has no direction")

// Unit axis vectors. Callers must not modify them.
var (
	I = geom.X(1)
	J = geom.Y(1)
	K = geom.Z(1)
)

// Normalize returns the unit vector parallel to v. It differs from
// v.Normalize() in rejecting non-finite vectors too, and in
// reporting both cases as ErrDegenerate.
func Normalize(v geom.Vector) (geom.Vector, error) {
	r := v.R()
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, v)
	}
	u, err := v.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	return u, nil
}

// AngleBetween returns the unsigned angle, in [0,pi], between a and
// b. The cosine is clamped to [-1,1] so rounding never produces
// NaN. A degenerate argument has no direction and yields zero.
func AngleBetween(a, b geom.Vector) geom.Angle {
	ra, rb := a.R(), b.R()
	if geom.Zeroish(ra) || geom.Zeroish(rb) {
		return 0
	}
	c := a.Dot(b) / (ra * rb)
	return geom.Radians(math.Acos(math.Max(-1, math.Min(1, c))))
}

// Sign returns +1 when a and b point into the same half space, that
// is when the angle between them is at most a right angle, and -1
// otherwise. A degenerate argument yields +1.
func Sign(a, b geom.Vector) float64 {
	ua, err := Normalize(a)
	if err != nil {
		return 1
	}
	ub, err := Normalize(b)
	if err != nil {
		return 1
	}
	if ua.Dot(ub) < 0 {
		return -1
	}
	return 1
}

// IsParallel reports whether a and b are parallel (or anti-parallel)
// to within Epsilon.
func IsParallel(a, b geom.Vector) bool {
	return a.Cross(b).R() < Epsilon
}

// Equals compares a and b component by component to within Epsilon.
// geom's own Equals uses the much tighter Zeroish tolerance.
func Equals(a, b geom.Vector) bool {
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], Epsilon) {
			return false
		}
	}
	return true
}

// ZeroX returns v with its X component zeroed. That is, the
// projection of v onto the YZ plane.
func ZeroX(v geom.Vector) geom.Vector {
	return geom.V(0, v[1], v[2])
}
