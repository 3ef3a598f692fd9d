package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"zappem.net/pub/math/geom"
)

func toR3(v geom.Vector) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

var samples = []geom.Vector{
	geom.V(1, 0, 0),
	geom.V(0, -150, 0),
	geom.V(25, -100, 50),
	geom.V(-3.5, 2.25, 7),
	geom.V(1e-3, 4, -4),
	geom.V(66.1437827766, -75, 0),
}

func TestGeomAgreesWithR3(t *testing.T) {
	for _, a := range samples {
		for _, b := range samples {
			if got, want := a.Dot(b), toR3(a).Dot(toR3(b)); math.Abs(got-want) > 1e-9 {
				t.Errorf("%v.Dot(%v) = %v, want %v", a, b, got, want)
			}
			c := a.Cross(b)
			w := toR3(a).Cross(toR3(b))
			if !Equals(c, geom.V(w.X, w.Y, w.Z)) {
				t.Errorf("%v.Cross(%v) = %v, want %v", a, b, c, w)
			}
		}
		if got, want := a.R(), toR3(a).Norm(); math.Abs(got-want) > 1e-9 {
			t.Errorf("%v.R() = %v, want %v", a, got, want)
		}
	}
}

func TestCrossRightHanded(t *testing.T) {
	if got := I.Cross(J); !Equals(got, K) {
		t.Errorf("i x j = %v", got)
	}
	if got := J.Cross(K); !Equals(got, I) {
		t.Errorf("j x k = %v", got)
	}
	if got := K.Cross(I); !Equals(got, J) {
		t.Errorf("k x i = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	for _, v := range samples {
		u, err := Normalize(v)
		if err != nil {
			t.Fatalf("Normalize(%v): %v", v, err)
		}
		if math.Abs(u.R()-1) > 1e-12 {
			t.Errorf("|Normalize(%v)| = %v", v, u.R())
		}
		if !IsParallel(u, v) || u.Dot(v) <= 0 {
			t.Errorf("Normalize(%v) = %v changed direction", v, u)
		}
	}
	bad := []geom.Vector{
		geom.V(),
		geom.V(1e-9, 0, 0),
		geom.V(math.NaN(), 0, 0),
		geom.V(0, math.Inf(-1), 0),
	}
	for _, v := range bad {
		if _, err := Normalize(v); !errors.Is(err, ErrDegenerate) {
			t.Errorf("Normalize(%v) error = %v, want ErrDegenerate", v, err)
		}
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		a, b geom.Vector
		want float64
	}{
		{I, J, math.Pi / 2},
		{I, I.Scale(7), 0},
		{I, I.Scale(-1), math.Pi},
		{geom.V(0, -1, 0), I, math.Pi / 2},
		{geom.V(1, 1, 0), I, math.Pi / 4},
		{geom.V(), I, 0},
	}
	for _, tc := range tests {
		if got := AngleBetween(tc.a, tc.b).Rad(); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("AngleBetween(%v,%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
	for _, a := range samples {
		for _, b := range samples {
			got := AngleBetween(a, b).Rad()
			if math.IsNaN(got) || got < 0 || got > math.Pi {
				t.Fatalf("AngleBetween(%v,%v) = %v out of range", a, b, got)
			}
			if want := toR3(a).Angle(toR3(b)).Radians(); math.Abs(got-want) > 1e-6 {
				t.Errorf("AngleBetween(%v,%v) = %v, r3 says %v", a, b, got, want)
			}
		}
	}
}

func TestAngleBetweenRoundOff(t *testing.T) {
	// Nearly identical vectors can have a computed cosine just
	// above one.
	a := geom.V(0.1, 0.2, 0.3)
	b := a.Scale(3)
	if got := AngleBetween(a, b).Rad(); math.IsNaN(got) || got > 1e-7 {
		t.Errorf("AngleBetween of parallel vectors = %v", got)
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		a, b geom.Vector
		want float64
	}{
		{I, geom.V(1, 5, 0), 1},
		{I, geom.V(-1, 5, 0), -1},
		{I, J, 1},
		{geom.V(), I, 1},
		{geom.V(0, -150, 0), geom.V(66, -75, 0), 1},
		{geom.V(0, 150, 0), geom.V(66, -75, 0), -1},
	}
	for _, tc := range tests {
		if got := Sign(tc.a, tc.b); got != tc.want {
			t.Errorf("Sign(%v,%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIsParallel(t *testing.T) {
	if !IsParallel(I, I.Scale(-3)) {
		t.Error("i and -3i should be parallel")
	}
	if !IsParallel(I, geom.V(1, 1e-7, 0)) {
		t.Error("near parallel vectors should count as parallel")
	}
	if IsParallel(I, geom.V(1, 1e-3, 0)) {
		t.Error("vectors 1e-3 apart are not parallel")
	}
}

func TestEquals(t *testing.T) {
	a := geom.V(1, 2, 3)
	if !Equals(a, geom.V(1+1e-6, 2-1e-6, 3)) {
		t.Error("vectors within tolerance should be equal")
	}
	if a.Equals(geom.V(1+1e-6, 2-1e-6, 3)) {
		t.Error("geom's tolerance is expected to be tighter than Epsilon")
	}
	if Equals(a, geom.V(1, 2, 3.001)) {
		t.Error("vectors outside tolerance should differ")
	}
}

func TestZeroX(t *testing.T) {
	v := geom.V(1, 2, 3)
	if got := ZeroX(v); !Equals(got, geom.V(0, 2, 3)) {
		t.Errorf("ZeroX = %v", got)
	}
	if v[0] != 1 {
		t.Errorf("ZeroX modified its argument: %v", v)
	}
}
