// Package armik computes, in closed form, the joint angles of a four
// axis arm that place its wrist at a goal position with a commanded
// twist of the arm about the shoulder to wrist line.
//
// The shoulder sits at the origin. The joints are, in order from the
// shoulder:
//
//	J0 = shoulder pitch, rotate around the X axis
//	J1 = shoulder roll, rotate around the (pitched) Z axis
//	J2 = upper arm twist, rotate around the upper arm segment of length l1
//	J3 = elbow flex, rotate around the (twisted) Z axis, lower arm length l2
//
// In the "all angles zero" pose both segments point along +X. A
// positive roll swings the upper arm from +X towards -Y and positive
// elbow flex bends the lower arm the same way, so with pitch zero the
// arm hangs in the XY plane below the shoulder. Chaining the joints,
// the wrist lies at
//
//	Rx(J0) Rz(-J1) Rx(J2) (l1 X + Rz(-J3) l2 X)
//
// where Rx and Rz are right handed rotations.
package armik

import (
	"errors"
	"fmt"
	"math"

	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/armik/rotation"
	"zappem.net/pub/kinematics/armik/vector"
)

// Err* are the errors exported by this package.
var (
	ErrInvalidGeometry = errors.New("invalid arm geometry")
	ErrDegenerateGoal  = errors.New("goal has no direction from the shoulder")
)

// Geometry holds the fixed dimensions of an arm. It is immutable once
// constructed and safe to share between goroutines.
type Geometry struct {
	l1, l2, minDist float64
}

// NewGeometry validates and returns the geometry of an arm with an
// upper arm of length l1, a lower arm of length l2 and a wrist that
// is never asked to come closer than minDist to the shoulder.
func NewGeometry(l1, l2, minDist float64) (Geometry, error) {
	for _, x := range []float64{l1, l2, minDist} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Geometry{}, fmt.Errorf("%w: non-finite length %v", ErrInvalidGeometry, x)
		}
	}
	switch {
	case l1 <= 0:
		return Geometry{}, fmt.Errorf("%w: upper arm length %v must be positive", ErrInvalidGeometry, l1)
	case l2 <= 0:
		return Geometry{}, fmt.Errorf("%w: lower arm length %v must be positive", ErrInvalidGeometry, l2)
	case minDist < 0:
		return Geometry{}, fmt.Errorf("%w: minimum distance %v is negative", ErrInvalidGeometry, minDist)
	case minDist > l1+l2:
		return Geometry{}, fmt.Errorf("%w: minimum distance %v exceeds reach %v", ErrInvalidGeometry, minDist, l1+l2)
	}
	return Geometry{l1: l1, l2: l2, minDist: minDist}, nil
}

// Upper returns the upper arm length, l1.
func (g Geometry) Upper() float64 { return g.l1 }

// Lower returns the lower arm length, l2.
func (g Geometry) Lower() float64 { return g.l2 }

// MinDist returns the configured minimum shoulder to wrist distance.
func (g Geometry) MinDist() float64 { return g.minDist }

// Reach returns the shoulder to wrist distance of the straight arm.
func (g Geometry) Reach() float64 { return g.l1 + g.l2 }

// InnerReach returns the smallest shoulder to wrist distance a goal
// is clamped to. An arm with unequal segments cannot fold its wrist
// any closer than |l1-l2|, whatever MinDist says.
func (g Geometry) InnerReach() float64 {
	return math.Max(g.minDist, math.Abs(g.l1-g.l2))
}

func (g Geometry) String() string {
	return fmt.Sprintf("arm{l1=%g l2=%g min=%g}", g.l1, g.l2, g.minDist)
}

// Joints holds a solution of the inverse kinematics.
type Joints struct {
	ShoulderPitch geom.Angle // theta0
	ShoulderRoll  geom.Angle // theta1
	ArmTwist      geom.Angle // theta2
	ElbowFlex     geom.Angle // theta3
}

// Slice returns the joint angles in J0..J3 order.
func (j Joints) Slice() []geom.Angle {
	return []geom.Angle{j.ShoulderPitch, j.ShoulderRoll, j.ArmTwist, j.ElbowFlex}
}

func (j Joints) String() string {
	return fmt.Sprintf("θ0: %vº, θ1: %vº, θ2: %vº, θ3: %vº", j.ShoulderPitch, j.ShoulderRoll, j.ArmTwist, j.ElbowFlex)
}

// Solution is the result of Solve: the joints, the wrist position
// they reach and whether that differs from the goal.
type Solution struct {
	Joints
	Target  geom.Vector
	Clamped bool
}

// Clamp returns the wrist position the arm will actually be solved
// for. Goals closer than InnerReach or further than Reach are moved
// along their own direction onto that boundary. Clamping is not an
// error; only a goal with no direction (zero or non-finite) is.
func (g Geometry) Clamp(goal geom.Vector) (geom.Vector, error) {
	c, err := g.clamp(goal)
	return c.target, err
}

type clamped struct {
	target, unit geom.Vector
	// d is the distance of target from the shoulder. A clamped
	// distance is exactly the boundary it was clamped to.
	d     float64
	moved bool
}

func (g Geometry) clamp(goal geom.Vector) (clamped, error) {
	unit, err := vector.Normalize(goal)
	if err != nil {
		return clamped{}, fmt.Errorf("%w: %w", ErrDegenerateGoal, err)
	}
	d := goal.R()
	if in := g.InnerReach(); d < in {
		return clamped{target: unit.Scale(in), unit: unit, d: in, moved: true}, nil
	}
	if out := g.Reach(); d > out {
		return clamped{target: unit.Scale(out), unit: unit, d: out, moved: true}, nil
	}
	return clamped{target: goal.Scale(1), unit: unit, d: d}, nil
}

// pitch returns the signed shoulder pitch that swings -Y, about X,
// onto the YZ projection of p.
func pitch(p geom.Vector) geom.Angle {
	proj := vector.ZeroX(p)
	down := geom.Y(-1)
	sign := 1.0
	if proj[2] != 0 {
		sign = vector.Sign(down.Cross(proj), vector.I)
	}
	return vector.AngleBetween(proj, down) * geom.Angle(sign)
}

// Inverse computes the joint angles that place the wrist at goal
// with the bend of the arm rotated by twist about the shoulder to
// wrist line. Goals out of reach are clamped first (see Clamp).
//
// The solution is unique: of the two mirror image elbow poses, twist
// selects one.
func (g Geometry) Inverse(twist geom.Angle, goal geom.Vector) (Joints, error) {
	s, err := g.Solve(twist, goal)
	return s.Joints, err
}

// Solve is Inverse that also reports the clamped goal.
func (g Geometry) Solve(twist geom.Angle, goal geom.Vector) (Solution, error) {
	c, err := g.clamp(goal)
	if err != nil {
		return Solution{}, err
	}
	s := Solution{Target: c.target, Clamped: c.moved}
	if c.d >= g.Reach() {
		s.Joints = g.extended(twist, c.target, c.unit)
	} else {
		s.Joints = g.bent(twist, c.target, c.unit, c.d)
	}
	return s, nil
}

// extended solves the straight arm. With no bend there is nothing for
// the twist to act against, so it passes through to J2.
func (g Geometry) extended(twist geom.Angle, target, unit geom.Vector) Joints {
	return Joints{
		ShoulderPitch: pitch(target),
		ShoulderRoll:  vector.AngleBetween(unit, vector.I),
		ArmTwist:      twist,
		ElbowFlex:     0,
	}
}

// bent solves the arm with the wrist at distance d < l1+l2 from the
// shoulder, where the shoulder, elbow and wrist form a triangle.
func (g Geometry) bent(twist geom.Angle, target, unit geom.Vector, d float64) Joints {
	l1, l2 := g.l1, g.l2
	var j Joints

	// Law of cosines for the interior elbow angle; flex is its
	// supplement.
	c := (d*d - l1*l1 - l2*l2) / (-2 * l1 * l2)
	j.ElbowFlex = geom.Radians(math.Pi - math.Acos(math.Max(-1, math.Min(1, c))))

	// Heron gives the triangle area, and so the height of the elbow
	// above the shoulder-wrist line (v). The rest of the upper arm
	// lies along the line (u), l1^2 = |u|^2 + |v|^2. The along-line
	// offset is signed: it is negative when the triangle is obtuse at
	// the shoulder and the elbow sits behind it.
	s := (l1 + l2 + d) / 2
	area2 := math.Max(0, s*(s-l1)*(s-l2)*(s-d))
	height := math.Sqrt(4 * area2 / (d * d))
	u := unit.Scale((l1*l1 + d*d - l2*l2) / (2 * d))

	// Untwisted bend direction: the reference axis projected onto
	// the plane perpendicular to the goal.
	ref := vector.I
	if vector.IsParallel(unit, vector.I) {
		ref = vector.J
	}
	// ref is at least Epsilon off parallel to unit, so this cannot
	// fail.
	vHat, _ := vector.Normalize(unit.Cross(ref).Cross(unit))
	e0 := u.AddS(vHat, height)

	// The elbow on the far side of the goal flips the roll, and with
	// it the pitch.
	rollSign := vector.Sign(vector.ZeroX(target), e0)

	bend := rotation.FromAxisAngle(unit, twist).XV(vHat)
	elbow := u.AddS(bend, height)

	j.ShoulderRoll = vector.AngleBetween(elbow, vector.I) * geom.Angle(rollSign)

	j.ShoulderPitch = pitch(elbow)
	if rollSign < 0 {
		j.ShoulderPitch += math.Pi
	}

	// Normal to the plane holding the shoulder-wrist line and the
	// elbow. Since elbow = u + height*bend with u along the line,
	// target x elbow is a positive multiple of unit x bend. The latter
	// stays defined when a folded arm puts the elbow on the line.
	perp, _ := vector.Normalize(unit.Cross(bend))

	// J1 axis after pitch and roll. With the elbow on the pitch axis
	// the cross product vanishes and the axis follows from J0 alone.
	axis, err := vector.Normalize(elbow.Cross(vector.I))
	if err != nil {
		axis = geom.V(0, -j.ShoulderPitch.S(), j.ShoulderPitch.C())
	} else {
		axis = axis.Scale(rollSign)
	}

	// axis and perp are both perpendicular to the upper arm, so their
	// cross product is parallel to it and orients the twist.
	if !vector.Equals(axis, perp) {
		twistSign := vector.Sign(axis.Cross(perp), elbow)
		j.ArmTwist = vector.AngleBetween(axis, perp) * geom.Angle(twistSign)
	}
	return j
}
