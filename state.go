package frames

import (
	"fmt"

	"github.com/gonum/matrix/mat64"
)

// PosVel is a frame agnostic state: a position in m and a velocity in m/s, both
// expressed at the same instant in the same frame.
type PosVel[T Float] struct {
	Pos Vector3[T] `json:"pos"`
	Vel Vector3[T] `json:"vel"`
}

// NewPosVel returns a new frame agnostic state.
func NewPosVel[T Float](pos, vel Vector3[T]) PosVel[T] {
	return PosVel[T]{pos, vel}
}

// PosVelFromArray returns the state stored as [x, y, z, vx, vy, vz].
func PosVelFromArray[T Float](a [6]T) PosVel[T] {
	return PosVel[T]{Vector3[T]{a[0], a[1], a[2]}, Vector3[T]{a[3], a[4], a[5]}}
}

// PosVelFromVec6 returns the state stored in a 6x1 vector as [x, y, z, vx, vy, vz].
func PosVelFromVec6[T Float](v *mat64.Vector) (PosVel[T], error) {
	if v.Len() != 6 {
		return PosVel[T]{}, fmt.Errorf("state vector must have 6 elements, got %d", v.Len())
	}
	var a [6]T
	for i := range a {
		a[i] = T(v.At(i, 0))
	}
	return PosVelFromArray(a), nil
}

// ToArray returns a copy of this state as [x, y, z, vx, vy, vz].
func (s PosVel[T]) ToArray() [6]T {
	return [6]T{s.Pos[0], s.Pos[1], s.Pos[2], s.Vel[0], s.Vel[1], s.Vel[2]}
}

// Vec6 returns a copy of this state as a 6x1 vector.
func (s PosVel[T]) Vec6() *mat64.Vector {
	a := s.ToArray()
	return mat64.NewVector(6, toFloat64s(a[:]))
}

// EqualWithin returns whether both states are equal within the absolute or relative tolerance.
func (s PosVel[T]) EqualWithin(o PosVel[T], tol float64) bool {
	return s.Pos.EqualWithin(o.Pos, tol) && s.Vel.EqualWithin(o.Vel, tol)
}

func (s PosVel[T]) String() string {
	return fmt.Sprintf("r=%v m v=%v m/s", s.Pos, s.Vel)
}

// Frame markers. Each frame state carries a different one so that a state
// cannot be converted to another frame with a plain Go type conversion.
type (
	j2000Frame struct{}
	lvlhFrame  struct{}
	vvlhFrame  struct{}
)

// J2000 is a state in the Earth centered inertial J2000 frame.
type J2000[T Float] struct {
	PosVel[T]
	_ j2000Frame
}

// LVLH is a state in the Local-Vertical-Local-Horizontal frame of a reference orbit.
// Its axes are radial, along track and orbit normal.
type LVLH[T Float] struct {
	PosVel[T]
	_ lvlhFrame
}

// VVLH is a state in the VVLH frame of a reference orbit, which is a relabeling of
// the LVLH axes (see VVLHFromLVLHVec).
type VVLH[T Float] struct {
	PosVel[T]
	_ vvlhFrame
}

// NewJ2000 returns a J2000 state.
func NewJ2000[T Float](pos, vel Vector3[T]) J2000[T] {
	return J2000[T]{PosVel: PosVel[T]{pos, vel}}
}

// NewLVLH returns an LVLH state.
func NewLVLH[T Float](pos, vel Vector3[T]) LVLH[T] {
	return LVLH[T]{PosVel: PosVel[T]{pos, vel}}
}

// NewVVLH returns a VVLH state.
func NewVVLH[T Float](pos, vel Vector3[T]) VVLH[T] {
	return VVLH[T]{PosVel: PosVel[T]{pos, vel}}
}

// J2000FromPosVel tags s as being expressed in J2000.
func J2000FromPosVel[T Float](s PosVel[T]) J2000[T] {
	return J2000[T]{PosVel: s}
}

// LVLHFromPosVel tags s as being expressed in LVLH.
func LVLHFromPosVel[T Float](s PosVel[T]) LVLH[T] {
	return LVLH[T]{PosVel: s}
}

// VVLHFromPosVel tags s as being expressed in VVLH.
func VVLHFromPosVel[T Float](s PosVel[T]) VVLH[T] {
	return VVLH[T]{PosVel: s}
}

// J2000FromArray returns the J2000 state stored as [x, y, z, vx, vy, vz].
func J2000FromArray[T Float](a [6]T) J2000[T] {
	return J2000FromPosVel(PosVelFromArray(a))
}

// LVLHFromArray returns the LVLH state stored as [x, y, z, vx, vy, vz].
func LVLHFromArray[T Float](a [6]T) LVLH[T] {
	return LVLHFromPosVel(PosVelFromArray(a))
}

// VVLHFromArray returns the VVLH state stored as [x, y, z, vx, vy, vz].
func VVLHFromArray[T Float](a [6]T) VVLH[T] {
	return VVLHFromPosVel(PosVelFromArray(a))
}

func (s J2000[T]) String() string {
	return "J2000 " + s.PosVel.String()
}

func (s LVLH[T]) String() string {
	return "LVLH " + s.PosVel.String()
}

func (s VVLH[T]) String() string {
	return "VVLH " + s.PosVel.String()
}
