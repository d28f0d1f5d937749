package frames

import (
	"fmt"
	"math"
	"sync"

	"github.com/gonum/matrix/mat64"
)

// inverseε is the tolerance on A·A⁻¹ = I when mat64 reports the basis as ill-conditioned.
const inverseε = 1e-12

var identity3 = mat64.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})

// Basis is the LVLH basis of a reference J2000 state. Build it once with NewBasis
// when many states are converted against the same reference. It is safe for concurrent use.
type Basis[T Float] struct {
	ref     J2000[T]
	a       *mat64.Dense // J2000 -> LVLH
	aΩ      *mat64.Dense // A * skew(ω), the transport term seen from LVLH
	ω       Vector3[T]
	invOnce sync.Once
	aInv    *mat64.Dense // LVLH -> J2000, only built when needed
	invErr  error
}

// NewBasis builds the rotation from J2000 to the LVLH frame of ref.
// The rows of the rotation are the radial (ρ̂), along track (θ̂ = ĥ x ρ̂) and
// orbit normal (ĥ) unit vectors, and the frame rotates at ω = h/|ρ|².
func NewBasis[T Float](ref J2000[T]) (*Basis[T], error) {
	ρNorm, err := NormNotZero(ref.Pos)
	if err != nil {
		return nil, fmt.Errorf("reference position: %w", err)
	}
	ρHat := ref.Pos.Scale(1 / ρNorm)
	h := ref.Pos.Cross(ref.Vel)
	hHat, err := Normalize(h)
	if err != nil {
		return nil, fmt.Errorf("reference angular momentum: %w", err)
	}
	θHat := hHat.Cross(ρHat)
	rows := make([]float64, 0, 9)
	for _, row := range []Vector3[T]{ρHat, θHat, hHat} {
		rows = append(rows, toFloat64s(row[:])...)
	}
	a := mat64.NewDense(3, 3, rows)
	ω := h.Scale(1 / (ρNorm * ρNorm))
	var aΩ mat64.Dense
	aΩ.Mul(a, skew(ω))
	return &Basis[T]{ref: ref, a: a, aΩ: &aΩ, ω: ω}, nil
}

// inverse returns A⁻¹, computing it on first use.
func (b *Basis[T]) inverse() (*mat64.Dense, error) {
	b.invOnce.Do(func() {
		b.aInv, b.invErr = invert33(b.a)
	})
	return b.aInv, b.invErr
}

// invert33 inverts the 3x3 rotation a. mat64 reports some axis aligned rotations as
// ill-conditioned (condition number +Inf), so such a result is kept when it does invert a,
// and the transpose is used when a is orthonormal.
func invert33(a *mat64.Dense) (*mat64.Dense, error) {
	var aInv mat64.Dense
	err := aInv.Inverse(a)
	if err == nil {
		return &aInv, nil
	}
	if r, c := aInv.Dims(); r == 3 && c == 3 && isInverse(a, &aInv) {
		return &aInv, nil
	}
	aT := mat64.DenseCopyOf(a.T())
	if allFinite(a) && math.Abs(math.Abs(mat64.Det(a))-1) < inverseε && isInverse(a, aT) {
		return aT, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInverseSingular, err)
}

func isInverse(a, aInv mat64.Matrix) bool {
	var prod mat64.Dense
	prod.Mul(a, aInv)
	return mat64.EqualApprox(&prod, identity3, inverseε)
}

func allFinite(m mat64.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Reference returns the reference state this basis was built from.
func (b *Basis[T]) Reference() J2000[T] {
	return b.ref
}

// Rotation returns a copy of the J2000 to LVLH rotation matrix.
func (b *Basis[T]) Rotation() *mat64.Dense {
	return mat64.DenseCopyOf(b.a)
}

// Inverse returns a copy of the LVLH to J2000 rotation matrix.
func (b *Basis[T]) Inverse() (*mat64.Dense, error) {
	aInv, err := b.inverse()
	if err != nil {
		return nil, err
	}
	return mat64.DenseCopyOf(aInv), nil
}

// AngularVelocity returns the angular velocity of the LVLH frame in J2000, in rad/s.
func (b *Basis[T]) AngularVelocity() Vector3[T] {
	return b.ω
}

// LVLHPos returns the LVLH position of the J2000 position r.
func (b *Basis[T]) LVLHPos(r Vector3[T]) Vector3[T] {
	return MxV33(b.a, r.Sub(b.ref.Pos))
}

// J2000Pos returns the J2000 position of the LVLH position p.
func (b *Basis[T]) J2000Pos(p Vector3[T]) (Vector3[T], error) {
	aInv, err := b.inverse()
	if err != nil {
		return Vector3[T]{}, err
	}
	return b.ref.Pos.Add(MxV33(aInv, p)), nil
}

// LVLH converts a J2000 state into this LVLH frame. The velocity is the one seen
// by an observer rotating with the frame, hence the ω x ρ term.
func (b *Basis[T]) LVLH(s J2000[T]) LVLH[T] {
	ρRel := s.Pos.Sub(b.ref.Pos)
	vRel := s.Vel.Sub(b.ref.Vel).Sub(MxV33(skew(b.ω), ρRel))
	return NewLVLH(MxV33(b.a, ρRel), MxV33(b.a, vRel))
}

// J2000 converts an LVLH state of this frame into J2000.
func (b *Basis[T]) J2000(s LVLH[T]) (J2000[T], error) {
	aInv, err := b.inverse()
	if err != nil {
		return J2000[T]{}, err
	}
	ρRel := MxV33(aInv, s.Pos)
	vel := b.ref.Vel.Add(MxV33(aInv, s.Vel.Add(MxV33(b.aΩ, ρRel))))
	return NewJ2000(b.ref.Pos.Add(ρRel), vel), nil
}

// VVLH converts a J2000 state into the VVLH frame of this basis.
func (b *Basis[T]) VVLH(s J2000[T]) VVLH[T] {
	return VVLHFromLVLH(b.LVLH(s))
}

// J2000FromVVLH converts a VVLH state of this frame into J2000.
func (b *Basis[T]) J2000FromVVLH(s VVLH[T]) (J2000[T], error) {
	return b.J2000(LVLHFromVVLH(s))
}

// RotateToLVLH rotates a J2000 vector into LVLH axes, without any translation or
// transport term: use this for directions and Δv, not for states.
func (b *Basis[T]) RotateToLVLH(v Vector3[T]) Vector3[T] {
	return MxV33(b.a, v)
}

// RotateToJ2000 rotates an LVLH vector into J2000 axes (see RotateToLVLH).
func (b *Basis[T]) RotateToJ2000(v Vector3[T]) (Vector3[T], error) {
	aInv, err := b.inverse()
	if err != nil {
		return Vector3[T]{}, err
	}
	return MxV33(aInv, v), nil
}
