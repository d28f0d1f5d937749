package frames

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180
)

// Float is the set of scalar types every state and transform is generic over.
type Float interface {
	~float32 | ~float64
}

// Vector3 is a three component vector. Its unit depends on the context: m for
// positions, m/s for velocities and rad/s for angular rates.
type Vector3[T Float] [3]T

// NewVector3 returns the vector [x, y, z].
func NewVector3[T Float](x, y, z T) Vector3[T] {
	return Vector3[T]{x, y, z}
}

// Vector3FromArray copies the provided array into a vector.
func Vector3FromArray[T Float](a [3]T) Vector3[T] {
	return Vector3[T](a)
}

// ToArray returns a copy of this vector as a plain array.
func (v Vector3[T]) ToArray() [3]T {
	return [3]T(v)
}

// Array returns a view of this vector as a plain array: no copy is made, so
// writes through either are visible through the other.
func (v *Vector3[T]) Array() *[3]T {
	return (*[3]T)(v)
}

// Add returns v+u.
func (v Vector3[T]) Add(u Vector3[T]) Vector3[T] {
	return Vector3[T]{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v-u.
func (v Vector3[T]) Sub(u Vector3[T]) Vector3[T] {
	return Vector3[T]{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns s*v.
func (v Vector3[T]) Scale(s T) Vector3[T] {
	return Vector3[T]{s * v[0], s * v[1], s * v[2]}
}

// Neg returns -v.
func (v Vector3[T]) Neg() Vector3[T] {
	return Vector3[T]{-v[0], -v[1], -v[2]}
}

// Dot performs the inner product.
func (v Vector3[T]) Dot(u Vector3[T]) T {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross performs the cross product v x u.
func (v Vector3[T]) Cross(u Vector3[T]) Vector3[T] {
	return Vector3[T]{v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0]}
}

// Norm returns the Euclidean norm of the vector.
func (v Vector3[T]) Norm() T {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return T(math.Sqrt(x*x + y*y + z*z))
}

// EqualWithin returns whether both vectors are equal component wise, within
// an absolute or relative tolerance.
func (v Vector3[T]) EqualWithin(u Vector3[T], tol float64) bool {
	return floats.EqualApprox(toFloat64s(v[:]), toFloat64s(u[:]), tol)
}

// NormNotZero returns the norm of v, or ErrNormalizeZero if that norm is exactly zero.
func NormNotZero[T Float](v Vector3[T]) (T, error) {
	n := v.Norm()
	if n == 0 {
		return 0, ErrNormalizeZero
	}
	return n, nil
}

// Normalize returns the unit vector of v.
func Normalize[T Float](v Vector3[T]) (Vector3[T], error) {
	n, err := NormNotZero(v)
	if err != nil {
		return Vector3[T]{}, err
	}
	return v.Scale(1 / n), nil
}

// LVLHFromVVLHVec relabels a VVLH vector into LVLH axes.
func LVLHFromVVLHVec[T Float](v Vector3[T]) Vector3[T] {
	return Vector3[T]{-v[2], v[0], -v[1]}
}

// VVLHFromLVLHVec relabels an LVLH vector into VVLH axes. This is the exact
// inverse of LVLHFromVVLHVec.
func VVLHFromLVLHVec[T Float](v Vector3[T]) Vector3[T] {
	return Vector3[T]{v[1], -v[2], -v[0]}
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}

func toFloat64s[T Float](s []T) []float64 {
	o := make([]float64, len(s))
	for i, val := range s {
		o[i] = float64(val)
	}
	return o
}

// vecToMat64 copies v into a new 3x1 mat64.Vector.
func vecToMat64[T Float](v Vector3[T]) *mat64.Vector {
	return mat64.NewVector(3, toFloat64s(v[:]))
}

// mat64ToVec copies the first three elements of a mat64.Vector.
func mat64ToVec[T Float](v *mat64.Vector) Vector3[T] {
	return Vector3[T]{T(v.At(0, 0)), T(v.At(1, 0)), T(v.At(2, 0))}
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33[T Float](m mat64.Matrix, v Vector3[T]) Vector3[T] {
	var rVec mat64.Vector
	rVec.MulVec(m, vecToMat64(v))
	return mat64ToVec[T](&rVec)
}

// skew returns the cross product matrix of w, i.e. skew(w)*v = w x v.
func skew[T Float](w Vector3[T]) *mat64.Dense {
	x, y, z := float64(w[0]), float64(w[1]), float64(w[2])
	return mat64.NewDense(3, 3, []float64{0, -z, y,
		z, 0, -x,
		-y, x, 0})
}
