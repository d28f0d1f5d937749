package frames

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/gonum/floats"
)

const (
	// Gravitational parameters of the Earth in m^3/s^2, per scalar precision.
	muFloat32 float32 = 3.9860045e14
	muFloat64 float64 = 3.986004418e14

	eccentricityε = 1e-11
	equatorialε   = 1e-12
)

// Mu returns the gravitational parameter of the Earth (m^3/s^2) for the scalar type T.
// Single precision uses its own rounded constant.
func Mu[T Float]() T {
	var zero T
	if reflect.TypeOf(zero).Kind() == reflect.Float32 {
		return T(muFloat32)
	}
	return T(muFloat64)
}

// OrbitCoefficients are the classical Keplerian elements of an orbit about the Earth.
type OrbitCoefficients[T Float] struct {
	A     T `json:"a"`     // Semi-major axis in m
	E     T `json:"e"`     // Eccentricity
	I     T `json:"i"`     // Inclination in rad
	Omega T `json:"omega"` // Right ascension of the ascending node in rad
	W     T `json:"w"`     // Argument of perigee in rad
	Theta T `json:"theta"` // True anomaly in rad
}

// OrbitCoefficientsFromArray returns the elements stored as [a, e, i, omega, w, theta].
func OrbitCoefficientsFromArray[T Float](a [6]T) OrbitCoefficients[T] {
	return OrbitCoefficients[T]{a[0], a[1], a[2], a[3], a[4], a[5]}
}

// ToArray returns the elements as [a, e, i, omega, w, theta].
func (o OrbitCoefficients[T]) ToArray() [6]T {
	return [6]T{o.A, o.E, o.I, o.Omega, o.W, o.Theta}
}

// SemiParameter returns the semi parameter (semi latus rectum) in m.
func (o OrbitCoefficients[T]) SemiParameter() T {
	return o.A * (1 - o.E*o.E)
}

// Apoapsis returns the apoapsis radius.
func (o OrbitCoefficients[T]) Apoapsis() T {
	return o.A * (1 + o.E)
}

// Periapsis returns the periapsis radius.
func (o OrbitCoefficients[T]) Periapsis() T {
	return o.A * (1 - o.E)
}

// Energy returns the specific mechanical energy ξ in J/kg.
func (o OrbitCoefficients[T]) Energy() T {
	return -Mu[T]() / (2 * o.A)
}

// Period returns the period of this orbit.
func (o OrbitCoefficients[T]) Period() time.Duration {
	a := float64(o.A)
	seconds := 2 * math.Pi * math.Sqrt(a*a*a/float64(Mu[T]()))
	return time.Duration(seconds * float64(time.Second))
}

// Validate returns an *ElementError if these elements are not those of a bound
// elliptical orbit. J2000FromOrbit does not call it.
func (o OrbitCoefficients[T]) Validate() error {
	names := [6]string{"a", "e", "i", "omega", "w", "theta"}
	for idx, val := range o.ToArray() {
		if v := float64(val); math.IsNaN(v) || math.IsInf(v, 0) {
			return &ElementError{names[idx], v, "not a finite number"}
		}
	}
	if o.A <= 0 {
		return &ElementError{"a", float64(o.A), "semi-major axis must be positive"}
	}
	if o.E < 0 {
		return &ElementError{"e", float64(o.E), "eccentricity cannot be negative"}
	}
	if o.E >= 1 {
		return &ElementError{"e", float64(o.E), "parabolic and hyperbolic orbits are not supported"}
	}
	return nil
}

// String implements the stringer interface, with angles in degrees.
func (o OrbitCoefficients[T]) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", float64(o.A), float64(o.E),
		Rad2deg(float64(o.I)), Rad2deg(float64(o.Omega)), Rad2deg(float64(o.W)), Rad2deg(float64(o.Theta)))
}

// J2000FromOrbit returns the J2000 state of the orbit at its true anomaly.
// WARNING: the elements are not validated. Hyperbolic or otherwise invalid elements
// silently produce NaN or meaningless states, use Validate first if unsure.
func J2000FromOrbit[T Float](o OrbitCoefficients[T]) J2000[T] {
	μ := Mu[T]()
	e := o.E
	h := T(math.Sqrt(float64(μ * o.A * (1 - e*e))))
	sinθ64, cosθ64 := math.Sincos(float64(o.Theta))
	sinθ, cosθ := T(sinθ64), T(cosθ64)
	r := (h * h / μ) / (1 + e*cosθ)
	v := μ / h
	A := PQW2J2000(o.Omega, o.I, o.W)
	pos := MxV33(A, Vector3[T]{r * cosθ, r * sinθ, 0})
	vel := MxV33(A, Vector3[T]{v * (-sinθ), v * (e + cosθ), 0})
	return NewJ2000(pos, vel)
}

// OrbitFromJ2000 returns the orbital elements of a J2000 state (from Vallado's RV2COE).
// For circular orbits the argument of perigee is set to zero and the true anomaly is the
// argument of latitude; for equatorial orbits the RAAN is set to zero.
func OrbitFromJ2000[T Float](s J2000[T]) (OrbitCoefficients[T], error) {
	μ := float64(Mu[T]())
	R := vec64(s.Pos)
	V := vec64(s.Vel)
	r, err := NormNotZero(R)
	if err != nil {
		return OrbitCoefficients[T]{}, fmt.Errorf("position: %w", err)
	}
	hVec := R.Cross(V)
	h, err := NormNotZero(hVec)
	if err != nil {
		return OrbitCoefficients[T]{}, fmt.Errorf("angular momentum: %w", err)
	}
	v := V.Norm()
	ξ := (v*v)/2 - μ/r
	a := -μ / (2 * ξ)
	eVec := R.Scale((v*v - μ/r) / μ).Sub(V.Scale(R.Dot(V) / μ))
	e := eVec.Norm()
	i := math.Acos(clampCos(hVec[2] / h))
	n := Vector3[float64]{0, 0, 1}.Cross(hVec)
	nNorm := n.Norm()

	circular := e < eccentricityε
	equatorial := floats.EqualWithinAbs(nNorm/h, 0, equatorialε)
	var Ω, ω, ν float64
	if !equatorial {
		Ω = math.Acos(clampCos(n[0] / nNorm))
		if n[1] < 0 {
			Ω = 2*math.Pi - Ω
		}
	}
	switch {
	case !circular && !equatorial:
		ω = math.Acos(clampCos(n.Dot(eVec) / (nNorm * e)))
		if eVec[2] < 0 {
			ω = 2*math.Pi - ω
		}
	case !circular:
		// Longitude of periapsis
		ω = math.Atan2(eVec[1], eVec[0])
		if hVec[2] < 0 {
			ω = -ω
		}
	}
	switch {
	case !circular:
		ν = math.Acos(clampCos(eVec.Dot(R) / (e * r)))
		if R.Dot(V) < 0 {
			ν = 2*math.Pi - ν
		}
	case !equatorial:
		// Argument of latitude
		ν = math.Acos(clampCos(n.Dot(R) / (nNorm * r)))
		if R[2] < 0 {
			ν = 2*math.Pi - ν
		}
	default:
		// True longitude
		ν = math.Atan2(R[1], R[0])
		if hVec[2] < 0 {
			ν = -ν
		}
	}
	return OrbitCoefficients[T]{T(a), T(e), T(i), T(wrapAngle(Ω)), T(wrapAngle(ω)), T(wrapAngle(ν))}, nil
}

func vec64[T Float](v Vector3[T]) Vector3[float64] {
	return Vector3[float64]{float64(v[0]), float64(v[1]), float64(v[2])}
}

// clampCos fixes rounding errors which would make math.Acos return NaN.
func clampCos(c float64) float64 {
	if math.Abs(c) > 1 && floats.EqualWithinAbs(math.Abs(c), 1, 1e-12) {
		return math.Copysign(1, c)
	}
	return c
}

// wrapAngle returns the angle within [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
