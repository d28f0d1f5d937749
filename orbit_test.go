package frames

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestMu(t *testing.T) {
	if Mu[float64]() != 3.986004418e14 {
		t.Fatal("incorrect double precision μ")
	}
	if Mu[float32]() != float32(3.9860045e14) {
		t.Fatal("incorrect single precision μ")
	}
	if Earth.GM() != Mu[float64]() {
		t.Fatal("Earth GM must be the double precision μ")
	}
}

func TestOrbitCircularEquatorial(t *testing.T) {
	a := 7000e3
	oc := OrbitCoefficients[float64]{A: a, E: 0, I: 0, Omega: 0.3, W: 0.4, Theta: 0}
	s := J2000FromOrbit(oc)
	if !floats.EqualWithinRel(s.Pos.Norm(), a, 1e-12) {
		t.Fatalf("|r|=%f != a", s.Pos.Norm())
	}
	sλ, cλ := math.Sincos(0.7)
	if !s.Pos.EqualWithin(Vector3[float64]{a * cλ, a * sλ, 0}, 1e-6) {
		t.Fatalf("position not along Ω+ω: %v", s.Pos)
	}
	if !floats.EqualWithinRel(s.Vel.Norm(), math.Sqrt(Mu[float64]()/a), 1e-12) {
		t.Fatalf("|v|=%f != sqrt(μ/a)", s.Vel.Norm())
	}
	if !floats.EqualWithinAbs(s.Pos.Dot(s.Vel)/(s.Pos.Norm()*s.Vel.Norm()), 0, 1e-12) {
		t.Fatal("velocity not perpendicular to position")
	}
	if !floats.EqualWithinAbs(s.Pos.Cross(s.Vel)[2]/(s.Pos.Norm()*s.Vel.Norm()), 1, 1e-12) {
		t.Fatal("orbit must be prograde in the equatorial plane")
	}
	// Single precision
	s32 := J2000FromOrbit(OrbitCoefficients[float32]{A: 7000e3, Omega: 0.3, W: 0.4})
	if !floats.EqualWithinRel(float64(s32.Pos.Norm()), a, 1e-6) {
		t.Fatalf("float32 |r|=%f != a", s32.Pos.Norm())
	}
}

func TestOrbitCOE2RV(t *testing.T) {
	// From Vallado example 2-6, in meters.
	p, e := 11067.790e3, 0.83285
	oc := OrbitCoefficients[float64]{
		A:     p / (1 - e*e),
		E:     e,
		I:     Deg2rad(87.87),
		Omega: Deg2rad(227.89),
		W:     Deg2rad(53.38),
		Theta: Deg2rad(92.335),
	}
	s := J2000FromOrbit(oc)
	R := []float64{6525.368103709379e3, 6861.531814548294e3, 6449.118636407358e3}
	V := []float64{4.902278620687254e3, 5.533139558121602e3, -1.9757104281719946e3}
	if !vectorsEqual(R, s.Pos[:], 1e-6) {
		t.Fatalf("R vector incorrectly computed:\n%+v\n%+v", R, s.Pos)
	}
	if !vectorsEqual(V, s.Vel[:], 1e-6) {
		t.Fatalf("V vector incorrectly computed:\n%+v\n%+v", V, s.Vel)
	}
	if !floats.EqualWithinRel(oc.SemiParameter(), p, 1e-12) {
		t.Fatal("incorrect semi parameter")
	}
	// Specific angular momentum magnitude is sqrt(μp).
	if !floats.EqualWithinRel(s.Pos.Cross(s.Vel).Norm(), math.Sqrt(Mu[float64]()*p), 1e-10) {
		t.Fatal("incorrect angular momentum")
	}
}

func TestOrbitRV2COE(t *testing.T) {
	for _, oc := range []OrbitCoefficients[float64]{
		{A: 36126.64283e3, E: 0.83280, I: Deg2rad(87.874925), Omega: Deg2rad(227.891253), W: Deg2rad(53.378089), Theta: Deg2rad(92.335027)},
		{A: 7000e3, E: 0.1, I: Deg2rad(30), Omega: Deg2rad(45), W: Deg2rad(300), Theta: Deg2rad(200)},
		{A: 42164e3, E: 0.001, I: Deg2rad(5), Omega: Deg2rad(10), W: Deg2rad(20), Theta: Deg2rad(30)},
	} {
		got, err := OrbitFromJ2000(J2000FromOrbit(oc))
		if err != nil {
			t.Fatal(err)
		}
		g, e := got.ToArray(), oc.ToArray()
		if !vectorsEqual(g[:], e[:], 1e-7) {
			t.Fatalf("elements differ\ngot: %s\nexp: %s", got, oc)
		}
	}
	// Circular inclined: the argument of latitude is returned as the true anomaly.
	circ := OrbitCoefficients[float64]{A: 7000e3, I: Deg2rad(51.6), Omega: Deg2rad(10), W: Deg2rad(20), Theta: Deg2rad(30)}
	got, err := OrbitFromJ2000(J2000FromOrbit(circ))
	if err != nil {
		t.Fatal(err)
	}
	if got.W != 0 || !floats.EqualWithinAbs(got.Theta, Deg2rad(50), 1e-9) || !floats.EqualWithinAbs(got.Omega, Deg2rad(10), 1e-9) {
		t.Fatalf("incorrect circular elements %s", got)
	}
	if _, err := OrbitFromJ2000(NewJ2000(Vector3[float64]{7000e3, 0, 0}, Vector3[float64]{1, 0, 0})); !errors.Is(err, ErrNormalizeZero) {
		t.Fatalf("expected ErrNormalizeZero, got %v", err)
	}
}

func TestOrbitHelpers(t *testing.T) {
	oc := OrbitCoefficients[float64]{A: 10000e3, E: 0.2}
	if !floats.EqualWithinRel(oc.Apoapsis(), 12000e3, 1e-15) || !floats.EqualWithinRel(oc.Periapsis(), 8000e3, 1e-15) {
		t.Fatal("incorrect apsides")
	}
	if !floats.EqualWithinRel(oc.SemiParameter(), 9600e3, 1e-15) {
		t.Fatal("incorrect semi parameter")
	}
	if !floats.EqualWithinRel(oc.Energy(), -Mu[float64]()/20000e3, 1e-15) {
		t.Fatal("incorrect energy")
	}
	geo := OrbitCoefficients[float64]{A: 42164.1696e3}
	if diff := geo.Period() - 86164*time.Second; diff > time.Second || diff < -time.Second {
		t.Fatalf("GEO period should be a sidereal day, got %s", geo.Period())
	}
	if OrbitCoefficientsFromArray(oc.ToArray()) != oc {
		t.Fatal("array round trip failed")
	}
}

func TestOrbitValidate(t *testing.T) {
	valid := OrbitCoefficients[float64]{A: 7000e3, E: 0.1}
	if err := valid.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		oc    OrbitCoefficients[float64]
		field string
	}{
		{OrbitCoefficients[float64]{A: -7000e3}, "a"},
		{OrbitCoefficients[float64]{A: 7000e3, E: 1}, "e"},
		{OrbitCoefficients[float64]{A: 7000e3, E: -0.1}, "e"},
		{OrbitCoefficients[float64]{A: 7000e3, I: math.NaN()}, "i"},
		{OrbitCoefficients[float64]{A: math.Inf(1)}, "a"},
	} {
		err := tt.oc.Validate()
		var eErr *ElementError
		if !errors.As(err, &eErr) {
			t.Fatalf("expected an ElementError for %s, got %v", tt.oc, err)
		}
		if eErr.Field != tt.field {
			t.Fatalf("expected error on %s, got %s", tt.field, eErr)
		}
	}
	// Not validated: hyperbolic elements silently give NaN.
	s := J2000FromOrbit(OrbitCoefficients[float64]{A: 7000e3, E: 1.5})
	if !math.IsNaN(s.Pos[0]) {
		t.Fatal("expected NaN position for hyperbolic elements")
	}
}
