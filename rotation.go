package frames

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// PQW2J2000 returns the rotation from the perifocal frame to J2000 for the
// provided RAAN Ω, inclination i and argument of perigee ω (all in radians).
// This is the transpose of the 3-1-3 Euler rotation R3(ω)R1(i)R3(Ω).
func PQW2J2000[T Float](Ω, i, ω T) *mat64.Dense {
	sΩ, cΩ := math.Sincos(float64(Ω))
	si, ci := math.Sincos(float64(i))
	sω, cω := math.Sincos(float64(ω))
	return mat64.NewDense(3, 3, []float64{
		cΩ*cω - sΩ*sω*ci, -cΩ*sω - sΩ*cω*ci, sΩ * si,
		sΩ*cω + cΩ*sω*ci, -sΩ*sω + cΩ*cω*ci, -cΩ * si,
		sω * si, cω * si, ci,
	})
}
