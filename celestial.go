package frames

// CelestialObject defines the central body of the reference orbits.
type CelestialObject struct {
	Name   string
	Radius float64 // Equatorial radius in m
}

// Earth is home.
var Earth = CelestialObject{"Earth", 6378136.3}

// GM returns μ of this object in m^3/s^2.
func (c CelestialObject) GM() float64 {
	return Mu[float64]()
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Below returns whether the position r (in m) is below the surface of this object.
func (c CelestialObject) Below(r Vector3[float64]) bool {
	return r.Norm() < c.Radius
}
