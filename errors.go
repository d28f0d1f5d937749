package frames

import (
	"errors"
	"fmt"
)

var (
	// ErrNormalizeZero is returned when a vector of zero magnitude would need to be normalized,
	// e.g. a reference state at the origin or with colinear position and velocity.
	ErrNormalizeZero = errors.New("cannot normalize a zero vector")
	// ErrInverseSingular is returned when the frame rotation matrix cannot be inverted.
	ErrInverseSingular = errors.New("try to inverse a singular matrix")
)

// ElementError is returned by OrbitCoefficients.Validate for elements which do not
// describe a bound elliptical orbit.
type ElementError struct {
	Field  string  // Name of the orbital element
	Value  float64 // Offending value
	Reason string
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("invalid orbital element %s=%g: %s", e.Field, e.Value, e.Reason)
}
