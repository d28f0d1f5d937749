// Package ephem converts files of spacecraft states between the J2000, LVLH and VVLH frames.
package ephem

import (
	"fmt"
	"strings"
)

// Frame identifies the frame a file of states is expressed in.
type Frame uint8

const (
	// J2000 is the Earth centered inertial frame.
	J2000 Frame = iota + 1
	// LVLH is the radial, along track, orbit normal frame of the reference.
	LVLH
	// VVLH is the relabeled LVLH frame of the reference.
	VVLH
)

func (f Frame) String() string {
	switch f {
	case J2000:
		return "J2000"
	case LVLH:
		return "LVLH"
	case VVLH:
		return "VVLH"
	}
	return fmt.Sprintf("Frame(%d)", uint8(f))
}

// Relative returns whether this frame is defined with respect to a reference state.
func (f Frame) Relative() bool {
	return f == LVLH || f == VVLH
}

// ParseFrame returns the frame with the provided name, case insensitive.
func ParseFrame(name string) (Frame, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "J2000", "ECI":
		return J2000, nil
	case "LVLH", "RSW":
		return LVLH, nil
	case "VVLH":
		return VVLH, nil
	}
	return 0, fmt.Errorf("unknown frame `%s`", name)
}
