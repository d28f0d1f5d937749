package frames

// LVLHFromJ2000 converts a J2000 state into the LVLH frame of the reference state ref.
func LVLHFromJ2000[T Float](s J2000[T], ref J2000[T]) (LVLH[T], error) {
	b, err := NewBasis(ref)
	if err != nil {
		return LVLH[T]{}, err
	}
	return b.LVLH(s), nil
}

// J2000FromLVLH converts a state in the LVLH frame of ref into J2000.
func J2000FromLVLH[T Float](s LVLH[T], ref J2000[T]) (J2000[T], error) {
	b, err := NewBasis(ref)
	if err != nil {
		return J2000[T]{}, err
	}
	return b.J2000(s)
}

// VVLHFromJ2000 converts a J2000 state into the VVLH frame of ref, going through LVLH.
func VVLHFromJ2000[T Float](s J2000[T], ref J2000[T]) (VVLH[T], error) {
	l, err := LVLHFromJ2000(s, ref)
	if err != nil {
		return VVLH[T]{}, err
	}
	return VVLHFromLVLH(l), nil
}

// J2000FromVVLH converts a state in the VVLH frame of ref into J2000, going through LVLH.
func J2000FromVVLH[T Float](s VVLH[T], ref J2000[T]) (J2000[T], error) {
	return J2000FromLVLH(LVLHFromVVLH(s), ref)
}

// VVLHFromLVLH relabels the axes of an LVLH state. Position and velocity are
// mapped independently and no reference state is needed.
func VVLHFromLVLH[T Float](s LVLH[T]) VVLH[T] {
	return NewVVLH(VVLHFromLVLHVec(s.Pos), VVLHFromLVLHVec(s.Vel))
}

// LVLHFromVVLH is the inverse of VVLHFromLVLH.
func LVLHFromVVLH[T Float](s VVLH[T]) LVLH[T] {
	return NewLVLH(LVLHFromVVLHVec(s.Pos), LVLHFromVVLHVec(s.Vel))
}

// LVLHPosFromJ2000 returns the LVLH position of the J2000 position r.
func LVLHPosFromJ2000[T Float](r Vector3[T], ref J2000[T]) (Vector3[T], error) {
	b, err := NewBasis(ref)
	if err != nil {
		return Vector3[T]{}, err
	}
	return b.LVLHPos(r), nil
}

// J2000PosFromLVLH returns the J2000 position of the LVLH position p.
func J2000PosFromLVLH[T Float](p Vector3[T], ref J2000[T]) (Vector3[T], error) {
	b, err := NewBasis(ref)
	if err != nil {
		return Vector3[T]{}, err
	}
	return b.J2000Pos(p)
}

// J2000VelFromLVLH rotates an LVLH velocity (e.g. a Δv) into J2000 axes.
// Unlike J2000FromLVLH, the reference velocity and the frame rotation are not accounted for.
func J2000VelFromLVLH[T Float](vel Vector3[T], ref J2000[T]) (Vector3[T], error) {
	b, err := NewBasis(ref)
	if err != nil {
		return Vector3[T]{}, err
	}
	return b.RotateToJ2000(vel)
}

// J2000VelFromVVLH rotates a VVLH velocity into J2000 axes.
func J2000VelFromVVLH[T Float](vel Vector3[T], ref J2000[T]) (Vector3[T], error) {
	return J2000VelFromLVLH(LVLHFromVVLHVec(vel), ref)
}

// LVLHVelFromJ2000 returns the velocity relative to the reference, vel - v_ref, in LVLH axes.
// There is no transport term: this is the velocity of a deputy located at the reference.
func LVLHVelFromJ2000[T Float](vel Vector3[T], ref J2000[T]) (Vector3[T], error) {
	b, err := NewBasis(ref)
	if err != nil {
		return Vector3[T]{}, err
	}
	return b.RotateToLVLH(vel.Sub(ref.Vel)), nil
}
