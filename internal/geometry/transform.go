package geometry

// Transform pairs a planar position with a rotation in radians.
type Transform struct {
	Pos      Vec2
	Rotation float32
}

// Identity returns the zero transform: origin position, zero rotation.
func Identity() Transform { return Transform{} }

// WithPos returns a copy of t with its position replaced.
func (t Transform) WithPos(pos Vec2) Transform {
	return Transform{Pos: pos, Rotation: t.Rotation}
}

// Translate returns t shifted by delta.
func (t Transform) Translate(delta Vec2) Transform {
	return Transform{Pos: t.Pos.Add(delta), Rotation: t.Rotation}
}

// Adjust expresses t relative to other by subtracting its position and
// rotation, matching the source's notion of one transform "adjusted" against
// another for nested/offset placement.
func (t Transform) Adjust(other Transform) Transform {
	return Transform{Pos: t.Pos.Sub(other.Pos), Rotation: t.Rotation - other.Rotation}
}

// LerpTransform returns the componentwise linear interpolation of two
// transforms at fraction alpha.
func LerpTransform(a, b Transform, alpha float32) Transform {
	return Transform{
		Pos:      LerpVec2(a.Pos, b.Pos, alpha),
		Rotation: LerpF32(a.Rotation, b.Rotation, alpha),
	}
}
