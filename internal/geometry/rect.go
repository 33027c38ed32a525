package geometry

// Rect is an axis-aligned rectangle defined by its top-left origin and
// extent, expressed in the local frame of whatever Transform positions it.
type Rect struct {
	Pos Vec2
	W   float32
	H   float32
}

// corners returns the rectangle's four vertices under the supplied
// transform, in (top-left, top-right, bottom-left, bottom-right) order.
func (r Rect) corners(t Transform) (tl, tr, bl, br Vec2) {
	tl = r.Pos.Rotate(t.Rotation).Add(t.Pos)
	tr = Vec2{X: r.Pos.X + r.W, Y: r.Pos.Y}.Rotate(t.Rotation).Add(t.Pos)
	bl = Vec2{X: r.Pos.X, Y: r.Pos.Y + r.H}.Rotate(t.Rotation).Add(t.Pos)
	br = Vec2{X: r.Pos.X + r.W, Y: r.Pos.Y + r.H}.Rotate(t.Rotation).Add(t.Pos)
	return
}

// axes returns the two unique edge-normal axes of a rectangle given its
// corners: the direction along the top edge and the direction along the
// left edge.
func axes(tl, tr, bl Vec2) [2]Vec2 {
	return [2]Vec2{tr.Sub(tl).Norm(), bl.Sub(tl).Norm()}
}

// project returns the [min, max] interval of the four corners projected
// onto axis.
func project(axis Vec2, tl, tr, bl, br Vec2) (min, max float32) {
	pts := [4]Vec2{tl, tr, bl, br}
	min = dot(axis, pts[0])
	max = min
	for _, p := range pts[1:] {
		v := dot(axis, p)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}

func dot(a, b Vec2) float32 { return a.X*b.X + a.Y*b.Y }

func separated(axis Vec2, aTL, aTR, aBL, aBR, bTL, bTR, bBL, bBR Vec2) bool {
	aMin, aMax := project(axis, aTL, aTR, aBL, aBR)
	bMin, bMax := project(axis, bTL, bTR, bBL, bBR)
	return aMax < bMin || bMax < aMin
}

// Overlapping reports whether r under thisTransform intersects other under
// otherTransform, using the separating-axis theorem over the four edge-normal
// axes (two from each rectangle). The two rectangles overlap iff none of the
// four axes separates them.
func (r Rect) Overlapping(thisTransform Transform, other Rect, otherTransform Transform) bool {
	aTL, aTR, aBL, aBR := r.corners(thisTransform)
	bTL, bTR, bBL, bBR := other.corners(otherTransform)

	for _, axis := range axes(aTL, aTR, aBL) {
		if separated(axis, aTL, aTR, aBL, aBR, bTL, bTR, bBL, bBR) {
			return false
		}
	}
	for _, axis := range axes(bTL, bTR, bBL) {
		if separated(axis, aTL, aTR, aBL, aBR, bTL, bTR, bBL, bBR) {
			return false
		}
	}
	return true
}

// BBox is an ordered sequence of Rects; two BBoxes overlap if any pair of
// their constituent rects overlap.
type BBox struct {
	Rects []Rect
}

// Overlapping reports whether b under thisTransform overlaps other under
// otherTransform.
func (b BBox) Overlapping(thisTransform Transform, other BBox, otherTransform Transform) bool {
	for _, a := range b.Rects {
		for _, o := range other.Rects {
			if a.Overlapping(thisTransform, o, otherTransform) {
				return true
			}
		}
	}
	return false
}
