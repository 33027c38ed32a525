package simulation

import (
	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/worldspec"
)

// Camera tracks a single ship so its owning client can render a scrolled
// viewport without the ship itself having to sit at screen center.
type Camera struct {
	Pos geometry.Vec2
	Vel geometry.Vec2
}

func (c Camera) left() float32   { return c.Pos.X }
func (c Camera) right() float32  { return c.Pos.X + ScreenWidth }
func (c Camera) top() float32    { return c.Pos.Y }
func (c Camera) bottom() float32 { return c.Pos.Y + ScreenHeight }

// Advance pushes the camera by the ship's velocity scaled by the camera
// accel factor, then snaps it so the ship never drifts past its configured
// padding from the viewport edge, and finally clamps the viewport to stay
// entirely inside the map.
func (c Camera) Advance(spec worldspec.CameraSpec, shipVel geometry.Vec2, shipTrans geometry.Transform, m worldspec.Map, dt float32) Camera {
	next := Camera{Vel: shipVel.Scale(spec.Accel)}
	next.Pos = c.Pos.Add(next.Vel.Scale(dt))

	if shipTrans.Pos.X < next.left()+spec.HPad {
		next.Pos.X = shipTrans.Pos.X - spec.HPad
	} else if shipTrans.Pos.X > next.right()-spec.HPad {
		next.Pos.X = shipTrans.Pos.X - ScreenWidth + spec.HPad
	}
	if shipTrans.Pos.Y < next.top()+spec.VPad {
		next.Pos.Y = shipTrans.Pos.Y - spec.VPad
	} else if shipTrans.Pos.Y > next.bottom()-spec.VPad {
		next.Pos.Y = shipTrans.Pos.Y - ScreenHeight + spec.VPad
	}

	next.Pos = m.BoundRect(next.Pos, ScreenWidth, ScreenHeight)
	return next
}
