package simulation

import (
	"math"

	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/worldspec"
)

// Bullet moves in a straight line at a constant speed set by its spec;
// constant velocity means simple Euler motion suffices, no RK4 needed.
type Bullet struct {
	Spec  worldspec.SpecId
	Trans geometry.Transform
	Age   float32
}

// Advance moves the bullet one Euler step and ages it. It returns alive=false
// once age reaches the spec's lifetime or its position leaves the map,
// signalling Pass A to drop it from the next registry.
func (b Bullet) Advance(gspec *worldspec.GameSpec, next *Actors, in *input.Input, dt float32) (Actor, bool) {
	spec := gspec.GetSpec(b.Spec).AsBullet()

	sin, cos := math.Sincos(float64(b.Trans.Rotation))
	direction := geometry.Vec2{X: float32(cos), Y: -float32(sin)}
	pos := b.Trans.Pos.Add(direction.Scale(spec.Vel * dt))
	age := b.Age + dt

	inMap := pos.X >= 0 && pos.X <= gspec.Map.W && pos.Y >= 0 && pos.Y <= gspec.Map.H
	if age >= spec.Lifetime || !inMap {
		return Actor{}, false
	}

	newBullet := Bullet{Spec: b.Spec, Trans: geometry.Transform{Pos: pos, Rotation: b.Trans.Rotation}, Age: age}
	return Actor{Kind: ActorKindBullet, Bullet: &newBullet}, true
}
