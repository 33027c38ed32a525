package replay

import (
	"fmt"

	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/simulation"
)

// Ship interpolates the numeric fields of a ship between two ticks; the
// discrete control fields (accel, rotating, cooldown elapsed) are taken
// from "before" since they only change at tick granularity, not smoothly.
// SpecId must match across the pair — a mismatch means the two snapshots
// are not describing the same lineage of actor, which is a programmer
// error.
func Ship(before, after simulation.Ship, alpha float32) simulation.Ship {
	if before.Spec != after.Spec {
		panic("replay: cannot interpolate ships with mismatched SpecId")
	}
	return simulation.Ship{
		Spec:            before.Spec,
		Trans:           Transform(before.Trans, after.Trans, alpha),
		Vel:             geometry.LerpVec2(before.Vel, after.Vel, alpha),
		CooldownElapsed: before.CooldownElapsed,
		Accel:           before.Accel,
		Rotating:        before.Rotating,
		Camera:          Camera(before.Camera, after.Camera, alpha),
	}
}

// Bullet interpolates a bullet's transform and age between two ticks.
func Bullet(before, after simulation.Bullet, alpha float32) simulation.Bullet {
	if before.Spec != after.Spec {
		panic("replay: cannot interpolate bullets with mismatched SpecId")
	}
	return simulation.Bullet{
		Spec:  before.Spec,
		Trans: Transform(before.Trans, after.Trans, alpha),
		Age:   geometry.LerpF32(before.Age, after.Age, alpha),
	}
}

// Shooter returns before unchanged: shooters never move, so there is
// nothing numeric to interpolate beyond SpecId agreement.
func Shooter(before, after simulation.Shooter, alpha float32) simulation.Shooter {
	if before.Spec != after.Spec {
		panic("replay: cannot interpolate shooters with mismatched SpecId")
	}
	return before
}

// Camera interpolates a camera's position and velocity.
func Camera(before, after simulation.Camera, alpha float32) simulation.Camera {
	return simulation.Camera{
		Pos: geometry.LerpVec2(before.Pos, after.Pos, alpha),
		Vel: geometry.LerpVec2(before.Vel, after.Vel, alpha),
	}
}

// Transform interpolates a geometry.Transform componentwise.
func Transform(before, after geometry.Transform, alpha float32) geometry.Transform {
	return geometry.LerpTransform(before, after, alpha)
}

// Actor interpolates two actors of the same variant. Mismatched variants
// are a programmer error: it must never happen for the same id across a
// single-tick gap, since actors only change variant by being removed and a
// different one being spawned under a fresh id.
func Actor(before, after simulation.Actor, alpha float32) simulation.Actor {
	if before.Kind != after.Kind {
		panic(fmt.Sprintf("replay: cannot interpolate actors of different kinds (%v vs %v)", before.Kind, after.Kind))
	}
	switch after.Kind {
	case simulation.ActorKindShip:
		ship := Ship(*before.Ship, *after.Ship, alpha)
		return simulation.Actor{Kind: simulation.ActorKindShip, Ship: &ship}
	case simulation.ActorKindBullet:
		bullet := Bullet(*before.Bullet, *after.Bullet, alpha)
		return simulation.Actor{Kind: simulation.ActorKindBullet, Bullet: &bullet}
	case simulation.ActorKindShooter:
		shooter := Shooter(*before.Shooter, *after.Shooter, alpha)
		return simulation.Actor{Kind: simulation.ActorKindShooter, Shooter: &shooter}
	default:
		panic("replay: interpolating an actor of unknown kind")
	}
}

// Actors interpolates every actor present in "after": if the same id is
// also present in "before" it is interpolated, otherwise the "after" value
// is taken unchanged (it was just spawned this tick, so there is nothing to
// interpolate from). Actors absent from "after" are simply absent from the
// result, matching removal semantics.
func Actors(before, after *simulation.Actors, alpha float32) *simulation.Actors {
	result := simulation.PrepareNew(after)
	after.Each(func(id simulation.ActorId, afterActor simulation.Actor) {
		if beforeActor, ok := before.Get(id); ok {
			result.Insert(id, Actor(beforeActor, afterActor, alpha))
			return
		}
		result.Insert(id, afterActor)
	})
	return result
}

// Game interpolates an entire snapshot: its actor registry and its clock.
func Game(before, after *simulation.Game, alpha float32) *simulation.Game {
	return &simulation.Game{
		Actors: Actors(before.Actors, after.Actors, alpha),
		Time:   geometry.LerpF32(before.Time, after.Time, alpha),
	}
}
