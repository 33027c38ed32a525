package simulation

import (
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/worldspec"
)

// ActorKind tags which variant an Actor carries.
type ActorKind int

const (
	ActorKindShip ActorKind = iota
	ActorKindBullet
	ActorKindShooter
)

// Actor is a tagged variant of {Ship, Bullet, Shooter}. Exactly one of
// Ship/Bullet/Shooter is populated, matching Kind.
type Actor struct {
	Kind    ActorKind
	Ship    *Ship
	Bullet  *Bullet
	Shooter *Shooter
}

// IsShip reports whether the actor is a Ship.
func (a Actor) IsShip() bool { return a.Kind == ActorKindShip }

// IsBullet reports whether the actor is a Bullet.
func (a Actor) IsBullet() bool { return a.Kind == ActorKindBullet }

// IsShooter reports whether the actor is a Shooter.
func (a Actor) IsShooter() bool { return a.Kind == ActorKindShooter }

// Advance dispatches to the actor's own per-variant advance step. The
// returned bool is false only when the actor should be dropped from the
// next registry (bullets expiring).
func (a Actor) Advance(gspec *worldspec.GameSpec, next *Actors, in *input.Input, dt float32) (Actor, bool) {
	switch a.Kind {
	case ActorKindShip:
		return a.Ship.Advance(gspec, next, in, dt)
	case ActorKindBullet:
		return a.Bullet.Advance(gspec, next, in, dt)
	case ActorKindShooter:
		return a.Shooter.Advance(gspec, next, in, dt)
	default:
		panic("simulation: advance called on an actor with an unknown kind")
	}
}

// Interact is Pass B of the per-tick update. It is currently an identity
// placeholder: whether bullet/ship collisions should destroy actors here is
// an open design question left to a future implementer, but the two-pass
// shape must be preserved so that work has somewhere to go.
func (a Actor) Interact(gspec *worldspec.GameSpec, next *Actors) Actor {
	return a
}
