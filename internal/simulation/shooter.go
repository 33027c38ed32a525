package simulation

import (
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/worldspec"
)

// Shooter is a stationary turret: it never moves, only fires on a cadence.
// Whether that is permanent or a placeholder for future movement is an open
// question left unresolved upstream.
type Shooter struct {
	Spec          worldspec.SpecId
	TimeSinceFire float32
}

// Advance fires a bullet once TimeSinceFire exceeds the spec's firing rate,
// then resets the timer. Shooters never self-destruct.
func (s Shooter) Advance(gspec *worldspec.GameSpec, next *Actors, in *input.Input, dt float32) (Actor, bool) {
	spec := gspec.GetSpec(s.Spec).AsShooter()

	tsf := s.TimeSinceFire + dt
	if tsf > spec.FiringRate {
		tsf = 0
		next.Add(Actor{Kind: ActorKindBullet, Bullet: &Bullet{Spec: spec.BulletSpec, Trans: spec.Trans}})
	}

	newShooter := Shooter{Spec: s.Spec, TimeSinceFire: tsf}
	return Actor{Kind: ActorKindShooter, Shooter: &newShooter}, true
}
