package replay

import (
	"testing"

	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/simulation"
)

func TestLerpVec2Midpoint(t *testing.T) {
	a := geometry.Vec2{X: 0, Y: 0}
	b := geometry.Vec2{X: 10, Y: 10}
	got := geometry.LerpVec2(a, b, 0.5)
	if got.X != 5 || got.Y != 5 {
		t.Fatalf("LerpVec2 midpoint = %+v, want (5,5)", got)
	}
}

func TestShipInterpolationKeepsDiscreteFieldsFromBefore(t *testing.T) {
	before := simulation.Ship{Spec: 1, CooldownElapsed: 0.2, Accel: true, Rotating: 1}
	after := simulation.Ship{Spec: 1, CooldownElapsed: 0.25, Accel: false, Rotating: 2}

	got := Ship(before, after, 0.5)
	if got.CooldownElapsed != before.CooldownElapsed {
		t.Fatalf("CooldownElapsed = %v, want %v (from before)", got.CooldownElapsed, before.CooldownElapsed)
	}
	if got.Accel != before.Accel || got.Rotating != before.Rotating {
		t.Fatalf("discrete fields not taken from before: %+v", got)
	}
}

func TestShipInterpolationPanicsOnSpecMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for mismatched SpecId")
		}
	}()
	Ship(simulation.Ship{Spec: 1}, simulation.Ship{Spec: 2}, 0.5)
}

func TestActorInterpolationPanicsOnVariantMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for mismatched actor variants")
		}
	}()
	before := simulation.Actor{Kind: simulation.ActorKindShip, Ship: &simulation.Ship{}}
	after := simulation.Actor{Kind: simulation.ActorKindBullet, Bullet: &simulation.Bullet{}}
	Actor(before, after, 0.5)
}

func TestActorsInterpolationTakesSpawnedActorsUnchanged(t *testing.T) {
	before := simulation.NewActors()
	after := simulation.PrepareNew(before)
	spawnedID := after.Add(simulation.Actor{Kind: simulation.ActorKindBullet, Bullet: &simulation.Bullet{Age: 0.3}})

	got := Actors(before, after, 0.5)
	actor, ok := got.Get(spawnedID)
	if !ok || actor.Bullet.Age != 0.3 {
		t.Fatalf("newly spawned actor should pass through unchanged, got %+v", actor)
	}
}

func TestActorsInterpolationOmitsRemovedActors(t *testing.T) {
	before := simulation.NewActors()
	id := before.Add(simulation.Actor{Kind: simulation.ActorKindShip, Ship: &simulation.Ship{Spec: 1}})
	after := simulation.PrepareNew(before)

	got := Actors(before, after, 0.5)
	if _, ok := got.Get(id); ok {
		t.Fatalf("actor removed in 'after' should be absent from interpolated result")
	}
}

func TestGameInterpolatesTime(t *testing.T) {
	before := &simulation.Game{Actors: simulation.NewActors(), Time: 1.0}
	after := &simulation.Game{Actors: simulation.NewActors(), Time: 2.0}
	got := Game(before, after, 0.5)
	if got.Time != 1.5 {
		t.Fatalf("Time = %v, want 1.5", got.Time)
	}
}
