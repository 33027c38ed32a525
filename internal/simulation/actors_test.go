package simulation

import "testing"

func TestActorsAddAndGet(t *testing.T) {
	actors := NewActors()
	id := actors.Add(Actor{Kind: ActorKindShooter, Shooter: &Shooter{}})
	got, ok := actors.Get(id)
	if !ok || !got.IsShooter() {
		t.Fatalf("Get(%d) = %+v, %v; want a shooter actor", id, got, ok)
	}
	if actors.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", actors.Len())
	}
}

func TestActorsPrepareNewCarriesCounter(t *testing.T) {
	old := NewActors()
	old.Add(Actor{Kind: ActorKindShooter, Shooter: &Shooter{}})
	old.Add(Actor{Kind: ActorKindShooter, Shooter: &Shooter{}})

	next := PrepareNew(old)
	if next.Len() != 0 {
		t.Fatalf("PrepareNew did not start empty: len=%d", next.Len())
	}
	id := next.Add(Actor{Kind: ActorKindShooter, Shooter: &Shooter{}})
	if id != old.Count() {
		t.Fatalf("new id %d did not continue from old counter %d", id, old.Count())
	}
}

func TestActorsInsertAdvancesCounter(t *testing.T) {
	actors := NewActors()
	actors.Insert(5, Actor{Kind: ActorKindShooter, Shooter: &Shooter{}})
	if actors.Count() != 6 {
		t.Fatalf("Count() = %d, want 6 after inserting id 5", actors.Count())
	}
}

func TestActorsRemove(t *testing.T) {
	actors := NewActors()
	id := actors.Add(Actor{Kind: ActorKindShooter, Shooter: &Shooter{}})
	actors.Remove(id)
	if _, ok := actors.Get(id); ok {
		t.Fatalf("actor %d still present after Remove", id)
	}
}
