package codec

import (
	"bytes"
	"testing"

	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/simulation"
)

// TestPlayerGameRoundTrip is the codec round-trip end-to-end scenario: a
// PlayerGame with one Ship survives an encode/decode cycle unchanged.
func TestPlayerGameRoundTrip(t *testing.T) {
	ship := simulation.Ship{
		Spec:            1,
		Trans:           geometry.Transform{Pos: geometry.Vec2{X: 400, Y: 300.005}},
		Vel:             geometry.Vec2{X: 0, Y: 0.9999},
		CooldownElapsed: 100000.01,
		Accel:           false,
		Rotating:        input.RotatingStill,
		Camera:          simulation.Camera{Pos: geometry.Vec2{X: 0, Y: 0.011999}, Vel: geometry.Vec2{X: 0, Y: 1.19988}},
	}
	actors := simulation.NewActors()
	actors.Insert(0, simulation.Actor{Kind: simulation.ActorKindShip, Ship: &ship})
	original := &simulation.PlayerGame{Player: 0, Game: &simulation.Game{Actors: actors}}

	var buf bytes.Buffer
	if err := EncodePlayerGame(&buf, original); err != nil {
		t.Fatalf("EncodePlayerGame: %v", err)
	}

	got, err := DecodePlayerGame(&buf)
	if err != nil {
		t.Fatalf("DecodePlayerGame: %v", err)
	}

	if got.Player != original.Player {
		t.Fatalf("Player = %d, want %d", got.Player, original.Player)
	}
	if got.Game.Time != original.Game.Time {
		t.Fatalf("Time = %v, want %v", got.Game.Time, original.Game.Time)
	}
	gotActor, ok := got.Game.Actors.Get(0)
	if !ok || !gotActor.IsShip() {
		t.Fatalf("decoded actor 0 is not a ship: %+v", gotActor)
	}
	if *gotActor.Ship != ship {
		t.Fatalf("decoded ship = %+v, want %+v", *gotActor.Ship, ship)
	}
}

func TestDecodeActorRejectsUnknownKindTag(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(99)
	if _, err := DecodeActor(&buf); err == nil {
		t.Fatal("expected error decoding an unknown actor kind tag")
	}
}

func TestDecodeShipRejectsInvalidRotatingTag(t *testing.T) {
	var buf bytes.Buffer
	ship := simulation.Ship{Spec: 1}
	if err := EncodeShip(&buf, ship); err != nil {
		t.Fatalf("EncodeShip: %v", err)
	}
	encoded := buf.Bytes()
	// Rotating tag sits right after SpecId(4) + Transform(12) + Vel(8) +
	// CooldownElapsed(4) + Accel(1).
	rotatingOffset := 4 + 12 + 8 + 4 + 1
	encoded[rotatingOffset] = 7
	if _, err := DecodeShip(bytes.NewReader(encoded)); err == nil {
		t.Fatal("expected error decoding an invalid rotating tag")
	}
}

func TestActorsRoundTripPreservesCounterBeyondLiveIds(t *testing.T) {
	actors := simulation.NewActors()
	id := actors.Add(simulation.Actor{Kind: simulation.ActorKindShooter, Shooter: &simulation.Shooter{Spec: 2}})
	actors.Remove(id)

	var buf bytes.Buffer
	if err := EncodeActors(&buf, actors); err != nil {
		t.Fatalf("EncodeActors: %v", err)
	}
	got, err := DecodeActors(&buf)
	if err != nil {
		t.Fatalf("DecodeActors: %v", err)
	}
	if got.Count() != actors.Count() {
		t.Fatalf("Count() = %d, want %d", got.Count(), actors.Count())
	}
	if got.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", got.Len())
	}
}
