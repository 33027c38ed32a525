package ai

import (
	"testing"

	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/simulation"
)

func TestFollowerMoveIsAlwaysZeroInput(t *testing.T) {
	f := NewFollower(3)
	got := f.Move(&simulation.PlayerGame{Player: 3, Game: simulation.NewGame()})
	if got != (input.Input{}) {
		t.Fatalf("Move() = %+v, want the zero Input", got)
	}
}

func TestParseFollowerWithoutActorId(t *testing.T) {
	d, err := Parse("follower")
	if err != nil {
		t.Fatalf("Parse(follower): %v", err)
	}
	f, ok := d.(Follower)
	if !ok {
		t.Fatalf("Parse(follower) = %T, want Follower", d)
	}
	if f.Following != 0 {
		t.Fatalf("Following = %d, want 0", f.Following)
	}
}

func TestParseFollowerWithActorId(t *testing.T) {
	d, err := Parse("follower:7")
	if err != nil {
		t.Fatalf("Parse(follower:7): %v", err)
	}
	f := d.(Follower)
	if f.Following != 7 {
		t.Fatalf("Following = %d, want 7", f.Following)
	}
}

func TestParseRejectsUnknownStrategy(t *testing.T) {
	if _, err := Parse("hunter"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestParseRejectsNonNumericActorId(t *testing.T) {
	if _, err := Parse("follower:abc"); err == nil {
		t.Fatal("expected error for non-numeric actor id")
	}
}
