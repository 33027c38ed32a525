package replay

import (
	"bytes"
	"testing"

	"github.com/dogfights/broker/internal/simulation"
	"github.com/dogfights/broker/internal/worldspec"
)

func TestDumpZstdRoundTrip(t *testing.T) {
	spec, err := worldspec.Default()
	if err != nil {
		t.Fatalf("worldspec.Default(): %v", err)
	}
	r := NewRing(4, simulation.NewGame())
	r.MutateFront(func(g *simulation.Game) { g.AddShip(spec) })
	r.Push(simulation.NewGame())

	var buf bytes.Buffer
	if err := DumpZstd(&buf, r); err != nil {
		t.Fatalf("DumpZstd: %v", err)
	}

	games, err := LoadZstd(&buf)
	if err != nil {
		t.Fatalf("LoadZstd: %v", err)
	}
	if len(games) != r.Len() {
		t.Fatalf("loaded %d games, want %d", len(games), r.Len())
	}
	oldest := games[0]
	if oldest.Actors.Len() != 1 {
		t.Fatalf("oldest snapshot actors = %d, want 1", oldest.Actors.Len())
	}
	newest := games[len(games)-1]
	if newest.Actors.Len() != 0 {
		t.Fatalf("newest snapshot actors = %d, want 0", newest.Actors.Len())
	}
}
