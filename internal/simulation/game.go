package simulation

import (
	"sort"

	"github.com/dogfights/broker/internal/geometry"
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/worldspec"
)

// Game is the full simulation state at one instant: the actor registry and
// the simulation clock.
type Game struct {
	Actors *Actors
	Time   float32
}

// NewGame returns an empty game with its clock at zero.
func NewGame() *Game {
	return &Game{Actors: NewActors()}
}

// AddShip spawns a new ship at the center of a fresh viewport and returns
// its assigned id. Joining players always start here; nothing else in the
// core design ever places a ship.
func (g *Game) AddShip(gspec *worldspec.GameSpec) ActorId {
	ship := Ship{
		Spec:  gspec.ShipSpecId,
		Trans: geometry.Transform{Pos: geometry.Vec2{X: ScreenWidth / 2, Y: ScreenHeight / 2}},
	}
	return g.Actors.Add(Actor{Kind: ActorKindShip, Ship: &ship})
}

// Advance is the pure two-pass per-tick update: Pass A (advance) walks the
// previous registry and produces a new one of survivors plus newly spawned
// actors; Pass B (interact) walks that result and produces the final
// registry for the tick. Calling Advance twice with identical arguments
// must yield equal Games.
func Advance(g *Game, gspec *worldspec.GameSpec, inputs []input.PlayerInput, dt float32) *Game {
	advanced := PrepareNew(g.Actors)
	for _, id := range sortedIds(g.Actors) {
		actor, _ := g.Actors.Get(id)
		var in *input.Input
		if found, ok := input.Lookup(inputs, id); ok {
			in = &found
		}
		if newActor, alive := actor.Advance(gspec, advanced, in, dt); alive {
			advanced.Insert(id, newActor)
		}
	}

	interacted := PrepareNew(advanced)
	for _, id := range sortedIds(advanced) {
		actor, _ := advanced.Get(id)
		interacted.Insert(id, actor.Interact(gspec, interacted))
	}

	return &Game{Actors: interacted, Time: g.Time + dt}
}

// sortedIds returns a's live ids in ascending order, so walking a registry
// to advance or interact never depends on Go's randomized map iteration
// order: repeated ids allocated against a shared "next" registry (e.g. a
// ship's newly fired bullet) must land on the same id every time Advance is
// called with identical arguments.
func sortedIds(a *Actors) []ActorId {
	ids := a.Keys()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PlayerGame addresses a Game snapshot to a specific player, so renderers
// and AIs can locate their own ship and camera.
type PlayerGame struct {
	Player ActorId
	Game   *Game
}

// Advance steps the underlying Game, preserving the player id.
func (pg *PlayerGame) Advance(gspec *worldspec.GameSpec, inputs []input.PlayerInput, dt float32) *PlayerGame {
	return &PlayerGame{Player: pg.Player, Game: Advance(pg.Game, gspec, inputs, dt)}
}
