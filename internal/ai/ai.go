// Package ai defines the driver contract used by non-human players: a
// strategy that observes a PlayerGame snapshot and produces the next
// Input. Grounded on the original ai crate's Ai trait and its sole
// concrete strategy, Follower.
package ai

import (
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/simulation"
)

// Driver produces control input from the latest observed game state.
// Strategies beyond Follower are out of scope; the interface exists so the
// client driver loop (internal/client) never depends on a concrete AI.
type Driver interface {
	Move(game *simulation.PlayerGame) input.Input
}

// Follower is a no-op strategy: it never steers, accelerates, or fires. It
// exists to exercise the AI-driven code paths (join, recv, send) without
// committing to real combat behavior, matching the original's stub.
type Follower struct {
	Following simulation.ActorId
}

// NewFollower returns a Follower tracking the given actor. The tracked id
// is retained for parity with the original constructor but does not yet
// affect Move's output.
func NewFollower(following simulation.ActorId) Follower {
	return Follower{Following: following}
}

// Move always returns the zero Input.
func (f Follower) Move(game *simulation.PlayerGame) input.Input {
	return input.Input{}
}
