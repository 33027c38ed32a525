// Package match is the authoritative game loop shared by every entry point
// (local, dedicated server, remote): a fixed-timestep tick over the replay
// ring, an input queue fed by whatever transport is in front of it, and a
// per-subscriber broadcast fan-out. Grounded on the original server's
// Server/ServerHandle split (games ring + clients map + cmds channel),
// reimplemented with Go channels in place of mpsc.
package match

import (
	"context"
	"errors"
	"time"

	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/logging"
	"github.com/dogfights/broker/internal/replay"
	"github.com/dogfights/broker/internal/simulation"
	"github.com/dogfights/broker/internal/worldspec"
)

// ErrDisconnected is returned by Send when the player's input could not be
// queued because the cmds queue is full; the player is then removed, the
// same as a dead client.
var ErrDisconnected = errors.New("match: player is disconnected")

// cmdsQueueSize bounds the in-flight input queue. A human/AI driver sends at
// most once per observed input change, so this comfortably absorbs bursts
// between ticks without blocking callers.
const cmdsQueueSize = 4096

// clientQueueSize bounds each subscriber's outbound snapshot channel. Four
// ticks' worth of backlog is allowed before a subscriber is considered slow
// and reaped, matching the "a slow subscriber cannot block others" design
// note.
const clientQueueSize = 4

// Handle is a cheaply cloneable façade onto a running Match: every method
// is safe to call concurrently from many goroutines (driver loops, network
// workers).
type Handle struct {
	m *Match
}

// Join spawns a new ship in the live game and returns its id plus a channel
// that receives every subsequent Game snapshot.
func (h Handle) Join() (simulation.ActorId, <-chan *simulation.Game) {
	return h.m.join()
}

// Send queues in for player to be applied on the next tick.
func (h Handle) Send(player simulation.ActorId, in input.Input) error {
	return h.m.send(player, in)
}

// Leave removes player from the match immediately, without waiting for a
// failed send to discover it.
func (h Handle) Leave(player simulation.ActorId) {
	h.m.removePlayer(player)
}

// Spec exposes the world catalog the match was constructed with.
func (h Handle) Spec() *worldspec.GameSpec { return h.m.spec }

// Snapshot returns the most recently ticked Game, for read-only observers
// (e.g. a spectator feed) that have no player to address and no need to
// subscribe.
func (h Handle) Snapshot() *simulation.Game { return h.m.ring.Front() }

// Match owns the authoritative game state: a bounded ring of past Games, the
// player->channel subscriber table, and the pending input queue. Run the
// tick loop with Run; obtain a Handle for callers with Handle.
type Match struct {
	spec *worldspec.GameSpec
	ring *replay.Ring

	mu      chanMutex
	clients map[simulation.ActorId]chan *simulation.Game

	cmds chan input.PlayerInput

	dt  float32
	log *logging.Logger
}

// chanMutex is a minimal mutual-exclusion primitive built from a buffered
// channel, so Match can be copied by value into a Handle without sharing a
// sync.Mutex directly (copying a locked sync.Mutex is undefined); the
// channel itself is a reference type, so clones still serialize on the same
// lock.
type chanMutex chan struct{}

func newChanMutex() chanMutex {
	c := make(chanMutex, 1)
	c <- struct{}{}
	return c
}

func (c chanMutex) Lock()   { <-c }
func (c chanMutex) Unlock() { c <- struct{}{} }

// New constructs a Match seeded with an empty game and ready to tick.
func New(spec *worldspec.GameSpec, ringCapacity int, dt float32, log *logging.Logger) *Match {
	if log == nil {
		log = logging.L()
	}
	return &Match{
		spec:    spec,
		ring:    replay.NewRing(ringCapacity, simulation.NewGame()),
		mu:      newChanMutex(),
		clients: make(map[simulation.ActorId]chan *simulation.Game),
		cmds:    make(chan input.PlayerInput, cmdsQueueSize),
		dt:      dt,
		log:     log,
	}
}

// Handle returns a cloneable façade for driver loops and network workers.
func (m *Match) Handle() Handle { return Handle{m: m} }

// Ring exposes the snapshot history, e.g. for a spectator feed or debug dump.
func (m *Match) Ring() *replay.Ring { return m.ring }

func (m *Match) join() (simulation.ActorId, <-chan *simulation.Game) {
	var player simulation.ActorId
	m.ring.MutateFront(func(g *simulation.Game) {
		player = g.AddShip(m.spec)
	})
	ch := make(chan *simulation.Game, clientQueueSize)
	m.mu.Lock()
	m.clients[player] = ch
	m.mu.Unlock()
	m.log.Info("player joined", logging.Int("player", int(player)))
	return player, ch
}

func (m *Match) send(player simulation.ActorId, in input.Input) error {
	select {
	case m.cmds <- input.PlayerInput{Player: player, Input: in}:
		return nil
	default:
		m.removePlayer(player)
		return ErrDisconnected
	}
}

func (m *Match) removePlayer(player simulation.ActorId) {
	m.mu.Lock()
	ch, ok := m.clients[player]
	delete(m.clients, player)
	m.mu.Unlock()
	if ok {
		close(ch)
	}
	m.ring.MutateFront(func(g *simulation.Game) { g.Actors.Remove(player) })
	m.log.Info("player left", logging.Int("player", int(player)))
}

func (m *Match) drainInputs() []input.PlayerInput {
	var inputs []input.PlayerInput
	for {
		select {
		case in := <-m.cmds:
			inputs = append(inputs, in)
		default:
			return inputs
		}
	}
}

// Tick advances the match by one fixed step: drain queued inputs, advance
// the front game, push the result, and broadcast it to every subscriber.
func (m *Match) Tick() {
	inputs := m.drainInputs()
	next := simulation.Advance(m.ring.Front(), m.spec, inputs, m.dt)
	m.ring.Push(next)
	m.broadcast(next)
}

func (m *Match) broadcast(game *simulation.Game) {
	m.mu.Lock()
	targets := make(map[simulation.ActorId]chan *simulation.Game, len(m.clients))
	for id, ch := range m.clients {
		targets[id] = ch
	}
	m.mu.Unlock()

	var dead []simulation.ActorId
	for id, ch := range targets {
		select {
		case ch <- game:
		default:
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		m.removePlayer(id)
	}
}

// Run drives the match at targetHz until ctx is cancelled, using the
// teacher's own fixed-step loop driver.
func (m *Match) Run(ctx context.Context, targetHz float64) *simulation.Loop {
	loop := simulation.NewLoop(targetHz, func(time.Duration) { m.Tick() })
	loop.Start(ctx)
	return loop
}
