// Package server bridges the UDP transport (internal/networking) to an
// in-process match (internal/match): decoded inputs flow in, encoded
// PlayerGame snapshots flow out, one per connected peer. Grounded on
// original_source/dogfights/main.rs's UDP-aware Server: its worker
// goroutine + shared message queue become a direct decode-and-forward
// loop, and its broadcast_game's per-client send + dead-client removal
// become a per-peer forwarder fed by the match's own subscriber channel.
package server

import (
	"bytes"
	"net"
	"sync"

	"github.com/dogfights/broker/internal/codec"
	"github.com/dogfights/broker/internal/input"
	"github.com/dogfights/broker/internal/logging"
	"github.com/dogfights/broker/internal/match"
	"github.com/dogfights/broker/internal/networking"
	"github.com/dogfights/broker/internal/simulation"
)

// Bridge owns the UDP socket and the per-peer forwarder goroutines that
// keep each connected peer's match subscription flowing out over the
// wire.
type Bridge struct {
	sock  *networking.Server
	match match.Handle
	log   *logging.Logger

	mu      sync.Mutex
	players map[string]simulation.ActorId
}

// New binds a UDP socket at addr and wires it to handle.
func New(addr string, handle match.Handle, log *logging.Logger) (*Bridge, error) {
	if log == nil {
		log = logging.L()
	}
	sock, err := networking.NewServer(addr, log)
	if err != nil {
		return nil, err
	}
	return &Bridge{
		sock:    sock,
		match:   handle,
		log:     log,
		players: make(map[string]simulation.ActorId),
	}, nil
}

// LocalAddr reports the bound socket address.
func (b *Bridge) LocalAddr() net.Addr { return b.sock.LocalAddr() }

// PeerCount reports how many remote peers are currently joined, for the
// bot population reconciler to subtract from its target.
func (b *Bridge) PeerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.players)
}

// Close shuts down the underlying socket.
func (b *Bridge) Close() error { return b.sock.Close() }

// Serve blocks, decoding inbound input datagrams and forwarding them to
// the match, joining a peer on its first datagram. It returns when Recv
// fails (socket closed).
func (b *Bridge) Serve() error {
	for {
		addr, body, err := b.sock.Recv()
		if err != nil {
			return err
		}
		in, err := input.Decode(bytes.NewReader(body))
		if err != nil {
			b.log.Warn("bridge: dropping undecodable input", logging.Error(err), logging.String("peer", addr.String()))
			continue
		}
		player := b.playerFor(addr)
		if err := b.match.Send(player, in); err != nil {
			b.log.Info("bridge: player disconnected", logging.Int("player", int(player)))
		}
	}
}

// playerFor returns the ActorId joined for addr, joining it and starting
// its outbound forwarder on first contact.
func (b *Bridge) playerFor(addr net.Addr) simulation.ActorId {
	key := addr.String()
	b.mu.Lock()
	player, ok := b.players[key]
	b.mu.Unlock()
	if ok {
		return player
	}

	player, snapshots := b.match.Join()
	b.mu.Lock()
	b.players[key] = player
	b.mu.Unlock()
	go b.forward(addr, player, snapshots)
	b.log.Info("bridge: peer joined", logging.String("peer", key), logging.Int("player", int(player)))
	return player
}

// forward encodes every snapshot the match sends this player and writes
// it to addr, stopping when the subscriber channel closes (the match
// reaped this player) or the UDP peer goes silent past ConnTimeout.
func (b *Bridge) forward(addr net.Addr, player simulation.ActorId, snapshots <-chan *simulation.Game) {
	key := addr.String()
	defer func() {
		b.mu.Lock()
		delete(b.players, key)
		b.mu.Unlock()
	}()

	for game := range snapshots {
		var buf bytes.Buffer
		pg := &simulation.PlayerGame{Player: player, Game: game}
		if err := codec.EncodePlayerGame(&buf, pg); err != nil {
			b.log.Error("bridge: encode failed", logging.Error(err))
			continue
		}
		if err := b.sock.Send(addr, buf.Bytes()); err != nil {
			b.log.Info("bridge: send failed, leaving match", logging.Error(err), logging.String("peer", key))
			b.match.Leave(player)
			return
		}
	}
}
