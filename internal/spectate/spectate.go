// Package spectate serves a read-only websocket feed of the authoritative
// match's latest Game snapshot. Unlike the UDP client/server path it carries
// no per-player input channel, no ack tracking, and no reconnection
// handling: a spectator that drops a frame simply gets the next one.
// Grounded on the teacher's gorilla/websocket upgrade-and-stream handler,
// re-homed from the teacher's primary transport onto this one-way broadcast
// role.
package spectate

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dogfights/broker/internal/codec"
	"github.com/dogfights/broker/internal/logging"
	"github.com/dogfights/broker/internal/match"
)

// pushInterval is how often the latest snapshot is pushed to each connected
// spectator; spectators do not drive the tick, they only observe it.
const pushInterval = 100 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Handler upgrades incoming HTTP requests to websocket connections and
// streams encoded Game snapshots pulled from a match's replay ring.
type Handler struct {
	handle match.Handle
	log    *logging.Logger
}

// NewHandler returns a Handler that spectates the match behind handle.
func NewHandler(handle match.Handle, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.L()
	}
	return &Handler{handle: handle, log: log}
}

// ServeHTTP implements http.Handler, upgrading the connection and streaming
// snapshots until the peer disconnects or a write fails.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("spectate: upgrade failed", logging.Error(err))
		return
	}
	defer conn.Close()

	// A spectator never sends anything meaningful; drain and discard reads
	// so the control frames (close, ping) are still processed by gorilla's
	// read loop, same as the teacher's own idle-reader pattern.
	closed := make(chan struct{})
	var once sync.Once
	conn.SetCloseHandler(func(int, string) error {
		once.Do(func() { close(closed) })
		return nil
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				once.Do(func() { close(closed) })
				return
			}
		}
	}()

	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			game := h.handle.Snapshot()
			if game == nil {
				continue
			}
			mw, err := conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				return
			}
			if err := codec.EncodeGame(mw, game); err != nil {
				h.log.Warn("spectate: encode failed", logging.Error(err))
				mw.Close()
				return
			}
			if err := mw.Close(); err != nil {
				return
			}
		}
	}
}
