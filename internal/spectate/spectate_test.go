package spectate

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket/websockettest"

	"github.com/dogfights/broker/internal/codec"
	"github.com/dogfights/broker/internal/match"
	"github.com/dogfights/broker/internal/worldspec"
)

func TestHandlerStreamsSnapshots(t *testing.T) {
	spec, err := worldspec.Default()
	if err != nil {
		t.Fatalf("worldspec.Default(): %v", err)
	}
	m := match.New(spec, 4, 0.05, nil)
	m.Handle().Join()

	srv := httptest.NewServer(NewHandler(m.Handle(), nil))
	defer srv.Close()

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websockettest.DialIgnoringPongs(wsURL, http.Header{})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	m.Tick()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, body, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	game, err := codec.DecodeGame(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeGame: %v", err)
	}
	if game.Actors.Len() != 1 {
		t.Fatalf("live actors = %d, want 1", game.Actors.Len())
	}
}
