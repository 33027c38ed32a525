package networking

import (
	"net"
	"testing"
	"time"
)

// TestHandshakeSequenceNumbers exercises a full client/server round trip on
// loopback: one datagram each way must leave both sides' Conn at
// local.seq=1, local.ack=1.
func TestHandshakeSequenceNumbers(t *testing.T) {
	server, err := NewServer("127.0.0.1:0", nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer server.Close()

	client, err := NewClient("127.0.0.1:0", server.LocalAddr().String(), false, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.Send([]byte("1234")); err != nil {
		t.Fatalf("client.Send: %v", err)
	}

	peer, body, err := server.Recv()
	if err != nil {
		t.Fatalf("server.Recv: %v", err)
	}
	if string(body) != "1234" {
		t.Fatalf("server.Recv body = %q, want %q", body, "1234")
	}

	if err := server.Send(peer, []byte("4321")); err != nil {
		t.Fatalf("server.Send: %v", err)
	}

	reply, err := client.Recv()
	if err != nil {
		t.Fatalf("client.Recv: %v", err)
	}
	if string(reply) != "4321" {
		t.Fatalf("client.Recv body = %q, want %q", reply, "4321")
	}

	if client.Conn().LocalSeq() != 1 || client.Conn().LocalAck() != 1 {
		t.Fatalf("client conn = {seq:%d ack:%d}, want {1,1}", client.Conn().LocalSeq(), client.Conn().LocalAck())
	}
	serverConn, ok := server.ConnFor(peer)
	if !ok {
		t.Fatalf("server has no conn for peer %v", peer)
	}
	if serverConn.LocalSeq() != 1 || serverConn.LocalAck() != 1 {
		t.Fatalf("server conn = {seq:%d ack:%d}, want {1,1}", serverConn.LocalSeq(), serverConn.LocalAck())
	}
}

func TestServerSendToUnknownPeerFails(t *testing.T) {
	server, err := NewServer("127.0.0.1:0", nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer server.Close()

	addr := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 1}
	if err := server.Send(addr, []byte("x")); err != ErrNotConnected {
		t.Fatalf("Send to unknown peer = %v, want ErrNotConnected", err)
	}
}

// TestServerSendRemovesPeerAfterTimeout stands in for the ten-second
// real-world wait of the timeout scenario: a Conn pre-aged past ConnTimeout
// is installed directly, and Send on it must report Closed and evict the
// peer from the table.
func TestServerSendRemovesPeerAfterTimeout(t *testing.T) {
	server, err := NewServer("127.0.0.1:0", nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer server.Close()

	peer := &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 2}
	stale := NewConn(time.Now().Add(-ConnTimeout - time.Second))
	server.mu.Lock()
	server.clients[peer.String()] = stale
	server.mu.Unlock()

	if err := server.Send(peer, []byte("x")); err != ErrClosed {
		t.Fatalf("Send on stale peer = %v, want ErrClosed", err)
	}
	if server.ActiveConn(peer) {
		t.Fatal("expected peer to be removed from the table after Closed")
	}
}
