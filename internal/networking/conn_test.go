package networking

import (
	"net"
	"testing"
	"time"
)

func TestTickleAdvancesMonotonically(t *testing.T) {
	now := time.Now()
	c := NewConn(now)

	c.Tickle(Local{Seq: 5, Ack: 2}, now.Add(time.Second))
	if c.LocalAck() != 5 {
		t.Fatalf("LocalAck() = %d, want 5", c.LocalAck())
	}
	if c.RemoteAck() != 2 {
		t.Fatalf("RemoteAck() = %d, want 2", c.RemoteAck())
	}

	// A stale, lower seq/ack must not move the counters backwards.
	c.Tickle(Local{Seq: 3, Ack: 1}, now.Add(2*time.Second))
	if c.LocalAck() != 5 {
		t.Fatalf("LocalAck() regressed to %d after stale tickle", c.LocalAck())
	}
	if c.RemoteAck() != 2 {
		t.Fatalf("RemoteAck() regressed to %d after stale tickle", c.RemoteAck())
	}

	c.Tickle(Local{Seq: 9, Ack: 4}, now.Add(3*time.Second))
	if c.LocalAck() != 9 || c.RemoteAck() != 4 {
		t.Fatalf("Tickle did not advance to new high-water mark: ack=%d remoteAck=%d", c.LocalAck(), c.RemoteAck())
	}
}

func TestEncodeAndSendIncrementsLocalSeq(t *testing.T) {
	server, client := udpPipe(t)
	defer server.Close()
	defer client.Close()

	now := time.Now()
	conn := NewConn(now)
	if err := EncodeAndSend(conn, client, server.LocalAddr(), MsgNormal, []byte("hi"), now); err != nil {
		t.Fatalf("EncodeAndSend: %v", err)
	}
	if conn.LocalSeq() != 1 {
		t.Fatalf("LocalSeq() = %d, want 1", conn.LocalSeq())
	}
}

func TestEncodeAndSendFailsAfterConnTimeout(t *testing.T) {
	server, client := udpPipe(t)
	defer server.Close()
	defer client.Close()

	start := time.Now()
	conn := NewConn(start)
	err := EncodeAndSend(conn, client, server.LocalAddr(), MsgNormal, nil, start.Add(ConnTimeout+time.Second))
	if err != ErrClosed {
		t.Fatalf("EncodeAndSend after timeout = %v, want ErrClosed", err)
	}
}

func TestDecodeAndTickleDropsBadMagic(t *testing.T) {
	server, client := udpPipe(t)
	defer server.Close()
	defer client.Close()

	bad := make([]byte, HeaderSize)
	_, _, err := DecodeAndTickle(NewConn(time.Now()), client, server.LocalAddr(), bad, time.Now())
	if err != ErrInvalidPacket {
		t.Fatalf("DecodeAndTickle with bad magic = %v, want ErrInvalidPacket", err)
	}
}

func TestDecodeAndTickleRejectsShortPacket(t *testing.T) {
	_, client := udpPipe(t)
	defer client.Close()
	_, _, err := DecodeAndTickle(NewConn(time.Now()), client, client.LocalAddr(), []byte{1, 2}, time.Now())
	if err != ErrInvalidPacket {
		t.Fatalf("DecodeAndTickle with short packet = %v, want ErrInvalidPacket", err)
	}
}

// udpPipe returns two loopback UDP sockets for exercising the wire codec
// without going through Client/Server.
func udpPipe(t *testing.T) (*net.UDPConn, *net.UDPConn) {
	t.Helper()
	a, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	b, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	return a, b
}
