// Package networking implements the custom reliable-ish UDP transport: a
// fixed-magic framed datagram protocol with sequence numbers, ping/pong
// keepalive, and timeout-based disconnection.
package networking

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// Magic is the fixed protocol identifier every valid packet starts with.
const Magic uint32 = 0xD05F1575

// MaxPacketSize bounds every encoded datagram so it fits safely under a
// typical MTU.
const MaxPacketSize = 1400

// ConnTimeout is how long a Conn tolerates silence before a send attempt
// reports it Closed.
const ConnTimeout = 10 * time.Second

// PingInterval is the cadence of the client's heartbeat Ping.
const PingInterval = 1 * time.Second

// MsgType tags what a packet's body represents.
type MsgType uint8

const (
	MsgPing   MsgType = 0
	MsgPong   MsgType = 1
	MsgNormal MsgType = 2
)

func (m MsgType) String() string {
	switch m {
	case MsgPing:
		return "ping"
	case MsgPong:
		return "pong"
	case MsgNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Sentinel errors for the transport's closed set of failure modes.
var (
	// ErrClosed reports a connection that has been silent past ConnTimeout.
	ErrClosed = errors.New("networking: connection closed")
	// ErrNotConnected reports a send to a peer the server has no Conn for.
	ErrNotConnected = errors.New("networking: peer not connected")
	// ErrInvalidPacket reports a datagram that failed to decode: a truncated
	// header, bad magic, or an out-of-range msg type tag. The receive loop
	// drops it and continues rather than treating it as terminal.
	ErrInvalidPacket = errors.New("networking: invalid packet")
)

// Local is a peer's own {seq, ack} pair as carried in the packet header.
type Local struct {
	Seq uint32
	Ack uint32
}

// Header is the fixed 13-byte prefix of every datagram.
type Header struct {
	Magic    uint32
	Local    Local
	MsgType  MsgType
}

// HeaderSize is the encoded size of a Header in bytes.
const HeaderSize = 4 + 4 + 4 + 1

// Encode writes h's wire representation (big-endian) to w.
func (h Header) Encode(w io.Writer) error {
	var buf [HeaderSize]byte
	binary.BigEndian.PutUint32(buf[0:4], h.Magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Local.Seq)
	binary.BigEndian.PutUint32(buf[8:12], h.Local.Ack)
	buf[12] = byte(h.MsgType)
	_, err := w.Write(buf[:])
	return err
}

// DecodeHeader reads a Header from r. It does not validate the magic or
// msg type; callers check those explicitly and reject a bad magic or an
// unknown msg type with ErrInvalidPacket.
func DecodeHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrInvalidPacket, err)
	}
	return Header{
		Magic: binary.BigEndian.Uint32(buf[0:4]),
		Local: Local{
			Seq: binary.BigEndian.Uint32(buf[4:8]),
			Ack: binary.BigEndian.Uint32(buf[8:12]),
		},
		MsgType: MsgType(buf[12]),
	}, nil
}
