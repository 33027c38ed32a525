package networking

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/dogfights/broker/internal/logging"
)

// Server is a UDP handle serving many peers from one bound socket. Copying
// a Server by value is a cheap clone: sock is a pointer and clients is a
// map, both reference types, so every clone shares the same peer table.
type Server struct {
	sock    *net.UDPConn
	mu      *sync.Mutex
	clients map[string]*Conn
	log     *logging.Logger
}

// NewServer binds a UDP socket at addr.
func NewServer(addr string, log *logging.Logger) (*Server, error) {
	laddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	sock, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.L()
	}
	return &Server{
		sock:    sock,
		mu:      &sync.Mutex{},
		clients: make(map[string]*Conn),
		log:     log,
	}, nil
}

// LocalAddr reports the socket's bound address.
func (s *Server) LocalAddr() net.Addr { return s.sock.LocalAddr() }

// ActiveConn reports whether peer has an open Conn.
func (s *Server) ActiveConn(peer net.Addr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.clients[peer.String()]
	return ok
}

// ConnFor returns the Conn tracking peer, if one exists.
func (s *Server) ConnFor(peer net.Addr) (*Conn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn, ok := s.clients[peer.String()]
	return conn, ok
}

// Send transmits body to peer as a Normal message. It fails with
// ErrNotConnected if no datagram has ever been received from peer, and
// removes peer's Conn if it has gone silent past ConnTimeout.
func (s *Server) Send(peer net.Addr, body []byte) error {
	key := peer.String()
	s.mu.Lock()
	conn, ok := s.clients[key]
	s.mu.Unlock()
	if !ok {
		return ErrNotConnected
	}
	err := EncodeAndSend(conn, s.sock, peer, MsgNormal, body, time.Now())
	if errors.Is(err, ErrClosed) {
		s.mu.Lock()
		delete(s.clients, key)
		s.mu.Unlock()
	}
	return err
}

// Recv blocks for the next Normal message from any peer, allocating a Conn
// for addresses seen for the first time, and transparently answering
// Pings/absorbing Pongs without returning them.
func (s *Server) Recv() (net.Addr, []byte, error) {
	scratch := make([]byte, MaxPacketSize)
	for {
		addr, data, err := RecvRaw(s.sock, scratch)
		if err != nil {
			return nil, nil, err
		}
		key := addr.String()
		s.mu.Lock()
		conn, ok := s.clients[key]
		if !ok {
			conn = NewConn(time.Now())
			s.clients[key] = conn
		}
		s.mu.Unlock()

		msgType, body, err := DecodeAndTickle(conn, s.sock, addr, data, time.Now())
		if err != nil {
			s.log.Warn("dropping invalid datagram", logging.Error(err), logging.String("peer", key))
			continue
		}
		if msgType == MsgNormal {
			return addr, body, nil
		}
	}
}

// Forget removes peer's Conn, e.g. after the game layer evicts a timed-out
// player.
func (s *Server) Forget(peer net.Addr) {
	s.mu.Lock()
	delete(s.clients, peer.String())
	s.mu.Unlock()
}

// Close closes the underlying socket.
func (s *Server) Close() error { return s.sock.Close() }
