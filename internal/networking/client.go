package networking

import (
	"net"
	"time"

	"github.com/dogfights/broker/internal/logging"
)

// Client is a UDP handle connected to exactly one peer. Copying a Client by
// value is a cheap clone: the socket and Conn are held by pointer, so every
// clone shares the same live connection state, letting one worker own
// sends and another own receives without contention.
type Client struct {
	sock          *net.UDPConn
	peer          net.Addr
	conn          *Conn
	log           *logging.Logger
	readTimeout   time.Duration
	stopHeartbeat func()
}

// NewClient binds a local UDP socket and resolves the peer to connect to.
// When heartbeat is true, a background goroutine sends a Ping every
// PingInterval until the Client is closed.
func NewClient(localAddr, peerAddr string, heartbeat bool, log *logging.Logger) (*Client, error) {
	laddr, err := net.ResolveUDPAddr("udp", localAddr)
	if err != nil {
		return nil, err
	}
	paddr, err := net.ResolveUDPAddr("udp", peerAddr)
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
	client := &Client{sock: sock, peer: paddr, conn: NewConn(time.Now()), log: log}
	if heartbeat {
		stop := make(chan struct{})
		done := make(chan struct{})
		go client.heartbeatLoop(stop, done)
		client.stopHeartbeat = func() {
			close(stop)
			<-done
		}
	}
	return client, nil
}

func (c *Client) heartbeatLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := EncodeAndSend(c.conn, c.sock, c.peer, MsgPing, nil, time.Now()); err != nil {
				c.log.Warn("heartbeat ping failed", logging.Error(err))
			}
		}
	}
}

// Clone returns a copy of the client handle sharing the same socket and
// Conn; the clone does not own heartbeat shutdown.
func (c *Client) Clone() *Client {
	clone := *c
	clone.stopHeartbeat = nil
	return &clone
}

// SetReadTimeout bounds how long Recv blocks for a datagram before
// returning a timeout error.
func (c *Client) SetReadTimeout(d time.Duration) {
	c.readTimeout = d
}

// Send transmits body to the connected peer as a Normal message.
func (c *Client) Send(body []byte) error {
	return EncodeAndSend(c.conn, c.sock, c.peer, MsgNormal, body, time.Now())
}

// Recv blocks for the next Normal message from the connected peer,
// transparently answering Pings and absorbing Pongs, and dropping datagrams
// from any address other than the connected peer.
func (c *Client) Recv() ([]byte, error) {
	scratch := make([]byte, MaxPacketSize)
	for {
		if c.readTimeout > 0 {
			if err := c.sock.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
				return nil, err
			}
		}
		addr, data, err := RecvRaw(c.sock, scratch)
		if err != nil {
			return nil, err
		}
		if addr.String() != c.peer.String() {
			c.log.Warn("dropping datagram from unexpected sender", logging.String("sender", addr.String()))
			continue
		}
		msgType, body, err := DecodeAndTickle(c.conn, c.sock, addr, data, time.Now())
		if err != nil {
			c.log.Warn("dropping invalid datagram", logging.Error(err))
			continue
		}
		if msgType == MsgNormal {
			return body, nil
		}
	}
}

// Conn exposes the client's per-peer connection record.
func (c *Client) Conn() *Conn { return c.conn }

// Close stops the heartbeat worker (if owned by this handle) and closes the
// underlying socket.
func (c *Client) Close() error {
	if c.stopHeartbeat != nil {
		c.stopHeartbeat()
	}
	return c.sock.Close()
}
