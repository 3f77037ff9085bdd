package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gameudp/internal/pkg/log"
	"gameudp/internal/pkg/packet"
	"gameudp/internal/pkg/payload"
	"gameudp/internal/pkg/render"
	"gameudp/internal/pkg/transport"
	"gameudp/internal/pkg/world"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// Client implements the player side of the protocol: it initializes a
// session with the server, keeps it alive with heartbeats, and maintains a
// local view of the world from the server's broadcasts.
type Client struct {
	serverAddr        string
	heartbeatInterval time.Duration

	id   uuid.UUID
	conn transport.Conn
	seq  uint32

	mu     sync.Mutex
	self   payload.Position
	peers  map[string]payload.PlayerState
	bounds world.Bounds
	sink   render.Sink
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerAddr sets the server address to connect to.
func WithServerAddr(addr string) Cfg {
	return func(c *Client) error {
		c.serverAddr = addr
		return nil
	}
}

// WithHeartbeatInterval sets how often the client heartbeats the server.
// It must stay comfortably under the server's idle timeout or the session
// gets reaped.
func WithHeartbeatInterval(d time.Duration) Cfg {
	return func(c *Client) error {
		c.heartbeatInterval = d
		return nil
	}
}

// WithRenderSink sets the presentation sink for world view updates.
func WithRenderSink(sink render.Sink) Cfg {
	return func(c *Client) error {
		c.sink = sink
		return nil
	}
}

// WithConn sets the datagram socket directly, bypassing Connect.
// Used by tests.
func WithConn(conn transport.Conn) Cfg {
	return func(c *Client) error {
		c.conn = conn
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	client := &Client{
		serverAddr:        "127.0.0.1:4000",
		heartbeatInterval: 2 * time.Second,
		peers:             make(map[string]payload.PlayerState),
		sink:              render.Nop{},
	}
	for _, cfg := range cfgs {
		if err := cfg(client); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	client.id = uuid.New()
	return client, nil
}

// Connect opens the socket to the server.
func (c *Client) Connect(_ context.Context) error {
	if c.conn != nil {
		return nil
	}
	conn, err := transport.Dial(c.serverAddr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s failed", c.serverAddr)
	}
	c.conn = conn
	return nil
}

func (c *Client) nextSeq() uint32 {
	return atomic.AddUint32(&c.seq, 1)
}

// recv reads datagrams off the socket and delivers decoded packets on the
// returned channel. The channel closes when the socket does.
func (c *Client) recv() <-chan packet.Packet {
	out := make(chan packet.Packet)
	go func() {
		defer close(out)
		buf := make([]byte, transport.MaxDatagramSize)
		for {
			n, addr, err := c.conn.ReadFrom(buf)
			if err != nil {
				return
			}
			pkt, err := packet.Decode(buf[:n])
			if err != nil {
				logger.WithError(err).WithField("addr", addr).Debug("dropping malformed datagram")
				continue
			}
			out <- pkt
		}
	}()
	return out
}

// Run initializes the session and drives the protocol until ctx is
// cancelled or the socket closes.
func (c *Client) Run(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	go func() {
		<-ctx.Done()
		_ = c.conn.Close()
	}()
	in := c.recv()

	if err := c.Init(); err != nil {
		return errors.Wrap(err, "init session failed")
	}

	ticker := time.NewTicker(c.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case pkt, ok := <-in:
			if !ok {
				return nil
			}
			c.handleMessage(pkt)
		case <-ticker.C:
			if err := c.Heartbeat(); err != nil {
				logger.WithError(err).Warn("heartbeat failed")
			}
		}
	}
}

// handleMessage applies one server packet to the local world view.
func (c *Client) handleMessage(pkt packet.Packet) {
	logger.WithFields(log.PacketToFields(c.serverAddr, pkt)).Trace("received packet")
	c.mu.Lock()
	switch pkt.Type {
	case packet.ConnectionInit:
		snap, err := payload.UnmarshalSnapshot(pkt.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping undecodable snapshot")
			break
		}
		c.bounds = world.Bounds{Width: snap.BoardSize[0], Height: snap.BoardSize[1]}
		c.peers = make(map[string]payload.PlayerState, len(snap.Players))
		for addr, state := range snap.Players {
			c.peers[addr] = state
		}
	case packet.PlayerJoin:
		c.peers[string(pkt.Payload)] = payload.PlayerState{}
		logger.WithField("addr", string(pkt.Payload)).Info("player joined")
	case packet.PlayerLeft:
		delete(c.peers, string(pkt.Payload))
		logger.WithField("addr", string(pkt.Payload)).Info("player left")
	case packet.PositionUpdate:
		update, err := payload.UnmarshalPlayerUpdate(pkt.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping undecodable player update")
			break
		}
		state := c.peers[update.Player]
		state.Position = update.Position
		c.peers[update.Player] = state
	case packet.ConfirmPlayerMovement:
		pos, err := payload.UnmarshalPosition(pkt.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping undecodable confirmation")
			break
		}
		c.self = pos
	case packet.ChatMessage:
		chat, err := payload.UnmarshalChat(pkt.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping undecodable chat")
			break
		}
		logger.WithField("text", chat.Text).Info("chat")
	case packet.Heartbeat:
		// server liveness ping, nothing to update
	}
	c.mu.Unlock()
	c.notifyRender()
}

// Init sends the session handshake.
func (c *Client) Init() error {
	pkt := packet.New(packet.ConnectionInit, c.nextSeq(), nil)
	return errors.Wrap(c.conn.WriteTo(pkt.Encode(), c.serverAddr), "send init failed")
}

// Move proposes a new position one step away from the current one. The
// position only becomes authoritative when the server confirms it.
func (c *Client) Move(dx, dy int) error {
	c.mu.Lock()
	candidate := c.self
	candidate.X += dx
	candidate.Y += dy
	c.mu.Unlock()
	return c.SendPosition(candidate)
}

// SendPosition proposes an absolute position to the server.
func (c *Client) SendPosition(pos payload.Position) error {
	body, err := pos.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal position failed")
	}
	pkt := packet.New(packet.PositionUpdate, c.nextSeq(), body)
	return errors.Wrap(c.conn.WriteTo(pkt.Encode(), c.serverAddr), "send position failed")
}

// Say sends a chat message.
func (c *Client) Say(text string) error {
	body, err := payload.Chat{Text: text}.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal chat failed")
	}
	pkt := packet.New(packet.ChatMessage, c.nextSeq(), body)
	return errors.Wrap(c.conn.WriteTo(pkt.Encode(), c.serverAddr), "send chat failed")
}

// Heartbeat tells the server this session is still alive.
func (c *Client) Heartbeat() error {
	pkt := packet.New(packet.Heartbeat, c.nextSeq(), nil)
	return errors.Wrap(c.conn.WriteTo(pkt.Encode(), c.serverAddr), "send heartbeat failed")
}

// Position returns the last server-confirmed position.
func (c *Client) Position() payload.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.self
}

// Peers returns a copy of the known world view.
func (c *Client) Peers() map[string]payload.PlayerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]payload.PlayerState, len(c.peers))
	for addr, state := range c.peers {
		out[addr] = state
	}
	return out
}

func (c *Client) notifyRender() {
	c.mu.Lock()
	view := render.View{
		Players: make(map[string]render.Player, len(c.peers)),
		Bounds:  c.bounds,
	}
	for addr, state := range c.peers {
		view.Players[addr] = render.Player{
			Position: state.Position,
			Number:   state.PlayerNumber,
		}
	}
	c.mu.Unlock()
	c.sink.Notify(view)
}
