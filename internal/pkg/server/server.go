package server

import (
	"context"
	"sync"
	"time"

	"gameudp/internal/pkg/log"
	"gameudp/internal/pkg/packet"
	"gameudp/internal/pkg/payload"
	"gameudp/internal/pkg/render"
	"gameudp/internal/pkg/session"
	"gameudp/internal/pkg/transport"
	"gameudp/internal/pkg/world"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// WelcomeText is sent as a chat message to every newly initialized session.
const WelcomeText = "Welcome to the server!"

// Server owns the receive loop and orchestrates codec, registry, validator
// and fan-out per datagram. All collaborators are explicit dependencies so
// the engine runs in tests without a live socket.
type Server struct {
	conn     transport.Conn
	registry session.Store
	bounds   world.Bounds
	sink     render.Sink

	pingInterval   time.Duration
	reapInterval   time.Duration
	sessionTimeout time.Duration
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithConn sets the datagram socket.
func WithConn(conn transport.Conn) Cfg {
	return func(s *Server) error {
		s.conn = conn
		return nil
	}
}

// WithRegistry sets the session registry.
func WithRegistry(store session.Store) Cfg {
	return func(s *Server) error {
		s.registry = store
		return nil
	}
}

// WithBounds sets the board bounds used by the movement validator.
func WithBounds(b world.Bounds) Cfg {
	return func(s *Server) error {
		s.bounds = b
		return nil
	}
}

// WithRenderSink sets the presentation sink notified after state changes.
func WithRenderSink(sink render.Sink) Cfg {
	return func(s *Server) error {
		s.sink = sink
		return nil
	}
}

// WithIntervals sets the heartbeat ping interval, the reap sweep interval
// and the idle timeout after which a session is evicted.
func WithIntervals(ping, reap, timeout time.Duration) Cfg {
	return func(s *Server) error {
		s.pingInterval = ping
		s.reapInterval = reap
		s.sessionTimeout = timeout
		return nil
	}
}

// NewServer creates a new Server with the given configuration.
func NewServer(cfgs ...Cfg) (*Server, error) {
	server := &Server{
		sink:           render.Nop{},
		bounds:         world.Bounds{Width: 80, Height: 24},
		pingInterval:   3 * time.Second,
		reapInterval:   5 * time.Second,
		sessionTimeout: 10 * time.Second,
	}
	for _, cfg := range cfgs {
		if err := cfg(server); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	if server.conn == nil {
		return nil, errors.New("server requires a conn")
	}
	if server.registry == nil {
		return nil, errors.New("server requires a registry")
	}
	return server, nil
}

// Run starts the ping and reap tasks and blocks on the receive loop until
// ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.ping(ctx)
	}()
	go func() {
		defer wg.Done()
		s.reap(ctx)
	}()
	go func() {
		// closing the conn unblocks the pending ReadFrom
		<-ctx.Done()
		if err := s.conn.Close(); err != nil {
			logger.WithError(err).Warn("close conn failed")
		}
	}()
	err := s.receive(ctx)
	cancel() // stop the periodic tasks if the receive loop failed
	wg.Wait()
	return err
}

// receive processes datagrams strictly in arrival order.
func (s *Server) receive(ctx context.Context) error {
	buf := make([]byte, transport.MaxDatagramSize)
	for {
		n, addr, err := s.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read datagram failed")
		}
		pkt, err := packet.Decode(buf[:n])
		if err != nil {
			// a misbehaving sender gets no reply
			logger.WithError(err).WithField("addr", addr).Debug("dropping malformed datagram")
			continue
		}
		s.handlePacket(addr, pkt)
	}
}

// handlePacket routes one decoded packet by message type.
func (s *Server) handlePacket(addr string, pkt packet.Packet) {
	logger.WithFields(log.PacketToFields(addr, pkt)).Trace("received packet")
	switch pkt.Type {
	case packet.ConnectionInit:
		s.handleConnectionInit(addr, pkt)
	case packet.PositionUpdate:
		s.handlePositionUpdate(addr, pkt)
	case packet.ChatMessage:
		s.handleChat(addr, pkt)
	case packet.Heartbeat:
		s.handleHeartbeat(addr)
	default:
		// PlayerJoin, ConfirmPlayerMovement and PlayerLeft are
		// server-to-client only; inbound copies are ignored
		logger.WithFields(log.PacketToFields(addr, pkt)).Debug("ignoring server-to-client message type")
	}
}

func (s *Server) handleConnectionInit(addr string, pkt packet.Packet) {
	sess, created := s.registry.Upsert(addr, payload.Position{})
	if created {
		logger.WithFields(log.SessionToFields(sess)).Info("new session")
	}

	snap := payload.Snapshot{
		Players:   make(map[string]payload.PlayerState),
		BoardSize: [2]uint32{s.bounds.Width, s.bounds.Height},
	}
	for peer, peerSess := range s.registry.Snapshot() {
		snap.Players[peer] = payload.PlayerState{
			Position:     peerSess.Position,
			PlayerNumber: peerSess.PlayerNumber,
		}
	}
	body, err := snap.Marshal()
	if err != nil {
		logger.WithError(err).Fatal("marshal snapshot failed")
		return
	}
	s.send(packet.New(packet.ConnectionInit, pkt.Seq, body), addr)

	s.broadcast(packet.New(packet.PlayerJoin, pkt.Seq, []byte(addr)), s.registry.Addrs(), addr)

	welcome, err := payload.Chat{Text: WelcomeText}.Marshal()
	if err != nil {
		logger.WithError(err).Fatal("marshal welcome failed")
		return
	}
	s.send(packet.New(packet.ChatMessage, pkt.Seq, welcome), addr)
	s.notifyRender()
}

func (s *Server) handlePositionUpdate(addr string, pkt packet.Packet) {
	candidate, err := payload.UnmarshalPosition(pkt.Payload)
	if err != nil {
		logger.WithError(err).WithField("addr", addr).Debug("dropping undecodable position")
		return
	}

	// an unknown sender is registered at the origin before validation
	sess, created := s.registry.Upsert(addr, payload.Position{})
	if created {
		logger.WithFields(log.SessionToFields(sess)).Info("implicit session from position update")
	}

	if !s.bounds.Allows(candidate) {
		// corrective reply only: the sender learns its last accepted
		// position and nobody else hears about the attempt
		body, err := sess.Position.Marshal()
		if err != nil {
			logger.WithError(err).Fatal("marshal position failed")
			return
		}
		s.send(packet.New(packet.ConfirmPlayerMovement, pkt.Seq, body), addr)
		return
	}

	if err := s.registry.UpdatePosition(addr, candidate); err != nil {
		logger.WithError(err).WithField("addr", addr).Warn("update position failed")
		return
	}

	update, err := payload.PlayerUpdate{Player: addr, Position: candidate}.Marshal()
	if err != nil {
		logger.WithError(err).Fatal("marshal player update failed")
		return
	}
	s.broadcast(packet.New(packet.PositionUpdate, pkt.Seq, update), s.registry.Addrs(), addr)

	confirm, err := candidate.Marshal()
	if err != nil {
		logger.WithError(err).Fatal("marshal position failed")
		return
	}
	s.send(packet.New(packet.ConfirmPlayerMovement, pkt.Seq, confirm), addr)
	s.notifyRender()
}

func (s *Server) handleChat(addr string, pkt packet.Packet) {
	chat, err := payload.UnmarshalChat(pkt.Payload)
	if err != nil {
		logger.WithError(err).WithField("addr", addr).Debug("dropping undecodable chat")
		return
	}
	logger.WithFields(logrus.Fields{"addr": addr, "text": chat.Text}).Info("chat")
	// the packet is re-broadcast verbatim, same sequence number, to every
	// session including the sender; chat does not refresh the heartbeat
	s.broadcast(pkt, s.registry.Addrs(), "")
}

func (s *Server) handleHeartbeat(addr string) {
	if err := s.registry.TouchHeartbeat(addr); err != nil {
		// a bare heartbeat never registers a session
		logger.WithField("addr", addr).Debug("heartbeat from unknown sender")
	}
}

// notifyRender pushes a read-only view to the presentation sink. Sinks
// must not block; protocol correctness never depends on the outcome.
func (s *Server) notifyRender() {
	players := make(map[string]render.Player)
	for addr, sess := range s.registry.Snapshot() {
		players[addr] = render.Player{
			Position: sess.Position,
			Number:   sess.PlayerNumber,
		}
	}
	s.sink.Notify(render.View{Players: players, Bounds: s.bounds})
}
