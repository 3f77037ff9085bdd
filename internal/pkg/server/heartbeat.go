package server

import (
	"context"
	"time"

	"gameudp/internal/pkg/log"
	"gameudp/internal/pkg/packet"
)

// ping periodically sends an empty Heartbeat packet to every session so
// clients can tell the server is alive.
func (s *Server) ping(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.broadcast(packet.New(packet.Heartbeat, 0, nil), s.registry.Addrs(), "")
		}
	}
}

// reap periodically evicts sessions idle past the timeout.
func (s *Server) reap(ctx context.Context) {
	ticker := time.NewTicker(s.reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reapOnce()
		}
	}
}

// reapOnce performs a single eviction sweep. For every expired session the
// PlayerLeft broadcast uses the membership from just before its removal, so
// the evicted session is never among the recipients and is never told about
// its own eviction.
func (s *Server) reapOnce() {
	expired := s.registry.Expired(s.sessionTimeout)
	for _, sess := range expired {
		s.broadcast(packet.New(packet.PlayerLeft, 0, []byte(sess.Addr)), s.registry.Addrs(), sess.Addr)
		if _, err := s.registry.Remove(sess.Addr); err != nil {
			continue
		}
		logger.WithFields(log.SessionToFields(sess)).Info("evicted idle session")
	}
	if len(expired) > 0 {
		s.notifyRender()
	}
}
