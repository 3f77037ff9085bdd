package server

import (
	"gameudp/internal/pkg/packet"

	"github.com/sirupsen/logrus"
)

// broadcast sends the encoded packet to every recipient except exclude.
// The recipient set is a copy taken from the registry, so no lock is held
// while datagrams go out. A per-recipient send failure is logged and does
// not abort delivery to the rest; there is no retry.
func (s *Server) broadcast(pkt packet.Packet, recipients []string, exclude string) {
	data := pkt.Encode()
	for _, addr := range recipients {
		if addr == exclude {
			continue
		}
		if err := s.conn.WriteTo(data, addr); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"addr": addr,
				"type": pkt.Type.String(),
			}).Warn("send failed")
		}
	}
}

// send delivers one packet to a single session.
func (s *Server) send(pkt packet.Packet, addr string) {
	if err := s.conn.WriteTo(pkt.Encode(), addr); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"addr": addr,
			"type": pkt.Type.String(),
		}).Warn("send failed")
	}
}
