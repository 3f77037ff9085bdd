// Package log adds logging utilities.
package log

import (
	"strings"
	"time"

	"gameudp/internal/pkg/packet"
	"gameudp/internal/pkg/session"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetLogger sets the default logger's level.
func SetLogger(level string) {
	logrus.SetLevel(logrus.ErrorLevel)
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	logrus.SetFormatter(customFormatter)
	customFormatter.FullTimestamp = true
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

// SetOutputFile routes log output to a rotated file instead of stderr.
// Required when the terminal is occupied by the board renderer.
func SetOutputFile(path string) {
	logrus.SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})
}

// PacketToFields converts a packet and its peer address to log fields.
func PacketToFields(addr string, pkt packet.Packet) logrus.Fields {
	return logrus.Fields{
		"addr":    addr,
		"type":    pkt.Type.String(),
		"seq":     pkt.Seq,
		"payload": len(pkt.Payload),
	}
}

// SessionToFields converts a session to log fields.
func SessionToFields(sess session.Session) logrus.Fields {
	return logrus.Fields{
		"addr":   sess.Addr,
		"uuid":   sess.ID.String(),
		"player": sess.PlayerNumber,
		"x":      sess.Position.X,
		"y":      sess.Position.Y,
	}
}
