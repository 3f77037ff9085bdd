package client

import (
	"context"

	"gameudp/internal/pkg/log"
	"gameudp/internal/pkg/packet"
	"gameudp/internal/pkg/payload"
	"gameudp/internal/pkg/transport"

	"github.com/pkg/errors"
)

// RunDemo sends a short scripted message sequence instead of running the
// interactive loop: session init, one move, one chat line and a heartbeat,
// then waits for the first server reply and logs it. Useful for smoke
// testing a server by hand.
func (c *Client) RunDemo(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	go func() {
		<-ctx.Done()
		_ = c.conn.Close()
	}()

	if err := c.Init(); err != nil {
		return errors.Wrap(err, "init session failed")
	}
	if err := c.SendPosition(payload.Position{X: 10, Y: 5, Z: 3}); err != nil {
		return errors.Wrap(err, "send position failed")
	}
	if err := c.Say("Hello, world!"); err != nil {
		return errors.Wrap(err, "send chat failed")
	}
	if err := c.Heartbeat(); err != nil {
		return errors.Wrap(err, "send heartbeat failed")
	}

	buf := make([]byte, transport.MaxDatagramSize)
	n, addr, err := c.conn.ReadFrom(buf)
	if err != nil {
		return errors.Wrap(err, "read reply failed")
	}
	pkt, err := packet.Decode(buf[:n])
	if err != nil {
		return errors.Wrap(err, "decode reply failed")
	}
	logger.WithFields(log.PacketToFields(addr, pkt)).Info("received reply")
	return nil
}
