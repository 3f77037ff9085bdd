// Package transport abstracts the datagram socket underneath the protocol.
package transport

import (
	"net"

	"github.com/pkg/errors"
)

// MaxDatagramSize is the receive buffer size, matching the conventional
// Ethernet MTU so a full datagram always fits.
const MaxDatagramSize = 1500

// Conn is the minimal datagram surface the protocol engine needs.
// Keeping the engine behind this interface means it can be exercised in
// tests without a live socket.
type Conn interface {
	// ReadFrom blocks for the next datagram and returns its length and
	// the sender's address.
	ReadFrom(buf []byte) (int, string, error)
	// WriteTo sends one datagram to addr. A failure affects only this
	// destination.
	WriteTo(data []byte, addr string) error
	LocalAddr() string
	Close() error
}

// UDPConn adapts a net.UDPConn to Conn. A listening socket serves the
// server; a connected socket (via Dial) serves the client.
type UDPConn struct {
	conn   *net.UDPConn
	remote *net.UDPAddr
}

// Listen binds a UDP socket on the given port, accepting datagrams from
// any sender.
func Listen(port uint16) (*UDPConn, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: int(port)})
	if err != nil {
		return nil, errors.Wrapf(err, "listen on udp port %d failed", port)
	}
	return &UDPConn{conn: conn}, nil
}

// Dial opens a connected UDP socket to the server address. The OS picks
// the local port.
func Dial(addr string) (*UDPConn, error) {
	remote, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s failed", addr)
	}
	conn, err := net.DialUDP("udp", nil, remote)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s failed", addr)
	}
	return &UDPConn{conn: conn, remote: remote}, nil
}

// ReadFrom implements Conn.
func (c *UDPConn) ReadFrom(buf []byte) (int, string, error) {
	if c.remote != nil {
		n, err := c.conn.Read(buf)
		if err != nil {
			return 0, "", errors.Wrap(err, "read failed")
		}
		return n, c.remote.String(), nil
	}
	n, addr, err := c.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, "", errors.Wrap(err, "read failed")
	}
	return n, addr.String(), nil
}

// WriteTo implements Conn.
func (c *UDPConn) WriteTo(data []byte, addr string) error {
	if c.remote != nil {
		_, err := c.conn.Write(data)
		return errors.Wrap(err, "write failed")
	}
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return errors.Wrapf(err, "resolve %s failed", addr)
	}
	_, err = c.conn.WriteToUDP(data, udpAddr)
	return errors.Wrapf(err, "write to %s failed", addr)
}

// LocalAddr implements Conn.
func (c *UDPConn) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

// Close implements Conn.
func (c *UDPConn) Close() error {
	return errors.Wrap(c.conn.Close(), "close conn failed")
}
