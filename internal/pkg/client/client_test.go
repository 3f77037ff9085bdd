package client

import (
	"context"
	"testing"

	"gameudp/internal/pkg/packet"
	"gameudp/internal/pkg/payload"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const serverAddr = "127.0.0.1:4000"

type connMock struct {
	mock.Mock
}

func (m *connMock) ReadFrom(buf []byte) (int, string, error) {
	args := m.Called(buf)
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *connMock) WriteTo(data []byte, addr string) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	args := m.Called(cp, addr)
	return args.Error(0)
}

func (m *connMock) LocalAddr() string {
	return "127.0.0.1:60000"
}

func (m *connMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

func sent(t *testing.T, m *connMock) []packet.Packet {
	t.Helper()
	var out []packet.Packet
	for _, call := range m.Calls {
		if call.Method != "WriteTo" {
			continue
		}
		require.Equal(t, serverAddr, call.Arguments.String(1))
		pkt, err := packet.Decode(call.Arguments.Get(0).([]byte))
		require.NoError(t, err)
		out = append(out, pkt)
	}
	return out
}

func newTestClient(t *testing.T) (*Client, *connMock) {
	t.Helper()
	conn := &connMock{}
	conn.On("WriteTo", mock.Anything, mock.Anything).Return(nil)
	c, err := NewClient(
		WithServerAddr(serverAddr),
		WithConn(conn),
	)
	require.NoError(t, err)
	return c, conn
}

func TestRunRequiresConnect(t *testing.T) {
	c, err := NewClient()
	require.NoError(t, err)
	require.ErrorIs(t, c.Run(context.Background()), ErrNotConnected)
}

func TestOutboundSequenceNumbersIncrease(t *testing.T) {
	c, conn := newTestClient(t)

	require.NoError(t, c.Init())
	require.NoError(t, c.SendPosition(payload.Position{X: 1}))
	require.NoError(t, c.Say("hello"))
	require.NoError(t, c.Heartbeat())

	pkts := sent(t, conn)
	require.Len(t, pkts, 4)
	require.Equal(t, packet.ConnectionInit, pkts[0].Type)
	require.Equal(t, packet.PositionUpdate, pkts[1].Type)
	require.Equal(t, packet.ChatMessage, pkts[2].Type)
	require.Equal(t, packet.Heartbeat, pkts[3].Type)
	for i, pkt := range pkts {
		require.Equal(t, uint32(i+1), pkt.Seq)
	}
}

func TestSnapshotSeedsWorldView(t *testing.T) {
	c, _ := newTestClient(t)

	body, err := payload.Snapshot{
		Players: map[string]payload.PlayerState{
			"10.0.0.1:5000": {Position: payload.Position{X: 2}, PlayerNumber: 0},
			"10.0.0.2:5000": {PlayerNumber: 1},
		},
		BoardSize: [2]uint32{80, 24},
	}.Marshal()
	require.NoError(t, err)
	c.handleMessage(packet.New(packet.ConnectionInit, 1, body))

	peers := c.Peers()
	require.Len(t, peers, 2)
	require.Equal(t, payload.Position{X: 2}, peers["10.0.0.1:5000"].Position)
}

func TestJoinMoveLeaveLifecycle(t *testing.T) {
	c, _ := newTestClient(t)

	c.handleMessage(packet.New(packet.PlayerJoin, 1, []byte("10.0.0.9:5000")))
	require.Contains(t, c.Peers(), "10.0.0.9:5000")

	body, err := payload.PlayerUpdate{
		Player:   "10.0.0.9:5000",
		Position: payload.Position{X: 4, Y: -3},
	}.Marshal()
	require.NoError(t, err)
	c.handleMessage(packet.New(packet.PositionUpdate, 2, body))
	require.Equal(t, payload.Position{X: 4, Y: -3}, c.Peers()["10.0.0.9:5000"].Position)

	c.handleMessage(packet.New(packet.PlayerLeft, 3, []byte("10.0.0.9:5000")))
	require.NotContains(t, c.Peers(), "10.0.0.9:5000")
}

func TestConfirmSettlesOwnPosition(t *testing.T) {
	c, conn := newTestClient(t)

	body, err := payload.Position{X: 7, Y: 2}.Marshal()
	require.NoError(t, err)
	c.handleMessage(packet.New(packet.ConfirmPlayerMovement, 2, body))
	require.Equal(t, payload.Position{X: 7, Y: 2}, c.Position())

	// the next relative move starts from the confirmed position
	require.NoError(t, c.Move(1, 0))
	pkts := sent(t, conn)
	require.Len(t, pkts, 1)
	pos, err := payload.UnmarshalPosition(pkts[0].Payload)
	require.NoError(t, err)
	require.Equal(t, payload.Position{X: 8, Y: 2}, pos)
}

func TestUndecodableServerPayloadIsIgnored(t *testing.T) {
	c, _ := newTestClient(t)

	c.handleMessage(packet.New(packet.PositionUpdate, 1, []byte("not json")))
	c.handleMessage(packet.New(packet.ConnectionInit, 2, []byte("not json")))
	require.Empty(t, c.Peers())
	require.Equal(t, payload.Position{}, c.Position())
}
