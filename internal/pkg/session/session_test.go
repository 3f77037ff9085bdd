package session

import (
	"testing"
	"time"

	"gameudp/internal/pkg/payload"

	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, now *time.Time) *Registry {
	t.Helper()
	r, err := NewRegistry(WithClock(func() time.Time { return *now }))
	require.NoError(t, err)
	return r
}

func TestUpsertIsIdempotent(t *testing.T) {
	now := time.Unix(1000, 0)
	r := newTestRegistry(t, &now)

	first, created := r.Upsert("10.0.0.1:5000", payload.Position{})
	require.True(t, created)
	require.Equal(t, "10.0.0.1:5000", first.Addr)
	require.Equal(t, uint32(0), first.PlayerNumber)

	again, created := r.Upsert("10.0.0.1:5000", payload.Position{X: 9})
	require.False(t, created)
	require.Equal(t, first, again)
}

func TestPlayerNumbersAreNeverReused(t *testing.T) {
	now := time.Unix(1000, 0)
	r := newTestRegistry(t, &now)

	a, _ := r.Upsert("a:1", payload.Position{})
	b, _ := r.Upsert("b:1", payload.Position{})
	require.Equal(t, uint32(0), a.PlayerNumber)
	require.Equal(t, uint32(1), b.PlayerNumber)

	_, err := r.Remove("a:1")
	require.NoError(t, err)

	// the same address reconnecting is a brand new session
	a2, created := r.Upsert("a:1", payload.Position{})
	require.True(t, created)
	require.Equal(t, uint32(2), a2.PlayerNumber)
	require.NotEqual(t, a.ID, a2.ID)
}

func TestUpdatePositionRefreshesHeartbeat(t *testing.T) {
	now := time.Unix(1000, 0)
	r := newTestRegistry(t, &now)
	r.Upsert("a:1", payload.Position{})

	now = now.Add(4 * time.Second)
	require.NoError(t, r.UpdatePosition("a:1", payload.Position{X: 3, Y: -1}))

	sess, err := r.Get("a:1")
	require.NoError(t, err)
	require.Equal(t, payload.Position{X: 3, Y: -1}, sess.Position)
	require.Equal(t, now, sess.LastHeartbeat)
}

func TestNotFound(t *testing.T) {
	now := time.Unix(1000, 0)
	r := newTestRegistry(t, &now)

	_, err := r.Get("nope:1")
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.ErrorIs(t, r.UpdatePosition("nope:1", payload.Position{}), ErrSessionNotFound)
	require.ErrorIs(t, r.TouchHeartbeat("nope:1"), ErrSessionNotFound)
	_, err = r.Remove("nope:1")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSnapshotIsACopy(t *testing.T) {
	now := time.Unix(1000, 0)
	r := newTestRegistry(t, &now)
	r.Upsert("a:1", payload.Position{})

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	delete(snap, "a:1")

	_, err := r.Get("a:1")
	require.NoError(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	r := newTestRegistry(t, &now)
	r.Upsert("old:1", payload.Position{})

	now = now.Add(6 * time.Second)
	r.Upsert("fresh:1", payload.Position{})

	now = now.Add(5 * time.Second)
	expired := r.Expired(10 * time.Second)
	require.Len(t, expired, 1)
	require.Equal(t, "old:1", expired[0].Addr)

	require.NoError(t, r.TouchHeartbeat("old:1"))
	require.Empty(t, r.Expired(10*time.Second))
}
