// Package client implements the player side of the protocol.
//
// The client performs the following steps:
//	1. Opens a connected UDP socket to the server.
//	2. Sends a ConnectionInit packet and receives the full state snapshot
//	   in reply, which seeds the local world view and board bounds.
//	3. Sends a Heartbeat on a fixed interval so the server's reaper does
//	   not evict the session.
//	4. Applies server broadcasts to the local view: PositionUpdate moves a
//	   peer, PlayerJoin and PlayerLeft add and remove peers, and
//	   ConfirmPlayerMovement settles the client's own position.
//	5. Proposed moves are sent as PositionUpdate packets; the position only
//	   becomes authoritative once the server confirms it, so an
//	   out-of-bounds proposal snaps back to the last accepted spot.
//
// The local view is pushed to a render sink after every change. Delivery
// is datagram best-effort end to end: a lost packet is simply superseded
// by the next one.
package client
