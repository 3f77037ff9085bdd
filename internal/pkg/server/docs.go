// Package server implements the authoritative side of the protocol.
//
// The server performs the following steps:
//	1. Binds a UDP socket on a well-known port and reads datagrams one at a
//	   time, strictly in arrival order.
//	2. Each datagram is decoded into a packet; datagrams under 6 bytes or
//	   carrying an unknown tag are dropped silently.
//	3. ConnectionInit registers the sender at the origin, replies with the
//	   full state snapshot, announces the join to every other session and
//	   sends the newcomer a welcome chat message.
//	4. PositionUpdate validates the candidate position against the board
//	   bounds. Rejected moves earn a corrective ConfirmPlayerMovement reply
//	   carrying the last accepted position; accepted moves update the
//	   registry, are broadcast to every other session and confirmed back to
//	   the mover. A position update from an unknown sender implicitly
//	   registers it first.
//	5. ChatMessage is re-broadcast verbatim to all sessions, sender included.
//	6. Heartbeat refreshes the sender's liveness timestamp.
//
// Two periodic tasks run alongside the receive loop: a ping task that
// heartbeats every session, and a reaper that evicts sessions idle past the
// timeout and announces each departure to the remaining sessions.
//
// Sessions live only in memory; a process restart clears the world. There
// is no delivery guarantee, no retransmission and no sender authentication.
package server
