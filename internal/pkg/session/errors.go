package session

import "errors"

// ErrSessionNotFound is returned when no session exists for an address.
var ErrSessionNotFound = errors.New("session not found")
