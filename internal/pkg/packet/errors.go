package packet

import "github.com/pkg/errors"

// ErrMalformed indicates a datagram that is too short to carry a header
// or carries an unknown message type tag.
var ErrMalformed = errors.New("malformed packet")
