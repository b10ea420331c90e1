// Package proto knows how the protocol version token looks on the wire.
package proto

import (
	"github.com/indigo-web/httpcore/status"
	"github.com/indigo-web/utils/uf"
)

type Proto uint8

const (
	Unknown Proto = 0
	HTTP10  Proto = 1 << iota
	HTTP11

	HTTP1 = HTTP10 | HTTP11
)

// String returns the protocol version token as it appears on the wire.
func (p Proto) String() string {
	switch p {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	}

	return ""
}

const (
	scheme = "HTTP/1."

	// TokenLength is the number of bytes any supported version token
	// occupies, and thereby the minimal lookahead needed to parse one.
	TokenLength = len("HTTP/1.x")
)

// Parse reads the version token at the front of b: the fixed "HTTP/1."
// literal followed by a minor version digit. Fewer than TokenLength
// available bytes yield status.ErrNeedMore; a mismatching literal or an
// unsupported minor version yields status.ErrBadVersion.
func Parse(b []byte) (Proto, error) {
	if len(b) < TokenLength {
		return Unknown, status.ErrNeedMore
	}
	if uf.B2S(b[:len(scheme)]) != scheme {
		return Unknown, status.ErrBadVersion
	}

	switch b[len(scheme)] {
	case '0':
		return HTTP10, nil
	case '1':
		return HTTP11, nil
	}

	return Unknown, status.ErrBadVersion
}

// FromBytes parses a complete version token, rejecting trailing bytes.
func FromBytes(raw []byte) Proto {
	if len(raw) != TokenLength {
		return Unknown
	}

	p, err := Parse(raw)
	if err != nil {
		return Unknown
	}

	return p
}
