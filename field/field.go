// Package field enumerates the header fields the parser recognizes
// structurally. Every other field is stored verbatim and never interpreted.
package field

import "github.com/indigo-web/utils/strcomp"

type ID uint8

const (
	// Other is any field the parser stores without interpreting.
	Other ID = iota
	Connection
	ContentLength
	TransferEncoding
	Upgrade

	// Count is the number of structurally recognized fields.
	Count = iota - 1
)

// Name returns the canonical wire name of the field, or the empty string
// for Other.
func (id ID) Name() string {
	switch id {
	case Connection:
		return "Connection"
	case ContentLength:
		return "Content-Length"
	case TransferEncoding:
		return "Transfer-Encoding"
	case Upgrade:
		return "Upgrade"
	}

	return ""
}

func (id ID) String() string {
	if id == Other {
		return "Other"
	}

	return id.Name()
}

// Parse matches a field name case-insensitively against the recognized set.
// Proxy-Connection is folded into Connection, as the two carry identical
// semantics.
func Parse(name string) ID {
	switch len(name) {
	case 7:
		if strcomp.EqualFold(name, "upgrade") {
			return Upgrade
		}
	case 10:
		if strcomp.EqualFold(name, "connection") {
			return Connection
		}
	case 14:
		if strcomp.EqualFold(name, "content-length") {
			return ContentLength
		}
	case 16:
		if strcomp.EqualFold(name, "proxy-connection") {
			return Connection
		}
	case 17:
		if strcomp.EqualFold(name, "transfer-encoding") {
			return TransferEncoding
		}
	}

	return Other
}
