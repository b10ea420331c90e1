package http1

import (
	"github.com/indigo-web/httpcore/headers"
	"github.com/indigo-web/httpcore/method"
	"github.com/indigo-web/httpcore/proto"
)

// Message is the structured outcome of parsing a header section. String
// fields and the header container contents stay valid until the parser is
// reset for the next message.
type Message struct {
	// request start-line
	Method method.Method
	Target string

	// response start-line
	Code   int
	Reason string

	Proto   proto.Proto
	Headers *headers.Headers

	// ContentLength is meaningful only when HasContentLength is set.
	ContentLength    uint
	HasContentLength bool

	// TransferEncoding lists the applied codings in order, identity
	// excluded. Chunked is set when the last one is chunked.
	TransferEncoding []string
	Chunked          bool

	Connection string
	// KeepAlive is the keep-alive decision derived from the protocol
	// version and the Connection field once the header section completes.
	KeepAlive bool

	Upgrade proto.Proto
}

func NewMessage(hdrs *headers.Headers) *Message {
	return &Message{Headers: hdrs}
}

func (m *Message) reset() {
	hdrs := m.Headers
	hdrs.Clear()
	te := m.TransferEncoding[:0]
	*m = Message{Headers: hdrs, TransferEncoding: te}
}
