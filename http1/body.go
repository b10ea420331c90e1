package http1

import (
	"io"
	"math"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/httpcore/settings"
	"github.com/indigo-web/httpcore/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Source supplies raw stream bytes to a body reader. Unread hands back a
// tail the reader recognized but does not own, to be returned first by the
// next Read.
type Source interface {
	Read() ([]byte, error)
	Unread([]byte)
}

// Body decodes the message payload that follows a parsed header section,
// framed either by Content-Length or by the chunked coding.
type Body struct {
	src          Source
	chunkParser  *chunkedbody.Parser
	cfg          settings.Body
	bytesLeft    uint
	received     uint
	isChunked    bool
	hasTrailer   bool
	eof          bool
	pending      []byte
	pendingErr   error
	fullBodyBuff []byte
}

func NewBody(src Source, chunkParser *chunkedbody.Parser, cfg settings.Body) *Body {
	return &Body{
		src:         src,
		chunkParser: chunkParser,
		cfg:         cfg,
	}
}

// Init arms the body reader for the message just parsed. preread carries
// bytes the header parser committed past the header terminator; they belong
// to the body and are consumed first.
func (b *Body) Init(m *Message, preread []byte) {
	b.isChunked = m.Chunked
	b.hasTrailer = m.Headers.Has("trailer")
	b.bytesLeft = 0
	if m.HasContentLength {
		b.bytesLeft = m.ContentLength
	}

	// never carried over: a body-less message must drain freshly, or the
	// Bytes shortcut would resurface the previous message's payload
	b.eof = false
	b.received = 0
	b.pending = nil
	b.pendingErr = nil

	if len(preread) > 0 {
		b.src.Unread(preread)
	}
}

// Retrieve returns the next decoded piece of the body. The final piece
// comes with io.EOF; the piece stays valid until the next call.
func (b *Body) Retrieve() ([]byte, error) {
	if b.eof {
		return nil, io.EOF
	}

	var (
		piece []byte
		err   error
	)

	if b.isChunked {
		piece, err = b.chunked()
	} else {
		piece, err = b.plain()
	}

	if err == io.EOF {
		b.eof = true
	}

	return piece, err
}

// Bytes drains the rest of the body into one contiguous slice.
func (b *Body) Bytes() ([]byte, error) {
	if b.eof {
		return b.fullBodyBuff, nil
	}

	if !b.isChunked && uint(cap(b.fullBodyBuff)) < b.bytesLeft {
		b.fullBodyBuff = make([]byte, 0, b.bytesLeft)
	}

	b.fullBodyBuff = b.fullBodyBuff[:0]

	for {
		data, err := b.Retrieve()
		b.fullBodyBuff = append(b.fullBodyBuff, data...)
		switch err {
		case nil:
		case io.EOF:
			return b.fullBodyBuff, nil
		default:
			return nil, err
		}
	}
}

func (b *Body) String() (string, error) {
	bytes, err := b.Bytes()

	return uf.B2S(bytes), err
}

// Read implements the io.Reader interface.
func (b *Body) Read(into []byte) (n int, err error) {
	// a piece carrying only chunk framing decodes to zero bytes; keep
	// retrieving so the caller never sees a bare (0, nil)
	for len(b.pending) == 0 && b.pendingErr == nil {
		b.pending, b.pendingErr = b.Retrieve()
	}

	n = copy(into, b.pending)
	b.pending = b.pending[n:]

	if len(b.pending) == 0 && b.pendingErr != nil {
		err = b.pendingErr
	}

	return n, err
}

// JSON convoys the body to a json unmarshaller and behaves in a similar
// manner.
func (b *Body) JSON(model any) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}

	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err = iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// Discard reads the body out without keeping it, so the stream is
// positioned at the next message.
func (b *Body) Discard() (err error) {
	for !b.eof {
		_, err = b.Retrieve()
		if err != nil {
			break
		}
	}

	if err == io.EOF {
		err = nil
	}

	return err
}

func (b *Body) plain() (body []byte, err error) {
	if b.bytesLeft == 0 {
		return nil, io.EOF
	}
	if b.bytesLeft > b.cfg.MaxSize {
		return nil, status.ErrBodyTooLarge
	}

	data, err := b.read()
	if err != nil {
		return nil, err
	}

	if dataLen := uint(len(data)); dataLen >= b.bytesLeft {
		body, data = data[:b.bytesLeft], data[b.bytesLeft:]
		b.src.Unread(data)
		b.bytesLeft = 0
		err = io.EOF
	} else {
		b.bytesLeft -= dataLen
		body = data
	}

	return body, err
}

func (b *Body) chunked() (body []byte, err error) {
	data, err := b.read()
	if err != nil {
		return nil, err
	}

	chunk, extra, err := b.chunkParser.Parse(data, b.hasTrailer)
	switch err {
	case nil, io.EOF:
	default:
		return nil, err
	}

	received, overflows := adduint(b.received, uint(len(chunk)))
	if overflows || received > b.cfg.MaxSize {
		return nil, status.ErrBodyTooLarge
	}

	b.received = received
	b.src.Unread(extra)

	return chunk, err
}

// read pulls the next raw piece, turning a stream that ended mid-body into
// an explicit failure: io.EOF from the source never means a complete body
// here, the framing does.
func (b *Body) read() ([]byte, error) {
	data, err := b.src.Read()
	switch err {
	case nil:
		return data, nil
	case io.EOF:
		return nil, status.ErrIncomplete
	default:
		return nil, err
	}
}

func adduint(x, y uint) (uint, bool) {
	return x + y, math.MaxUint-x < y
}
