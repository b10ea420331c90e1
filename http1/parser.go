// Package http1 implements the incremental HTTP/1.x header parser: a
// forward-only state machine over an exclusively owned growable input
// buffer, producing a Message with a packed header container.
package http1

import (
	"bytes"
	"fmt"

	"github.com/indigo-web/httpcore/bnf"
	"github.com/indigo-web/httpcore/internal/inbuf"
	"github.com/indigo-web/httpcore/method"
	"github.com/indigo-web/httpcore/proto"
	"github.com/indigo-web/httpcore/settings"
	"github.com/indigo-web/httpcore/status"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/pool"
	"github.com/indigo-web/utils/uf"
)

// Parser turns a stream of bytes committed in arbitrary-sized chunks into a
// start-line and a header-field collection. It modifies the message object
// by pointer in performance purposes. The caller drives it cooperatively:
// fill a Prepare region, Commit, invoke ParseHeader, and repeat for as long
// as it reports status.ErrNeedMore.
type Parser struct {
	message   *Message
	buf       *inbuf.Buffer
	lineBuff  *buffer.Buffer[byte]
	valueBuff *buffer.Buffer[byte]
	toksPool  pool.ObjectPool[[]string]
	cfg       settings.Settings
	state     parserState
	response  bool

	// header-section accounting
	section      int
	fieldsNumber int

	// semantic hook state
	clSeen        bool
	teSeen        bool
	connClose     bool
	connKeepAlive bool
}

func newParser(
	message *Message, buf *inbuf.Buffer, lineBuff, valueBuff *buffer.Buffer[byte],
	toksPool pool.ObjectPool[[]string], cfg settings.Settings, response bool,
) *Parser {
	return &Parser{
		message:   message,
		buf:       buf,
		lineBuff:  lineBuff,
		valueBuff: valueBuff,
		toksPool:  toksPool,
		cfg:       cfg,
		state:     sStart,
		response:  response,
	}
}

// NewRequestParser returns a parser expecting a request-line first.
func NewRequestParser(
	message *Message, buf *inbuf.Buffer, lineBuff, valueBuff *buffer.Buffer[byte],
	toksPool pool.ObjectPool[[]string], cfg settings.Settings,
) *Parser {
	return newParser(message, buf, lineBuff, valueBuff, toksPool, cfg, false)
}

// NewResponseParser returns a parser expecting a status-line first.
func NewResponseParser(
	message *Message, buf *inbuf.Buffer, lineBuff, valueBuff *buffer.Buffer[byte],
	toksPool pool.ObjectPool[[]string], cfg settings.Settings,
) *Parser {
	return newParser(message, buf, lineBuff, valueBuff, toksPool, cfg, true)
}

// Prepare exposes the input buffer's writable region, growing it if needed.
// Any previously returned region or pending view is invalidated once growth
// happens.
func (p *Parser) Prepare() []byte {
	return p.buf.Prepare()
}

// Commit confirms n bytes of the latest Prepare region as filled.
func (p *Parser) Commit(n int) {
	p.buf.Commit(n)
}

// CommitEOF marks that no further bytes will arrive.
func (p *Parser) CommitEOF() {
	p.buf.CommitEOF()
}

// ParseHeader processes as much of the committed-but-unparsed input as the
// grammar allows, advancing through the start-line and header fields and
// stopping at the body boundary. status.ErrNeedMore means the caller should
// commit more bytes and retry: the call is idempotent, bytes confirmed so
// far are neither mutated nor re-interpreted. Any other error is terminal
// for the message. A nil return means the header section is complete.
func (p *Parser) ParseHeader() error {
	for {
		switch p.state {
		case sStart:
			if err := p.skipEmptyLines(); err != nil {
				return err
			}

			p.state = sStartLine
		case sStartLine:
			if err := p.parseStartLine(); err != nil {
				return err
			}

			p.state = sFields
		case sFields:
			if err := p.parseFields(); err != nil {
				return err
			}

			p.state = sBody
			return nil
		case sBody:
			return nil
		default:
			panic(fmt.Sprintf("BUG: http1: unexpected parser state: %v", p.state))
		}
	}
}

// Body returns the committed bytes following the header section. The view
// obeys the usual rule: invalid after the next growing Prepare.
func (p *Parser) Body() []byte {
	if p.state != sBody {
		return nil
	}

	return p.buf.Pending()
}

// Proto reports the parsed protocol version, Unknown before the start-line
// is complete.
func (p *Parser) Proto() proto.Proto {
	return p.message.Proto
}

// Skip consumes n pending bytes without interpreting them. It is meant for
// the body phase, when decoded payload bytes are handed over to an external
// decoder and must not be seen again.
func (p *Parser) Skip(n int) {
	p.buf.Advance(n)
}

// Reset prepares the parser for the next message on the same connection:
// unparsed input is retained, everything else is dropped.
func (p *Parser) Reset() {
	p.buf.Rebase()
	p.lineBuff.Clear()
	p.valueBuff.Clear()
	p.message.reset()
	p.state = sStart
	p.section = 0
	p.fieldsNumber = 0
	p.clSeen = false
	p.teSeen = false
	p.connClose = false
	p.connKeepAlive = false
}

// needMore distinguishes a stream that may still produce bytes from one
// that ended mid-header.
func (p *Parser) needMore() error {
	if p.buf.EOF() {
		return status.ErrIncomplete
	}

	return status.ErrNeedMore
}

// advance consumes n fully recognized bytes, accounting them against the
// header-section limit.
func (p *Parser) advance(n int) error {
	p.buf.Advance(n)
	p.section += n
	if p.section > p.cfg.Headers.Section.Maximal {
		return status.ErrHeaderFieldsTooLarge
	}

	return nil
}

// sectionExceeded reports whether the unconsumed bytes already prove the
// section limit cannot be met, making an early failure possible without
// waiting for a terminator that may never come.
func (p *Parser) sectionExceeded(pendingLen int) bool {
	return p.section+pendingLen > p.cfg.Headers.Section.Maximal
}

// skipEmptyLines tolerates empty CRLF lines ahead of the start-line, which
// RFC 7230 recommends ignoring in the interest of robustness.
func (p *Parser) skipEmptyLines() error {
	for {
		pending := p.buf.Pending()
		switch {
		case len(pending) == 0:
			return p.needMore()
		case pending[0] != '\r':
			return nil
		case len(pending) == 1:
			return p.needMore()
		case pending[1] != '\n':
			return status.ErrBadLineEnding
		}

		if err := p.advance(2); err != nil {
			return err
		}
	}
}

func (p *Parser) parseStartLine() error {
	pending := p.buf.Pending()
	lf := bytes.IndexByte(pending, '\n')
	if lf == -1 {
		if p.sectionExceeded(len(pending)) {
			return status.ErrHeaderFieldsTooLarge
		}
		if len(pending) > p.cfg.StartLine.Length.Maximal {
			return status.ErrStartLineTooLong
		}

		return p.needMore()
	}

	line := pending[:lf]
	if len(line) == 0 || line[len(line)-1] != '\r' {
		return status.ErrBadLineEnding
	}

	line = line[:len(line)-1]
	if bytes.IndexByte(line, '\r') != -1 {
		return status.ErrBadLineEnding
	}

	var err error
	if p.response {
		err = p.parseStatusLine(line)
	} else {
		err = p.parseRequestLine(line)
	}
	if err != nil {
		return err
	}

	return p.advance(lf + 1)
}

// parseRequestLine recognizes "method SP request-target SP HTTP-version".
// The target is materialized into the start-line scratch buffer, as views
// into the input do not survive buffer growth.
func (p *Parser) parseRequestLine(line []byte) error {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return status.ErrBadStartLine
	}

	m := method.Parse(uf.B2S(line[:sp]))
	if m == method.Unknown {
		return status.ErrBadStartLine
	}

	rest := line[sp+1:]
	sp = bytes.LastIndexByte(rest, ' ')
	if sp == -1 {
		return status.ErrBadStartLine
	}

	target, version := rest[:sp], rest[sp+1:]
	if len(target) == 0 || bnf.Skip(target, 0, bnf.Vchar) != len(target) {
		return status.ErrBadStartLine
	}

	v := proto.FromBytes(version)
	if v == proto.Unknown {
		return status.ErrBadVersion
	}

	if !p.lineBuff.Append(target...) {
		return status.ErrStartLineTooLong
	}

	p.message.Method = m
	p.message.Target = uf.B2S(p.lineBuff.Finish())
	p.message.Proto = v

	return nil
}

// parseStatusLine recognizes "HTTP-version SP status-code SP reason-phrase",
// the reason phrase being optional.
func (p *Parser) parseStatusLine(line []byte) error {
	v, err := proto.Parse(line)
	if err != nil {
		return status.ErrBadVersion
	}

	line = line[proto.TokenLength:]
	if len(line) < len(" 100") || line[0] != ' ' {
		return status.ErrBadStartLine
	}

	code := 0
	for _, digit := range line[1:4] {
		if !bnf.Is(digit, bnf.Digit) {
			return status.ErrBadStartLine
		}

		code = code*10 + int(digit-'0')
	}

	line = line[4:]
	if len(line) > 0 {
		if line[0] != ' ' {
			return status.ErrBadStartLine
		}

		reason := line[1:]
		if bnf.Skip(reason, 0, bnf.FieldVchar|bnf.OWS) != len(reason) {
			return status.ErrBadStartLine
		}
		if !p.lineBuff.Append(reason...) {
			return status.ErrStartLineTooLong
		}

		p.message.Reason = uf.B2S(p.lineBuff.Finish())
	}

	p.message.Proto = v
	p.message.Code = code

	return nil
}

func (p *Parser) parseFields() error {
	for {
		pending := p.buf.Pending()
		if len(pending) < 2 {
			if p.sectionExceeded(len(pending)) {
				return status.ErrHeaderFieldsTooLarge
			}

			return p.needMore()
		}

		if pending[0] == '\r' {
			if pending[1] != '\n' {
				return status.ErrBadLineEnding
			}
			if err := p.advance(2); err != nil {
				return err
			}

			return p.finalize()
		}

		n, err := p.parseFieldLine(pending)
		switch err {
		case nil:
		case status.ErrNeedMore:
			if p.sectionExceeded(len(pending)) {
				return status.ErrHeaderFieldsTooLarge
			}

			return p.needMore()
		default:
			return err
		}

		if err = p.advance(n); err != nil {
			return err
		}
	}
}

// finalize settles the message-level facts once the whole header section is
// syntactically accepted.
func (p *Parser) finalize() error {
	m := p.message

	// a message advertising both framing mechanisms is a smuggling vector,
	// not something to quietly repair
	if p.teSeen && p.clSeen {
		return status.ErrBadContentLength
	}

	switch m.Proto {
	case proto.HTTP11:
		m.KeepAlive = !p.connClose
	case proto.HTTP10:
		m.KeepAlive = p.connKeepAlive
	}

	return nil
}
