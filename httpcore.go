// Package httpcore assembles the incremental HTTP/1.x parsing pipeline out
// of its parts: the growable input buffer, the header container and the
// header parser, plus the body decoder that picks up where the parser
// stops.
package httpcore

import (
	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/httpcore/headers"
	"github.com/indigo-web/httpcore/http1"
	"github.com/indigo-web/httpcore/internal/inbuf"
	"github.com/indigo-web/httpcore/settings"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/pool"
)

// NewRequestParser wires a parser for request messages with default
// settings.
func NewRequestParser() (*http1.Parser, *http1.Message) {
	return NewRequestParserWith(settings.Default())
}

func NewRequestParserWith(s settings.Settings) (*http1.Parser, *http1.Message) {
	message, buf, lineBuff, valueBuff, toksPool := newParserParts(s)

	return http1.NewRequestParser(message, buf, lineBuff, valueBuff, toksPool, s), message
}

// NewResponseParser wires a parser for response messages with default
// settings.
func NewResponseParser() (*http1.Parser, *http1.Message) {
	return NewResponseParserWith(settings.Default())
}

func NewResponseParserWith(s settings.Settings) (*http1.Parser, *http1.Message) {
	message, buf, lineBuff, valueBuff, toksPool := newParserParts(s)

	return http1.NewResponseParser(message, buf, lineBuff, valueBuff, toksPool, s), message
}

// NewBody wires a body decoder reading from src, honoring the chunk and
// total-size limits of s.
func NewBody(src http1.Source, s settings.Settings) *http1.Body {
	chunkedSettings := chunkedbody.DefaultSettings()
	chunkedSettings.MaxChunkSize = s.Body.MaxChunkSize

	return http1.NewBody(src, chunkedbody.NewParser(chunkedSettings), s.Body)
}

func newParserParts(s settings.Settings) (
	*http1.Message, *inbuf.Buffer, *buffer.Buffer[byte], *buffer.Buffer[byte],
	pool.ObjectPool[[]string],
) {
	hdrs := headers.NewPrealloc(s.Headers.Number.Default, s.Headers.Section.Default)
	message := http1.NewMessage(hdrs)
	buf := inbuf.New(s.Input.InitialSize, s.Input.GrowBy)
	lineBuff := buffer.NewBuffer[byte](
		s.StartLine.Length.Default,
		s.StartLine.Length.Maximal,
	)
	valueBuff := buffer.NewBuffer[byte](
		s.Headers.Value.Default,
		s.Headers.Value.Maximal,
	)
	toksPool := pool.NewObjectPool[[]string](s.Headers.Number.Default)

	return message, buf, lineBuff, valueBuff, *toksPool
}
