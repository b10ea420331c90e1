package http1

import (
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/httpcore/headers"
	"github.com/indigo-web/httpcore/settings"
	"github.com/indigo-web/httpcore/status"
	"github.com/stretchr/testify/require"
)

// pieceSource hands out the given pieces one Read at a time, then io.EOF.
type pieceSource struct {
	pieces  [][]byte
	pending []byte
}

func (s *pieceSource) Read() ([]byte, error) {
	if len(s.pending) > 0 {
		data := s.pending
		s.pending = nil

		return data, nil
	}

	if len(s.pieces) == 0 {
		return nil, io.EOF
	}

	data := s.pieces[0]
	s.pieces = s.pieces[1:]

	return data, nil
}

func (s *pieceSource) Unread(tail []byte) {
	if len(tail) > 0 {
		s.pending = tail
	}
}

func getBody(pieces ...[]byte) (*Body, *pieceSource) {
	src := &pieceSource{pieces: pieces}
	chunkedParser := chunkedbody.NewParser(chunkedbody.DefaultSettings())

	return NewBody(src, chunkedParser, settings.Default().Body), src
}

func plainMessage(contentLength uint) *Message {
	m := NewMessage(headers.New())
	m.HasContentLength = true
	m.ContentLength = contentLength

	return m
}

func chunkedMessage() *Message {
	m := NewMessage(headers.New())
	m.Chunked = true

	return m
}

func TestBodyPlain(t *testing.T) {
	t.Run("single piece", func(t *testing.T) {
		sample := "Hello, world!"
		body, _ := getBody([]byte(sample))
		body.Init(plainMessage(uint(len(sample))), nil)

		actual, err := body.String()
		require.NoError(t, err)
		require.Equal(t, sample, actual)
	})

	t.Run("multiple pieces", func(t *testing.T) {
		body, _ := getBody([]byte("Hel"), []byte("lo, "), []byte("wor"), []byte("ld!"))
		body.Init(plainMessage(13), nil)

		actual, err := body.String()
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", actual)
	})

	t.Run("excess bytes are handed back", func(t *testing.T) {
		const buffSize = 10
		first := strings.Repeat("a", buffSize)
		second := strings.Repeat("b", buffSize)

		body, src := getBody([]byte(first + second))
		body.Init(plainMessage(buffSize), nil)

		data, err := body.Retrieve()
		require.ErrorIs(t, err, io.EOF)
		require.Equal(t, first, string(data))

		data, err = src.Read()
		require.NoError(t, err)
		require.Equal(t, second, string(data))
	})

	t.Run("preread bytes come first", func(t *testing.T) {
		body, _ := getBody([]byte(" world!"))
		body.Init(plainMessage(13), []byte("Hello,"))

		actual, err := body.String()
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", actual)
	})

	t.Run("no body at all", func(t *testing.T) {
		body, _ := getBody()
		body.Init(plainMessage(0), nil)

		data, err := body.Retrieve()
		require.ErrorIs(t, err, io.EOF)
		require.Empty(t, data)

		actual, err := body.Bytes()
		require.NoError(t, err)
		require.Empty(t, actual)
	})

	t.Run("size limit", func(t *testing.T) {
		src := &pieceSource{pieces: [][]byte{[]byte("xxxxx")}}
		chunkedParser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
		cfg := settings.Default().Body
		cfg.MaxSize = 4
		body := NewBody(src, chunkedParser, cfg)
		body.Init(plainMessage(5), nil)

		_, err := body.Bytes()
		require.ErrorIs(t, err, status.ErrBodyTooLarge)
	})

	t.Run("truncated stream", func(t *testing.T) {
		body, _ := getBody([]byte("Hel"))
		body.Init(plainMessage(13), nil)

		_, err := body.Bytes()
		require.ErrorIs(t, err, status.ErrIncomplete)
	})
}

func TestBodyReuse(t *testing.T) {
	t.Run("body-less message after a drained one", func(t *testing.T) {
		body, src := getBody([]byte("Hello, world!"))
		body.Init(plainMessage(13), nil)

		actual, err := body.String()
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", actual)

		// the next message on the connection carries no payload; nothing
		// of the previous one may leak through
		body.Init(plainMessage(0), nil)
		data, err := body.Bytes()
		require.NoError(t, err)
		require.Empty(t, data)

		src.pieces = [][]byte{[]byte("second")}
		body.Init(plainMessage(6), nil)
		actual, err = body.String()
		require.NoError(t, err)
		require.Equal(t, "second", actual)
	})
}

func TestBodyChunked(t *testing.T) {
	chunked := "7\r\nMozilla\r\n9\r\nDeveloper\r\n7\r\nNetwork\r\n0\r\n\r\n"
	wantBody := "MozillaDeveloperNetwork"

	t.Run("single piece", func(t *testing.T) {
		body, _ := getBody([]byte(chunked))
		body.Init(chunkedMessage(), nil)

		actual, err := body.String()
		require.NoError(t, err)
		require.Equal(t, wantBody, actual)
	})

	t.Run("as parser leftover", func(t *testing.T) {
		body, _ := getBody()
		body.Init(chunkedMessage(), []byte(chunked))

		actual, err := body.String()
		require.NoError(t, err)
		require.Equal(t, wantBody, actual)
	})
}

func TestBodyRead(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		body, _ := getBody([]byte("Hello, "), []byte("world!"))
		body.Init(plainMessage(13), nil)

		actual, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(actual))
	})

	t.Run("piece carrying chunk framing only", func(t *testing.T) {
		body, _ := getBody([]byte("7\r\n"), []byte("Mozilla\r\n"), []byte("0\r\n\r\n"))
		body.Init(chunkedMessage(), nil)

		// the first piece decodes to nothing; Read must keep going
		// instead of reporting a bare (0, nil)
		buff := make([]byte, 64)
		n, err := body.Read(buff)
		require.NoError(t, err)
		require.Equal(t, "Mozilla", string(buff[:n]))

		rest, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Empty(t, rest)
	})
}

func TestBodyJSON(t *testing.T) {
	sample := `{"hello": "world"}`
	body, _ := getBody([]byte(sample))
	body.Init(plainMessage(uint(len(sample))), nil)

	var model struct {
		Hello string `json:"hello"`
	}
	require.NoError(t, body.JSON(&model))
	require.Equal(t, "world", model.Hello)
}

func TestBodyDiscard(t *testing.T) {
	body, src := getBody([]byte("hello"), []byte("GET /next HTTP/1.1\r\n"))
	body.Init(plainMessage(5), nil)

	require.NoError(t, body.Discard())

	data, err := src.Read()
	require.NoError(t, err)
	require.Equal(t, "GET /next HTTP/1.1\r\n", string(data))
}
