package httpcore

import (
	"strings"
	"testing"

	"github.com/indigo-web/httpcore/http1"
	"github.com/indigo-web/httpcore/method"
	"github.com/indigo-web/httpcore/proto"
	"github.com/indigo-web/httpcore/settings"
	"github.com/stretchr/testify/require"
)

func feed(parser *http1.Parser, data string) {
	for len(data) > 0 {
		region := parser.Prepare()
		n := copy(region, data)
		parser.Commit(n)
		data = data[n:]
	}
}

func TestRequestPipeline(t *testing.T) {
	parser, message := NewRequestParser()
	raw := "POST /submit HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Content-Length: 18\r\n" +
		"\r\n" +
		`{"hello": "world"}`

	feed(parser, raw)
	require.NoError(t, parser.ParseHeader())
	require.Equal(t, method.POST, message.Method)
	require.Equal(t, "/submit", message.Target)
	require.Equal(t, uint(18), message.ContentLength)

	preread := parser.Body()
	parser.Skip(len(preread))

	body := NewBody(http1.NewReaderSource(strings.NewReader(""), 0), settings.Default())
	body.Init(message, preread)

	var model struct {
		Hello string `json:"hello"`
	}
	require.NoError(t, body.JSON(&model))
	require.Equal(t, "world", model.Hello)
}

func TestResponsePipeline(t *testing.T) {
	parser, message := NewResponseParser()
	feed(parser, "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n")
	require.NoError(t, parser.ParseHeader())
	require.Equal(t, proto.HTTP11, message.Proto)
	require.Equal(t, 200, message.Code)
	require.Equal(t, "OK", message.Reason)
	require.True(t, message.KeepAlive)
}

func TestCustomSettings(t *testing.T) {
	s := settings.Default()
	s.Headers.Number.Maximal = 1

	parser, _ := NewRequestParserWith(s)
	feed(parser, "GET / HTTP/1.1\r\nA: 1\r\nB: 2\r\n\r\n")
	require.Error(t, parser.ParseHeader())
}
