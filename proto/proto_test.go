package proto

import (
	"testing"

	"github.com/indigo-web/httpcore/status"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("supported versions", func(t *testing.T) {
		p, err := Parse([]byte("HTTP/1.1"))
		require.NoError(t, err)
		require.Equal(t, HTTP11, p)

		p, err = Parse([]byte("HTTP/1.0\r\n"))
		require.NoError(t, err)
		require.Equal(t, HTTP10, p)
	})

	t.Run("short input wants more", func(t *testing.T) {
		for _, raw := range []string{"", "H", "HTTP/1."} {
			_, err := Parse([]byte(raw))
			require.ErrorIs(t, err, status.ErrNeedMore, raw)
		}
	})

	t.Run("mismatches", func(t *testing.T) {
		for _, raw := range []string{"HTTP/1.2", "HTTP/2.0", "http/1.1", "SMTP/1.1"} {
			_, err := Parse([]byte(raw))
			require.ErrorIs(t, err, status.ErrBadVersion, raw)
		}
	})
}

func TestFromBytes(t *testing.T) {
	require.Equal(t, HTTP11, FromBytes([]byte("HTTP/1.1")))
	require.Equal(t, HTTP10, FromBytes([]byte("HTTP/1.0")))
	require.Equal(t, Unknown, FromBytes([]byte("HTTP/1.1 ")))
	require.Equal(t, Unknown, FromBytes([]byte("HTTP/1.")))
	require.Equal(t, Unknown, FromBytes([]byte("HTTP/1.5")))
}

func TestString(t *testing.T) {
	require.Equal(t, "HTTP/1.1", HTTP11.String())
	require.Equal(t, "HTTP/1.0", HTTP10.String())
	require.Empty(t, Unknown.String())
}

func TestMask(t *testing.T) {
	require.NotZero(t, HTTP10&HTTP1)
	require.NotZero(t, HTTP11&HTTP1)
	require.Zero(t, Unknown&HTTP1)
}

func TestChooseUpgrade(t *testing.T) {
	require.Equal(t, HTTP11, ChooseUpgrade("HTTP/1.1"))
	require.Equal(t, HTTP10, ChooseUpgrade("http/1.0"))
	require.Equal(t, HTTP11, ChooseUpgrade("websocket, http/1.1"))
	require.Equal(t, Unknown, ChooseUpgrade("websocket"))
	require.Equal(t, Unknown, ChooseUpgrade(""))
}
