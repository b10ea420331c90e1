package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	require.Equal(t, Connection, Parse("Connection"))
	require.Equal(t, Connection, Parse("CONNECTION"))
	require.Equal(t, Connection, Parse("Proxy-Connection"))
	require.Equal(t, ContentLength, Parse("content-length"))
	require.Equal(t, TransferEncoding, Parse("Transfer-Encoding"))
	require.Equal(t, Upgrade, Parse("upgrade"))

	require.Equal(t, Other, Parse("Host"))
	require.Equal(t, Other, Parse("Content-Lengthy"))
	require.Equal(t, Other, Parse(""))
}

func TestName(t *testing.T) {
	for id := Other + 1; id <= ID(Count); id++ {
		require.Equal(t, id, Parse(id.Name()))
	}

	require.Empty(t, Other.Name())
	require.Equal(t, "Other", Other.String())
	require.Equal(t, "Content-Length", ContentLength.String())
}
