package bnf

import (
	"testing"

	"github.com/indigo-web/httpcore/status"
	"github.com/stretchr/testify/require"
)

func TestClasses(t *testing.T) {
	t.Run("tchar", func(t *testing.T) {
		for _, c := range []byte("abczABCZ059!#$%&'*+-.^_`|~") {
			require.True(t, Is(c, Tchar), string(c))
		}
		for _, c := range []byte(" \t:;,/\"(){}<>@\r\n\x00") {
			require.False(t, Is(c, Tchar), string(c))
		}
	})

	t.Run("field vchar includes obs-text", func(t *testing.T) {
		require.True(t, Is('!', FieldVchar))
		require.True(t, Is('~', FieldVchar))
		require.True(t, Is(0x80, FieldVchar))
		require.True(t, Is(0xff, FieldVchar))
		require.False(t, Is(' ', FieldVchar))
		require.False(t, Is(0x7f, FieldVchar))
		require.False(t, Is('\r', FieldVchar))
	})

	t.Run("vchar is visible ascii only", func(t *testing.T) {
		require.True(t, Is('/', Vchar))
		require.False(t, Is(0x80, Vchar))
		require.False(t, Is(' ', Vchar))
	})

	t.Run("unions", func(t *testing.T) {
		require.True(t, Is(' ', FieldVchar|OWS))
		require.True(t, Is('\t', FieldVchar|OWS))
		require.True(t, Is('5', Tchar|Digit))
	})
}

func TestSkip(t *testing.T) {
	require.Equal(t, 5, Skip([]byte("hello world"), 0, Tchar))
	require.Equal(t, 6, Skip([]byte("hello world"), 5, OWS))
	require.Equal(t, 3, Skip([]byte("abc"), 0, Tchar))
	require.Equal(t, 2, Skip([]byte("abc"), 2, OWS))
}

func TestToken(t *testing.T) {
	require.True(t, IsValid(Token{}, "chunked"))
	require.True(t, IsValid(Token{}, "Content-Length"))
	require.False(t, IsValid(Token{}, ""))
	require.False(t, IsValid(Token{}, "two words"))
	require.False(t, IsValid(Token{}, "semi:colon"))

	n, err := Token{}.Parse([]byte("gzip, deflate"))
	require.ErrorIs(t, err, status.ErrEnd)
	require.Equal(t, 4, n)

	_, err = Token{}.Parse([]byte(", gzip"))
	require.ErrorIs(t, err, status.ErrBadField)
}

func TestFieldValue(t *testing.T) {
	require.True(t, IsValid(FieldValue{}, ""))
	require.True(t, IsValid(FieldValue{}, "text/html; q=0.9"))
	require.True(t, IsValid(FieldValue{}, "tabs\tand spaces"))
	require.False(t, IsValid(FieldValue{}, "line\r\nbreak"))
	require.False(t, IsValid(FieldValue{}, "nul\x00byte"))
}

func TestTokenList(t *testing.T) {
	for _, value := range []string{
		"close",
		"keep-alive, upgrade",
		"gzip,deflate , br",
		"a,,b",
		", ,a",
		"a, b,",
	} {
		require.True(t, IsValidList(TokenList{}, value), value)
	}

	for _, value := range []string{
		"",
		" ",
		",",
		"two words",
		"close;",
		"a, b c",
	} {
		require.False(t, IsValidList(TokenList{}, value), value)
	}
}

func TestConsume(t *testing.T) {
	t.Run("mismatch consumes nothing", func(t *testing.T) {
		require.Zero(t, Consume(Token{}, []byte(":rest")))
	})

	t.Run("list mismatch consumes nothing", func(t *testing.T) {
		require.Zero(t, ConsumeList(TokenList{}, []byte(",")))
	})

	t.Run("list stops ahead of foreign bytes", func(t *testing.T) {
		require.Equal(t, len("gzip, br"), ConsumeList(TokenList{}, []byte("gzip, br")))
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Token{}, "chunked"))
	require.ErrorIs(t, Validate(Token{}, ""), status.ErrBadField)
	require.ErrorIs(t, Validate(Token{}, "gzip br"), status.ErrBadValue)
}
