package bnf

import "github.com/indigo-web/httpcore/status"

// Token is the 1*tchar grammar element: field names, methods and coding
// tokens all share it.
type Token struct{}

func (Token) Parse(b []byte) (int, error) {
	n := Skip(b, 0, Tchar)
	if n == 0 {
		return 0, status.ErrBadField
	}

	return n, status.ErrEnd
}

// FieldValue matches *( field-vchar / SP / HTAB ), thereby rejecting raw
// control bytes, CR and LF in particular. The empty value is legal.
type FieldValue struct{}

func (FieldValue) Parse(b []byte) (int, error) {
	return Skip(b, 0, FieldVchar|OWS), status.ErrEnd
}

// TokenList is the 1#token grammar list: comma-separated tokens with
// optional whitespace around the separators, empty list elements tolerated
// per the obsolete list grammar. Connection options and transfer codings
// are shaped like this.
type TokenList struct{}

func (TokenList) Begin(b []byte) (int, error) {
	pos := Skip(b, 0, OWS)
	for pos < len(b) && b[pos] == ',' {
		pos = Skip(b, pos+1, OWS)
	}

	n := Skip(b, pos, Tchar)
	if n == pos {
		return 0, status.ErrBadValue
	}

	return n, nil
}

func (TokenList) Increment(b []byte, pos int) (int, error) {
	after := Skip(b, pos, OWS)
	if after == len(b) {
		return after, status.ErrEnd
	}
	if b[after] != ',' {
		// the whitespace run belongs to whatever follows the list
		return pos, status.ErrEnd
	}

	after = Skip(b, after+1, OWS)
	for after < len(b) && b[after] == ',' {
		after = Skip(b, after+1, OWS)
	}
	if after == len(b) {
		// a trailing comma ends the list legally: "a, b," names two codings
		return after, status.ErrEnd
	}

	n := Skip(b, after, Tchar)
	if n == after {
		return 0, status.ErrBadValue
	}

	return n, nil
}
