// Package bnf carries the reusable pieces of the RFC 7230 grammar: byte
// classifiers, the element/list consumption protocol and whole-string
// validators built on top of it. Elements treat the end of their input as
// the definitive end of the message; resumable scanning against a growing
// buffer is the parser's business, not the grammar's.
package bnf

import (
	"github.com/indigo-web/httpcore/status"
	"github.com/indigo-web/utils/uf"
)

// Element is a single parseable grammar unit. Parse attempts to consume
// exactly one instance of the element from the front of b, returning the
// number of bytes it consumed. A complete match is reported via
// status.ErrEnd; anything else is a mismatch, and the returned length must
// be zero.
type Element interface {
	Parse(b []byte) (n int, err error)
}

// List is a repeatable grammar sequence driven through a begin/increment
// protocol. Begin consumes the first item, Increment every subsequent one;
// either reports status.ErrEnd once the list is exhausted.
type List interface {
	Begin(b []byte) (n int, err error)
	Increment(b []byte, pos int) (n int, err error)
}

// Consume parses exactly one instance of the element at the front of b,
// returning the number of consumed bytes. A failed match consumes nothing,
// which callers treat as "no match" rather than an error.
func Consume(e Element, b []byte) int {
	n, err := e.Parse(b)
	if err != status.ErrEnd {
		return 0
	}

	return n
}

// ConsumeList repeatedly applies the list's begin/increment protocol until
// it signals completion. Any failure mid-list renders the whole call a
// non-match, consuming nothing.
func ConsumeList(l List, b []byte) int {
	pos, err := l.Begin(b)

	for {
		if err == status.ErrEnd {
			return pos
		}
		if err != nil {
			return 0
		}

		pos, err = l.Increment(b, pos)
	}
}

// IsValid reports whether s matches the element exactly, start to end.
func IsValid(e Element, s string) bool {
	return Consume(e, uf.S2B(s)) == len(s)
}

// IsValidList reports whether s matches the list exactly, start to end.
func IsValidList(l List, s string) bool {
	return ConsumeList(l, uf.S2B(s)) == len(s)
}

// Validate is the raising counterpart of IsValid for one-shot call sites.
func Validate(e Element, s string) error {
	n, err := e.Parse(uf.S2B(s))
	switch {
	case err != status.ErrEnd:
		return err
	case n != len(s):
		return status.ErrBadValue
	}

	return nil
}
