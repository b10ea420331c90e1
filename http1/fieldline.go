package http1

import (
	"github.com/indigo-web/httpcore/bnf"
	"github.com/indigo-web/httpcore/field"
	"github.com/indigo-web/httpcore/status"
	"github.com/indigo-web/utils/uf"
)

// parseFieldLine recognizes a single field line at the front of pending,
// including any obs-fold continuations, and returns how many bytes it
// spans. It either succeeds whole or consumes nothing: on ErrNeedMore the
// input has not been touched and the next call restarts from the very same
// field start, so partially fed fields cost a rescan instead of carrying
// per-field resumption state.
//
// The common straight-line field never copies: name and value stay views
// into pending until Push materializes them in the arena. Only a folded
// value goes through the scratch buffer, where the CRLF plus leading
// whitespace of every continuation collapses to a single SP.
func (p *Parser) parseFieldLine(pending []byte) (consumed int, err error) {
	nameEnd := bnf.Skip(pending, 0, bnf.Tchar)
	if nameEnd == len(pending) {
		return 0, status.ErrNeedMore
	}
	if nameEnd == 0 || pending[nameEnd] != ':' {
		return 0, status.ErrBadField
	}

	pos := bnf.Skip(pending, nameEnd+1, bnf.OWS)
	p.valueBuff.Clear()

	var (
		valStart = pos
		valEnd   = pos
		// folded-path bookkeeping
		folded    bool
		sepFold   bool
		afterFold bool
		wsFrom    int
		wsTo      int
	)

	for {
		// a fold is only recognizable as the full CR LF WS triple, so the
		// classification below always has three bytes of lookahead
		if len(pending)-pos < 3 {
			return 0, status.ErrNeedMore
		}

		switch c := pending[pos]; {
		case bnf.Is(c, bnf.FieldVchar):
			run := bnf.Skip(pending, pos, bnf.FieldVchar)
			if folded {
				switch {
				case sepFold:
					// leading fold, nothing accumulated yet: no separator
					if p.valueBuff.SegmentLength() > 0 && !p.valueBuff.Append(' ') {
						return 0, status.ErrHeaderFieldsTooLarge
					}

					sepFold = false
				case wsTo > wsFrom:
					if !p.valueBuff.Append(pending[wsFrom:wsTo]...) {
						return 0, status.ErrHeaderFieldsTooLarge
					}
				}

				wsFrom, wsTo = 0, 0
				if !p.valueBuff.Append(pending[pos:run]...) {
					return 0, status.ErrHeaderFieldsTooLarge
				}
			}

			valEnd = run
			afterFold = false
			pos = run
		case bnf.Is(c, bnf.OWS):
			run := bnf.Skip(pending, pos, bnf.OWS)
			if folded {
				// interior whitespace is kept, trailing whitespace is not;
				// which one this run is becomes known at the next byte
				wsFrom, wsTo = pos, run
			}

			pos = run
		case c == '\r':
			if pending[pos+1] != '\n' {
				return 0, status.ErrBadLineEnding
			}

			if ws := pending[pos+2]; ws == ' ' || ws == '\t' {
				// CR LF WS: an obs-fold continuation, not a terminator
				if afterFold {
					return 0, status.ErrBadValue
				}
				if !folded {
					folded = true
					if !p.valueBuff.Append(pending[valStart:valEnd]...) {
						return 0, status.ErrHeaderFieldsTooLarge
					}
				}

				// whitespace ahead of the fold was trailing on its line
				wsFrom, wsTo = 0, 0
				sepFold = true
				afterFold = true
				pos = bnf.Skip(pending, pos+3, bnf.OWS)
			} else {
				if afterFold {
					// the continuation line carried nothing to fold
					return 0, status.ErrBadValue
				}

				return p.acceptField(pending, nameEnd, valStart, valEnd, folded, pos+2)
			}
		default:
			return 0, status.ErrBadField
		}
	}
}

// acceptField materializes a syntactically complete field line in the
// header container and runs its semantic hook, if any.
func (p *Parser) acceptField(
	pending []byte, nameEnd, valStart, valEnd int, folded bool, consumed int,
) (int, error) {
	p.fieldsNumber++
	if p.fieldsNumber > p.cfg.Headers.Number.Maximal {
		return 0, status.ErrTooManyHeaders
	}

	value := pending[valStart:valEnd]
	if folded {
		value = p.valueBuff.Finish()
	}
	if len(value) > p.cfg.Headers.Value.Maximal {
		return 0, status.ErrHeaderFieldsTooLarge
	}

	name := uf.B2S(pending[:nameEnd])
	id := field.Parse(name)
	hdrs := p.message.Headers
	hdrs.Push(id, name, uf.B2S(value))

	if id != field.Other {
		// hooks see the arena copy, which outlives the input buffer
		if err := p.hook(id, hdrs.Record(hdrs.Len()-1).Value); err != nil {
			return 0, err
		}
	}

	return consumed, nil
}
