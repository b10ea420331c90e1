package http1

import (
	"strings"

	"github.com/indigo-web/httpcore/bnf"
	"github.com/indigo-web/httpcore/field"
	"github.com/indigo-web/httpcore/proto"
	"github.com/indigo-web/httpcore/status"
	"github.com/indigo-web/utils/strcomp"
)

// hook runs semantic interpretation for a well-known field, right after its
// line has been syntactically accepted and pushed. value points into the
// header arena, so it stays valid for the whole message lifetime.
func (p *Parser) hook(id field.ID, value string) error {
	switch id {
	case field.Connection:
		return p.connectionHook(value)
	case field.ContentLength:
		return p.contentLengthHook(value)
	case field.TransferEncoding:
		return p.transferEncodingHook(value)
	case field.Upgrade:
		return p.upgradeHook(value)
	default:
		return nil
	}
}

func (p *Parser) connectionHook(value string) error {
	if !bnf.IsValidList(bnf.TokenList{}, value) {
		return status.ErrBadValue
	}

	toks := p.toksPool.Acquire()
	toks, _ = splitTokens(toks[:0], value, -1)
	for _, tok := range toks {
		switch {
		case strcomp.EqualFold(tok, "close"):
			p.connClose = true
		case strcomp.EqualFold(tok, "keep-alive"):
			p.connKeepAlive = true
		}
	}

	p.toksPool.Release(toks)
	p.message.Connection = value

	return nil
}

func (p *Parser) contentLengthHook(value string) error {
	n, ok := parseUint(value)
	if !ok {
		return status.ErrBadContentLength
	}
	// repeated fields carrying the same decimal value are a known proxy
	// artifact; disagreeing ones are not
	if p.clSeen && n != p.message.ContentLength {
		return status.ErrBadContentLength
	}

	p.clSeen = true
	p.message.ContentLength = n
	p.message.HasContentLength = true

	return nil
}

func (p *Parser) transferEncodingHook(value string) error {
	if p.teSeen {
		return status.ErrBadEncoding
	}
	if !bnf.IsValidList(bnf.TokenList{}, value) {
		return status.ErrBadValue
	}

	p.teSeen = true
	m := p.message
	toks, ok := splitTokens(m.TransferEncoding[:0], value, p.cfg.Headers.MaxEncodingTokens)
	if !ok {
		return status.ErrBadEncoding
	}

	// identity names the absence of a transformation
	n := 0
	for _, tok := range toks {
		if !strcomp.EqualFold(tok, "identity") {
			toks[n] = tok
			n++
		}
	}
	toks = toks[:n]

	for i, tok := range toks {
		if strcomp.EqualFold(tok, "chunked") {
			// anything applied on top of chunked destroys its framing
			if i != len(toks)-1 {
				return status.ErrBadEncoding
			}

			m.Chunked = true
		}
	}

	m.TransferEncoding = toks

	return nil
}

func (p *Parser) upgradeHook(value string) error {
	p.message.Upgrade = proto.ChooseUpgrade(value)

	return nil
}

// splitTokens appends the comma-separated tokens of a list value onto buff,
// dropping empty elements. A non-negative limit bounds how many tokens are
// accepted.
func splitTokens(buff []string, value string, limit int) ([]string, bool) {
	for len(value) > 0 {
		var token string
		if comma := strings.IndexByte(value, ','); comma == -1 {
			token, value = value, ""
		} else {
			token, value = value[:comma], value[comma+1:]
		}

		token = strings.TrimSpace(token)
		if len(token) == 0 {
			continue
		}
		if limit >= 0 && len(buff) >= limit {
			return buff, false
		}

		buff = append(buff, token)
	}

	return buff, true
}
