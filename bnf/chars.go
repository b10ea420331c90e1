package bnf

// Class is a set of byte classes a single octet may belong to. Classes are
// combinable, so a single table lookup answers membership in any union.
type Class uint8

const (
	// Tchar is the token character set permitted in field names, methods
	// and coding tokens (RFC 7230 token / tchar).
	Tchar Class = 1 << iota

	// OWS covers optional whitespace: space and horizontal tab.
	OWS

	// FieldVchar covers visible characters permitted in field values,
	// obs-text (0x80-0xFF) included.
	FieldVchar

	// Digit covers ASCII decimal digits.
	Digit

	// Vchar covers all visible ASCII characters. Used by request targets
	// and reason phrases.
	Vchar
)

var table = buildTable()

func buildTable() (t [256]Class) {
	for _, c := range "!#$%&'*+-.^_`|~" {
		t[c] |= Tchar
	}
	for c := '0'; c <= '9'; c++ {
		t[c] |= Tchar | Digit
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= Tchar
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] |= Tchar
	}

	t[' '] |= OWS
	t['\t'] |= OWS

	for c := 0x21; c <= 0x7e; c++ {
		t[c] |= FieldVchar | Vchar
	}
	// obs-text
	for c := 0x80; c <= 0xff; c++ {
		t[c] |= FieldVchar
	}

	return t
}

// Is reports whether c belongs to any of the given classes.
func Is(c byte, class Class) bool {
	return table[c]&class != 0
}

// Skip advances pos past every leading byte of b belonging to the given
// classes, returning the position of the first byte that does not (or
// len(b) if the input ended first).
func Skip(b []byte, pos int, class Class) int {
	for pos < len(b) && table[b[pos]]&class != 0 {
		pos++
	}

	return pos
}
