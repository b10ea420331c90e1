package http1

type parserState uint8

// States advance strictly forward. A state handler runs at most once per
// transition: completion falls through into the next state without
// returning to the caller, and only the need for more input suspends the
// walk.
const (
	sStart parserState = iota + 1
	sStartLine
	sFields
	sBody
)
