package status

// Code classifies the outcome of a parsing operation. Unlike HTTP status
// codes, these describe the state of the byte stream itself and are meant
// to be acted on by the transport layer driving the parser.
type Code uint8

const (
	// NeedMore signals that the input ended before the current grammar unit
	// could be recognized. It is ordinary control flow: commit more bytes
	// and retry. Everything else except End is terminal for the message.
	NeedMore Code = iota + 1

	// End marks the completion of a grammar element or list. It never
	// surfaces as a message-level failure and exists for the bnf package
	// protocol only.
	End

	BadVersion
	BadLineEnding
	BadField
	BadValue
	BadStartLine
	StartLineTooLong
	BadContentLength
	BadEncoding
	HeaderFieldsTooLarge
	TooManyHeaders
	Incomplete
	NotFound
	OutOfRange
	BodyTooLarge
)

// Error carries a parse outcome code alongside a human-readable message.
// All errors produced by this module are of this type, so the code may be
// recovered via errors.As or a plain type assertion.
type Error struct {
	Message string
	Code    Code
}

func New(code Code, message string) error {
	return Error{
		Code:    code,
		Message: message,
	}
}

func (e Error) Error() string {
	return e.Message
}

// CodeOf extracts the outcome code from an error produced by this module.
// Foreign errors map to the zero Code.
func CodeOf(err error) Code {
	if e, ok := err.(Error); ok {
		return e.Code
	}

	return 0
}

var (
	ErrNeedMore = New(NeedMore, "need more input")
	ErrEnd      = New(End, "end of grammar element")

	ErrBadVersion           = New(BadVersion, "malformed or unsupported HTTP version")
	ErrBadLineEnding        = New(BadLineEnding, "malformed line ending")
	ErrBadField             = New(BadField, "malformed header field")
	ErrBadValue             = New(BadValue, "malformed header field value")
	ErrBadStartLine         = New(BadStartLine, "malformed start line")
	ErrStartLineTooLong     = New(StartLineTooLong, "start line is too long")
	ErrBadContentLength     = New(BadContentLength, "malformed Content-Length")
	ErrBadEncoding          = New(BadEncoding, "malformed or unsupported transfer encoding")
	ErrHeaderFieldsTooLarge = New(HeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders       = New(TooManyHeaders, "too many headers")
	ErrIncomplete           = New(Incomplete, "incomplete message")
	ErrNotFound             = New(NotFound, "no such field")
	ErrOutOfRange           = New(OutOfRange, "index out of range")
	ErrBodyTooLarge         = New(BodyTooLarge, "request body is too large")
)
