package settings

import "math"

type number interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64
}

// Setting carries a soft and a hard limit of something. Usually the Default
// field stands for the size of a pre-allocation, and Maximal for the point
// at which the parser gives up on the message.
type Setting[T number] struct {
	Default T
	Maximal T
}

type (
	// HeadersNumber is responsible for the number of header fields.
	// Default value is the pre-allocated capacity of the container index.
	// Maximal value is the number of fields after which parsing fails.
	HeadersNumber Setting[int]

	// HeadersSection is responsible for the total size of the header section,
	// the start-line included.
	// Default value is the initial size of the headers arena.
	// Maximal value is the limit after which parsing fails.
	HeadersSection Setting[int]

	// ValueSpace is responsible for the canonical field value scratch buffer.
	// Default value is its initial size.
	// Maximal value bounds a single field value length.
	ValueSpace Setting[int]

	// LineLength is responsible for the start-line scratch buffer.
	// Default value is its initial size.
	// Maximal value bounds the start-line length.
	LineLength Setting[int]
)

type (
	Headers struct {
		Number  HeadersNumber
		Section HeadersSection
		Value   ValueSpace
		// MaxEncodingTokens bounds the number of codings listed in a single
		// Transfer-Encoding field.
		MaxEncodingTokens int
	}

	StartLine struct {
		Length LineLength
	}

	// Input controls the growable buffer fed through Prepare/Commit.
	Input struct {
		// InitialSize is the size of the chunk allocated by the first Prepare
		// call.
		InitialSize int
		// GrowBy is the fixed increment the buffer grows by once full. Growth
		// reallocates, so any previously obtained view into the buffer must
		// be considered invalid after a growing Prepare.
		GrowBy int
	}

	Body struct {
		// MaxSize bounds the total decoded body length.
		MaxSize uint
		// MaxChunkSize bounds a single chunk of a chunked-encoded body.
		MaxChunkSize int64
	}
)

type Settings struct {
	Headers   Headers
	StartLine StartLine
	Input     Input
	Body      Body
}

func Default() Settings {
	return Settings{
		Headers: Headers{
			Number: HeadersNumber{
				Default: 16,
				Maximal: 100,
			},
			Section: HeadersSection{
				Default: 1024,
				Maximal: 8192,
			},
			Value: ValueSpace{
				Default: 512,
				Maximal: 8192,
			},
			MaxEncodingTokens: 8,
		},
		StartLine: StartLine{
			Length: LineLength{
				Default: 512,
				Maximal: 8192,
			},
		},
		Input: Input{
			InitialSize: 2048,
			GrowBy:      2048,
		},
		Body: Body{
			MaxSize:      math.MaxUint32,
			MaxChunkSize: 1024 * 1024,
		},
	}
}
