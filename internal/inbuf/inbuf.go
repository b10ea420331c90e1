// Package inbuf implements the exclusively owned growable byte store the
// parser is fed through. The caller obtains a writable region via Prepare,
// fills a prefix of it and confirms the amount via Commit; the parser
// consumes committed bytes by advancing the parsed mark. The store only
// ever grows during a message's lifetime.
package inbuf

const defaultChunk = 4096

// Buffer keeps three indices over one backing array, with the invariant
// 0 <= parsed <= committed <= capacity. Growth reallocates and copies, so
// any slice previously returned by Prepare or Pending is invalidated by a
// subsequent growing Prepare: a component wanting bytes to outlive the next
// I/O cycle must copy them out first.
type Buffer struct {
	memory  []byte // len is the committed amount
	parsed  int
	initial int
	growBy  int
	eof     bool
}

func New(initialSize, growBy int) *Buffer {
	if initialSize <= 0 {
		initialSize = defaultChunk
	}
	if growBy <= 0 {
		growBy = initialSize
	}

	return &Buffer{
		initial: initialSize,
		growBy:  growBy,
	}
}

// Prepare returns the writable region past the committed bytes, guaranteeing
// at least one writable byte: the first call allocates the initial chunk,
// and a full buffer grows by the configured fixed increment, copying the
// committed bytes into the new storage.
func (b *Buffer) Prepare() []byte {
	switch {
	case b.memory == nil:
		b.memory = make([]byte, 0, b.initial)
	case len(b.memory) == cap(b.memory):
		grown := make([]byte, len(b.memory), cap(b.memory)+b.growBy)
		copy(grown, b.memory)
		b.memory = grown
	}

	return b.memory[len(b.memory):cap(b.memory)]
}

// Commit confirms that the caller has filled the first n bytes of the region
// returned by the latest Prepare. The value must be positive and not exceed
// that region's length; anything else is caller misuse.
func (b *Buffer) Commit(n int) {
	if n <= 0 || n > cap(b.memory)-len(b.memory) {
		panic("BUG: inbuf: commit out of the prepared region")
	}

	b.memory = b.memory[:len(b.memory)+n]
}

// CommitEOF marks that no further bytes will ever arrive. The grammar needs
// it to tell "end of message" from "need more" when no explicit length is
// known.
func (b *Buffer) CommitEOF() {
	b.eof = true
}

func (b *Buffer) EOF() bool {
	return b.eof
}

func (b *Buffer) Committed() int {
	return len(b.memory)
}

func (b *Buffer) Parsed() int {
	return b.parsed
}

// Pending returns the committed-but-unparsed region. The view is valid only
// until the next growing Prepare.
func (b *Buffer) Pending() []byte {
	return b.memory[b.parsed:]
}

// Advance moves the parsed mark forward by n bytes, which must not exceed
// the pending amount. Bytes below the mark are never revisited.
func (b *Buffer) Advance(n int) {
	if n < 0 || b.parsed+n > len(b.memory) {
		panic("BUG: inbuf: advancing past the committed bytes")
	}

	b.parsed += n
}

// Reset drops all state, keeping the allocated capacity.
func (b *Buffer) Reset() {
	b.memory = b.memory[:0]
	b.parsed = 0
	b.eof = false
}

// Rebase prepares the buffer for the next message on the same connection:
// the unparsed tail, if any, is moved to the front and the parsed mark is
// cleared. The EOF mark stays, as the stream itself has not changed.
func (b *Buffer) Rebase() {
	n := copy(b.memory, b.memory[b.parsed:])
	b.memory = b.memory[:n]
	b.parsed = 0
}
