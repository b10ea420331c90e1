// Package headers implements the parsed header collection: an append-only,
// insertion-ordered store of fields backed by a single byte arena holding
// the canonical wire serialization.
package headers

import (
	"github.com/indigo-web/httpcore/bnf"
	"github.com/indigo-web/httpcore/field"
	"github.com/indigo-web/httpcore/status"
	"github.com/indigo-web/iter"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Field is a single header record. Name and Value are views into the
// container's arena: they stay valid until the next mutation that may
// reallocate it (Append, Push, ShrinkToFit, Clear).
type Field struct {
	ID    field.ID
	Name  string
	Value string
}

type record struct {
	id                 field.ID
	nameOff, nameLen   uint32
	valueOff, valueLen uint32
}

// Headers keeps one contiguous arena with the serialized header block
// ("Name: value\r\n" per record plus the trailing "\r\n") beside a compact
// parallel index. Records are never merged or replaced: multiple values for
// the same name stay as separate records in append order, which is what
// HTTP multi-value semantics want.
type Headers struct {
	arena      []byte
	records    []record
	matchBuff  []Field
	valuesBuff []string
}

func New() *Headers {
	return NewPrealloc(0, 0)
}

// NewPrealloc returns an instance with storage pre-allocated for about n
// fields occupying up to space arena bytes.
func NewPrealloc(n, space int) *Headers {
	arena := make([]byte, 0, max(space, 2))

	return &Headers{
		arena:   append(arena, '\r', '\n'),
		records: make([]record, 0, n),
	}
}

// Append validates and adds a field. The name must be a token, the value
// composed of field characters and optional whitespace only: raw CR or LF
// in either is rejected. An already present name is never replaced, the new
// record is appended after it.
func (h *Headers) Append(name, value string) error {
	if !bnf.IsValid(bnf.Token{}, name) {
		return status.ErrBadField
	}
	if !isValidValue(value) {
		return status.ErrBadValue
	}

	h.Push(field.Parse(name), name, value)

	return nil
}

// AppendID is Append for a structurally known field, spelled with its
// canonical wire name.
func (h *Headers) AppendID(id field.ID, value string) error {
	name := id.Name()
	if name == "" {
		return status.ErrBadField
	}
	if !isValidValue(value) {
		return status.ErrBadValue
	}

	h.Push(id, name, value)

	return nil
}

// Push adds a record whose name and value are already known to satisfy the
// grammar. This is the parser's hot path: both arguments may be transient
// views, the bytes are copied into the arena immediately.
func (h *Headers) Push(id field.ID, name, value string) {
	// the arena always ends with the block-terminating CRLF; strip it,
	// serialize the new field, then re-add it
	h.arena = h.arena[:len(h.arena)-2]

	nameOff := uint32(len(h.arena))
	h.arena = append(h.arena, name...)
	h.arena = append(h.arena, ':', ' ')
	valueOff := uint32(len(h.arena))
	h.arena = append(h.arena, value...)
	h.arena = append(h.arena, '\r', '\n', '\r', '\n')

	h.records = append(h.records, record{
		id:       id,
		nameOff:  nameOff,
		nameLen:  uint32(len(name)),
		valueOff: valueOff,
		valueLen: uint32(len(value)),
	})
}

// Len returns the number of stored fields.
func (h *Headers) Len() int {
	return len(h.records)
}

func (h *Headers) Empty() bool {
	return h.Len() == 0
}

// Record returns the i-th field in append order. The index is unchecked.
func (h *Headers) Record(i int) Field {
	return h.materialize(h.records[i])
}

// At is the checked counterpart of Record.
func (h *Headers) At(i int) (Field, error) {
	if i < 0 || i >= len(h.records) {
		return Field{}, status.ErrOutOfRange
	}

	return h.materialize(h.records[i]), nil
}

// AtName returns the first field with the name, failing when there is none.
func (h *Headers) AtName(name string) (Field, error) {
	i := h.Find(name)
	if i == -1 {
		return Field{}, status.ErrNotFound
	}

	return h.materialize(h.records[i]), nil
}

// AtID is AtName keyed by structural id.
func (h *Headers) AtID(id field.ID) (Field, error) {
	i := h.FindID(id)
	if i == -1 {
		return Field{}, status.ErrNotFound
	}

	return h.materialize(h.records[i]), nil
}

// Get returns the first value for the name and whether one was found. The
// scan is linear and case-insensitive.
func (h *Headers) Get(name string) (value string, found bool) {
	for _, r := range h.records {
		if h.matchesName(r, name) {
			return h.value(r), true
		}
	}

	return "", false
}

// GetID is the fast-path lookup by structural id.
func (h *Headers) GetID(id field.ID) (value string, found bool) {
	for _, r := range h.records {
		if r.id == id {
			return h.value(r), true
		}
	}

	return "", false
}

// Value returns the first value for the name, or an empty string.
func (h *Headers) Value(name string) string {
	return h.ValueOr(name, "")
}

// ValueOr returns the first value for the name, or the provided fallback.
// It never fails.
func (h *Headers) ValueOr(name, or string) string {
	value, found := h.Get(name)
	if !found {
		return or
	}

	return value
}

// ValueOrID is ValueOr keyed by structural id.
func (h *Headers) ValueOrID(id field.ID, or string) string {
	value, found := h.GetID(id)
	if !found {
		return or
	}

	return value
}

// Has indicates whether at least one field with the name exists.
func (h *Headers) Has(name string) bool {
	return h.Find(name) != -1
}

func (h *Headers) HasID(id field.ID) bool {
	return h.FindID(id) != -1
}

// Count returns the number of fields with the name.
func (h *Headers) Count(name string) (n int) {
	for _, r := range h.records {
		if h.matchesName(r, name) {
			n++
		}
	}

	return n
}

func (h *Headers) CountID(id field.ID) (n int) {
	for _, r := range h.records {
		if r.id == id {
			n++
		}
	}

	return n
}

// Find returns the index of the first field with the name, or -1.
func (h *Headers) Find(name string) int {
	for i, r := range h.records {
		if h.matchesName(r, name) {
			return i
		}
	}

	return -1
}

func (h *Headers) FindID(id field.ID) int {
	for i, r := range h.records {
		if r.id == id {
			return i
		}
	}

	return -1
}

// Values returns all values for the name in append order, nil if there are
// none.
//
// WARNING: calling it twice will override values, returned by the first
// call. Consider copying the returned slice for safe use.
func (h *Headers) Values(name string) []string {
	h.valuesBuff = h.valuesBuff[:0]

	for _, r := range h.records {
		if h.matchesName(r, name) {
			h.valuesBuff = append(h.valuesBuff, h.value(r))
		}
	}

	if len(h.valuesBuff) == 0 {
		return nil
	}

	return h.valuesBuff
}

// Matching returns a forward iterator over all fields with the name, in
// append order.
//
// WARNING: the sequence shares a buffer with previous Matching/MatchingID
// results, so consume it before asking for another one.
func (h *Headers) Matching(name string) iter.Iterator[Field] {
	h.matchBuff = h.matchBuff[:0]

	for _, r := range h.records {
		if h.matchesName(r, name) {
			h.matchBuff = append(h.matchBuff, h.materialize(r))
		}
	}

	return iter.Slice(h.matchBuff)
}

// MatchingID is Matching keyed by structural id.
func (h *Headers) MatchingID(id field.ID) iter.Iterator[Field] {
	h.matchBuff = h.matchBuff[:0]

	for _, r := range h.records {
		if r.id == id {
			h.matchBuff = append(h.matchBuff, h.materialize(r))
		}
	}

	return iter.Slice(h.matchBuff)
}

// Iter returns a forward iterator over all fields in append order.
func (h *Headers) Iter() iter.Iterator[Field] {
	h.matchBuff = h.matchBuff[:0]

	for _, r := range h.records {
		h.matchBuff = append(h.matchBuff, h.materialize(r))
	}

	return iter.Slice(h.matchBuff)
}

// String exposes the serialized header block verbatim, the terminating
// empty line included. The view is stable only until the next mutation that
// may reallocate the arena.
func (h *Headers) String() string {
	return uf.B2S(h.arena)
}

// Reserve grows the arena capacity to at least n bytes.
func (h *Headers) Reserve(n int) {
	if cap(h.arena) >= n {
		return
	}

	grown := make([]byte, len(h.arena), n)
	copy(grown, h.arena)
	h.arena = grown
}

// ShrinkToFit drops excess capacity of both the arena and the index.
func (h *Headers) ShrinkToFit() {
	if cap(h.arena) > len(h.arena) {
		shrunk := make([]byte, len(h.arena))
		copy(shrunk, h.arena)
		h.arena = shrunk
	}
	if cap(h.records) > len(h.records) {
		shrunk := make([]record, len(h.records))
		copy(shrunk, h.records)
		h.records = shrunk
	}
}

// Clear removes all the fields, keeping the allocated space.
func (h *Headers) Clear() *Headers {
	h.records = h.records[:0]
	h.arena = append(h.arena[:0], '\r', '\n')

	return h
}

func (h *Headers) materialize(r record) Field {
	return Field{
		ID:    r.id,
		Name:  uf.B2S(h.arena[r.nameOff : r.nameOff+r.nameLen]),
		Value: h.value(r),
	}
}

func (h *Headers) value(r record) string {
	return uf.B2S(h.arena[r.valueOff : r.valueOff+r.valueLen])
}

func (h *Headers) matchesName(r record, name string) bool {
	return strcomp.EqualFold(uf.B2S(h.arena[r.nameOff:r.nameOff+r.nameLen]), name)
}

func isValidValue(value string) bool {
	return bnf.Skip(uf.S2B(value), 0, bnf.FieldVchar|bnf.OWS) == len(value)
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}
