// Package text provides a minimal, read-only view over a UTF-8 string.
//
// Unlike the B+-tree backed text.Tree an editor needs for in-place insertion
// and deletion, textflow never mutates its input: the whole engine is a
// one-pass, left-to-right walk over a borrowed string. Reader is the
// lightweight stand-in for that walk: it decodes one rune at a time and
// reports the byte offset each rune started at, so downstream packages never
// have to juggle byte and rune indices themselves.
package text

import "unicode/utf8"

// ErrInvalidBoundary indicates that a byte offset does not fall on a UTF-8
// code-point boundary. It is only reachable through misuse of the low-level
// slicing helper Slice, which panics with it, and is fatal to the caller.
type ErrInvalidBoundary struct {
	Offset int
}

func (e ErrInvalidBoundary) Error() string {
	return "textflow/text: offset does not lie on a UTF-8 code-point boundary"
}

// Reader walks a string's runes left to right, tracking byte offsets.
// A Reader is not safe for concurrent use, but the underlying string may be
// shared read-only by many independent Readers.
type Reader struct {
	s   string
	pos int // byte offset of the next rune to decode
}

// NewReader returns a Reader positioned at the start of s.
func NewReader(s string) *Reader {
	return &Reader{s: s}
}

// Pos returns the byte offset of the next rune ReadRune would return.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total length of the underlying string in bytes.
func (r *Reader) Len() int {
	return len(r.s)
}

// Done reports whether the reader has consumed the entire string.
func (r *Reader) Done() bool {
	return r.pos >= len(r.s)
}

// ReadRune decodes and consumes the next rune, returning it together with
// the byte offset at which it started. ok is false once the reader is
// exhausted. Malformed UTF-8 is not expected here: the upstream byte source
// is assumed to have validated it (spec §7), so an invalid byte sequence
// decodes as utf8.RuneError and still advances by one byte, matching the
// standard library's DecodeRuneInString behavior.
func (r *Reader) ReadRune() (ch rune, start int, ok bool) {
	if r.pos >= len(r.s) {
		return 0, r.pos, false
	}
	start = r.pos
	ch, size := utf8.DecodeRuneInString(r.s[r.pos:])
	r.pos += size
	return ch, start, true
}

// PeekRune reports the next rune without consuming it.
func (r *Reader) PeekRune() (ch rune, ok bool) {
	if r.pos >= len(r.s) {
		return 0, false
	}
	ch, _ = utf8.DecodeRuneInString(r.s[r.pos:])
	return ch, true
}

// Slice returns s[start:end], validating that both offsets land on rune
// boundaries. It panics with ErrInvalidBoundary on misuse: valid callers
// only ever pass offsets produced by this package's own iteration.
func Slice(s string, start, end int) string {
	if start < 0 || end > len(s) || start > end {
		panic(ErrInvalidBoundary{Offset: start})
	}
	if start < len(s) && !utf8.RuneStart(s[start]) {
		panic(ErrInvalidBoundary{Offset: start})
	}
	if end < len(s) && !utf8.RuneStart(s[end]) {
		panic(ErrInvalidBoundary{Offset: end})
	}
	return s[start:end]
}
