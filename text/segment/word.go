package segment

import (
	"unicode/utf8"

	"github.com/W-Mai/textflow/text"
)

// NoBreak is the sentinel Token.Brk value meaning the token fits entirely
// within whatever budget was left when it was produced (spec.md §3: "no
// forced break").
const NoBreak = -1

// Token is a maximal run of code points under the merge rules of spec.md
// §4.2, annotated with the widths and provisional break offset a Line
// stream needs to decide where lines end.
//
// Brk is a hint, not an authority: the Line stream may back out and choose
// a smaller range than Brk suggests (spec.md §9, open question (a)).
type Token struct {
	Start, End int
	Brk        int
	Class      Class
	IdealWidth uint
	RealWidth  uint
}

// HasBrk reports whether the token recorded a provisional break.
func (t Token) HasBrk() bool {
	return t.Brk != NoBreak
}

// IsTailClass reports whether c is one of the classes the Line stream may
// absorb onto the end of an already-full line (spec.md §4.3 step 6).
func IsTailClass(c Class) bool {
	switch c {
	case ClassSpace, ClassClosePunct, ClassQuotation, ClassHyphen:
		return true
	default:
		return false
	}
}

// IsContentClass reports whether c counts as line content for the purposes
// of the unresolved-opener word count (spec.md §4.3).
func IsContentClass(c Class) bool {
	return c == ClassLatin || c == ClassCJK || c == ClassNumber
}

// IsOpenerClass reports whether c can open an unresolved pair.
func IsOpenerClass(c Class) bool {
	return c == ClassOpenPunct || c == ClassQuotation
}

// canMerge reports whether a token of class c can ever continue past its
// first code point (spec.md §4.2: CJK, TAB, RETURN, NEWLINE, UNKNOWN are
// always single-code-point).
func canMerge(c Class) bool {
	switch c {
	case ClassLatin, ClassNumber, ClassHyphen, ClassOpenPunct, ClassClosePunct, ClassQuotation, ClassSpace:
		return true
	default:
		return false
	}
}

// continuesRun implements the merge table of spec.md §4.2.
func continuesRun(cur, next Class) bool {
	switch cur {
	case ClassLatin:
		return next == ClassLatin || next == ClassNumber
	case ClassNumber:
		return next == ClassNumber
	case ClassHyphen:
		return next == ClassHyphen
	case ClassOpenPunct:
		return next == ClassOpenPunct
	case ClassClosePunct:
		return next == ClassClosePunct
	case ClassQuotation:
		return next == ClassQuotation
	case ClassSpace:
		return next == ClassSpace
	default:
		return false
	}
}

// Stream is a lazy, one-pass sequence of word Tokens. It carries a single
// mutable remaining_width budget (spec.md §4.2), seeded from maxWidth; the
// Line stream starts every line with a fresh Stream over the rest of the
// text rather than resetting this one. Stream itself never looks back.
type Stream struct {
	r         *text.Reader
	tabWidth  uint
	remaining uint
}

// NewStream returns a word Stream over src. maxWidth seeds the initial
// remaining_width budget; tabWidth is the cell width charged to a TAB code
// point.
func NewStream(src string, maxWidth, tabWidth uint) *Stream {
	return &Stream{
		r:         text.NewReader(src),
		tabWidth:  tabWidth,
		remaining: maxWidth,
	}
}

// RemainingWidth returns the budget left for the current line.
func (s *Stream) RemainingWidth() uint {
	return s.remaining
}

// SetRemainingWidth resets the budget. The line package does not call it:
// it builds a fresh Stream, with a full budget, for every new line.
func (s *Stream) SetRemainingWidth(w uint) {
	s.remaining = w
}

// Next produces the next word Token, or ok=false once the input is
// exhausted (spec.md: "An empty input yields an empty sequence").
//
// The overflow check below runs before every constituent code point is
// folded in, including the token's first — not just the ones a merge run
// adds after it. A single-code-point class (CJK, TAB, RETURN, NEWLINE,
// UNKNOWN) still needs to be able to record a break when it alone already
// exceeds the remaining budget, or the Line stream would never learn that
// such a word doesn't fit.
func (s *Stream) Next() (tok Token, ok bool) {
	start, rok := s.r.Pos(), !s.r.Done()
	if !rok {
		return Token{}, false
	}
	firstCh, _ := s.r.PeekRune()
	cls := ClassOf(firstCh)

	var ideal, real uint
	brk := NoBreak
	end := start
	i := start
	first := true

	for {
		ch, chStart, _ := s.r.ReadRune()
		w := WidthOf(ch, s.tabWidth)
		if brk == NoBreak && ideal+w > s.remaining {
			brk = end
			real = ideal
		}
		i = chStart + utf8.RuneLen(ch)
		end = i
		ideal += w
		if brk == NoBreak {
			real = ideal
		}
		if first {
			first = false
			if !canMerge(cls) {
				break
			}
		}
		peeked, pok := s.r.PeekRune()
		if !pok {
			break
		}
		if !continuesRun(cls, ClassOf(peeked)) {
			break
		}
	}

	// Special case: NEWLINE tokens record a break just before the newline
	// byte itself, so the Line stream can trim it from the rendered range.
	if cls == ClassNewline || cls == ClassReturn {
		brk = end - 1
	}

	if brk == NoBreak {
		real = ideal
	}

	if real > s.remaining {
		s.remaining = 0
	} else {
		s.remaining -= real
	}

	return Token{
		Start:      start,
		End:        end,
		Brk:        brk,
		Class:      cls,
		IdealWidth: ideal,
		RealWidth:  real,
	}, true
}

// PeekStream adds bounded look-ahead to a word Stream. The Line stream
// never needs more than one word of look-ahead past whatever it is
// currently considering (spec.md §5), so PeekAt is only ever called with
// small indices, but the buffer is not hard-capped.
type PeekStream struct {
	s    *Stream
	buf  []Token
	more bool // true until the underlying Stream has returned ok=false once
}

// NewPeekStream wraps s with one-or-more-word look-ahead.
func NewPeekStream(s *Stream) *PeekStream {
	return &PeekStream{s: s, more: true}
}

func (p *PeekStream) fill(n int) {
	for p.more && len(p.buf) <= n {
		tok, ok := p.s.Next()
		if !ok {
			p.more = false
			return
		}
		p.buf = append(p.buf, tok)
	}
}

// PeekAt returns the token n positions ahead of the stream's current
// position without consuming it. PeekAt(0) is the same as Peek.
func (p *PeekStream) PeekAt(n int) (Token, bool) {
	p.fill(n)
	if n < len(p.buf) {
		return p.buf[n], true
	}
	return Token{}, false
}

// Peek returns the next token without consuming it.
func (p *PeekStream) Peek() (Token, bool) {
	return p.PeekAt(0)
}

// Advance consumes the next token (the one Peek would have returned).
func (p *PeekStream) Advance() {
	p.fill(0)
	if len(p.buf) > 0 {
		p.buf = p.buf[1:]
	}
}

// RemainingWidth exposes the underlying Stream's current budget.
func (p *PeekStream) RemainingWidth() uint {
	return p.s.RemainingWidth()
}

// SetRemainingWidth resets the underlying Stream's budget.
func (p *PeekStream) SetRemainingWidth(w uint) {
	p.s.SetRemainingWidth(w)
}
