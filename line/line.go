// Package line assembles the word stream into line descriptors.
//
// This is the component the spec calls out as carrying most of the design
// weight (spec.md §2: "Line stream ... ~55%"): a one-word look-ahead over
// segment.Stream, a small carried memory for unresolved OPEN_PUNCT/QUOTATION
// pairs, and a decision procedure that knows when to absorb a trailing word,
// when to rewind to keep a bracket with its content, and when to swallow a
// mandatory newline. It mirrors the shape of the teacher's WrappedLineIter:
// a pull-based Next() that produces one Line per call and carries exactly
// the state described in spec.md §4.3 between calls — nothing more.
package line

import (
	"github.com/W-Mai/textflow/text/segment"
)

// Line is one emitted line descriptor (spec.md §3 "Line descriptor").
type Line struct {
	// Start and End bound the byte range whose rendering belongs to this
	// line; End excludes any trailing newline or elided trailing space.
	Start, End int
	// Brk is the byte offset the next line starts at; Brk >= End.
	Brk int
	// IdealWidth and RealWidth are summed across the words this line
	// accepted (spec.md §4.3 "Widths").
	IdealWidth, RealWidth uint

	// LineHeight, LineSpacing, WordSpacing are carried through unchanged
	// from Options for downstream renderers; they never affect breaking
	// (spec.md §6).
	LineHeight, LineSpacing, WordSpacing uint
}

// Options configures a Stream (spec.md §6 "Construction").
type Options struct {
	// TabWidth is the cell width charged to a TAB code point.
	TabWidth uint
	// LineHeight, LineSpacing, WordSpacing are opaque to breaking; they are
	// copied onto every emitted Line for a renderer to consume.
	LineHeight, LineSpacing, WordSpacing uint
	// LongBreak: if the very first word of a line already exceeds MaxWidth,
	// split inside that word at its provisional break instead of pushing it
	// whole to an empty next line. Default true.
	LongBreak bool
	// BreakAll forces a hard split at every provisional break point,
	// ignoring bracket/quotation pairing (spec.md §4.3 "break_all mode").
	BreakAll bool
}

// DefaultOptions returns the façade's default option set (spec.md §6:
// tab_width commonly 4, long_break default true, break_all default false).
func DefaultOptions() Options {
	return Options{TabWidth: 4, LongBreak: true}
}

// opener is the pairing-memory record of spec.md §4.3 and §9 ("Encode it as
// a small record {byte_offset, class, content_seen: uint} carried by
// value"). It lives only for the duration of a single Next() call: pairing
// memory is cleared on line boundaries.
type opener struct {
	offset      int
	class       segment.Class
	contentSeen uint
}

// Stream is a lazy sequence of Line descriptors over one source string. It
// keeps only prevBrk between calls to Next; everything else (pairing
// memory, line_leading) is local to the line currently being assembled.
type Stream struct {
	text       string
	maxWidth   uint
	opts       Options
	prevBrk    int
	done       bool
	degenerate bool
}

// NewStream returns a line Stream over text, targeting maxWidth cells per
// line. A zero MaxWidth combined with LongBreak=false can make no progress;
// per spec.md §7 ("WidthUnderflow") that combination returns done
// immediately rather than looping.
func NewStream(text string, maxWidth uint, opts Options) *Stream {
	return &Stream{
		text:       text,
		maxWidth:   maxWidth,
		opts:       opts,
		degenerate: maxWidth == 0 && !opts.LongBreak,
	}
}

// Next produces the next Line, or ok=false once the word stream is
// exhausted and no state is carried (spec.md §4.3 "Termination").
func (s *Stream) Next() (Line, bool) {
	if s.done {
		return Line{}, false
	}
	if s.degenerate {
		s.done = true
		return Line{}, false
	}
	if s.prevBrk >= len(s.text) {
		s.done = true
		return Line{}, false
	}

	base := s.prevBrk
	words := segment.NewPeekStream(segment.NewStream(s.text[base:], s.maxWidth, s.opts.TabWidth))
	if _, ok := words.Peek(); !ok {
		s.done = true
		return Line{}, false
	}

	var ln Line
	if s.opts.BreakAll {
		ln, _ = s.nextBreakAll(words, base)
	} else {
		ln, _ = s.nextNormal(words, base)
	}
	ln.LineHeight = s.opts.LineHeight
	ln.LineSpacing = s.opts.LineSpacing
	ln.WordSpacing = s.opts.WordSpacing
	return ln, true
}

// toAbs rebases a token produced by a Stream built over text[base:] onto
// absolute offsets into the original text. Token is a value type, so this
// never mutates anything the PeekStream still holds buffered.
func toAbs(t segment.Token, base int) segment.Token {
	t.Start += base
	t.End += base
	if t.Brk != segment.NoBreak {
		t.Brk += base
	}
	return t
}

// peekWordAt classifies the single word starting at offset, in absolute
// coordinates, without disturbing any line-stream state. Used only for the
// trailing-space lookahead of spec.md §4.3's final paragraph.
func (s *Stream) peekWordAt(offset int) (segment.Token, bool) {
	if offset >= len(s.text) {
		return segment.Token{}, false
	}
	ws := segment.NewStream(s.text[offset:], s.maxWidth, s.opts.TabWidth)
	tok, ok := ws.Next()
	if !ok {
		return segment.Token{}, false
	}
	return toAbs(tok, offset), true
}

func sumWidths(toks []segment.Token) (ideal, real uint) {
	for _, t := range toks {
		ideal += t.IdealWidth
		real += t.RealWidth
	}
	return ideal, real
}

// nextBreakAll implements spec.md §4.3's break_all mode: consume words one
// at a time, stopping as soon as a consumed word records a forced break,
// ignoring all pairing.
func (s *Stream) nextBreakAll(words *segment.PeekStream, base int) (Line, bool) {
	start := base
	var consumed []segment.Token

	for {
		wv, ok := words.Peek()
		if !ok {
			break
		}
		w := toAbs(wv, base)
		words.Advance()
		consumed = append(consumed, w)
		if w.HasBrk() {
			break
		}
	}

	if len(consumed) == 0 {
		s.done = true
		return Line{}, false
	}

	last := consumed[len(consumed)-1]
	end := last.End
	brk := last.End
	if last.HasBrk() {
		// The overflowing token's own End lies past where this line's
		// content actually stops; End must never exceed Brk (spec.md §3:
		// "start <= end <= brk"), so both collapse to the break point.
		end = last.Brk
		brk = last.Brk
	}

	// A trailing absorbed SPACE is elided from the rendered range but
	// still counted in the gap before the next line (spec.md §4.3).
	if len(consumed) > 1 && consumed[len(consumed)-1].Class == segment.ClassSpace && consumed[len(consumed)-1].End == end {
		trimmed := consumed[len(consumed)-1]
		consumed = consumed[:len(consumed)-1]
		end = trimmed.Start
		if trimmed.End > brk {
			brk = trimmed.End
		}
	}

	ideal, real := sumWidths(consumed)
	if end == brk {
		if nt, ok := s.peekWordAt(brk); ok && nt.Class == segment.ClassSpace {
			brk = nt.End
		}
	}

	s.prevBrk = brk
	return Line{Start: start, End: end, Brk: brk, IdealWidth: ideal, RealWidth: real}, true
}

// nextNormal implements the non-break_all decision procedure of spec.md
// §4.3, steps 1-7.
func (s *Stream) nextNormal(words *segment.PeekStream, base int) (Line, bool) {
	start := base
	var consumed []segment.Token
	lineLeading := true
	var open *opener

	emit := func(end, brk int) (Line, bool) {
		if n := len(consumed); n > 0 && consumed[n-1].Class == segment.ClassSpace && consumed[n-1].End == end {
			trimmed := consumed[n-1]
			consumed = consumed[:n-1]
			end = trimmed.Start
			if trimmed.End > brk {
				brk = trimmed.End
			}
		}
		ideal, real := sumWidths(consumed)
		if end == brk {
			if nt, ok := s.peekWordAt(brk); ok && nt.Class == segment.ClassSpace {
				brk = nt.End
			}
		}
		s.prevBrk = brk
		return Line{Start: start, End: end, Brk: brk, IdealWidth: ideal, RealWidth: real}, true
	}

	// rewindTo truncates consumed to whatever precedes cutAt and returns
	// the (end, brk) pair for emitting everything before the cut — the
	// rewind logic of steps 5 and 6.
	rewindTo := func(cutAt int) (int, int) {
		kept := consumed[:0:0]
		for _, t := range consumed {
			if t.Start < cutAt {
				kept = append(kept, t)
			}
		}
		end := start
		if len(kept) > 0 {
			end = kept[len(kept)-1].End
		}
		consumed = kept
		return end, cutAt
	}

	for {
		wv, ok := words.Peek()
		if !ok {
			end := start
			if n := len(consumed); n > 0 {
				end = consumed[n-1].End
			}
			return emit(end, end)
		}
		w := toAbs(wv, base)

		// Step 3: a line-leading word that already overflows splits inside
		// itself, if long_break allows it. w.Brk can equal the line's own
		// start (an atomic code point wider than max_width on its own, e.g.
		// a CJK glyph at max_width=1 — segment.Stream records brk at the
		// token's own Start in that case); emitting at w.Brk then would
		// produce an empty line and never advance prevBrk. When no prefix
		// fits at all, the whole atomic word is emitted as its own line
		// instead (spec.md §8: "the prefix that does fit is emitted" — here
		// the entire glyph, since no shorter prefix does). A real split
		// collapses End and Brk to w.Brk, so End never exceeds Brk.
		if lineLeading && s.opts.LongBreak && w.HasBrk() && w.Class != segment.ClassReturn && w.Class != segment.ClassNewline {
			words.Advance()
			consumed = append(consumed, w)
			if w.Brk > start {
				return emit(w.Brk, w.Brk)
			}
			return emit(w.End, w.End)
		}

		// Step 4: mandatory break. The newline byte belongs to the gap,
		// not the rendered range.
		if w.Class == segment.ClassNewline || w.Class == segment.ClassReturn {
			words.Advance()
			consumed = append(consumed, w)
			return emit(w.Brk, w.End)
		}

		// Step 5: opener / quotation pairing.
		if segment.IsOpenerClass(w.Class) {
			if w.Class == segment.ClassQuotation && open != nil && open.class == segment.ClassQuotation && open.contentSeen == 0 {
				// A second, bare quotation closes the first: clear memory
				// and fall through to treat it as ordinary content below.
				open = nil
			} else {
				if nv, ok := words.PeekAt(1); ok {
					np := toAbs(nv, base)
					if np.HasBrk() && !isFullWidth(np) {
						cut := w.Start
						if open != nil && open.contentSeen == 0 && open.offset < cut {
							cut = open.offset
						}
						if cut > start {
							end, brk := rewindTo(cut)
							return emit(end, brk)
						}
					}
				}
				open = &opener{offset: w.Start, class: w.Class}
				words.Advance()
				consumed = append(consumed, w)
				lineLeading = false
				continue
			}
		}

		// Step 6: otherwise, consume W and decide based on W'.
		words.Advance()
		consumed = append(consumed, w)
		lineLeading = false

		wpv, ok := words.Peek()
		if !ok {
			return emit(w.End, w.End)
		}
		wp := toAbs(wpv, base)

		if wp.HasBrk() {
			switch {
			case segment.IsTailClass(wp.Class) && wp.Brk == wp.End:
				words.Advance()
				consumed = append(consumed, wp)
				return emit(wp.End, wp.End)
			case segment.IsContentClass(wp.Class) && wp.Brk == wp.End:
				continue
			case wp.Class == segment.ClassClosePunct && w.Class != segment.ClassClosePunct && w.Class != segment.ClassQuotation:
				cut := w.Start
				if open != nil && open.contentSeen == 0 && open.offset < cut {
					cut = open.offset
				}
				if cut > start {
					end, brk := rewindTo(cut)
					return emit(end, brk)
				}
				return emit(w.End, w.End)
			case wp.Class == segment.ClassReturn || wp.Class == segment.ClassNewline:
				return emit(w.End, wp.End)
			default:
				return emit(w.End, w.End)
			}
		}

		if segment.IsContentClass(w.Class) && open != nil {
			open.contentSeen++
		}
	}
}

// isFullWidth reports whether t should be treated as full-width for the
// purposes of step 5's "opener must not end the line" rule. CJK is the only
// class the classifier guarantees is uniformly wide; other classes mix
// ASCII and non-ASCII members, so they are never treated as full-width
// here (an explicit, documented narrowing of an otherwise heuristic rule —
// see DESIGN.md).
func isFullWidth(t segment.Token) bool {
	return t.Class == segment.ClassCJK
}
