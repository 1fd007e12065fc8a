// Package textflow is a streaming line-breaking engine for mixed
// Latin/CJK/numeric text. Given a source string and a target visual width
// in monospaced cells, it produces a lazy sequence of line descriptors: the
// byte range each line covers, and the byte offset the next line starts
// at. It does not render glyphs, measure proportional fonts, or justify
// text — it is the embeddable core a rendering pipeline wraps.
package textflow

import (
	"github.com/W-Mai/textflow/line"
)

// Line is one emitted line descriptor.
type Line = line.Line

// Options configures a flow (spec.md §6 "Construction").
type Options = line.Options

// DefaultOptions returns tab_width 4, long_break true, break_all false.
func DefaultOptions() Options {
	return line.DefaultOptions()
}

// Option mutates an Options value; passed variadically to Flow.
type Option func(*Options)

// WithTabWidth sets the cell width charged to a TAB code point.
func WithTabWidth(w uint) Option {
	return func(o *Options) { o.TabWidth = w }
}

// WithLineMetrics sets the renderer-facing metrics carried through
// unchanged on every emitted Line; they never affect breaking.
func WithLineMetrics(height, spacing, wordSpacing uint) Option {
	return func(o *Options) {
		o.LineHeight = height
		o.LineSpacing = spacing
		o.WordSpacing = wordSpacing
	}
}

// WithLongBreak controls whether an over-wide leading word splits inside
// itself instead of being pushed whole to an empty line.
func WithLongBreak(enabled bool) Option {
	return func(o *Options) { o.LongBreak = enabled }
}

// WithBreakAll forces a hard split at every provisional break point,
// ignoring bracket/quotation pairing.
func WithBreakAll(enabled bool) Option {
	return func(o *Options) { o.BreakAll = enabled }
}

// Flow wires text and maxWidth into a line stream (spec.md §6:
// "make_flow(text, max_width, options?) -> LineStream"). Options not
// overridden by opts come from DefaultOptions.
func Flow(text string, maxWidth uint, opts ...Option) *line.Stream {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return line.NewStream(text, maxWidth, o)
}

// Slice returns the rendered substring of a Line: text[line.Start ..
// min(line.End, line.Brk)]. This is the canonical way to obtain a line's
// display text — trailing newline, trailing elided space, and
// pair-induced rewinds are already accounted for in Start/End/Brk.
func Slice(l Line, text string) string {
	end := l.End
	if l.Brk < end {
		end = l.Brk
	}
	return text[l.Start:end]
}

// Lines drains a flow into a slice of Line descriptors. Provided for
// callers that want the whole sequence at once rather than pulling one
// line at a time; large inputs should prefer calling Flow and pulling
// Next directly to keep memory at O(1).
func Lines(text string, maxWidth uint, opts ...Option) []Line {
	s := Flow(text, maxWidth, opts...)
	var out []Line
	for {
		l, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, l)
	}
	return out
}
