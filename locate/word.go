// Package locate answers word- and line-boundary questions about a byte
// offset into a string, the way an embedder mapping a cursor position to a
// motion or a text object needs to (spec.md §1: "embeddable core for a
// rendering pipeline"). It is a consumer of textflow's own word classifier
// and line stream, not a second tokenizer: the "word" it navigates is
// exactly the WordClass run the core breaks lines on, bucketed into the
// four coarser categories a cursor motion cares about (Latin/Number word,
// CJK, punct, whitespace) rather than textflow's full twelve-class
// alphabet.
package locate

import (
	"github.com/W-Mai/textflow/line"
	"github.com/W-Mai/textflow/text/segment"
)

// unboundedWidth is passed to segment.NewStream when tokenizing for
// navigation: these queries care about word boundaries, never about where a
// line would wrap, so the budget is set high enough that Token.Brk never
// fires.
const unboundedWidth = ^uint(0)

// category buckets the classifier's WordClass into the four groups a
// cursor motion distinguishes, matching how editors group "word",
// "punctuation run", "CJK run", and "whitespace run" for w/e/b-style
// motions. CJK gets its own category rather than folding into catWord:
// unlike Latin/Number/Hyphen runs, textflow's classifier never merges two
// CJK code points into one token (spec.md §4.2), so a CJK sequence sitting
// directly against a Latin run (no whitespace between them, e.g. "abc你好")
// must still present as two separate word-motion targets.
type category int

const (
	catWhitespace category = iota
	catPunct
	catWord
	catCJK
)

func categoryOf(c segment.Class) category {
	switch c {
	case segment.ClassSpace, segment.ClassTab, segment.ClassReturn, segment.ClassNewline:
		return catWhitespace
	case segment.ClassOpenPunct, segment.ClassClosePunct, segment.ClassQuotation, segment.ClassUnknown:
		return catPunct
	case segment.ClassCJK:
		return catCJK
	default: // LATIN, NUMBER, HYPHEN
		return catWord
	}
}

// tokens tokenizes all of s with no width budget, for navigation queries
// that need the whole token list rather than a streaming window.
func tokens(s string) []segment.Token {
	st := segment.NewStream(s, unboundedWidth, 4)
	var toks []segment.Token
	for {
		t, ok := st.Next()
		if !ok {
			break
		}
		toks = append(toks, t)
	}
	return toks
}

// indexAt returns the index of the token spanning pos, or -1 if pos is at
// or past the end of the tokenized text.
func indexAt(toks []segment.Token, pos int) int {
	for i, t := range toks {
		if pos >= t.Start && pos < t.End {
			return i
		}
	}
	return -1
}

// runBounds returns the token index just past the run of same-category
// tokens starting at i, along with that run's end byte offset.
func runBounds(toks []segment.Token, i int) (next int, end int) {
	cat := categoryOf(toks[i].Class)
	j := i
	for j < len(toks) && categoryOf(toks[j].Class) == cat {
		j++
	}
	return j, toks[j-1].End
}

// runStart walks backward from i to the start of the same-category run i
// belongs to.
func runStart(toks []segment.Token, i int) int {
	cat := categoryOf(toks[i].Class)
	for i > 0 && categoryOf(toks[i-1].Class) == cat {
		i--
	}
	return i
}

// NextWordStart returns the byte offset of the start of the next word-like
// run after pos: the run category at pos, then any trailing whitespace, are
// both skipped (vi's "w" motion, generalized to textflow's classes). If no
// further run exists, it returns len(s).
func NextWordStart(s string, pos int) int {
	toks := tokens(s)
	if len(toks) == 0 {
		return 0
	}
	i := indexAt(toks, pos)
	if i < 0 {
		return len(s)
	}
	j, _ := runBounds(toks, i)
	for j < len(toks) && categoryOf(toks[j].Class) == catWhitespace {
		j++
	}
	if j >= len(toks) {
		return len(s)
	}
	return toks[j].Start
}

// NextWordEnd returns the byte offset just past the end of the current
// word-like run containing pos, or of the next such run if pos already
// lies at or past the end of a non-whitespace run (vi's "e" motion). It
// skips whitespace runs outright.
func NextWordEnd(s string, pos int) int {
	toks := tokens(s)
	if len(toks) == 0 {
		return 0
	}
	i := indexAt(toks, pos)
	if i < 0 {
		return len(s)
	}
	for i < len(toks) {
		cat := categoryOf(toks[i].Class)
		next, end := runBounds(toks, i)
		if cat != catWhitespace && end > pos {
			return end
		}
		i = next
	}
	return len(s)
}

// PrevWordStart returns the byte offset of the start of the word-like run
// before pos (vi's "b" motion): if pos is strictly inside a run, it returns
// that run's own start; otherwise it skips back over whitespace to the
// start of the previous non-whitespace run.
func PrevWordStart(s string, pos int) int {
	toks := tokens(s)
	if len(toks) == 0 {
		return 0
	}
	i := indexAt(toks, pos)
	if i < 0 {
		i = len(toks)
	}
	if i < len(toks) {
		start := runStart(toks, i)
		if toks[start].Start < pos {
			return toks[start].Start
		}
		i = start
	}
	i--
	for i >= 0 {
		if categoryOf(toks[i].Class) != catWhitespace {
			return toks[runStart(toks, i)].Start
		}
		i--
	}
	return 0
}

// InnerWordObject returns the byte range of the single same-category run
// containing pos (vi's "iw" text object): a word run, a punctuation run, or
// a whitespace run, whichever pos falls in, with no extension.
func InnerWordObject(s string, pos int) (int, int) {
	toks := tokens(s)
	if len(toks) == 0 {
		return 0, 0
	}
	i := indexAt(toks, pos)
	if i < 0 {
		i = len(toks) - 1
	}
	lo := runStart(toks, i)
	hi, end := runBounds(toks, lo)
	_ = hi
	return toks[lo].Start, end
}

// WordObject returns the byte range of the run containing pos together with
// one adjoining run of the opposite kind (vi's "aw" text object): a word or
// punctuation run pulls in its trailing whitespace, and a whitespace run
// pulls in its following word or punctuation run.
func WordObject(s string, pos int) (int, int) {
	toks := tokens(s)
	if len(toks) == 0 {
		return 0, 0
	}
	i := indexAt(toks, pos)
	if i < 0 {
		i = len(toks) - 1
	}
	lo := runStart(toks, i)
	next, end := runBounds(toks, lo)
	cat := categoryOf(toks[lo].Class)

	if cat != catWhitespace {
		if next < len(toks) && categoryOf(toks[next].Class) == catWhitespace {
			_, wsEnd := runBounds(toks, next)
			end = wsEnd
		}
		return toks[lo].Start, end
	}

	if next < len(toks) {
		_, nextEnd := runBounds(toks, next)
		end = nextEnd
	}
	return toks[lo].Start, end
}

// LineContaining returns the emitted Line whose [Start, Brk) range contains
// pos, re-running the line stream from the start of text. ok is false if
// pos is out of range. This answers the question a renderer asks after
// NextWordStart/PrevWordStart move a cursor: which visual line is it on now.
func LineContaining(text string, maxWidth uint, opts line.Options, pos int) (line.Line, bool) {
	st := line.NewStream(text, maxWidth, opts)
	var last line.Line
	found := false
	for {
		l, ok := st.Next()
		if !ok {
			break
		}
		last = l
		found = true
		if pos >= l.Start && pos < l.Brk {
			return l, true
		}
	}
	if found && pos == len(text) {
		return last, true
	}
	return line.Line{}, false
}
