package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, s string, maxWidth, tabWidth uint) []Token {
	t.Helper()
	stream := NewStream(s, maxWidth, tabWidth)
	var toks []Token
	for {
		tok, ok := stream.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestStreamEmptyInput(t *testing.T) {
	toks := collectTokens(t, "", 10, 4)
	assert.Empty(t, toks)
}

func TestStreamMergeRules(t *testing.T) {
	// Hyphen does not merge with a following letter (spec.md §4.2).
	toks := collectTokens(t, "text-test", 100, 4)
	require.Len(t, toks, 3)
	assert.Equal(t, "text", "text-test"[toks[0].Start:toks[0].End])
	assert.Equal(t, ClassLatin, toks[0].Class)
	assert.Equal(t, "-", "text-test"[toks[1].Start:toks[1].End])
	assert.Equal(t, ClassHyphen, toks[1].Class)
	assert.Equal(t, "test", "text-test"[toks[2].Start:toks[2].End])
	assert.Equal(t, ClassLatin, toks[2].Class)
}

func TestStreamLatinAbsorbsNumber(t *testing.T) {
	toks := collectTokens(t, "abc123 def", 100, 4)
	require.Len(t, toks, 3)
	assert.Equal(t, "abc123", "abc123 def"[toks[0].Start:toks[0].End])
	assert.Equal(t, ClassLatin, toks[0].Class)
}

func TestStreamBudgetWithinSingleToken(t *testing.T) {
	// "abcdef" with a budget of 4: the token spans the whole word but
	// records brk after the 4th code point.
	toks := collectTokens(t, "abcdef", 4, 4)
	require.Len(t, toks, 1)
	tok := toks[0]
	assert.Equal(t, 0, tok.Start)
	assert.Equal(t, 6, tok.End)
	assert.True(t, tok.HasBrk())
	assert.Equal(t, 4, tok.Brk)
	assert.EqualValues(t, 6, tok.IdealWidth)
	assert.EqualValues(t, 4, tok.RealWidth)
}

func TestStreamCJKAlwaysSingleCodePointAndRecordsOverflow(t *testing.T) {
	// Each CJK code point is its own token (spec.md §4.2); with a budget
	// smaller than one code point's width, the very first code point must
	// still record an overflow break (the corrected budget check runs on
	// the first code point too, not only on subsequent merged ones).
	toks := collectTokens(t, "中", 1, 4)
	require.Len(t, toks, 1)
	tok := toks[0]
	assert.Equal(t, ClassCJK, tok.Class)
	assert.EqualValues(t, 2, tok.IdealWidth)
	assert.True(t, tok.HasBrk())
	assert.Equal(t, 0, tok.Brk)
	assert.EqualValues(t, 0, tok.RealWidth)
}

func TestStreamCJKFitsWhenBudgetAllows(t *testing.T) {
	toks := collectTokens(t, "中", 2, 4)
	require.Len(t, toks, 1)
	tok := toks[0]
	assert.False(t, tok.HasBrk())
	assert.EqualValues(t, 2, tok.RealWidth)
}

func TestStreamNewlineBreaksBeforeItself(t *testing.T) {
	toks := collectTokens(t, "\n", 10, 4)
	require.Len(t, toks, 1)
	tok := toks[0]
	assert.Equal(t, ClassNewline, tok.Class)
	assert.Equal(t, 1, tok.End)
	assert.Equal(t, tok.End-1, tok.Brk)
}

func TestStreamBudgetCarriesAcrossTokens(t *testing.T) {
	stream := NewStream("ab cd", 3, 4)
	tok1, ok := stream.Next()
	require.True(t, ok)
	assert.EqualValues(t, 2, tok1.RealWidth) // "ab"
	assert.EqualValues(t, 1, stream.RemainingWidth())

	tok2, ok := stream.Next()
	require.True(t, ok)
	assert.Equal(t, ClassSpace, tok2.Class)
	assert.EqualValues(t, 1, tok2.RealWidth)
	assert.EqualValues(t, 0, stream.RemainingWidth())

	tok3, ok := stream.Next()
	require.True(t, ok)
	assert.True(t, tok3.HasBrk())
}

func TestPeekStreamLookahead(t *testing.T) {
	ps := NewPeekStream(NewStream("ab cd", 100, 4))

	first, ok := ps.Peek()
	require.True(t, ok)
	assert.Equal(t, ClassLatin, first.Class)

	second, ok := ps.PeekAt(1)
	require.True(t, ok)
	assert.Equal(t, ClassSpace, second.Class)

	// Peek must not consume.
	again, ok := ps.Peek()
	require.True(t, ok)
	assert.Equal(t, first, again)

	ps.Advance()
	next, ok := ps.Peek()
	require.True(t, ok)
	assert.Equal(t, second, next)
}
