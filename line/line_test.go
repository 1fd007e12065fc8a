package line

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, text string, maxWidth uint, opts Options) []Line {
	t.Helper()
	s := NewStream(text, maxWidth, opts)
	var lines []Line
	for {
		l, ok := s.Next()
		if !ok {
			break
		}
		lines = append(lines, l)
	}
	return lines
}

func slices(t *testing.T, text string, maxWidth uint, opts Options) []string {
	t.Helper()
	var out []string
	for _, l := range collect(t, text, maxWidth, opts) {
		end := l.End
		if l.Brk < end {
			end = l.Brk
		}
		out = append(out, text[l.Start:end])
	}
	return out
}

// The scenarios below are spec.md §8's concrete worked examples.

func TestFlowScenario1SimpleWordWrap(t *testing.T) {
	got := slices(t, "Hello, world!", 10, DefaultOptions())
	assert.Equal(t, []string{"Hello,", "world!"}, got)
}

func TestFlowScenario2CJKOneCharacterPerLineAtNarrowWidth(t *testing.T) {
	got := slices(t, "你好中国", 2, DefaultOptions())
	assert.Equal(t, []string{"你", "好", "中", "国"}, got)
}

func TestFlowScenario3MultiLineLatinProse(t *testing.T) {
	got := slices(t, "The quick brown fox jumps over a lazy dog.", 15, DefaultOptions())
	assert.Equal(t, []string{"The quick brown", "fox jumps over", "a lazy dog."}, got)
}

func TestFlowScenario4OpenerGroupKeptWithContent(t *testing.T) {
	got := slices(t, "<〈《Teext a>>>", 12, DefaultOptions())
	assert.Equal(t, []string{"<〈《Teext", "a>>>"}, got)
}

func TestFlowScenario5HyphenBreaksAfter(t *testing.T) {
	got := slices(t, "this is a text-test", 15, DefaultOptions())
	assert.Equal(t, []string{"this is a text-", "test"}, got)
}

func TestFlowScenario6ClosersStayWithTheirWord(t *testing.T) {
	got := slices(t, "实时操作系统 Nuttx》。", 20, DefaultOptions())
	assert.Equal(t, []string{"实时操作系统", "Nuttx》。"}, got)
}

func TestFlowScenario7BreakAllCharacterLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.BreakAll = true
	got := slices(t, "f abcdefghijklmnopq", 10, opts)
	require.Len(t, got, 2)
	assert.Equal(t, strings.Join(got, ""), "f abcdefghijklmnopq")
}

func TestCoverageProperty(t *testing.T) {
	texts := []string{
		"Hello, world!",
		"你好中国",
		"The quick brown fox jumps over a lazy dog.",
		"<〈《Teext a>>>",
		"this is a text-test",
		"实时操作系统 Nuttx》。",
		"ab\ncd",
		"",
	}
	for _, text := range texts {
		lines := collect(t, text, 10, DefaultOptions())
		var rebuilt strings.Builder
		for _, l := range lines {
			rebuilt.WriteString(text[l.Start:l.Brk])
		}
		assert.Equal(t, text, rebuilt.String(), "coverage failed for %q", text)
	}
}

func TestMonotonicityProperty(t *testing.T) {
	lines := collect(t, "The quick brown fox jumps over a lazy dog.", 15, DefaultOptions())
	require.NotEmpty(t, lines)
	assert.Equal(t, 0, lines[0].Start)
	for i := 0; i < len(lines); i++ {
		assert.LessOrEqual(t, lines[i].Start, lines[i].End)
		assert.LessOrEqual(t, lines[i].End, lines[i].Brk)
		if i > 0 {
			assert.Equal(t, lines[i-1].Brk, lines[i].Start)
		}
	}
	assert.Equal(t, len("The quick brown fox jumps over a lazy dog."), lines[len(lines)-1].Brk)
}

func TestNewlineHonoured(t *testing.T) {
	text := "ab\ncd"
	lines := collect(t, text, 10, DefaultOptions())
	require.Len(t, lines, 2)
	assert.Equal(t, "ab", text[lines[0].Start:lines[0].End])
	// The newline byte is in [end, brk) and absent from the rendered slice.
	assert.Equal(t, "\n", text[lines[0].End:lines[0].Brk])
	assert.Equal(t, "cd", text[lines[1].Start:lines[1].End])
}

func TestLongBreakSplitsOverwideLeadingWord(t *testing.T) {
	got := slices(t, "abcdefghij", 5, DefaultOptions())
	assert.Equal(t, []string{"abcde", "fghij"}, got)
}

func TestLongBreakAtomicCodePointWiderThanMaxWidthTerminates(t *testing.T) {
	// A single CJK glyph is 2 cells wide; at max_width=1 no prefix of it
	// fits at all. The line stream must still emit the whole glyph as its
	// own line and advance, not loop forever or emit end > brk.
	lines := collect(t, "中", 1, DefaultOptions())
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].Start)
	assert.Equal(t, 3, lines[0].End)
	assert.Equal(t, 3, lines[0].Brk)
	assert.LessOrEqual(t, lines[0].End, lines[0].Brk)
}

func TestLongBreakAtomicCodePointWiderThanMaxWidthFollowedByMore(t *testing.T) {
	lines := collect(t, "中国", 1, DefaultOptions())
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"中", "国"}, slices(t, "中国", 1, DefaultOptions()))
	assert.Equal(t, len("中国"), lines[len(lines)-1].Brk)
}

func TestWidthUnderflowIsDoneNotError(t *testing.T) {
	opts := DefaultOptions()
	opts.LongBreak = false
	lines := collect(t, "abc", 0, opts)
	assert.Empty(t, lines)
}

func TestQuotationPairingKeepsOpenerWithContent(t *testing.T) {
	text := `"hello world" bye`
	lines := collect(t, text, 10, DefaultOptions())
	require.NotEmpty(t, lines)

	// Pair cohesion (spec.md §8): the opening quote is never the last
	// rendered byte of a line, since that would strand it away from its
	// content.
	for _, l := range lines {
		rendered := text[l.Start:min(l.End, l.Brk)]
		if rendered == "" {
			continue
		}
		assert.NotEqual(t, byte('"'), rendered[len(rendered)-1])
	}

	var rebuilt strings.Builder
	for _, l := range lines {
		rebuilt.WriteString(text[l.Start:l.Brk])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestIdempotenceOfRefeed(t *testing.T) {
	text := "The quick brown fox jumps over a lazy dog."
	lines := collect(t, text, 15, DefaultOptions())
	for _, l := range lines {
		slice := text[l.Start:min(l.End, l.Brk)]
		again := collect(t, slice, 15, DefaultOptions())
		require.Len(t, again, 1)
		assert.Equal(t, slice, slice[again[0].Start:min(again[0].End, again[0].Brk)])
	}
}
