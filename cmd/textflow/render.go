package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/W-Mai/textflow"
	"github.com/W-Mai/textflow/text/segment"
)

// DrawFlow paints the wrapped lines of text onto screen, one cell per unit
// of cell-width the core computed — it mirrors the shape of aretext's
// display.DrawEditor (a single screen-painting entry point taking the
// screen and the thing to render), generalized from an editor buffer to a
// textflow line sequence.
func DrawFlow(screen tcell.Screen, text string, maxWidth uint, opts textflow.Options, style tcell.Style) {
	screen.Clear()
	row := 0
	for _, l := range textflow.Lines(text, maxWidth, optionsToOpts(opts)...) {
		col := 0
		for _, r := range textflow.Slice(l, text) {
			screen.SetContent(col, row, r, nil, style)
			// Advance by the same cell-width table the core wraps with
			// (§4.1), not a general Unicode width library, so the cursor
			// column never disagrees with where the core decided to break.
			col += int(segment.WidthOf(r, opts.TabWidth))
		}
		row++
	}
	screen.Show()
}

// optionsToOpts adapts a concrete Options value back into the functional
// Option form Flow/Lines accepts, so the CLI's flag-parsed Options struct
// and the library's constructor stay decoupled.
func optionsToOpts(o textflow.Options) []textflow.Option {
	return []textflow.Option{
		textflow.WithTabWidth(o.TabWidth),
		textflow.WithLongBreak(o.LongBreak),
		textflow.WithBreakAll(o.BreakAll),
		textflow.WithLineMetrics(o.LineHeight, o.LineSpacing, o.WordSpacing),
	}
}
