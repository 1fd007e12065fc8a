// Command textflow is a small demo/debug front-end over the textflow
// engine: a "slice" subcommand that prints the wrapped lines of a file to
// stdout, and a default mode that paints them onto a terminal screen via
// tcell. Flag parsing, file I/O, and the screen are all collaborators
// outside the core (spec.md §1 Non-goals), wired here purely to exercise
// them against the real library.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/W-Mai/textflow"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("textflow: %v", err)
	}
}

type flags struct {
	width     uint
	tabWidth  uint
	longBreak bool
	breakAll  bool
}

func (f flags) options() textflow.Options {
	o := textflow.DefaultOptions()
	o.TabWidth = f.tabWidth
	o.LongBreak = f.longBreak
	o.BreakAll = f.breakAll
	return o
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "textflow [file]",
		Short: "Wrap mixed Latin/CJK/numeric text and paint it to a terminal screen",
		Long: "textflow reads a file (or stdin if no file is given), runs it through the\n" +
			"textflow line-breaking engine, and renders the wrapped lines in a tcell screen.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			return runTUI(text, f.width, f.options())
		},
	}

	root.PersistentFlags().UintVar(&f.width, "width", 80, "target line width in monospaced cells")
	root.PersistentFlags().UintVar(&f.tabWidth, "tab-width", 4, "cell width charged to a tab character")
	root.PersistentFlags().BoolVar(&f.longBreak, "long-break", true, "split an over-wide leading word instead of pushing it to an empty line")
	root.PersistentFlags().BoolVar(&f.breakAll, "break-all", false, "force a hard split at every provisional break point")

	root.AddCommand(newSliceCmd(&f))
	return root
}

func newSliceCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "slice [file]",
		Short: "Print the wrapped line slices of a file, one per output line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			for _, l := range textflow.Lines(text, f.width, optionsToOpts(f.options())...) {
				fmt.Fprintln(cmd.OutOrStdout(), textflow.Slice(l, text))
			}
			return nil
		},
	}
}

func readInput(args []string) (string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("open %s: %w", args[0], err)
		}
		defer file.Close()
		r = file
	}

	var sb []byte
	buf := bufio.NewReader(r)
	for {
		chunk := make([]byte, 4096)
		n, err := buf.Read(chunk)
		sb = append(sb, chunk[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	return string(sb), nil
}

func runTUI(text string, width uint, opts textflow.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	style := tcell.StyleDefault
	DrawFlow(screen, text, width, opts, style)

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			DrawFlow(screen, text, width, opts, style)
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return nil
				}
			}
		}
	}
}
