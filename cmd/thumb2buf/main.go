// Command thumb2buf is an interactive viewer over an encoded instruction
// buffer loaded from a file. It renders a hex dump with an offset gutter
// and an ASCII column. It has Labels and Literal pool panes, but they show
// only a notice that no fixup table is attached: a raw buffer file carries
// no label or literal-pool bookkeeping, and this viewer does not read a
// Writer's tables. It never decodes instruction mnemonics — disassembly is
// out of scope.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func main() {
	var (
		inFile       = flag.String("in", "", "Buffer file to load (required)")
		bytesPerLine = flag.Int("bytes-per-line", 16, "Hex bytes per row")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: thumb2buf -in <file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(*inFile)
	if err != nil {
		log.Fatalf("reading %s: %v", *inFile, err)
	}

	v := newViewer(data, *bytesPerLine)
	if err := v.Run(); err != nil {
		log.Fatalf("running viewer: %v", err)
	}
}

// viewer is the TUI's top-level state: an Application and one TextView per
// pane.
type viewer struct {
	app  *tview.Application
	data []byte

	bytesPerLine int

	hexView   *tview.TextView
	labelView *tview.TextView
	poolView  *tview.TextView

	layout *tview.Flex
}

func newViewer(data []byte, bytesPerLine int) *viewer {
	v := &viewer{
		app:          tview.NewApplication(),
		data:         data,
		bytesPerLine: bytesPerLine,
	}
	v.initializeViews()
	v.buildLayout()
	v.setupKeyBindings()
	return v
}

func (v *viewer) initializeViews() {
	v.hexView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	v.hexView.SetBorder(true).SetTitle(" Buffer ")

	v.labelView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	v.labelView.SetBorder(true).SetTitle(" Labels ")

	v.poolView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	v.poolView.SetBorder(true).SetTitle(" Literal pool ")
}

func (v *viewer) buildLayout() {
	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.labelView, 0, 1, false).
		AddItem(v.poolView, 0, 1, false)

	v.layout = tview.NewFlex().
		AddItem(v.hexView, 0, 2, false).
		AddItem(right, 0, 1, false)
}

func (v *viewer) setupKeyBindings() {
	v.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			v.app.Stop()
			return nil
		case tcell.KeyCtrlL:
			v.refresh()
			return nil
		}
		return event
	})
}

// refresh re-renders all panes from the current buffer contents. The
// label and literal-pool panes report that this viewer has no fixup
// bookkeeping of its own — a real caller would pass the Writer that
// produced the buffer alongside it (see the design note in DESIGN.md);
// for a raw file this viewer only has bytes, so it shows the hex dump and
// explains the limitation instead of guessing at instruction boundaries.
func (v *viewer) refresh() {
	v.hexView.SetText(v.renderHex())
	v.labelView.SetText("[yellow]No label table attached[white]\nPass a Writer's own table to annotate this view.")
	v.poolView.SetText("[yellow]No literal-pool table attached[white]\nPass a Writer's own table to annotate this view.")
	v.app.Draw()
}

func (v *viewer) renderHex() string {
	var out string
	for row := 0; row*v.bytesPerLine < len(v.data); row++ {
		start := row * v.bytesPerLine
		end := start + v.bytesPerLine
		if end > len(v.data) {
			end = len(v.data)
		}
		line := fmt.Sprintf("[yellow]%08X:[white] ", start)
		var ascii []byte
		for _, b := range v.data[start:end] {
			line += fmt.Sprintf("%02X ", b)
			if b >= 32 && b < 127 {
				ascii = append(ascii, b)
			} else {
				ascii = append(ascii, '.')
			}
		}
		line += " " + string(ascii) + "\n"
		out += line
	}
	return out
}

func (v *viewer) Run() error {
	v.refresh()
	return v.app.SetRoot(v.layout, true).Run()
}
