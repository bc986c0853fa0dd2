// Command ledgerdump runs the demo UI headless for a few scripted frames and
// prints each frame's measuring ledger as a table.
//
// Usage:
//
//	go run ./cmd/ledgerdump [-frames 3] [-width 1280] [-height 720] [-v]
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/go-theft-auto/flatui"
	"github.com/go-theft-auto/flatui/internal/demo"
)

const (
	defaultTermWidth = 100
	nameWidth        = 32
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = cellStyle.Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

// step scripts the input of one frame.
type step struct {
	name  string
	apply func(in *flatui.InputState, size flatui.Vec2i)
}

var script = []step{
	{"idle", func(in *flatui.InputState, size flatui.Vec2i) {
		in.SetPointerPos(0, size.X/2, size.Y/2)
	}},
	{"press", func(in *flatui.InputState, size flatui.Vec2i) {
		in.SetPointerButton(0, true)
	}},
	{"release", func(in *flatui.InputState, size flatui.Vec2i) {
		in.SetPointerButton(0, false)
	}},
	{"wheel", func(in *flatui.InputState, size flatui.Vec2i) {
		in.SetWheel(0, 2)
	}},
	{"navigate", func(in *flatui.InputState, size flatui.Vec2i) {
		in.SetKey(flatui.KeyRight, true)
	}},
}

func main() {
	frames := flag.Int("frames", len(script), "number of scripted frames to run")
	width := flag.Int("width", 1280, "viewport width in pixels")
	height := flag.Int("height", 720, "viewport height in pixels")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if err := run(*frames, *width, *height, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(frames, width, height int, verbose bool) error {
	flatui.SetVerbose(verbose)

	renderer := flatui.NewHeadlessRenderer(width, height)
	ui, err := flatui.New(renderer,
		flatui.WithTexture(demo.CheckerTexture, flatui.Texture{ID: 2, Size: flatui.Vec2i{X: 64, Y: 64}}),
	)
	if err != nil {
		return err
	}

	termWidth := defaultTermWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		termWidth = w
	}

	state := demo.NewState()
	input := flatui.NewInputState()
	for i := 0; i < frames; i++ {
		s := script[i%len(script)]
		input.Reset()
		input.SetKey(flatui.KeyRight, false)
		s.apply(input, renderer.Size)

		frame, err := ui.Run(input, state.Build)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render(fmt.Sprintf("frame %d (%s) scale %.3f root %dx%d focus %s",
			frame.Number, s.name, frame.Scale, frame.Measure.Size.X, frame.Measure.Size.Y,
			describe(state.Names(), frame.Place.Focus))))
		fmt.Println(ledgerTable(frame, state.Names(), termWidth))
		fmt.Printf("%d quads in %d draw commands\n", renderer.Quads, renderer.Commands)
	}
	return nil
}

// ledgerTable renders the measured elements, marking the ones placed.
func ledgerTable(frame flatui.Frame, names map[flatui.ID]string, width int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "NAME", "SIZE", "EXTRA", "INPUT", "PLACED").
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if row >= 0 && row < len(frame.Measure.Elements) &&
				!slices.Contains(frame.Place.Placed, frame.Measure.Elements[row].ID) {
				return dimStyle
			}
			return cellStyle
		})

	for i, el := range frame.Measure.Elements {
		t.Row(
			strconv.Itoa(i),
			fmt.Sprintf("%016x", uint64(el.ID)),
			describe(names, el.ID),
			fmt.Sprintf("%dx%d", el.Size.X, el.Size.Y),
			fmt.Sprintf("%dx%d", el.ExtraSize.X, el.ExtraSize.Y),
			yesNo(el.Interactive),
			yesNo(slices.Contains(frame.Place.Placed, el.ID)),
		)
	}
	return t.Render()
}

func describe(names map[flatui.ID]string, id flatui.ID) string {
	if id == flatui.NoID {
		return "-"
	}
	name, ok := names[id]
	if !ok {
		name = "?"
	}
	return runewidth.Truncate(name, nameWidth, "…")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
