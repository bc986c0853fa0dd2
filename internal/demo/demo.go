// Package demo holds the sample UI shared by the demo window and the
// ledger dump tool.
package demo

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-theft-auto/flatui"
)

// CheckerTexture is the name the demo expects its image registered under.
const CheckerTexture = "checker"

// Checker returns a small checkerboard image for CheckerTexture.
func Checker(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	dark := color.NRGBA{R: 0x40, G: 0x60, B: 0xA0, A: 0xFF}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}

// State is the application state the demo UI edits.
type State struct {
	Name    string
	Notes   string
	Volume  float32
	Scroll  flatui.Vec2i
	Clicks  int
	Popup   bool
	Entries []string

	lastFocus flatui.ID
}

// NewState returns the initial demo state.
func NewState() *State {
	s := &State{
		Name:   "Player One",
		Notes:  "Multi-line notes.\nEdit me.",
		Volume: 0.5,
	}
	for i := range 20 {
		s.Entries = append(s.Entries, fmt.Sprintf("Entry %02d", i+1))
	}
	return s
}

var (
	rootID    = flatui.HashID("root")
	headerID  = flatui.HashID("header")
	formID    = flatui.HashID("form")
	nameID    = flatui.HashID("name")
	notesID   = flatui.HashID("notes")
	volumeID  = flatui.HashID("volume")
	listID    = flatui.HashID("list")
	buttonID  = flatui.HashID("button")
	popupID   = flatui.HashID("popup")
	closeID   = flatui.HashID("close")
	overlayID = flatui.HashID("overlay")
)

// Build is the demo build callback.
func (s *State) Build(ctx *flatui.Context) {
	ctx.PositionUI(1000, flatui.AlignCenter, flatui.AlignCenter)

	ctx.Group(flatui.LayoutOverlayCenter, 0, overlayID)(func() {
		ctx.Group(flatui.LayoutVerticalLeft, 20, rootID)(func() {
			ctx.SetMargin(flatui.UniformMargin(20))
			ctx.ColorBackground(flatui.RGBA(0x20, 0x22, 0x28, 0xFF))

			ctx.Group(flatui.LayoutHorizontalCenter, 10, headerID)(func() {
				ctx.Image(CheckerTexture, 60)
				ctx.Label("flatui demo", 50)
			})

			s.form(ctx)
			s.list(ctx)
			s.button(ctx)
		})

		if s.Popup {
			s.popup(ctx)
		}
	})
}

func (s *State) form(ctx *flatui.Context) {
	ctx.Group(flatui.LayoutVerticalLeft, 10, formID)(func() {
		ctx.SetTextColor(flatui.ColorGray)
		ctx.Label("Name", 24)
		ctx.SetTextColor(flatui.ColorWhite)
		ctx.Edit(30, flatui.Vec2{X: 400}, nameID, &s.Name)

		ctx.SetTextColor(flatui.ColorGray)
		ctx.Label("Notes", 24)
		ctx.SetTextColor(flatui.ColorWhite)
		ctx.Edit(24, flatui.Vec2{X: 400, Y: 96}, notesID, &s.Notes)

		ctx.SetTextColor(flatui.ColorGray)
		ctx.Label(fmt.Sprintf("Volume %3.0f%%", s.Volume*100), 24)
		ctx.SetTextColor(flatui.ColorWhite)
		ctx.Slider(flatui.DirHorizontal, &s.Volume, volumeID)(func() {
			ctx.CustomElement(flatui.Vec2{X: 400, Y: 30}, volumeID.Child("bar"), func(pos, size flatui.Vec2i) {
				ctx.DrawList().AddRect(flatui.Vec2i{X: pos.X, Y: pos.Y + size.Y/2 - 2}, flatui.Vec2i{X: size.X, Y: 4}, flatui.ColorGray)
				knob := int(s.Volume * float32(size.X-size.Y))
				ctx.DrawList().AddRect(flatui.Vec2i{X: pos.X + knob, Y: pos.Y}, flatui.Vec2i{X: size.Y, Y: size.Y}, flatui.ColorWhite)
			})
		})
	})
}

const (
	listHeight  = 160
	rowHeight   = 32
	rowSpacing  = 4
	entryLabelH = 24
)

func (s *State) list(ctx *flatui.Context) {
	ctx.Group(flatui.LayoutVerticalLeft, rowSpacing, listID)(func() {
		ctx.ColorBackground(flatui.RGBA(0x30, 0x33, 0x3A, 0xFF))

		spacing := ctx.VirtualToPhysical(flatui.Vec2{Y: rowSpacing}).Y
		pitch := ctx.VirtualToPhysical(flatui.Vec2{Y: rowHeight}).Y + spacing
		viewport := ctx.VirtualToPhysical(flatui.Vec2{Y: listHeight}).Y
		clip := flatui.NewListClipper(len(s.Entries), pitch, viewport, s.Scroll.Y)
		if focus := ctx.Focus(); ctx.Measuring() && focus != s.lastFocus {
			// Follow focus moves. Only done while measuring so both passes
			// clip the same rows.
			s.lastFocus = focus
			if i := s.focusedEntry(focus); i >= 0 {
				s.Scroll.Y = clip.ScrollToRow(i, s.Scroll.Y, viewport, spacing)
				clip = flatui.NewListClipper(len(s.Entries), pitch, viewport, s.Scroll.Y)
			}
		}

		ctx.StartScroll(flatui.Vec2{X: 400, Y: listHeight}, &s.Scroll)
		if h := clip.Above(spacing); h > 0 {
			ctx.Spacer(flatui.Vec2i{Y: h}, listID.Child("above"))
		}
		for i := clip.Start; i < clip.End; i++ {
			s.entry(ctx, i)
		}
		if h := clip.Below(spacing); h > 0 {
			ctx.Spacer(flatui.Vec2i{Y: h}, listID.Child("below"))
		}
		ctx.EndScroll()
	})
}

func (s *State) entry(ctx *flatui.Context, i int) {
	entry := s.Entries[i]
	id := entryID(i)
	ctx.Group(flatui.LayoutHorizontalCenter, 0, id)(func() {
		ev := ctx.CheckEvent(false)
		if ev&(flatui.EventHover|flatui.EventIsDown) != 0 {
			ctx.ColorBackground(flatui.RGBA(0x50, 0x55, 0x60, 0xFF))
		}
		if ev&flatui.EventWentUp != 0 {
			s.Name = entry
		}
		ctx.CustomElement(flatui.Vec2{Y: rowHeight}, id.Child("strut"), nil)
		ctx.Label(entry, entryLabelH)
	})
}

func (s *State) focusedEntry(focus flatui.ID) int {
	for i := range s.Entries {
		if entryID(i) == focus {
			return i
		}
	}
	return -1
}

func entryID(i int) flatui.ID {
	return flatui.IntID(i).Child("entry")
}

func (s *State) button(ctx *flatui.Context) {
	// The label is its own id, so it must not change between the event and
	// the draw.
	label := fmt.Sprintf("Open popup (%d)", s.Clicks)
	ctx.Group(flatui.LayoutHorizontalCenter, 0, buttonID)(func() {
		ctx.SetMargin(flatui.Margin{Left: 12, Top: 6, Right: 12, Bottom: 6})
		ev := ctx.CheckEvent(false)
		bg := flatui.RGBA(0x40, 0x60, 0xA0, 0xFF)
		if ev&flatui.EventIsDown != 0 {
			bg = flatui.RGBA(0x30, 0x48, 0x80, 0xFF)
		}
		ctx.ColorBackground(bg)
		if ev&flatui.EventWentUp != 0 {
			s.Clicks++
			s.Popup = true
		}
		ctx.Label(label, 30)
	})
}

func (s *State) popup(ctx *flatui.Context) {
	ctx.Group(flatui.LayoutVerticalCenter, 20, popupID)(func() {
		ctx.SetMargin(flatui.UniformMargin(30))
		ctx.ColorBackground(flatui.RGBA(0x10, 0x10, 0x10, 0xF0))
		ctx.Label("Everything behind this popup is covered.", 28)
		ctx.Group(flatui.LayoutHorizontalCenter, 0, closeID)(func() {
			ctx.SetMargin(flatui.UniformMargin(8))
			ev := ctx.CheckEvent(false)
			ctx.ColorBackground(flatui.ColorDarkGray)
			if ev&flatui.EventWentUp != 0 {
				s.Popup = false
			}
			ctx.Label("Close", 28)
		})
	})
}

// Names maps the ids the demo uses to readable names, for debugging tools.
func (s *State) Names() map[flatui.ID]string {
	names := map[flatui.ID]string{
		rootID:                "root",
		headerID:              "header",
		formID:                "form",
		nameID:                "name",
		nameID.Child("text"):  "name/text",
		notesID:               "notes",
		notesID.Child("text"): "notes/text",
		volumeID:              "volume",
		volumeID.Child("bar"): "volume/bar",
		listID.Child("above"): "list/above",
		listID.Child("below"): "list/below",
		listID:                "list",
		buttonID:              "button",
		popupID:               "popup",
		closeID:               "close",
		overlayID:             "overlay",
	}
	for i, entry := range s.Entries {
		names[entryID(i)] = fmt.Sprintf("entry %d", i)
		names[entryID(i).Child("strut")] = fmt.Sprintf("entry %d/strut", i)
		names[flatui.HashID(entry)] = fmt.Sprintf("%q", entry)
	}
	for _, label := range []string{
		"flatui demo", "Name", "Notes", "Close",
		"Everything behind this popup is covered.",
		fmt.Sprintf("Volume %3.0f%%", s.Volume*100),
		fmt.Sprintf("Open popup (%d)", s.Clicks),
	} {
		names[flatui.HashID(label)] = fmt.Sprintf("%q", label)
	}
	names[flatui.HashID(CheckerTexture)] = "image " + CheckerTexture
	return names
}
