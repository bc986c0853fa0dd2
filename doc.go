/*
Package flatui provides an immediate-mode GUI that lays out and draws its
widgets in two passes over the same caller code.

# Overview

The UI is rebuilt every frame by a build callback. Engine.Run calls it
twice: the measuring pass records every element's minimum size bottom-up
into a ledger, and the placing pass walks the ledger top-down, giving each
element its final position, drawing it and delivering its events. Widgets
therefore know their place on screen before they draw, without retained
widget objects.

# Quick Start

	// Setup
	renderer, _ := opengl.NewRenderer(1280, 720)
	adapter := opengl.NewGLFWInputAdapter(window)
	ui, err := flatui.New(renderer, flatui.WithEditSession(flatui.NewTextEdit()))
	if err != nil {
	    return err
	}

	// Game loop
	for !window.ShouldClose() {
	    input := adapter.Update()

	    _, err := ui.Run(input, func(ctx *flatui.Context) {
	        ctx.PositionUI(1000, flatui.AlignCenter, flatui.AlignCenter)
	        ctx.Group(flatui.LayoutVerticalCenter, 10, flatui.HashID("menu"))(func() {
	            ctx.Label("Hello World", 40)
	            ctx.Edit(30, flatui.Vec2{X: 300}, flatui.HashID("name"), &name)
	        })
	    })
	    if err != nil {
	        return err
	    }
	    window.SwapBuffers()
	}

# Units

Sizes passed to widgets are virtual units. PositionUI (or
Config.VirtualResolution) sets how many virtual units span the shorter
viewport axis; one uniform scale converts them to integer pixels, rounded
to nearest. Everything the engine hands back (positions, sizes, scroll
offsets) is in pixels with the origin at the top-left.

# Groups

StartGroup/EndGroup (or the Group closure helper) open containers whose
children stack horizontally, vertically, or on top of each other (overlay).
Alignment places children on the other axis, spacing separates them, and
SetMargin insets them. In an overlay group only the last child takes
input; earlier ones are covered.

# Identity

Every element carries an ID. The same ID must be produced in both passes
of a frame, and should stay stable across frames so focus, pointer capture
and text editing follow the element. Labels and images use a hash of their
text or texture name; HashID, IntID and ID.Child build the rest.

# Events

CheckEvent marks the current group interactive and returns an Event
bitmask: press (WentDown, IsDown, WentUp), drag (StartDrag, IsDragging,
EndDrag) and Hover. A press on an element gives it focus. Focus moves with
Left/Right on the keyboard or a gamepad D-pad, Enter or the A button
activate the focused element, and when nothing holds focus it snaps to the
first interactive element.

# Scrolling and Sliders

StartScroll clips the current group to a viewport and scrolls a
caller-owned offset by dragging or with the wheel, clamped to the content.
StartSlider maps the pointer to a value in [0, 1] while the group is
pressed or dragged.

# Text

Text is shaped by a TextShaper; the default FaceShaper rasterizes Go
Regular (or any x/image font.Face) into a glyph atlas the renderer samples
from. Edit fields use an EditSession for caret movement, deletion by
grapheme cluster, IME composition and commit.

# Concurrency

Only one frame may run at a time, process-wide; calling Run from inside a
build callback panics with ErrFrameActive. Contract violations such as
unbalanced groups panic with errors wrapping the package's sentinel errors.
*/
package flatui
