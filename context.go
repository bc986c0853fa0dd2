package flatui

import (
	"fmt"
	"math"
	"slices"
)

// Context holds all state for one frame of the UI.
// It is handed to the build callback, which runs twice per frame: first
// while measuring (Measuring returns true), then while placing.
type Context struct {
	engine *Engine
	p      *persistentState
	input  *InputState

	measuring bool
	ledger    ledger
	cur       group
	stack     []group // Parents of cur, as value snapshots
	placed    []ID
	drawList  *DrawList

	// Screen
	viewport          Vec2i
	virtualResolution float32
	scale             float32

	// Scroll area being built
	inScroll          bool
	scrollViewport    Vec2i
	clipRect          Rect
	clipPointerInside [MaxPointers]bool

	// Pointer arbitration for this frame
	maxPointer      int
	currentPointer  int // Pointer that produced the last event, -1 if none
	gamepadHasFocus bool
	gamepadEvent    Event

	// Per-pass settings
	textColor        uint32
	scrollSpeedDrag  float32
	scrollSpeedWheel float32
	dragThreshold    Vec2i
}

func newContext(e *Engine) *Context {
	return &Context{
		engine: e,
		p:      &e.persistent,
		ledger: ledger{elements: make([]Element, 0, 64)},
		stack:  make([]group, 0, 16),
		placed: make([]ID, 0, 64),
	}
}

// beginFrame resets per-frame state and starts the measuring pass.
func (ctx *Context) beginFrame(input *InputState) {
	ctx.input = input
	ctx.measuring = true
	ctx.ledger.reset()
	ctx.stack = ctx.stack[:0]
	ctx.placed = ctx.placed[:0]
	ctx.drawList = nil

	ctx.viewport = ctx.engine.renderer.ViewportSize()
	ctx.setVirtualResolution(ctx.engine.config.VirtualResolution)

	ctx.maxPointer = input.maxActivePointer()
	ctx.currentPointer = -1
	ctx.gamepadHasFocus = false
	ctx.gamepadEvent = EventNone

	ctx.beginPass()
}

// beginPass resets what both passes start from.
func (ctx *Context) beginPass() {
	ctx.cur = newGroup(DirVertical, AlignStart, 0, -1)
	ctx.inScroll = false
	for i := range ctx.clipPointerInside {
		ctx.clipPointerInside[i] = true
	}

	cfg := ctx.engine.config
	ctx.textColor = ColorWhite
	ctx.scrollSpeedDrag = cfg.ScrollSpeedDrag
	ctx.scrollSpeedWheel = cfg.ScrollSpeedWheel
	ctx.dragThreshold = Vec2i{X: cfg.DragStartThreshold, Y: cfg.DragStartThreshold}
}

// startPlacing ends the measuring pass and prepares the placing pass.
func (ctx *Context) startPlacing() MeasurePass {
	ctx.checkBalanced("measuring")
	root := ctx.cur.size
	measure := MeasurePass{Size: root, Elements: ctx.ledger.snapshot()}

	ctx.ledger.startPlacing()
	ctx.measuring = false
	ctx.drawList = AcquireDrawList()
	ctx.beginPass()
	ctx.cur.size = root

	ctx.resetPresses()
	ctx.checkNavigation()
	return measure
}

// finishPlacing ends the placing pass and settles focus and drag state.
func (ctx *Context) finishPlacing() PlacePass {
	ctx.checkBalanced("placing")

	p := ctx.p
	if p.inputCapture != NoID && !slices.Contains(ctx.placed, p.inputCapture) {
		uiLogger.Debug("input capture holder gone", "id", p.inputCapture)
		ctx.ReleaseInput()
	}

	if !ctx.gamepadHasFocus {
		// Nothing claimed focus this frame.
		next := ctx.ledger.nextInteractive(-1, 1)
		if next != p.focus {
			uiLogger.Debug("focus reset", "from", p.focus, "to", next)
		}
		p.focus = next
	}

	if p.draggingPointer >= 0 && !ctx.input.Pointers[p.draggingPointer].Button.IsDown() {
		if p.pointerCapture == p.dragElement {
			ctx.ReleasePointer()
		}
		p.clearDrag()
	}

	placed := make([]ID, len(ctx.placed))
	copy(placed, ctx.placed)
	return PlacePass{
		Placed:   placed,
		Focus:    p.focus,
		DrawList: ctx.drawList,
	}
}

func (ctx *Context) checkBalanced(pass string) {
	if len(ctx.stack) != 0 {
		panic(fmt.Errorf("%w: %d groups still open after %s", ErrUnbalancedGroup, len(ctx.stack), pass))
	}
}

// Measuring returns true during the measuring pass, when widget calls only
// record sizes. Code with side effects belongs in the placing pass.
func (ctx *Context) Measuring() bool {
	return ctx.measuring
}

// Input returns the input state of the frame.
func (ctx *Context) Input() *InputState {
	return ctx.input
}

// DrawList returns the placing pass draw list, or nil while measuring.
func (ctx *Context) DrawList() *DrawList {
	return ctx.drawList
}

// Engine returns the engine running the frame.
func (ctx *Context) Engine() *Engine {
	return ctx.engine
}

// setVirtualResolution sets the virtual size of both viewport axes and
// recomputes the pixel scale, fitting the virtual square in the viewport.
func (ctx *Context) setVirtualResolution(res float32) {
	ctx.virtualResolution = res
	vx, vy := float32(ctx.viewport.X), float32(ctx.viewport.Y)
	if vx <= 0 || vy <= 0 {
		ctx.scale = 1
		return
	}
	ctx.scale = min(vx/res, vy/res)
}

// Scale returns the number of pixels per virtual unit.
func (ctx *Context) Scale() float32 {
	return ctx.scale
}

// VirtualToPhysical converts a virtual size to pixels, rounding to nearest.
func (ctx *Context) VirtualToPhysical(v Vec2) Vec2i {
	return Vec2i{X: ctx.toPixels(v.X), Y: ctx.toPixels(v.Y)}
}

func (ctx *Context) toPixels(v float32) int {
	return int(math.Floor(float64(v*ctx.scale) + 0.5))
}

// PositionUI sets the virtual resolution and aligns the whole UI in the
// viewport. Call it first, at the root.
func (ctx *Context) PositionUI(virtualResolution float32, horizontal, vertical Alignment) {
	if ctx.measuring {
		ctx.setVirtualResolution(virtualResolution)
		return
	}
	space := ctx.viewport.Sub(ctx.cur.size)
	ctx.cur.position.X += AlignOffset(horizontal, space.X)
	ctx.cur.position.Y += AlignOffset(vertical, space.Y)
}

// StartGroup opens a container. Children stack in dir, aligned by align
// on the other axis, spacing virtual units apart.
func (ctx *Context) StartGroup(dir Direction, align Alignment, spacing float32, id ID) {
	g := newGroup(dir, align, ctx.toPixels(spacing), len(ctx.ledger.elements))
	ctx.stack = append(ctx.stack, ctx.cur)

	if ctx.measuring {
		ctx.ledger.measureAppend(Vec2i{}, id)
		ctx.cur = g
		return
	}

	el, idx := ctx.ledger.placeNext(id)
	if el == nil {
		uiLogger.Debug("group not measured, placing empty", "id", id)
		g.elementIdx = ctx.ledger.sentinel()
		g.position = ctx.cur.position
	} else {
		g.elementIdx = idx
		g.size = el.Size
		g.position = ctx.cur.childPosition(el.Size)
		ctx.placed = append(ctx.placed, id)
	}
	ctx.cur = g
}

// EndGroup closes the container opened by the matching StartGroup.
func (ctx *Context) EndGroup() {
	n := len(ctx.stack)
	if n == 0 {
		panic(fmt.Errorf("%w: EndGroup without StartGroup", ErrUnbalancedGroup))
	}
	closing := ctx.cur
	ctx.cur = ctx.stack[n-1]
	ctx.stack = ctx.stack[:n-1]

	el := ctx.ledger.at(closing.elementIdx)
	if ctx.measuring {
		size := closing.size.Add(closing.margin.total())
		el.Size = size
		ctx.cur.extend(size)
		if ctx.cur.direction == DirOverlay {
			ctx.disableCovered(closing.elementIdx)
		}
		return
	}
	if el != nil && el.ID != sentinelID {
		ctx.cur.advance(el.Size)
	}
}

// disableCovered applies the overlay rule: once a later child of an overlay
// group closes, the elements of earlier children no longer take input.
func (ctx *Context) disableCovered(closingIdx int) {
	for i := ctx.cur.elementIdx + 1; i < closingIdx; i++ {
		ctx.ledger.elements[i].Interactive = false
	}
}

// Group opens a container and returns a function that runs body inside it
// and closes it.
//
//	ctx.Group(flatui.LayoutVerticalLeft, 10, id)(func() {
//	    ctx.Label("hello", 30)
//	})
func (ctx *Context) Group(layout Layout, spacing float32, id ID) func(body func()) {
	ctx.StartGroup(layout.Direction, layout.Align, spacing, id)
	return func(body func()) {
		body()
		ctx.EndGroup()
	}
}

// SetMargin sets the margin of the current group.
func (ctx *Context) SetMargin(m Margin) {
	ctx.cur.margin = pixelMargin{
		leftTop:     ctx.VirtualToPhysical(Vec2{X: m.Left, Y: m.Top}),
		rightBottom: ctx.VirtualToPhysical(Vec2{X: m.Right, Y: m.Bottom}),
	}
}

// GroupSize returns the size of the current group including scrollable
// extra content.
func (ctx *Context) GroupSize() Vec2i {
	size := ctx.cur.size
	if el := ctx.ledger.at(ctx.cur.elementIdx); el != nil {
		size = size.Add(el.ExtraSize)
	}
	return size
}

// GroupPosition returns the top-left of the current group while placing.
func (ctx *Context) GroupPosition() Vec2i {
	return ctx.cur.position
}

// currentElement returns the ledger element of the current group, or nil
// at the root.
func (ctx *Context) currentElement() *Element {
	return ctx.ledger.at(ctx.cur.elementIdx)
}

// leaf records a leaf element while measuring, or places it and calls draw
// while placing. Leaves missing from the ledger are skipped.
func (ctx *Context) leaf(size Vec2i, id ID, draw func(pos, size Vec2i)) {
	if ctx.measuring {
		ctx.ledger.measureAppend(size, id)
		ctx.cur.extend(size)
		return
	}
	el, _ := ctx.ledger.placeNext(id)
	if el == nil {
		uiLogger.Debug("element not measured, skipping", "id", id)
		return
	}
	ctx.placed = append(ctx.placed, id)
	pos := ctx.cur.childPosition(el.Size)
	if draw != nil {
		draw(pos, el.Size)
	}
	ctx.cur.advance(el.Size)
}

// SetTextColor sets the color of subsequent text.
func (ctx *Context) SetTextColor(color uint32) {
	ctx.textColor = color
}

// SetScrollSpeed sets the drag multiplier and wheel pixels per notch.
func (ctx *Context) SetScrollSpeed(drag, wheel float32) {
	ctx.scrollSpeedDrag = drag
	ctx.scrollSpeedWheel = wheel
}

// SetDragStartThreshold sets how far in pixels a pointer moves before a
// drag starts.
func (ctx *Context) SetDragStartThreshold(pixels int) {
	ctx.dragThreshold = Vec2i{X: pixels, Y: pixels}
}

func (ctx *Context) shaper() TextShaper {
	return ctx.engine.shaper
}
