package flatui

// navButtons is one source of focus navigation: a gamepad or the keyboard.
type navButtons struct {
	prev, next, activate Button
}

// direction returns -1 or +1 when prev or next was released, else 0.
func (b navButtons) direction() int {
	switch {
	case b.prev.WentUp():
		return -1
	case b.next.WentUp():
		return 1
	}
	return 0
}

// event maps the activate button onto pointer-style events.
func (b navButtons) event() Event {
	ev := EventNone
	if b.activate.WentUp() {
		ev |= EventWentUp
	}
	if b.activate.WentDown() {
		ev |= EventWentDown
	}
	if b.activate.IsDown() {
		ev |= EventIsDown
	}
	return ev
}

func (ctx *Context) navigationSources() []navButtons {
	sources := make([]navButtons, 0, len(ctx.input.Gamepads)+1)
	for _, pad := range ctx.input.Gamepads {
		sources = append(sources, navButtons{
			prev:     pad.Buttons[GamepadLeft],
			next:     pad.Buttons[GamepadRight],
			activate: pad.Buttons[GamepadA],
		})
	}
	return append(sources, navButtons{
		prev:     ctx.input.Key(KeyLeft),
		next:     ctx.input.Key(KeyRight),
		activate: ctx.input.Key(KeyEnter),
	})
}

// checkNavigation moves focus with the keyboard and gamepads and sets the
// event the focused element receives. It runs once, when placing starts,
// against the freshly measured ledger. Navigation is suspended while an
// element captures text input, and an activate press that began during the
// capture is ignored until released.
func (ctx *Context) checkNavigation() {
	ctx.gamepadEvent = EventHover
	if ctx.p.inputCapture != NoID {
		for _, src := range ctx.navigationSources() {
			if src.event() != EventNone {
				ctx.p.activateHeld = true
			}
		}
		return
	}

	dir := 0
	activate := EventNone
	for _, src := range ctx.navigationSources() {
		if dir == 0 {
			dir = src.direction()
		}
		if ev := src.event(); ev != EventNone && activate == EventNone {
			activate = ev
		}
	}
	switch {
	case ctx.p.activateHeld && activate != EventNone:
		uiLogger.Debug("activate held from input capture, ignored")
	case activate != EventNone:
		ctx.gamepadEvent = activate
	default:
		ctx.p.activateHeld = false
	}
	if dir == 0 {
		return
	}

	idx := ctx.ledger.indexOf(ctx.p.focus)
	if idx < 0 {
		return
	}
	next := ctx.ledger.nextInteractive(idx, dir)
	uiLogger.Debug("focus navigated", "from", ctx.p.focus, "to", next, "dir", dir)
	ctx.p.focus = next
}
