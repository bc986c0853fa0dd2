package flatui

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"
)

// Renderer is the interface for rendering engine draw data.
type Renderer interface {
	// Render draws a finalized draw list.
	Render(dl *DrawList) error

	// ViewportSize returns the drawable size in physical pixels.
	ViewportSize() Vec2i

	// FontTextureID returns the texture glyph quads sample from.
	FontTextureID() uint32

	// UpdateFontAtlas uploads new glyph atlas pixels to FontTextureID.
	UpdateFontAtlas(atlas *image.Alpha)
}

// Texture is an image the renderer has uploaded.
type Texture struct {
	ID   uint32
	Size Vec2i // In pixels
}

// Frame is the result of one Run.
type Frame struct {
	Number  uint64
	Scale   float32 // Pixels per virtual unit
	Measure MeasurePass
	Place   PlacePass
}

// MeasurePass is what the measuring pass produced.
type MeasurePass struct {
	// Elements is the ledger in measuring order.
	Elements []Element

	// Size is the accumulated size of the root group.
	Size Vec2i
}

// PlacePass is what the placing pass produced.
type PlacePass struct {
	// Placed lists the ids found in the ledger, in placing order.
	Placed []ID

	// Focus is the focused element once the frame ended.
	Focus ID

	// DrawList holds the frame's geometry. It stays valid until the next Run.
	DrawList *DrawList
}

// frameActive is set while any Engine runs a frame.
var frameActive atomic.Bool

// Engine runs the two-pass immediate-mode UI.
type Engine struct {
	renderer Renderer
	shaper   TextShaper
	config   Config
	clock    func() time.Duration
	textures map[string]Texture

	persistent persistentState
	ctx        *Context
	drawList   *DrawList

	atlasVersion uint64
	atlasSynced  bool
	frame        uint64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConfig sets the engine configuration.
func WithConfig(cfg Config) EngineOption {
	return func(e *Engine) { e.config = cfg }
}

// WithShaper sets the text shaper.
func WithShaper(s TextShaper) EngineOption {
	return func(e *Engine) { e.shaper = s }
}

// WithEditSession sets the session used by edit fields. The default is a
// TextEdit; nil makes edit fields read-only.
func WithEditSession(s EditSession) EngineOption {
	return func(e *Engine) { e.persistent.session = s }
}

// WithClock sets the time source for caret blinking.
func WithClock(clock func() time.Duration) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithTexture registers a named texture.
func WithTexture(name string, tex Texture) EngineOption {
	return func(e *Engine) { e.textures[name] = tex }
}

// New creates a new Engine.
// Without WithShaper, text is shaped with Go Regular.
func New(renderer Renderer, opts ...EngineOption) (*Engine, error) {
	start := time.Now()
	e := &Engine{
		renderer:   renderer,
		config:     DefaultConfig(),
		clock:      func() time.Duration { return time.Since(start) },
		textures:   make(map[string]Texture),
		persistent: newPersistentState(NewTextEdit()),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.config.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if e.shaper == nil {
		s, err := NewGoRegularShaper()
		if err != nil {
			return nil, fmt.Errorf("default shaper: %w", err)
		}
		e.shaper = s
	}
	if e.config.Verbose {
		SetVerbose(true)
	}
	e.ctx = newContext(e)
	return e, nil
}

// RegisterTexture makes a texture available to widgets by name.
func (e *Engine) RegisterTexture(name string, tex Texture) {
	e.textures[name] = tex
}

// texture looks up a registered texture. A missing name is a programming
// error in the build callback.
func (e *Engine) texture(name string) Texture {
	tex, ok := e.textures[name]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownTexture, name))
	}
	return tex
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Focus returns the focused element.
func (e *Engine) Focus() ID { return e.persistent.focus }

// SetFocus moves keyboard/gamepad focus to id.
func (e *Engine) SetFocus(id ID) { e.persistent.focus = id }

// InputCapture returns the element receiving text input.
func (e *Engine) InputCapture() ID { return e.persistent.inputCapture }

// PointerCapture returns the element receiving all pointer events.
func (e *Engine) PointerCapture() ID { return e.persistent.pointerCapture }

// Run executes one frame: build is called once to measure and once to
// place. The caller must issue the same widget calls, with the same ids, in
// both passes; Measuring tells them apart.
//
// Run panics with ErrFrameActive if another frame is running, and with
// ErrUnbalancedGroup if build leaves groups open. A render failure is
// returned along with the frame.
func (e *Engine) Run(input *InputState, build func(ctx *Context)) (Frame, error) {
	if !frameActive.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%w: Run called from inside a frame", ErrFrameActive))
	}
	defer frameActive.Store(false)

	if e.drawList != nil {
		ReleaseDrawList(e.drawList)
		e.drawList = nil
	}
	e.frame++
	e.shaper.BeginFrame(e.frame)

	ctx := e.ctx
	ctx.beginFrame(input)
	build(ctx)
	measure := ctx.startPlacing()
	build(ctx)
	place := ctx.finishPlacing()

	e.syncAtlas()
	place.DrawList.Finalize()
	if uiVerbose() {
		uiLogger.Debug("frame done", "frame", e.frame, "elements", len(measure.Elements),
			"placed", len(place.Placed), "quads", place.DrawList.QuadCount(), "focus", place.Focus)
	}
	e.drawList = place.DrawList

	frame := Frame{
		Number:  e.frame,
		Scale:   ctx.scale,
		Measure: measure,
		Place:   place,
	}
	if err := e.renderer.Render(place.DrawList); err != nil {
		return frame, fmt.Errorf("render frame %d: %w", e.frame, err)
	}
	return frame, nil
}

// syncAtlas uploads the glyph atlas when the shaper changed it.
func (e *Engine) syncAtlas() {
	atlas, version := e.shaper.Atlas()
	if atlas == nil || (e.atlasSynced && version == e.atlasVersion) {
		return
	}
	e.renderer.UpdateFontAtlas(atlas)
	e.atlasVersion = version
	e.atlasSynced = true
}
