package flatui

import "image"

// TextShaper is the text collaborator of the engine. It lays out strings
// into TextBuffers and owns the glyph atlas those buffers sample from.
//
// The engine does not depend on any concrete font implementation.
// Applications inject a TextShaper with WithShaper; the default is a
// FaceShaper over Go Regular.
type TextShaper interface {
	// BeginFrame is called once per frame before any Buffer call.
	// Implementations use it to expire buffers nobody asked for lately.
	BeginFrame(frame uint64)

	// Buffer lays out text at fontSize pixels. maxSize bounds the layout;
	// when wrap is set, lines break to fit maxSize.X. The same arguments
	// within a frame must return an equivalent buffer, so the measuring and
	// placing passes agree on sizes.
	Buffer(text string, fontSize int, maxSize Vec2i, wrap bool) TextBuffer

	// Atlas returns the glyph atlas and a version that changes whenever its
	// pixels do.
	Atlas() (*image.Alpha, uint64)
}

// TextBuffer is laid-out text.
//
// Caret indices count runes, from 0 (before the first rune) to CaretCount()-1
// (after the last one). Caret positions are on the baseline, relative to the
// buffer's top-left corner.
type TextBuffer interface {
	// Size returns the extent of the laid-out text in pixels.
	Size() Vec2i

	// LineHeight returns the distance between baselines.
	LineHeight() int

	// CaretCount returns the number of caret positions.
	CaretCount() int

	// CaretPosition returns the baseline position of caret index i.
	// Out-of-range indices are clamped.
	CaretPosition(i int) Vec2i

	// IndexAt returns the caret index closest to p.
	IndexAt(p Vec2i) int

	// Glyphs returns the glyph quads, relative to the buffer origin.
	// The slice is owned by the buffer and must not be modified.
	Glyphs() []GlyphQuad
}
