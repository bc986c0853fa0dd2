package flatui

import "image"

// HeadlessRenderer is a Renderer that draws nothing. It keeps counts of
// what it was given, which is enough to drive the engine from tools and
// tests without a window.
type HeadlessRenderer struct {
	Size Vec2i

	Frames       int // Render calls
	Quads        int // Quads in the last draw list
	Commands     int // Draw commands in the last draw list
	AtlasUploads int
	Atlas        *image.Alpha // Last uploaded atlas
}

// NewHeadlessRenderer creates a renderer with a fixed viewport.
func NewHeadlessRenderer(width, height int) *HeadlessRenderer {
	return &HeadlessRenderer{Size: Vec2i{X: width, Y: height}}
}

func (r *HeadlessRenderer) Render(dl *DrawList) error {
	r.Frames++
	r.Quads = dl.QuadCount()
	r.Commands = len(dl.CmdBuffer)
	return nil
}

func (r *HeadlessRenderer) ViewportSize() Vec2i { return r.Size }

func (r *HeadlessRenderer) FontTextureID() uint32 { return 1 }

func (r *HeadlessRenderer) UpdateFontAtlas(atlas *image.Alpha) {
	r.AtlasUploads++
	r.Atlas = atlas
}
