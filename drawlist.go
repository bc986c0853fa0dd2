package flatui

import "sync"

// drawListPool provides efficient reuse of DrawList buffers.
// This avoids allocations on every frame, which is critical for
// immediate-mode UI where we rebuild the entire draw list each frame.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]uint16, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// Vertex represents a vertex for UI rendering.
// Memory layout matches OpenGL vertex attribute expectations.
type Vertex struct {
	Pos      [2]float32 // Position (x, y) in pixels
	TexCoord [2]float32 // Texture coordinates (u, v)
	Color    uint32     // RGBA packed color
}

// DrawCmd represents a single draw command.
// Commands are batched by texture to minimize state changes.
type DrawCmd struct {
	ElemCount    uint32     // Number of indices to draw
	ClipRect     [4]float32 // Clip rectangle (x1, y1, x2, y2)
	TextureID    uint32     // Texture ID (0 = solid color)
	VertexOffset uint32     // Offset into vertex buffer
	IndexOffset  uint32     // Offset into index buffer
}

// GlyphQuad is one glyph's rendering quad, relative to the text origin.
type GlyphQuad struct {
	X0, Y0 float32 // Top-left
	X1, Y1 float32 // Bottom-right
	U0, V0 float32 // Texture coordinates (top-left)
	U1, V1 float32 // Texture coordinates (bottom-right)
}

// DrawList accumulates draw commands for a frame.
// It batches primitives by texture to minimize GPU state changes.
type DrawList struct {
	CmdBuffer []DrawCmd // Draw commands
	VtxBuffer []Vertex  // Vertex data
	IdxBuffer []uint16  // Index data

	clipStack    [][4]float32 // Clip rectangle stack
	currentClip  [4]float32   // Current clip rectangle
	textureID    uint32       // Current texture for batching
	cmdOffset    uint32       // Vertex offset for current command
	idxCmdOffset uint32       // Index offset for current command
	quads        int
}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = [4]float32{-1e9, -1e9, 1e9, 1e9} // Very large default clip
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
	dl.quads = 0
}

// PushClipRect pushes a clip rectangle, intersected with the current one.
// All subsequent primitives will be clipped to it.
func (dl *DrawList) PushClipRect(r Rect) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	c := dl.currentClip
	dl.currentClip = [4]float32{
		max(c[0], float32(r.Pos.X)),
		max(c[1], float32(r.Pos.Y)),
		min(c[2], float32(r.Pos.X+r.Size.X)),
		min(c[3], float32(r.Pos.Y+r.Size.Y)),
	}
	dl.splitDraw() // Force new command with new clip rect
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw() // Force new command with restored clip rect
	}
}

// ClipRect returns the current clip rectangle as (x1, y1, x2, y2).
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// ClipDepth returns the number of pushed clip rectangles.
func (dl *DrawList) ClipDepth() int {
	return len(dl.clipStack)
}

// QuadCount returns the number of quads added since Clear.
func (dl *DrawList) QuadCount() int {
	return dl.quads
}

// SetTexture sets the current texture for subsequent primitives.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.textureID != textureID {
		dl.textureID = textureID
		dl.splitDraw()
	}
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	// Finalize current command if it has any indices
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}

	// Start new command
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// ensureCommand ensures there's an active draw command.
func (dl *DrawList) ensureCommand() {
	if len(dl.CmdBuffer) == 0 {
		dl.splitDraw()
	}
}

// addQuadVertices appends one textured quad.
func (dl *DrawList) addQuadVertices(x0, y0, x1, y1 float32, uv UVRect, color uint32) {
	dl.ensureCommand()
	// Indices are 16-bit and relative to the command's vertex offset.
	if len(dl.VtxBuffer)-int(dl.cmdOffset) > 0xFFFF-4 {
		dl.splitDraw()
	}
	idx := uint16(len(dl.VtxBuffer) - int(dl.cmdOffset))
	dl.VtxBuffer = append(dl.VtxBuffer,
		Vertex{Pos: [2]float32{x0, y0}, TexCoord: [2]float32{uv[0], uv[1]}, Color: color},
		Vertex{Pos: [2]float32{x1, y0}, TexCoord: [2]float32{uv[2], uv[1]}, Color: color},
		Vertex{Pos: [2]float32{x1, y1}, TexCoord: [2]float32{uv[2], uv[3]}, Color: color},
		Vertex{Pos: [2]float32{x0, y1}, TexCoord: [2]float32{uv[0], uv[3]}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
	dl.quads++
}

// AddQuad draws an axis-aligned quad with pixel coordinates.
// textureID 0 draws a solid color.
func (dl *DrawList) AddQuad(textureID uint32, color uint32, pos, size Vec2i, uv UVRect) {
	if color&0xFF000000 == 0 { // Skip fully transparent
		return
	}
	dl.SetTexture(textureID)
	dl.addQuadVertices(float32(pos.X), float32(pos.Y),
		float32(pos.X+size.X), float32(pos.Y+size.Y), uv, color)
}

// AddRect draws a filled solid rectangle.
func (dl *DrawList) AddRect(pos, size Vec2i, color uint32) {
	dl.AddQuad(0, color, pos, size, FullUV)
}

// AddNinePatch draws a texture stretched with fixed corners.
// patch holds the stretchable region as UV fractions (left, top, right, bottom).
func (dl *DrawList) AddNinePatch(tex Texture, color uint32, pos, size Vec2i, patch [4]float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(tex.ID)

	// Corner sizes in pixels come from the texture, clamped so opposite
	// corners never overlap.
	left := min(float32(tex.Size.X)*patch[0], float32(size.X)/2)
	right := min(float32(tex.Size.X)*(1-patch[2]), float32(size.X)/2)
	top := min(float32(tex.Size.Y)*patch[1], float32(size.Y)/2)
	bottom := min(float32(tex.Size.Y)*(1-patch[3]), float32(size.Y)/2)

	xs := [4]float32{float32(pos.X), float32(pos.X) + left, float32(pos.X+size.X) - right, float32(pos.X + size.X)}
	ys := [4]float32{float32(pos.Y), float32(pos.Y) + top, float32(pos.Y+size.Y) - bottom, float32(pos.Y + size.Y)}
	us := [4]float32{0, patch[0], patch[2], 1}
	vs := [4]float32{0, patch[1], patch[3], 1}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if xs[col+1] <= xs[col] || ys[row+1] <= ys[row] {
				continue
			}
			dl.addQuadVertices(xs[col], ys[row], xs[col+1], ys[row+1],
				UVRect{us[col], vs[row], us[col+1], vs[row+1]}, color)
		}
	}
}

// AddGlyphQuads draws a text mesh offset by origin.
func (dl *DrawList) AddGlyphQuads(textureID uint32, quads []GlyphQuad, origin Vec2i, color uint32) {
	if color&0xFF000000 == 0 || len(quads) == 0 {
		return
	}
	dl.SetTexture(textureID)
	ox, oy := float32(origin.X), float32(origin.Y)
	for _, q := range quads {
		dl.addQuadVertices(q.X0+ox, q.Y0+oy, q.X1+ox, q.Y1+oy,
			UVRect{q.U0, q.V0, q.U1, q.V1}, color)
	}
}

// Finalize prepares the DrawList for rendering.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	// Finalize the last command
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}

	// Remove empty commands
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}
