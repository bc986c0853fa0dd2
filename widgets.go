package flatui

// Label draws a single line of text fontSize virtual units high.
// The text doubles as the element id.
func (ctx *Context) Label(text string, fontSize float32) {
	ctx.LabelWrapped(text, fontSize, Vec2{Y: fontSize})
}

// LabelWrapped draws text that wraps to size.X virtual units when it is
// positive.
func (ctx *Context) LabelWrapped(text string, fontSize float32, size Vec2) {
	psize := ctx.VirtualToPhysical(size)
	pixels := ctx.toPixels(fontSize)
	buf := ctx.shaper().Buffer(text, pixels, psize, psize.X > 0)
	ctx.label(HashID(text), buf, Rect{Size: buf.Size()})
}

// label lays out a text buffer, showing the part of it inside window.
// It returns the position the buffer origin was drawn at.
func (ctx *Context) label(id ID, buf TextBuffer, window Rect) Vec2i {
	var origin Vec2i
	ctx.leaf(window.Size, id, func(pos, size Vec2i) {
		bsize := buf.Size()
		clipping := window.Pos != (Vec2i{}) || bsize.X > size.X || bsize.Y > size.Y
		origin = pos.Sub(window.Pos)
		if clipping {
			ctx.drawList.PushClipRect(Rect{Pos: pos, Size: size})
		}
		ctx.drawList.AddGlyphQuads(ctx.engine.renderer.FontTextureID(), buf.Glyphs(), origin, ctx.textColor)
		if clipping {
			ctx.drawList.PopClipRect()
		}
	})
	return origin
}

// Image draws a registered texture height virtual units high, keeping its
// aspect ratio. The texture name doubles as the element id.
func (ctx *Context) Image(textureName string, height float32) {
	tex := ctx.engine.texture(textureName)
	var size Vec2i
	if ctx.measuring && tex.Size.Y > 0 {
		size = ctx.VirtualToPhysical(Vec2{
			X: float32(tex.Size.X) * height / float32(tex.Size.Y),
			Y: height,
		})
	}
	ctx.leaf(size, HashID(textureName), func(pos, size Vec2i) {
		ctx.drawList.AddQuad(tex.ID, ColorWhite, pos, size, FullUV)
	})
}

// CustomElement reserves size virtual units and calls draw with the pixel
// rectangle while placing.
func (ctx *Context) CustomElement(size Vec2, id ID, draw func(pos, size Vec2i)) {
	var psize Vec2i
	if ctx.measuring {
		psize = ctx.VirtualToPhysical(size)
	}
	ctx.leaf(psize, id, draw)
}

// Spacer reserves an empty element of size pixels.
func (ctx *Context) Spacer(size Vec2i, id ID) {
	ctx.leaf(size, id, nil)
}

// Texture returns a registered texture by name.
func (ctx *Context) Texture(name string) Texture {
	return ctx.engine.texture(name)
}

// RenderTexture draws tex at a pixel rectangle. It draws nothing while
// measuring.
func (ctx *Context) RenderTexture(tex Texture, pos, size Vec2i) {
	if ctx.measuring {
		return
	}
	ctx.drawList.AddQuad(tex.ID, ColorWhite, pos, size, FullUV)
}

// RenderTextureNinePatch draws tex stretched to a pixel rectangle with
// fixed corners. patch is the stretchable part as texture fractions
// (left, top, right, bottom).
func (ctx *Context) RenderTextureNinePatch(tex Texture, patch [4]float32, pos, size Vec2i) {
	if ctx.measuring {
		return
	}
	ctx.drawList.AddNinePatch(tex, ColorWhite, pos, size, patch)
}

// ColorBackground fills the current group.
func (ctx *Context) ColorBackground(color uint32) {
	if ctx.measuring {
		return
	}
	ctx.drawList.AddRect(ctx.cur.position, ctx.GroupSize(), color)
}

// ImageBackground stretches a texture over the current group.
func (ctx *Context) ImageBackground(tex Texture) {
	ctx.RenderTexture(tex, ctx.cur.position, ctx.GroupSize())
}

// ImageBackgroundNinePatch stretches a nine-patch over the current group.
func (ctx *Context) ImageBackgroundNinePatch(tex Texture, patch [4]float32) {
	ctx.RenderTextureNinePatch(tex, patch, ctx.cur.position, ctx.GroupSize())
}
