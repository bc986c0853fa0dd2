// Package opengl provides an OpenGL 4.1 backend for the flatui package.
package opengl

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/flatui"
)

// Shader modes, selected per draw command.
const (
	modeSolid int32 = iota // Vertex color only
	modeAtlas              // Glyph atlas: R channel is coverage
	modeImage              // RGBA image modulated by vertex color
)

// Renderer draws flatui draw lists with OpenGL. It owns the glyph atlas
// texture and every texture created through LoadTexture.
type Renderer struct {
	program  uint32
	vao      uint32
	vbo, ebo uint32
	projLoc  int32
	modeLoc  int32

	atlasTex  uint32
	atlasSize flatui.Vec2i
	images    map[uint32]flatui.Vec2i

	width, height int
}

var _ flatui.Renderer = (*Renderer)(nil)

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D tex;
uniform int mode;

void main() {
    if (mode == 1) {
        FragColor = vec4(Color.rgb, Color.a * texture(tex, TexCoord).r);
    } else if (mode == 2) {
        FragColor = texture(tex, TexCoord) * Color;
    } else {
        FragColor = Color;
    }
}
` + "\x00"

// NewRenderer creates a renderer for a framebuffer of the given size. A GL
// context must be current.
func NewRenderer(width, height int) (*Renderer, error) {
	program, err := linkProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("create shader: %w", err)
	}

	r := &Renderer{
		program: program,
		projLoc: gl.GetUniformLocation(program, gl.Str("projection\x00")),
		modeLoc: gl.GetUniformLocation(program, gl.Str("mode\x00")),
		images:  make(map[uint32]flatui.Vec2i),
		width:   width,
		height:  height,
	}
	gl.UseProgram(program)
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("tex\x00")), 0)
	gl.UseProgram(0)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// flatui.Vertex: position, texture coordinate, packed RGBA.
	stride := int32(unsafe.Sizeof(flatui.Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, unsafe.Offsetof(flatui.Vertex{}.Pos))
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(flatui.Vertex{}.TexCoord))
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(flatui.Vertex{}.Color))
	for i := uint32(0); i < 3; i++ {
		gl.EnableVertexAttribArray(i)
	}
	gl.BindVertexArray(0)

	r.atlasTex = newTexture()
	return r, nil
}

// FontTextureID returns the texture glyph quads sample from.
func (r *Renderer) FontTextureID() uint32 {
	return r.atlasTex
}

// Resize updates the framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// ViewportSize returns the framebuffer size in pixels.
func (r *Renderer) ViewportSize() flatui.Vec2i {
	return flatui.Vec2i{X: r.width, Y: r.height}
}

// Render draws a finalized DrawList. GL state it touches is restored.
func (r *Renderer) Render(dl *flatui.DrawList) error {
	if dl == nil || len(dl.VtxBuffer) == 0 {
		return nil
	}

	saved := saveState()
	defer saved.restore()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	proj := orthoMatrix(float32(r.width), float32(r.height))
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(dl.VtxBuffer)*int(unsafe.Sizeof(flatui.Vertex{})),
		gl.Ptr(dl.VtxBuffer), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(dl.IdxBuffer)*2,
		gl.Ptr(dl.IdxBuffer), gl.STREAM_DRAW)

	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount == 0 {
			continue
		}
		x, y, w, h, ok := scissorBox(cmd.ClipRect, r.width, r.height)
		if !ok {
			continue
		}
		gl.Scissor(x, y, w, h)

		mode := r.textureMode(cmd.TextureID)
		gl.Uniform1i(r.modeLoc, mode)
		if mode != modeSolid {
			gl.BindTexture(gl.TEXTURE_2D, cmd.TextureID)
		}

		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount), gl.UNSIGNED_SHORT,
			uintptr(cmd.IndexOffset)*2, int32(cmd.VertexOffset))
	}

	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) textureMode(id uint32) int32 {
	switch {
	case id == 0:
		return modeSolid
	case id == r.atlasTex:
		return modeAtlas
	default:
		// Foreign textures are treated as images.
		return modeImage
	}
}

// UpdateFontAtlas uploads the glyph atlas. Same-size uploads replace the
// texels in place.
func (r *Renderer) UpdateFontAtlas(atlas *image.Alpha) {
	b := atlas.Bounds()
	size := flatui.Vec2i{X: b.Dx(), Y: b.Dy()}

	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(atlas.Stride))
	if size == r.atlasSize {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y),
			gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(size.X), int32(size.Y), 0,
			gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
		r.atlasSize = size
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// LoadTexture uploads an image as an RGBA texture for Engine.RegisterTexture.
func (r *Renderer) LoadTexture(img image.Image) (flatui.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return flatui.Texture{}, fmt.Errorf("load texture: empty image")
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	tex := newTexture()
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	size := flatui.Vec2i{X: b.Dx(), Y: b.Dy()}
	r.images[tex] = size
	return flatui.Texture{ID: tex, Size: size}, nil
}

// Delete releases every GL object the renderer created.
func (r *Renderer) Delete() {
	for tex := range r.images {
		gl.DeleteTextures(1, &tex)
	}
	clear(r.images)
	if r.atlasTex != 0 {
		gl.DeleteTextures(1, &r.atlasTex)
	}
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	*r = Renderer{}
}

func newTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// glState is the GL state Render changes.
type glState struct {
	program     int32
	blendSrc    int32
	blendDst    int32
	scissor     [4]int32
	vertexArray int32
	texture     int32

	blend, depth, cull, scissorOn bool
}

func saveState() glState {
	var s glState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissor[0])
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vertexArray)
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &s.texture)
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.scissorOn = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s glState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BlendFunc(uint32(s.blendSrc), uint32(s.blendDst))
	gl.Scissor(s.scissor[0], s.scissor[1], s.scissor[2], s.scissor[3])
	gl.BindVertexArray(uint32(s.vertexArray))
	gl.BindTexture(gl.TEXTURE_2D, uint32(s.texture))
	setEnabled(gl.BLEND, s.blend)
	setEnabled(gl.DEPTH_TEST, s.depth)
	setEnabled(gl.CULL_FACE, s.cull)
	setEnabled(gl.SCISSOR_TEST, s.scissorOn)
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// scissorBox converts a draw command clip rect (x1, y1, x2, y2, top-left
// origin) to a GL scissor box clamped to the framebuffer. ok is false when
// nothing remains visible.
func scissorBox(clip [4]float32, width, height int) (x, y, w, h int32, ok bool) {
	x1 := max(int32(clip[0]), 0)
	y1 := max(int32(clip[1]), 0)
	x2 := min(int32(clip[2]), int32(width))
	y2 := min(int32(clip[3]), int32(height))
	if x2 <= x1 || y2 <= y1 {
		return 0, 0, 0, 0, false
	}
	// GL counts rows from the bottom.
	return x1, int32(height) - y2, x2 - x1, y2 - y1, true
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetShaderInfoLog(shader, n, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", log)
	}
	return shader, nil
}

// linkProgram compiles both stages and links them.
func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetProgramInfoLog(program, n, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", log)
	}
	return program, nil
}

// orthoMatrix maps pixels, origin top-left, to clip space.
func orthoMatrix(width, height float32) [16]float32 {
	return [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
}
