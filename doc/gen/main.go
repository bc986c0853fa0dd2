// Command gen renders sample UIs offscreen, captures framebuffer pixels,
// and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/flatui"
	"github.com/go-theft-auto/flatui/backend/opengl"
	"github.com/go-theft-auto/flatui/internal/demo"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single screenshot to capture.
type screenshot struct {
	name   string // filename without extension
	width  int    // viewport width
	height int    // viewport height
	frames int    // frames to render (0 = default 2)

	// build returns a fresh build callback.
	build func() func(*flatui.Context)

	// input scripts the input of each frame; nil means idle.
	input func(in *flatui.InputState, frame int)
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(1280, 800, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(1280, 800)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	checker, err := renderer.LoadTexture(demo.Checker(64, 8))
	if err != nil {
		return fmt.Errorf("demo texture: %w", err)
	}

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, checker, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, checker flatui.Texture, s screenshot, outDir string) error {
	// Only the projection changes; the hidden window stays larger than every
	// screenshot.
	renderer.Resize(s.width, s.height)

	// Fresh engine per screenshot so focus and capture don't leak between
	// captures.
	ui, err := flatui.New(renderer, flatui.WithTexture(demo.CheckerTexture, checker))
	if err != nil {
		return err
	}

	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}

	build := s.build()
	input := flatui.NewInputState()
	for i := 0; i < frames; i++ {
		input.Reset()
		if s.input != nil {
			s.input(input, i)
		}

		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if _, err := ui.Run(input, build); err != nil {
			return err
		}
	}

	// Read pixels
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "demo", width: 1024, height: 768,
			build: func() func(*flatui.Context) { return demo.NewState().Build },
		},
		{
			name: "demo_popup", width: 1024, height: 768,
			build: func() func(*flatui.Context) {
				s := demo.NewState()
				s.Popup = true
				return s.Build
			},
		},
		{
			name: "demo_scrolled", width: 1024, height: 768,
			build: func() func(*flatui.Context) {
				s := demo.NewState()
				s.Scroll = flatui.Vec2i{Y: 120}
				return s.Build
			},
		},
		{
			name: "demo_focus", width: 1024, height: 768, frames: 3,
			build: func() func(*flatui.Context) { return demo.NewState().Build },
			input: func(in *flatui.InputState, frame int) {
				in.SetKey(flatui.KeyRight, frame == 1)
			},
		},
		{
			name: "groups", width: 640, height: 360,
			build: func() func(*flatui.Context) { return groups },
		},
		{
			name: "wrapped", width: 640, height: 360,
			build: func() func(*flatui.Context) { return wrapped },
		},
	}
}

// groups shows the three directions side by side.
func groups(ctx *flatui.Context) {
	ctx.PositionUI(1000, flatui.AlignCenter, flatui.AlignCenter)
	ctx.Group(flatui.LayoutHorizontalTop, 40, flatui.HashID("directions"))(func() {
		for _, dir := range []flatui.Direction{flatui.DirHorizontal, flatui.DirVertical, flatui.DirOverlay} {
			id := flatui.HashID(dir.String())
			ctx.StartGroup(dir, flatui.AlignCenter, 10, id)
			ctx.SetMargin(flatui.UniformMargin(10))
			ctx.ColorBackground(flatui.ColorDarkGray)
			ctx.CustomElement(flatui.Vec2{X: 120, Y: 60}, id.Child("a"), box(ctx, flatui.ColorRed))
			ctx.CustomElement(flatui.Vec2{X: 80, Y: 100}, id.Child("b"), box(ctx, flatui.ColorGreen))
			ctx.CustomElement(flatui.Vec2{X: 60, Y: 40}, id.Child("c"), box(ctx, flatui.ColorBlue))
			ctx.EndGroup()
		}
	})
}

func box(ctx *flatui.Context, color uint32) func(pos, size flatui.Vec2i) {
	return func(pos, size flatui.Vec2i) {
		ctx.DrawList().AddRect(pos, size, color)
	}
}

// wrapped shows word wrapping at two widths.
func wrapped(ctx *flatui.Context) {
	const text = "The quick brown fox jumps over the lazy dog, twice, " +
		"because the first jump was not measured properly."
	ctx.PositionUI(1000, flatui.AlignCenter, flatui.AlignCenter)
	ctx.Group(flatui.LayoutHorizontalTop, 40, flatui.HashID("wrapped"))(func() {
		ctx.LabelWrapped(text, 40, flatui.Vec2{X: 300})
		ctx.LabelWrapped(text+" ", 30, flatui.Vec2{X: 500})
	})
}
