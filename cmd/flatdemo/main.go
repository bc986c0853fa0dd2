// Command flatdemo opens a window running the flatui demo UI.
//
// Usage:
//
//	go run ./cmd/flatdemo [-config flatui.toml] [-v]
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/flatui"
	"github.com/go-theft-auto/flatui/backend/opengl"
	"github.com/go-theft-auto/flatui/internal/demo"
)

const (
	windowWidth  = 1024
	windowHeight = 768
	windowTitle  = "flatui demo"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if err := run(*configPath, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) error {
	cfg := flatui.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = flatui.LoadConfig(configPath); err != nil {
			return err
		}
	}
	flatui.SetVerbose(verbose || cfg.Verbose)

	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fw, fh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fw, fh)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	checker, err := renderer.LoadTexture(demo.Checker(64, 8))
	if err != nil {
		return fmt.Errorf("demo texture: %w", err)
	}

	inputAdapter := opengl.NewGLFWInputAdapter(window)

	session := flatui.NewTextEdit()
	session.SetClipboard(opengl.NewGLFWClipboard(window))

	ui, err := flatui.New(renderer,
		flatui.WithConfig(cfg),
		flatui.WithEditSession(session),
		flatui.WithTexture(demo.CheckerTexture, checker),
	)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	state := demo.NewState()
	flatui.Logger().Info("demo started", "framebuffer", fmt.Sprintf("%dx%d", fw, fh))

	// Main loop.
	for !window.ShouldClose() {
		input := inputAdapter.Update()

		w, h := window.GetFramebufferSize()
		renderer.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if _, err := ui.Run(input, state.Build); err != nil {
			return fmt.Errorf("frame: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
