// Package window opens a GLFW window with an OpenGL 4.1 core context.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Title  string
}

type Config struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Title:     "Graphics Project",
		Resizable: true,
		VSync:     true,
	}
}

// New creates the window and makes its context current on the calling
// thread.
func New(cfg Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(cfg.Resizable))

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(boolToInt(cfg.VSync))

	return &Window{Handle: handle, Title: cfg.Title}, nil
}

func (w *Window) ShouldClose() bool { return w.Handle.ShouldClose() }
func (w *Window) Close()            { w.Handle.SetShouldClose(true) }
func (w *Window) PollEvents()       { glfw.PollEvents() }
func (w *Window) SwapBuffers()      { w.Handle.SwapBuffers() }

// FramebufferSize is the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) FramebufferSize() [2]int32 {
	fw, fh := w.Handle.GetFramebufferSize()
	return [2]int32{int32(fw), int32(fh)}
}

// Time is seconds since GLFW was initialized.
func (w *Window) Time() float64 { return glfw.GetTime() }

func (w *Window) IsKeyPressed(key Key) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

func (w *Window) CursorPos() (float64, float64) { return w.Handle.GetCursorPos() }

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type Key int

const (
	KeyEscape    = Key(glfw.KeyEscape)
	KeySpace     = Key(glfw.KeySpace)
	KeyLeftShift = Key(glfw.KeyLeftShift)
	KeyW         = Key(glfw.KeyW)
	KeyA         = Key(glfw.KeyA)
	KeyS         = Key(glfw.KeyS)
	KeyD         = Key(glfw.KeyD)
	KeyQ         = Key(glfw.KeyQ)
	KeyE         = Key(glfw.KeyE)
	KeyF5        = Key(glfw.KeyF5)
)

const MouseButtonRight = int(glfw.MouseButtonRight)
