package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/log"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/opengl"
	"github.com/NouranFoda/CMPN205-Graphics-Project/internal/window"
	"github.com/NouranFoda/CMPN205-Graphics-Project/renderer"
	"github.com/NouranFoda/CMPN205-Graphics-Project/systems"
)

// maxFrameStep caps dt so a stall does not teleport moving entities.
const maxFrameStep = 0.05

func run(ctx context.Context, path string, opts options, logger *log.Logger) error {
	win, err := window.New(window.Config{
		Width:     opts.width,
		Height:    opts.height,
		Title:     opts.title,
		Resizable: true,
		VSync:     true,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	dev, err := opengl.New(logger.Named("gl"))
	if err != nil {
		return err
	}

	sc, err := loadScene(ctx, dev, path, logger)
	if err != nil {
		return err
	}
	defer func() { sc.release(dev) }()

	var reload <-chan struct{}
	if opts.watch {
		w, err := watchFile(path, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		reload = w.changed
	}

	fr := renderer.New(dev, renderer.WithLogger(logger.Named("renderer")))
	var (
		movement systems.MovementSystem
		camera   = systems.NewFreeCameraSystem()
		in       = windowInput{win}
		f5Down   bool
		frames   int
		fpsStart = time.Now()
	)

	last := win.Time()
	for !win.ShouldClose() {
		win.PollEvents()
		if win.IsKeyPressed(window.KeyEscape) {
			win.Close()
		}

		f5 := win.IsKeyPressed(window.KeyF5)
		requested := f5 && !f5Down
		f5Down = f5
		select {
		case <-reload:
			requested = true
		default:
		}
		if requested {
			if next, err := loadScene(ctx, dev, path, logger); err != nil {
				logger.Warn("scene reload failed, keeping current scene", log.Error(err))
			} else {
				sc.release(dev)
				sc = next
				logger.Info("scene reloaded", log.String("path", path))
			}
		}

		now := win.Time()
		dt := float32(min(now-last, maxFrameStep))
		last = now

		camera.Update(sc.world, in, dt)
		movement.Update(sc.world, dt)
		sc.collision.Update(sc.world)

		fr.Render(sc.world, [2]int32{0, 0}, win.FramebufferSize())
		win.SwapBuffers()

		frames++
		if elapsed := time.Since(fpsStart); elapsed >= time.Second {
			st := fr.Stats()
			win.SetTitle(fmt.Sprintf("%s | %.0f fps | %d opaque %d transparent",
				opts.title, float64(frames)/elapsed.Seconds(), st.Opaque, st.Transparent))
			frames, fpsStart = 0, time.Now()
		}
	}
	return nil
}

// windowInput maps keyboard and mouse state onto free camera actions.
type windowInput struct{ win *window.Window }

var actionKeys = map[systems.Action]window.Key{
	systems.MoveForward:  window.KeyW,
	systems.MoveBackward: window.KeyS,
	systems.MoveLeft:     window.KeyA,
	systems.MoveRight:    window.KeyD,
	systems.MoveUp:       window.KeyE,
	systems.MoveDown:     window.KeyQ,
	systems.Sprint:       window.KeyLeftShift,
}

func (w windowInput) Pressed(a systems.Action) bool {
	k, ok := actionKeys[a]
	return ok && w.win.IsKeyPressed(k)
}

func (w windowInput) Looking() bool {
	return w.win.IsMouseButtonPressed(window.MouseButtonRight)
}

func (w windowInput) Cursor() mgl32.Vec2 {
	x, y := w.win.CursorPos()
	return mgl32.Vec2{float32(x), float32(y)}
}
