// Package viewer runs the interactive desktop shelf selector: an SDL window,
// the OpenGL renderer and an on-demand frame loop.
package viewer

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/config"
	"github.com/Faultbox/shelfview/internal/engine/debug"
	"github.com/Faultbox/shelfview/internal/engine/input"
	"github.com/Faultbox/shelfview/internal/engine/renderer"
	"github.com/Faultbox/shelfview/internal/engine/window"
	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/logger"
	"github.com/Faultbox/shelfview/internal/navigation"
	"github.com/Faultbox/shelfview/internal/selector"
	"github.com/Faultbox/shelfview/internal/shelf"
)

const (
	// idleWait bounds how long the loop sleeps waiting for input.
	idleWait = 250 // ms
	// clickSlop is the pointer travel, in pixels, below which a press and
	// release count as a click rather than a drag.
	clickSlop = 4
	maxDelta  = 0.1 // seconds
)

// Viewer is the interactive selector window.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	sel      *selector.Selector
	shots    *debug.Snapshots

	pressed bool
	travel  int
	exposed bool
}

// New opens a window showing l.
func New(cfg *config.Config, l *layout.Layout) (*Viewer, error) {
	title := "Shelfview"
	if l.Name != "" {
		title = "Shelfview - " + l.Name
	}
	logger.Info("initializing viewer",
		zap.String("layout", l.Name),
		zap.Int("floors", len(l.Floors)),
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
	)

	opts := selector.Options{
		Floors:   l.Floors,
		Occupied: l.Occupied,
		OnSelect: func(loc shelf.Location) {
			logger.Info("shelf selected", zap.Stringer("location", loc))
		},
		OnHighlightFloor: func(floor int) {
			logger.Debug("floor highlighted", zap.Int("floor", floor))
		},
	}
	if err := cfg.SelectorOptions(&opts); err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:     cfg,
		sel:     selector.New(opts),
		input:   input.New(),
		shots:   debug.NewSnapshots(cfg.Viewer.Snapshots),
		exposed: true,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
		Samples:    cfg.Viewer.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:          dw,
		Height:         dh,
		FloorThickness: cfg.Scene.FloorThickness,
		Light:          cfg.Viewer.Light,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ww, wh := v.window.GetSize()
	v.sel.SetViewport(float32(ww), float32(wh))
	return v, nil
}

// Selector returns the selector driving the view.
func (v *Viewer) Selector() *selector.Selector {
	return v.sel
}

// Run processes input and draws until the window closes. Frames are only
// drawn while something changes; otherwise the loop blocks on input.
func (v *Viewer) Run() error {
	v.running = true
	last := time.Now()
	var frameBudget time.Duration
	if !v.cfg.Viewer.VSync && v.cfg.Viewer.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Viewer.FPSLimit)
	}

	logger.Info("starting viewer loop")
	for v.running {
		var quit bool
		if v.sel.Busy() || v.exposed {
			quit = v.input.Update()
		} else {
			quit = v.input.Wait(idleWait)
		}
		if quit {
			break
		}
		v.handleEvents()
		v.sel.SetHeldKeys(heldKeys(input.IsKeyHeld))

		now := time.Now()
		dt := float32(gomath.Min(now.Sub(last).Seconds(), maxDelta))
		last = now

		if v.sel.Frame(dt) || v.exposed {
			v.exposed = false
			v.renderer.Draw(v.sel)
			v.window.SwapBuffers()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, ev := range v.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			v.sel.SetViewport(float32(ev.Width), float32(ev.Height))
			v.renderer.Resize(v.window.DrawableSize())
			v.exposed = true
		case input.EventWindowExpose:
			v.exposed = true
		case input.EventKeyDown:
			v.handleKey(ev)
		case input.EventMouseDown:
			if ev.Button == sdl.BUTTON_LEFT {
				v.pressed, v.travel = true, 0
			}
		case input.EventMouseMove:
			if v.pressed && ev.Held {
				v.travel += abs(ev.DeltaX) + abs(ev.DeltaY)
				if v.travel >= clickSlop {
					v.sel.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
				}
			} else {
				v.sel.HandleHover(float32(ev.MouseX), float32(ev.MouseY))
			}
		case input.EventMouseUp:
			if ev.Button == sdl.BUTTON_LEFT && v.pressed {
				if v.travel < clickSlop {
					v.sel.HandleClick(float32(ev.MouseX), float32(ev.MouseY))
				}
				v.pressed = false
			}
		case input.EventMouseWheel:
			v.sel.HandleWheel(ev.Wheel)
		case input.EventMouseLeave:
			v.sel.ClearHover()
		}
	}
}

func (v *Viewer) handleKey(ev input.Event) {
	if ev.Key == sdl.SCANCODE_ESCAPE {
		v.running = false
		return
	}
	if ke := keyEvent(ev); ke.Key != navigation.KeyNone {
		v.sel.HandleKey(ke)
		return
	}
	if ev.Repeat {
		return
	}
	if floor, ok := floorKey(ev.Key); ok {
		v.sel.SetHighlightedFloor(floor)
		v.sel.FocusFloor(floor)
		return
	}
	if t, ok := toggleKey(ev.Key, v.sel.Animate()); ok {
		v.sel.SetAnimate(t)
		logger.Info("animation toggles",
			zap.Bool("floor", t.Floor), zap.Bool("group", t.Group), zap.Bool("shelf", t.Shelf))
		return
	}
	if ev.Key == sdl.SCANCODE_F12 {
		v.snapshot()
	}
}

func (v *Viewer) snapshot() {
	v.renderer.Draw(v.sel)
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.Save(pixels, w, h)
	if err != nil {
		logger.Warn("snapshot failed", zap.Error(err))
		return
	}
	logger.Info("snapshot saved", zap.String("file", name))
	v.exposed = true
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
