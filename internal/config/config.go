// Package config handles shelfview configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/shelfview/internal/engine/camera"
	"github.com/Faultbox/shelfview/internal/engine/lighting"
	"github.com/Faultbox/shelfview/internal/scene"
	"github.com/Faultbox/shelfview/internal/selector"
)

// Config holds all shelfview settings.
type Config struct {
	Viewer    ViewerConfig        `yaml:"viewer"`
	Scene     scene.Config        `yaml:"scene"`
	Camera    CameraConfig        `yaml:"camera"`
	Fade      scene.FadeConfig    `yaml:"fade"`
	Animation selector.Toggles    `yaml:"animation"`
	Selection SelectionConfig     `yaml:"selection"`
	Colors    selector.PaletteHex `yaml:"colors"`
	Server    ServerConfig        `yaml:"server"`
	Storage   StorageConfig       `yaml:"storage"`
	Logging   LoggingConfig       `yaml:"logging"`
}

// ViewerConfig holds window and display settings of the interactive viewer.
type ViewerConfig struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Fullscreen bool         `yaml:"fullscreen"`
	VSync      bool         `yaml:"vsync"`
	FPSLimit   int          `yaml:"fps_limit"`
	Samples    int          `yaml:"samples"`      // MSAA samples
	Layout     string       `yaml:"layout"`       // layout file opened at startup
	Snapshots  string       `yaml:"snapshot_dir"` // F12 screenshots
	Light      lighting.Sun `yaml:"light"`
}

// CameraConfig holds camera movement and framing settings.
type CameraConfig struct {
	FOV             float32            `yaml:"fov"`
	Damping         float32            `yaml:"damping"`
	ArriveEpsilon   float32            `yaml:"arrive_epsilon"`
	MoveSpeed       float32            `yaml:"move_speed"`
	DragSensitivity float32            `yaml:"drag_sensitivity"`
	ZoomSensitivity float32            `yaml:"zoom_sensitivity"`
	Offset          camera.Offset      `yaml:"offset"`
	Focus           camera.FocusConfig `yaml:"focus"`
}

// SelectionConfig holds selection behaviour.
type SelectionConfig struct {
	CanSelectOccupied bool          `yaml:"can_select_occupied"`
	ExternalGuard     time.Duration `yaml:"external_guard"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	MaxSessions int           `yaml:"max_sessions"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Path string `yaml:"path"` // SQLite database file
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			Samples:    4,
			Light:      lighting.DefaultSun(),
		},
		Scene: scene.DefaultConfig(),
		Camera: CameraConfig{
			FOV:             50,
			Damping:         0.05,
			ArriveEpsilon:   0.01,
			MoveSpeed:       5,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			Focus:           camera.DefaultFocusConfig(),
		},
		Fade:      scene.DefaultFadeConfig(),
		Animation: selector.AllAnimations(),
		Selection: SelectionConfig{
			ExternalGuard: selector.DefaultGuard,
		},
		Colors: selector.DefaultPaletteHex(),
		Server: ServerConfig{
			Addr:        "127.0.0.1:8420",
			SessionTTL:  30 * time.Minute,
			MaxSessions: 256,
		},
		Storage: StorageConfig{
			Path: "shelfview.db",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SelectorOptions copies the view settings into opts. Floors, callbacks and
// the occupancy list are left to the caller.
func (c *Config) SelectorOptions(opts *selector.Options) error {
	palette, err := selector.ParsePalette(c.Colors)
	if err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	animate := c.Animation

	opts.Scene = c.Scene
	opts.Fade = c.Fade
	opts.Focus = c.Camera.Focus
	opts.CameraOffset = c.Camera.Offset
	opts.Animate = &animate
	opts.Palette = &palette
	opts.Guard = c.Selection.ExternalGuard
	opts.CanSelectOccupied = c.Selection.CanSelectOccupied

	if opts.Rig == nil {
		opts.Rig = camera.NewRig()
	}
	if c.Camera.FOV > 0 {
		opts.Rig.FOV = c.Camera.FOV
	}
	if opts.Animator == nil {
		opts.Animator = camera.NewAnimator()
	}
	if c.Camera.Damping > 0 {
		opts.Animator.Damping = c.Camera.Damping
	}
	if c.Camera.ArriveEpsilon > 0 {
		opts.Animator.Epsilon = c.Camera.ArriveEpsilon
	}
	if opts.Orbit == nil {
		opts.Orbit = camera.NewOrbitControls()
	}
	if c.Camera.DragSensitivity > 0 {
		opts.Orbit.DragSensitivity = c.Camera.DragSensitivity
	}
	if c.Camera.ZoomSensitivity > 0 {
		opts.Orbit.ZoomSensitivity = c.Camera.ZoomSensitivity
	}
	if opts.FreeLook == nil {
		opts.FreeLook = camera.NewFreeLook()
	}
	if c.Camera.MoveSpeed > 0 {
		opts.FreeLook.Speed = c.Camera.MoveSpeed
	}
	return nil
}
