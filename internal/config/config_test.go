package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/shelfview/internal/selector"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Viewer defaults
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Scene and camera defaults
	if cfg.Scene.FloorGap != 0.5 {
		t.Errorf("expected floor gap 0.5, got %f", cfg.Scene.FloorGap)
	}
	if cfg.Scene.ShelfFill != 0.9 {
		t.Errorf("expected shelf fill 0.9, got %f", cfg.Scene.ShelfFill)
	}
	if cfg.Camera.Damping != 0.05 {
		t.Errorf("expected damping 0.05, got %f", cfg.Camera.Damping)
	}
	if cfg.Fade.Group.Far != 3 || cfg.Fade.Group.Near != 1.5 {
		t.Errorf("expected group fade 3 -> 1.5, got %v", cfg.Fade.Group)
	}
	if cfg.Fade.Shelf.Far != 5.75 || cfg.Fade.Shelf.Near != 5.5 {
		t.Errorf("expected shelf fade 5.75 -> 5.5, got %v", cfg.Fade.Shelf)
	}
	if cfg.Animation != selector.AllAnimations() {
		t.Errorf("expected all animations enabled, got %+v", cfg.Animation)
	}
	if cfg.Selection.ExternalGuard != time.Second {
		t.Errorf("expected external guard 1s, got %v", cfg.Selection.ExternalGuard)
	}

	// Service defaults
	if cfg.Server.Addr != "127.0.0.1:8420" {
		t.Errorf("expected addr 127.0.0.1:8420, got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Path != "shelfview.db" {
		t.Errorf("expected db shelfview.db, got %s", cfg.Storage.Path)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
viewer:
  width: 1920
  height: 1080
  fullscreen: true
  layout: "warehouse.yaml"

scene:
  floor_gap: 1.0

camera:
  damping: 0.1
  offset:
    x: 2
    y: -1

fade:
  shelf:
    min_opacity: 0.3

animation:
  group: false

selection:
  can_select_occupied: true
  external_guard: 2s

colors:
  shelf_selected: "#00ff00"

server:
  addr: ":9000"
  session_ttl: 5m

storage:
  path: "/var/lib/shelfview.db"

logging:
  level: "debug"
  log_file: "shelfview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.Width != 1920 || cfg.Viewer.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if !cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Viewer.Layout != "warehouse.yaml" {
		t.Errorf("expected layout warehouse.yaml, got %s", cfg.Viewer.Layout)
	}
	if cfg.Scene.FloorGap != 1.0 {
		t.Errorf("expected floor gap 1.0, got %f", cfg.Scene.FloorGap)
	}
	if cfg.Scene.ShelfFill != 0.9 {
		t.Errorf("expected untouched shelf fill 0.9, got %f", cfg.Scene.ShelfFill)
	}
	if cfg.Camera.Damping != 0.1 {
		t.Errorf("expected damping 0.1, got %f", cfg.Camera.Damping)
	}
	if cfg.Camera.Offset.X != 2 || cfg.Camera.Offset.Y != -1 {
		t.Errorf("expected offset (2,-1), got %+v", cfg.Camera.Offset)
	}
	if cfg.Fade.Shelf.MinOpacity != 0.3 || cfg.Fade.Shelf.Far != 5.75 {
		t.Errorf("expected merged shelf fade, got %+v", cfg.Fade.Shelf)
	}
	if cfg.Animation.Group || !cfg.Animation.Floor || !cfg.Animation.Shelf {
		t.Errorf("expected only group animation disabled, got %+v", cfg.Animation)
	}
	if !cfg.Selection.CanSelectOccupied {
		t.Error("expected can_select_occupied to be true")
	}
	if cfg.Selection.ExternalGuard != 2*time.Second {
		t.Errorf("expected guard 2s, got %v", cfg.Selection.ExternalGuard)
	}
	if cfg.Colors.ShelfSelected != "#00ff00" {
		t.Errorf("expected shelf_selected #00ff00, got %s", cfg.Colors.ShelfSelected)
	}
	if cfg.Colors.Shelf != selector.DefaultPaletteHex().Shelf {
		t.Errorf("expected default shelf color, got %s", cfg.Colors.Shelf)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.SessionTTL != 5*time.Minute {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Storage.Path != "/var/lib/shelfview.db" {
		t.Errorf("expected db path, got %s", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "shelfview.log" {
		t.Errorf("expected log file 'shelfview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewer:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/shelfview.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "layout flag",
			setup: func() { *flagLayout = "floors.yaml" },
			verify: func(cfg *Config) {
				if cfg.Viewer.Layout != "floors.yaml" {
					t.Errorf("expected layout floors.yaml, got %s", cfg.Viewer.Layout)
				}
			},
			teardown: func() { *flagLayout = "" },
		},
		{
			name: "addr and db flags",
			setup: func() {
				*flagAddr = ":7000"
				*flagDB = "other.db"
			},
			verify: func(cfg *Config) {
				if cfg.Server.Addr != ":7000" {
					t.Errorf("expected addr :7000, got %s", cfg.Server.Addr)
				}
				if cfg.Storage.Path != "other.db" {
					t.Errorf("expected db other.db, got %s", cfg.Storage.Path)
				}
			},
			teardown: func() {
				*flagAddr = ""
				*flagDB = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Width != 2560 || cfg.Viewer.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
viewer:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Viewer.Layout = "saved.yaml"
	cfg.Camera.Offset.X = 3
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Viewer.Layout != "saved.yaml" || loaded.Camera.Offset.X != 3 {
		t.Errorf("round trip lost values: %+v %+v", loaded.Viewer, loaded.Camera.Offset)
	}
}

func TestSelectorOptions(t *testing.T) {
	cfg := Default()
	cfg.Camera.Damping = 0.2
	cfg.Camera.MoveSpeed = 9
	cfg.Colors.Shelf = "#010203"
	cfg.Selection.CanSelectOccupied = true

	var opts selector.Options
	if err := cfg.SelectorOptions(&opts); err != nil {
		t.Fatalf("SelectorOptions() error = %v", err)
	}
	if opts.Animator == nil || opts.Animator.Damping != 0.2 {
		t.Errorf("animator damping not applied: %+v", opts.Animator)
	}
	if opts.FreeLook == nil || opts.FreeLook.Speed != 9 {
		t.Errorf("move speed not applied: %+v", opts.FreeLook)
	}
	if opts.Palette == nil || opts.Palette.Shelf.Hex() != "#010203" {
		t.Error("palette not applied")
	}
	if !opts.CanSelectOccupied || opts.Guard != time.Second {
		t.Errorf("selection settings not applied: %v %v", opts.CanSelectOccupied, opts.Guard)
	}

	cfg.Colors.Floor = "nope"
	if err := cfg.SelectorOptions(&opts); err == nil {
		t.Error("SelectorOptions() accepted an invalid color")
	}
}
