// Package main is the entry point for the interactive shelf selector.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/config"
	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/logger"
	"github.com/Faultbox/shelfview/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Shelfview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Viewer.Layout == "" {
		fmt.Fprintln(os.Stderr, "Usage: shelfviewer -layout <layout.yaml>")
		os.Exit(1)
	}
	l, err := layout.LoadFile(cfg.Viewer.Layout)
	if err != nil {
		logger.Fatal("failed to load layout", zap.Error(err))
	}
	if err := layout.Validate(l.Floors); err != nil {
		logger.Warn("layout has issues", zap.Error(err))
	}

	v, err := viewer.New(cfg, l)
	if err != nil {
		logger.Fatal("failed to create viewer", zap.Error(err))
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Fatal("viewer error", zap.Error(err))
	}

	logger.Info("viewer closed normally")
}
