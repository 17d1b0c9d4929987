// Command particle-field opens a window with the JARVIS particle backdrop: a
// pointer-reactive particle field over a twinkling constellation overlay.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/iburimskiy/particle-field/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	pickConfig := flag.Bool("pick-config", false, "Choose the config file in a dialog")
	dumpConfig := flag.Bool("dump-config", false, "Print the effective config as TOML and exit")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	headless := flag.Int("headless", 0, "Simulate N frames without a window and print stats")
	soundOn := flag.Bool("sound", false, "Play UI sound cues")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	flag.Parse()

	showDialog := *headless == 0 && !*dumpConfig
	fatal := func(logger *logging.Logger, err error) {
		logger.Error("%v", err)
		if showDialog {
			_ = zenity.Error(err.Error(), zenity.Title("particle-field"), zenity.ErrorIcon)
		}
		os.Exit(1)
	}
	boot := logging.New(logging.LevelInfo)

	if *pickConfig {
		path, err := zenity.SelectFile(
			zenity.Title("Open particle config"),
			zenity.FileFilters{{
				Name:     "TOML",
				Patterns: []string{"*.toml"},
			}},
		)
		switch {
		case errors.Is(err, zenity.ErrCanceled):
		case err != nil:
			fatal(boot, fmt.Errorf("config dialog: %w", err))
		default:
			*configPath = path
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(boot, err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *soundOn {
		cfg.Sound.Enabled = true
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	if *dumpConfig {
		if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			fatal(logger, err)
		}
		return
	}

	ctrl, err := game.New(cfg, logger)
	if err != nil {
		fatal(logger, err)
	}

	if *headless > 0 {
		stats := ctrl.RunHeadless(*headless)
		logger.Info("%d frames: %d connections, %d pointer links (%.1f / %.1f per frame)",
			*headless, stats.Connections, stats.PointerLinks,
			float64(stats.Connections)/float64(*headless), float64(stats.PointerLinks)/float64(*headless))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := ctrl.Run(ctx); err != nil {
		fatal(logger, err)
	}
}
