package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
	"tinygo.org/x/bluetooth"

	"github.com/runwear/run-watch/watch-app/internal/ble"
	"github.com/runwear/run-watch/watch-app/internal/config"
	"github.com/runwear/run-watch/watch-app/internal/watch"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "run-watch: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "run-watch: failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	logger := log.New(&lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	}, "", log.LstdFlags|log.Lmicroseconds)
	logger.Printf("run-watch starting (screen %dx%d, sensors=%v)", cfg.ScreenWidth, cfg.ScreenHeight, cfg.Sensors)

	prefs, err := watch.NewFilePrefStore(logger, cfg.PrefsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run-watch: failed to open preferences: %v\n", err)
		os.Exit(1)
	}

	model := watch.NewUIModel(logger)
	model.LoadPreferences(prefs)

	view := watch.NewCursesUIView(logger, model, cfg.ScreenWidth, cfg.ScreenHeight, cfg.Color)
	controller := watch.NewUIController(logger, model, prefs, view)
	view.SetController(controller)
	controller.SetBounds(view.Bounds())
	controller.Start()
	defer controller.Stop()

	if cfg.Sensors {
		manager := ble.NewBLEManager(bluetooth.DefaultAdapter, logger)
		handler := watch.NewSensorHandler(logger, manager, controller)
		if err := handler.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "run-watch: failed to start sensors: %v\n", err)
			os.Exit(1)
		}
		defer handler.Stop()
	} else {
		player := watch.NewSessionPlayer(logger, watch.DefaultSession(), controller.HandleMessage)
		player.Start()
		defer player.Stop()
	}

	if err := view.Run(); err != nil {
		logger.Printf("run-watch: UI exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "run-watch: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("run-watch exiting")
}
