package main

import (
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"mini-64/internal/config"
	"mini-64/internal/course"
	"mini-64/internal/creature"
	"mini-64/internal/game"
	"mini-64/internal/input"
	"mini-64/internal/storage"
	"mini-64/internal/world"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mini-64",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagWidth > 0 {
		cfg.Window.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Window.Height = flagHeight
	}
	if flagFPS >= 0 {
		cfg.Window.FPSLimit = flagFPS
	}

	courses, start, err := loadCourses()
	if err != nil {
		return err
	}
	w, err := world.New(courses, start)
	if err != nil {
		return err
	}

	brain, err := creature.LoadBrain(cfg.Creature.BrainPath)
	if err != nil {
		return err
	}

	// The game runs without persistence when the database cannot be opened.
	var saver game.RecordSaver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open records database", "err", err)
	} else {
		saver = store
		defer store.Close()
	}

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		return err
	}

	im := input.NewManager()
	im.SetKeyCallback(window)

	session, err := game.NewSession(window, w, brain, cfg, logger, saver)
	if err != nil {
		return err
	}

	app := game.NewApp(window, im, session, cfg.Window.FPSLimit, logger)

	if flagConfig != "" {
		watcher, err := config.Watch(flagConfig,
			func(next config.Config) { app.ApplyConfig(next) },
			func(err error) { logger.Warn("config reload failed", "err", err) },
		)
		if err != nil {
			logger.Warn("config watch unavailable", "err", err)
		} else {
			defer watcher.Close()
		}
	}

	logger.Info("starting", "courses", len(courses), "start", start)
	app.Run()
	return nil
}

func loadCourses() ([]*course.Course, string, error) {
	if flagCourses != "" {
		return course.LoadFile(flagCourses)
	}
	return course.LoadBuiltin()
}
