package app

import (
	"fmt"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/ripple/internal/config"
	"github.com/kobzarvs/ripple/internal/logger"
	"github.com/kobzarvs/ripple/internal/ripple"
	"github.com/kobzarvs/ripple/internal/timeline"
)

// Options are the command line settings passed to the app.
type Options struct {
	ConfigPath string
	Debug      bool
	Widths     []float64
}

// App is the top-level runtime for ripple.
type App struct {
	opts      Options
	newScreen func() (tcell.Screen, error)
}

func New(opts Options) *App {
	return &App{opts: opts, newScreen: tcell.NewScreen}
}

// LoadConfig resolves the configuration from the options: an explicit file,
// else the user config dir, then the width override.
func (a *App) LoadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if a.opts.ConfigPath != "" {
		cfg, err = config.LoadFile(a.opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if len(a.opts.Widths) > 0 {
		cfg.SetWidths(a.opts.Widths)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// NewTimeline builds the engine and its terminal view from cfg.
func NewTimeline(cfg config.Config) (*timeline.Timeline, error) {
	opts := []ripple.Option{ripple.WithLogger(logger.Named("engine"))}
	if cfg.Timeline.SelectFirst {
		opts = append(opts, ripple.WithSelection(0))
	}
	eng, err := ripple.New(cfg.Engine(), cfg.ClipSpecs(), opts...)
	if err != nil {
		return nil, err
	}
	return timeline.New(cfg, eng), nil
}

func (a *App) Run() error {
	runtime.LockOSThread()
	if err := logger.Init(a.opts.Debug); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := a.LoadConfig()
	if err != nil {
		logger.Error("load config failed", "path", a.opts.ConfigPath, "err", err)
		return err
	}

	tl, err := NewTimeline(cfg)
	if err != nil {
		logger.Error("create timeline failed", "err", err)
		return err
	}

	s, err := a.newScreen()
	if err != nil {
		logger.Error("create screen failed", "err", err)
		return err
	}
	if err := s.Init(); err != nil {
		logger.Error("init screen failed", "err", err)
		return err
	}
	s.EnableMouse()
	s.EnableFocus()
	defer s.Fini()

	logger.Info("timeline started", "clips", tl.Engine().Len(), "extent", tl.Engine().Extent().Width)
	return loop(s, tl)
}

// loop delivers events to the timeline in order until it asks to quit.
func loop(s tcell.Screen, tl *timeline.Timeline) error {
	tl.Render(s)
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if tl.HandleKey(ev) {
				logger.Info("quit")
				return nil
			}
		case *tcell.EventMouse:
			tl.HandleMouse(ev)
		case *tcell.EventResize:
			tl.Interrupt()
			s.Sync()
		case *tcell.EventFocus:
			if !ev.Focused {
				tl.Interrupt()
			}
		}
		tl.Render(s)
	}
}
