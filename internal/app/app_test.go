package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/ripple/internal/logger"
)

func TestLoadConfigWidthOverride(t *testing.T) {
	t.Setenv("RIPPLE_CONFIG_HOME", t.TempDir())
	cfg, err := New(Options{Widths: []float64{100, 120}}).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if len(cfg.Clips) != 2 || cfg.Clips[1].Width != 120 {
		t.Fatalf("clips = %+v", cfg.Clips)
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ripple.toml")
	if err := os.WriteFile(path, []byte("[timeline]\nmin-clip-width = -5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(Options{ConfigPath: path}).LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "min-clip-width") {
		t.Fatalf("LoadConfig error = %v, want min-clip-width problem", err)
	}
}

func TestLoopQuitsOnKey(t *testing.T) {
	t.Setenv("RIPPLE_CONFIG_HOME", t.TempDir())
	cfg, err := New(Options{}).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	tl, err := NewTimeline(cfg)
	if err != nil {
		t.Fatalf("NewTimeline error: %v", err)
	}

	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer s.Fini()
	s.SetSize(80, 10)

	s.InjectKey(tcell.KeyRune, '>', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := loop(s, tl); err != nil {
		t.Fatalf("loop error: %v", err)
	}
	if w := tl.Engine().Clips()[0].Width; w != 210 {
		t.Fatalf("width = %v, want 210 after nudge", w)
	}
}

func TestLoadConfigRejectsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ripple.toml")
	if err := os.WriteFile(path, []byte("[timeline]\nmin-clip-width = nan\n\n[[clip]]\nwidth = nan\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := New(Options{ConfigPath: path}).LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "min-clip-width") || !strings.Contains(err.Error(), "clip 0") {
		t.Fatalf("LoadConfig error = %v, want min-clip-width and clip 0 problems", err)
	}
}

func TestRunLogsStartupFailures(t *testing.T) {
	t.Cleanup(func() { logger.L, logger.S = nil, nil })

	tests := []struct {
		name    string
		config  string
		screen  error
		wantLog string
	}{
		{name: "config", config: "[timeline]\nmin-clip-width = nan\n", wantLog: "load config failed"},
		{name: "screen", screen: errors.New("no terminal"), wantLog: "no terminal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("RIPPLE_CONFIG_HOME", dir)
			logPath := filepath.Join(dir, "ripple.log")
			t.Setenv("RIPPLE_LOG_FILE", logPath)
			if tt.config != "" {
				if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.config), 0o644); err != nil {
					t.Fatalf("write: %v", err)
				}
			}

			a := New(Options{})
			a.newScreen = func() (tcell.Screen, error) {
				if tt.screen != nil {
					return nil, tt.screen
				}
				return tcell.NewSimulationScreen("UTF-8"), nil
			}
			if err := a.Run(); err == nil {
				t.Fatalf("Run succeeded, want error")
			}

			data, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			if !strings.Contains(string(data), "ERROR") || !strings.Contains(string(data), tt.wantLog) {
				t.Fatalf("log = %q, want ERROR entry with %q", data, tt.wantLog)
			}
		})
	}
}
