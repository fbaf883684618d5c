package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/kobzarvs/ripple/internal/ripple"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("RIPPLE_CONFIG_HOME", "/tmp/ripple-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/ripple-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/ripple-config")
	}

	t.Setenv("RIPPLE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/ripple" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/ripple")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("RIPPLE_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(cfg.Clips) != 3 || cfg.Clips[0].Width != 200 {
		t.Fatalf("clips = %+v, want three default clips", cfg.Clips)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RIPPLE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "dusk.toml"), `
foreground = "#111111"
background = "#222222"
clip-background = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[timeline]
max-clip-width = 400
leading-padding = 0
cancel-policy = "revert"
select-first = false

[[clip]]
title = "Intro"
width = 120

[[clip]]
width = 90

[theme]
theme = "dusk"
selected-border = "#123456"

[keymap]
x = "quit"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Timeline.MaxClipWidth != 400 {
		t.Fatalf("MaxClipWidth = %v, want 400", cfg.Timeline.MaxClipWidth)
	}
	if cfg.Timeline.MinClipWidth != 60 {
		t.Fatalf("MinClipWidth = %v, want default 60", cfg.Timeline.MinClipWidth)
	}
	if cfg.Timeline.LeadingPadding != 0 {
		t.Fatalf("LeadingPadding = %v, want 0", cfg.Timeline.LeadingPadding)
	}
	if cfg.Timeline.SelectFirst {
		t.Fatalf("SelectFirst = true, want false")
	}
	if cfg.Engine().CancelPolicy != ripple.CancelRevert {
		t.Fatalf("CancelPolicy = %v, want revert", cfg.Engine().CancelPolicy)
	}
	specs := cfg.ClipSpecs()
	if len(specs) != 2 || specs[0].Title != "Intro" || specs[1].Title != "C2" {
		t.Fatalf("clip specs = %+v", specs)
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.ClipBackground != "#333333" {
		t.Fatalf("ClipBackground = %q, want %q", cfg.Theme.ClipBackground, "#333333")
	}
	if cfg.Theme.SelectedBorder != "#123456" {
		t.Fatalf("SelectedBorder = %q, want %q", cfg.Theme.SelectedBorder, "#123456")
	}
	if cfg.Theme.Handle != "#3387FF" {
		t.Fatalf("Handle = %q, want default", cfg.Theme.Handle)
	}
	if cfg.Keymap["x"] != "quit" {
		t.Fatalf("keymap x = %q, want %q", cfg.Keymap["x"], "quit")
	}
	if cfg.Keymap["h"] != "select_prev" {
		t.Fatalf("keymap h = %q, want %q", cfg.Keymap["h"], "select_prev")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RIPPLE_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
thumbnail-palette = ["#000000", "#ffffff"]
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if len(theme.ThumbnailPalette) != 2 {
		t.Fatalf("palette = %v, want 2 colours", theme.ThumbnailPalette)
	}
}

func TestLoadFileSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "[timeline\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("LoadFile accepted malformed TOML")
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Timeline.MinClipWidth = 100
	cfg.Timeline.MaxClipWidth = 50
	cfg.Timeline.ClipHeight = 500
	cfg.Timeline.CancelPolicy = "undo"
	cfg.Clips = append(cfg.Clips, Clip{Title: "bad", Width: -1})

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("Validate accepted invalid config")
	}
	errs := multierr.Errors(err)
	if len(errs) != 4 {
		t.Fatalf("errors = %d (%v), want 4", len(errs), err)
	}
	if !strings.Contains(err.Error(), "cancel-policy") {
		t.Fatalf("error %q does not mention cancel-policy", err)
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ripple.toml")
	writeFile(t, path, `
[timeline]
min-clip-width = nan

[[clip]]
width = nan

[[clip]]
width = inf
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatalf("Validate accepted NaN and Inf values")
	}
	if errs := multierr.Errors(err); len(errs) != 3 {
		t.Fatalf("errors = %d (%v), want 3", len(errs), err)
	}
	for _, want := range []string{"min-clip-width", "clip 0", "clip 1"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}

	cfg = Default()
	cfg.Timeline.ScrollStep = math.Inf(1)
	cfg.Timeline.HitSlop = math.NaN()
	cfg.Theme.ThumbnailOpacity = math.NaN()
	if errs := multierr.Errors(cfg.Validate()); len(errs) != 3 {
		t.Fatalf("errors = %d (%v), want 3", len(errs), errs)
	}
}

func TestSetWidths(t *testing.T) {
	cfg := Default()
	cfg.SetWidths([]float64{100, 150})
	specs := cfg.ClipSpecs()
	if len(specs) != 2 || specs[1].Width != 150 || specs[1].Title != "C2" {
		t.Fatalf("specs = %+v", specs)
	}
}
