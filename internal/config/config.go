package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/kobzarvs/ripple/internal/ripple"
)

type TimelineOptions struct {
	MinClipWidth   float64 `toml:"min-clip-width"`
	MaxClipWidth   float64 `toml:"max-clip-width"`
	LeadingPadding float64 `toml:"leading-padding"`
	RowHeight      float64 `toml:"row-height"`
	ClipHeight     float64 `toml:"clip-height"`
	HandleWidth    float64 `toml:"handle-width"`
	HitSlop        float64 `toml:"hit-slop"`
	UnitsPerCell   float64 `toml:"units-per-cell"`
	ScrollStep     float64 `toml:"scroll-step"`
	NudgeStep      float64 `toml:"nudge-step"`
	CancelPolicy   string  `toml:"cancel-policy"`
	SelectFirst    bool    `toml:"select-first"`
}

type Clip struct {
	Title string  `toml:"title"`
	Width float64 `toml:"width"`
}

type Theme struct {
	Theme                string   `toml:"theme"`
	Foreground           string   `toml:"foreground"`
	Background           string   `toml:"background"`
	TrackBackground      string   `toml:"track-background"`
	RulerForeground      string   `toml:"ruler-foreground"`
	ClipBackground       string   `toml:"clip-background"`
	ClipBorder           string   `toml:"clip-border"`
	SelectedBorder       string   `toml:"selected-border"`
	Handle               string   `toml:"handle"`
	HandleIndicator      string   `toml:"handle-indicator"`
	LabelForeground      string   `toml:"label-foreground"`
	LabelBackground      string   `toml:"label-background"`
	StatuslineForeground string   `toml:"statusline-foreground"`
	StatuslineBackground string   `toml:"statusline-background"`
	ThumbnailPalette     []string `toml:"thumbnail-palette"`
	ThumbnailOpacity     float64  `toml:"thumbnail-opacity"`
}

type Config struct {
	Timeline TimelineOptions   `toml:"timeline"`
	Clips    []Clip            `toml:"clip"`
	Theme    Theme             `toml:"theme"`
	Keymap   map[string]string `toml:"keymap"`
}

func Default() Config {
	return Config{
		Timeline: TimelineOptions{
			MinClipWidth:   60,
			MaxClipWidth:   320,
			LeadingPadding: 10,
			RowHeight:      80,
			ClipHeight:     48,
			HandleWidth:    10,
			HitSlop:        5,
			UnitsPerCell:   10,
			ScrollStep:     30,
			NudgeStep:      10,
			CancelPolicy:   "commit",
			SelectFirst:    true,
		},
		Clips: []Clip{
			{Title: "C1", Width: 200},
			{Title: "C2", Width: 200},
			{Title: "C3", Width: 200},
		},
		Theme: Theme{
			Foreground:           "#2B2D34",
			Background:           "#F4F6FB",
			TrackBackground:      "#F7F8FA",
			RulerForeground:      "#A0A6B4",
			ClipBackground:       "#FFFFFF",
			ClipBorder:           "#E0E3EA",
			Handle:               "#3387FF",
			HandleIndicator:      "#FFFFFF",
			LabelForeground:      "#2B2D34",
			LabelBackground:      "#FFFFFF",
			StatuslineForeground: "#2B2D34",
			StatuslineBackground: "#E0E3EA",
			ThumbnailPalette: []string{
				"#007AFF",
				"#FF9500",
				"#34C759",
				"#FF3B30",
				"#AF52DE",
				"#FFCC00",
			},
			ThumbnailOpacity: 0.3,
		},
		Keymap: map[string]string{
			"left":   "select_prev",
			"h":      "select_prev",
			"right":  "select_next",
			"l":      "select_next",
			",":      "left_edge_left",
			".":      "left_edge_right",
			"<":      "right_edge_left",
			">":      "right_edge_right",
			"enter":  "reveal",
			"esc":    "cancel",
			"pgup":   "scroll_left",
			"pgdn":   "scroll_right",
			"H":      "scroll_left",
			"L":      "scroll_right",
			"home":   "scroll_start",
			"end":    "scroll_end",
			"q":      "quit",
			"ctrl+c": "quit",
		},
	}
}

// Load reads config.toml from ConfigDir over the defaults. A missing file is
// not an error.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the given file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	mergeTimeline(&cfg.Timeline, userCfg.Timeline, md)
	if len(userCfg.Clips) > 0 {
		cfg.Clips = userCfg.Clips
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}

	return cfg, nil
}

func mergeTimeline(dst *TimelineOptions, src TimelineOptions, md toml.MetaData) {
	defined := func(key string) bool { return md.IsDefined("timeline", key) }
	if defined("min-clip-width") {
		dst.MinClipWidth = src.MinClipWidth
	}
	if defined("max-clip-width") {
		dst.MaxClipWidth = src.MaxClipWidth
	}
	if defined("leading-padding") {
		dst.LeadingPadding = src.LeadingPadding
	}
	if defined("row-height") {
		dst.RowHeight = src.RowHeight
	}
	if defined("clip-height") {
		dst.ClipHeight = src.ClipHeight
	}
	if defined("handle-width") {
		dst.HandleWidth = src.HandleWidth
	}
	if defined("hit-slop") {
		dst.HitSlop = src.HitSlop
	}
	if defined("units-per-cell") {
		dst.UnitsPerCell = src.UnitsPerCell
	}
	if defined("scroll-step") {
		dst.ScrollStep = src.ScrollStep
	}
	if defined("nudge-step") {
		dst.NudgeStep = src.NudgeStep
	}
	if defined("cancel-policy") {
		dst.CancelPolicy = src.CancelPolicy
	}
	if defined("select-first") {
		dst.SelectFirst = src.SelectFirst
	}
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.TrackBackground != "" {
		dst.TrackBackground = src.TrackBackground
	}
	if src.RulerForeground != "" {
		dst.RulerForeground = src.RulerForeground
	}
	if src.ClipBackground != "" {
		dst.ClipBackground = src.ClipBackground
	}
	if src.ClipBorder != "" {
		dst.ClipBorder = src.ClipBorder
	}
	if src.SelectedBorder != "" {
		dst.SelectedBorder = src.SelectedBorder
	}
	if src.Handle != "" {
		dst.Handle = src.Handle
	}
	if src.HandleIndicator != "" {
		dst.HandleIndicator = src.HandleIndicator
	}
	if src.LabelForeground != "" {
		dst.LabelForeground = src.LabelForeground
	}
	if src.LabelBackground != "" {
		dst.LabelBackground = src.LabelBackground
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if len(src.ThumbnailPalette) > 0 {
		dst.ThumbnailPalette = src.ThumbnailPalette
	}
	if src.ThumbnailOpacity > 0 {
		dst.ThumbnailOpacity = src.ThumbnailOpacity
	}
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var err error
	t := c.Timeline
	for _, f := range []struct {
		key string
		v   float64
	}{
		{"min-clip-width", t.MinClipWidth},
		{"max-clip-width", t.MaxClipWidth},
		{"leading-padding", t.LeadingPadding},
		{"row-height", t.RowHeight},
		{"clip-height", t.ClipHeight},
		{"handle-width", t.HandleWidth},
		{"hit-slop", t.HitSlop},
		{"units-per-cell", t.UnitsPerCell},
		{"scroll-step", t.ScrollStep},
		{"nudge-step", t.NudgeStep},
	} {
		if !finite(f.v) {
			err = multierr.Append(err, fmt.Errorf("timeline.%s must be a finite number, got %v", f.key, f.v))
		}
	}
	if t.MinClipWidth <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeline.min-clip-width must be positive, got %v", t.MinClipWidth))
	}
	if t.MaxClipWidth < t.MinClipWidth {
		err = multierr.Append(err, fmt.Errorf("timeline.max-clip-width %v is below min-clip-width %v", t.MaxClipWidth, t.MinClipWidth))
	}
	if t.LeadingPadding < 0 {
		err = multierr.Append(err, fmt.Errorf("timeline.leading-padding must not be negative, got %v", t.LeadingPadding))
	}
	if t.RowHeight <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeline.row-height must be positive, got %v", t.RowHeight))
	}
	if t.ClipHeight <= 0 || t.ClipHeight > t.RowHeight {
		err = multierr.Append(err, fmt.Errorf("timeline.clip-height %v must be in (0, row-height]", t.ClipHeight))
	}
	if t.HandleWidth < 0 || 2*t.HandleWidth > t.MinClipWidth {
		err = multierr.Append(err, fmt.Errorf("timeline.handle-width %v must fit twice in min-clip-width", t.HandleWidth))
	}
	if t.HitSlop < 0 {
		err = multierr.Append(err, fmt.Errorf("timeline.hit-slop must not be negative, got %v", t.HitSlop))
	}
	if t.UnitsPerCell <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeline.units-per-cell must be positive, got %v", t.UnitsPerCell))
	}
	if t.ScrollStep <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeline.scroll-step must be positive, got %v", t.ScrollStep))
	}
	if t.NudgeStep <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeline.nudge-step must be positive, got %v", t.NudgeStep))
	}
	if _, perr := ripple.ParseCancelPolicy(t.CancelPolicy); perr != nil {
		err = multierr.Append(err, fmt.Errorf("timeline.cancel-policy: %w", perr))
	}
	if len(c.Clips) == 0 {
		err = multierr.Append(err, errors.New("at least one [[clip]] is required"))
	}
	for i, clip := range c.Clips {
		if !finite(clip.Width) || clip.Width <= 0 {
			err = multierr.Append(err, fmt.Errorf("clip %d (%q): width must be a positive number, got %v", i, clip.Title, clip.Width))
		}
	}
	if o := c.Theme.ThumbnailOpacity; math.IsNaN(o) || o < 0 || o > 1 {
		err = multierr.Append(err, fmt.Errorf("theme.thumbnail-opacity %v must be in [0, 1]", o))
	}
	return err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Engine converts the timeline section into engine constants.
func (c Config) Engine() ripple.Config {
	policy, _ := ripple.ParseCancelPolicy(c.Timeline.CancelPolicy)
	return ripple.Config{
		MinClipWidth:   c.Timeline.MinClipWidth,
		MaxClipWidth:   c.Timeline.MaxClipWidth,
		LeadingPadding: c.Timeline.LeadingPadding,
		RowHeight:      c.Timeline.RowHeight,
		ClipHeight:     c.Timeline.ClipHeight,
		HandleWidth:    c.Timeline.HandleWidth,
		HitSlop:        c.Timeline.HitSlop,
		CancelPolicy:   policy,
	}
}

// ClipSpecs returns the initial sequence. Untitled clips are named C1, C2...
func (c Config) ClipSpecs() []ripple.ClipSpec {
	specs := make([]ripple.ClipSpec, len(c.Clips))
	for i, clip := range c.Clips {
		title := strings.TrimSpace(clip.Title)
		if title == "" {
			title = fmt.Sprintf("C%d", i+1)
		}
		specs[i] = ripple.ClipSpec{Title: title, Width: clip.Width}
	}
	return specs
}

// SetWidths replaces the clip list with untitled clips of the given widths.
func (c *Config) SetWidths(widths []float64) {
	c.Clips = make([]Clip, len(widths))
	for i, w := range widths {
		c.Clips[i] = Clip{Width: w}
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	md, err := toml.Decode(string(data), &wrap)
	if err != nil {
		return Theme{}, err
	}
	if md.IsDefined("theme") {
		return wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("RIPPLE_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "ripple"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ripple"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
