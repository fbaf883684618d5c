package timeline

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/kobzarvs/ripple/internal/config"
)

type styles struct {
	main           tcell.Style
	track          tcell.Style
	ruler          tcell.Style
	clip           tcell.Style
	border         tcell.Style
	selectedBorder tcell.Style
	handle         tcell.Style
	label          tcell.Style
	status         tcell.Style
	thumbs         []tcell.Style
}

func newStyles(theme config.Theme) styles {
	fg := parseColor(theme.Foreground, tcell.ColorBlack)
	bg := parseColor(theme.Background, tcell.ColorWhite)
	trackBg := parseColor(theme.TrackBackground, bg)
	clipBg := parseColor(theme.ClipBackground, tcell.ColorWhite)
	borderFg := parseColor(theme.ClipBorder, tcell.ColorGray)
	handleBg := parseColor(theme.Handle, tcell.ColorBlue)
	selectedFg := parseColor(theme.SelectedBorder, shade(handleBg, 0.25))
	handleFg := parseColor(theme.HandleIndicator, tcell.ColorWhite)
	labelFg := parseColor(theme.LabelForeground, fg)
	labelBg := parseColor(theme.LabelBackground, clipBg)
	statusFg := parseColor(theme.StatuslineForeground, fg)
	statusBg := parseColor(theme.StatuslineBackground, tcell.ColorGray)
	rulerFg := parseColor(theme.RulerForeground, tcell.ColorGray)

	thumbs := make([]tcell.Style, 0, len(theme.ThumbnailPalette))
	for _, name := range theme.ThumbnailPalette {
		c := parseColor(name, tcell.ColorDefault)
		if c == tcell.ColorDefault {
			continue
		}
		thumbs = append(thumbs, tcell.StyleDefault.Background(blend(clipBg, c, theme.ThumbnailOpacity)))
	}
	return styles{
		main:           tcell.StyleDefault.Foreground(fg).Background(bg),
		track:          tcell.StyleDefault.Foreground(fg).Background(trackBg),
		ruler:          tcell.StyleDefault.Foreground(rulerFg).Background(bg),
		clip:           tcell.StyleDefault.Foreground(fg).Background(clipBg),
		border:         tcell.StyleDefault.Foreground(borderFg).Background(clipBg),
		selectedBorder: tcell.StyleDefault.Foreground(selectedFg).Background(clipBg).Bold(true),
		handle:         tcell.StyleDefault.Foreground(handleFg).Background(handleBg),
		label:          tcell.StyleDefault.Foreground(labelFg).Background(labelBg),
		status:         tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		thumbs:         thumbs,
	}
}

// blend paints over on top of base at the given opacity.
func blend(base, over tcell.Color, alpha float64) tcell.Color {
	c1, ok1 := toColorful(base)
	c2, ok2 := toColorful(over)
	if !ok1 || !ok2 {
		return over
	}
	return fromColorful(c1.BlendRgb(c2, alpha))
}

// shade darkens c toward black by amount, mixed in Lab space.
func shade(c tcell.Color, amount float64) tcell.Color {
	cc, ok := toColorful(c)
	if !ok {
		return c
	}
	return fromColorful(cc.BlendLab(colorful.Color{}, amount))
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return fallback
		}
		return fromColorful(c)
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
