package timeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kobzarvs/ripple/internal/ripple"
)

const rulerStep = 100.0

func (t *Timeline) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.viewWidth = w
	snap := t.engine.Snapshot()
	if !snap.ScrollLocked() {
		t.scrollX = math.Min(math.Max(t.scrollX, 0), t.maxScroll())
	}

	s.SetStyle(t.styles.main)
	s.Clear()

	t.renderRuler(s, w)
	for y := trackTop; y < trackTop+trackRows && y < h; y++ {
		clearLine(s, y, w, t.styles.track)
	}

	// The selected clip is drawn last so its border and handles stay on top.
	var selected *ripple.ClipView
	for i := range snap.Clips {
		if snap.Clips[i].Selected {
			selected = &snap.Clips[i]
			continue
		}
		t.renderClip(s, w, h, snap.Clips[i])
	}
	if selected != nil {
		t.renderClip(s, w, h, *selected)
	}

	statusY := h - 2
	msgY := h - 1
	if statusY > trackTop+trackRows-1 {
		t.renderStatusline(s, w, statusY, snap)
	}
	if msgY > trackTop+trackRows-1 {
		drawString(s, 0, msgY, w, composeStatusLine(" "+t.statusMessage, "", w), t.styles.main)
	}
	s.HideCursor()
	s.Show()
}

func (t *Timeline) renderRuler(s tcell.Screen, w int) {
	first := math.Ceil(t.scrollX/rulerStep) * rulerStep
	for u := first; ; u += rulerStep {
		x := int(math.Floor((u - t.scrollX) / t.unitsPerCell))
		if x >= w {
			return
		}
		drawString(s, x, 0, w, []rune(fmt.Sprintf("|%d", int(u))), t.styles.ruler)
	}
}

// clipRows returns the screen rows covered by clips.
func (t *Timeline) clipRows() []int {
	cfg := t.engine.Config()
	top := (cfg.RowHeight - cfg.ClipHeight) / 2
	var rows []int
	for r := 0; r < trackRows; r++ {
		cy := (float64(r) + 0.5) * cfg.RowHeight / trackRows
		if cy >= top && cy < top+cfg.ClipHeight {
			rows = append(rows, trackTop+r)
		}
	}
	return rows
}

func (t *Timeline) renderClip(s tcell.Screen, w, h int, c ripple.ClipView) {
	rows := t.clipRows()
	if len(rows) == 0 {
		return
	}
	first, last := -1, -1
	for x := 0; x < w; x++ {
		u := t.cellToX(x)
		if u < c.Position || u >= c.MaxX() {
			continue
		}
		if first < 0 {
			first = x
		}
		last = x
		for i, y := range rows {
			if y >= h {
				break
			}
			ch, style := t.clipCell(c, u, i, len(rows))
			s.SetContent(x, y, ch, nil, style)
		}
	}
	if first < 0 {
		return
	}
	labelY := rows[len(rows)/2]
	if labelY < h {
		t.renderLabel(s, first+1, last-1, labelY, c.Title)
	}
}

func (t *Timeline) clipCell(c ripple.ClipView, u float64, row, rows int) (rune, tcell.Style) {
	hw := t.engine.Config().HandleWidth
	if c.Selected && (u < c.Position+hw || u >= c.MaxX()-hw) {
		if row == rows/2 {
			return '┃', t.styles.handle
		}
		return ' ', t.styles.handle
	}
	border := t.styles.border
	if c.Selected {
		border = t.styles.selectedBorder
	}
	if rows >= 3 && row == 0 {
		return '▔', border
	}
	if rows >= 3 && row == rows-1 {
		return '▁', border
	}
	if i, ok := thumbAt(u-c.Position+c.TrimOffset, c.ContentWidth()); ok && len(t.styles.thumbs) > 0 {
		return ' ', t.styles.thumbs[i%len(t.styles.thumbs)]
	}
	return ' ', t.styles.clip
}

// thumbAt returns the thumbnail index at the given offset into the clip's
// content track, or ok=false in a gap or outside the track.
func thumbAt(offset, contentWidth float64) (int, bool) {
	if offset < 0 || offset >= contentWidth {
		return 0, false
	}
	period := thumbWidth + thumbGap
	if math.Mod(offset, period) >= thumbWidth {
		return 0, false
	}
	return int(offset / period), true
}

func (t *Timeline) renderLabel(s tcell.Screen, x0, x1, y int, label string) {
	width := x1 - x0 + 1
	text, used := fitLabel(label, width)
	if used == 0 {
		return
	}
	x := x0 + (width-used)/2
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], t.styles.label)
		x += g.Width()
	}
}

// fitLabel truncates label to at most width display cells by grapheme
// cluster, ending with an ellipsis when truncated.
func fitLabel(label string, width int) (string, int) {
	if width <= 0 || label == "" {
		return "", 0
	}
	if w := uniseg.StringWidth(label); w <= width {
		return label, w
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(label)
	for g.Next() {
		cw := g.Width()
		if used+cw > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += cw
	}
	b.WriteRune('…')
	return b.String(), used + 1
}

func (t *Timeline) renderStatusline(s tcell.Screen, w, y int, snap ripple.Snapshot) {
	left := " no selection"
	if c, ok := snap.Selected(); ok {
		left = fmt.Sprintf(" %s  #%d  x=%.0f  w=%.0f  trim=%.0f", c.Title, c.ID, c.Position, c.Width, c.TrimOffset)
	}
	mode := "IDLE"
	if snap.Dragging {
		mode = "DRAG " + snap.Edge.String()
	}
	right := fmt.Sprintf("%s  extent %.0f×%.0f  scroll %.0f ", mode, snap.Extent.Width, snap.Extent.Height, t.scrollX)
	drawString(s, 0, y, w, composeStatusLine(left, right, w), t.styles.status)
}

func drawString(s tcell.Screen, x, y, w int, text []rune, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	spaceCount := width - len(leftRunes) - len(rightRunes)
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := 0; i < spaceCount; i++ {
		line = append(line, ' ')
	}
	line = append(line, rightRunes...)
	return line
}
