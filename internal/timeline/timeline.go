package timeline

import (
	"errors"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/ripple/internal/config"
	"github.com/kobzarvs/ripple/internal/logger"
	"github.com/kobzarvs/ripple/internal/ripple"
)

// Screen rows used by the clip track. Row 0 is the ruler.
const (
	trackTop  = 1
	trackRows = 5
)

// Thumbnail strip geometry in content units.
const (
	thumbWidth = 18.0
	thumbGap   = 3.0
)

// Timeline renders a ripple.Engine on a terminal and feeds it mouse and
// keyboard input. Content coordinates are converted to cells with a fixed
// number of units per cell.
type Timeline struct {
	engine        *ripple.Engine
	keymap        map[string]string
	styles        styles
	unitsPerCell  float64
	scrollStep    float64
	nudgeStep     float64
	scrollX       float64
	viewWidth     int
	statusMessage string

	// mouse state
	mouseDown    bool
	mouseDrag    bool
	pressPoint   ripple.Point
	pressOnTrack bool
}

func New(cfg config.Config, engine *ripple.Engine) *Timeline {
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	upc := cfg.Timeline.UnitsPerCell
	if upc <= 0 {
		upc = 1
	}
	return &Timeline{
		engine:       engine,
		keymap:       keymap,
		styles:       newStyles(cfg.Theme),
		unitsPerCell: upc,
		scrollStep:   cfg.Timeline.ScrollStep,
		nudgeStep:    cfg.Timeline.NudgeStep,
		viewWidth:    80,
	}
}

func (t *Timeline) Engine() *ripple.Engine { return t.engine }
func (t *Timeline) ScrollX() float64 { return t.scrollX }

// HandleKey processes a key event and reports whether the app should quit.
func (t *Timeline) HandleKey(ev *tcell.EventKey) bool {
	t.statusMessage = ""
	return t.execAction(t.keymap[keyString(ev)])
}

func (t *Timeline) execAction(action string) bool {
	switch action {
	case "":
	case "quit":
		t.Interrupt()
		return true
	case "select_prev":
		t.selectRelative(-1)
	case "select_next":
		t.selectRelative(1)
	case "left_edge_left":
		t.nudge(ripple.EdgeLeft, -t.nudgeStep)
	case "left_edge_right":
		t.nudge(ripple.EdgeLeft, t.nudgeStep)
	case "right_edge_left":
		t.nudge(ripple.EdgeRight, -t.nudgeStep)
	case "right_edge_right":
		t.nudge(ripple.EdgeRight, t.nudgeStep)
	case "reveal":
		if id, ok := t.engine.Selected(); ok {
			t.reveal(id)
		}
	case "cancel":
		if t.engine.Dragging() {
			t.Interrupt()
		} else {
			t.apply("deselect", func() (ripple.Snapshot, error) { return t.engine.DeselectAll() })
		}
	case "scroll_left":
		t.scrollBy(-t.scrollStep)
	case "scroll_right":
		t.scrollBy(t.scrollStep)
	case "scroll_start":
		t.scrollTo(0)
	case "scroll_end":
		t.scrollTo(t.maxScroll())
	default:
		logger.Warn("timeline: unknown action", "action", action)
		t.setStatus("unknown action: " + action)
	}
	return false
}

// HandleMouse turns button 1 press/motion/release into a drag on the
// selected clip's handle, or into a tap when the press missed the handles.
func (t *Timeline) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	switch {
	case btn&(tcell.WheelUp|tcell.WheelLeft) != 0:
		t.scrollBy(-t.scrollStep)
	case btn&(tcell.WheelDown|tcell.WheelRight) != 0:
		t.scrollBy(t.scrollStep)
	case btn&tcell.Button1 != 0:
		if !t.mouseDown {
			t.mouseDown = true
			t.press(x, y)
		} else if t.mouseDrag {
			t.apply("update", func() (ripple.Snapshot, error) {
				return t.engine.Update(ripple.Point{X: t.cellToX(x)})
			})
		}
	case t.mouseDown:
		t.mouseDown = false
		t.release()
	}
}

// Interrupt cancels any drag in progress, e.g. when the terminal loses
// focus or is resized.
func (t *Timeline) Interrupt() {
	t.mouseDown = false
	t.mouseDrag = false
	if !t.engine.Dragging() {
		return
	}
	t.apply("cancel", t.engine.Cancel)
}

func (t *Timeline) press(x, y int) {
	p, onTrack := t.pointAt(x, y)
	t.pressPoint = p
	t.pressOnTrack = onTrack
	if !onTrack {
		return
	}
	if id, edge, ok := t.engine.HandleAt(p); ok {
		t.mouseDrag = t.apply("begin", func() (ripple.Snapshot, error) {
			return t.engine.Begin(id, edge, p)
		})
	}
}

func (t *Timeline) release() {
	if t.mouseDrag {
		t.mouseDrag = false
		t.apply("end", t.engine.End)
		return
	}
	if !t.pressOnTrack {
		return
	}
	t.apply("tap", func() (ripple.Snapshot, error) { return t.engine.TapAt(t.pressPoint) })
	if id, ok := t.engine.Selected(); ok {
		t.reveal(id)
	}
}

func (t *Timeline) selectRelative(dir int) {
	clips := t.engine.Clips()
	if len(clips) == 0 {
		return
	}
	idx := -1
	for i, c := range clips {
		if c.Selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir < 0:
		idx = len(clips) - 1
	case idx < 0:
		idx = 0
	default:
		idx += dir
	}
	if idx < 0 || idx >= len(clips) {
		return
	}
	id := clips[idx].ID
	if t.apply("select", func() (ripple.Snapshot, error) { return t.engine.Select(id) }) {
		t.reveal(id)
	}
}

// nudge moves one edge of the selected clip by delta as a complete drag.
func (t *Timeline) nudge(edge ripple.Edge, delta float64) {
	id, ok := t.engine.Selected()
	if !ok {
		t.setStatus("no clip selected")
		return
	}
	c, _ := t.engine.Clip(id)
	x := c.Position
	if edge == ripple.EdgeRight {
		x = c.MaxX()
	}
	if !t.apply("begin", func() (ripple.Snapshot, error) { return t.engine.Begin(id, edge, ripple.Point{X: x}) }) {
		return
	}
	t.apply("update", func() (ripple.Snapshot, error) { return t.engine.Update(ripple.Point{X: x + delta}) })
	t.apply("end", t.engine.End)
}

// apply runs one engine transition and reports whether it was accepted.
// Rejections are shown on the message line.
func (t *Timeline) apply(op string, fn func() (ripple.Snapshot, error)) bool {
	if _, err := fn(); err != nil {
		logger.Debug("timeline: transition rejected", "op", op, "err", err)
		if !errors.Is(err, ripple.ErrNotDragging) {
			t.setStatus(err.Error())
		}
		return false
	}
	return true
}

func (t *Timeline) setStatus(msg string) {
	t.statusMessage = msg
}

// viewport is the visible part of the content in content units.
func (t *Timeline) viewport() ripple.Rect {
	return ripple.Rect{
		X: t.scrollX,
		W: float64(t.viewWidth) * t.unitsPerCell,
		H: t.engine.Config().RowHeight,
	}
}

func (t *Timeline) maxScroll() float64 {
	m := t.engine.Extent().Width - t.viewport().W
	if m < 0 {
		return 0
	}
	return m
}

func (t *Timeline) scrollBy(delta float64) {
	t.scrollTo(t.scrollX + delta)
}

// scrollTo is ignored while a drag is active.
func (t *Timeline) scrollTo(x float64) {
	if t.engine.Dragging() {
		return
	}
	t.scrollX = math.Min(math.Max(x, 0), t.maxScroll())
}

func (t *Timeline) reveal(id int) {
	if t.engine.Dragging() {
		return
	}
	if off, ok := t.engine.ScrollTargetFor(id, t.viewport()); ok {
		t.scrollX = off
	}
}

// cellToX returns the content x at the centre of screen column x.
func (t *Timeline) cellToX(x int) float64 {
	return t.scrollX + (float64(x)+0.5)*t.unitsPerCell
}

// pointAt maps a screen cell to content coordinates. onTrack is false for
// cells outside the clip track.
func (t *Timeline) pointAt(x, y int) (p ripple.Point, onTrack bool) {
	p.X = t.cellToX(x)
	r := y - trackTop
	if r < 0 || r >= trackRows {
		return p, false
	}
	p.Y = (float64(r) + 0.5) * t.engine.Config().RowHeight / trackRows
	return p, true
}
