package ripple

import "fmt"

// Edge identifies which side of a clip is being dragged.
type Edge int

const (
	EdgeLeft Edge = iota + 1
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

func (e Edge) valid() bool {
	return e == EdgeLeft || e == EdgeRight
}

// Session is the state captured for one edge drag. It only exists between
// Begin and End/Cancel.
type Session struct {
	ClipID int
	Edge   Edge
	Origin float64

	index       int
	startWidths []float64
	startLefts  []float64
	startTrims  []float64
}

// StartWidths returns a copy of the widths captured at Begin.
func (s *Session) StartWidths() []float64 {
	return append([]float64(nil), s.startWidths...)
}

// StartLefts returns a copy of the left edges captured at Begin.
func (s *Session) StartLefts() []float64 {
	return append([]float64(nil), s.startLefts...)
}

// apply moves the dragged edge to pointer x and ripples the clamped delta to
// the clips on the dragged side. Clips on the other side are not touched.
func (s *Session) apply(clips []Clip, x float64, cfg *Config) {
	dx := x - s.Origin
	k := s.index
	start := s.startWidths[k]
	c := &clips[k]
	switch s.Edge {
	case EdgeRight:
		c.setWidth(start+dx, cfg)
		shift := c.width - start
		for j := k + 1; j < len(clips); j++ {
			clips[j].position = s.startLefts[j] + shift
		}
	case EdgeLeft:
		newWidth := clamp(start-dx, cfg.MinClipWidth, cfg.MaxClipWidth)
		shift := start - newWidth
		c.setTrimOffset(c.naturalWidth - newWidth)
		for j := 0; j <= k; j++ {
			clips[j].position = s.startLefts[j] + shift
		}
		c.setWidth(newWidth, cfg)
	}
}

// revert restores the captured widths and trim offsets.
func (s *Session) revert(clips []Clip) {
	for i := range clips {
		clips[i].width = s.startWidths[i]
		clips[i].trimOffset = s.startTrims[i]
	}
}
