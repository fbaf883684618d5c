package ripple

// Snapshot is the full derived state after a transition. A host renders it
// directly without any layout of its own.
type Snapshot struct {
	Clips    []ClipView
	Extent   Extent
	Dragging bool
	Edge     Edge
	DragClip int
}

// ScrollLocked reports whether independent viewport scrolling is suspended.
func (s Snapshot) ScrollLocked() bool { return s.Dragging }

// Selected returns the selected clip, if any.
func (s Snapshot) Selected() (ClipView, bool) {
	for _, c := range s.Clips {
		if c.Selected {
			return c, true
		}
	}
	return ClipView{}, false
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Clips:  e.Clips(),
		Extent: e.extent,
	}
	if e.session != nil {
		s.Dragging = true
		s.Edge = e.session.Edge
		s.DragClip = e.session.ClipID
	}
	return s
}
