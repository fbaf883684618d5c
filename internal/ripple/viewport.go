package ripple

// Extent is the scrollable content size.
type Extent struct {
	Width  float64
	Height float64
}

// Recompute scans the clips' current positions, which may be mid-drag and
// not contiguous, and returns the content size. With no clips the extent is
// just the padding on both sides.
func Recompute(clips []ClipView, padding, height float64) Extent {
	if len(clips) == 0 {
		return Extent{Width: 2 * padding, Height: height}
	}
	maxX := clips[0].MaxX()
	for _, c := range clips[1:] {
		if x := c.MaxX(); x > maxX {
			maxX = x
		}
	}
	return Extent{Width: maxX + padding, Height: height}
}

// ScrollTarget returns the horizontal offset that brings target into view.
// ok is false when target already lies within viewport. The offset puts the
// target's leading edge padding units from the viewport's left side and is
// clamped to [0, extent.Width - viewport.W].
func ScrollTarget(target, viewport Rect, extent Extent, padding float64) (offset float64, ok bool) {
	if viewport.ContainsRect(target) {
		return 0, false
	}
	maxOffset := extent.Width - viewport.W
	if maxOffset < 0 {
		maxOffset = 0
	}
	return clamp(target.X-padding, 0, maxOffset), true
}
