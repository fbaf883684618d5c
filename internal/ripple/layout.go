package ripple

// Placement is the canonical layout of a sequence.
type Placement struct {
	Positions []float64
	Extent    float64
}

// Layout places clips of the given widths left to right starting at padding
// with no gaps. The extent includes the same padding after the last clip.
func Layout(padding float64, widths []float64) Placement {
	positions := make([]float64, len(widths))
	x := padding
	for i, w := range widths {
		positions[i] = x
		x += w
	}
	return Placement{Positions: positions, Extent: x + padding}
}
