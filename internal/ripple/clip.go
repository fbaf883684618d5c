package ripple

// ClipSpec describes a clip at sequence creation.
type ClipSpec struct {
	Title string
	Width float64
}

// Clip is one element of the sequence. Geometry is only mutated by the
// engine; every setter clamps instead of failing.
type Clip struct {
	id           int
	title        string
	width        float64
	naturalWidth float64
	trimOffset   float64
	position     float64
}

func newClip(id int, spec ClipSpec, cfg *Config) Clip {
	c := Clip{id: id, title: spec.Title}
	c.setWidth(spec.Width, cfg)
	c.naturalWidth = c.width
	return c
}

func (c *Clip) ID() int { return c.id }
func (c *Clip) Title() string { return c.title }
func (c *Clip) Width() float64 { return c.width }
func (c *Clip) NaturalWidth() float64 { return c.naturalWidth }
func (c *Clip) TrimOffset() float64 { return c.trimOffset }
func (c *Clip) Position() float64 { return c.position }
func (c *Clip) MaxX() float64 { return c.position + c.width }

func (c *Clip) setWidth(w float64, cfg *Config) {
	c.width = clamp(w, cfg.MinClipWidth, cfg.MaxClipWidth)
}

func (c *Clip) setTrimOffset(v float64) {
	c.trimOffset = clamp(v, 0, c.naturalWidth)
}

// settle makes the current width the baseline for later left trims.
func (c *Clip) settle() {
	c.naturalWidth = c.width
	c.setTrimOffset(c.trimOffset)
}

// ClipView is the outbound, render-ready copy of a clip.
type ClipView struct {
	ID           int
	Title        string
	Width        float64
	NaturalWidth float64
	Position     float64
	TrimOffset   float64
	Selected     bool
}

// MaxX returns the right edge of the clip.
func (v ClipView) MaxX() float64 { return v.Position + v.Width }

// ContentWidth is the width of the thumbnail track behind the clip window.
func (v ClipView) ContentWidth() float64 {
	if w := v.Width + v.TrimOffset; w > v.NaturalWidth {
		return w
	}
	return v.NaturalWidth
}
