package ripple

import (
	"fmt"

	"go.uber.org/zap"
)

// Engine owns a clip sequence and applies selection and ripple-trim events
// to it. It is not safe for concurrent use; all events are expected on the
// goroutine that delivers input.
type Engine struct {
	cfg     Config
	clips   []Clip
	sel     Selection
	session *Session
	extent  Extent
	log     *zap.Logger
}

type Option func(*Engine)

// WithLogger sets the logger used for transitions and rejections.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSelection selects the clip with the given id after construction.
func WithSelection(id int) Option {
	return func(e *Engine) {
		if e.indexOf(id) >= 0 {
			e.sel.Select(id)
		}
	}
}

// New creates an engine with one clip per spec, left to right. Clip ids are
// assigned in order starting at 0. Widths outside the configured bounds are
// clamped.
func New(cfg Config, specs []ClipSpec, opts ...Option) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		clips: make([]Clip, len(specs)),
		log:   zap.NewNop(),
	}
	for i, spec := range specs {
		e.clips[i] = newClip(i, spec, &e.cfg)
	}
	e.relayout()
	for _, opt := range opts {
		opt(e)
	}
	e.log.Debug("sequence created", zap.Int("clips", len(e.clips)), zap.Float64("extent", e.extent.Width))
	return e, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Dragging reports whether a drag session is active. While it is, the host
// must not scroll the viewport on its own.
func (e *Engine) Dragging() bool { return e.session != nil }

// Session returns a copy of the active drag session.
func (e *Engine) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	s := *e.session
	s.startWidths = s.StartWidths()
	s.startLefts = s.StartLefts()
	s.startTrims = append([]float64(nil), s.startTrims...)
	return s, true
}

func (e *Engine) Extent() Extent { return e.extent }

// Selected returns the selected clip id, if any.
func (e *Engine) Selected() (int, bool) { return e.sel.ID() }

func (e *Engine) Len() int { return len(e.clips) }

// Clips returns the render-ready clip list in sequence order.
func (e *Engine) Clips() []ClipView {
	out := make([]ClipView, len(e.clips))
	for i := range e.clips {
		c := &e.clips[i]
		out[i] = ClipView{
			ID:           c.id,
			Title:        c.title,
			Width:        c.width,
			NaturalWidth: c.naturalWidth,
			Position:     c.position,
			TrimOffset:   c.trimOffset,
			Selected:     e.sel.Is(c.id),
		}
	}
	return out
}

// Clip returns the clip with the given id.
func (e *Engine) Clip(id int) (ClipView, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return ClipView{}, false
	}
	return e.Clips()[i], true
}

// Begin starts a drag on one edge of the selected clip.
func (e *Engine) Begin(id int, edge Edge, p Point) (Snapshot, error) {
	if e.session != nil {
		return e.Snapshot(), e.reject("begin", ErrDragActive)
	}
	k := e.indexOf(id)
	if k < 0 {
		return e.Snapshot(), e.reject("begin", fmt.Errorf("%w: %d", ErrUnknownClip, id))
	}
	if !e.sel.Is(id) {
		return e.Snapshot(), e.reject("begin", fmt.Errorf("%w: %d", ErrNotSelected, id))
	}
	if !edge.valid() {
		return e.Snapshot(), e.reject("begin", fmt.Errorf("%w: %v", ErrInvalidEdge, edge))
	}
	if !finite(p.X) {
		return e.Snapshot(), e.reject("begin", fmt.Errorf("%w: x=%v", ErrInvalidPoint, p.X))
	}
	widths := e.widths()
	trims := make([]float64, len(e.clips))
	for i := range e.clips {
		trims[i] = e.clips[i].trimOffset
	}
	e.session = &Session{
		ClipID:      id,
		Edge:        edge,
		Origin:      p.X,
		index:       k,
		startWidths: widths,
		startLefts:  Layout(e.cfg.LeadingPadding, widths).Positions,
		startTrims:  trims,
	}
	e.log.Debug("drag begin", zap.Int("clip", id), zap.Stringer("edge", edge), zap.Float64("origin", p.X))
	return e.Snapshot(), nil
}

// Update moves the dragged edge to follow the pointer.
func (e *Engine) Update(p Point) (Snapshot, error) {
	if e.session == nil {
		return e.Snapshot(), e.reject("update", ErrNotDragging)
	}
	if !finite(p.X) {
		return e.Snapshot(), e.reject("update", fmt.Errorf("%w: x=%v", ErrInvalidPoint, p.X))
	}
	e.session.apply(e.clips, p.X, &e.cfg)
	e.extent = Recompute(e.Clips(), e.cfg.LeadingPadding, e.cfg.RowHeight)
	return e.Snapshot(), nil
}

// End settles the drag: the sequence is laid out again from the final
// widths and every clip's natural width becomes its current width.
func (e *Engine) End() (Snapshot, error) {
	if e.session == nil {
		return e.Snapshot(), e.reject("end", ErrNotDragging)
	}
	e.settle("end")
	return e.Snapshot(), nil
}

// Cancel ends the drag according to the configured CancelPolicy. It always
// leaves the engine idle with a contiguous sequence.
func (e *Engine) Cancel() (Snapshot, error) {
	if e.session == nil {
		return e.Snapshot(), e.reject("cancel", ErrNotDragging)
	}
	if e.cfg.CancelPolicy == CancelRevert {
		e.session.revert(e.clips)
		e.session = nil
		e.relayout()
		e.log.Debug("drag reverted", zap.Float64("extent", e.extent.Width))
		return e.Snapshot(), nil
	}
	e.settle("cancel")
	return e.Snapshot(), nil
}

func (e *Engine) settle(op string) {
	s := e.session
	e.session = nil
	for i := range e.clips {
		e.clips[i].settle()
	}
	e.relayout()
	c := &e.clips[s.index]
	e.log.Debug("drag "+op,
		zap.Int("clip", s.ClipID),
		zap.Stringer("edge", s.Edge),
		zap.Float64("width", c.width),
		zap.Float64("trim", c.trimOffset),
		zap.Float64("extent", e.extent.Width),
	)
}

// Select makes id the only selected clip.
func (e *Engine) Select(id int) (Snapshot, error) {
	if e.session != nil {
		return e.Snapshot(), e.reject("select", ErrDragActive)
	}
	if e.indexOf(id) < 0 {
		return e.Snapshot(), e.reject("select", fmt.Errorf("%w: %d", ErrUnknownClip, id))
	}
	e.sel.Select(id)
	e.log.Debug("select", zap.Int("clip", id))
	return e.Snapshot(), nil
}

// DeselectAll clears the selection.
func (e *Engine) DeselectAll() (Snapshot, error) {
	if e.session != nil {
		return e.Snapshot(), e.reject("deselect", ErrDragActive)
	}
	e.sel.Clear()
	e.log.Debug("deselect")
	return e.Snapshot(), nil
}

// TapAt selects the clip under p, or clears the selection when p is not
// inside any clip.
func (e *Engine) TapAt(p Point) (Snapshot, error) {
	if id, ok := e.ClipAt(p); ok {
		return e.Select(id)
	}
	return e.DeselectAll()
}

// ClipRect returns the clip's rectangle in content coordinates.
func (e *Engine) ClipRect(id int) (Rect, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return Rect{}, false
	}
	return e.rect(&e.clips[i]), true
}

// ClipAt returns the id of the clip containing p. A point in no clip still
// hits a clip whose rectangle, widened by the hit slop, contains it; the
// selected clip wins ties there.
func (e *Engine) ClipAt(p Point) (int, bool) {
	for i := range e.clips {
		if e.rect(&e.clips[i]).Contains(p) {
			return e.clips[i].id, true
		}
	}
	if e.cfg.HitSlop <= 0 {
		return 0, false
	}
	if id, ok := e.sel.ID(); ok && e.rect(&e.clips[e.indexOf(id)]).Inset(-e.cfg.HitSlop).Contains(p) {
		return id, true
	}
	for i := range e.clips {
		if e.rect(&e.clips[i]).Inset(-e.cfg.HitSlop).Contains(p) {
			return e.clips[i].id, true
		}
	}
	return 0, false
}

// HandleAt returns the edge handle of the selected clip under p. Handles of
// unselected clips do not respond. Each handle reaches HitSlop past the
// clip's outer edge and above and below it.
func (e *Engine) HandleAt(p Point) (int, Edge, bool) {
	id, ok := e.sel.ID()
	if !ok {
		return 0, 0, false
	}
	c := &e.clips[e.indexOf(id)]
	r := e.rect(c)
	hw := e.cfg.HandleWidth
	if hw > c.width/2 {
		hw = c.width / 2
	}
	slop := e.cfg.HitSlop
	left := Rect{X: r.X - slop, Y: r.Y - slop, W: hw + slop, H: r.H + 2*slop}
	right := Rect{X: r.MaxX() - hw, Y: r.Y - slop, W: hw + slop, H: r.H + 2*slop}
	switch {
	case left.Contains(p):
		return id, EdgeLeft, true
	case right.Contains(p):
		return id, EdgeRight, true
	}
	return 0, 0, false
}

// ScrollTargetFor returns the offset that brings clip id into viewport, or
// ok=false if it is already fully visible or unknown.
func (e *Engine) ScrollTargetFor(id int, viewport Rect) (float64, bool) {
	r, ok := e.ClipRect(id)
	if !ok {
		return 0, false
	}
	return ScrollTarget(r, viewport, e.extent, e.cfg.LeadingPadding)
}

func (e *Engine) rect(c *Clip) Rect {
	return Rect{X: c.position, Y: e.cfg.clipTop(), W: c.width, H: e.cfg.ClipHeight}
}

func (e *Engine) indexOf(id int) int {
	for i := range e.clips {
		if e.clips[i].id == id {
			return i
		}
	}
	return -1
}

func (e *Engine) widths() []float64 {
	w := make([]float64, len(e.clips))
	for i := range e.clips {
		w[i] = e.clips[i].width
	}
	return w
}

func (e *Engine) relayout() {
	p := Layout(e.cfg.LeadingPadding, e.widths())
	for i := range e.clips {
		e.clips[i].position = p.Positions[i]
	}
	e.extent = Extent{Width: p.Extent, Height: e.cfg.RowHeight}
}

func (e *Engine) reject(op string, err error) error {
	e.log.Debug("rejected", zap.String("op", op), zap.Error(err))
	return err
}
