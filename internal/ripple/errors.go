package ripple

import "errors"

// Rejections. An operation that returns one of these left the engine unchanged.
var (
	ErrDragActive   = errors.New("a drag session is already active")
	ErrNotDragging  = errors.New("no drag session is active")
	ErrUnknownClip  = errors.New("unknown clip")
	ErrNotSelected  = errors.New("clip is not selected")
	ErrInvalidEdge  = errors.New("invalid edge")
	ErrInvalidPoint = errors.New("pointer position is not finite")
)
