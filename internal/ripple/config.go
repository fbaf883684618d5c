package ripple

import (
	"fmt"
	"strings"
)

// CancelPolicy decides what Cancel does with an in-progress drag.
type CancelPolicy int

const (
	// CancelCommit settles the partially dragged state exactly like End.
	CancelCommit CancelPolicy = iota
	// CancelRevert restores widths and trim offsets captured at Begin.
	CancelRevert
)

func (p CancelPolicy) String() string {
	switch p {
	case CancelCommit:
		return "commit"
	case CancelRevert:
		return "revert"
	}
	return fmt.Sprintf("CancelPolicy(%d)", int(p))
}

// ParseCancelPolicy accepts "commit" or "revert". An empty string means commit.
func ParseCancelPolicy(s string) (CancelPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "commit":
		return CancelCommit, nil
	case "revert":
		return CancelRevert, nil
	}
	return CancelCommit, fmt.Errorf("unknown cancel policy %q", s)
}

// Config holds the constants fixed at engine construction. HitSlop widens
// clip and handle hit areas on every side.
type Config struct {
	MinClipWidth   float64
	MaxClipWidth   float64
	LeadingPadding float64
	RowHeight      float64
	ClipHeight     float64
	HandleWidth    float64
	HitSlop        float64
	CancelPolicy   CancelPolicy
}

func DefaultConfig() Config {
	return Config{
		MinClipWidth:   60,
		MaxClipWidth:   320,
		LeadingPadding: 10,
		RowHeight:      80,
		ClipHeight:     48,
		HandleWidth:    10,
		HitSlop:        5,
		CancelPolicy:   CancelCommit,
	}
}

func (c Config) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"min clip width", c.MinClipWidth},
		{"max clip width", c.MaxClipWidth},
		{"leading padding", c.LeadingPadding},
		{"row height", c.RowHeight},
		{"clip height", c.ClipHeight},
		{"handle width", c.HandleWidth},
		{"hit slop", c.HitSlop},
	} {
		if !finite(f.v) {
			return fmt.Errorf("%s must be finite, got %v", f.name, f.v)
		}
	}
	switch {
	case c.MinClipWidth <= 0:
		return fmt.Errorf("min clip width must be positive, got %v", c.MinClipWidth)
	case c.MaxClipWidth < c.MinClipWidth:
		return fmt.Errorf("max clip width %v is below min clip width %v", c.MaxClipWidth, c.MinClipWidth)
	case c.LeadingPadding < 0:
		return fmt.Errorf("leading padding must not be negative, got %v", c.LeadingPadding)
	case c.RowHeight <= 0:
		return fmt.Errorf("row height must be positive, got %v", c.RowHeight)
	case c.ClipHeight <= 0 || c.ClipHeight > c.RowHeight:
		return fmt.Errorf("clip height %v must be in (0, %v]", c.ClipHeight, c.RowHeight)
	case c.HandleWidth < 0:
		return fmt.Errorf("handle width must not be negative, got %v", c.HandleWidth)
	case c.HitSlop < 0:
		return fmt.Errorf("hit slop must not be negative, got %v", c.HitSlop)
	}
	return nil
}

// clipTop is the vertical offset of clips inside the row.
func (c Config) clipTop() float64 {
	return (c.RowHeight - c.ClipHeight) / 2
}
