package ripple

import "testing"

func TestRecomputeUsesRightmostClip(t *testing.T) {
	clips := []ClipView{
		{Position: 130, Width: 200},
		{Position: 330, Width: 200},
		{Position: 410, Width: 100},
	}
	got := Recompute(clips, 10, 80)
	if got.Width != 540 {
		t.Fatalf("width = %v, want 540", got.Width)
	}
	if got.Height != 80 {
		t.Fatalf("height = %v, want 80", got.Height)
	}
}

func TestScrollTarget(t *testing.T) {
	extent := Extent{Width: 620, Height: 80}
	tests := []struct {
		name     string
		target   Rect
		viewport Rect
		want     float64
		wantOK   bool
	}{
		{
			name:     "visible",
			target:   Rect{X: 10, Y: 16, W: 200, H: 48},
			viewport: Rect{X: 0, Y: 0, W: 300, H: 80},
		},
		{
			name:     "right of viewport",
			target:   Rect{X: 210, Y: 16, W: 200, H: 48},
			viewport: Rect{X: 0, Y: 0, W: 300, H: 80},
			want:     200,
			wantOK:   true,
		},
		{
			name:     "clamped to end",
			target:   Rect{X: 410, Y: 16, W: 200, H: 48},
			viewport: Rect{X: 0, Y: 0, W: 300, H: 80},
			want:     320,
			wantOK:   true,
		},
		{
			name:     "clamped to start",
			target:   Rect{X: 10, Y: 16, W: 200, H: 48},
			viewport: Rect{X: 200, Y: 0, W: 300, H: 80},
			want:     0,
			wantOK:   true,
		},
		{
			name:     "viewport wider than content",
			target:   Rect{X: 410, Y: 16, W: 200, H: 48},
			viewport: Rect{X: 500, Y: 0, W: 800, H: 80},
			want:     0,
			wantOK:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScrollTarget(tt.target, tt.viewport, extent, 10)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("offset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContainsHalfOpen(t *testing.T) {
	r := Rect{X: 10, Y: 16, W: 200, H: 48}
	if !r.Contains(Point{X: 10, Y: 16}) {
		t.Fatalf("top-left corner not contained")
	}
	if r.Contains(Point{X: 210, Y: 40}) {
		t.Fatalf("right edge contained")
	}
	if !r.ContainsRect(r) {
		t.Fatalf("rect does not contain itself")
	}
}
