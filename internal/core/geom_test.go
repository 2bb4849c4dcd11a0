package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 12, 12, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right inside", 14, 14, true},
		{"right edge (exclusive)", 15, 12, false},
		{"bottom edge (exclusive)", 12, 15, false},
		{"outside left", 9, 12, false},
		{"outside top", 12, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, want 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, want 25", r.Bottom())
	}
}

func TestCenteredRect(t *testing.T) {
	tests := []struct {
		name           string
		outerW, outerH int
		w, h           int
		want           Rect
	}{
		{"even", 80, 24, 20, 4, Rect{X: 30, Y: 10, W: 20, H: 4}},
		{"odd remainder rounds down", 81, 25, 20, 4, Rect{X: 30, Y: 10, W: 20, H: 4}},
		{"larger than area", 10, 4, 20, 6, Rect{X: -5, Y: -1, W: 20, H: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenteredRect(tt.outerW, tt.outerH, tt.w, tt.h); got != tt.want {
				t.Errorf("CenteredRect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(2, 3, 10, 6)

	if got, want := r.Inset(1), NewRect(3, 4, 8, 4); got != want {
		t.Errorf("Inset(1) = %+v, want %+v", got, want)
	}
	if got := r.Inset(4); got.W != 2 || got.H != 0 {
		t.Errorf("Inset(4) = %+v, want W=2 H=0", got)
	}
}
