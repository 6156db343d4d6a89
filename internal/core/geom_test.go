package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(4, 2, 6, 3) // cells x 4..9, y 2..4

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left cell", 4, 2, true},
		{"bottom-right cell", 9, 4, true},
		{"right edge", 10, 3, false},
		{"bottom edge", 5, 5, false},
		{"left of rect", 3, 3, false},
		{"above rect", 5, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if r.Right() != 10 || r.Bottom() != 5 {
		t.Errorf("Right(), Bottom() = %d, %d, expected 10, 5", r.Right(), r.Bottom())
	}
}

func TestRectContainsVec(t *testing.T) {
	r := NewRect(1, 1, 7, 1) // a button row

	tests := []struct {
		v    Vec
		want bool
	}{
		{V(1, 1), true},
		{V(7.9, 1.9), true}, // floors into the last cell
		{V(8, 1), false},
		{V(0.99, 1), false},
		{V(3, 2), false},
	}
	for _, tt := range tests {
		if got := r.ContainsVec(tt.v); got != tt.want {
			t.Errorf("ContainsVec(%v) = %v, expected %v", tt.v, got, tt.want)
		}
	}
}

func TestRectFContainsRect(t *testing.T) {
	viewport := RectF{W: 78, H: 23}

	if !viewport.ContainsRect(RectF{X: 0, Y: 0, W: 78, H: 23}) {
		t.Error("viewport should contain itself")
	}
	if viewport.ContainsRect(RectF{X: 76, Y: 2, W: 4, H: 1}) {
		t.Error("rect past the right edge should not be contained")
	}
	if viewport.ContainsRect(RectF{X: 2, Y: -1, W: 4, H: 2}) {
		t.Error("rect above the top should not be contained")
	}
}

func TestRectFInflate(t *testing.T) {
	got := RectF{X: 4, Y: 4, W: 2, H: 1}.Inflate(2, 1)
	want := RectF{X: 2, Y: 3, W: 6, H: 3}
	if got != want {
		t.Errorf("Inflate() = %+v, expected %+v", got, want)
	}
}

func TestRectFContainsVec(t *testing.T) {
	r := RectF{X: 2, Y: 2, W: 2, H: 1}
	if !r.ContainsVec(V(2, 2)) || !r.ContainsVec(V(3.5, 2.5)) {
		t.Error("points inside the rect should be contained")
	}
	if r.ContainsVec(V(4, 2)) || r.ContainsVec(V(2, 3)) {
		t.Error("right and bottom edges are exclusive")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, want float64
	}{
		{5, 1, 10, 5},
		{-3, 1, 10, 1},
		{12.5, 1, 10, 10},
		{1, 1, 10, 1},
	}
	for _, tt := range tests {
		if got := ClampF(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}
