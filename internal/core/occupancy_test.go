package core

import "testing"

func TestOccupancySetRemove(t *testing.T) {
	o := NewOccupancy()

	if o.Occupied(C(1, 1)) {
		t.Error("empty occupancy should have no filled cells")
	}

	o.Set(C(1, 1), ColorRed)
	if !o.Occupied(C(1, 1)) {
		t.Error("Occupied(1,1) = false after Set")
	}
	if col, ok := o.Get(C(1, 1)); !ok || col != ColorRed {
		t.Errorf("Get(1,1) = %v, %v, expected red, true", col, ok)
	}

	o.Remove(C(1, 1))
	o.Remove(C(9, 9))
	if o.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", o.Len())
	}
}

func TestOccupancyQueries(t *testing.T) {
	o := NewOccupancy()
	o.Set(C(2, 3), ColorBlue)
	o.Set(C(0, 3), ColorBlue)
	o.Set(C(5, 1), ColorGreen)

	if n := o.RowCount(3); n != 2 {
		t.Errorf("RowCount(3) = %d, expected 2", n)
	}
	if n := o.RowCount(0); n != 0 {
		t.Errorf("RowCount(0) = %d, expected 0", n)
	}
	if !o.AnyOccupied([]Coord{C(9, 9), C(5, 1)}) {
		t.Error("AnyOccupied() = false, expected true")
	}
	if o.AnyOccupied([]Coord{C(9, 9), C(4, 4)}) {
		t.Error("AnyOccupied() = true, expected false")
	}

	want := []Coord{C(5, 1), C(0, 3), C(2, 3)}
	got := o.Coords()
	if len(got) != len(want) {
		t.Fatalf("Coords() len = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Coords()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestOccupancyClear(t *testing.T) {
	o := NewOccupancy()
	o.Set(C(0, 0), ColorRed)
	o.Set(C(3, 2), ColorBlue)

	o.Clear()
	if o.Len() != 0 || o.Occupied(C(3, 2)) {
		t.Errorf("Len() after Clear = %d, expected 0", o.Len())
	}
}
