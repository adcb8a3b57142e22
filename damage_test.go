package tableau

import "testing"

func TestDamageInvalidate(t *testing.T) {
	var d Damage
	if !d.IsEmpty() {
		t.Fatal("zero damage should be empty")
	}
	d.Invalidate(Box{X2: 10, Y2: 10}, 4)
	d.Invalidate(Box{X1: 2, Y1: 2, X2: 5, Y2: 5}, 4) // contained
	d.Invalidate(Box{X1: 5, Y1: 5, X2: 5, Y2: 9}, 4) // empty
	d.Invalidate(Box{X1: 20, Y1: 20, X2: 30, Y2: 30}, 4)

	if got := len(d.Boxes()); got != 2 {
		t.Fatalf("boxes = %v, want 2", d.Boxes())
	}
	assertBox(t, "bounds", d.Bounds(Box{X2: 100, Y2: 100}), Box{X2: 30, Y2: 30})
	assertBox(t, "bounds clipped", d.Bounds(Box{X2: 25, Y2: 25}), Box{X2: 25, Y2: 25})
}

func TestDamageOverflowIsFull(t *testing.T) {
	var d Damage
	for i := 0; i < 3; i++ {
		x := float64(i * 20)
		d.Invalidate(Box{X1: x, X2: x + 10, Y2: 10}, 2)
	}
	if !d.IsFull() || d.Boxes() != nil {
		t.Errorf("damage = %+v, want full", d)
	}
	d.Invalidate(Box{X2: 1, Y2: 1}, 2)
	if !d.IsFull() {
		t.Error("full damage must stay full")
	}
	assertBox(t, "full bounds", d.Bounds(Box{X2: 50, Y2: 40}), Box{X2: 50, Y2: 40})
}

func TestDamageClear(t *testing.T) {
	var d Damage
	d.InvalidateAll()
	d.Clear()
	if !d.IsEmpty() || d.IsFull() {
		t.Error("Clear must reset the damage")
	}
	d.Invalidate(Box{X2: 1, Y2: 1}, 4)
	c := d.clone()
	d.Clear()
	if len(c.Boxes()) != 1 {
		t.Error("clone must not share boxes with the original")
	}
}
