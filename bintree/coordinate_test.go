package bintree

import "testing"

func TestOrientation(t *testing.T) {
	if !(Coordinate{X: 0, Y: 0}).IsLeft() {
		t.Fatal("x=0 should be left")
	}
	if !(Coordinate{X: 1, Y: 0}).IsRight() {
		t.Fatal("x=1 should be right")
	}
}

func TestParentAndSibling(t *testing.T) {
	c := Coordinate{X: 5, Y: 2}
	if p := c.Parent(); p != (Coordinate{X: 2, Y: 3}) {
		t.Fatalf("Parent() = %v, want (2,3)", p)
	}
	if s := c.Sibling(); s != (Coordinate{X: 4, Y: 2}) {
		t.Fatalf("Sibling() = %v, want (4,2)", s)
	}
}

func TestBottomRange(t *testing.T) {
	c := Coordinate{X: 3, Y: 2}
	min, max := c.BottomRange()
	if min != 12 || max != 15 {
		t.Fatalf("BottomRange() = [%d,%d], want [12,15]", min, max)
	}
}

func TestMaxBottomLayerNodes(t *testing.T) {
	if got := MaxBottomLayerNodes(4); got != 8 {
		t.Fatalf("MaxBottomLayerNodes(4) = %d, want 8", got)
	}
}

func TestValidateHeightBounds(t *testing.T) {
	if err := ValidateHeight(1); err == nil {
		t.Fatal("expected error for height below minimum")
	}
	if err := ValidateHeight(65); err == nil {
		t.Fatal("expected error for height above maximum")
	}
	if err := ValidateHeight(32); err != nil {
		t.Fatalf("ValidateHeight(32): %v", err)
	}
}
