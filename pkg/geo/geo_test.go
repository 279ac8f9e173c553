package geo

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// --- Point2D tests ---

func TestPointDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if !approxEqual(a.Distance(b), 5.0, tolerance) {
		t.Errorf("expected distance 5.0, got %f", a.Distance(b))
	}
}

func TestPointEqAndKey(t *testing.T) {
	a := Pt(100, 200)
	b := Pt(100+1e-9, 200-1e-9)
	if !a.Eq(b) {
		t.Error("points within epsilon should be equal")
	}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %v vs %v", a.Key(), b.Key())
	}
	if a.Eq(Pt(100.1, 200)) {
		t.Error("points 0.1 apart should differ")
	}
}

func TestPointLess(t *testing.T) {
	if !Pt(1, 5).Less(Pt(2, 0)) {
		t.Error("x should order first")
	}
	if !Pt(1, 0).Less(Pt(1, 5)) {
		t.Error("y should break x ties")
	}
	if Pt(1, 1).Less(Pt(1, 1)) {
		t.Error("a point is not less than itself")
	}
}

// --- Rect tests ---

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", R(2, 2, 3, 3), true},
		{"partial", R(5, 5, 10, 10), true},
		{"touching edge", R(10, 0, 5, 10), false},
		{"touching corner", R(10, 10, 5, 5), false},
		{"disjoint", R(20, 20, 1, 1), false},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Overlaps(a); got != tt.want {
			t.Errorf("%s: Overlaps not symmetric", tt.name)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := R(0, 0, 100, 50)
	if !r.ContainsRect(R(0, 0, 100, 50)) {
		t.Error("rect should contain itself")
	}
	if r.ContainsRect(R(90, 10, 20, 10)) {
		t.Error("rect exiting the right edge should not be contained")
	}
	if !r.ContainsPoint(Pt(100, 50)) {
		t.Error("corner point should be contained")
	}
}

func TestRectInsetAndIntersect(t *testing.T) {
	r := R(0, 0, 100, 100).Inset(10, 5, 10, 5)
	if r != R(10, 5, 80, 90) {
		t.Errorf("Inset = %+v", r)
	}
	if !R(0, 0, 4, 4).Inset(3, 3, 3, 3).IsEmpty() {
		t.Error("over-inset rect should be empty")
	}
	got := R(0, 0, 10, 10).Intersect(R(5, 5, 10, 10))
	if got != R(5, 5, 5, 5) {
		t.Errorf("Intersect = %+v", got)
	}
	if !R(0, 0, 1, 1).Intersect(R(2, 2, 1, 1)).IsEmpty() {
		t.Error("disjoint intersect should be empty")
	}
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(Pt(10, 0), Pt(0, 20))
	if r != R(0, 0, 10, 20) {
		t.Errorf("RectFromCorners = %+v", r)
	}
	if !approxEqual(r.Area(), 200, tolerance) {
		t.Errorf("Area = %f", r.Area())
	}
}

// --- hashing tests ---

func TestCellHashDeterministic(t *testing.T) {
	a := CellHash(3, 7, 42, SaltZone)
	b := CellHash(3, 7, 42, SaltZone)
	if a != b {
		t.Fatal("same inputs must hash identically")
	}
	if a == CellHash(7, 3, 42, SaltZone) {
		t.Error("swapped coordinates should hash differently")
	}
	if a == CellHash(3, 7, 43, SaltZone) {
		t.Error("different seed should hash differently")
	}
	if a == CellHash(3, 7, 42, SaltFloors) {
		t.Error("different salt should hash differently")
	}
}

func TestHashRanges(t *testing.T) {
	for i := int64(0); i < 500; i++ {
		h := CellHash(i, -i, 1, SaltFloors)
		if u := UnitFloat(h); u < 0 || u >= 1 {
			t.Fatalf("UnitFloat = %f out of range", u)
		}
		if n := IntRange(h, 2, 5); n < 2 || n > 5 {
			t.Fatalf("IntRange = %d out of [2,5]", n)
		}
		if f := FloatRange(h, 8, 15); f < 8 || f > 15 || f != math.Floor(f) {
			t.Fatalf("FloatRange = %f, want whole metres in [8,15]", f)
		}
	}
	if IntRange(123, 4, 4) != 4 {
		t.Error("degenerate range should return lo")
	}
}
