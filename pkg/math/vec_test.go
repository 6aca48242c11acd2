package math

import (
	"testing"
)

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -10, 4}
	got := a.Lerp(b, 0.5)
	want := Vec3{5, -5, 2}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestVec3DistanceSq(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 6, 3}
	if got := a.DistanceSq(b); got != 25 {
		t.Errorf("Vec3.DistanceSq() = %v, want 25", got)
	}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Vec3.Distance() = %v, want 5", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Vec3.Normalize() = %v, want zero", got)
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		x, lo, hi, want int
	}{
		{5, 0, 3, 3},
		{-1, 0, 3, 0},
		{2, 0, 3, 2},
		{2, 0, -1, 0},
	}
	for _, tt := range tests {
		if got := ClampInt(tt.x, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClampInt(%d, %d, %d) = %d, want %d", tt.x, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestBox3ClosestPoint(t *testing.T) {
	b := BoxFromCenter(Vec3{0, 0, 0}, Vec3{2, 2, 2})

	if got := b.DistanceTo(Vec3{0, 0, 0}); got != 0 {
		t.Errorf("DistanceTo(inside) = %v, want 0", got)
	}
	if got := b.DistanceTo(Vec3{4, 0, 0}); got != 3 {
		t.Errorf("DistanceTo(+x) = %v, want 3", got)
	}
	want := Vec3{1, 1, -1}
	if got := b.ClosestPoint(Vec3{5, 5, -5}); got != want {
		t.Errorf("ClosestPoint() = %v, want %v", got, want)
	}
}

func TestBox3Union(t *testing.T) {
	a := Box3{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	b := Box3{Min: Vec3{-1, 0.5, 2}, Max: Vec3{0.5, 3, 4}}
	got := a.Union(b)
	want := Box3{Min: Vec3{-1, 0, 0}, Max: Vec3{1, 3, 4}}
	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
	if c := got.Center(); c != (Vec3{0, 1.5, 2}) {
		t.Errorf("Center() = %v, want {0 1.5 2}", c)
	}
}
