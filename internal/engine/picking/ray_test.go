package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/shelfview/pkg/math"
)

func unitBox(center math.Vec3) math.Box3 {
	return math.BoxFromCenter(center, math.Vec3{X: 1, Y: 1, Z: 1})
}

func TestIntersectBoxHit(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 0, Y: 0, Z: 10}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}}
	got, hit := r.IntersectBox(unitBox(math.Vec3{}))
	if !hit {
		t.Fatal("IntersectBox() hit = false, want true")
	}
	if got < 9.49 || got > 9.51 {
		t.Errorf("IntersectBox() t = %v, want 9.5", got)
	}
}

func TestIntersectBoxMissAndBehind(t *testing.T) {
	miss := Ray{Origin: math.Vec3{X: 3, Y: 0, Z: 10}, Direction: math.Vec3{X: 0, Y: 0, Z: -1}}
	if _, hit := miss.IntersectBox(unitBox(math.Vec3{})); hit {
		t.Error("parallel offset ray should miss")
	}
	behind := Ray{Origin: math.Vec3{X: 0, Y: 0, Z: 10}, Direction: math.Vec3{X: 0, Y: 0, Z: 1}}
	if _, hit := behind.IntersectBox(unitBox(math.Vec3{})); hit {
		t.Error("box behind the origin should not be hit")
	}
}

func TestIntersectBoxFromInside(t *testing.T) {
	r := Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}
	got, hit := r.IntersectBox(unitBox(math.Vec3{}))
	if !hit || got < 0.49 || got > 0.51 {
		t.Errorf("IntersectBox(inside) = %v, %v; want exit at 0.5", got, hit)
	}
}

func TestNearest(t *testing.T) {
	boxes := []math.Box3{
		unitBox(math.Vec3{Z: -5}),
		unitBox(math.Vec3{Z: -2}),
		unitBox(math.Vec3{Z: 0}),
	}
	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}

	idx, _, ok := r.Nearest(len(boxes), func(i int) (math.Box3, bool) { return boxes[i], true })
	if !ok || idx != 2 {
		t.Errorf("Nearest() = %d, %v; want 2", idx, ok)
	}

	// Disabled candidates are skipped.
	idx, _, ok = r.Nearest(len(boxes), func(i int) (math.Box3, bool) { return boxes[i], i != 2 })
	if !ok || idx != 1 {
		t.Errorf("Nearest(skip 2) = %d, %v; want 1", idx, ok)
	}

	_, _, ok = r.Nearest(len(boxes), func(i int) (math.Box3, bool) { return boxes[i], false })
	if ok {
		t.Error("Nearest() with nothing pickable should report ok = false")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 10}
	view := mgl32.LookAtV(eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)

	r := ScreenToRay(400, 400, 800, 800, view, proj)
	if r.Direction.Z > -0.99 {
		t.Errorf("center ray direction = %v, want ~(0,0,-1)", r.Direction)
	}
	if _, hit := r.IntersectBox(unitBox(math.Vec3{})); !hit {
		t.Error("center ray should hit a box at the origin")
	}

	left := ScreenToRay(0, 400, 800, 800, view, proj)
	if left.Direction.X >= 0 {
		t.Errorf("left edge ray direction X = %v, want negative", left.Direction.X)
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 5, Z: 1}, Direction: math.Vec3{Y: -1}}
	x, z, ok := r.IntersectPlaneY(0)
	if !ok || x != 1 || z != 1 {
		t.Errorf("IntersectPlaneY() = %v, %v, %v", x, z, ok)
	}
	flat := Ray{Direction: math.Vec3{X: 1}}
	if _, _, ok := flat.IntersectPlaneY(0); ok {
		t.Error("parallel ray should not intersect")
	}
}
