package scene

import (
	"github.com/Faultbox/shelfview/internal/engine/picking"
	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/pkg/math"
)

// PickShelf returns the nearest shelf cell hit by the ray. Groups and
// shelves the fade tracker marks non-interactive are skipped, so the camera
// can click through structures it is standing inside. fade may be nil.
func (s *Scene) PickShelf(ray picking.Ray, fade *FadeTracker) (shelf.Location, bool) {
	var (
		best     shelf.Location
		bestDist float32
		found    bool
	)

	for fi := range s.Floors {
		for gi := range s.Floors[fi].Groups {
			g := &s.Floors[fi].Groups[gi]
			if fade != nil && !fade.Group(fi, gi).Interactive {
				continue
			}
			if _, hit := ray.IntersectBox(g.Bounds); !hit {
				continue
			}

			g.EachShelf(func(row, col, depth int) {
				loc := g.Location(row, col, depth)
				if fade != nil && !fade.Shelf(loc).Interactive {
					return
				}
				t, hit := ray.IntersectBox(g.ShelfBounds(row, col, depth))
				if hit && (!found || t < bestDist) {
					best, bestDist, found = loc, t, true
				}
			})
		}
	}
	return best, found
}

// PickFloor returns the floor whose slab top the ray crosses first.
func (s *Scene) PickFloor(ray picking.Ray) (int, bool) {
	bestFloor := -1
	var bestDist float32
	for i, f := range s.Floors {
		slab := math.Box3{
			Min: math.Vec3{X: f.Bounds.Min.X, Y: f.YOffset - s.Config.FloorThickness, Z: f.Bounds.Min.Z},
			Max: math.Vec3{X: f.Bounds.Max.X, Y: f.YOffset, Z: f.Bounds.Max.Z},
		}
		if t, hit := ray.IntersectBox(slab); hit && (bestFloor < 0 || t < bestDist) {
			bestFloor, bestDist = i, t
		}
	}
	return bestFloor, bestFloor >= 0
}
