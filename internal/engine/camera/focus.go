package camera

import "github.com/Faultbox/shelfview/pkg/math"

// Offset shifts every focus target, letting an embedding page recentre the
// view inside a cropped viewport.
type Offset struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// FocusConfig controls how far the camera stands from what it focuses on.
// Distances are measured along +Z (the front of the warehouse), elevations
// along +Y.
type FocusConfig struct {
	GroupDistance  float32 `yaml:"group_distance"` // times the group's largest extent
	GroupMargin    float32 `yaml:"group_margin"`
	GroupElevation float32 `yaml:"group_elevation"` // times the group's largest extent

	ShelfDistance  float32 `yaml:"shelf_distance"`
	ShelfElevation float32 `yaml:"shelf_elevation"`

	FloorDistance  float32 `yaml:"floor_distance"` // times the floor's largest extent
	FloorMargin    float32 `yaml:"floor_margin"`
	FloorElevation float32 `yaml:"floor_elevation"` // times the floor's largest extent
}

// DefaultFocusConfig returns the standard framing.
func DefaultFocusConfig() FocusConfig {
	return FocusConfig{
		GroupDistance:  1.5,
		GroupMargin:    3,
		GroupElevation: 0.6,
		ShelfDistance:  6.5,
		ShelfElevation: 1.5,
		FloorDistance:  0.9,
		FloorMargin:    6,
		FloorElevation: 0.8,
	}
}

func (o Offset) apply(pos, lookAt math.Vec3) (math.Vec3, math.Vec3) {
	shift := math.Vec3{X: o.X, Y: o.Y}
	return pos.Add(shift), lookAt.Add(shift)
}

func largest(v math.Vec3) float32 {
	return max(v.X, v.Y, v.Z)
}

// FocusGroup frames a whole group box.
func (c FocusConfig) FocusGroup(box math.Box3, off Offset) (pos, lookAt math.Vec3) {
	lookAt = box.Center()
	span := largest(box.Size())
	pos = lookAt.Add(math.Vec3{
		Y: span * c.GroupElevation,
		Z: box.Size().Z/2 + span*c.GroupDistance + c.GroupMargin,
	})
	return off.apply(pos, lookAt)
}

// FocusShelf frames a single shelf cell.
func (c FocusConfig) FocusShelf(center math.Vec3, off Offset) (pos, lookAt math.Vec3) {
	lookAt = center
	pos = center.Add(math.Vec3{Y: c.ShelfElevation, Z: c.ShelfDistance})
	return off.apply(pos, lookAt)
}

// FocusFloor frames an entire floor from the front, looking at the middle
// of its ground plane.
func (c FocusConfig) FocusFloor(box math.Box3, off Offset) (pos, lookAt math.Vec3) {
	center := box.Center()
	lookAt = math.Vec3{X: center.X, Y: box.Min.Y, Z: center.Z}
	size := box.Size()
	span := max(size.X, size.Z)
	pos = lookAt.Add(math.Vec3{
		Y: span*c.FloorElevation + size.Y,
		Z: span*c.FloorDistance + c.FloorMargin,
	})
	return off.apply(pos, lookAt)
}
