// Package camera provides the warehouse view camera: a position plus an
// orbit target, mouse orbit controls, WASD free movement and smooth
// transitions between focus points.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/shelfview/pkg/math"
)

var up = math.Vec3{Y: 1}

// Rig is the live camera state shared by every controller.
type Rig struct {
	Position math.Vec3
	Target   math.Vec3 // orbit centre and look-at point

	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// NewRig creates a rig looking at the origin from the front.
func NewRig() *Rig {
	return &Rig{
		Position: math.Vec3{X: 0, Y: 10, Z: 15},
		FOV:      50,
		Near:     0.1,
		Far:      1000,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (r *Rig) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(r.Position.Array(), r.Target.Array(), up.Array())
}

// ProjectionMatrix returns a perspective projection for the given aspect ratio.
func (r *Rig) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(r.FOV), aspect, r.Near, r.Far)
}

// Forward returns the viewing direction projected on the XZ plane.
func (r *Rig) Forward() math.Vec3 {
	d := r.Target.Sub(r.Position)
	d.Y = 0
	if d.LengthSq() == 0 {
		return math.Vec3{Z: -1}
	}
	return d.Normalize()
}

// Right returns the horizontal direction to the right of Forward.
func (r *Rig) Right() math.Vec3 {
	f := r.Forward()
	return math.Vec3{X: -f.Z, Z: f.X}
}

// OrbitControls turns and zooms the rig around its target.
type OrbitControls struct {
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitControls creates orbit controls with default settings.
func NewOrbitControls() *OrbitControls {
	return &OrbitControls{
		MinDistance:     0.5,
		MaxDistance:     500,
		MinPitch:        -1.4,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// spherical decomposes the rig offset into distance, pitch and yaw.
func spherical(offset math.Vec3) (dist, pitch, yaw float32) {
	dist = offset.Length()
	if dist == 0 {
		return 0, 0, 0
	}
	pitch = float32(gomath.Asin(float64(offset.Y / dist)))
	yaw = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	return dist, pitch, yaw
}

func fromSpherical(dist, pitch, yaw float32) math.Vec3 {
	cp := float32(gomath.Cos(float64(pitch)))
	return math.Vec3{
		X: dist * cp * float32(gomath.Sin(float64(yaw))),
		Y: dist * float32(gomath.Sin(float64(pitch))),
		Z: dist * cp * float32(gomath.Cos(float64(yaw))),
	}
}

// HandleDrag rotates the rig around its target by a mouse drag delta.
func (o *OrbitControls) HandleDrag(r *Rig, deltaX, deltaY float32) {
	dist, pitch, yaw := spherical(r.Position.Sub(r.Target))
	if dist == 0 {
		return
	}
	yaw -= deltaX * o.DragSensitivity
	pitch = math.Clamp(pitch+deltaY*o.DragSensitivity, o.MinPitch, o.MaxPitch)
	r.Position = r.Target.Add(fromSpherical(dist, pitch, yaw))
}

// HandleZoom moves the rig toward or away from its target by a scroll delta.
func (o *OrbitControls) HandleZoom(r *Rig, delta float32) {
	dist, pitch, yaw := spherical(r.Position.Sub(r.Target))
	if dist == 0 {
		return
	}
	dist -= delta * dist * o.ZoomSensitivity
	dist = math.Clamp(dist, o.MinDistance, o.MaxDistance)
	r.Position = r.Target.Add(fromSpherical(dist, pitch, yaw))
}
