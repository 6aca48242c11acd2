package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/shelfview/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestAnimatorIdleOnArrival(t *testing.T) {
	rig := NewRig()
	a := NewAnimator()

	target := math.Vec3{X: 4, Y: 2, Z: -3}
	lookAt := math.Vec3{X: 1, Y: 0, Z: 1}
	a.AnimateTo(target, lookAt)
	if !a.Active() {
		t.Fatal("Active() = false right after AnimateTo")
	}

	frames := 0
	for a.Active() {
		if !a.Update(rig) {
			t.Fatal("Update() reported no movement while active")
		}
		frames++
		if frames > 10000 {
			t.Fatal("animation never completed")
		}
	}
	if rig.Position.DistanceSq(target) >= a.Epsilon || rig.Target.DistanceSq(lookAt) >= a.Epsilon {
		t.Errorf("stopped at %v / %v, not within epsilon of %v / %v", rig.Position, rig.Target, target, lookAt)
	}

	settled := *rig
	for i := 0; i < 10; i++ {
		if a.Update(rig) {
			t.Fatal("Update() moved the camera after arrival")
		}
	}
	if rig.Position != settled.Position || rig.Target != settled.Target {
		t.Errorf("camera drifted after arrival: %v -> %v", settled.Position, rig.Position)
	}
}

func TestAnimatorLerpStep(t *testing.T) {
	rig := &Rig{}
	a := NewAnimator()
	a.AnimateTo(math.Vec3{X: 100}, math.Vec3{Z: 100})
	a.Update(rig)
	if !approx(rig.Position.X, 5) || !approx(rig.Target.Z, 5) {
		t.Errorf("after one frame = %v / %v, want 5%% of the way", rig.Position, rig.Target)
	}
}

func TestAnimatorRetarget(t *testing.T) {
	rig := &Rig{}
	a := NewAnimator()
	a.AnimateTo(math.Vec3{X: 100}, math.Vec3{})
	a.Update(rig)

	a.AnimateTo(math.Vec3{X: -100}, math.Vec3{})
	before := rig.Position.X
	a.Update(rig)
	if rig.Position.X >= before {
		t.Errorf("retargeted animation kept moving toward the old target: %v -> %v", before, rig.Position.X)
	}
	if p, _, _ := a.Targets(); p.X != -100 {
		t.Errorf("Targets() = %v, want the latest target", p)
	}
}

func TestAnimatorCancel(t *testing.T) {
	rig := &Rig{}
	a := NewAnimator()
	a.AnimateTo(math.Vec3{X: 1}, math.Vec3{})
	a.Cancel()
	if a.Update(rig) {
		t.Error("Update() after Cancel moved the camera")
	}
}

func TestFreeLookMovesRigAndTarget(t *testing.T) {
	rig := &Rig{Position: math.Vec3{Z: 10}, Target: math.Vec3{}}
	f := NewFreeLook()

	moved := f.Apply(rig, HeldKeys{W: true}.Movement(), 1)
	if !moved {
		t.Fatal("Apply() = false with W held")
	}
	if !approx(rig.Position.Z, 5) || !approx(rig.Target.Z, -5) {
		t.Errorf("after W: position %v target %v, want both moved 5 along -Z", rig.Position, rig.Target)
	}

	f.Apply(rig, HeldKeys{D: true}.Movement(), 1)
	if !approx(rig.Position.X, 5) {
		t.Errorf("after D: position %v, want X = 5", rig.Position)
	}

	f.Apply(rig, HeldKeys{Q: true}.Movement(), 0.5)
	if !approx(rig.Position.Y, -2.5) {
		t.Errorf("after Q: position %v, want Y = -2.5", rig.Position)
	}

	if f.Apply(rig, HeldKeys{}.Movement(), 1) {
		t.Error("Apply() with no keys reported movement")
	}
	if (HeldKeys{W: true, S: true}).Movement().Forward != 0 {
		t.Error("opposite keys should cancel")
	}
}

func TestOrbitDragKeepsDistance(t *testing.T) {
	rig := &Rig{Position: math.Vec3{Y: 3, Z: 4}, Target: math.Vec3{}}
	o := NewOrbitControls()

	o.HandleDrag(rig, 120, -40)
	if d := rig.Position.Distance(rig.Target); !approx(d, 5) {
		t.Errorf("distance after drag = %v, want 5", d)
	}
	if rig.Position.X == 0 {
		t.Error("horizontal drag did not rotate the camera")
	}
}

func TestOrbitZoomClamps(t *testing.T) {
	rig := &Rig{Position: math.Vec3{Z: 10}}
	o := NewOrbitControls()

	o.HandleZoom(rig, 1)
	if d := rig.Position.Length(); !approx(d, 9) {
		t.Errorf("distance after zoom = %v, want 9", d)
	}
	for i := 0; i < 200; i++ {
		o.HandleZoom(rig, 5)
	}
	if d := rig.Position.Length(); d < o.MinDistance-1e-4 {
		t.Errorf("distance %v below minimum %v", d, o.MinDistance)
	}
}

func TestFocusTargets(t *testing.T) {
	cfg := DefaultFocusConfig()
	box := math.BoxFromCenter(math.Vec3{X: 2, Y: 1.5, Z: 0}, math.Vec3{X: 2, Y: 3, Z: 2})

	pos, look := cfg.FocusGroup(box, Offset{})
	if look != box.Center() {
		t.Errorf("FocusGroup look-at = %v, want centre %v", look, box.Center())
	}
	if pos.Z <= box.Max.Z || pos.Y <= look.Y {
		t.Errorf("FocusGroup position %v should be in front of and above the group", pos)
	}

	pos2, look2 := cfg.FocusGroup(box, Offset{X: 1, Y: -2})
	if !approx(pos2.X-pos.X, 1) || !approx(look2.Y-look.Y, -2) {
		t.Errorf("offset not applied: %v/%v vs %v/%v", pos2, look2, pos, look)
	}

	shelfPos, shelfLook := cfg.FocusShelf(math.Vec3{X: 1}, Offset{})
	if d := shelfPos.Distance(shelfLook); d < 5.75 {
		t.Errorf("FocusShelf distance %v would fade the focused shelf", d)
	}

	floor := math.Box3{Min: math.Vec3{X: -5, Y: 3, Z: -4}, Max: math.Vec3{X: 5, Y: 6, Z: 4}}
	fpos, flook := cfg.FocusFloor(floor, Offset{})
	if flook != (math.Vec3{X: 0, Y: 3, Z: 0}) {
		t.Errorf("FocusFloor look-at = %v, want floor ground centre", flook)
	}
	if fpos.Z <= floor.Max.Z || fpos.Y <= floor.Max.Y {
		t.Errorf("FocusFloor position %v should view the floor from the front and above", fpos)
	}
}

func TestRigDirections(t *testing.T) {
	rig := &Rig{Position: math.Vec3{Y: 5, Z: 10}}
	f := rig.Forward()
	if !approx(f.Z, -1) || f.Y != 0 {
		t.Errorf("Forward() = %v, want (0,0,-1)", f)
	}
	r := rig.Right()
	if !approx(r.X, 1) {
		t.Errorf("Right() = %v, want (1,0,0)", r)
	}
	same := &Rig{}
	if same.Forward() != (math.Vec3{Z: -1}) {
		t.Error("Forward() of a degenerate rig should default to -Z")
	}
}
