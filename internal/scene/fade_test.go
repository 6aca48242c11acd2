package scene

import (
	"testing"

	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/pkg/math"
)

func TestFadeRuleOpacity(t *testing.T) {
	r := FadeRule{Far: 3, Near: 1.5, MinOpacity: 0.2, InteractBelow: 1}
	tests := []struct {
		d, want float32
	}{
		{10, 1},
		{3, 1},
		{2.25, 0.6},
		{1.5, 0.2},
		{0, 0.2},
	}
	for _, tt := range tests {
		if got := r.Opacity(tt.d); !near(got, tt.want) {
			t.Errorf("Opacity(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
	if r.Interactive(0.5) {
		t.Error("Interactive(0.5) = true, want false")
	}
	if !r.Interactive(1.2) {
		t.Error("Interactive(1.2) = false, want true; interactivity is independent of opacity")
	}
}

func TestFadeTrackerFarCameraKeepsOpaque(t *testing.T) {
	s := Build(twoFloors(), nil, DefaultConfig())
	tr := NewFadeTracker(s, DefaultFadeConfig())

	if tr.Update(math.Vec3{Z: 100}) {
		t.Error("Update() reported a change for a distant camera")
	}
	if f := tr.Group(0, 0); f.Opacity != 1 || !f.Interactive {
		t.Errorf("Group(0,0) = %+v, want opaque", f)
	}
}

func TestFadeTrackerNearCamera(t *testing.T) {
	s := Build(twoFloors(), nil, DefaultConfig())
	cfg := DefaultFadeConfig()
	tr := NewFadeTracker(s, cfg)

	inside := math.Vec3{X: -1, Y: 1.5, Z: -0.5}
	if !tr.Update(inside) {
		t.Fatal("Update() reported no change with the camera inside a group")
	}
	g := tr.Group(0, 0)
	if g.Opacity != cfg.Group.MinOpacity || g.Interactive {
		t.Errorf("Group(0,0) = %+v, want faded and disabled", g)
	}
	sh := tr.Shelf(shelf.At(0, 0, 2, 0, 0))
	if sh.Opacity != cfg.Shelf.MinOpacity || sh.Interactive {
		t.Errorf("Shelf() = %+v, want faded and disabled", sh)
	}

	// Movements below epsilon are ignored.
	if tr.Update(inside.Add(math.Vec3{X: cfg.Epsilon / 10})) {
		t.Error("Update() recomputed for a sub-epsilon move")
	}

	// Moving away restores the original state.
	if !tr.Update(math.Vec3{Z: 100}) {
		t.Error("Update() reported no change after moving away")
	}
	if f := tr.Group(0, 0); f.Opacity != 1 {
		t.Errorf("Group(0,0).Opacity = %v, want 1", f.Opacity)
	}
}

func TestFadeTrackerUnknownObjectsOpaque(t *testing.T) {
	tr := NewFadeTracker(Build(twoFloors(), nil, DefaultConfig()), DefaultFadeConfig())
	if f := tr.Group(9, 9); f != opaque {
		t.Errorf("Group(unknown) = %+v", f)
	}
	if f := tr.Shelf(shelf.At(0, 0, 99, 0, 0)); f != opaque {
		t.Errorf("Shelf(out of range) = %+v", f)
	}
}
