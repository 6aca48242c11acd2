package camera

import "github.com/Faultbox/shelfview/pkg/math"

// Animator glides a rig toward a target position and look-at point. Each
// Update moves both a fixed fraction of the remaining way. There is at most
// one transition at a time: AnimateTo replaces any pending target.
//
// One Animator belongs to one view. Controls outside the view that want to
// move the camera receive the same *Animator.
type Animator struct {
	Damping float32 // fraction of the remaining distance covered per frame
	Epsilon float32 // squared distance at which a transition is complete

	position math.Vec3
	lookAt   math.Vec3
	active   bool
}

// NewAnimator creates an idle animator with default damping.
func NewAnimator() *Animator {
	return &Animator{Damping: 0.05, Epsilon: 0.01}
}

// AnimateTo starts a transition, discarding any transition in progress.
func (a *Animator) AnimateTo(position, lookAt math.Vec3) {
	a.position = position
	a.lookAt = lookAt
	a.active = true
}

// Active reports whether a transition is in progress.
func (a *Animator) Active() bool {
	return a.active
}

// Targets returns the pending transition targets.
func (a *Animator) Targets() (position, lookAt math.Vec3, ok bool) {
	return a.position, a.lookAt, a.active
}

// Cancel stops the transition where it is.
func (a *Animator) Cancel() {
	a.active = false
}

// Update advances the transition by one frame and reports whether the rig
// moved. The animator goes idle once both the position and the look-at
// point are within Epsilon (squared) of their targets.
func (a *Animator) Update(r *Rig) bool {
	if !a.active {
		return false
	}
	r.Position = r.Position.Lerp(a.position, a.Damping)
	r.Target = r.Target.Lerp(a.lookAt, a.Damping)

	if r.Position.DistanceSq(a.position) < a.Epsilon && r.Target.DistanceSq(a.lookAt) < a.Epsilon {
		a.active = false
	}
	return true
}
