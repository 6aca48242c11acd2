package camera

// HeldKeys is the state of the free-movement keys.
type HeldKeys struct {
	W, A, S, D bool
	Q, E       bool
}

// Any reports whether any movement key is held.
func (h HeldKeys) Any() bool {
	return h.W || h.A || h.S || h.D || h.Q || h.E
}

// Movement converts held keys into axis values in [-1, 1].
func (h HeldKeys) Movement() Movement {
	var m Movement
	if h.W {
		m.Forward++
	}
	if h.S {
		m.Forward--
	}
	if h.D {
		m.Right++
	}
	if h.A {
		m.Right--
	}
	if h.E {
		m.Up++
	}
	if h.Q {
		m.Up--
	}
	return m
}

// Movement is a requested free-movement direction.
type Movement struct {
	Forward, Right, Up float32
}

// IsZero reports whether the movement is empty.
func (m Movement) IsZero() bool {
	return m.Forward == 0 && m.Right == 0 && m.Up == 0
}

// FreeLook moves the rig and its target together, so the view direction
// is preserved.
type FreeLook struct {
	Speed float32 // world units per second
}

// NewFreeLook creates free movement with the default speed.
func NewFreeLook() *FreeLook {
	return &FreeLook{Speed: 5}
}

// Apply moves the rig for dt seconds and reports whether it moved.
func (f *FreeLook) Apply(r *Rig, m Movement, dt float32) bool {
	if m.IsZero() || dt <= 0 {
		return false
	}
	step := r.Forward().Scale(m.Forward).
		Add(r.Right().Scale(m.Right)).
		Add(up.Scale(m.Up))
	delta := step.Scale(f.Speed * dt)
	r.Position = r.Position.Add(delta)
	r.Target = r.Target.Add(delta)
	return true
}
