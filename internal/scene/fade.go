package scene

import (
	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/pkg/math"
)

// FadeRule maps a camera distance to an opacity. At Far and beyond an object
// is opaque; at Near and closer it is drawn at MinOpacity; in between the
// opacity ramps linearly. Independently, the object stops reacting to hover
// and clicks once the camera is closer than InteractBelow.
type FadeRule struct {
	Far           float32 `yaml:"far"`
	Near          float32 `yaml:"near"`
	MinOpacity    float32 `yaml:"min_opacity"`
	InteractBelow float32 `yaml:"interact_below"`
}

// Opacity returns the opacity at distance d.
func (r FadeRule) Opacity(d float32) float32 {
	if d >= r.Far {
		return 1
	}
	if d <= r.Near || r.Far <= r.Near {
		return r.MinOpacity
	}
	t := (d - r.Near) / (r.Far - r.Near)
	return r.MinOpacity + (1-r.MinOpacity)*t
}

// Interactive reports whether an object at distance d accepts input.
func (r FadeRule) Interactive(d float32) bool {
	return d >= r.InteractBelow
}

// FadeConfig configures near-camera fading. Group distances are measured to
// the nearest point of the group box, shelf distances to the shelf centre.
type FadeConfig struct {
	Group   FadeRule `yaml:"group"`
	Shelf   FadeRule `yaml:"shelf"`
	Epsilon float32  `yaml:"epsilon"` // camera movement ignored below this distance
}

// DefaultFadeConfig returns the standard thresholds.
func DefaultFadeConfig() FadeConfig {
	return FadeConfig{
		Group:   FadeRule{Far: 3.0, Near: 1.5, MinOpacity: 0.15, InteractBelow: 1.0},
		Shelf:   FadeRule{Far: 5.75, Near: 5.5, MinOpacity: 0.15, InteractBelow: 5.25},
		Epsilon: 0.001,
	}
}

// Fade is the visual state of one object.
type Fade struct {
	Opacity     float32
	Interactive bool
}

var opaque = Fade{Opacity: 1, Interactive: true}

type groupFade struct {
	group  Fade
	shelfs []Fade // indexed by shelfIndex
}

// FadeTracker caches per-object fade state and recomputes it only when the
// camera moves further than the configured epsilon.
type FadeTracker struct {
	cfg    FadeConfig
	scene  *Scene
	state  [][]groupFade
	camera math.Vec3
	valid  bool
}

// NewFadeTracker creates a tracker for s. Until the first Update every
// object is opaque and interactive.
func NewFadeTracker(s *Scene, cfg FadeConfig) *FadeTracker {
	t := &FadeTracker{cfg: cfg}
	t.SetScene(s)
	return t
}

// SetScene swaps the tracked scene and forces a recompute on the next Update.
func (t *FadeTracker) SetScene(s *Scene) {
	t.scene = s
	t.state = nil
	t.valid = false
	if s == nil {
		return
	}
	t.state = make([][]groupFade, len(s.Floors))
	for fi, f := range s.Floors {
		t.state[fi] = make([]groupFade, len(f.Groups))
		for gi, g := range f.Groups {
			shelfs := make([]Fade, g.Group.Cells())
			for i := range shelfs {
				shelfs[i] = opaque
			}
			t.state[fi][gi] = groupFade{group: opaque, shelfs: shelfs}
		}
	}
}

// Invalidate forces a recompute on the next Update.
func (t *FadeTracker) Invalidate() {
	t.valid = false
}

// Update recomputes fade state for a camera at pos. It returns true when
// any opacity or interactivity flag changed.
func (t *FadeTracker) Update(pos math.Vec3) bool {
	eps := t.cfg.Epsilon
	if t.valid && pos.DistanceSq(t.camera) <= eps*eps {
		return false
	}
	t.camera = pos
	t.valid = true

	changed := false
	if t.scene == nil {
		return false
	}
	for fi := range t.scene.Floors {
		for gi := range t.scene.Floors[fi].Groups {
			g := &t.scene.Floors[fi].Groups[gi]
			st := &t.state[fi][gi]

			d := g.Bounds.DistanceTo(pos)
			next := Fade{Opacity: t.cfg.Group.Opacity(d), Interactive: t.cfg.Group.Interactive(d)}
			if next != st.group {
				st.group = next
				changed = true
			}

			g.EachShelf(func(row, col, depth int) {
				sd := g.ShelfCenter(row, col, depth).Distance(pos)
				next := Fade{Opacity: t.cfg.Shelf.Opacity(sd), Interactive: t.cfg.Shelf.Interactive(sd)}
				idx := shelfIndex(g, row, col, depth)
				if next != st.shelfs[idx] {
					st.shelfs[idx] = next
					changed = true
				}
			})
		}
	}
	return changed
}

// Group returns the fade state of a group. Unknown groups are opaque.
func (t *FadeTracker) Group(floor, id int) Fade {
	if st, ok := t.groupState(floor, id); ok {
		return st.group
	}
	return opaque
}

// Shelf returns the fade state of a shelf cell. Unknown cells are opaque.
func (t *FadeTracker) Shelf(loc shelf.Location) Fade {
	st, ok := t.groupState(loc.Floor, loc.GroupID)
	if !ok {
		return opaque
	}
	g, _ := t.scene.GroupOf(loc)
	if !g.ValidCell(loc.GroupRow, loc.GroupColumn, loc.Depth()) {
		return opaque
	}
	return st.shelfs[shelfIndex(g, loc.GroupRow, loc.GroupColumn, loc.Depth())]
}

func (t *FadeTracker) groupState(floor, id int) (*groupFade, bool) {
	if floor < 0 || floor >= len(t.state) || id < 0 || id >= len(t.state[floor]) {
		return nil, false
	}
	return &t.state[floor][id], true
}

func shelfIndex(g *Group, row, col, depth int) int {
	return (row*g.Group.Width+col)*g.Group.Depth + depth
}
