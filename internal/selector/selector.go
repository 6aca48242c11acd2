// Package selector ties the warehouse scene, keyboard navigation and the
// camera together into one interactive shelf picker.
//
// A Selector owns all mutable view state: the current selection, the hovered
// shelf, the highlighted floor, fade state and the camera. It is not safe for
// concurrent use; callers drive it from a single loop (the viewer's event
// loop, or a session mutex in the HTTP service).
package selector

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/engine/camera"
	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/logger"
	"github.com/Faultbox/shelfview/internal/navigation"
	"github.com/Faultbox/shelfview/internal/scene"
	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/pkg/math"
)

// DefaultGuard is how long after an internal selection external selections
// are ignored.
const DefaultGuard = time.Second

// Toggles switches the camera transitions per kind of change.
type Toggles struct {
	Floor bool `yaml:"floor" json:"floor"`
	Group bool `yaml:"group" json:"group"`
	Shelf bool `yaml:"shelf" json:"shelf"`
}

// AllAnimations enables every transition.
func AllAnimations() Toggles {
	return Toggles{Floor: true, Group: true, Shelf: true}
}

// Options configures a Selector. Only Floors and OnSelect are required.
type Options struct {
	Floors   []layout.Floor
	OnSelect func(shelf.Location)

	// HighlightedFloor seeds the highlighted floor; nil starts on floor 0.
	// OnHighlightFloor is told about every highlight change the selector
	// makes on its own.
	HighlightedFloor *int
	OnHighlightFloor func(floor int)

	// Animate selects which changes move the camera. Nil enables all.
	Animate *Toggles

	ExternalSelection *shelf.Location
	Occupied          []shelf.Location
	CanSelectOccupied bool

	CameraOffset camera.Offset
	Palette      *Palette

	Scene scene.Config
	Fade  scene.FadeConfig
	Focus camera.FocusConfig

	// Cache shares group extraction between selectors. Optional.
	Cache *layout.Cache
	// Rig and Animator may be shared with controls outside the selector.
	// Nil creates private ones.
	Rig      *camera.Rig
	Animator *camera.Animator
	Orbit    *camera.OrbitControls
	FreeLook *camera.FreeLook

	// Now and Guard drive external-selection reconciliation.
	Now   func() time.Time
	Guard time.Duration
}

// Selector is the interactive shelf picker.
type Selector struct {
	scene *scene.Scene
	cache *layout.Cache
	nav   *navigation.Navigator
	fade  *scene.FadeTracker

	rig      *camera.Rig
	animator *camera.Animator
	orbit    *camera.OrbitControls
	freeLook *camera.FreeLook
	focus    camera.FocusConfig
	offset   camera.Offset

	palette           Palette
	occupied          shelf.Occupancy
	canSelectOccupied bool
	animate           Toggles

	onSelect         func(shelf.Location)
	onHighlightFloor func(int)

	current    shelf.Location
	hasCurrent bool
	hover      shelf.Location
	hasHover   bool
	highlight  int

	held      camera.HeldKeys
	viewportW float32
	viewportH float32

	now        func() time.Time
	guard      time.Duration
	guardUntil time.Time

	dirty bool
}

// New builds the scene from opts.Floors and returns a ready selector. The
// camera starts framing the highlighted floor. An ExternalSelection in opts
// is applied immediately.
func New(opts Options) *Selector {
	s := &Selector{
		cache:             opts.Cache,
		rig:               opts.Rig,
		animator:          opts.Animator,
		orbit:             opts.Orbit,
		freeLook:          opts.FreeLook,
		focus:             opts.Focus,
		offset:            opts.CameraOffset,
		palette:           DefaultPalette(),
		occupied:          shelf.NewOccupancy(opts.Occupied),
		canSelectOccupied: opts.CanSelectOccupied,
		animate:           AllAnimations(),
		onSelect:          opts.OnSelect,
		onHighlightFloor:  opts.OnHighlightFloor,
		now:               opts.Now,
		guard:             opts.Guard,
		viewportW:         1,
		viewportH:         1,
		dirty:             true,
	}
	if s.rig == nil {
		s.rig = camera.NewRig()
	}
	if s.animator == nil {
		s.animator = camera.NewAnimator()
	}
	if s.orbit == nil {
		s.orbit = camera.NewOrbitControls()
	}
	if s.freeLook == nil {
		s.freeLook = camera.NewFreeLook()
	}
	if s.focus == (camera.FocusConfig{}) {
		s.focus = camera.DefaultFocusConfig()
	}
	if opts.Palette != nil {
		s.palette = *opts.Palette
	}
	if opts.Animate != nil {
		s.animate = *opts.Animate
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.guard <= 0 {
		s.guard = DefaultGuard
	}
	sceneCfg := opts.Scene
	if sceneCfg == (scene.Config{}) {
		sceneCfg = scene.DefaultConfig()
	}
	fadeCfg := opts.Fade
	if fadeCfg == (scene.FadeConfig{}) {
		fadeCfg = scene.DefaultFadeConfig()
	}

	s.scene = scene.Build(opts.Floors, s.cache, sceneCfg)
	s.nav = navigation.New(s.scene)
	s.nav.SetOccupancy(s.occupied, s.canSelectOccupied)
	s.fade = scene.NewFadeTracker(s.scene, fadeCfg)

	if opts.HighlightedFloor != nil {
		s.highlight = *opts.HighlightedFloor
	}
	if pos, look, ok := s.FloorTarget(s.highlight); ok {
		s.rig.Position, s.rig.Target = pos, look
	}

	if opts.ExternalSelection != nil {
		s.Select(*opts.ExternalSelection, shelf.SourceExternal)
	}
	return s
}

// Scene returns the placed scene.
func (s *Selector) Scene() *scene.Scene { return s.scene }

// Rig returns the camera.
func (s *Selector) Rig() *camera.Rig { return s.rig }

// Animator returns the camera animator. Controls outside the selector use it
// to move the camera.
func (s *Selector) Animator() *camera.Animator { return s.animator }

// Fade returns the fade tracker.
func (s *Selector) Fade() *scene.FadeTracker { return s.fade }

// Palette returns the active colors.
func (s *Selector) Palette() Palette { return s.palette }

// Current returns the selected location, enriched with its group maxima.
func (s *Selector) Current() (shelf.Location, bool) {
	return s.current, s.hasCurrent
}

// Hover returns the shelf under the pointer.
func (s *Selector) Hover() (shelf.Location, bool) {
	return s.hover, s.hasHover
}

// HighlightedFloor returns the highlighted floor index.
func (s *Selector) HighlightedFloor() int {
	return s.highlight
}

// Animate returns the transition toggles.
func (s *Selector) Animate() Toggles {
	return s.animate
}

// SetAnimate replaces the transition toggles.
func (s *Selector) SetAnimate(t Toggles) {
	s.animate = t
}

// Occupied returns the occupancy filter in effect.
func (s *Selector) Occupied() shelf.Occupancy {
	return s.occupied
}

// CanSelectOccupied reports whether occupied cells can be selected.
func (s *Selector) CanSelectOccupied() bool {
	return s.canSelectOccupied
}

// Enrich attaches the owning group's maxima to loc and makes its depth
// explicit. Locations outside the scene keep empty maxima.
func (s *Selector) Enrich(loc shelf.Location) shelf.Location {
	out := loc.Normalize()
	f, ok := s.scene.Floor(loc.Floor)
	if !ok {
		return out
	}
	g, ok := f.Extraction.Group(loc.GroupID)
	if !ok {
		return out
	}
	out.MaxGroupID = shelf.Int(f.Extraction.MaxGroupID())
	out.MaxRow = shelf.Int(g.Rows - 1)
	out.MaxColumn = shelf.Int(g.Width - 1)
	out.MaxDepth = shelf.Int(g.Depth - 1)
	return out
}

// Select makes loc the current selection. It returns false when loc is
// occupied and occupied cells cannot be selected. A location the scene does
// not contain is still accepted but the camera stays where it is.
//
// Internal selections start the guard window during which external
// selections are ignored. When loc also changes the highlighted floor, a
// group or shelf focus takes precedence over the floor focus.
func (s *Selector) Select(loc shelf.Location, src shelf.Source) bool {
	if !s.canSelectOccupied && s.occupied.Contains(loc) {
		logger.Debug("selection rejected: location occupied",
			zap.Stringer("location", loc),
			zap.Stringer("source", src),
		)
		return false
	}

	loc = s.Enrich(loc)
	prev, hadPrev := s.current, s.hasCurrent
	s.current, s.hasCurrent = loc, true
	s.dirty = true
	if src == shelf.SourceInternal {
		s.guardUntil = s.now().Add(s.guard)
	}

	focused := false
	if g, ok := s.scene.GroupOf(loc); ok && g.ValidCell(loc.GroupRow, loc.GroupColumn, loc.Depth()) {
		switch {
		case !hadPrev || !prev.SameGroup(loc):
			if s.animate.Group {
				s.animator.AnimateTo(s.focus.FocusGroup(g.Bounds, s.offset))
				focused = true
			}
		case !prev.SameCell(loc):
			if s.animate.Shelf {
				s.animator.AnimateTo(s.focus.FocusShelf(g.ShelfCenter(loc.GroupRow, loc.GroupColumn, loc.Depth()), s.offset))
				focused = true
			}
		}
	} else {
		logger.Debug("selection outside scene, camera unchanged", zap.Stringer("location", loc))
	}

	if s.onSelect != nil {
		s.onSelect(loc)
	}

	if loc.Floor != s.highlight {
		s.changeHighlight(loc.Floor, !focused)
		if s.onHighlightFloor != nil {
			s.onHighlightFloor(loc.Floor)
		}
	}
	return true
}

// SetExternalSelection reconciles a selection pushed by the caller. It is
// adopted when it differs from the current selection and no internal
// selection happened within the guard window. Reports whether it was
// adopted.
func (s *Selector) SetExternalSelection(loc *shelf.Location) bool {
	if loc == nil {
		return false
	}
	if s.hasCurrent && s.current.SameCell(*loc) {
		return false
	}
	if s.now().Before(s.guardUntil) {
		logger.Debug("external selection ignored during interaction", zap.Stringer("location", *loc))
		return false
	}
	return s.Select(*loc, shelf.SourceExternal)
}

// SetHighlightedFloor highlights a floor chosen by the caller and frames it.
// Floors the scene does not contain are ignored.
func (s *Selector) SetHighlightedFloor(floor int) {
	if floor == s.highlight {
		return
	}
	if _, ok := s.scene.Floor(floor); !ok {
		logger.Debug("highlight ignored: unknown floor", zap.Int("floor", floor))
		return
	}
	s.changeHighlight(floor, true)
}

func (s *Selector) changeHighlight(floor int, focus bool) {
	s.highlight = floor
	s.dirty = true
	if !focus || !s.animate.Floor {
		return
	}
	if pos, look, ok := s.FloorTarget(floor); ok {
		s.animator.AnimateTo(pos, look)
	}
}

// FloorTarget returns the camera position and look-at point framing a floor.
func (s *Selector) FloorTarget(floor int) (pos, lookAt math.Vec3, ok bool) {
	f, ok := s.scene.Floor(floor)
	if !ok {
		return math.Vec3{}, math.Vec3{}, false
	}
	pos, lookAt = s.focus.FocusFloor(f.Bounds, s.offset)
	return pos, lookAt, true
}

// FocusFloor animates the camera to a floor without changing the highlight.
func (s *Selector) FocusFloor(floor int) bool {
	pos, look, ok := s.FloorTarget(floor)
	if ok {
		s.animator.AnimateTo(pos, look)
		s.dirty = true
	}
	return ok
}

// SetOccupied replaces the occupancy list.
func (s *Selector) SetOccupied(list []shelf.Location, canSelectOccupied bool) {
	s.occupied = shelf.NewOccupancy(list)
	s.canSelectOccupied = canSelectOccupied
	s.nav.SetOccupancy(s.occupied, canSelectOccupied)
	s.dirty = true
}

// SetFloors rebuilds the scene. The current selection is kept even if it no
// longer exists; it is re-enriched against the new layout.
func (s *Selector) SetFloors(floors []layout.Floor) {
	s.scene = scene.Build(floors, s.cache, s.scene.Config)
	s.nav.SetScene(s.scene)
	s.fade.SetScene(s.scene)
	if s.hasCurrent {
		s.current = s.Enrich(s.current)
	}
	s.hasHover = false
	s.dirty = true
}

// SetCameraOffset changes the offset applied to later focus targets.
func (s *Selector) SetCameraOffset(off camera.Offset) {
	s.offset = off
}

// SetPalette replaces the colors.
func (s *Selector) SetPalette(p Palette) {
	s.palette = p
	s.dirty = true
}

// Invalidate requests a redraw on the next frame.
func (s *Selector) Invalidate() {
	s.dirty = true
}
