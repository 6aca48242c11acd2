package selector

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/engine/camera"
	"github.com/Faultbox/shelfview/internal/engine/picking"
	"github.com/Faultbox/shelfview/internal/logger"
	"github.com/Faultbox/shelfview/internal/navigation"
	"github.com/Faultbox/shelfview/internal/shelf"
)

// KeyEvent is an arrow key press with its modifiers.
type KeyEvent struct {
	Key  navigation.Key
	Mods navigation.Modifiers
}

// HandleKey navigates from the current selection. It returns true when the
// selection moved, meaning the key was consumed and its default action
// should be suppressed.
func (s *Selector) HandleKey(ev KeyEvent) bool {
	if !s.hasCurrent || ev.Key == navigation.KeyNone {
		return false
	}
	next, ok := s.nav.Navigate(s.current, ev.Key, ev.Mods)
	if !ok {
		return false
	}
	return s.Select(next, shelf.SourceInternal)
}

// SetViewport sets the drawable size used to turn pointer positions into rays.
func (s *Selector) SetViewport(w, h float32) {
	if w > 0 && h > 0 {
		s.viewportW, s.viewportH = w, h
	}
}

// Ray returns the pick ray through the pointer position.
func (s *Selector) Ray(x, y float32) picking.Ray {
	return picking.ScreenToRay(x, y, s.viewportW, s.viewportH,
		s.rig.ViewMatrix(), s.rig.ProjectionMatrix(s.viewportW/s.viewportH))
}

// HandleClick selects the shelf under the pointer. Clicking a bare floor
// slab highlights that floor instead. Reports whether anything changed.
func (s *Selector) HandleClick(x, y float32) bool {
	ray := s.Ray(x, y)
	if loc, ok := s.scene.PickShelf(ray, s.fade); ok {
		return s.Select(loc, shelf.SourceInternal)
	}
	if floor, ok := s.scene.PickFloor(ray); ok && floor != s.highlight {
		logger.Debug("floor clicked", zap.Int("floor", floor))
		s.SetHighlightedFloor(floor)
		if s.onHighlightFloor != nil {
			s.onHighlightFloor(floor)
		}
		return true
	}
	return false
}

// HandleHover updates the hovered shelf and reports whether it changed.
func (s *Selector) HandleHover(x, y float32) bool {
	loc, ok := s.scene.PickShelf(s.Ray(x, y), s.fade)
	if ok == s.hasHover && (!ok || loc.SameCell(s.hover)) {
		return false
	}
	s.hover, s.hasHover = loc, ok
	s.dirty = true
	return true
}

// ClearHover forgets the hovered shelf, e.g. when the pointer leaves the view.
func (s *Selector) ClearHover() {
	if s.hasHover {
		s.hasHover = false
		s.dirty = true
	}
}

// HandleDrag orbits the camera around its target. A drag cancels any
// running transition.
func (s *Selector) HandleDrag(dx, dy float32) {
	s.animator.Cancel()
	s.orbit.HandleDrag(s.rig, dx, dy)
	s.dirty = true
}

// HandleWheel zooms the camera toward its target.
func (s *Selector) HandleWheel(delta float32) {
	s.animator.Cancel()
	s.orbit.HandleZoom(s.rig, delta)
	s.dirty = true
}

// SetHeldKeys records the free-movement keys currently held down.
func (s *Selector) SetHeldKeys(h camera.HeldKeys) {
	s.held = h
}
