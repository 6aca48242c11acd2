package selector

import "github.com/Faultbox/shelfview/internal/shelf"

// Frame advances free movement, the camera transition and fading by dt
// seconds. It returns true when the view must be redrawn. While a movement
// key is held every frame needs a redraw; otherwise a caller can sleep until
// the next input event once Frame returns false.
func (s *Selector) Frame(dt float32) bool {
	redraw := s.dirty
	s.dirty = false

	if s.held.Any() {
		s.freeLook.Apply(s.rig, s.held.Movement(), dt)
		redraw = true
	}
	if s.animator.Update(s.rig) {
		redraw = true
	}
	if s.fade.Update(s.rig.Position) {
		redraw = true
	}
	return redraw
}

// Busy reports whether the next Frame will certainly need a redraw.
func (s *Selector) Busy() bool {
	return s.dirty || s.held.Any() || s.animator.Active()
}

// FloorStyle resolves the look of a floor slab.
func (s *Selector) FloorStyle(floor int) Style {
	if floor == s.highlight {
		return Style{Color: s.palette.FloorHighlight, Opacity: 1}
	}
	return Style{Color: s.palette.Floor, Opacity: 1}
}

// GroupStyle resolves the look of a group frame.
func (s *Selector) GroupStyle(floor, id int) Style {
	st := Style{Color: s.palette.Group, Opacity: s.fade.Group(floor, id).Opacity}
	if s.hasCurrent && s.current.Floor == floor && s.current.GroupID == id {
		st.Color = s.palette.GroupSelected
	}
	return st
}

// ShelfStyle resolves the look of a shelf cell. Selection wins over
// occupancy, occupancy over hover.
func (s *Selector) ShelfStyle(loc shelf.Location) Style {
	st := Style{Color: s.palette.Shelf, Opacity: s.fade.Shelf(loc).Opacity}
	hovered := s.hasHover && s.hover.SameCell(loc)
	switch {
	case s.hasCurrent && s.current.SameCell(loc):
		st.Color = s.palette.ShelfSelected
	case s.occupied.Contains(loc) && hovered:
		st.Color = s.palette.OccupiedHover
	case s.occupied.Contains(loc):
		st.Color = s.palette.Occupied
	case hovered:
		st.Color = s.palette.ShelfHover
	}
	return st
}
