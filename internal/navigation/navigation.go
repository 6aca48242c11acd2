// Package navigation moves a shelf selection with the arrow keys.
//
// Plain Up/Down step through the shelf rows of the current group and stop at
// the top and bottom. Plain Left/Right step through columns and, at the edge
// of the group, continue into the nearest group beside it on the same matrix
// rows. Shift+arrow jumps to the nearest whole group in that direction of the
// floor matrix (Up = towards row 0). Ctrl+Up/Down walk the depth axis and
// fall back to the Shift jump at the first or last depth.
package navigation

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/logger"
	"github.com/Faultbox/shelfview/internal/scene"
	"github.com/Faultbox/shelfview/internal/shelf"
	pmath "github.com/Faultbox/shelfview/pkg/math"
)

// Key is a navigation key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "none"
	}
}

// ParseKey accepts the names String produces plus the DOM "Arrow*" names.
func ParseKey(s string) Key {
	switch s {
	case "up", "ArrowUp":
		return KeyUp
	case "down", "ArrowDown":
		return KeyDown
	case "left", "ArrowLeft":
		return KeyLeft
	case "right", "ArrowRight":
		return KeyRight
	default:
		return KeyNone
	}
}

// Modifiers are the held modifier keys.
type Modifiers struct {
	Shift bool `json:"shift"`
	Ctrl  bool `json:"ctrl"`
}

// Navigator computes keyboard moves over a placed scene.
type Navigator struct {
	scene             *scene.Scene
	occupied          shelf.Occupancy
	canSelectOccupied bool
}

// New creates a navigator over s.
func New(s *scene.Scene) *Navigator {
	return &Navigator{scene: s}
}

// SetScene replaces the scene, e.g. after the floors changed.
func (n *Navigator) SetScene(s *scene.Scene) {
	n.scene = s
}

// SetOccupancy configures the occupancy gate applied by Navigate.
func (n *Navigator) SetOccupancy(o shelf.Occupancy, canSelectOccupied bool) {
	n.occupied = o
	n.canSelectOccupied = canSelectOccupied
}

// Navigate computes the move for key and applies the occupancy gate. It
// returns the current location and false when nothing should happen, in
// which case the caller must leave the key event to its default handling.
func (n *Navigator) Navigate(cur shelf.Location, key Key, mods Modifiers) (shelf.Location, bool) {
	next, ok := n.Next(cur, key, mods)
	if !ok {
		logger.Debug("no navigation target",
			zap.Stringer("from", cur),
			zap.Stringer("key", key),
			zap.Bool("shift", mods.Shift),
			zap.Bool("ctrl", mods.Ctrl),
		)
		return cur, false
	}
	if !n.canSelectOccupied && n.occupied.Contains(next) {
		logger.Debug("navigation target occupied", zap.Stringer("target", next))
		return cur, false
	}
	return next, true
}

// Next computes the location reached from cur by key, ignoring occupancy.
func (n *Navigator) Next(cur shelf.Location, key Key, mods Modifiers) (shelf.Location, bool) {
	f, ok := n.scene.Floor(cur.Floor)
	if !ok {
		return cur, false
	}
	g, ok := f.Extraction.Group(cur.GroupID)
	if !ok {
		return cur, false
	}

	row, col, depth := cur.GroupRow, cur.GroupColumn, cur.Depth()

	switch {
	case mods.Ctrl && key == KeyUp:
		if depth-1 >= 0 {
			return shelf.At(cur.Floor, g.ID, row, col, depth-1), true
		}
		return n.jump(cur, f, g, key)

	case mods.Ctrl && key == KeyDown:
		if depth+1 < g.Depth {
			return shelf.At(cur.Floor, g.ID, row, col, depth+1), true
		}
		return n.jump(cur, f, g, key)

	case mods.Shift:
		return n.jump(cur, f, g, key)
	}

	switch key {
	case KeyUp:
		if row+1 < g.Rows {
			return shelf.At(cur.Floor, g.ID, row+1, col, depth), true
		}
	case KeyDown:
		if row-1 >= 0 {
			return shelf.At(cur.Floor, g.ID, row-1, col, depth), true
		}
	case KeyLeft:
		if col-1 >= 0 {
			return shelf.At(cur.Floor, g.ID, row, col-1, depth), true
		}
		return n.across(cur, f, g, -1)
	case KeyRight:
		if col+1 < g.Width {
			return shelf.At(cur.Floor, g.ID, row, col+1, depth), true
		}
		return n.across(cur, f, g, +1)
	}
	return cur, false
}

// across continues a plain horizontal move into the nearest group that
// starts in a neighbouring column on the matrix rows the current group
// covers. The row under the current depth is searched first.
func (n *Navigator) across(cur shelf.Location, f *scene.Floor, g layout.Group, dir int) (shelf.Location, bool) {
	edge := g.MaxJ
	if dir < 0 {
		edge = g.MinJ
	}
	rows := bandOrder(g, cur.Depth())

	for c := edge + dir; c >= 0 && c < f.Cols; c += dir {
		for _, i := range rows {
			id := f.Extraction.GroupAt(i, c)
			if id < 0 || id == g.ID {
				continue
			}
			t, _ := f.Extraction.Group(id)
			col := 0
			if dir < 0 {
				col = t.Width - 1
			}
			return shelf.At(cur.Floor, t.ID,
				pmath.ClampInt(cur.GroupRow, 0, t.Rows-1),
				col,
				pmath.ClampInt(cur.Depth(), 0, t.Depth-1),
			), true
		}
	}
	return cur, false
}

// bandOrder lists the matrix rows of g, starting at the row of the given
// depth and moving outwards.
func bandOrder(g layout.Group, depth int) []int {
	start := pmath.ClampInt(g.MinI+depth, g.MinI, g.MaxI)
	rows := make([]int, 0, g.Depth)
	rows = append(rows, start)
	for d := 1; len(rows) < g.Depth; d++ {
		if i := start - d; i >= g.MinI {
			rows = append(rows, i)
		}
		if i := start + d; i <= g.MaxI {
			rows = append(rows, i)
		}
	}
	return rows
}

// jump moves to the nearest other group strictly beyond the current one in
// the key's direction.
func (n *Navigator) jump(cur shelf.Location, f *scene.Floor, g layout.Group, key Key) (shelf.Location, bool) {
	t, ok := nearestGroup(f.Extraction.Groups, g, key)
	if !ok {
		return cur, false
	}

	col := cur.GroupColumn
	switch key {
	case KeyUp, KeyDown:
		col = g.MinJ + cur.GroupColumn - t.MinJ
	case KeyLeft:
		col = t.Width - 1
	case KeyRight:
		col = 0
	}

	return shelf.At(cur.Floor, t.ID,
		pmath.ClampInt(cur.GroupRow, 0, t.Rows-1),
		pmath.ClampInt(col, 0, t.Width-1),
		t.Depth-1,
	), true
}

// nearestGroup finds the group closest to g in direction key. Vertical
// candidates must overlap g's columns, horizontal ones its rows. Ties go to
// the lower id.
func nearestGroup(groups []layout.Group, g layout.Group, key Key) (layout.Group, bool) {
	var (
		best    layout.Group
		bestGap = -1
	)
	for _, c := range groups {
		if c.ID == g.ID {
			continue
		}
		gap := -1
		switch key {
		case KeyUp:
			if c.MaxI < g.MinI && overlaps(c.MinJ, c.MaxJ, g.MinJ, g.MaxJ) {
				gap = g.MinI - c.MaxI
			}
		case KeyDown:
			if c.MinI > g.MaxI && overlaps(c.MinJ, c.MaxJ, g.MinJ, g.MaxJ) {
				gap = c.MinI - g.MaxI
			}
		case KeyLeft:
			if c.MaxJ < g.MinJ && overlaps(c.MinI, c.MaxI, g.MinI, g.MaxI) {
				gap = g.MinJ - c.MaxJ
			}
		case KeyRight:
			if c.MinJ > g.MaxJ && overlaps(c.MinI, c.MaxI, g.MinI, g.MaxI) {
				gap = c.MinJ - g.MaxJ
			}
		}
		if gap > 0 && (bestGap < 0 || gap < bestGap) {
			best, bestGap = c, gap
		}
	}
	return best, bestGap > 0
}

func overlaps(aMin, aMax, bMin, bMax int) bool {
	return aMin <= bMax && bMin <= aMax
}
