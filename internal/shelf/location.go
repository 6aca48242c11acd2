// Package shelf defines addressable shelf locations and the occupancy filter.
package shelf

import "fmt"

// Location addresses one shelf cell: floor, group, then row/column/depth
// inside the group. The Max* fields are informational hints attached when a
// location is selected; they never take part in comparisons.
type Location struct {
	Floor       int  `json:"floor" yaml:"floor"`
	GroupID     int  `json:"group_id" yaml:"group_id"`
	GroupRow    int  `json:"group_row" yaml:"group_row"`
	GroupColumn int  `json:"group_column" yaml:"group_column"`
	GroupDepth  *int `json:"group_depth,omitempty" yaml:"group_depth,omitempty"`

	MaxGroupID *int `json:"max_group_id,omitempty" yaml:"max_group_id,omitempty"`
	MaxRow     *int `json:"max_row,omitempty" yaml:"max_row,omitempty"`
	MaxColumn  *int `json:"max_column,omitempty" yaml:"max_column,omitempty"`
	MaxDepth   *int `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`
}

// Source tells who produced the current selection.
type Source int

const (
	SourceInternal Source = iota // user input inside the view
	SourceExternal               // pushed by the embedding caller
)

func (s Source) String() string {
	if s == SourceExternal {
		return "external"
	}
	return "internal"
}

// Int returns a pointer to v. Handy for optional fields.
func Int(v int) *int {
	return &v
}

// At builds a depth-aware location.
func At(floor, group, row, col, depth int) Location {
	return Location{
		Floor:       floor,
		GroupID:     group,
		GroupRow:    row,
		GroupColumn: col,
		GroupDepth:  Int(depth),
	}
}

// Depth returns the depth index, 0 when the location predates depth support.
func (l Location) Depth() int {
	if l.GroupDepth == nil {
		return 0
	}
	return *l.GroupDepth
}

// WithDepth returns a copy with an explicit depth.
func (l Location) WithDepth(depth int) Location {
	l.GroupDepth = Int(depth)
	return l
}

// Normalize fills an absent depth with 0 and drops the Max* hints.
func (l Location) Normalize() Location {
	return At(l.Floor, l.GroupID, l.GroupRow, l.GroupColumn, l.Depth())
}

// SameCell reports whether both locations address the same shelf cell.
// Absent depths count as 0.
func (l Location) SameCell(o Location) bool {
	return l.Floor == o.Floor &&
		l.GroupID == o.GroupID &&
		l.GroupRow == o.GroupRow &&
		l.GroupColumn == o.GroupColumn &&
		l.Depth() == o.Depth()
}

// SameGroup reports whether both locations are in the same group.
func (l Location) SameGroup(o Location) bool {
	return l.Floor == o.Floor && l.GroupID == o.GroupID
}

func (l Location) String() string {
	return fmt.Sprintf("F%d/G%d r%d c%d d%d", l.Floor, l.GroupID, l.GroupRow, l.GroupColumn, l.Depth())
}
