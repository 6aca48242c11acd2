package shelf

// Matches reports whether the occupied entry covers the given cell. An entry
// without a depth covers every depth of its row/column.
func (l Location) Matches(floor, group, row, col, depth int) bool {
	if l.Floor != floor || l.GroupID != group || l.GroupRow != row || l.GroupColumn != col {
		return false
	}
	return l.GroupDepth == nil || *l.GroupDepth == depth
}

// IsOccupied reports whether any entry of occupied covers the cell.
func IsOccupied(occupied []Location, floor, group, row, col, depth int) bool {
	for _, o := range occupied {
		if o.Matches(floor, group, row, col, depth) {
			return true
		}
	}
	return false
}

// Occupancy is a read-only view over a caller-supplied occupied list.
type Occupancy struct {
	list []Location
}

// NewOccupancy wraps occupied. The slice is copied.
func NewOccupancy(occupied []Location) Occupancy {
	return Occupancy{list: append([]Location(nil), occupied...)}
}

// Contains reports whether loc is occupied.
func (o Occupancy) Contains(loc Location) bool {
	return IsOccupied(o.list, loc.Floor, loc.GroupID, loc.GroupRow, loc.GroupColumn, loc.Depth())
}

// Cell reports whether the addressed cell is occupied.
func (o Occupancy) Cell(floor, group, row, col, depth int) bool {
	return IsOccupied(o.list, floor, group, row, col, depth)
}

// Len returns the number of entries.
func (o Occupancy) Len() int {
	return len(o.list)
}

// List returns a copy of the entries.
func (o Occupancy) List() []Location {
	return append([]Location(nil), o.list...)
}
