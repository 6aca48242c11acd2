package shelf

import (
	"encoding/json"
	"testing"
)

func TestIsOccupiedExactMatch(t *testing.T) {
	occupied := []Location{At(0, 1, 2, 3, 1)}

	tests := []struct {
		name                          string
		floor, group, row, col, depth int
		want                          bool
	}{
		{"exact", 0, 1, 2, 3, 1, true},
		{"other depth", 0, 1, 2, 3, 0, false},
		{"other floor", 1, 1, 2, 3, 1, false},
		{"other group", 0, 2, 2, 3, 1, false},
		{"other row", 0, 1, 1, 3, 1, false},
		{"other column", 0, 1, 2, 2, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsOccupied(occupied, tt.floor, tt.group, tt.row, tt.col, tt.depth)
			if got != tt.want {
				t.Errorf("IsOccupied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOccupiedMissingDepthMatchesAnyDepth(t *testing.T) {
	occupied := []Location{{Floor: 0, GroupID: 4, GroupRow: 1, GroupColumn: 0}}
	for depth := 0; depth < 5; depth++ {
		if !IsOccupied(occupied, 0, 4, 1, 0, depth) {
			t.Errorf("IsOccupied(depth=%d) = false, want true", depth)
		}
	}
	if IsOccupied(occupied, 0, 4, 1, 1, 0) {
		t.Error("entry without depth must still match column exactly")
	}
}

func TestOccupancyIgnoresMaxFields(t *testing.T) {
	entry := At(1, 0, 0, 0, 0)
	entry.MaxRow = Int(9)
	occ := NewOccupancy([]Location{entry})

	probe := At(1, 0, 0, 0, 0)
	probe.MaxColumn = Int(3)
	probe.MaxGroupID = Int(7)
	if !occ.Contains(probe) {
		t.Error("Contains() = false, want true regardless of max_* fields")
	}
	if occ.Len() != 1 {
		t.Errorf("Len() = %d, want 1", occ.Len())
	}
}

func TestOccupancyCopiesInput(t *testing.T) {
	list := []Location{At(0, 0, 0, 0, 0)}
	occ := NewOccupancy(list)
	list[0].Floor = 5
	if !occ.Cell(0, 0, 0, 0, 0) {
		t.Error("Occupancy must not observe later mutation of the input slice")
	}
}

func TestLocationDepthDefaults(t *testing.T) {
	var loc Location
	if loc.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", loc.Depth())
	}
	if !loc.SameCell(At(0, 0, 0, 0, 0)) {
		t.Error("absent depth should compare equal to depth 0")
	}
	n := Location{Floor: 1, MaxRow: Int(3)}.Normalize()
	if n.GroupDepth == nil || *n.GroupDepth != 0 || n.MaxRow != nil {
		t.Errorf("Normalize() = %+v, want explicit depth 0 and no hints", n)
	}
}

func TestLocationJSONFieldNames(t *testing.T) {
	var loc Location
	data := `{"floor":2,"group_id":1,"group_row":3,"group_column":4,"group_depth":1,"max_row":5}`
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if loc.Floor != 2 || loc.GroupID != 1 || loc.GroupRow != 3 || loc.GroupColumn != 4 || loc.Depth() != 1 {
		t.Errorf("decoded %+v", loc)
	}
	if loc.MaxRow == nil || *loc.MaxRow != 5 {
		t.Errorf("MaxRow = %v, want 5", loc.MaxRow)
	}
}

func TestFromCabinet(t *testing.T) {
	loc := FromCabinet(CabinetLocation{Floor: 1, CabinetID: 2, Row: 3, Column: 4})
	if loc.GroupDepth != nil {
		t.Error("converted cabinet location must keep depth absent")
	}
	if !IsOccupied([]Location{loc}, 1, 2, 3, 4, 2) {
		t.Error("cabinet entry should occupy every depth")
	}
	if got := len(FromCabinets([]CabinetLocation{{}, {}})); got != 2 {
		t.Errorf("FromCabinets() len = %d, want 2", got)
	}
}
