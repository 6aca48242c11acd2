package layout

import (
	"errors"
	"fmt"
)

// Issue describes one problem found in a layout.
type Issue struct {
	Floor int
	Row   int
	Col   int
	Msg   string
}

func (i Issue) Error() string {
	if i.Row < 0 {
		return fmt.Sprintf("floor %d: %s", i.Floor, i.Msg)
	}
	return fmt.Sprintf("floor %d cell (%d,%d): %s", i.Floor, i.Row, i.Col, i.Msg)
}

// Validate checks the properties the scene relies on but extraction never
// enforces: positive heights, rectangular matrices, non-negative cells and
// groups that fill their bounding box. It returns nil or an error joining
// every Issue found.
//
// Only layout producers call this; the extraction and navigation code accept
// anything.
func Validate(floors []Floor) error {
	var issues []error
	for f, floor := range floors {
		if floor.Height <= 0 {
			issues = append(issues, Issue{Floor: f, Row: -1, Msg: fmt.Sprintf("height %v must be positive", floor.Height)})
		}
		cols := floor.Matrix.Cols()
		for i, row := range floor.Matrix {
			if len(row) != cols {
				issues = append(issues, Issue{Floor: f, Row: i, Col: len(row), Msg: fmt.Sprintf("row has %d cells, want %d", len(row), cols)})
			}
			for j, v := range row {
				if v < 0 {
					issues = append(issues, Issue{Floor: f, Row: i, Col: j, Msg: fmt.Sprintf("negative value %d", v)})
				}
			}
		}

		e := ExtractGroups(floor.Matrix)
	groups:
		for _, g := range e.Groups {
			for i := g.MinI; i <= g.MaxI; i++ {
				for j := g.MinJ; j <= g.MaxJ; j++ {
					if e.GroupAt(i, j) != g.ID {
						issues = append(issues, Issue{Floor: f, Row: i, Col: j, Msg: fmt.Sprintf("group %d does not fill its bounding box", g.ID)})
						continue groups
					}
				}
			}
		}
	}
	return errors.Join(issues...)
}
