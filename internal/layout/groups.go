package layout

// Group is a maximal 4-connected region of cells sharing one non-zero value.
// Rows is that shared value: the number of shelf rows stacked in the group.
// Width spans columns (MinJ..MaxJ), Depth spans matrix rows (MinI..MaxI).
type Group struct {
	ID    int `json:"id"`
	Rows  int `json:"rows"`
	Width int `json:"width"`
	Depth int `json:"depth"`
	MinI  int `json:"min_i"`
	MaxI  int `json:"max_i"`
	MinJ  int `json:"min_j"`
	MaxJ  int `json:"max_j"`
}

// Position returns the top-left matrix cell of the group.
func (g Group) Position() [2]int {
	return [2]int{g.MinI, g.MinJ}
}

// Contains reports whether the matrix cell lies in the group's bounding box.
func (g Group) Contains(i, j int) bool {
	return i >= g.MinI && i <= g.MaxI && j >= g.MinJ && j <= g.MaxJ
}

// Cells returns the number of shelf cells in the group.
func (g Group) Cells() int {
	return g.Rows * g.Width * g.Depth
}

// GroupPosition maps one matrix cell to its owning group.
type GroupPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
	ID  int `json:"id"`
}

// Extraction is the result of scanning one matrix.
type Extraction struct {
	Groups    []Group         `json:"groups"`
	Positions []GroupPosition `json:"group_positions"` // every shelf cell, in fill order

	owner [][]int // matrix cell -> group id, -1 when empty
}

// Group returns the group with the given id.
func (e *Extraction) Group(id int) (Group, bool) {
	if e == nil || id < 0 || id >= len(e.Groups) {
		return Group{}, false
	}
	return e.Groups[id], true
}

// GroupAt returns the id of the group owning cell (i, j), or -1.
func (e *Extraction) GroupAt(i, j int) int {
	if e == nil || i < 0 || i >= len(e.owner) || j < 0 || j >= len(e.owner[i]) {
		return -1
	}
	return e.owner[i][j]
}

// MaxGroupID returns the highest id, or -1 when the floor has no groups.
func (e *Extraction) MaxGroupID() int {
	if e == nil {
		return -1
	}
	return len(e.Groups) - 1
}

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// ExtractGroups scans m row-major and flood-fills every unvisited non-zero
// cell over 4-neighbours with the same value. Ids follow discovery order, so
// identical matrices always yield identical groups.
func ExtractGroups(m Matrix) *Extraction {
	rows, cols := m.Rows(), m.Cols()

	owner := make([][]int, rows)
	for i := range owner {
		owner[i] = make([]int, cols)
		for j := range owner[i] {
			owner[i][j] = -1
		}
	}

	e := &Extraction{owner: owner}
	queue := make([][2]int, 0, 16)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			value := m.At(i, j)
			if value <= 0 || owner[i][j] >= 0 {
				continue
			}

			id := len(e.Groups)
			g := Group{ID: id, Rows: value, MinI: i, MaxI: i, MinJ: j, MaxJ: j}

			owner[i][j] = id
			queue = append(queue[:0], [2]int{i, j})
			for head := 0; head < len(queue); head++ {
				ci, cj := queue[head][0], queue[head][1]
				g.MinI = min(g.MinI, ci)
				g.MaxI = max(g.MaxI, ci)
				g.MinJ = min(g.MinJ, cj)
				g.MaxJ = max(g.MaxJ, cj)
				e.Positions = append(e.Positions, GroupPosition{Row: ci, Col: cj, ID: id})

				for _, d := range neighbours {
					ni, nj := ci+d[0], cj+d[1]
					if ni < 0 || ni >= rows || nj < 0 || nj >= cols {
						continue
					}
					if owner[ni][nj] >= 0 || m.At(ni, nj) != value {
						continue
					}
					owner[ni][nj] = id
					queue = append(queue, [2]int{ni, nj})
				}
			}

			g.Width = g.MaxJ - g.MinJ + 1
			g.Depth = g.MaxI - g.MinI + 1
			e.Groups = append(e.Groups, g)
		}
	}

	return e
}
