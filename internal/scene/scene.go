// Package scene turns floor layouts into world-space boxes for floors,
// shelf groups and individual shelf cells.
//
// World axes: X runs along matrix columns, Z along matrix rows, Y up. Floors
// are centred on the origin in X/Z and stacked along Y.
package scene

import (
	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/pkg/math"
)

// Config holds scene geometry settings.
type Config struct {
	GridSize       float32 `yaml:"grid_size"`       // world units per matrix cell
	FloorGap       float32 `yaml:"floor_gap"`       // vertical gap between floors
	ShelfFill      float32 `yaml:"shelf_fill"`      // visual share of a shelf band
	FloorThickness float32 `yaml:"floor_thickness"` // slab drawn under each floor
}

// DefaultConfig returns the standard geometry.
func DefaultConfig() Config {
	return Config{
		GridSize:       1,
		FloorGap:       0.5,
		ShelfFill:      0.9,
		FloorThickness: 0.05,
	}
}

// Floor is one placed floor.
type Floor struct {
	Index   int
	Height  float32
	YOffset float32
	Cols    int // matrix width
	Rows    int // matrix depth
	Bounds  math.Box3
	Groups  []Group

	Extraction *layout.Extraction
}

// Group is one placed shelf group.
type Group struct {
	Floor  int
	Group  layout.Group
	Center math.Vec3
	Size   math.Vec3
	Bounds math.Box3

	fill float32
}

// Scene is the placed warehouse.
type Scene struct {
	Config Config
	Floors []Floor
}

// FloorOffsets returns the Y offset of every floor: the sum of the heights
// plus one gap for every floor below it.
func FloorOffsets(floors []layout.Floor, gap float32) []float32 {
	offsets := make([]float32, len(floors))
	var y float32
	for i, f := range floors {
		offsets[i] = y
		y += f.Height + gap
	}
	return offsets
}

// GroupCenter places g on a floor of cols x rows cells.
func GroupCenter(g layout.Group, cols, rows int, height, yOffset, grid float32) math.Vec3 {
	return math.Vec3{
		X: (float32(g.MinJ) - float32(cols)/2 + float32(g.Width)/2) * grid,
		Y: height/2 + yOffset,
		Z: (float32(g.MinI) - float32(rows)/2 + float32(g.Depth)/2) * grid,
	}
}

// GroupSize returns the world size of g on a floor of the given height.
func GroupSize(g layout.Group, height, grid float32) math.Vec3 {
	return math.Vec3{
		X: float32(g.Width) * grid,
		Y: height,
		Z: float32(g.Depth) * grid,
	}
}

// ShelfOffset returns a shelf cell's centre relative to its group centre.
// The group is split into Rows bands vertically, Width bands along X and
// Depth bands along Z.
func ShelfOffset(g layout.Group, size math.Vec3, row, col, depth int) math.Vec3 {
	cw, ch, cd := cellSize(g, size)
	return math.Vec3{
		X: (float32(col) - float32(g.Width)/2 + 0.5) * cw,
		Y: (float32(row) - float32(g.Rows)/2 + 0.5) * ch,
		Z: (float32(depth) - float32(g.Depth)/2 + 0.5) * cd,
	}
}

func cellSize(g layout.Group, size math.Vec3) (w, h, d float32) {
	return size.X / float32(max(g.Width, 1)),
		size.Y / float32(max(g.Rows, 1)),
		size.Z / float32(max(g.Depth, 1))
}

// Build places every floor. The cache may be nil.
func Build(floors []layout.Floor, cache *layout.Cache, cfg Config) *Scene {
	if cfg.GridSize <= 0 {
		cfg.GridSize = 1
	}
	if cfg.ShelfFill <= 0 || cfg.ShelfFill > 1 {
		cfg.ShelfFill = 0.9
	}

	s := &Scene{Config: cfg, Floors: make([]Floor, len(floors))}
	offsets := FloorOffsets(floors, cfg.FloorGap)

	for i, f := range floors {
		var e *layout.Extraction
		if cache != nil {
			e = cache.Groups(i, f.Matrix)
		} else {
			e = layout.ExtractGroups(f.Matrix)
		}

		cols, rows := f.Matrix.Cols(), f.Matrix.Rows()
		floor := Floor{
			Index:      i,
			Height:     f.Height,
			YOffset:    offsets[i],
			Cols:       cols,
			Rows:       rows,
			Extraction: e,
			Bounds: math.BoxFromCenter(
				math.Vec3{Y: offsets[i] + f.Height/2},
				math.Vec3{X: float32(cols) * cfg.GridSize, Y: f.Height, Z: float32(rows) * cfg.GridSize},
			),
			Groups: make([]Group, len(e.Groups)),
		}

		for gi, g := range e.Groups {
			center := GroupCenter(g, cols, rows, f.Height, offsets[i], cfg.GridSize)
			size := GroupSize(g, f.Height, cfg.GridSize)
			floor.Groups[gi] = Group{
				Floor:  i,
				Group:  g,
				Center: center,
				Size:   size,
				Bounds: math.BoxFromCenter(center, size),
				fill:   cfg.ShelfFill,
			}
		}
		s.Floors[i] = floor
	}
	return s
}

// Floor returns the placed floor with the given index.
func (s *Scene) Floor(i int) (*Floor, bool) {
	if s == nil || i < 0 || i >= len(s.Floors) {
		return nil, false
	}
	return &s.Floors[i], true
}

// Group returns the placed group, or false for unknown floors or ids.
func (s *Scene) Group(floor, id int) (*Group, bool) {
	f, ok := s.Floor(floor)
	if !ok || id < 0 || id >= len(f.Groups) {
		return nil, false
	}
	return &f.Groups[id], true
}

// GroupOf returns the group a location points into.
func (s *Scene) GroupOf(loc shelf.Location) (*Group, bool) {
	return s.Group(loc.Floor, loc.GroupID)
}

// Valid reports whether loc addresses an existing shelf cell.
func (s *Scene) Valid(loc shelf.Location) bool {
	g, ok := s.GroupOf(loc)
	return ok && g.ValidCell(loc.GroupRow, loc.GroupColumn, loc.Depth())
}

// Bounds returns a box around every floor.
func (s *Scene) Bounds() math.Box3 {
	if s == nil || len(s.Floors) == 0 {
		return math.Box3{}
	}
	b := s.Floors[0].Bounds
	for _, f := range s.Floors[1:] {
		b = b.Union(f.Bounds)
	}
	return b
}

// ValidCell reports whether row/col/depth lie inside the group.
func (g *Group) ValidCell(row, col, depth int) bool {
	return row >= 0 && row < g.Group.Rows &&
		col >= 0 && col < g.Group.Width &&
		depth >= 0 && depth < g.Group.Depth
}

// ShelfCenter returns the world centre of a shelf cell.
func (g *Group) ShelfCenter(row, col, depth int) math.Vec3 {
	return g.Center.Add(ShelfOffset(g.Group, g.Size, row, col, depth))
}

// ShelfSize returns the drawn size of one shelf cell, shrunk to leave gaps.
func (g *Group) ShelfSize() math.Vec3 {
	w, h, d := cellSize(g.Group, g.Size)
	return math.Vec3{X: w, Y: h, Z: d}.Scale(g.fill)
}

// ShelfBounds returns the drawn box of a shelf cell.
func (g *Group) ShelfBounds(row, col, depth int) math.Box3 {
	return math.BoxFromCenter(g.ShelfCenter(row, col, depth), g.ShelfSize())
}

// Location builds a location inside this group.
func (g *Group) Location(row, col, depth int) shelf.Location {
	return shelf.At(g.Floor, g.Group.ID, row, col, depth)
}

// EachShelf calls fn for every shelf cell of the group in row, column,
// depth order.
func (g *Group) EachShelf(fn func(row, col, depth int)) {
	for r := 0; r < g.Group.Rows; r++ {
		for c := 0; c < g.Group.Width; c++ {
			for d := 0; d < g.Group.Depth; d++ {
				fn(r, c, d)
			}
		}
	}
}
