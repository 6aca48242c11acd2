package renderer

import (
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/shelfview/internal/engine/debug"
	"github.com/Faultbox/shelfview/internal/scene"
	"github.com/Faultbox/shelfview/internal/selector"
	"github.com/Faultbox/shelfview/pkg/math"
)

// minVisible is the opacity below which an object is not drawn at all.
const minVisible = 0.01

// Box is one solid box draw.
type Box struct {
	Center math.Vec3
	Size   math.Vec3
	Color  [4]float32

	dist float32 // squared distance to the camera
}

// Lines is a batch of line-list vertices sharing one color.
type Lines struct {
	Vertices []float32
	Color    [4]float32
}

// DrawList is everything one frame draws, in draw order.
type DrawList struct {
	Clear       [4]float32
	Opaque      []Box
	Transparent []Box // back to front
	Lines       []Lines
}

// BuildDrawList resolves the selector state into boxes and outlines.
// Floors are drawn as slabs of the given thickness under each floor.
func BuildDrawList(sel *selector.Selector, slab float32) DrawList {
	pal := sel.Palette()
	eye := sel.Rig().Position
	sc := sel.Scene()

	dl := DrawList{Clear: selector.Style{Color: pal.Background, Opacity: 1}.RGBA()}
	if sc == nil {
		return dl
	}

	for fi := range sc.Floors {
		f := &sc.Floors[fi]
		c, size := f.Bounds.Center(), f.Bounds.Size()
		dl.Opaque = append(dl.Opaque, Box{
			Center: math.Vec3{X: c.X, Y: f.YOffset - slab/2, Z: c.Z},
			Size:   math.Vec3{X: size.X, Y: slab, Z: size.Z},
			Color:  sel.FloorStyle(fi).RGBA(),
		})

		for gi := range f.Groups {
			g := &f.Groups[gi]
			if gs := sel.GroupStyle(fi, g.Group.ID); gs.Opacity >= minVisible {
				dl.Lines = append(dl.Lines, Lines{
					Vertices: debug.OutlineVertices(g.Bounds, debug.DefaultOutlinePadding),
					Color:    gs.RGBA(),
				})
			}
			dl.addShelves(sel, g, eye)
		}
	}

	if cur, ok := sel.Current(); ok {
		dl.addCellOutline(sc, cur.Floor, cur.GroupID, cur.GroupRow, cur.GroupColumn, cur.Depth(), pal.ShelfSelected)
	}
	if hov, ok := sel.Hover(); ok {
		dl.addCellOutline(sc, hov.Floor, hov.GroupID, hov.GroupRow, hov.GroupColumn, hov.Depth(), pal.ShelfHover)
	}

	slices.SortStableFunc(dl.Transparent, func(a, b Box) int {
		switch {
		case a.dist > b.dist:
			return -1
		case a.dist < b.dist:
			return 1
		}
		return 0
	})
	return dl
}

func (dl *DrawList) addShelves(sel *selector.Selector, g *scene.Group, eye math.Vec3) {
	size := g.ShelfSize()
	g.EachShelf(func(row, col, depth int) {
		st := sel.ShelfStyle(g.Location(row, col, depth))
		if st.Opacity < minVisible {
			return
		}
		center := g.ShelfCenter(row, col, depth)
		b := Box{Center: center, Size: size, Color: st.RGBA(), dist: center.DistanceSq(eye)}
		if st.Opacity >= 1 {
			dl.Opaque = append(dl.Opaque, b)
		} else {
			dl.Transparent = append(dl.Transparent, b)
		}
	})
}

func (dl *DrawList) addCellOutline(sc *scene.Scene, floor, id, row, col, depth int, c colorful.Color) {
	g, ok := sc.Group(floor, id)
	if !ok || !g.ValidCell(row, col, depth) {
		return
	}
	dl.Lines = append(dl.Lines, Lines{
		Vertices: debug.OutlineVertices(g.ShelfBounds(row, col, depth), 2*debug.DefaultOutlinePadding),
		Color:    selector.Style{Color: c, Opacity: 1}.RGBA(),
	})
}
