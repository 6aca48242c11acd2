// Package debug provides overlay geometry and frame capture for the viewer.
package debug

import "github.com/Faultbox/shelfview/pkg/math"

// OutlineVertexCount is the number of vertices in one box outline (12 edges x 2).
const OutlineVertexCount = 24

// DefaultOutlinePadding keeps outlines from z-fighting with the box faces.
const DefaultOutlinePadding = 0.01

// OutlineVertices returns line-list vertices for the edges of b grown by
// pad on every side. Format: [x, y, z] per vertex.
func OutlineVertices(b math.Box3, pad float32) []float32 {
	lo := b.Min.Sub(math.Vec3{X: pad, Y: pad, Z: pad})
	hi := b.Max.Add(math.Vec3{X: pad, Y: pad, Z: pad})
	return AppendOutline(make([]float32, 0, OutlineVertexCount*3), lo, hi)
}

// AppendOutline appends the 12 edges of the box lo..hi to dst.
func AppendOutline(dst []float32, lo, hi math.Vec3) []float32 {
	return append(dst,
		// bottom
		lo.X, lo.Y, lo.Z, hi.X, lo.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, lo.Y, hi.Z,
		hi.X, lo.Y, hi.Z, lo.X, lo.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, lo.Y, lo.Z,
		// top
		lo.X, hi.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, hi.Y, lo.Z, hi.X, hi.Y, hi.Z,
		hi.X, hi.Y, hi.Z, lo.X, hi.Y, hi.Z,
		lo.X, hi.Y, hi.Z, lo.X, hi.Y, lo.Z,
		// verticals
		lo.X, lo.Y, lo.Z, lo.X, hi.Y, lo.Z,
		hi.X, lo.Y, lo.Z, hi.X, hi.Y, lo.Z,
		hi.X, lo.Y, hi.Z, hi.X, hi.Y, hi.Z,
		lo.X, lo.Y, hi.Z, lo.X, hi.Y, hi.Z,
	)
}
