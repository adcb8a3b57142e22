package tableau

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Vertex is a point in 3D space.
type Vertex struct {
	X, Y, Z float64
}

// Vec3 converts v to an f64.Vec3.
func (v Vertex) Vec3() f64.Vec3 {
	return f64.Vec3{v.X, v.Y, v.Z}
}

// Sub returns v - o.
func (v Vertex) Sub(o Vertex) Vertex {
	return Vertex{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Dot returns the dot product of v and o.
func (v Vertex) Dot(o Vertex) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Box is an axis-aligned rectangle given by its top-left (X1, Y1) and
// bottom-right (X2, Y2) corners. Allocations are boxes in the parent's
// coordinate space.
type Box struct {
	X1, Y1, X2, Y2 float64
}

// BoxFromRect builds a box from an origin and a size.
func BoxFromRect(x, y, width, height float64) Box {
	return Box{X1: x, Y1: y, X2: x + width, Y2: y + height}
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Origin returns the top-left corner.
func (b Box) Origin() (x, y float64) { return b.X1, b.Y1 }

// Size returns the width and height.
func (b Box) Size() (width, height float64) { return b.Width(), b.Height() }

// Area returns width * height.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// IsEmpty reports whether the box has no area.
func (b Box) IsEmpty() bool { return b.X2 <= b.X1 || b.Y2 <= b.Y1 }

// Contains reports whether the point (x, y) lies inside the box.
// Points on the top/left edge are inside, points on the bottom/right edge are not.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X1 && x < b.X2 && y >= b.Y1 && y < b.Y2
}

// Equal reports whether both boxes have identical corners.
func (b Box) Equal(o Box) bool {
	return b.X1 == o.X1 && b.Y1 == o.Y1 && b.X2 == o.X2 && b.Y2 == o.Y2
}

// Union returns the smallest box containing both b and o.
// Empty boxes do not contribute.
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box{
		X1: math.Min(b.X1, o.X1),
		Y1: math.Min(b.Y1, o.Y1),
		X2: math.Max(b.X2, o.X2),
		Y2: math.Max(b.Y2, o.Y2),
	}
}

// Intersect returns the overlap of b and o. The result is empty when they
// do not overlap.
func (b Box) Intersect(o Box) Box {
	r := Box{
		X1: math.Max(b.X1, o.X1),
		Y1: math.Max(b.Y1, o.Y1),
		X2: math.Min(b.X2, o.X2),
		Y2: math.Min(b.Y2, o.Y2),
	}
	if r.IsEmpty() {
		return Box{}
	}
	return r
}

// ClampToPixel grows the box outward to whole pixel coordinates.
func (b Box) ClampToPixel() Box {
	return Box{
		X1: math.Floor(b.X1),
		Y1: math.Floor(b.Y1),
		X2: math.Ceil(b.X2),
		Y2: math.Ceil(b.Y2),
	}
}

// Interpolate linearly interpolates between b and final by progress in [0, 1].
func (b Box) Interpolate(final Box, progress float64) Box {
	return Box{
		X1: b.X1 + (final.X1-b.X1)*progress,
		Y1: b.Y1 + (final.Y1-b.Y1)*progress,
		X2: b.X2 + (final.X2-b.X2)*progress,
		Y2: b.Y2 + (final.Y2-b.Y2)*progress,
	}
}

// BoxFromVertices returns the 2D bounding box of the given vertices.
func BoxFromVertices(verts []Vertex) Box {
	if len(verts) == 0 {
		return Box{}
	}
	b := Box{X1: verts[0].X, Y1: verts[0].Y, X2: verts[0].X, Y2: verts[0].Y}
	for _, v := range verts[1:] {
		b.X1 = math.Min(b.X1, v.X)
		b.Y1 = math.Min(b.Y1, v.Y)
		b.X2 = math.Max(b.X2, v.X)
		b.Y2 = math.Max(b.Y2, v.Y)
	}
	return b
}

// Plane is a half-space given by a point on the plane and its inward normal.
// Points with a negative signed distance are outside.
type Plane struct {
	V0 Vertex
	N  Vertex
}

// Distance returns the signed distance of p from the plane.
func (pl Plane) Distance(p Vertex) float64 {
	return pl.N.Dot(p.Sub(pl.V0))
}

// ClipPlanesFromBox returns the four inward-facing planes bounding the
// screen-space rectangle b (left, right, top, bottom).
func ClipPlanesFromBox(b Box) [4]Plane {
	return [4]Plane{
		{V0: Vertex{X: b.X1}, N: Vertex{X: 1}},
		{V0: Vertex{X: b.X2}, N: Vertex{X: -1}},
		{V0: Vertex{Y: b.Y1}, N: Vertex{Y: 1}},
		{V0: Vertex{Y: b.Y2}, N: Vertex{Y: -1}},
	}
}
