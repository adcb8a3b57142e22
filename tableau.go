package tableau

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a Renderer submits the fill.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default stage color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is fully opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA converts c into a premultiplied color.RGBA, applying an extra
// opacity factor in [0, 255].
func (c Color) RGBA(opacity uint8) color.RGBA {
	a := c.A * float64(opacity) / 255
	return color.RGBA{
		R: uint8(clamp01(c.R*a)*255 + 0.5),
		G: uint8(clamp01(c.G*a)*255 + 0.5),
		B: uint8(clamp01(c.B*a)*255 + 0.5),
		A: uint8(clamp01(a)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RequestMode selects the order in which an unconstrained size query asks
// for the two axes.
type RequestMode uint8

const (
	HeightForWidth RequestMode = iota // width first, height for that width
	WidthForHeight                    // height first, width for that height
)

// AllocationFlags carry hints from the allocating parent.
type AllocationFlags uint8

const (
	// AbsoluteOriginChanged means an ancestor moved on screen even if the
	// parent-relative box of this actor did not.
	AbsoluteOriginChanged AllocationFlags = 1 << iota
)

// RotateAxis selects one of the three rotation axes.
type RotateAxis uint8

const (
	XAxis RotateAxis = iota
	YAxis
	ZAxis
)

// PickMode selects how a pick traversal treats actors.
type PickMode uint8

const (
	PickNone     PickMode = iota // regular paint
	PickReactive                 // only reactive actors paint a silhouette
	PickAll                      // every mapped actor paints a silhouette
)

// RedrawFlags modify a queued redraw.
type RedrawFlags uint8

const (
	// RedrawClippedToAllocation restricts the redraw to the actor's allocation.
	RedrawClippedToAllocation RedrawFlags = 1 << iota
)

// CullResult is the outcome of testing a paint volume against clip planes.
type CullResult uint8

const (
	CullIn      CullResult = iota // fully inside
	CullOut                       // fully outside
	CullPartial                   // straddles at least one plane
)

func (r CullResult) String() string {
	switch r {
	case CullIn:
		return "in"
	case CullOut:
		return "out"
	case CullPartial:
		return "partial"
	default:
		return "unknown"
	}
}
