package tableau

// Gravity names a point of an actor's bounding box as a fraction of its size.
type Gravity uint8

const (
	GravityNone Gravity = iota
	GravityNorth
	GravityNorthEast
	GravityEast
	GravitySouthEast
	GravitySouth
	GravitySouthWest
	GravityWest
	GravityNorthWest
	GravityCenter
)

var gravityNames = [...]string{
	GravityNone:      "none",
	GravityNorth:     "north",
	GravityNorthEast: "north-east",
	GravityEast:      "east",
	GravitySouthEast: "south-east",
	GravitySouth:     "south",
	GravitySouthWest: "south-west",
	GravityWest:      "west",
	GravityNorthWest: "north-west",
	GravityCenter:    "center",
}

func (g Gravity) String() string {
	if int(g) < len(gravityNames) {
		return gravityNames[g]
	}
	return "unknown"
}

// ParseGravity converts a gravity name as returned by String back into a
// Gravity. Unknown names report false.
func ParseGravity(s string) (Gravity, bool) {
	for i, name := range gravityNames {
		if name == s {
			return Gravity(i), true
		}
	}
	return GravityNone, false
}

// Fraction returns the point of a unit box named by g.
func (g Gravity) Fraction() (fx, fy float64) {
	switch g {
	case GravityNorth:
		return 0.5, 0
	case GravityNorthEast:
		return 1, 0
	case GravityEast:
		return 1, 0.5
	case GravitySouthEast:
		return 1, 1
	case GravitySouth:
		return 0.5, 1
	case GravitySouthWest:
		return 0, 1
	case GravityWest:
		return 0, 0.5
	case GravityCenter:
		return 0.5, 0.5
	default:
		return 0, 0
	}
}

// AnchorCoord is either an absolute offset in pixels or a gravity resolved
// against the actor's size when it is read.
type AnchorCoord struct {
	gravity Gravity
	v       Vertex
}

// AbsoluteCoord returns an anchor at a fixed pixel offset.
func AbsoluteCoord(x, y, z float64) AnchorCoord {
	return AnchorCoord{v: Vertex{x, y, z}}
}

// FractionalCoord returns an anchor that tracks g as the actor resizes.
func FractionalCoord(g Gravity) AnchorCoord {
	if g == GravityNone {
		return AnchorCoord{}
	}
	return AnchorCoord{gravity: g}
}

// IsFractional reports whether the coordinate is gravity based.
func (c AnchorCoord) IsFractional() bool { return c.gravity != GravityNone }

// Gravity returns the gravity of a fractional coordinate, or GravityNone.
func (c AnchorCoord) Gravity() Gravity { return c.gravity }

// Resolve returns the pixel offset of the coordinate for an actor of the
// given size. Fractional coordinates always resolve to z = 0.
func (c AnchorCoord) Resolve(width, height float64) Vertex {
	if c.gravity == GravityNone {
		return c.v
	}
	fx, fy := c.gravity.Fraction()
	return Vertex{X: width * fx, Y: height * fy}
}

// IsZero reports whether the coordinate resolves to the origin regardless
// of size.
func (c AnchorCoord) IsZero() bool {
	if c.gravity == GravityNone || c.gravity == GravityNorthWest {
		return c.v == Vertex{}
	}
	return false
}
