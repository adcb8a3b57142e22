package tableau

// Constraint adjusts the box an actor is allocated before it is stored.
type Constraint interface {
	UpdateAllocation(a *Actor, box *Box)
}

// constraintAttacher is implemented by constraints that need to know when
// they are added to an actor.
type constraintAttacher interface {
	attach(a *Actor)
}

type constraintDetacher interface {
	detach(a *Actor)
}

// constraintSource is implemented by constraints that follow another actor.
type constraintSource interface {
	source() *Actor
	clearSource()
}

// AddConstraint appends c to the constraints of a and queues a relayout.
func (a *Actor) AddConstraint(c Constraint) {
	if c == nil {
		panic("tableau: cannot add nil constraint")
	}
	a.constraints = append(a.constraints, c)
	if at, ok := c.(constraintAttacher); ok {
		at.attach(a)
	}
	a.QueueRelayout()
}

// RemoveConstraint removes c from a.
func (a *Actor) RemoveConstraint(c Constraint) {
	for i, x := range a.constraints {
		if x == c {
			copy(a.constraints[i:], a.constraints[i+1:])
			a.constraints[len(a.constraints)-1] = nil
			a.constraints = a.constraints[:len(a.constraints)-1]
			if d, ok := c.(constraintDetacher); ok {
				d.detach(a)
			}
			a.QueueRelayout()
			return
		}
	}
}

// ClearConstraints removes every constraint of a.
func (a *Actor) ClearConstraints() {
	for len(a.constraints) > 0 {
		a.RemoveConstraint(a.constraints[len(a.constraints)-1])
	}
}

// Constraints returns the constraints of a. The returned slice MUST NOT be
// mutated by the caller.
func (a *Actor) Constraints() []Constraint { return a.constraints }

func (a *Actor) applyConstraints(box *Box) {
	for _, c := range a.constraints {
		c.UpdateAllocation(a, box)
	}
}

// dropConstraintSource unbinds every constraint of a that follows src,
// which is being destroyed, and relayouts a.
func (a *Actor) dropConstraintSource(src *Actor) {
	dropped := false
	for _, c := range a.constraints {
		if cs, ok := c.(constraintSource); ok && cs.source() == src {
			cs.clearSource()
			dropped = true
		}
	}
	if dropped {
		a.QueueRelayout()
	}
}

func (a *Actor) addDependent(d *Actor) {
	a.dependents = append(a.dependents, d)
}

func (a *Actor) removeDependent(d *Actor) {
	for i, x := range a.dependents {
		if x == d {
			copy(a.dependents[i:], a.dependents[i+1:])
			a.dependents[len(a.dependents)-1] = nil
			a.dependents = a.dependents[:len(a.dependents)-1]
			return
		}
	}
}

// BindCoordinate selects what a BindConstraint copies from its source.
type BindCoordinate uint8

const (
	BindX BindCoordinate = iota
	BindY
	BindWidth
	BindHeight
	BindPosition
	BindSize
	BindAll
)

// BindConstraint copies a coordinate of Source, plus Offset, into the
// allocation of the constrained actor. A relayout of Source relayouts the
// constrained actor too.
type BindConstraint struct {
	Source     *Actor
	Coordinate BindCoordinate
	Offset     float64
}

// NewBindConstraint returns a BindConstraint.
func NewBindConstraint(source *Actor, coord BindCoordinate, offset float64) *BindConstraint {
	return &BindConstraint{Source: source, Coordinate: coord, Offset: offset}
}

func (c *BindConstraint) attach(a *Actor) {
	if c.Source == nil {
		return
	}
	if c.Source == a || isAncestor(a, c.Source) {
		warnActor(a, "cannot bind an actor to itself or to a descendant")
		c.Source = nil
		return
	}
	c.Source.addDependent(a)
}

func (c *BindConstraint) detach(a *Actor) {
	if c.Source != nil {
		c.Source.removeDependent(a)
	}
}

func (c *BindConstraint) source() *Actor { return c.Source }
func (c *BindConstraint) clearSource()   { c.Source = nil }

// UpdateAllocation implements Constraint.
func (c *BindConstraint) UpdateAllocation(a *Actor, box *Box) {
	if c.Source == nil {
		return
	}
	sx, sy := c.Source.GetPosition()
	sw, sh := c.Source.GetSize()
	w, h := box.Size()

	switch c.Coordinate {
	case BindX:
		box.X1 = sx + c.Offset
		box.X2 = box.X1 + w
	case BindY:
		box.Y1 = sy + c.Offset
		box.Y2 = box.Y1 + h
	case BindPosition:
		box.X1 = sx + c.Offset
		box.Y1 = sy + c.Offset
		box.X2 = box.X1 + w
		box.Y2 = box.Y1 + h
	case BindWidth:
		box.X2 = box.X1 + sw + c.Offset
	case BindHeight:
		box.Y2 = box.Y1 + sh + c.Offset
	case BindSize:
		box.X2 = box.X1 + sw + c.Offset
		box.Y2 = box.Y1 + sh + c.Offset
	case BindAll:
		box.X1 = sx + c.Offset
		box.Y1 = sy + c.Offset
		box.X2 = box.X1 + sw + c.Offset
		box.Y2 = box.Y1 + sh + c.Offset
	}
}

// AlignAxis selects the axes an AlignConstraint acts on.
type AlignAxis uint8

const (
	AlignXAxis AlignAxis = iota
	AlignYAxis
	AlignBoth
)

// AlignConstraint positions the constrained actor inside the size of
// Source: Factor 0 aligns to the start, 1 to the end, 0.5 centers.
type AlignConstraint struct {
	Source *Actor
	Axis   AlignAxis
	Factor float64
}

// NewAlignConstraint returns an AlignConstraint.
func NewAlignConstraint(source *Actor, axis AlignAxis, factor float64) *AlignConstraint {
	return &AlignConstraint{Source: source, Axis: axis, Factor: clamp01(factor)}
}

func (c *AlignConstraint) attach(a *Actor) {
	if c.Source == nil {
		return
	}
	if c.Source == a || isAncestor(a, c.Source) {
		warnActor(a, "cannot align an actor to itself or to a descendant")
		c.Source = nil
		return
	}
	c.Source.addDependent(a)
}

func (c *AlignConstraint) detach(a *Actor) {
	if c.Source != nil {
		c.Source.removeDependent(a)
	}
}

func (c *AlignConstraint) source() *Actor { return c.Source }
func (c *AlignConstraint) clearSource()   { c.Source = nil }

// UpdateAllocation implements Constraint.
func (c *AlignConstraint) UpdateAllocation(a *Actor, box *Box) {
	if c.Source == nil {
		return
	}
	sx, sy := c.Source.GetPosition()
	sw, sh := c.Source.GetSize()
	w, h := box.Size()

	if c.Axis == AlignXAxis || c.Axis == AlignBoth {
		box.X1 = (sw-w)*c.Factor + sx
		box.X2 = box.X1 + w
	}
	if c.Axis == AlignYAxis || c.Axis == AlignBoth {
		box.Y1 = (sh-h)*c.Factor + sy
		box.Y2 = box.Y1 + h
	}
	*box = box.ClampToPixel()
}
