package tableau

// PaintVolume is an oriented bounding volume used for culling and for
// computing clipped redraw regions.
//
// The eight vertices are laid out front face first:
//
//	0 front-top-left    1 front-top-right
//	3 front-bottom-left 2 front-bottom-right
//	4..7 the same corners on the back face
//
// While the volume is axis aligned only vertices 0, 1, 3 and 4 are
// maintained; the others are derived lazily by complete().
//
// A volume is expressed in the coordinate space of its reference actor.
// A nil reference actor means eye (stage device) coordinates.
type PaintVolume struct {
	actor       *Actor
	vertices    [8]Vertex
	empty       bool
	axisAligned bool
	complete    bool
	is2D        bool
}

// NewPaintVolume returns an empty volume in the coordinate space of actor.
func NewPaintVolume(actor *Actor) PaintVolume {
	return PaintVolume{
		actor:       actor,
		empty:       true,
		axisAligned: true,
		complete:    true,
		is2D:        true,
	}
}

// Actor returns the reference actor, or nil for eye coordinates.
func (pv *PaintVolume) Actor() *Actor { return pv.actor }

// SetReferenceActor changes the actor the volume is considered relative to
// without transforming the vertices.
func (pv *PaintVolume) SetReferenceActor(a *Actor) { pv.actor = a }

// IsEmpty reports whether the volume has no extent on any axis.
func (pv *PaintVolume) IsEmpty() bool { return pv.empty }

// Is2D reports whether the volume has no depth.
func (pv *PaintVolume) Is2D() bool { return pv.is2D }

// IsAxisAligned reports whether the volume is still axis aligned.
func (pv *PaintVolume) IsAxisAligned() bool { return pv.axisAligned }

// Vertices returns the completed vertices of the volume. 2D volumes
// return the four front vertices only.
func (pv *PaintVolume) Vertices() []Vertex {
	pv.completeVertices()
	if pv.is2D {
		return append([]Vertex(nil), pv.vertices[:4]...)
	}
	return append([]Vertex(nil), pv.vertices[:]...)
}

// SetOrigin moves the volume so that vertex 0 is at origin.
func (pv *PaintVolume) SetOrigin(origin Vertex) {
	if !pv.axisAligned {
		Logger().Warn("tableau: SetOrigin on a non axis-aligned paint volume")
		return
	}
	dx := origin.X - pv.vertices[0].X
	dy := origin.Y - pv.vertices[0].Y
	dz := origin.Z - pv.vertices[0].Z
	for _, i := range [4]int{0, 1, 3, 4} {
		pv.vertices[i].X += dx
		pv.vertices[i].Y += dy
		pv.vertices[i].Z += dz
	}
	pv.complete = false
}

// Origin returns vertex 0.
func (pv *PaintVolume) Origin() Vertex { return pv.vertices[0] }

func (pv *PaintVolume) updateEmpty() {
	pv.empty = pv.vertices[0].X == pv.vertices[1].X &&
		pv.vertices[0].Y == pv.vertices[3].Y &&
		pv.vertices[0].Z == pv.vertices[4].Z
}

// expandFromOrigin makes the key vertices coincide with the origin, which is
// the only valid vertex of an empty volume.
func (pv *PaintVolume) expandFromOrigin() {
	if pv.empty {
		pv.vertices[1] = pv.vertices[0]
		pv.vertices[3] = pv.vertices[0]
		pv.vertices[4] = pv.vertices[0]
	}
}

// SetWidth sets the extent of the volume along X. Negative widths are ignored.
func (pv *PaintVolume) SetWidth(width float64) {
	if !pv.axisAligned || width < 0 {
		Logger().Warn("tableau: invalid SetWidth on paint volume", "width", width)
		return
	}
	pv.expandFromOrigin()
	pv.vertices[1].X = pv.vertices[0].X + width
	pv.complete = false
	pv.updateEmpty()
}

// SetHeight sets the extent of the volume along Y. Negative heights are ignored.
func (pv *PaintVolume) SetHeight(height float64) {
	if !pv.axisAligned || height < 0 {
		Logger().Warn("tableau: invalid SetHeight on paint volume", "height", height)
		return
	}
	pv.expandFromOrigin()
	pv.vertices[3].Y = pv.vertices[0].Y + height
	pv.complete = false
	pv.updateEmpty()
}

// SetDepth sets the extent of the volume along Z. Negative depths are ignored.
func (pv *PaintVolume) SetDepth(depth float64) {
	if !pv.axisAligned || depth < 0 {
		Logger().Warn("tableau: invalid SetDepth on paint volume", "depth", depth)
		return
	}
	pv.expandFromOrigin()
	pv.vertices[4].Z = pv.vertices[0].Z + depth
	pv.is2D = depth == 0
	pv.complete = false
	pv.updateEmpty()
}

func (pv *PaintVolume) alignedCopy() PaintVolume {
	if pv.axisAligned {
		return *pv
	}
	c := *pv
	c.AxisAlign()
	return c
}

// Width returns the X extent of the volume, axis aligning a copy if needed.
func (pv *PaintVolume) Width() float64 {
	if pv.empty {
		return 0
	}
	c := pv.alignedCopy()
	return c.vertices[1].X - c.vertices[0].X
}

// Height returns the Y extent of the volume.
func (pv *PaintVolume) Height() float64 {
	if pv.empty {
		return 0
	}
	c := pv.alignedCopy()
	return c.vertices[3].Y - c.vertices[0].Y
}

// Depth returns the Z extent of the volume.
func (pv *PaintVolume) Depth() float64 {
	if pv.empty {
		return 0
	}
	c := pv.alignedCopy()
	return c.vertices[4].Z - c.vertices[0].Z
}

// Union grows pv to the bounding box enclosing both pv and other.
// Empty volumes never contribute their origin.
func (pv *PaintVolume) Union(other *PaintVolume) {
	if !pv.axisAligned {
		Logger().Warn("tableau: Union into a non axis-aligned paint volume")
		return
	}
	if other.empty {
		return
	}
	if pv.empty {
		for _, i := range [4]int{0, 1, 3, 4} {
			pv.vertices[i] = other.vertices[i]
		}
		pv.is2D = other.is2D
		if !other.axisAligned {
			// a transformed volume keeps all eight vertices meaningful
			pv.vertices = other.vertices
			pv.axisAligned = false
			pv.complete = true
			pv.AxisAlign()
		}
		pv.empty = false
		pv.complete = false
		return
	}

	o := other.alignedCopy()
	v := &pv.vertices
	if o.vertices[0].X < v[0].X {
		v[0].X, v[3].X, v[4].X = o.vertices[0].X, o.vertices[0].X, o.vertices[0].X
	}
	if o.vertices[1].X > v[1].X {
		v[1].X = o.vertices[1].X
	}
	if o.vertices[0].Y < v[0].Y {
		v[0].Y, v[1].Y, v[4].Y = o.vertices[0].Y, o.vertices[0].Y, o.vertices[0].Y
	}
	if o.vertices[3].Y > v[3].Y {
		v[3].Y = o.vertices[3].Y
	}
	if o.vertices[0].Z < v[0].Z {
		v[0].Z, v[1].Z, v[3].Z = o.vertices[0].Z, o.vertices[0].Z, o.vertices[0].Z
	}
	if o.vertices[4].Z > v[4].Z {
		v[4].Z = o.vertices[4].Z
	}
	pv.is2D = v[4].Z == v[0].Z
	pv.empty = false
	pv.complete = false
}

// completeVertices derives vertices 2, 5, 6 and 7 from the key vertices.
func (pv *PaintVolume) completeVertices() {
	if pv.complete || pv.empty {
		return
	}
	if !pv.axisAligned {
		return
	}
	v := &pv.vertices
	v[2] = Vertex{v[1].X, v[3].Y, v[0].Z}
	if !pv.is2D {
		v[5] = Vertex{v[1].X, v[0].Y, v[4].Z}
		v[6] = Vertex{v[1].X, v[3].Y, v[4].Z}
		v[7] = Vertex{v[0].X, v[3].Y, v[4].Z}
	}
	pv.complete = true
}

func (pv *PaintVolume) vertexCount() int {
	if pv.is2D {
		return 4
	}
	return 8
}

// BoundingBox returns the 2D bounding box of the volume in its own
// coordinate space.
func (pv *PaintVolume) BoundingBox() Box {
	if pv.empty {
		return Box{X1: pv.vertices[0].X, Y1: pv.vertices[0].Y, X2: pv.vertices[0].X, Y2: pv.vertices[0].Y}
	}
	pv.completeVertices()
	return BoxFromVertices(pv.vertices[:pv.vertexCount()])
}

// Transform applies m to every meaningful vertex. The volume is no longer
// axis aligned afterwards.
func (pv *PaintVolume) Transform(m Matrix) {
	if pv.empty {
		pv.vertices[0] = m.TransformVertex(pv.vertices[0])
		return
	}
	pv.completeVertices()
	n := pv.vertexCount()
	for i := 0; i < n; i++ {
		pv.vertices[i] = m.TransformVertex(pv.vertices[i])
	}
	pv.axisAligned = false
}

// AxisAlign replaces a transformed volume with the axis-aligned volume
// enclosing it.
func (pv *PaintVolume) AxisAlign() {
	if pv.empty || pv.axisAligned {
		return
	}
	v := &pv.vertices
	origin := v[0]
	maxX, maxY, maxZ := v[0].X, v[0].Y, v[0].Z
	for i := 1; i < pv.vertexCount(); i++ {
		if v[i].X < origin.X {
			origin.X = v[i].X
		} else if v[i].X > maxX {
			maxX = v[i].X
		}
		if v[i].Y < origin.Y {
			origin.Y = v[i].Y
		} else if v[i].Y > maxY {
			maxY = v[i].Y
		}
		if v[i].Z < origin.Z {
			origin.Z = v[i].Z
		} else if v[i].Z > maxZ {
			maxZ = v[i].Z
		}
	}
	v[0] = origin
	v[1] = Vertex{maxX, origin.Y, origin.Z}
	v[3] = Vertex{origin.X, maxY, origin.Z}
	v[4] = Vertex{origin.X, origin.Y, maxZ}
	pv.complete = false
	pv.axisAligned = true
	pv.is2D = v[4].Z == v[0].Z
}

// Cull tests the volume against clip planes. The volume must already be in
// eye coordinates.
func (pv *PaintVolume) Cull(planes []Plane) CullResult {
	if pv.empty {
		return CullOut
	}
	if pv.actor != nil {
		Logger().Warn("tableau: culling a paint volume that is not in eye coordinates")
		return CullIn
	}
	pv.completeVertices()
	n := pv.vertexCount()
	partial := false
	for _, plane := range planes {
		out := 0
		for j := 0; j < n; j++ {
			if plane.Distance(pv.vertices[j]) < 0 {
				out++
			}
		}
		if out == n {
			return CullOut
		}
		if out != 0 {
			partial = true
		}
	}
	if partial {
		return CullPartial
	}
	return CullIn
}

// SetFromAllocation sets the volume to cover the allocation of a, in a's
// coordinate space. It reports false if a has no allocation or a zero size.
func (pv *PaintVolume) SetFromAllocation(a *Actor) bool {
	if !a.HasAllocation() {
		return false
	}
	w, h := a.allocation.Size()
	if w == 0 || h == 0 {
		return false
	}
	pv.SetWidth(w)
	pv.SetHeight(h)
	return true
}

// TransformRelative transforms the volume from its reference actor's space
// into ancestor's space. A nil ancestor means eye coordinates, which also
// applies the stage device transform.
func (pv *PaintVolume) TransformRelative(ancestor *Actor) {
	a := pv.actor
	if a == nil {
		Logger().Warn("tableau: TransformRelative on a volume already in eye coordinates")
		return
	}
	m := IdentityMatrix()
	if ancestor == nil {
		stage := a.Stage()
		if stage == nil {
			return
		}
		m = stage.deviceTransform()
		pv.actor = nil
	} else {
		pv.actor = ancestor
	}
	m = a.applyRelativeTransform(ancestor, m)
	pv.Transform(m)
}

// StagePaintBox returns the pixel-aligned stage box covered by the volume.
func (pv *PaintVolume) StagePaintBox(stage *Stage) Box {
	projected := *pv
	if projected.actor != nil {
		m := stage.deviceTransform()
		m = projected.actor.applyRelativeTransform(nil, m)
		projected.Transform(m)
		projected.actor = nil
	}
	return projected.BoundingBox().ClampToPixel()
}
