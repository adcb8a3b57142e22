package tableau

// transformInfo holds the transformation properties of an actor. Centers
// and the anchor are kept unresolved and turned into pixels on use.
type transformInfo struct {
	rxAngle, ryAngle, rzAngle    float64
	rxCenter, ryCenter, rzCenter AnchorCoord

	scaleX, scaleY float64
	scaleCenter    AnchorCoord

	anchor AnchorCoord
	depth  float64
}

var defaultTransformInfo = transformInfo{scaleX: 1, scaleY: 1}

func (t *transformInfo) hasFractional() bool {
	return t.rxCenter.IsFractional() || t.ryCenter.IsFractional() || t.rzCenter.IsFractional() ||
		t.scaleCenter.IsFractional() || t.anchor.IsFractional()
}

// Transform returns the model matrix of a relative to its parent. It is
// recomputed only after the allocation, depth, scale, rotation or anchor
// changed.
//
// Composition order:
//
//	Translate(allocation origin) -> Translate(0, 0, depth) -> Scale about center
//	-> RotateZ about center -> RotateY -> RotateX -> Translate(-anchor)
func (a *Actor) Transform() Matrix {
	if a.transformValid {
		return a.transform
	}
	info := &a.xform
	m := IdentityMatrix().Translate(a.allocation.X1, a.allocation.Y1, 0)
	if info.depth != 0 {
		m = m.Translate(0, 0, info.depth)
	}
	if info.scaleX != 1 || info.scaleY != 1 {
		c := a.resolveCoord(info.scaleCenter)
		m = m.Translate(c.X, c.Y, c.Z).Scale(info.scaleX, info.scaleY, 1).Translate(-c.X, -c.Y, -c.Z)
	}
	if info.rzAngle != 0 {
		c := a.resolveCoord(info.rzCenter)
		m = m.Translate(c.X, c.Y, c.Z).RotateZ(info.rzAngle).Translate(-c.X, -c.Y, -c.Z)
	}
	if info.ryAngle != 0 {
		c := a.resolveCoord(info.ryCenter)
		m = m.Translate(c.X, c.Y, c.Z).RotateY(info.ryAngle).Translate(-c.X, -c.Y, -c.Z)
	}
	if info.rxAngle != 0 {
		c := a.resolveCoord(info.rxCenter)
		m = m.Translate(c.X, c.Y, c.Z).RotateX(info.rxAngle).Translate(-c.X, -c.Y, -c.Z)
	}
	if !info.anchor.IsZero() {
		c := a.resolveCoord(info.anchor)
		m = m.Translate(-c.X, -c.Y, -c.Z)
	}
	a.transform = m
	a.transformValid = true
	return m
}

// IsTransformValid reports whether the cached transform is current.
func (a *Actor) IsTransformValid() bool { return a.transformValid }

func (a *Actor) resolveCoord(c AnchorCoord) Vertex {
	if !c.IsFractional() {
		return c.Resolve(0, 0)
	}
	w, h := a.GetSize()
	return c.Resolve(w, h)
}

func (a *Actor) invalidateTransform() {
	a.transformValid = false
	a.QueueRedraw()
}

// --- Scale ---

// Scale returns the scale factors of a.
func (a *Actor) Scale() (sx, sy float64) { return a.xform.scaleX, a.xform.scaleY }

// ScaleCenter returns the resolved center of scaling, in pixels.
func (a *Actor) ScaleCenter() (x, y float64) {
	c := a.resolveCoord(a.xform.scaleCenter)
	return c.X, c.Y
}

// ScaleGravity returns the gravity of the scale center, or GravityNone
// when it is absolute.
func (a *Actor) ScaleGravity() Gravity { return a.xform.scaleCenter.Gravity() }

// SetScale scales a about its current scale center.
func (a *Actor) SetScale(sx, sy float64) {
	info := &a.xform
	if info.scaleX == sx && info.scaleY == sy {
		return
	}
	batch := a.FreezeNotify()
	if info.scaleX != sx {
		info.scaleX = sx
		a.notify(PropScaleX)
	}
	if info.scaleY != sy {
		info.scaleY = sy
		a.notify(PropScaleY)
	}
	a.invalidateTransform()
	batch.Thaw()
}

// SetScaleFull scales a about the pixel position (cx, cy).
func (a *Actor) SetScaleFull(sx, sy, cx, cy float64) {
	batch := a.FreezeNotify()
	a.setScaleCenter(AbsoluteCoord(cx, cy, 0))
	a.SetScale(sx, sy)
	batch.Thaw()
}

// SetScaleWithGravity scales a about the point named by g, which follows
// the actor as it resizes.
func (a *Actor) SetScaleWithGravity(sx, sy float64, g Gravity) {
	batch := a.FreezeNotify()
	if g == GravityNone {
		a.setScaleCenter(AbsoluteCoord(0, 0, 0))
	} else {
		a.setScaleCenter(FractionalCoord(g))
	}
	a.SetScale(sx, sy)
	batch.Thaw()
}

func (a *Actor) setScaleCenter(c AnchorCoord) {
	old := a.xform.scaleCenter
	if old == c {
		return
	}
	a.xform.scaleCenter = c
	if old.IsFractional() || c.IsFractional() {
		a.notify(PropScaleGravity)
	}
	a.notify(PropScaleCenter)
	a.invalidateTransform()
}

// --- Rotation ---

func (a *Actor) rotation(axis RotateAxis) (*float64, *AnchorCoord, Property, Property) {
	info := &a.xform
	switch axis {
	case XAxis:
		return &info.rxAngle, &info.rxCenter, PropRotationAngleX, PropRotationCenterX
	case YAxis:
		return &info.ryAngle, &info.ryCenter, PropRotationAngleY, PropRotationCenterY
	default:
		return &info.rzAngle, &info.rzCenter, PropRotationAngleZ, PropRotationCenterZ
	}
}

// Rotation returns the angle in degrees around axis and the resolved
// center of that rotation.
func (a *Actor) Rotation(axis RotateAxis) (angle, x, y, z float64) {
	ang, center, _, _ := a.rotation(axis)
	c := a.resolveCoord(*center)
	return *ang, c.X, c.Y, c.Z
}

// SetRotation rotates a by angle degrees around axis, about the pixel
// position (x, y, z).
func (a *Actor) SetRotation(axis RotateAxis, angle, x, y, z float64) {
	batch := a.FreezeNotify()
	a.setRotationCenter(axis, AbsoluteCoord(x, y, z))
	a.SetRotationAngle(axis, angle)
	batch.Thaw()
}

// SetRotationAngle changes the angle around axis keeping its center.
func (a *Actor) SetRotationAngle(axis RotateAxis, angle float64) {
	ang, _, prop, _ := a.rotation(axis)
	if *ang == angle {
		return
	}
	*ang = angle
	a.notify(prop)
	a.invalidateTransform()
}

// SetZRotationFromGravity rotates a around the Z axis about the point
// named by g. The center follows the actor as it resizes.
func (a *Actor) SetZRotationFromGravity(angle float64, g Gravity) {
	batch := a.FreezeNotify()
	if g == GravityNone {
		a.setRotationCenter(ZAxis, AbsoluteCoord(0, 0, 0))
	} else {
		a.setRotationCenter(ZAxis, FractionalCoord(g))
	}
	a.SetRotationAngle(ZAxis, angle)
	batch.Thaw()
}

// ZRotationGravity returns the gravity of the Z rotation center.
func (a *Actor) ZRotationGravity() Gravity { return a.xform.rzCenter.Gravity() }

func (a *Actor) setRotationCenter(axis RotateAxis, c AnchorCoord) {
	_, center, _, prop := a.rotation(axis)
	old := *center
	if old == c {
		return
	}
	*center = c
	if axis == ZAxis && (old.IsFractional() || c.IsFractional()) {
		a.notify(PropRotationCenterZGravity)
	}
	a.notify(prop)
	a.invalidateTransform()
}

// --- Anchor point ---

// AnchorPoint returns the resolved anchor point in pixels.
func (a *Actor) AnchorPoint() (x, y float64) {
	c := a.resolveCoord(a.xform.anchor)
	return c.X, c.Y
}

// AnchorPointGravity returns the gravity of the anchor point.
func (a *Actor) AnchorPointGravity() Gravity { return a.xform.anchor.Gravity() }

// SetAnchorPoint places the point (x, y) of a at its allocation origin.
func (a *Actor) SetAnchorPoint(x, y float64) {
	a.setAnchor(AbsoluteCoord(x, y, 0))
}

// SetAnchorPointFromGravity anchors a at the point named by g.
func (a *Actor) SetAnchorPointFromGravity(g Gravity) {
	if g == GravityNone {
		a.setAnchor(AbsoluteCoord(0, 0, 0))
		return
	}
	a.setAnchor(FractionalCoord(g))
}

func (a *Actor) setAnchor(c AnchorCoord) {
	old := a.xform.anchor
	if old == c {
		return
	}
	batch := a.FreezeNotify()
	a.xform.anchor = c
	if old.IsFractional() || c.IsFractional() {
		a.notify(PropAnchorGravity)
	}
	a.notify(PropAnchor)
	a.invalidateTransform()
	batch.Thaw()
}

// MoveAnchorPoint changes the anchor point and, when a has a fixed
// position, moves it by the same amount so it stays visually still.
func (a *Actor) MoveAnchorPoint(x, y float64) {
	oldX, oldY := a.AnchorPoint()
	batch := a.FreezeNotify()
	a.SetAnchorPoint(x, y)
	if a.layout.positionSet {
		a.MoveBy(x-oldX, y-oldY)
	}
	batch.Thaw()
}

// MoveAnchorPointFromGravity is the gravity form of MoveAnchorPoint.
func (a *Actor) MoveAnchorPointFromGravity(g Gravity) {
	oldX, oldY := a.AnchorPoint()
	batch := a.FreezeNotify()
	a.SetAnchorPointFromGravity(g)
	x, y := a.AnchorPoint()
	if a.layout.positionSet {
		a.MoveBy(x-oldX, y-oldY)
	}
	batch.Thaw()
}

// --- Depth ---

// Depth returns the Z position of a.
func (a *Actor) Depth() float64 { return a.xform.depth }

// SetDepth sets the Z position of a. Siblings paint in increasing depth.
func (a *Actor) SetDepth(depth float64) {
	if a.xform.depth == depth {
		return
	}
	a.xform.depth = depth
	if a.parent != nil {
		a.parent.childrenSorted = false
	}
	a.invalidateTransform()
	a.notify(PropDepth)
}

// --- Relative transforms ---

// applyRelativeTransform post-multiplies m by the transforms from the
// outermost ancestor below ancestor down to a. A nil ancestor, or one that
// is not an ancestor of a, includes the whole chain up to the toplevel.
func (a *Actor) applyRelativeTransform(ancestor *Actor, m Matrix) Matrix {
	if a == ancestor {
		return m
	}
	if a.parent != nil {
		m = a.parent.applyRelativeTransform(ancestor, m)
	}
	return m.Multiply(a.Transform())
}

// ApplyRelativeTransform post-multiplies *m by the transform of a relative
// to ancestor (nil for the stage). The stage device transform is not
// included.
func (a *Actor) ApplyRelativeTransform(ancestor *Actor, m *Matrix) {
	*m = a.applyRelativeTransform(ancestor, *m)
}

// RelativeTransform returns the transform of a relative to ancestor.
func (a *Actor) RelativeTransform(ancestor *Actor) Matrix {
	return a.applyRelativeTransform(ancestor, IdentityMatrix())
}

// eyeTransform returns the matrix mapping actor coordinates to stage
// device coordinates.
func (a *Actor) eyeTransform() Matrix {
	m := IdentityMatrix()
	if s := a.Stage(); s != nil {
		m = s.deviceTransform()
	}
	return a.applyRelativeTransform(nil, m)
}

// ApplyTransformToPoint maps point from actor coordinates to stage
// coordinates.
func (a *Actor) ApplyTransformToPoint(point Vertex) Vertex {
	return a.eyeTransform().TransformVertex(point)
}

// ApplyRelativeTransformToPoint maps point from actor coordinates to the
// coordinates of ancestor.
func (a *Actor) ApplyRelativeTransformToPoint(ancestor *Actor, point Vertex) Vertex {
	return a.RelativeTransform(ancestor).TransformVertex(point)
}

// TransformStagePoint maps the stage point (x, y) onto the plane of a,
// returning actor coordinates. It reports false when the actor plane is
// seen edge on.
func (a *Actor) TransformStagePoint(x, y float64) (ax, ay float64, ok bool) {
	return a.eyeTransform().Unproject2D(x, y)
}

// AbsAllocationVertices returns the corners of the allocation of a in
// stage coordinates: top-left, top-right, bottom-left, bottom-right.
func (a *Actor) AbsAllocationVertices() [4]Vertex {
	box := a.AllocationBox()
	w, h := box.Size()
	return a.projectBox(w, h)
}

func (a *Actor) projectBox(w, h float64) [4]Vertex {
	m := a.eyeTransform()
	return [4]Vertex{
		m.TransformVertex(Vertex{}),
		m.TransformVertex(Vertex{X: w}),
		m.TransformVertex(Vertex{Y: h}),
		m.TransformVertex(Vertex{X: w, Y: h}),
	}
}

// GetTransformedPosition returns the stage position of the allocation
// origin of a.
func (a *Actor) GetTransformedPosition() (x, y float64) {
	v := a.AbsAllocationVertices()
	return v[0].X, v[0].Y
}

// GetTransformedSize returns the size of the stage-space bounding box of
// a. Before the first allocation the natural size is projected instead.
func (a *Actor) GetTransformedSize() (w, h float64) {
	var v [4]Vertex
	if a.needsAllocation {
		_, _, nw, nh := a.GetPreferredSize()
		v = a.projectBox(nw, nh)
	} else {
		v = a.AbsAllocationVertices()
	}
	return BoxFromVertices(v[:]).Size()
}
