package tableau

// Renderer is the drawing backend used by paint and pick traversals. Boxes
// passed to PushClip, FillRect and FillPick are in the coordinate space of
// the current modelview matrix.
type Renderer interface {
	PushMatrix()
	PopMatrix()
	// ApplyTransform post-multiplies the modelview by m.
	ApplyTransform(m Matrix)
	Modelview() Matrix

	PushClip(b Box)
	PopClip()

	FillRect(b Box, c Color, opacity uint8)
	// FillPick paints b with the color encoding pickID. Only called while
	// picking.
	FillPick(b Box, pickID int32)

	// Offscreen reports whether the renderer targets something other than
	// the stage framebuffer. Culling against the stage clip is skipped for
	// offscreen targets.
	Offscreen() bool
}

// MatrixStack implements the modelview half of a Renderer. The zero value
// starts at the identity matrix.
type MatrixStack struct {
	stack   []Matrix
	current Matrix
	set     bool
}

// Modelview returns the current matrix.
func (s *MatrixStack) Modelview() Matrix {
	if !s.set {
		return IdentityMatrix()
	}
	return s.current
}

// SetModelview replaces the current matrix.
func (s *MatrixStack) SetModelview(m Matrix) {
	s.current = m
	s.set = true
}

// PushMatrix saves the current matrix.
func (s *MatrixStack) PushMatrix() {
	s.stack = append(s.stack, s.Modelview())
}

// PopMatrix restores the matrix saved by the matching PushMatrix.
func (s *MatrixStack) PopMatrix() {
	n := len(s.stack)
	if n == 0 {
		panic("tableau: PopMatrix without a matching PushMatrix")
	}
	s.SetModelview(s.stack[n-1])
	s.stack = s.stack[:n-1]
}

// ApplyTransform post-multiplies the current matrix by m.
func (s *MatrixStack) ApplyTransform(m Matrix) {
	s.SetModelview(s.Modelview().Multiply(m))
}

// Depth returns the number of saved matrices.
func (s *MatrixStack) Depth() int { return len(s.stack) }

// Reset drops all saved matrices and restarts at base.
func (s *MatrixStack) Reset(base Matrix) {
	s.stack = s.stack[:0]
	s.SetModelview(base)
}

// ClipStack tracks nested clip rectangles as device-space boxes. Each pushed
// box is transformed by the modelview, reduced to its bounding box and
// intersected with the enclosing clip.
type ClipStack struct {
	boxes []Box
}

// Push adds b, given in the space of modelview, and returns the resulting
// device-space clip.
func (c *ClipStack) Push(b Box, modelview Matrix) Box {
	verts := [4]Vertex{
		modelview.TransformVertex(Vertex{X: b.X1, Y: b.Y1}),
		modelview.TransformVertex(Vertex{X: b.X2, Y: b.Y1}),
		modelview.TransformVertex(Vertex{X: b.X1, Y: b.Y2}),
		modelview.TransformVertex(Vertex{X: b.X2, Y: b.Y2}),
	}
	device := BoxFromVertices(verts[:])
	if top, ok := c.Top(); ok {
		device = device.Intersect(top)
	}
	c.boxes = append(c.boxes, device)
	return device
}

// Pop removes the innermost clip.
func (c *ClipStack) Pop() {
	n := len(c.boxes)
	if n == 0 {
		panic("tableau: PopClip without a matching PushClip")
	}
	c.boxes = c.boxes[:n-1]
}

// Top returns the innermost clip.
func (c *ClipStack) Top() (Box, bool) {
	if len(c.boxes) == 0 {
		return Box{}, false
	}
	return c.boxes[len(c.boxes)-1], true
}

// Len returns the number of active clips.
func (c *ClipStack) Len() int { return len(c.boxes) }

// Reset drops every clip.
func (c *ClipStack) Reset() { c.boxes = c.boxes[:0] }
