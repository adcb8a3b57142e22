package tableau

import (
	"testing"
)

func TestTransformFollowsAllocation(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("a")
	a.SetPosition(30, 40)
	a.SetSize(10, 10)
	s.Add(a)
	s.Update()

	assertMatrix(t, "transform", a.Transform(), IdentityMatrix().Translate(30, 40, 0))
	if !a.IsTransformValid() {
		t.Error("transform should be cached")
	}
	a.SetPosition(50, 40)
	s.Update()
	assertMatrix(t, "transform after move", a.Transform(), IdentityMatrix().Translate(50, 40, 0))
}

func TestOpacityKeepsTransform(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("a")
	s.Add(a)
	s.Update()
	a.Transform()

	a.SetOpacity(100)
	a.SetReactive(true)
	a.SetName("renamed")
	if !a.IsTransformValid() {
		t.Error("opacity, reactivity and name must not invalidate the transform")
	}

	a.SetScale(2, 2)
	if a.IsTransformValid() {
		t.Error("scale must invalidate the transform")
	}
	a.Transform()
	a.SetDepth(3)
	if a.IsTransformValid() {
		t.Error("depth must invalidate the transform")
	}
}

func TestRotationCenterFollowsSize(t *testing.T) {
	a := NewActor("a")
	a.SetSize(50, 30)
	a.SetZRotationFromGravity(45, GravityCenter)

	angle, x, y, _ := a.Rotation(ZAxis)
	assertNear(t, "angle", angle, 45)
	assertNear(t, "center x", x, 25)
	assertNear(t, "center y", y, 15)
	if a.ZRotationGravity() != GravityCenter {
		t.Errorf("gravity = %v", a.ZRotationGravity())
	}

	a.SetSize(100, 60)
	_, x, y, _ = a.Rotation(ZAxis)
	assertNear(t, "center x after resize", x, 50)
	assertNear(t, "center y after resize", y, 30)
}

func TestRotationCenterFollowsAllocation(t *testing.T) {
	s := newShownStage(t, 400, 400)
	a := NewActor("a")
	a.SetSize(50, 50)
	a.SetZRotationFromGravity(90, GravityCenter)
	s.Add(a)
	s.Update()
	a.Transform()

	a.SetSize(100, 100)
	if a.IsTransformValid() {
		t.Error("resizing must invalidate a transform with a gravity center")
	}
	s.Update()
	// a 90 degree turn about the center maps the center onto itself
	c := a.Transform().TransformVertex(Vertex{X: 50, Y: 50})
	assertNear(t, "center x", c.X, 50)
	assertNear(t, "center y", c.Y, 50)
}

func TestAbsoluteRotationCenter(t *testing.T) {
	a := NewActor("a")
	a.SetRotation(XAxis, 30, 1, 2, 3)
	angle, x, y, z := a.Rotation(XAxis)
	assertNear(t, "angle", angle, 30)
	assertNear(t, "x", x, 1)
	assertNear(t, "y", y, 2)
	assertNear(t, "z", z, 3)
}

func TestAnchorPoint(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("a")
	a.SetPosition(50, 50)
	a.SetSize(20, 10)
	a.SetAnchorPoint(10, 5)
	s.Add(a)
	s.Update()

	x, y := a.GetTransformedPosition()
	assertNear(t, "x", x, 40)
	assertNear(t, "y", y, 45)

	a.SetAnchorPointFromGravity(GravitySouthEast)
	ax, ay := a.AnchorPoint()
	assertNear(t, "anchor x", ax, 20)
	assertNear(t, "anchor y", ay, 10)
}

func TestMoveAnchorPointKeepsActorStill(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("a")
	a.SetPosition(50, 50)
	a.SetSize(20, 20)
	s.Add(a)
	s.Update()

	a.MoveAnchorPointFromGravity(GravityCenter)
	s.Update()

	x, y := a.GetPosition()
	assertNear(t, "x", x, 60)
	assertNear(t, "y", y, 60)
	tx, ty := a.GetTransformedPosition()
	assertNear(t, "transformed x", tx, 50)
	assertNear(t, "transformed y", ty, 50)
}

func TestScaleAboutCenter(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("a")
	a.SetPosition(10, 10)
	a.SetSize(20, 20)
	a.SetScaleWithGravity(2, 2, GravityCenter)
	s.Add(a)
	s.Update()

	v := a.AbsAllocationVertices()
	assertNear(t, "top-left x", v[0].X, 0)
	assertNear(t, "top-left y", v[0].Y, 0)
	assertNear(t, "bottom-right x", v[3].X, 40)
	assertNear(t, "bottom-right y", v[3].Y, 40)

	cx, cy := a.ScaleCenter()
	assertNear(t, "center x", cx, 10)
	assertNear(t, "center y", cy, 10)
}

func TestTransformedSizeBeforeAllocation(t *testing.T) {
	a := NewActor("a")
	a.SetSize(20, 10)
	a.SetScale(2, 3)
	w, h := a.GetTransformedSize()
	assertNear(t, "width", w, 40)
	assertNear(t, "height", h, 30)

	a.SetScale(1, 1)
	a.SetZRotationFromGravity(90, GravityCenter)
	w, h = a.GetTransformedSize()
	assertNear(t, "rotated width", w, 10)
	assertNear(t, "rotated height", h, 20)
}

func TestApplyTransformToPointNested(t *testing.T) {
	s := newShownStage(t, 200, 200)
	p := NewActor("p")
	p.SetPosition(10, 20)
	c := NewActor("c")
	c.SetPosition(5, 5)
	c.SetSize(10, 10)
	p.AddChild(c)
	s.Add(p)
	s.Update()

	v := c.ApplyTransformToPoint(Vertex{X: 1, Y: 1})
	assertNear(t, "stage x", v.X, 16)
	assertNear(t, "stage y", v.Y, 26)

	v = c.ApplyRelativeTransformToPoint(p, Vertex{X: 1, Y: 1})
	assertNear(t, "parent x", v.X, 6)
	assertNear(t, "parent y", v.Y, 6)

	s.SetScale(2)
	v = c.ApplyTransformToPoint(Vertex{})
	assertNear(t, "device x", v.X, 30)
	assertNear(t, "device y", v.Y, 50)
}

func TestTransformStagePoint(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("a")
	a.SetPosition(10, 20)
	a.SetSize(50, 50)
	s.Add(a)
	s.Update()

	x, y, ok := a.TransformStagePoint(15, 25)
	if !ok {
		t.Fatal("TransformStagePoint failed")
	}
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, 5)

	a.SetScaleFull(2, 2, 0, 0)
	x, y, _ = a.TransformStagePoint(30, 40)
	assertNear(t, "scaled x", x, 10)
	assertNear(t, "scaled y", y, 10)

	a.SetRotation(YAxis, 90, 0, 0, 0)
	if _, _, ok := a.TransformStagePoint(30, 40); ok {
		t.Error("an edge-on actor cannot be unprojected")
	}
}
