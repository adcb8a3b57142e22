package tableau

// actorIDCounter is a plain counter (no atomic: tableau is single-threaded).
var actorIDCounter uint32

func nextActorID() uint32 {
	actorIDCounter++
	return actorIDCounter
}

// Actor is a node of the scene graph. Every visual element is an Actor;
// specialised behavior is supplied through the hook fields below rather
// than through subtyping.
type Actor struct {
	// Identity
	ID   uint32
	name string

	// Hierarchy. The parent owns its children; parent is a back reference.
	parent         *Actor
	children       []*Actor
	sortedChildren []*Actor // reused buffer, children in paint (depth) order
	childrenSorted bool
	stage          *Stage // only set on the toplevel actor owned by a Stage

	// Public state flags
	visible  bool
	mapped   bool
	realized bool
	reactive bool
	toplevel bool

	// Private state flags
	inDestruction   bool
	destroyed       bool
	inReparent      bool
	inRelayout      bool
	inPaint         bool
	showOnSetParent bool
	paintUnmapped   int

	// Size negotiation
	requestMode        RequestMode
	needsWidthRequest  bool
	needsHeightRequest bool
	needsAllocation    bool
	widthRequests      [cachedSizeRequests]sizeRequest
	heightRequests     [cachedSizeRequests]sizeRequest
	cachedWidthAge     uint32
	cachedHeightAge    uint32
	layout             layoutInfo
	allocation         Box
	allocationFlags    AllocationFlags
	constraints        []Constraint
	dependents         []*Actor // actors whose constraints read this actor

	// Appearance
	opacity          uint8
	opacityOverride  int
	clip             Box
	hasClip          bool
	clipToAllocation bool

	// Transform
	xform          transformInfo
	transform      Matrix
	transformValid bool

	// Eye-space paint volume of the last paint
	lastPaintVolume      PaintVolume
	lastPaintVolumeValid bool

	// Redraw queue state
	redrawEntry         *redrawEntry
	queueRedrawClip     *PaintVolume
	isDirty             bool
	propagatedOneRedraw bool
	effectToRedraw      Effect
	effects             []Effect
	currentEffect       Effect
	nextEffect          int
	cloned              int
	pickID              int32

	// Notifications
	handlers      []notifyHandler
	nextHandlerID HandlerID
	freezeCount   int
	pendingNotify uint64
	pendingOrder  []Property

	// Metadata
	UserData any

	// PreferredWidthFunc computes the minimum and natural width for the given
	// height (negative means unconstrained). Nil uses the fixed layout: the
	// extent of the visible children at their fixed positions.
	PreferredWidthFunc func(a *Actor, forHeight float64) (min, natural float64)
	// PreferredHeightFunc is the height counterpart of PreferredWidthFunc.
	PreferredHeightFunc func(a *Actor, forWidth float64) (min, natural float64)
	// AllocateFunc lays out the children once the actor's own allocation has
	// been stored. Nil gives every child its preferred size at its fixed
	// position.
	AllocateFunc func(a *Actor, box Box, flags AllocationFlags)

	// PaintFunc issues the actor's own draw calls, in actor coordinates.
	PaintFunc func(a *Actor, r Renderer)
	// PickFunc paints the pick silhouette. Nil fills the allocation.
	PickFunc func(a *Actor, r Renderer, pickID int32)
	// PaintVolumeFunc fills pv (already relative to a) with the volume the
	// actor paints into and reports whether it could.
	PaintVolumeFunc func(a *Actor, pv *PaintVolume) bool

	// OnQueueRedraw runs when a redraw originating at origin reaches a,
	// before it propagates to the parent.
	OnQueueRedraw func(a *Actor, origin *Actor)
	// OnQueueRelayout runs when a relayout reaches a, before it propagates.
	OnQueueRelayout func(a *Actor)

	OnRealize   func(a *Actor)
	OnUnrealize func(a *Actor)
	OnMap       func(a *Actor)
	OnUnmap     func(a *Actor)
	OnDestroy   func(a *Actor)
}

func actorDefaults(a *Actor) {
	a.ID = nextActorID()
	a.visible = true
	a.showOnSetParent = true
	a.opacity = 255
	a.opacityOverride = -1
	a.pickID = -1
	a.needsWidthRequest = true
	a.needsHeightRequest = true
	a.needsAllocation = true
	a.cachedWidthAge = 1
	a.cachedHeightAge = 1
	a.childrenSorted = true
	a.xform = defaultTransformInfo
	a.transform = IdentityMatrix()
	a.lastPaintVolume = NewPaintVolume(nil)
	a.lastPaintVolumeValid = true
}

// NewActor creates an actor with no visual representation. It starts
// visible, unrealized and unmapped, with every layout request pending.
func NewActor(name string) *Actor {
	a := &Actor{name: name}
	actorDefaults(a)
	return a
}

// NewRectangle creates an actor that fills its allocation with c.
func NewRectangle(name string, c Color) *Actor {
	a := NewActor(name)
	a.PaintFunc = func(a *Actor, r Renderer) {
		w, h := a.allocation.Size()
		r.FillRect(Box{X2: w, Y2: h}, c, a.PaintOpacity())
	}
	a.PaintVolumeFunc = func(a *Actor, pv *PaintVolume) bool {
		return pv.SetFromAllocation(a)
	}
	return a
}

// Name returns the actor's name.
func (a *Actor) Name() string { return a.name }

// SetName renames the actor.
func (a *Actor) SetName(name string) {
	if a.name == name {
		return
	}
	a.name = name
	a.notify(PropName)
}

func (a *Actor) debugName() string {
	if a == nil {
		return "<nil>"
	}
	if a.name != "" {
		return a.name
	}
	return "<unnamed>"
}

// --- Tree manipulation ---

// Parent returns the parent actor, or nil.
func (a *Actor) Parent() *Actor { return a.parent }

// Children returns the child list in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (a *Actor) Children() []*Actor { return a.children }

// NumChildren returns the number of children.
func (a *Actor) NumChildren() int { return len(a.children) }

// ChildAt returns the child at the given index.
func (a *Actor) ChildAt(index int) *Actor { return a.children[index] }

// Stage returns the stage the actor is attached to, or nil.
func (a *Actor) Stage() *Stage {
	for p := a; p != nil; p = p.parent {
		if p.toplevel {
			return p.stage
		}
	}
	return nil
}

// IsToplevel reports whether a is the root actor of a stage.
func (a *Actor) IsToplevel() bool { return a.toplevel }

// IsDescendantOf reports whether ancestor is a strict ancestor of a.
func (a *Actor) IsDescendantOf(ancestor *Actor) bool {
	for p := a.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// AddChild appends child to a's children.
// Panics if child is nil or child is an ancestor of a (cycle).
// An actor that already has a parent, or a toplevel, is rejected with a
// warning.
func (a *Actor) AddChild(child *Actor) {
	a.InsertChildAt(child, len(a.children))
}

// InsertChildAt inserts child at index among a's children.
// Same checks as AddChild; panics if index is out of range.
func (a *Actor) InsertChildAt(child *Actor, index int) {
	if child == nil {
		panic("tableau: cannot add nil child")
	}
	if child == a || isAncestor(child, a) {
		panic("tableau: adding child would create a cycle")
	}
	if index < 0 || index > len(a.children) {
		panic("tableau: child index out of range")
	}
	if !a.checkAddChild(child) {
		return
	}
	a.addChildInternal(child, index)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(a)
	}
}

func (a *Actor) checkAddChild(child *Actor) bool {
	switch {
	case child.toplevel:
		warnActor(child, "cannot add a toplevel actor as a child", "parent", a.debugName())
	case child.parent != nil:
		warnActor(child, "actor already has a parent", "parent", child.parent.debugName())
	case a.inDestruction || child.inDestruction:
		warnActor(child, "cannot add an actor while it or its parent is being destroyed", "parent", a.debugName())
	default:
		return true
	}
	return false
}

func (a *Actor) addChildInternal(child *Actor, index int) {
	a.children = append(a.children, nil)
	copy(a.children[index+1:], a.children[index:])
	a.children[index] = child
	child.parent = a
	a.childrenSorted = false

	// a parent that is mapped or realized maps or realizes the child
	child.updateMapState(mapStateCheck)

	if child.showOnSetParent {
		child.Show()
	}
	if child.mapped {
		child.QueueRedraw()
	}
	if child.needsWidthRequest || child.needsHeightRequest || child.needsAllocation {
		// force the bubble past the short circuit in QueueRelayout
		child.needsWidthRequest = true
		child.needsHeightRequest = true
		child.needsAllocation = true
		a.QueueRelayout()
	}
}

// RemoveChild detaches child from a, unmapping and unrealizing it.
// A child of another actor is rejected with a warning.
func (a *Actor) RemoveChild(child *Actor) {
	if child == nil || child.parent != a {
		warnActor(a, "cannot remove an actor that is not a child", "child", child.debugName())
		return
	}
	a.removeChildInternal(child)
}

func (a *Actor) removeChildInternal(child *Actor) {
	wasMapped := child.mapped

	// unrealize before dropping the parent so the child can still reach
	// its stage
	child.updateMapState(mapStateMakeUnrealized)

	// queued redraws of the whole branch belong to the old stage
	DepthFirst(child, func(c *Actor, _ int) TraverseResult {
		if c.redrawEntry != nil {
			c.redrawEntry.invalidate()
			c.redrawEntry = nil
		}
		return TraverseContinue
	}, nil)

	a.removeChildByPtr(child)
	child.parent = nil
	a.childrenSorted = false

	if wasMapped {
		a.QueueRelayout()
	}
	if !child.inReparent && wasMapped {
		a.QueueRedraw()
	}
}

// RemoveFromParent detaches a from its parent. No-op without a parent.
func (a *Actor) RemoveFromParent() {
	if a.parent == nil {
		return
	}
	a.parent.RemoveChild(a)
}

// RemoveAllChildren detaches every child. Children are NOT destroyed.
func (a *Actor) RemoveAllChildren() {
	for len(a.children) > 0 {
		a.removeChildInternal(a.children[len(a.children)-1])
	}
}

// Reparent moves a under newParent. When both are realized the move does
// not unmap or unrealize a in between.
func (a *Actor) Reparent(newParent *Actor) {
	if newParent == nil {
		panic("tableau: cannot reparent to nil")
	}
	if a.parent == newParent {
		return
	}
	if a == newParent || isAncestor(a, newParent) {
		panic("tableau: reparenting would create a cycle")
	}
	if a.toplevel {
		warnActor(a, "cannot reparent a toplevel actor")
		return
	}
	if newParent.inDestruction || a.inDestruction {
		warnActor(a, "cannot reparent an actor being destroyed", "parent", newParent.debugName())
		return
	}
	if a.realized && newParent.realized {
		a.inReparent = true
	}
	if a.parent != nil {
		a.parent.removeChildInternal(a)
	}
	newParent.addChildInternal(a, len(newParent.children))
	a.inReparent = false
	a.updateMapState(mapStateCheck)
}

// Raise moves a after sibling in its parent's child list, or to the end
// when sibling is nil.
func (a *Actor) Raise(sibling *Actor) {
	a.restack(sibling, true)
}

// Lower moves a before sibling in its parent's child list, or to the start
// when sibling is nil.
func (a *Actor) Lower(sibling *Actor) {
	a.restack(sibling, false)
}

func (a *Actor) restack(sibling *Actor, above bool) {
	p := a.parent
	if p == nil {
		warnActor(a, "cannot restack an actor without a parent")
		return
	}
	if sibling != nil && sibling.parent != p {
		warnActor(a, "cannot restack relative to a non sibling", "sibling", sibling.debugName())
		return
	}
	if sibling == a {
		return
	}
	p.removeChildByPtr(a)
	index := 0
	switch {
	case sibling == nil && above:
		index = len(p.children)
	case sibling != nil:
		index = p.childIndex(sibling)
		if above {
			index++
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = a
	p.childrenSorted = false
	p.QueueRedraw()
}

func (a *Actor) childIndex(child *Actor) int {
	for i, c := range a.children {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Destruction ---

// Destroy unparents a, destroys its children and clears its hooks. While
// the teardown runs no redraw or relayout is queued for a. Calling Destroy
// again has no effect.
func (a *Actor) Destroy() {
	if a.inDestruction || a.destroyed {
		return
	}
	a.inDestruction = true

	if a.parent != nil {
		a.parent.removeChildInternal(a)
	}
	if a.toplevel {
		if a.mapped {
			a.setMapped(false)
		}
		a.unrealizeNotHiding()
	}
	for len(a.children) > 0 {
		a.children[len(a.children)-1].Destroy()
	}
	if a.OnDestroy != nil {
		a.OnDestroy(a)
	}
	for _, c := range a.constraints {
		if d, ok := c.(constraintDetacher); ok {
			d.detach(a)
		}
	}
	for _, d := range a.dependents {
		d.dropConstraintSource(a)
	}

	a.destroyed = true
	a.children = nil
	a.sortedChildren = nil
	a.constraints = nil
	a.dependents = nil
	a.effects = nil
	a.handlers = nil
	a.pendingOrder = nil
	a.queueRedrawClip = nil
	a.effectToRedraw = nil
	a.UserData = nil
	a.PreferredWidthFunc = nil
	a.PreferredHeightFunc = nil
	a.AllocateFunc = nil
	a.PaintFunc = nil
	a.PickFunc = nil
	a.PaintVolumeFunc = nil
	a.OnQueueRedraw = nil
	a.OnQueueRelayout = nil
	a.OnRealize = nil
	a.OnUnrealize = nil
	a.OnMap = nil
	a.OnUnmap = nil
	a.OnDestroy = nil
}

// IsDestroyed reports whether Destroy has completed on a.
func (a *Actor) IsDestroyed() bool { return a.destroyed }

// InDestruction reports whether a is being or has been destroyed.
func (a *Actor) InDestruction() bool { return a.inDestruction }

// --- Appearance ---

// Opacity returns the actor's own opacity.
func (a *Actor) Opacity() uint8 { return a.opacity }

// SetOpacity sets the actor's own opacity and queues a redraw. The
// transform is not affected.
func (a *Actor) SetOpacity(opacity uint8) {
	if a.opacity == opacity {
		return
	}
	a.opacity = opacity
	a.QueueRedraw()
	a.notify(PropOpacity)
}

// SetOpacityOverride forces the paint opacity of a to opacity, ignoring
// its ancestors. A negative value removes the override.
func (a *Actor) SetOpacityOverride(opacity int) {
	if opacity > 255 {
		opacity = 255
	}
	if opacity < 0 {
		opacity = -1
	}
	a.opacityOverride = opacity
}

// OpacityOverride returns the override set with SetOpacityOverride, or -1.
func (a *Actor) OpacityOverride() int { return a.opacityOverride }

// PaintOpacity returns the effective opacity: the product of the actor's
// opacity with every ancestor's. Toplevels always paint at 255.
func (a *Actor) PaintOpacity() uint8 {
	if a.toplevel {
		return 255
	}
	if a.opacityOverride >= 0 {
		return uint8(a.opacityOverride)
	}
	if a.parent != nil {
		po := a.parent.PaintOpacity()
		if po != 255 {
			return uint8(uint32(po) * uint32(a.opacity) / 255)
		}
	}
	return a.opacity
}

// IsReactive reports whether the actor takes part in reactive picking.
func (a *Actor) IsReactive() bool { return a.reactive }

// SetReactive toggles whether a is considered by PickReactive.
func (a *Actor) SetReactive(reactive bool) {
	if a.reactive == reactive {
		return
	}
	a.reactive = reactive
	a.notify(PropReactive)
}

// SetClip restricts painting to the rectangle (x, y, width, height) in
// actor coordinates.
func (a *Actor) SetClip(x, y, width, height float64) {
	b := BoxFromRect(x, y, width, height)
	if a.hasClip && a.clip.Equal(b) {
		return
	}
	batch := a.FreezeNotify()
	a.clip = b
	a.hasClip = true
	a.QueueRedraw()
	a.notify(PropClip)
	a.notify(PropHasClip)
	batch.Thaw()
}

// RemoveClip removes a clip set with SetClip.
func (a *Actor) RemoveClip() {
	if !a.hasClip {
		return
	}
	a.hasClip = false
	a.QueueRedraw()
	a.notify(PropHasClip)
}

// Clip returns the explicit clip rectangle and whether one is set.
func (a *Actor) Clip() (Box, bool) { return a.clip, a.hasClip }

// SetClipToAllocation makes the allocation act as the clip rectangle.
func (a *Actor) SetClipToAllocation(clip bool) {
	if a.clipToAllocation == clip {
		return
	}
	a.clipToAllocation = clip
	a.QueueRedraw()
	a.notify(PropClipToAllocation)
}

// ClipToAllocation reports whether the allocation clips painting.
func (a *Actor) ClipToAllocation() bool { return a.clipToAllocation }

// AttachClone records that another actor paints a copy of a. A cloned
// actor still reports its own redraws while hidden.
func (a *Actor) AttachClone() { a.cloned++ }

// DetachClone undoes AttachClone.
func (a *Actor) DetachClone() {
	if a.cloned == 0 {
		warnActor(a, "DetachClone without a matching AttachClone")
		return
	}
	a.cloned--
}

// IsCloned reports whether any clone is attached.
func (a *Actor) IsCloned() bool { return a.cloned > 0 }

// --- Key focus ---

// GrabKeyFocus gives a the key focus of its stage.
func (a *Actor) GrabKeyFocus() {
	if s := a.Stage(); s != nil {
		s.SetKeyFocus(a)
	}
}

// HasKeyFocus reports whether a holds the key focus of its stage.
func (a *Actor) HasKeyFocus() bool {
	s := a.Stage()
	return s != nil && s.keyFocus == a
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) node.
func isAncestor(candidate, node *Actor) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from a.children without clearing child.parent.
func (a *Actor) removeChildByPtr(child *Actor) {
	for i, c := range a.children {
		if c == child {
			copy(a.children[i:], a.children[i+1:])
			a.children[len(a.children)-1] = nil
			a.children = a.children[:len(a.children)-1]
			return
		}
	}
}

// paintOrder returns the children sorted by depth, stable within equal
// depths.
func (a *Actor) paintOrder() []*Actor {
	if a.childrenSorted {
		if len(a.sortedChildren) == len(a.children) {
			return a.sortedChildren
		}
	}
	a.rebuildSortedChildren()
	return a.sortedChildren
}

// rebuildSortedChildren uses an insertion sort: children are usually
// already nearly ordered by depth.
func (a *Actor) rebuildSortedChildren() {
	n := len(a.children)
	if cap(a.sortedChildren) < n {
		a.sortedChildren = make([]*Actor, n)
	} else {
		a.sortedChildren = a.sortedChildren[:n]
	}
	copy(a.sortedChildren, a.children)
	s := a.sortedChildren
	for i := 1; i < n; i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && s[j].xform.depth > key.xform.depth {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
	a.childrenSorted = true
}
