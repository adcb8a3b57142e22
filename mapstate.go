package tableau

type mapStateChange uint8

const (
	mapStateCheck mapStateChange = iota
	mapStateMakeMapped
	mapStateMakeUnmapped
	mapStateMakeUnrealized
)

// IsVisible reports whether the actor has been asked to show.
func (a *Actor) IsVisible() bool { return a.visible }

// IsMapped reports whether the actor will be painted when its stage is.
func (a *Actor) IsMapped() bool { return a.mapped }

// IsRealized reports whether the actor may hold rendering resources.
func (a *Actor) IsRealized() bool { return a.realized }

// ShowOnSetParent reports whether a shows itself when added to a parent.
func (a *Actor) ShowOnSetParent() bool { return a.showOnSetParent }

// SetShowOnSetParent changes the show-on-set-parent flag. It can only be
// changed while a has no parent.
func (a *Actor) SetShowOnSetParent(show bool) {
	if a.showOnSetParent == show {
		return
	}
	if a.parent == nil {
		a.showOnSetParent = show
		a.notify(PropShowOnSetParent)
	}
}

// Show marks a visible. It is mapped as soon as its parent allows it.
func (a *Actor) Show() {
	if a.visible {
		a.SetShowOnSetParent(true)
		return
	}
	batch := a.FreezeNotify()
	a.SetShowOnSetParent(true)
	a.visible = true
	a.updateMapState(mapStateCheck)
	if a.parent != nil {
		// start from scratch: the parent may not have measured a while it
		// was hidden
		a.needsWidthRequest = false
		a.needsHeightRequest = false
		a.needsAllocation = false
		a.QueueRelayout()
	}
	a.notify(PropVisible)
	if a.parent != nil {
		a.parent.QueueRedraw()
	}
	batch.Thaw()
}

// Hide marks a hidden, unmapping it and its children.
func (a *Actor) Hide() {
	if !a.visible {
		a.SetShowOnSetParent(false)
		return
	}
	batch := a.FreezeNotify()
	a.SetShowOnSetParent(false)
	a.visible = false
	a.updateMapState(mapStateCheck)
	if a.parent != nil {
		a.parent.QueueRelayout()
	}
	a.notify(PropVisible)
	if a.parent != nil {
		a.parent.QueueRedraw()
	}
	batch.Thaw()
}

// ShowAll shows a and every descendant.
func (a *Actor) ShowAll() {
	DepthFirst(a, func(c *Actor, _ int) TraverseResult {
		c.Show()
		return TraverseContinue
	}, nil)
}

// HideAll hides a and every descendant.
func (a *Actor) HideAll() {
	DepthFirst(a, nil, func(c *Actor, _ int) TraverseResult {
		c.Hide()
		return TraverseContinue
	})
}

// Map maps a if it is visible and its parent allows it. Toplevels are
// mapped by their stage.
func (a *Actor) Map() {
	if a.mapped || !a.visible {
		return
	}
	a.updateMapState(mapStateMakeMapped)
}

// Unmap unmaps a and its children.
func (a *Actor) Unmap() {
	if !a.mapped {
		return
	}
	a.updateMapState(mapStateMakeUnmapped)
}

// Realize realizes a, realizing its parent chain first. A non-toplevel
// actor without a realized parent stays unrealized.
func (a *Actor) Realize() {
	if a.realized {
		return
	}
	if a.parent != nil {
		a.parent.Realize()
	}
	if !a.toplevel && (a.parent == nil || !a.parent.realized) {
		return
	}
	a.realized = true
	a.notify(PropRealized)
	if a.OnRealize != nil {
		a.OnRealize(a)
	}
	// the stage may now want to map its children
	a.updateMapState(mapStateCheck)
}

// Unrealize hides a and then unrealizes it and every descendant.
// Children are unrealized before their parent.
func (a *Actor) Unrealize() {
	if globalDebug {
		a.verifyMapState()
	}
	a.Hide()
	if a.toplevel && a.mapped {
		a.setMapped(false)
	}
	a.unrealizeNotHiding()
}

func (a *Actor) unrealizeNotHiding() {
	DepthFirst(a, func(c *Actor, _ int) TraverseResult {
		// children of an unrealized actor are already unrealized
		if !c.realized {
			return TraverseSkipChildren
		}
		if c.mapped {
			panic("tableau: unrealizing mapped actor " + c.debugName() + "; unmap before unrealize")
		}
		if c.OnUnrealize != nil {
			c.OnUnrealize(c)
		}
		return TraverseContinue
	}, func(c *Actor, _ int) TraverseResult {
		if c.realized {
			c.realized = false
			c.notify(PropRealized)
		}
		return TraverseContinue
	})
}

// SetPaintUnmapped lets a and its subtree be painted while unmapped, for
// example by a clone. Calls nest; each must be balanced by
// ReleasePaintUnmapped.
func (a *Actor) SetPaintUnmapped() {
	a.paintUnmapped++
	if a.paintUnmapped > 1 || a.toplevel {
		return
	}
	a.Realize()
	a.updateMapState(mapStateMakeMapped)
}

// ReleasePaintUnmapped undoes one SetPaintUnmapped call.
func (a *Actor) ReleasePaintUnmapped() {
	if a.paintUnmapped == 0 {
		warnActor(a, "ReleasePaintUnmapped without a matching SetPaintUnmapped")
		return
	}
	a.paintUnmapped--
	if a.paintUnmapped == 0 && !a.toplevel {
		a.updateMapState(mapStateCheck)
	}
}

// updateMapState brings the mapped and realized flags in line with the
// tree invariants after a change to visibility or parentage.
func (a *Actor) updateMapState(change mapStateChange) {
	if a.toplevel {
		a.updateToplevelMapState(change)
	} else {
		a.updateChildMapState(change)
	}
	if globalDebug {
		a.verifyMapState()
	}
}

func (a *Actor) updateToplevelMapState(change mapStateChange) {
	wasMapped := a.mapped
	if a.visible {
		a.Realize()
	}
	switch change {
	case mapStateMakeMapped:
		if wasMapped {
			panic("tableau: toplevel " + a.debugName() + " is already mapped")
		}
		a.setMapped(true)
	case mapStateMakeUnmapped:
		if !wasMapped {
			panic("tableau: toplevel " + a.debugName() + " is not mapped")
		}
		a.setMapped(false)
	case mapStateMakeUnrealized:
		panic("tableau: toplevel " + a.debugName() + " cannot be unrealized by unparenting")
	}
	if a.mapped && !a.visible && !a.inDestruction {
		warnActor(a, "toplevel is mapped but not visible")
	}
}

func (a *Actor) updateChildMapState(change mapStateChange) {
	parent := a.parent
	shouldBeMapped := false
	mustBeRealized := false
	mayBeRealized := true

	if parent == nil || change == mapStateMakeUnrealized {
		mayBeRealized = false
	} else {
		if a.visible && change != mapStateMakeUnmapped {
			parentToplevelReady := parent.toplevel && parent.visible && parent.realized
			if parent.mapped || parentToplevelReady {
				mustBeRealized = true
				shouldBeMapped = true
			}
		}
		if a.paintUnmapped > 0 {
			shouldBeMapped = true
			mustBeRealized = true
		}
		if !parent.realized {
			mayBeRealized = false
		}
	}

	if change == mapStateMakeMapped && !shouldBeMapped {
		if parent == nil {
			warnActor(a, "attempting to map an actor without a parent")
		} else {
			warnActor(a, "attempting to map a child of an unmapped actor", "parent", parent.debugName())
		}
	}

	// a reparent suspends unmapping and unrealizing
	if !shouldBeMapped && !a.inReparent {
		a.setMapped(false)
	}
	if mustBeRealized {
		a.Realize()
	}
	if mustBeRealized && !mayBeRealized {
		warnActor(a, "actor must be realized but its parent cannot be")
		return
	}
	if !mayBeRealized && !a.inReparent {
		a.unrealizeNotHiding()
	}
	if shouldBeMapped && a.realized {
		a.setMapped(true)
	}
}

func (a *Actor) setMapped(mapped bool) {
	if a.mapped == mapped {
		return
	}
	if mapped {
		a.realMap()
	} else {
		a.realUnmap()
	}
}

func (a *Actor) realMap() {
	if a.mapped {
		panic("tableau: actor " + a.debugName() + " is already mapped")
	}
	a.mapped = true
	stage := a.Stage()
	if !a.toplevel && stage != nil {
		a.pickID = stage.acquirePickID(a)
	}
	if stage != nil {
		stage.mappedCountChanged(1)
	}
	// notify before the children so observers see a top-down order
	a.notify(PropMapped)
	if a.OnMap != nil {
		a.OnMap(a)
	}
	children := append([]*Actor(nil), a.children...)
	for _, c := range children {
		c.Map()
	}
}

func (a *Actor) realUnmap() {
	if !a.mapped {
		panic("tableau: actor " + a.debugName() + " is not mapped")
	}
	children := append([]*Actor(nil), a.children...)
	for _, c := range children {
		c.Unmap()
	}
	a.mapped = false

	// hiding, moving and showing again must not repaint the old area
	a.lastPaintVolume = NewPaintVolume(nil)
	a.lastPaintVolumeValid = true

	// notify after the children so observers see a bottom-up order
	a.notify(PropMapped)
	if a.OnUnmap != nil {
		a.OnUnmap(a)
	}
	stage := a.Stage()
	if stage != nil {
		stage.mappedCountChanged(-1)
	}
	if !a.toplevel {
		if stage != nil {
			stage.releasePickID(a.pickID)
			if stage.keyFocus == a {
				stage.SetKeyFocus(nil)
			}
		}
		a.pickID = -1
	}
}
