package tableau

// layoutInfo holds the fixed position and the explicit size overrides.
type layoutInfo struct {
	fixedX, fixedY float64
	positionSet    bool

	minWidth, minHeight         float64
	naturalWidth, naturalHeight float64
	minWidthSet, minHeightSet   bool
	naturalWidthSet             bool
	naturalHeightSet            bool
}

// RequestMode returns the order in which a measures its two axes.
func (a *Actor) RequestMode() RequestMode { return a.requestMode }

// SetRequestMode changes the geometry management mode of a.
func (a *Actor) SetRequestMode(mode RequestMode) {
	if a.requestMode == mode {
		return
	}
	a.requestMode = mode
	a.notify(PropRequestMode)
	a.QueueRelayout()
}

// --- Size overrides ---

func (a *Actor) setSizeOverride(value *float64, set *bool, v float64, prop, setProp Property) {
	if *set && *value == v {
		return
	}
	batch := a.FreezeNotify()
	*value = v
	a.notify(prop)
	if !*set {
		*set = true
		a.notify(setProp)
	}
	batch.Thaw()
	a.QueueRelayout()
}

func (a *Actor) unsetSizeOverride(set *bool, setProp Property) {
	if !*set {
		return
	}
	*set = false
	a.notify(setProp)
	a.QueueRelayout()
}

// SetMinWidth overrides the minimum width reported by a.
func (a *Actor) SetMinWidth(w float64) {
	a.setSizeOverride(&a.layout.minWidth, &a.layout.minWidthSet, w, PropMinWidth, PropMinWidthSet)
}

// SetMinHeight overrides the minimum height reported by a.
func (a *Actor) SetMinHeight(h float64) {
	a.setSizeOverride(&a.layout.minHeight, &a.layout.minHeightSet, h, PropMinHeight, PropMinHeightSet)
}

// SetNaturalWidth overrides the natural width reported by a.
func (a *Actor) SetNaturalWidth(w float64) {
	a.setSizeOverride(&a.layout.naturalWidth, &a.layout.naturalWidthSet, w, PropNaturalWidth, PropNaturalWidthSet)
}

// SetNaturalHeight overrides the natural height reported by a.
func (a *Actor) SetNaturalHeight(h float64) {
	a.setSizeOverride(&a.layout.naturalHeight, &a.layout.naturalHeightSet, h, PropNaturalHeight, PropNaturalHeightSet)
}

// UnsetMinWidth removes the minimum width override.
func (a *Actor) UnsetMinWidth() { a.unsetSizeOverride(&a.layout.minWidthSet, PropMinWidthSet) }

// UnsetMinHeight removes the minimum height override.
func (a *Actor) UnsetMinHeight() { a.unsetSizeOverride(&a.layout.minHeightSet, PropMinHeightSet) }

// UnsetNaturalWidth removes the natural width override.
func (a *Actor) UnsetNaturalWidth() {
	a.unsetSizeOverride(&a.layout.naturalWidthSet, PropNaturalWidthSet)
}

// UnsetNaturalHeight removes the natural height override.
func (a *Actor) UnsetNaturalHeight() {
	a.unsetSizeOverride(&a.layout.naturalHeightSet, PropNaturalHeightSet)
}

// MinWidth returns the minimum width override and whether it is set.
func (a *Actor) MinWidth() (float64, bool) { return a.layout.minWidth, a.layout.minWidthSet }

// MinHeight returns the minimum height override and whether it is set.
func (a *Actor) MinHeight() (float64, bool) { return a.layout.minHeight, a.layout.minHeightSet }

// NaturalWidth returns the natural width override and whether it is set.
func (a *Actor) NaturalWidth() (float64, bool) {
	return a.layout.naturalWidth, a.layout.naturalWidthSet
}

// NaturalHeight returns the natural height override and whether it is set.
func (a *Actor) NaturalHeight() (float64, bool) {
	return a.layout.naturalHeight, a.layout.naturalHeightSet
}

// SetWidth forces both the minimum and natural width of a. A negative
// width removes both overrides.
func (a *Actor) SetWidth(w float64) {
	batch := a.FreezeNotify()
	defer batch.Thaw()
	if w < 0 {
		a.UnsetMinWidth()
		a.UnsetNaturalWidth()
		return
	}
	a.SetMinWidth(w)
	a.SetNaturalWidth(w)
}

// SetHeight forces both the minimum and natural height of a. A negative
// height removes both overrides.
func (a *Actor) SetHeight(h float64) {
	batch := a.FreezeNotify()
	defer batch.Thaw()
	if h < 0 {
		a.UnsetMinHeight()
		a.UnsetNaturalHeight()
		return
	}
	a.SetMinHeight(h)
	a.SetNaturalHeight(h)
}

// SetSize forces the size of a. Negative values remove the override on
// that axis.
func (a *Actor) SetSize(w, h float64) {
	batch := a.FreezeNotify()
	a.SetWidth(w)
	a.SetHeight(h)
	batch.Thaw()
}

// --- Fixed position ---

// SetPosition sets the fixed position of a inside its parent.
func (a *Actor) SetPosition(x, y float64) {
	batch := a.FreezeNotify()
	a.SetX(x)
	a.SetY(y)
	batch.Thaw()
}

// SetX sets the fixed horizontal position of a.
func (a *Actor) SetX(x float64) {
	l := &a.layout
	if l.positionSet && l.fixedX == x {
		return
	}
	batch := a.FreezeNotify()
	l.fixedX = x
	a.notify(PropFixedX)
	a.setFixedPositionSet(true)
	batch.Thaw()
	a.QueueRelayout()
}

// SetY sets the fixed vertical position of a.
func (a *Actor) SetY(y float64) {
	l := &a.layout
	if l.positionSet && l.fixedY == y {
		return
	}
	batch := a.FreezeNotify()
	l.fixedY = y
	a.notify(PropFixedY)
	a.setFixedPositionSet(true)
	batch.Thaw()
	a.QueueRelayout()
}

// MoveBy shifts the fixed position of a by (dx, dy).
func (a *Actor) MoveBy(dx, dy float64) {
	x, y := a.GetPosition()
	a.SetPosition(x+dx, y+dy)
}

func (a *Actor) setFixedPositionSet(set bool) {
	if a.layout.positionSet == set {
		return
	}
	a.layout.positionSet = set
	a.notify(PropFixedPositionSet)
}

// SetFixedPositionSet enables or disables the fixed position. Disabling it
// lets the parent's layout place a.
func (a *Actor) SetFixedPositionSet(set bool) {
	if a.layout.positionSet == set {
		return
	}
	a.setFixedPositionSet(set)
	a.QueueRelayout()
}

// FixedPosition returns the fixed position and whether it is in use.
func (a *Actor) FixedPosition() (x, y float64, set bool) {
	return a.layout.fixedX, a.layout.fixedY, a.layout.positionSet
}

// --- Geometry queries ---

// GetX returns the horizontal position of a inside its parent: the
// allocation when it is current, otherwise the fixed position (or 0).
func (a *Actor) GetX() float64 {
	if a.needsAllocation {
		if a.layout.positionSet {
			return a.layout.fixedX
		}
		return 0
	}
	return a.allocation.X1
}

// GetY returns the vertical position of a inside its parent.
func (a *Actor) GetY() float64 {
	if a.needsAllocation {
		if a.layout.positionSet {
			return a.layout.fixedY
		}
		return 0
	}
	return a.allocation.Y1
}

// GetPosition returns GetX and GetY.
func (a *Actor) GetPosition() (x, y float64) { return a.GetX(), a.GetY() }

// GetWidth returns the allocated width, or the natural width while an
// allocation is pending.
func (a *Actor) GetWidth() float64 {
	if !a.needsAllocation {
		return a.allocation.Width()
	}
	if a.requestMode == HeightForWidth {
		_, nw := a.GetPreferredWidth(-1)
		return nw
	}
	_, nh := a.GetPreferredHeight(-1)
	_, nw := a.GetPreferredWidth(nh)
	return nw
}

// GetHeight returns the allocated height, or the natural height while an
// allocation is pending.
func (a *Actor) GetHeight() float64 {
	if !a.needsAllocation {
		return a.allocation.Height()
	}
	if a.requestMode == HeightForWidth {
		_, nw := a.GetPreferredWidth(-1)
		_, nh := a.GetPreferredHeight(nw)
		return nh
	}
	_, nh := a.GetPreferredHeight(-1)
	return nh
}

// GetSize returns GetWidth and GetHeight.
func (a *Actor) GetSize() (w, h float64) { return a.GetWidth(), a.GetHeight() }

// NeedsAllocation reports whether a relayout is pending for a.
func (a *Actor) NeedsAllocation() bool { return a.needsAllocation }

// HasAllocation reports whether a holds a current allocation.
func (a *Actor) HasAllocation() bool {
	return (a.parent != nil || a.toplevel) && a.visible && !a.needsAllocation
}

// AllocationBox returns the allocation of a, running a synchronous layout
// pass on its stage first if one is pending.
func (a *Actor) AllocationBox() Box {
	if a.needsAllocation {
		if s := a.Stage(); s != nil {
			s.MaybeRelayout()
		}
	}
	return a.allocation
}

// --- Allocation ---

// Allocate assigns box (in parent coordinates) to a. Constraints may
// adjust the box first. When neither a relayout is pending nor the box or
// flags changed the call does nothing.
func (a *Actor) Allocate(box Box, flags AllocationFlags) {
	if a.Stage() == nil {
		warnActor(a, "allocate called on an actor that is not on a stage")
		return
	}
	old := a.allocation
	adjusted := box
	a.applyConstraints(&adjusted)

	if adjusted.X2 < adjusted.X1 || adjusted.Y2 < adjusted.Y1 {
		warnActor(a, "tried to allocate a negative size", "width", adjusted.Width(), "height", adjusted.Height())
		adjusted.X2 = max(adjusted.X2, adjusted.X1)
		adjusted.Y2 = max(adjusted.Y2, adjusted.Y1)
	}

	originChanged := flags&AbsoluteOriginChanged != 0
	childMoved := adjusted.X1 != old.X1 || adjusted.Y1 != old.Y1
	sizeChanged := adjusted.X2 != old.X2 || adjusted.Y2 != old.Y2
	changed := originChanged || childMoved || sizeChanged

	if !a.needsAllocation && !changed {
		return
	}

	// for the children, the flag means this actor moved on screen
	if childMoved {
		flags |= AbsoluteOriginChanged
	}

	a.inRelayout = true
	a.setAllocation(adjusted, flags)
	if a.AllocateFunc != nil {
		a.AllocateFunc(a, adjusted, flags)
	} else {
		for _, c := range a.children {
			c.AllocatePreferredSize(flags)
		}
	}
	a.inRelayout = false

	if changed {
		a.QueueRedraw()
	}
}

// setAllocation stores box, clears the pending layout flags and notifies
// each coordinate that changed.
func (a *Actor) setAllocation(box Box, flags AllocationFlags) bool {
	batch := a.FreezeNotify()
	defer batch.Thaw()

	old := a.allocation
	a.allocation = box
	a.allocationFlags = flags
	a.needsWidthRequest = false
	a.needsHeightRequest = false
	a.needsAllocation = false

	if old.Equal(box) {
		return false
	}
	a.transformValid = false
	a.notify(PropAllocation)
	if old.X1 != box.X1 {
		a.notify(PropX)
	}
	if old.Y1 != box.Y1 {
		a.notify(PropY)
	}
	if old.Width() != box.Width() {
		a.notify(PropWidth)
	}
	if old.Height() != box.Height() {
		a.notify(PropHeight)
	}
	return true
}

// AllocationFlags returns the flags of the last allocation.
func (a *Actor) AllocationFlags() AllocationFlags { return a.allocationFlags }

// AllocatePreferredSize allocates a at its current position with its
// natural size.
func (a *Actor) AllocatePreferredSize(flags AllocationFlags) {
	x, y := a.GetPosition()
	_, _, nw, nh := a.GetPreferredSize()
	a.Allocate(BoxFromRect(x, y, nw, nh), flags)
}

// AllocateAvailableSize allocates a at (x, y) with its natural size
// clamped between its minimum size and the available size.
func (a *Actor) AllocateAvailableSize(x, y, availableWidth, availableHeight float64, flags AllocationFlags) {
	var w, h float64
	if a.requestMode == HeightForWidth {
		minW, natW := a.GetPreferredWidth(availableHeight)
		w = clampSize(natW, minW, availableWidth)
		minH, natH := a.GetPreferredHeight(w)
		h = clampSize(natH, minH, availableHeight)
	} else {
		minH, natH := a.GetPreferredHeight(availableWidth)
		h = clampSize(natH, minH, availableHeight)
		minW, natW := a.GetPreferredWidth(h)
		w = clampSize(natW, minW, availableWidth)
	}
	a.Allocate(BoxFromRect(x, y, w, h), flags)
}

// clampSize clamps v to [low, high], preferring high when they conflict.
func clampSize(v, low, high float64) float64 {
	if v > high {
		return high
	}
	if v < low {
		return low
	}
	return v
}
