package tableau

// QueueRedraw asks for a to be repainted at the end of the frame. The
// stage limits the repaint to the area a covered last frame plus the area
// it covers now, when both are known.
func (a *Actor) QueueRedraw() {
	a.queueRedrawFull(0, nil, nil)
}

// QueueRedrawWithClip queues a redraw limited to clip, in actor
// coordinates. A nil clip redraws the whole actor.
func (a *Actor) QueueRedrawWithClip(clip *Box) {
	if clip == nil {
		a.queueRedrawFull(0, nil, nil)
		return
	}
	pv := NewPaintVolume(a)
	pv.SetOrigin(Vertex{X: clip.X1, Y: clip.Y1})
	pv.SetWidth(clip.Width())
	pv.SetHeight(clip.Height())
	a.queueRedrawFull(0, &pv, nil)
}

// QueueRedrawClipped queues a redraw of the allocation of a. Without an
// allocation the whole stage is redrawn.
func (a *Actor) QueueRedrawClipped() {
	a.queueRedrawFull(RedrawClippedToAllocation, nil, nil)
}

// QueueRedrawWithEffect queues a redraw that only needs effect, and the
// effects that run before it, to run again. effect must be attached to a.
func (a *Actor) QueueRedrawWithEffect(effect Effect) {
	a.queueRedrawFull(0, nil, effect)
}

func (a *Actor) queueRedrawFull(flags RedrawFlags, volume *PaintVolume, effect Effect) {
	if a.inDestruction {
		return
	}
	// unmapped actors are left unpainted unless a clone mirrors them
	if !a.mapped && a.cloned == 0 {
		return
	}
	stage := a.Stage()
	if stage == nil || stage.actor.inDestruction {
		return
	}

	if flags&RedrawClippedToAllocation != 0 {
		if a.needsAllocation {
			a.queueRedrawClip = nil
			a.signalQueueRedraw(a)
			return
		}
		pv := NewPaintVolume(a)
		w, h := a.allocation.Size()
		pv.SetWidth(w)
		pv.SetHeight(h)
		volume = &pv
	}

	a.redrawEntry = stage.queueActorRedraw(a.redrawEntry, a, volume)

	switch {
	case !a.isDirty:
		a.effectToRedraw = effect
	case effect != nil:
		// keep whichever effect comes later in the chain; a nil marker
		// means a full redraw is already queued
		if prev := a.effectToRedraw; prev != nil {
			prevAt, effectAt := -1, -1
			for i, e := range a.effects {
				if e == prev {
					prevAt = i
				}
				if e == effect {
					effectAt = i
				}
			}
			if effectAt < 0 {
				warnActor(a, "redraw queued with an effect that is not applied to the actor")
			} else if effectAt > prevAt {
				a.effectToRedraw = effect
			}
		}
	default:
		a.effectToRedraw = nil
	}
	a.isDirty = true
}

// finishQueueRedraw runs at flush time for every queued entry.
func (a *Actor) finishQueueRedraw(clip *PaintVolume) {
	// a new QueueRedraw from a handler below must create a new entry
	a.redrawEntry = nil

	clipped := false
	if clip != nil {
		a.queueRedrawClip = clip
		clipped = true
	} else if a.lastPaintVolumeValid {
		if pv, ok := a.currentPaintVolume(); ok {
			stage := a.Stage()
			if stage != nil {
				// the area the actor occupied last frame...
				old := a.lastPaintVolume
				stage.actor.queueRedrawClip = &old
				stage.actor.signalQueueRedraw(stage.actor)
				stage.actor.queueRedrawClip = nil
			}
			// ...and the area it occupies now
			a.queueRedrawClip = &pv
			clipped = true
		}
	}
	a.signalQueueRedraw(a)
	if clipped {
		a.queueRedrawClip = nil
	}
}

// signalQueueRedraw delivers a redraw that originated at origin to a.
func (a *Actor) signalQueueRedraw(origin *Actor) {
	if a.OnQueueRedraw != nil {
		a.OnQueueRedraw(a, origin)
	}
	a.realQueueRedraw(origin)
}

func (a *Actor) realQueueRedraw(origin *Actor) {
	if a.inDestruction {
		return
	}
	if a.toplevel {
		if a.stage != nil {
			a.stage.addRedrawClip(origin)
		}
		return
	}
	// a redraw coming from a child invalidates any cached effect output
	if a != origin {
		a.isDirty = true
		a.effectToRedraw = nil
	}
	// the signal still reached a so clones see it; the parent's
	// appearance does not change
	if !a.visible {
		return
	}
	// propagate at least once so containers can track which children
	// asked for a redraw
	if a.propagatedOneRedraw {
		if s := a.Stage(); s != nil && s.HasFullRedrawQueued() {
			return
		}
	}
	a.propagatedOneRedraw = true
	if a.parent != nil {
		a.parent.signalQueueRedraw(origin)
	}
}

// IsDirty reports whether a redraw is queued for a or one of its children
// since its last paint.
func (a *Actor) IsDirty() bool { return a.isDirty }

// QueueRelayout marks a and its ancestors as needing a new size request
// and allocation, and queues a redraw.
func (a *Actor) QueueRelayout() {
	a.queueOnlyRelayout()
	a.QueueRedraw()
}

func (a *Actor) queueOnlyRelayout() {
	if a.inDestruction {
		return
	}
	if a.needsWidthRequest && a.needsHeightRequest && a.needsAllocation {
		return
	}
	if globalDebug && !a.toplevel && a.inRelayout {
		warnActor(a, "relayout queued inside an allocation cycle")
	}
	if a.OnQueueRelayout != nil {
		a.OnQueueRelayout(a)
	}
	a.realQueueRelayout()
}

func (a *Actor) realQueueRelayout() {
	if a.inDestruction {
		return
	}
	a.needsWidthRequest = true
	a.needsHeightRequest = true
	a.needsAllocation = true
	a.clearSizeRequests()
	// gravity based centers resolve against the size being renegotiated
	if a.xform.hasFractional() {
		a.transformValid = false
	}

	if a.toplevel && a.stage != nil {
		a.stage.relayoutPending = true
	}
	if a.parent != nil {
		a.parent.queueOnlyRelayout()
	}
	for _, d := range a.dependents {
		d.QueueRelayout()
	}
}
