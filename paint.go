package tableau

// Paint paints a and its children through r, applying the transform, clip
// and effect chain of a. Culling against the stage clip only happens when a
// paint volume from a previous frame is known.
//
// Paint is normally driven by Stage.Paint; containers with custom painting
// call it on their children from PaintFunc.
func (a *Actor) Paint(r Renderer) {
	if a.inDestruction {
		return
	}
	stage := a.Stage()
	mode := PickNone
	if stage != nil {
		mode = stage.pickMode
	}

	if mode == PickNone {
		a.propagatedOneRedraw = false
		// a fully transparent actor paints nothing, but it is still picked
		if !a.toplevel && a.ownOpacity() == 0 {
			return
		}
	}
	if !a.mapped {
		return
	}

	wasInPaint, prevNext := a.inPaint, a.nextEffect
	a.inPaint = true
	r.PushMatrix()
	r.ApplyTransform(a.Transform())

	clipped := false
	if a.hasClip {
		r.PushClip(a.clip)
		clipped = true
	} else if a.clipToAllocation {
		w, h := a.allocation.Size()
		r.PushClip(Box{X2: w, Y2: h})
		clipped = true
	}

	culled := false
	if stage != nil {
		var (
			pv    PaintVolume
			valid bool
		)
		if mode == PickNone {
			if !(stage.config.DisableCulling && stage.config.DisableClippedRedraws) {
				a.updateLastPaintVolume()
			}
			pv, valid = a.lastPaintVolume, a.lastPaintVolumeValid
		} else {
			// picking must not disturb the volume used for damage tracking
			pv, valid = a.eyePaintVolume()
		}
		if result, ok := a.cull(stage, r, &pv, valid); ok && result == CullOut {
			if stage.config.RedrawDebug {
				Logger().Debug("tableau: actor would be culled", "actor", a.debugName())
			} else {
				culled = true
				if mode == PickNone {
					stage.stats.culled++
				}
			}
		}
	}

	if !culled {
		a.nextEffect = 0
		a.ContinuePaint(r)
		if mode == PickNone {
			a.isDirty = false
		}
	}

	if clipped {
		r.PopClip()
	}
	r.PopMatrix()
	a.inPaint, a.nextEffect = wasInPaint, prevNext
}

// ownOpacity returns the opacity a paints itself with, before inheritance.
func (a *Actor) ownOpacity() int {
	if a.opacityOverride >= 0 {
		return a.opacityOverride
	}
	return int(a.opacity)
}

func (a *Actor) cull(stage *Stage, r Renderer, pv *PaintVolume, valid bool) (CullResult, bool) {
	if !valid || stage.config.DisableCulling || !stage.hasClipPlanes || r.Offscreen() {
		return CullIn, false
	}
	return pv.Cull(stage.clipPlanes[:]), true
}

// paintContent runs PaintFunc and then paints the children in depth order.
func (a *Actor) paintContent(r Renderer) {
	if a.PaintFunc != nil {
		a.PaintFunc(a, r)
	}
	for _, c := range a.paintOrder() {
		c.Paint(r)
	}
}

// pickContent paints the pick silhouette of a and then picks the children.
func (a *Actor) pickContent(r Renderer, mode PickMode) {
	if a.shouldPickPaint(mode) {
		if a.PickFunc != nil {
			a.PickFunc(a, r, a.pickID)
		} else {
			w, h := a.allocation.Size()
			r.FillPick(Box{X2: w, Y2: h}, a.pickID)
		}
	}
	for _, c := range a.paintOrder() {
		c.Paint(r)
	}
}

// shouldPickPaint reports whether a takes part in a pick with mode.
func (a *Actor) shouldPickPaint(mode PickMode) bool {
	if !a.mapped || a.pickID < 0 {
		return false
	}
	switch mode {
	case PickAll:
		return true
	case PickReactive:
		return a.reactive
	}
	return false
}

func (a *Actor) updateLastPaintVolume() {
	a.lastPaintVolumeValid = false
	pv, ok := a.eyePaintVolume()
	if !ok {
		return
	}
	a.lastPaintVolume = pv
	a.lastPaintVolumeValid = true
}

func (a *Actor) eyePaintVolume() (PaintVolume, bool) {
	if a.Stage() == nil {
		return PaintVolume{}, false
	}
	pv, ok := a.currentPaintVolume()
	if !ok {
		return PaintVolume{}, false
	}
	pv.TransformRelative(nil)
	return pv, true
}

// currentPaintVolume computes the volume a paints into, in its own
// coordinate space, including its children and the effects before the one
// currently running.
func (a *Actor) currentPaintVolume() (PaintVolume, bool) {
	if !a.mapped || a.needsAllocation {
		return PaintVolume{}, false
	}
	pv := NewPaintVolume(a)
	if !a.computePaintVolume(&pv) {
		return PaintVolume{}, false
	}
	for _, e := range a.effects {
		if e == a.currentEffect {
			break
		}
		if m, ok := e.(PaintVolumeModifier); ok {
			if !m.ModifyPaintVolume(a, &pv) {
				return PaintVolume{}, false
			}
		}
	}
	return pv, true
}

func (a *Actor) computePaintVolume(pv *PaintVolume) bool {
	// a clip bounds everything a and its children paint
	if a.hasClip {
		pv.SetOrigin(Vertex{X: a.clip.X1, Y: a.clip.Y1})
		pv.SetWidth(a.clip.Width())
		pv.SetHeight(a.clip.Height())
		return true
	}
	w, h := a.allocation.Size()
	if a.clipToAllocation {
		pv.SetWidth(w)
		pv.SetHeight(h)
		return true
	}

	switch {
	case a.PaintVolumeFunc != nil:
		if !a.PaintVolumeFunc(a, pv) {
			return false
		}
	case a.PaintFunc != nil:
		// custom painting without a declared volume could go anywhere
		return false
	default:
		pv.SetWidth(w)
		pv.SetHeight(h)
	}

	for _, c := range a.children {
		if !c.mapped {
			continue
		}
		cpv, ok := c.TransformedPaintVolume(a)
		if !ok {
			return false
		}
		pv.Union(&cpv)
	}
	return true
}

// PaintVolume returns the volume a paints into, in its own coordinate space.
// It reports false when the volume cannot be determined, for example for
// an unmapped actor or one with custom painting and no PaintVolumeFunc.
func (a *Actor) PaintVolume() (PaintVolume, bool) {
	return a.currentPaintVolume()
}

// TransformedPaintVolume returns the paint volume of a in the coordinate
// space of relativeTo, which must be an ancestor of a. A nil relativeTo
// returns the volume in eye coordinates.
func (a *Actor) TransformedPaintVolume(relativeTo *Actor) (PaintVolume, bool) {
	if relativeTo == nil {
		return a.eyePaintVolume()
	}
	pv, ok := a.currentPaintVolume()
	if !ok {
		return PaintVolume{}, false
	}
	pv.TransformRelative(relativeTo)
	return pv, true
}

// PaintBox returns the pixel-aligned stage area a paints into.
func (a *Actor) PaintBox() (Box, bool) {
	stage := a.Stage()
	if stage == nil {
		return Box{}, false
	}
	pv, ok := a.currentPaintVolume()
	if !ok {
		return Box{}, false
	}
	return pv.StagePaintBox(stage), true
}

// LastPaintVolume returns the eye-space volume recorded when a was last
// painted.
func (a *Actor) LastPaintVolume() (PaintVolume, bool) {
	return a.lastPaintVolume, a.lastPaintVolumeValid
}
