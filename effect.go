package tableau

// EffectRunFlags describe the state of the actor when an effect runs.
type EffectRunFlags uint8

const (
	// EffectRunActorDirty means the actor's own painting changed since the
	// effect last ran, so any cached result is stale.
	EffectRunActorDirty EffectRunFlags = 1 << iota
)

// Effect wraps the painting of an actor. Run is called during paint and
// pick traversals; an effect either paints a cached result or calls
// a.ContinuePaint(r) to run the rest of the chain and the actor itself.
type Effect interface {
	Run(a *Actor, r Renderer, flags EffectRunFlags)
}

// PaintVolumeModifier is implemented by effects that paint outside the
// actor's own paint volume. ModifyPaintVolume grows pv and reports false
// if the volume cannot be known.
type PaintVolumeModifier interface {
	ModifyPaintVolume(a *Actor, pv *PaintVolume) bool
}

// EffectPicker is implemented by effects that change the pick silhouette.
// Effects without it are skipped during picking.
type EffectPicker interface {
	Pick(a *Actor, r Renderer, flags EffectRunFlags)
}

// AddEffect appends e to the effect chain of a. Effects run in the order
// they were added; the first one wraps all the others.
func (a *Actor) AddEffect(e Effect) {
	if e == nil {
		panic("tableau: cannot add nil effect")
	}
	for _, x := range a.effects {
		if x == e {
			warnActor(a, "effect already applied to the actor")
			return
		}
	}
	a.effects = append(a.effects, e)
	a.QueueRedraw()
}

// RemoveEffect removes e from the effect chain of a.
func (a *Actor) RemoveEffect(e Effect) {
	for i, x := range a.effects {
		if x != e {
			continue
		}
		copy(a.effects[i:], a.effects[i+1:])
		a.effects[len(a.effects)-1] = nil
		a.effects = a.effects[:len(a.effects)-1]
		if a.effectToRedraw == e {
			a.effectToRedraw = nil
		}
		a.QueueRedraw()
		return
	}
}

// ClearEffects removes every effect of a.
func (a *Actor) ClearEffects() {
	if len(a.effects) == 0 {
		return
	}
	a.effects = nil
	a.effectToRedraw = nil
	a.QueueRedraw()
}

// Effects returns the effect chain of a. The returned slice MUST NOT be
// mutated by the caller.
func (a *Actor) Effects() []Effect { return a.effects }

// CurrentEffect returns the effect being run, or nil outside an effect.
func (a *Actor) CurrentEffect() Effect { return a.currentEffect }

// ContinuePaint runs the next effect in the chain or, at the end of the
// chain, paints (or picks) the actor and its children. It must only be
// called from an Effect's Run or Pick.
func (a *Actor) ContinuePaint(r Renderer) {
	if !a.inPaint {
		warnActor(a, "ContinuePaint called outside of a paint")
		return
	}
	mode := PickNone
	if s := a.Stage(); s != nil {
		mode = s.pickMode
	}

	if a.nextEffect >= len(a.effects) {
		if mode == PickNone {
			a.paintContent(r)
		} else {
			a.pickContent(r, mode)
		}
		return
	}

	prev := a.currentEffect
	a.currentEffect = a.effects[a.nextEffect]
	a.nextEffect++

	if mode == PickNone {
		var flags EffectRunFlags
		// effects before the queued marker see a dirty actor; the marker
		// itself may reuse its cached result
		if a.isDirty && (a.effectToRedraw == nil || a.currentEffect != a.effectToRedraw) {
			flags |= EffectRunActorDirty
		}
		a.currentEffect.Run(a, r, flags)
	} else {
		// picking cannot know whether anything changed since the last pick
		if p, ok := a.currentEffect.(EffectPicker); ok {
			p.Pick(a, r, EffectRunActorDirty)
		} else {
			a.ContinuePaint(r)
		}
	}
	a.currentEffect = prev
}
