package tableau

import (
	"testing"
)

// flagEffect records the flags of every run and paints through.
type flagEffect struct {
	runs  []EffectRunFlags
	picks int
}

func (e *flagEffect) Run(a *Actor, r Renderer, flags EffectRunFlags) {
	e.runs = append(e.runs, flags)
	a.ContinuePaint(r)
}

func (e *flagEffect) last() EffectRunFlags { return e.runs[len(e.runs)-1] }

// cacheEffect paints a cached result instead of the actor unless the actor
// is dirty.
type cacheEffect struct {
	repaints int
}

func (e *cacheEffect) Run(a *Actor, r Renderer, flags EffectRunFlags) {
	if flags&EffectRunActorDirty != 0 || e.repaints == 0 {
		e.repaints++
		a.ContinuePaint(r)
	}
}

// growEffect paints a border of Size around the actor.
type growEffect struct {
	Size float64
}

func (e *growEffect) Run(a *Actor, r Renderer, _ EffectRunFlags) { a.ContinuePaint(r) }

func (e *growEffect) ModifyPaintVolume(_ *Actor, pv *PaintVolume) bool {
	o := pv.Origin()
	w, h := pv.Width(), pv.Height()
	pv.SetOrigin(Vertex{X: o.X - e.Size, Y: o.Y - e.Size})
	pv.SetWidth(w + 2*e.Size)
	pv.SetHeight(h + 2*e.Size)
	return true
}

// pickEffect hides the actor from picking.
type pickEffect struct {
	flagEffect
}

func (e *pickEffect) Pick(*Actor, Renderer, EffectRunFlags) { e.picks++ }

func TestEffectChainOrder(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := newRect("a", red, 0, 0, 10, 10)
	var order []string
	a.AddEffect(&orderEffect{name: "outer", order: &order})
	a.AddEffect(&orderEffect{name: "inner", order: &order})
	a.PaintFunc = func(*Actor, Renderer) { order = append(order, "paint") }
	s.Add(a)
	frame(s)

	want := []string{"outer", "inner", "paint"}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("order = %v, want %v", order, want)
	}
}

type orderEffect struct {
	name  string
	order *[]string
}

func (e *orderEffect) Run(a *Actor, r Renderer, _ EffectRunFlags) {
	*e.order = append(*e.order, e.name)
	a.ContinuePaint(r)
}

func TestEffectDirtyFlags(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := newRect("a", red, 0, 0, 10, 10)
	e1, e2 := &flagEffect{}, &flagEffect{}
	a.AddEffect(e1)
	a.AddEffect(e2)
	s.Add(a)
	frame(s)

	// a full redraw: every effect sees a dirty actor
	a.QueueRedraw()
	frame(s)
	if e1.last()&EffectRunActorDirty == 0 || e2.last()&EffectRunActorDirty == 0 {
		t.Errorf("flags = %v, %v; want both dirty", e1.last(), e2.last())
	}

	// only e2 needs to run again: effects before it are dirty, e2 is not
	a.QueueRedrawWithEffect(e2)
	frame(s)
	if e1.last()&EffectRunActorDirty == 0 {
		t.Error("an effect before the marker must see a dirty actor")
	}
	if e2.last()&EffectRunActorDirty != 0 {
		t.Error("the marked effect may reuse its cached result")
	}
}

func TestCachingEffectSkipsPaint(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := newRect("a", red, 0, 0, 10, 10)
	cache := &cacheEffect{}
	a.AddEffect(cache)
	s.Add(a)
	frame(s)

	a.QueueRedrawWithEffect(cache)
	r := frame(s)
	if cache.repaints != 1 {
		t.Errorf("repaints = %d, want 1", cache.repaints)
	}
	if r.painted(red) {
		t.Error("the cached actor should not have been painted again")
	}

	a.QueueRedraw()
	frame(s)
	if cache.repaints != 2 {
		t.Errorf("repaints = %d after a full redraw, want 2", cache.repaints)
	}
}

func TestEffectGrowsPaintVolume(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := newRect("a", red, 20, 20, 10, 10)
	s.Add(a)
	s.Update()

	box, ok := a.PaintBox()
	if !ok {
		t.Fatal("no paint box")
	}
	assertBox(t, "plain", box, Box{X1: 20, Y1: 20, X2: 30, Y2: 30})

	a.AddEffect(&growEffect{Size: 5})
	box, _ = a.PaintBox()
	assertBox(t, "grown", box, Box{X1: 15, Y1: 15, X2: 35, Y2: 35})

	frame(s)
	a.QueueRedraw()
	assertBoxes(t, s.Update(), Box{X1: 15, Y1: 15, X2: 35, Y2: 35})
}

func TestRemoveEffect(t *testing.T) {
	logs := captureLogs(t)
	a := NewActor("a")
	e := &flagEffect{}
	a.AddEffect(e)
	a.AddEffect(e)
	if len(a.Effects()) != 1 || len(logs.warnings()) != 1 {
		t.Errorf("effects = %d, warnings = %v", len(a.Effects()), logs.warnings())
	}
	a.RemoveEffect(e)
	if len(a.Effects()) != 0 {
		t.Error("effect not removed")
	}
	a.AddEffect(e)
	a.AddEffect(&flagEffect{})
	a.ClearEffects()
	if len(a.Effects()) != 0 {
		t.Error("effects not cleared")
	}
	assertPanics(t, "nil effect", func() { a.AddEffect(nil) })
}

func TestContinuePaintOutsidePaintWarns(t *testing.T) {
	logs := captureLogs(t)
	a := NewActor("a")
	a.ContinuePaint(&recordingRenderer{})
	if len(logs.warnings()) != 1 {
		t.Errorf("warnings = %v", logs.warnings())
	}
}

func TestEffectPickers(t *testing.T) {
	s := newShownStage(t, 100, 100)
	plain := newRect("plain", red, 0, 0, 50, 50)
	plainEffect := &flagEffect{}
	plain.AddEffect(plainEffect)
	hider := newRect("hider", green, 50, 50, 50, 50)
	hiding := &pickEffect{}
	hider.AddEffect(hiding)
	s.Add(plain, hider)

	if got := s.GetActorAtPos(PickAll, 10, 10); got != plain {
		t.Errorf("pick through a plain effect = %v, want plain", got.Name())
	}
	if len(plainEffect.runs) != 0 {
		t.Error("effects without Pick must not run while picking")
	}
	if got := s.GetActorAtPos(PickAll, 60, 60); got != s.Root() {
		t.Errorf("pick through a hiding effect = %v, want the stage", got.Name())
	}
	if hiding.picks != 1 {
		t.Errorf("picks = %d, want 1", hiding.picks)
	}
}
