package tableau

import (
	"strings"
	"testing"
)

// newRect returns a rectangle at (x, y) with the given size.
func newRect(name string, c Color, x, y, w, h float64) *Actor {
	a := NewRectangle(name, c)
	a.SetPosition(x, y)
	a.SetSize(w, h)
	return a
}

func assertBoxes(t *testing.T, d Damage, want ...Box) {
	t.Helper()
	if d.IsFull() {
		t.Fatalf("damage is a full redraw, want %v", want)
	}
	got := d.Boxes()
	if len(got) != len(want) {
		t.Fatalf("damage = %v, want %v", got, want)
	}
	for i := range want {
		assertBox(t, "damage box", got[i], want[i])
	}
}

func TestMoveDamagesOldAndNewArea(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	s.Add(a)
	frame(s)

	a.SetPosition(50, 50)
	d := s.Update()
	assertBoxes(t, d,
		Box{X1: 10, Y1: 10, X2: 30, Y2: 30},
		Box{X1: 50, Y1: 50, X2: 70, Y2: 70},
	)

	r := frame(s)
	for _, f := range r.fills {
		if !f.clipped {
			t.Fatalf("fill %+v painted without the damage clip", f)
		}
		assertBox(t, "clip", f.clip, Box{X1: 10, Y1: 10, X2: 70, Y2: 70})
	}
	if !r.painted(red) {
		t.Error("moved actor not repainted")
	}
}

func TestRedrawInPlaceDamagesOneBox(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	s.Add(a)
	frame(s)

	a.SetOpacity(128)
	a.QueueRedraw()
	assertBoxes(t, s.Update(), Box{X1: 10, Y1: 10, X2: 30, Y2: 30})
}

func TestRedrawCoalescesPerActor(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	s.Add(a)
	frame(s)

	a.QueueRedraw()
	a.QueueRedraw()
	a.QueueRedrawWithClip(&Box{X2: 5, Y2: 5})
	if n := len(s.redrawQueue); n != 1 {
		t.Errorf("queued entries = %d, want 1", n)
	}
}

func TestRedrawWithClip(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	s.Add(a)
	frame(s)

	a.QueueRedrawWithClip(&Box{X1: 2, Y1: 3, X2: 6, Y2: 8})
	assertBoxes(t, s.Update(), Box{X1: 12, Y1: 13, X2: 16, Y2: 18})

	frame(s)
	a.QueueRedrawWithClip(&Box{X2: 2, Y2: 2})
	a.QueueRedrawWithClip(&Box{X1: 4, Y1: 4, X2: 6, Y2: 6})
	assertBoxes(t, s.Update(), Box{X1: 10, Y1: 10, X2: 16, Y2: 16})
}

func TestRedrawClippedToAllocation(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 40, 30, 20, 10)
	s.Add(a)
	frame(s)

	a.QueueRedrawClipped()
	assertBoxes(t, s.Update(), Box{X1: 40, Y1: 30, X2: 60, Y2: 40})
}

func TestUnknownPaintVolumeRedrawsEverything(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("custom")
	a.SetSize(10, 10)
	a.PaintFunc = func(*Actor, Renderer) {}
	s.Add(a)
	frame(s)

	a.QueueRedraw()
	if d := s.Update(); !d.IsFull() {
		t.Errorf("damage = %v, want a full redraw", d.Boxes())
	}
}

func TestHiddenActorQueuesNothing(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	s.Add(a)
	a.Hide()
	frame(s)

	reached := 0
	a.OnQueueRedraw = func(*Actor, *Actor) { reached++ }
	a.QueueRedraw()
	if d := s.Update(); !d.IsEmpty() {
		t.Errorf("damage = %+v, want none", d)
	}
	if reached != 0 {
		t.Errorf("OnQueueRedraw ran %d times for an unmapped actor", reached)
	}
}

func TestClonedHiddenActorSignalsLocally(t *testing.T) {
	s := newShownStage(t, 200, 200)
	p := NewActor("p")
	s.Add(p)
	a := newRect("a", red, 10, 10, 20, 20)
	p.AddChild(a)
	a.Hide()
	a.AttachClone()
	frame(s)

	reached := map[string]int{}
	a.OnQueueRedraw = func(*Actor, *Actor) { reached["a"]++ }
	p.OnQueueRedraw = func(*Actor, *Actor) { reached["p"]++ }

	a.QueueRedraw()
	d := s.Update()
	if reached["a"] != 1 {
		t.Errorf("clone source saw %d redraws, want 1", reached["a"])
	}
	if reached["p"] != 0 {
		t.Error("redraw of an invisible actor must not bubble")
	}
	if !d.IsEmpty() {
		t.Errorf("damage = %+v, want none", d)
	}
}

func TestRedrawBubblesThroughParents(t *testing.T) {
	s := newShownStage(t, 200, 200)
	p := NewActor("p")
	p.SetPosition(100, 100)
	s.Add(p)
	a := newRect("a", red, 5, 5, 10, 10)
	p.AddChild(a)
	frame(s)

	var origins []string
	p.OnQueueRedraw = func(_ *Actor, origin *Actor) { origins = append(origins, origin.Name()) }
	a.QueueRedraw()
	d := s.Update()

	if len(origins) != 1 || origins[0] != "a" {
		t.Errorf("origins seen by the parent = %v, want [a]", origins)
	}
	if !p.IsDirty() {
		t.Error("a redraw from a child must mark the parent dirty")
	}
	assertBoxes(t, d, Box{X1: 105, Y1: 105, X2: 115, Y2: 115})
}

func TestMaxClipEntriesFallsBackToFullRedraw(t *testing.T) {
	s := newShownStage(t, 200, 200)
	cfg := s.DebugConfig()
	cfg.MaxClipEntries = 2
	s.SetDebugConfig(cfg)
	actors := []*Actor{
		newRect("a", red, 0, 0, 10, 10),
		newRect("b", green, 50, 0, 10, 10),
		newRect("c", blue, 100, 0, 10, 10),
	}
	s.Add(actors...)
	frame(s)

	actors[0].QueueRedraw()
	actors[1].QueueRedraw()
	if d := s.Update(); d.IsFull() {
		t.Fatal("two boxes must stay clipped")
	}
	actors[2].QueueRedraw()
	if d := s.Update(); !d.IsFull() {
		t.Errorf("damage = %v, want a full redraw", d.Boxes())
	}
}

func TestDisableClippedRedraws(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	s.Add(a)
	s.SetDebugConfig(DebugConfig{DisableClippedRedraws: true})
	frame(s)

	a.QueueRedraw()
	if d := s.Update(); !d.IsFull() {
		t.Errorf("damage = %v, want a full redraw", d.Boxes())
	}
}

func TestRedrawOutsideStageIgnored(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := newRect("a", red, 200, 200, 10, 10)
	s.Add(a)
	frame(s)

	a.QueueRedraw()
	if d := s.Update(); !d.IsEmpty() {
		t.Errorf("damage = %+v, want none", d)
	}
}

func TestQueueRedrawWithEffectMerge(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	e1, e2 := &flagEffect{}, &flagEffect{}
	a.AddEffect(e1)
	a.AddEffect(e2)
	s.Add(a)
	frame(s)

	a.QueueRedrawWithEffect(e1)
	a.QueueRedrawWithEffect(e2)
	if a.effectToRedraw != e2 {
		t.Error("the marker must move to the later effect in the chain")
	}
	a.QueueRedrawWithEffect(e1)
	if a.effectToRedraw != e2 {
		t.Error("an earlier effect must not move the marker back")
	}
	logs := captureLogs(t)
	a.QueueRedrawWithEffect(e2)
	if a.effectToRedraw != e2 || len(logs.warnings()) != 0 {
		t.Errorf("requeueing the marker: marker moved or warned %v", logs.warnings())
	}
	a.QueueRedraw()
	if a.effectToRedraw != nil {
		t.Error("a plain redraw must clear the marker")
	}
}

func TestQueueRedrawWithUnknownEffectWarns(t *testing.T) {
	logs := captureLogs(t)
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	attached := &flagEffect{}
	a.AddEffect(attached)
	s.Add(a)
	frame(s)

	stale, stranger := &flagEffect{}, &flagEffect{}
	a.QueueRedrawWithEffect(stale)
	a.QueueRedrawWithEffect(stranger)

	if a.effectToRedraw != stale {
		t.Error("the previous marker must be kept")
	}
	w := logs.warnings()
	if len(w) != 1 || !strings.Contains(w[0], "not applied") {
		t.Errorf("warnings = %v", w)
	}
}

func TestQueueRedrawWithDetachedEffectKeepsMarker(t *testing.T) {
	logs := captureLogs(t)
	s := newShownStage(t, 200, 200)
	a := newRect("a", red, 10, 10, 20, 20)
	attached := &flagEffect{}
	a.AddEffect(attached)
	s.Add(a)
	frame(s)

	a.QueueRedrawWithEffect(attached)
	a.QueueRedrawWithEffect(&flagEffect{})

	if a.effectToRedraw != attached {
		t.Error("the attached marker must be kept")
	}
	w := logs.warnings()
	if len(w) != 1 || !strings.Contains(w[0], "not applied") {
		t.Errorf("warnings = %v", w)
	}
}

func TestQueueRelayoutShortCircuit(t *testing.T) {
	s := newShownStage(t, 200, 200)
	a := NewActor("a")
	s.Add(a)
	s.Update()

	calls := 0
	a.OnQueueRelayout = func(*Actor) { calls++ }
	a.QueueRelayout()
	a.QueueRelayout()
	if calls != 1 {
		t.Errorf("OnQueueRelayout calls = %d, want 1", calls)
	}
	s.Update()
	a.QueueRelayout()
	if calls != 2 {
		t.Errorf("OnQueueRelayout calls = %d after a new allocation, want 2", calls)
	}
}

func TestRelayoutBubblesToStage(t *testing.T) {
	s := newShownStage(t, 200, 200)
	p := NewActor("p")
	c := NewActor("c")
	p.AddChild(c)
	s.Add(p)
	s.Update()

	c.QueueRelayout()
	if !p.NeedsAllocation() || !s.Root().NeedsAllocation() {
		t.Error("relayout must reach every ancestor")
	}
	s.Update()
	if c.NeedsAllocation() || p.NeedsAllocation() {
		t.Error("Update must allocate the tree")
	}
}
