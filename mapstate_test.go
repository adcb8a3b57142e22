package tableau

import (
	"reflect"
	"strings"
	"testing"
)

func TestChildMappedWhenParentMapped(t *testing.T) {
	s := newShownStage(t, 100, 100)
	c := NewActor("c")
	s.Add(c)
	if !c.IsVisible() || !c.IsRealized() || !c.IsMapped() {
		t.Errorf("child of a shown stage: visible=%v realized=%v mapped=%v",
			c.IsVisible(), c.IsRealized(), c.IsMapped())
	}
}

func TestShowMapsWithoutExplicitMap(t *testing.T) {
	s := newShownStage(t, 100, 100)
	c := NewActor("c")
	c.Hide()
	s.Add(c)
	if c.IsVisible() || c.IsMapped() {
		t.Fatal("hidden child must stay unmapped when added")
	}
	c.Show()
	if !c.IsMapped() {
		t.Error("showing a child of a mapped stage must map it")
	}
}

func TestStageShowMapsExistingChildren(t *testing.T) {
	s := NewStage(100, 100)
	p := NewActor("p")
	c := NewActor("c")
	p.AddChild(c)
	s.Add(p)
	if p.IsMapped() || s.IsMapped() {
		t.Fatal("nothing is mapped before Show")
	}
	s.Show()
	if !s.IsMapped() || !p.IsMapped() || !c.IsMapped() {
		t.Error("Show must map the whole visible tree")
	}
	if got := s.MappedActors(); got != 3 {
		t.Errorf("MappedActors = %d, want 3", got)
	}
	s.Hide()
	if p.IsMapped() || c.IsMapped() || s.MappedActors() != 0 {
		t.Error("Hide must unmap the tree")
	}
}

func TestUnrealizeChain(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := s.Root()
	b := NewActor("b")
	c := NewActor("c")
	s.Add(b)
	b.AddChild(c)

	b.Unrealize()

	if c.IsRealized() || c.IsMapped() {
		t.Error("grandchild must be unrealized and unmapped")
	}
	if b.IsRealized() || b.IsVisible() {
		t.Error("unrealized actor must be hidden and unrealized")
	}
	if !a.IsRealized() || !a.IsMapped() {
		t.Error("the stage root must not be affected")
	}
}

func TestHideParentUnmapsChildren(t *testing.T) {
	s := newShownStage(t, 100, 100)
	p := NewActor("p")
	c := NewActor("c")
	s.Add(p)
	p.AddChild(c)

	p.Hide()
	if c.IsMapped() || !c.IsVisible() {
		t.Error("child of a hidden parent must be unmapped but stay visible")
	}
	if !c.IsRealized() {
		t.Error("hiding does not unrealize")
	}
	p.Show()
	if !c.IsMapped() {
		t.Error("child must be mapped again when its parent shows")
	}
}

func TestShowHideIdempotent(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := NewActor("a")
	s.Add(a)
	visible := 0
	a.Connect(func(_ *Actor, p Property) {
		if p == PropVisible {
			visible++
		}
	})
	a.Show()
	a.Hide()
	a.Hide()
	a.Show()
	a.Show()
	if visible != 2 {
		t.Errorf("visible notifications = %d, want 2", visible)
	}
}

func TestMapNotificationOrder(t *testing.T) {
	s := newShownStage(t, 100, 100)
	p := NewActor("p")
	c := NewActor("c")
	p.AddChild(c)

	var order []string
	record := func(a *Actor, prop Property) {
		if prop == PropMapped {
			order = append(order, a.Name())
		}
	}
	p.Connect(record)
	c.Connect(record)

	s.Add(p)
	if want := []string{"p", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("map order = %v, want %v", order, want)
	}
	order = nil
	p.Hide()
	if want := []string{"c", "p"}; !reflect.DeepEqual(order, want) {
		t.Errorf("unmap order = %v, want %v", order, want)
	}
}

func TestRealizeHooks(t *testing.T) {
	s := newShownStage(t, 100, 100)
	a := NewActor("a")
	var events []string
	a.OnRealize = func(*Actor) { events = append(events, "realize") }
	a.OnMap = func(*Actor) { events = append(events, "map") }
	a.OnUnmap = func(*Actor) { events = append(events, "unmap") }
	a.OnUnrealize = func(*Actor) { events = append(events, "unrealize") }

	s.Add(a)
	s.Root().RemoveChild(a)

	want := []string{"realize", "map", "unmap", "unrealize"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestRealizeWithoutParentStaysUnrealized(t *testing.T) {
	a := NewActor("a")
	a.Realize()
	if a.IsRealized() {
		t.Error("an orphan cannot be realized")
	}
}

func TestMapOrphanWarns(t *testing.T) {
	logs := captureLogs(t)
	a := NewActor("a")
	a.Map()
	if a.IsMapped() {
		t.Error("orphan must not be mapped")
	}
	w := logs.warnings()
	if len(w) != 1 || !strings.Contains(w[0], "without a parent") {
		t.Errorf("warnings = %v", w)
	}
}

func TestShowAllHideAll(t *testing.T) {
	p, _, _, d := buildTree()
	p.HideAll()
	DepthFirst(p, func(a *Actor, _ int) TraverseResult {
		if a.IsVisible() {
			t.Errorf("%s still visible after HideAll", a.Name())
		}
		return TraverseContinue
	}, nil)
	p.ShowAll()
	if !d.IsVisible() || !p.IsVisible() {
		t.Error("ShowAll must show every descendant")
	}
}

func TestPaintUnmapped(t *testing.T) {
	s := newShownStage(t, 100, 100)
	p := NewActor("p")
	c := NewActor("c")
	s.Add(p)
	p.AddChild(c)
	p.Hide()

	c.SetPaintUnmapped()
	if !c.IsMapped() {
		t.Fatal("SetPaintUnmapped must map the actor under a hidden parent")
	}
	if errs := CheckInvariants(s.Root()); len(errs) != 0 {
		t.Errorf("paint-unmapped branch reported %v", errs)
	}

	c.SetPaintUnmapped()
	c.ReleasePaintUnmapped()
	if !c.IsMapped() {
		t.Error("nested SetPaintUnmapped released too early")
	}
	c.ReleasePaintUnmapped()
	if c.IsMapped() {
		t.Error("actor must be unmapped once paint-unmapped is released")
	}

	logs := captureLogs(t)
	c.ReleasePaintUnmapped()
	if len(logs.warnings()) != 1 {
		t.Errorf("unbalanced release warnings = %v", logs.warnings())
	}
}

func TestCheckInvariants(t *testing.T) {
	s := newShownStage(t, 100, 100)
	p := NewActor("p")
	p.AddChild(NewActor("c"))
	s.Add(p)
	p.Hide()
	p.Show()

	if errs := CheckInvariants(s.Root()); len(errs) != 0 {
		t.Errorf("healthy tree reported %v", errs)
	}

	orphan := NewActor("orphan")
	orphan.mapped = true
	errs := CheckInvariants(orphan)
	if len(errs) != 2 {
		t.Errorf("errors = %v, want mapped-not-realized and no-parent", errs)
	}
}

func TestDebugModeSilentOnValidTransitions(t *testing.T) {
	withDebug(t)
	logs := captureLogs(t)

	s := newShownStage(t, 100, 100)
	p := NewActor("p")
	c := NewActor("c")
	p.AddChild(c)
	s.Add(p)
	q := NewActor("q")
	s.Add(q)
	c.Reparent(q)
	p.Hide()
	p.Show()
	q.Unrealize()
	p.Destroy()

	if w := logs.warnings(); len(w) != 0 {
		t.Errorf("warnings = %v", w)
	}
}
