package tableau

import (
	"time"
)

// redrawEntry is a queued redraw for one actor. A nil actor marks an entry
// invalidated by removing the actor from the tree.
type redrawEntry struct {
	actor   *Actor
	clip    PaintVolume
	hasClip bool
}

func (e *redrawEntry) invalidate() {
	e.actor = nil
	e.hasClip = false
}

// Stage owns a toplevel actor tree and turns the redraws queued on it into
// damage, once per frame.
type Stage struct {
	actor *Actor

	width, height float64
	scale         float64
	color         Color

	pickIDs  pickIDPool
	pickMode PickMode
	keyFocus *Actor

	redrawQueue     []*redrawEntry
	redrawPending   bool
	relayoutPending bool
	inRelayout      bool
	damage          Damage

	clipPlanes    [4]Plane
	hasClipPlanes bool

	debug        bool
	config       DebugConfig
	metrics      *StageMetrics
	stats        frameStats
	mappedActors int

	screenshotQueue []string
	screenshotDir   string
}

// NewStage creates a stage of the given logical size. The stage starts
// hidden; call Show to map it.
func NewStage(width, height float64) *Stage {
	s := &Stage{
		width:           width,
		height:          height,
		scale:           1,
		color:           ColorBlack,
		config:          DefaultDebugConfig(),
		relayoutPending: true,
	}
	root := NewActor("stage")
	root.toplevel = true
	root.stage = s
	root.visible = false
	root.reactive = true
	root.PreferredWidthFunc = func(*Actor, float64) (float64, float64) {
		return s.width, s.width
	}
	root.PreferredHeightFunc = func(*Actor, float64) (float64, float64) {
		return s.height, s.height
	}
	root.PaintFunc = func(a *Actor, r Renderer) {
		r.FillRect(Box{X2: s.width, Y2: s.height}, s.color, 255)
	}
	s.actor = root
	return s
}

// Root returns the toplevel actor of the stage.
func (s *Stage) Root() *Actor { return s.actor }

// Add adds actors as children of the stage root.
func (s *Stage) Add(actors ...*Actor) {
	for _, a := range actors {
		s.actor.AddChild(a)
	}
}

// Show makes the stage visible and maps the tree under it.
func (s *Stage) Show() {
	s.actor.Show()
	if !s.actor.mapped {
		s.actor.Map()
	}
	s.damage.InvalidateAll()
	s.redrawPending = true
}

// Hide unmaps the tree and hides the stage.
func (s *Stage) Hide() {
	if s.actor.mapped {
		s.actor.Unmap()
	}
	s.actor.Hide()
}

// IsMapped reports whether the stage is shown.
func (s *Stage) IsMapped() bool { return s.actor.mapped }

// Size returns the logical size of the stage.
func (s *Stage) Size() (width, height float64) { return s.width, s.height }

// SetSize resizes the stage and queues a relayout of the whole tree.
func (s *Stage) SetSize(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.actor.QueueRelayout()
	s.damage.InvalidateAll()
	s.redrawPending = true
}

// Scale returns the device scale factor.
func (s *Stage) Scale() float64 { return s.scale }

// SetScale sets the number of device pixels per logical unit.
func (s *Stage) SetScale(scale float64) {
	if scale <= 0 || scale == s.scale {
		return
	}
	s.scale = scale
	s.damage.InvalidateAll()
	s.redrawPending = true
}

// Color returns the background color.
func (s *Stage) Color() Color { return s.color }

// SetColor sets the background color.
func (s *Stage) SetColor(c Color) {
	s.color = c
	s.actor.QueueRedraw()
}

// KeyFocus returns the actor holding key focus, or nil.
func (s *Stage) KeyFocus() *Actor { return s.keyFocus }

// SetKeyFocus gives key focus to a. A nil a, or an actor on another stage,
// clears the focus.
func (s *Stage) SetKeyFocus(a *Actor) {
	if a != nil && a.Stage() != s {
		a = nil
	}
	s.keyFocus = a
}

func (s *Stage) deviceTransform() Matrix {
	return IdentityMatrix().Scale(s.scale, s.scale, 1)
}

// DeviceBounds returns the stage area in device pixels.
func (s *Stage) DeviceBounds() Box {
	return Box{X2: s.width * s.scale, Y2: s.height * s.scale}.ClampToPixel()
}

// ClipPlanes returns the planes of the area being painted. They are only
// valid during a paint or pick.
func (s *Stage) ClipPlanes() ([4]Plane, bool) {
	return s.clipPlanes, s.hasClipPlanes
}

func (s *Stage) acquirePickID(a *Actor) int32 { return s.pickIDs.acquire(a) }

func (s *Stage) releasePickID(id int32) { s.pickIDs.release(id) }

func (s *Stage) mappedCountChanged(delta int) {
	s.mappedActors += delta
	if s.metrics != nil {
		s.metrics.mappedActors.Set(float64(s.mappedActors))
	}
}

// queueActorRedraw records a redraw of a with an optional clip in a's
// space. A redraw without a clip absorbs every other redraw of the same
// actor in the frame.
func (s *Stage) queueActorRedraw(entry *redrawEntry, a *Actor, clip *PaintVolume) *redrawEntry {
	s.redrawPending = true
	if entry != nil {
		switch {
		case !entry.hasClip:
		case clip != nil:
			entry.clip.Union(clip)
		default:
			entry.hasClip = false
		}
		return entry
	}
	entry = &redrawEntry{actor: a}
	if clip != nil {
		entry.clip = *clip
		entry.hasClip = true
	}
	s.redrawQueue = append(s.redrawQueue, entry)
	s.stats.entries++
	return entry
}

// addRedrawClip turns the clip carried by origin into damage. A missing
// clip damages the whole stage.
func (s *Stage) addRedrawClip(origin *Actor) {
	s.redrawPending = true
	if s.config.DisableClippedRedraws {
		s.damage.InvalidateAll()
		return
	}
	clip := origin.queueRedrawClip
	if clip == nil {
		s.damage.InvalidateAll()
		return
	}
	if clip.IsEmpty() {
		return
	}
	box := clip.StagePaintBox(s).Intersect(s.DeviceBounds())
	s.damage.Invalidate(box, s.config.MaxClipEntries)
}

// HasFullRedrawQueued reports whether the next frame repaints the whole
// stage.
func (s *Stage) HasFullRedrawQueued() bool {
	return s.redrawPending && s.damage.IsFull()
}

// QueueFullRedraw damages the whole stage.
func (s *Stage) QueueFullRedraw() {
	s.damage.InvalidateAll()
	s.redrawPending = true
}

// RedrawPending reports whether anything was queued since the last paint.
func (s *Stage) RedrawPending() bool { return s.redrawPending }

// MaybeRelayout allocates the tree if a relayout was queued.
func (s *Stage) MaybeRelayout() {
	if !s.relayoutPending || s.inRelayout {
		return
	}
	s.relayoutPending = false
	s.inRelayout = true
	start := time.Now()
	s.actor.Allocate(Box{X2: s.width, Y2: s.height}, 0)
	s.stats.layoutTime = time.Since(start)
	s.inRelayout = false
}

// finishQueuedRedraws converts queued redraws into damage. Handlers may
// queue more redraws while this runs; those are processed in the same
// call.
func (s *Stage) finishQueuedRedraws() {
	for len(s.redrawQueue) > 0 {
		stolen := s.redrawQueue
		s.redrawQueue = nil
		for _, e := range stolen {
			a := e.actor
			if a == nil {
				continue
			}
			var clip *PaintVolume
			if e.hasClip {
				c := e.clip
				clip = &c
			}
			e.invalidate()
			a.finishQueueRedraw(clip)
		}
	}
}

// Update runs the queued relayout and flushes the queued redraws. It
// returns the damage the next Paint will repaint.
func (s *Stage) Update() Damage {
	s.stats.begin()
	s.MaybeRelayout()

	start := time.Now()
	s.finishQueuedRedraws()
	s.stats.flushTime = time.Since(start)

	if s.metrics != nil {
		s.metrics.redrawEntries.Add(float64(s.stats.entries))
		s.metrics.flushSeconds.Observe(s.stats.flushTime.Seconds())
	}
	s.stats.entries = 0
	return s.damage.clone()
}

// Paint updates the stage and repaints its damaged area through r. It
// returns false when nothing needed repainting.
func (s *Stage) Paint(r Renderer) bool {
	if !s.actor.mapped {
		return false
	}
	s.Update()
	if s.damage.IsEmpty() {
		s.redrawPending = false
		return false
	}
	full := s.damage.IsFull()
	bounds := s.damage.Bounds(s.DeviceBounds())
	s.paint(r, bounds, full)
	return true
}

// PaintAll updates the stage and repaints all of it through r, whatever
// was queued.
func (s *Stage) PaintAll(r Renderer) {
	if !s.actor.mapped {
		return
	}
	s.Update()
	s.paint(r, s.DeviceBounds(), true)
}

func (s *Stage) paint(r Renderer, clip Box, full bool) {
	start := time.Now()
	s.clipPlanes = ClipPlanesFromBox(clip)
	s.hasClipPlanes = true

	if !full {
		r.PushClip(clip)
	}
	r.PushMatrix()
	r.ApplyTransform(s.deviceTransform())
	s.actor.Paint(r)
	r.PopMatrix()
	if !full {
		r.PopClip()
	}

	s.hasClipPlanes = false
	s.damage.Clear()
	s.redrawPending = false
	s.stats.paintTime = time.Since(start)

	if s.metrics != nil {
		s.metrics.frames.Inc()
		if full {
			s.metrics.fullRedraws.Inc()
		}
		s.metrics.culledActors.Add(float64(s.stats.culled))
	}
	s.debugLog(clip, full)
	s.stats.culled = 0
}

// SetDebugMode enables or disables debug mode. When enabled, map state
// invariants are checked on every transition, tree depth and child count
// warnings are logged, and per-frame stats are logged at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled || s.config.CheckInvariants
}

// DebugConfig returns the debug switches of the stage.
func (s *Stage) DebugConfig() DebugConfig { return s.config }

// SetDebugConfig replaces the debug switches of the stage. A non positive
// MaxClipEntries keeps the default.
func (s *Stage) SetDebugConfig(c DebugConfig) {
	if c.MaxClipEntries <= 0 {
		c.MaxClipEntries = defaultMaxClipEntries
	}
	s.config = c
	globalDebug = s.debug || c.CheckInvariants
	s.damage.InvalidateAll()
	s.redrawPending = true
}

// SetMetrics attaches Prometheus collectors to the stage. Pass nil to
// detach.
func (s *Stage) SetMetrics(m *StageMetrics) {
	s.metrics = m
	if m != nil {
		m.mappedActors.Set(float64(s.mappedActors))
	}
}

// MappedActors returns the number of mapped actors on the stage, the root
// included.
func (s *Stage) MappedActors() int { return s.mappedActors }

// Destroy tears down the tree. The stage must not be used afterwards.
func (s *Stage) Destroy() {
	for _, e := range s.redrawQueue {
		e.invalidate()
	}
	s.redrawQueue = nil
	s.actor.Destroy()
	s.keyFocus = nil
}
