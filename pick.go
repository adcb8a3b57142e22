package tableau

import "image/color"

// pickIDPool hands out small integer ids to mapped actors. Released ids are
// reused before the pool grows.
type pickIDPool struct {
	actors []*Actor
	free   []int32
}

func (p *pickIDPool) acquire(a *Actor) int32 {
	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		p.actors[id] = a
		return id
	}
	p.actors = append(p.actors, a)
	return int32(len(p.actors) - 1)
}

func (p *pickIDPool) release(id int32) {
	if id < 0 || int(id) >= len(p.actors) || p.actors[id] == nil {
		return
	}
	p.actors[id] = nil
	p.free = append(p.free, id)
}

func (p *pickIDPool) lookup(id int32) *Actor {
	if id < 0 || int(id) >= len(p.actors) {
		return nil
	}
	return p.actors[id]
}

func (p *pickIDPool) inUse() int {
	return len(p.actors) - len(p.free)
}

// PickIDToColor encodes a pick id as an opaque color. Id -1 maps to
// transparent black, which decodes back to -1.
func PickIDToColor(id int32) color.RGBA {
	if id < 0 {
		return color.RGBA{}
	}
	v := uint32(id) + 1
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// ColorToPickID decodes a color written by PickIDToColor.
func ColorToPickID(c color.RGBA) int32 {
	if c.A == 0 {
		return -1
	}
	v := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	return int32(v) - 1
}

type pickClip struct {
	modelview Matrix
	box       Box
}

// pickRenderer resolves a pick for a single stage point without
// rasterizing: each FillPick box is mapped back into the space it was drawn
// in and tested against the point. The last hit wins, like a painter's
// pick buffer.
type pickRenderer struct {
	MatrixStack
	clips []pickClip
	x, y  float64
	hit   int32
}

func newPickRenderer(x, y float64, base Matrix) *pickRenderer {
	p := &pickRenderer{x: x, y: y, hit: -1}
	p.SetModelview(base)
	return p
}

func (p *pickRenderer) PushClip(b Box) {
	p.clips = append(p.clips, pickClip{modelview: p.Modelview(), box: b})
}

func (p *pickRenderer) PopClip() {
	if len(p.clips) == 0 {
		panic("tableau: PopClip without a matching PushClip")
	}
	p.clips = p.clips[:len(p.clips)-1]
}

func (p *pickRenderer) FillRect(Box, Color, uint8) {}

func (p *pickRenderer) FillPick(b Box, pickID int32) {
	if !p.hits(p.Modelview(), b) {
		return
	}
	for _, c := range p.clips {
		if !p.hits(c.modelview, c.box) {
			return
		}
	}
	p.hit = pickID
}

func (p *pickRenderer) Offscreen() bool { return false }

func (p *pickRenderer) hits(m Matrix, b Box) bool {
	x, y, ok := m.Unproject2D(p.x, p.y)
	return ok && b.Contains(x, y)
}

// GetActorAtPos returns the topmost actor painted at the stage point
// (x, y). With PickReactive only reactive actors are considered. The stage
// root is returned when nothing else is hit.
func (s *Stage) GetActorAtPos(mode PickMode, x, y float64) *Actor {
	if mode == PickNone || !s.actor.mapped {
		return nil
	}
	s.MaybeRelayout()

	savedPlanes, savedHas := s.clipPlanes, s.hasClipPlanes
	s.clipPlanes = ClipPlanesFromBox(Box{X1: x, Y1: y, X2: x + 1, Y2: y + 1})
	s.hasClipPlanes = true
	s.pickMode = mode

	p := newPickRenderer(x, y, s.deviceTransform())
	s.actor.Paint(p)

	s.pickMode = PickNone
	s.clipPlanes, s.hasClipPlanes = savedPlanes, savedHas

	if a := s.pickIDs.lookup(p.hit); a != nil {
		return a
	}
	return s.actor
}

// ActorByPickID returns the mapped actor holding id, or nil.
func (s *Stage) ActorByPickID(id int32) *Actor {
	return s.pickIDs.lookup(id)
}
