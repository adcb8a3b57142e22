package tableau

// defaultMaxClipEntries is the number of damage boxes kept before a frame
// falls back to a full redraw.
const defaultMaxClipEntries = 16

// Damage is the stage area that must be repainted, in device pixels.
type Damage struct {
	boxes []Box
	full  bool
}

// Invalidate adds b to the damage. Empty boxes are ignored. Once more than
// max boxes accumulate the damage becomes a full redraw.
func (d *Damage) Invalidate(b Box, max int) {
	if d.full || b.IsEmpty() {
		return
	}
	for _, old := range d.boxes {
		if old.Union(b).Equal(old) {
			return
		}
	}
	d.boxes = append(d.boxes, b)
	if len(d.boxes) > max {
		d.InvalidateAll()
	}
}

// InvalidateAll marks the whole stage as damaged.
func (d *Damage) InvalidateAll() {
	d.full = true
	d.boxes = d.boxes[:0]
}

// Boxes returns the damaged boxes. It returns nil for a full redraw. The
// returned slice must not be modified.
func (d *Damage) Boxes() []Box {
	if d.full {
		return nil
	}
	return d.boxes
}

// IsFull reports whether the whole stage must be redrawn.
func (d *Damage) IsFull() bool { return d.full }

// IsEmpty reports whether nothing needs repainting.
func (d *Damage) IsEmpty() bool { return !d.full && len(d.boxes) == 0 }

// Bounds returns the union of the damaged boxes, or stage for a full
// redraw.
func (d *Damage) Bounds(stage Box) Box {
	if d.full {
		return stage
	}
	var b Box
	for i, box := range d.boxes {
		if i == 0 {
			b = box
			continue
		}
		b = b.Union(box)
	}
	return b.Intersect(stage)
}

// Clear resets the damage after a paint.
func (d *Damage) Clear() {
	d.boxes = d.boxes[:0]
	d.full = false
}

func (d *Damage) clone() Damage {
	return Damage{boxes: append([]Box(nil), d.boxes...), full: d.full}
}
