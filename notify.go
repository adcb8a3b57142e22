package tableau

// Property identifies an actor attribute in change notifications.
type Property uint8

const (
	PropX Property = iota
	PropY
	PropWidth
	PropHeight
	PropAllocation
	PropFixedX
	PropFixedY
	PropFixedPositionSet
	PropMinWidth
	PropMinWidthSet
	PropMinHeight
	PropMinHeightSet
	PropNaturalWidth
	PropNaturalWidthSet
	PropNaturalHeight
	PropNaturalHeightSet
	PropRequestMode
	PropDepth
	PropOpacity
	PropVisible
	PropMapped
	PropRealized
	PropReactive
	PropShowOnSetParent
	PropClip
	PropHasClip
	PropClipToAllocation
	PropScaleX
	PropScaleY
	PropScaleCenter
	PropScaleGravity
	PropRotationAngleX
	PropRotationAngleY
	PropRotationAngleZ
	PropRotationCenterX
	PropRotationCenterY
	PropRotationCenterZ
	PropRotationCenterZGravity
	PropAnchor
	PropAnchorGravity
	PropName
	propCount
)

var propertyNames = [propCount]string{
	PropX:                      "x",
	PropY:                      "y",
	PropWidth:                  "width",
	PropHeight:                 "height",
	PropAllocation:             "allocation",
	PropFixedX:                 "fixed-x",
	PropFixedY:                 "fixed-y",
	PropFixedPositionSet:       "fixed-position-set",
	PropMinWidth:               "min-width",
	PropMinWidthSet:            "min-width-set",
	PropMinHeight:              "min-height",
	PropMinHeightSet:           "min-height-set",
	PropNaturalWidth:           "natural-width",
	PropNaturalWidthSet:        "natural-width-set",
	PropNaturalHeight:          "natural-height",
	PropNaturalHeightSet:       "natural-height-set",
	PropRequestMode:            "request-mode",
	PropDepth:                  "depth",
	PropOpacity:                "opacity",
	PropVisible:                "visible",
	PropMapped:                 "mapped",
	PropRealized:               "realized",
	PropReactive:               "reactive",
	PropShowOnSetParent:        "show-on-set-parent",
	PropClip:                   "clip",
	PropHasClip:                "has-clip",
	PropClipToAllocation:       "clip-to-allocation",
	PropScaleX:                 "scale-x",
	PropScaleY:                 "scale-y",
	PropScaleCenter:            "scale-center",
	PropScaleGravity:           "scale-gravity",
	PropRotationAngleX:         "rotation-angle-x",
	PropRotationAngleY:         "rotation-angle-y",
	PropRotationAngleZ:         "rotation-angle-z",
	PropRotationCenterX:        "rotation-center-x",
	PropRotationCenterY:        "rotation-center-y",
	PropRotationCenterZ:        "rotation-center-z",
	PropRotationCenterZGravity: "rotation-center-z-gravity",
	PropAnchor:                 "anchor",
	PropAnchorGravity:          "anchor-gravity",
	PropName:                   "name",
}

func (p Property) String() string {
	if p < propCount {
		return propertyNames[p]
	}
	return "unknown"
}

// HandlerID identifies a connected notification handler.
type HandlerID uint64

type notifyHandler struct {
	id HandlerID
	fn func(a *Actor, p Property)
}

// Connect registers fn to be called whenever a property of a changes.
func (a *Actor) Connect(fn func(a *Actor, p Property)) HandlerID {
	a.nextHandlerID++
	a.handlers = append(a.handlers, notifyHandler{id: a.nextHandlerID, fn: fn})
	return a.nextHandlerID
}

// Disconnect removes a handler previously returned by Connect.
func (a *Actor) Disconnect(id HandlerID) {
	for i, h := range a.handlers {
		if h.id == id {
			copy(a.handlers[i:], a.handlers[i+1:])
			a.handlers[len(a.handlers)-1] = notifyHandler{}
			a.handlers = a.handlers[:len(a.handlers)-1]
			return
		}
	}
}

func (a *Actor) notify(p Property) {
	if len(a.handlers) == 0 {
		return
	}
	if a.freezeCount > 0 {
		if a.pendingNotify&(1<<p) == 0 {
			a.pendingNotify |= 1 << p
			a.pendingOrder = append(a.pendingOrder, p)
		}
		return
	}
	a.emit(p)
}

func (a *Actor) emit(p Property) {
	// handlers may disconnect themselves
	hs := append([]notifyHandler(nil), a.handlers...)
	for _, h := range hs {
		h.fn(a, p)
	}
}

// NotifyBatch defers and deduplicates the change notifications of one actor
// until Thaw is called. Batches nest.
type NotifyBatch struct {
	actor *Actor
	done  bool
}

// FreezeNotify starts a notification batch on a. The usual pattern is
//
//	defer a.FreezeNotify().Thaw()
func (a *Actor) FreezeNotify() *NotifyBatch {
	a.freezeCount++
	return &NotifyBatch{actor: a}
}

// Thaw ends the batch. When the outermost batch ends every property that
// changed is notified once, in the order it first changed. Calling Thaw
// more than once has no effect.
func (b *NotifyBatch) Thaw() {
	if b.done {
		return
	}
	b.done = true
	a := b.actor
	a.freezeCount--
	if a.freezeCount > 0 {
		return
	}
	pending := a.pendingOrder
	a.pendingOrder = nil
	a.pendingNotify = 0
	for _, p := range pending {
		a.emit(p)
	}
}
