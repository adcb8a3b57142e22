package tableau

const cachedSizeRequests = 3

// sizeRequest is one cached answer of a preferred size query.
// age 0 marks an unused slot.
type sizeRequest struct {
	forSize     float64
	minSize     float64
	naturalSize float64
	age         uint32
}

// lookupSizeRequest scans cache for forSize. On a miss it returns the
// slot to overwrite: the oldest one, or the first slot when the actor
// needs a fresh request anyway.
func lookupSizeRequest(cache *[cachedSizeRequests]sizeRequest, forSize float64, needsRequest bool) (*sizeRequest, bool) {
	slot := &cache[0]
	if needsRequest {
		return slot, false
	}
	for i := range cache {
		sr := &cache[i]
		if sr.age > 0 && sr.forSize == forSize {
			return sr, true
		}
		if sr.age < slot.age {
			slot = sr
		}
	}
	return slot, false
}

func (a *Actor) clearSizeRequests() {
	a.widthRequests = [cachedSizeRequests]sizeRequest{}
	a.heightRequests = [cachedSizeRequests]sizeRequest{}
	a.cachedWidthAge = 1
	a.cachedHeightAge = 1
}

// GetPreferredWidth returns the minimum and natural width of a for the
// given height. A negative forHeight means unconstrained. Results are
// cached until the next relayout; explicit overrides always win.
func (a *Actor) GetPreferredWidth(forHeight float64) (min, natural float64) {
	l := &a.layout
	if l.minWidthSet && l.naturalWidthSet {
		return l.minWidth, l.naturalWidth
	}
	sr, hit := lookupSizeRequest(&a.widthRequests, forHeight, a.needsWidthRequest)
	if !hit {
		m, n := a.computePreferredWidth(forHeight)
		// tolerate accumulated float error
		if n < m {
			n = m
		}
		sr.forSize = forHeight
		sr.minSize = m
		sr.naturalSize = n
		sr.age = a.cachedWidthAge
		a.cachedWidthAge++
		a.needsWidthRequest = false
	}
	min, natural = sr.minSize, sr.naturalSize
	if l.minWidthSet {
		min = l.minWidth
	}
	if l.naturalWidthSet {
		natural = l.naturalWidth
	}
	return min, natural
}

// GetPreferredHeight returns the minimum and natural height of a for the
// given width. A negative forWidth means unconstrained.
func (a *Actor) GetPreferredHeight(forWidth float64) (min, natural float64) {
	l := &a.layout
	if l.minHeightSet && l.naturalHeightSet {
		return l.minHeight, l.naturalHeight
	}
	sr, hit := lookupSizeRequest(&a.heightRequests, forWidth, a.needsHeightRequest)
	if !hit {
		m, n := a.computePreferredHeight(forWidth)
		if n < m {
			n = m
		}
		sr.forSize = forWidth
		sr.minSize = m
		sr.naturalSize = n
		sr.age = a.cachedHeightAge
		a.cachedHeightAge++
		a.needsHeightRequest = false
	}
	min, natural = sr.minSize, sr.naturalSize
	if l.minHeightSet {
		min = l.minHeight
	}
	if l.naturalHeightSet {
		natural = l.naturalHeight
	}
	return min, natural
}

// GetPreferredSize queries both axes in the order given by the actor's
// request mode, feeding the natural size of the first axis into the
// second query.
func (a *Actor) GetPreferredSize() (minWidth, minHeight, naturalWidth, naturalHeight float64) {
	if a.requestMode == HeightForWidth {
		minWidth, naturalWidth = a.GetPreferredWidth(-1)
		minHeight, naturalHeight = a.GetPreferredHeight(naturalWidth)
	} else {
		minHeight, naturalHeight = a.GetPreferredHeight(-1)
		minWidth, naturalWidth = a.GetPreferredWidth(naturalHeight)
	}
	return minWidth, minHeight, naturalWidth, naturalHeight
}

func (a *Actor) computePreferredWidth(forHeight float64) (float64, float64) {
	if a.PreferredWidthFunc != nil {
		return a.PreferredWidthFunc(a, forHeight)
	}
	var minRight, naturalRight float64
	for _, c := range a.children {
		if !c.visible {
			continue
		}
		x := c.GetX()
		cmin, _, cnat, _ := c.GetPreferredSize()
		minRight = max(minRight, x+cmin)
		naturalRight = max(naturalRight, x+cnat)
	}
	return minRight, naturalRight
}

func (a *Actor) computePreferredHeight(forWidth float64) (float64, float64) {
	if a.PreferredHeightFunc != nil {
		return a.PreferredHeightFunc(a, forWidth)
	}
	var minBottom, naturalBottom float64
	for _, c := range a.children {
		if !c.visible {
			continue
		}
		y := c.GetY()
		_, cmin, _, cnat := c.GetPreferredSize()
		minBottom = max(minBottom, y+cmin)
		naturalBottom = max(naturalBottom, y+cnat)
	}
	return minBottom, naturalBottom
}
