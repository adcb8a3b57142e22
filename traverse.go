package tableau

// TraverseResult tells a walker how to continue after visiting an actor.
type TraverseResult uint8

const (
	TraverseContinue     TraverseResult = iota
	TraverseSkipChildren                // do not descend into this actor's children
	TraverseBreak                       // stop the whole walk
)

// TraverseFunc visits one actor. depth is 0 for the actor the walk started at.
type TraverseFunc func(a *Actor, depth int) TraverseResult

// DepthFirst walks the subtree rooted at a. pre runs before an actor's
// children and post after them; either may be nil. post still runs for an
// actor whose children were skipped. Returning TraverseBreak from either
// callback stops the walk and DepthFirst reports false.
func DepthFirst(a *Actor, pre, post TraverseFunc) bool {
	return depthFirst(a, 0, pre, post) != TraverseBreak
}

func depthFirst(a *Actor, depth int, pre, post TraverseFunc) TraverseResult {
	r := TraverseContinue
	if pre != nil {
		r = pre(a, depth)
		if r == TraverseBreak {
			return r
		}
	}
	if r != TraverseSkipChildren {
		// children may be removed by the callbacks
		children := append([]*Actor(nil), a.children...)
		for _, c := range children {
			if depthFirst(c, depth+1, pre, post) == TraverseBreak {
				return TraverseBreak
			}
		}
	}
	if post != nil && post(a, depth) == TraverseBreak {
		return TraverseBreak
	}
	return TraverseContinue
}

// BreadthFirst visits the subtree rooted at a level by level.
func BreadthFirst(a *Actor, fn TraverseFunc) bool {
	type item struct {
		actor *Actor
		depth int
	}
	queue := []item{{a, 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		switch fn(it.actor, it.depth) {
		case TraverseBreak:
			return false
		case TraverseSkipChildren:
			continue
		}
		for _, c := range it.actor.children {
			queue = append(queue, item{c, it.depth + 1})
		}
	}
	return true
}
